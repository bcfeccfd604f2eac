package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // Command completed
	ExitQCRejected = 1 // QC loop finished but the article was not approved
	ExitError      = 2 // Configuration or runtime error
)

// QCRejectedError indicates that the QC loop ran to completion but the
// final article was rejected.
type QCRejectedError struct {
	Message string
}

func (e *QCRejectedError) Error() string {
	return e.Message
}

func main() {
	// Credentials may live in a local .env; a missing file is fine.
	_ = godotenv.Load()

	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var rejectedErr *QCRejectedError
		if errors.As(err, &rejectedErr) {
			os.Exit(ExitQCRejected)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
