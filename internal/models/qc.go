package models

// QCStatus is the terminal status of one quality-control run.
type QCStatus string

const (
	QCApproved           QCStatus = "approved"
	QCApprovedRevised    QCStatus = "approved_revised"
	QCRejectedRevised    QCStatus = "rejected_revised"
	QCRejectedNoRevision QCStatus = "rejected_no_revision"
)

// QCVerdict is the structured result of a quality check: APPROVED or
// REJECTED, plus an improvement tip when rejected.
type QCVerdict struct {
	Verdict string `json:"verdict"`
	Tip     string `json:"tip"`
}

// Approved reports whether the checker accepted the draft.
func (v QCVerdict) Approved() bool { return v.Verdict == "APPROVED" }

// QCSnapshot is the per-run file persisted by the QC revise loop.
type QCSnapshot struct {
	Timestamp string    `json:"timestamp"`
	Content   string    `json:"content"`
	QCResult  QCVerdict `json:"qc_result"`
	Status    QCStatus  `json:"status"`
}
