package artifacts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// Publisher uploads contest artifacts to an Azure Blob container.
type Publisher struct {
	client    *azblob.Client
	container string
}

// NewPublisher authenticates with the default Azure credential chain
// (environment, managed identity, CLI login) against the given storage
// account URL, e.g. https://<account>.blob.core.windows.net.
func NewPublisher(serviceURL, container string) (*Publisher, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("acquiring Azure credential: %w", err)
	}

	client, err := azblob.NewClient(serviceURL, cred, &azblob.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{MaxRetries: 3},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating blob client: %w", err)
	}

	return &Publisher{client: client, container: container}, nil
}

// Upload sends one local file to the container under blobName.
func (p *Publisher) Upload(ctx context.Context, localPath, blobName string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", localPath, err)
	}
	defer f.Close()

	if _, err := p.client.UploadFile(ctx, p.container, blobName, f, nil); err != nil {
		return fmt.Errorf("uploading %s: %w", blobName, err)
	}
	slog.Info("uploaded artifact", "container", p.container, "blob", blobName)
	return nil
}

// UploadDir uploads every regular file under dir, prefixing blob names
// with the given prefix.
func (p *Publisher) UploadDir(ctx context.Context, dir, prefix string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		blobName := filepath.ToSlash(filepath.Join(prefix, rel))
		return p.Upload(ctx, path, blobName)
	})
}
