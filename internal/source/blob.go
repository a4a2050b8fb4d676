package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/rocjay1/wire-dashboard/internal/dataerr"
)

// BlobSource reads batches from an Azure Blob Storage container. It never writes.
type BlobSource struct {
	client    *azblob.Client
	container string
}

// NewBlobSource creates a BlobSource for the container at serviceURL.
// A plain http URL is treated as Azurite and uses the emulator's shared key.
func NewBlobSource(serviceURL, container string) (*BlobSource, error) {
	if serviceURL == "" {
		return nil, fmt.Errorf("blob service URL is required")
	}

	slog.Info("initializing blob source", "blob_url", serviceURL, "container", container)
	var client *azblob.Client

	if isLocal(serviceURL) {
		slog.Info("using Azurite shared key credentials for blob source")
		cred, err := azblob.NewSharedKeyCredential(azuriteAccountName, azuriteAccountKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create shared key credential: %w", err)
		}
		client, err = azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create blob client with shared key: %w", err)
		}
	} else {
		cred, err := newDefaultAzureCredential()
		if err != nil {
			return nil, fmt.Errorf("failed to create default azure credential: %w", err)
		}
		client, err = azblob.NewClient(serviceURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create blob client: %w", err)
		}
	}

	return &BlobSource{client: client, container: container}, nil
}

// Open streams the named blob. A missing blob is a *dataerr.DataLoadError.
func (s *BlobSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	slog.Info("downloading blob", "container", s.container, "blob_name", name)
	resp, err := s.client.DownloadStream(ctx, s.container, name, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, dataerr.NewLoadError(name, "blob not found", err)
		}
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) {
			return nil, dataerr.NewLoadError(name, fmt.Sprintf("blob download failed with status %d", respErr.StatusCode), err)
		}
		return nil, dataerr.NewLoadError(name, "blob download failed", err)
	}
	return resp.Body, nil
}

func (s *BlobSource) String() string {
	return fmt.Sprintf("blob:%s", s.container)
}
