package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"go.uber.org/zap"
)

// AzureBlobStorage keeps export archives in an Azure Blob container.
type AzureBlobStorage struct {
	client    *azblob.Client
	container string
	logger    *zap.Logger
}

func NewAzureBlobStorage(connectionString, containerName string, logger *zap.Logger) (*AzureBlobStorage, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	if _, err := client.CreateContainer(context.Background(), containerName, nil); err != nil {
		if !strings.Contains(err.Error(), "ContainerAlreadyExists") {
			return nil, fmt.Errorf("failed to create container: %w", err)
		}
	}

	logger.Info("Azure Blob Storage initialized", zap.String("container", containerName))

	return &AzureBlobStorage{
		client:    client,
		container: containerName,
		logger:    logger,
	}, nil
}

// Upload writes a file to the container. Archives are laid out by month so
// ops can browse and expire them by prefix; the original filename is kept
// because export filenames already carry the tenant and timestamp.
func (s *AzureBlobStorage) Upload(ctx context.Context, filename string, contentType string, data io.Reader) (string, int64, error) {
	blobName := path.Join(time.Now().UTC().Format("2006/01"), filename)

	counted := &byteCountReader{inner: data}
	opts := &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	}

	if _, err := s.client.UploadStream(ctx, s.container, blobName, counted, opts); err != nil {
		return "", 0, fmt.Errorf("failed to upload blob: %w", err)
	}

	s.logger.Info("archive uploaded",
		zap.String("blob_name", blobName),
		zap.String("container", s.container),
		zap.Int64("size", counted.n),
	)
	return blobName, counted.n, nil
}

// byteCountReader tracks how many bytes passed through, since UploadStream
// does not report the streamed size.
type byteCountReader struct {
	inner io.Reader
	n     int64
}

func (c *byteCountReader) Read(p []byte) (int, error) {
	n, err := c.inner.Read(p)
	c.n += int64(n)
	return n, err
}

func (s *AzureBlobStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	resp, err := s.client.DownloadStream(ctx, s.container, storagePath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download blob: %w", err)
	}
	return resp.Body, nil
}

// Delete removes the blob; a missing blob is not an error.
func (s *AzureBlobStorage) Delete(ctx context.Context, storagePath string) error {
	if _, err := s.client.DeleteBlob(ctx, s.container, storagePath, nil); err != nil {
		if strings.Contains(err.Error(), "BlobNotFound") {
			return nil
		}
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	s.logger.Info("archive deleted",
		zap.String("blob_name", storagePath),
		zap.String("container", s.container),
	)
	return nil
}
