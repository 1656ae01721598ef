package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
)

// AzureBlobStorage stores blobs in a single container and signs short-lived
// SAS URLs with the account key from the connection string.
type AzureBlobStorage struct {
	client     *azblob.Client
	credential *azblob.SharedKeyCredential
	container  string
	serviceURL string
}

func NewAzureBlobStorage(connectionString, container string) (*AzureBlobStorage, error) {
	if connectionString == "" {
		return nil, fmt.Errorf("AZURE_STORAGE_CONNECTION_STRING is required for azure_blob storage")
	}

	accountName, accountKey, err := parseConnectionString(connectionString)
	if err != nil {
		return nil, err
	}
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("build storage credential: %w", err)
	}
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("build storage client: %w", err)
	}

	return &AzureBlobStorage{
		client:     client,
		credential: credential,
		container:  container,
		serviceURL: strings.TrimRight(client.URL(), "/"),
	}, nil
}

func parseConnectionString(connectionString string) (name, key string, err error) {
	for _, part := range strings.Split(connectionString, ";") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "AccountName":
			name = kv[1]
		case "AccountKey":
			key = kv[1]
		}
	}
	if name == "" || key == "" {
		return "", "", fmt.Errorf("connection string is missing AccountName or AccountKey")
	}
	return name, key, nil
}

func (s *AzureBlobStorage) UploadFile(ctx context.Context, content []byte, filename, contentType string) (string, error) {
	return s.upload(ctx, uniqueBlobName(filename, time.Now()), content, contentType)
}

func (s *AzureBlobStorage) UploadFileExact(ctx context.Context, content []byte, exactName, contentType string) (string, error) {
	return s.upload(ctx, exactName, content, contentType)
}

func (s *AzureBlobStorage) upload(ctx context.Context, name string, content []byte, contentType string) (string, error) {
	opts := &azblob.UploadBufferOptions{}
	if contentType != "" {
		opts.HTTPHeaders = &blob.HTTPHeaders{BlobContentType: &contentType}
	}
	if _, err := s.client.UploadBuffer(ctx, s.container, name, content, opts); err != nil {
		return "", fmt.Errorf("upload blob: %w", err)
	}
	return s.FileURL(name), nil
}

func (s *AzureBlobStorage) DeleteFile(ctx context.Context, fileURLOrPath string) bool {
	blobPath := s.extractBlobPath(fileURLOrPath)
	if blobPath == "" {
		return false
	}
	if _, err := s.client.DeleteBlob(ctx, s.container, blobPath, nil); err != nil {
		return false
	}
	return true
}

func (s *AzureBlobStorage) FileURL(filenameOrPath string) string {
	return fmt.Sprintf("%s/%s/%s", s.serviceURL, s.container, s.extractBlobPath(filenameOrPath))
}

func (s *AzureBlobStorage) SaveJSON(ctx context.Context, blobPath string, data any) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return s.upload(ctx, blobPath, payload, "application/json")
}

func (s *AzureBlobStorage) GetJSON(ctx context.Context, blobPath string) (map[string]any, bool) {
	raw, _, err := s.Download(ctx, blobPath)
	if err != nil {
		return nil, false
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, false
	}
	return doc, true
}

func (s *AzureBlobStorage) ListFiles(ctx context.Context, prefix string) ([]string, error) {
	opts := &azblob.ListBlobsFlatOptions{}
	if prefix != "" {
		opts.Prefix = &prefix
	}

	paths := make([]string, 0)
	pager := s.client.NewListBlobsFlatPager(s.container, opts)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list blobs: %w", err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				paths = append(paths, *item.Name)
			}
		}
	}
	return paths, nil
}

func (s *AzureBlobStorage) SignedURL(_ context.Context, fileURLOrPath string, expiry time.Duration) (string, error) {
	blobPath := s.extractBlobPath(fileURLOrPath)
	if blobPath == "" {
		return "", fmt.Errorf("file url does not belong to configured container")
	}

	values := sas.BlobSignatureValues{
		Protocol:      sas.ProtocolHTTPS,
		ExpiryTime:    time.Now().UTC().Add(expiry),
		ContainerName: s.container,
		BlobName:      blobPath,
		Permissions:   (&sas.BlobPermissions{Read: true}).String(),
	}
	query, err := values.SignWithSharedKey(s.credential)
	if err != nil {
		return "", fmt.Errorf("sign blob url: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s?%s", s.serviceURL, s.container, blobPath, query.Encode()), nil
}

func (s *AzureBlobStorage) Download(ctx context.Context, fileURLOrPath string) ([]byte, string, error) {
	blobPath := s.extractBlobPath(fileURLOrPath)
	resp, err := s.client.DownloadStream(ctx, s.container, blobPath, nil)
	if err != nil {
		return nil, "", fmt.Errorf("download blob: %w", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read blob: %w", err)
	}
	contentType := "application/octet-stream"
	if resp.ContentType != nil {
		contentType = *resp.ContentType
	}
	return content, contentType, nil
}

// extractBlobPath accepts a bare blob path, a full blob URL, or a SAS URL and
// returns the path under the configured container.
func (s *AzureBlobStorage) extractBlobPath(fileURLOrPath string) string {
	if !strings.Contains(fileURLOrPath, "://") && !strings.HasPrefix(fileURLOrPath, "/") {
		return fileURLOrPath
	}

	parsed, err := url.Parse(fileURLOrPath)
	if err != nil {
		return ""
	}
	p := strings.TrimPrefix(parsed.Path, "/")
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, s.container+"/") {
		return strings.TrimPrefix(p, s.container+"/")
	}
	// Fallback for paths that were stored without the container segment.
	if idx := strings.Index(p, "/"); idx >= 0 {
		return p[idx+1:]
	}
	return p
}
