package drive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/fewebahr/gogctl/internal/auth"
	"github.com/fewebahr/gogctl/internal/logging"
)

// FolderMimeType is the MIME type for Google Drive folders.
const FolderMimeType = "application/vnd.google-apps.folder"

const fileFields = "id, name, mimeType, size, createdTime, modifiedTime, webViewLink, parents"

// Client wraps the Google Drive service for one profile's session.
type Client struct {
	svc     *drive.Service
	profile string
}

// NewClient creates a Drive client authenticated with the given session.
func NewClient(ctx context.Context, session *auth.Session) (*Client, error) {
	svc, err := drive.NewService(ctx, option.WithHTTPClient(session.HTTPClient(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}
	slog.Default().Debug("service client created",
		logging.Service("drive"), logging.Profile(session.Profile()))
	return &Client{svc: svc, profile: session.Profile()}, nil
}

// Profile returns the profile name this client is associated with.
func (c *Client) Profile() string {
	return c.profile
}

// ListFiles lists files matching a Drive search query.
func (c *Client) ListFiles(ctx context.Context, query string, maxResults int64) ([]*FileInfo, error) {
	call := c.svc.Files.List().
		Context(ctx).
		PageSize(maxResults).
		Fields("files(" + fileFields + ")")
	if query != "" {
		call = call.Q(query)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	var files []*FileInfo
	for _, f := range resp.Files {
		files = append(files, convertToFileInfo(f))
	}
	return files, nil
}

// GetFile retrieves metadata for a file.
func (c *Client) GetFile(ctx context.Context, fileID string) (*FileInfo, error) {
	f, err := c.svc.Files.Get(fileID).Context(ctx).Fields(fileFields).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s: %w", fileID, err)
	}
	return convertToFileInfo(f), nil
}

// DownloadFile downloads a file's content. The caller must close the reader.
func (c *Client) DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, error) {
	resp, err := c.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	return resp.Body, nil
}

func convertToFileInfo(f *drive.File) *FileInfo {
	info := &FileInfo{
		ID:          f.Id,
		Name:        f.Name,
		MimeType:    f.MimeType,
		Size:        f.Size,
		WebViewLink: f.WebViewLink,
		Parents:     f.Parents,
	}
	if t, err := time.Parse(time.RFC3339, f.CreatedTime); err == nil {
		info.CreatedTime = t
	}
	if t, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
		info.ModifiedTime = t
	}
	return info
}
