package drive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	drive "google.golang.org/api/drive/v3"
)

func TestConvertToFileInfo(t *testing.T) {
	f := &drive.File{
		Id:           "f1",
		Name:         "report.pdf",
		MimeType:     "application/pdf",
		Size:         2048,
		CreatedTime:  "2025-01-15T10:00:00Z",
		ModifiedTime: "2025-02-01T08:30:00Z",
		WebViewLink:  "https://drive.google.com/file/d/f1/view",
		Parents:      []string{"root"},
	}

	got := convertToFileInfo(f)
	assert.Equal(t, "f1", got.ID)
	assert.Equal(t, "report.pdf", got.Name)
	assert.Equal(t, int64(2048), got.Size)
	assert.True(t, got.CreatedTime.Equal(time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)))
	assert.True(t, got.ModifiedTime.Equal(time.Date(2025, 2, 1, 8, 30, 0, 0, time.UTC)))
	assert.False(t, got.IsFolder())
}

func TestConvertToFileInfoBadTimestamps(t *testing.T) {
	got := convertToFileInfo(&drive.File{Id: "f2", CreatedTime: "not a time"})
	assert.True(t, got.CreatedTime.IsZero())
}

func TestIsFolder(t *testing.T) {
	folder := &FileInfo{MimeType: FolderMimeType}
	assert.True(t, folder.IsFolder())
}
