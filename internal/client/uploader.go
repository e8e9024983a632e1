package client

import (
	"context"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sync"
)

// TaskStatus is the lifecycle state of one file's upload.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusUploading TaskStatus = "uploading"
	StatusSuccess   TaskStatus = "success"
	StatusError     TaskStatus = "error"
)

// UploadTask tracks one local file through an upload batch. A task is only
// mutated by the goroutine running it, so no locking is needed while a batch
// is in flight; callers read results after Run returns.
type UploadTask struct {
	Path        string
	Name        string
	ContentType string
	Size        int64
	Data        []byte

	Status     TaskStatus
	ObjectName string
	ViewURL    string
	Err        string
}

// NewTask reads path into a pending task, deriving the content type from the
// file extension with a sniffing fallback.
func NewTask(path string) (*UploadTask, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return &UploadTask{
		Path:        path,
		Name:        filepath.Base(path),
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
		Status:      StatusPending,
	}, nil
}

// Mode selects the upload protocol for a batch.
type Mode string

const (
	// ModeDirect requests a presigned URL per file and PUTs the bytes
	// straight to storage.
	ModeDirect Mode = "direct"
	// ModeProxied streams the bytes through the server.
	ModeProxied Mode = "proxied"
)

// Uploader runs upload batches against a server.
type Uploader struct {
	api  *Client
	mode Mode
}

// NewUploader creates an Uploader using the given API client and mode.
func NewUploader(api *Client, mode Mode) *Uploader {
	return &Uploader{api: api, mode: mode}
}

// Run uploads every eligible task concurrently and returns when all of them
// have reached a terminal state. Only pending and error tasks are
// (re)submitted, so successful tasks are never uploaded twice. One file's
// failure never blocks or aborts its siblings.
func (u *Uploader) Run(ctx context.Context, tasks []*UploadTask) {
	var wg sync.WaitGroup
	for _, t := range tasks {
		if t.Status != StatusPending && t.Status != StatusError {
			continue
		}
		t.Status = StatusUploading
		t.Err = ""

		wg.Add(1)
		go func(t *UploadTask) {
			defer wg.Done()
			u.runOne(ctx, t)
		}(t)
	}
	wg.Wait()
}

// runOne drives a single task to a terminal state. In direct mode the
// presign must complete before the PUT is attempted; the task only becomes
// a success once the direct write returns a success status.
func (u *Uploader) runOne(ctx context.Context, t *UploadTask) {
	switch u.mode {
	case ModeProxied:
		resp, err := u.api.ProxiedUpload(ctx, t.Name, t.ContentType, t.Data)
		if err != nil {
			t.Status = StatusError
			t.Err = err.Error()
			return
		}
		t.ObjectName = resp.FileName
		t.ViewURL = resp.ViewLink

	default:
		presigned, err := u.api.PresignUpload(ctx, t.Name, t.ContentType, t.Size)
		if err != nil {
			t.Status = StatusError
			t.Err = err.Error()
			return
		}

		if err := u.api.PutDirect(ctx, presigned.UploadURL, t.ContentType, t.Data); err != nil {
			t.Status = StatusError
			t.Err = err.Error()
			return
		}
		t.ObjectName = presigned.ObjectName
		t.ViewURL = presigned.ViewURL
	}

	t.Status = StatusSuccess
}

// AllDone reports whether every task has reached a terminal state.
func AllDone(tasks []*UploadTask) bool {
	for _, t := range tasks {
		if t.Status != StatusSuccess && t.Status != StatusError {
			return false
		}
	}
	return true
}
