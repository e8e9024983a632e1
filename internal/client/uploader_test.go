package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"galeria/internal/client"
	"galeria/internal/config"
	"galeria/internal/domain"
	"galeria/internal/handler"
	"galeria/internal/port"
	"galeria/internal/router"
	"galeria/internal/service"
	"galeria/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// startServer wires the real router and services over a mock storage backend
// and returns the API base URL alongside the storage mock.
func startServer(t *testing.T) (string, *mocks.MockObjectStorage) {
	t.Helper()

	cfg := &config.Config{
		Storage: config.StorageConfig{Region: "us-ashburn-1", Namespace: "idabc", Bucket: "fotos"},
		Upload: config.UploadConfig{
			Folder:        "casamento",
			MaxProxiedMB:  10,
			MaxDirectMB:   20,
			PresignExpiry: 15 * time.Minute,
		},
	}

	storage := new(mocks.MockObjectStorage)
	engine := router.Setup(
		handler.NewImageHandler(service.NewGalleryService(storage, cfg)),
		handler.NewUploadHandler(service.NewUploadService(storage, cfg)),
		handler.NewHealthHandler(storage, "casamento/"),
		nil,
	)

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv.URL, storage
}

func TestUploader_DirectBatch_FailuresAreIsolated(t *testing.T) {
	apiURL, storage := startServer(t)

	var puts atomic.Int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		puts.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	storage.On("PresignUpload", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string"), 15*time.Minute).
		Return(&domain.PresignedUpload{UploadURL: backend.URL + "/put", ExpiresAt: time.Now().Add(15 * time.Minute)}, nil)

	tasks := []*client.UploadTask{
		{Name: "a.jpg", ContentType: "image/jpeg", Size: 1024, Data: []byte("aaa"), Status: client.StatusPending},
		{Name: "huge.jpg", ContentType: "image/jpeg", Size: 21 * 1024 * 1024, Data: []byte("hh"), Status: client.StatusPending},
		{Name: "b.png", ContentType: "image/png", Size: 2048, Data: []byte("bbb"), Status: client.StatusPending},
	}

	up := client.NewUploader(client.New(apiURL, nil), client.ModeDirect)
	up.Run(context.Background(), tasks)

	assert.True(t, client.AllDone(tasks))
	assert.Equal(t, client.StatusSuccess, tasks[0].Status)
	assert.Equal(t, client.StatusError, tasks[1].Status)
	assert.Contains(t, tasks[1].Err, "20MB")
	assert.Equal(t, client.StatusSuccess, tasks[2].Status)

	// Only the two valid files reached the handshake and the backend.
	storage.AssertNumberOfCalls(t, "PresignUpload", 2)
	assert.EqualValues(t, 2, puts.Load())

	assert.NotEmpty(t, tasks[0].ObjectName)
	assert.NotEmpty(t, tasks[0].ViewURL)
}

func TestUploader_Rerun_SkipsSucceededTasks(t *testing.T) {
	apiURL, storage := startServer(t)

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	storage.On("PresignUpload", mock.Anything, mock.AnythingOfType("string"), mock.Anything, mock.Anything).
		Return(&domain.PresignedUpload{UploadURL: backend.URL + "/put", ExpiresAt: time.Now().Add(15 * time.Minute)}, nil)

	tasks := []*client.UploadTask{
		{Name: "a.jpg", ContentType: "image/jpeg", Size: 10, Data: []byte("a"), Status: client.StatusPending},
		{Name: "bad.pdf", ContentType: "application/pdf", Size: 10, Data: []byte("b"), Status: client.StatusPending},
	}

	up := client.NewUploader(client.New(apiURL, nil), client.ModeDirect)
	up.Run(context.Background(), tasks)

	assert.Equal(t, client.StatusSuccess, tasks[0].Status)
	assert.Equal(t, client.StatusError, tasks[1].Status)
	storage.AssertNumberOfCalls(t, "PresignUpload", 1)

	// The retry resubmits only the failed task; it fails validation again
	// without another handshake, and the success is left untouched.
	up.Run(context.Background(), tasks)

	assert.Equal(t, client.StatusSuccess, tasks[0].Status)
	assert.Equal(t, client.StatusError, tasks[1].Status)
	storage.AssertNumberOfCalls(t, "PresignUpload", 1)
}

// TestUploader_Direct_ExpiredURLFails runs against a backend that honors the
// expiry signed into the upload URL: the same URL that accepts a PUT inside
// the window rejects it once the clock passes expiresAt.
func TestUploader_Direct_ExpiredURLFails(t *testing.T) {
	apiURL, storage := startServer(t)

	issuedAt := time.Now()
	expiresAt := issuedAt.Add(15 * time.Minute)

	// Advanceable clock, read from the backend's handler goroutine.
	var clock atomic.Int64
	clock.Store(issuedAt.Unix())

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, err := strconv.ParseInt(r.URL.Query().Get("expires"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if clock.Load() > deadline {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("Request has expired"))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	signedURL := backend.URL + "/put?expires=" + strconv.FormatInt(expiresAt.Unix(), 10)
	storage.On("PresignUpload", mock.Anything, mock.AnythingOfType("string"), mock.Anything, mock.Anything).
		Return(&domain.PresignedUpload{UploadURL: signedURL, ExpiresAt: expiresAt}, nil)

	up := client.NewUploader(client.New(apiURL, nil), client.ModeDirect)

	// Within the window the PUT succeeds.
	fresh := &client.UploadTask{Name: "a.jpg", ContentType: "image/jpeg", Size: 3, Data: []byte("aaa"), Status: client.StatusPending}
	up.Run(context.Background(), []*client.UploadTask{fresh})
	assert.Equal(t, client.StatusSuccess, fresh.Status)

	// Past the window the same URL is rejected and the task ends in error.
	clock.Store(expiresAt.Add(time.Second).Unix())
	stale := &client.UploadTask{Name: "b.jpg", ContentType: "image/jpeg", Size: 3, Data: []byte("bbb"), Status: client.StatusPending}
	up.Run(context.Background(), []*client.UploadTask{stale})

	assert.Equal(t, client.StatusError, stale.Status)
	assert.Contains(t, stale.Err, "expired")
}

func TestUploader_ProxiedBatch(t *testing.T) {
	apiURL, storage := startServer(t)

	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.ContentType == "image/jpeg"
	})).Return(&port.UploadOutput{Key: "casamento/k_a.jpg", ETag: "abc"}, nil)

	tasks := []*client.UploadTask{
		{Name: "a.jpg", ContentType: "image/jpeg", Size: 3, Data: []byte("aaa"), Status: client.StatusPending},
	}

	up := client.NewUploader(client.New(apiURL, nil), client.ModeProxied)
	up.Run(context.Background(), tasks)

	assert.Equal(t, client.StatusSuccess, tasks[0].Status)
	assert.NotEmpty(t, tasks[0].ObjectName)
	storage.AssertNotCalled(t, "PresignUpload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAllDone(t *testing.T) {
	tasks := []*client.UploadTask{
		{Status: client.StatusSuccess},
		{Status: client.StatusUploading},
	}
	assert.False(t, client.AllDone(tasks))

	tasks[1].Status = client.StatusError
	assert.True(t, client.AllDone(tasks))
}
