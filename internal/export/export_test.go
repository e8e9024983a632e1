package export_test

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"galeria/internal/domain"
	"galeria/internal/export"
	"galeria/mocks"
)

func TestArchiveName(t *testing.T) {
	cases := []struct {
		objectName string
		want       string
	}{
		{"casamento/2025-08-30T12-00-00-000Z_nossa foto.jpg", "nossa foto.jpg"},
		{"casamento/plain.jpg", "plain.jpg"},
		{"2025-08-30T12-00-00-000Z_a.png", "a.png"},
		// Prefix not at the start of the base name stays untouched.
		{"casamento/x_2025-08-30T12-00-00-000Z_a.png", "x_2025-08-30T12-00-00-000Z_a.png"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, export.ArchiveName(tc.objectName), tc.objectName)
	}
}

func TestArchiver_Build(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/a.jpg":
			_, _ = w.Write([]byte("bytes-a"))
		case "/b.png":
			_, _ = w.Write([]byte("bytes-b"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	images := []domain.GalleryImage{
		{Name: "casamento/2025-08-30T12-00-00-000Z_a.jpg", URL: srv.URL + "/a.jpg"},
		{Name: "casamento/2025-08-30T12-00-01-000Z_b.png", URL: srv.URL + "/b.png"},
		{Name: "casamento/2025-08-30T12-00-02-000Z_gone.gif", URL: srv.URL + "/gone.gif"},
	}

	var buf bytes.Buffer
	err := export.New(nil).Build(context.Background(), images, &buf)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	entries := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		entries[f.Name] = data
	}

	// The unreachable file is skipped; the manifest is always present.
	require.Len(t, entries, 3)
	assert.Equal(t, []byte("bytes-a"), entries["a.jpg"])
	assert.Equal(t, []byte("bytes-b"), entries["b.png"])
	assert.NotEmpty(t, entries["manifest.xlsx"])
}

func TestArchiver_Build_FallsBackToStorage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/a.jpg" {
			_, _ = w.Write([]byte("bytes-a"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	store := new(mocks.MockObjectStorage)
	store.On("Download", mock.Anything, "casamento/2025-08-30T12-00-01-000Z_b.png").
		Return([]byte("bytes-b-from-storage"), nil)

	images := []domain.GalleryImage{
		{Name: "casamento/2025-08-30T12-00-00-000Z_a.jpg", URL: srv.URL + "/a.jpg"},
		{Name: "casamento/2025-08-30T12-00-01-000Z_b.png", URL: srv.URL + "/gone.png"},
	}

	var buf bytes.Buffer
	require.NoError(t, export.New(nil).WithStorage(store).Build(context.Background(), images, &buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	entries := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		entries[f.Name] = data
	}

	assert.Equal(t, []byte("bytes-a"), entries["a.jpg"])
	assert.Equal(t, []byte("bytes-b-from-storage"), entries["b.png"])
	store.AssertExpectations(t)
}

func TestArchiver_Build_DeduplicatesNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("img"))
	}))
	defer srv.Close()

	images := []domain.GalleryImage{
		{Name: "casamento/2025-08-30T12-00-00-000Z_same.jpg", URL: srv.URL + "/1"},
		{Name: "casamento/2025-08-30T12-00-01-000Z_same.jpg", URL: srv.URL + "/2"},
	}

	var buf bytes.Buffer
	require.NoError(t, export.New(nil).Build(context.Background(), images, &buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	var names []string
	for _, f := range zr.File {
		if f.Name != "manifest.xlsx" {
			names = append(names, f.Name)
		}
	}
	assert.ElementsMatch(t, []string{"same.jpg", "2-same.jpg"}, names)
}
