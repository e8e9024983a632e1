// Package export bundles gallery images into a single zip archive for
// one-shot download. The export is client-driven and best-effort: files that
// fail to fetch are skipped and logged, and everything fetched so far still
// makes it into the archive.
package export

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"path"
	"regexp"

	"github.com/xuri/excelize/v2"

	"galeria/internal/domain"
	"galeria/internal/port"
)

// timestampPrefix matches the unique upload-time prefix added to object
// names, e.g. "2025-08-30T12-00-00-000Z_".
var timestampPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}-\d{2}-\d{2}-\d{3}Z_`)

// ArchiveName strips the folder and the timestamp prefix from an object
// name so the archive carries the human-readable original file name.
func ArchiveName(objectName string) string {
	return timestampPrefix.ReplaceAllString(path.Base(objectName), "")
}

// Archiver fetches image bytes over HTTP and writes zip archives.
type Archiver struct {
	http  *http.Client
	store port.ObjectStorage
}

// New creates an Archiver. A nil httpClient falls back to
// http.DefaultClient.
func New(httpClient *http.Client) *Archiver {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Archiver{http: httpClient}
}

// WithStorage returns an Archiver that falls back to reading the object
// straight from storage when its public URL is unreachable. Useful when the
// export runs server-side or behind a CDN that has not caught up yet.
func (a *Archiver) WithStorage(store port.ObjectStorage) *Archiver {
	return &Archiver{http: a.http, store: store}
}

// Build fetches every image's bytes from its view URL and writes a zip
// archive to w, plus a manifest.xlsx index sheet. Per-file fetch failures
// are skipped; only archive-write failures abort.
func (a *Archiver) Build(ctx context.Context, images []domain.GalleryImage, w io.Writer) error {
	zw := zip.NewWriter(w)
	used := make(map[string]bool)

	for i, img := range images {
		data, err := a.fetch(ctx, img.URL)
		if err != nil && a.store != nil {
			log.Printf("export: %s unreachable over HTTP, reading from storage: %v", img.Name, err)
			data, err = a.store.Download(ctx, img.Name)
		}
		if err != nil {
			log.Printf("export: skipping %s: %v", img.Name, err)
			continue
		}

		name := ArchiveName(img.Name)
		if name == "" {
			name = fmt.Sprintf("image-%d", i+1)
		}
		if used[name] {
			name = fmt.Sprintf("%d-%s", i+1, name)
		}
		used[name] = true

		f, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("creating archive entry %s: %w", name, err)
		}
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("writing archive entry %s: %w", name, err)
		}
	}

	if err := a.writeManifest(zw, images); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	return zw.Close()
}

// writeManifest adds an xlsx sheet indexing every listed image, fetched or
// not, so recipients can see what the gallery contained.
func (a *Archiver) writeManifest(zw *zip.Writer, images []domain.GalleryImage) error {
	mf := excelize.NewFile()
	defer func() { _ = mf.Close() }()

	sheet := mf.GetSheetName(0)
	headers := []string{"Name", "Size (bytes)", "Last modified", "URL"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := mf.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for row, img := range images {
		values := []interface{}{
			ArchiveName(img.Name),
			img.Size,
			img.LastModified.Format("2006-01-02 15:04:05"),
			img.URL,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := mf.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	buf, err := mf.WriteToBuffer()
	if err != nil {
		return err
	}

	f, err := zw.Create("manifest.xlsx")
	if err != nil {
		return err
	}
	_, err = f.Write(buf.Bytes())
	return err
}

func (a *Archiver) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch failed: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
