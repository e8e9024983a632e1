package service

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"galeria/internal/config"
)

// timeNow is a seam for tests that pin the clock.
var timeNow = time.Now

// objectKey builds the backend-unique key for an upload:
// <folder>/<ISO8601 UTC timestamp with ":" and "." replaced by "-">_<name>.
// Millisecond resolution keeps keys from colliding across uploads; the
// original file name is preserved so archives stay human-readable.
func objectKey(folder, fileName string, t time.Time) string {
	ts := strings.NewReplacer(":", "-", ".", "-").Replace(
		t.UTC().Format("2006-01-02T15:04:05.000Z07:00"))
	return folder + "/" + ts + "_" + fileName
}

// ViewURL derives the public, browser-accessible URL for an object as a pure
// function of the storage location and object name. With PublicBase set the
// object is served from that base (CDN, MinIO); otherwise the OCI public
// object URL form is used.
func ViewURL(cfg *config.StorageConfig, objectName string) string {
	if cfg.PublicBase != "" {
		return strings.TrimRight(cfg.PublicBase, "/") + "/" + url.PathEscape(objectName)
	}
	return fmt.Sprintf("https://objectstorage.%s.oraclecloud.com/n/%s/b/%s/o/%s",
		cfg.Region, cfg.Namespace, cfg.Bucket, url.PathEscape(objectName))
}
