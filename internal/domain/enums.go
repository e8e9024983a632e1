package domain

// AllowedUploadTypes lists the MIME types accepted for upload, for both the
// proxied and the presigned (direct) path. Enforced server-side; the client
// is untrusted.
var AllowedUploadTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// GalleryExtensions lists the file extensions (without dot, lowercase) that
// the gallery listing treats as images. Slightly wider than the upload set so
// objects written out-of-band (e.g. webp) still show up.
var GalleryExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
}
