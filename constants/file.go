package constants

import "strings"

// DocumentFormat is the coarse family of an uploaded résumé document.
type DocumentFormat string

const (
	IMAGE DocumentFormat = "IMAGE"
	PDF   DocumentFormat = "PDF"
)

// MaxDocumentMBDefault caps the size of a document sent to a vision model.
const MaxDocumentMBDefault = 20

// mimeByExt holds the document extensions accepted for extraction.
var mimeByExt = map[string]string{
	"pdf":  "application/pdf",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// MapExtToFormat returns the document family for an extension, or "" if unsupported.
func MapExtToFormat(ext string) DocumentFormat {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "jpg", "jpeg", "png", "webp":
		return IMAGE
	default:
		return ""
	}
}

// MIMEType returns the media type sent to the model for an extension.
func MIMEType(ext string) (string, bool) {
	mt, ok := mimeByExt[NormalizeExt(ext)]
	return mt, ok
}
