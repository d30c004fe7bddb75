package uploads

import "strings"

const (
	imageUploadSegment = "/image/upload/"
	rawUploadSegment   = "/raw/upload/"
)

// FixPdfURL rewrites a PDF URL that was stored under the image-serving path
// to the raw document path. Any other input, including the empty string, is
// returned unchanged. Some records predate the switch to uploading PDFs as
// raw documents and still carry the image path.
func FixPdfURL(url string) string {
	if url == "" {
		return url
	}
	if strings.Contains(url, imageUploadSegment) && strings.HasSuffix(url, ".pdf") {
		return strings.Replace(url, imageUploadSegment, rawUploadSegment, 1)
	}
	return url
}
