package extraction

import (
	"path/filepath"
	"sort"
	"strings"
)

// mediaTypes maps the file extensions the pipeline accepts to their
// media types. PDFs are accepted as input but rendered to a raster
// image before extraction; only image/* types reach the service.
var mediaTypes = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// MediaType returns the media type for a receipt file, matching its
// extension case-insensitively.
func MediaType(path string) (string, bool) {
	mediaType, ok := mediaTypes[strings.ToLower(filepath.Ext(path))]
	return mediaType, ok
}

// IsSupported reports whether the file's extension is one the pipeline
// accepts.
func IsSupported(path string) bool {
	_, ok := MediaType(path)
	return ok
}

// SupportedExtensions returns the accepted extensions sorted, for
// directory listings and error messages.
func SupportedExtensions() []string {
	extensions := make([]string, 0, len(mediaTypes))
	for ext := range mediaTypes {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)
	return extensions
}
