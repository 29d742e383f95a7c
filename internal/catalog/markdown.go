package catalog

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var (
	markdown  = goldmark.New()
	sanitizer = bluemonday.UGCPolicy()
)

// RenderDescription converts a markdown description into sanitized HTML.
// Raw HTML in the source is dropped by the renderer and anything that slips
// through is stripped by the UGC policy.
func RenderDescription(src string) (template.HTML, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}

	clean := sanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(bytes.TrimSpace(clean)), nil
}
