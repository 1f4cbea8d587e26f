package api

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// renderMarkdown renders template-authored Markdown to sanitized HTML.
func renderMarkdown(s string) string {
	if s == "" {
		return ""
	}
	extensions := blackfriday.CommonExtensions | blackfriday.AutoHeadingIDs | blackfriday.Autolink
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.CommonHTMLFlags,
	})
	unsafe := blackfriday.Run([]byte(s), blackfriday.WithRenderer(renderer), blackfriday.WithExtensions(extensions))
	return string(ugcPolicy.SanitizeBytes(unsafe))
}

// sanitizeText strips all markup from submitted free text. The policy
// entity-encodes what it keeps, so the result is unescaped back to plain text.
func sanitizeText(s string) string {
	return html.UnescapeString(strictPolicy.Sanitize(s))
}
