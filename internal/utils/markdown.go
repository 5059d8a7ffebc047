package utils

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	policy = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

func init() {
	policy.AllowImages()
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)
}

// RenderMarkdown converts an article body to sanitized HTML.
func RenderMarkdown(source string) string {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return strict.Sanitize(source) // Fallback
	}

	sanitized := policy.SanitizeBytes(buf.Bytes())
	return EnhanceHTMLContent(string(sanitized))
}

// SanitizeText strips every tag from reader-provided text (comments, replies).
func SanitizeText(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
