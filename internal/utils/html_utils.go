package utils

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// EnhanceHTMLContent adds no-referrer and lazy loading attributes to every image.
func EnhanceHTMLContent(htmlStr string) string {
	if htmlStr == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return htmlStr
	}

	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		s.SetAttr("referrerpolicy", "no-referrer")
		s.SetAttr("loading", "lazy")
		if _, ok := s.Attr("alt"); !ok {
			s.SetAttr("alt", "")
		}
	})

	// goquery renders full document tags if missing, we just want the body content
	out, _ := doc.Find("body").Html()
	if out == "" {
		out, _ = doc.Html()
	}
	return out
}
