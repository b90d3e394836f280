// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docgen

import (
	"html"
	"strings"

	xhtml "golang.org/x/net/html"

	"github.com/pdiddy/scriptdoc/pkg/types"
)

// Clean trims the model output and strips a surrounding code fence such as
// "```html ... ```". Output without any HTML element is escaped and wrapped
// in a paragraph so Confluence accepts it as storage markup.
func Clean(raw string) types.Documentation {
	text := stripFence(strings.TrimSpace(raw))
	if text == "" {
		return ""
	}
	if !hasElement(text) {
		return types.Documentation("<p>" + html.EscapeString(text) + "</p>")
	}
	return types.Documentation(text)
}

// stripFence removes a leading ``` line (with optional language tag) and a
// trailing ``` when both are present.
func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") || len(text) < 6 {
		return text
	}
	inner := strings.TrimSuffix(text, "```")
	nl := strings.IndexByte(inner, '\n')
	if nl < 0 {
		return strings.TrimSpace(strings.TrimPrefix(inner, "```"))
	}
	return strings.TrimSpace(inner[nl+1:])
}

// hasElement reports whether text contains at least one HTML start tag.
func hasElement(text string) bool {
	z := xhtml.NewTokenizer(strings.NewReader(text))
	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			return false
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			return true
		}
	}
}
