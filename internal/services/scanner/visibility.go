package scanner

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// isVisible filters out elements the user cannot see. Server-side HTML has no
// layout engine, so the check is limited to markup-level signals: inline
// style, the hidden attribute, aria-hidden, and explicit zero dimensions.
// Elements the heuristic cannot judge are treated as visible.
func isVisible(sel *goquery.Selection) bool {
	if sel == nil || sel.Length() == 0 {
		return false
	}

	if _, hidden := sel.Attr("hidden"); hidden {
		return false
	}
	if aria, _ := sel.Attr("aria-hidden"); aria == "true" {
		return false
	}

	if style, ok := sel.Attr("style"); ok && styleHides(style) {
		return false
	}

	if width, ok := sel.Attr("width"); ok && strings.TrimSpace(width) == "0" {
		return false
	}
	if height, ok := sel.Attr("height"); ok && strings.TrimSpace(height) == "0" {
		return false
	}

	return true
}

// styleHides parses an inline style attribute for hiding declarations
func styleHides(style string) bool {
	for _, decl := range strings.Split(style, ";") {
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.ToLower(strings.TrimSpace(parts[1]))

		switch prop {
		case "display":
			if value == "none" {
				return true
			}
		case "visibility":
			if value == "hidden" {
				return true
			}
		case "opacity":
			if value == "0" || value == "0.0" {
				return true
			}
		case "width", "height":
			if value == "0" || value == "0px" {
				return true
			}
		}
	}
	return false
}
