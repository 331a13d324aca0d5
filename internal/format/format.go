// Package format holds presentational helpers shared by the web and terminal
// storefronts: money, card summaries and rich plant descriptions.
package format

import (
	"bytes"
	"html"
	"html/template"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// SummaryLimit is the number of description characters shown on a card
const SummaryLimit = 60

// Ellipsis marks a truncated summary
const Ellipsis = "..."

var (
	strict = bluemonday.StrictPolicy()
	ugc    = bluemonday.UGCPolicy()
	md     = goldmark.New()
)

// Money formats a dollar amount with exactly two decimals.
// Example: Money(12.5) => "$12.50"
func Money(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	if math.Abs(amount) < 0.005 {
		return "$0.00"
	}
	if amount < 0 {
		return "-$" + strconv.FormatFloat(-amount, 'f', 2, 64)
	}
	return "$" + strconv.FormatFloat(amount, 'f', 2, 64)
}

// Plain strips any markup from catalog text. The result is unescaped text,
// callers escape it for their own output.
func Plain(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Summary returns the first SummaryLimit characters of the plain-text
// description followed by Ellipsis.
func Summary(description string) string {
	return Truncate(Plain(description), SummaryLimit) + Ellipsis
}

// Truncate cuts s to at most limit runes without splitting a character.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

// DescriptionHTML renders a full description as sanitized HTML. Catalog
// descriptions may contain markdown emphasis and line breaks.
func DescriptionHTML(description string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(description), &buf); err != nil {
		slog.Warn("Unable to render description markdown", "err", err)
		return template.HTML(template.HTMLEscapeString(description))
	}
	return template.HTML(ugc.SanitizeBytes(buf.Bytes()))
}
