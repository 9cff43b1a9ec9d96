package skedda

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TokenHeader is the header the remote application checks on
// authenticated requests. The same name shows up as an input element,
// a meta tag and a cookie prefix depending on which page served it.
const TokenHeader = "X-Skedda-RequestVerificationToken"

// VerificationCookie is the session cookie paired with the token.
const VerificationCookie = "X-Skedda-RequestVerificationCookie"

// Known markup locations for the token, in precedence order. The
// markup scan runs before the substring scan because an attribute
// match is far less likely to pick up unrelated text.
var tokenMarkup = []struct {
	selector string
	attr     string
}{
	{"input[name='__RequestVerificationToken']", "value"},
	{"input[name='" + TokenHeader + "']", "value"},
	{"meta[name='csrf-token']", "content"},
	{"meta[name='" + TokenHeader + "']", "content"},
}

var tokenMarkers = []string{
	TokenHeader,
	"__RequestVerificationToken",
}

// ExtractToken locates the request verification token in a booking
// page body. First matching markup location wins; if no element
// matches, the body is scanned for a known header-name marker followed
// by the next quoted literal. Returns ErrTokenNotFound when both
// strategies come up empty.
func ExtractToken(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(body))
	if err == nil {
		for _, loc := range tokenMarkup {
			token, ok := doc.Find(loc.selector).First().Attr(loc.attr)
			if ok && token != "" {
				return token, nil
			}
		}
	}

	for _, marker := range tokenMarkers {
		token, ok := scanQuotedAfter(string(body), marker)
		if ok && token != "" {
			return token, nil
		}
	}

	return "", ErrTokenNotFound
}

// scanQuotedAfter finds the first occurrence of marker and returns the
// next double-quoted literal after it. A quote immediately following
// the marker (the closing quote of a JSON key or attribute name) is
// skipped so the literal after the separator is captured instead.
func scanQuotedAfter(content, marker string) (string, bool) {
	idx := strings.Index(content, marker)
	if idx < 0 {
		return "", false
	}
	rest := content[idx+len(marker):]

	if strings.HasPrefix(rest, `"`) || strings.HasPrefix(rest, `'`) {
		rest = rest[1:]
	}

	open := strings.IndexByte(rest, '"')
	if open < 0 {
		return "", false
	}
	rest = rest[open+1:]

	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}
