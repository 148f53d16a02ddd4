package fetcher

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// NoAnchorText is the placeholder substituted for anchors with no visible text.
const NoAnchorText = "[No anchor text]"

// skippedPrefixes marks href values that never produce an HTTP request:
// fragments and non-HTTP schemes.
var skippedPrefixes = []string{"#", "javascript:", "mailto:", "tel:"}

// LinkRef is a single anchor reference extracted from a page.
type LinkRef struct {
	// ResolvedURL is the absolute URL of the link target, after resolving
	// the href against the page URL.
	ResolvedURL string

	// Href is the reference exactly as written in the markup, whitespace
	// trimmed. Preserved so reports can show what the page actually says.
	Href string

	// AnchorText is the trimmed visible text of the anchor. Never empty;
	// anchors without text carry [NoAnchorText].
	AnchorText string
}

// ExtractLinks parses HTML from body and returns every navigable anchor
// reference in document order, resolved against base.
//
// Anchors are skipped when the href is missing, empty or whitespace-only,
// or starts with one of: "#", "javascript:", "mailto:", "tel:". An href
// that does not parse as a URL is also skipped. Extraction is deterministic:
// identical markup yields an identical slice.
func ExtractLinks(body io.Reader, base *url.URL) ([]LinkRef, error) {
	doc, err := html.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var links []LinkRef
	for n := range doc.Descendants() {
		if n.Type != html.ElementNode || n.Data != "a" {
			continue
		}
		href, ok := hrefValue(n)
		if !ok {
			continue
		}
		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		links = append(links, LinkRef{
			ResolvedURL: base.ResolveReference(ref).String(),
			Href:        href,
			AnchorText:  anchorText(n),
		})
	}
	return links, nil
}

// hrefValue returns the trimmed href of an anchor element, and whether the
// anchor is navigable at all.
func hrefValue(n *html.Node) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key != "href" {
			continue
		}
		href := strings.TrimSpace(attr.Val)
		if href == "" {
			return "", false
		}
		for _, prefix := range skippedPrefixes {
			if strings.HasPrefix(href, prefix) {
				return "", false
			}
		}
		return href, true
	}
	return "", false
}

// anchorText collects the text content of an anchor's subtree, trimmed.
func anchorText(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			collect(child)
		}
	}
	collect(n)

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return NoAnchorText
	}
	return text
}
