package fetcher

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, rawURL string) *url.URL {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("url.Parse(%q) error = %v", rawURL, err)
	}
	return u
}

func TestExtractLinks(t *testing.T) {
	tests := []struct {
		name string
		base string
		html string
		want []LinkRef
	}{
		{
			name: "absolute link passes through",
			base: "https://example.com/page",
			html: `<a href="https://other.com/doc">Docs</a>`,
			want: []LinkRef{
				{ResolvedURL: "https://other.com/doc", Href: "https://other.com/doc", AnchorText: "Docs"},
			},
		},
		{
			name: "relative link resolves against page",
			base: "https://example.com/dir/page.html",
			html: `<a href="other.html">Other</a>`,
			want: []LinkRef{
				{ResolvedURL: "https://example.com/dir/other.html", Href: "other.html", AnchorText: "Other"},
			},
		},
		{
			name: "parent-relative link resolves",
			base: "https://example.com/dir/page.html",
			html: `<a href="../other.html">Up</a>`,
			want: []LinkRef{
				{ResolvedURL: "https://example.com/other.html", Href: "../other.html", AnchorText: "Up"},
			},
		},
		{
			name: "root-relative link resolves",
			base: "https://example.com/deep/nested/page",
			html: `<a href="/top">Top</a>`,
			want: []LinkRef{
				{ResolvedURL: "https://example.com/top", Href: "/top", AnchorText: "Top"},
			},
		},
		{
			name: "protocol-relative link inherits scheme",
			base: "https://example.com/page",
			html: `<a href="//cdn.example.com/asset">Asset</a>`,
			want: []LinkRef{
				{ResolvedURL: "https://cdn.example.com/asset", Href: "//cdn.example.com/asset", AnchorText: "Asset"},
			},
		},
		{
			name: "non-navigable hrefs are skipped",
			base: "https://example.com/",
			html: `
				<a href="#section">Fragment</a>
				<a href="javascript:void(0)">Script</a>
				<a href="mailto:team@example.com">Mail</a>
				<a href="tel:+15551234567">Phone</a>
				<a href="">Empty</a>
				<a href="   ">Whitespace</a>
				<a>No href</a>
				<a href="/real">Real</a>`,
			want: []LinkRef{
				{ResolvedURL: "https://example.com/real", Href: "/real", AnchorText: "Real"},
			},
		},
		{
			name: "whitespace around href is trimmed",
			base: "https://example.com/",
			html: `<a href="  /padded  ">Padded</a>`,
			want: []LinkRef{
				{ResolvedURL: "https://example.com/padded", Href: "/padded", AnchorText: "Padded"},
			},
		},
		{
			name: "anchor text from nested markup",
			base: "https://example.com/",
			html: `<a href="/x"><span>Click</span> <b>here</b></a>`,
			want: []LinkRef{
				{ResolvedURL: "https://example.com/x", Href: "/x", AnchorText: "Click here"},
			},
		},
		{
			name: "empty anchor text gets placeholder",
			base: "https://example.com/",
			html: `<a href="/img-only"><img src="pic.png"></a>`,
			want: []LinkRef{
				{ResolvedURL: "https://example.com/img-only", Href: "/img-only", AnchorText: NoAnchorText},
			},
		},
		{
			name: "document order preserved",
			base: "https://example.com/",
			html: `<a href="/first">1</a><p><a href="/second">2</a></p><a href="/third">3</a>`,
			want: []LinkRef{
				{ResolvedURL: "https://example.com/first", Href: "/first", AnchorText: "1"},
				{ResolvedURL: "https://example.com/second", Href: "/second", AnchorText: "2"},
				{ResolvedURL: "https://example.com/third", Href: "/third", AnchorText: "3"},
			},
		},
		{
			name: "duplicate hrefs kept",
			base: "https://example.com/",
			html: `<a href="/dup">Once</a><a href="/dup">Twice</a>`,
			want: []LinkRef{
				{ResolvedURL: "https://example.com/dup", Href: "/dup", AnchorText: "Once"},
				{ResolvedURL: "https://example.com/dup", Href: "/dup", AnchorText: "Twice"},
			},
		},
		{
			name: "no links",
			base: "https://example.com/",
			html: `<html><body><p>plain text</p></body></html>`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := mustParse(t, tt.base)
			got, err := ExtractLinks(strings.NewReader(tt.html), base)
			if err != nil {
				t.Fatalf("ExtractLinks() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractLinks() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestExtractLinks_Deterministic verifies that identical markup yields an
// identical result across runs.
func TestExtractLinks_Deterministic(t *testing.T) {
	const markup = `<a href="/a">A</a><a href="b.html">B</a><a href="#skip">C</a>`
	base := mustParse(t, "https://example.com/dir/")

	first, err := ExtractLinks(strings.NewReader(markup), base)
	if err != nil {
		t.Fatalf("ExtractLinks() error = %v", err)
	}
	second, err := ExtractLinks(strings.NewReader(markup), base)
	if err != nil {
		t.Fatalf("ExtractLinks() error = %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("two extractions of the same markup differ (-first +second):\n%s", diff)
	}
}

// html.Parse is forgiving: truncated or malformed markup still yields a
// document, so extraction should not error.
func TestExtractLinks_MalformedHTML(t *testing.T) {
	base := mustParse(t, "https://example.com/")
	got, err := ExtractLinks(strings.NewReader(`<html><body><a href="/x">unclosed`), base)
	if err != nil {
		t.Fatalf("ExtractLinks() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ExtractLinks() returned %d links, want 1", len(got))
	}
	if got[0].AnchorText != "unclosed" {
		t.Errorf("AnchorText = %q, want %q", got[0].AnchorText, "unclosed")
	}
}
