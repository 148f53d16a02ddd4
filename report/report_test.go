package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jpalmerr/linkpatrol"
)

func sampleIssues() []linkpatrol.LinkIssue {
	return []linkpatrol.LinkIssue{
		{
			SourcePage: "https://example.com/",
			LinkURL:    "/missing",
			AnchorText: "Dead link",
			StatusCode: 404,
			Type:       linkpatrol.IssueBroken,
		},
		{
			SourcePage:     "https://example.com/",
			LinkURL:        "/moved",
			AnchorText:     "Old docs",
			StatusCode:     301,
			Type:           linkpatrol.IssueRedirect,
			RedirectTarget: "https://example.com/new",
		},
		{
			SourcePage:   "https://example.com/about",
			LinkURL:      "https://gone.example.com/",
			AnchorText:   "[No anchor text]",
			StatusCode:   0,
			Type:         linkpatrol.IssueError,
			ErrorMessage: "Connection Error",
		},
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(sampleIssues())
	want := Summary{Total: 3, Broken: 1, Redirects: 1, Errors: 1, Pages: 2}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)
	if got.Total != 0 || got.Pages != 0 {
		t.Errorf("Summarize(nil) = %+v, want zero counts", got)
	}
}

func TestSummary_String(t *testing.T) {
	s := Summary{Total: 3, Broken: 1, Redirects: 1, Errors: 1, Pages: 2}
	got := s.String()
	if !strings.Contains(got, "3 issues on 2 pages") {
		t.Errorf("String() = %q, want total and page counts", got)
	}
}

func TestFilterByType(t *testing.T) {
	issues := sampleIssues()

	broken := FilterByType(issues, linkpatrol.IssueBroken)
	if len(broken) != 1 || broken[0].LinkURL != "/missing" {
		t.Errorf("FilterByType(broken) = %+v, want just the 404", broken)
	}

	if got := FilterByType(issues, linkpatrol.IssueRedirect); len(got) != 1 {
		t.Errorf("FilterByType(redirect) returned %d issues, want 1", len(got))
	}

	if got := FilterByType(nil, linkpatrol.IssueBroken); got != nil {
		t.Errorf("FilterByType(nil) = %+v, want nil", got)
	}

	// input must not be mutated
	if len(issues) != 3 {
		t.Errorf("input slice length changed to %d", len(issues))
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleIssues()); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("CSV has %d lines, want header + 3 rows:\n%s", len(lines), out)
	}

	header := lines[0]
	for _, col := range []string{"Source Page", "Link URL", "Anchor Text", "Issue Type", "Status Code", "Redirect To", "Error"} {
		if !strings.Contains(header, col) {
			t.Errorf("CSV header missing column %q: %s", col, header)
		}
	}

	if !strings.Contains(out, "N/A") {
		t.Error("CSV should render a zero status code as N/A")
	}
	if !strings.Contains(out, "/missing") {
		t.Error("CSV should contain the original href")
	}
}

func TestWriteJSON(t *testing.T) {
	issues := sampleIssues()

	var buf bytes.Buffer
	if err := WriteJSON(&buf, issues); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var decoded []Row
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if diff := cmp.Diff(Rows(issues), decoded); diff != "" {
		t.Errorf("JSON round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteJSON_NoHTMLEscaping(t *testing.T) {
	issues := []linkpatrol.LinkIssue{{
		SourcePage: "https://example.com/?a=1&b=2",
		LinkURL:    "/x",
		AnchorText: "X",
		StatusCode: 404,
		Type:       linkpatrol.IssueBroken,
	}}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, issues); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	if strings.Contains(buf.String(), `\u0026`) {
		t.Error("JSON output should not HTML-escape ampersands")
	}
	if !strings.Contains(buf.String(), "a=1&b=2") {
		t.Errorf("JSON output should contain the URL verbatim:\n%s", buf.String())
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(&buf, sampleIssues())

	out := buf.String()
	if !strings.Contains(out, "BROKEN") {
		t.Errorf("table should uppercase issue types:\n%s", out)
	}
	if !strings.Contains(out, "/missing") {
		t.Errorf("table should contain the original href:\n%s", out)
	}
}

func TestRows_StatusCodeFormatting(t *testing.T) {
	rows := Rows(sampleIssues())

	if rows[0].StatusCode != "404" {
		t.Errorf("rows[0].StatusCode = %q, want \"404\"", rows[0].StatusCode)
	}
	if rows[2].StatusCode != "N/A" {
		t.Errorf("rows[2].StatusCode = %q, want \"N/A\"", rows[2].StatusCode)
	}
}
