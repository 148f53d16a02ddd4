// Package report renders linkpatrol results for humans and machines.
//
// It provides the presentation-layer helpers used by the linkpatrol CLI:
// per-type summary counts, filtering, CSV and JSON export, and terminal
// table rendering. All writers operate on an io.Writer, so output can go
// to stdout, a file, or a buffer in tests.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rodaine/table"

	"github.com/jpalmerr/linkpatrol"
)

// Row is the flat serialization of a [linkpatrol.LinkIssue] used for CSV
// and JSON export. Status codes of 0 render as "N/A".
type Row struct {
	SourcePage     string `csv:"Source Page" json:"source_page"`
	LinkURL        string `csv:"Link URL" json:"link_url"`
	AnchorText     string `csv:"Anchor Text" json:"anchor_text"`
	IssueType      string `csv:"Issue Type" json:"issue_type"`
	StatusCode     string `csv:"Status Code" json:"status_code"`
	RedirectTarget string `csv:"Redirect To" json:"redirect_to,omitempty"`
	Error          string `csv:"Error" json:"error,omitempty"`
}

// Rows converts issues to their flat export form, preserving order.
func Rows(issues []linkpatrol.LinkIssue) []Row {
	rows := make([]Row, len(issues))
	for i, issue := range issues {
		statusCode := "N/A"
		if issue.StatusCode != 0 {
			statusCode = strconv.Itoa(issue.StatusCode)
		}
		rows[i] = Row{
			SourcePage:     issue.SourcePage,
			LinkURL:        issue.LinkURL,
			AnchorText:     issue.AnchorText,
			IssueType:      issue.Type.String(),
			StatusCode:     statusCode,
			RedirectTarget: issue.RedirectTarget,
			Error:          issue.ErrorMessage,
		}
	}
	return rows
}

// WriteCSV writes issues to w as CSV with a header row.
func WriteCSV(w io.Writer, issues []linkpatrol.LinkIssue) error {
	rows := Rows(issues)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteJSON writes issues to w as an indented JSON array.
//
// URLs are written verbatim: HTML escaping is disabled so "&" in query
// strings survives a round trip.
func WriteJSON(w io.Writer, issues []linkpatrol.LinkIssue) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Rows(issues)); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteTable renders issues to w as an aligned terminal table.
// Issue types are uppercased for scanability.
func WriteTable(w io.Writer, issues []linkpatrol.LinkIssue) {
	tbl := table.New("Source Page", "Link URL", "Anchor Text", "Type", "Status", "Redirect To", "Error")
	tbl = tbl.WithWriter(w)
	for _, row := range Rows(issues) {
		tbl.AddRow(row.SourcePage, row.LinkURL, row.AnchorText,
			strings.ToUpper(row.IssueType), row.StatusCode, row.RedirectTarget, row.Error)
	}
	tbl.Print()
}

// Summary holds aggregate counts over a run's issues.
type Summary struct {
	// Total is the number of issues across all pages.
	Total int

	// Broken, Redirects, and Errors count issues by type.
	Broken    int
	Redirects int
	Errors    int

	// Pages is the number of distinct pages that produced at least one issue.
	Pages int
}

// Summarize computes aggregate counts from a run's issues.
func Summarize(issues []linkpatrol.LinkIssue) Summary {
	s := Summary{Total: len(issues)}
	pages := make(map[string]struct{})
	for _, issue := range issues {
		pages[issue.SourcePage] = struct{}{}
		switch issue.Type {
		case linkpatrol.IssueBroken:
			s.Broken++
		case linkpatrol.IssueRedirect:
			s.Redirects++
		case linkpatrol.IssueError:
			s.Errors++
		}
	}
	s.Pages = len(pages)
	return s
}

// String renders the summary as a single human-readable line.
func (s Summary) String() string {
	return fmt.Sprintf("%d issues on %d pages (%d broken, %d redirects, %d errors)",
		s.Total, s.Pages, s.Broken, s.Redirects, s.Errors)
}

// FilterByType returns the issues of a single type, preserving order.
// The input slice is not modified.
func FilterByType(issues []linkpatrol.LinkIssue, t linkpatrol.IssueType) []linkpatrol.LinkIssue {
	var filtered []linkpatrol.LinkIssue
	for _, issue := range issues {
		if issue.Type == t {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}
