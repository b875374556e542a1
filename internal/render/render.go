// Package render produces output from a fully assembled schema.Report.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dshills/porutham/internal/schema"
)

// RenderJSON produces a pretty-printed JSON representation of the report.
// The output round-trips through json.Unmarshal back to an equal Report.
func RenderJSON(report *schema.Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("render: nil report")
	}
	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render: json marshal: %w", err)
	}
	return b, nil
}

// RenderMarkdown produces a GitHub-flavoured Markdown summary of the report.
// Every porutham in the report appears in the status table.
func RenderMarkdown(report *schema.Report) string {
	if report == nil {
		return ""
	}
	m := report.Match
	var sb strings.Builder

	fmt.Fprintf(&sb, "## Porutham Report: %s & %s\n\n", mdEscape(nameOr(m.Girl, "Girl")), mdEscape(nameOr(m.Boy, "Boy")))
	fmt.Fprintf(&sb, "**Verdict:** %s  \n", m.Verdict)
	fmt.Fprintf(&sb, "**Score:** %.1f/10  \n", m.Score)
	fmt.Fprintf(&sb, "**Breakdown:** poruthams %.2f + papasamya %.1f + manglik %.1f = %.2f",
		m.Breakdown.Porutham, m.Breakdown.Papasamya, m.Breakdown.Manglik, m.Breakdown.Base)
	for _, c := range m.Breakdown.Caps {
		fmt.Fprintf(&sb, ", capped at %.1f (%s)", c.Limit, c.Name)
	}
	sb.WriteString("\n\n")
	if len(m.Flags) > 0 {
		fmt.Fprintf(&sb, "**Flags:** %s\n\n", strings.Join(m.Flags, ", "))
	}

	sb.WriteString("## Poruthams\n\n")
	sb.WriteString("| Porutham | Status | Summary |\n")
	sb.WriteString("|---|---|---|\n")
	for _, c := range m.Poruthams {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", c.Rule, c.Status, mdEscape(c.Summary))
	}
	sb.WriteString("\n")

	sb.WriteString("## Pair Factors\n\n")
	p := m.Papasamya
	fmt.Fprintf(&sb, "**Papasamya:** girl %d, boy %d, difference %d (%s). %s\n\n",
		p.GirlTotal, p.BoyTotal, p.Difference, p.Tier, p.Verdict)
	fmt.Fprintf(&sb, "**Manglik:** girl %s, boy %s. %s\n\n",
		yesNo(m.Manglik.GirlManglik), yesNo(m.Manglik.BoyManglik), m.Manglik.Verdict)

	sb.WriteString("## Individual Outlook\n\n")
	writeOutlookTable(&sb, []schema.IndividualAnalysis{report.Girl, report.Boy})
	sb.WriteString("\n")

	sb.WriteString("## Summary\n\n")
	for _, line := range strings.Split(m.Narrative, "\n") {
		if line == "" {
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(line + "  \n")
	}
	return sb.String()
}

// RenderAnalysisJSON produces pretty-printed JSON for standalone individual
// analyses.
func RenderAnalysisJSON(analyses []schema.IndividualAnalysis) ([]byte, error) {
	if analyses == nil {
		analyses = []schema.IndividualAnalysis{}
	}
	b, err := json.MarshalIndent(analyses, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render: json marshal: %w", err)
	}
	return b, nil
}

// RenderAnalysisMarkdown renders the outlook table followed by each
// person's scoring trace.
func RenderAnalysisMarkdown(analyses []schema.IndividualAnalysis) string {
	var sb strings.Builder
	sb.WriteString("## Individual Outlook\n\n")
	writeOutlookTable(&sb, analyses)
	for _, a := range analyses {
		fmt.Fprintf(&sb, "\n### %s\n", mdEscape(nameOr(a.Name, "Unknown")))
		for _, d := range []schema.DomainScore{a.Career, a.Wealth, a.Life} {
			fmt.Fprintf(&sb, "\n**%s:** %.1f, %s\n\n", d.Domain, d.Score, d.Label)
			for _, line := range strings.Split(d.Trace, "\n") {
				if line != "" {
					fmt.Fprintf(&sb, "- %s\n", line)
				}
			}
		}
	}
	return sb.String()
}

func writeOutlookTable(sb *strings.Builder, analyses []schema.IndividualAnalysis) {
	sb.WriteString("| Person | Dasha | Career | Wealth | Life |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, a := range analyses {
		fmt.Fprintf(sb, "| %s | %s | %s | %s | %s |\n",
			mdEscape(nameOr(a.Name, "-")), nameOr(a.DashaLord, "-"),
			domainCell(a.Career), domainCell(a.Wealth), domainCell(a.Life))
	}
}

func domainCell(d schema.DomainScore) string {
	return fmt.Sprintf("%.1f %s", d.Score, mdEscape(d.Label))
}

func nameOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// mdEscape replaces characters that would break Markdown table cells.
func mdEscape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}
