package tui

import (
	"fmt"
	"strings"

	"reliableteam-site/internal/site"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent       = lipgloss.Color("#059669")
	muted        = lipgloss.Color("#888888")
	errorColor   = lipgloss.Color("#FF6B6B")
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
)

// renderedPage is the landing page laid out for one terminal width, with the
// first line of every section recorded as its anchor.
type renderedPage struct {
	body    string
	anchors map[string]int
}

type pageWriter struct {
	width   int
	lines   []string
	anchors map[string]int
}

func (w *pageWriter) section(id string) {
	if len(w.lines) > 0 {
		w.lines = append(w.lines, "")
	}
	w.anchors[id] = len(w.lines)
}

func (w *pageWriter) add(s string) {
	w.lines = append(w.lines, strings.Split(s, "\n")...)
}

func (w *pageWriter) text(style lipgloss.Style, s string) {
	w.add(style.Width(w.width).Render(s))
}

func (w *pageWriter) bullets(items []string) {
	for _, item := range items {
		w.text(lipgloss.NewStyle().PaddingLeft(2), "• "+item)
	}
}

func renderPage(c *site.Content, width int) renderedPage {
	if width < 20 {
		width = 20
	}
	w := &pageWriter{width: width, anchors: map[string]int{}}

	w.section(site.SectionHero)
	w.text(titleStyle, c.Hero.Headline+" "+c.Hero.Subheadline)
	w.text(lipgloss.NewStyle(), c.Hero.Body)
	w.text(mutedStyle, strings.Join(c.Hero.Stats, "  ·  "))

	w.section(site.SectionProblem)
	w.text(headingStyle, c.Problem.Title)
	w.text(mutedStyle, c.Problem.Quote)
	for _, p := range c.Problem.Points {
		w.text(headingStyle, p.Title)
		w.text(lipgloss.NewStyle(), p.Body)
	}

	w.section(site.SectionServices)
	w.text(headingStyle, c.Services.Title)
	w.text(mutedStyle, c.Services.Subtitle)
	for _, pod := range c.Services.Pods {
		w.text(titleStyle, fmt.Sprintf("%s %s · %s", pod.Icon, pod.Name, pod.Size))
		w.bullets(pod.Roles)
		w.text(lipgloss.NewStyle(), "Goal: "+pod.Goal)
	}

	w.section(site.SectionProcess)
	w.text(headingStyle, c.Process.Title)
	for _, step := range c.Process.Steps {
		w.text(lipgloss.NewStyle(), fmt.Sprintf("%-8s %s: %s", step.Day, step.Title, step.Detail))
	}
	w.text(titleStyle, c.Process.GuaranteesTitle)
	w.bullets(c.Process.Guarantees)

	w.section(site.SectionTalent)
	w.text(headingStyle, c.Talent.Title)
	for _, cluster := range c.Talent.Clusters {
		w.text(titleStyle, cluster.Name)
		w.bullets(cluster.Roles)
	}
	w.text(mutedStyle, c.Talent.Note)
	w.text(headingStyle, c.Comparison.Title)
	w.add(renderComparison(c.Comparison))
	w.text(mutedStyle, c.Comparison.Footnote)

	w.section(site.SectionTeam)
	w.text(headingStyle, c.Team.Title)
	for _, m := range c.Team.Members {
		w.text(titleStyle, m.Name+" · "+m.Role)
		w.text(lipgloss.NewStyle(), m.Background)
		w.text(mutedStyle, "Focus: "+m.Focus)
	}

	w.section(site.SectionContact)
	w.text(headingStyle, c.Contact.Title)
	w.text(mutedStyle, c.Contact.Subtitle)
	for _, s := range c.Contact.Stats {
		w.text(lipgloss.NewStyle(), s.Value+"  "+s.Label)
	}
	w.text(titleStyle, c.Contact.OfferTitle)
	w.text(lipgloss.NewStyle(), c.Contact.Offer)
	w.text(mutedStyle, fmt.Sprintf("%s · %s · %s", c.Contact.Email, c.Contact.Website, c.Contact.ResponseTime))

	return renderedPage{body: strings.Join(w.lines, "\n"), anchors: w.anchors}
}

func renderComparison(cmp site.Comparison) string {
	widths := make([]int, len(cmp.Columns)+1)
	widths[0] = len("Feature")
	for i, col := range cmp.Columns {
		widths[i+1] = lipgloss.Width(col)
	}
	for _, row := range cmp.Rows {
		if n := lipgloss.Width(row.Feature); n > widths[0] {
			widths[0] = n
		}
		for i, v := range row.Values {
			if n := lipgloss.Width(v); n > widths[i+1] {
				widths[i+1] = n
			}
		}
	}

	cell := func(i int, s string) string {
		return lipgloss.NewStyle().Width(widths[i] + 2).Render(s)
	}
	var b strings.Builder
	header := []string{cell(0, "Feature")}
	for i, col := range cmp.Columns {
		header = append(header, cell(i+1, col))
	}
	b.WriteString(headingStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, header...)))
	for _, row := range cmp.Rows {
		cells := []string{cell(0, row.Feature)}
		for i, v := range row.Values {
			cells = append(cells, cell(i+1, v))
		}
		b.WriteString("\n" + lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return b.String()
}
