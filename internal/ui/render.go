package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/topicradar/internal/model"
)

const defaultWidth = 100

// RenderTopics renders a full research response for non-interactive output.
func RenderTopics(resp *model.ResearchResponse, width int) string {
	if resp == nil {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}

	var b strings.Builder
	b.WriteString(renderHeader(resp, width))
	b.WriteString("\n")

	if len(resp.Topics) == 0 {
		b.WriteString(HelpStyle.Render("No topics found. Every source may have failed; check the source report below."))
		b.WriteString("\n")
	}

	for i, t := range resp.Topics {
		b.WriteString(renderTopicLine(i, t, false, width))
		b.WriteString("\n")
		b.WriteString(Muted.Render(indent(truncate(t.WhyItMatters, width-6), 6)))
		b.WriteString("\n")
	}

	if len(resp.Meta.Sources) > 0 {
		b.WriteString("\n")
		b.WriteString(RenderSourceReports(resp.Meta.Sources))
	}
	return b.String()
}

func renderHeader(resp *model.ResearchResponse, width int) string {
	title := Header.Render("Topic Radar")
	info := Muted.Render(fmt.Sprintf("%s · %s · %d topics from %d items in %dms",
		resp.GeneratedAt,
		strings.Join(model.RegionStrings(resp.Regions), ", "),
		resp.Meta.UniqueTopics,
		resp.Meta.TotalRawItems,
		resp.Meta.GenerationMs,
	))
	return lipgloss.NewStyle().MaxWidth(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, title, info))
}

// RenderList renders the topic list, scrolled so cursor stays visible.
func RenderList(topics []model.Topic, cursor, width, height int) string {
	if len(topics) == 0 {
		return HelpStyle.Render("No topics to display. Press 'r' to refresh.")
	}
	if height < 1 {
		height = 1
	}

	offset := 0
	if cursor >= height {
		offset = cursor - height + 1
	}

	var b strings.Builder
	for i := offset; i < len(topics) && i < offset+height; i++ {
		b.WriteString(renderTopicLine(i, topics[i], i == cursor, width))
		b.WriteString("\n")
	}
	return b.String()
}

func renderTopicLine(i int, t model.Topic, selected bool, width int) string {
	rank := fmt.Sprintf("%2d.", i+1)
	growth := GrowthStyle(t.PotentialGrowth).Render(string(t.PotentialGrowth))
	category := CategoryBadge.Render(string(t.Category))
	score := fmt.Sprintf("%5.2f", t.Score)

	prefixWidth := lipgloss.Width(rank) + lipgloss.Width(growth) + lipgloss.Width(category) + len(score) + 6
	title := truncate(t.Topic, width-prefixWidth)

	if selected {
		return SelectedItem.Render(fmt.Sprintf("%s %s %s", rank, score, title)) + " " + growth + " " + category
	}
	return NormalItem.Render(fmt.Sprintf("%s %s %s", rank, Muted.Render(score), title)) + " " + growth + " " + category
}

// RenderDetail renders every enrichment field of t.
func RenderDetail(t model.Topic, width int) string {
	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	var b strings.Builder
	field := func(name, value string) {
		b.WriteString(Label.Render(name))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(inner).Render(value))
		b.WriteString("\n")
	}

	field("Topic", t.Topic)
	field("Why it matters", t.WhyItMatters)
	field("Content angle", t.ContentAngle)
	field("Suggested title", t.SuggestedTitle)
	field("Thumbnail hooks", strings.Join(t.ThumbnailHooks, " | "))
	field("SEO keywords", strings.Join(t.SEOKeywords, ", "))

	b.WriteString(Label.Render(fmt.Sprintf("Sources (%d)", len(t.Sources))))
	for _, s := range t.Sources {
		b.WriteString("\n")
		b.WriteString(truncate(fmt.Sprintf("[%s] %s", s.Source, s.URL), inner))
	}

	return DetailPane.Width(width - 2).Render(b.String())
}

// RenderSourceReports renders one line per adapter outcome.
func RenderSourceReports(reports []model.SourceReport) string {
	var b strings.Builder
	b.WriteString(Label.Render("Sources"))
	for _, r := range reports {
		b.WriteString("\n")
		line := fmt.Sprintf("  %-16s %4d items %6dms", r.Name, r.Items, r.DurationMs)
		if r.Error != "" {
			b.WriteString(ErrorStyle.Render(line + "  " + r.Error))
			continue
		}
		b.WriteString(Muted.Render(line))
	}
	b.WriteString("\n")
	return b.String()
}

// RenderStatusBar renders the bottom bar with position and key hints.
func RenderStatusBar(cursor, total, width int, loading bool) string {
	position := "0/0"
	if total > 0 {
		position = fmt.Sprintf("%d/%d", cursor+1, total)
	}

	hints := []string{
		StatusBarKey.Render("j/k") + StatusBarText.Render(" move"),
		StatusBarKey.Render("enter") + StatusBarText.Render(" detail"),
		StatusBarKey.Render("r") + StatusBarText.Render(" refresh"),
		StatusBarKey.Render("q") + StatusBarText.Render(" quit"),
	}
	left := position
	if loading {
		left += " · researching"
	}

	content := left + "  " + strings.Join(hints, "  ")
	if width > 0 {
		return StatusBar.Width(width).Render(content)
	}
	return StatusBar.Render(content)
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}

func indent(s string, n int) string {
	return strings.Repeat(" ", n) + s
}
