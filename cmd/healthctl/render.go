package main

import (
	"fmt"
	"strings"

	"pet-health/internal/domain/healthscore"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleName = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	styleDim  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleTone = map[healthscore.Tone]lipgloss.Style{
		healthscore.ToneSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		healthscore.ToneInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		healthscore.ToneWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		healthscore.ToneDanger:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
	stylePriority = map[healthscore.Priority]lipgloss.Style{
		healthscore.PriorityHigh:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		healthscore.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
)

func renderLabel(score int, l healthscore.Label) string {
	text := fmt.Sprintf("%d [%s]", score, l.Text)
	if s, ok := styleTone[l.Tone]; ok {
		return s.Render(text)
	}
	return text
}

func renderPriority(p healthscore.Priority) string {
	text := "[" + string(p) + "]"
	if s, ok := stylePriority[p]; ok {
		return s.Render(text)
	}
	return text
}

func displayName(r result) string {
	if n := strings.TrimSpace(r.PetName); n != "" {
		return n
	}
	return r.PetID
}

func renderResult(r result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n", styleName.Render(displayName(r)), renderLabel(r.Score, r.Label), styleDim.Render(r.Path))

	for _, c := range r.Components {
		fmt.Fprintf(&b, "  %-15s %3d  %s\n", c.Component, c.Score, styleDim.Render(fmt.Sprintf("x%d%%", c.Weight)))
	}

	if r.StatusMismatch {
		b.WriteString(styleWarn.Render(fmt.Sprintf("  status %q, suggested %q", r.StoredStatus, r.SuggestedStatus)))
	} else {
		b.WriteString(styleDim.Render(fmt.Sprintf("  status %q", r.SuggestedStatus)))
	}
	b.WriteString("\n")

	for _, g := range r.Gaps {
		fmt.Fprintf(&b, "  %s %s\n", renderPriority(g.Priority), g.Title)
	}
	return b.String()
}

func renderGaps(r result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", styleName.Render(displayName(r)), styleDim.Render(r.Path))
	if len(r.Gaps) == 0 {
		b.WriteString(styleOK.Render("  no gaps"))
		b.WriteString("\n")
		return b.String()
	}
	for _, g := range r.Gaps {
		fmt.Fprintf(&b, "  %s %s %s\n", renderPriority(g.Priority), g.Title, styleDim.Render(g.Key))
		fmt.Fprintf(&b, "      %s -> %s\n", g.ActionLabel, g.ActionPath)
	}
	return b.String()
}
