package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/galley/internal/core/domain"
)

// styles holds the text styles for human-readable output. Styles render
// plain text when the writer is not a colour terminal.
type styles struct {
	heading lipgloss.Style
	word    lipgloss.Style
	sense   lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		word:    r.NewStyle().Foreground(lipgloss.Color("#06B6D4")),
		sense:   r.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#6C7086")),
	}
}

func renderRun(w io.Writer, run *domain.Run) {
	st := newStyles(w)
	res := &run.Result

	fmt.Fprintln(w, st.heading.Render("Senses:"))
	width := 0
	for _, ws := range res.Senses {
		width = max(width, len(ws.Word))
	}
	for _, ws := range res.Senses {
		fmt.Fprintf(w, "  %s  %s  %s\n",
			st.word.Render(pad(ws.Word, width)),
			st.sense.Render(ws.Sense.String()),
			st.muted.Render(fmt.Sprintf("(score %.2f, %dx)", ws.Score, ws.Occurrences)))
	}
	fmt.Fprintln(w)

	if len(res.Chains) == 0 {
		fmt.Fprintln(w, "No chains found.")
	} else {
		fmt.Fprintln(w, st.heading.Render("Chains:"))
		for i, chain := range res.Chains {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, st.word.Render(strings.Join(chain.Words, ", ")))
		}
	}
	if len(res.Isolated) > 0 {
		fmt.Fprintf(w, "%s %s\n", st.heading.Render("Isolated:"), strings.Join(res.Isolated, ", "))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, st.muted.Render(fmt.Sprintf(
		"Coverage: %d/%d words, %d edges (%d pruned, %d trimmed)",
		res.Stats.Visited, res.Stats.Vertices, res.Stats.Edges, res.Stats.PrunedEdges, res.Stats.TrimmedEdges)))
	fmt.Fprintln(w, st.muted.Render("Run: "+run.ID))
}

func renderSenses(w io.Writer, word string, senses []domain.Sense) {
	st := newStyles(w)
	if len(senses) == 0 {
		fmt.Fprintf(w, "No senses found for %q.\n", word)
		return
	}
	fmt.Fprintln(w, st.heading.Render(fmt.Sprintf("Senses of %q:", word)))
	for i, s := range senses {
		fmt.Fprintf(w, "  [%d] %s %s\n", i+1, st.sense.Render(s.ID.String()), st.muted.Render(fmt.Sprintf("(offset %d)", s.Offset)))
		if s.Gloss != "" {
			fmt.Fprintf(w, "      %s\n", s.Gloss)
		}
		if parents := joinIDs(s.Hypernyms, s.InstanceHypernyms); parents != "" {
			fmt.Fprintf(w, "      parents: %s\n", parents)
		}
	}
}

func joinIDs(groups ...[]domain.SenseID) string {
	var parts []string
	for _, ids := range groups {
		for _, id := range ids {
			parts = append(parts, id.String())
		}
	}
	return strings.Join(parts, ", ")
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
