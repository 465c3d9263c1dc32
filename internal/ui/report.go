package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/wahlandcase/release-inquisitor/internal/reconcile"
)

// Section titles, in print order
const (
	TitleCommitted = "Issues committed in this release"
	TitleUnmarked  = "Issues without an issue reference"
	TitleNotInJira = "Issues in Git that are not in Jira"
	TitleNotInGit  = "Issues in Jira not found in Git"
)

const (
	knownMarker   = "--"
	unknownMarker = "**"
	sectionPrefix = "++ "
)

// DefaultExemptTags are the keys never listed as missing from the tracker
var DefaultExemptTags = []string{"maint", "doc", "packaging", "unmarked"}

// RenderOptions controls report output
type RenderOptions struct {
	// NoColor forces plain text even on a colour terminal
	NoColor bool
	// ExemptTags are left out of the "not in Jira" section
	ExemptTags []string
}

// Renderer writes reconciliation reports to a terminal or plain writer
type Renderer struct {
	w      io.Writer
	lg     *lipgloss.Renderer
	exempt []string
}

// NewRenderer creates a Renderer bound to w. Colour support is detected
// from w unless opts.NoColor is set.
func NewRenderer(w io.Writer, opts RenderOptions) *Renderer {
	lg := lipgloss.NewRenderer(w)
	if opts.NoColor {
		lg.SetColorProfile(termenv.Ascii)
	}

	exempt := opts.ExemptTags
	if exempt == nil {
		exempt = DefaultExemptTags
	}

	return &Renderer{w: w, lg: lg, exempt: exempt}
}

// style resolves a tone to a lipgloss style for this renderer's output
func (r *Renderer) style(t Tone) lipgloss.Style {
	s := r.lg.NewStyle()
	if color, ok := ToneColor(t); ok {
		s = s.Foreground(color)
	}
	return s
}

// Render writes the four report sections in fixed order
func (r *Renderer) Render(res reconcile.Result) error {
	var b strings.Builder

	r.header(&b, TitleCommitted)
	for _, g := range res.Committed {
		marker, tone := knownMarker, Success
		if !g.Known {
			marker, tone = unknownMarker, Warning
		}
		b.WriteString(r.style(tone).Render(fmt.Sprintf("  %s %s", marker, strings.ToUpper(g.Key))))
		b.WriteString("\n")
		for _, c := range g.Commits {
			fmt.Fprintf(&b, "    %s  %s\n", c.SHA, c.Message)
		}
	}

	b.WriteString("\n")
	r.header(&b, TitleUnmarked)
	for _, c := range res.UnmarkedCommits {
		fmt.Fprintf(&b, "    %s: %s\n", c.SHA, c.Message)
	}

	b.WriteString("\n")
	r.header(&b, TitleNotInJira)
	for _, g := range res.Unknown(r.exempt) {
		fmt.Fprintf(&b, "    %s\n", g.Key)
		for _, c := range g.Commits {
			fmt.Fprintf(&b, "      %s: %s\n", c.SHA, c.Message)
		}
	}

	b.WriteString("\n")
	r.header(&b, TitleNotInGit)
	for _, t := range res.KnownButUncommitted {
		resolution := t.ResolutionName()
		if t.Resolution == "" {
			resolution = r.style(Info).Render(resolution)
		}
		fmt.Fprintf(&b, "    %s: (%s) %s\n", t.Key, resolution, t.Summary)
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Renderer) header(b *strings.Builder, title string) {
	b.WriteString(r.style(Neutral).Render(sectionPrefix + title))
	b.WriteString("\n")
}
