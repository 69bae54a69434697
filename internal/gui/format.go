package gui

import (
	"fmt"
	"strings"

	"codeberg.org/snonux/slangify/internal/dialect"
	"codeberg.org/snonux/slangify/internal/surface"
)

func scoreText(score int) string {
	return fmt.Sprintf("%d%%", score)
}

func intensityText(i dialect.Intensity) string {
	return "Slang intensity: " + i.Label()
}

// analysisText renders the dialect detection badge.
func analysisText(snap surface.Snapshot) string {
	switch snap.Detect {
	case surface.Pending:
		return "Detecting dialect..."
	case surface.Succeeded:
		if snap.Analysis == nil {
			return ""
		}
		if snap.Analysis.IsStandard {
			return fmt.Sprintf("Standard Malayalam (%d%% confidence)", snap.Analysis.Confidence)
		}
		return fmt.Sprintf("Looks like %s dialect (%d%% confidence)", snap.Analysis.Dialect, snap.Analysis.Confidence)
	default:
		return ""
	}
}

// detectedDistrict returns the district to highlight, if any.
func detectedDistrict(snap surface.Snapshot) dialect.District {
	if snap.Highlighted != "" {
		return snap.Highlighted
	}
	if snap.Analysis != nil && !snap.Analysis.IsStandard && snap.Analysis.Dialect.IsDistrict() {
		return snap.Analysis.Dialect
	}
	return ""
}

func statusText(snap surface.Snapshot) string {
	switch {
	case snap.Translate == surface.Pending:
		return "Converting into 14 dialects..."
	case snap.Speech == surface.Pending:
		return "Generating audio..."
	case snap.Translate == surface.Succeeded:
		return fmt.Sprintf("%d dialects ready", len(snap.Results))
	case snap.Translate == surface.Failed:
		return "Translation failed"
	default:
		return "Ready"
	}
}

func dialogTitle(d surface.Dialog) string {
	switch d.Kind {
	case surface.DialogReverse:
		return "Standard Malayalam (" + d.District.String() + ")"
	case surface.DialogInsight:
		return "Cultural Insights: " + d.District.String()
	default:
		return ""
	}
}

// dialogMarkdown renders the body of the shared dialog.
func dialogMarkdown(d surface.Dialog) string {
	if d.Loading {
		return "_Loading..._"
	}
	switch {
	case d.Kind == surface.DialogReverse && d.Reverse != nil:
		return d.Reverse.StandardSentence
	case d.Kind == surface.DialogInsight && d.Insight != nil:
		var b strings.Builder
		b.WriteString(d.Insight.Insight)
		b.WriteString("\n\n## Popular phrases\n\n")
		for _, p := range d.Insight.PopularPhrases {
			b.WriteString("- ")
			b.WriteString(p)
			b.WriteString("\n")
		}
		return b.String()
	default:
		return ""
	}
}

// sameDialog reports whether two dialog states render identically.
func sameDialog(a, b surface.Dialog) bool {
	return a.Kind == b.Kind && a.District == b.District && a.Loading == b.Loading &&
		a.Reverse == b.Reverse && a.Insight == b.Insight
}
