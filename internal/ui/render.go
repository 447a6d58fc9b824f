package ui

import (
	"fmt"
	"strings"

	"ib/internal/github"
)

// Phase constants (matching app.Phase)
const (
	PhaseChecking = iota
	PhaseLoading
	PhaseSelecting
	PhaseConfirming
	PhaseCreating
	PhaseDone
	PhaseError
)

// VisibleIssueCount is the issue list window size.
const VisibleIssueCount = 8

// VisibleBranchCount is the base-branch list window size.
const VisibleBranchCount = 5

// RenderParams contains all parameters needed for rendering.
type RenderParams struct {
	Phase        int
	SpinnerFrame string

	// Selecting
	QueryInput string
	Results    []github.Issue
	Cursor     int
	FromCache  bool

	// Confirming
	Issue       github.Issue
	BranchInput string
	BaseInput   string
	FocusBase   bool
	Branches    []string
	BaseCursor  int

	// Creating
	BranchName string
}

// Render renders the screen for the active phase. Done and Error render
// nothing: the final message is printed outside the program so it
// survives the last repaint.
func Render(p RenderParams) string {
	switch p.Phase {
	case PhaseChecking:
		return p.SpinnerFrame + " Checking prerequisites..."
	case PhaseLoading:
		return p.SpinnerFrame + " Fetching issues..."
	case PhaseSelecting:
		return renderSelecting(p)
	case PhaseConfirming:
		return renderConfirming(p)
	case PhaseCreating:
		return p.SpinnerFrame + " Creating branch: " + p.BranchName
	case PhaseDone, PhaseError:
		return ""
	}
	return ""
}

// renderSelecting renders the fuzzy issue selector.
func renderSelecting(p RenderParams) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Search:") + " " + p.QueryInput + "\n\n")

	if len(p.Results) == 0 {
		b.WriteString(LabelStyle.Render("No matching issues.") + "\n")
	} else {
		start, end := Window(len(p.Results), p.Cursor, VisibleIssueCount)

		if start > 0 {
			b.WriteString(LabelStyle.Render(fmt.Sprintf("  ↑ %d more", start)) + "\n")
		}

		for i := start; i < end; i++ {
			b.WriteString(renderIssueEntry(p.Results[i], i == p.Cursor) + "\n")
		}

		if end < len(p.Results) {
			b.WriteString(LabelStyle.Render(fmt.Sprintf("  ↓ %d more", len(p.Results)-end)) + "\n")
		}
	}

	footer := fmt.Sprintf("%d issues · ↑↓ select · enter confirm · esc cancel", len(p.Results))
	if p.FromCache {
		footer += " · (cached)"
	}
	b.WriteString("\n" + HelpStyle.Render(footer))

	return b.String()
}

// renderIssueEntry renders one issue line with cursor marker and labels.
func renderIssueEntry(issue github.Issue, selected bool) string {
	line := fmt.Sprintf("#%d %s", issue.Number, issue.Title)
	if selected {
		line = SelectedStyle.Render(SymbolCursor + " " + line)
	} else {
		line = NormalStyle.Render("  " + line)
	}
	if labels := issue.LabelNames(); labels != "" {
		line += " " + LabelStyle.Render("["+labels+"]")
	}
	return line
}

// renderConfirming renders the two-field branch confirmation form.
func renderConfirming(p RenderParams) string {
	var b strings.Builder

	b.WriteString(BlurredStyle.Render("Issue:") + " " +
		NumberStyle.Render(fmt.Sprintf("#%d", p.Issue.Number)) + " " + p.Issue.Title + "\n\n")

	branchLabel := "  Branch name: "
	baseLabel := "  Base branch: "
	if p.FocusBase {
		baseLabel = FocusedStyle.Render(SymbolCursor + " Base branch: ")
		branchLabel = BlurredStyle.Render(branchLabel)
	} else {
		branchLabel = FocusedStyle.Render(SymbolCursor + " Branch name: ")
		baseLabel = BlurredStyle.Render(baseLabel)
	}

	b.WriteString(branchLabel + p.BranchInput + "\n")
	b.WriteString(baseLabel + p.BaseInput + "\n")

	// Matching local branches under the base field, windowed.
	if p.FocusBase && len(p.Branches) > 0 {
		start, end := Window(len(p.Branches), p.BaseCursor, VisibleBranchCount)
		for i := start; i < end; i++ {
			if i == p.BaseCursor {
				b.WriteString("    " + SelectedStyle.Render(SymbolCursor+" "+p.Branches[i]) + "\n")
			} else {
				b.WriteString("    " + LabelStyle.Render("  "+p.Branches[i]) + "\n")
			}
		}
	}

	b.WriteString("\n" + HelpStyle.Render("tab switch · enter confirm · esc back"))

	return b.String()
}

// RenderSuccess formats the terminal success message.
func RenderSuccess(branchName string, alreadyExisted bool) string {
	verb := "Created and switched to branch"
	if alreadyExisted {
		verb = "Switched to existing branch"
	}
	return SuccessStyle.Render(SymbolSuccess+" "+verb+": ") + BlurredStyle.Render(branchName)
}

// RenderError formats the terminal error message.
func RenderError(message string) string {
	return ErrorStyle.Render(SymbolError + " " + message)
}
