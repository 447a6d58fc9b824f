package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"ib/internal/branch"
	"ib/internal/github"
	"ib/internal/ui"
)

// Phase is the single active state of the workflow. Transitions are
// one-directional except PhaseConfirming -> PhaseSelecting (cancel),
// which keeps the previously fetched issues intact. PhaseDone and
// PhaseError are terminal.
type Phase int

const (
	PhaseChecking Phase = iota
	PhaseLoading
	PhaseSelecting
	PhaseConfirming
	PhaseCreating
	PhaseDone
	PhaseError
)

// Options configure one workflow run.
type Options struct {
	Assignee  string
	Template  string
	MaxIssues int
}

// Model is the main application model.
type Model struct {
	backend Backend
	opts    Options
	keys    KeyMap

	phase Phase

	currentBranch string

	// Selecting
	issues     []github.Issue
	results    []github.Issue
	queryInput textinput.Model
	query      string
	cursor     int
	fromCache  bool

	// Confirming
	selected    github.Issue
	branchInput textinput.Model
	baseInput   textinput.Model
	baseQuery   string
	focusBase   bool
	branches    []string
	baseResults []string
	baseCursor  int

	// Creating / terminal
	branchName     string
	baseBranch     string
	alreadyExisted bool
	errMsg         string
	canceled       bool

	spin   spinner.Model
	width  int
	height int
}

// New creates a new Model.
func New(backend Backend, opts Options) Model {
	queryInput := textinput.New()
	queryInput.Placeholder = "type to filter"
	queryInput.Prompt = ""
	queryInput.CharLimit = 80

	branchInput := textinput.New()
	branchInput.Prompt = ""
	branchInput.CharLimit = 100

	baseInput := textinput.New()
	baseInput.Prompt = ""
	baseInput.CharLimit = 100

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		backend:     backend,
		opts:        opts,
		keys:        DefaultKeyMap(),
		phase:       PhaseChecking,
		queryInput:  queryInput,
		branchInput: branchInput,
		baseInput:   baseInput,
		spin:        spin,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		checkPrerequisites(m.backend),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.canceled = true
			return m, tea.Quit
		}
		return m.handleKeyPress(msg)

	case PrereqCheckedMsg:
		if msg.Err != nil {
			return m.fail(msg.Err.Error())
		}
		return m, readCurrentBranch(m.backend)

	case CurrentBranchMsg:
		if msg.Err != nil {
			return m.fail(msg.Err.Error())
		}
		m.currentBranch = msg.Name
		m.phase = PhaseLoading
		return m, fetchIssues(m.backend, m.opts.Assignee, m.opts.MaxIssues)

	case IssuesLoadedMsg:
		if msg.Err != nil {
			return m.fail(fmt.Sprintf("failed to fetch issues: %v", msg.Err))
		}
		if len(msg.Issues) == 0 {
			return m.fail("no open issues assigned")
		}
		m.issues = msg.Issues
		m.results = msg.Issues
		m.fromCache = msg.FromCache
		m.phase = PhaseSelecting
		m.queryInput.Focus()
		return m, textinput.Blink

	case BranchesLoadedMsg:
		// A failed branch listing is non-fatal: the base field still
		// accepts literal text.
		if msg.Err == nil {
			m.branches = msg.Branches
			m.filterBranches()
		}
		return m, nil

	case BranchCreatedMsg:
		if msg.Err != nil {
			return m.fail(fmt.Sprintf("failed to create branch: %v", msg.Err))
		}
		m.branchName = msg.Name
		m.alreadyExisted = msg.AlreadyExisted
		m.phase = PhaseDone
		return m, tea.Quit
	}

	return m, nil
}

// fail moves to the terminal error phase and quits.
func (m Model) fail(message string) (tea.Model, tea.Cmd) {
	m.phase = PhaseError
	m.errMsg = message
	return m, tea.Quit
}

// handleKeyPress handles key presses based on the current phase.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case PhaseChecking, PhaseLoading, PhaseCreating:
		// An external call is in flight; only ctrl+c applies, and that
		// is handled globally in Update.
		return m, nil
	case PhaseSelecting:
		return m.handleSelectingKeys(msg)
	case PhaseConfirming:
		return m.handleConfirmingKeys(msg)
	case PhaseDone, PhaseError:
		// Terminal phases read no further input.
		return m, nil
	}
	return m, nil
}

// handleSelectingKeys handles key presses in the issue selector.
func (m Model) handleSelectingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.canceled = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.results)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if len(m.results) == 0 {
			return m, nil
		}
		return m.enterConfirming(m.results[m.cursor])
	}

	var cmd tea.Cmd
	m.queryInput, cmd = m.queryInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

// enterConfirming seeds the confirmation form for the chosen issue.
func (m Model) enterConfirming(issue github.Issue) (tea.Model, tea.Cmd) {
	m.selected = issue
	m.phase = PhaseConfirming

	m.branchInput.SetValue(branch.Generate(issue, m.opts.Template))
	m.branchInput.CursorEnd()
	m.branchInput.Focus()

	m.baseInput.SetValue(m.currentBranch)
	m.baseInput.CursorEnd()
	m.baseInput.Blur()
	m.baseQuery = m.currentBranch

	m.focusBase = false
	m.branches = nil
	m.baseResults = nil
	m.baseCursor = 0

	// The local branch list is fetched once per entry into this screen.
	return m, tea.Batch(textinput.Blink, loadBranches(m.backend))
}

// handleConfirmingKeys handles key presses in the confirmation form.
func (m Model) handleConfirmingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		// Back to selection. The issues fetched earlier stay as they
		// were: no refetch, no reordering.
		m.phase = PhaseSelecting
		m.queryInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Switch):
		m.focusBase = !m.focusBase
		if m.focusBase {
			m.branchInput.Blur()
			m.baseInput.Focus()
		} else {
			m.baseInput.Blur()
			m.branchInput.Focus()
		}
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Confirm):
		name := strings.TrimSpace(m.branchInput.Value())
		if name == "" {
			return m, nil
		}
		// On the base field a highlighted match wins; otherwise the
		// literal typed text is used.
		base := strings.TrimSpace(m.baseInput.Value())
		if m.focusBase && len(m.baseResults) > 0 {
			base = m.baseResults[m.baseCursor]
		}
		m.branchName = name
		m.baseBranch = base
		m.phase = PhaseCreating
		return m, createBranch(m.backend, name, base)

	case key.Matches(msg, m.keys.Up):
		if m.focusBase && m.baseCursor > 0 {
			m.baseCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.focusBase && m.baseCursor < len(m.baseResults)-1 {
			m.baseCursor++
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focusBase {
		m.baseInput, cmd = m.baseInput.Update(msg)
		m.filterBranches()
	} else {
		m.branchInput, cmd = m.branchInput.Update(msg)
	}
	return m, cmd
}

// issueSource implements fuzzy.Source for issue fuzzy matching.
type issueSource []github.Issue

func (s issueSource) String(i int) string {
	return fmt.Sprintf("#%d %s", s[i].Number, s[i].Title)
}

func (s issueSource) Len() int {
	return len(s)
}

// applyFilter recomputes the issue results for the current query.
func (m *Model) applyFilter() {
	query := m.queryInput.Value()
	if query == m.query {
		return
	}
	m.query = query

	if query == "" {
		m.results = m.issues
	} else {
		matches := fuzzy.FindFrom(query, issueSource(m.issues))
		m.results = nil
		for _, match := range matches {
			m.results = append(m.results, m.issues[match.Index])
		}
	}

	// The highlight returns to the top whenever the query changes.
	m.cursor = 0
}

// filterBranches recomputes the base-branch results for the current
// base field text.
func (m *Model) filterBranches() {
	query := m.baseInput.Value()
	queryChanged := query != m.baseQuery
	m.baseQuery = query

	if query == "" {
		m.baseResults = m.branches
	} else {
		matches := fuzzy.Find(query, m.branches)
		m.baseResults = nil
		for _, match := range matches {
			m.baseResults = append(m.baseResults, m.branches[match.Index])
		}
	}

	if queryChanged {
		m.baseCursor = 0
		return
	}
	if m.baseCursor >= len(m.baseResults) {
		m.baseCursor = len(m.baseResults) - 1
	}
	if m.baseCursor < 0 {
		m.baseCursor = 0
	}
}

// View renders the UI for the active phase.
func (m Model) View() string {
	return ui.Render(ui.RenderParams{
		Phase:        int(m.phase),
		SpinnerFrame: m.spin.View(),
		QueryInput:   m.queryInput.View(),
		Results:      m.results,
		Cursor:       m.cursor,
		FromCache:    m.fromCache,
		Issue:        m.selected,
		BranchInput:  m.branchInput.View(),
		BaseInput:    m.baseInput.View(),
		FocusBase:    m.focusBase,
		Branches:     m.baseResults,
		BaseCursor:   m.baseCursor,
		BranchName:   m.branchName,
	})
}

// Phase returns the phase the workflow ended in.
func (m Model) Phase() Phase {
	return m.phase
}

// Canceled reports whether the user backed out of the workflow.
func (m Model) Canceled() bool {
	return m.canceled
}

// Result returns the final branch name and whether it already existed.
// Only meaningful in PhaseDone.
func (m Model) Result() (string, bool) {
	return m.branchName, m.alreadyExisted
}

// ErrMessage returns the terminal error message. Only meaningful in
// PhaseError.
func (m Model) ErrMessage() string {
	return m.errMsg
}

// Commands

func checkPrerequisites(b Backend) tea.Cmd {
	return func() tea.Msg {
		return PrereqCheckedMsg{Err: b.CheckPrerequisites()}
	}
}

func readCurrentBranch(b Backend) tea.Cmd {
	return func() tea.Msg {
		name, err := b.CurrentBranch()
		return CurrentBranchMsg{Name: name, Err: err}
	}
}

func fetchIssues(b Backend, assignee string, limit int) tea.Cmd {
	return func() tea.Msg {
		issues, fromCache, err := b.FetchIssues(assignee, limit)
		return IssuesLoadedMsg{Issues: issues, FromCache: fromCache, Err: err}
	}
}

func loadBranches(b Backend) tea.Cmd {
	return func() tea.Msg {
		branches, err := b.LocalBranches()
		return BranchesLoadedMsg{Branches: branches, Err: err}
	}
}

func createBranch(b Backend, name, base string) tea.Cmd {
	return func() tea.Msg {
		alreadyExisted, err := b.CreateOrCheckout(name, base)
		return BranchCreatedMsg{Name: name, AlreadyExisted: alreadyExisted, Err: err}
	}
}
