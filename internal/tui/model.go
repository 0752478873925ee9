// Package tui is the interactive terminal front end of the CV wizard.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jonathan/cv-builder/internal/enhance"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/sections"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/jonathan/cv-builder/internal/wizard"
)

type screen int

const (
	screenMode screen = iota
	screenStep
	screenReview
)

var modeChoices = []struct {
	mode  types.BuilderMode
	label string
	desc  string
}{
	{types.ModeManual, "Manual", "Fill in each section yourself."},
	{types.ModeAIInterview, "AI interview", "Answer a question per section; the result is polished by AI."},
}

// Options configures the wizard UI.
type Options struct {
	Logger *zap.Logger
	// DefaultMode preselects a choice when no mode is cached.
	DefaultMode types.BuilderMode
	// PreviewStyle is the glamour style for the review preview; empty picks one from the terminal.
	PreviewStyle string
}

// enhanceDoneMsg carries the outcome of an enhancement started by the UI.
type enhanceDoneMsg struct {
	res *enhance.Result
	err error
}

type notice struct {
	text     string
	severity enhance.Severity
}

// Model is the bubbletea model for one wizard session.
type Model struct {
	session *wizard.Session
	ctx     context.Context
	opts    Options
	logger  *zap.Logger

	screen     screen
	modeCursor int
	entry      int
	form       *form

	progress  progress.Model
	spinner   spinner.Model
	preview   viewport.Model
	enhancing bool
	notice    notice

	width, height int
}

// New builds the UI over a mounted session. ctx bounds enhancement calls.
func New(ctx context.Context, session *wizard.Session, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m := &Model{
		session:  session,
		ctx:      ctx,
		opts:     opts,
		logger:   logger,
		progress: progress.New(progress.WithDefaultGradient()),
		spinner:  sp,
		preview:  viewport.New(rendering.DefaultWrapWidth, 20),
		width:    rendering.DefaultWrapWidth,
		height:   30,
	}
	preferred := session.CachedMode()
	if preferred == "" {
		preferred = opts.DefaultMode
	}
	if preferred == types.ModeAIInterview {
		m.modeCursor = 1
	}
	if session.NeedsModeSelection() {
		m.screen = screenMode
	} else {
		m.enterStep()
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case enhanceDoneMsg:
		return m, m.finishEnhance(msg)

	case spinner.TickMsg:
		if !m.enhancing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		pm, cmd := m.progress.Update(msg)
		m.progress = pm.(progress.Model)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.commitField()
			return m, tea.Quit
		}
		switch m.screen {
		case screenMode:
			return m, m.updateMode(msg)
		case screenReview:
			return m, m.updateReview(msg)
		default:
			return m, m.updateStep(msg)
		}
	}

	if m.form != nil {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	m.width, m.height = w, h
	m.progress.Width = max(w-10, 10)
	m.preview.Width = w
	m.preview.Height = max(h-12, 5)
	if m.form != nil {
		m.form.setWidth(w)
	}
	if m.screen == screenReview {
		m.refreshPreview()
	}
}

func (m *Model) updateMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		m.modeCursor = (m.modeCursor + len(modeChoices) - 1) % len(modeChoices)
	case "down", "j", "tab":
		m.modeCursor = (m.modeCursor + 1) % len(modeChoices)
	case "enter":
		if err := m.session.ChooseMode(modeChoices[m.modeCursor].mode); err != nil {
			m.setNotice(err.Error(), enhance.SeverityError)
			return nil
		}
		m.clearNotice()
		m.enterStep()
	case "q", "esc":
		return tea.Quit
	}
	return nil
}

func (m *Model) updateStep(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down", "enter":
		return m.moveFocus(1)
	case "shift+tab", "up":
		return m.moveFocus(-1)
	case "ctrl+n", "pgdown":
		return m.navigate(m.session.Next, true)
	case "ctrl+b", "pgup":
		return m.navigate(m.session.Previous, false)
	case "ctrl+a":
		return m.addEntry()
	case "ctrl+x":
		m.removeEntry()
		return nil
	case "ctrl+j":
		m.selectEntry(m.entry + 1)
		return nil
	case "ctrl+k":
		m.selectEntry(m.entry - 1)
		return nil
	case "alt+down":
		m.moveEntry(1)
		return nil
	case "alt+up":
		m.moveEntry(-1)
		return nil
	}
	if m.form != nil {
		return m.form.update(msg)
	}
	return nil
}

func (m *Model) updateReview(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "e":
		return m.startEnhance()
	case "b", "ctrl+b", "esc":
		return m.navigate(m.session.Previous, false)
	case "r":
		if m.enhancing {
			return nil
		}
		if err := m.session.ReturnToModeSelection(); err != nil {
			m.logger.Warn("failed to reset session", zap.Error(err))
		}
		m.form = nil
		m.entry = 0
		m.screen = screenMode
		m.clearNotice()
		return nil
	case "q":
		return tea.Quit
	}
	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return cmd
}

// section returns the section edited on the current step.
func (m *Model) section() (sections.Section, bool) {
	return m.session.Step().Section()
}

// enterStep switches to the screen for the session's current step and loads its form.
func (m *Model) enterStep() {
	if m.session.Step() == wizard.StepReview {
		m.screen = screenReview
		m.form = nil
		m.refreshPreview()
		return
	}
	m.screen = screenStep
	m.loadForm()
}

// loadForm rebuilds the form from the session's current editor.
func (m *Model) loadForm() {
	m.form = nil
	sec, ok := m.section()
	if !ok {
		return
	}
	if sec == sections.Personal {
		info := m.session.Profile().Info()
		m.form = newForm(sec, "", info.Field, m.width)
		m.loadSuggestions()
		return
	}
	list, err := m.session.List(sec)
	if err != nil {
		m.logger.Error("failed to load section", zap.String("section", string(sec)), zap.Error(err))
		return
	}
	ids := list.IDs()
	if len(ids) == 0 {
		m.entry = 0
		return
	}
	m.entry = min(max(m.entry, 0), len(ids)-1)
	id := ids[m.entry]
	m.form = newForm(sec, id, func(field string) string {
		v, _ := list.FieldValue(id, field)
		return v
	}, m.width)
	m.loadSuggestions()
}

func (m *Model) loadSuggestions() {
	if m.form == nil {
		return
	}
	kind := m.form.focused().Suggest
	if kind == "" {
		return
	}
	list, err := m.session.Suggestions().List(kind, "")
	if err != nil {
		m.logger.Debug("failed to load suggestions", zap.Error(err))
		return
	}
	m.form.setSuggestions(list)
}

// commitField writes the focused input to the editor and validates it as a blur.
func (m *Model) commitField() {
	if m.form == nil {
		return
	}
	field := m.form.focused().Key
	value := m.form.value()
	sec := m.form.section

	var err error
	if sec == sections.Personal {
		err = m.session.Profile().Update(field, value)
	} else {
		var list sections.List
		if list, err = m.session.List(sec); err == nil {
			err = list.Update(m.form.id, field, value)
		}
	}
	if err != nil {
		m.setNotice(err.Error(), enhance.SeverityError)
		return
	}
	if err := m.session.Blur(sec, m.form.id, field); err != nil {
		m.logger.Debug("blur failed", zap.Error(err))
	}
	if err := m.session.PersistErr(); err != nil {
		m.setNotice("Your draft could not be saved: "+err.Error(), enhance.SeverityError)
	}
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	if m.form == nil {
		return nil
	}
	m.commitField()
	cmd := m.form.move(delta)
	m.loadSuggestions()
	return cmd
}

// navigate commits the focused field and runs a step transition.
func (m *Model) navigate(move func() wizard.Transition, forward bool) tea.Cmd {
	m.commitField()
	tr := move()
	if !tr.Moved {
		if hint := m.session.GateHint(); forward && hint != "" {
			m.setNotice(hint, enhance.SeverityError)
		}
		return nil
	}
	m.clearNotice()
	m.entry = 0
	m.enterStep()
	cmds := []tea.Cmd{m.progress.SetPercent(m.session.Progress() / 100)}
	if tr.AutoEnhance {
		cmds = append(cmds, m.startEnhance())
	}
	return tea.Batch(cmds...)
}

func (m *Model) addEntry() tea.Cmd {
	sec, ok := m.section()
	if !ok || sec == sections.Personal {
		return nil
	}
	m.commitField()
	list, err := m.session.List(sec)
	if err != nil {
		return nil
	}
	list.AddBlank()
	m.entry = list.Len() - 1
	m.loadForm()
	return textinput.Blink
}

func (m *Model) removeEntry() {
	if m.form == nil || m.form.id == "" {
		return
	}
	list, err := m.session.List(m.form.section)
	if err != nil {
		return
	}
	if err := list.Remove(m.form.id); err != nil {
		m.setNotice(err.Error(), enhance.SeverityError)
		return
	}
	m.loadForm()
}

func (m *Model) selectEntry(i int) {
	if m.form == nil || m.form.id == "" {
		return
	}
	m.commitField()
	m.entry = i
	m.loadForm()
}

func (m *Model) moveEntry(delta int) {
	if m.form == nil || m.form.id == "" {
		return
	}
	m.commitField()
	list, err := m.session.List(m.form.section)
	if err != nil {
		return
	}
	if err := list.Move(m.form.id, delta); err != nil {
		return
	}
	m.entry += delta
	m.loadForm()
}

// startEnhance runs the enhancement in the background unless one is running.
func (m *Model) startEnhance() tea.Cmd {
	if m.enhancing {
		return nil
	}
	m.enhancing = true
	m.setNotice("Enhancing your CV...", enhance.SeverityInfo)
	return tea.Batch(m.spinner.Tick, m.enhanceCmd())
}

func (m *Model) enhanceCmd() tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		res, err := session.Enhance(ctx)
		return enhanceDoneMsg{res: res, err: err}
	}
}

func (m *Model) finishEnhance(msg enhanceDoneMsg) tea.Cmd {
	m.enhancing = false
	switch {
	case errors.Is(msg.err, wizard.ErrNoEnhancer):
		m.setNotice("Enhancement is not configured. Run `cvbuilder login` or set an API key.", enhance.SeverityInfo)
	case errors.Is(msg.err, context.Canceled):
		m.clearNotice()
	case msg.err != nil:
		text, sev := enhance.Notification(msg.err)
		m.setNotice(text, sev)
	default:
		text := "Your CV was enhanced."
		if n := len(msg.res.Warnings); n > 0 {
			text = fmt.Sprintf("Your CV was enhanced with %d warning(s).", n)
		}
		m.setNotice(text, enhance.SeverityInfo)
	}
	if m.screen == screenReview {
		m.refreshPreview()
	} else if m.screen == screenStep {
		m.loadForm()
	}
	return nil
}

func (m *Model) refreshPreview() {
	out, err := rendering.RenderTerminal(m.session.Draft(), rendering.TerminalOptions{
		Width: max(m.width-2, 20),
		Style: m.opts.PreviewStyle,
	})
	if err != nil {
		m.logger.Warn("preview render failed", zap.Error(err))
		out = rendering.RenderMarkdown(m.session.Draft())
	}
	m.preview.SetContent(out)
}

func (m *Model) setNotice(text string, sev enhance.Severity) {
	m.notice = notice{text: text, severity: sev}
}

func (m *Model) clearNotice() {
	m.notice = notice{}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	switch m.screen {
	case screenMode:
		m.viewMode(&b)
	case screenReview:
		m.viewReview(&b)
	default:
		m.viewStep(&b)
	}
	if m.notice.text != "" {
		b.WriteString("\n" + renderNotice(m.notice) + "\n")
	}
	return b.String()
}

func renderNotice(n notice) string {
	switch n.severity {
	case enhance.SeverityCritical:
		return criticalStyle.Render(n.text)
	case enhance.SeverityError:
		return errorStyle.Render(n.text)
	}
	return mutedStyle.Render(n.text)
}

func (m *Model) viewMode(b *strings.Builder) {
	b.WriteString(titleStyle.Render("How would you like to build your CV?") + "\n\n")
	for i, c := range modeChoices {
		cursor := "  "
		label := c.label
		if i == m.modeCursor {
			cursor = "> "
			label = selectedStyle.Render(label)
		}
		fmt.Fprintf(b, "%s%s\n    %s\n", cursor, label, mutedStyle.Render(c.desc))
	}
	b.WriteString("\n" + mutedStyle.Render("↑/↓ choose • enter confirm • q quit") + "\n")
}

func (m *Model) header(b *strings.Builder) {
	step := m.session.Step()
	fmt.Fprintf(b, "%s  %s\n", m.progress.ViewAs(m.session.Progress()/100),
		mutedStyle.Render(fmt.Sprintf("step %d/%d", wizard.IndexOf(step)+1, len(wizard.Steps))))
	if m.session.Mode() == types.ModeAIInterview {
		b.WriteString(questionStyle.Render(wizard.InterviewQuestion(step)) + "\n")
		b.WriteString(mutedStyle.Render(wizard.Title(step)) + "\n\n")
		return
	}
	b.WriteString(titleStyle.Render(wizard.Title(step)) + "\n\n")
}

func (m *Model) viewStep(b *strings.Builder) {
	m.header(b)
	sec, _ := m.section()

	if m.form == nil {
		b.WriteString(mutedStyle.Render(sec.EmptyHint()) + "\n")
	} else {
		if m.form.id != "" {
			if list, err := m.session.List(sec); err == nil {
				fmt.Fprintf(b, "%s\n", mutedStyle.Render(fmt.Sprintf("Entry %d of %d", m.entry+1, list.Len())))
			}
		}
		b.WriteString(panelStyle.Render(strings.TrimRight(m.form.view(m.fieldError), "\n")) + "\n")
	}

	help := "tab next field • ctrl+n next step • ctrl+b back"
	if sec != sections.Personal {
		help += " • ctrl+a add • ctrl+x remove • ctrl+j/k switch entry • alt+↑/↓ reorder"
	}
	b.WriteString("\n" + mutedStyle.Render(help+" • ctrl+c quit") + "\n")
}

func (m *Model) fieldError(field string) string {
	if m.form == nil {
		return ""
	}
	if m.form.section == sections.Personal {
		return m.session.Profile().Errors().Get(types.ProfileEntryID, field)
	}
	list, err := m.session.List(m.form.section)
	if err != nil {
		return ""
	}
	return list.Errors().Get(m.form.id, field)
}

func (m *Model) viewReview(b *strings.Builder) {
	m.header(b)
	status := m.session.Status()
	switch {
	case m.enhancing || status.Running:
		b.WriteString(m.spinner.View() + " Enhancing...\n")
	case status.Err != nil:
		b.WriteString(errorStyle.Render("Last enhancement failed. Press e to try again.") + "\n")
	case len(status.Warnings) > 0:
		for _, w := range status.Warnings {
			b.WriteString(warningStyle.Render("! "+w) + "\n")
		}
	default:
		if _, ok := m.session.Draft().AIInsights.Get(); ok {
			b.WriteString(successStyle.Render("✓ Enhanced") + "\n")
		}
	}
	b.WriteString(m.preview.View() + "\n")
	b.WriteString(mutedStyle.Render("e enhance • b back • r start over • ↑/↓ scroll • q quit") + "\n")
}
