package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/draftcache"
	"github.com/jonathan/cv-builder/internal/enhance"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/jonathan/cv-builder/internal/wizard"
)

type echoEnhancer struct {
	mutate func(cv *types.CVData)
	err    error
}

func (e *echoEnhancer) EnhanceCV(_ context.Context, req *types.EnhanceRequest) (*types.APIResponse, error) {
	if e.err != nil {
		return nil, e.err
	}
	cv := req.CV.Clone()
	e.mutate(cv)
	data, err := json.Marshal(cv)
	if err != nil {
		return nil, err
	}
	return &types.APIResponse{Success: true, Data: data}, nil
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newSession(t *testing.T, enh enhance.Enhancer) *wizard.Session {
	t.Helper()
	cfg := wizard.SessionConfig{Store: draftcache.NewMemoryStore(nil), NewID: seqIDs()}
	if enh != nil {
		cfg.Bridge = enhance.NewBridge(enh)
	}
	s, err := wizard.Mount(cfg, wizard.MountOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func completeCV() *types.CVData {
	cv := types.NewCVData()
	cv.Profile = types.PersonalInfo{FullName: "Ada Lovelace", Email: "ada@example.com"}
	cv.Education = []types.Education{
		{ID: "ed1", Institution: "Home Tutoring", Course: "Mathematics"},
		{ID: "ed2", Institution: "University of London", Course: "Logic"},
	}
	cv.Experience = []types.Experience{{ID: "ex1", Company: "Babbage Ltd", JobTitle: "Analyst"}}
	cv.Skills = []types.Skill{{ID: "s1", Name: "Algorithms"}}
	cv.Certifications = []types.Certification{{ID: "c1", Name: "Engine Operator"}}
	cv.Languages = []types.Language{{ID: "l1", Name: "French"}}
	return cv
}

// at returns a manual-mode model positioned on step with a complete draft.
func at(t *testing.T, enh enhance.Enhancer, step wizard.Step) (*Model, *wizard.Session) {
	t.Helper()
	s := newSession(t, enh)
	require.NoError(t, s.ChooseMode(types.ModeManual))
	s.ReplaceDraft(completeCV())
	if step != wizard.StepPersonal {
		require.True(t, s.GoTo(step).Moved)
	}
	return New(context.Background(), s, Options{PreviewStyle: "notty"}), s
}

func press(m *Model, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(k)
	}
	return cmd
}

func typeText(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyNext  = tea.KeyMsg{Type: tea.KeyCtrlN}
	keyBack  = tea.KeyMsg{Type: tea.KeyCtrlB}
	keyAdd   = tea.KeyMsg{Type: tea.KeyCtrlA}
	keyDel   = tea.KeyMsg{Type: tea.KeyCtrlX}
	keyEntry = tea.KeyMsg{Type: tea.KeyCtrlJ}
	keyRaise = tea.KeyMsg{Type: tea.KeyUp, Alt: true}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModel_ModeSelection(t *testing.T) {
	s := newSession(t, nil)
	m := New(context.Background(), s, Options{})
	require.Equal(t, screenMode, m.screen)
	assert.Contains(t, m.View(), "How would you like to build your CV?")

	press(m, keyDown, keyEnter)

	assert.Equal(t, types.ModeAIInterview, s.Mode())
	assert.Equal(t, screenStep, m.screen)
	assert.Contains(t, m.View(), wizard.InterviewQuestion(wizard.StepPersonal))
}

func TestModel_CachedModeIsDefaultChoice(t *testing.T) {
	store := draftcache.NewMemoryStore(nil)
	first, err := wizard.Mount(wizard.SessionConfig{Store: store}, wizard.MountOptions{})
	require.NoError(t, err)
	require.NoError(t, first.ChooseMode(types.ModeAIInterview))
	require.NoError(t, first.Close())

	s, err := wizard.Mount(wizard.SessionConfig{Store: store}, wizard.MountOptions{})
	require.NoError(t, err)
	defer s.Close()

	m := New(context.Background(), s, Options{})
	assert.Equal(t, screenMode, m.screen)
	assert.Equal(t, 1, m.modeCursor)
}

func TestModel_PersonalStepGateAndTyping(t *testing.T) {
	s := newSession(t, nil)
	require.NoError(t, s.ChooseMode(types.ModeManual))
	m := New(context.Background(), s, Options{})
	require.Equal(t, screenStep, m.screen)

	press(m, keyNext)
	assert.Equal(t, wizard.StepPersonal, s.Step())
	assert.Contains(t, m.View(), "Enter your full name and email to continue.")

	typeText(m, "Ada Lovelace")
	press(m, keyTab)
	typeText(m, "ada@example.com")
	press(m, keyNext)

	assert.Equal(t, wizard.StepEducation, s.Step())
	assert.Equal(t, "Ada Lovelace", s.Draft().Profile.FullName)
	assert.Equal(t, "ada@example.com", s.Draft().Profile.Email)
	assert.NotContains(t, m.View(), "Enter your full name")
}

func TestModel_BlurShowsFieldError(t *testing.T) {
	s := newSession(t, nil)
	require.NoError(t, s.ChooseMode(types.ModeManual))
	m := New(context.Background(), s, Options{})

	press(m, keyTab)
	typeText(m, "not-an-email")
	press(m, keyTab)

	assert.Contains(t, m.View(), "Enter a valid email address")
	assert.Equal(t, "not-an-email", s.Draft().Profile.Email)
}

func TestModel_BackNeverShowsGateHint(t *testing.T) {
	s := newSession(t, nil)
	require.NoError(t, s.ChooseMode(types.ModeManual))
	m := New(context.Background(), s, Options{})

	press(m, keyBack)
	assert.Equal(t, wizard.StepPersonal, s.Step())
	assert.Empty(t, m.notice.text)
}

func TestModel_EntryManagement(t *testing.T) {
	m, s := at(t, nil, wizard.StepEducation)
	require.NotNil(t, m.form)
	assert.Equal(t, "ed1", m.form.id)
	assert.Contains(t, m.View(), "Entry 1 of 2")

	press(m, keyEntry)
	assert.Equal(t, "ed2", m.form.id)

	press(m, keyRaise)
	edu := s.Draft().Education
	require.Len(t, edu, 2)
	assert.Equal(t, "ed2", edu[0].ID)
	assert.Equal(t, "ed2", m.form.id)

	press(m, keyAdd)
	assert.Len(t, s.Draft().Education, 3)
	assert.Contains(t, m.View(), "Entry 3 of 3")

	press(m, keyDel)
	assert.Len(t, s.Draft().Education, 2)
}

func TestModel_ProjectsStartEmpty(t *testing.T) {
	m, s := at(t, nil, wizard.StepProjects)
	assert.Nil(t, m.form)
	assert.Contains(t, m.View(), "No projects yet. Add your first project.")

	press(m, keyAdd)
	require.NotNil(t, m.form)
	typeText(m, "Note G")
	press(m, keyTab)

	projects := s.Draft().Projects
	require.Len(t, projects, 1)
	assert.Equal(t, "Note G", projects[0].Name)
}

func TestModel_ArrivingAtReviewStartsEnhancement(t *testing.T) {
	enh := &echoEnhancer{mutate: func(cv *types.CVData) {
		cv.Profile.Summary = "Enhanced summary"
		cv.AIInsights = types.Some(types.AIInsights{ATSScore: 81})
	}}
	m, s := at(t, enh, wizard.StepReferences)

	cmd := press(m, keyNext)
	require.NotNil(t, cmd)
	assert.Equal(t, screenReview, m.screen)
	assert.True(t, m.enhancing)
	assert.Contains(t, m.View(), "Enhancing")

	m.Update(m.enhanceCmd()())

	assert.False(t, m.enhancing)
	assert.Equal(t, "Your CV was enhanced.", m.notice.text)
	assert.Equal(t, "Enhanced summary", s.Draft().Profile.Summary)
	assert.Contains(t, m.View(), "Enhanced summary")
}

func TestModel_EnhanceOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		enh      enhance.Enhancer
		severity enhance.Severity
		contains string
	}{
		{
			name:     "transport failure",
			enh:      &echoEnhancer{err: errors.New("connection refused")},
			severity: enhance.SeverityError,
			contains: "Your draft is unchanged",
		},
		{
			name:     "certifications dropped",
			enh:      &echoEnhancer{mutate: func(cv *types.CVData) { cv.Certifications = nil }},
			severity: enhance.SeverityCritical,
			contains: "review the enhanced content",
		},
		{
			name:     "not configured",
			severity: enhance.SeverityInfo,
			contains: "not configured",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, s := at(t, tt.enh, wizard.StepReview)
			before := s.Draft()

			require.NotNil(t, press(m, runeKey('e')))
			m.Update(m.enhanceCmd()())

			assert.Equal(t, tt.severity, m.notice.severity)
			assert.Contains(t, m.notice.text, tt.contains)
			assert.Equal(t, before, s.Draft())
		})
	}
}

func TestModel_EnhanceIgnoredWhileRunning(t *testing.T) {
	m, _ := at(t, &echoEnhancer{mutate: func(*types.CVData) {}}, wizard.StepReview)
	require.NotNil(t, press(m, runeKey('e')))
	assert.Nil(t, press(m, runeKey('e')))
}

func TestModel_StartOver(t *testing.T) {
	m, s := at(t, nil, wizard.StepReview)

	press(m, runeKey('r'))

	assert.Equal(t, screenMode, m.screen)
	assert.True(t, s.NeedsModeSelection())
	assert.Equal(t, wizard.StepPersonal, s.Step())
	assert.Equal(t, types.NewCVData(), s.Draft())
}

func TestModel_QuitKeys(t *testing.T) {
	tests := []struct {
		name string
		step wizard.Step
		key  tea.KeyMsg
	}{
		{"ctrl+c on a step", wizard.StepSkills, tea.KeyMsg{Type: tea.KeyCtrlC}},
		{"q on review", wizard.StepReview, runeKey('q')},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := at(t, nil, tt.step)
			cmd := press(m, tt.key)
			require.NotNil(t, cmd)
			_, ok := cmd().(tea.QuitMsg)
			assert.True(t, ok)
		})
	}
}

func TestModel_CtrlCCommitsFocusedField(t *testing.T) {
	m, s := at(t, nil, wizard.StepPersonal)
	press(m, tea.KeyMsg{Type: tea.KeyCtrlU})
	typeText(m, "Augusta Ada King")
	press(m, tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.Equal(t, "Augusta Ada King", s.Draft().Profile.FullName)
}

func TestModel_Resize(t *testing.T) {
	m, _ := at(t, nil, wizard.StepReview)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.preview.Width)
	assert.Equal(t, 28, m.preview.Height)
}

func TestModel_DefaultModeFromOptions(t *testing.T) {
	s := newSession(t, nil)
	m := New(context.Background(), s, Options{DefaultMode: types.ModeAIInterview})
	assert.Equal(t, 1, m.modeCursor)
}
