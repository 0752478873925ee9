package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jonathan/cv-builder/internal/draftcache"
	"github.com/jonathan/cv-builder/internal/enhance"
	"github.com/jonathan/cv-builder/internal/sections"
	"github.com/jonathan/cv-builder/internal/types"
)

// ErrNoEnhancer is returned by Enhance when the session was built without a bridge.
var ErrNoEnhancer = errors.New("enhancement is not configured")

// SessionConfig wires a Session to its collaborators.
type SessionConfig struct {
	Store  draftcache.Store
	Bridge *enhance.Bridge // optional
	Logger *zap.Logger     // optional
	// NewID overrides entry id generation, for tests.
	NewID func() string
}

// EnhanceStatus is the outcome of the last enhancement attempt.
type EnhanceStatus struct {
	Running  bool
	Err      error
	Warnings []string
}

// Session is the single writer of the draft. Every committed mutation is
// persisted to the store before the call returns.
type Session struct {
	mu          sync.Mutex
	store       draftcache.Store
	suggestions *draftcache.Suggestions
	bridge      *enhance.Bridge
	logger      *zap.Logger
	editorOpts  []sections.Option

	ctrl       *Controller
	draft      *types.CVData
	mode       types.BuilderMode
	cachedMode types.BuilderMode
	status     EnhanceStatus
	persistErr error

	profile *sections.ProfileEditor
	list    sections.List

	ctx    context.Context
	cancel context.CancelFunc
}

// Mount restores the draft and mode from the store and applies opts.
func Mount(cfg SessionConfig, opts MountOptions) (*Session, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("session requires a draft store")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		store:       cfg.Store,
		suggestions: draftcache.NewSuggestions(cfg.Store, nil),
		bridge:      cfg.Bridge,
		logger:      logger,
		ctrl:        NewController(),
	}
	if cfg.NewID != nil {
		s.editorOpts = append(s.editorOpts, sections.WithIDGenerator(cfg.NewID))
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	draft, restored, err := draftcache.GetValue[*types.CVData](cfg.Store, draftcache.DraftKey)
	if err != nil {
		// A corrupt draft must not lock the user out; start fresh.
		logger.Warn("discarding unreadable cached draft", zap.Error(err))
		restored = false
	}
	if !restored || draft == nil {
		restored = false
		draft = types.NewCVData()
	}
	draft.Normalize()
	s.draft = draft

	cached, ok, err := draftcache.GetValue[types.BuilderMode](cfg.Store, draftcache.ModeKey)
	if err != nil {
		logger.Warn("ignoring unreadable cached mode", zap.Error(err))
	}
	if ok {
		if m, perr := types.ParseBuilderMode(string(cached)); perr == nil {
			s.cachedMode = m
		}
	}

	switch {
	case opts.Select:
		if err := cfg.Store.Remove(draftcache.ModeKey); err != nil {
			return nil, fmt.Errorf("failed to clear cached mode: %w", err)
		}
		s.cachedMode = ""
	case opts.Continue && s.cachedMode != "":
		s.mode = s.cachedMode
	}

	logger.Debug("session mounted",
		zap.String("mode", string(s.mode)),
		zap.Bool("draft_restored", restored),
		zap.Bool("continue", opts.Continue),
		zap.Bool("select", opts.Select))

	s.mountCurrent()
	return s, nil
}

// Close cancels any in-flight enhancement.
func (s *Session) Close() error {
	s.cancel()
	return nil
}

// NeedsModeSelection reports whether the mode selector must be shown.
func (s *Session) NeedsModeSelection() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode == ""
}

// CachedMode is the mode remembered from an earlier run, offered as the default choice.
func (s *Session) CachedMode() types.BuilderMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cachedMode
}

// Mode returns the active builder mode, or "" before selection.
func (s *Session) Mode() types.BuilderMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// ChooseMode sets and persists the builder mode.
func (s *Session) ChooseMode(m types.BuilderMode) error {
	if _, err := types.ParseBuilderMode(string(m)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
	s.cachedMode = m
	if err := s.store.Set(draftcache.ModeKey, m, draftcache.Options{ExpiresIn: draftcache.ModeTTL}); err != nil {
		return fmt.Errorf("failed to save builder mode: %w", err)
	}
	return nil
}

// ReturnToModeSelection discards the draft and mode and starts over.
func (s *Session) ReturnToModeSelection() error {
	s.cancel()

	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.draft = types.NewCVData()
	s.mode = ""
	s.cachedMode = ""
	s.status = EnhanceStatus{}
	s.ctrl.Reset()
	var errs []error
	for _, key := range []string{draftcache.DraftKey, draftcache.ModeKey, draftcache.InsightsKey} {
		if err := s.store.Remove(key); err != nil {
			errs = append(errs, err)
		}
	}
	s.mu.Unlock()

	s.mountCurrent()
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to clear cached state: %w", err)
	}
	return nil
}

// Draft returns a copy of the current document.
func (s *Session) Draft() *types.CVData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

// ReplaceDraft installs cv wholesale, as an import does.
func (s *Session) ReplaceDraft(cv *types.CVData) {
	cv = cv.Clone()
	cv.Normalize()
	s.mu.Lock()
	s.draft = cv
	s.persistLocked()
	s.mu.Unlock()
	s.mountCurrent()
}

// PersistErr returns the last draft persistence failure, if any.
func (s *Session) PersistErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistErr
}

// Step returns the current step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Current()
}

// Progress returns completion as a percentage.
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Progress()
}

// CanGoNext reports whether the current gate passes.
func (s *Session) CanGoNext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.CanGoNext(s.draft)
}

// GateHint explains why the current step cannot be left, or "".
func (s *Session) GateHint() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return GateHint(s.ctrl.Current(), s.draft)
}

// Next advances when the gate passes. When Transition.AutoEnhance is set the
// caller should run Enhance.
func (s *Session) Next() Transition {
	s.mu.Lock()
	tr := s.ctrl.Next(s.draft)
	s.mu.Unlock()
	return s.afterMove(tr)
}

// Previous goes back one step.
func (s *Session) Previous() Transition {
	s.mu.Lock()
	tr := s.ctrl.Previous()
	s.mu.Unlock()
	return s.afterMove(tr)
}

// GoTo jumps to step, subject to the forward gates.
func (s *Session) GoTo(step Step) Transition {
	s.mu.Lock()
	tr := s.ctrl.GoTo(step, s.draft)
	s.mu.Unlock()
	return s.afterMove(tr)
}

func (s *Session) afterMove(tr Transition) Transition {
	if tr.Moved {
		s.logger.Debug("step changed", zap.String("from", string(tr.From)), zap.String("to", string(tr.To)))
		s.mountCurrent()
	}
	return tr
}

// Status returns the last enhancement outcome.
func (s *Session) Status() EnhanceStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.status
	st.Warnings = append([]string(nil), st.Warnings...)
	return st
}

// Enhance runs one enhancement round trip and, on success, replaces the draft.
// On failure the draft is unchanged and the automatic enhancement re-arms.
// Closing the session cancels the call.
func (s *Session) Enhance(ctx context.Context) (*enhance.Result, error) {
	if s.bridge == nil {
		return nil, ErrNoEnhancer
	}

	s.mu.Lock()
	snapshot := s.draft.Clone()
	mode := s.mode
	sessionCtx := s.ctx
	if !s.bridge.InFlight() {
		s.status = EnhanceStatus{Running: true}
	}
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(sessionCtx, cancel)
	defer stop()

	res, err := s.bridge.Enhance(ctx, snapshot, mode)
	if errors.Is(err, enhance.ErrEnhanceInFlight) {
		return nil, err
	}

	s.mu.Lock()
	if err != nil {
		s.status = EnhanceStatus{Err: err}
		s.ctrl.ResetAutoEnhance()
		s.mu.Unlock()
		s.logger.Warn("enhancement not applied", zap.Error(err))
		return nil, err
	}
	if sessionCtx.Err() != nil {
		// The draft was discarded while the call ran.
		s.mu.Unlock()
		return nil, sessionCtx.Err()
	}
	s.draft = res.CV.Clone()
	s.status = EnhanceStatus{Warnings: res.Warnings}
	s.persistLocked()
	s.mu.Unlock()

	s.mountCurrent()
	return res, nil
}

// Suggestions returns the free-text suggestion lists.
func (s *Session) Suggestions() *draftcache.Suggestions {
	return s.suggestions
}

// Profile returns the personal-information editor.
func (s *Session) Profile() *sections.ProfileEditor {
	s.mu.Lock()
	p := s.profile
	s.mu.Unlock()
	if p == nil {
		p = s.mountProfile()
	}
	return p
}

// List returns the editor for a list section. The current step's editor is
// shared; any other section gets a fresh editor over the draft.
func (s *Session) List(section sections.Section) (sections.List, error) {
	s.mu.Lock()
	l := s.list
	s.mu.Unlock()
	if l != nil && l.Section() == section {
		return l, nil
	}
	return s.newList(section)
}

// suggestionFields maps (section, field) to the list a blurred value feeds.
var suggestionFields = map[sections.Section]map[string]draftcache.SuggestionKind{
	sections.Personal:   {"job_title": draftcache.SuggestJobTitles, "location": draftcache.SuggestLocations},
	sections.Experience: {"job_title": draftcache.SuggestJobTitles, "company": draftcache.SuggestCompanies, "location": draftcache.SuggestLocations},
	sections.Skills:     {"name": draftcache.SuggestSkills},
	sections.References: {"company": draftcache.SuggestCompanies},
}

// Blur validates a field in section and records it as a suggestion when it
// feeds one. id is ignored for the profile.
func (s *Session) Blur(section sections.Section, id, field string) error {
	var value string
	if section == sections.Personal {
		p := s.Profile()
		p.Blur(field)
		value = p.Info().Field(field)
	} else {
		l, err := s.List(section)
		if err != nil {
			return err
		}
		if err := l.Blur(id, field); err != nil {
			return err
		}
		value, _ = l.FieldValue(id, field)
	}
	if kind, ok := suggestionFields[section][field]; ok {
		if err := s.suggestions.Record(kind, value); err != nil {
			s.logger.Warn("failed to record suggestion", zap.String("kind", string(kind)), zap.Error(err))
		}
	}
	return nil
}

func (s *Session) mountCurrent() {
	s.mu.Lock()
	step := s.ctrl.Current()
	s.profile = nil
	s.list = nil
	s.mu.Unlock()

	sec, ok := step.Section()
	if !ok {
		return
	}
	if sec == sections.Personal {
		s.mountProfile()
		return
	}
	l, err := s.newList(sec)
	if err != nil {
		s.logger.Error("failed to mount section editor", zap.String("section", string(sec)), zap.Error(err))
		return
	}
	s.mu.Lock()
	s.list = l
	s.mu.Unlock()
}

func (s *Session) mountProfile() *sections.ProfileEditor {
	s.mu.Lock()
	info := s.draft.Profile
	s.mu.Unlock()

	p := sections.NewProfileEditor(info, func(info types.PersonalInfo) {
		s.commit(func(d *types.CVData) { d.Profile = info })
	})

	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
	return p
}

// newList builds the editor for section. It must run without s.mu held,
// since seeding commits through the same callback edits use.
func (s *Session) newList(section sections.Section) (sections.List, error) {
	s.mu.Lock()
	cv := s.draft.Clone()
	s.mu.Unlock()

	var l sections.List
	switch section {
	case sections.Education:
		l = sections.NewEditor(section, cv.Education, func(items []types.Education) {
			s.commit(func(d *types.CVData) { d.Education = items })
		}, s.editorOpts...)
	case sections.Experience:
		l = sections.NewEditor(section, cv.Experience, func(items []types.Experience) {
			s.commit(func(d *types.CVData) { d.Experience = items })
		}, s.editorOpts...)
	case sections.Skills:
		l = sections.NewEditor(section, cv.Skills, func(items []types.Skill) {
			s.commit(func(d *types.CVData) { d.Skills = items })
		}, s.editorOpts...)
	case sections.Projects:
		l = sections.NewEditor(section, cv.Projects, func(items []types.Project) {
			s.commit(func(d *types.CVData) { d.Projects = items })
		}, s.editorOpts...)
	case sections.Certifications:
		l = sections.NewEditor(section, cv.Certifications, func(items []types.Certification) {
			s.commit(func(d *types.CVData) { d.Certifications = items })
		}, s.editorOpts...)
	case sections.Languages:
		l = sections.NewEditor(section, cv.Languages, func(items []types.Language) {
			s.commit(func(d *types.CVData) { d.Languages = items })
		}, s.editorOpts...)
	case sections.References:
		l = sections.NewEditor(section, cv.References, func(items []types.Reference) {
			s.commit(func(d *types.CVData) { d.References = items })
		}, s.editorOpts...)
	default:
		return nil, fmt.Errorf("no list editor for section %q", section)
	}
	return l, nil
}

func (s *Session) commit(apply func(cv *types.CVData)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apply(s.draft)
	s.persistLocked()
}

func (s *Session) persistLocked() {
	err := s.store.Set(draftcache.DraftKey, s.draft, draftcache.Options{ExpiresIn: draftcache.DraftTTL})
	if err != nil {
		s.logger.Error("failed to persist draft", zap.Error(err))
	}
	s.persistErr = err
}
