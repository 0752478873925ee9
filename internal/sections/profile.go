package sections

import "github.com/jonathan/cv-builder/internal/types"

// ProfileEditor edits the singleton personal-information record.
type ProfileEditor struct {
	info     types.PersonalInfo
	errors   *ErrorBag
	onChange func(types.PersonalInfo)
}

// NewProfileEditor mounts an editor over info. The profile never seeds.
func NewProfileEditor(info types.PersonalInfo, onChange func(types.PersonalInfo)) *ProfileEditor {
	if onChange == nil {
		onChange = func(types.PersonalInfo) {}
	}
	return &ProfileEditor{info: info, errors: NewErrorBag(), onChange: onChange}
}

// Info returns the current record.
func (p *ProfileEditor) Info() types.PersonalInfo { return p.info }

// Errors returns field errors, keyed under types.ProfileEntryID.
func (p *ProfileEditor) Errors() *ErrorBag { return p.errors }

// Update sets one field.
func (p *ProfileEditor) Update(field, value string) error {
	updated, err := p.info.WithField(field, value)
	if err != nil {
		return err
	}
	if updated == p.info {
		return nil
	}
	p.info = updated
	p.errors.Clear(types.ProfileEntryID, field)
	p.onChange(p.info)
	return nil
}

// Blur validates field and records the outcome.
func (p *ProfileEditor) Blur(field string) {
	for f, msg := range validateField(Personal, field, p.info.Field) {
		p.errors.Set(types.ProfileEntryID, f, msg)
	}
}

// BlurAll validates every profile field that has a rule.
func (p *ProfileEditor) BlurAll() {
	for f := range rulesFor[Personal].fields {
		p.Blur(f)
	}
}
