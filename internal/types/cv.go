// Package types provides type definitions for structured data used throughout the cv-builder system.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// CVData is the aggregate CV document built by the wizard.
type CVData struct {
	Profile        PersonalInfo         `json:"profile"`
	Education      []Education          `json:"education"`
	Experience     []Experience         `json:"experience"`
	Skills         []Skill              `json:"skills"`
	Projects       []Project            `json:"projects"`
	Certifications []Certification      `json:"certifications"`
	Languages      []Language           `json:"languages"`
	References     []Reference          `json:"references"`
	AIInsights     Optional[AIInsights] `json:"ai_insights"`
	CVAssets       Optional[CVAssets]   `json:"cv_assets"`
}

// NewCVData returns an empty document with non-nil section slices.
func NewCVData() *CVData {
	return &CVData{
		Education:      []Education{},
		Experience:     []Experience{},
		Skills:         []Skill{},
		Projects:       []Project{},
		Certifications: []Certification{},
		Languages:      []Language{},
		References:     []Reference{},
	}
}

// Clone returns a deep copy of the document.
func (cv *CVData) Clone() *CVData {
	if cv == nil {
		return nil
	}
	out := *cv
	out.Education = cloneSlice(cv.Education)
	out.Experience = make([]Experience, len(cv.Experience))
	for i, e := range cv.Experience {
		e.Achievements = cloneSlice(e.Achievements)
		out.Experience[i] = e
	}
	out.Skills = cloneSlice(cv.Skills)
	out.Projects = make([]Project, len(cv.Projects))
	for i, p := range cv.Projects {
		p.TechStack = cloneSlice(p.TechStack)
		out.Projects[i] = p
	}
	out.Certifications = cloneSlice(cv.Certifications)
	out.Languages = cloneSlice(cv.Languages)
	out.References = cloneSlice(cv.References)
	if v, ok := cv.AIInsights.Get(); ok {
		v.Strengths = cloneSlice(v.Strengths)
		v.Improvements = cloneSlice(v.Improvements)
		v.Keywords = cloneSlice(v.Keywords)
		out.AIInsights = Some(v)
	}
	return &out
}

// Normalize replaces nil section slices with empty ones so the JSON form is stable.
func (cv *CVData) Normalize() {
	if cv.Education == nil {
		cv.Education = []Education{}
	}
	if cv.Experience == nil {
		cv.Experience = []Experience{}
	}
	if cv.Skills == nil {
		cv.Skills = []Skill{}
	}
	if cv.Projects == nil {
		cv.Projects = []Project{}
	}
	if cv.Certifications == nil {
		cv.Certifications = []Certification{}
	}
	if cv.Languages == nil {
		cv.Languages = []Language{}
	}
	if cv.References == nil {
		cv.References = []Reference{}
	}
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// PersonalInfo is the singleton contact and summary record.
type PersonalInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	JobTitle string `json:"job_title,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

// ProfileEntryID is the error-bag key used for the singleton profile.
const ProfileEntryID = "profile"

// EntryID implements the section entry contract for the profile.
func (p PersonalInfo) EntryID() string { return ProfileEntryID }

// Field returns the value of a named field.
func (p PersonalInfo) Field(field string) string {
	switch field {
	case "full_name":
		return p.FullName
	case "email":
		return p.Email
	case "phone":
		return p.Phone
	case "location":
		return p.Location
	case "job_title":
		return p.JobTitle
	case "linkedin":
		return p.LinkedIn
	case "github":
		return p.GitHub
	case "website":
		return p.Website
	case "summary":
		return p.Summary
	}
	return ""
}

// WithField returns a copy with the named field set.
func (p PersonalInfo) WithField(field, value string) (PersonalInfo, error) {
	switch field {
	case "full_name":
		p.FullName = value
	case "email":
		p.Email = value
	case "phone":
		p.Phone = value
	case "location":
		p.Location = value
	case "job_title":
		p.JobTitle = value
	case "linkedin":
		p.LinkedIn = value
	case "github":
		p.GitHub = value
	case "website":
		p.Website = value
	case "summary":
		p.Summary = value
	default:
		return p, &UnknownFieldError{Section: "profile", Field: field}
	}
	return p, nil
}

// Education is a single education entry.
type Education struct {
	ID           string `json:"id"`
	Institution  string `json:"institution"`
	Course       string `json:"course"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	StartYear    string `json:"start_year,omitempty"`
	EndYear      string `json:"end_year,omitempty"`
	Grade        string `json:"grade,omitempty"`
	Description  string `json:"description,omitempty"`
}

// EntryID returns the stable entry identifier.
func (e Education) EntryID() string { return e.ID }

// WithEntryID returns a copy carrying id.
func (e Education) WithEntryID(id string) Education {
	e.ID = id
	return e
}

// Field returns the value of a named field.
func (e Education) Field(field string) string {
	switch field {
	case "institution":
		return e.Institution
	case "course":
		return e.Course
	case "field_of_study":
		return e.FieldOfStudy
	case "start_year":
		return e.StartYear
	case "end_year":
		return e.EndYear
	case "grade":
		return e.Grade
	case "description":
		return e.Description
	}
	return ""
}

// WithField returns a copy with the named field set.
func (e Education) WithField(field, value string) (Education, error) {
	switch field {
	case "institution":
		e.Institution = value
	case "course":
		e.Course = value
	case "field_of_study":
		e.FieldOfStudy = value
	case "start_year":
		e.StartYear = value
	case "end_year":
		e.EndYear = value
	case "grade":
		e.Grade = value
	case "description":
		e.Description = value
	default:
		return e, &UnknownFieldError{Section: "education", Field: field}
	}
	return e, nil
}

// Experience is a single work-history entry.
type Experience struct {
	ID           string   `json:"id"`
	Company      string   `json:"company"`
	JobTitle     string   `json:"job_title"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"start_date,omitempty"` // YYYY-MM
	EndDate      string   `json:"end_date,omitempty"`   // YYYY-MM, empty when current
	Current      bool     `json:"current,omitempty"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// EntryID returns the stable entry identifier.
func (e Experience) EntryID() string { return e.ID }

// WithEntryID returns a copy carrying id.
func (e Experience) WithEntryID(id string) Experience {
	e.ID = id
	return e
}

// Field returns the value of a named field.
func (e Experience) Field(field string) string {
	switch field {
	case "company":
		return e.Company
	case "job_title":
		return e.JobTitle
	case "location":
		return e.Location
	case "start_date":
		return e.StartDate
	case "end_date":
		return e.EndDate
	case "current":
		return strconv.FormatBool(e.Current)
	case "description":
		return e.Description
	case "achievements":
		return JoinList(e.Achievements)
	}
	return ""
}

// WithField returns a copy with the named field set.
func (e Experience) WithField(field, value string) (Experience, error) {
	switch field {
	case "company":
		e.Company = value
	case "job_title":
		e.JobTitle = value
	case "location":
		e.Location = value
	case "start_date":
		e.StartDate = value
	case "end_date":
		e.EndDate = value
	case "current":
		b, err := parseBool(value)
		if err != nil {
			return e, &InvalidValueError{Section: "experience", Field: field, Value: value}
		}
		e.Current = b
		if b {
			e.EndDate = ""
		}
	case "description":
		e.Description = value
	case "achievements":
		e.Achievements = SplitList(value)
	default:
		return e, &UnknownFieldError{Section: "experience", Field: field}
	}
	return e, nil
}

// Skill is a single skill entry.
type Skill struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Level    string `json:"level,omitempty"` // beginner, intermediate, advanced, expert
	Category string `json:"category,omitempty"`
}

// EntryID returns the stable entry identifier.
func (s Skill) EntryID() string { return s.ID }

// WithEntryID returns a copy carrying id.
func (s Skill) WithEntryID(id string) Skill {
	s.ID = id
	return s
}

// Field returns the value of a named field.
func (s Skill) Field(field string) string {
	switch field {
	case "name":
		return s.Name
	case "level":
		return s.Level
	case "category":
		return s.Category
	}
	return ""
}

// WithField returns a copy with the named field set.
func (s Skill) WithField(field, value string) (Skill, error) {
	switch field {
	case "name":
		s.Name = value
	case "level":
		s.Level = value
	case "category":
		s.Category = value
	default:
		return s, &UnknownFieldError{Section: "skills", Field: field}
	}
	return s, nil
}

// Project is a single project entry.
type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TechStack   []string `json:"tech_stack,omitempty"`
	URL         string   `json:"url,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
}

// EntryID returns the stable entry identifier.
func (p Project) EntryID() string { return p.ID }

// WithEntryID returns a copy carrying id.
func (p Project) WithEntryID(id string) Project {
	p.ID = id
	return p
}

// Field returns the value of a named field.
func (p Project) Field(field string) string {
	switch field {
	case "name":
		return p.Name
	case "description":
		return p.Description
	case "tech_stack":
		return JoinList(p.TechStack)
	case "url":
		return p.URL
	case "start_date":
		return p.StartDate
	case "end_date":
		return p.EndDate
	}
	return ""
}

// WithField returns a copy with the named field set.
func (p Project) WithField(field, value string) (Project, error) {
	switch field {
	case "name":
		p.Name = value
	case "description":
		p.Description = value
	case "tech_stack":
		p.TechStack = SplitList(value)
	case "url":
		p.URL = value
	case "start_date":
		p.StartDate = value
	case "end_date":
		p.EndDate = value
	default:
		return p, &UnknownFieldError{Section: "projects", Field: field}
	}
	return p, nil
}

// Certification is a single certification entry.
type Certification struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Issuer       string `json:"issuer,omitempty"`
	IssueDate    string `json:"issue_date,omitempty"`
	ExpiryDate   string `json:"expiry_date,omitempty"`
	CredentialID string `json:"credential_id,omitempty"`
	URL          string `json:"url,omitempty"`
}

// EntryID returns the stable entry identifier.
func (c Certification) EntryID() string { return c.ID }

// WithEntryID returns a copy carrying id.
func (c Certification) WithEntryID(id string) Certification {
	c.ID = id
	return c
}

// Field returns the value of a named field.
func (c Certification) Field(field string) string {
	switch field {
	case "name":
		return c.Name
	case "issuer":
		return c.Issuer
	case "issue_date":
		return c.IssueDate
	case "expiry_date":
		return c.ExpiryDate
	case "credential_id":
		return c.CredentialID
	case "url":
		return c.URL
	}
	return ""
}

// WithField returns a copy with the named field set.
func (c Certification) WithField(field, value string) (Certification, error) {
	switch field {
	case "name":
		c.Name = value
	case "issuer":
		c.Issuer = value
	case "issue_date":
		c.IssueDate = value
	case "expiry_date":
		c.ExpiryDate = value
	case "credential_id":
		c.CredentialID = value
	case "url":
		c.URL = value
	default:
		return c, &UnknownFieldError{Section: "certifications", Field: field}
	}
	return c, nil
}

// Language is a single spoken-language entry.
type Language struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"`
}

// EntryID returns the stable entry identifier.
func (l Language) EntryID() string { return l.ID }

// WithEntryID returns a copy carrying id.
func (l Language) WithEntryID(id string) Language {
	l.ID = id
	return l
}

// Field returns the value of a named field.
func (l Language) Field(field string) string {
	switch field {
	case "name":
		return l.Name
	case "proficiency":
		return l.Proficiency
	}
	return ""
}

// WithField returns a copy with the named field set.
func (l Language) WithField(field, value string) (Language, error) {
	switch field {
	case "name":
		l.Name = value
	case "proficiency":
		l.Proficiency = value
	default:
		return l, &UnknownFieldError{Section: "languages", Field: field}
	}
	return l, nil
}

// Reference is a single professional reference.
type Reference struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Position     string `json:"position,omitempty"`
	Company      string `json:"company,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

// EntryID returns the stable entry identifier.
func (r Reference) EntryID() string { return r.ID }

// WithEntryID returns a copy carrying id.
func (r Reference) WithEntryID(id string) Reference {
	r.ID = id
	return r
}

// Field returns the value of a named field.
func (r Reference) Field(field string) string {
	switch field {
	case "name":
		return r.Name
	case "position":
		return r.Position
	case "company":
		return r.Company
	case "email":
		return r.Email
	case "phone":
		return r.Phone
	case "relationship":
		return r.Relationship
	}
	return ""
}

// WithField returns a copy with the named field set.
func (r Reference) WithField(field, value string) (Reference, error) {
	switch field {
	case "name":
		r.Name = value
	case "position":
		r.Position = value
	case "company":
		r.Company = value
	case "email":
		r.Email = value
	case "phone":
		r.Phone = value
	case "relationship":
		r.Relationship = value
	default:
		return r, &UnknownFieldError{Section: "references", Field: field}
	}
	return r, nil
}

// SplitList splits a comma-separated form value into trimmed, non-empty items.
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// JoinList is the inverse of SplitList for display in a form field.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "false", "no", "n", "0", "off":
		return false, nil
	case "true", "yes", "y", "1", "on":
		return true, nil
	}
	return false, fmt.Errorf("not a boolean: %q", value)
}
