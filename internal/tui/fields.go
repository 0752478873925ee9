package tui

import (
	"github.com/jonathan/cv-builder/internal/draftcache"
	"github.com/jonathan/cv-builder/internal/sections"
)

// fieldSpec is one input of a step form.
type fieldSpec struct {
	Key         string
	Label       string
	Placeholder string
	// Suggest names the suggestion list offered while typing, if any.
	Suggest draftcache.SuggestionKind
}

var formFields = map[sections.Section][]fieldSpec{
	sections.Personal: {
		{Key: "full_name", Label: "Full name", Placeholder: "Ada Lovelace"},
		{Key: "email", Label: "Email", Placeholder: "ada@example.com"},
		{Key: "phone", Label: "Phone"},
		{Key: "location", Label: "Location", Suggest: draftcache.SuggestLocations},
		{Key: "job_title", Label: "Job title", Suggest: draftcache.SuggestJobTitles},
		{Key: "linkedin", Label: "LinkedIn", Placeholder: "https://linkedin.com/in/..."},
		{Key: "github", Label: "GitHub", Placeholder: "https://github.com/..."},
		{Key: "website", Label: "Website"},
		{Key: "summary", Label: "Summary"},
	},
	sections.Education: {
		{Key: "institution", Label: "Institution"},
		{Key: "course", Label: "Course"},
		{Key: "field_of_study", Label: "Field of study"},
		{Key: "start_year", Label: "Start year", Placeholder: "2018"},
		{Key: "end_year", Label: "End year", Placeholder: "2022"},
		{Key: "grade", Label: "Grade"},
		{Key: "description", Label: "Description"},
	},
	sections.Experience: {
		{Key: "company", Label: "Company", Suggest: draftcache.SuggestCompanies},
		{Key: "job_title", Label: "Job title", Suggest: draftcache.SuggestJobTitles},
		{Key: "location", Label: "Location", Suggest: draftcache.SuggestLocations},
		{Key: "start_date", Label: "Start", Placeholder: "YYYY-MM"},
		{Key: "end_date", Label: "End", Placeholder: "YYYY-MM"},
		{Key: "current", Label: "Current role", Placeholder: "yes / no"},
		{Key: "description", Label: "Description"},
		{Key: "achievements", Label: "Achievements", Placeholder: "comma, separated"},
	},
	sections.Skills: {
		{Key: "name", Label: "Skill", Suggest: draftcache.SuggestSkills},
		{Key: "level", Label: "Level", Placeholder: "beginner | intermediate | advanced | expert"},
		{Key: "category", Label: "Category"},
	},
	sections.Projects: {
		{Key: "name", Label: "Name"},
		{Key: "description", Label: "Description"},
		{Key: "tech_stack", Label: "Tech stack", Placeholder: "Go, PostgreSQL"},
		{Key: "url", Label: "URL"},
		{Key: "start_date", Label: "Start", Placeholder: "YYYY-MM"},
		{Key: "end_date", Label: "End", Placeholder: "YYYY-MM"},
	},
	sections.Certifications: {
		{Key: "name", Label: "Name"},
		{Key: "issuer", Label: "Issuer"},
		{Key: "issue_date", Label: "Issued", Placeholder: "YYYY-MM"},
		{Key: "expiry_date", Label: "Expires", Placeholder: "YYYY-MM"},
		{Key: "credential_id", Label: "Credential ID"},
		{Key: "url", Label: "URL"},
	},
	sections.Languages: {
		{Key: "name", Label: "Language"},
		{Key: "proficiency", Label: "Proficiency"},
	},
	sections.References: {
		{Key: "name", Label: "Name"},
		{Key: "position", Label: "Position"},
		{Key: "company", Label: "Company", Suggest: draftcache.SuggestCompanies},
		{Key: "email", Label: "Email"},
		{Key: "phone", Label: "Phone"},
		{Key: "relationship", Label: "Relationship"},
	},
}
