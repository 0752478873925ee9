package wizard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cv-builder/internal/types"
)

func TestValidate(t *testing.T) {
	withProfile := func(name, email string) *types.CVData {
		cv := types.NewCVData()
		cv.Profile.FullName = name
		cv.Profile.Email = email
		return cv
	}
	withEducation := func(entries ...types.Education) *types.CVData {
		cv := types.NewCVData()
		cv.Education = entries
		return cv
	}
	withExperience := func(entries ...types.Experience) *types.CVData {
		cv := types.NewCVData()
		cv.Experience = entries
		return cv
	}
	withProject := func(desc string) *types.CVData {
		cv := types.NewCVData()
		cv.Projects = []types.Project{{ID: "p", Description: desc}}
		return cv
	}

	tests := []struct {
		name string
		step Step
		cv   *types.CVData
		want bool
	}{
		{"personal complete", StepPersonal, withProfile("Ada", "ada@example.com"), true},
		{"personal email format not checked", StepPersonal, withProfile("Ada", "not-an-email"), true},
		{"personal missing name", StepPersonal, withProfile("", "ada@example.com"), false},
		{"personal whitespace name", StepPersonal, withProfile("   ", "ada@example.com"), false},
		{"personal missing email", StepPersonal, withProfile("Ada", ""), false},

		{"education empty", StepEducation, withEducation(), true},
		{"education institution only", StepEducation, withEducation(types.Education{ID: "e", Institution: "MIT"}), true},
		{"education course only", StepEducation, withEducation(types.Education{ID: "e", Course: "BSc"}), true},
		{"education blank entry", StepEducation, withEducation(types.Education{ID: "e", Institution: "MIT"}, types.Education{ID: "f"}), false},

		{"experience empty", StepExperience, withExperience(), true},
		{"experience company only", StepExperience, withExperience(types.Experience{ID: "x", Company: "Acme"}), true},
		{"experience title only", StepExperience, withExperience(types.Experience{ID: "x", JobTitle: "Engineer"}), true},
		{"experience blank entry", StepExperience, withExperience(types.Experience{ID: "x", Location: "Remote"}), false},

		{"skills always", StepSkills, &types.CVData{Skills: []types.Skill{{}}}, true},

		{"projects empty", StepProjects, types.NewCVData(), true},
		{"project no description", StepProjects, withProject(""), true},
		{"project whitespace description", StepProjects, withProject("    "), true},
		{"project 19 runes", StepProjects, withProject(strings.Repeat("a", 19)), false},
		{"project 20 runes", StepProjects, withProject(strings.Repeat("a", 20)), true},
		{"project 20 multibyte runes", StepProjects, withProject(strings.Repeat("é", 20)), true},
		{"project 19 runes padded", StepProjects, withProject("  " + strings.Repeat("a", 19) + "  "), false},

		{"certifications always", StepCertifications, &types.CVData{Certifications: []types.Certification{{}}}, true},
		{"languages always", StepLanguages, &types.CVData{Languages: []types.Language{{}}}, true},
		{"references always", StepReferences, &types.CVData{References: []types.Reference{{}}}, true},
		{"review no gating", StepReview, types.NewCVData(), true},
		{"unknown step", Step("bogus"), types.NewCVData(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.step, tt.cv))
		})
	}
}

func TestGateHint(t *testing.T) {
	cv := types.NewCVData()
	assert.Contains(t, GateHint(StepPersonal, cv), "full name")
	assert.Empty(t, GateHint(StepSkills, cv))
}

func TestSteps(t *testing.T) {
	assert.Len(t, Steps, 9)
	assert.Equal(t, StepPersonal, Steps[0])
	assert.Equal(t, StepReview, Steps[len(Steps)-1])
	for _, s := range Steps {
		assert.NotEmpty(t, Title(s), "title for %s", s)
		assert.NotEmpty(t, InterviewQuestion(s), "question for %s", s)
		_, ok := gates[s]
		assert.True(t, ok, "gate for %s", s)
	}

	_, err := ParseStep("skills")
	assert.NoError(t, err)
	_, err = ParseStep("summary")
	assert.Error(t, err)

	sec, ok := StepExperience.Section()
	assert.True(t, ok)
	assert.Equal(t, "experience", string(sec))
	_, ok = StepReview.Section()
	assert.False(t, ok)
}
