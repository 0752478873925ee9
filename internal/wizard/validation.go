package wizard

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/cv-builder/internal/types"
)

// MinProjectDescription is the shortest accepted non-empty project description, in runes.
const MinProjectDescription = 20

type gate struct {
	check func(cv *types.CVData) bool
	hint  string
}

func always(*types.CVData) bool { return true }

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// gates is the forward-navigation policy, one predicate per step.
var gates = map[Step]gate{
	StepPersonal: {
		check: func(cv *types.CVData) bool {
			return !blank(cv.Profile.FullName) && !blank(cv.Profile.Email)
		},
		hint: "Enter your full name and email to continue.",
	},
	StepEducation: {
		check: func(cv *types.CVData) bool {
			for _, e := range cv.Education {
				if blank(e.Institution) && blank(e.Course) {
					return false
				}
			}
			return true
		},
		hint: "Each education entry needs an institution or a course.",
	},
	StepExperience: {
		check: func(cv *types.CVData) bool {
			for _, e := range cv.Experience {
				if blank(e.Company) && blank(e.JobTitle) {
					return false
				}
			}
			return true
		},
		hint: "Each experience entry needs a company or a job title.",
	},
	StepSkills: {check: always},
	StepProjects: {
		check: func(cv *types.CVData) bool {
			for _, p := range cv.Projects {
				d := strings.TrimSpace(p.Description)
				if d != "" && utf8.RuneCountInString(d) < MinProjectDescription {
					return false
				}
			}
			return true
		},
		hint: "Project descriptions must be empty or at least 20 characters.",
	},
	StepCertifications: {check: always},
	StepLanguages:      {check: always},
	StepReferences:     {check: always},
	StepReview:         {check: always},
}

// Validate reports whether the wizard may leave step forward with cv.
func Validate(step Step, cv *types.CVData) bool {
	g, ok := gates[step]
	if !ok {
		return false
	}
	return g.check(cv)
}

// GateHint explains a failing gate, or returns "" when step passes.
func GateHint(step Step, cv *types.CVData) string {
	if Validate(step, cv) {
		return ""
	}
	return gates[step].hint
}
