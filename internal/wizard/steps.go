// Package wizard drives the CV builder: the ordered steps, the per-step
// gates, the draft session and the automatic enhancement on review.
package wizard

import (
	"fmt"

	"github.com/jonathan/cv-builder/internal/sections"
)

// Step is one screen of the wizard.
type Step string

const (
	StepPersonal       Step = "personal"
	StepEducation      Step = "education"
	StepExperience     Step = "experience"
	StepSkills         Step = "skills"
	StepProjects       Step = "projects"
	StepCertifications Step = "certifications"
	StepLanguages      Step = "languages"
	StepReferences     Step = "references"
	StepReview         Step = "review"
)

// Steps is the fixed wizard order.
var Steps = []Step{
	StepPersonal,
	StepEducation,
	StepExperience,
	StepSkills,
	StepProjects,
	StepCertifications,
	StepLanguages,
	StepReferences,
	StepReview,
}

var titles = map[Step]string{
	StepPersonal:       "Personal Information",
	StepEducation:      "Education",
	StepExperience:     "Work Experience",
	StepSkills:         "Skills",
	StepProjects:       "Projects",
	StepCertifications: "Certifications",
	StepLanguages:      "Languages",
	StepReferences:     "References",
	StepReview:         "Review & Enhance",
}

var interviewQuestions = map[Step]string{
	StepPersonal:       "Let's start with you. What's your name, and how can employers reach you?",
	StepEducation:      "Where did you study, and what did you focus on?",
	StepExperience:     "Tell me about the roles you've held. What did you achieve in each?",
	StepSkills:         "Which skills do you use most, and how confident are you in each?",
	StepProjects:       "Is there a project you're proud of? What did you build and with what?",
	StepCertifications: "Do you hold any certifications or licences?",
	StepLanguages:      "Which languages do you speak, and how well?",
	StepReferences:     "Who could vouch for your work?",
	StepReview:         "Here's your CV. Want me to polish it?",
}

// Title returns the display title of s.
func Title(s Step) string {
	return titles[s]
}

// InterviewQuestion returns the prompt that leads s in ai-interview mode.
func InterviewQuestion(s Step) string {
	return interviewQuestions[s]
}

// IndexOf returns the position of s in Steps, or -1.
func IndexOf(s Step) int {
	for i, st := range Steps {
		if st == s {
			return i
		}
	}
	return -1
}

// ParseStep validates a step name.
func ParseStep(name string) (Step, error) {
	if IndexOf(Step(name)) < 0 {
		return "", fmt.Errorf("unknown step: %q", name)
	}
	return Step(name), nil
}

// Section returns the section edited on s; review edits none.
func (s Step) Section() (sections.Section, bool) {
	if s == StepReview || IndexOf(s) < 0 {
		return "", false
	}
	return sections.Section(s), true
}
