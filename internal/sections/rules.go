package sections

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// getter reads a field of the entry being validated.
type getter func(field string) string

// rule returns a message for the field it is attached to, or "".
type rule func(get getter) string

// pairRule validates an ordering between two fields; the message lands on end.
// Blurring start, end or any of also re-runs the check.
type pairRule struct {
	start, end string
	also       []string
	check      func(get getter) string
}

func (p pairRule) touches(field string) bool {
	if field == p.start || field == p.end {
		return true
	}
	for _, f := range p.also {
		if f == field {
			return true
		}
	}
	return false
}

type sectionRules struct {
	fields map[string]rule
	pairs  []pairRule
}

// rulesFor is the blur-validation table.
var rulesFor = map[Section]sectionRules{
	Personal: {
		fields: map[string]rule{
			"full_name": required("full_name", "Full name is required"),
			"email":     chain(required("email", "Email is required"), format("email", "email", "Enter a valid email address")),
			"linkedin":  format("linkedin", "omitempty,url", "Enter a valid URL"),
			"github":    format("github", "omitempty,url", "Enter a valid URL"),
			"website":   format("website", "omitempty,url", "Enter a valid URL"),
		},
	},
	Education: {
		fields: map[string]rule{
			"start_year": format("start_year", "omitempty,numeric,len=4", "Enter a four-digit year"),
			"end_year":   format("end_year", "omitempty,numeric,len=4", "Enter a four-digit year"),
		},
		pairs: []pairRule{{start: "start_year", end: "end_year", check: yearOrder}},
	},
	Experience: {
		fields: map[string]rule{
			"start_date": format("start_date", "omitempty,datetime=2006-01", "Use the YYYY-MM format"),
			"end_date":   format("end_date", "omitempty,datetime=2006-01", "Use the YYYY-MM format"),
		},
		pairs: []pairRule{{start: "start_date", end: "end_date", also: []string{"current"}, check: experienceOrder}},
	},
	Projects: {
		fields: map[string]rule{
			"url": format("url", "omitempty,url", "Enter a valid URL"),
		},
	},
	Certifications: {
		fields: map[string]rule{
			"issue_date":  format("issue_date", "omitempty,datetime=2006-01", "Use the YYYY-MM format"),
			"expiry_date": format("expiry_date", "omitempty,datetime=2006-01", "Use the YYYY-MM format"),
			"url":         format("url", "omitempty,url", "Enter a valid URL"),
		},
		pairs: []pairRule{{start: "issue_date", end: "expiry_date", check: monthOrder("issue_date", "expiry_date", "Expiry date cannot be before issue date")}},
	},
	References: {
		fields: map[string]rule{
			"email": format("email", "omitempty,email", "Enter a valid email address"),
		},
	},
}

// validateField runs the blur rules for field and returns the messages to
// store, keyed by field. A "" value means the field is clean.
func validateField(section Section, field string, get getter) map[string]string {
	rs, ok := rulesFor[section]
	if !ok {
		return nil
	}
	out := make(map[string]string)
	if r, ok := rs.fields[field]; ok {
		out[field] = r(get)
	}
	for _, p := range rs.pairs {
		if !p.touches(field) {
			continue
		}
		// A format error on end takes precedence over ordering.
		if r, ok := rs.fields[p.end]; ok {
			if msg := r(get); msg != "" {
				out[p.end] = msg
				continue
			}
		}
		out[p.end] = p.check(get)
	}
	return out
}

func required(field, msg string) rule {
	return func(get getter) string {
		if strings.TrimSpace(get(field)) == "" {
			return msg
		}
		return ""
	}
}

func format(field, tag, msg string) rule {
	return func(get getter) string {
		if err := validate.Var(strings.TrimSpace(get(field)), tag); err != nil {
			return msg
		}
		return ""
	}
}

func chain(rules ...rule) rule {
	return func(get getter) string {
		for _, r := range rules {
			if msg := r(get); msg != "" {
				return msg
			}
		}
		return ""
	}
}

func yearOrder(get getter) string {
	start, err1 := strconv.Atoi(strings.TrimSpace(get("start_year")))
	end, err2 := strconv.Atoi(strings.TrimSpace(get("end_year")))
	if err1 != nil || err2 != nil {
		return ""
	}
	if end < start {
		return "End year cannot be before start year"
	}
	return ""
}

func experienceOrder(get getter) string {
	if get("current") == "true" {
		return ""
	}
	return monthOrder("start_date", "end_date", "End date cannot be before start date")(get)
}

func monthOrder(startField, endField, msg string) func(getter) string {
	return func(get getter) string {
		start, err1 := time.Parse("2006-01", strings.TrimSpace(get(startField)))
		end, err2 := time.Parse("2006-01", strings.TrimSpace(get(endField)))
		if err1 != nil || err2 != nil {
			return ""
		}
		if end.Before(start) {
			return msg
		}
		return ""
	}
}
