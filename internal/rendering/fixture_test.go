package rendering

import "github.com/jonathan/cv-builder/internal/types"

func sampleCV() *types.CVData {
	cv := types.NewCVData()
	cv.Profile = types.PersonalInfo{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Phone:    "+44 20 1234",
		Location: "London",
		JobTitle: "Analyst & Programmer",
		GitHub:   "https://github.com/ada",
		Summary:  "Writes **programs** for the Analytical Engine.",
	}
	cv.Experience = []types.Experience{
		{ID: "e1", Company: "Babbage Ltd", JobTitle: "Engineer", StartDate: "1840-01", EndDate: "1842-06",
			Description: "Designed algorithms.", Achievements: []string{"First published program"}},
		{ID: "e2", Company: "Royal Society", JobTitle: "Fellow", StartDate: "1843-01", Current: true},
		{ID: "e3", Company: "Babbage Ltd", JobTitle: "Engineer", StartDate: "1838-03", EndDate: "1839-12"},
		{ID: "e4"},
	}
	cv.Education = []types.Education{
		{ID: "ed1", Institution: "Home Tutoring", Course: "Mathematics", StartYear: "1830", EndYear: "1835"},
		{ID: "ed2"},
	}
	cv.Skills = []types.Skill{
		{ID: "s1", Name: "Algorithms", Level: "expert", Category: "Technical"},
		{ID: "s2", Name: "Notation", Category: "Technical"},
		{ID: "s3", Name: "Poetry"},
		{ID: "s4"},
	}
	cv.Projects = []types.Project{
		{ID: "p1", Name: "Note G", Description: "Bernoulli numbers on the Engine", TechStack: []string{"punch cards"}, URL: "https://example.com/g"},
	}
	cv.Certifications = []types.Certification{
		{ID: "c1", Name: "Difference Engine Operator", Issuer: "Babbage Ltd", IssueDate: "1841-02"},
	}
	cv.Languages = []types.Language{{ID: "l1", Name: "French", Proficiency: "fluent"}}
	cv.References = []types.Reference{{ID: "r1", Name: "Charles Babbage", Company: "Babbage Ltd", Email: "cb@example.com"}}
	return cv
}
