package types

// AIInsights is the analysis block attached by the enhancement service.
type AIInsights struct {
	ATSScore     int      `json:"ats_score,omitempty"`
	Strengths    []string `json:"strengths,omitempty"`
	Improvements []string `json:"improvements,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
}

// CVAssets holds generated companion text for the CV.
type CVAssets struct {
	ProfessionalSummary string `json:"professional_summary,omitempty"`
	CoverLetter         string `json:"cover_letter,omitempty"`
	LinkedInHeadline    string `json:"linkedin_headline,omitempty"`
}
