package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/types"
)

func TestNewDocument_SkipsBlankEntries(t *testing.T) {
	doc := NewDocument(sampleCV())

	assert.Len(t, doc.Education, 1)
	assert.Len(t, doc.Companies, 2)
	require.Len(t, doc.Skills, 2)
	assert.Equal(t, "Technical", doc.Skills[0].Category)
	assert.Equal(t, "Algorithms (expert), Notation", doc.Skills[0].Names())
	assert.Equal(t, "Other", doc.Skills[1].Category)
}

func TestNewDocument_NilUsesEmptyCV(t *testing.T) {
	doc := NewDocument(nil)
	assert.Equal(t, "Curriculum Vitae", doc.Title())
	assert.Empty(t, doc.Companies)
}

func TestNewDocument_SummaryFallsBackToAssets(t *testing.T) {
	cv := types.NewCVData()
	cv.CVAssets = types.Some(types.CVAssets{ProfessionalSummary: "Generated summary"})
	assert.Equal(t, "Generated summary", NewDocument(cv).Summary)

	cv.Profile.Summary = "Own words"
	assert.Equal(t, "Own words", NewDocument(cv).Summary)
}

func TestGroupByCompanyAndRole(t *testing.T) {
	companies := groupByCompanyAndRole(sampleCV().Experience)

	require.Len(t, companies, 2)
	// A current role sorts ahead of any end date.
	assert.Equal(t, "Royal Society", companies[0].Company)
	assert.Equal(t, "1843-01 - Present", companies[0].Roles[0].Dates(" - "))

	babbage := companies[1]
	require.Len(t, babbage.Roles, 1)
	assert.Equal(t, "1838-03 -- 1839-12, 1840-01 -- 1842-06", babbage.Roles[0].Dates(" -- "))
	assert.Equal(t, []string{"Designed algorithms."}, babbage.Roles[0].Descriptions)
	assert.Equal(t, []string{"First published program"}, babbage.Roles[0].Achievements)
}

func TestMergeDateRanges_Deduplicates(t *testing.T) {
	ranges := mergeDateRanges([]types.Experience{
		{StartDate: "2021-01", EndDate: "2022-01"},
		{StartDate: "2021-01", EndDate: "2022-01"},
		{},
	})
	assert.Equal(t, []DateRange{{Start: "2021-01", End: "2022-01"}}, ranges)
}

func TestDateRangeFormat(t *testing.T) {
	tests := []struct {
		r    DateRange
		want string
	}{
		{DateRange{Start: "2020-01", End: "2021-02"}, "2020-01 - 2021-02"},
		{DateRange{Start: "2020-01", Current: true}, "2020-01 - Present"},
		{DateRange{Start: "2020-01"}, "2020-01 - Present"},
		{DateRange{End: "2021-02"}, "2021-02"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.r.Format(" - "))
	}
}
