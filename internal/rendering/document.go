package rendering

import (
	"sort"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// Document is the format-neutral view of a CV shared by every renderer.
// Values are raw text; each renderer applies its own escaping.
type Document struct {
	Name      string
	Headline  string
	Contact   []string
	Links     []string
	Summary   string
	Companies []CompanySection
	Education []types.Education
	Skills    []SkillGroup
	Projects  []types.Project
	Certs     []types.Certification
	Languages []types.Language
	Refs      []types.Reference
	Insights  *types.AIInsights
	Assets    *types.CVAssets
}

// CompanySection represents a company with one or more roles
type CompanySection struct {
	Company  string
	Location string
	Roles    []RoleSection
}

// RoleSection represents a role within a company with merged date ranges
type RoleSection struct {
	Role         string
	Ranges       []DateRange
	Descriptions []string
	Achievements []string
}

// Dates formats the merged ranges with sep between start and end, e.g. "2020-01 - Present".
func (r RoleSection) Dates(sep string) string {
	parts := make([]string, len(r.Ranges))
	for i, d := range r.Ranges {
		parts[i] = d.Format(sep)
	}
	return strings.Join(parts, ", ")
}

// DateRange is a single employment period.
type DateRange struct {
	Start   string
	End     string
	Current bool
}

// Format renders the range; an open range ends in "Present".
func (d DateRange) Format(sep string) string {
	end := d.End
	if d.Current || end == "" {
		end = "Present"
	}
	if d.Start == "" {
		return end
	}
	return d.Start + sep + end
}

// SkillGroup collects skills that share a category.
type SkillGroup struct {
	Category string
	Skills   []types.Skill
}

// Names returns the skill names joined for inline display.
func (g SkillGroup) Names() string {
	names := make([]string, 0, len(g.Skills))
	for _, s := range g.Skills {
		if s.Level != "" {
			names = append(names, s.Name+" ("+s.Level+")")
			continue
		}
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}

// NewDocument builds the view model. Blank entries (nothing filled in yet) are skipped.
func NewDocument(cv *types.CVData) *Document {
	if cv == nil {
		cv = types.NewCVData()
	}
	p := cv.Profile
	doc := &Document{
		Name:     strings.TrimSpace(p.FullName),
		Headline: strings.TrimSpace(p.JobTitle),
		Contact:  nonEmpty(p.Email, p.Phone, p.Location),
		Links:    nonEmpty(p.LinkedIn, p.GitHub, p.Website),
		Summary:  strings.TrimSpace(p.Summary),
	}
	if assets, ok := cv.CVAssets.Get(); ok {
		doc.Assets = &assets
		if doc.Summary == "" {
			doc.Summary = strings.TrimSpace(assets.ProfessionalSummary)
		}
	}
	if insights, ok := cv.AIInsights.Get(); ok {
		doc.Insights = &insights
	}

	doc.Companies = groupByCompanyAndRole(cv.Experience)
	doc.Skills = groupSkills(cv.Skills)
	for _, e := range cv.Education {
		if e.Institution != "" || e.Course != "" {
			doc.Education = append(doc.Education, e)
		}
	}
	for _, pr := range cv.Projects {
		if pr.Name != "" {
			doc.Projects = append(doc.Projects, pr)
		}
	}
	for _, c := range cv.Certifications {
		if c.Name != "" {
			doc.Certs = append(doc.Certs, c)
		}
	}
	for _, l := range cv.Languages {
		if l.Name != "" {
			doc.Languages = append(doc.Languages, l)
		}
	}
	for _, r := range cv.References {
		if r.Name != "" {
			doc.Refs = append(doc.Refs, r)
		}
	}
	return doc
}

// ContactLine joins contact details and links with sep.
func (d *Document) ContactLine(sep string) string {
	return strings.Join(append(append([]string{}, d.Contact...), d.Links...), sep)
}

// Title is the document title, falling back to a generic label.
func (d *Document) Title() string {
	if d.Name == "" {
		return "Curriculum Vitae"
	}
	return d.Name
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// roleKey is used for grouping entries by company and role
type roleKey struct {
	Company string
	Role    string
}

// groupByCompanyAndRole groups experience by company, then by role, merging date ranges.
// Companies are ordered most recent first; a current role sorts ahead of any end date.
func groupByCompanyAndRole(entries []types.Experience) []CompanySection {
	roleData := make(map[roleKey][]types.Experience)
	companyOrder := []string{}                    // Track order companies appear
	companyRoleOrder := make(map[string][]string) // Track order roles appear within each company
	seenRoles := make(map[roleKey]bool)
	locations := make(map[string]string)

	for _, e := range entries {
		company := strings.TrimSpace(e.Company)
		role := strings.TrimSpace(e.JobTitle)
		if company == "" && role == "" {
			continue
		}
		if _, seen := companyRoleOrder[company]; !seen {
			companyOrder = append(companyOrder, company)
			companyRoleOrder[company] = nil
		}
		key := roleKey{Company: company, Role: role}
		if !seenRoles[key] {
			seenRoles[key] = true
			companyRoleOrder[company] = append(companyRoleOrder[company], role)
		}
		if locations[company] == "" {
			locations[company] = strings.TrimSpace(e.Location)
		}
		roleData[key] = append(roleData[key], e)
	}

	companies := make([]CompanySection, 0, len(companyOrder))
	latest := make(map[string]string)
	for _, company := range companyOrder {
		section := CompanySection{Company: company, Location: locations[company]}
		for _, role := range companyRoleOrder[company] {
			group := roleData[roleKey{Company: company, Role: role}]
			rs := RoleSection{Role: role, Ranges: mergeDateRanges(group)}
			for _, e := range group {
				if d := strings.TrimSpace(e.Description); d != "" {
					rs.Descriptions = append(rs.Descriptions, d)
				}
				rs.Achievements = append(rs.Achievements, e.Achievements...)
				if end := sortableEnd(e); end > latest[company] {
					latest[company] = end
				}
			}
			section.Roles = append(section.Roles, rs)
		}
		companies = append(companies, section)
	}

	sort.SliceStable(companies, func(i, j int) bool {
		return latest[companies[i].Company] > latest[companies[j].Company]
	})
	return companies
}

// sortableEnd maps an entry to a lexically comparable end date (YYYY-MM).
func sortableEnd(e types.Experience) string {
	if e.Current {
		return "9999-12"
	}
	if e.EndDate != "" {
		return e.EndDate
	}
	return e.StartDate
}

// mergeDateRanges collects unique date ranges and sorts them chronologically
func mergeDateRanges(entries []types.Experience) []DateRange {
	seen := make(map[DateRange]bool)
	ranges := []DateRange{}
	for _, e := range entries {
		if e.StartDate == "" && e.EndDate == "" && !e.Current {
			continue
		}
		r := DateRange{Start: e.StartDate, End: e.EndDate, Current: e.Current}
		if r.Current {
			r.End = ""
		}
		if !seen[r] {
			seen[r] = true
			ranges = append(ranges, r)
		}
	}
	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].Start < ranges[j].Start
	})
	return ranges
}

// groupSkills groups by category in first-seen order; uncategorized skills come last.
func groupSkills(skills []types.Skill) []SkillGroup {
	var groups []SkillGroup
	index := make(map[string]int)
	var other []types.Skill
	for _, s := range skills {
		if strings.TrimSpace(s.Name) == "" {
			continue
		}
		cat := strings.TrimSpace(s.Category)
		if cat == "" {
			other = append(other, s)
			continue
		}
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, SkillGroup{Category: cat})
		}
		groups[i].Skills = append(groups[i].Skills, s)
	}
	if len(other) > 0 {
		groups = append(groups, SkillGroup{Category: "Other", Skills: other})
	}
	return groups
}
