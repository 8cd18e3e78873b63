package generator

import (
	"math"
	"strings"
	"time"

	"dataforge/internal/dataset"
	"dataforge/internal/random"
	"dataforge/internal/schema"
)

type salaryRange struct {
	Min float64
	Max float64
}

type hrDepartment struct {
	Name string
	// Titles are ordered junior to executive; the position in this ladder
	// drives the salary band.
	Titles    []string
	Junior    salaryRange
	Mid       salaryRange
	Senior    salaryRange
	Executive salaryRange
}

var hrDepartments = []hrDepartment{
	{
		Name:   "Engineering",
		Titles: []string{"Software Engineer", "Senior Software Engineer", "Staff Engineer", "Principal Engineer", "Engineering Manager", "VP of Engineering"},
		Junior: salaryRange{70000, 100000}, Mid: salaryRange{100000, 150000},
		Senior: salaryRange{150000, 220000}, Executive: salaryRange{200000, 350000},
	},
	{
		Name:   "Product",
		Titles: []string{"Product Manager", "Senior Product Manager", "Director of Product", "VP of Product", "Chief Product Officer"},
		Junior: salaryRange{80000, 110000}, Mid: salaryRange{110000, 160000},
		Senior: salaryRange{160000, 230000}, Executive: salaryRange{220000, 380000},
	},
	{
		Name:   "Design",
		Titles: []string{"UX Designer", "Senior UX Designer", "Product Designer", "Design Lead", "Head of Design"},
		Junior: salaryRange{60000, 85000}, Mid: salaryRange{85000, 130000},
		Senior: salaryRange{130000, 180000}, Executive: salaryRange{170000, 280000},
	},
	{
		Name:   "Marketing",
		Titles: []string{"Marketing Coordinator", "Marketing Manager", "Senior Marketing Manager", "Director of Marketing", "CMO"},
		Junior: salaryRange{45000, 65000}, Mid: salaryRange{65000, 100000},
		Senior: salaryRange{100000, 160000}, Executive: salaryRange{150000, 300000},
	},
	{
		Name:   "Sales",
		Titles: []string{"Sales Representative", "Account Executive", "Senior Account Executive", "Sales Manager", "VP of Sales"},
		Junior: salaryRange{45000, 70000}, Mid: salaryRange{70000, 120000},
		Senior: salaryRange{120000, 180000}, Executive: salaryRange{170000, 320000},
	},
	{
		Name:   "Finance",
		Titles: []string{"Financial Analyst", "Senior Financial Analyst", "Finance Manager", "Controller", "CFO"},
		Junior: salaryRange{55000, 80000}, Mid: salaryRange{80000, 120000},
		Senior: salaryRange{120000, 180000}, Executive: salaryRange{180000, 350000},
	},
	{
		Name:   "Human Resources",
		Titles: []string{"HR Coordinator", "HR Specialist", "HR Manager", "Director of HR", "Chief People Officer"},
		Junior: salaryRange{40000, 60000}, Mid: salaryRange{60000, 90000},
		Senior: salaryRange{90000, 140000}, Executive: salaryRange{140000, 250000},
	},
	{
		Name:   "Operations",
		Titles: []string{"Operations Coordinator", "Operations Manager", "Senior Operations Manager", "Director of Operations", "COO"},
		Junior: salaryRange{45000, 65000}, Mid: salaryRange{65000, 100000},
		Senior: salaryRange{100000, 150000}, Executive: salaryRange{150000, 300000},
	},
	{
		Name:   "Customer Success",
		Titles: []string{"Customer Success Rep", "Customer Success Manager", "Senior CSM", "Director of Customer Success", "VP of Customer Success"},
		Junior: salaryRange{40000, 60000}, Mid: salaryRange{60000, 95000},
		Senior: salaryRange{95000, 140000}, Executive: salaryRange{140000, 220000},
	},
	{
		Name:   "Legal",
		Titles: []string{"Paralegal", "Legal Counsel", "Senior Legal Counsel", "General Counsel", "Chief Legal Officer"},
		Junior: salaryRange{50000, 75000}, Mid: salaryRange{90000, 150000},
		Senior: salaryRange{150000, 220000}, Executive: salaryRange{220000, 400000},
	},
}

var employmentTypes = []random.Choice[string]{
	{Value: "Full-time", Weight: 80},
	{Value: "Part-time", Weight: 10},
	{Value: "Contract", Weight: 7},
	{Value: "Intern", Weight: 3},
}

var educationLevels = []random.Choice[string]{
	{Value: "High School", Weight: 15},
	{Value: "Associate Degree", Weight: 15},
	{Value: "Bachelor's Degree", Weight: 45},
	{Value: "Master's Degree", Weight: 20},
	{Value: "PhD", Weight: 5},
}

var officeLocations = []string{
	"New York, NY", "San Francisco, CA", "Seattle, WA", "Austin, TX", "Boston, MA",
	"Chicago, IL", "Los Angeles, CA", "Denver, CO", "Atlanta, GA", "Remote",
}

var performanceRatings = []random.Choice[int]{
	{Value: 1, Weight: 3},
	{Value: 2, Weight: 12},
	{Value: 3, Weight: 40},
	{Value: 4, Weight: 35},
	{Value: 5, Weight: 10},
}

// Title substrings that mark an employee as manager-pool material.
var seniorTitleMarkers = []string{"Manager", "Director", "VP", "Chief", "Lead", "Senior"}

// HRGenerator produces employee records with salary bands and a two-pass
// manager hierarchy.
type HRGenerator struct{}

func (HRGenerator) Industry() schema.Industry { return schema.HR }

// salaryFor samples a salary from the quartile band the title index falls
// into: normal around the band midpoint with sigma = range/4, clamped to the
// band and rounded to the nearest thousand.
func salaryFor(rng *random.Rand, dept hrDepartment, titleIndex int) int {
	ratio := float64(titleIndex) / float64(len(dept.Titles)-1)
	var band salaryRange
	switch {
	case ratio < 0.25:
		band = dept.Junior
	case ratio < 0.5:
		band = dept.Mid
	case ratio < 0.75:
		band = dept.Senior
	default:
		band = dept.Executive
	}

	mean := (band.Min + band.Max) / 2
	stdDev := (band.Max - band.Min) / 4
	salary := random.Clamp(rng.Normal(mean, stdDev), band.Min, band.Max)
	return int(math.Round(salary/1000)) * 1000
}

// GenerateRecord produces one employee. Non-top-of-ladder employees pick a
// manager from the pool when one is available; pass two of Generate
// backfills the rest.
func (HRGenerator) GenerateRecord(rng *random.Rand, dr DateRange, managers []string) dataset.Record {
	firstName := rng.FirstName(rng.RandomGender())
	lastName := rng.LastName()

	dept := random.Pick(rng, hrDepartments)
	titleIndex := rng.IntBetween(0, len(dept.Titles)-1)
	jobTitle := dept.Titles[titleIndex]

	hireDate := rng.DateBetween(dr.Start, dr.End)
	yearsEmployed := float64(random.DaysBetween(hireDate, time.Now())) / 365
	yearsExperience := int(math.Round(yearsEmployed)) + rng.IntBetween(0, 15)

	var managerID any
	if len(managers) > 0 && titleIndex < len(dept.Titles)-1 {
		managerID = random.Pick(rng, managers)
	}

	return dataset.Record{
		"employee_id":        rng.NumericID("EMP", 6),
		"first_name":         firstName,
		"last_name":          lastName,
		"email":              strings.ToLower(firstName) + "." + strings.ToLower(lastName) + "@company.com",
		"hire_date":          random.FormatDate(hireDate),
		"department":         dept.Name,
		"job_title":          jobTitle,
		"salary":             salaryFor(rng, dept, titleIndex),
		"employment_type":    random.WeightedPick(rng, employmentTypes),
		"manager_id":         managerID,
		"performance_rating": random.WeightedPick(rng, performanceRatings),
		"years_experience":   yearsExperience,
		"education_level":    random.WeightedPick(rng, educationLevels),
		"office_location":    random.Pick(rng, officeLocations),
	}
}

func isSeniorTitle(title string) bool {
	for _, marker := range seniorTitleMarkers {
		if strings.Contains(title, marker) {
			return true
		}
	}
	return false
}

// Generate runs two passes: pass one creates employees and collects senior
// titles into a manager pool as it goes; pass two backfills manager_id for
// anyone still unassigned, never assigning an employee to themselves.
func (g HRGenerator) Generate(rng *random.Rand, count int, dr DateRange, report ProgressFunc) []dataset.Record {
	records := make([]dataset.Record, 0, count)
	var managerPool []string

	for i := 0; i < count; i++ {
		rec := g.GenerateRecord(rng, dr, managerPool)
		records = append(records, rec)
		if isSeniorTitle(rec["job_title"].(string)) {
			managerPool = append(managerPool, rec["employee_id"].(string))
		}
		reportProgress(report, i+1, count)
	}

	for _, rec := range records {
		if rec["manager_id"] != nil || len(managerPool) == 0 {
			continue
		}
		self := rec["employee_id"].(string)
		valid := make([]string, 0, len(managerPool))
		for _, id := range managerPool {
			if id != self {
				valid = append(valid, id)
			}
		}
		if len(valid) > 0 {
			rec["manager_id"] = random.Pick(rng, valid)
		}
	}

	return records
}
