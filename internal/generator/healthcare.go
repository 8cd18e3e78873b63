package generator

import (
	"math"

	"dataforge/internal/dataset"
	"dataforge/internal/random"
	"dataforge/internal/schema"
)

// Blood type frequencies approximate the US population distribution.
var bloodTypes = []random.Choice[string]{
	{Value: "O+", Weight: 37},
	{Value: "A+", Weight: 36},
	{Value: "B+", Weight: 8},
	{Value: "AB+", Weight: 3},
	{Value: "O-", Weight: 7},
	{Value: "A-", Weight: 6},
	{Value: "B-", Weight: 2},
	{Value: "AB-", Weight: 1},
}

type diagnosis struct {
	Code        string
	Description string
}

// ICD-10 codes paired with their descriptions; sampled as a unit so code and
// description always agree.
var diagnoses = []diagnosis{
	{"J06.9", "Acute upper respiratory infection"},
	{"I10", "Essential hypertension"},
	{"E11.9", "Type 2 diabetes mellitus"},
	{"M54.5", "Low back pain"},
	{"J18.9", "Pneumonia, unspecified"},
	{"K21.0", "Gastroesophageal reflux disease"},
	{"F32.9", "Major depressive disorder"},
	{"J45.909", "Asthma, unspecified"},
	{"N39.0", "Urinary tract infection"},
	{"R51", "Headache"},
	{"I25.10", "Coronary artery disease"},
	{"G43.909", "Migraine, unspecified"},
	{"M17.9", "Osteoarthritis of knee"},
	{"J02.9", "Acute pharyngitis"},
	{"R10.9", "Abdominal pain"},
	{"E78.5", "Hyperlipidemia"},
	{"F41.1", "Generalized anxiety disorder"},
	{"K29.70", "Gastritis"},
	{"L30.9", "Dermatitis"},
	{"H10.9", "Conjunctivitis"},
	{"S62.509A", "Fracture of hand"},
	{"C50.911", "Breast cancer"},
	{"K80.20", "Gallstones"},
	{"N18.3", "Chronic kidney disease, stage 3"},
	{"I48.91", "Atrial fibrillation"},
}

var hospitalDepartments = []string{
	"Emergency", "Cardiology", "Orthopedics", "Neurology", "Oncology",
	"Pediatrics", "Internal Medicine", "Surgery", "Psychiatry", "Radiology",
	"Gastroenterology", "Pulmonology", "Dermatology", "Ophthalmology", "ENT",
}

var insuranceProviders = []string{
	"Blue Cross Blue Shield", "UnitedHealthcare", "Aetna", "Cigna", "Humana",
	"Kaiser Permanente", "Anthem", "Medicare", "Medicaid", "TRICARE",
	"Molina Healthcare", "Centene", "WellCare", "Oscar Health", "Self Pay",
}

var patientGenders = []random.Choice[string]{
	{Value: "Male", Weight: 49},
	{Value: "Female", Weight: 49},
	{Value: "Other", Weight: 2},
}

// HealthcareGenerator produces patient admission records.
type HealthcareGenerator struct{}

func (HealthcareGenerator) Industry() schema.Industry { return schema.Healthcare }

// GenerateRecord produces one admission. Treatment cost correlates with the
// length of stay: a base cost of 500-5000 plus a per-diem of 800-2500 for
// each stay day; discharge follows admission by the same stay length.
func (HealthcareGenerator) GenerateRecord(rng *random.Rand, dr DateRange) dataset.Record {
	gender := random.WeightedPick(rng, patientGenders)
	nameGender := random.Female
	if gender == "Male" {
		nameGender = random.Male
	}
	firstName := rng.FirstName(nameGender)
	lastName := rng.LastName()

	diag := random.Pick(rng, diagnoses)
	admission := rng.DateBetween(dr.Start, dr.End)
	stayDays := rng.IntBetween(1, 14)
	discharge := random.AddDays(admission, stayDays)

	baseCost := rng.IntBetween(500, 5000)
	treatmentCost := baseCost + stayDays*rng.IntBetween(800, 2500)

	return dataset.Record{
		"patient_id":            rng.NumericID("PAT", 6),
		"first_name":            firstName,
		"last_name":             lastName,
		"date_of_birth":         rng.DateOfBirth(1, 95),
		"gender":                gender,
		"blood_type":            random.WeightedPick(rng, bloodTypes),
		"diagnosis_code":        diag.Code,
		"diagnosis_description": diag.Description,
		"admission_date":        random.FormatDate(admission),
		"discharge_date":        random.FormatDate(discharge),
		"doctor_id":             rng.NumericID("DR", 5),
		"department":            random.Pick(rng, hospitalDepartments),
		"treatment_cost":        int(math.Round(float64(treatmentCost))),
		"insurance_provider":    random.Pick(rng, insuranceProviders),
	}
}

func (g HealthcareGenerator) Generate(rng *random.Rand, count int, dr DateRange, report ProgressFunc) []dataset.Record {
	records := make([]dataset.Record, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, g.GenerateRecord(rng, dr))
		reportProgress(report, i+1, count)
	}
	return records
}
