// Package schema is the registry of per-industry record layouts. Each schema
// is an ordered list of (field name, semantic type) pairs that exactly
// matches the corresponding generator's output; column preview and export
// column selection are driven from here without touching a generated batch.
package schema

import "fmt"

// Industry is the closed set of supported domains. Keeping it an enum makes
// generator dispatch an exhaustive switch; only externally supplied tags can
// be invalid, and those fail in ParseIndustry.
type Industry int

const (
	Healthcare Industry = iota
	Finance
	Retail
	HR
	Manufacturing
	Education
	RealEstate
	Logistics
)

var industryTags = map[Industry]string{
	Healthcare:    "healthcare",
	Finance:       "finance",
	Retail:        "retail",
	HR:            "hr",
	Manufacturing: "manufacturing",
	Education:     "education",
	RealEstate:    "realestate",
	Logistics:     "logistics",
}

var industryNames = map[Industry]string{
	Healthcare:    "Healthcare",
	Finance:       "Finance",
	Retail:        "Retail",
	HR:            "HR",
	Manufacturing: "Manufacturing",
	Education:     "Education",
	RealEstate:    "Real Estate",
	Logistics:     "Logistics",
}

// String returns the wire tag, e.g. "realestate".
func (i Industry) String() string { return industryTags[i] }

// DisplayName returns the human-facing name, e.g. "Real Estate".
func (i Industry) DisplayName() string { return industryNames[i] }

// Industries returns the closed domain list in declaration order.
func Industries() []Industry {
	return []Industry{Healthcare, Finance, Retail, HR, Manufacturing, Education, RealEstate, Logistics}
}

// ParseIndustry resolves a wire tag. Unknown tags are the single expected
// failure path for externally supplied configuration.
func ParseIndustry(tag string) (Industry, error) {
	for ind, t := range industryTags {
		if t == tag {
			return ind, nil
		}
	}
	return 0, fmt.Errorf("unsupported industry %q", tag)
}

// FieldType is the semantic type of a column.
type FieldType string

const (
	TypeID       FieldType = "ID"
	TypeString   FieldType = "String"
	TypeNumber   FieldType = "Number"
	TypeCurrency FieldType = "Currency"
	TypeBoolean  FieldType = "Boolean"
	TypeDate     FieldType = "Date"
	TypeDateTime FieldType = "DateTime"
	TypeEmail    FieldType = "Email"
	TypeAddress  FieldType = "Address"
)

// Field is one (name, type) column entry.
type Field struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`
}

// Get returns the ordered field list for a domain. The returned slice is
// shared; callers must not mutate it.
func Get(i Industry) []Field {
	return schemas[i]
}

// FieldNames returns just the ordered column names for a domain.
func FieldNames(i Industry) []string {
	fields := schemas[i]
	names := make([]string, len(fields))
	for n, f := range fields {
		names[n] = f.Name
	}
	return names
}

// The field order below is an invariant shared with the generators: each
// generator emits exactly these keys.
var schemas = map[Industry][]Field{
	Healthcare: {
		{"patient_id", TypeID},
		{"first_name", TypeString},
		{"last_name", TypeString},
		{"date_of_birth", TypeDate},
		{"gender", TypeString},
		{"blood_type", TypeString},
		{"diagnosis_code", TypeString},
		{"diagnosis_description", TypeString},
		{"admission_date", TypeDate},
		{"discharge_date", TypeDate},
		{"doctor_id", TypeID},
		{"department", TypeString},
		{"treatment_cost", TypeCurrency},
		{"insurance_provider", TypeString},
	},
	Finance: {
		{"transaction_id", TypeID},
		{"account_number", TypeString},
		{"account_holder", TypeString},
		{"transaction_date", TypeDateTime},
		{"transaction_type", TypeString},
		{"amount", TypeCurrency},
		{"currency", TypeString},
		{"merchant_category", TypeString},
		{"merchant_name", TypeString},
		{"balance_after", TypeCurrency},
		{"is_fraud", TypeBoolean},
		{"fraud_score", TypeNumber},
	},
	Retail: {
		{"order_id", TypeID},
		{"customer_id", TypeID},
		{"customer_email", TypeEmail},
		{"order_date", TypeDateTime},
		{"product_sku", TypeString},
		{"product_name", TypeString},
		{"category", TypeString},
		{"quantity", TypeNumber},
		{"unit_price", TypeCurrency},
		{"discount_percent", TypeNumber},
		{"total_amount", TypeCurrency},
		{"payment_method", TypeString},
		{"shipping_address", TypeAddress},
		{"order_status", TypeString},
	},
	HR: {
		{"employee_id", TypeID},
		{"first_name", TypeString},
		{"last_name", TypeString},
		{"email", TypeEmail},
		{"hire_date", TypeDate},
		{"department", TypeString},
		{"job_title", TypeString},
		{"salary", TypeCurrency},
		{"employment_type", TypeString},
		{"manager_id", TypeID},
		{"performance_rating", TypeNumber},
		{"years_experience", TypeNumber},
		{"education_level", TypeString},
		{"office_location", TypeString},
	},
	Manufacturing: {
		{"batch_id", TypeID},
		{"product_line", TypeString},
		{"production_date", TypeDateTime},
		{"machine_id", TypeID},
		{"operator_id", TypeID},
		{"units_produced", TypeNumber},
		{"defect_count", TypeNumber},
		{"quality_score", TypeNumber},
		{"cycle_time_seconds", TypeNumber},
		{"downtime_minutes", TypeNumber},
		{"raw_material_batch", TypeID},
		{"energy_consumption_kwh", TypeNumber},
	},
	Education: {
		{"student_id", TypeID},
		{"first_name", TypeString},
		{"last_name", TypeString},
		{"email", TypeEmail},
		{"enrollment_date", TypeDate},
		{"program", TypeString},
		{"course_id", TypeString},
		{"course_name", TypeString},
		{"credits", TypeNumber},
		{"grade", TypeString},
		{"instructor_id", TypeID},
		{"semester", TypeString},
		{"tuition_amount", TypeCurrency},
		{"scholarship_amount", TypeCurrency},
	},
	RealEstate: {
		{"property_id", TypeID},
		{"address", TypeString},
		{"city", TypeString},
		{"state", TypeString},
		{"zip_code", TypeString},
		{"property_type", TypeString},
		{"bedrooms", TypeNumber},
		{"bathrooms", TypeNumber},
		{"square_feet", TypeNumber},
		{"lot_size_acres", TypeNumber},
		{"year_built", TypeNumber},
		{"listing_price", TypeCurrency},
		{"listing_date", TypeDate},
		{"days_on_market", TypeNumber},
		{"status", TypeString},
		{"agent_id", TypeID},
	},
	Logistics: {
		{"shipment_id", TypeID},
		{"tracking_number", TypeString},
		{"origin_city", TypeString},
		{"origin_country", TypeString},
		{"destination_city", TypeString},
		{"destination_country", TypeString},
		{"ship_date", TypeDateTime},
		{"estimated_delivery", TypeDate},
		{"actual_delivery", TypeDate},
		{"carrier", TypeString},
		{"service_type", TypeString},
		{"weight_kg", TypeNumber},
		{"dimensions_cm", TypeString},
		{"shipping_cost", TypeCurrency},
		{"status", TypeString},
		{"customs_cleared", TypeBoolean},
	},
}
