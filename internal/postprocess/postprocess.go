// Package postprocess applies the configurable data-quality passes over a
// generated batch: null injection first, then outlier injection. Both passes
// are pure batch-in/batch-out transformations; no row is added or removed
// and the schema is untouched.
package postprocess

import (
	"fmt"

	"dataforge/internal/dataset"
	"dataforge/internal/random"
)

// Identity fields are never nulled regardless of the configured rate.
var protectedFields = fieldSet(
	"first_name", "last_name", "patient_id", "employee_id",
	"student_id", "order_id", "transaction_id", "batch_id", "property_id",
	"shipment_id", "account_holder", "customer_id",
)

// Contact/optional fields are nulled at the full configured rate; other
// non-protected fields only pass through an additional 30% gate.
var nullableFields = fieldSet(
	"email", "phone", "address", "manager_id", "discount_percent",
	"scholarship_amount", "actual_delivery", "customs_cleared", "lot_size_acres",
)

// Numeric fields eligible for outlier scaling.
var outlierFields = fieldSet(
	"amount", "salary", "treatment_cost", "total_amount", "unit_price",
	"listing_price", "shipping_cost", "weight_kg", "square_feet", "tuition_amount",
)

func fieldSet(names ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// OutlierRate maps an outlier frequency tag to its per-field probability.
// Unknown tags are treated as "none"; the engine validates tags before
// generation starts.
func OutlierRate(frequency string) float64 {
	switch frequency {
	case "rare":
		return 0.01
	case "occasional":
		return 0.05
	case "frequent":
		return 0.10
	default:
		return 0
	}
}

// ValidOutlierFrequency reports whether the tag is one of the closed set.
func ValidOutlierFrequency(frequency string) bool {
	switch frequency {
	case "none", "rare", "occasional", "frequent":
		return true
	}
	return false
}

// ApplyNulls returns a new batch with fields nulled at the configured
// percentage, plus the number of fields nulled. A non-protected field is
// nulled when a draw lands under percent/100 AND the field is either in the
// nullable set or passes a further 30% draw, so nullable fields null at rate
// p and generic fields at rate 0.3p. percent 0 returns the input unchanged.
func ApplyNulls(rng *random.Rand, records []dataset.Record, percent float64) ([]dataset.Record, int) {
	p := percent / 100
	if p == 0 {
		return records, 0
	}

	nulled := 0
	out := make([]dataset.Record, len(records))
	for i, rec := range records {
		next := make(dataset.Record, len(rec))
		for key, val := range rec {
			if _, protected := protectedFields[key]; protected {
				next[key] = val
				continue
			}
			if rng.Float64() < p {
				_, nullable := nullableFields[key]
				if nullable || rng.Float64() < 0.3 {
					next[key] = nil
					nulled++
					continue
				}
			}
			next[key] = val
		}
		out[i] = next
	}
	return out, nulled
}

// ApplyOutliers returns a new batch where each eligible numeric field is,
// with the given probability, scaled by 0.1 (anomalously low, 50% of hits)
// or by a uniform factor in [2, 7) (anomalously high) and rounded to two
// decimals, plus the number of fields scaled. rate 0 returns the input
// unchanged.
func ApplyOutliers(rng *random.Rand, records []dataset.Record, rate float64) ([]dataset.Record, int) {
	if rate == 0 {
		return records, 0
	}

	scaled := 0
	out := make([]dataset.Record, len(records))
	for i, rec := range records {
		next := make(dataset.Record, len(rec))
		for key, val := range rec {
			if _, eligible := outlierFields[key]; eligible && rng.Float64() < rate {
				if n, ok := asFloat(val); ok {
					multiplier := rng.Float64()*5 + 2
					if rng.Float64() < 0.5 {
						multiplier = 0.1
					}
					next[key] = random.Round2(n * multiplier)
					scaled++
					continue
				}
			}
			next[key] = val
		}
		out[i] = next
	}
	return out, scaled
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// ValidateNullPercent checks a null percentage for range errors.
func ValidateNullPercent(percent float64) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("null percentage %g outside [0, 100]", percent)
	}
	return nil
}
