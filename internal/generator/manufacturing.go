package generator

import (
	"math"

	"dataforge/internal/dataset"
	"dataforge/internal/random"
	"dataforge/internal/schema"
)

type productLine struct {
	Name       string
	BaseOutput int
	CycleTime  int // seconds per unit
}

var productLines = []productLine{
	{"Automotive Components", 500, 45},
	{"Electronics Assembly", 800, 30},
	{"Consumer Goods", 1200, 20},
	{"Medical Devices", 200, 90},
	{"Industrial Equipment", 100, 180},
	{"Food Processing", 2000, 15},
	{"Pharmaceutical", 5000, 8},
	{"Aerospace Parts", 50, 300},
	{"Textile Products", 1500, 12},
	{"Packaging Materials", 3000, 5},
}

type machine struct {
	ID         string
	Name       string
	Efficiency float64
}

var machines = []machine{
	{"MACH-001", "CNC Mill A", 0.95},
	{"MACH-002", "CNC Mill B", 0.92},
	{"MACH-003", "Assembly Line 1", 0.98},
	{"MACH-004", "Assembly Line 2", 0.96},
	{"MACH-005", "Injection Mold A", 0.94},
	{"MACH-006", "Injection Mold B", 0.91},
	{"MACH-007", "Packaging Unit 1", 0.99},
	{"MACH-008", "Packaging Unit 2", 0.97},
	{"MACH-009", "Quality Scanner", 0.99},
	{"MACH-010", "Robotic Arm A", 0.93},
}

type shift struct {
	Name      string
	StartHour int
	EndHour   int
	Weight    float64
}

var shifts = []shift{
	{"Morning", 6, 14, 35},
	{"Afternoon", 14, 22, 35},
	{"Night", 22, 6, 30},
}

// ManufacturingGenerator produces production batch records with quality
// metrics and shift-patterned timestamps.
type ManufacturingGenerator struct{}

func (ManufacturingGenerator) Industry() schema.Industry { return schema.Manufacturing }

func productionDateTime(rng *random.Rand, dr DateRange) string {
	date := rng.DateBetween(dr.Start, dr.End)

	choices := make([]random.Choice[shift], len(shifts))
	for i, s := range shifts {
		choices[i] = random.Choice[shift]{Value: s, Weight: s.Weight}
	}
	s := random.WeightedPick(rng, choices)

	var hour int
	if s.StartHour < s.EndHour {
		hour = rng.IntBetween(s.StartHour, s.EndHour-1)
	} else {
		// Night shift wraps midnight; sample the pre-midnight stretch.
		hour = rng.IntBetween(s.StartHour, 23)
	}
	date = random.AtTime(date, hour, rng.IntBetween(0, 59), rng.IntBetween(0, 59))
	return random.FormatDateTime(date)
}

// qualityScore clusters high: normal (94, 4) clamped to [75, 100], one
// decimal place.
func qualityScore(rng *random.Rand) float64 {
	score := random.Clamp(rng.Normal(94, 4), 75, 100)
	return math.Round(score*10) / 10
}

// defectCount applies a 1-3% defect rate to the produced units, with a 5%
// chance of a spike adding 5-20 extra defects.
func defectCount(rng *random.Rand, unitsProduced int) int {
	rate := rng.FloatBetween(0.01, 0.03, 4)
	base := int(float64(unitsProduced) * rate)
	if rng.Float64() < 0.05 {
		return base + rng.IntBetween(5, 20)
	}
	return base
}

// downtimeMinutes is zero for 70% of runs; otherwise exponential with rate
// 0.1 per minute, capped at 120.
func downtimeMinutes(rng *random.Rand) int {
	if rng.Float64() < 0.7 {
		return 0
	}
	const lambda = 0.1
	downtime := -math.Log(1-rng.Float64()) / lambda
	return int(math.Round(math.Min(downtime, 120)))
}

// energyConsumption scales with machine-hours: units * cycleTime / 3600,
// times a 0.9-1.1 variance factor, one decimal place.
func energyConsumption(rng *random.Rand, unitsProduced, cycleTimeSeconds int) float64 {
	base := float64(unitsProduced*cycleTimeSeconds) / 3600
	variance := rng.FloatBetween(0.9, 1.1, 4)
	return math.Round(base*variance*10) / 10
}

func (ManufacturingGenerator) GenerateRecord(rng *random.Rand, dr DateRange) dataset.Record {
	line := random.Pick(rng, productLines)
	mach := random.Pick(rng, machines)

	efficiencyFactor := rng.FloatBetween(0.85, 1.05, 4)
	unitsProduced := int(math.Round(float64(line.BaseOutput) * mach.Efficiency * efficiencyFactor))

	// Cycle time jitters around the line's nominal value, clamped to +/-20%.
	nominal := float64(line.CycleTime)
	cycleTime := int(math.Round(random.Clamp(rng.Normal(nominal, nominal*0.1), nominal*0.8, nominal*1.2)))

	return dataset.Record{
		"batch_id":               rng.ID("BATCH", 8),
		"product_line":           line.Name,
		"production_date":        productionDateTime(rng, dr),
		"machine_id":             mach.ID,
		"operator_id":            rng.NumericID("OP", 5),
		"units_produced":         unitsProduced,
		"defect_count":           defectCount(rng, unitsProduced),
		"quality_score":          qualityScore(rng),
		"cycle_time_seconds":     cycleTime,
		"downtime_minutes":       downtimeMinutes(rng),
		"raw_material_batch":     rng.ID("RAW", 6),
		"energy_consumption_kwh": energyConsumption(rng, unitsProduced, cycleTime),
	}
}

func (g ManufacturingGenerator) Generate(rng *random.Rand, count int, dr DateRange, report ProgressFunc) []dataset.Record {
	records := make([]dataset.Record, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, g.GenerateRecord(rng, dr))
		reportProgress(report, i+1, count)
	}
	dataset.SortByField(records, "production_date")
	return records
}
