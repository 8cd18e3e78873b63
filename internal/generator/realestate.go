package generator

import (
	"fmt"
	"math"
	"time"

	"dataforge/internal/dataset"
	"dataforge/internal/random"
	"dataforge/internal/schema"
)

type propertyType struct {
	Name        string
	Weight      float64
	MinBedrooms int
	MaxBedrooms int
	MinSqft     int
	MaxSqft     int
}

var propertyTypes = []propertyType{
	{"Single Family", 45, 2, 6, 1200, 4500},
	{"Condo", 25, 1, 3, 600, 2000},
	{"Townhouse", 15, 2, 4, 1000, 2800},
	{"Multi-Family", 8, 4, 12, 2000, 6000},
	{"Land", 4, 0, 0, 0, 0},
	{"Commercial", 3, 0, 0, 1000, 20000},
}

type housingMarket struct {
	City            string
	State           string
	Zip             string
	PriceMultiplier float64
}

var housingMarkets = []housingMarket{
	{"San Francisco", "CA", "94102", 2.5},
	{"New York", "NY", "10001", 2.3},
	{"Los Angeles", "CA", "90001", 2.0},
	{"Seattle", "WA", "98101", 1.8},
	{"Boston", "MA", "02101", 1.9},
	{"Denver", "CO", "80201", 1.4},
	{"Austin", "TX", "78701", 1.5},
	{"Portland", "OR", "97201", 1.4},
	{"Miami", "FL", "33101", 1.6},
	{"Chicago", "IL", "60601", 1.3},
	{"Atlanta", "GA", "30301", 1.1},
	{"Phoenix", "AZ", "85001", 1.0},
	{"Dallas", "TX", "75201", 1.1},
	{"Nashville", "TN", "37201", 1.2},
	{"Charlotte", "NC", "28201", 1.0},
	{"Las Vegas", "NV", "89101", 0.9},
	{"Orlando", "FL", "32801", 1.0},
	{"Minneapolis", "MN", "55401", 1.1},
	{"Detroit", "MI", "48201", 0.6},
	{"Cleveland", "OH", "44101", 0.7},
}

var listingStatuses = []random.Choice[string]{
	{Value: "Active", Weight: 50},
	{Value: "Pending", Weight: 20},
	{Value: "Sold", Weight: 25},
	{Value: "Withdrawn", Weight: 5},
}

// RealEstateGenerator produces property listings with market-scaled pricing.
type RealEstateGenerator struct{}

func (RealEstateGenerator) Industry() schema.Industry { return schema.RealEstate }

// listingPrice builds a price per square foot from a $150 base times the
// market multiplier, a property-type adjustment, an age adjustment (newer is
// pricier, >50 years cheaper) and a 0.85-1.15 variance, then multiplies by
// square footage and rounds to the nearest $1,000. Land bypasses square
// footage and prices directly off a market-scaled range.
func listingPrice(rng *random.Rand, ptype string, sqft int, market housingMarket, yearBuilt int) int {
	const basePrice = 150.0
	pricePerSqft := basePrice * market.PriceMultiplier

	switch ptype {
	case "Single Family":
		pricePerSqft *= 1.1
	case "Condo":
		pricePerSqft *= 0.95
	case "Multi-Family":
		pricePerSqft *= 0.85
	case "Commercial":
		pricePerSqft *= 1.3
	}

	age := time.Now().Year() - yearBuilt
	switch {
	case age < 5:
		pricePerSqft *= 1.15
	case age < 15:
		pricePerSqft *= 1.05
	case age > 50:
		pricePerSqft *= 0.85
	}

	pricePerSqft *= rng.FloatBetween(0.85, 1.15, 4)

	var total float64
	if ptype == "Land" {
		total = rng.FloatBetween(50000, 500000, 2) * market.PriceMultiplier
	} else {
		total = float64(sqft) * pricePerSqft
	}
	return int(math.Round(total/1000)) * 1000
}

func (RealEstateGenerator) GenerateRecord(rng *random.Rand, dr DateRange) dataset.Record {
	choices := make([]random.Choice[propertyType], len(propertyTypes))
	for i, p := range propertyTypes {
		choices[i] = random.Choice[propertyType]{Value: p, Weight: p.Weight}
	}
	ptype := random.WeightedPick(rng, choices)
	market := random.Pick(rng, housingMarkets)

	bedrooms := 0
	if ptype.MaxBedrooms > 0 {
		bedrooms = rng.IntBetween(ptype.MinBedrooms, ptype.MaxBedrooms)
	}

	// Bathrooms track bedrooms, with a 40% chance of a half bath.
	var bathrooms float64
	if bedrooms == 0 {
		if ptype.Name == "Commercial" {
			bathrooms = float64(rng.IntBetween(1, 4))
		}
	} else {
		bathrooms = math.Max(1, float64(bedrooms-rng.IntBetween(0, 1)))
		if rng.Float64() < 0.4 {
			bathrooms += 0.5
		}
	}

	sqft := 0
	if ptype.MinSqft > 0 {
		// Square footage tracks bedroom count.
		baseSqft := float64(ptype.MinSqft + bedrooms*300)
		sqft = int(math.Round(random.Clamp(
			rng.Normal(baseSqft, baseSqft*0.2),
			float64(ptype.MinSqft), float64(ptype.MaxSqft))))
	}

	var lotSize float64
	if ptype.Name == "Single Family" || ptype.Name == "Land" {
		lotSize = rng.FloatBetween(0.1, 2.5, 2)
	} else {
		lotSize = rng.FloatBetween(0.01, 0.1, 2)
	}

	var yearBuilt any
	priceYear := 2000
	if ptype.Name != "Land" {
		y := rng.IntBetween(1920, 2024)
		yearBuilt = y
		priceYear = y
	}

	listingDate := rng.DateBetween(dr.Start, dr.End)

	// Spread listings across nearby zips within the market.
	zipBase := 0
	fmt.Sscanf(market.Zip, "%d", &zipBase)
	zip := fmt.Sprintf("%05d", zipBase+rng.IntBetween(0, 99))

	return dataset.Record{
		"property_id":    rng.ID("PROP", 8),
		"address":        rng.StreetAddress(),
		"city":           market.City,
		"state":          market.State,
		"zip_code":       zip,
		"property_type":  ptype.Name,
		"bedrooms":       bedrooms,
		"bathrooms":      bathrooms,
		"square_feet":    sqft,
		"lot_size_acres": random.Round2(lotSize),
		"year_built":     yearBuilt,
		"listing_price":  listingPrice(rng, ptype.Name, sqft, market, priceYear),
		"listing_date":   random.FormatDate(listingDate),
		"days_on_market": rng.IntBetween(1, 180),
		"status":         random.WeightedPick(rng, listingStatuses),
		"agent_id":       rng.NumericID("AGT", 5),
	}
}

func (g RealEstateGenerator) Generate(rng *random.Rand, count int, dr DateRange, report ProgressFunc) []dataset.Record {
	records := make([]dataset.Record, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, g.GenerateRecord(rng, dr))
		reportProgress(report, i+1, count)
	}
	dataset.SortByField(records, "listing_date")
	return records
}
