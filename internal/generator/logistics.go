package generator

import (
	"fmt"
	"math"
	"strings"
	"time"

	"dataforge/internal/dataset"
	"dataforge/internal/random"
	"dataforge/internal/schema"
)

type transitRange struct {
	Min int
	Max int
}

type carrier struct {
	Name           string
	TrackingPrefix string
	Domestic       transitRange
	International  transitRange
}

var carriers = []carrier{
	{"FedEx", "7", transitRange{1, 5}, transitRange{3, 10}},
	{"UPS", "1Z", transitRange{1, 5}, transitRange{3, 12}},
	{"DHL", "JD", transitRange{2, 5}, transitRange{2, 8}},
	{"USPS", "94", transitRange{3, 7}, transitRange{7, 21}},
	{"Amazon Logistics", "TBA", transitRange{1, 3}, transitRange{5, 14}},
}

type serviceType struct {
	Name            string
	Weight          float64
	SpeedMultiplier float64
}

var serviceTypes = []serviceType{
	{"Ground", 40, 1},
	{"Express", 25, 0.6},
	{"Overnight", 10, 0.2},
	{"Economy", 15, 1.5},
	{"Freight", 10, 1.3},
}

var shipmentStatuses = []random.Choice[string]{
	{Value: "Delivered", Weight: 65},
	{Value: "In Transit", Weight: 20},
	{Value: "Out for Delivery", Weight: 5},
	{Value: "Processing", Weight: 5},
	{Value: "Exception", Weight: 3},
	{Value: "Returned", Weight: 2},
}

type shippingCity struct {
	City    string
	Country string
}

// Origins are carrier hub cities; destinations are major delivery markets.
var hubCities = []shippingCity{
	{"Los Angeles", "USA"},
	{"Chicago", "USA"},
	{"Memphis", "USA"},
	{"Louisville", "USA"},
	{"Dallas", "USA"},
	{"Atlanta", "USA"},
	{"Shanghai", "CHN"},
	{"Hong Kong", "HKG"},
	{"Shenzhen", "CHN"},
	{"Frankfurt", "DEU"},
	{"London", "GBR"},
	{"Tokyo", "JPN"},
}

var destinationCities = []shippingCity{
	{"New York", "USA"},
	{"Los Angeles", "USA"},
	{"Chicago", "USA"},
	{"Houston", "USA"},
	{"Phoenix", "USA"},
	{"Philadelphia", "USA"},
	{"San Antonio", "USA"},
	{"San Diego", "USA"},
	{"Dallas", "USA"},
	{"Seattle", "USA"},
	{"Denver", "USA"},
	{"Boston", "USA"},
	{"Miami", "USA"},
	{"Atlanta", "USA"},
	{"Portland", "USA"},
	{"Toronto", "CAN"},
	{"Vancouver", "CAN"},
	{"London", "GBR"},
	{"Paris", "FRA"},
	{"Berlin", "DEU"},
	{"Sydney", "AUS"},
	{"Melbourne", "AUS"},
	{"Tokyo", "JPN"},
	{"Singapore", "SGP"},
}

// LogisticsGenerator produces shipment records with carrier transit models.
type LogisticsGenerator struct{}

func (LogisticsGenerator) Industry() schema.Industry { return schema.Logistics }

func trackingNumber(rng *random.Rand, c carrier) string {
	var b strings.Builder
	b.WriteString(c.TrackingPrefix)
	for i := 0; i < 15; i++ {
		b.WriteByte(byte('0' + rng.IntBetween(0, 9)))
	}
	return b.String()
}

func packageDimensions(rng *random.Rand) string {
	return fmt.Sprintf("%dx%dx%d",
		rng.IntBetween(5, 80), rng.IntBetween(5, 60), rng.IntBetween(2, 50))
}

// shippingCost is weight * 0.5 per kg (tripled for international), scaled by
// the service type, plus a 5-15 handling fee, with a 0.9-1.1 variance.
func shippingCost(rng *random.Rand, weight float64, international bool, service string) float64 {
	cost := weight * 0.5
	if international {
		cost *= 3
	}
	switch service {
	case "Overnight":
		cost *= 4
	case "Express":
		cost *= 2.5
	case "Economy":
		cost *= 0.7
	case "Freight":
		cost *= 0.5
	}
	cost += rng.FloatBetween(5, 15, 2)
	cost *= rng.FloatBetween(0.9, 1.1, 4)
	return random.Round2(cost)
}

func (LogisticsGenerator) GenerateRecord(rng *random.Rand, dr DateRange) dataset.Record {
	car := random.Pick(rng, carriers)
	origin := random.Pick(rng, hubCities)
	destination := random.Pick(rng, destinationCities)
	international := origin.Country != destination.Country

	svcChoices := make([]random.Choice[serviceType], len(serviceTypes))
	for i, s := range serviceTypes {
		svcChoices[i] = random.Choice[serviceType]{Value: s, Weight: s.Weight}
	}
	service := random.WeightedPick(rng, svcChoices)
	status := random.WeightedPick(rng, shipmentStatuses)

	// Weekend pickups roll forward to Monday.
	shipDate := rng.DateBetween(dr.Start, dr.End)
	switch shipDate.Weekday() {
	case time.Sunday:
		shipDate = random.AddDays(shipDate, 1)
	case time.Saturday:
		shipDate = random.AddDays(shipDate, 2)
	}
	shipDate = random.AtTime(shipDate, rng.IntBetween(8, 18), rng.IntBetween(0, 59), 0)

	transit := car.Domestic
	if international {
		transit = car.International
	}
	transitDays := int(math.Round(float64(rng.IntBetween(transit.Min, transit.Max)) * service.SpeedMultiplier))
	estimatedDelivery := random.AddDays(shipDate, transitDays)

	// Delivered shipments land on time or a day early 95% of the time,
	// otherwise 1-3 days late.
	var actualDelivery any
	if status == "Delivered" {
		offset := rng.IntBetween(1, 3)
		if rng.Float64() < 0.95 {
			offset = rng.IntBetween(-1, 0)
		}
		actualDelivery = random.FormatDate(random.AddDays(estimatedDelivery, offset))
	}

	// Package weight mixture: mostly small and medium parcels, a tail of
	// heavy freight.
	weight := random.WeightedPick(rng, []random.Choice[float64]{
		{Value: rng.FloatBetween(0.1, 1, 2), Weight: 30},
		{Value: rng.FloatBetween(1, 5, 2), Weight: 35},
		{Value: rng.FloatBetween(5, 20, 2), Weight: 25},
		{Value: rng.FloatBetween(20, 100, 2), Weight: 10},
	})

	var customsCleared any
	if international {
		customsCleared = status == "Delivered" || rng.Float64() < 0.8
	}

	return dataset.Record{
		"shipment_id":         rng.ID("SHIP", 10),
		"tracking_number":     trackingNumber(rng, car),
		"origin_city":         origin.City,
		"origin_country":      origin.Country,
		"destination_city":    destination.City,
		"destination_country": destination.Country,
		"ship_date":           random.FormatDateTime(shipDate),
		"estimated_delivery":  random.FormatDate(estimatedDelivery),
		"actual_delivery":     actualDelivery,
		"carrier":             car.Name,
		"service_type":        service.Name,
		"weight_kg":           random.Round2(weight),
		"dimensions_cm":       packageDimensions(rng),
		"shipping_cost":       shippingCost(rng, weight, international, service.Name),
		"status":              status,
		"customs_cleared":     customsCleared,
	}
}

func (g LogisticsGenerator) Generate(rng *random.Rand, count int, dr DateRange, report ProgressFunc) []dataset.Record {
	records := make([]dataset.Record, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, g.GenerateRecord(rng, dr))
		reportProgress(report, i+1, count)
	}
	dataset.SortByField(records, "ship_date")
	return records
}
