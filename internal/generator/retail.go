package generator

import (
	"fmt"
	"time"

	"dataforge/internal/dataset"
	"dataforge/internal/random"
	"dataforge/internal/schema"
)

type retailProduct struct {
	Name     string
	MinPrice float64
	MaxPrice float64
}

type retailCategory struct {
	Name      string
	SKUPrefix string
	Products  []retailProduct
}

var retailCategories = []retailCategory{
	{
		Name: "Electronics", SKUPrefix: "ELEC",
		Products: []retailProduct{
			{"Wireless Bluetooth Headphones", 29, 299},
			{"Smart Watch Series 5", 199, 499},
			{"Portable Bluetooth Speaker", 25, 199},
			{"4K Ultra HD Smart TV 55\"", 399, 899},
			{"Wireless Charging Pad", 15, 59},
			{"Noise Cancelling Earbuds", 79, 249},
			{"Tablet 10.2\" Display", 329, 599},
			{"Gaming Mouse RGB", 29, 129},
			{"Mechanical Keyboard", 69, 199},
			{"USB-C Hub Adapter", 25, 89},
		},
	},
	{
		Name: "Clothing", SKUPrefix: "CLTH",
		Products: []retailProduct{
			{"Classic Cotton T-Shirt", 15, 45},
			{"Slim Fit Denim Jeans", 49, 129},
			{"Hooded Sweatshirt", 39, 89},
			{"Athletic Performance Shorts", 25, 65},
			{"Winter Puffer Jacket", 89, 249},
			{"Casual Button-Down Shirt", 35, 79},
			{"Summer Maxi Dress", 45, 129},
			{"Running Sneakers", 79, 179},
			{"Wool Blend Sweater", 59, 149},
			{"Canvas Backpack", 35, 89},
		},
	},
	{
		Name: "Home & Garden", SKUPrefix: "HOME",
		Products: []retailProduct{
			{"Memory Foam Pillow Set", 29, 79},
			{"Stainless Steel Cookware Set", 99, 299},
			{"LED Desk Lamp", 25, 69},
			{"Indoor Plant Pot Set", 19, 49},
			{"Throw Blanket Fleece", 25, 59},
			{"Kitchen Knife Set", 49, 199},
			{"Robot Vacuum Cleaner", 199, 599},
			{"Coffee Maker Programmable", 49, 149},
			{"Air Purifier HEPA", 99, 349},
			{"Bathroom Towel Set", 29, 69},
		},
	},
	{
		Name: "Sports & Outdoors", SKUPrefix: "SPRT",
		Products: []retailProduct{
			{"Yoga Mat Premium", 25, 79},
			{"Resistance Bands Set", 15, 45},
			{"Camping Tent 4-Person", 89, 299},
			{"Hiking Backpack 40L", 59, 149},
			{"Dumbbell Weight Set", 49, 199},
			{"Cycling Helmet", 35, 129},
			{"Insulated Water Bottle", 19, 45},
			{"Fitness Tracker Band", 49, 149},
			{"Foam Roller Muscle", 19, 49},
			{"Jump Rope Speed", 9, 29},
		},
	},
	{
		Name: "Beauty & Personal Care", SKUPrefix: "BEAU",
		Products: []retailProduct{
			{"Moisturizing Face Cream", 15, 89},
			{"Vitamin C Serum", 19, 69},
			{"Hair Straightener Ceramic", 29, 149},
			{"Electric Toothbrush", 39, 199},
			{"Perfume Eau de Toilette", 45, 149},
			{"Makeup Brush Set", 19, 79},
			{"Sunscreen SPF 50", 12, 35},
			{"Hair Dryer Professional", 39, 179},
			{"Night Repair Cream", 25, 99},
			{"Beard Trimmer Kit", 29, 89},
		},
	},
	{
		Name: "Books & Media", SKUPrefix: "BOOK",
		Products: []retailProduct{
			{"Bestseller Fiction Novel", 12, 28},
			{"Self-Help Guide", 14, 25},
			{"Cookbook Recipes", 18, 35},
			{"Business Strategy Book", 16, 30},
			{"Children's Picture Book", 8, 18},
			{"Vinyl Record Album", 19, 45},
			{"Audiobook Collection", 15, 35},
			{"Magazine Subscription", 12, 30},
			{"Art History Coffee Table Book", 35, 75},
			{"Language Learning Kit", 25, 59},
		},
	},
}

var paymentMethods = []random.Choice[string]{
	{Value: "Credit Card", Weight: 45},
	{Value: "Debit Card", Weight: 25},
	{Value: "PayPal", Weight: 15},
	{Value: "Apple Pay", Weight: 8},
	{Value: "Google Pay", Weight: 5},
	{Value: "Gift Card", Weight: 2},
}

var orderStatuses = []random.Choice[string]{
	{Value: "Delivered", Weight: 70},
	{Value: "Shipped", Weight: 15},
	{Value: "Processing", Weight: 8},
	{Value: "Pending", Weight: 4},
	{Value: "Cancelled", Weight: 2},
	{Value: "Returned", Weight: 1},
}

var discountPercents = []random.Choice[int]{
	{Value: 0, Weight: 50},
	{Value: 5, Weight: 15},
	{Value: 10, Weight: 15},
	{Value: 15, Weight: 10},
	{Value: 20, Weight: 7},
	{Value: 25, Weight: 3},
}

var orderQuantities = []random.Choice[int]{
	{Value: 1, Weight: 60},
	{Value: 2, Weight: 25},
	{Value: 3, Weight: 10},
	{Value: 4, Weight: 3},
	{Value: 5, Weight: 2},
}

// RetailGenerator produces e-commerce order records with a repeat-customer
// pool.
type RetailGenerator struct{}

func (RetailGenerator) Industry() schema.Industry { return schema.Retail }

// SeasonalWeight returns the relative order volume for a calendar month
// (holiday season and summer peak). It is exposed for callers that want to
// skew date sampling; batch generation itself does not apply it.
func (RetailGenerator) SeasonalWeight(month time.Month) float64 {
	weights := [12]float64{0.8, 0.7, 0.8, 0.9, 0.9, 1.1, 1.1, 0.9, 0.9, 1.0, 1.3, 1.5}
	return weights[month-1]
}

// GenerateRecord produces one order. An empty customerID means a one-off
// customer; batch generation passes pool members for repeat-customer
// realism. Order total = unitPrice * quantity * (1 - discount/100).
func (RetailGenerator) GenerateRecord(rng *random.Rand, dr DateRange, customerID string) dataset.Record {
	category := random.Pick(rng, retailCategories)
	product := random.Pick(rng, category.Products)

	firstName := rng.FirstName(rng.RandomGender())
	lastName := rng.LastName()
	email := rng.Email(firstName, lastName, false)

	// Peak shopping hours: 10:00-21:00.
	orderDate := rng.DateBetween(dr.Start, dr.End)
	hour := random.WeightedPick(rng, []random.Choice[int]{
		{Value: rng.IntBetween(10, 21), Weight: 75},
		{Value: rng.IntBetween(0, 9), Weight: 10},
		{Value: rng.IntBetween(22, 23), Weight: 15},
	})
	orderDate = random.AtTime(orderDate, hour, rng.IntBetween(0, 59), rng.IntBetween(0, 59))

	quantity := random.WeightedPick(rng, orderQuantities)
	unitPrice := rng.FloatBetween(product.MinPrice, product.MaxPrice, 2)
	discountPercent := random.WeightedPick(rng, discountPercents)
	subtotal := unitPrice * float64(quantity)
	total := subtotal - subtotal*float64(discountPercent)/100

	if customerID == "" {
		customerID = rng.ID("CUST", 5)
	}

	return dataset.Record{
		"order_id":         rng.ID("ORD", 8),
		"customer_id":      customerID,
		"customer_email":   email,
		"order_date":       random.FormatDateTime(orderDate),
		"product_sku":      fmt.Sprintf("%s-%d", category.SKUPrefix, rng.IntBetween(1000, 9999)),
		"product_name":     product.Name,
		"category":         category.Name,
		"quantity":         quantity,
		"unit_price":       random.Round2(unitPrice),
		"discount_percent": discountPercent,
		"total_amount":     random.Round2(total),
		"payment_method":   random.WeightedPick(rng, paymentMethods),
		"shipping_address": rng.FullAddress(),
		"order_status":     random.WeightedPick(rng, orderStatuses),
	}
}

// Generate builds a customer pool at 70% of the row count so roughly a third
// of orders repeat a customer.
func (g RetailGenerator) Generate(rng *random.Rand, count int, dr DateRange, report ProgressFunc) []dataset.Record {
	poolSize := count * 7 / 10
	if poolSize < 1 {
		poolSize = 1
	}
	customerPool := make([]string, poolSize)
	for i := range customerPool {
		customerPool[i] = rng.ID("CUST", 5)
	}

	records := make([]dataset.Record, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, g.GenerateRecord(rng, dr, random.Pick(rng, customerPool)))
		reportProgress(report, i+1, count)
	}
	dataset.SortByField(records, "order_date")
	return records
}
