package generator

import (
	"fmt"
	"math"

	"dataforge/internal/dataset"
	"dataforge/internal/random"
	"dataforge/internal/schema"
)

var transactionTypes = []random.Choice[string]{
	{Value: "Purchase", Weight: 50},
	{Value: "Deposit", Weight: 15},
	{Value: "Withdrawal", Weight: 15},
	{Value: "Transfer", Weight: 15},
	{Value: "Payment", Weight: 5},
}

type merchantCategory struct {
	Code      string
	Name      string
	MinAmount float64
	MaxAmount float64
}

var merchantCategories = []merchantCategory{
	{"5411", "Grocery Stores", 20, 300},
	{"5812", "Restaurants", 10, 150},
	{"5541", "Gas Stations", 25, 100},
	{"5311", "Department Stores", 50, 500},
	{"5912", "Pharmacies", 10, 200},
	{"4829", "Wire Transfers", 100, 10000},
	{"5732", "Electronics Stores", 100, 2000},
	{"5651", "Clothing Stores", 30, 400},
	{"7011", "Hotels", 80, 500},
	{"4111", "Transportation", 5, 100},
	{"5462", "Bakeries", 5, 50},
	{"5942", "Book Stores", 10, 100},
	{"7832", "Movie Theaters", 10, 60},
	{"7997", "Gyms & Fitness", 20, 150},
	{"5814", "Fast Food", 5, 40},
}

// Merchants are keyed by category code so a grocery transaction never names
// an electronics store.
var merchantsByCategory = map[string][]string{
	"5411": {"Whole Foods", "Trader Joe's", "Kroger", "Safeway", "Walmart", "Costco", "Target"},
	"5812": {"Olive Garden", "Chipotle", "Applebee's", "Chili's", "Panera Bread", "Red Lobster"},
	"5541": {"Shell", "Chevron", "BP", "Exxon", "Mobil", "Circle K", "76"},
	"5311": {"Macy's", "Nordstrom", "JCPenney", "Kohl's", "Bloomingdale's"},
	"5912": {"CVS", "Walgreens", "Rite Aid", "Walmart Pharmacy"},
	"4829": {"Wire Transfer", "Bank Transfer", "International Wire"},
	"5732": {"Best Buy", "Apple Store", "Microsoft Store", "B&H Photo"},
	"5651": {"Gap", "H&M", "Zara", "Forever 21", "Old Navy", "Uniqlo"},
	"7011": {"Marriott", "Hilton", "Hyatt", "Holiday Inn", "Best Western"},
	"4111": {"Uber", "Lyft", "Metro Transit", "Amtrak", "Delta Airlines"},
	"5462": {"Starbucks", "Panera", "Local Bakery", "Dunkin'"},
	"5942": {"Barnes & Noble", "Amazon Books", "Half Price Books"},
	"7832": {"AMC Theatres", "Regal Cinemas", "Cinemark"},
	"7997": {"Planet Fitness", "LA Fitness", "24 Hour Fitness", "Equinox"},
	"5814": {"McDonald's", "Burger King", "Wendy's", "Taco Bell", "KFC"},
}

var currencies = []random.Choice[string]{
	{Value: "USD", Weight: 85},
	{Value: "EUR", Weight: 5},
	{Value: "GBP", Weight: 5},
	{Value: "CAD", Weight: 3},
	{Value: "JPY", Weight: 2},
}

// Withdrawal amounts cluster on ATM denominations.
var withdrawalAmounts = []random.Choice[float64]{
	{Value: 20, Weight: 20},
	{Value: 40, Weight: 25},
	{Value: 60, Weight: 20},
	{Value: 80, Weight: 15},
	{Value: 100, Weight: 10},
	{Value: 200, Weight: 7},
	{Value: 500, Weight: 3},
}

// FinanceGenerator produces account transactions with a running balance and
// a low-rate fraud signal.
type FinanceGenerator struct{}

func (FinanceGenerator) Industry() schema.Industry { return schema.Finance }

// GenerateRecord produces one transaction. The caller threads the running
// balance: debits (Purchase, Withdrawal, Payment) subtract the amount,
// everything else adds it, and the resulting balance_after is floored at 0.
// Fraud is a ~0.1% event scoring uniform 75-100; legitimate transactions
// score a clamped normal (mean 15, sigma 10, clamp 0-50).
func (FinanceGenerator) GenerateRecord(rng *random.Rand, dr DateRange, balance float64) dataset.Record {
	accountHolder := rng.FullName()
	txType := random.WeightedPick(rng, transactionTypes)
	txDate := rng.DateBetween(dr.Start, dr.End)

	// Business hours dominate the time-of-day mix.
	hour := random.WeightedPick(rng, []random.Choice[int]{
		{Value: rng.IntBetween(9, 17), Weight: 70},
		{Value: rng.IntBetween(0, 8), Weight: 15},
		{Value: rng.IntBetween(18, 23), Weight: 15},
	})
	txDate = random.AtTime(txDate, hour, rng.IntBetween(0, 59), rng.IntBetween(0, 59))

	category := random.Pick(rng, merchantCategories)
	merchants := merchantsByCategory[category.Code]
	if len(merchants) == 0 {
		merchants = []string{"Unknown Merchant"}
	}
	merchantName := random.Pick(rng, merchants)

	var amount float64
	switch txType {
	case "Purchase", "Payment":
		amount = rng.FloatBetween(category.MinAmount, category.MaxAmount, 2)
	case "Deposit":
		amount = rng.FloatBetween(100, 5000, 2)
	case "Withdrawal":
		amount = random.WeightedPick(rng, withdrawalAmounts)
	default: // Transfer
		amount = rng.FloatBetween(50, 5000, 2)
	}

	isDebit := txType == "Purchase" || txType == "Withdrawal" || txType == "Payment"
	balanceAfter := balance + amount
	if isDebit {
		balanceAfter = balance - amount
	}

	isFraud := rng.Float64() < 0.001
	var fraudScore int
	if isFraud {
		fraudScore = rng.IntBetween(75, 100)
	} else {
		fraudScore = int(random.Clamp(math.Round(rng.Normal(15, 10)), 0, 50))
	}

	return dataset.Record{
		"transaction_id":    rng.ID("TXN", 10),
		"account_number":    formatAccountNumber(rng),
		"account_holder":    accountHolder,
		"transaction_date":  random.FormatDateTime(txDate),
		"transaction_type":  txType,
		"amount":            random.Round2(amount),
		"currency":          random.WeightedPick(rng, currencies),
		"merchant_category": category.Code + " - " + category.Name,
		"merchant_name":     merchantName,
		"balance_after":     random.Round2(math.Max(0, balanceAfter)),
		"is_fraud":          isFraud,
		"fraud_score":       fraudScore,
	}
}

// formatAccountNumber returns "NNNN-NNNN-NNNN".
func formatAccountNumber(rng *random.Rand) string {
	return fmt.Sprintf("%d-%d-%d",
		rng.IntBetween(1000, 9999), rng.IntBetween(1000, 9999), rng.IntBetween(1000, 9999))
}

// Generate threads the balance record to record, seeding it from a random
// initial balance, then sorts the batch ascending by transaction timestamp.
func (g FinanceGenerator) Generate(rng *random.Rand, count int, dr DateRange, report ProgressFunc) []dataset.Record {
	records := make([]dataset.Record, 0, count)
	balance := rng.FloatBetween(5000, 50000, 2)

	for i := 0; i < count; i++ {
		rec := g.GenerateRecord(rng, dr, balance)
		records = append(records, rec)
		balance = rec["balance_after"].(float64)
		reportProgress(report, i+1, count)
	}

	dataset.SortByField(records, "transaction_date")
	return records
}
