// Package random provides the statistical and synthesis primitives shared by
// every domain generator: uniform/weighted/normal sampling, ID and UUID
// synthesis, and name/contact/address/date fabrication from fixed US-centric
// reference tables.
//
// All randomness flows through a *Rand constructed from an explicit seed (or
// source), so callers that need reproducible output inject a fixed seed and
// get identical datasets. A Rand is NOT safe for concurrent use; each
// generation run owns its own instance.
package random

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Rand wraps a math/rand source with the sampling helpers the generators use.
type Rand struct {
	src *rand.Rand
}

// New returns a Rand seeded with the given value.
func New(seed int64) *Rand {
	return &Rand{src: rand.New(rand.NewSource(seed))}
}

// NewFrom wraps an existing source. Useful for tests that share one source
// across several helpers.
func NewFrom(src rand.Source) *Rand {
	return &Rand{src: rand.New(src)}
}

// Float64 returns a uniform value in [0, 1).
func (r *Rand) Float64() float64 { return r.src.Float64() }

// IntBetween returns a uniform integer in [min, max] inclusive.
func (r *Rand) IntBetween(min, max int) int {
	return min + r.src.Intn(max-min+1)
}

// FloatBetween returns a uniform float in [min, max) rounded to the given
// number of decimal places.
func (r *Rand) FloatBetween(min, max float64, decimals int) float64 {
	return roundTo(min+r.src.Float64()*(max-min), decimals)
}

// Normal returns an approximately normally distributed value via the
// Box-Muller transform. The result is unbounded; clamp when a hard range is
// required.
func (r *Rand) Normal(mean, stdDev float64) float64 {
	u1 := r.src.Float64()
	u2 := r.src.Float64()
	// Guard against log(0).
	for u1 == 0 {
		u1 = r.src.Float64()
	}
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + z*stdDev
}

// Clamp saturates v into [min, max].
func Clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}

// Pick returns a uniformly random element. The slice must be non-empty;
// generators always sample from fixed non-empty reference tables.
func Pick[T any](r *Rand, items []T) T {
	return items[r.src.Intn(len(items))]
}

// Choice is one entry of a weighted table.
type Choice[T any] struct {
	Value  T
	Weight float64
}

// WeightedPick samples proportionally to weight using cumulative subtraction:
// draw in [0, totalWeight), walk the entries subtracting each weight, and
// return the entry that drives the remainder to or below zero. If floating
// point residue survives the walk, the last entry is returned, so the call
// never fails for a well-formed non-empty table.
func WeightedPick[T any](r *Rand, items []Choice[T]) T {
	var total float64
	for _, it := range items {
		total += it.Weight
	}
	remain := r.src.Float64() * total
	for _, it := range items {
		remain -= it.Weight
		if remain <= 0 {
			return it.Value
		}
	}
	return items[len(items)-1].Value
}

const idChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ID returns "<prefix>-<suffix>" with a suffix of length uppercase
// alphanumeric characters.
func (r *Rand) ID(prefix string, length int) string {
	var b strings.Builder
	b.Grow(len(prefix) + 1 + length)
	b.WriteString(prefix)
	b.WriteByte('-')
	for i := 0; i < length; i++ {
		b.WriteByte(idChars[r.src.Intn(len(idChars))])
	}
	return b.String()
}

// NumericID returns "<prefix>-<suffix>" with a purely numeric suffix.
func (r *Rand) NumericID(prefix string, length int) string {
	var b strings.Builder
	b.Grow(len(prefix) + 1 + length)
	b.WriteString(prefix)
	b.WriteByte('-')
	for i := 0; i < length; i++ {
		b.WriteByte(byte('0' + r.src.Intn(10)))
	}
	return b.String()
}

// UUID returns an RFC 4122 v4 UUID drawn from this Rand's source, so seeded
// runs produce reproducible UUIDs.
func (r *Rand) UUID() string {
	// *rand.Rand implements io.Reader; NewRandomFromReader sets the version
	// and variant bits per RFC 4122 §4.4.
	u, err := uuid.NewRandomFromReader(r.src)
	if err != nil {
		// The math/rand reader never fails.
		panic(fmt.Sprintf("uuid from rand source: %v", err))
	}
	return u.String()
}

// Gender selects which first-name table to draw from.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// RandomGender returns Male or Female with equal probability.
func (r *Rand) RandomGender() Gender {
	if r.src.Float64() > 0.5 {
		return Male
	}
	return Female
}

// FirstName draws from the male or female table.
func (r *Rand) FirstName(g Gender) string {
	if g == Male {
		return Pick(r, maleFirstNames)
	}
	return Pick(r, femaleFirstNames)
}

// LastName draws from the surname table.
func (r *Rand) LastName() string { return Pick(r, lastNames) }

// FullName combines a random-gender first name with a surname.
func (r *Rand) FullName() string {
	return r.FirstName(r.RandomGender()) + " " + r.LastName()
}

// Email builds an address for the given name. The local part varies between
// first.last, firstlast, flast, firstl and first.lastNN; the domain comes
// from the personal or corporate pool.
func (r *Rand) Email(firstName, lastName string, corporate bool) string {
	first := strings.ToLower(firstName)
	last := strings.ToLower(lastName)
	formats := []string{
		first + "." + last,
		first + last,
		first[:1] + last,
		first + last[:1],
		fmt.Sprintf("%s.%s%d", first, last, r.IntBetween(1, 99)),
	}
	domains := emailDomains
	if corporate {
		domains = corporateDomains
	}
	return Pick(r, formats) + "@" + Pick(r, domains)
}

// Phone returns "(NNN) NNN-NNNN" with area code and prefix in [200, 999].
func (r *Rand) Phone() string {
	return fmt.Sprintf("(%d) %d-%d",
		r.IntBetween(200, 999), r.IntBetween(200, 999), r.IntBetween(1000, 9999))
}

// City holds one entry of the 25-city US reference table.
type City struct {
	Name  string
	State string
	Zip   string
}

// StreetAddress returns "<number> <street> <type>".
func (r *Rand) StreetAddress() string {
	return fmt.Sprintf("%d %s %s",
		r.IntBetween(100, 9999), Pick(r, streetNames), Pick(r, streetTypes))
}

// RandomCity draws from the US city table.
func (r *Rand) RandomCity() City { return Pick(r, cities) }

// FullAddress returns "<street>, <city>, <state> <zip>".
func (r *Rand) FullAddress() string {
	c := r.RandomCity()
	return fmt.Sprintf("%s, %s, %s %s", r.StreetAddress(), c.Name, c.State, c.Zip)
}

// CompanyName draws from the fictional company table.
func (r *Rand) CompanyName() string { return Pick(r, companies) }

// DateBetween returns a uniformly random instant in [start, end].
func (r *Rand) DateBetween(start, end time.Time) time.Time {
	span := end.Sub(start)
	if span <= 0 {
		return start
	}
	return start.Add(time.Duration(r.src.Int63n(int64(span))))
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string { return t.Format("2006-01-02") }

// FormatDateTime renders t as "YYYY-MM-DD HH:MM:SS".
func FormatDateTime(t time.Time) string { return t.Format("2006-01-02 15:04:05") }

// DateOfBirth picks an age in [minAge, maxAge] and returns a YYYY-MM-DD
// birth date that many years back, with a random month and a day in [1, 28]
// so the result is always a valid calendar date.
func (r *Rand) DateOfBirth(minAge, maxAge int) string {
	today := time.Now()
	age := r.IntBetween(minAge, maxAge)
	dob := time.Date(today.Year()-age, time.Month(r.IntBetween(1, 12)),
		r.IntBetween(1, 28), 0, 0, 0, 0, time.UTC)
	return FormatDate(dob)
}

// AddDays shifts a date by whole days.
func AddDays(t time.Time, days int) time.Time { return t.AddDate(0, 0, days) }

// DaysBetween returns the whole-day difference between two dates, rounding
// any partial day up.
func DaysBetween(a, b time.Time) int {
	diff := b.Sub(a)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// AtTime sets the clock fields on a date, preserving its calendar day.
func AtTime(t time.Time, hour, minute, sec int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, sec, 0, t.Location())
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// Round2 rounds to two decimal places, the precision used by all currency
// and measurement fields.
func Round2(v float64) float64 { return roundTo(v, 2) }
