package random

import (
	"strings"
	"testing"
	"time"
)

func TestIntBetweenInclusive(t *testing.T) {
	r := New(1)

	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := r.IntBetween(3, 5)
		if v < 3 || v > 5 {
			t.Fatalf("IntBetween(3,5)=%d out of range", v)
		}
		seen[v] = true
	}
	if !seen[3] || !seen[5] {
		t.Fatalf("IntBetween(3,5) never hit the bounds: %v", seen)
	}
}

func TestFloatBetweenRounding(t *testing.T) {
	r := New(2)

	for i := 0; i < 1000; i++ {
		v := r.FloatBetween(10, 20, 2)
		if v < 10 || v > 20 {
			t.Fatalf("FloatBetween(10,20)=%v out of range", v)
		}
		if v*100 != float64(int64(v*100)) {
			t.Fatalf("FloatBetween not rounded to 2 decimals: %v", v)
		}
	}
}

func TestNormalDistribution(t *testing.T) {
	r := New(3)

	const n = 100000
	var sum float64
	for i := 0; i < n; i++ {
		sum += r.Normal(50, 10)
	}
	mean := sum / n
	if mean < 49 || mean > 51 {
		t.Fatalf("Normal(50,10) sample mean=%v, want ~50", mean)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name    string
		v, lo, hi, want float64
	}{
		{name: "below", v: -1, lo: 0, hi: 10, want: 0},
		{name: "above", v: 11, lo: 0, hi: 10, want: 10},
		{name: "inside", v: 5, lo: 0, hi: 10, want: 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clamp(tc.v, tc.lo, tc.hi); got != tc.want {
				t.Fatalf("Clamp(%v,%v,%v)=%v, want %v", tc.v, tc.lo, tc.hi, got, tc.want)
			}
		})
	}
}

func TestWeightedPickFrequency(t *testing.T) {
	r := New(4)

	choices := []Choice[string]{
		{Value: "common", Weight: 90},
		{Value: "rare", Weight: 10},
	}

	const n = 100000
	common := 0
	for i := 0; i < n; i++ {
		if WeightedPick(r, choices) == "common" {
			common++
		}
	}

	freq := float64(common) / n
	if freq < 0.88 || freq > 0.92 {
		t.Fatalf("weighted pick frequency=%v, want ~0.90", freq)
	}
}

func TestIDFormat(t *testing.T) {
	r := New(5)

	id := r.ID("PAT", 8)
	if !strings.HasPrefix(id, "PAT-") {
		t.Fatalf("ID prefix missing: %q", id)
	}
	if len(id) != len("PAT-")+8 {
		t.Fatalf("ID length=%d, want 12: %q", len(id), id)
	}
	for _, c := range id[4:] {
		if !strings.ContainsRune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", c) {
			t.Fatalf("ID has unexpected character %q in %q", c, id)
		}
	}
}

func TestNumericIDFormat(t *testing.T) {
	r := New(6)

	id := r.NumericID("EMP", 6)
	if !strings.HasPrefix(id, "EMP-") || len(id) != 10 {
		t.Fatalf("NumericID=%q, want EMP- + 6 digits", id)
	}
	for _, c := range id[4:] {
		if c < '0' || c > '9' {
			t.Fatalf("NumericID has non-digit %q in %q", c, id)
		}
	}
}

func TestUUIDDeterministicPerSeed(t *testing.T) {
	a := New(7).UUID()
	b := New(7).UUID()
	c := New(8).UUID()

	if a != b {
		t.Fatalf("same seed produced different UUIDs: %q vs %q", a, b)
	}
	if a == c {
		t.Fatalf("different seeds produced the same UUID: %q", a)
	}
	if len(a) != 36 || a[14] != '4' {
		t.Fatalf("not a v4 UUID: %q", a)
	}
}

func TestEmailShape(t *testing.T) {
	r := New(9)

	for i := 0; i < 100; i++ {
		email := r.Email("Anna", "Scott", i%2 == 0)
		if !strings.Contains(email, "@") {
			t.Fatalf("Email missing @: %q", email)
		}
		if email != strings.ToLower(email) {
			t.Fatalf("Email not lowercased: %q", email)
		}
	}
}

func TestDateBetweenInRange(t *testing.T) {
	r := New(10)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 1000; i++ {
		d := r.DateBetween(start, end)
		if d.Before(start) || d.After(end) {
			t.Fatalf("DateBetween out of range: %v", d)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	if got := DaysBetween(a, b); got != 10 {
		t.Fatalf("DaysBetween=%d, want 10", got)
	}
	if got := DaysBetween(b, a); got != 10 {
		t.Fatalf("DaysBetween reversed=%d, want 10", got)
	}
}

func TestDateOfBirthAgeBounds(t *testing.T) {
	r := New(11)

	for i := 0; i < 200; i++ {
		dob := r.DateOfBirth(18, 85)
		parsed, err := time.Parse("2006-01-02", dob)
		if err != nil {
			t.Fatalf("DateOfBirth format: %v", err)
		}
		age := time.Now().Year() - parsed.Year()
		if age < 17 || age > 86 {
			t.Fatalf("DateOfBirth age=%d outside [18,85]: %s", age, dob)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "$0.00"},
		{in: 1234.5, want: "$1,234.50"},
		{in: 9876543.21, want: "$9,876,543.21"},
	}
	for _, tc := range tests {
		if got := FormatCurrency(tc.in); got != tc.want {
			t.Fatalf("FormatCurrency(%v)=%q, want %q", tc.in, got, tc.want)
		}
	}
}
