package postprocess

import (
	"testing"

	"dataforge/internal/dataset"
	"dataforge/internal/random"
)

func sampleRecords(n int) []dataset.Record {
	out := make([]dataset.Record, n)
	for i := range out {
		out[i] = dataset.Record{
			"transaction_id": "TXN-0001",
			"first_name":     "Anna",
			"email":          "anna@example.com",
			"department":     "Cardiology",
			"amount":         100.0,
			"salary":         90000,
		}
	}
	return out
}

func TestApplyNullsZeroIsNoOp(t *testing.T) {
	rng := random.New(1)
	in := sampleRecords(10)

	out, nulled := ApplyNulls(rng, in, 0)
	if len(out) != 10 {
		t.Fatalf("rows=%d, want 10", len(out))
	}
	if nulled != 0 {
		t.Fatalf("nulled=%d, want 0", nulled)
	}
	for i := range out {
		if out[i]["email"] == nil {
			t.Fatalf("row %d nulled at percent 0", i)
		}
	}
}

func TestApplyNullsProtectedFieldsSurvive(t *testing.T) {
	rng := random.New(2)
	out, _ := ApplyNulls(rng, sampleRecords(500), 100)

	for i, rec := range out {
		if rec["transaction_id"] == nil || rec["first_name"] == nil {
			t.Fatalf("row %d lost a protected field", i)
		}
		// Nullable fields null at the full rate, so 100% nulls all of them.
		if rec["email"] != nil {
			t.Fatalf("row %d kept a nullable field at percent 100", i)
		}
	}
}

func TestApplyNullsRate(t *testing.T) {
	rng := random.New(3)
	const n = 10000

	out, nulled := ApplyNulls(rng, sampleRecords(n), 20)

	nulledEmail := 0
	nulledDept := 0
	for _, rec := range out {
		if rec["email"] == nil {
			nulledEmail++
		}
		if rec["department"] == nil {
			nulledDept++
		}
	}
	if nulled < nulledEmail+nulledDept {
		t.Fatalf("reported nulled=%d, counted at least %d", nulled, nulledEmail+nulledDept)
	}

	// email is in the nullable set: rate ~= 20%.
	if freq := float64(nulledEmail) / n; freq < 0.17 || freq > 0.23 {
		t.Fatalf("nullable field null rate=%v, want ~0.20", freq)
	}
	// department passes the extra 30% gate: rate ~= 6%.
	if freq := float64(nulledDept) / n; freq < 0.04 || freq > 0.08 {
		t.Fatalf("generic field null rate=%v, want ~0.06", freq)
	}
}

func TestApplyNullsDoesNotMutateInput(t *testing.T) {
	rng := random.New(4)
	in := sampleRecords(50)

	_, _ = ApplyNulls(rng, in, 100)

	for i, rec := range in {
		if rec["email"] == nil {
			t.Fatalf("input row %d was mutated", i)
		}
	}
}

func TestOutlierRate(t *testing.T) {
	tests := []struct {
		frequency string
		want      float64
	}{
		{frequency: "none", want: 0},
		{frequency: "rare", want: 0.01},
		{frequency: "occasional", want: 0.05},
		{frequency: "frequent", want: 0.10},
		{frequency: "bogus", want: 0},
	}
	for _, tc := range tests {
		if got := OutlierRate(tc.frequency); got != tc.want {
			t.Fatalf("OutlierRate(%q)=%v, want %v", tc.frequency, got, tc.want)
		}
	}
}

func TestValidOutlierFrequency(t *testing.T) {
	for _, ok := range []string{"none", "rare", "occasional", "frequent"} {
		if !ValidOutlierFrequency(ok) {
			t.Fatalf("ValidOutlierFrequency(%q)=false", ok)
		}
	}
	if ValidOutlierFrequency("sometimes") {
		t.Fatalf("ValidOutlierFrequency accepted unknown tag")
	}
}

func TestApplyOutliersZeroIsNoOp(t *testing.T) {
	rng := random.New(5)
	out, scaled := ApplyOutliers(rng, sampleRecords(100), 0)
	if scaled != 0 {
		t.Fatalf("scaled=%d, want 0", scaled)
	}

	for i, rec := range out {
		if rec["amount"] != 100.0 {
			t.Fatalf("row %d changed at rate 0: %v", i, rec["amount"])
		}
	}
}

func TestApplyOutliersScalesEligibleFields(t *testing.T) {
	rng := random.New(6)
	const n = 10000

	out, scaled := ApplyOutliers(rng, sampleRecords(n), 0.10)

	hits := 0
	for i, rec := range out {
		amount := rec["amount"].(float64)
		if amount == 100.0 {
			continue
		}
		hits++

		// Scaled values are 100*0.1 or 100*[2,7).
		low := amount == 10.0
		high := amount >= 200.0 && amount < 700.0
		if !low && !high {
			t.Fatalf("row %d outlier %v outside expected bands", i, amount)
		}
		if rec["department"] != "Cardiology" {
			t.Fatalf("row %d scaled a non-numeric field", i)
		}
	}

	if freq := float64(hits) / n; freq < 0.08 || freq > 0.12 {
		t.Fatalf("outlier rate=%v, want ~0.10", freq)
	}
	// scaled also counts salary hits, so it is at least the amount hits.
	if scaled < hits {
		t.Fatalf("reported scaled=%d, counted %d on amount alone", scaled, hits)
	}
}

func TestValidateNullPercent(t *testing.T) {
	if err := ValidateNullPercent(50); err != nil {
		t.Fatalf("ValidateNullPercent(50)=%v", err)
	}
	if err := ValidateNullPercent(-1); err == nil {
		t.Fatalf("ValidateNullPercent(-1) accepted")
	}
	if err := ValidateNullPercent(101); err == nil {
		t.Fatalf("ValidateNullPercent(101) accepted")
	}
}
