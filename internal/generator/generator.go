// Package generator holds the eight per-industry record generators and their
// reference tables. Each generator models realistic-looking data explicitly:
// weighted categorical fields, correlated derived fields, transient entity
// pools for repeat-actor realism, and batch-level date sorting where the
// domain calls for it.
package generator

import (
	"fmt"
	"time"

	"dataforge/internal/dataset"
	"dataforge/internal/random"
	"dataforge/internal/schema"
)

// DateRange bounds the business dates sampled into each record.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ProgressFunc receives the number of records produced so far. Generators
// call it every progressEvery records and once at completion; a nil func is
// ignored.
type ProgressFunc func(done int)

const progressEvery = 1000

func reportProgress(report ProgressFunc, done, total int) {
	if report == nil {
		return
	}
	if done == total || done%progressEvery == 0 {
		report(done)
	}
}

// Generator produces a batch of uniform-schema records. Implementations are
// stateless; all randomness and per-call pools flow through arguments and
// locals, so concurrent calls never share data.
type Generator interface {
	Industry() schema.Industry
	Generate(rng *random.Rand, count int, dr DateRange, report ProgressFunc) []dataset.Record
}

// ForIndustry resolves the generator for a domain. The switch is exhaustive
// over the closed enum; the error path exists for values forged from outside
// the package.
func ForIndustry(ind schema.Industry) (Generator, error) {
	switch ind {
	case schema.Healthcare:
		return HealthcareGenerator{}, nil
	case schema.Finance:
		return FinanceGenerator{}, nil
	case schema.Retail:
		return RetailGenerator{}, nil
	case schema.HR:
		return HRGenerator{}, nil
	case schema.Manufacturing:
		return ManufacturingGenerator{}, nil
	case schema.Education:
		return EducationGenerator{}, nil
	case schema.RealEstate:
		return RealEstateGenerator{}, nil
	case schema.Logistics:
		return LogisticsGenerator{}, nil
	default:
		return nil, fmt.Errorf("no generator for industry %d", int(ind))
	}
}
