package bank

import (
	"context"
	"fmt"
	"time"

	"github.com/mwhite/centsible/internal/common"
	"github.com/mwhite/centsible/internal/model"
	"github.com/mwhite/centsible/internal/service"
)

// FetchConfig controls the simulated record fetch. Now may be overridden so
// tests get stable dates.
type FetchConfig struct {
	Now     func() time.Time
	Latency time.Duration
}

// Fetcher simulates the external transaction download for a connected source.
type Fetcher struct {
	now     func() time.Time
	latency time.Duration
}

var _ service.RecordFetcher = (*Fetcher)(nil)

// NewFetcher creates a simulated record fetcher.
func NewFetcher(cfg FetchConfig) *Fetcher {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Fetcher{
		now:     now,
		latency: cfg.Latency,
	}
}

// FetchRecords returns the sample statement batch for the source. Dates are
// relative to the configured clock, newest first.
func (f *Fetcher) FetchRecords(ctx context.Context, sourceID string) ([]model.RawRecord, error) {
	if _, ok := LookupInstitution(sourceID); !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidSource, sourceID)
	}

	if err := sleepFor(ctx, f.latency); err != nil {
		return nil, err
	}

	day := func(offset int) time.Time {
		return f.now().AddDate(0, 0, -offset).Truncate(24 * time.Hour)
	}

	return []model.RawRecord{
		{
			Date:         day(0),
			Amount:       45.67,
			Description:  "Starbucks Coffee #1234",
			Merchant:     "Starbucks",
			AccountType:  "checking",
			DeclaredType: model.TypeExpense,
		},
		{
			Date:         day(1),
			Amount:       89.23,
			Description:  "Shell Gas Station",
			Merchant:     "Shell",
			AccountType:  "checking",
			DeclaredType: model.TypeExpense,
		},
		{
			Date:         day(2),
			Amount:       156.78,
			Description:  "Whole Foods Market",
			Merchant:     "Whole Foods",
			AccountType:  "checking",
			DeclaredType: model.TypeExpense,
		},
		{
			Date:         day(3),
			Amount:       2500.00,
			Description:  "Direct Deposit - Payroll",
			Merchant:     "Employer",
			AccountType:  "checking",
			DeclaredType: model.TypeIncome,
		},
	}, nil
}
