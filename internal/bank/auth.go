package bank

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/mwhite/centsible/internal/common"
	"github.com/mwhite/centsible/internal/service"
)

// Authentication failure reasons. The set is fixed; the authenticator only
// ever fails with one of these.
var (
	ErrInvalidCredentials = errors.New("invalid credentials, please check your username and password")
	ErrTemporarilyDown    = errors.New("bank connection temporarily unavailable, please try again later")
	ErrAccountLocked      = errors.New("account locked, please contact your bank")
	ErrMFARequired        = errors.New("two-factor authentication required, please enable it in your bank settings")
)

// failureReasons in the order the failure roll indexes into.
var failureReasons = []error{
	ErrInvalidCredentials,
	ErrTemporarilyDown,
	ErrAccountLocked,
	ErrMFARequired,
}

// AuthConfig controls the simulated authentication behavior. FailureRate is
// the probability in [0, 1] that an attempt fails; the default of 0 keeps
// tests reproducible. Rand may be swapped for a seeded source.
type AuthConfig struct {
	Rand        *rand.Rand
	Latency     time.Duration
	FailureRate float64
}

// Authenticator simulates the external bank authentication capability.
type Authenticator struct {
	rng         *rand.Rand
	latency     time.Duration
	failureRate float64
}

var _ service.BankAuthenticator = (*Authenticator)(nil)

// NewAuthenticator creates a simulated authenticator.
func NewAuthenticator(cfg AuthConfig) *Authenticator {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Authenticator{
		rng:         rng,
		latency:     cfg.Latency,
		failureRate: cfg.FailureRate,
	}
}

// Authenticate validates the source and simulates the wire exchange. The
// failure roll happens after the latency so retries exercise the full path.
func (a *Authenticator) Authenticate(ctx context.Context, sourceID string, creds service.Credentials) (*service.AuthGrant, error) {
	inst, ok := LookupInstitution(sourceID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidSource, sourceID)
	}

	if err := sleepFor(ctx, a.latency); err != nil {
		return nil, err
	}

	if a.failureRate > 0 && a.rng.Float64() < a.failureRate {
		reason := failureReasons[a.rng.Intn(len(failureReasons))]
		if errors.Is(reason, ErrTemporarilyDown) {
			return nil, &common.RetryableError{Err: reason, Retryable: true}
		}
		return nil, reason
	}

	// One account when a specific account number was supplied, otherwise a
	// small deterministic spread keyed on the institution.
	accounts := 1
	if creds.AccountNumber == "" {
		accounts = len(inst.ID)%3 + 1
	}

	return &service.AuthGrant{AccountsFound: accounts}, nil
}

func sleepFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
