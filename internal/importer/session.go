// Package importer drives the staged workflow that pulls transactions from a
// connected source into storage: select a source, authenticate, download, and
// classify-and-persist. A Session enforces the stage order and survives failed
// attempts by returning to the appropriate stage.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mwhite/centsible/internal/classify"
	"github.com/mwhite/centsible/internal/model"
	"github.com/mwhite/centsible/internal/service"
)

// Stage identifies where an import session is in its workflow.
type Stage int

const (
	StageSelecting Stage = iota
	StageAuthenticating
	StageImporting
	StageSucceeded
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageSelecting:
		return "selecting"
	case StageAuthenticating:
		return "authenticating"
	case StageImporting:
		return "importing"
	case StageSucceeded:
		return "succeeded"
	case StageFailed:
		return "failed"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// ConnectionResult describes a successful authentication.
type ConnectionResult struct {
	SourceID      string
	ConnectionID  string
	AccountsFound int
}

// Summary describes a completed import.
type Summary struct {
	Records []model.Transaction
	Count   int
}

// Option configures a Session.
type Option func(*Session)

// WithProgress installs a callback invoked after each record is persisted,
// with the number done and the total batch size.
func WithProgress(fn func(done, total int)) Option {
	return func(s *Session) {
		s.progress = fn
	}
}

// WithLogger overrides the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// Session is a single pass through the import workflow. It is safe for
// concurrent use; operations that arrive in the wrong stage are rejected
// rather than queued.
type Session struct {
	auth     service.BankAuthenticator
	fetcher  service.RecordFetcher
	store    service.TransactionCreator
	progress func(done, total int)
	logger   *slog.Logger

	mu           sync.Mutex
	stage        Stage
	closed       bool
	sourceID     string
	connectionID string
	accounts     int
}

// NewSession creates a session in the selecting stage.
func NewSession(auth service.BankAuthenticator, fetcher service.RecordFetcher, store service.TransactionCreator, opts ...Option) *Session {
	s := &Session{
		auth:    auth,
		fetcher: fetcher,
		store:   store,
		logger:  slog.Default(),
		stage:   StageSelecting,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stage reports the current workflow stage.
func (s *Session) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// SourceID reports the connected source, empty before a successful Connect.
func (s *Session) SourceID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sourceID
}

// Connect validates the selection, authenticates with the source, and on
// success moves the session to the importing stage. A failed attempt returns
// the session to selecting with its connection fields cleared, so the caller
// can try again with corrected credentials.
func (s *Session) Connect(ctx context.Context, sourceID string, creds service.Credentials) (*ConnectionResult, error) {
	if err := validateSelection(sourceID, creds); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if s.stage != StageSelecting {
		err := &stageError{op: "connect", have: s.stage, want: StageSelecting}
		s.mu.Unlock()
		return nil, err
	}
	s.stage = StageAuthenticating
	s.mu.Unlock()

	grant, err := s.auth.Authenticate(ctx, sourceID, creds)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		// The session was abandoned while the exchange was in flight; drop
		// the result without mutating anything.
		return nil, ErrSessionClosed
	}
	if err != nil {
		s.stage = StageSelecting
		s.sourceID = ""
		s.connectionID = ""
		s.accounts = 0
		s.logger.Warn("authentication failed",
			"source", sourceID,
			"error", err)
		return nil, &AuthError{SourceID: sourceID, Err: err}
	}

	s.stage = StageImporting
	s.sourceID = sourceID
	s.connectionID = "conn_" + uuid.NewString()
	s.accounts = grant.AccountsFound
	s.logger.Info("source connected",
		"source", sourceID,
		"connection_id", s.connectionID,
		"accounts_found", grant.AccountsFound)

	return &ConnectionResult{
		SourceID:      sourceID,
		ConnectionID:  s.connectionID,
		AccountsFound: grant.AccountsFound,
	}, nil
}

// ImportTransactions downloads the connected source's records, classifies
// each one, and persists them in order. The first persistence failure aborts
// the batch; records already created stay in storage and are counted in the
// returned ImportError.
func (s *Session) ImportTransactions(ctx context.Context) (*Summary, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if s.stage != StageImporting {
		err := &stageError{op: "import", have: s.stage, want: StageImporting}
		s.mu.Unlock()
		return nil, err
	}
	sourceID := s.sourceID
	s.mu.Unlock()

	records, err := s.fetcher.FetchRecords(ctx, sourceID)
	if err != nil {
		return s.finishImport(nil, &ImportError{SourceID: sourceID, Err: err})
	}

	created, err := Ingest(ctx, s.store, records, sourceID, s.progress)
	if err != nil {
		return s.finishImport(nil, &ImportError{SourceID: sourceID, Created: len(created), Err: err})
	}

	s.logger.Info("import complete",
		"source", sourceID,
		"records", len(created))
	return s.finishImport(&Summary{Records: created, Count: len(created)}, nil)
}

// finishImport applies the terminal transition, discarding the outcome if the
// session was closed mid-flight.
func (s *Session) finishImport(summary *Summary, importErr error) (*Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	if importErr != nil {
		s.stage = StageFailed
		return nil, importErr
	}
	s.stage = StageSucceeded
	return summary, nil
}

// Close abandons the session. Operations still in flight have their results
// discarded; no further transitions happen after Close returns.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func validateSelection(sourceID string, creds service.Credentials) error {
	if strings.TrimSpace(sourceID) == "" {
		return &ValidationError{Field: "source", Reason: "no source selected"}
	}
	if strings.TrimSpace(creds.Username) == "" {
		return &ValidationError{Field: "credentials", Reason: "username is required"}
	}
	if strings.TrimSpace(creds.Password) == "" {
		return &ValidationError{Field: "credentials", Reason: "password is required"}
	}
	return nil
}

// Ingest classifies and persists a batch of raw records in order, tagging
// each with the source it came from. It returns the transactions created
// before the first failure; callers decide whether that is a partial result
// or a hard error. The OFX file path shares this with the session workflow.
func Ingest(ctx context.Context, store service.TransactionCreator, records []model.RawRecord, sourceID string, progress func(done, total int)) ([]model.Transaction, error) {
	created := make([]model.Transaction, 0, len(records))
	for i, rec := range records {
		txn := &model.Transaction{
			Date:        rec.Date,
			Amount:      rec.Magnitude(),
			Type:        rec.ResolveType(),
			Category:    classify.Classify(rec),
			Description: rec.Description,
			Merchant:    rec.Merchant,
			AccountType: rec.AccountType,
			SourceID:    sourceID,
			Imported:    true,
		}
		stored, err := store.CreateTransaction(ctx, txn)
		if err != nil {
			return created, fmt.Errorf("persisting record %d of %d: %w", i+1, len(records), err)
		}
		created = append(created, *stored)
		if progress != nil {
			progress(i+1, len(records))
		}
	}
	return created, nil
}
