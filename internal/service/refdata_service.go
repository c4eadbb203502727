// Package service implements the business layer over the reference store and resolver.
package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"refdataservice/internal/refdata"
)

// RefDataServiceInterface defines the operations available to transports and workers.
type RefDataServiceInterface interface {
	Initialize(ctx context.Context) error
	Bootstrap(ctx context.Context) (initialized bool, err error)
	Relay(ctx context.Context, batch RelayBatch) error
	RelayAsync(ctx context.Context, batch RelayBatch) (taskID string, err error)
	ListRefs(ctx context.Context) (map[string]refdata.RateRecord, error)
	GetRateRecord(ctx context.Context, symbol string) (refdata.RateQuote, error)
	GetReferenceData(ctx context.Context, base, quote string) (*refdata.ReferenceData, error)
}

// Enqueuer hands a relay batch to the background queue and returns the task id.
type Enqueuer interface {
	EnqueueRelay(ctx context.Context, batch RelayBatch) (string, error)
}

// RefDataService serializes access to the store: writes are exclusive, reads may overlap
// each other but never a write.
type RefDataService struct {
	mu       sync.RWMutex
	store    *refdata.Store
	resolver *refdata.Resolver
	enqueuer Enqueuer
	log      *zap.SugaredLogger
}

// NewRefDataService creates a new RefDataService. enqueuer may be nil, which disables RelayAsync.
func NewRefDataService(store *refdata.Store, resolver *refdata.Resolver, enqueuer Enqueuer, logger *zap.SugaredLogger) *RefDataService {
	return &RefDataService{
		store:    store,
		resolver: resolver,
		enqueuer: enqueuer,
		log:      logger,
	}
}

// Initialize persists an empty mapping, discarding existing data.
func (s *RefDataService) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Initialize(ctx); err != nil {
		return s.internal("Initialize", err)
	}
	s.log.Warnw("Reference store initialized")
	return nil
}

// Bootstrap initializes the store only when its slot is still empty.
func (s *RefDataService) Bootstrap(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.store.Initialized(ctx)
	if err != nil {
		return false, s.internal("Bootstrap", err)
	}
	if ok {
		return false, nil
	}
	if err := s.store.Initialize(ctx); err != nil {
		return false, s.internal("Bootstrap", err)
	}
	s.log.Infow("Reference store bootstrapped with an empty mapping")
	return true, nil
}

// Relay applies the batch atomically.
func (s *RefDataService) Relay(ctx context.Context, batch RelayBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.Relay(ctx, batch.Symbols, batch.Rates, batch.ResolveTimes, batch.RequestIDs)
	if err != nil {
		return s.classify("Relay", err)
	}
	s.log.Infow("Relay applied", "records", batch.Len())
	return nil
}

// RelayAsync validates the batch and queues it for the worker.
func (s *RefDataService) RelayAsync(ctx context.Context, batch RelayBatch) (string, error) {
	if s.enqueuer == nil {
		return "", ErrAsyncDisabled
	}
	if err := batch.Validate(); err != nil {
		return "", err
	}

	taskID, err := s.enqueuer.EnqueueRelay(ctx, batch)
	if err != nil {
		s.log.Errorw("Failed to enqueue relay task", "error", err)
		return "", ErrInternalQueue
	}
	s.log.Infow("Enqueued relay task", "task_id", taskID, "records", batch.Len())
	return taskID, nil
}

// ListRefs returns every stored record.
func (s *RefDataService) ListRefs(ctx context.Context) (map[string]refdata.RateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	refs, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, s.classify("ListRefs", err)
	}
	return refs, nil
}

// GetRateRecord returns one symbol's rate and last update.
func (s *RefDataService) GetRateRecord(ctx context.Context, symbol string) (refdata.RateQuote, error) {
	if symbol == "" {
		return refdata.RateQuote{}, ErrInvalidSymbol
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	q, err := s.resolver.GetRateRecord(ctx, symbol)
	if err != nil {
		return refdata.RateQuote{}, s.classify("GetRateRecord", err)
	}
	return q, nil
}

// GetReferenceData returns the base/quote cross rate.
func (s *RefDataService) GetReferenceData(ctx context.Context, base, quote string) (*refdata.ReferenceData, error) {
	if base == "" || quote == "" {
		return nil, ErrInvalidSymbol
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.resolver.GetCrossRate(ctx, base, quote)
	if err != nil {
		if errors.Is(err, refdata.ErrInvalidQuoteRate) || errors.Is(err, refdata.ErrRateOverflow) {
			s.log.Errorw("Corrupt reference data", "base", base, "quote", quote, "error", err)
		}
		return nil, s.classify("GetReferenceData", err)
	}
	return data, nil
}

// classify passes domain errors through and hides everything else behind ErrInternal.
func (s *RefDataService) classify(op string, err error) error {
	switch {
	case errors.Is(err, refdata.ErrDifferentArrayLength),
		errors.Is(err, refdata.ErrRefDataNotAvailable),
		errors.Is(err, refdata.ErrInvalidQuoteRate),
		errors.Is(err, refdata.ErrRateOverflow),
		errors.Is(err, refdata.ErrNotInitialized):
		return err
	}
	return s.internal(op, err)
}

func (s *RefDataService) internal(op string, err error) error {
	s.log.Errorw("Storage error", "op", op, "error", err)
	return ErrInternal
}
