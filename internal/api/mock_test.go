package api

import (
	"context"

	"refdataservice/internal/refdata"
	"refdataservice/internal/service"
)

// mockRefDataService implements service.RefDataServiceInterface for testing.
type mockRefDataService struct {
	relayFunc            func(ctx context.Context, batch service.RelayBatch) error
	relayAsyncFunc       func(ctx context.Context, batch service.RelayBatch) (string, error)
	listRefsFunc         func(ctx context.Context) (map[string]refdata.RateRecord, error)
	getRateRecordFunc    func(ctx context.Context, symbol string) (refdata.RateQuote, error)
	getReferenceDataFunc func(ctx context.Context, base, quote string) (*refdata.ReferenceData, error)
}

func (m *mockRefDataService) Initialize(context.Context) error {
	return nil // Not used in handler tests
}

func (m *mockRefDataService) Bootstrap(context.Context) (bool, error) {
	return false, nil // Not used in handler tests
}

func (m *mockRefDataService) Relay(ctx context.Context, batch service.RelayBatch) error {
	return m.relayFunc(ctx, batch)
}

func (m *mockRefDataService) RelayAsync(ctx context.Context, batch service.RelayBatch) (string, error) {
	return m.relayAsyncFunc(ctx, batch)
}

func (m *mockRefDataService) ListRefs(ctx context.Context) (map[string]refdata.RateRecord, error) {
	return m.listRefsFunc(ctx)
}

func (m *mockRefDataService) GetRateRecord(ctx context.Context, symbol string) (refdata.RateQuote, error) {
	return m.getRateRecordFunc(ctx, symbol)
}

func (m *mockRefDataService) GetReferenceData(ctx context.Context, base, quote string) (*refdata.ReferenceData, error) {
	return m.getReferenceDataFunc(ctx, base, quote)
}
