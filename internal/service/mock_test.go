package service

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueRelay(ctx context.Context, batch RelayBatch) (string, error) {
	args := m.Called(ctx, batch)
	return args.String(0), args.Error(1)
}
