package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"refdataservice/internal/refdata"
	"refdataservice/internal/repository"
	"refdataservice/internal/service"
)

func newService(t *testing.T) *service.RefDataService {
	t.Helper()
	store := refdata.NewStore(repository.NewMemorySlot())
	require.NoError(t, store.Initialize(context.Background()))
	return service.NewRefDataService(store, refdata.NewResolver(store), nil, zap.NewNop().Sugar())
}

func relayTask(t *testing.T, batch service.RelayBatch) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(batch)
	require.NoError(t, err)
	return asynq.NewTask(service.TaskTypeRelay, payload)
}

func TestRelayHandler_AppliesBatch(t *testing.T) {
	svc := newService(t)
	handler := NewRelayHandler(svc, zap.NewNop().Sugar())

	err := handler(context.Background(), relayTask(t, service.RelayBatch{
		Symbols:      []string{"ETH", "BAND"},
		Rates:        []uint64{1, 100},
		ResolveTimes: []uint64{2, 200},
		RequestIDs:   []uint64{3, 300},
	}))
	require.NoError(t, err)

	refs, err := svc.ListRefs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, refdata.RateRecord{Rate: 100, ResolveTime: 200, RequestID: 300}, refs["BAND"])
}

func TestRelayHandler_SkipsRetryForPermanentFailures(t *testing.T) {
	handler := NewRelayHandler(newService(t), zap.NewNop().Sugar())

	t.Run("bad payload", func(t *testing.T) {
		err := handler(context.Background(), asynq.NewTask(service.TaskTypeRelay, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("different array length", func(t *testing.T) {
		err := handler(context.Background(), relayTask(t, service.RelayBatch{
			Symbols: []string{"ETH"},
			Rates:   []uint64{1, 2},
		}))
		assert.ErrorIs(t, err, asynq.SkipRetry)
		assert.ErrorIs(t, err, refdata.ErrDifferentArrayLength)
	})
}

func TestRelayHandler_RetriesStorageErrors(t *testing.T) {
	store := refdata.NewStore(repository.NewMemorySlot()) // never initialized
	svc := service.NewRefDataService(store, refdata.NewResolver(store), nil, zap.NewNop().Sugar())
	handler := NewRelayHandler(svc, zap.NewNop().Sugar())

	err := handler(context.Background(), relayTask(t, service.RelayBatch{
		Symbols: []string{"ETH"}, Rates: []uint64{1}, ResolveTimes: []uint64{2}, RequestIDs: []uint64{3},
	}))
	assert.ErrorIs(t, err, refdata.ErrNotInitialized)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

type fakeClient struct {
	task *asynq.Task
	err  error
}

func (f *fakeClient) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.task = task
	return &asynq.TaskInfo{ID: "generated-id", Type: task.Type()}, nil
}

func TestAsynqEnqueuer_EnqueueRelay(t *testing.T) {
	client := &fakeClient{}
	enq := NewAsynqEnqueuer(client, 3, 30*time.Second)
	batch := service.RelayBatch{Symbols: []string{"ETH"}, Rates: []uint64{1}, ResolveTimes: []uint64{2}, RequestIDs: []uint64{3}}

	id, err := enq.EnqueueRelay(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, "generated-id", id)
	require.NotNil(t, client.task)
	assert.Equal(t, service.TaskTypeRelay, client.task.Type())

	var decoded service.RelayBatch
	require.NoError(t, json.Unmarshal(client.task.Payload(), &decoded))
	assert.Equal(t, batch, decoded)
}

func TestAsynqEnqueuer_ClientError(t *testing.T) {
	enq := NewAsynqEnqueuer(&fakeClient{err: errors.New("redis down")}, 3, time.Second)

	_, err := enq.EnqueueRelay(context.Background(), service.RelayBatch{})
	assert.Error(t, err)
}
