//go:build integration

package integration

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"refdataservice/internal/refdata"
	"refdataservice/internal/repository"
	"refdataservice/internal/service"
	"refdataservice/internal/worker"
)

func newPostgresService(t *testing.T, enqueuer service.Enqueuer) *service.RefDataService {
	t.Helper()
	store := refdata.NewStore(repository.NewPostgresSlot(testDB, "config"))
	clock := func() time.Time { return time.Unix(1625119856, 0) }
	return service.NewRefDataService(store, refdata.NewResolver(store, refdata.WithClock(clock)), enqueuer, zap.NewNop().Sugar())
}

func TestService_RelayAndQuery(t *testing.T) {
	resetTestData(t)
	ctx := testContext(t)
	svc := newPostgresService(t, nil)

	created, err := svc.Bootstrap(ctx)
	if err != nil || !created {
		t.Fatalf("Bootstrap: created=%v err=%v", created, err)
	}

	err = svc.Relay(ctx, service.RelayBatch{
		Symbols:      []string{"MATIC", "ETH"},
		Rates:        []uint64{112, 2500 * refdata.E9},
		ResolveTimes: []uint64{1625108298, 1625108300},
		RequestIDs:   []uint64{1, 2},
	})
	if err != nil {
		t.Fatalf("Relay: %v", err)
	}

	data, err := svc.GetReferenceData(ctx, "MATIC", "USD")
	if err != nil {
		t.Fatalf("GetReferenceData: %v", err)
	}
	if data.Rate.Uint64() != 112_000_000_000 {
		t.Fatalf("expected 112000000000, got %s", data.Rate.Dec())
	}
	if data.LastUpdatedBase != 1625108298 || data.LastUpdatedQuote != 1625119856 {
		t.Fatalf("unexpected timestamps %d/%d", data.LastUpdatedBase, data.LastUpdatedQuote)
	}

	// A second bootstrap keeps the relayed data.
	created, err = svc.Bootstrap(ctx)
	if err != nil || created {
		t.Fatalf("second Bootstrap: created=%v err=%v", created, err)
	}
	refs, err := svc.ListRefs(ctx)
	if err != nil {
		t.Fatalf("ListRefs: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
}

func TestService_RejectedBatchLeavesRowUntouched(t *testing.T) {
	resetTestData(t)
	ctx := testContext(t)
	svc := newPostgresService(t, nil)

	if err := svc.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	var before time.Time
	if err := testDB.QueryRowContext(ctx, `SELECT updated_at FROM refdata_slots WHERE key='config'`).Scan(&before); err != nil {
		t.Fatalf("select updated_at: %v", err)
	}

	err := svc.Relay(ctx, service.RelayBatch{
		Symbols:      []string{"ETH", "BAND"},
		Rates:        []uint64{1},
		ResolveTimes: []uint64{2, 200},
		RequestIDs:   []uint64{3, 300},
	})
	if !errors.Is(err, refdata.ErrDifferentArrayLength) {
		t.Fatalf("expected ErrDifferentArrayLength, got %v", err)
	}

	var after time.Time
	if err := testDB.QueryRowContext(ctx, `SELECT updated_at FROM refdata_slots WHERE key='config'`).Scan(&after); err != nil {
		t.Fatalf("select updated_at: %v", err)
	}
	if !after.Equal(before) {
		t.Fatalf("slot was rewritten by a rejected batch")
	}
}

func TestService_RelayAsyncThroughQueue(t *testing.T) {
	resetTestData(t)
	ctx := testContext(t)

	client := asynq.NewClient(testQueueOpt)
	t.Cleanup(func() { _ = client.Close() })
	inspector := asynq.NewInspector(testQueueOpt)
	t.Cleanup(func() { _ = inspector.Close() })

	svc := newPostgresService(t, worker.NewAsynqEnqueuer(client, 3, 30*time.Second))
	if err := svc.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	batch := service.RelayBatch{
		Symbols:      []string{"ETH"},
		Rates:        []uint64{2500 * refdata.E9},
		ResolveTimes: []uint64{1625108298},
		RequestIDs:   []uint64{7},
	}
	taskID, err := svc.RelayAsync(ctx, batch)
	if err != nil {
		t.Fatalf("RelayAsync: %v", err)
	}

	info, err := inspector.GetTaskInfo("default", taskID)
	if err != nil {
		t.Fatalf("GetTaskInfo: %v", err)
	}
	if info.Type != service.TaskTypeRelay || info.MaxRetry != 3 {
		t.Fatalf("unexpected task info type=%s max_retry=%d", info.Type, info.MaxRetry)
	}
	var queued service.RelayBatch
	if err := json.Unmarshal(info.Payload, &queued); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(queued.RequestIDs) != 1 || queued.RequestIDs[0] != 7 {
		t.Fatalf("unexpected queued batch %+v", queued)
	}

	// Run the handler the way the asynq server would.
	handler := worker.NewRelayHandler(svc, zap.NewNop().Sugar())
	if err := handler(ctx, asynq.NewTask(info.Type, info.Payload)); err != nil {
		t.Fatalf("handler: %v", err)
	}

	q, err := svc.GetRateRecord(ctx, "ETH")
	if err != nil {
		t.Fatalf("GetRateRecord: %v", err)
	}
	if q.Rate.Uint64() != 2500*refdata.E9 || q.LastUpdate != 1625108298 {
		t.Fatalf("unexpected quote %s/%d", q.Rate.Dec(), q.LastUpdate)
	}
}
