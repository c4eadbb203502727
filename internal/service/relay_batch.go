package service

import (
	"fmt"

	"refdataservice/internal/refdata"
)

// TaskTypeRelay is the Asynq task type for queued relay batches.
const TaskTypeRelay = "refdata:relay"

// RelayBatch is one relayer submission: four parallel sequences indexed together.
// It doubles as the Asynq task payload.
type RelayBatch struct {
	Symbols      []string `json:"symbols"`
	Rates        []uint64 `json:"rates"`
	ResolveTimes []uint64 `json:"resolve_times"`
	RequestIDs   []uint64 `json:"request_ids"`
}

// Len is the number of records in the batch, by symbol count.
func (b RelayBatch) Len() int {
	return len(b.Symbols)
}

// Validate checks that the four sequences have equal length.
func (b RelayBatch) Validate() error {
	n := len(b.Symbols)
	if len(b.Rates) != n || len(b.ResolveTimes) != n || len(b.RequestIDs) != n {
		return fmt.Errorf("%w: symbols=%d rates=%d resolve_times=%d request_ids=%d",
			refdata.ErrDifferentArrayLength, n, len(b.Rates), len(b.ResolveTimes), len(b.RequestIDs))
	}
	return nil
}
