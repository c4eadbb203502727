package refdata

import (
	"context"
	"fmt"
	"maps"
)

// Slot is a durable single-key persistence primitive holding the encoded state.
type Slot interface {
	// Load returns the stored payload. found is false when nothing was ever saved.
	Load(ctx context.Context) (payload []byte, found bool, err error)
	// Save replaces the stored payload.
	Save(ctx context.Context, payload []byte) error
}

// Store is the reference store: one persisted mapping from symbol to its latest record.
type Store struct {
	slot Slot
}

// NewStore creates a Store over the given slot.
func NewStore(slot Slot) *Store {
	return &Store{slot: slot}
}

// Initialize persists an empty mapping, discarding whatever the slot held before.
func (s *Store) Initialize(ctx context.Context) error {
	return s.save(ctx, NewState())
}

// Initialized reports whether the slot holds a state.
func (s *Store) Initialized(ctx context.Context) (bool, error) {
	_, found, err := s.slot.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load slot: %w", err)
	}
	return found, nil
}

// Relay upserts one record per index, in input order. The batch is validated before
// anything is loaded or written, so a rejected batch leaves the slot untouched.
func (s *Store) Relay(ctx context.Context, symbols []string, rates, resolveTimes, requestIDs []uint64) error {
	n := len(symbols)
	if len(rates) != n || len(resolveTimes) != n || len(requestIDs) != n {
		return fmt.Errorf("%w: symbols=%d rates=%d resolve_times=%d request_ids=%d",
			ErrDifferentArrayLength, n, len(rates), len(resolveTimes), len(requestIDs))
	}

	state, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i, symbol := range symbols {
		state.Refs[symbol] = RateRecord{
			Rate:        rates[i],
			ResolveTime: resolveTimes[i],
			RequestID:   requestIDs[i],
		}
	}
	return s.save(ctx, state)
}

// ReadAll returns a copy of the full mapping.
func (s *Store) ReadAll(ctx context.Context) (map[string]RateRecord, error) {
	state, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return maps.Clone(state.Refs), nil
}

// Lookup returns the record stored for symbol.
func (s *Store) Lookup(ctx context.Context, symbol string) (RateRecord, bool, error) {
	state, err := s.load(ctx)
	if err != nil {
		return RateRecord{}, false, err
	}
	rec, ok := state.Refs[symbol]
	return rec, ok, nil
}

func (s *Store) load(ctx context.Context) (*State, error) {
	payload, found, err := s.slot.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load slot: %w", err)
	}
	if !found {
		return nil, ErrNotInitialized
	}
	return DecodeState(payload)
}

func (s *Store) save(ctx context.Context, state *State) error {
	payload, err := EncodeState(state)
	if err != nil {
		return err
	}
	if err := s.slot.Save(ctx, payload); err != nil {
		return fmt.Errorf("save slot: %w", err)
	}
	return nil
}
