// Package refdata implements the reference store and the cross-rate resolver.
package refdata

import "github.com/holiman/uint256"

// Scale factors for fixed-point rates.
const (
	// E9 is one reference unit in a stored rate.
	E9 uint64 = 1_000_000_000
	// E18 is one reference unit in a cross rate.
	E18 uint64 = 1_000_000_000_000_000_000
)

// Numeraire is the reference symbol. It is never stored and is always fresh.
const Numeraire = "USD"

// RateRecord is the latest attestation relayed for a symbol.
type RateRecord struct {
	Rate        uint64 `json:"rate"`
	ResolveTime uint64 `json:"resolve_time"`
	RequestID   uint64 `json:"request_id"`
}

// Resolved reports whether the record carries an attestation time.
func (r RateRecord) Resolved() bool {
	return r.ResolveTime != 0
}

// State is the whole persisted mapping.
type State struct {
	Refs map[string]RateRecord `json:"refs"`
}

// NewState returns an empty state.
func NewState() *State {
	return &State{Refs: make(map[string]RateRecord)}
}

// RateQuote is a single symbol's rate (scale E9) and the time it was last updated.
type RateQuote struct {
	Rate       *uint256.Int
	LastUpdate uint64
}

// ReferenceData is a cross rate (scale E18) with the update times of both legs.
type ReferenceData struct {
	Rate             *uint256.Int
	LastUpdatedBase  uint64
	LastUpdatedQuote uint64
}
