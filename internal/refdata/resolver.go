package refdata

import (
	"context"
	"fmt"
	"time"

	"github.com/holiman/uint256"
)

// RecordReader is the read path the resolver needs from a store.
type RecordReader interface {
	Lookup(ctx context.Context, symbol string) (RateRecord, bool, error)
}

// Resolver answers point and cross-rate queries. It holds no state between calls.
type Resolver struct {
	records RecordReader
	now     func() time.Time
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithClock overrides the wall clock used to stamp the numeraire.
func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) {
		r.now = now
	}
}

// NewResolver creates a Resolver reading from records.
func NewResolver(records RecordReader, opts ...ResolverOption) *Resolver {
	r := &Resolver{records: records, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetRateRecord returns the rate (scale E9) and last update time for symbol.
// The numeraire is synthesized at E9 and stamped with the current time.
func (r *Resolver) GetRateRecord(ctx context.Context, symbol string) (RateQuote, error) {
	if symbol == Numeraire {
		return RateQuote{
			Rate:       uint256.NewInt(E9),
			LastUpdate: uint64(r.now().Unix()),
		}, nil
	}

	rec, ok, err := r.records.Lookup(ctx, symbol)
	if err != nil {
		return RateQuote{}, err
	}
	if !ok || !rec.Resolved() {
		return RateQuote{}, fmt.Errorf("%w: %s", ErrRefDataNotAvailable, symbol)
	}
	return RateQuote{
		Rate:       uint256.NewInt(rec.Rate),
		LastUpdate: rec.ResolveTime,
	}, nil
}

// GetCrossRate returns base/quote scaled by E18, floored.
func (r *Resolver) GetCrossRate(ctx context.Context, base, quote string) (*ReferenceData, error) {
	b, err := r.GetRateRecord(ctx, base)
	if err != nil {
		return nil, err
	}
	q, err := r.GetRateRecord(ctx, quote)
	if err != nil {
		return nil, err
	}

	rate, err := CrossRate(b.Rate, q.Rate)
	if err != nil {
		return nil, fmt.Errorf("%s/%s: %w", base, quote, err)
	}
	return &ReferenceData{
		Rate:             rate,
		LastUpdatedBase:  b.LastUpdate,
		LastUpdatedQuote: q.LastUpdate,
	}, nil
}

// CrossRate computes base*E18/quote without silent truncation.
func CrossRate(base, quote *uint256.Int) (*uint256.Int, error) {
	if quote.IsZero() {
		return nil, ErrInvalidQuoteRate
	}
	scaled, overflow := new(uint256.Int).MulOverflow(base, uint256.NewInt(E18))
	if overflow {
		return nil, ErrRateOverflow
	}
	return scaled.Div(scaled, quote), nil
}
