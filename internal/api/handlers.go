package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"refdataservice/internal/refdata"
	"refdataservice/internal/service"
)

// RelayRequest is a batch of rate attestations. The four arrays are indexed together.
type RelayRequest struct {
	Symbols      []string `json:"symbols" example:"ETH,BAND"`
	Rates        []uint64 `json:"rates" example:"1,100"`
	ResolveTimes []uint64 `json:"resolve_times" example:"2,200"`
	RequestIDs   []uint64 `json:"request_ids" example:"3,300"`
}

func (r RelayRequest) batch() service.RelayBatch {
	return service.RelayBatch{
		Symbols:      r.Symbols,
		Rates:        r.Rates,
		ResolveTimes: r.ResolveTimes,
		RequestIDs:   r.RequestIDs,
	}
}

// RelayAsyncResponse represents the response for a queued relay batch
type RelayAsyncResponse struct {
	TaskID string `json:"task_id" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// RefsResponse is the full stored mapping.
type RefsResponse struct {
	Refs map[string]refdata.RateRecord `json:"refs"`
}

// RateRecordResponse is a single symbol's rate (scale 1e9).
type RateRecordResponse struct {
	Symbol     string `json:"symbol" example:"ETH"`
	Rate       string `json:"rate" example:"2500000000000"`
	LastUpdate uint64 `json:"last_update" example:"1625108298"`
}

// ReferenceDataResponse is a cross rate (scale 1e18) with the update time of both legs.
type ReferenceDataResponse struct {
	Base             string `json:"base" example:"MATIC"`
	Quote            string `json:"quote" example:"USD"`
	Rate             string `json:"rate" example:"112000000000"`
	RateDecimal      string `json:"rate_decimal" example:"0.000000112"`
	LastUpdatedBase  uint64 `json:"last_updated_base" example:"1625108298"`
	LastUpdatedQuote uint64 `json:"last_updated_quote" example:"1625119856"`
}

// HandleRelay godoc
// @Summary Relay a batch of rates
// @Description Upserts one record per index. The batch is applied atomically: arrays of different length are rejected and nothing is written.
// @Tags relay
// @Accept json
// @Produce json
// @Param request body RelayRequest true "Relay batch"
// @Success 204 "Batch applied"
// @Failure 400 {object} ErrorResponse "Different array length or invalid JSON"
// @Failure 503 {object} ErrorResponse "Store not initialized"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /relay [post]
func HandleRelay(svc service.RefDataServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RelayRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON"})
			return
		}

		if err := svc.Relay(r.Context(), req.batch()); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleRelayAsync godoc
// @Summary Queue a batch of rates
// @Description Validates the batch and queues it for the background worker. Returns the task id immediately.
// @Tags relay
// @Accept json
// @Produce json
// @Param request body RelayRequest true "Relay batch"
// @Success 202 {object} RelayAsyncResponse "Batch queued"
// @Failure 400 {object} ErrorResponse "Different array length or invalid JSON"
// @Failure 503 {object} ErrorResponse "Async relay disabled"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /relay/async [post]
func HandleRelayAsync(svc service.RefDataServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RelayRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON"})
			return
		}

		taskID, err := svc.RelayAsync(r.Context(), req.batch())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusAccepted, RelayAsyncResponse{TaskID: taskID})
	}
}

// HandleListRefs godoc
// @Summary List all stored records
// @Description Returns the full symbol to record mapping. Order is not significant.
// @Tags refs
// @Produce json
// @Success 200 {object} RefsResponse "Stored records"
// @Failure 503 {object} ErrorResponse "Store not initialized"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /refs [get]
func HandleListRefs(svc service.RefDataServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refs, err := svc.ListRefs(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, RefsResponse{Refs: refs})
	}
}

// HandleGetRateRecord godoc
// @Summary Get one symbol's rate
// @Description Returns the rate (scale 1e9) and last update time. USD is synthesized at 1e9 with the current time.
// @Tags refs
// @Produce json
// @Param symbol path string true "Symbol (case-sensitive)"
// @Success 200 {object} RateRecordResponse "Rate found"
// @Failure 404 {object} ErrorResponse "Symbol never relayed or not resolved"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /refs/{symbol} [get]
func HandleGetRateRecord(svc service.RefDataServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := chi.URLParam(r, "symbol")
		q, err := svc.GetRateRecord(r.Context(), symbol)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, RateRecordResponse{
			Symbol:     symbol,
			Rate:       q.Rate.Dec(),
			LastUpdate: q.LastUpdate,
		})
	}
}

// HandleGetReferenceData godoc
// @Summary Get a cross rate
// @Description Returns base/quote scaled by 1e18 (floored) with the update time of both legs.
// @Tags reference-data
// @Produce json
// @Param base query string true "Base symbol"
// @Param quote query string true "Quote symbol"
// @Success 200 {object} ReferenceDataResponse "Cross rate"
// @Failure 400 {object} ErrorResponse "Missing base or quote"
// @Failure 404 {object} ErrorResponse "Symbol never relayed or not resolved"
// @Failure 422 {object} ErrorResponse "Quote rate is zero"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /reference-data [get]
func HandleGetReferenceData(svc service.RefDataServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		base := r.URL.Query().Get("base")
		quote := r.URL.Query().Get("quote")
		if base == "" || quote == "" {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "base and quote query params are required"})
			return
		}

		data, err := svc.GetReferenceData(r.Context(), base, quote)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ReferenceDataResponse{
			Base:             base,
			Quote:            quote,
			Rate:             data.Rate.Dec(),
			RateDecimal:      scaledDecimal(data),
			LastUpdatedBase:  data.LastUpdatedBase,
			LastUpdatedQuote: data.LastUpdatedQuote,
		})
	}
}

// scaledDecimal renders the E18-scaled integer as a plain decimal.
func scaledDecimal(data *refdata.ReferenceData) string {
	return decimal.NewFromBigInt(data.Rate.ToBig(), -18).String()
}
