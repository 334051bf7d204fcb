package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/gts"
	"github.com/L3Technosmith/pkmnFoundations/internal/usecase"
)

type gtsRecordRequest struct {
	Data []byte `json:"data" validate:"required"`
}

type gtsExchangeRequest struct {
	Upload []byte `json:"upload" validate:"required"`
	Target []byte `json:"target" validate:"required"`
}

type gtsRecordDTO struct {
	PID           int32      `json:"pid"`
	Species       uint16     `json:"species"`
	Level         uint8      `json:"level"`
	Exchanged     bool       `json:"exchanged"`
	TimeDeposited *time.Time `json:"time_deposited,omitempty"`
	TimeExchanged *time.Time `json:"time_exchanged,omitempty"`
	Data          []byte     `json:"data"`
}

type gtsHistoryDTO struct {
	ID            uint64       `json:"id"`
	Record        gtsRecordDTO `json:"record"`
	TimeWithdrawn *time.Time   `json:"time_withdrawn,omitempty"`
	TradeID       *uint64      `json:"trade_id,omitempty"`
	PartnerPID    *int32       `json:"partner_pid,omitempty"`
}

func (h *Handler) GetTrade(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTrade")
	defer span.End()

	gen, err := pathGeneration(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	pid, err := pathPID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	record, found, err := h.tradeService.Get(ctx, gen, pid)
	if err != nil {
		h.logger.ErrorContext(ctx, "get gts listing failed", "generation", gen.String(), "pid", pid, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: no %s listing for pid %d", usecase.ErrNotFound, gen, pid))
		return
	}

	h.writeRecord(ctx, w, http.StatusOK, record)
}

func (h *Handler) DepositTrade(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DepositTrade")
	defer span.End()

	gen, err := pathGeneration(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req gtsRecordRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	record, err := gts.Decode(gen, req.Data)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	ok, err := h.tradeService.Deposit(ctx, record)
	if err != nil {
		h.logger.WarnContext(ctx, "gts deposit failed", "generation", gen.String(), "pid", record.PID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deposited": ok})
}

func (h *Handler) WithdrawTrade(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WithdrawTrade")
	defer span.End()

	gen, err := pathGeneration(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	pid, err := pathPID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	record, ok, err := h.tradeService.Withdraw(ctx, gen, pid)
	if err != nil {
		h.logger.WarnContext(ctx, "gts withdraw failed", "generation", gen.String(), "pid", pid, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !ok {
		writeSuccess(ctx, w, http.StatusOK, map[string]bool{"withdrawn": false})
		return
	}

	dto, err := gtsRecordToDTO(record)
	if err != nil {
		h.logger.ErrorContext(ctx, "encode withdrawn gts record failed", "pid", pid, "error", err)
		writeInternalError(ctx, w)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{"withdrawn": true, "record": dto})
}

func (h *Handler) ExchangeTrade(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExchangeTrade")
	defer span.End()

	gen, err := pathGeneration(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req gtsExchangeRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	upload, err := gts.Decode(gen, req.Upload)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: upload: %v", usecase.ErrInvalidInput, err))
		return
	}
	target, err := gts.Decode(gen, req.Target)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: target: %v", usecase.ErrInvalidInput, err))
		return
	}

	ok, err := h.tradeService.Exchange(ctx, upload, target)
	if err != nil {
		h.logger.WarnContext(ctx, "gts exchange failed",
			"generation", gen.String(),
			"pid", upload.PID,
			"target_pid", target.PID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"exchanged": ok})
}

func (h *Handler) SearchTrades(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchTrades")
	defer span.End()

	gen, err := pathGeneration(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	params := queryParser{values: r.URL.Query()}
	query := gts.SearchQuery{
		Generation: gen,
		PID:        int32(params.intParam("pid", 0)),
		Species:    params.uint16Param("species", 0),
		Gender:     gts.Gender(params.uint8Param("gender", uint8(gts.GenderEither))),
		MinLevel:   params.uint8Param("min_level", 0),
		MaxLevel:   params.uint8Param("max_level", 0),
		Country:    params.uint8Param("country", 0),
		Limit:      params.intParam("limit", 7),
	}
	if params.err != nil {
		writeError(ctx, w, params.err)
		return
	}

	records, err := h.tradeService.Search(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "gts search failed", "generation", gen.String(), "pid", query.PID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gtsRecordDTO, 0, len(records))
	for _, record := range records {
		dto, err := gtsRecordToDTO(record)
		if err != nil {
			h.logger.ErrorContext(ctx, "encode gts search result failed", "pid", record.PID, "error", err)
			writeInternalError(ctx, w)
			return
		}
		items = append(items, dto)
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTradeHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTradeHistory")
	defer span.End()

	gen, err := pathGeneration(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	pid, err := pathPID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.tradeService.History(ctx, gen, pid)
	if err != nil {
		h.logger.ErrorContext(ctx, "list gts history failed", "generation", gen.String(), "pid", pid, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gtsHistoryDTO, 0, len(entries))
	for _, entry := range entries {
		record, err := gtsRecordToDTO(entry.Record)
		if err != nil {
			h.logger.ErrorContext(ctx, "encode gts history entry failed", "id", entry.ID, "error", err)
			writeInternalError(ctx, w)
			return
		}
		items = append(items, gtsHistoryDTO{
			ID:            entry.ID,
			Record:        record,
			TimeWithdrawn: entry.TimeWithdrawn,
			TradeID:       entry.TradeID,
			PartnerPID:    entry.PartnerPID,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) writeRecord(ctx context.Context, w http.ResponseWriter, status int, record gts.Record) {
	dto, err := gtsRecordToDTO(record)
	if err != nil {
		h.logger.ErrorContext(ctx, "encode gts record failed", "pid", record.PID, "error", err)
		writeInternalError(ctx, w)
		return
	}
	writeSuccess(ctx, w, status, dto)
}

func gtsRecordToDTO(record gts.Record) (gtsRecordDTO, error) {
	data, err := gts.Encode(record)
	if err != nil {
		return gtsRecordDTO{}, err
	}
	return gtsRecordDTO{
		PID:           record.PID,
		Species:       record.Species,
		Level:         record.Level,
		Exchanged:     record.Exchanged(),
		TimeDeposited: record.TimeDeposited,
		TimeExchanged: record.TimeExchanged,
		Data:          data,
	}, nil
}
