package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/facility"
	"github.com/L3Technosmith/pkmnFoundations/internal/usecase"
)

type competitorRequest struct {
	PID        int32  `json:"pid"`
	Room       uint8  `json:"room"`
	Rank       uint8  `json:"rank"`
	BattlesWon uint8  `json:"battles_won"`
	Unknown5   uint64 `json:"unknown5"`
	Data       []byte `json:"data" validate:"required"`
}

type leaderRequest struct {
	PID     int32  `json:"pid"`
	Room    uint8  `json:"room"`
	Rank    uint8  `json:"rank"`
	Profile []byte `json:"profile" validate:"required"`
}

type competitorDTO struct {
	ID          uint64    `json:"id"`
	PID         int32     `json:"pid"`
	Room        uint8     `json:"room"`
	Rank        uint8     `json:"rank"`
	BattlesWon  uint8     `json:"battles_won"`
	Position    int       `json:"position"`
	Unknown5    uint64    `json:"unknown5"`
	Data        []byte    `json:"data"`
	TimeUpdated time.Time `json:"time_updated"`
}

type leaderDTO struct {
	ID          uint64    `json:"id"`
	PID         int32     `json:"pid"`
	Room        uint8     `json:"room"`
	Rank        uint8     `json:"rank"`
	Profile     []byte    `json:"profile"`
	TimeUpdated time.Time `json:"time_updated"`
}

func (h *Handler) UpsertCompetitor(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertCompetitor")
	defer span.End()

	gen, err := pathGeneration(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req competitorRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	record, err := facility.Decode(gen, req.Data)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	id, err := h.leaderboardService.UpsertCompetitor(ctx, facility.Competitor{
		PID:        req.PID,
		RoomNum:    req.Room,
		Rank:       req.Rank,
		BattlesWon: req.BattlesWon,
		Unknown5:   req.Unknown5,
		Record:     record,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "upsert competitor failed",
			"generation", gen.String(),
			"pid", req.PID,
			"room", req.Room,
			"rank", req.Rank,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]uint64{"id": id})
}

func (h *Handler) ListCompetitors(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitors")
	defer span.End()

	gen, err := pathGeneration(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	params := queryParser{values: r.URL.Query()}
	pid := int32(params.intParam("pid", 0))
	rank := params.uint8Param("rank", 0)
	room := params.uint8Param("room", 0)
	if params.err != nil {
		writeError(ctx, w, params.err)
		return
	}

	competitors, err := h.leaderboardService.GetCompetitors(ctx, gen, pid, rank, room)
	if err != nil {
		h.logger.ErrorContext(ctx, "list competitors failed", "generation", gen.String(), "rank", rank, "room", room, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]competitorDTO, 0, len(competitors))
	for _, c := range competitors {
		data, err := facility.Encode(c.Record)
		if err != nil {
			h.logger.ErrorContext(ctx, "encode competitor failed", "id", c.ID, "error", err)
			writeInternalError(ctx, w)
			return
		}
		items = append(items, competitorDTO{
			ID:          c.ID,
			PID:         c.PID,
			Room:        c.RoomNum,
			Rank:        c.Rank,
			BattlesWon:  c.BattlesWon,
			Position:    c.Position,
			Unknown5:    c.Unknown5,
			Data:        data,
			TimeUpdated: c.TimeUpdated,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) UpsertLeader(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertLeader")
	defer span.End()

	gen, err := pathGeneration(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req leaderRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	profile, err := facility.DecodeProfile(req.Profile)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	id, err := h.leaderboardService.UpsertLeader(ctx, facility.Leader{
		Generation: gen,
		PID:        req.PID,
		RoomNum:    req.Room,
		Rank:       req.Rank,
		Profile:    profile,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "upsert leader failed", "generation", gen.String(), "pid", req.PID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]uint64{"id": id})
}

func (h *Handler) ListLeaders(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeaders")
	defer span.End()

	gen, err := pathGeneration(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	params := queryParser{values: r.URL.Query()}
	rank := params.uint8Param("rank", 0)
	room := params.uint8Param("room", 0)
	if params.err != nil {
		writeError(ctx, w, params.err)
		return
	}

	leaders, err := h.leaderboardService.GetLeaders(ctx, gen, rank, room)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leaders failed", "generation", gen.String(), "rank", rank, "room", room, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderDTO, 0, len(leaders))
	for _, l := range leaders {
		profile, err := facility.EncodeProfile(l.Profile)
		if err != nil {
			h.logger.ErrorContext(ctx, "encode leader profile failed", "id", l.ID, "error", err)
			writeInternalError(ctx, w)
			return
		}
		items = append(items, leaderDTO{
			ID:          l.ID,
			PID:         l.PID,
			Room:        l.RoomNum,
			Rank:        l.Rank,
			Profile:     profile,
			TimeUpdated: l.TimeUpdated,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
