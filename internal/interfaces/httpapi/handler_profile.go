package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/profile"
	"github.com/L3Technosmith/pkmnFoundations/internal/usecase"
)

type profileRequest struct {
	Data []byte `json:"data" validate:"required"`
}

type profileDTO struct {
	PID         int32     `json:"pid"`
	Version     uint8     `json:"version"`
	Language    uint8     `json:"language"`
	Country     uint8     `json:"country"`
	Region      uint8     `json:"region"`
	OT          uint32    `json:"ot"`
	Name        []byte    `json:"name"`
	Data        []byte    `json:"data"`
	TimeUpdated time.Time `json:"time_updated"`
}

func (h *Handler) SetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetProfile")
	defer span.End()

	gen, err := pathGeneration(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req profileRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	ok, err := h.profileService.SetProfile(ctx, gen, req.Data)
	if err != nil {
		h.logger.WarnContext(ctx, "set profile failed", "generation", gen.String(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"stored": ok})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProfile")
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

	p, found, err := h.profileService.GetProfile(ctx, gen, pid)
	if err != nil {
		h.logger.ErrorContext(ctx, "get profile failed", "generation", gen.String(), "pid", pid, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: no %s profile for pid %d", usecase.ErrNotFound, gen, pid))
		return
	}

	data, err := profile.Encode(p)
	if err != nil {
		h.logger.ErrorContext(ctx, "encode profile failed", "pid", pid, "error", err)
		writeInternalError(ctx, w)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, profileDTO{
		PID:         p.PID,
		Version:     p.Version,
		Language:    p.Language,
		Country:     p.Country,
		Region:      p.Region,
		OT:          p.OT,
		Name:        p.Name,
		Data:        data,
		TimeUpdated: p.TimeUpdated,
	})
}
