package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/terminal"
	"github.com/L3Technosmith/pkmnFoundations/internal/usecase"
)

const defaultTerminalSearchLimit = 30

type terminalMetaDTO struct {
	Species     uint16 `json:"species"`
	Label       int32  `json:"label"`
	Streak      uint16 `json:"streak"`
	TrainerName []byte `json:"trainer_name,omitempty"`
	Metagame    uint8  `json:"metagame"`
	Country     uint8  `json:"country"`
	Region      uint8  `json:"region"`
}

type terminalUploadRequest struct {
	PID     int32           `json:"pid"`
	Header  []byte          `json:"header"`
	Payload []byte          `json:"payload" validate:"required"`
	Meta    terminalMetaDTO `json:"meta"`
	Roster  []uint16        `json:"roster" validate:"omitempty,max=12"`
}

type terminalItemDTO struct {
	Serial    uint64          `json:"serial"`
	PID       int32           `json:"pid"`
	Header    []byte          `json:"header,omitempty"`
	Payload   []byte          `json:"payload"`
	Meta      terminalMetaDTO `json:"meta"`
	Roster    []uint16        `json:"roster,omitempty"`
	Views     uint64          `json:"views"`
	Saves     uint64          `json:"saves"`
	TimeAdded time.Time       `json:"time_added"`
}

func (h *Handler) UploadContent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadContent")
	defer span.End()

	kind, err := pathKind(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req terminalUploadRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	serial, err := h.contentService.Upload(ctx, kind, terminal.Item{
		PID:     req.PID,
		Header:  req.Header,
		Payload: req.Payload,
		Meta: terminal.Metadata{
			Species:     req.Meta.Species,
			Label:       req.Meta.Label,
			Streak:      req.Meta.Streak,
			TrainerName: req.Meta.TrainerName,
			Metagame:    req.Meta.Metagame,
			Country:     req.Meta.Country,
			Region:      req.Meta.Region,
		},
		Roster: req.Roster,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "terminal upload failed", "kind", kind.String(), "pid", req.PID, "error", err)
		writeError(ctx, w, err)
		return
	}

	// serial 0 tells the client the content is already on the server
	writeSuccess(ctx, w, http.StatusOK, map[string]any{"serial": serial, "duplicate": serial == 0})
}

func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetContent")
	defer span.End()

	kind, err := pathKind(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	serial, err := pathSerial(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, found, err := h.contentService.Get(ctx, kind, serial, queryBool(r.URL.Query(), "views"))
	if err != nil {
		h.logger.ErrorContext(ctx, "get terminal item failed", "kind", kind.String(), "serial", serial, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: no %s with serial %d", usecase.ErrNotFound, kind, serial))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, terminalItemToDTO(item))
}

func (h *Handler) FlagContentSaved(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FlagContentSaved")
	defer span.End()

	kind, err := pathKind(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	serial, err := pathSerial(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	ok, err := h.contentService.FlagSaved(ctx, kind, serial)
	if err != nil {
		h.logger.WarnContext(ctx, "flag terminal item saved failed", "kind", kind.String(), "serial", serial, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"saved": ok})
}

func (h *Handler) CountContent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CountContent")
	defer span.End()

	kind, err := pathKind(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	n, err := h.contentService.Count(ctx, kind)
	if err != nil {
		h.logger.ErrorContext(ctx, "count terminal items failed", "kind", kind.String(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]uint64{"count": n})
}

func (h *Handler) SearchContent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchContent")
	defer span.End()

	kind, err := pathKind(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	filter, err := searchFilter(kind, queryParser{values: r.URL.Query()})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.contentService.Search(ctx, kind, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "search terminal items failed", "kind", kind.String(), "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]terminalItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, terminalItemToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

// searchFilter reads the query vocabulary of kind: a subject for dress-up, box and musical searches,
// locale plus ranking and metagame codes for battle videos.
func searchFilter(kind terminal.Kind, params queryParser) (terminal.Filter, error) {
	limit := params.intParam("limit", defaultTerminalSearchLimit)

	var filter terminal.Filter
	switch kind {
	case terminal.KindDressup4, terminal.KindMusical5:
		if params.values.Get("species") == "" {
			return terminal.Filter{}, fmt.Errorf("%w: species is required", usecase.ErrInvalidInput)
		}
		species := params.uint16Param("species", 0)
		if kind == terminal.KindDressup4 {
			filter = terminal.DressupQuery(species, limit)
		} else {
			filter = terminal.MusicalQuery(species, limit)
		}
	case terminal.KindBox4:
		if params.values.Get("label") == "" {
			return terminal.Filter{}, fmt.Errorf("%w: label is required", usecase.ErrInvalidInput)
		}
		filter = terminal.BoxQuery(int32(params.intParam("label", 0)), limit)
	case terminal.KindBattleVideo4:
		filter = terminal.BattleVideo4Query(
			params.uint16Param("species", terminal.AnySpecies),
			terminal.Ranking4(params.uint8Param("ranking", uint8(terminal.Ranking4None))),
			params.uint8Param("metagame", terminal.Metagame4SearchLatest30),
			params.uint8Param("country", terminal.AnyCountry),
			params.uint8Param("region", terminal.AnyRegion),
			limit,
		)
	case terminal.KindBattleVideo5:
		filter = terminal.BattleVideo5Query(
			params.uint16Param("species", terminal.AnySpecies),
			terminal.Ranking5(params.uint8Param("ranking", uint8(terminal.Ranking5None))),
			params.uint8Param("metagame", terminal.Metagame5SearchNone),
			params.uint8Param("country", terminal.AnyCountry),
			params.uint8Param("region", terminal.AnyRegion),
			limit,
		)
	default:
		return terminal.Filter{}, fmt.Errorf("%w: unknown kind %d", usecase.ErrInvalidInput, kind)
	}
	if params.err != nil {
		return terminal.Filter{}, params.err
	}
	return filter, nil
}

func pathKind(r *http.Request) (terminal.Kind, error) {
	kind, err := terminal.ParseKind(r.PathValue("kind"))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return kind, nil
}

// pathSerial accepts plain digits or the dashed form the game shows, such as 12-34567-89012.
func pathSerial(r *http.Request) (uint64, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(r.PathValue("serial")), "-", "")
	serial, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid serial %q", usecase.ErrInvalidInput, r.PathValue("serial"))
	}
	return serial, nil
}

func terminalItemToDTO(item terminal.Item) terminalItemDTO {
	return terminalItemDTO{
		Serial:  item.Serial,
		PID:     item.PID,
		Header:  item.Header,
		Payload: item.Payload,
		Meta: terminalMetaDTO{
			Species:     item.Meta.Species,
			Label:       item.Meta.Label,
			Streak:      item.Meta.Streak,
			TrainerName: item.Meta.TrainerName,
			Metagame:    item.Meta.Metagame,
			Country:     item.Meta.Country,
			Region:      item.Meta.Region,
		},
		Roster:    item.Roster,
		Views:     item.Views,
		Saves:     item.Saves,
		TimeAdded: item.TimeAdded,
	}
}
