package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/logging"
	"github.com/L3Technosmith/pkmnFoundations/internal/usecase"
)

// maxBodyBytes bounds request bodies; the largest record is a gen4 battle video at about 10 KiB base64.
const maxBodyBytes = 64 << 10

type Handler struct {
	tradeService       *usecase.TradeService
	leaderboardService *usecase.LeaderboardService
	contentService     *usecase.ContentService
	profileService     *usecase.ProfileService
	pokedexService     *usecase.PokedexService
	statsService       *usecase.StatsService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	tradeService *usecase.TradeService,
	leaderboardService *usecase.LeaderboardService,
	contentService *usecase.ContentService,
	profileService *usecase.ProfileService,
	pokedexService *usecase.PokedexService,
	statsService *usecase.StatsService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		tradeService:       tradeService,
		leaderboardService: leaderboardService,
		contentService:     contentService,
		profileService:     profileService,
		pokedexService:     pokedexService,
		statsService:       statsService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStats")
	defer span.End()

	stats, err := h.statsService.Collect(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "collect stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stats)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into dst and validates it. Byte fields travel as base64.
func (h *Handler) decodeRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func pathGeneration(r *http.Request) (generation.Generation, error) {
	gen, err := generation.Parse(r.PathValue("gen"))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return gen, nil
}

func pathPID(r *http.Request) (int32, error) {
	raw := strings.TrimSpace(r.PathValue("pid"))
	pid, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid pid %q", usecase.ErrInvalidInput, raw)
	}
	return int32(pid), nil
}

// queryUint parses an optional unsigned query parameter that must fit in bits.
func queryUint(q url.Values, key string, bits int, fallback uint64) (uint64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseUint(raw, 0, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", usecase.ErrInvalidInput, key, raw)
	}
	return v, nil
}

func queryInt(q url.Values, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", usecase.ErrInvalidInput, key, raw)
	}
	return v, nil
}

func queryBool(q url.Values, key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(q.Get(key)))
	return err == nil && v
}

// queryParser collects the first parse failure so handlers can read every parameter before checking.
type queryParser struct {
	values url.Values
	err    error
}

func (p *queryParser) uint8Param(key string, fallback uint8) uint8 {
	v, err := queryUint(p.values, key, 8, uint64(fallback))
	p.keep(err)
	return uint8(v)
}

func (p *queryParser) uint16Param(key string, fallback uint16) uint16 {
	v, err := queryUint(p.values, key, 16, uint64(fallback))
	p.keep(err)
	return uint16(v)
}

func (p *queryParser) intParam(key string, fallback int) int {
	v, err := queryInt(p.values, key, fallback)
	p.keep(err)
	return v
}

func (p *queryParser) keep(err error) {
	if p.err == nil {
		p.err = err
	}
}
