package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/gts"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/terminal"
	"github.com/L3Technosmith/pkmnFoundations/internal/infrastructure/repository/memory"
	idgen "github.com/L3Technosmith/pkmnFoundations/internal/platform/id"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/logging"
	"github.com/L3Technosmith/pkmnFoundations/internal/usecase"
)

type envelope[T any] struct {
	Data  T          `json:"data"`
	Error *errorBody `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	trades := usecase.NewTradeService(memory.NewGTSRepository(), logger)
	content := usecase.NewContentService(memory.NewTerminalRepository(), 0xC0FFEE, logger)
	handler := NewHandler(
		trades,
		usecase.NewLeaderboardService(memory.NewFacilityRepository(), logger),
		content,
		usecase.NewProfileService(memory.NewProfileRepository()),
		usecase.NewPokedexService(memory.NewPokedexRepository()),
		usecase.NewStatsService(trades, content, logger),
		logger,
	)
	return NewRouter(handler, idgen.NewKSUIDGenerator(), logger, nil)
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var env envelope[T]
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env.Data
}

func wireListing(t *testing.T, pid int32, species, wants uint16) []byte {
	t.Helper()

	layout := gts.Gen4Layout
	data, err := gts.Encode(gts.Record{
		Generation:        generation.Gen4,
		Payload:           bytes.Repeat([]byte{byte(pid)}, layout.PayloadSize),
		Species:           species,
		Gender:            gts.GenderMale,
		Level:             30,
		RequestedSpecies:  wants,
		RequestedGender:   gts.GenderEither,
		RequestedMinLevel: 1,
		RequestedMaxLevel: 100,
		PID:               pid,
		TrainerName:       bytes.Repeat([]byte{0x41}, gts.TrainerNameSize),
	})
	require.NoError(t, err)
	return data
}

func TestRouter_HealthzAndRequestID(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, rec.Header().Get(requestIDHeader), 27)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "from-the-edge")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, "from-the-edge", rec.Header().Get(requestIDHeader))
}

func TestRouter_TradeRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/v1/gts/gen4/deposit", map[string]any{"data": wireListing(t, 1000, 25, 133)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.True(t, decode[map[string]bool](t, rec)["deposited"])

	rec = do(t, router, http.MethodPost, "/v1/gts/4/deposit", map[string]any{"data": wireListing(t, 1000, 25, 133)})
	require.False(t, decode[map[string]bool](t, rec)["deposited"])

	rec = do(t, router, http.MethodGet, "/v1/gts/gen4/search?pid=2000&species=25", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	found := decode[[]gtsRecordDTO](t, rec)
	require.Len(t, found, 1)
	require.Equal(t, int32(1000), found[0].PID)

	exchange := map[string]any{
		"upload": wireListing(t, 2000, 133, 25),
		"target": found[0].Data,
	}
	rec = do(t, router, http.MethodPost, "/v1/gts/gen4/exchange", exchange)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.True(t, decode[map[string]bool](t, rec)["exchanged"])

	rec = do(t, router, http.MethodPost, "/v1/gts/gen4/exchange", exchange)
	require.False(t, decode[map[string]bool](t, rec)["exchanged"])

	rec = do(t, router, http.MethodGet, "/v1/gts/gen4/1000", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode[gtsRecordDTO](t, rec)
	require.True(t, listed.Exchanged)
	require.Equal(t, uint16(25), listed.Species)
	traded, err := gts.Decode(generation.Gen4, listed.Data)
	require.NoError(t, err)
	require.Equal(t, bytes.Repeat([]byte{byte(2000 % 256)}, gts.Gen4Layout.PayloadSize), traded.Payload)

	rec = do(t, router, http.MethodGet, "/v1/gts/gen4/1000/history", nil)
	history := decode[[]gtsHistoryDTO](t, rec)
	require.Len(t, history, 1)
	require.NotNil(t, history[0].PartnerPID)
	require.Equal(t, int32(2000), *history[0].PartnerPID)

	rec = do(t, router, http.MethodPost, "/v1/gts/gen4/1000/withdraw", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, decode[map[string]any](t, rec)["withdrawn"])

	rec = do(t, router, http.MethodGet, "/v1/gts/gen4/1000", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/gts/gen4/1000/history", nil)
	history = decode[[]gtsHistoryDTO](t, rec)
	require.Len(t, history, 2, "the withdraw is logged with the listing it removed")
	require.NotNil(t, history[1].PartnerPID)
	require.Equal(t, int32(2000), *history[1].PartnerPID)
}

func TestRouter_TradeRejectsBadInput(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/v1/gts/gen6/deposit", map[string]any{"data": []byte{1}})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/v1/gts/gen4/deposit", map[string]any{"data": []byte{1, 2, 3}})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/v1/gts/gen4/deposit", map[string]any{"data": wireListing(t, 1, 1, 1), "extra": 1})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/gts/gen4/search?limit=lots", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_BattleVideoLifecycle(t *testing.T) {
	router := newTestRouter(t)

	upload := map[string]any{
		"pid":     77,
		"header":  bytes.Repeat([]byte{1}, terminal.BattleVideo4.HeaderSize),
		"payload": bytes.Repeat([]byte{2}, terminal.BattleVideo4.PayloadSize),
		"meta":    map[string]any{"streak": 12, "metagame": 3, "country": 49, "region": 1},
		"roster":  []uint16{25, 0, 133},
	}
	rec := do(t, router, http.MethodPost, "/v1/terminal/battlevideo4", upload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[struct {
		Serial    uint64 `json:"serial"`
		Duplicate bool   `json:"duplicate"`
	}](t, rec)
	require.NotZero(t, created.Serial)
	require.False(t, created.Duplicate)

	rec = do(t, router, http.MethodPost, "/v1/terminal/battlevideo4", upload)
	require.True(t, decode[map[string]any](t, rec)["duplicate"].(bool))

	digits := fmt.Sprintf("%012d", created.Serial)
	dashed := digits[:2] + "-" + digits[2:7] + "-" + digits[7:]
	rec = do(t, router, http.MethodGet, "/v1/terminal/battlevideo4/"+dashed+"?views=true", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	item := decode[terminalItemDTO](t, rec)
	require.Equal(t, created.Serial, item.Serial)
	require.Equal(t, uint64(1), item.Views)
	require.Equal(t, uint16(12), item.Meta.Streak)

	rec = do(t, router, http.MethodGet, "/v1/terminal/battlevideo4?species=133", nil)
	require.Len(t, decode[[]terminalItemDTO](t, rec), 1)

	rec = do(t, router, http.MethodGet, "/v1/terminal/battlevideo4?species=150", nil)
	require.Empty(t, decode[[]terminalItemDTO](t, rec))

	rec = do(t, router, http.MethodPost, fmt.Sprintf("/v1/terminal/battlevideo4/%d/saved", created.Serial), nil)
	require.True(t, decode[map[string]bool](t, rec)["saved"])

	rec = do(t, router, http.MethodGet, "/v1/terminal/battlevideo4/count", nil)
	require.Equal(t, uint64(1), decode[map[string]uint64](t, rec)["count"])

	rec = do(t, router, http.MethodGet, "/v1/terminal/battlevideo4/123", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/terminal/dressup4", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/terminal/wallpaper", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_StatsProfilesAndPokedex(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/v1/gts/gen5/deposit", map[string]any{"data": gen5Listing(t, 42)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/v1/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[usecase.Stats](t, rec)
	require.Equal(t, 1, stats.ActiveTrades["gen5"])
	require.Equal(t, 0, stats.ActiveTrades["gen4"])
	require.Len(t, stats.Content, len(terminal.Specs))

	rec = do(t, router, http.MethodGet, "/v1/profiles/gen4/42", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPut, "/v1/profiles/gen4", map[string]any{"data": []byte{1, 2}})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/pokedex/species", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/pokedex/evolutions", nil)
	require.Equal(t, http.StatusNotImplemented, rec.Code)
}

func gen5Listing(t *testing.T, pid int32) []byte {
	t.Helper()

	layout := gts.Gen5Layout
	data, err := gts.Encode(gts.Record{
		Generation:        generation.Gen5,
		Payload:           make([]byte, layout.PayloadSize),
		Pad:               make([]byte, layout.PadSize),
		Species:           495,
		Gender:            gts.GenderFemale,
		Level:             5,
		RequestedSpecies:  498,
		RequestedGender:   gts.GenderEither,
		RequestedMaxLevel: 100,
		PID:               pid,
		TrainerName:       make([]byte, gts.TrainerNameSize),
	})
	require.NoError(t, err)
	return data
}
