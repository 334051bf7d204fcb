package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/L3Technosmith/pkmnFoundations/internal/config"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/logging"
)

func TestNewServices_MemoryStorage(t *testing.T) {
	cfg := config.Config{
		StorageDriver: config.StorageMemory,
		SerialKey:     config.DefaultSerialKey,
		HTTPAddr:      ":0",
	}

	svc, err := NewServices(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, svc.Close()) })

	stats, err := svc.Stats.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, stats.ActiveTrades["gen4"])

	srv, err := NewHTTPServer(cfg, svc, logging.NewNop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestNewServices_RejectsUnknownDriver(t *testing.T) {
	_, err := NewServices(context.Background(), config.Config{StorageDriver: "sqlite"}, logging.NewNop())
	require.Error(t, err)
}

func TestNewServices_RejectsBadIsolation(t *testing.T) {
	cfg := config.Config{
		StorageDriver: config.StoragePostgres,
		DBURL:         "postgres://localhost/pkmnfoundations",
		DBTxIsolation: "read_uncommitted",
	}
	_, err := NewServices(context.Background(), cfg, logging.NewNop())
	require.ErrorContains(t, err, "isolation")
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	_, err := NewHTTPServer(config.Config{}, &Services{}, logging.NewNop())
	require.Error(t, err)
}
