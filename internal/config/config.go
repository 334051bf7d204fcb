package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/L3Technosmith/pkmnFoundations/internal/platform/logging"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	// DefaultSerialKey keeps battle video serials stable in development; production must set SERIAL_KEY.
	DefaultSerialKey uint64 = 0x5EED0F7E4A11
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                       string
	ServiceName                  string
	ServiceVersion               string
	HTTPAddr                     string
	ReadTimeout                  time.Duration
	WriteTimeout                 time.Duration
	CORSAllowedOrigins           []string
	StorageDriver                string
	DBURL                        string
	DBDisablePreparedBinary      bool
	DBMaxOpenConns               int
	DBMaxIdleConns               int
	DBConnMaxLifetime            time.Duration
	DBTxIsolation                string
	SerialKey                    uint64
	StatsInterval                time.Duration
	PprofEnabled                 bool
	PprofAddr                    string
	UptraceEnabled               bool
	UptraceDSN                   string
	UptraceLogsEnabled           bool
	PyroscopeEnabled             bool
	PyroscopeServerAddress       string
	PyroscopeAppName             string
	PyroscopeAuthToken           string
	PyroscopeBasicAuthUser       string
	PyroscopeBasicAuthPassword   string
	PyroscopeUploadRate          time.Duration
	RestoreWorkers               int
	RestoreCheckpointDir         string
	ArchiveTimeout               time.Duration
	ArchiveCircuitEnabled        bool
	ArchiveCircuitFailureCount   int
	ArchiveCircuitOpenTimeout    time.Duration
	ArchiveCircuitHalfOpenMaxReq int
	S3Region                     string
	S3Endpoint                   string
	LogLevel                     logging.Level
}

// Load reads the process environment, after merging an optional .env file from the working directory.
// Variables already set in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}

	storageDriver := strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", StorageMemory)))
	if storageDriver != StorageMemory && storageDriver != StoragePostgres {
		return Config{}, fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", storageDriver, StorageMemory, StoragePostgres)
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if storageDriver == StoragePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	dbMaxOpenConns, err := getEnvAsInt("DB_MAX_OPEN_CONNS", 20)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_OPEN_CONNS: %w", err)
	}
	dbMaxIdleConns, err := getEnvAsInt("DB_MAX_IDLE_CONNS", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_IDLE_CONNS: %w", err)
	}
	if dbMaxOpenConns < 1 || dbMaxIdleConns < 0 {
		return Config{}, fmt.Errorf("DB_MAX_OPEN_CONNS must be > 0 and DB_MAX_IDLE_CONNS >= 0")
	}
	dbConnMaxLifetime, err := time.ParseDuration(getEnv("DB_CONN_MAX_LIFETIME", "30m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_CONN_MAX_LIFETIME: %w", err)
	}
	dbTxIsolation, err := parseIsolation(getEnv("DB_TX_ISOLATION", "serializable"))
	if err != nil {
		return Config{}, err
	}

	serialKey := DefaultSerialKey
	if raw := strings.TrimSpace(getEnv("SERIAL_KEY", "")); raw != "" {
		serialKey, err = strconv.ParseUint(raw, 0, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse SERIAL_KEY: %w", err)
		}
	} else if appEnv == EnvProd {
		return Config{}, fmt.Errorf("SERIAL_KEY is required when APP_ENV=%s", EnvProd)
	}

	statsInterval, err := time.ParseDuration(getEnv("STATS_INTERVAL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_INTERVAL: %w", err)
	}
	if statsInterval <= 0 {
		return Config{}, fmt.Errorf("STATS_INTERVAL must be > 0")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	restoreWorkers, err := getEnvAsInt("RESTORE_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse RESTORE_WORKERS: %w", err)
	}
	if restoreWorkers < 1 {
		return Config{}, fmt.Errorf("RESTORE_WORKERS must be > 0")
	}

	archiveTimeout, err := time.ParseDuration(getEnv("ARCHIVE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ARCHIVE_TIMEOUT: %w", err)
	}
	archiveCircuitEnabled, err := strconv.ParseBool(getEnv("ARCHIVE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ARCHIVE_CIRCUIT_ENABLED: %w", err)
	}
	archiveCircuitFailureCount, err := getEnvAsInt("ARCHIVE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse ARCHIVE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	archiveCircuitOpenTimeout, err := time.ParseDuration(getEnv("ARCHIVE_CIRCUIT_OPEN_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ARCHIVE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	archiveCircuitHalfOpenMaxReq, err := getEnvAsInt("ARCHIVE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse ARCHIVE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	cfg := Config{
		AppEnv:                       appEnv,
		ServiceName:                  getEnv("SERVICE_NAME", "pkmn-foundations"),
		ServiceVersion:               getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:                     getEnv("HTTP_ADDR", ":8080"),
		ReadTimeout:                  readTimeout,
		WriteTimeout:                 writeTimeout,
		CORSAllowedOrigins:           splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		StorageDriver:                storageDriver,
		DBURL:                        dbURL,
		DBDisablePreparedBinary:      dbDisablePreparedBinary,
		DBMaxOpenConns:               dbMaxOpenConns,
		DBMaxIdleConns:               dbMaxIdleConns,
		DBConnMaxLifetime:            dbConnMaxLifetime,
		DBTxIsolation:                dbTxIsolation,
		SerialKey:                    serialKey,
		StatsInterval:                statsInterval,
		PprofEnabled:                 pprofEnabled,
		PprofAddr:                    pprofAddr,
		UptraceEnabled:               uptraceEnabled,
		UptraceDSN:                   uptraceDSN,
		UptraceLogsEnabled:           uptraceLogsEnabled,
		PyroscopeEnabled:             pyroscopeEnabled,
		PyroscopeServerAddress:       pyroscopeServerAddress,
		PyroscopeAppName:             getEnv("PYROSCOPE_APP_NAME", "pkmn-foundations"),
		PyroscopeAuthToken:           getEnv("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeBasicAuthUser:       getEnv("PYROSCOPE_BASIC_AUTH_USER", ""),
		PyroscopeBasicAuthPassword:   getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
		PyroscopeUploadRate:          pyroscopeUploadRate,
		RestoreWorkers:               restoreWorkers,
		RestoreCheckpointDir:         getEnv("RESTORE_CHECKPOINT_DIR", ".restore-checkpoint"),
		ArchiveTimeout:               archiveTimeout,
		ArchiveCircuitEnabled:        archiveCircuitEnabled,
		ArchiveCircuitFailureCount:   archiveCircuitFailureCount,
		ArchiveCircuitOpenTimeout:    archiveCircuitOpenTimeout,
		ArchiveCircuitHalfOpenMaxReq: archiveCircuitHalfOpenMaxReq,
		S3Region:                     getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:                   strings.TrimSpace(getEnv("S3_ENDPOINT", "")),
		LogLevel:                     parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func parseIsolation(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case "serializable", "repeatable_read":
		return value, nil
	default:
		return "", fmt.Errorf("invalid DB_TX_ISOLATION %q: valid values are serializable, repeatable_read", v)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
