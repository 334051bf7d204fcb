package main

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/L3Technosmith/pkmnFoundations/internal/config"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/terminal"
	"github.com/L3Technosmith/pkmnFoundations/internal/usecase"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		AppEnv:               config.EnvDev,
		StorageDriver:        config.StorageMemory,
		SerialKey:            config.DefaultSerialKey,
		RestoreWorkers:       2,
		RestoreCheckpointDir: filepath.Join(t.TempDir(), "checkpoint"),
		ArchiveTimeout:       5 * time.Second,
	}
}

func run(t *testing.T, cfg config.Config, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	c := newCLI(func() (config.Config, error) { return cfg, nil }, &out, io.Discard)
	defer c.close()

	root := c.rootCmd()
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func reports(t *testing.T, out string) []restoreReport {
	t.Helper()

	var got []restoreReport
	sc := bufio.NewScanner(bytes.NewBufferString(out))
	for sc.Scan() {
		var report restoreReport
		require.NoError(t, sonic.Unmarshal(sc.Bytes(), &report))
		got = append(got, report)
	}
	return got
}

func writeDump(t *testing.T, entries ...usecase.RestoreEntry) string {
	t.Helper()

	var buf bytes.Buffer
	for _, entry := range entries {
		raw, err := sonic.Marshal(entry)
		require.NoError(t, err)
		buf.Write(raw)
		buf.WriteByte('\n')
	}
	// undersized payload, rejected by the codec
	buf.WriteString(`{"kind":"box4","payload":"AQ=="}` + "\n")

	path := filepath.Join(t.TempDir(), "boxes.jsonl")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func box(fill byte) usecase.RestoreEntry {
	return usecase.RestoreEntry{
		Kind:    terminal.Box4.Name,
		Payload: bytes.Repeat([]byte{fill}, terminal.Box4.PayloadSize),
		Meta:    usecase.RestoreMeta{Label: 1},
	}
}

func TestRestore_RerunSkipsJournaledLines(t *testing.T) {
	cfg := testConfig(t)
	dump := writeDump(t, box(1), box(2))

	out, err := run(t, cfg, "restore", dump)
	require.NoError(t, err)
	first := reports(t, out)
	require.Len(t, first, 1)
	require.Equal(t, dump, first[0].Location)
	require.Empty(t, first[0].Error)
	require.Equal(t, 3, first[0].Result.LineCount)
	require.Equal(t, 2, first[0].Result.AppliedCount)
	require.Equal(t, 1, first[0].Result.FailedCount)
	require.Equal(t, 2, first[0].Result.WorkerCount)

	out, err = run(t, cfg, "restore", dump)
	require.NoError(t, err)
	second := reports(t, out)
	require.Equal(t, 2, second[0].Result.SkippedCount)
	require.Equal(t, 0, second[0].Result.AppliedCount)
	require.Equal(t, 1, second[0].Result.FailedCount)
	require.NotEqual(t, first[0].Result.RunID, second[0].Result.RunID)

	out, err = run(t, cfg, "restore", "--reset", dump)
	require.NoError(t, err)
	require.Equal(t, 2, reports(t, out)[0].Result.AppliedCount)
}

func TestRestore_FlagsAndEnvironment(t *testing.T) {
	cfg := testConfig(t)
	first := writeDump(t, box(3))
	second := writeDump(t, box(4))
	dir := filepath.Join(t.TempDir(), "other")

	t.Setenv("PKMN_WORKERS", "3")
	out, err := run(t, cfg, "restore", "--parallel", "2", "--checkpoint-dir", dir, first, second)
	require.NoError(t, err)

	got := reports(t, out)
	require.Len(t, got, 2)
	require.Equal(t, first, got[0].Location)
	require.Equal(t, second, got[1].Location)
	for _, report := range got {
		require.Equal(t, 3, report.Result.WorkerCount)
		require.Equal(t, 1, report.Result.AppliedCount)
	}

	_, err = os.Stat(dir)
	require.NoError(t, err)
	_, err = os.Stat(cfg.RestoreCheckpointDir)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRestore_RejectsBadLocationBeforeOpeningStorage(t *testing.T) {
	cfg := testConfig(t)

	_, err := run(t, cfg, "restore", "ftp://archive/boxes.jsonl")
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = os.Stat(cfg.RestoreCheckpointDir)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = run(t, cfg, "restore")
	require.Error(t, err)
}

func TestPokedexImport(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "species.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id":1,"national_dex":1,"name":"Bulbasaur","generation":1},
		{"id":4,"national_dex":4,"name":"Charmander","generation":1}
	]`), 0o600))

	out, err := run(t, cfg, "pokedex", "import", "species", path)
	require.NoError(t, err)

	var got struct {
		Table    string `json:"table"`
		Imported int    `json:"imported"`
	}
	require.NoError(t, sonic.UnmarshalString(out, &got))
	require.Equal(t, "species", got.Table)
	require.Equal(t, 2, got.Imported)

	_, err = run(t, cfg, "pokedex", "import", "berries", path)
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"id":1}`), 0o600))
	_, err = run(t, cfg, "pokedex", "import", "moves", bad)
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestStats(t *testing.T) {
	out, err := run(t, testConfig(t), "stats")
	require.NoError(t, err)

	var stats usecase.Stats
	require.NoError(t, sonic.UnmarshalString(out, &stats))
	require.Contains(t, stats.ActiveTrades, "gen4")
}

func TestConfigErrorStopsCommand(t *testing.T) {
	var out bytes.Buffer
	c := newCLI(func() (config.Config, error) { return config.Config{}, usecase.ErrInvalidInput }, &out, io.Discard)
	root := c.rootCmd()
	root.SetArgs([]string{"stats"})
	require.ErrorIs(t, root.Execute(), usecase.ErrInvalidInput)
	require.Empty(t, out.String())

	// close must cope with a setup that never got as far as a logger
	c.close()
}

func TestMigrateRequiresDBURL(t *testing.T) {
	_, err := run(t, testConfig(t), "migrate", "up")
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
	require.ErrorContains(t, err, "DB_URL")
}

func TestMigrateValidatesArguments(t *testing.T) {
	cfg := testConfig(t)
	cfg.DBURL = "postgres://pkmn@localhost:5432/pkmn?sslmode=disable"

	for _, args := range [][]string{
		{"migrate", "down", "0"},
		{"migrate", "down", "two"},
		{"migrate", "goto", "--", "-3"},
		{"migrate", "goto", "3x"},
		{"migrate", "force", "x"},
		{"migrate", "force", "--", "-2"},
		{"migrate", "up", "--migrations-dir", filepath.Join(t.TempDir(), "absent")},
	} {
		_, err := run(t, cfg, args...)
		require.ErrorIs(t, err, usecase.ErrInvalidInput, args)
	}

	_, err := run(t, cfg, "migrate", "goto", "--", "-3")
	require.ErrorContains(t, err, `target version "-3"`)
}

func TestMigrationsDir(t *testing.T) {
	dir := t.TempDir()
	got, err := migrationsDir(dir)
	require.NoError(t, err)
	require.Equal(t, dir, got)

	file := filepath.Join(dir, "000001_init.up.sql")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	_, err = migrationsDir(file)
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
}
