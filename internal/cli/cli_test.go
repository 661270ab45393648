package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/goirrigate/pkg/config"
	"github.com/itohio/goirrigate/pkg/history"
	"github.com/itohio/goirrigate/pkg/irrigation"
	"github.com/itohio/goirrigate/pkg/link"
)

func TestRootCommand_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"run", "sim", "tail", "ports", "config"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}

	flag := rootCmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "config.yaml", flag.DefValue)
}

func TestCommandFlags(t *testing.T) {
	duration := simCmd.Flags().Lookup("duration")
	require.NotNil(t, duration)
	assert.Equal(t, "d", duration.Shorthand)
	assert.Equal(t, "0s", duration.DefValue)

	port := tailCmd.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "p", port.Shorthand)

	force := configInitCmd.Flags().Lookup("force")
	require.NotNil(t, force)
	assert.Equal(t, "false", force.DefValue)
}

func TestCommandArgs(t *testing.T) {
	assert.NoError(t, configInitCmd.Args(configInitCmd, []string{}))
	assert.NoError(t, configInitCmd.Args(configInitCmd, []string{"a.yaml"}))
	assert.Error(t, configInitCmd.Args(configInitCmd, []string{"a.yaml", "b.yaml"}))

	assert.Error(t, runCmd.Args(runCmd, []string{"extra"}))
	assert.Error(t, simCmd.Args(simCmd, []string{"extra"}))
}

// withConfigPath points --config at path for the duration of the test.
func withConfigPath(t *testing.T, path string) {
	t.Helper()
	prev := configPath
	configPath = path
	t.Cleanup(func() { configPath = prev })
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	withConfigPath(t, path)

	var out bytes.Buffer
	configInitCmd.SetOut(&out)
	defer configInitCmd.SetOut(nil)

	require.NoError(t, runConfigInit(configInitCmd, nil))
	assert.Contains(t, out.String(), "wrote "+path)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), loaded)

	err = runConfigInit(configInitCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	configForce = true
	defer func() { configForce = false }()
	assert.NoError(t, runConfigInit(configInitCmd, nil))
}

func TestConfigInit_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	withConfigPath(t, filepath.Join(dir, "unused.yaml"))

	configInitCmd.SetOut(&bytes.Buffer{})
	defer configInitCmd.SetOut(nil)

	path := filepath.Join(dir, "garden.yaml")
	require.NoError(t, runConfigInit(configInitCmd, []string{path}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "unused.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestConfigShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("controller:\n  dry_threshold: 40\n"), 0644))
	withConfigPath(t, path)

	var out, errOut bytes.Buffer
	configShowCmd.SetOut(&out)
	configShowCmd.SetErr(&errOut)
	defer configShowCmd.SetOut(nil)
	defer configShowCmd.SetErr(nil)

	require.NoError(t, runConfigShow(configShowCmd, nil))
	assert.Contains(t, out.String(), "dry_threshold: 40")
	assert.Contains(t, out.String(), "wet_threshold: 65")
	assert.Contains(t, out.String(), "cycle_delay: 5s")
	assert.Empty(t, errOut.String())
}

func TestLoadConfig_InvalidThresholds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("controller:\n  dry_threshold: 80\n"), 0644))
	withConfigPath(t, path)

	_, _, err := loadConfig()
	assert.Error(t, err)
}

func TestFormatRecord(t *testing.T) {
	r := link.Record{
		Timestamp: time.Date(2024, 5, 1, 14, 3, 9, 0, time.UTC),
		Status:    irrigation.Status{Moisture: 44, Pump: irrigation.PumpOn},
	}
	assert.Equal(t, "14:03:09 Moisture: 44%, Pump: ON", formatRecord(r))
}

func TestStreamRecords(t *testing.T) {
	now := time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)
	records := make(chan link.Record, 3)
	records <- link.Record{Timestamp: now, Status: irrigation.Status{Moisture: 44, Pump: irrigation.PumpOn}}
	records <- link.Record{Timestamp: now.Add(5 * time.Second), Status: irrigation.Status{Moisture: 66, Pump: irrigation.PumpOff}}
	close(records)

	var out bytes.Buffer
	h := history.New(time.Hour)
	streamRecords(context.Background(), &out, records, h)
	printSummary(&out, h)

	assert.Equal(t,
		"14:00:00 Moisture: 44%, Pump: ON\n"+
			"14:00:05 Moisture: 66%, Pump: OFF\n"+
			"records: 2, moisture: 44%-66%, pump duty: 100.0%, switches: 1, runs: 1\n",
		out.String())
}

func TestStreamRecords_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	h := history.New(time.Hour)
	streamRecords(ctx, &out, make(chan link.Record), h)
	printSummary(&out, h)

	assert.Equal(t, "no records received\n", out.String())
}

func TestSimulate(t *testing.T) {
	cfg := config.Default()
	cfg.Mock.Tick = 5 * time.Millisecond
	cfg.Mock.NoiseLevel = 0
	ic, err := cfg.Irrigation()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	require.NoError(t, simulate(ctx, &out, cfg, ic))

	assert.Contains(t, out.String(), "Moisture: ")
	assert.Contains(t, out.String(), "records: ")
}

func TestPause(t *testing.T) {
	assert.True(t, pause(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, pause(ctx, time.Hour))
}
