// Copyright (c) 2024 Project Illium
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/project-illium/logger"
	"github.com/project-illium/sigil/harness"
	"github.com/project-illium/sigil/repo"
	"github.com/project-illium/sigil/repo/datastore"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *repo.Config {
	dir := t.TempDir()
	return &repo.Config{
		DataDir:  dir,
		LogDir:   filepath.Join(dir, "logs"),
		LogLevel: "info",
		Audit: repo.AuditOptions{
			Seed:           repo.DefaultSeed,
			Workers:        2,
			TestTimeout:    time.Minute,
			NoBenchmark:    true,
			BenchmarkBytes: 1 << 16,
			JSONOut:        filepath.Join(dir, "out", "scorecard.json"),
			Quiet:          true,
		},
	}
}

func TestRunAuditCertified(t *testing.T) {
	cfg := testConfig(t)
	certified, err := runAudit(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, certified)

	b, err := os.ReadFile(cfg.Audit.JSONOut)
	require.NoError(t, err)
	var card struct {
		Certified bool `json:"certified"`
		PassCount int  `json:"passCount"`
	}
	require.NoError(t, json.Unmarshal(b, &card))
	assert.True(t, card.Certified)
	assert.Equal(t, 9, card.PassCount)

	ds, err := datastore.NewSigilDatastore(filepath.Join(cfg.DataDir, repo.ArchiveDirName))
	require.NoError(t, err)
	defer ds.Close()
	records, err := repo.FetchScorecards(context.Background(), ds)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Certified)
	assert.Equal(t, uint64(repo.DefaultSeed), records[0].Seed)
}

func TestRunAuditWeakenedVariant(t *testing.T) {
	cfg := testConfig(t)
	cfg.Audit.Rounds = 1
	cfg.Audit.JSONOut = ""
	cfg.Audit.NoArchive = true
	certified, err := runAudit(context.Background(), cfg)
	require.NoError(t, err)
	assert.False(t, certified)
}

func TestBuildHarnessRejectsBadOptions(t *testing.T) {
	cfg := testConfig(t)
	cfg.Audit.TestTimeout = 0
	_, err := buildHarness(cfg)
	assert.Error(t, err)
}

func TestSetupLogging(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, setupLogging(dir, "debug"))
	assert.Error(t, setupLogging(dir, "verbose"))
}

func TestSetupLoggingRoutesPackageLogs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, setupLogging(dir, "info"))
	t.Cleanup(func() {
		harness.UseLogger(logger.DisabledLogger.WithLevel(pterm.LogLevelDisabled))
		repo.UseLogger(logger.DisabledLogger.WithLevel(pterm.LogLevelDisabled))
	})

	h, err := harness.New(harness.Reference(), harness.Benchmark(false))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h.Run(ctx)

	b, err := os.ReadFile(filepath.Join(dir, repo.DefaultLogFilename))
	require.NoError(t, err)
	assert.Contains(t, string(b), "Starting audit")
}
