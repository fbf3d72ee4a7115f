// Copyright (c) 2024 Project Illium
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package repo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDefaultConfigFile(t *testing.T) {
	testpath := filepath.Join(t.TempDir(), "sigil", "test.conf")

	err := createDefaultConfigFile(testpath)
	if err != nil {
		t.Fatalf("Failed to create a default config file: %v", err)
	}

	b, err := os.ReadFile(testpath)
	if err != nil {
		t.Fatalf("Failed to read generated default config file: %v", err)
	}
	assert.Contains(t, string(b), "[Audit Options]")
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := loadConfig([]string{"--datadir", dir})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, defaultConfigFilename), cfg.ConfigFile)
	assert.FileExists(t, cfg.ConfigFile)
	assert.Equal(t, filepath.Join(dir, "logs"), cfg.LogDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, uint64(DefaultSeed), cfg.Audit.Seed)
	assert.Equal(t, DefaultTestTimeout, cfg.Audit.TestTimeout)
	assert.True(t, cfg.Audit.Params().Certified())
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "custom.conf")
	err := os.WriteFile(conf, []byte("[Audit Options]\nseed=9\nworkers=2\ntesttimeout=30s\n"), 0600)
	require.NoError(t, err)

	cfg, err := loadConfig([]string{"--datadir", dir, "--configfile", conf})
	require.NoError(t, err)
	assert.Equal(t, uint64(9), cfg.Audit.Seed)
	assert.Equal(t, 2, cfg.Audit.Workers)
	assert.Equal(t, 30*time.Second, cfg.Audit.TestTimeout)

	cfg, err = loadConfig([]string{"--datadir", dir, "--configfile", conf, "--seed", "3", "--rounds", "4", "--noschedulemul"})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), cfg.Audit.Seed)
	assert.Equal(t, 2, cfg.Audit.Workers)
	p := cfg.Audit.Params()
	assert.Equal(t, 4, p.RoundCount())
	assert.True(t, p.NoScheduleMul)
	assert.False(t, p.Certified())
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	for _, args := range [][]string{
		{"--rounds", "25"},
		{"--workers", "-1"},
		{"--reference", "--rounds", "3"},
		{"--loglevel", "loud"},
		{"--benchbytes", "0"},
	} {
		_, err := loadConfig(append([]string{"--datadir", dir}, args...))
		assert.Error(t, err, "%v", args)
	}
}

func TestAppDataDir(t *testing.T) {
	assert.Equal(t, ".", appDataDir("linux", "", false))
	dir := appDataDir("linux", "sigil", false)
	assert.Equal(t, ".sigil", filepath.Base(dir))
	dir = appDataDir("darwin", "sigil", false)
	assert.Equal(t, "Sigil", filepath.Base(dir))
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "0.1.0", VersionString())
}
