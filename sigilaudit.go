// Copyright (c) 2024 Project Illium
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/project-illium/sigil/harness"
	"github.com/project-illium/sigil/repo"
	"github.com/project-illium/sigil/repo/datastore"
)

// Exit codes. An audit that completes but does not certify the target
// is distinguished from one that could not run.
const (
	exitCertified    = 0
	exitError        = 1
	exitNotCertified = 2
)

func main() {
	// Configure the command line parser.
	var emptyCfg repo.Config
	parser := flags.NewNamedParser("sigilaudit", flags.Default)
	parser.AddGroup("Audit Tool Options", "Configuration options for the audit tool", &emptyCfg)
	if _, err := parser.Parse(); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(exitError)
	}

	// Load the config file. There are three steps to this:
	// 1. Start with a config populated with default values.
	// 2. Override the default values with any provided config file options.
	// 3. Override the first two with any provided command line options.
	cfg, err := repo.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitError)
	}
	if err := setupLogging(cfg.LogDir, cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitError)
	}

	// Cancel the audit on an exit signal. Unfinished tests are reported
	// as timed out.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	certified, err := runAudit(ctx, cfg)
	if err != nil {
		log.Errorf("Audit failed: %s", err)
		os.Exit(exitError)
	}
	if !certified {
		os.Exit(exitNotCertified)
	}
	os.Exit(exitCertified)
}

func buildHarness(cfg *repo.Config) (*harness.Harness, error) {
	target := harness.SigilTarget(cfg.Audit.Params())
	if cfg.Audit.Reference {
		target = harness.Reference()
	}

	opts := []harness.Option{
		harness.Seed(cfg.Audit.Seed),
		harness.TestTimeout(cfg.Audit.TestTimeout),
		harness.Benchmark(!cfg.Audit.NoBenchmark),
		harness.BenchmarkBytes(cfg.Audit.BenchmarkBytes),
	}
	if cfg.Audit.Workers > 0 {
		opts = append(opts, harness.Workers(cfg.Audit.Workers))
	}
	return harness.New(target, opts...)
}

func runAudit(ctx context.Context, cfg *repo.Config) (bool, error) {
	h, err := buildHarness(cfg)
	if err != nil {
		return false, err
	}

	log.Infof("sigilaudit %s, seed %d", repo.VersionString(), cfg.Audit.Seed)
	start := time.Now()
	card := h.Run(ctx)
	if ctx.Err() != nil {
		log.Warn("Audit interrupted, unfinished tests are reported as timed out")
	}

	if !cfg.Audit.Quiet {
		report, err := card.Report()
		if err != nil {
			return false, fmt.Errorf("rendering report: %w", err)
		}
		fmt.Println(report)
	}

	if cfg.Audit.JSONOut != "" {
		if err := writeScorecard(cfg.Audit.JSONOut, card); err != nil {
			return false, err
		}
		log.Infof("Scorecard written to %s", cfg.Audit.JSONOut)
	}

	if !cfg.Audit.NoArchive {
		if err := archiveScorecard(filepath.Join(cfg.DataDir, repo.ArchiveDirName), start, card); err != nil {
			return false, fmt.Errorf("archiving scorecard: %w", err)
		}
	}
	return card.Certified, nil
}

// archiveScorecard records card in the archive. Interrupted audits are
// recorded too.
func archiveScorecard(dir string, ts time.Time, card *harness.Scorecard) error {
	out, err := card.JSON()
	if err != nil {
		return err
	}
	ds, err := datastore.NewSigilDatastore(dir)
	if err != nil {
		return err
	}
	defer ds.Close()

	if err := repo.PutScorecard(context.Background(), ds, ts, out); err != nil {
		return err
	}
	log.Debugf("Scorecard archived in %s", dir)
	return nil
}

func writeScorecard(path string, card *harness.Scorecard) error {
	if card == nil {
		return errors.New("nil scorecard")
	}
	out, err := card.JSON()
	if err != nil {
		return fmt.Errorf("encoding scorecard: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, out, 0600)
}
