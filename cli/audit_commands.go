// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/project-illium/sigil/harness"
	"github.com/pterm/pterm"
	"github.com/tidwall/sjson"
)

type Bench struct {
	opts  *options
	Bytes int    `long:"bytes" description:"Bytes hashed per payload size" default:"8388608"`
	Seed  uint64 `long:"seed" description:"Seed for the payload generator" default:"1"`
}

func (x *Bench) Execute(args []string) error {
	p, err := x.opts.params()
	if err != nil {
		return err
	}
	if x.Bytes <= 0 {
		return errors.New("--bytes must be positive")
	}
	report, warnings, err := harness.RunBenchmark(context.Background(), harness.SigilTarget(p), x.Seed, x.Bytes)
	if err != nil {
		return err
	}

	if x.opts.JSON {
		value, err := sjson.Set("{}", "results", report.Results)
		if err != nil {
			return err
		}
		if len(warnings) > 0 {
			value, err = sjson.Set(value, "warnings", warnings)
			if err != nil {
				return err
			}
		}
		fmt.Fprintln(stdout, value)
		return nil
	}

	data := pterm.TableData{{"Payload", "Iterations", "MB/s", "ns/op"}}
	for _, t := range report.Results {
		data = append(data, []string{
			strconv.Itoa(t.PayloadBytes),
			strconv.Itoa(t.Iterations),
			fmt.Sprintf("%.2f", t.MBPerSecond),
			fmt.Sprintf("%.0f", t.NsPerOp),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, table)
	for _, w := range warnings {
		fmt.Fprintln(stdout, "warning:", w)
	}
	return nil
}

type Audit struct {
	opts        *options
	Seed        uint64        `long:"seed" description:"Seed for every sampling stream" default:"1"`
	Workers     int           `long:"workers" description:"Maximum number of tests to run in parallel. Zero uses one per CPU."`
	Timeout     time.Duration `long:"timeout" description:"Time limit for each test" default:"5m"`
	Reference   bool          `long:"reference" description:"Audit BLAKE2s-256 instead to calibrate the harness"`
	NoBenchmark bool          `long:"nobenchmark" description:"Skip the throughput benchmark"`
}

var errNotCertified = errors.New("target is not certified")

func (x *Audit) Execute(args []string) error {
	p, err := x.opts.params()
	if err != nil {
		return err
	}
	target := harness.SigilTarget(p)
	if x.Reference {
		target = harness.Reference()
	}
	opts := []harness.Option{
		harness.Seed(x.Seed),
		harness.TestTimeout(x.Timeout),
		harness.Benchmark(!x.NoBenchmark),
	}
	if x.Workers > 0 {
		opts = append(opts, harness.Workers(x.Workers))
	}
	h, err := harness.New(target, opts...)
	if err != nil {
		return err
	}
	card := h.Run(context.Background())

	if x.opts.JSON {
		out, err := card.JSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(out))
	} else {
		report, err := card.Report()
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, report)
	}
	if !card.Certified {
		return errNotCertified
	}
	return nil
}
