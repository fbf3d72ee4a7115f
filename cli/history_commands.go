// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/project-illium/sigil/repo"
	"github.com/project-illium/sigil/repo/datastore"
	"github.com/pterm/pterm"
	"github.com/tidwall/sjson"
)

type History struct {
	opts  *options
	Limit int  `long:"limit" description:"Show only the most recent entries. Zero shows all."`
	Full  bool `long:"full" description:"With --json, include every archived scorecard in full"`
}

func (x *History) Execute(args []string) error {
	dataDir := x.opts.DataDir
	if dataDir == "" {
		dataDir = repo.DefaultHomeDir
	}
	dir := filepath.Join(repo.CleanAndExpandPath(dataDir), repo.ArchiveDirName)

	ds, err := datastore.NewSigilDatastore(dir, datastore.WithReadOnly())
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", dir, err)
	}
	defer ds.Close()

	records, err := repo.FetchScorecards(context.Background(), ds)
	if err != nil {
		return err
	}
	if x.Limit > 0 && len(records) > x.Limit {
		records = records[len(records)-x.Limit:]
	}

	if x.opts.JSON {
		value := `{"audits":[]}`
		for _, r := range records {
			if x.Full {
				value, err = sjson.SetRaw(value, "audits.-1", string(r.Scorecard))
			} else {
				value, err = sjson.Set(value, "audits.-1", map[string]any{
					"time":      r.Timestamp.UTC().Format(time.RFC3339),
					"target":    r.Target,
					"seed":      r.Seed,
					"passCount": r.PassCount,
					"total":     r.Total,
					"certified": r.Certified,
				})
			}
			if err != nil {
				return err
			}
		}
		fmt.Fprintln(stdout, value)
		return nil
	}

	data := pterm.TableData{{"Time", "Target", "Seed", "Passed", "Certified"}}
	for _, r := range records {
		data = append(data, []string{
			r.Timestamp.UTC().Format(time.RFC3339),
			r.Target,
			strconv.FormatUint(r.Seed, 10),
			fmt.Sprintf("%d/%d", r.PassCount, r.Total),
			strconv.FormatBool(r.Certified),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, table)
	return nil
}
