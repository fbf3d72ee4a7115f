// Copyright (c) 2024 Project Illium
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/query"
	"github.com/tidwall/gjson"
)

// ErrInvalidScorecard is returned when asked to archive something that
// is not a JSON scorecard.
var ErrInvalidScorecard = errors.New("scorecard is not valid JSON")

// AuditRecord is an archived scorecard with the fields needed to list
// it without decoding the whole document.
type AuditRecord struct {
	Timestamp time.Time
	Target    string
	Seed      uint64
	PassCount int
	Total     int
	Certified bool
	Scorecard []byte
}

func scorecardKey(ts time.Time) datastore.Key {
	return datastore.NewKey(ScorecardKeyPrefix + fmt.Sprintf("%020d", ts.UnixNano()))
}

// PutScorecard archives a JSON scorecard under the time of the audit.
func PutScorecard(ctx context.Context, ds Datastore, ts time.Time, scorecard []byte) error {
	if !gjson.ValidBytes(scorecard) {
		return ErrInvalidScorecard
	}
	if err := ds.Put(ctx, scorecardKey(ts), scorecard); err != nil {
		return err
	}
	return ds.Sync(ctx, datastore.NewKey(ScorecardKeyPrefix))
}

// FetchScorecards returns every archived scorecard, oldest first.
func FetchScorecards(ctx context.Context, ds Datastore) ([]AuditRecord, error) {
	results, err := ds.Query(ctx, query.Query{
		Prefix: ScorecardKeyPrefix,
		Orders: []query.Order{query.OrderByKey{}},
	})
	if err != nil {
		return nil, err
	}
	defer results.Close()

	var records []AuditRecord
	for r := range results.Next() {
		if r.Error != nil {
			return nil, r.Error
		}
		rec, err := decodeRecord(r.Key, r.Value)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeRecord(key string, value []byte) (AuditRecord, error) {
	v := strings.Split(key, "/")
	nanos, err := strconv.ParseInt(v[len(v)-1], 10, 64)
	if err != nil {
		return AuditRecord{}, fmt.Errorf("malformed scorecard key %s: %w", key, err)
	}
	fields := gjson.GetManyBytes(value, "target", "seed", "passCount", "total", "certified")
	return AuditRecord{
		Timestamp: time.Unix(0, nanos),
		Target:    fields[0].String(),
		Seed:      fields[1].Uint(),
		PassCount: int(fields[2].Int()),
		Total:     int(fields[3].Int()),
		Certified: fields[4].Bool(),
		Scorecard: value,
	}, nil
}
