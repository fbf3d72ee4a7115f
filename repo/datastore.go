// Copyright (c) 2022 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package repo

import (
	"github.com/ipfs/go-datastore"
)

const (
	// ScorecardKeyPrefix is the datastore key prefix for archived audit
	// scorecards. Keys end in the zero padded unix nanosecond time of
	// the audit so they sort chronologically.
	ScorecardKeyPrefix = "/sigil/scorecard/"

	// ArchiveDirName is the directory under the data directory that
	// holds the scorecard archive.
	ArchiveDirName = "archive"
)

type Datastore interface {
	datastore.Datastore
	datastore.Batching
	datastore.PersistentDatastore
}
