// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package datastore

import (
	"os"

	badger "github.com/ipfs/go-ds-badger"
	"github.com/project-illium/sigil/repo"
)

var _ repo.Datastore = (*badger.Datastore)(nil)

// NewSigilDatastore opens, creating if needed, the badger backed
// scorecard archive in dataDir.
func NewSigilDatastore(dataDir string, opts ...Option) (repo.Datastore, error) {
	var cfg config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		if err := os.MkdirAll(dataDir, 0700); err != nil {
			return nil, err
		}
	}

	badgerOpts := badger.DefaultOptions
	badgerOpts.MaxTableSize = 16 << 20
	badgerOpts.ReadOnly = cfg.readOnly
	ds, err := badger.NewDatastore(dataDir, &badgerOpts)
	if err != nil {
		return nil, err
	}
	return ds, nil
}
