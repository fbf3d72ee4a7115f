// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package mock

import (
	"context"

	datastore "github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"
	"github.com/project-illium/sigil/repo"
)

var _ repo.Datastore = (*MapDatastore)(nil)

// MapDatastore is an in-memory repo.Datastore for tests.
type MapDatastore struct {
	*dssync.MutexDatastore
}

func NewMapDatastore() *MapDatastore {
	return &MapDatastore{MutexDatastore: dssync.MutexWrap(datastore.NewMapDatastore())}
}

func (ds *MapDatastore) DiskUsage(ctx context.Context) (uint64, error) {
	return 0, nil
}
