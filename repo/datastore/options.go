// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package datastore

// Option is configuration option function for the Datastore
type Option func(cfg *config) error

// WithReadOnly opens the datastore without write access so that it can
// be inspected while another process holds it.
func WithReadOnly() Option {
	return func(cfg *config) error {
		cfg.readOnly = true
		return nil
	}
}

type config struct {
	readOnly bool
}
