// Copyright (c) 2024 Project Illium
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package repo

import (
	"fmt"
)

const (
	appMajor uint = 0
	appMinor uint = 1
	appPatch uint = 0
)

// VersionString returns the semantic version of the audit tool and
// digest, e.g. 0.1.0.
func VersionString() string {
	return fmt.Sprintf("%d.%d.%d", appMajor, appMinor, appPatch)
}
