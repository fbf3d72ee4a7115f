// Copyright (c) 2024 Project Illium
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package repo

import (
	"github.com/project-illium/logger"
	"github.com/pterm/pterm"
)

var log = logger.DisabledLogger.WithLevel(pterm.LogLevelDisabled)

// LogLevelMap maps the level names accepted by --loglevel to
// pterm levels.
var LogLevelMap = map[string]pterm.LogLevel{
	"trace":   pterm.LogLevelTrace,
	"debug":   pterm.LogLevelDebug,
	"info":    pterm.LogLevelInfo,
	"warning": pterm.LogLevelWarn,
	"error":   pterm.LogLevelError,
	"fatal":   pterm.LogLevelFatal,
}

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(logger *logger.Logger) {
	log = logger
}
