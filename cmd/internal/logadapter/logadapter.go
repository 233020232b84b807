// Package logadapter adapts github.com/apex/log's package-level logger
// to the pardll.Logger interface.
//
// apex/log exposes its package-level logger as functions rather than as
// a value, so a thin adapter type forwards each of the six pardll.Logger
// methods to the package-level function of the same name.
package logadapter

import (
	apexlog "github.com/apex/log"

	"github.com/bassosimone/pardll"
)

// Apex adapts the apex/log package-level logger to [pardll.Logger].
type Apex struct{}

var _ pardll.Logger = Apex{}

// Debug implements pardll.Logger.
func (Apex) Debug(message string) { apexlog.Debug(message) }

// Debugf implements pardll.Logger.
func (Apex) Debugf(format string, v ...any) { apexlog.Debugf(format, v...) }

// Info implements pardll.Logger.
func (Apex) Info(message string) { apexlog.Info(message) }

// Infof implements pardll.Logger.
func (Apex) Infof(format string, v ...any) { apexlog.Infof(format, v...) }

// Warn implements pardll.Logger.
func (Apex) Warn(message string) { apexlog.Warn(message) }

// Warnf implements pardll.Logger.
func (Apex) Warnf(format string, v ...any) { apexlog.Warnf(format, v...) }
