// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package rlog provides a simple way of logging with different levels.
// Time/Date are not logged by default because systemd adds them for us;
// SetDateTime(true) turns that back on for environments that don't run
// under systemd.
//
// Uses these prefixes: https://www.freedesktop.org/software/systemd/man/sd-daemon.html
package rlog

import (
	"fmt"
	"io"
	"log"
	"os"
)

var logDateTime bool

var (
	DebugWriter io.Writer = os.Stderr
	InfoWriter  io.Writer = os.Stderr
	WarnWriter  io.Writer = os.Stderr
	ErrWriter   io.Writer = os.Stderr
)

var (
	DebugPrefix string = "<7>[DEBUG]   "
	InfoPrefix  string = "<6>[INFO]    "
	WarnPrefix  string = "<4>[WARNING] "
	ErrPrefix   string = "<3>[ERROR]   "
)

var (
	debugLog = log.New(DebugWriter, DebugPrefix, 0)
	infoLog  = log.New(InfoWriter, InfoPrefix, 0)
	warnLog  = log.New(WarnWriter, WarnPrefix, log.Lshortfile)
	errLog   = log.New(ErrWriter, ErrPrefix, log.Llongfile)

	debugTimeLog = log.New(DebugWriter, DebugPrefix, log.LstdFlags)
	infoTimeLog  = log.New(InfoWriter, InfoPrefix, log.LstdFlags)
	warnTimeLog  = log.New(WarnWriter, WarnPrefix, log.LstdFlags|log.Lshortfile)
	errTimeLog   = log.New(ErrWriter, ErrPrefix, log.LstdFlags|log.Llongfile)
)

// SetLevel discards everything below lvl ("debug", "info", "warn", "err").
func SetLevel(lvl string) {
	switch lvl {
	case "err", "fatal":
		WarnWriter = io.Discard
		fallthrough
	case "warn":
		InfoWriter = io.Discard
		fallthrough
	case "info":
		DebugWriter = io.Discard
	case "debug":
		// nothing to discard
	default:
		fmt.Printf("rlog: invalid loglevel %#v, using 'debug'\n", lvl)
		SetLevel("debug")
	}
}

// SetDateTime toggles the date/time prefix on every line.
func SetDateTime(v bool) {
	logDateTime = v
}

func Debug(v ...any) { out(DebugWriter, debugLog, debugTimeLog, fmt.Sprint(v...)) }
func Info(v ...any)  { out(InfoWriter, infoLog, infoTimeLog, fmt.Sprint(v...)) }
func Warn(v ...any)  { out(WarnWriter, warnLog, warnTimeLog, fmt.Sprint(v...)) }
func Error(v ...any) { out(ErrWriter, errLog, errTimeLog, fmt.Sprint(v...)) }

func Debugf(format string, v ...any) { out(DebugWriter, debugLog, debugTimeLog, fmt.Sprintf(format, v...)) }
func Infof(format string, v ...any)  { out(InfoWriter, infoLog, infoTimeLog, fmt.Sprintf(format, v...)) }
func Warnf(format string, v ...any)  { out(WarnWriter, warnLog, warnTimeLog, fmt.Sprintf(format, v...)) }
func Errorf(format string, v ...any) { out(ErrWriter, errLog, errTimeLog, fmt.Sprintf(format, v...)) }

// Fatal logs at error level and exits. Never called from inside a tick —
// the scheduler routes per-tick errors to the Monitor instead.
func Fatal(v ...any) {
	Error(v...)
	os.Exit(1)
}

func Fatalf(format string, v ...any) {
	Errorf(format, v...)
	os.Exit(1)
}

func out(w io.Writer, plain, withTime *log.Logger, s string) {
	if w == io.Discard {
		return
	}
	if logDateTime {
		withTime.Output(3, s)
	} else {
		plain.Output(3, s)
	}
}
