/*
Copyright the go-utils contributors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package timer measures wall-clock duration of a block of work as a
// scoped resource, with optional live progress display and optional
// duration reporting through a logger.
//
// A Timer is started once, advanced any number of times while the work
// runs, and stopped exactly once; Stop on every exit path is the
// caller's responsibility (typically via defer) unless the work runs
// under Time, which guarantees it.
package timer

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Timer records elapsed wall-clock time for a block of work. It is not
// safe for concurrent use; callers timing parallel work should use one
// Timer per worker or serialize access externally.
type Timer struct {
	label     string
	logger    logrus.FieldLogger
	logLevel  logrus.Level
	indicator Indicator
	progressW io.Writer
	progress  bool
	total     int

	start   time.Time
	elapsed time.Duration
	stopped bool
}

// Option configures a Timer at construction time.
type Option func(*Timer)

// WithLogger sets the logger the completion message is reported
// through. The logger is shared, not owned; the Timer never closes or
// reconfigures it. Without a logger the Timer is silent and elapsed
// time is available only through Elapsed.
func WithLogger(log logrus.FieldLogger) Option {
	return func(t *Timer) { t.logger = log }
}

// WithLogLevel sets the severity of the completion message. The
// default is info.
func WithLogLevel(level logrus.Level) Option {
	return func(t *Timer) { t.logLevel = level }
}

// WithProgress enables a progress indicator for the timer's scope,
// expecting total units of work. A total of zero or less puts the
// indicator in indeterminate mode (count only, no bar).
func WithProgress(total int) Option {
	return func(t *Timer) {
		t.progress = true
		t.total = total
	}
}

// WithProgressWriter sets the destination progress is rendered to,
// replacing the default of stderr.
func WithProgressWriter(w io.Writer) Option {
	return func(t *Timer) { t.progressW = w }
}

// WithIndicator supplies a custom progress indicator, overriding the
// built-in rendering. The Timer takes ownership and closes it at Stop.
func WithIndicator(ind Indicator) Option {
	return func(t *Timer) {
		t.progress = true
		t.indicator = ind
	}
}

// Start begins timing a block of work described by label. The returned
// Timer must be stopped on every exit path from the block; pair Start
// with a deferred Stop, or use Time.
func Start(label string, opts ...Option) *Timer {
	t := &Timer{
		label:     label,
		logLevel:  logrus.InfoLevel,
		progressW: os.Stderr,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.indicator == nil {
		switch {
		case t.progress && t.total > 0:
			t.indicator = newProgressBar(t.progressW, label, t.total)
		case t.progress:
			t.indicator = newProgressCounter(t.progressW, label)
		default:
			t.indicator = noopIndicator{}
		}
	}

	t.start = time.Now()
	return t
}

// Advance increments the progress indicator by n. It is a harmless
// no-op when progress is disabled or the Timer has been stopped.
func (t *Timer) Advance(n int) {
	if t.stopped {
		return
	}
	t.indicator.Advance(n)
}

// Stop ends the timed scope: it freezes the elapsed duration, releases
// the progress indicator, and reports the duration through the
// configured logger, if any. Stop is idempotent; calls after the first
// do nothing. A stopped Timer cannot be restarted.
func (t *Timer) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true

	t.elapsed = time.Since(t.start)
	if t.elapsed < 0 {
		// unreachable with Go's monotonic clock readings; clamp anyway
		// so a duration is never reported negative.
		t.elapsed = 0
	}

	t.indicator.Close()

	if t.logger != nil {
		logf(t.logger, t.logLevel, "%s completed in %.2f seconds", t.label, t.elapsed.Seconds())
	}
}

// Elapsed returns the frozen duration once the Timer is stopped. While
// the Timer is running it returns the duration elapsed so far.
func (t *Timer) Elapsed() time.Duration {
	if t.stopped {
		return t.elapsed
	}
	if d := time.Since(t.start); d > 0 {
		return d
	}
	return 0
}

// Label returns the description of the timed block.
func (t *Timer) Label() string {
	return t.label
}

// Time runs fn under a Timer for label, guaranteeing Stop on every
// exit path: normal return, error return, and panic. A panic in fn
// propagates unchanged after the duration is reported and the progress
// indicator is released. fn's error is returned unchanged.
func Time(label string, fn func(*Timer) error, opts ...Option) error {
	t := Start(label, opts...)
	defer t.Stop()

	return fn(t)
}

// leveledLogger is satisfied by *logrus.Logger, *logrus.Entry, and the
// logging package's Logger, all of which can emit at an arbitrary
// level without the process-exiting behavior of Fatalf.
type leveledLogger interface {
	Logf(level logrus.Level, format string, args ...any)
}

// logf emits a formatted message at the given level. Loggers that
// cannot emit at an arbitrary level fall back to the closest
// fixed-level method; fatal and panic severities degrade to Errorf so
// reporting a duration can never exit the process.
func logf(log logrus.FieldLogger, level logrus.Level, format string, args ...any) {
	if ll, ok := log.(leveledLogger); ok {
		ll.Logf(level, format, args...)
		return
	}

	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		log.Debugf(format, args...)
	case logrus.WarnLevel:
		log.Warnf(format, args...)
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		log.Errorf(format, args...)
	default:
		log.Infof(format, args...)
	}
}
