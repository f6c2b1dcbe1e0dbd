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

package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ajsams/go-utils/pkg/util/filesystem"
)

// sourceField is attached to every entry a Logger emits, identifying
// the named logger that produced it.
const sourceField = "source"

// Logger is a named, leveled logger. It wraps a logrus backend it owns,
// tagging every entry with the logger's name as the "source" field.
// Entries below the configured level are discarded.
//
// The zero value is not usable; construct instances with New or
// NewWithOptions, or use the shared instance returned by Default.
type Logger struct {
	logrus.FieldLogger

	name   string
	logger *logrus.Logger
	entry  *logrus.Entry
	fs     filesystem.Interface

	mu      sync.Mutex
	baseOut io.Writer
	logFile io.WriteCloser
}

// Option configures a Logger at construction time.
type Option func(*options)

type options struct {
	format  Format
	out     io.Writer
	fs      filesystem.Interface
	logFile string
	hooks   []logrus.Hook
}

// WithFormat sets the output format (text or JSON).
func WithFormat(format Format) Option {
	return func(o *options) { o.format = format }
}

// WithOutput sets the destination log entries are written to,
// replacing the default of stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithLogFile additionally tees output to the named file. The file is
// truncated if it already exists.
func WithLogFile(path string) Option {
	return func(o *options) { o.logFile = path }
}

// WithFileSystem sets the file system implementation used for log
// files. Tests use this to substitute an in-memory file system.
func WithFileSystem(fs filesystem.Interface) Option {
	return func(o *options) { o.fs = fs }
}

// WithHook adds a logrus hook to the backend in addition to the
// default hooks.
func WithHook(hook logrus.Hook) Option {
	return func(o *options) { o.hooks = append(o.hooks, hook) }
}

// New returns a Logger named name that discards entries below level.
func New(name string, level logrus.Level) *Logger {
	// the only construction failure is an unopenable log file, and no
	// log file is requested here.
	logger, _ := NewWithOptions(name, level)
	return logger
}

// NewWithOptions returns a Logger named name that discards entries
// below level, configured by opts. It returns an error only for
// configuration problems, such as a log file that cannot be created.
func NewWithOptions(name string, level logrus.Level, opts ...Option) (*Logger, error) {
	o := &options{
		format: FormatText,
		fs:     filesystem.NewFileSystem(),
	}
	for _, opt := range opts {
		opt(o)
	}

	backend := DefaultLogger(level, o.format)
	if o.out != nil {
		backend.SetOutput(o.out)
	}
	for _, hook := range o.hooks {
		backend.Hooks.Add(hook)
	}

	entry := backend.WithField(sourceField, name)

	l := &Logger{
		FieldLogger: entry,
		name:        name,
		logger:      backend,
		entry:       entry,
		fs:          o.fs,
		baseOut:     backend.Out,
	}

	if o.logFile != "" {
		if err := l.SetLogFile(o.logFile); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// Name returns the logger's name.
func (l *Logger) Name() string {
	return l.name
}

// Log emits args as a message at the given level. Entries below the
// configured level are no-ops. Unlike logrus's Fatal, logging at
// logrus.FatalLevel through Log does not exit the process.
func (l *Logger) Log(level logrus.Level, args ...any) {
	l.entry.Log(level, args...)
}

// Logf emits a formatted message at the given level.
func (l *Logger) Logf(level logrus.Level, format string, args ...any) {
	l.entry.Logf(level, format, args...)
}

// Critical emits args at the highest severity. It does not exit the
// process.
func (l *Logger) Critical(args ...any) {
	l.entry.Log(logrus.FatalLevel, args...)
}

// Level returns the minimum severity the logger emits.
func (l *Logger) Level() logrus.Level {
	return l.logger.GetLevel()
}

// SetLevel changes the minimum severity the logger emits.
func (l *Logger) SetLevel(level logrus.Level) {
	l.logger.SetLevel(level)
}

// Processing emits a delimited stage banner at the info level, marking
// the beginning or end of a processing stage in long-running work.
func (l *Logger) Processing(msg string) {
	banner := strings.Repeat("=", 40)
	l.entry.Info(fmt.Sprintf("\n%s\n%s\n%s", banner, msg, banner))
}

// SetLogFile tees log output to the named file in addition to the
// logger's existing destination. The file is truncated if it already
// exists. Any previously set log file is closed first.
func (l *Logger) SetLogFile(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := l.fs.Create(path)
	if err != nil {
		return errors.Wrapf(err, "error creating log file %s", path)
	}

	l.closeLogFileLocked()
	l.logFile = file
	l.logger.SetOutput(io.MultiWriter(l.baseOut, file))

	return nil
}

// ClearLogFile stops teeing output to the log file, if one is set, and
// closes it.
func (l *Logger) ClearLogFile() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closeLogFileLocked()
	l.logger.SetOutput(l.baseOut)
}

func (l *Logger) closeLogFileLocked() {
	if l.logFile == nil {
		return
	}
	if err := l.logFile.Close(); err != nil {
		l.entry.WithError(err).Warning("error closing log file")
	}
	l.logFile = nil
}

// ParseLevel converts a severity name to a logrus.Level. In addition
// to the names logrus itself accepts, "critical" is recognized as the
// highest severity for compatibility with Python-style level names.
func ParseLevel(level string) (logrus.Level, error) {
	if strings.EqualFold(level, "critical") {
		return logrus.FatalLevel, nil
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid log level %q", level)
	}
	return parsed, nil
}
