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
	"reflect"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

const functionField = "function"

// Logged returns a function with the same signature as fn that logs
// entry, completion, and failure around each invocation. Entry and
// completion (including the invocation duration and a summary of the
// result) are logged at the debug level; a returned error is logged at
// the error level. The wrapped function's result and error are
// returned unchanged, and a panic in fn is logged and then re-raised
// unchanged.
//
// If log is nil the shared default logger is used. If name is empty
// the function's name is resolved through the runtime.
func Logged[In, Out any](log logrus.FieldLogger, name string, fn func(In) (Out, error)) func(In) (Out, error) {
	if log == nil {
		log = Default()
	}
	if name == "" {
		name = funcName(fn)
	}

	return func(arg In) (Out, error) {
		flog := log.WithField(functionField, name)
		flog.WithField("args", arg).Debugf("Entering %s", name)

		start := time.Now()
		defer logPanic(flog, name)

		result, err := fn(arg)
		if err != nil {
			flog.WithError(err).Errorf("Error in %s", name)
			LogStackTrace(flog, err)
			return result, err
		}

		flog.WithField("result", result).
			WithField("duration", time.Since(start).String()).
			Debugf("Completed %s", name)
		return result, nil
	}
}

// LoggedCall invokes fn with the same entry, completion, and failure
// logging as Logged. It is a convenience for timing and tracing a
// block without declaring a wrapped function first.
func LoggedCall(log logrus.FieldLogger, name string, fn func() error) error {
	wrapped := Logged(log, name, func(struct{}) (struct{}, error) {
		return struct{}{}, fn()
	})
	_, err := wrapped(struct{}{})
	return err
}

// logPanic logs a panic escaping a wrapped function at the error
// level, then re-raises it unchanged.
func logPanic(log logrus.FieldLogger, name string) {
	if r := recover(); r != nil {
		log.WithField("panic", r).Errorf("Panic in %s", name)
		panic(r)
	}
}

// funcName resolves fn's fully qualified name through the runtime,
// falling back to "func" for values the runtime cannot describe.
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return "func"
	}
	if rf := runtime.FuncForPC(v.Pointer()); rf != nil {
		return rf.Name()
	}
	return "func"
}
