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
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggedPreservesResult(t *testing.T) {
	log, _ := logrustest.NewNullLogger()

	double := Logged(log, "double", func(n int) (int, error) {
		return n * 2, nil
	})

	result, err := double(21)
	require.NoError(t, err)
	assert.Equal(t, 42, result)
}

func TestLoggedEntryAndCompletionBracketOneInvocation(t *testing.T) {
	log, hook := logrustest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	fn := Logged(log, "work", func(n int) (int, error) {
		return n, nil
	})

	_, err := fn(1)
	require.NoError(t, err)

	require.Len(t, hook.Entries, 2)
	assert.Equal(t, logrus.DebugLevel, hook.Entries[0].Level)
	assert.Equal(t, "Entering work", hook.Entries[0].Message)
	assert.Equal(t, 1, hook.Entries[0].Data["args"])
	assert.Equal(t, logrus.DebugLevel, hook.Entries[1].Level)
	assert.Equal(t, "Completed work", hook.Entries[1].Message)
	assert.Equal(t, 1, hook.Entries[1].Data["result"])
	assert.Contains(t, hook.Entries[1].Data, "duration")
}

func TestLoggedPropagatesErrorUnchanged(t *testing.T) {
	log, hook := logrustest.NewNullLogger()
	sentinel := errors.New("kaboom")

	fn := Logged(log, "failing", func(struct{}) (struct{}, error) {
		return struct{}{}, sentinel
	})

	_, err := fn(struct{}{})
	assert.Equal(t, sentinel, err)

	require.NotEmpty(t, hook.Entries)
	last := hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, last.Level)
	assert.Equal(t, "Error in failing", last.Message)
	assert.Equal(t, sentinel, last.Data[logrus.ErrorKey])
}

func TestLoggedRethrowsPanicUnchanged(t *testing.T) {
	log, hook := logrustest.NewNullLogger()

	fn := Logged(log, "panicking", func(struct{}) (struct{}, error) {
		panic("boom")
	})

	require.PanicsWithValue(t, "boom", func() {
		fn(struct{}{})
	})

	require.NotEmpty(t, hook.Entries)
	last := hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, last.Level)
	assert.Equal(t, "Panic in panicking", last.Message)
	assert.Equal(t, "boom", last.Data["panic"])
}

func TestLoggedResolvesFunctionName(t *testing.T) {
	log, hook := logrustest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	fn := Logged(log, "", namedForTest)
	_, err := fn(0)
	require.NoError(t, err)

	require.NotEmpty(t, hook.Entries)
	assert.Contains(t, hook.Entries[0].Data[functionField], "namedForTest")
}

func namedForTest(n int) (int, error) {
	return n, nil
}

func TestLoggedCall(t *testing.T) {
	log, hook := logrustest.NewNullLogger()
	sentinel := errors.New("nope")

	assert.NoError(t, LoggedCall(log, "ok", func() error { return nil }))
	assert.Equal(t, sentinel, LoggedCall(log, "failing", func() error { return sentinel }))

	require.NotEmpty(t, hook.Entries)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}
