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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogHookFire(t *testing.T) {
	tests := []struct {
		name        string
		entries     []*logrus.Entry
		level       logrus.Level
		wantCount   int
		wantEntries []string
	}{
		{
			name: "single entry",
			entries: []*logrus.Entry{
				{Level: logrus.ErrorLevel, Message: "something broke", Data: logrus.Fields{}},
			},
			level:       logrus.ErrorLevel,
			wantCount:   1,
			wantEntries: []string{"something broke"},
		},
		{
			name: "multiple entries at the same level",
			entries: []*logrus.Entry{
				{Level: logrus.WarnLevel, Message: "first", Data: logrus.Fields{}},
				{Level: logrus.WarnLevel, Message: "second", Data: logrus.Fields{}},
			},
			level:       logrus.WarnLevel,
			wantCount:   2,
			wantEntries: []string{"first", "second"},
		},
		{
			name: "entries at other levels are not counted",
			entries: []*logrus.Entry{
				{Level: logrus.InfoLevel, Message: "info", Data: logrus.Fields{}},
			},
			level:       logrus.ErrorLevel,
			wantCount:   0,
			wantEntries: []string{},
		},
		{
			name: "error field is appended to the message",
			entries: []*logrus.Entry{
				{
					Level:   logrus.ErrorLevel,
					Message: "update failed",
					Data:    logrus.Fields{logrus.ErrorKey: errors.New("connection reset")},
				},
			},
			level:       logrus.ErrorLevel,
			wantCount:   1,
			wantEntries: []string{"update failed error: connection reset"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hook := NewLogHook()

			for _, entry := range tc.entries {
				require.NoError(t, hook.Fire(entry))
			}

			assert.Equal(t, tc.wantCount, hook.GetCount(tc.level))
			assert.Equal(t, tc.wantEntries, hook.GetEntries(tc.level))
		})
	}
}

func TestLogHookGetEntriesReturnsCopy(t *testing.T) {
	hook := NewLogHook()
	require.NoError(t, hook.Fire(&logrus.Entry{Level: logrus.InfoLevel, Message: "original", Data: logrus.Fields{}}))

	entries := hook.GetEntries(logrus.InfoLevel)
	entries[0] = "mutated"

	assert.Equal(t, []string{"original"}, hook.GetEntries(logrus.InfoLevel))
}
