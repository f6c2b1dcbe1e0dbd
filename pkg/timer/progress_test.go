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

package timer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func init() {
	// keep rendered output free of escape sequences so assertions are
	// stable regardless of where the tests run
	color.NoColor = true
}

func TestProgressBarRendering(t *testing.T) {
	var buf bytes.Buffer
	bar := newProgressBar(&buf, "batch", 10)

	bar.Advance(3)
	bar.Advance(7)
	bar.Close()

	out := buf.String()
	assert.Contains(t, out, "batch: [---------------------------") // initial empty bar
	assert.Contains(t, out, "3/10")
	assert.Contains(t, out, "batch: [##############################] 10/10")
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Equal(t, 10, bar.Count())
}

func TestProgressBarOverflowClampsFill(t *testing.T) {
	var buf bytes.Buffer
	bar := newProgressBar(&buf, "batch", 4)

	bar.Advance(9)
	bar.Close()

	// the fill is clamped to the bar width while the raw count is shown
	assert.Contains(t, buf.String(), "[##############################] 9/4")
}

func TestProgressBarClosedIsInert(t *testing.T) {
	var buf bytes.Buffer
	bar := newProgressBar(&buf, "batch", 5)

	bar.Close()
	written := buf.Len()

	bar.Advance(1)
	bar.Close()

	assert.Equal(t, written, buf.Len())
	assert.Equal(t, 0, bar.Count())
}

func TestProgressBarIgnoresNonPositiveAdvance(t *testing.T) {
	var buf bytes.Buffer
	bar := newProgressBar(&buf, "batch", 5)

	bar.Advance(0)
	bar.Advance(-3)

	assert.Equal(t, 0, bar.Count())
}

func TestProgressCounterRendering(t *testing.T) {
	var buf bytes.Buffer
	counter := newProgressCounter(&buf, "scan")

	counter.Advance(1)
	counter.Advance(2)
	counter.Close()

	out := buf.String()
	assert.Contains(t, out, "scan: 0")
	assert.Contains(t, out, "scan: 1")
	assert.Contains(t, out, "scan: 3")
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Equal(t, 3, counter.Count())
}

func TestProgressCounterClosedIsInert(t *testing.T) {
	var buf bytes.Buffer
	counter := newProgressCounter(&buf, "scan")

	counter.Close()
	written := buf.Len()

	counter.Advance(1)
	counter.Close()

	assert.Equal(t, written, buf.Len())
}

func TestTimerCreatesIndicatorByMode(t *testing.T) {
	tests := []struct {
		name  string
		total int
		want  any
	}{
		{name: "positive total uses a bar", total: 10, want: &progressBar{}},
		{name: "zero total degrades to indeterminate", total: 0, want: &progressCounter{}},
		{name: "negative total degrades to indeterminate", total: -5, want: &progressCounter{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			tm := Start("batch", WithProgress(tc.total), WithProgressWriter(&buf))
			defer tm.Stop()

			assert.IsType(t, tc.want, tm.indicator)
		})
	}
}

func TestTimerWithoutProgressUsesNoop(t *testing.T) {
	tm := Start("plain")
	defer tm.Stop()

	assert.IsType(t, noopIndicator{}, tm.indicator)
}
