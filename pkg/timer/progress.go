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
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Indicator is the minimal capability a progress indicator must
// provide. A Timer owns its indicator exclusively: it is created on
// scope entry and closed exactly once on scope exit. Close must be
// safe to call more than once.
type Indicator interface {
	// Advance increments the indicator's count by n.
	Advance(n int)
	// Close finishes rendering and releases the indicator.
	Close()
}

// noopIndicator satisfies Indicator with no behavior. It stands in
// whenever progress display is disabled so callers can advance
// unconditionally.
type noopIndicator struct{}

func (noopIndicator) Advance(int) {}
func (noopIndicator) Close()      {}

const barWidth = 30

var labelColor = color.New(color.FgCyan)

// progressBar renders determinate progress as a fixed-width bar with a
// current/total count, redrawn in place on each advance.
type progressBar struct {
	mu     sync.Mutex
	w      io.Writer
	label  string
	total  int
	count  int
	closed bool
}

func newProgressBar(w io.Writer, label string, total int) *progressBar {
	p := &progressBar{
		w:     w,
		label: label,
		total: total,
	}
	p.render()
	return p
}

func (p *progressBar) Advance(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || n <= 0 {
		return
	}
	p.count += n
	p.render()
}

func (p *progressBar) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	p.render()
	fmt.Fprintln(p.w)
}

// Count returns the number of units advanced so far.
func (p *progressBar) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

func (p *progressBar) render() {
	filled := barWidth * p.count / p.total
	if filled > barWidth {
		filled = barWidth
	}
	fmt.Fprintf(p.w, "\r%s: [%s%s] %d/%d",
		labelColor.Sprint(p.label),
		strings.Repeat("#", filled),
		strings.Repeat("-", barWidth-filled),
		p.count, p.total)
}

// progressCounter renders indeterminate progress as a bare count,
// redrawn in place on each advance.
type progressCounter struct {
	mu     sync.Mutex
	w      io.Writer
	label  string
	count  int
	closed bool
}

func newProgressCounter(w io.Writer, label string) *progressCounter {
	p := &progressCounter{
		w:     w,
		label: label,
	}
	p.render()
	return p
}

func (p *progressCounter) Advance(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || n <= 0 {
		return
	}
	p.count += n
	p.render()
}

func (p *progressCounter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	p.render()
	fmt.Fprintln(p.w)
}

// Count returns the number of units advanced so far.
func (p *progressCounter) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

func (p *progressCounter) render() {
	fmt.Fprintf(p.w, "\r%s: %d", labelColor.Sprint(p.label), p.count)
}
