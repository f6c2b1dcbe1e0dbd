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
	"github.com/ajsams/go-utils/pkg/cmd/util/flag"
)

// Format is a string representation of the desired output format for logs.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func (f Format) String() string {
	return string(f)
}

// FormatFlag is a command-line flag for setting the logrus log format.
type FormatFlag struct {
	*flag.Enum
	defaultValue Format
}

// NewFormatFlag constructs a new log format flag.
func NewFormatFlag() *FormatFlag {
	return &FormatFlag{
		Enum: flag.NewEnum(
			string(FormatText),
			string(FormatText),
			string(FormatJSON),
		),
		defaultValue: FormatText,
	}
}

// Parse returns the flag's value as a Format.
func (f *FormatFlag) Parse() Format {
	switch f.String() {
	case string(FormatText):
		return FormatText
	case string(FormatJSON):
		return FormatJSON
	default:
		// the enum flag rejects values outside the allowed set,
		// so this is unreachable in practice.
		return f.defaultValue
	}
}
