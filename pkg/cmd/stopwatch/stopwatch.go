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

// Package stopwatch implements the stopwatch command, which runs a
// child command one or more times and reports how long it took.
package stopwatch

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ajsams/go-utils/pkg/timer"
	"github.com/ajsams/go-utils/pkg/util/logging"
)

// Options collects the flag values for the stopwatch command.
type Options struct {
	Label    string
	Count    int
	Progress bool
	LogFile  string
	Summary  bool
}

// NewCommand constructs the stopwatch command.
func NewCommand() *cobra.Command {
	var (
		o         = &Options{Count: 1}
		logLevel  = logging.LogLevelFlag(logrus.InfoLevel)
		logFormat = logging.NewFormatFlag()
	)

	c := &cobra.Command{
		Use:   "stopwatch [flags] -- command [args...]",
		Short: "Time the execution of a command",
		Long: `Stopwatch runs a command, optionally several times, and reports the
total wall-clock duration through a leveled logger. With more than one
run a progress bar tracks completed runs.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			return Run(o, logLevel.Parse(), logFormat.Parse(), args)
		},
	}

	c.Flags().Var(logLevel, "log-level", fmt.Sprintf("The level at which to log. Valid values are %s.", strings.Join(logLevel.AllowedValues(), ", ")))
	c.Flags().Var(logFormat, "log-format", fmt.Sprintf("The format for log output. Valid values are %s.", strings.Join(logFormat.AllowedValues(), ", ")))
	c.Flags().StringVar(&o.Label, "label", "", "Label for the timed run. Defaults to the command line being run.")
	c.Flags().IntVarP(&o.Count, "count", "n", 1, "Number of times to run the command.")
	c.Flags().BoolVar(&o.Progress, "progress", false, "Show a progress indicator even for a single run.")
	c.Flags().StringVar(&o.LogFile, "log-file", "", "Also write log output to this file.")
	c.Flags().BoolVar(&o.Summary, "summary", false, "Print a per-level count of log messages on exit.")

	return c
}

// Run executes the child command per the options, timing it and
// reporting through a named logger.
func Run(o *Options, level logrus.Level, format logging.Format, args []string) error {
	hook := logging.NewLogHook()

	logOpts := []logging.Option{
		logging.WithFormat(format),
		logging.WithHook(hook),
	}
	if o.LogFile != "" {
		logOpts = append(logOpts, logging.WithLogFile(o.LogFile))
	}

	log, err := logging.NewWithOptions("stopwatch", level, logOpts...)
	if err != nil {
		return err
	}
	defer log.ClearLogFile()

	label := o.Label
	if label == "" {
		label = strings.Join(args, " ")
	}

	timerOpts := []timer.Option{timer.WithLogger(log)}
	if o.Progress || o.Count > 1 {
		timerOpts = append(timerOpts, timer.WithProgress(o.Count))
	}

	runErr := timer.Time(label, func(t *timer.Timer) error {
		for i := 0; i < o.Count; i++ {
			log.Debugf("Starting run %d of %d", i+1, o.Count)

			child := exec.Command(args[0], args[1:]...)
			child.Stdin = os.Stdin
			child.Stdout = os.Stdout
			child.Stderr = os.Stderr

			if err := child.Run(); err != nil {
				return errors.Wrapf(err, "error running %q", args[0])
			}

			t.Advance(1)
		}
		return nil
	}, timerOpts...)

	if o.Summary {
		printSummary(log, hook)
	}

	return runErr
}

func printSummary(log *logging.Logger, hook *logging.LogHook) {
	for _, level := range logrus.AllLevels {
		if count := hook.GetCount(level); count > 0 {
			log.Infof("Logged %d message(s) at the %s level", count, level)
		}
	}
}
