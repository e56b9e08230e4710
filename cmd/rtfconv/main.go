// Command rtfconv converts and inspects RTF documents.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/richtext"
	"github.com/tsawler/richtext/internal/config"
	"github.com/tsawler/richtext/internal/logging"
)

// app holds state shared by all subcommands
type app struct {
	configPath string
	logLevel   string
	logFile    string

	// Overrides for config file values
	ansiCodePage    bool
	standardColors  bool
	defaultFont     string
	skipBoilerplate bool

	cfg *config.Config
	log *logging.Logger
}

func main() {
	root, a := newRootCmd(os.Stderr)
	if err := execute(root, a); err != nil {
		fmt.Fprintln(os.Stderr, "rtfconv:", err)
		os.Exit(1)
	}
}

// execute runs the command tree and releases the logger whether or not
// the command succeeded.
func execute(root *cobra.Command, a *app) (err error) {
	defer func() {
		if cerr := a.close(); err == nil {
			err = cerr
		}
	}()
	return root.Execute()
}

func newRootCmd(stderr io.Writer) (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:           "rtfconv",
		Short:         "Convert and inspect RTF documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, stderr)
		},
	}
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "TOML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.logFile, "log-file", "", "also write JSON logs to this file")
	flags.BoolVar(&a.ansiCodePage, "ansi-code-page", false, `decode \'XX escapes using the \ansicpg code page`)
	flags.BoolVar(&a.standardColors, "standard-colors", false, "use word-processor color table indexing")
	flags.StringVar(&a.defaultFont, "default-font", "", "font family written for runs without one")
	flags.BoolVar(&a.skipBoilerplate, "skip-boilerplate", false, "drop navigation and page furniture from HTML input")

	root.AddCommand(newConvertCmd(a), newInspectCmd(a), newTokensCmd(a))
	return root, a
}

// setup loads the config file, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, stderr io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = a.logFile
	}
	if flags.Changed("ansi-code-page") {
		cfg.RTF.ANSICodePage = a.ansiCodePage
	}
	if flags.Changed("standard-colors") {
		cfg.RTF.StandardColorIndex = a.standardColors
	}
	if flags.Changed("default-font") {
		cfg.RTF.DefaultFont = a.defaultFont
	}
	if flags.Changed("skip-boilerplate") {
		cfg.HTML.SkipBoilerplate = a.skipBoilerplate
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(cfg.Log.Level, stderr, cfg.Log.File)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	a.log.Debug("config loaded", "path", a.configPath, "level", cfg.Log.Level)
	return nil
}

// close releases the log file, if one was opened.
func (a *app) close() error {
	if a.log == nil {
		return nil
	}
	err := a.log.Close()
	a.log = nil
	return err
}

// converter opens path with the configured options.
func (a *app) converter(path string) *richtext.Converter {
	c := richtext.Open(path).
		WithLogger(a.log.Logger).
		DefaultFont(a.cfg.RTF.DefaultFont)
	if a.cfg.RTF.ANSICodePage {
		c = c.ANSICodePage()
	}
	if a.cfg.RTF.StandardColorIndex {
		c = c.StandardColorIndex()
	}
	if a.cfg.HTML.SkipBoilerplate {
		c = c.SkipBoilerplate()
	}
	return c
}

func (a *app) reportWarnings(path string, warnings []richtext.Warning) {
	for _, w := range warnings {
		a.log.Warn(w.Message, "file", path, "code", w.Code.String())
	}
}
