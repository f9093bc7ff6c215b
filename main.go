// main.go
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/buffos/go-datadash/internal/config"
)

var version = "dev"

// app carries what every command needs once flags are parsed.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *log.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "datadash",
		Short: "Render, export and serve animated dashboard charts",
		Long: `datadash renders the widget boxes of a dashboard page (bar, pie, donut,
line, radar, gauge and number widgets) into animated SVG charts, exports
their frames and serves the page live with tooltips.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: datadash.yaml in ., $HOME/.datadash, /etc/datadash)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log frame-level narration")

	root.AddCommand(
		a.renderCmd(),
		a.framesCmd(),
		a.snapshotCmd(),
		a.probeCmd(),
		a.serveCmd(),
		a.inspectCmd(),
		formatCmd(),
		versionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFromFile(a.configPath)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if a.verbose {
		a.cfg.Logging.Verbose = true
	}
	a.logger = log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	if !a.cfg.Logging.Verbose {
		// narration from the standard logger follows the same switch
		log.SetOutput(io.Discard)
	} else {
		log.SetOutput(cmd.ErrOrStderr())
	}
	return nil
}

// openOutput returns the writer for -o, or stdout when it is empty. The
// returned function closes the file, if any.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		log.Println("Output directed to stdout.")
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	log.Printf("Output directed to file: %s", path)
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating output file '%s': %w", path, err)
	}
	return f, f.Close, nil
}
