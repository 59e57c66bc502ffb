// Package cli implements the archpad command-line interface.
//
// This package provides commands for serving the diagram editor API, rendering
// saved designs to images, browsing the tool catalog interactively, and
// inspecting catalog files. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - serve: Run the HTTP API backing the canvas frontend
//   - render: Generate DOT, SVG, or PNG images from a design file
//   - browse: Explore the tool catalog in an interactive tree
//   - catalog: Validate and summarize catalog files
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/archpadhq/archpad/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// defaultConfigPath is where serve looks for a config file unless
	// --config is given.
	defaultConfigPath = "archpad.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "archpad",
		Short:        "Archpad serves and renders architecture diagrams",
		Long:         `Archpad is the backend for a drag-and-drop architecture diagram editor: it serves the tool catalog and saved designs over HTTP and renders designs to images from the command line.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.completionCommand())

	return root
}
