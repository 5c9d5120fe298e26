// Package cli wires configuration, logging and the spectree commands together.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jesspatton/spectree/config"
	"github.com/jesspatton/spectree/engine"
	"github.com/jesspatton/spectree/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree. The root command starts the
// interactive explorer.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spectree [dir]",
		Short: "Browse and run test specs as a directory tree",
		Long: `spectree discovers the test specs of a project, arranges them into a
directory tree and lets you filter, collapse and run them from the terminal.

Example:
  spectree
  spectree ./web --search login
  spectree tree --json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runExplorer,
	}

	addGlobalFlags(cmd.PersistentFlags())
	cmd.AddCommand(newTreeCommand(), newVersionCommand())
	return cmd
}

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "Config file (default is <dir>/"+config.FileName+".yaml)")
	flags.String("separator", config.DefaultSeparator, "Path separator used to split spec paths")
	flags.StringP("search", "s", "", "Only show specs whose path contains this text")
	flags.StringSlice("collapsed", nil, "Directories to start collapsed")
	flags.Bool("changed", false, "Only show specs changed in the git working tree")
	flags.StringSlice("exclude", nil, "Extra ignore patterns")
	flags.String("command", "", "Command template used to run a spec (<path> is replaced)")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-file", "", "Write logs to this file")
}

// loadConfig resolves the project root from args and reads its configuration,
// letting flags override file and environment values.
func loadConfig(cmd *cobra.Command, args []string) (string, config.Config, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return "", config.Config{}, fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return "", config.Config{}, fmt.Errorf("resolve root: %w", err)
	}
	if !info.IsDir() {
		return "", config.Config{}, fmt.Errorf("resolve root: %s is not a directory", root)
	}

	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.LoadOptions{
		Root:  root,
		File:  file,
		Flags: cmd.Flags(),
	})
	if err != nil {
		return "", config.Config{}, err
	}
	return root, cfg, nil
}

func runExplorer(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	// The alt-screen owns the terminal, so logs only go to a file.
	out := io.Discard
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger, err := NewLogger(cfg.Log.Level, out)
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		logger.Debug("loaded config", "path", cfg.Path)
	}

	e := engine.New(root, cfg, logger)
	defer e.Close()

	p := tea.NewProgram(ui.NewModel(e), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run explorer: %w", err)
	}
	return nil
}
