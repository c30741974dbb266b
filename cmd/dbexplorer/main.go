package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dbexplorer/internal/browse"
	"dbexplorer/internal/config"
	"dbexplorer/internal/record"
	"dbexplorer/internal/store"
	"dbexplorer/internal/theme"
	"dbexplorer/internal/ui"
)

var version = "dev"

const (
	usage       = "usage: dbexplorer <path-to-dataset>"
	description = "An interactive CLI tool to explore the contents of a key/value dataset."
	logEnv      = "DBEXPLORER_LOG"
)

var errUsage = errors.New(usage)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd(os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// newRootCmd writes help and version output to out.
func newRootCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dbexplorer <path-to-dataset>",
		Short:         description,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errUsage
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0])
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetVersionTemplate("dbexplorer {{.Version}}\n")
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		fmt.Fprintln(c.OutOrStderr(), usage)
		fmt.Fprintln(c.OutOrStderr())
		fmt.Fprintln(c.OutOrStderr(), description)
	})
	return cmd
}

func run(ctx context.Context, path string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	records, feeds, err := load(ctx, path)
	if err != nil {
		return err
	}

	closeLog, err := setupLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	log.Printf("opened %s: %d records, %d feeds", path, len(records), len(feeds))

	th := theme.Detect(cfg.Theme)
	m := ui.NewModel(browse.New(records, feeds), ui.Options{
		Theme:      th,
		Accent:     cfg.Accent,
		WatchTheme: cfg.Theme == "" || cfg.Theme == "auto",
	})
	var opts []tea.ProgramOption
	if cfg.UseAltScreen() {
		opts = append(opts, tea.WithAltScreen())
	}
	opts = append(opts, tea.WithContext(ctx))
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// load reads the whole dataset before any keyboard input is served.
func load(ctx context.Context, path string) ([]record.Record, record.Feeds, error) {
	src, err := store.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer src.Close()
	records, err := src.ReadAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return records, src.Feeds(), nil
}

// setupLog sends log output to a file while the TUI owns the terminal, or
// discards it when no file is configured.
func setupLog(cfg config.Config) (func(), error) {
	path := os.Getenv(logEnv)
	if path == "" {
		path = cfg.LogFile
	}
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "dbexplorer")
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	return func() { _ = f.Close() }, nil
}
