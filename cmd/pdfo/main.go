package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"

	"github.com/flanksource/pdfo"
	"github.com/flanksource/pdfo/catalog"
	"github.com/flanksource/pdfo/shutdown"
	"github.com/flanksource/pdfo/task"
)

// Build information (set by goreleaser)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var settings pdfo.Settings

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pdfo",
		Short: "Turn product photos into shareable PDF catalogs and product sheets",
		Long: `pdfo builds A4 PDF catalogs from a set of photos: a branded cover page followed
by one page per photo. It also renders single-page product spec sheets from saved
product designs.

Defaults are read from --config and PDFO_* environment variables.`,
		Example: `  pdfo catalog --cover cover.yaml --quality medium -o out/ photos/*.jpg
  pdfo product --design design.yaml -o out/
  pdfo designs list
  pdfo inspect out/F_MOR_1700000000000.pdf --text`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			pdfo.Flags.UseFlags()
			var err error
			settings, err = pdfo.LoadSettings(pdfo.Flags.Config)
			return err
		},
	}

	pdfo.BindAllFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newCatalogCommand())
	rootCmd.AddCommand(newProductCommand())
	rootCmd.AddCommand(newDesignsCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newEstimateCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// run executes one generation with signal handling, a progress display and a
// user-facing error message
func run(cmd *cobra.Command, name string, fn func(context.Context, catalog.ProgressFunc) (*catalog.RenderResult, error), outDir string) error {
	ctx, cancel := shutdown.WithSignals(cmd.Context())
	defer cancel()

	progress := task.NewProgress(name, os.Stderr)
	if pdfo.Flags.NoProgress {
		progress = task.NewProgress(name, os.Stderr, task.WithInteractive(false))
	}

	result, err := fn(ctx, progress.Func())
	progress.Done(err)
	if err != nil {
		logger.Errorf("%s: %v", name, err)
		return fmt.Errorf("%s", catalog.UserMessage(err))
	}
	defer result.Release()

	path, err := result.Handle.Save(outDir, result.Filename)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %d pages  %s\n", path, result.PageCount, result.FormattedSize)
	return nil
}

func newGenerator() (*catalog.Generator, error) {
	return catalog.NewGenerator(settings.GeneratorOptions())
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(getVersionInfo())
		},
	}
}

func getVersionInfo() string {
	return fmt.Sprintf("pdfo %s (commit: %s, built: %s, go: %s)",
		version, commit, date, runtime.Version())
}
