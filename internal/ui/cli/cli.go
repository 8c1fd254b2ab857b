// Package cli is the swiftslice command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"swiftslice/internal/core/errors"
	"swiftslice/internal/shared/version"
)

type rootOptions struct {
	configPath string
	envFile    string
	verbose    bool
	sources    string
}

// Run executes the CLI and returns the process exit code.
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx, args, os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err.Error())
		return exitCode(err)
	}
	return 0
}

// exitCode maps invalid input to 2 and every other failure to 1.
func exitCode(err error) int {
	if errors.CodeOf(err) == errors.CodeValidationError {
		return 2
	}
	return 1
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "swiftslice",
		Short:         "Slice a Swift codebase down to what one file needs",
		Long:          `swiftslice collects the top-level declarations of a Swift sources tree and emits the minimal set a start file and its preview snippet depend on, as one self-contained source.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to swiftslice.toml (default: searched upwards from the working directory)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before applying SWIFTSLICE_* overrides")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&opts.sources, "sources", "", "sources directory (overrides [sources].dir)")

	root.AddCommand(
		newResolveCommand(opts),
		newFilesCommand(opts),
		newSnippetCommand(opts),
		newWhyCommand(opts),
		newWatchCommand(opts),
		newInspectCommand(opts),
		newGraphCommand(opts),
		newCacheCommand(opts),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the swiftslice version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
