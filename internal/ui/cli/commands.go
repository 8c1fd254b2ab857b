package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	coreapp "swiftslice/internal/core/app"
	"swiftslice/internal/core/errors"
	"swiftslice/internal/shared/observability"
	"swiftslice/internal/shared/util"
)

func newFilesCommand(root *rootOptions) *cobra.Command {
	var seeds []string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "files [flags] <start-file>",
		Short: "List the whole files a start file needs",
		Long: `Files runs the closure over whole files instead of declarations. Files carrying an
entry point are excluded, except the start file itself.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := newRuntime(cmd, root)
			if err != nil {
				return err
			}
			defer rt.Close(ctx)

			res, err := rt.service.ResolveFiles(ctx, rt.request(args[0], seeds))
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			for _, path := range res.Files {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			fmt.Fprint(cmd.ErrOrStderr(), renderFilesSummary(res))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&seeds, "seed", nil, "extra type name to anchor (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the file set as JSON")
	return cmd
}

func newSnippetCommand(root *rootOptions) *cobra.Command {
	var showSeeds, showImports bool
	cmd := &cobra.Command{
		Use:   "snippet [flags] <file>",
		Short: "Print the body of a file's first #Preview block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := newRuntime(cmd, root)
			if err != nil {
				return err
			}
			defer rt.Close(ctx)

			body, seeds, err := rt.service.SeedsFromSnippet(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case showSeeds:
				for _, seed := range seeds {
					fmt.Fprintln(out, seed)
				}
			case showImports:
				imports, err := rt.service.SnippetImports(ctx, args[0])
				if err != nil {
					return err
				}
				for _, module := range imports {
					fmt.Fprintln(out, module)
				}
			default:
				fmt.Fprintln(out, body)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showSeeds, "seeds", false, "print the non-builtin type names the snippet mentions")
	cmd.Flags().BoolVar(&showImports, "imports", false, "print the modules the snippet's file imports")
	cmd.MarkFlagsMutuallyExclusive("seeds", "imports")
	return cmd
}

func newWhyCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "why <start-file> <from-type> <to-type>",
		Short: "Explain which references pull one type in from another",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := newRuntime(cmd, root)
			if err != nil {
				return err
			}
			defer rt.Close(ctx)

			chain, err := rt.service.Why(ctx, rt.request(args[0], nil), args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(chain, " -> "))
			return nil
		},
	}
}

func newWatchCommand(root *rootOptions) *cobra.Command {
	var seeds []string
	var output string
	cmd := &cobra.Command{
		Use:   "watch [flags] <start-file>",
		Short: "Re-resolve whenever the sources change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := newRuntime(cmd, root)
			if err != nil {
				return err
			}
			defer rt.Close(context.WithoutCancel(ctx))

			if output == "" {
				output = rt.paths.OutputPath
			}
			if output == "" {
				return errors.New(errors.CodeValidationError, "watch needs an output path: pass -o or set [output].path")
			}

			if addr := rt.cfg.Observability.MetricsAddress; addr != "" {
				srv := observability.NewServer(addr, rt.logger)
				if err := srv.Start(ctx); err != nil {
					return err
				}
				defer srv.Stop(context.WithoutCancel(ctx))
			}

			_, snippetSeeds, err := rt.snippetSeeds(ctx, args[0])
			if err != nil {
				return err
			}
			seeds = append(seeds, snippetSeeds...)
			errOut := cmd.ErrOrStderr()
			return rt.service.Watch(ctx, rt.request(args[0], seeds), func(res *coreapp.Result, err error) {
				if err != nil {
					rt.logger.Error("resolve failed", "error", err)
					return
				}
				if err := util.WriteStringAtomic(output, res.GeneratedSource, 0o644); err != nil {
					rt.logger.Error("write generated source", "path", output, "error", err)
					return
				}
				fmt.Fprint(errOut, renderResolveSummary(res, output, nil))
			})
		},
	}
	cmd.Flags().StringSliceVar(&seeds, "seed", nil, "extra type name to anchor (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write generated source to this path (overrides [output].path)")
	return cmd
}

func newInspectCommand(root *rootOptions) *cobra.Command {
	var seeds []string
	cmd := &cobra.Command{
		Use:   "inspect [flags] <start-file>",
		Short: "Browse collected declarations and the resolved slice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("inspect needs an interactive terminal")
			}
			ctx := cmd.Context()
			rt, err := newRuntime(cmd, root)
			if err != nil {
				return err
			}
			defer rt.Close(ctx)

			_, snippetSeeds, err := rt.snippetSeeds(ctx, args[0])
			if err != nil {
				return err
			}
			seeds = append(seeds, snippetSeeds...)
			in, err := rt.service.Inspect(ctx, rt.request(args[0], seeds))
			if err != nil {
				return err
			}
			return runInspector(ctx, in)
		},
	}
	cmd.Flags().StringSliceVar(&seeds, "seed", nil, "extra type name to anchor (repeatable)")
	return cmd
}
