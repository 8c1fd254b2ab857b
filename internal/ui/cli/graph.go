package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"swiftslice/internal/core/errors"
	"swiftslice/internal/shared/util"
	"swiftslice/internal/ui/report/formats"
)

func newGraphCommand(root *rootOptions) *cobra.Command {
	var seeds []string
	var format string
	var output string
	cmd := &cobra.Command{
		Use:   "graph [flags] <start-file>",
		Short: "Export the reference graph of the resolved slice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			g := formats.NewSliceGraph(in.Set, in.Unresolved, in.Cycles)
			var rendered string
			switch format {
			case "dot":
				rendered, err = formats.NewDOTGenerator(g).Generate()
			case "mermaid":
				rendered, err = formats.NewMermaidGenerator(g).Generate()
			case "tsv":
				rendered, err = formats.NewTSVGenerator(g).Generate()
			case "decls":
				rendered, err = formats.NewTSVGenerator(g).GenerateDeclarations(in.Set)
			default:
				err = errors.AddContext(errors.New(errors.CodeValidationError, "unknown graph format"), "format", format)
			}
			if err != nil {
				return err
			}

			if output != "" {
				return util.WriteStringAtomic(output, rendered, 0o644)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return err
		},
	}
	cmd.Flags().StringSliceVar(&seeds, "seed", nil, "extra type name to anchor (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, mermaid, tsv or decls")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the graph to this file instead of stdout")
	return cmd
}
