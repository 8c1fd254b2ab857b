package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	coreapp "swiftslice/internal/core/app"
	"swiftslice/internal/core/errors"
	"swiftslice/internal/shared/util"
)

type resolveOptions struct {
	seeds     []string
	noSnippet bool
	output    string
	stage     bool
	json      bool
}

func newResolveCommand(root *rootOptions) *cobra.Command {
	o := &resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve [flags] <start-file>",
		Short: "Emit the declarations a start file and its preview need",
		Long: `Resolve collects every Swift file under the sources directory and emits the minimal
set of top-level declarations the start file, its #Preview snippet and any --seed types
depend on. The generated source goes to stdout unless an output path is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, root, o, args[0])
		},
	}
	cmd.Flags().StringSliceVar(&o.seeds, "seed", nil, "extra type name to anchor (repeatable)")
	cmd.Flags().BoolVar(&o.noSnippet, "no-snippet", false, "do not derive seeds from the start file's #Preview")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write generated source to this path (overrides [output].path)")
	cmd.Flags().BoolVar(&o.stage, "stage", false, "stage a build workspace with a preview host wrapper")
	cmd.Flags().BoolVar(&o.json, "json", false, "print a JSON summary to stdout")
	return cmd
}

func runResolve(cmd *cobra.Command, root *rootOptions, o *resolveOptions, startFile string) error {
	ctx := cmd.Context()
	rt, err := newRuntime(cmd, root)
	if err != nil {
		return err
	}
	defer rt.Close(ctx)

	seeds := append([]string(nil), o.seeds...)
	var snippetBody string
	if !o.noSnippet {
		extract := rt.snippetSeeds
		if o.stage {
			extract = rt.service.SeedsFromSnippet
		}
		body, snippetSeeds, err := extract(ctx, startFile)
		if err != nil {
			return err
		}
		snippetBody = body
		seeds = append(seeds, snippetSeeds...)
	}
	if o.stage && snippetBody == "" {
		return errors.WithPath(nil, errors.CodeNoSnippetFound, "staging needs a #Preview snippet in the start file", startFile)
	}

	res, err := rt.service.Resolve(ctx, rt.request(startFile, seeds))
	if err != nil {
		return err
	}

	output := rt.paths.OutputPath
	if o.output != "" {
		output = o.output
	}
	if output != "" {
		if err := util.WriteStringAtomic(output, res.GeneratedSource, 0o644); err != nil {
			return errors.WithPath(err, errors.CodeInternal, "write generated source", output)
		}
	}

	var ws *coreapp.Workspace
	if o.stage {
		ws, err = coreapp.Stage(rt.paths.WorkspaceRoot, res, snippetBody)
		if err != nil {
			return err
		}
	}

	if o.json {
		return writeJSON(cmd.OutOrStdout(), newResolveSummary(res, output, ws))
	}
	if output == "" {
		fmt.Fprint(cmd.OutOrStdout(), res.GeneratedSource)
	}
	fmt.Fprint(cmd.ErrOrStderr(), renderResolveSummary(res, output, ws))
	return nil
}

// snippetSeeds returns the start file's preview seeds. A file without a
// snippet yields none; a malformed snippet is an error.
func (rt *runtime) snippetSeeds(ctx context.Context, path string) (string, []string, error) {
	body, seeds, err := rt.service.SeedsFromSnippet(ctx, path)
	if err != nil && optionalSnippet(err) {
		rt.logger.Debug("no snippet seeds", "path", path, "error", err)
		return "", nil, nil
	}
	return body, seeds, err
}

// optionalSnippet reports snippet errors a plain resolve tolerates. A missing
// start file is left for Resolve to report as unreadable.
func optionalSnippet(err error) bool {
	switch errors.CodeOf(err) {
	case errors.CodeNoSnippetFound, errors.CodeSnippetFileNotFound:
		return true
	}
	return false
}
