package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doxflow/doxflow/pkg/pipeline"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output   string // destination image; the extension selects svg or png
	notation string // plantuml or dot
	detailed bool   // include element kinds in DOT labels
	print    bool   // also print the generated document
}

// exportCommand creates the export command, which renders a model to an image.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export [model]",
		Short: "Render a model to an SVG or PNG image",
		Long: `Render a model file to an image.

The output format follows the extension of --output (.svg or .png). Without
--output the image is written next to the model as <name>.svg.

PlantUML documents are rendered with the plantuml command; DOT documents are
rendered in-process with Graphviz.`,
		Example: `  doxflow export contract.yaml -o contract.svg
  doxflow export contract.yaml -o contract.png --notation dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("notation") {
				opts.notation = c.Config.Notation
			}
			if opts.output == "" {
				opts.output = defaultOutput(args[0])
			}
			return c.runExport(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output image (.svg or .png)")
	cmd.Flags().StringVarP(&opts.notation, "notation", "n", "", "document notation: plantuml (default), dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show element kinds in node labels (dot)")
	cmd.Flags().BoolVar(&opts.print, "print", false, "print the generated document to stdout")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, w io.Writer, input string, opts exportOpts) error {
	logger := loggerFromContext(ctx)

	popts := pipeline.Options{
		Input:    input,
		Output:   opts.output,
		Notation: opts.notation,
		Detailed: opts.detailed,
		Logger:   logger,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	prog := newProgress(logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", filepath.Base(opts.output)))
	spinner.Start()
	res, err := c.newRunner().Execute(ctx, popts)
	spinner.Stop()
	if err != nil {
		return err
	}

	if opts.print {
		fmt.Fprint(w, res.Source.Text)
	}
	if !res.Export.Rendered {
		return fmt.Errorf("render %s: %w", opts.output, res.Export.Failure)
	}
	prog.done("Rendered " + filepath.Base(opts.output))

	printSuccess("Exported %s", res.Export.Format)
	printFile(res.Export.Path)
	printStats(res.Stats.Roots, res.Stats.Elements, res.Stats.Interactions)
	warnDangling(res.Dangling)
	return nil
}

// defaultOutput derives an image path from the model path.
func defaultOutput(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
}

func warnDangling(names []string) {
	if len(names) == 0 {
		return
	}
	printWarning("%s reference undeclared names", plural(len(names), "interaction endpoint"))
	for _, n := range names {
		printDetail("%s", n)
	}
}
