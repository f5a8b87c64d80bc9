package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doxflow/doxflow/pkg/pipeline"
)

// documentCommand creates the document command, which prints the generated
// document without rendering it.
func (c *CLI) documentCommand() *cobra.Command {
	var notation, output string
	var detailed bool

	cmd := &cobra.Command{
		Use:   "document [model]",
		Short: "Print the PlantUML (or DOT) document for a model",
		Example: `  doxflow document contract.yaml
  doxflow document contract.yaml -o contract.puml
  doxflow document contract.yaml --notation dot | dot -Tsvg > contract.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("notation") {
				notation = c.Config.Notation
			}
			return c.runDocument(cmd.Context(), cmd.OutOrStdout(), pipeline.Options{
				Input:    args[0],
				Notation: notation,
				Detailed: detailed,
			}, output)
		},
	}

	cmd.Flags().StringVarP(&notation, "notation", "n", "", "document notation: plantuml (default), dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the document to a file instead of stdout")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show element kinds in node labels (dot)")

	return cmd
}

func (c *CLI) runDocument(ctx context.Context, w io.Writer, opts pipeline.Options, output string) error {
	opts.Logger = loggerFromContext(ctx)

	res, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		return err
	}

	if output == "" {
		_, err := io.WriteString(w, res.Source.Text)
		return err
	}
	if err := os.WriteFile(output, []byte(res.Source.Text), 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Wrote %s document", res.Source.Notation)
	printFile(output)
	return nil
}
