package cli

import (
	"context"

	"github.com/spf13/cobra"

	errs "github.com/doxflow/doxflow/pkg/errors"
	"github.com/doxflow/doxflow/pkg/pipeline"
)

// checkCommand creates the check command. It loads a model and reports
// interaction endpoints that no element declares. Those are allowed, so the
// command only fails on them with --strict.
func (c *CLI) checkCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check [model]",
		Short: "Validate a model and list undeclared interaction endpoints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), args[0], strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when interactions reference undeclared names")

	return cmd
}

func (c *CLI) runCheck(ctx context.Context, input string, strict bool) error {
	res, err := c.newRunner().Execute(ctx, pipeline.Options{
		Input:  input,
		Logger: loggerFromContext(ctx),
	})
	if err != nil {
		return err
	}

	if len(res.Dangling) == 0 {
		printSuccess("%s is valid", StyleHighlight.Render(input))
	} else {
		printInfo("%s loaded", StyleHighlight.Render(input))
	}
	printStats(res.Stats.Roots, res.Stats.Elements, res.Stats.Interactions)
	warnDangling(res.Dangling)

	if strict && len(res.Dangling) > 0 {
		return errs.New(errs.ErrCodeInvalidModel, "%s reference undeclared names", plural(len(res.Dangling), "interaction endpoint"))
	}
	printNextStep("Render it", "doxflow export "+input+" -o "+defaultOutput(input))
	return nil
}
