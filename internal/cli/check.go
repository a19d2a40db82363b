package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/biocrayon/internal/loader"
	"github.com/jmylchreest/biocrayon/pkg/colorblind"
	"github.com/jmylchreest/biocrayon/pkg/colormap"
)

func (a *app) newValidateCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate colormap collection files",
		Long: `Validate colormap collection files and report every problem found.

Warnings, such as category names that differ only by case, are reported but
do not fail validation.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				doc, err := loader.ReadDocument(path)
				if err != nil {
					fmt.Fprintf(out, "%s: %s\n  - %v\n", path, a.verdict(cmd, false), err)
					failed++
					continue
				}
				errs := colormap.Validate(doc, strict)
				fmt.Fprintf(out, "%s: %s\n", path, a.verdict(cmd, !errs.HasErrors()))
				for _, e := range errs {
					fmt.Fprintf(out, "  - %s\n", e.Error())
				}
				if errs.HasErrors() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed validation", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "require collection metadata")
	return cmd
}

func (a *app) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [colormap]...",
		Short: "Check colormaps for colorblind safety",
		Long: fmt.Sprintf(`Check that colours stay distinguishable under protanopia, deuteranopia
and tritanopia simulation.

Each column reports the smallest delta E between any two colours under that
simulation; a colormap passes when every value is at least %.0f. With no
arguments every colormap in the collection is checked.

Continuous colormaps are judged by %d evenly spaced samples across their
positions, and every pair of samples must clear the same threshold. Smooth
perceptual gradients such as viridis change lightness gradually, so their
neighbouring samples often fall below it and the map is reported unsafe even
though it reads well to colorblind viewers.`, colorblind.MinimumDistance, colormap.ContinuousSamples),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.open()
			if err != nil {
				return err
			}
			names := args
			if len(names) == 0 {
				names = c.ListColormaps()
			}

			headers := []string{"NAME", "SAFE"}
			for _, d := range colorblind.Deficiencies {
				headers = append(headers, strings.ToUpper(d.String()))
			}
			table := NewTable(headers)

			var unsafe []string
			for _, name := range names {
				report, err := c.ColorblindReport(name)
				if err != nil {
					return err
				}
				row := []string{name, a.verdict(cmd, report.Safe())}
				for _, p := range report.Closest {
					row = append(row, fmt.Sprintf("%.1f", p.Distance))
				}
				table.AddRow(row)
				if !report.Safe() {
					unsafe = append(unsafe, name)
				}
				if worst, ok := report.Worst(); ok {
					a.logger.Debug("closest pair", "colormap", name, "deficiency", worst.Deficiency,
						"first", worst.First, "second", worst.Second, "delta_e", worst.Distance)
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), table.Render())

			if len(unsafe) > 0 {
				return fmt.Errorf("not colorblind safe: %s", strings.Join(unsafe, ", "))
			}
			return nil
		},
	}
	a.addSourceFlags(cmd)
	return cmd
}

func (a *app) newSafeCmd() *cobra.Command {
	var (
		n      int
		output string
	)
	cmd := &cobra.Command{
		Use:   "safe <name>",
		Short: "Create a colorblind-safe categorical colormap",
		Long: fmt.Sprintf(`Create a categorical colormap with categories category_0..category_N-1
drawn from a colorblind-safe palette of %d colours.

The colormap is added to the collection given by --file or --pack, or to a new
empty collection. The result is written to --output, or to stdout as JSON.`, len(colorblind.SafePalette)),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := colormap.NewEmpty(colormap.WithLogger(a.logger))
			if a.file != "" || a.pack != "" {
				var err error
				if c, err = a.open(); err != nil {
					return err
				}
			}

			if err := c.CreateColorblindSafeColormap(args[0], n); err != nil {
				var capErr *colormap.CapacityError
				if errors.As(err, &capErr) {
					return fmt.Errorf("%w; use at most %d categories", err, capErr.Available)
				}
				return err
			}

			if output == "" {
				data, err := loader.Marshal(c)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := loader.Save(output, c); err != nil {
				return fmt.Errorf("failed to save %s: %w", output, err)
			}
			if !a.quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %q with %d categories to %s\n", args[0], n, output)
			}
			return nil
		},
	}
	a.addSourceFlags(cmd)
	cmd.Flags().IntVarP(&n, "categories", "n", 5, "number of categories")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the collection to this file")
	return cmd
}

func (a *app) newBioCmd() *cobra.Command {
	var bioType string
	types := make([]string, len(colormap.BioTypes))
	for i, t := range colormap.BioTypes {
		types[i] = string(t)
	}

	cmd := &cobra.Command{
		Use:   "bio <colormap>",
		Short: "Check a colormap against the rules for a kind of biological data",
		Long: fmt.Sprintf(`Check a colormap against the rules for a kind of biological data.

  expression  continuous, end colours at least %.0f delta E apart
  sequence    categorical, at most %d categories
  cell_type   categorical, colours at least %.0f delta E apart`,
			colormap.MinExpressionContrast, colormap.MaxSequenceCategories, colormap.LowContrastDistance),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.open()
			if err != nil {
				return err
			}
			problems, err := c.ValidateBioRequirements(args[0], bioType)
			if err != nil {
				return err
			}
			return a.writeProblems(cmd, fmt.Sprintf("%s as %s", args[0], bioType), problems)
		},
	}
	a.addSourceFlags(cmd)
	cmd.Flags().StringVarP(&bioType, "type", "t", string(colormap.BioExpression), "data type ("+strings.Join(types, ", ")+")")
	return cmd
}

func (a *app) newRangeCmd() *cobra.Command {
	var lo, hi float64
	cmd := &cobra.Command{
		Use:   "range <colormap>",
		Short: "Check that a continuous colormap covers an expression range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.open()
			if err != nil {
				return err
			}
			problems, err := c.ValidateExpressionRange(args[0], lo, hi)
			if err != nil {
				return err
			}
			return a.writeProblems(cmd, fmt.Sprintf("%s over [%g, %g]", args[0], lo, hi), problems)
		},
	}
	a.addSourceFlags(cmd)
	cmd.Flags().Float64Var(&lo, "min", 0, "expected minimum value")
	cmd.Flags().Float64Var(&hi, "max", 1, "expected maximum value")
	return cmd
}

// writeProblems prints a verdict for subject followed by each problem, and
// fails when there are any.
func (a *app) writeProblems(cmd *cobra.Command, subject string, problems []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s\n", subject, a.verdict(cmd, len(problems) == 0))
	for _, p := range problems {
		fmt.Fprintf(out, "  - %s\n", p)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%d problem(s) found", len(problems))
	}
	return nil
}
