package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/biocrayon/internal/loader"
	"github.com/jmylchreest/biocrayon/pkg/ramp"
)

// lookupResult is one resolved key.
type lookupResult struct {
	Key   string `json:"key"`
	Color string `json:"color"`
}

func (a *app) newColorCmd() *cobra.Command {
	var (
		asJSON bool
		output string
	)
	cmd := &cobra.Command{
		Use:   "color <colormap> <key>...",
		Short: "Look up colours for categories or values",
		Long: `Look up the colour for each key in a colormap.

Categorical colormaps take category names. Continuous colormaps take numbers
and interpolate between stops. "nan" marks a missing value.

Examples:
  # Colours for two cell types
  biocrayon color -f colormaps.json cell_types T_cell B_cell

  # Expression values, interpolated in LAB space
  biocrayon color -f colormaps.json expression 0.5 2.5 --lab

  # Assign colours to unknown categories and keep them
  biocrayon color -f colormaps.json cell_types NK --fill-missing -o updated.json`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.open()
			if err != nil {
				return err
			}
			name, keys := args[0], args[1:]
			policy := a.cfg.Policy()
			get := c.GetColor
			if a.cfg.LAB {
				get = c.GetColorLAB
			}

			results := make([]lookupResult, 0, len(keys))
			for _, key := range keys {
				hex, err := get(name, key, policy)
				if err != nil {
					return err
				}
				results = append(results, lookupResult{Key: key, Color: hex})
			}

			if output != "" {
				if err := loader.Save(output, c); err != nil {
					return fmt.Errorf("failed to save %s: %w", output, err)
				}
				a.logger.Info("saved collection", "path", output)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, results)
			}
			table := NewTable([]string{"KEY", "COLOR", ""})
			for _, r := range results {
				table.AddRow([]string{r.Key, r.Color, a.sample(cmd, r.Color)})
			}
			fmt.Fprint(out, table.Render())
			return nil
		},
	}
	a.addSourceFlags(cmd)
	addPolicyFlags(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	cmd.Flags().StringVarP(&output, "output", "o", "", "save the collection, including assigned colours, to this file")
	return cmd
}

func (a *app) newRampCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "ramp <colormap>",
		Short: "Sample a colormap into a colour ramp",
		Long: `Sample a colormap into an ordered list of colours for plotting.

Continuous colormaps are sampled at --steps evenly spaced values across their
range. Categorical colormaps yield one colour per category.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.open()
			if err != nil {
				return err
			}
			r, err := ramp.Build(c, args[0], a.cfg.Steps, a.cfg.LAB)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, r)
			}
			if s := a.strip(cmd, r.Colors); s != "" {
				fmt.Fprintf(out, "%s\n\n", s)
			}
			table := NewTable([]string{"LABEL", "COLOR"})
			for i := range r.Colors {
				table.AddRow([]string{r.Labels[i], r.Colors[i]})
			}
			fmt.Fprint(out, table.Render())
			return nil
		},
	}
	a.addSourceFlags(cmd)
	cmd.Flags().Int("steps", 10, "number of samples for continuous colormaps")
	cmd.Flags().Bool("lab", false, "interpolate in LAB space")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
