package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/biocrayon/pkg/colormap"
)

func (a *app) newListCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the colormaps in a collection",
		Long: `List every colormap in a collection, in file order.

Examples:
  # List colormaps in a file
  biocrayon list -f colormaps.json

  # List colormaps in a community pack as JSON
  biocrayon list -p immune/human --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.open()
			if err != nil {
				return err
			}
			return a.writeList(cmd, c, asJSON)
		},
	}
	a.addSourceFlags(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

// writeList prints a summary of every colormap in c.
func (a *app) writeList(cmd *cobra.Command, c *colormap.Collection, asJSON bool) error {
	out := cmd.OutOrStdout()
	infos := make([]colormap.Info, 0, c.Len())
	for _, name := range c.ListColormaps() {
		info, err := c.GetColormapInfo(name)
		if err != nil {
			return err
		}
		infos = append(infos, info)
	}

	if asJSON {
		return printJSON(out, infos)
	}
	if len(infos) == 0 {
		fmt.Fprintln(out, "No colormaps found.")
		return nil
	}

	if md, ok := c.GetMetadata(); ok {
		fmt.Fprintf(out, "%s %s\n\n", md.Name, md.Version)
	}
	table := NewTable([]string{"NAME", "TYPE", "COLORS", "DESCRIPTION"})
	table.SetColumnMaxWidth(3, 50)
	for _, info := range infos {
		table.AddRow([]string{info.Name, string(info.Kind), strconv.Itoa(info.Colors), info.Description})
	}
	fmt.Fprint(out, table.Render())
	return nil
}

func (a *app) newInfoCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "info <colormap>",
		Short: "Describe a colormap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.open()
			if err != nil {
				return err
			}
			info, err := c.GetColormapInfo(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), info)
			}
			cm, err := c.GetColormap(args[0])
			if err != nil {
				return err
			}
			a.writeInfo(cmd, cmd.OutOrStdout(), info, cm)
			return nil
		},
	}
	a.addSourceFlags(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func (a *app) writeInfo(cmd *cobra.Command, out io.Writer, info colormap.Info, cm colormap.Colormap) {
	fmt.Fprintf(out, "Name:        %s\n", info.Name)
	fmt.Fprintf(out, "Type:        %s\n", info.Kind)
	if info.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", info.Description)
	}
	fmt.Fprintf(out, "Colors:      %d\n", info.Colors)

	switch m := cm.(type) {
	case *colormap.Categorical:
		fmt.Fprintln(out)
		table := NewTable([]string{"CATEGORY", "COLOR", ""})
		for _, cat := range m.Categories() {
			hex, _ := m.Color(cat)
			table.AddRow([]string{cat, hex, a.sample(cmd, hex)})
		}
		fmt.Fprint(out, table.Render())

	case *colormap.Continuous:
		lo, hi, declared := m.Range()
		source := "positions"
		if declared {
			source = "declared"
		}
		fmt.Fprintf(out, "Range:       %g to %g (%s)\n", lo, hi, source)
		positions := make([]string, 0, m.Len())
		for _, p := range m.Positions() {
			positions = append(positions, strconv.FormatFloat(p, 'g', -1, 64))
		}
		fmt.Fprintf(out, "Positions:   %s\n", strings.Join(positions, ", "))
		fmt.Fprintf(out, "Stops:       %s\n", strings.Join(m.Colors(), ", "))
		if s := a.strip(cmd, m.Colors()); s != "" {
			fmt.Fprintf(out, "             %s\n", s)
		}
	}
}
