package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/biocrayon/pkg/colormap"
)

func (a *app) newCommunityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "community",
		Short: "Manage community colormap packs",
		Long: `Manage community colormap packs.

Packs live under the community directory as <category>/<name>.json, optionally
compressed (.json.gz, .json.xz, .json.bz2). Community packs must carry
collection metadata.`,
	}
	cmd.AddCommand(a.newCommunityListCmd(), a.newCommunityLoadCmd(), a.newCommunityImportCmd())
	return cmd
}

func (a *app) newCommunityListCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed community packs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			packs, err := a.community().List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, packs)
			}
			if len(packs) == 0 {
				fmt.Fprintf(out, "No community packs found in %s.\n", a.cfg.CommunityDir)
				return nil
			}
			table := NewTable([]string{"CATEGORY", "NAME", "PATH"})
			for _, p := range packs {
				table.AddRow([]string{p.Category, p.Name, p.Path})
			}
			fmt.Fprint(out, table.Render())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func (a *app) newCommunityLoadCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "load <category> <name>",
		Short: "Load a community pack and list its colormaps",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.community().Load(args[0], args[1], colormap.WithLogger(a.logger))
			if err != nil {
				return err
			}
			return a.writeList(cmd, c, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func (a *app) newCommunityImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <bundle>",
		Short: "Install community packs from an archive",
		Long: `Install community packs from an archive.

Archive members laid out as <category>/<name>.json[.gz|.xz|.bz2] are extracted
into the community directory. Each pack is validated with metadata required;
packs that fail are removed and reported. Supported archives: .tar, .tar.gz,
.tgz, .tar.xz, .txz, .tar.bz2, .tbz2, .zip.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			packs, err := a.community().Import(args[0])
			if !a.quiet {
				for _, p := range packs {
					fmt.Fprintf(cmd.OutOrStdout(), "Installed %s/%s\n", p.Category, p.Name)
				}
			}
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			return nil
		},
	}
	return cmd
}
