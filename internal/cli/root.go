// Package cli provides the command-line interface for biocrayon.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/biocrayon/internal/config"
	"github.com/jmylchreest/biocrayon/internal/loader"
	"github.com/jmylchreest/biocrayon/internal/version"
	"github.com/jmylchreest/biocrayon/pkg/colormap"
)

// app holds the state shared by one command tree.
type app struct {
	verbose      bool
	quiet        bool
	noColour     bool
	configFile   string
	communityDir string

	// Colormap source, set by commands that read one.
	file   string
	pack   string
	strict bool

	cfg    *config.Config
	logger hclog.Logger
}

// NewRootCmd builds a fresh biocrayon command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: hclog.NewNullLogger()}

	rootCmd := &cobra.Command{
		Use:   "biocrayon",
		Short: "Colormaps for biological data",
		Long: `biocrayon resolves colours from colormap collections for biological data.

Collections are JSON documents holding categorical colormaps (cell types,
tissues, amino acids) and continuous colormaps (expression levels). biocrayon
validates them, looks up colours, checks colorblind safety and applies
domain checks for expression, sequence and cell type data.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: ./biocrayon.yaml or user config dir)")
	rootCmd.PersistentFlags().BoolVar(&a.noColour, "no-colour", false, "disable coloured output and swatches")
	rootCmd.PersistentFlags().StringVar(&a.communityDir, "community-dir", "", "community colormap directory")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newVersionCmd(),
		a.newListCmd(),
		a.newInfoCmd(),
		a.newColorCmd(),
		a.newRampCmd(),
		a.newValidateCmd(),
		a.newCheckCmd(),
		a.newSafeCmd(),
		a.newBioCmd(),
		a.newRangeCmd(),
		a.newCommunityCmd(),
	)
	return rootCmd
}

// setup builds the logger and loads configuration before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level := hclog.Warn
	switch {
	case a.quiet:
		level = hclog.Off
	case a.verbose:
		level = hclog.Debug
	}
	a.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "biocrayon",
		Output: cmd.ErrOrStderr(),
		Level:  level,
	})

	opts := config.Options{File: a.configFile, Flags: cmd.Flags()}
	if opts.File == "" {
		opts.Dirs = config.DefaultDirs()
	}
	cfg, err := config.Load(opts)
	if err != nil {
		return err
	}
	if used := config.Used(opts); used != "" {
		a.logger.Debug("loaded config", "path", used)
	}
	a.cfg = cfg
	return nil
}

// addSourceFlags registers the flags selecting where a collection is read from.
func (a *app) addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&a.file, "file", "f", "", "colormap collection file (.json, .json.gz, .json.xz, .json.bz2)")
	cmd.Flags().StringVarP(&a.pack, "pack", "p", "", "community pack as category/name")
	cmd.Flags().BoolVar(&a.strict, "strict", false, "require collection metadata")
}

// addPolicyFlags registers the lookup flags bound to configuration.
func addPolicyFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("fill-missing", false, "assign colours to unknown categories and use the default colour for missing values")
	cmd.Flags().String("default-color", colormap.DefaultMissingColor, "colour returned for missing values")
	cmd.Flags().Bool("lab", false, "interpolate continuous colormaps in LAB space")
}

func (a *app) community() loader.Community {
	return loader.Community{Root: a.cfg.CommunityDir, Logger: a.logger.Named("community")}
}

// open reads the collection selected by --file or --pack.
func (a *app) open() (*colormap.Collection, error) {
	switch {
	case a.file != "" && a.pack != "":
		return nil, errors.New("--file and --pack are mutually exclusive")
	case a.file != "":
		a.logger.Debug("loading collection", "path", a.file)
		c, err := loader.Load(a.file, colormap.WithRequireMetadata(a.strict), colormap.WithLogger(a.logger))
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", a.file, err)
		}
		return c, nil
	case a.pack != "":
		category, name, ok := strings.Cut(a.pack, "/")
		if !ok {
			return nil, fmt.Errorf("invalid pack %q: expected category/name", a.pack)
		}
		c, err := a.community().Load(category, name, colormap.WithLogger(a.logger))
		if err != nil {
			return nil, fmt.Errorf("failed to load pack %s: %w", a.pack, err)
		}
		return c, nil
	default:
		return nil, errors.New("one of --file or --pack is required")
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
