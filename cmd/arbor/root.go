package main

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/arbor/internal/version"
	"github.com/arthur-debert/arbor/pkg/arbor"
	"github.com/arthur-debert/arbor/pkg/cobrax/topics"
	"github.com/arthur-debert/arbor/pkg/config"
	"github.com/arthur-debert/arbor/pkg/logging"
)

//go:embed docs
var docsFS embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity  int
		colorMode  string
		maxDepth   int
		noTiming   bool
		configPath string
	)

	rootCmd := &cobra.Command{
		Use:   "arbor",
		Short: "Arborescent console output",
		Long: `arbor renders console output as a tree that follows the structure of
your code: nested sections with per-section elapsed times, optional color,
and capture of third-party output into the same hierarchy.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			tree := arbor.Default()

			var cfg *config.File
			var err error
			if configPath != "" {
				cfg, err = config.LoadFrom(configPath)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return err
			}
			if err := cfg.Apply(tree); err != nil {
				return err
			}

			// Flags win over the config file
			if cmd.Flags().Changed("color") {
				mode, err := arbor.ParseColorMode(colorMode)
				if err != nil {
					return err
				}
				tree.SetColorMode(mode)
			}
			if cmd.Flags().Changed("max-depth") {
				tree.SetMaxDepth(maxDepth)
			}
			if noTiming {
				tree.SetTiming(false)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "Color output: auto, always, never")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", arbor.Unlimited, "Deepest visible nesting level (negative for unlimited)")
	rootCmd.PersistentFlags().BoolVar(&noTiming, "no-timing", false, "Suppress elapsed-time lines")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is "+config.Path()+")")

	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(manCmd)

	// Topic-based help rendered with glamour
	docs, err := fs.Sub(docsFS, "docs")
	if err == nil {
		if topicErr := topics.InitializeWithOptions(rootCmd, docs, topics.Options{
			Renderer: topics.NewGlamourRenderer(),
		}); topicErr != nil {
			log.Warn().Err(topicErr).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print version information for arbor`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("arbor version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

var manCmd = &cobra.Command{
	Use:   "man",
	Short: "Generate man pages",
	Long:  `Generate man pages for arbor`,
	RunE: func(cmd *cobra.Command, args []string) error {
		header := &doc.GenManHeader{
			Title:   "ARBOR",
			Section: "1",
		}
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		return doc.GenManTree(cmd.Root(), header, dir)
	},
}
