package main

import (
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/arbor/pkg/arbor"
)

func newDemoCmd() *cobra.Command {
	var withCapture bool

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Render a sample output tree",
		Long: `Render a sample tree showing sections, nested prints, timing lines
and depth truncation. With --capture, output from a third-party printer is
folded into the tree as well.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(arbor.Default(), withCapture)
		},
	}
	demoCmd.Flags().BoolVar(&withCapture, "capture", false, "Fold third-party output into the tree")

	return demoCmd
}

func runDemo(tree *arbor.Tree, withCapture bool) error {
	return tree.In("building demo site", func() error {
		if err := tree.Print("3 pages, 12 assets"); err != nil {
			return err
		}

		err := tree.In("rendering pages", func() error {
			for _, page := range []string{"index.html", "about.html", "contact.html"} {
				time.Sleep(2 * time.Millisecond)
				if err := tree.Printf("rendered %s", page); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		err = tree.In("optimizing assets", func() error {
			return tree.In("compressing images", func() error {
				time.Sleep(5 * time.Millisecond)
				return tree.Print("12 images, saved 340KB")
			})
		})
		if err != nil {
			return err
		}

		if withCapture {
			return tree.In("running external tool", func() error {
				return tree.Captured(func() error {
					// pterm resolves os.Stdout per call, so its output
					// lands in the capture pipe
					pterm.Info.WithWriter(os.Stdout).Println("external tool starting")
					pterm.Success.WithWriter(os.Stdout).Println("external tool finished")
					return nil
				})
			})
		}
		return nil
	})
}
