package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var layoutFile string

// renderCmd renders a single post, optionally wrapped in a layout.
var renderCmd = &cobra.Command{
	Use:   "render <post>",
	Short: "Renders one post to stdout",
	Long: `The render command builds a single post and prints its HTML. With
--layout the post is merged into that layout template first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := newBuilder()
		if err != nil {
			return err
		}

		post, err := b.Post(args[0])
		if err != nil {
			return err
		}

		html := post.Content
		if layoutFile != "" {
			layout, err := b.Layout(layoutFile)
			if err != nil {
				return err
			}
			if layout.Parent != "" {
				logger.Debug("layout has a parent, only the named layout is applied", "layout", layout.Name, "parent", layout.Parent)
			}
			if html, err = b.Render(post, layout); err != nil {
				return err
			}
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), html)
		return err
	},
}

func init() {
	renderCmd.Flags().StringVarP(&layoutFile, "layout", "l", "", "layout template to wrap the post in")
	rootCmd.AddCommand(renderCmd)
}
