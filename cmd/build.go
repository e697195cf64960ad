package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/karnival/limonite/internal/build"
	"github.com/karnival/limonite/internal/model"
)

// buildCmd builds a set of posts and lists them in publication order.
var buildCmd = &cobra.Command{
	Use:   "build <post>...",
	Short: "Builds posts and prints one summary line per post",
	Long: `The build command builds every given post file concurrently, sorts the
results by date and sequence and prints a summary of each. Files that fail to
build are reported individually; the others are still built.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := newBuilder()
		if err != nil {
			return err
		}

		posts, buildErr := b.Posts(cmd.Context(), args)
		sort.SliceStable(posts, func(i, j int) bool { return model.Less(posts[i], posts[j]) })

		out := cmd.OutOrStdout()
		for _, p := range posts {
			fmt.Fprintf(out, "%s\t%03d\t%s\t%s\t%s\n", p.Date, p.Sequence, p.RelativeURL, p.Title, p.SourcePath)
		}

		if buildErr == nil {
			logger.Info("build completed", "posts", len(posts))
			return nil
		}
		failures := failedFiles(buildErr)
		for _, fe := range failures {
			fmt.Fprintf(cmd.ErrOrStderr(), "failed: %s: %v\n", fe.Path, fe.Err)
		}
		return fmt.Errorf("%d of %d posts failed to build", len(failures), len(args))
	},
}

func failedFiles(err error) []*build.FileError {
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		var fe *build.FileError
		if errors.As(err, &fe) {
			return []*build.FileError{fe}
		}
		return nil
	}
	var out []*build.FileError
	for _, e := range joined.Unwrap() {
		var fe *build.FileError
		if errors.As(e, &fe) {
			out = append(out, fe)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
