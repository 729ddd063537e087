package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"portfolio/pkg/blog"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List the posts of the content directory, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		posts, err := blog.Load(os.DirFS(config.ContentPath()), config.LoaderOptions())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tSLUG\tTITLE\tTAGS")
		for _, p := range posts.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Date, p.Slug, p.Title, strings.Join(p.Tags, ","))
		}
		return w.Flush()
	},
}
