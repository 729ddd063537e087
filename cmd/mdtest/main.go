// Command mdtest renders a post with the site renderer and with a reference
// CommonMark implementation, for comparing their output by eye or by diff.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	commonmark "gitlab.com/golang-commonmark/markdown"

	"portfolio/pkg/blog"
	"portfolio/pkg/markdown"
)

var (
	renderer  string
	untrusted bool
)

var rootCmd = &cobra.Command{
	Use:          "mdtest POST.md",
	Short:        "Render a post with the site renderer and a CommonMark reference",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		post, err := blog.ParsePost(data, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch renderer {
		case "site":
			_, err = fmt.Fprintln(out, renderSite(&post))
		case "reference":
			err = renderReference(out, &post)
		case "both":
			fmt.Fprintln(out, "<!-- site -->")
			fmt.Fprintln(out, renderSite(&post))
			fmt.Fprintln(out, "<!-- reference -->")
			err = renderReference(out, &post)
		default:
			return fmt.Errorf("unknown renderer `%s`", renderer)
		}
		if err != nil {
			return fmt.Errorf("rendering `%s`: %w", args[0], err)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&renderer, "renderer", "r", "both", "site, reference or both")
	rootCmd.Flags().BoolVar(&untrusted, "untrusted", false, "sanitize the site renderer's output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func renderSite(post *blog.Post) string {
	r := markdown.New(markdown.Config{
		PostURL:   func(slug string) string { return "/blog/" + slug },
		Untrusted: untrusted,
	})
	return string(r.Render(post.Content))
}

func renderReference(w io.Writer, post *blog.Post) error {
	md := commonmark.New(commonmark.HTML(true), commonmark.Tables(true), commonmark.Linkify(true))
	if err := md.Render(w, []byte(post.Content)); err != nil {
		return fmt.Errorf("reference renderer: %w", err)
	}
	_, err := fmt.Fprintln(w)
	return err
}
