// Command randmd writes a content directory of random posts, for load
// testing the build and the server.
package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"portfolio/pkg/blog"
)

var (
	count int
	clean bool
)

var rootCmd = &cobra.Command{
	Use:          "randmd DIR",
	Short:        "Generate a directory of random Markdown posts",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		if clean {
			if err := os.RemoveAll(dir); err != nil {
				return err
			}
		}
		if err := randMD(dir, count); err != nil {
			return err
		}
		slog.Info("generated posts", "dir", dir, "count", count)
		return nil
	},
}

func init() {
	rootCmd.Flags().IntVarP(&count, "count", "n", 1_000, "the number of posts")
	rootCmd.Flags().BoolVar(&clean, "clean", false, "remove the directory first")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func randMD(dir string, n int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for i := range n {
		post := randPost(i)
		if err := writePost(filepath.Join(dir, post.Slug+".md"), &post); err != nil {
			return err
		}
	}

	return nil
}

func writePost(path string, post *blog.Post) (err error) {
	var frontmatter []byte
	if frontmatter, err = yaml.Marshal(&post.Frontmatter); err != nil {
		return fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var f *os.File
	if f, err = os.Create(path); err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	for _, data := range [][]byte{
		[]byte("---\n"),
		frontmatter,
		[]byte("---\n\n"),
		[]byte(post.Content),
	} {
		if _, err = f.Write(data); err != nil {
			return fmt.Errorf("writing post file: %w", err)
		}
	}
	return nil
}

func randPost(i int) blog.Post {
	const (
		metadataMin = 10
		metadataMax = 80
	)
	return blog.Post{
		Frontmatter: blog.Frontmatter{
			Title:   randString(metadataMin, metadataMax),
			Author:  randString(metadataMin, metadataMax),
			Excerpt: randString(metadataMin, metadataMax),
			Date: blog.Date(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).
				AddDate(0, 0, rand.IntN(365*25))),
			Tags: randStringSlice(
				0,
				[]string{"go", "web", "devops", "databases", "testing", "career", "rust", "linux"},
			),
		},
		// the index keeps slugs unique
		Slug:    fmt.Sprintf("post-%05d-%s", i, strings.ToLower(randString(5, 12))),
		Content: randBody(),
	}
}

// randBody mixes the block kinds the renderer styles.
func randBody() string {
	var sb strings.Builder
	for range randInt(3, 30) {
		switch rand.IntN(6) {
		case 0:
			fmt.Fprintf(&sb, "## %s\n\n", randString(10, 40))
		case 1:
			fmt.Fprintf(&sb, "```go\nfunc f() string { return %q }\n```\n\n", randString(5, 20))
		case 2:
			fmt.Fprintf(&sb, "- %s\n- [%s](https://example.com/%s)\n\n", randString(5, 30), randString(5, 10), randString(5, 10))
		case 3:
			fmt.Fprintf(&sb, "| a | b |\n|---|---|\n| %s | %s |\n\n", randString(3, 10), randString(3, 10))
		case 4:
			fmt.Fprintf(&sb, "> %s\n\n", randString(20, 200))
		default:
			fmt.Fprintf(&sb, "%s `%s` %s\n\n", randString(50, 500), randString(3, 10), randString(50, 500))
		}
	}
	return sb.String()
}

func randStringSlice(sliceMin int, items []string) []string {
	shuffled := append([]string(nil), items...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:randInt(sliceMin, len(items))]
}

func randInt(min, max int) int {
	return min + rand.IntN(max-min)
}

func randString(min, max int) string {
	buf := make([]byte, randInt(min, max))
	for i := range buf {
		buf[i] = byte(rand.Uint32())
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
