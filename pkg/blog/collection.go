package blog

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"
)

type Options struct {
	// IncludeDrafts keeps posts whose frontmatter sets `draft: true`.
	IncludeDrafts bool
}

// Collection is an immutable, ordered set of posts. Posts are sorted newest
// first; posts sharing a date are ordered by slug.
type Collection struct {
	posts  []Post
	bySlug map[string]int
	byTag  map[string][]int
	tags   []string
}

// Load reads every post under the root of `fsys` and builds a collection.
// Every malformed post is reported in the returned error, and any error
// fails the whole load. A missing root is an empty collection.
func Load(fsys fs.FS, opts Options) (*Collection, error) {
	var posts []Post
	var errs []error
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == "." && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			if p != "." && isHidden(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if isHidden(d.Name()) || !isPost(d.Name()) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading post `%s`: %w", p, err)
		}
		post, err := ParsePost(data, p)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if post.Draft && !opts.IncludeDrafts {
			slog.Debug("skipping draft", "path", p)
			return nil
		}
		posts = append(posts, post)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading posts: %w", err)
	}

	c, err := NewCollection(posts)
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("loading posts: %w", errors.Join(errs...))
	}
	return c, nil
}

// NewCollection orders and indexes `posts`. Two posts with the same slug are
// an error.
func NewCollection(posts []Post) (*Collection, error) {
	c := Collection{
		posts:  slices.Clone(posts),
		bySlug: make(map[string]int, len(posts)),
		byTag:  make(map[string][]int),
	}
	slices.SortStableFunc(c.posts, comparePosts)

	var errs []error
	for i := range c.posts {
		p := &c.posts[i]
		if j, found := c.bySlug[p.Slug]; found {
			errs = append(errs, fmt.Errorf(
				"%w `%s`: `%s` and `%s`",
				ErrDuplicateSlug,
				p.Slug,
				c.posts[j].Path,
				p.Path,
			))
			continue
		}
		c.bySlug[p.Slug] = i
		for _, tag := range p.Tags {
			key := TagKey(tag)
			if key == "" {
				continue
			}
			idx, found := c.byTag[key]
			if !found {
				c.tags = append(c.tags, tag)
			}
			// a post lists a tag once, whatever its spellings
			if len(idx) > 0 && idx[len(idx)-1] == i {
				continue
			}
			c.byTag[key] = append(idx, i)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &c, nil
}

// All returns every post, newest first.
func (c *Collection) All() []Post {
	if c == nil {
		return nil
	}
	return slices.Clone(c.posts)
}

// Recent returns at most `n` of the newest posts.
func (c *Collection) Recent(n int) []Post {
	if c == nil || n <= 0 {
		return nil
	}
	return slices.Clone(c.posts[:min(n, len(c.posts))])
}

// BySlug looks up a post. A missing slug reports false.
func (c *Collection) BySlug(slug string) (Post, bool) {
	if c == nil {
		return Post{}, false
	}
	i, found := c.bySlug[slug]
	if !found {
		return Post{}, false
	}
	return c.posts[i], true
}

// Neighbors returns the posts immediately newer and older than the post with
// the given slug. Either may be nil.
func (c *Collection) Neighbors(slug string) (newer, older *Post) {
	if c == nil {
		return nil, nil
	}
	i, found := c.bySlug[slug]
	if !found {
		return nil, nil
	}
	if i > 0 {
		p := c.posts[i-1]
		newer = &p
	}
	if i < len(c.posts)-1 {
		p := c.posts[i+1]
		older = &p
	}
	return newer, older
}

// Tags returns each distinct tag once, in the spelling of its first use
// (walking newest to oldest).
func (c *Collection) Tags() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.tags)
}

// Tagged returns the posts carrying a tag with the same TagKey as `tag`,
// newest first.
func (c *Collection) Tagged(tag string) []Post {
	if c == nil {
		return nil
	}
	idx := c.byTag[TagKey(tag)]
	if len(idx) == 0 {
		return nil
	}
	posts := make([]Post, len(idx))
	for i, j := range idx {
		posts[i] = c.posts[j]
	}
	return posts
}

func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.posts)
}

func comparePosts(a, b Post) int {
	if n := b.Date.Compare(a.Date); n != 0 {
		return n
	}
	return strings.Compare(a.Slug, b.Slug)
}

func isPost(name string) bool {
	for _, ext := range Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}
