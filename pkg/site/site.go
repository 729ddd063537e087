// Package site composes the portfolio's pages from a post collection and
// renders them, either per request (Server) or into a directory (Pipeline).
package site

import (
	"net/url"
	"path"

	"portfolio/pkg/blog"
	"portfolio/pkg/markdown"
)

// Site holds everything needed to render a page except the posts, which
// come from the current snapshot.
type Site struct {
	Title       string
	Description string
	Author      Author
	BaseURL     *url.URL
	RecentPosts int
	Theme       *Theme
	Markdown    *markdown.Renderer
	Experience  Experience

	ProfileImage *url.URL
	Skills       []Skill

	// SyntaxCSS is the chroma stylesheet served as `static/syntax.css`.
	SyntaxCSS []byte
}

type Author struct {
	Name  string `mapstructure:"name"`
	Email string `mapstructure:"email"`
}

// Skill is a category of the home page's skills section.
type Skill struct {
	Category string   `mapstructure:"category"`
	Items    []string `mapstructure:"items"`
}

// Path returns the root-relative path of `elem` below the site root.
func (s *Site) Path(elem ...string) string {
	return path.Join(append([]string{"/", s.BaseURL.Path}, elem...)...)
}

// URL returns the absolute URL of `elem` below the site root.
func (s *Site) URL(elem ...string) string {
	u := *s.BaseURL
	u.Path = s.Path(elem...)
	u.RawPath = ""
	return u.String()
}

// ProfileImageURL resolves the profile image against the site root. It is
// empty when no image is configured.
func (s *Site) ProfileImageURL() string {
	switch {
	case s.ProfileImage == nil:
		return ""
	case s.ProfileImage.IsAbs() || s.ProfileImage.Host != "":
		return s.ProfileImage.String()
	default:
		return s.Path(s.ProfileImage.Path)
	}
}

func (s *Site) PostPath(slug string) string { return s.Path("blog", slug) }

// TagPath is the route of a tag's page, keyed by blog.TagKey.
func (s *Site) TagPath(tag string) string { return s.Path("blog", "tags", blog.TagKey(tag)) }
