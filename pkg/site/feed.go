package site

import (
	"io"

	"github.com/gorilla/feeds"

	"portfolio/pkg/blog"
	"portfolio/pkg/markdown"
)

// FeedFormat is one serialization of the site feed.
type FeedFormat struct {
	// Path is relative to the site root.
	Path        string
	ContentType string
	Write       func(*feeds.Feed, io.Writer) error
}

var FeedFormats = []FeedFormat{
	{Path: "feed.json", ContentType: "application/feed+json", Write: (*feeds.Feed).WriteJSON},
	{Path: "rss.xml", ContentType: "application/rss+xml", Write: (*feeds.Feed).WriteRss},
	{Path: "atom.xml", ContentType: "application/atom+xml", Write: (*feeds.Feed).WriteAtom},
}

// BuildFeed builds the site feed from `posts`, which are expected newest
// first.
func (s *Site) BuildFeed(posts []blog.Post) *feeds.Feed {
	feed := feeds.Feed{
		Title:       s.Title,
		Link:        &feeds.Link{Href: s.URL()},
		Description: s.Description,
		Author:      &feeds.Author{Name: s.Author.Name, Email: s.Author.Email},
		Id:          s.URL(),
		Items:       make([]*feeds.Item, len(posts)),
	}
	if len(posts) > 0 {
		feed.Updated = posts[0].Date.Time()
		feed.Created = posts[len(posts)-1].Date.Time()
	}
	for i := range posts {
		feed.Items[i] = s.feedItem(&posts[i])
	}
	return &feed
}

func (s *Site) feedItem(p *blog.Post) *feeds.Item {
	author := feeds.Author{Name: p.Author}
	if author.Name == "" {
		author = feeds.Author{Name: s.Author.Name, Email: s.Author.Email}
	}
	link := s.URL("blog", p.Slug)
	return &feeds.Item{
		Title:       p.Title,
		Link:        &feeds.Link{Href: link},
		Id:          link,
		Author:      &author,
		Created:     p.Date.Time(),
		Description: s.description(p),
	}
}

// description is the post's excerpt, or else the leading part of its body.
func (s *Site) description(p *blog.Post) string {
	if p.Excerpt != "" {
		return p.Excerpt
	}
	return string(markdown.Snippet(s.Markdown.Render(p.Content)))
}
