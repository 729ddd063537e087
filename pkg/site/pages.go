package site

import (
	"html/template"

	"portfolio/pkg/blog"
	"portfolio/pkg/colorscheme"
)

// Page is the data every view template is executed with.
type Page struct {
	View  View
	Title string

	// Description overrides the site description in the page's metadata.
	Description string

	// Path is the root-relative path the page is served at.
	Path string

	// Scheme is the reader's stored color scheme. It is empty when there is
	// none, as in the static export, and the client script decides.
	Scheme colorscheme.Scheme

	Site *Site

	Posts []Card
	Tags  []Link

	Post         *Article
	Newer, Older *Card

	Tag string
}

// Card is a post summary as listed on the home, blog and tag views.
type Card struct {
	blog.Post
	URL  string
	Tags []Link
}

// Article is a post with its rendered body.
type Article struct {
	Card
	Body template.HTML
}

type Link struct {
	Text string
	URL  string
}

// HomePage lists the most recent posts.
func (s *Site) HomePage(c *blog.Collection) *Page {
	return &Page{
		View:  ViewHome,
		Path:  s.Path(),
		Site:  s,
		Posts: s.cards(c.Recent(s.recent())),
	}
}

// BlogPage lists every post, newest first.
func (s *Site) BlogPage(c *blog.Collection) *Page {
	tags := c.Tags()
	links := make([]Link, len(tags))
	for i, tag := range tags {
		links[i] = s.tagLink(tag)
	}
	return &Page{
		View:  ViewBlog,
		Title: "Blog",
		Path:  s.Path("blog"),
		Site:  s,
		Posts: s.cards(c.All()),
		Tags:  links,
	}
}

// PostPage renders the post with the given slug. It reports false when
// there is no such post.
func (s *Site) PostPage(c *blog.Collection, slug string) (*Page, bool) {
	post, ok := c.BySlug(slug)
	if !ok {
		return nil, false
	}
	page := Page{
		View:        ViewPost,
		Title:       post.Title,
		Description: post.Excerpt,
		Path:        s.PostPath(post.Slug),
		Site:        s,
		Post: &Article{
			Card: s.card(&post),
			Body: s.Markdown.Render(post.Content),
		},
	}
	newer, older := c.Neighbors(slug)
	if newer != nil {
		card := s.card(newer)
		page.Newer = &card
	}
	if older != nil {
		card := s.card(older)
		page.Older = &card
	}
	return &page, true
}

// TagPage lists the posts carrying `tag`, which may be the tag itself or
// its key. It reports false when no post carries it.
func (s *Site) TagPage(c *blog.Collection, tag string) (*Page, bool) {
	posts := c.Tagged(tag)
	if len(posts) < 1 {
		return nil, false
	}
	// display the spelling the collection indexed the tag under
	key := blog.TagKey(tag)
	for _, t := range c.Tags() {
		if blog.TagKey(t) == key {
			tag = t
			break
		}
	}
	return &Page{
		View:  ViewTag,
		Title: "Posts tagged " + tag,
		Path:  s.TagPath(tag),
		Site:  s,
		Posts: s.cards(posts),
		Tag:   tag,
	}, true
}

func (s *Site) ExperiencePage() *Page {
	return &Page{
		View:  ViewExperience,
		Title: "Experience",
		Path:  s.Path("experience"),
		Site:  s,
	}
}

// PostNotFoundPage is rendered for a missing post.
func (s *Site) PostNotFoundPage(path string) *Page {
	page := s.NotFoundPage(path)
	page.Title = "Post Not Found"
	return page
}

// NotFoundPage is rendered for unknown routes and missing tags.
func (s *Site) NotFoundPage(path string) *Page {
	return &Page{
		View:  ViewNotFound,
		Title: "Not Found",
		Path:  path,
		Site:  s,
	}
}

func (s *Site) cards(posts []blog.Post) []Card {
	cards := make([]Card, len(posts))
	for i := range posts {
		cards[i] = s.card(&posts[i])
	}
	return cards
}

func (s *Site) card(p *blog.Post) Card {
	card := Card{Post: *p, URL: s.PostPath(p.Slug)}
	if len(p.Tags) > 0 {
		card.Tags = make([]Link, len(p.Tags))
		for i, tag := range p.Tags {
			card.Tags[i] = s.tagLink(tag)
		}
	}
	return card
}

func (s *Site) tagLink(tag string) Link {
	return Link{Text: tag, URL: s.TagPath(tag)}
}

func (s *Site) recent() int {
	if s.RecentPosts > 0 {
		return s.RecentPosts
	}
	return DefaultRecentPosts
}

const DefaultRecentPosts = 3
