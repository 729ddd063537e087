package site

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/pkg/blog"
	"portfolio/pkg/markdown"
)

func testSite(t *testing.T, base string) *Site {
	t.Helper()
	theme, err := DefaultTheme()
	require.NoError(t, err)
	baseURL, err := url.Parse(base)
	require.NoError(t, err)

	s := &Site{
		Title:       "Test Site",
		Description: "Notes and work",
		Author:      Author{Name: "Site Author", Email: "author@example.com"},
		BaseURL:     baseURL,
		Theme:       theme,
		SyntaxCSS:   []byte(".chroma { color: red }\n"),
		Experience: Experience{
			Positions: []Position{{
				Title:        "Senior Engineer",
				Company:      "Acme Corp",
				Period:       "2021 - Present",
				Technologies: []string{"Go", "Postgres"},
				Achievements: []string{"Shipped the thing"},
			}},
			Education: []Education{{Degree: "BSc Computer Science", School: "State University"}},
		},
	}
	s.Markdown = markdown.New(markdown.Config{PostURL: s.PostPath})
	return s
}

func postSource(title, date, excerpt string, tags ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "---\ntitle: %s\ndate: %s\n", title, date)
	if excerpt != "" {
		fmt.Fprintf(&b, "excerpt: %s\n", excerpt)
	}
	if len(tags) > 0 {
		fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(tags, ", "))
	}
	fmt.Fprintf(&b, "---\n\nThe body of %s.\n\n```go\nfunc main() {}\n```\n", title)
	return b.String()
}

// fiveFS holds five posts; newest first they are delta, echo, bravo,
// charlie, alpha.
func fiveFS() fstest.MapFS {
	return fstest.MapFS{
		"alpha.md":   {Data: []byte(postSource("Alpha Post", "2024-01-01", "first"))},
		"bravo.md":   {Data: []byte(postSource("Bravo Post", "2024-03-01", ""))},
		"charlie.md": {Data: []byte(postSource("Charlie Post", "2024-02-01", "", "go"))},
		"delta.md":   {Data: []byte(postSource("Delta Post", "2024-05-01", "latest", "go", "web"))},
		"echo.md":    {Data: []byte(postSource("Echo Post", "2024-04-01", ""))},
	}
}

func fivePosts(t *testing.T) *blog.Collection {
	t.Helper()
	c, err := blog.Load(fiveFS(), blog.Options{})
	require.NoError(t, err)
	return c
}

func slugs(cards []Card) []string {
	out := make([]string, len(cards))
	for i := range cards {
		out[i] = cards[i].Slug
	}
	return out
}

func execute(t *testing.T, s *Site, page *Page) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, s.Theme.Execute(&buf, page))
	return buf.String()
}

func TestPaths(t *testing.T) {
	s := testSite(t, "https://example.com/")
	assert.Equal(t, "/", s.Path())
	assert.Equal(t, "/blog/delta", s.PostPath("delta"))
	assert.Equal(t, "/blog/tags/go", s.TagPath("go"))
	assert.Equal(t, "https://example.com/feed.json", s.URL("feed.json"))

	s = testSite(t, "https://example.com/sub/")
	assert.Equal(t, "/sub", s.Path())
	assert.Equal(t, "/sub/blog/delta", s.PostPath("delta"))
	assert.Equal(t, "https://example.com/sub/blog/delta", s.URL("blog", "delta"))
}

func TestHomePageShowsThreeMostRecent(t *testing.T) {
	s := testSite(t, "https://example.com/")
	page := s.HomePage(fivePosts(t))

	if diff := cmp.Diff([]string{"delta", "echo", "bravo"}, slugs(page.Posts)); diff != "" {
		t.Fatalf("unexpected home posts (-want +got):\n%s", diff)
	}

	out := execute(t, s, page)
	delta := strings.Index(out, "Delta Post")
	echo := strings.Index(out, "Echo Post")
	bravo := strings.Index(out, "Bravo Post")
	require.True(t, delta >= 0 && echo >= 0 && bravo >= 0, out)
	assert.Less(t, delta, echo)
	assert.Less(t, echo, bravo)
	assert.NotContains(t, out, "Charlie Post")
	assert.NotContains(t, out, "Alpha Post")
	assert.Contains(t, out, "May 01, 2024")
}

func TestHomePageRecentCount(t *testing.T) {
	s := testSite(t, "https://example.com/")
	s.RecentPosts = 1
	assert.Equal(t, []string{"delta"}, slugs(s.HomePage(fivePosts(t)).Posts))
}

func TestBlogPage(t *testing.T) {
	s := testSite(t, "https://example.com/")
	page := s.BlogPage(fivePosts(t))

	assert.Equal(t, []string{"delta", "echo", "bravo", "charlie", "alpha"}, slugs(page.Posts))
	out := execute(t, s, page)
	assert.Contains(t, out, `href="/blog/tags/web"`)
	assert.Contains(t, out, `<p class="mt-3 text-zinc-600 dark:text-zinc-400">latest</p>`)
	assert.NotContains(t, out, "No posts yet")
}

func TestBlogPageEmpty(t *testing.T) {
	s := testSite(t, "https://example.com/")
	c, err := blog.NewCollection(nil)
	require.NoError(t, err)

	out := execute(t, s, s.BlogPage(c))
	assert.Contains(t, out, "No posts yet")
}

func TestPostPage(t *testing.T) {
	s := testSite(t, "https://example.com/")
	c := fivePosts(t)

	page, ok := s.PostPage(c, "echo")
	require.True(t, ok)
	assert.Equal(t, "Echo Post", page.Title)
	require.NotNil(t, page.Newer)
	require.NotNil(t, page.Older)
	assert.Equal(t, "delta", page.Newer.Slug)
	assert.Equal(t, "bravo", page.Older.Slug)

	out := execute(t, s, page)
	assert.Contains(t, out, "April 01, 2024")
	assert.Contains(t, out, "The body of Echo Post.")
	assert.Contains(t, out, `<span class="kd">func</span>`)
}

func TestPostPageDescription(t *testing.T) {
	s := testSite(t, "https://example.com/")
	c := fivePosts(t)

	page, ok := s.PostPage(c, "delta")
	require.True(t, ok)
	assert.Equal(t, "latest", page.Description)
	assert.Contains(t, execute(t, s, page), `<meta name="description" content="latest">`)

	// no excerpt falls back to the site description
	page, ok = s.PostPage(c, "echo")
	require.True(t, ok)
	assert.Contains(t, execute(t, s, page), `<meta name="description" content="Notes and work">`)
}

func TestHomePageSkillsAndProfile(t *testing.T) {
	s := testSite(t, "https://example.com/sub/")
	out := execute(t, s, s.HomePage(fivePosts(t)))
	assert.NotContains(t, out, "Technical Skills")
	assert.NotContains(t, out, "Profile photo")

	s.Skills = []Skill{
		{Category: "Backend", Items: []string{"Go", "PostgreSQL"}},
		{Category: "DevOps", Items: []string{"Docker"}},
	}
	s.ProfileImage = &url.URL{Path: "static/profile.jpg"}
	out = execute(t, s, s.HomePage(fivePosts(t)))
	assert.Contains(t, out, "Technical Skills")
	assert.Contains(t, out, "<h3 class=\"font-semibold mb-2\">Backend</h3>")
	assert.Contains(t, out, "Go, PostgreSQL")
	assert.Contains(t, out, `<img src="/sub/static/profile.jpg" alt="Profile photo"`)
}

func TestProfileImageURL(t *testing.T) {
	s := testSite(t, "https://example.com/sub/")
	assert.Equal(t, "", s.ProfileImageURL())

	s.ProfileImage, _ = url.Parse("/images/me.jpg")
	assert.Equal(t, "/sub/images/me.jpg", s.ProfileImageURL())

	s.ProfileImage, _ = url.Parse("https://cdn.example.com/me.jpg")
	assert.Equal(t, "https://cdn.example.com/me.jpg", s.ProfileImageURL())
}

func TestPostPageNotFound(t *testing.T) {
	s := testSite(t, "https://example.com/")
	page, ok := s.PostPage(fivePosts(t), "missing")
	assert.False(t, ok)
	assert.Nil(t, page)
}

func TestTagPage(t *testing.T) {
	s := testSite(t, "https://example.com/")
	c := fivePosts(t)

	page, ok := s.TagPage(c, "GO")
	require.True(t, ok)
	assert.Equal(t, "go", page.Tag)
	assert.Equal(t, []string{"delta", "charlie"}, slugs(page.Posts))
	assert.Contains(t, execute(t, s, page), "Posts tagged &ldquo;go&rdquo;")

	_, ok = s.TagPage(c, "rust")
	assert.False(t, ok)
}

func TestExperiencePage(t *testing.T) {
	s := testSite(t, "https://example.com/")
	out := execute(t, s, s.ExperiencePage())

	assert.Contains(t, out, "Senior Engineer")
	assert.Contains(t, out, "Acme Corp")
	assert.Contains(t, out, "Shipped the thing")
	assert.Contains(t, out, "BSc Computer Science")
	assert.NotContains(t, out, "Nothing here yet")

	s.Experience = Experience{}
	assert.Contains(t, execute(t, s, s.ExperiencePage()), "Nothing here yet")
}

func TestLoadThemeRequiresEveryView(t *testing.T) {
	dir := fstest.MapFS{
		ThemeManifest: {Data: []byte(`{"home": ["home.html"]}`)},
		"home.html":   {Data: []byte(`home`)},
	}
	_, err := LoadTheme(dir)
	assert.ErrorIs(t, err, ErrMissingView)
}

func TestLoadCustomTheme(t *testing.T) {
	dir := fstest.MapFS{
		ThemeManifest: {Data: []byte(`{
			// one template per view
			"home": ["page.html"],
			"blog": ["page.html"],
			"post": ["page.html"],
			"tag": ["page.html"],
			"experience": ["page.html"],
			"notFound": ["page.html"],
		}`)},
		"page.html": {Data: []byte(`{{.View}}:{{range .Posts}}{{.Slug}},{{end}}`)},
	}
	theme, err := LoadTheme(dir)
	require.NoError(t, err)
	assert.Nil(t, theme.Assets)

	s := testSite(t, "https://example.com/")
	s.Theme = theme
	assert.Equal(t, "home:delta,echo,bravo,", execute(t, s, s.HomePage(fivePosts(t))))
}
