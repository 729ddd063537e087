package markdown

import (
	"html/template"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

type Config struct {
	// PostURL returns the route of the post with the given slug. Relative
	// links to `<slug>.md` are rewritten through it. Nil leaves them alone.
	PostURL func(slug string) string

	// Presentation overrides DefaultPresentation.
	Presentation *Presentation

	// Untrusted sanitizes the rendered HTML instead of passing raw markup
	// through.
	Untrusted bool
}

// Renderer converts post bodies to HTML. It holds no per-document state, so
// one Renderer may be shared by concurrent callers.
type Renderer struct {
	config Config
	policy *bluemonday.Policy
}

func New(c Config) *Renderer {
	if c.Presentation == nil {
		c.Presentation = &DefaultPresentation
	}
	r := Renderer{config: c}
	if c.Untrusted {
		r.policy = sanitizer()
	}
	return &r
}

// Render converts a markdown document to HTML. Malformed markdown degrades
// to literal text; rendering never fails.
func (r *Renderer) Render(doc string) template.HTML {
	node := parser.NewWithExtensions(Extensions).Parse([]byte(doc))
	renderer := html.NewRenderer(html.RendererOptions{
		Flags:          html.FlagsNone,
		RenderNodeHook: (&hook{Renderer: r}).render,
	})
	out := markdown.Render(node, renderer)
	if r.policy != nil {
		out = r.policy.SanitizeBytes(out)
	}
	return template.HTML(out)
}

// Extensions enables GFM tables, strikethrough and autolinks along with
// fenced code, heading ids, ordered list start numbers and footnotes.
const Extensions = parser.CommonExtensions |
	parser.AutoHeadingIDs |
	parser.OrderedListStart |
	parser.Footnotes

// destination rewrites links to sibling markdown posts into post routes.
func (r *Renderer) destination(dst string) string {
	if r.config.PostURL == nil || dst == "" {
		return dst
	}
	u, err := url.Parse(dst)
	if err != nil {
		slog.Warn("markdown: invalid link url", "err", err.Error(), "url", dst)
		return dst
	}
	if u.Scheme != "" || u.Host != "" || !isMD(u.Path) {
		return dst
	}
	slug := strings.TrimSuffix(path.Base(u.Path), suffixMarkdown)
	out := r.config.PostURL(slug)
	if u.Fragment != "" {
		out += "#" + u.Fragment
	}
	return out
}

func isMD(p string) bool {
	return strings.HasSuffix(p, suffixMarkdown)
}

func isExternal(dst string) bool {
	u, err := url.Parse(dst)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func isUnsafeURL(dst string) bool {
	s := strings.ToLower(strings.TrimSpace(dst))
	return strings.HasPrefix(s, "javascript:") ||
		strings.HasPrefix(s, "vbscript:") ||
		strings.HasPrefix(s, "data:text/html")
}

// Snippet is the rendered body before the first `<!-- more -->` marker, or
// the first paragraph (capped at 1KiB) when there is no marker.
func Snippet(data template.HTML) template.HTML {
	if idx := strings.Index(string(data), "<!-- more -->"); idx >= 0 {
		return data[:idx]
	} else if idx := strings.Index(string(data), "</p>"); idx >= 0 {
		const max = 1024
		if idx > max {
			idx = max
		}
		return data[:idx] + "</p>"
	}
	return ""
}

func sanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.RequireNoReferrerOnFullyQualifiedLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

const suffixMarkdown = ".md"
