package site

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/tailscale/hujson"

	"portfolio/pkg/blog"
)

// View names a page kind. Each view is a key of the theme manifest.
type View string

const (
	ViewHome       View = "home"
	ViewBlog       View = "blog"
	ViewPost       View = "post"
	ViewTag        View = "tag"
	ViewExperience View = "experience"
	ViewNotFound   View = "notFound"
)

var views = []View{
	ViewHome,
	ViewBlog,
	ViewPost,
	ViewTag,
	ViewExperience,
	ViewNotFound,
}

// ThemeManifest is looked up at the root of a theme directory. It maps
// every view to the template files it is parsed from; the first file is the
// one executed.
const ThemeManifest = "theme.jsonc"

type Theme struct {
	templates map[View]*template.Template

	// Assets is the theme's `static/` directory, copied or served under
	// `/static/`. It is nil when the theme has none.
	Assets fs.FS
}

//go:embed theme
var defaultTheme embed.FS

// DefaultTheme is the theme built into the binary.
func DefaultTheme() (*Theme, error) {
	dir, err := fs.Sub(defaultTheme, "theme")
	if err != nil {
		return nil, fmt.Errorf("loading default theme: %w", err)
	}
	return LoadTheme(dir)
}

func LoadTheme(dir fs.FS) (theme *Theme, err error) {
	var data []byte
	var manifest map[View][]string
	theme = &Theme{templates: make(map[View]*template.Template, len(views))}

	if data, err = fs.ReadFile(dir, ThemeManifest); err != nil {
		goto ERROR
	}
	if data, err = hujson.Standardize(data); err != nil {
		goto ERROR
	}
	if err = json.Unmarshal(data, &manifest); err != nil {
		goto ERROR
	}

	for _, view := range views {
		files := manifest[view]
		if len(files) < 1 {
			err = fmt.Errorf("%w: `%s`", ErrMissingView, view)
			goto ERROR
		}
		var t *template.Template
		if t, err = parse(dir, files...); err != nil {
			err = fmt.Errorf("view `%s`: %w", view, err)
			goto ERROR
		}
		theme.templates[view] = t
	}

	if _, err = fs.Stat(dir, "static"); err == nil {
		if theme.Assets, err = fs.Sub(dir, "static"); err != nil {
			goto ERROR
		}
	} else if errors.Is(err, fs.ErrNotExist) {
		err = nil
	} else {
		goto ERROR
	}
	return

ERROR:
	err = fmt.Errorf("loading theme: %w", err)
	theme = nil
	return
}

// Execute renders `page` with the template of its view.
func (theme *Theme) Execute(w io.Writer, page *Page) error {
	t, ok := theme.templates[page.View]
	if !ok {
		return fmt.Errorf("rendering page `%s`: %w: `%s`", page.Path, ErrMissingView, page.View)
	}
	if err := t.Execute(w, page); err != nil {
		return fmt.Errorf("rendering page `%s`: %w", page.Path, err)
	}
	return nil
}

func parse(fs fs.FS, templates ...string) (*template.Template, error) {
	return template.New(templates[0]).
		Funcs(template.FuncMap{
			"cardDate":   func(d blog.Date) string { return d.Format(CardDateLayout) },
			"longDate":   func(d blog.Date) string { return d.Format(ArticleDateLayout) },
			"isoDate":    func(d blog.Date) string { return d.Format("2006-01-02") },
			"startswith": strings.HasPrefix,
			"join":       strings.Join,
		}).
		ParseFS(fs, templates...)
}

// Date layouts of post summaries and of the article header.
const (
	CardDateLayout    = "Jan 02, 2006"
	ArticleDateLayout = "January 02, 2006"
)

var ErrMissingView = errors.New("theme has no template for view")
