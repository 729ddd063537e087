package site

import (
	"bytes"
	"log/slog"
	"net/http"

	"portfolio/pkg/blog"
	"portfolio/pkg/colorscheme"
)

type server struct {
	store *blog.Store
	site  *Site
}

// NewServer serves the site from the store's current snapshot. Each request
// reads the snapshot once.
func NewServer(store *blog.Store, site *Site) http.Handler {
	s := server{store: store, site: site}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.home)
	mux.HandleFunc("GET /experience", s.experience)
	mux.HandleFunc("GET /blog", s.blog)
	mux.HandleFunc("GET /blog/{slug}", s.post)
	mux.HandleFunc("GET /blog/tags/{tag}", s.tag)
	for _, format := range FeedFormats {
		mux.HandleFunc("GET /"+format.Path, s.feed(format))
	}
	mux.HandleFunc("GET /static/syntax.css", s.syntaxCSS)
	if site.Theme.Assets != nil {
		mux.Handle("GET /static/", http.StripPrefix(
			"/static/",
			http.FileServerFS(site.Theme.Assets),
		))
	}
	mux.Handle("POST /theme", colorscheme.ToggleHandler(colorscheme.Light))
	mux.HandleFunc("/", s.notFound)
	return http.StripPrefix(stripPrefix(site), mux)
}

// stripPrefix is the base URL path without its trailing slash, so routes
// match below a non-root site.
func stripPrefix(site *Site) string {
	if p := site.Path(); p != "/" {
		return p
	}
	return ""
}

func (s *server) home(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, s.site.HomePage(s.store.Snapshot()))
}

func (s *server) experience(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, s.site.ExperiencePage())
}

func (s *server) blog(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, s.site.BlogPage(s.store.Snapshot()))
}

func (s *server) post(w http.ResponseWriter, r *http.Request) {
	page, ok := s.site.PostPage(s.store.Snapshot(), r.PathValue("slug"))
	if !ok {
		missing := s.site.PostNotFoundPage(s.site.Path(r.URL.Path))
		s.render(w, r, http.StatusNotFound, missing)
		return
	}
	s.render(w, r, http.StatusOK, page)
}

func (s *server) tag(w http.ResponseWriter, r *http.Request) {
	page, ok := s.site.TagPage(s.store.Snapshot(), r.PathValue("tag"))
	if !ok {
		s.notFound(w, r)
		return
	}
	s.render(w, r, http.StatusOK, page)
}

func (s *server) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, s.site.NotFoundPage(s.site.Path(r.URL.Path)))
}

func (s *server) feed(format FeedFormat) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		feed := s.site.BuildFeed(s.store.Snapshot().All())
		if err := format.Write(feed, &buf); err != nil {
			s.fail(w, r, err)
			return
		}
		w.Header().Set("Content-Type", format.ContentType+"; charset=utf-8")
		w.Write(buf.Bytes())
	}
}

func (s *server) syntaxCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write(s.site.SyntaxCSS)
}

// render buffers the page so a template error can still become a 500.
func (s *server) render(w http.ResponseWriter, r *http.Request, status int, page *Page) {
	if scheme, ok := colorscheme.FromRequest(r); ok {
		page.Scheme = scheme
	}
	var buf bytes.Buffer
	if err := s.site.Theme.Execute(&buf, page); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("serving request", "path", r.URL.Path, "err", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
