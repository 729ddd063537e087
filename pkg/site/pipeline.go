package site

import (
	"context"
	"io"
	"path"
	"runtime/trace"

	"github.com/go-git/go-billy/v5"

	"portfolio/pkg/actor"
	"portfolio/pkg/blog"
)

// Pipeline exports the whole site into Output as static files.
type Pipeline struct {
	Site   *Site
	Posts  *blog.Collection
	Output billy.Filesystem
}

func (pipeline *Pipeline) Run(ctx context.Context) error {
	region := trace.StartRegion(ctx, "pipeline")
	defer region.End()
	ctx, task := trace.NewTask(ctx, "pipeline")
	defer task.End()

	artifacts := actor.NewOutput(
		"Artifacts",
		1,
		actor.Slice(pipeline.artifacts()),
	)

	templater := newTemplater("Templater", 8, artifacts.OutputChan())

	writer := actor.NewInput(
		"FileWriter",
		4,
		templater.Output,
		fileWriter(pipeline.Output),
		nil,
	)

	actors := actor.Multi{&artifacts, &templater, &writer}

	if assets := pipeline.Site.Theme.Assets; assets != nil {
		finder := actor.NewOutput(
			"AssetFinder",
			1,
			AssetFinder(assets),
		)
		copier := actor.NewInput(
			"AssetCopier",
			4,
			finder.OutputChan(),
			AssetCopier(pipeline.Output, assets, "static"),
			nil,
		)
		actors = append(actors, &finder, &copier)
	}

	return actors.Run(ctx)
}

// artifacts lists every file of the export. Pages are built lazily, so
// post bodies are rendered by the templater workers.
func (pipeline *Pipeline) artifacts() []artifact {
	site, posts := pipeline.Site, pipeline.Posts
	page := func(p string, build func() *Page) artifact {
		return artifact{
			Path:  p,
			Write: func(w io.Writer) error { return site.Theme.Execute(w, build()) },
		}
	}

	artifacts := []artifact{
		page("index.html", func() *Page { return site.HomePage(posts) }),
		page("experience/index.html", site.ExperiencePage),
		page("blog/index.html", func() *Page { return site.BlogPage(posts) }),
		page("404.html", func() *Page { return site.NotFoundPage(site.Path("404.html")) }),
		{
			Path: "static/syntax.css",
			Write: func(w io.Writer) error {
				_, err := w.Write(site.SyntaxCSS)
				return err
			},
		},
	}

	for _, post := range posts.All() {
		artifacts = append(artifacts, page(
			path.Join("blog", post.Slug, "index.html"),
			func() *Page {
				p, _ := site.PostPage(posts, post.Slug)
				return p
			},
		))
	}

	for _, tag := range posts.Tags() {
		artifacts = append(artifacts, page(
			path.Join("blog", "tags", blog.TagKey(tag), "index.html"),
			func() *Page {
				p, _ := site.TagPage(posts, tag)
				return p
			},
		))
	}

	all := posts.All()
	for _, format := range FeedFormats {
		artifacts = append(artifacts, artifact{
			Path: format.Path,
			Write: func(w io.Writer) error {
				return format.Write(site.BuildFeed(all), w)
			},
		})
	}

	return artifacts
}
