package site

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/tailscale/hujson"

	"portfolio/pkg/blog"
	"portfolio/pkg/markdown"
)

// ConfigFile is looked up in the site directory. It is JSON with comments
// and trailing commas.
const ConfigFile = "site.jsonc"

// EnvPrefix namespaces environment overrides, e.g. PORTFOLIO_SITEROOTURL or
// PORTFOLIO_AUTHOR_NAME.
const EnvPrefix = "PORTFOLIO"

type Config struct {
	SiteTitle          string `mapstructure:"siteTitle"`
	Description        string `mapstructure:"description"`
	SiteRootURL        string `mapstructure:"siteRootURL"`
	Author             Author `mapstructure:"author"`
	ContentDirectory   string `mapstructure:"contentDirectory"`
	ExperienceFile     string `mapstructure:"experienceFile"`
	ThemeDirectory     string `mapstructure:"themeDirectory"`
	OutputDirectory    string `mapstructure:"outputDirectory"`
	RecentPosts        int    `mapstructure:"recentPosts"`
	TrustContent       bool   `mapstructure:"trustContent"`
	IncludeDrafts      bool   `mapstructure:"includeDrafts"`
	HighlightStyle     string `mapstructure:"highlightStyle"`
	DarkHighlightStyle string `mapstructure:"darkHighlightStyle"`
	Listen             string `mapstructure:"listen"`

	// ProfileImage is shown on the home page: an absolute URL or a path
	// below the site root, e.g. `static/profile.jpg` in a custom theme.
	ProfileImage string  `mapstructure:"profileImage"`
	Skills       []Skill `mapstructure:"skills"`

	// Directory is the site directory; relative paths resolve against it.
	Directory string `mapstructure:"-"`
}

var defaults = map[string]any{
	"siteTitle":          "Portfolio",
	"description":        "",
	"siteRootURL":        "http://localhost:8080/",
	"author.name":        "",
	"author.email":       "",
	"contentDirectory":   "content/blog",
	"experienceFile":     "content/experience.yaml",
	"themeDirectory":     "",
	"outputDirectory":    "_output",
	"recentPosts":        3,
	"trustContent":       true,
	"includeDrafts":      false,
	"highlightStyle":     "github",
	"darkHighlightStyle": "github-dark",
	"listen":             ":8080",
	"profileImage":       "",
	"skills": []any{
		map[string]any{"category": "Frontend", "items": []any{"React", "Next.js", "TypeScript", "Tailwind CSS"}},
		map[string]any{"category": "Backend", "items": []any{"Node.js", "Python", "PostgreSQL", "MongoDB"}},
		map[string]any{"category": "DevOps", "items": []any{"Docker", "AWS", "CI/CD", "Git"}},
	},
}

// LoadConfig reads `site.jsonc` from `dir`, if present, and applies
// defaults and environment overrides.
func LoadConfig(dir string) (config Config, err error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := filepath.Join(dir, ConfigFile)
	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			goto ERROR
		}
		err = nil
	} else {
		if data, err = hujson.Standardize(data); err != nil {
			goto ERROR
		}
		if err = v.ReadConfig(bytes.NewReader(data)); err != nil {
			goto ERROR
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		goto ERROR
	}
	config.Directory = dir
	return

ERROR:
	err = fmt.Errorf("loading config from `%s`: %w", path, err)
	return
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Directory, p)
}

func (c *Config) ContentPath() string    { return c.resolve(c.ContentDirectory) }
func (c *Config) ExperiencePath() string { return c.resolve(c.ExperienceFile) }
func (c *Config) ThemePath() string      { return c.resolve(c.ThemeDirectory) }
func (c *Config) OutputPath() string     { return c.resolve(c.OutputDirectory) }

func (c *Config) LoaderOptions() blog.Options {
	return blog.Options{IncludeDrafts: c.IncludeDrafts}
}

// Site builds the rendering context described by the config.
func (c *Config) Site() (site *Site, err error) {
	site = &Site{
		Title:       c.SiteTitle,
		Description: c.Description,
		Author:      c.Author,
		RecentPosts: c.RecentPosts,
		Skills:      c.Skills,
	}
	var css bytes.Buffer

	if site.BaseURL, err = url.Parse(c.SiteRootURL); err != nil {
		goto ERROR
	}
	if c.ProfileImage != "" {
		if site.ProfileImage, err = url.Parse(c.ProfileImage); err != nil {
			goto ERROR
		}
	}
	if site.Theme, err = c.theme(); err != nil {
		goto ERROR
	}
	if site.Experience, err = LoadExperience(c.ExperiencePath()); err != nil {
		goto ERROR
	}
	if err = markdown.StyleSheet(
		&css,
		c.HighlightStyle,
		c.DarkHighlightStyle,
	); err != nil {
		goto ERROR
	}
	site.SyntaxCSS = css.Bytes()
	site.Markdown = markdown.New(markdown.Config{
		PostURL:   site.PostPath,
		Untrusted: !c.TrustContent,
	})
	return

ERROR:
	err = fmt.Errorf("building site: %w", err)
	return
}

func (c *Config) theme() (*Theme, error) {
	if c.ThemeDirectory == "" {
		return DefaultTheme()
	}
	return LoadTheme(os.DirFS(c.ThemePath()))
}
