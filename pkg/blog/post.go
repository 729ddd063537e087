package blog

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

type Post struct {
	// Frontmatter is the metadata about the post parsed from frontmatter.
	Frontmatter `yaml:",inline"`

	// Slug identifies the post in routes. It is the source file name without
	// its extension.
	Slug string `yaml:"-"`

	// Path is the relative path to the file from the content directory.
	Path string `yaml:"-"`

	// Content is the raw markdown body. It is rendered on demand.
	Content string `yaml:"-"`
}

// ParsePost splits the frontmatter from the markdown body of `data` and
// validates the required fields. `sourcePath` is the path of the file
// relative to the content directory and determines the slug.
func ParsePost(data []byte, sourcePath string) (p Post, err error) {
	var body []byte
	if body, err = frontmatter.MustParse(
		bytes.NewReader(data),
		&p.Frontmatter,
		yamlFormat,
	); err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			err = ErrMissingFrontmatter
		}
		goto ERROR
	}

	if p.Slug, err = SlugFromPath(sourcePath); err != nil {
		goto ERROR
	}
	if err = p.Frontmatter.validate(); err != nil {
		goto ERROR
	}

	p.Path = sourcePath
	p.Content = string(body)
	return
ERROR:
	err = fmt.Errorf("parsing post `%s`: %w", sourcePath, err)
	return
}

type Frontmatter struct {
	Title   string `yaml:"title"`
	Date    Date   `yaml:"date"`
	Excerpt string `yaml:"excerpt,omitempty"`
	Tags    Tags   `yaml:"tags,omitempty"`
	Author  string `yaml:"author,omitempty"`
	Draft   bool   `yaml:"draft,omitempty"`
}

func (fm *Frontmatter) validate() error {
	if strings.TrimSpace(fm.Title) == "" {
		return ErrMissingTitle
	}
	if fm.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// SlugFromPath derives the slug from a content file path: the base name
// without its markdown extension.
func SlugFromPath(p string) (string, error) {
	name := path.Base(p)
	for _, ext := range Extensions {
		if strings.HasSuffix(name, ext) {
			name = name[:len(name)-len(ext)]
			break
		}
	}
	if name == "" || name == "." {
		return "", fmt.Errorf("%w: empty slug", ErrInvalidSlug)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return "", fmt.Errorf("%w: `%s` contains %q", ErrInvalidSlug, name, r)
		}
	}
	return name, nil
}

// Tags is an ordered set of labels. Decoding keeps the first occurrence of
// each label, compared by TagKey, and drops labels with an empty key. A scalar is read as a comma-separated list.
type Tags []string

func (t *Tags) UnmarshalYAML(value *yaml.Node) error {
	var raw []string
	if value.Kind == yaml.ScalarNode {
		var s string
		if err := value.Decode(&s); err != nil {
			return fmt.Errorf("unmarshaling tags: %w", err)
		}
		raw = strings.Split(s, ",")
	} else if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("unmarshaling tags: %w", err)
	}

	seen := make(map[string]struct{}, len(raw))
	*t = (*t)[:0]
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := TagKey(tag)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		*t = append(*t, tag)
	}
	return nil
}

// Has reports whether the set contains a label with the same key as `tag`.
func (t Tags) Has(tag string) bool {
	key := TagKey(tag)
	for _, x := range t {
		if TagKey(x) == key {
			return true
		}
	}
	return false
}

// TagKey is the URL path segment of a tag: lower case letters, digits, `.`,
// `_` and `-`. `#` and `+` are spelled out so `C#`, `C++` and `C` differ;
// every other run of characters becomes a single `-`. TagKey(TagKey(t)) ==
// TagKey(t).
func TagKey(tag string) string {
	tag = strings.NewReplacer("#", "-sharp-", "+", "-plus-").Replace(tag)
	var b strings.Builder
	dash := false
	for _, r := range tag {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(unicode.ToLower(r))
		default:
			dash = true
		}
	}
	return b.String()
}

type Date time.Time

// ParseDate accepts a calendar date or a timestamp in one of the supported
// layouts.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date(t), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func (d Date) Time() time.Time { return time.Time(d) }

func (d Date) IsZero() bool { return time.Time(d).IsZero() }

func (d Date) Compare(other Date) int {
	return time.Time(d).Compare(time.Time(other))
}

func (d Date) Format(layout string) string {
	return time.Time(d).Format(layout)
}

func (d Date) String() string {
	return time.Time(d).Format(dateLayout)
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	var s string
	var err error
	if err = value.Decode(&s); err != nil {
		return fmt.Errorf("unmarshaling date: %w", err)
	}
	if *d, err = ParseDate(s); err != nil {
		return fmt.Errorf("unmarshaling date: %w", err)
	}
	return nil
}

func (d Date) MarshalYAML() (interface{}, error) {
	return time.Time(d).Format(dateLayout), nil
}

const dateLayout = "2006-01-02"

var dateLayouts = []string{
	dateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Extensions lists the file extensions recognized as posts.
var Extensions = []string{".md", ".markdown"}

var (
	ErrMissingFrontmatter = errors.New("missing frontmatter")
	ErrMissingTitle       = errors.New("missing title")
	ErrMissingDate        = errors.New("missing date")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidSlug        = errors.New("invalid slug")
	ErrDuplicateSlug      = errors.New("duplicate slug")

	yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)
)
