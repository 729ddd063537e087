package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlight writes `code` as class-annotated token spans for `lang`. Unknown
// languages fall back to escaped plain text.
func highlight(w io.Writer, lang string, code []byte) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		template.HTMLEscape(w, code)
		return
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, string(code))
	if err != nil {
		slog.Warn("markdown: tokenising code block", "lang", lang, "err", err)
		template.HTMLEscape(w, code)
		return
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, styles.Fallback, iterator); err != nil {
		slog.Warn("markdown: formatting code block", "lang", lang, "err", err)
		template.HTMLEscape(w, code)
		return
	}
	w.Write(buf.Bytes())
}

// StyleSheet writes the CSS for highlighted code blocks: `light` applies by
// default and `dark` applies under a `.dark` ancestor.
func StyleSheet(w io.Writer, light, dark string) error {
	if err := formatter.WriteCSS(w, style(light)); err != nil {
		return fmt.Errorf("writing `%s` stylesheet: %w", light, err)
	}

	var buf bytes.Buffer
	if err := formatter.WriteCSS(&buf, style(dark)); err != nil {
		return fmt.Errorf("writing `%s` stylesheet: %w", dark, err)
	}
	for _, line := range strings.SplitAfter(buf.String(), "\n") {
		// each rule is written as `/* Token */ .selector { ... }`
		if i := strings.Index(line, "*/ "); i >= 0 {
			line = line[:i+3] + ".dark " + line[i+3:]
		}
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("writing `%s` stylesheet: %w", dark, err)
		}
	}
	return nil
}

func style(name string) *chroma.Style {
	if s := styles.Get(name); s != nil {
		return s
	}
	return styles.Fallback
}

// CodeClass is set on every <pre> wrapping a code block so the chroma
// stylesheet rules apply.
const CodeClass = "chroma"

var formatter = chromahtml.New(
	chromahtml.WithClasses(true),
	chromahtml.PreventSurroundingPre(true),
)
