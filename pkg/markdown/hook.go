package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// hook renders the presentation elements itself and leaves every other node
// to the default HTML renderer.
type hook struct {
	*Renderer
}

func (h *hook) render(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	switch n := node.(type) {
	case *ast.Heading:
		if n.Level < 1 || n.Level > 3 || n.IsTitleblock {
			return ast.GoToNext, false
		}
		h.heading(w, n, entering)
	case *ast.Paragraph:
		if !tight(n) {
			h.tag(w, Paragraph, entering, "")
		}
	case *ast.Link:
		if n.NoteID > 0 {
			return ast.GoToNext, false
		}
		h.link(w, n, entering)
	case *ast.List:
		if n.IsFootnotesList || n.ListFlags&ast.ListTypeDefinition != 0 {
			return ast.GoToNext, false
		}
		h.list(w, n, entering)
	case *ast.ListItem:
		if n.IsFootnotesList || n.ListFlags&(ast.ListTypeTerm|ast.ListTypeDefinition) != 0 {
			return ast.GoToNext, false
		}
		h.tag(w, ListItem, entering, "")
	case *ast.BlockQuote:
		h.tag(w, Blockquote, entering, "")
	case *ast.Code:
		h.open(w, InlineCode, "")
		template.HTMLEscape(w, n.Literal)
		io.WriteString(w, "</code>")
	case *ast.CodeBlock:
		h.codeBlock(w, n)
	case *ast.Image:
		if entering {
			h.image(w, n)
			return ast.SkipChildren, true
		}
	case *ast.Table:
		if entering {
			h.open(w, TableWrapper, "")
			h.open(w, Table, "")
		} else {
			io.WriteString(w, "</table></div>\n")
		}
	case *ast.TableHeader:
		h.tag(w, TableHead, entering, "")
	case *ast.TableCell:
		e := TableCell
		if n.IsHeader {
			e = TableHeaderCell
		}
		h.tag(w, e, entering, alignment(n.Align))
	default:
		return ast.GoToNext, false
	}
	return ast.GoToNext, true
}

// open writes the start tag of `e` with its presentation class. `attrs` is
// inserted verbatim and must already be escaped.
func (h *hook) open(w io.Writer, e Element, attrs string) {
	io.WriteString(w, "<"+e.String())
	if class := h.config.Presentation.Class(e); class != "" {
		io.WriteString(w, ` class="`+template.HTMLEscapeString(class)+`"`)
	}
	io.WriteString(w, attrs+">")
}

func (h *hook) tag(w io.Writer, e Element, entering bool, attrs string) {
	if entering {
		h.open(w, e, attrs)
		return
	}
	io.WriteString(w, "</"+e.String()+">")
	if isBlock(e) {
		io.WriteString(w, "\n")
	}
}

func (h *hook) heading(w io.Writer, n *ast.Heading, entering bool) {
	e := Heading1 + Element(n.Level-1)
	var attrs string
	if n.HeadingID != "" {
		attrs = ` id="` + template.HTMLEscapeString(n.HeadingID) + `"`
	}
	h.tag(w, e, entering, attrs)
}

func (h *hook) link(w io.Writer, n *ast.Link, entering bool) {
	if !entering {
		io.WriteString(w, "</a>")
		return
	}
	dst := h.destination(string(n.Destination))
	if isUnsafeURL(dst) {
		dst = "#"
	}
	attrs := ` href="` + template.HTMLEscapeString(dst) + `"`
	if len(n.Title) > 0 {
		attrs += ` title="` + template.HTMLEscapeString(string(n.Title)) + `"`
	}
	if isExternal(dst) {
		attrs += ` target="_blank" rel="noopener noreferrer"`
	}
	h.open(w, Anchor, attrs)
}

func (h *hook) list(w io.Writer, n *ast.List, entering bool) {
	e := UnorderedList
	var attrs string
	if n.ListFlags&ast.ListTypeOrdered != 0 {
		e = OrderedList
		if n.Start > 1 {
			attrs = fmt.Sprintf(` start="%d"`, n.Start)
		}
	}
	h.tag(w, e, entering, attrs)
}

// image renders an <img> whose alt is the plain text of the image label.
// The alt attribute is always present.
func (h *hook) image(w io.Writer, n *ast.Image) {
	var label bytes.Buffer
	ast.WalkFunc(n, func(node ast.Node, entering bool) ast.WalkStatus {
		if leaf := node.AsLeaf(); leaf != nil && entering {
			label.Write(leaf.Literal)
		}
		return ast.GoToNext
	})
	attrs := ` src="` + template.HTMLEscapeString(string(n.Destination)) + `"` +
		` alt="` + template.HTMLEscapeString(plainText(label.Bytes())) + `"`
	if len(n.Title) > 0 {
		attrs += ` title="` + template.HTMLEscapeString(string(n.Title)) + `"`
	}
	h.open(w, Image, attrs)
}

func (h *hook) codeBlock(w io.Writer, n *ast.CodeBlock) {
	class := strings.TrimSpace(CodeClass + " " + h.config.Presentation.Class(CodeBlock))
	io.WriteString(w, `<pre class="`+template.HTMLEscapeString(class)+`">`)
	lang := language(n.Info)
	if lang == "" {
		io.WriteString(w, "<code>")
		template.HTMLEscape(w, n.Literal)
	} else {
		io.WriteString(w, `<code class="language-`+template.HTMLEscapeString(lang)+`">`)
		highlight(w, lang, n.Literal)
	}
	io.WriteString(w, "</code></pre>\n")
}

// plainText strips the inline markup from an image label, which the parser
// keeps as literal text.
func plainText(label []byte) string {
	if len(bytes.TrimSpace(label)) == 0 {
		return ""
	}
	var out bytes.Buffer
	doc := parser.NewWithExtensions(Extensions &^ parser.AutoHeadingIDs).Parse(label)
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch n := node.(type) {
		case *ast.Text:
			out.Write(n.Literal)
		case *ast.Code:
			out.Write(n.Literal)
		case *ast.Softbreak, *ast.Hardbreak:
			out.WriteByte(' ')
		}
		return ast.GoToNext
	})
	return strings.TrimSpace(out.String())
}

// tight reports whether a paragraph sits directly in an item of a tight
// list, in which case it is rendered without <p> tags.
func tight(p *ast.Paragraph) bool {
	item, ok := p.GetParent().(*ast.ListItem)
	if !ok {
		return false
	}
	list, ok := item.GetParent().(*ast.List)
	return ok && (list.Tight || item.ListFlags&ast.ListTypeTerm != 0)
}

// language is the first word of a fenced code block's info string.
func language(info []byte) string {
	if i := bytes.IndexAny(info, " \t{"); i >= 0 {
		info = info[:i]
	}
	return string(info)
}

func alignment(a ast.CellAlignFlags) string {
	switch a {
	case ast.TableAlignmentLeft:
		return ` align="left"`
	case ast.TableAlignmentRight:
		return ` align="right"`
	case ast.TableAlignmentCenter:
		return ` align="center"`
	}
	return ""
}

func isBlock(e Element) bool {
	switch e {
	case Anchor, InlineCode, Image, TableHeaderCell, TableCell:
		return false
	}
	return true
}
