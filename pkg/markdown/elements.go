package markdown

// Element is a kind of rendered node that carries presentation classes.
type Element int

const (
	Heading1 Element = iota
	Heading2
	Heading3
	Paragraph
	Anchor
	UnorderedList
	OrderedList
	ListItem
	Blockquote
	InlineCode
	CodeBlock
	Image
	TableWrapper
	Table
	TableHead
	TableHeaderCell
	TableCell

	elementCount
)

func (e Element) String() string {
	switch e {
	case Heading1:
		return "h1"
	case Heading2:
		return "h2"
	case Heading3:
		return "h3"
	case Paragraph:
		return "p"
	case Anchor:
		return "a"
	case UnorderedList:
		return "ul"
	case OrderedList:
		return "ol"
	case ListItem:
		return "li"
	case Blockquote:
		return "blockquote"
	case InlineCode:
		return "code"
	case CodeBlock:
		return "pre"
	case Image:
		return "img"
	case TableWrapper:
		return "div"
	case Table:
		return "table"
	case TableHead:
		return "thead"
	case TableHeaderCell:
		return "th"
	case TableCell:
		return "td"
	}
	return "unknown"
}

// Presentation holds the class attribute of every element kind.
type Presentation [elementCount]string

func (p *Presentation) Class(e Element) string {
	if p == nil || e < 0 || e >= elementCount {
		return ""
	}
	return p[e]
}

// DefaultPresentation styles rendered posts with Tailwind utility classes.
var DefaultPresentation = Presentation{
	Heading1:        "text-3xl font-bold mb-4 mt-8 text-zinc-900 dark:text-zinc-100",
	Heading2:        "text-2xl font-bold mb-3 mt-6 text-zinc-900 dark:text-zinc-100",
	Heading3:        "text-xl font-bold mb-2 mt-4 text-zinc-800 dark:text-zinc-200",
	Paragraph:       "text-zinc-600 dark:text-zinc-400 leading-relaxed mb-4",
	Anchor:          "text-blue-600 dark:text-blue-400 hover:text-blue-500 dark:hover:text-blue-300 underline transition-colors",
	UnorderedList:   "list-disc list-inside space-y-2 mb-4 text-zinc-600 dark:text-zinc-400",
	OrderedList:     "list-decimal list-inside space-y-2 mb-4 text-zinc-600 dark:text-zinc-400",
	ListItem:        "ml-4",
	Blockquote:      "border-l-4 border-blue-500 pl-4 py-2 my-4 italic text-zinc-600 dark:text-zinc-400 bg-zinc-100 dark:bg-zinc-900/50",
	InlineCode:      "bg-zinc-100 dark:bg-zinc-800 text-amber-600 dark:text-yellow-400 px-1.5 py-0.5 rounded text-sm font-mono border border-zinc-200 dark:border-zinc-700",
	CodeBlock:       "!bg-transparent !p-0 border border-zinc-200 dark:border-zinc-800 rounded-lg overflow-x-auto my-4 max-w-full",
	Image:           "rounded-lg my-6 w-full border border-zinc-200 dark:border-zinc-800",
	TableWrapper:    "overflow-x-auto my-4",
	Table:           "min-w-full border border-zinc-200 dark:border-zinc-800 rounded-lg",
	TableHead:       "bg-zinc-100 dark:bg-zinc-900",
	TableHeaderCell: "border border-zinc-200 dark:border-zinc-800 px-4 py-2 text-left text-zinc-900 dark:text-zinc-200",
	TableCell:       "border border-zinc-200 dark:border-zinc-800 px-4 py-2 text-zinc-600 dark:text-zinc-400",
}
