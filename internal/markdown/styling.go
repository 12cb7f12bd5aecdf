package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// StyleClasses maps markdown constructs to the class attribute emitted on
// their HTML elements. Empty entries leave the element unstyled. The zero
// value is valid; DefaultStyleClasses returns the stock mapping.
type StyleClasses struct {
	H1              string `json:"h1" yaml:"h1"`
	H2              string `json:"h2" yaml:"h2"`
	H3              string `json:"h3" yaml:"h3"`
	H4              string `json:"h4" yaml:"h4"`
	Paragraph       string `json:"paragraph" yaml:"paragraph"`
	Strong          string `json:"strong" yaml:"strong"`
	Emphasis        string `json:"emphasis" yaml:"emphasis"`
	Link            string `json:"link" yaml:"link"`
	CodeSpan        string `json:"code_span" yaml:"code_span"`
	CodeBlock       string `json:"code_block" yaml:"code_block"`
	Pre             string `json:"pre" yaml:"pre"`
	List            string `json:"list" yaml:"list"`
	ListItem        string `json:"list_item" yaml:"list_item"`
	TaskItemPending string `json:"task_item_pending" yaml:"task_item_pending"`
	TaskItemDone    string `json:"task_item_done" yaml:"task_item_done"`
	Blockquote      string `json:"blockquote" yaml:"blockquote"`
	Table           string `json:"table" yaml:"table"`
	TableHeaderCell string `json:"table_header_cell" yaml:"table_header_cell"`
	TableCell       string `json:"table_cell" yaml:"table_cell"`
}

// DefaultStyleClasses returns the utility-class mapping used by the site
// templates. Hosts with their own stylesheet can supply a replacement map
// through MarkdownConfig.Styles.
func DefaultStyleClasses() StyleClasses {
	return StyleClasses{
		H1:              "text-3xl font-bold mt-8 mb-4",
		H2:              "text-2xl font-bold mt-6 mb-3",
		H3:              "text-xl font-semibold mt-4 mb-2",
		H4:              "text-lg font-semibold mt-3 mb-2",
		Paragraph:       "my-4 leading-relaxed",
		Strong:          "font-bold",
		Emphasis:        "italic",
		Link:            "text-blue-600 underline hover:text-blue-800",
		CodeSpan:        "bg-gray-100 rounded px-1 py-0.5 font-mono text-sm",
		CodeBlock:       "font-mono text-sm",
		Pre:             "bg-gray-900 text-gray-100 rounded-lg p-4 my-4 overflow-x-auto",
		List:            "list-disc ml-6 my-4",
		ListItem:        "my-1",
		TaskItemPending: "task-item",
		TaskItemDone:    "task-item line-through text-gray-500",
		Blockquote:      "border-l-4 border-gray-300 pl-4 italic my-4",
		Table:           "table-auto border-collapse my-4 w-full",
		TableHeaderCell: "border px-3 py-2 bg-gray-100 font-semibold text-left",
		TableCell:       "border px-3 py-2",
	}
}

func (c StyleClasses) heading(level int) string {
	switch level {
	case 1:
		return c.H1
	case 2:
		return c.H2
	case 3:
		return c.H3
	case 4:
		return c.H4
	default:
		// Deeper headings share the smallest styled level.
		return c.H4
	}
}

// Styling is a goldmark extension that annotates the parsed tree with the
// configured class attributes. Most constructs are handled by a pure
// transformer pass (the stock HTML renderer emits attributes for them);
// fenced and indented code blocks need a renderer override because the
// stock renderer ignores attributes on those nodes.
type Styling struct {
	classes StyleClasses
}

// NewStyling builds the styling extension for the supplied class map.
func NewStyling(classes StyleClasses) *Styling {
	return &Styling{classes: classes}
}

// Extend registers the annotation transformer and the code block renderer.
func (s *Styling) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&styleTransformer{classes: s.classes}, 900),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&codeBlockRenderer{classes: s.classes}, 200),
	))
}

type styleTransformer struct {
	classes StyleClasses
}

// Transform annotates nodes in a single walk. It only attaches attributes
// to the freshly parsed tree; no nodes are replaced or reparented.
func (t *styleTransformer) Transform(doc *gast.Document, _ text.Reader, _ parser.Context) {
	_ = gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gast.Heading:
			setClass(node, t.classes.heading(node.Level))
		case *gast.Paragraph:
			setClass(node, t.classes.Paragraph)
		case *gast.Emphasis:
			if node.Level == 2 {
				setClass(node, t.classes.Strong)
			} else {
				setClass(node, t.classes.Emphasis)
			}
		case *gast.Link:
			setClass(node, t.classes.Link)
		case *gast.AutoLink:
			setClass(node, t.classes.Link)
		case *gast.CodeSpan:
			setClass(node, t.classes.CodeSpan)
		case *gast.List:
			setClass(node, t.classes.List)
		case *gast.ListItem:
			setClass(node, t.listItemClass(node))
		case *gast.Blockquote:
			setClass(node, t.classes.Blockquote)
		case *extast.Table:
			setClass(node, t.classes.Table)
		case *extast.TableCell:
			if node.Parent() != nil && node.Parent().Kind() == extast.KindTableHeader {
				setClass(node, t.classes.TableHeaderCell)
			} else {
				setClass(node, t.classes.TableCell)
			}
		}

		return gast.WalkContinue, nil
	})
}

func (t *styleTransformer) listItemClass(item *gast.ListItem) string {
	checkbox := taskCheckBox(item)
	if checkbox == nil {
		return t.classes.ListItem
	}
	if checkbox.IsChecked {
		return joinClasses(t.classes.ListItem, t.classes.TaskItemDone)
	}
	return joinClasses(t.classes.ListItem, t.classes.TaskItemPending)
}

// taskCheckBox returns the GFM checkbox leading the list item, if any. The
// tasklist extension parses `- [ ] text` into ListItem > TextBlock >
// TaskCheckBox.
func taskCheckBox(item *gast.ListItem) *extast.TaskCheckBox {
	block := item.FirstChild()
	if block == nil {
		return nil
	}
	if checkbox, ok := block.FirstChild().(*extast.TaskCheckBox); ok {
		return checkbox
	}
	return nil
}

func setClass(n gast.Node, class string) {
	if class == "" {
		return
	}
	n.SetAttributeString("class", []byte(class))
}

func joinClasses(classes ...string) string {
	parts := make([]string, 0, len(classes))
	for _, class := range classes {
		if trimmed := strings.TrimSpace(class); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}

// codeBlockRenderer emits fenced and indented code blocks with the
// configured classes, preserving the fence's language hint as a
// language-* class alongside the styling class.
type codeBlockRenderer struct {
	classes StyleClasses
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(gast.KindFencedCodeBlock, r.renderCodeBlock)
	reg.Register(gast.KindCodeBlock, r.renderCodeBlock)
}

func (r *codeBlockRenderer) renderCodeBlock(w util.BufWriter, source []byte, node gast.Node, entering bool) (gast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</code></pre>\n")
		return gast.WalkContinue, nil
	}

	_, _ = w.WriteString("<pre")
	writeClassAttr(w, r.classes.Pre)
	_, _ = w.WriteString("><code")

	var language []byte
	if fenced, ok := node.(*gast.FencedCodeBlock); ok {
		language = fenced.Language(source)
	}

	codeClass := r.classes.CodeBlock
	if len(language) > 0 {
		codeClass = joinClasses("language-"+string(language), codeClass)
	}
	writeClassAttr(w, codeClass)
	_ = w.WriteByte('>')

	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		_, _ = w.Write(util.EscapeHTML(line.Value(source)))
	}

	return gast.WalkContinue, nil
}

func writeClassAttr(w util.BufWriter, class string) {
	if class == "" {
		return
	}
	_, _ = w.WriteString(` class="`)
	_, _ = w.Write(util.EscapeHTML([]byte(class)))
	_ = w.WriteByte('"')
}
