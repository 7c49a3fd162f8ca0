package editor

// Базовые ноды документа: корень, параграф, текст, перенос строки и
// placeholder для неизвестных типов.

const (
	TypeRoot        = "root"
	TypeParagraph   = "paragraph"
	TypeText        = "text"
	TypeLineBreak   = "linebreak"
	TypePlaceholder = "placeholder"
)

// Флаги форматирования текста.
const (
	FormatBold uint = 1 << iota
	FormatItalic
	FormatUnderline
	FormatStrikethrough
)

type RootNode struct {
	BlockNode
}

func NewRootNode() *RootNode { return &RootNode{} }

func (*RootNode) Type() string { return TypeRoot }

func (n *RootNode) Clone() Node {
	c := *n
	return &c
}

func (n *RootNode) Export() *SerializedNode {
	s := NewSerializedNode(TypeRoot, 1)
	s.Children = []*SerializedNode{}
	return s
}

func (*RootNode) CanInsertTextBefore() bool { return false }
func (*RootNode) CanInsertTextAfter() bool  { return false }

type ParagraphNode struct {
	BlockNode
}

func NewParagraphNode() *ParagraphNode { return &ParagraphNode{} }

func (*ParagraphNode) Type() string { return TypeParagraph }

func (n *ParagraphNode) Clone() Node {
	c := *n
	return &c
}

func (n *ParagraphNode) Export() *SerializedNode {
	s := NewSerializedNode(TypeParagraph, 1)
	s.Children = []*SerializedNode{}
	return s
}

func (*ParagraphNode) CanMergeWith(other Node) bool {
	_, ok := other.(*ParagraphNode)
	return ok
}

type TextNode struct {
	InlineNode

	Text   string
	Format uint
}

func NewTextNode(text string) *TextNode { return &TextNode{Text: text} }

func (*TextNode) Type() string { return TypeText }

func (n *TextNode) Clone() Node {
	c := *n
	return &c
}

func (n *TextNode) Export() *SerializedNode {
	s := NewSerializedNode(TypeText, 1)
	s.SetField("text", n.Text)
	s.SetField("format", n.Format)
	return s
}

func (*TextNode) CanMergeWith(other Node) bool {
	_, ok := other.(*TextNode)
	return ok
}

type LineBreakNode struct {
	InlineNode
}

func NewLineBreakNode() *LineBreakNode { return &LineBreakNode{} }

func (*LineBreakNode) Type() string { return TypeLineBreak }

func (n *LineBreakNode) Clone() Node {
	c := *n
	return &c
}

func (n *LineBreakNode) Export() *SerializedNode {
	return NewSerializedNode(TypeLineBreak, 1)
}

// PlaceholderNode сохраняет ноду неизвестного типа как есть: исходный снимок
// вместе с поддеревом экспортируется обратно без изменений. Документ из более
// новой схемы остается открываемым и не теряет данные при пересохранении.
type PlaceholderNode struct {
	InlineNode

	Raw *SerializedNode
}

func (*PlaceholderNode) Type() string { return TypePlaceholder }

func (n *PlaceholderNode) Clone() Node {
	c := *n
	return &c
}

func (n *PlaceholderNode) Export() *SerializedNode {
	if n.Raw == nil {
		return NewSerializedNode(TypePlaceholder, 1)
	}
	c := n.Raw.cloneShallow()
	c.Children = n.Raw.Children
	return c
}

func init() {
	RegisterNodeType(TypeRoot, func(*SerializedNode) Node { return NewRootNode() })
	RegisterNodeType(TypeParagraph, func(*SerializedNode) Node { return NewParagraphNode() })
	RegisterNodeType(TypeText, func(s *SerializedNode) Node {
		n := NewTextNode(s.String("text"))
		n.Format = uint(s.Int("format"))
		return n
	})
	RegisterNodeType(TypeLineBreak, func(*SerializedNode) Node { return NewLineBreakNode() })
}
