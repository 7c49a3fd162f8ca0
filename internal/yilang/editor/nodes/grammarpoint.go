package nodes

import (
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/editor"
)

const (
	TypeGrammarPointContainer = "grammar-point-container"
	TypeGrammarPointTitle     = "grammar-point-title"
	TypeGrammarPointContent   = "grammar-point-content"
)

// Грамматическая заметка - семейство из трех нод. Контейнер живет только на
// верхнем уровне ближайшего корня и обязан иметь ровно двух детей:
// [заголовок, контент]. Нарушенная структура не чинится, а разворачивается.
type GrammarPointContainerNode struct {
	editor.BlockNode

	DatabaseID *string
	Open       bool
}

func NewGrammarPointContainerNode() *GrammarPointContainerNode {
	return &GrammarPointContainerNode{Open: true}
}

func (*GrammarPointContainerNode) Type() string { return TypeGrammarPointContainer }

func (n *GrammarPointContainerNode) Clone() editor.Node {
	c := *n
	if n.DatabaseID != nil {
		id := *n.DatabaseID
		c.DatabaseID = &id
	}
	return &c
}

func (n *GrammarPointContainerNode) Export() *editor.SerializedNode {
	s := editor.NewSerializedNode(TypeGrammarPointContainer, 1)
	s.SetField("databaseId", n.DatabaseID)
	s.SetField("open", n.Open)
	return s
}

func (*GrammarPointContainerNode) CanBeEmpty() bool          { return false }
func (*GrammarPointContainerNode) CanInsertTextBefore() bool { return false }
func (*GrammarPointContainerNode) CanInsertTextAfter() bool  { return false }

// GrammarPointTitleNode держит плоский текст заголовка заметки.
type GrammarPointTitleNode struct {
	editor.BlockNode
}

func NewGrammarPointTitleNode() *GrammarPointTitleNode { return &GrammarPointTitleNode{} }

func (*GrammarPointTitleNode) Type() string { return TypeGrammarPointTitle }

func (n *GrammarPointTitleNode) Clone() editor.Node {
	c := *n
	return &c
}

func (n *GrammarPointTitleNode) Export() *editor.SerializedNode {
	s := editor.NewSerializedNode(TypeGrammarPointTitle, 1)
	s.Children = []*editor.SerializedNode{}
	return s
}

// GrammarPointContentNode - теневой подкорень: его дети нормализуются так же,
// как дети настоящего корня.
type GrammarPointContentNode struct {
	editor.BlockNode
}

func NewGrammarPointContentNode() *GrammarPointContentNode { return &GrammarPointContentNode{} }

func (*GrammarPointContentNode) Type() string { return TypeGrammarPointContent }

func (*GrammarPointContentNode) IsShadowRoot() {}

func (n *GrammarPointContentNode) Clone() editor.Node {
	c := *n
	return &c
}

func (n *GrammarPointContentNode) Export() *editor.SerializedNode {
	s := editor.NewSerializedNode(TypeGrammarPointContent, 1)
	s.Children = []*editor.SerializedNode{}
	return s
}

func importGrammarPointContainer(s *editor.SerializedNode) editor.Node {
	n := NewGrammarPointContainerNode()
	n.DatabaseID = s.StringPtr("databaseId")
	n.Open = s.Bool("open")
	return n
}

// transformGrammarPointContainer: подъем на верхний уровень и проверка формы
// [Title, Content]. Невалидный контейнер разворачивается, структура
// отбрасывается - без попыток реконструкции.
func transformGrammarPointContainer(tx *editor.Tx, n editor.Node) {
	container := n.(*GrammarPointContainerNode)
	if !tx.IsAttached(container) {
		return
	}

	hoistToNearestRoot(tx, container)

	children := tx.Children(container)
	if len(children) != 2 {
		tx.Unwrap(container)
		return
	}
	if _, ok := children[0].(*GrammarPointTitleNode); !ok {
		tx.Unwrap(container)
		return
	}
	if _, ok := children[1].(*GrammarPointContentNode); !ok {
		tx.Unwrap(container)
		return
	}
}

// transformGrammarPointChild разворачивает заголовок или контент,
// осиротевший вне контейнера.
func transformGrammarPointChild(tx *editor.Tx, n editor.Node) {
	if !tx.IsAttached(n) {
		return
	}
	if _, ok := tx.Parent(n).(*GrammarPointContainerNode); !ok {
		tx.Unwrap(n)
	}
}

// hoistToNearestRoot переставляет ноду сразу после её верхнеуровневого
// предка, если она вложена глубже прямого ребенка ближайшего корня.
func hoistToNearestRoot(tx *editor.Tx, n editor.Node) {
	top := tx.TopLevelAncestor(n)
	if top == nil || top.Key() == n.Key() {
		return
	}
	tx.InsertAfter(top, n)
}
