package nodes

import (
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/editor"
)

const (
	TypeSplitLayoutContainer = "split-layout-container"
	TypeSplitLayoutColumn    = "split-layout-column"
)

// Двухколоночная раскладка. Контейнер держит ровно две колонки и не
// вкладывается в другой контейнер раскладки; колонка никогда не пустует.
type SplitLayoutContainerNode struct {
	editor.BlockNode
}

func NewSplitLayoutContainerNode() *SplitLayoutContainerNode { return &SplitLayoutContainerNode{} }

func (*SplitLayoutContainerNode) Type() string { return TypeSplitLayoutContainer }

func (n *SplitLayoutContainerNode) Clone() editor.Node {
	c := *n
	return &c
}

func (n *SplitLayoutContainerNode) Export() *editor.SerializedNode {
	s := editor.NewSerializedNode(TypeSplitLayoutContainer, 1)
	s.Children = []*editor.SerializedNode{}
	return s
}

func (*SplitLayoutContainerNode) CanBeEmpty() bool { return false }

type SplitLayoutColumnNode struct {
	editor.BlockNode
}

func NewSplitLayoutColumnNode() *SplitLayoutColumnNode { return &SplitLayoutColumnNode{} }

func (*SplitLayoutColumnNode) Type() string { return TypeSplitLayoutColumn }

func (n *SplitLayoutColumnNode) Clone() editor.Node {
	c := *n
	return &c
}

func (n *SplitLayoutColumnNode) Export() *editor.SerializedNode {
	s := editor.NewSerializedNode(TypeSplitLayoutColumn, 1)
	s.Children = []*editor.SerializedNode{}
	return s
}

// transformSplitLayoutContainer: вложенные контейнеры и контейнеры без ровно
// двух колонок разворачиваются.
func transformSplitLayoutContainer(tx *editor.Tx, n editor.Node) {
	container := n.(*SplitLayoutContainerNode)
	if !tx.IsAttached(container) {
		return
	}

	if splitLayoutAncestor(tx, tx.Parent(container)) != nil {
		tx.Unwrap(container)
		return
	}

	children := tx.Children(container)
	if len(children) != 2 {
		tx.Unwrap(container)
		return
	}
	for _, c := range children {
		if _, ok := c.(*SplitLayoutColumnNode); !ok {
			tx.Unwrap(container)
			return
		}
	}
}

// transformSplitLayoutColumn: сирота разворачивается, опустевшая колонка
// получает пустой параграф.
func transformSplitLayoutColumn(tx *editor.Tx, n editor.Node) {
	column := n.(*SplitLayoutColumnNode)
	if !tx.IsAttached(column) {
		return
	}
	if _, ok := tx.Parent(column).(*SplitLayoutContainerNode); !ok {
		tx.Unwrap(column)
		return
	}
	last := tx.LastChild(column)
	if last == nil || last.IsInline() {
		p := tx.Create(editor.NewParagraphNode())
		tx.AppendChild(column, p)
	}
}

func splitLayoutAncestor(tx *editor.Tx, n editor.Node) *SplitLayoutContainerNode {
	for cur := n; cur != nil; cur = tx.Parent(cur) {
		if s, ok := cur.(*SplitLayoutContainerNode); ok {
			return s
		}
	}
	return nil
}
