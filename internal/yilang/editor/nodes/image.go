package nodes

import (
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/editor"
)

const (
	TypeImage  = "image"
	TypeRemark = "remark"
)

// Выравнивание изображения.
type ImageAlignment string

const (
	ImageAlignLeft   ImageAlignment = "left"
	ImageAlignCenter ImageAlignment = "center"
	ImageAlignRight  ImageAlignment = "right"
)

// ImageNode - блочное изображение. Живет только прямым ребенком ближайшего
// корня, при вложении поднимается наверх.
type ImageNode struct {
	editor.BlockNode

	Src       string
	Caption   string
	Width     int
	Alignment ImageAlignment
}

func NewImageNode(src string) *ImageNode {
	return &ImageNode{Src: src, Alignment: ImageAlignCenter}
}

func (*ImageNode) Type() string { return TypeImage }

func (n *ImageNode) Clone() editor.Node {
	c := *n
	return &c
}

func (n *ImageNode) Export() *editor.SerializedNode {
	s := editor.NewSerializedNode(TypeImage, 1)
	s.SetField("src", n.Src)
	s.SetField("caption", n.Caption)
	s.SetField("width", n.Width)
	s.SetField("alignment", string(n.Alignment))
	return s
}

func (*ImageNode) CanHaveChildren() bool { return false }
func (*ImageNode) CanBeEmpty() bool      { return false }

func importImage(s *editor.SerializedNode) editor.Node {
	n := NewImageNode(s.String("src"))
	n.Caption = s.String("caption")
	n.Width = s.Int("width")
	if a := ImageAlignment(s.String("alignment")); a == ImageAlignLeft || a == ImageAlignRight {
		n.Alignment = a
	}
	return n
}

// transformImage поднимает вложенное изображение на верхний уровень.
func transformImage(tx *editor.Tx, n editor.Node) {
	if !tx.IsAttached(n) {
		return
	}
	hoistToNearestRoot(tx, n)
}

// RemarkNode - блок авторской ремарки на полях документа.
type RemarkNode struct {
	editor.BlockNode
}

func NewRemarkNode() *RemarkNode { return &RemarkNode{} }

func (*RemarkNode) Type() string { return TypeRemark }

func (n *RemarkNode) Clone() editor.Node {
	c := *n
	return &c
}

func (n *RemarkNode) Export() *editor.SerializedNode {
	s := editor.NewSerializedNode(TypeRemark, 1)
	s.Children = []*editor.SerializedNode{}
	return s
}

func (*RemarkNode) CanBeEmpty() bool { return false }

// transformRemark удаляет опустевшую ремарку.
func transformRemark(tx *editor.Tx, n editor.Node) {
	if !tx.IsAttached(n) {
		return
	}
	if tx.ChildCount(n) == 0 {
		tx.Remove(n)
	}
}
