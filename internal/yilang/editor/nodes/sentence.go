package nodes

import (
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/editor"
)

const (
	TypeSentence       = "sentence"
	TypeSentenceToggle = "sentence-toggle"
)

// SentenceNode группирует пробег строчного контента в одну переводимую
// единицу. Инварианты: последним ребенком всегда стоит ровно один тоггл,
// пустое предложение (без контента кроме тоггла) удаляется, предложения
// не вкладываются и не стоят вплотную - соседние сливаются.
type SentenceNode struct {
	editor.BlockNode

	Translation     string
	DatabaseID      *string
	ShowTranslation bool
}

// NewSentenceNode создает пустую ноду предложения. Тоггл добавляет
// трансформация после прикрепления.
func NewSentenceNode(translation string) *SentenceNode {
	return &SentenceNode{Translation: translation}
}

func (*SentenceNode) Type() string { return TypeSentence }

func (n *SentenceNode) Clone() editor.Node {
	c := *n
	if n.DatabaseID != nil {
		id := *n.DatabaseID
		c.DatabaseID = &id
	}
	return &c
}

func (n *SentenceNode) Export() *editor.SerializedNode {
	s := editor.NewSerializedNode(TypeSentence, 1)
	s.SetField("translation", n.Translation)
	s.SetField("databaseId", n.DatabaseID)
	s.SetField("showTranslation", n.ShowTranslation)
	return s
}

func (*SentenceNode) CanBeEmpty() bool { return false }
func (*SentenceNode) IsInline() bool   { return true }

// SentenceToggleNode - служебный лист в конце предложения, раскрывающий
// перевод. Контентом не считается.
type SentenceToggleNode struct {
	editor.InlineNode
}

func NewSentenceToggleNode() *SentenceToggleNode { return &SentenceToggleNode{} }

func (*SentenceToggleNode) Type() string { return TypeSentenceToggle }

func (n *SentenceToggleNode) Clone() editor.Node {
	c := *n
	return &c
}

func (n *SentenceToggleNode) Export() *editor.SerializedNode {
	return editor.NewSerializedNode(TypeSentenceToggle, 1)
}

func (*SentenceToggleNode) CanBeEmpty() bool          { return false }
func (*SentenceToggleNode) CanInsertTextBefore() bool { return false }

func importSentence(s *editor.SerializedNode) editor.Node {
	n := NewSentenceNode(s.String("translation"))
	n.DatabaseID = s.StringPtr("databaseId")
	n.ShowTranslation = s.Bool("showTranslation")
	return n
}

// transformSentence поддерживает инварианты предложения.
func transformSentence(tx *editor.Tx, n editor.Node) {
	sentence := n.(*SentenceNode)
	if !tx.IsAttached(sentence) {
		return
	}

	// Вложенное предложение разворачивается в содержимое внешнего
	if outer := sentenceAncestor(tx, tx.Parent(sentence)); outer != nil {
		removeToggles(tx, sentence)
		tx.Unwrap(sentence)
		return
	}

	// Соседние предложения сливаются: содержимое правого переезжает
	// в левое перед его тогглом
	if prev, ok := tx.PrevSibling(sentence).(*SentenceNode); ok {
		removeToggles(tx, sentence)
		for _, c := range tx.Children(sentence) {
			appendBeforeToggle(tx, prev, c)
		}
		tx.Remove(sentence)
		return
	}

	// Ровно один тоггл, последним ребенком
	var toggle editor.Node
	for _, c := range tx.Children(sentence) {
		if _, ok := c.(*SentenceToggleNode); ok {
			if toggle != nil {
				tx.Remove(c)
				continue
			}
			toggle = c
		}
	}
	if toggle == nil {
		toggle = tx.Create(NewSentenceToggleNode())
		tx.AppendChild(sentence, toggle)
	} else if tx.LastChild(sentence) != toggle {
		tx.AppendChild(sentence, toggle)
	}

	// Без настоящего контента предложение не живет
	if !hasSentenceContent(tx, sentence) {
		tx.Remove(sentence)
	}
}

// transformSentenceToggle удаляет тоггл вне предложения.
func transformSentenceToggle(tx *editor.Tx, n editor.Node) {
	if !tx.IsAttached(n) {
		return
	}
	if _, ok := tx.Parent(n).(*SentenceNode); !ok {
		tx.Remove(n)
	}
}

func sentenceAncestor(tx *editor.Tx, n editor.Node) *SentenceNode {
	for cur := n; cur != nil; cur = tx.Parent(cur) {
		if s, ok := cur.(*SentenceNode); ok {
			return s
		}
	}
	return nil
}

func removeToggles(tx *editor.Tx, sentence *SentenceNode) {
	for _, c := range tx.Children(sentence) {
		if _, ok := c.(*SentenceToggleNode); ok {
			tx.Remove(c)
		}
	}
}

func appendBeforeToggle(tx *editor.Tx, sentence *SentenceNode, n editor.Node) {
	if last := tx.LastChild(sentence); last != nil {
		if _, ok := last.(*SentenceToggleNode); ok {
			tx.InsertBefore(last, n)
			return
		}
	}
	tx.AppendChild(sentence, n)
}

func hasSentenceContent(tx *editor.Tx, sentence *SentenceNode) bool {
	for _, c := range tx.Children(sentence) {
		switch cn := c.(type) {
		case *SentenceToggleNode:
			continue
		case *editor.TextNode:
			if cn.Text != "" {
				return true
			}
		default:
			return true
		}
	}
	return false
}
