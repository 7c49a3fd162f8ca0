// Пакет nodes определяет пользовательские типы нод документа YiLang
// (слова, предложения, грамматические заметки, диалоги, колонки, изображения,
// ремарки) вместе с их структурными трансформациями и сериализацией.
//
// Основные возможности:
//   - Вариант ноды на каждый вид аннотации с клонированием и предикатами.
//   - Круговой обход сериализации: deserialize(serialize(node)) дает ту же ноду.
//   - Идемпотентные правила починки структуры после произвольных правок.
package nodes

import (
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/editor"
)

const (
	TypeWord = "word"
)

// WordNode - отмеченное вхождение слова из словаря. Атомарная строчная нода:
// текст внутри не редактируется, нода удаляется или заменяется целиком.
// DatabaseID присваивается один раз после сохранения слова на сервере.
type WordNode struct {
	editor.InlineNode

	Word         string
	Translations []string
	DatabaseID   *string

	// IsAutoFill выставляется у вхождений, созданных массовой разметкой
	// всех совпадений, а не прямым действием пользователя.
	IsAutoFill bool
}

// NewWordNode создает ноду слова.
func NewWordNode(word string, translations []string) *WordNode {
	return &WordNode{Word: word, Translations: translations}
}

func (*WordNode) Type() string { return TypeWord }

func (n *WordNode) Clone() editor.Node {
	c := *n
	c.Translations = append([]string(nil), n.Translations...)
	if n.DatabaseID != nil {
		id := *n.DatabaseID
		c.DatabaseID = &id
	}
	return &c
}

func (n *WordNode) Export() *editor.SerializedNode {
	s := editor.NewSerializedNode(TypeWord, 1)
	s.SetField("word", n.Word)
	s.SetField("translations", n.Translations)
	s.SetField("databaseId", n.DatabaseID)
	s.SetField("isAutoFill", n.IsAutoFill)
	return s
}

func (*WordNode) CanBeEmpty() bool          { return false }
func (*WordNode) CanInsertTextBefore() bool { return false }
func (*WordNode) CanInsertTextAfter() bool  { return false }

func importWord(s *editor.SerializedNode) editor.Node {
	n := NewWordNode(s.String("word"), s.StringSlice("translations"))
	n.DatabaseID = s.StringPtr("databaseId")
	n.IsAutoFill = s.Bool("isAutoFill")
	return n
}
