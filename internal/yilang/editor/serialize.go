package editor

import (
	"encoding/json"
	"errors"
)

// Сериализация документа целиком: {"root": {...}}. Формат хранится в базе
// как непрозрачная строка и обязан переживать круговой обход без потерь.

type serializedDocument struct {
	Root *SerializedNode `json:"root"`
}

var ErrNoRoot = errors.New("editor: serialized document has no root")

// ExportDocument сериализует дерево в JSON.
func ExportDocument(t *Tree) ([]byte, error) {
	return json.Marshal(serializedDocument{Root: exportNode(t, t.Root())})
}

func exportNode(t *Tree, n Node) *SerializedNode {
	s := n.Export()
	if _, ok := n.(*PlaceholderNode); ok {
		// Снимок placeholder уже содержит исходное поддерево
		return s
	}
	if n.CanHaveChildren() {
		if s.Children == nil {
			s.Children = []*SerializedNode{}
		}
		for _, c := range t.Children(n) {
			s.Children = append(s.Children, exportNode(t, c))
		}
	}
	return s
}

// ImportDocument восстанавливает дерево из JSON. Ноды неизвестных типов
// импортируются как placeholder и при экспорте возвращаются как были.
func ImportDocument(data []byte) (*Tree, error) {
	var doc serializedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Root == nil {
		return nil, ErrNoRoot
	}

	t := NewTree()
	err := t.Update(func(tx *Tx) error {
		for _, c := range doc.Root.Children {
			importNode(tx, tx.Root(), c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func importNode(tx *Tx, parent Node, s *SerializedNode) {
	imp, ok := importers[s.Type]
	var n Node
	if ok {
		n = imp(s)
	} else {
		n = &PlaceholderNode{Raw: s}
	}
	tx.Create(n)
	tx.AppendChild(parent, n)
	if _, placeholder := n.(*PlaceholderNode); placeholder {
		return
	}
	if n.CanHaveChildren() {
		for _, c := range s.Children {
			importNode(tx, n, c)
		}
	}
}
