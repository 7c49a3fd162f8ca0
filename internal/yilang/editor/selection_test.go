package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// threeParagraphs строит документ из трех параграфов с одной текстовой
// нодой в каждом и возвращает текстовые ноды.
func threeParagraphs(t *testing.T, tree *Tree) []*TextNode {
	var texts []*TextNode
	err := tree.Update(func(tx *Tx) error {
		for _, s := range []string{"one", "two", "three"} {
			p := tx.Create(NewParagraphNode())
			tx.AppendChild(tx.Root(), p)
			n := tx.Create(NewTextNode(s)).(*TextNode)
			tx.AppendChild(p, n)
			texts = append(texts, n)
		}
		return nil
	})
	assert.NoError(t, err)
	return texts
}

func TestSelectedNodesRange(t *testing.T) {
	tree := NewTree()
	texts := threeParagraphs(t, tree)

	err := tree.Update(func(tx *Tx) error {
		sel := &RangeSelection{
			Anchor: Point{Key: texts[0].Key(), Offset: 0},
			Focus:  Point{Key: texts[2].Key(), Offset: 5},
		}
		got := tx.SelectedNodes(sel)
		assert.Len(t, got, 3)
		for i, n := range got {
			assert.Equal(t, texts[i].Key(), n.Key())
		}

		collapsed := &RangeSelection{
			Anchor: Point{Key: texts[1].Key(), Offset: 1},
			Focus:  Point{Key: texts[1].Key(), Offset: 1},
		}
		got = tx.SelectedNodes(collapsed)
		assert.Len(t, got, 1)
		assert.Equal(t, texts[1].Key(), got[0].Key())
		return nil
	})
	assert.NoError(t, err)
}

func TestSelectedTopLevelBlocks(t *testing.T) {
	tree := NewTree()
	texts := threeParagraphs(t, tree)

	err := tree.Update(func(tx *Tx) error {
		sel := &RangeSelection{
			Anchor: Point{Key: texts[0].Key(), Offset: 0},
			Focus:  Point{Key: texts[2].Key(), Offset: 0},
		}
		blocks := tx.SelectedTopLevelBlocks(sel)
		assert.Len(t, blocks, 3)
		for _, b := range blocks {
			assert.IsType(t, &ParagraphNode{}, b)
			assert.Equal(t, tx.Root().Key(), tx.Parent(b).Key())
		}
		return nil
	})
	assert.NoError(t, err)
}

func TestSelectionInside(t *testing.T) {
	tree := NewTree()
	texts := threeParagraphs(t, tree)

	isParagraph := func(n Node) bool {
		_, ok := n.(*ParagraphNode)
		return ok
	}

	err := tree.Update(func(tx *Tx) error {
		inside := &RangeSelection{
			Anchor: Point{Key: texts[0].Key(), Offset: 0},
			Focus:  Point{Key: texts[0].Key(), Offset: 2},
		}
		assert.NotNil(t, tx.SelectionInside(inside, isParagraph))

		// Разные параграфы - общего предка-параграфа нет
		across := &RangeSelection{
			Anchor: Point{Key: texts[0].Key(), Offset: 0},
			Focus:  Point{Key: texts[1].Key(), Offset: 0},
		}
		assert.Nil(t, tx.SelectionInside(across, isParagraph))
		return nil
	})
	assert.NoError(t, err)
}

func TestSelectStart(t *testing.T) {
	tree := NewTree()
	texts := threeParagraphs(t, tree)

	err := tree.Update(func(tx *Tx) error {
		tx.SelectStart(tx.Root())
		sel, ok := tx.Selection().(*RangeSelection)
		assert.True(t, ok)
		assert.True(t, sel.Collapsed())
		assert.Equal(t, texts[0].Key(), sel.Anchor.Key)
		assert.Equal(t, 0, sel.Anchor.Offset)

		// Без текста внутри выделяется сама нода
		empty := tx.Create(NewParagraphNode())
		tx.AppendChild(tx.Root(), empty)
		tx.SelectStart(empty)
		node, ok := tx.Selection().(*NodeSelection)
		assert.True(t, ok)
		assert.True(t, node.Contains(empty.Key()))
		return nil
	})
	assert.NoError(t, err)
}
