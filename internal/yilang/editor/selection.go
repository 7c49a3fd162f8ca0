package editor

// Выделение в документе: диапазон между двумя точками в текстовых нодах
// или явный набор нод.

// Point - позиция внутри текстовой ноды.
type Point struct {
	Key    NodeKey
	Offset int
}

type Selection interface {
	isSelection()
}

// RangeSelection - диапазон от якоря до фокуса. Якорь и фокус могут совпадать
// (схлопнутое выделение - курсор).
type RangeSelection struct {
	Anchor Point
	Focus  Point
}

func (*RangeSelection) isSelection() {}

// Collapsed сообщает, схлопнут ли диапазон в курсор.
func (s *RangeSelection) Collapsed() bool {
	return s.Anchor == s.Focus
}

// NodeSelection - явный набор выбранных нод.
type NodeSelection struct {
	Keys []NodeKey
}

func (*NodeSelection) isSelection() {}

// Contains проверяет вхождение ключа в набор.
func (s *NodeSelection) Contains(key NodeKey) bool {
	for _, k := range s.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// CollapseTo устанавливает курсор в позицию точки.
func (tx *Tx) CollapseTo(p Point) {
	tx.SetSelection(&RangeSelection{Anchor: p, Focus: p})
}

// SelectNode выделяет одну ноду.
func (tx *Tx) SelectNode(n Node) {
	tx.SetSelection(&NodeSelection{Keys: []NodeKey{n.Key()}})
}

// SelectStart ставит курсор в начало первой текстовой ноды поддерева.
// Если текста нет, нода выделяется целиком.
func (tx *Tx) SelectStart(n Node) {
	var first *TextNode
	tx.Walk(n, func(c Node) bool {
		if first != nil {
			return false
		}
		if t, ok := c.(*TextNode); ok {
			first = t
			return false
		}
		return true
	})
	if first != nil {
		tx.CollapseTo(Point{Key: first.Key(), Offset: 0})
		return
	}
	tx.SelectNode(n)
}

// SelectedNodes возвращает ноды, затронутые выделением: для NodeSelection -
// сами ноды, для RangeSelection - текстовые ноды между якорем и фокусом
// включительно в порядке документа.
func (tx *Tx) SelectedNodes(s Selection) []Node {
	switch sel := s.(type) {
	case *NodeSelection:
		res := make([]Node, 0, len(sel.Keys))
		for _, k := range sel.Keys {
			if n := tx.Node(k); n != nil {
				res = append(res, n)
			}
		}
		return res
	case *RangeSelection:
		anchor := tx.Node(sel.Anchor.Key)
		focus := tx.Node(sel.Focus.Key)
		if anchor == nil || focus == nil {
			return nil
		}
		if sel.Anchor.Key == sel.Focus.Key {
			return []Node{anchor}
		}
		var res []Node
		collecting := false
		tx.Walk(tx.Root(), func(n Node) bool {
			if n.Key() == sel.Anchor.Key || n.Key() == sel.Focus.Key {
				if collecting {
					res = append(res, n)
					collecting = false
					return true
				}
				collecting = true
			}
			if collecting && !n.CanHaveChildren() {
				res = append(res, n)
			}
			return true
		})
		return res
	}
	return nil
}

// SelectedTopLevelBlocks возвращает верхнеуровневых предков затронутых нод
// без дубликатов, в порядке документа.
func (tx *Tx) SelectedTopLevelBlocks(s Selection) []Node {
	seen := make(map[NodeKey]bool)
	var res []Node
	for _, n := range tx.SelectedNodes(s) {
		top := tx.TopLevelAncestor(n)
		if top == nil || seen[top.Key()] {
			continue
		}
		seen[top.Key()] = true
		res = append(res, top)
	}
	return res
}

// SelectionInside проверяет, что все затронутые выделением ноды лежат внутри
// предка, удовлетворяющего предикату. Возвращает общего предка или nil.
func (tx *Tx) SelectionInside(s Selection, match func(Node) bool) Node {
	nodes := tx.SelectedNodes(s)
	if len(nodes) == 0 {
		return nil
	}
	var common Node
	for _, n := range nodes {
		anc := tx.ancestorMatching(n, match)
		if anc == nil {
			return nil
		}
		if common == nil {
			common = anc
		} else if common.Key() != anc.Key() {
			return nil
		}
	}
	return common
}

func (tx *Tx) ancestorMatching(n Node, match func(Node) bool) Node {
	cur := n
	for cur != nil {
		if match(cur) {
			return cur
		}
		cur = tx.Parent(cur)
	}
	return nil
}

// SplitText разрезает текстовую ноду в позиции offset и возвращает обе части.
// При offset на границе возвращает ноду без разреза.
func (tx *Tx) SplitText(n *TextNode, offset int) (*TextNode, *TextNode) {
	runes := []rune(n.Text)
	if offset <= 0 {
		return nil, n
	}
	if offset >= len(runes) {
		return n, nil
	}
	left := tx.Writable(n).(*TextNode)
	left.Text = string(runes[:offset])
	right := NewTextNode(string(runes[offset:]))
	right.Format = n.Format
	tx.Create(right)
	tx.InsertAfter(left, right)
	return left, right
}
