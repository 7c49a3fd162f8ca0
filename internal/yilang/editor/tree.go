package editor

// Tree - арена нод документа. Дети хранятся как упорядоченный список ключей,
// принадлежащий дереву; родитель - обратная ссылка без владения.
// Все мутации проходят через Update, чтение между транзакциями свободно.
type Tree struct {
	nodes    map[NodeKey]Node
	children map[NodeKey][]NodeKey
	parents  map[NodeKey]NodeKey

	nextKey   uint64
	selection Selection

	listeners  []MutationListener
	commands   map[string][]registeredCommand
	transforms map[string][]Transform

	updating bool
	queued   []func(*Tx) error
}

// NewTree создает дерево с пустым корнем.
func NewTree() *Tree {
	t := &Tree{
		nodes:      make(map[NodeKey]Node),
		children:   make(map[NodeKey][]NodeKey),
		parents:    make(map[NodeKey]NodeKey),
		commands:   make(map[string][]registeredCommand),
		transforms: make(map[string][]Transform),
	}
	root := NewRootNode()
	root.SetKey(RootKey)
	t.nodes[RootKey] = root
	t.children[RootKey] = []NodeKey{}
	return t
}

// Root возвращает корневую ноду.
func (t *Tree) Root() Node { return t.nodes[RootKey] }

// Node возвращает ноду по ключу, nil если нода не существует.
func (t *Tree) Node(key NodeKey) Node { return t.nodes[key] }

// Parent возвращает родителя ноды, nil для корня и отсоединенных нод.
func (t *Tree) Parent(n Node) Node {
	if n == nil {
		return nil
	}
	pk, ok := t.parents[n.Key()]
	if !ok {
		return nil
	}
	return t.nodes[pk]
}

// Children возвращает детей ноды в порядке следования.
func (t *Tree) Children(n Node) []Node {
	keys := t.children[n.Key()]
	res := make([]Node, 0, len(keys))
	for _, k := range keys {
		if c := t.nodes[k]; c != nil {
			res = append(res, c)
		}
	}
	return res
}

// ChildCount возвращает количество детей ноды.
func (t *Tree) ChildCount(n Node) int { return len(t.children[n.Key()]) }

// FirstChild возвращает первого ребенка или nil.
func (t *Tree) FirstChild(n Node) Node {
	keys := t.children[n.Key()]
	if len(keys) == 0 {
		return nil
	}
	return t.nodes[keys[0]]
}

// LastChild возвращает последнего ребенка или nil.
func (t *Tree) LastChild(n Node) Node {
	keys := t.children[n.Key()]
	if len(keys) == 0 {
		return nil
	}
	return t.nodes[keys[len(keys)-1]]
}

// IndexWithinParent возвращает позицию ноды среди детей родителя, -1 для отсоединенных.
func (t *Tree) IndexWithinParent(n Node) int {
	pk, ok := t.parents[n.Key()]
	if !ok {
		return -1
	}
	for i, k := range t.children[pk] {
		if k == n.Key() {
			return i
		}
	}
	return -1
}

// NextSibling возвращает следующего соседа или nil.
func (t *Tree) NextSibling(n Node) Node {
	pk, ok := t.parents[n.Key()]
	if !ok {
		return nil
	}
	keys := t.children[pk]
	for i, k := range keys {
		if k == n.Key() && i+1 < len(keys) {
			return t.nodes[keys[i+1]]
		}
	}
	return nil
}

// PrevSibling возвращает предыдущего соседа или nil.
func (t *Tree) PrevSibling(n Node) Node {
	pk, ok := t.parents[n.Key()]
	if !ok {
		return nil
	}
	keys := t.children[pk]
	for i, k := range keys {
		if k == n.Key() && i > 0 {
			return t.nodes[keys[i-1]]
		}
	}
	return nil
}

// IsAttached сообщает, достижима ли нода от корня.
func (t *Tree) IsAttached(n Node) bool {
	if n == nil {
		return false
	}
	key := n.Key()
	for key != RootKey {
		pk, ok := t.parents[key]
		if !ok {
			return false
		}
		key = pk
	}
	return true
}

// TopLevelAncestor возвращает предка ноды, являющегося прямым ребенком
// ближайшего корня (настоящего или теневого), или саму ноду.
func (t *Tree) TopLevelAncestor(n Node) Node {
	cur := n
	for {
		p := t.Parent(cur)
		if p == nil {
			return cur
		}
		if isRootLike(p) {
			return cur
		}
		cur = p
	}
}

// NearestRoot возвращает ближайший корень над нодой: настоящий корень
// или теневой подкорень (контент грамматической заметки).
func (t *Tree) NearestRoot(n Node) Node {
	cur := t.Parent(n)
	for cur != nil {
		if isRootLike(cur) {
			return cur
		}
		cur = t.Parent(cur)
	}
	return t.Root()
}

// ShadowRoot помечает ноды, выступающие подкорнем для нормализации детей.
type ShadowRoot interface {
	IsShadowRoot()
}

func isRootLike(n Node) bool {
	if _, ok := n.(*RootNode); ok {
		return true
	}
	_, shadow := n.(ShadowRoot)
	return shadow
}

// Walk обходит поддерево в прямом порядке. Возврат false прерывает спуск в детей.
func (t *Tree) Walk(n Node, fn func(Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, k := range t.children[n.Key()] {
		if c := t.nodes[k]; c != nil {
			t.Walk(c, fn)
		}
	}
}

// TextContent собирает текстовое содержимое поддерева.
func (t *Tree) TextContent(n Node) string {
	var out string
	t.Walk(n, func(c Node) bool {
		switch cn := c.(type) {
		case *TextNode:
			out += cn.Text
		case *LineBreakNode:
			out += "\n"
		}
		return true
	})
	return out
}

// Selection возвращает текущее выделение, nil если его нет.
func (t *Tree) Selection() Selection { return t.selection }

func (t *Tree) snapshot() treeSnapshot {
	s := treeSnapshot{
		nodes:     make(map[NodeKey]Node, len(t.nodes)),
		children:  make(map[NodeKey][]NodeKey, len(t.children)),
		parents:   make(map[NodeKey]NodeKey, len(t.parents)),
		selection: t.selection,
		nextKey:   t.nextKey,
	}
	for k, v := range t.nodes {
		s.nodes[k] = v
	}
	for k, v := range t.children {
		cp := make([]NodeKey, len(v))
		copy(cp, v)
		s.children[k] = cp
	}
	for k, v := range t.parents {
		s.parents[k] = v
	}
	return s
}

func (t *Tree) restore(s treeSnapshot) {
	t.nodes = s.nodes
	t.children = s.children
	t.parents = s.parents
	t.selection = s.selection
	t.nextKey = s.nextKey
}

type treeSnapshot struct {
	nodes     map[NodeKey]Node
	children  map[NodeKey][]NodeKey
	parents   map[NodeKey]NodeKey
	selection Selection
	nextKey   uint64
}
