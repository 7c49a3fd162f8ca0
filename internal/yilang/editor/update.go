package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

// Виды мутаций, вычисляемых после коммита транзакции.
type MutationKind int

const (
	MutationCreated MutationKind = iota
	MutationUpdated
	MutationDestroyed
)

func (k MutationKind) String() string {
	switch k {
	case MutationCreated:
		return "created"
	case MutationUpdated:
		return "updated"
	case MutationDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// MutationRecord описывает одно изменение ноды между снимками дерева.
// Для destroyed Node содержит последнее состояние ноды перед удалением.
type MutationRecord struct {
	Key      NodeKey
	NodeType string
	Kind     MutationKind
	Node     Node
}

// MutationListener получает мутации после каждой закоммиченной транзакции.
type MutationListener func([]MutationRecord)

// Transform - правило поддержания структурного инварианта для одного типа нод.
// Обязано быть идемпотентным: повторный запуск на валидном дереве ничего не меняет.
type Transform func(tx *Tx, n Node)

// Предел прогонов трансформаций в одной транзакции. Валидное дерево сходится
// за один-два прохода, предел защищает от неидемпотентных правил.
const maxTransformPasses = 64

var errTransformLoop = errors.New("editor: transforms did not converge")

// RegisterTransform регистрирует трансформацию для типа ноды.
func (t *Tree) RegisterTransform(nodeType string, fn Transform) {
	t.transforms[nodeType] = append(t.transforms[nodeType], fn)
}

// OnMutation подписывает слушателя на мутации дерева.
func (t *Tree) OnMutation(l MutationListener) {
	t.listeners = append(t.listeners, l)
}

// Tx - одна транзакция изменения дерева. Все мутации нод допустимы только
// внутри переданной в Update функции.
type Tx struct {
	tree  *Tree
	dirty map[NodeKey]bool
}

// Update выполняет транзакцию: пользовательскую функцию, затем прогон
// трансформаций до неподвижной точки, затем диф против снимка и доставку
// мутаций слушателям. Ошибка из fn откатывает дерево к прежнему состоянию.
// Повторный Update из слушателя или fn ставится в очередь, а не вкладывается.
func (t *Tree) Update(fn func(tx *Tx) error) error {
	if t.updating {
		t.queued = append(t.queued, fn)
		return nil
	}
	t.updating = true
	snap := t.snapshot()
	tx := &Tx{tree: t, dirty: make(map[NodeKey]bool)}

	err := fn(tx)
	if err == nil {
		err = t.runTransforms(tx)
	}
	t.updating = false

	if err != nil {
		t.restore(snap)
		return err
	}

	records := t.diff(snap)
	if len(records) > 0 {
		for _, l := range t.listeners {
			l(records)
		}
	}

	for len(t.queued) > 0 {
		next := t.queued[0]
		t.queued = t.queued[1:]
		if err := t.Update(next); err != nil {
			slog.Error("Queued tree update failed", "err", err)
		}
	}
	return nil
}

func (t *Tree) runTransforms(tx *Tx) error {
	for pass := 0; pass < maxTransformPasses; pass++ {
		pending := make([]NodeKey, 0, len(tx.dirty))
		for k := range tx.dirty {
			pending = append(pending, k)
		}
		if len(pending) == 0 {
			return nil
		}
		// Детерминированный порядок прогона
		sort.Slice(pending, func(i, j int) bool { return pending[i] < pending[j] })
		tx.dirty = make(map[NodeKey]bool)

		for _, key := range pending {
			n := t.nodes[key]
			if n == nil {
				continue
			}
			for _, fn := range t.transforms[n.Type()] {
				// Нода могла быть удалена предыдущим правилом
				if t.nodes[key] == nil {
					break
				}
				fn(tx, t.nodes[key])
			}
		}
	}
	return fmt.Errorf("%w after %d passes", errTransformLoop, maxTransformPasses)
}

func (t *Tree) diff(snap treeSnapshot) []MutationRecord {
	var records []MutationRecord
	keys := make([]NodeKey, 0, len(t.nodes))
	for k := range t.nodes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, k := range keys {
		cur := t.nodes[k]
		old, existed := snap.nodes[k]
		if !existed {
			records = append(records, MutationRecord{Key: k, NodeType: cur.Type(), Kind: MutationCreated, Node: cur})
			continue
		}
		if cur != old || !sameKeys(t.children[k], snap.children[k]) || t.parents[k] != snap.parents[k] {
			records = append(records, MutationRecord{Key: k, NodeType: cur.Type(), Kind: MutationUpdated, Node: cur})
		}
	}

	removed := make([]NodeKey, 0)
	for k := range snap.nodes {
		if _, ok := t.nodes[k]; !ok {
			removed = append(removed, k)
		}
	}
	sort.Slice(removed, func(i, j int) bool { return removed[i] < removed[j] })
	for _, k := range removed {
		old := snap.nodes[k]
		records = append(records, MutationRecord{Key: k, NodeType: old.Type(), Kind: MutationDestroyed, Node: old})
	}
	return records
}

func sameKeys(a, b []NodeKey) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// --- операции транзакции ---

// Create регистрирует новую ноду в арене со свежим ключом. Нода отсоединена,
// пока её не прикрепят через AppendChild/InsertBefore/InsertAfter/Replace.
func (tx *Tx) Create(n Node) Node {
	tx.tree.nextKey++
	key := newKey(tx.tree.nextKey)
	n.SetKey(key)
	tx.tree.nodes[key] = n
	tx.markDirty(key)
	return n
}

// Writable возвращает изменяемую копию ноды с тем же ключом и подменяет ею
// запись в арене. Все изменения полей выполняются на копии.
func (tx *Tx) Writable(n Node) Node {
	cur := tx.tree.nodes[n.Key()]
	if cur == nil {
		return n
	}
	c := cur.Clone()
	c.SetKey(n.Key())
	tx.tree.nodes[n.Key()] = c
	tx.markDirty(n.Key())
	return c
}

// AppendChild прикрепляет ноду последним ребенком родителя.
func (tx *Tx) AppendChild(parent, child Node) {
	tx.detach(child.Key())
	tx.tree.children[parent.Key()] = append(tx.tree.children[parent.Key()], child.Key())
	tx.tree.parents[child.Key()] = parent.Key()
	tx.markDirty(parent.Key())
	tx.markDirty(child.Key())
}

// InsertBefore прикрепляет ноду перед ref.
func (tx *Tx) InsertBefore(ref, n Node) {
	tx.insertAt(ref, n, 0)
}

// InsertAfter прикрепляет ноду после ref.
func (tx *Tx) InsertAfter(ref, n Node) {
	tx.insertAt(ref, n, 1)
}

func (tx *Tx) insertAt(ref, n Node, offset int) {
	pk, ok := tx.tree.parents[ref.Key()]
	if !ok {
		return
	}
	tx.detach(n.Key())
	keys := tx.tree.children[pk]
	idx := -1
	for i, k := range keys {
		if k == ref.Key() {
			idx = i + offset
			break
		}
	}
	if idx < 0 {
		return
	}
	keys = append(keys, "")
	copy(keys[idx+1:], keys[idx:])
	keys[idx] = n.Key()
	tx.tree.children[pk] = keys
	tx.tree.parents[n.Key()] = pk
	tx.markDirty(pk)
	tx.markDirty(n.Key())
}

// Remove удаляет ноду вместе с поддеревом из дерева и арены.
func (tx *Tx) Remove(n Node) {
	pk, attached := tx.tree.parents[n.Key()]
	tx.detach(n.Key())
	tx.removeSubtree(n.Key())
	if attached {
		tx.markDirty(pk)
	}
}

// Replace ставит new на место old. Поддерево old удаляется.
func (tx *Tx) Replace(old, new Node) {
	tx.insertAt(old, new, 0)
	tx.Remove(old)
}

// Unwrap поднимает детей ноды на её место у родителя и удаляет саму ноду.
func (tx *Tx) Unwrap(n Node) {
	pk, ok := tx.tree.parents[n.Key()]
	if !ok {
		tx.Remove(n)
		return
	}
	parent := tx.tree.nodes[pk]
	childKeys := append([]NodeKey(nil), tx.tree.children[n.Key()]...)
	ref := Node(n)
	for _, ck := range childKeys {
		child := tx.tree.nodes[ck]
		if child == nil {
			continue
		}
		tx.InsertAfter(ref, child)
		ref = child
	}
	tx.Remove(n)
	tx.markDirty(parent.Key())
}

func (tx *Tx) detach(key NodeKey) {
	pk, ok := tx.tree.parents[key]
	if !ok {
		return
	}
	keys := tx.tree.children[pk]
	for i, k := range keys {
		if k == key {
			tx.tree.children[pk] = append(keys[:i], keys[i+1:]...)
			break
		}
	}
	delete(tx.tree.parents, key)
	tx.markDirty(pk)
}

func (tx *Tx) removeSubtree(key NodeKey) {
	for _, ck := range tx.tree.children[key] {
		tx.removeSubtree(ck)
	}
	delete(tx.tree.children, key)
	delete(tx.tree.parents, key)
	delete(tx.tree.nodes, key)
	delete(tx.dirty, key)
}

func (tx *Tx) markDirty(key NodeKey) {
	if _, ok := tx.tree.nodes[key]; ok {
		tx.dirty[key] = true
	}
}

// --- чтение внутри транзакции ---

func (tx *Tx) Root() Node                 { return tx.tree.Root() }
func (tx *Tx) Node(key NodeKey) Node      { return tx.tree.Node(key) }
func (tx *Tx) Parent(n Node) Node         { return tx.tree.Parent(n) }
func (tx *Tx) Children(n Node) []Node     { return tx.tree.Children(n) }
func (tx *Tx) ChildCount(n Node) int      { return tx.tree.ChildCount(n) }
func (tx *Tx) FirstChild(n Node) Node     { return tx.tree.FirstChild(n) }
func (tx *Tx) LastChild(n Node) Node      { return tx.tree.LastChild(n) }
func (tx *Tx) NextSibling(n Node) Node    { return tx.tree.NextSibling(n) }
func (tx *Tx) PrevSibling(n Node) Node    { return tx.tree.PrevSibling(n) }
func (tx *Tx) IndexWithinParent(n Node) int { return tx.tree.IndexWithinParent(n) }
func (tx *Tx) TopLevelAncestor(n Node) Node { return tx.tree.TopLevelAncestor(n) }
func (tx *Tx) NearestRoot(n Node) Node    { return tx.tree.NearestRoot(n) }
func (tx *Tx) IsAttached(n Node) bool     { return tx.tree.IsAttached(n) }
func (tx *Tx) Walk(n Node, fn func(Node) bool) { tx.tree.Walk(n, fn) }
func (tx *Tx) TextContent(n Node) string  { return tx.tree.TextContent(n) }

// Selection возвращает текущее выделение.
func (tx *Tx) Selection() Selection { return tx.tree.selection }

// SetSelection устанавливает выделение.
func (tx *Tx) SetSelection(s Selection) { tx.tree.selection = s }
