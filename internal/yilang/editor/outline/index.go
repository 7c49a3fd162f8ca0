// Пакет outline ведет производный индекс аннотаций документа: снимки нод
// слов, предложения и грамматические заметки с флагами dirty/deleted, и
// сверяет его с удаленным хранилищем минимальным набором upsert/delete
// вызовов.
//
// Основные возможности:
//   - Индекс на сессию документа с явным жизненным циклом, без глобального состояния.
//   - Подавление ложных dirty: неизменившийся снимок не помечается грязным.
//   - Сверка: заметки раньше предложений, пакетные удаления, запись
//     полученных id обратно в живое дерево внутри транзакции.
//   - Защита от повторного входа: сверка поверх идущей сверки пропускается.
package outline

import (
	"strings"
	"sync"

	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/editor"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/editor/nodes"
)

// Пробел нулевой ширины, служебный спейсер курсора. В текст предложения не входит.
const zeroWidthSpace = "​"

// WordEntry - снимок ноды слова в индексе. Словарные записи сохраняются в
// момент вставки, поэтому у слов нет флагов dirty/deleted: запись живет, пока
// нода в дереве, и исчезает вместе с ней.
type WordEntry struct {
	Key          editor.NodeKey
	Word         string
	Translations []string
	DatabaseID   *string
	IsAutoFill   bool
}

// SentenceEntry - снимок ноды предложения. WordIDs - множество id слов
// внутри предложения, сравнивается без учета порядка.
type SentenceEntry struct {
	Key         editor.NodeKey
	Sentence    string
	Translation string
	DatabaseID  *string
	WordIDs     []string

	IsDirty   bool
	IsDeleted bool
}

// GrammarPointEntry - снимок грамматической заметки. Заголовком служит
// текст ноды заголовка.
type GrammarPointEntry struct {
	Key        editor.NodeKey
	Title      string
	DatabaseID *string

	IsDirty   bool
	IsDeleted bool
}

// Session - индекс аннотаций одной сессии редактирования документа.
// Создается при открытии документа, закрывается при уходе с него.
type Session struct {
	mu   sync.Mutex
	tree *editor.Tree

	documentID string
	languageID string

	words         map[editor.NodeKey]*WordEntry
	sentences     map[editor.NodeKey]*SentenceEntry
	grammarPoints map[editor.NodeKey]*GrammarPointEntry

	reconciling bool
	closed      bool
}

// NewSession создает индекс и подписывает его на мутации дерева.
func NewSession(tree *editor.Tree, documentID, languageID string) *Session {
	s := &Session{
		tree:          tree,
		documentID:    documentID,
		languageID:    languageID,
		words:         make(map[editor.NodeKey]*WordEntry),
		sentences:     make(map[editor.NodeKey]*SentenceEntry),
		grammarPoints: make(map[editor.NodeKey]*GrammarPointEntry),
	}
	tree.OnMutation(s.handleMutations)
	return s
}

// Close отключает сессию: дальнейшие мутации игнорируются.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.words = map[editor.NodeKey]*WordEntry{}
	s.sentences = map[editor.NodeKey]*SentenceEntry{}
	s.grammarPoints = map[editor.NodeKey]*GrammarPointEntry{}
}

// DocumentLoaded перестраивает индекс по дереву и помечает всё чистым:
// свежезагруженный документ совпадает с удаленным состоянием.
func (s *Session) DocumentLoaded() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = map[editor.NodeKey]*WordEntry{}
	s.sentences = map[editor.NodeKey]*SentenceEntry{}
	s.grammarPoints = map[editor.NodeKey]*GrammarPointEntry{}

	s.tree.Walk(s.tree.Root(), func(n editor.Node) bool {
		switch node := n.(type) {
		case *nodes.WordNode:
			s.words[n.Key()] = wordSnapshot(node)
		case *nodes.SentenceNode:
			s.sentences[n.Key()] = s.sentenceSnapshot(node)
		case *nodes.GrammarPointContainerNode:
			s.grammarPoints[n.Key()] = s.grammarPointSnapshot(node)
		}
		return true
	})
}

// DocumentCleared полностью очищает индекс.
func (s *Session) DocumentCleared() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = map[editor.NodeKey]*WordEntry{}
	s.sentences = map[editor.NodeKey]*SentenceEntry{}
	s.grammarPoints = map[editor.NodeKey]*GrammarPointEntry{}
}

func (s *Session) handleMutations(records []editor.MutationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	// Затронутые предложения пересчитываются после обработки записей:
	// изменение слова меняет множество WordIDs его предложения.
	touchedSentences := make(map[editor.NodeKey]bool)

	for _, rec := range records {
		switch rec.NodeType {
		case nodes.TypeWord:
			s.applyWordMutation(rec)
			if rec.Kind != editor.MutationDestroyed {
				if sentence := s.sentenceAncestor(rec.Node); sentence != nil {
					touchedSentences[sentence.Key()] = true
				}
			}
		case nodes.TypeSentence:
			s.applySentenceMutation(rec)
		case nodes.TypeGrammarPointContainer, nodes.TypeGrammarPointTitle:
			s.applyGrammarPointMutation(rec)
		}
	}

	for key := range touchedSentences {
		if node, ok := s.tree.Node(key).(*nodes.SentenceNode); ok {
			s.refreshSentence(node)
		}
	}
}

func (s *Session) applyWordMutation(rec editor.MutationRecord) {
	switch rec.Kind {
	case editor.MutationCreated:
		s.words[rec.Key] = wordSnapshot(rec.Node.(*nodes.WordNode))
	case editor.MutationUpdated:
		node, ok := s.tree.Node(rec.Key).(*nodes.WordNode)
		if !ok {
			return
		}
		snap := wordSnapshot(node)
		if prev, ok := s.words[rec.Key]; ok && sameWord(prev, snap) {
			return
		}
		s.words[rec.Key] = snap
	case editor.MutationDestroyed:
		// Удаление ноды не трогает словарную запись на сервере
		delete(s.words, rec.Key)
	}
}

func (s *Session) applySentenceMutation(rec editor.MutationRecord) {
	switch rec.Kind {
	case editor.MutationCreated, editor.MutationUpdated:
		node, ok := s.tree.Node(rec.Key).(*nodes.SentenceNode)
		if !ok {
			return
		}
		s.refreshSentence(node)
	case editor.MutationDestroyed:
		prev, ok := s.sentences[rec.Key]
		if !ok {
			return
		}
		if prev.DatabaseID == nil {
			delete(s.sentences, rec.Key)
			return
		}
		prev.IsDeleted = true
	}
}

func (s *Session) refreshSentence(node *nodes.SentenceNode) {
	snap := s.sentenceSnapshot(node)
	prev, ok := s.sentences[node.Key()]
	if ok && sameSentence(prev, snap) {
		return
	}
	snap.IsDirty = true
	s.sentences[node.Key()] = snap
}

func (s *Session) applyGrammarPointMutation(rec editor.MutationRecord) {
	// Мутации заголовка приводят к пересчету контейнера
	var container *nodes.GrammarPointContainerNode
	switch rec.NodeType {
	case nodes.TypeGrammarPointContainer:
		if rec.Kind == editor.MutationDestroyed {
			prev, ok := s.grammarPoints[rec.Key]
			if !ok {
				return
			}
			if prev.DatabaseID == nil {
				delete(s.grammarPoints, rec.Key)
				return
			}
			prev.IsDeleted = true
			return
		}
		container, _ = s.tree.Node(rec.Key).(*nodes.GrammarPointContainerNode)
	case nodes.TypeGrammarPointTitle:
		if rec.Kind == editor.MutationDestroyed {
			return
		}
		if title := s.tree.Node(rec.Key); title != nil {
			container, _ = s.tree.Parent(title).(*nodes.GrammarPointContainerNode)
		}
	}
	if container == nil {
		return
	}

	snap := s.grammarPointSnapshot(container)
	prev, ok := s.grammarPoints[container.Key()]
	if ok && sameGrammarPoint(prev, snap) {
		return
	}
	snap.IsDirty = true
	s.grammarPoints[container.Key()] = snap
}

// --- снимки ---

func wordSnapshot(n *nodes.WordNode) *WordEntry {
	e := &WordEntry{
		Key:          n.Key(),
		Word:         n.Word,
		Translations: append([]string(nil), n.Translations...),
		IsAutoFill:   n.IsAutoFill,
	}
	if n.DatabaseID != nil {
		id := *n.DatabaseID
		e.DatabaseID = &id
	}
	return e
}

func (s *Session) sentenceSnapshot(n *nodes.SentenceNode) *SentenceEntry {
	e := &SentenceEntry{
		Key:         n.Key(),
		Translation: n.Translation,
	}
	if n.DatabaseID != nil {
		id := *n.DatabaseID
		e.DatabaseID = &id
	}

	var text strings.Builder
	s.tree.Walk(n, func(c editor.Node) bool {
		switch cn := c.(type) {
		case *editor.TextNode:
			if cn.Text != zeroWidthSpace {
				text.WriteString(cn.Text)
			}
		case *editor.LineBreakNode:
			text.WriteString("\n")
		case *nodes.WordNode:
			text.WriteString(cn.Word)
			if cn.DatabaseID != nil {
				e.WordIDs = append(e.WordIDs, *cn.DatabaseID)
			}
		}
		return true
	})
	e.Sentence = text.String()
	return e
}

func (s *Session) grammarPointSnapshot(n *nodes.GrammarPointContainerNode) *GrammarPointEntry {
	e := &GrammarPointEntry{Key: n.Key()}
	if n.DatabaseID != nil {
		id := *n.DatabaseID
		e.DatabaseID = &id
	}
	if title, ok := s.tree.FirstChild(n).(*nodes.GrammarPointTitleNode); ok {
		e.Title = s.tree.TextContent(title)
	}
	return e
}

func (s *Session) sentenceAncestor(n editor.Node) *nodes.SentenceNode {
	for cur := n; cur != nil; cur = s.tree.Parent(cur) {
		if sn, ok := cur.(*nodes.SentenceNode); ok {
			return sn
		}
	}
	return nil
}

// --- сравнение снимков ---

func sameWord(a, b *WordEntry) bool {
	return a.Word == b.Word &&
		a.IsAutoFill == b.IsAutoFill &&
		samePtr(a.DatabaseID, b.DatabaseID) &&
		sameSlice(a.Translations, b.Translations)
}

func sameSentence(a, b *SentenceEntry) bool {
	return a.Sentence == b.Sentence &&
		a.Translation == b.Translation &&
		samePtr(a.DatabaseID, b.DatabaseID) &&
		sameSet(a.WordIDs, b.WordIDs)
}

func sameGrammarPoint(a, b *GrammarPointEntry) bool {
	return a.Title == b.Title && samePtr(a.DatabaseID, b.DatabaseID)
}

func samePtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameSlice(a, b []string) bool {
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

// sameSet сравнивает множества id без учета порядка.
func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, v := range a {
		seen[v]++
	}
	for _, v := range b {
		seen[v]--
		if seen[v] < 0 {
			return false
		}
	}
	return true
}

// Words возвращает копию записей слов. Для тестов и отладочных панелей.
func (s *Session) Words() []WordEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]WordEntry, 0, len(s.words))
	for _, e := range s.words {
		res = append(res, *e)
	}
	return res
}

// Sentences возвращает копию записей предложений.
func (s *Session) Sentences() []SentenceEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]SentenceEntry, 0, len(s.sentences))
	for _, e := range s.sentences {
		res = append(res, *e)
	}
	return res
}

// GrammarPoints возвращает копию записей заметок.
func (s *Session) GrammarPoints() []GrammarPointEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]GrammarPointEntry, 0, len(s.grammarPoints))
	for _, e := range s.grammarPoints {
		res = append(res, *e)
	}
	return res
}
