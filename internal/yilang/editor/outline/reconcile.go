package outline

import (
	"context"
	"fmt"
	"sort"

	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/editor"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/editor/nodes"
)

// GrammarPointUpsert - полезная нагрузка сохранения заметки.
// Nil ID означает создание, непустой - обновление.
type GrammarPointUpsert struct {
	ID               *string
	Title            string
	SourceDocumentID string
	LanguageID       string
}

// SentenceUpsert - полезная нагрузка сохранения предложения.
type SentenceUpsert struct {
	ID               *string
	Sentence         string
	Translation      string
	ContainingWords  []string
	SourceDocumentID string
	LanguageID       string
}

// PersistClient - удаленное хранилище аннотаций. Upsert возвращает id записи.
type PersistClient interface {
	UpsertGrammarPoint(ctx context.Context, payload GrammarPointUpsert) (string, error)
	DeleteGrammarPoints(ctx context.Context, ids []string) error
	UpsertSentence(ctx context.Context, payload SentenceUpsert) (string, error)
	DeleteSentences(ctx context.Context, ids []string) error
}

// ItemError - ошибка сохранения одной записи. Запись остается грязной
// и будет повторена при следующей сверке.
type ItemError struct {
	Entity string
	Key    editor.NodeKey
	Err    error
}

func (e ItemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Entity, e.Key, e.Err)
}

// Result - итог одной сверки.
type Result struct {
	Skipped bool

	GrammarPointsUpserted int
	SentencesUpserted     int
	GrammarPointsDeleted  int
	SentencesDeleted      int

	Failed []ItemError
}

// Reconcile сверяет индекс с удаленным хранилищем: создает и обновляет
// грязные заметки и предложения, пакетно удаляет помеченные удаленными,
// записывает выданные id обратно в дерево и помечает выжившие записи чистыми.
//
// Заметки сохраняются раньше предложений. Повторный вход поверх идущей
// сверки пропускается с Result.Skipped. Ошибка отдельной записи не
// прерывает сверку: запись попадает в Result.Failed и остается грязной.
func (s *Session) Reconcile(ctx context.Context, client PersistClient) (Result, error) {
	s.mu.Lock()
	if s.reconciling || s.closed {
		s.mu.Unlock()
		return Result{Skipped: true}, nil
	}
	s.reconciling = true

	dirtyGPs := make([]*GrammarPointEntry, 0)
	for _, e := range s.grammarPoints {
		if e.IsDirty && !e.IsDeleted {
			dirtyGPs = append(dirtyGPs, e)
		}
	}
	dirtySentences := make([]*SentenceEntry, 0)
	for _, e := range s.sentences {
		if e.IsDirty && !e.IsDeleted {
			dirtySentences = append(dirtySentences, e)
		}
	}
	deletedGPs := make([]*GrammarPointEntry, 0)
	for _, e := range s.grammarPoints {
		if e.IsDeleted {
			deletedGPs = append(deletedGPs, e)
		}
	}
	deletedSentences := make([]*SentenceEntry, 0)
	for _, e := range s.sentences {
		if e.IsDeleted {
			deletedSentences = append(deletedSentences, e)
		}
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.reconciling = false
		s.mu.Unlock()
	}()

	// Детерминированный порядок обхода
	sort.Slice(dirtyGPs, func(i, j int) bool { return dirtyGPs[i].Key < dirtyGPs[j].Key })
	sort.Slice(dirtySentences, func(i, j int) bool { return dirtySentences[i].Key < dirtySentences[j].Key })

	var res Result

	for _, e := range dirtyGPs {
		id, err := client.UpsertGrammarPoint(ctx, GrammarPointUpsert{
			ID:               e.DatabaseID,
			Title:            e.Title,
			SourceDocumentID: s.documentID,
			LanguageID:       s.languageID,
		})
		if err != nil {
			res.Failed = append(res.Failed, ItemError{Entity: "grammarPoint", Key: e.Key, Err: err})
			continue
		}
		s.writeBackGrammarPointID(e.Key, id)
		s.markGrammarPointClean(e.Key, id)
		res.GrammarPointsUpserted++
	}

	for _, e := range dirtySentences {
		id, err := client.UpsertSentence(ctx, SentenceUpsert{
			ID:               e.DatabaseID,
			Sentence:         e.Sentence,
			Translation:      e.Translation,
			ContainingWords:  append([]string(nil), e.WordIDs...),
			SourceDocumentID: s.documentID,
			LanguageID:       s.languageID,
		})
		if err != nil {
			res.Failed = append(res.Failed, ItemError{Entity: "sentence", Key: e.Key, Err: err})
			continue
		}
		s.writeBackSentenceID(e.Key, id)
		s.markSentenceClean(e.Key, id)
		res.SentencesUpserted++
	}

	if ids := collectGPIDs(deletedGPs); len(ids) > 0 {
		if err := client.DeleteGrammarPoints(ctx, ids); err != nil {
			for _, e := range deletedGPs {
				res.Failed = append(res.Failed, ItemError{Entity: "grammarPoint", Key: e.Key, Err: err})
			}
		} else {
			s.dropGrammarPoints(deletedGPs)
			res.GrammarPointsDeleted = len(ids)
		}
	} else {
		s.dropGrammarPoints(deletedGPs)
	}

	if ids := collectSentenceIDs(deletedSentences); len(ids) > 0 {
		if err := client.DeleteSentences(ctx, ids); err != nil {
			for _, e := range deletedSentences {
				res.Failed = append(res.Failed, ItemError{Entity: "sentence", Key: e.Key, Err: err})
			}
		} else {
			s.dropSentences(deletedSentences)
			res.SentencesDeleted = len(ids)
		}
	} else {
		s.dropSentences(deletedSentences)
	}

	return res, nil
}

// writeBackGrammarPointID проставляет выданный id в живую ноду дерева.
// Нода могла быть удалена между снимком и ответом сервера - тогда запись
// уже помечена удаленной и id уйдет в delete на следующей сверке.
func (s *Session) writeBackGrammarPointID(key editor.NodeKey, id string) {
	_ = s.tree.Update(func(tx *editor.Tx) error {
		node, ok := tx.Node(key).(*nodes.GrammarPointContainerNode)
		if !ok || !tx.IsAttached(node) {
			return nil
		}
		if node.DatabaseID != nil && *node.DatabaseID == id {
			return nil
		}
		w := tx.Writable(node).(*nodes.GrammarPointContainerNode)
		w.DatabaseID = &id
		return nil
	})
}

func (s *Session) writeBackSentenceID(key editor.NodeKey, id string) {
	_ = s.tree.Update(func(tx *editor.Tx) error {
		node, ok := tx.Node(key).(*nodes.SentenceNode)
		if !ok || !tx.IsAttached(node) {
			return nil
		}
		if node.DatabaseID != nil && *node.DatabaseID == id {
			return nil
		}
		w := tx.Writable(node).(*nodes.SentenceNode)
		w.DatabaseID = &id
		return nil
	})
}

func (s *Session) markGrammarPointClean(key editor.NodeKey, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.grammarPoints[key]
	if !ok || e.IsDeleted {
		return
	}
	e.DatabaseID = &id
	e.IsDirty = false
}

func (s *Session) markSentenceClean(key editor.NodeKey, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sentences[key]
	if !ok || e.IsDeleted {
		return
	}
	e.DatabaseID = &id
	e.IsDirty = false
}

func (s *Session) dropGrammarPoints(entries []*GrammarPointEntry) {
	if len(entries) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		delete(s.grammarPoints, e.Key)
	}
}

func (s *Session) dropSentences(entries []*SentenceEntry) {
	if len(entries) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		delete(s.sentences, e.Key)
	}
}

func collectGPIDs(entries []*GrammarPointEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.DatabaseID != nil {
			ids = append(ids, *e.DatabaseID)
		}
	}
	sort.Strings(ids)
	return ids
}

func collectSentenceIDs(entries []*SentenceEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.DatabaseID != nil {
			ids = append(ids, *e.DatabaseID)
		}
	}
	sort.Strings(ids)
	return ids
}
