// Пакет commands содержит обработчики команд редактирования: вставку слов и
// предложений, грамматические заметки, диалоги, двухколоночную раскладку и
// поведение курсора на границах аннотаций.
//
// Основные возможности:
//   - Вставка слова с опциональной разметкой всех совпадений в документе.
//   - Вставка предложения с семантикой переключателя и слиянием существующих.
//   - Конверсия выделения в грамматическую заметку, диалог или две колонки.
//   - Обработчики проверяют предусловия и возвращают "не обработано" вместо
//     ошибки - команда проваливается к поведению движка по умолчанию.
package commands

import (
	"strings"

	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/editor"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/editor/nodes"
)

const (
	CmdInsertWord                = "insert-word"
	CmdInsertSentence            = "insert-sentence"
	CmdInsertGrammarPoint        = "insert-grammar-point"
	CmdInsertDialogue            = "insert-dialogue"
	CmdSetSplitLayout            = "set-split-layout"
	CmdSetFullLayout             = "set-full-layout"
	CmdSwapSplitColumns          = "swap-split-columns"
	CmdSetSentenceTranslation    = "set-sentence-translation"
	CmdToggleSentenceTranslation = "toggle-sentence-translation"
	CmdToggleGrammarPoint        = "toggle-grammar-point"
	CmdBackspace                 = "key-backspace"
	CmdArrowRight                = "key-arrow-right"
	CmdArrowLeft                 = "key-arrow-left"
)

// Приоритеты обработчиков.
const (
	PriorityLow    = 1
	PriorityNormal = 2
	PriorityHigh   = 3
)

// ZeroWidthSpace - текст-распорка, позволяющая курсору выйти за атомарную ноду.
const ZeroWidthSpace = "​"

// InsertWordPayload - параметры вставки слова.
type InsertWordPayload struct {
	Word         string
	Translations []string
	DatabaseID   *string

	// TargetKey задает ноду для замены вместо текущего выделения.
	TargetKey editor.NodeKey

	// MarkAllInstances дополнительно оборачивает все прочие вхождения
	// слова в документе в авто-ноды.
	MarkAllInstances bool
}

// NodePayload адресует команду конкретной ноде.
type NodePayload struct {
	Key editor.NodeKey
}

// TranslationPayload - установка перевода предложения.
type TranslationPayload struct {
	Key         editor.NodeKey
	Translation string
}

// Register подключает все обработчики к дереву.
func Register(t *editor.Tree) {
	t.RegisterCommand(CmdInsertWord, insertWord, PriorityNormal)
	t.RegisterCommand(CmdInsertSentence, insertSentence, PriorityNormal)
	t.RegisterCommand(CmdInsertGrammarPoint, insertGrammarPoint, PriorityNormal)
	t.RegisterCommand(CmdInsertDialogue, insertDialogue, PriorityNormal)
	t.RegisterCommand(CmdSetSplitLayout, setSplitLayout, PriorityNormal)
	t.RegisterCommand(CmdSetFullLayout, setFullLayout, PriorityNormal)
	t.RegisterCommand(CmdSwapSplitColumns, swapSplitColumns, PriorityNormal)
	t.RegisterCommand(CmdSetSentenceTranslation, setSentenceTranslation, PriorityNormal)
	t.RegisterCommand(CmdToggleSentenceTranslation, toggleSentenceTranslation, PriorityNormal)
	t.RegisterCommand(CmdToggleGrammarPoint, toggleGrammarPoint, PriorityNormal)
	t.RegisterCommand(CmdBackspace, backspaceAtBoundary, PriorityHigh)
	t.RegisterCommand(CmdArrowRight, arrowRightAtBoundary, PriorityHigh)
	t.RegisterCommand(CmdArrowLeft, arrowLeftAtBoundary, PriorityHigh)
}

// insertWord заменяет выделение или целевую ноду новой нодой слова.
func insertWord(tx *editor.Tx, payload any) bool {
	p, ok := payload.(InsertWordPayload)
	if !ok || p.Word == "" {
		return false
	}

	primary := nodes.NewWordNode(p.Word, p.Translations)
	primary.DatabaseID = p.DatabaseID
	tx.Create(primary)

	if p.TargetKey != "" {
		target := tx.Node(p.TargetKey)
		if target == nil {
			tx.Remove(primary)
			return false
		}
		tx.Replace(target, primary)
	} else if !replaceSelectionWith(tx, primary) {
		tx.Remove(primary)
		return false
	}

	if p.MarkAllInstances {
		markAllInstances(tx, p)
	}

	tx.SelectNode(primary)
	return true
}

// replaceSelectionWith ставит ноду на место текущего выделения.
func replaceSelectionWith(tx *editor.Tx, n editor.Node) bool {
	switch sel := tx.Selection().(type) {
	case *editor.NodeSelection:
		targets := tx.SelectedNodes(sel)
		if len(targets) == 0 {
			return false
		}
		tx.Replace(targets[0], n)
		for _, extra := range targets[1:] {
			tx.Remove(extra)
		}
		return true
	case *editor.RangeSelection:
		anchor, aok := tx.Node(sel.Anchor.Key).(*editor.TextNode)
		if !aok {
			return false
		}
		if sel.Anchor.Key == sel.Focus.Key {
			start, end := sel.Anchor.Offset, sel.Focus.Offset
			if start > end {
				start, end = end, start
			}
			mid := carveText(tx, anchor, start, end)
			if mid == nil {
				// Схлопнутый курсор - вставка в позицию
				left, _ := tx.SplitText(anchor, start)
				if left != nil {
					tx.InsertAfter(left, n)
				} else {
					tx.InsertBefore(anchor, n)
				}
				return true
			}
			tx.Replace(mid, n)
			return true
		}
		// Диапазон через несколько нод: замена всего затронутого
		targets := tx.SelectedNodes(sel)
		if len(targets) == 0 {
			return false
		}
		tx.Replace(targets[0], n)
		for _, extra := range targets[1:] {
			if extra.IsInline() {
				tx.Remove(extra)
			}
		}
		return true
	}
	return false
}

// carveText вырезает середину текстовой ноды [start, end) и возвращает её.
// nil если диапазон пуст.
func carveText(tx *editor.Tx, n *editor.TextNode, start, end int) *editor.TextNode {
	if end <= start {
		return nil
	}
	left, rest := tx.SplitText(n, start)
	if rest == nil {
		return nil
	}
	mid, _ := tx.SplitText(rest, end-start)
	if mid == nil {
		mid = rest
	}
	_ = left
	return mid
}

// markAllInstances оборачивает все прочие вхождения слова в авто-ноды.
// Сканируются только текстовые ноды верхнеуровневого контента, сравнение
// без учета регистра.
func markAllInstances(tx *editor.Tx, p InsertWordPayload) {
	needle := []rune(p.Word)
	if len(needle) == 0 {
		return
	}

	var texts []*editor.TextNode
	tx.Walk(tx.Root(), func(n editor.Node) bool {
		if t, ok := n.(*editor.TextNode); ok {
			texts = append(texts, t)
		}
		return true
	})

	for _, t := range texts {
		markInstancesInText(tx, t, needle, p)
	}
}

func markInstancesInText(tx *editor.Tx, t *editor.TextNode, needle []rune, p InsertWordPayload) {
	for {
		if !tx.IsAttached(t) {
			return
		}
		runeStart := foldIndex([]rune(t.Text), needle)
		if runeStart < 0 {
			return
		}
		runeEnd := runeStart + len(needle)

		mid := carveText(tx, t, runeStart, runeEnd)
		if mid == nil {
			return
		}
		auto := nodes.NewWordNode(mid.Text, p.Translations)
		auto.DatabaseID = p.DatabaseID
		auto.IsAutoFill = true
		tx.Create(auto)

		next, _ := tx.NextSibling(mid).(*editor.TextNode)
		tx.Replace(mid, auto)
		if next == nil {
			return
		}
		t = next
	}
}

// foldIndex возвращает руновый индекс первого вхождения needle без учета
// регистра, -1 если вхождения нет. Поиск идет по рунам: сравнение приведенных
// к нижнему регистру байтовых копий съезжает на символах вроде İ, меняющих
// длину при приведении.
func foldIndex(haystack, needle []rune) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if strings.EqualFold(string(haystack[i:i+len(needle)]), string(needle)) {
			return i
		}
	}
	return -1
}

// insertSentence: выделение целиком внутри предложения снимает обертку,
// иначе затронутые блоки группируются в новые предложения. Смена родителя
// начинает новое предложение.
func insertSentence(tx *editor.Tx, _ any) bool {
	sel := tx.Selection()
	if sel == nil {
		return false
	}

	if anc := tx.SelectionInside(sel, isSentence); anc != nil {
		unwrapSentence(tx, anc.(*nodes.SentenceNode))
		return true
	}

	blocks := tx.SelectedTopLevelBlocks(sel)
	if len(blocks) == 0 {
		return false
	}

	var group []editor.Node
	var lastParent editor.NodeKey
	var firstSentence *nodes.SentenceNode
	flush := func() {
		if len(group) == 0 {
			return
		}
		s := wrapBlocksInSentence(tx, group)
		if firstSentence == nil {
			firstSentence = s
		}
		group = nil
	}
	for _, b := range blocks {
		parent := tx.Parent(b)
		if parent == nil {
			continue
		}
		if lastParent != "" && parent.Key() != lastParent {
			flush()
		}
		lastParent = parent.Key()
		group = append(group, b)
	}
	flush()
	if firstSentence == nil {
		return false
	}
	tx.SelectStart(firstSentence)
	return true
}

// wrapBlocksInSentence оборачивает блоки одним предложением. Предложения,
// попавшие в диапазон, сливаются содержимым, а не вкладываются.
func wrapBlocksInSentence(tx *editor.Tx, blocks []editor.Node) *nodes.SentenceNode {
	sentence := nodes.NewSentenceNode("")
	tx.Create(sentence)
	tx.InsertBefore(blocks[0], sentence)

	for _, b := range blocks {
		if inner, ok := b.(*nodes.SentenceNode); ok {
			for _, c := range tx.Children(inner) {
				if _, toggle := c.(*nodes.SentenceToggleNode); toggle {
					continue
				}
				tx.AppendChild(sentence, c)
			}
			tx.Remove(inner)
			continue
		}
		tx.AppendChild(sentence, b)
	}
	return sentence
}

// unwrapSentence снимает обертку предложения, сохраняя только содержимое.
func unwrapSentence(tx *editor.Tx, sentence *nodes.SentenceNode) {
	for _, c := range tx.Children(sentence) {
		if _, ok := c.(*nodes.SentenceToggleNode); ok {
			tx.Remove(c)
		}
	}
	tx.Unwrap(sentence)
}

func isSentence(n editor.Node) bool {
	_, ok := n.(*nodes.SentenceNode)
	return ok
}
