package commands

import (
	"strings"

	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/editor"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/editor/nodes"
)

// insertGrammarPoint оборачивает верхнеуровневые блоки выделения в контент
// новой заметки с пустым заголовком. Курсор встает в начало контента.
func insertGrammarPoint(tx *editor.Tx, _ any) bool {
	sel := tx.Selection()
	if sel == nil {
		return false
	}
	blocks := tx.SelectedTopLevelBlocks(sel)
	if len(blocks) == 0 {
		return false
	}

	container := nodes.NewGrammarPointContainerNode()
	tx.Create(container)
	title := tx.Create(nodes.NewGrammarPointTitleNode())
	content := tx.Create(nodes.NewGrammarPointContentNode())

	tx.InsertBefore(blocks[0], container)
	tx.AppendChild(container, title)
	tx.AppendChild(container, content)
	for _, b := range blocks {
		tx.AppendChild(content, b)
	}

	tx.SelectStart(content)
	return true
}

// insertDialogue конвертирует блок параграф-на-строку вида "speaker: speech"
// в диалог. Строки без двоеточия пропускаются и остаются на месте.
func insertDialogue(tx *editor.Tx, _ any) bool {
	sel := tx.Selection()
	if sel == nil {
		return false
	}
	blocks := tx.SelectedTopLevelBlocks(sel)
	if len(blocks) == 0 {
		return false
	}

	container := nodes.NewDialogueContainerNode()
	tx.Create(container)
	tx.InsertBefore(blocks[0], container)

	converted := false
	for _, b := range blocks {
		p, ok := b.(*editor.ParagraphNode)
		if !ok {
			continue
		}
		speaker, speech, ok := splitDialogueLine(tx.TextContent(p))
		if !ok {
			continue
		}

		speakerNode := tx.Create(nodes.NewDialogueSpeakerNode())
		tx.AppendChild(speakerNode, tx.Create(editor.NewTextNode(speaker)))
		speechNode := tx.Create(nodes.NewDialogueSpeechNode())
		tx.AppendChild(speechNode, tx.Create(editor.NewTextNode(speech)))

		tx.AppendChild(container, speakerNode)
		tx.AppendChild(container, speechNode)
		tx.Remove(p)
		converted = true
	}

	if !converted {
		tx.Remove(container)
		return false
	}
	tx.SelectStart(container)
	return true
}

func splitDialogueLine(line string) (speaker, speech string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	speaker = strings.TrimSpace(line[:idx])
	speech = strings.TrimSpace(line[idx+1:])
	if speaker == "" || speech == "" {
		return "", "", false
	}
	return speaker, speech, true
}

// setSplitLayout переносит верхнеуровневые блоки выделения в левую колонку
// новой двухколоночной раскладки, правая получает пустой параграф.
func setSplitLayout(tx *editor.Tx, _ any) bool {
	sel := tx.Selection()
	if sel == nil {
		return false
	}
	blocks := tx.SelectedTopLevelBlocks(sel)
	if len(blocks) == 0 {
		return false
	}
	// Вложенная раскладка запрещена
	for _, b := range blocks {
		if hasSplitAncestor(tx, b) {
			return false
		}
	}

	container := nodes.NewSplitLayoutContainerNode()
	tx.Create(container)
	left := tx.Create(nodes.NewSplitLayoutColumnNode())
	right := tx.Create(nodes.NewSplitLayoutColumnNode())

	tx.InsertBefore(blocks[0], container)
	tx.AppendChild(container, left)
	tx.AppendChild(container, right)
	for _, b := range blocks {
		tx.AppendChild(left, b)
	}
	tx.AppendChild(right, tx.Create(editor.NewParagraphNode()))

	tx.SelectStart(left)
	return true
}

// setFullLayout разворачивает раскладку обратно в родителя. Работает только
// для контейнера, лежащего прямо под корнем документа - вложенный случай
// отклоняется без мутаций.
func setFullLayout(tx *editor.Tx, payload any) bool {
	container := resolveSplitContainer(tx, payload)
	if container == nil {
		return false
	}
	if _, ok := tx.Parent(container).(*editor.RootNode); !ok {
		return false
	}

	ref := editor.Node(container)
	for _, column := range tx.Children(container) {
		for _, c := range tx.Children(column) {
			tx.InsertAfter(ref, c)
			ref = c
		}
	}
	tx.Remove(container)
	return true
}

// swapSplitColumns меняет колонки местами.
func swapSplitColumns(tx *editor.Tx, payload any) bool {
	container := resolveSplitContainer(tx, payload)
	if container == nil {
		return false
	}
	children := tx.Children(container)
	if len(children) != 2 {
		return false
	}
	tx.InsertBefore(children[0], children[1])
	return true
}

func resolveSplitContainer(tx *editor.Tx, payload any) editor.Node {
	if p, ok := payload.(NodePayload); ok && p.Key != "" {
		if n, ok := tx.Node(p.Key).(*nodes.SplitLayoutContainerNode); ok {
			return n
		}
		return nil
	}
	sel := tx.Selection()
	if sel == nil {
		return nil
	}
	return tx.SelectionInside(sel, func(n editor.Node) bool {
		_, ok := n.(*nodes.SplitLayoutContainerNode)
		return ok
	})
}

func hasSplitAncestor(tx *editor.Tx, n editor.Node) bool {
	for cur := tx.Parent(n); cur != nil; cur = tx.Parent(cur) {
		if _, ok := cur.(*nodes.SplitLayoutContainerNode); ok {
			return true
		}
	}
	return false
}

// setSentenceTranslation выставляет перевод предложения из попапа свойств.
func setSentenceTranslation(tx *editor.Tx, payload any) bool {
	p, ok := payload.(TranslationPayload)
	if !ok {
		return false
	}
	sentence, ok := tx.Node(p.Key).(*nodes.SentenceNode)
	if !ok {
		return false
	}
	w := tx.Writable(sentence).(*nodes.SentenceNode)
	w.Translation = p.Translation
	return true
}

// toggleSentenceTranslation переключает видимость перевода.
func toggleSentenceTranslation(tx *editor.Tx, payload any) bool {
	p, ok := payload.(NodePayload)
	if !ok {
		return false
	}
	sentence, ok := tx.Node(p.Key).(*nodes.SentenceNode)
	if !ok {
		return false
	}
	w := tx.Writable(sentence).(*nodes.SentenceNode)
	w.ShowTranslation = !w.ShowTranslation
	return true
}

// toggleGrammarPoint сворачивает или раскрывает заметку.
func toggleGrammarPoint(tx *editor.Tx, payload any) bool {
	p, ok := payload.(NodePayload)
	if !ok {
		return false
	}
	container, ok := tx.Node(p.Key).(*nodes.GrammarPointContainerNode)
	if !ok {
		return false
	}
	w := tx.Writable(container).(*nodes.GrammarPointContainerNode)
	w.Open = !w.Open
	return true
}

// backspaceAtBoundary: backspace на границе предложения возвращает курсор
// внутрь контента вместо сквозного удаления; выделенное слово удаляется
// целиком.
func backspaceAtBoundary(tx *editor.Tx, _ any) bool {
	switch sel := tx.Selection().(type) {
	case *editor.NodeSelection:
		targets := tx.SelectedNodes(sel)
		if len(targets) == 1 {
			if word, ok := targets[0].(*nodes.WordNode); ok {
				prev := tx.PrevSibling(word)
				tx.Remove(word)
				if t, ok := prev.(*editor.TextNode); ok {
					tx.CollapseTo(editor.Point{Key: t.Key(), Offset: len([]rune(t.Text))})
				}
				return true
			}
		}
	case *editor.RangeSelection:
		if !sel.Collapsed() || sel.Anchor.Offset != 0 {
			return false
		}
		cur := tx.Node(sel.Anchor.Key)
		if cur == nil {
			return false
		}
		sentence, ok := tx.PrevSibling(cur).(*nodes.SentenceNode)
		if !ok {
			return false
		}
		if t := lastTextInSentence(tx, sentence); t != nil {
			tx.CollapseTo(editor.Point{Key: t.Key(), Offset: len([]rune(t.Text))})
			return true
		}
	}
	return false
}

// arrowRightAtBoundary ставит распорку нулевой ширины после атомарной ноды
// без правого соседа, чтобы курсор мог из неё выйти.
func arrowRightAtBoundary(tx *editor.Tx, _ any) bool {
	n := selectedAtomic(tx)
	if n == nil {
		return false
	}
	if tx.NextSibling(n) != nil {
		return false
	}
	spacer := tx.Create(editor.NewTextNode(ZeroWidthSpace)).(*editor.TextNode)
	tx.InsertAfter(n, spacer)
	tx.CollapseTo(editor.Point{Key: spacer.Key(), Offset: 1})
	return true
}

// arrowLeftAtBoundary - зеркальная распорка слева.
func arrowLeftAtBoundary(tx *editor.Tx, _ any) bool {
	n := selectedAtomic(tx)
	if n == nil {
		return false
	}
	if tx.PrevSibling(n) != nil {
		return false
	}
	spacer := tx.Create(editor.NewTextNode(ZeroWidthSpace)).(*editor.TextNode)
	tx.InsertBefore(n, spacer)
	tx.CollapseTo(editor.Point{Key: spacer.Key(), Offset: 0})
	return true
}

// selectedAtomic возвращает единственную выделенную ноду слова или
// предложения, nil в остальных случаях.
func selectedAtomic(tx *editor.Tx) editor.Node {
	sel, ok := tx.Selection().(*editor.NodeSelection)
	if !ok || len(sel.Keys) != 1 {
		return nil
	}
	n := tx.Node(sel.Keys[0])
	switch n.(type) {
	case *nodes.WordNode, *nodes.SentenceNode:
		return n
	}
	return nil
}

func lastTextInSentence(tx *editor.Tx, sentence *nodes.SentenceNode) *editor.TextNode {
	var last *editor.TextNode
	tx.Walk(sentence, func(n editor.Node) bool {
		if t, ok := n.(*editor.TextNode); ok {
			last = t
		}
		return true
	})
	return last
}
