package nodes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/editor"
)

func newTestTree() *editor.Tree {
	t := editor.NewTree()
	RegisterTransforms(t)
	return t
}

func findNodes[T editor.Node](tree *editor.Tree) []T {
	var res []T
	tree.Walk(tree.Root(), func(n editor.Node) bool {
		if v, ok := n.(T); ok {
			res = append(res, v)
		}
		return true
	})
	return res
}

func TestSentenceToggleInvariant(t *testing.T) {
	tree := newTestTree()
	var sentence *SentenceNode
	err := tree.Update(func(tx *editor.Tx) error {
		sentence = tx.Create(NewSentenceNode("")).(*SentenceNode)
		tx.AppendChild(tx.Root(), sentence)
		tx.AppendChild(sentence, tx.Create(editor.NewTextNode("Hallo")))
		return nil
	})
	assert.NoError(t, err)

	// Тоггл добавлен автоматически и стоит последним
	children := tree.Children(tree.Node(sentence.Key()))
	assert.Len(t, children, 2)
	assert.IsType(t, &SentenceToggleNode{}, children[1])

	// Лишний тоггл схлопывается обратно до одного
	err = tree.Update(func(tx *editor.Tx) error {
		tx.AppendChild(tx.Node(sentence.Key()), tx.Create(NewSentenceToggleNode()))
		return nil
	})
	assert.NoError(t, err)

	toggles := findNodes[*SentenceToggleNode](tree)
	assert.Len(t, toggles, 1)
	last := tree.LastChild(tree.Node(sentence.Key()))
	assert.IsType(t, &SentenceToggleNode{}, last)
}

func TestEmptySentenceRemoved(t *testing.T) {
	tree := newTestTree()
	err := tree.Update(func(tx *editor.Tx) error {
		s := tx.Create(NewSentenceNode(""))
		tx.AppendChild(tx.Root(), s)
		// Пустой текст контентом не считается
		tx.AppendChild(s, tx.Create(editor.NewTextNode("")))
		return nil
	})
	assert.NoError(t, err)

	assert.Empty(t, findNodes[*SentenceNode](tree))
	assert.Empty(t, findNodes[*SentenceToggleNode](tree))
}

func TestOrphanToggleRemoved(t *testing.T) {
	tree := newTestTree()
	err := tree.Update(func(tx *editor.Tx) error {
		p := tx.Create(editor.NewParagraphNode())
		tx.AppendChild(tx.Root(), p)
		tx.AppendChild(p, tx.Create(NewSentenceToggleNode()))
		return nil
	})
	assert.NoError(t, err)
	assert.Empty(t, findNodes[*SentenceToggleNode](tree))
}

func TestAdjacentSentencesMerge(t *testing.T) {
	tree := newTestTree()
	err := tree.Update(func(tx *editor.Tx) error {
		left := tx.Create(NewSentenceNode("первый"))
		tx.AppendChild(tx.Root(), left)
		tx.AppendChild(left, tx.Create(editor.NewTextNode("Hello")))

		right := tx.Create(NewSentenceNode("второй"))
		tx.AppendChild(tx.Root(), right)
		tx.AppendChild(right, tx.Create(editor.NewTextNode("World")))
		return nil
	})
	assert.NoError(t, err)

	sentences := findNodes[*SentenceNode](tree)
	assert.Len(t, sentences, 1)
	merged := sentences[0]
	assert.Equal(t, "HelloWorld", tree.TextContent(merged))

	toggles := findNodes[*SentenceToggleNode](tree)
	assert.Len(t, toggles, 1)
	assert.IsType(t, &SentenceToggleNode{}, tree.LastChild(merged))
}

func TestNestedSentenceUnwraps(t *testing.T) {
	tree := newTestTree()
	err := tree.Update(func(tx *editor.Tx) error {
		outer := tx.Create(NewSentenceNode(""))
		tx.AppendChild(tx.Root(), outer)
		tx.AppendChild(outer, tx.Create(editor.NewTextNode("outer ")))

		inner := tx.Create(NewSentenceNode(""))
		tx.AppendChild(outer, inner)
		tx.AppendChild(inner, tx.Create(editor.NewTextNode("inner")))
		return nil
	})
	assert.NoError(t, err)

	sentences := findNodes[*SentenceNode](tree)
	assert.Len(t, sentences, 1)
	assert.Equal(t, "outer inner", tree.TextContent(sentences[0]))
	assert.Len(t, findNodes[*SentenceToggleNode](tree), 1)
}

func TestGrammarPointValidShapeKept(t *testing.T) {
	tree := newTestTree()
	var container *GrammarPointContainerNode
	err := tree.Update(func(tx *editor.Tx) error {
		container = tx.Create(NewGrammarPointContainerNode()).(*GrammarPointContainerNode)
		tx.AppendChild(tx.Root(), container)

		title := tx.Create(NewGrammarPointTitleNode())
		tx.AppendChild(container, title)
		tx.AppendChild(title, tx.Create(editor.NewTextNode("て-форма")))

		content := tx.Create(NewGrammarPointContentNode())
		tx.AppendChild(container, content)
		p := tx.Create(editor.NewParagraphNode())
		tx.AppendChild(content, p)
		tx.AppendChild(p, tx.Create(editor.NewTextNode("пояснение")))
		return nil
	})
	assert.NoError(t, err)

	children := tree.Children(tree.Node(container.Key()))
	assert.Len(t, children, 2)
	assert.IsType(t, &GrammarPointTitleNode{}, children[0])
	assert.IsType(t, &GrammarPointContentNode{}, children[1])
}

func TestGrammarPointBrokenShapeUnwrapped(t *testing.T) {
	// Контейнер без контента не реконструируется, а разворачивается
	tree := newTestTree()
	err := tree.Update(func(tx *editor.Tx) error {
		container := tx.Create(NewGrammarPointContainerNode())
		tx.AppendChild(tx.Root(), container)
		title := tx.Create(NewGrammarPointTitleNode())
		tx.AppendChild(container, title)
		tx.AppendChild(title, tx.Create(editor.NewTextNode("But vs However")))
		return nil
	})
	assert.NoError(t, err)

	assert.Empty(t, findNodes[*GrammarPointContainerNode](tree))
	assert.Empty(t, findNodes[*GrammarPointTitleNode](tree))
	// Текст заголовка выживает на верхнем уровне
	assert.Equal(t, "But vs However", tree.TextContent(tree.Root()))
}

func TestGrammarPointWrongChildOrderUnwrapped(t *testing.T) {
	tree := newTestTree()
	err := tree.Update(func(tx *editor.Tx) error {
		container := tx.Create(NewGrammarPointContainerNode())
		tx.AppendChild(tx.Root(), container)
		content := tx.Create(NewGrammarPointContentNode())
		tx.AppendChild(container, content)
		p := tx.Create(editor.NewParagraphNode())
		tx.AppendChild(content, p)
		tx.AppendChild(p, tx.Create(editor.NewTextNode("тело")))
		title := tx.Create(NewGrammarPointTitleNode())
		tx.AppendChild(container, title)
		tx.AppendChild(title, tx.Create(editor.NewTextNode("заголовок")))
		return nil
	})
	assert.NoError(t, err)

	assert.Empty(t, findNodes[*GrammarPointContainerNode](tree))
	assert.Empty(t, findNodes[*GrammarPointTitleNode](tree))
	assert.Empty(t, findNodes[*GrammarPointContentNode](tree))
}

func TestGrammarPointHoistedToTopLevel(t *testing.T) {
	tree := newTestTree()
	var host *editor.ParagraphNode
	var container *GrammarPointContainerNode
	err := tree.Update(func(tx *editor.Tx) error {
		host = tx.Create(editor.NewParagraphNode()).(*editor.ParagraphNode)
		tx.AppendChild(tx.Root(), host)
		tx.AppendChild(host, tx.Create(editor.NewTextNode("до")))

		container = tx.Create(NewGrammarPointContainerNode()).(*GrammarPointContainerNode)
		tx.AppendChild(host, container)
		title := tx.Create(NewGrammarPointTitleNode())
		tx.AppendChild(container, title)
		tx.AppendChild(title, tx.Create(editor.NewTextNode("тема")))
		content := tx.Create(NewGrammarPointContentNode())
		tx.AppendChild(container, content)
		p := tx.Create(editor.NewParagraphNode())
		tx.AppendChild(content, p)
		tx.AppendChild(p, tx.Create(editor.NewTextNode("тело")))
		return nil
	})
	assert.NoError(t, err)

	got := tree.Node(container.Key())
	assert.NotNil(t, got)
	assert.Equal(t, tree.Root().Key(), tree.Parent(got).Key())
	assert.Equal(t, host.Key(), tree.PrevSibling(got).Key())
}

func TestSplitLayoutColumnNeverEmpty(t *testing.T) {
	tree := newTestTree()
	var right *SplitLayoutColumnNode
	err := tree.Update(func(tx *editor.Tx) error {
		container := tx.Create(NewSplitLayoutContainerNode())
		tx.AppendChild(tx.Root(), container)
		left := tx.Create(NewSplitLayoutColumnNode())
		tx.AppendChild(container, left)
		p := tx.Create(editor.NewParagraphNode())
		tx.AppendChild(left, p)
		tx.AppendChild(p, tx.Create(editor.NewTextNode("контент")))
		right = tx.Create(NewSplitLayoutColumnNode()).(*SplitLayoutColumnNode)
		tx.AppendChild(container, right)
		return nil
	})
	assert.NoError(t, err)

	got := tree.Node(right.Key())
	assert.NotNil(t, got)
	assert.Equal(t, 1, tree.ChildCount(got))
	assert.IsType(t, &editor.ParagraphNode{}, tree.FirstChild(got))
}

func TestNestedSplitLayoutUnwrapped(t *testing.T) {
	tree := newTestTree()
	var leftKey editor.NodeKey
	err := tree.Update(func(tx *editor.Tx) error {
		outer := tx.Create(NewSplitLayoutContainerNode())
		tx.AppendChild(tx.Root(), outer)
		left := tx.Create(NewSplitLayoutColumnNode())
		tx.AppendChild(outer, left)
		leftKey = left.Key()
		right := tx.Create(NewSplitLayoutColumnNode())
		tx.AppendChild(outer, right)
		tx.AppendChild(right, tx.Create(editor.NewParagraphNode()))

		inner := tx.Create(NewSplitLayoutContainerNode())
		tx.AppendChild(left, inner)
		for range 2 {
			col := tx.Create(NewSplitLayoutColumnNode())
			tx.AppendChild(inner, col)
			p := tx.Create(editor.NewParagraphNode())
			tx.AppendChild(col, p)
			tx.AppendChild(p, tx.Create(editor.NewTextNode("x")))
		}
		return nil
	})
	assert.NoError(t, err)

	containers := findNodes[*SplitLayoutContainerNode](tree)
	assert.Len(t, containers, 1)
	// Контент вложенной раскладки всплыл в левую колонку
	left := tree.Node(leftKey)
	assert.NotNil(t, left)
	for _, c := range tree.Children(left) {
		assert.IsType(t, &editor.ParagraphNode{}, c)
	}
	assert.Equal(t, "xx", tree.TextContent(left))
}

func TestSplitLayoutWrongColumnCountUnwrapped(t *testing.T) {
	tree := newTestTree()
	err := tree.Update(func(tx *editor.Tx) error {
		container := tx.Create(NewSplitLayoutContainerNode())
		tx.AppendChild(tx.Root(), container)
		col := tx.Create(NewSplitLayoutColumnNode())
		tx.AppendChild(container, col)
		p := tx.Create(editor.NewParagraphNode())
		tx.AppendChild(col, p)
		tx.AppendChild(p, tx.Create(editor.NewTextNode("одинокая")))
		return nil
	})
	assert.NoError(t, err)

	assert.Empty(t, findNodes[*SplitLayoutContainerNode](tree))
	assert.Empty(t, findNodes[*SplitLayoutColumnNode](tree))
	assert.Equal(t, "одинокая", tree.TextContent(tree.Root()))
}

func TestDialogueContainerEjectsForeignChildren(t *testing.T) {
	tree := newTestTree()
	var container *DialogueContainerNode
	err := tree.Update(func(tx *editor.Tx) error {
		container = tx.Create(NewDialogueContainerNode()).(*DialogueContainerNode)
		tx.AppendChild(tx.Root(), container)

		speaker := tx.Create(NewDialogueSpeakerNode())
		tx.AppendChild(speaker, tx.Create(editor.NewTextNode("А")))
		tx.AppendChild(container, speaker)
		speech := tx.Create(NewDialogueSpeechNode())
		tx.AppendChild(speech, tx.Create(editor.NewTextNode("Привет")))
		tx.AppendChild(container, speech)

		stray := tx.Create(editor.NewParagraphNode())
		tx.AppendChild(stray, tx.Create(editor.NewTextNode("не реплика")))
		tx.AppendChild(container, stray)
		return nil
	})
	assert.NoError(t, err)

	got := tree.Node(container.Key())
	assert.Equal(t, 2, tree.ChildCount(got))
	// Чужой блок встал сразу после диалога
	next := tree.NextSibling(got)
	assert.IsType(t, &editor.ParagraphNode{}, next)
	assert.Equal(t, "не реплика", tree.TextContent(next))
}

func TestEmptyDialogueContainerRemoved(t *testing.T) {
	tree := newTestTree()
	err := tree.Update(func(tx *editor.Tx) error {
		container := tx.Create(NewDialogueContainerNode())
		tx.AppendChild(tx.Root(), container)
		p := tx.Create(editor.NewParagraphNode())
		tx.AppendChild(p, tx.Create(editor.NewTextNode("текст")))
		tx.AppendChild(container, p)
		return nil
	})
	assert.NoError(t, err)

	assert.Empty(t, findNodes[*DialogueContainerNode](tree))
	assert.Equal(t, "текст", tree.TextContent(tree.Root()))
}

func TestOrphanDialogueLineUnwrapped(t *testing.T) {
	tree := newTestTree()
	err := tree.Update(func(tx *editor.Tx) error {
		speech := tx.Create(NewDialogueSpeechNode())
		tx.AppendChild(tx.Root(), speech)
		tx.AppendChild(speech, tx.Create(editor.NewTextNode("сирота")))
		return nil
	})
	assert.NoError(t, err)

	assert.Empty(t, findNodes[*DialogueSpeechNode](tree))
	assert.Equal(t, "сирота", tree.TextContent(tree.Root()))
}

func TestImageHoistedToTopLevel(t *testing.T) {
	tree := newTestTree()
	var img *ImageNode
	var host *editor.ParagraphNode
	err := tree.Update(func(tx *editor.Tx) error {
		host = tx.Create(editor.NewParagraphNode()).(*editor.ParagraphNode)
		tx.AppendChild(tx.Root(), host)
		tx.AppendChild(host, tx.Create(editor.NewTextNode("текст")))
		img = tx.Create(NewImageNode("https://example.com/a.png")).(*ImageNode)
		tx.AppendChild(host, img)
		return nil
	})
	assert.NoError(t, err)

	got := tree.Node(img.Key())
	assert.Equal(t, tree.Root().Key(), tree.Parent(got).Key())
	assert.Equal(t, host.Key(), tree.PrevSibling(got).Key())
}

func TestEmptyRemarkRemoved(t *testing.T) {
	tree := newTestTree()
	var kept *RemarkNode
	err := tree.Update(func(tx *editor.Tx) error {
		empty := tx.Create(NewRemarkNode())
		tx.AppendChild(tx.Root(), empty)

		kept = tx.Create(NewRemarkNode()).(*RemarkNode)
		tx.AppendChild(tx.Root(), kept)
		p := tx.Create(editor.NewParagraphNode())
		tx.AppendChild(kept, p)
		tx.AppendChild(p, tx.Create(editor.NewTextNode("заметка на полях")))
		return nil
	})
	assert.NoError(t, err)

	remarks := findNodes[*RemarkNode](tree)
	assert.Len(t, remarks, 1)
	assert.Equal(t, kept.Key(), remarks[0].Key())
}

// TestTransformsIdempotent перечитывает валидный документ: повторный прогон
// правил на всех нодах не должен ничего менять.
func TestTransformsIdempotent(t *testing.T) {
	tree := newTestTree()
	err := tree.Update(func(tx *editor.Tx) error {
		sentence := tx.Create(NewSentenceNode("перевод"))
		tx.AppendChild(tx.Root(), sentence)
		tx.AppendChild(sentence, tx.Create(editor.NewTextNode("私は学生です")))

		container := tx.Create(NewGrammarPointContainerNode())
		tx.AppendChild(tx.Root(), container)
		title := tx.Create(NewGrammarPointTitleNode())
		tx.AppendChild(container, title)
		tx.AppendChild(title, tx.Create(editor.NewTextNode("です")))
		content := tx.Create(NewGrammarPointContentNode())
		tx.AppendChild(container, content)
		p := tx.Create(editor.NewParagraphNode())
		tx.AppendChild(content, p)
		tx.AppendChild(p, tx.Create(editor.NewTextNode("связка")))

		split := tx.Create(NewSplitLayoutContainerNode())
		tx.AppendChild(tx.Root(), split)
		for range 2 {
			col := tx.Create(NewSplitLayoutColumnNode())
			tx.AppendChild(split, col)
			cp := tx.Create(editor.NewParagraphNode())
			tx.AppendChild(col, cp)
			tx.AppendChild(cp, tx.Create(editor.NewTextNode("колонка")))
		}
		return nil
	})
	assert.NoError(t, err)

	before, err := editor.ExportDocument(tree)
	assert.NoError(t, err)

	// Пометить все ноды грязными без изменения содержимого
	err = tree.Update(func(tx *editor.Tx) error {
		var all []editor.Node
		tx.Walk(tx.Root(), func(n editor.Node) bool {
			if n.Key() != editor.RootKey {
				all = append(all, n)
			}
			return true
		})
		for _, n := range all {
			tx.Writable(n)
		}
		return nil
	})
	assert.NoError(t, err)

	after, err := editor.ExportDocument(tree)
	assert.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestAnnotationRoundTrip(t *testing.T) {
	// Без трансформаций: сериализация обязана сохранять произвольное
	// валидное дерево байт в байт
	tree := editor.NewTree()
	wordID := "w-1"
	sentenceID := "s-1"
	gpID := "gp-1"
	err := tree.Update(func(tx *editor.Tx) error {
		p := tx.Create(editor.NewParagraphNode())
		tx.AppendChild(tx.Root(), p)

		sentence := NewSentenceNode("я люблю Токио")
		sentence.DatabaseID = &sentenceID
		sentence.ShowTranslation = true
		tx.Create(sentence)
		tx.AppendChild(p, sentence)
		tx.AppendChild(sentence, tx.Create(editor.NewTextNode("I love ")))

		word := NewWordNode("Tokyo", []string{"Токио", "東京"})
		word.DatabaseID = &wordID
		word.IsAutoFill = true
		tx.Create(word)
		tx.AppendChild(sentence, word)
		tx.AppendChild(sentence, tx.Create(NewSentenceToggleNode()))

		container := NewGrammarPointContainerNode()
		container.DatabaseID = &gpID
		container.Open = false
		tx.Create(container)
		tx.AppendChild(tx.Root(), container)
		title := tx.Create(NewGrammarPointTitleNode())
		tx.AppendChild(container, title)
		tx.AppendChild(title, tx.Create(editor.NewTextNode("love")))
		content := tx.Create(NewGrammarPointContentNode())
		tx.AppendChild(container, content)
		cp := tx.Create(editor.NewParagraphNode())
		tx.AppendChild(content, cp)
		tx.AppendChild(cp, tx.Create(editor.NewTextNode("глагол")))

		dialogue := tx.Create(NewDialogueContainerNode())
		tx.AppendChild(tx.Root(), dialogue)
		speaker := tx.Create(NewDialogueSpeakerNode())
		tx.AppendChild(speaker, tx.Create(editor.NewTextNode("А")))
		tx.AppendChild(dialogue, speaker)
		speech := tx.Create(NewDialogueSpeechNode())
		tx.AppendChild(speech, tx.Create(editor.NewTextNode("こんにちは")))
		tx.AppendChild(dialogue, speech)

		split := tx.Create(NewSplitLayoutContainerNode())
		tx.AppendChild(tx.Root(), split)
		for range 2 {
			col := tx.Create(NewSplitLayoutColumnNode())
			tx.AppendChild(split, col)
			tx.AppendChild(col, tx.Create(editor.NewParagraphNode()))
		}

		img := NewImageNode("https://example.com/fuji.png")
		img.Caption = "Фудзи"
		img.Width = 640
		img.Alignment = ImageAlignRight
		tx.Create(img)
		tx.AppendChild(tx.Root(), img)

		remark := tx.Create(NewRemarkNode())
		tx.AppendChild(tx.Root(), remark)
		rp := tx.Create(editor.NewParagraphNode())
		tx.AppendChild(remark, rp)
		tx.AppendChild(rp, tx.Create(editor.NewTextNode("ремарка")))
		return nil
	})
	assert.NoError(t, err)

	first, err := editor.ExportDocument(tree)
	assert.NoError(t, err)
	restored, err := editor.ImportDocument(first)
	assert.NoError(t, err)
	second, err := editor.ExportDocument(restored)
	assert.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))

	words := findNodes[*WordNode](restored)
	assert.Len(t, words, 1)
	assert.Equal(t, "Tokyo", words[0].Word)
	assert.Equal(t, []string{"Токио", "東京"}, words[0].Translations)
	assert.NotNil(t, words[0].DatabaseID)
	assert.Equal(t, wordID, *words[0].DatabaseID)
	assert.True(t, words[0].IsAutoFill)

	images := findNodes[*ImageNode](restored)
	assert.Len(t, images, 1)
	assert.Equal(t, ImageAlignRight, images[0].Alignment)
	assert.Equal(t, 640, images[0].Width)

	gps := findNodes[*GrammarPointContainerNode](restored)
	assert.Len(t, gps, 1)
	assert.False(t, gps[0].Open)
}

func TestCloneIsDeep(t *testing.T) {
	id := "w-9"
	word := NewWordNode("犬", []string{"собака"})
	word.DatabaseID = &id

	clone := word.Clone().(*WordNode)
	clone.Translations[0] = "пес"
	*clone.DatabaseID = "другой"

	assert.Equal(t, "собака", word.Translations[0])
	assert.Equal(t, "w-9", *word.DatabaseID)
}
