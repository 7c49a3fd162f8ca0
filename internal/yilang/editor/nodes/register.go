package nodes

import (
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/editor"
)

func init() {
	editor.RegisterNodeType(TypeWord, importWord)
	editor.RegisterNodeType(TypeSentence, importSentence)
	editor.RegisterNodeType(TypeSentenceToggle, func(*editor.SerializedNode) editor.Node {
		return NewSentenceToggleNode()
	})
	editor.RegisterNodeType(TypeGrammarPointContainer, importGrammarPointContainer)
	editor.RegisterNodeType(TypeGrammarPointTitle, func(*editor.SerializedNode) editor.Node {
		return NewGrammarPointTitleNode()
	})
	editor.RegisterNodeType(TypeGrammarPointContent, func(*editor.SerializedNode) editor.Node {
		return NewGrammarPointContentNode()
	})
	editor.RegisterNodeType(TypeDialogueContainer, func(*editor.SerializedNode) editor.Node {
		return NewDialogueContainerNode()
	})
	editor.RegisterNodeType(TypeDialogueSpeaker, func(*editor.SerializedNode) editor.Node {
		return NewDialogueSpeakerNode()
	})
	editor.RegisterNodeType(TypeDialogueSpeech, func(*editor.SerializedNode) editor.Node {
		return NewDialogueSpeechNode()
	})
	editor.RegisterNodeType(TypeSplitLayoutContainer, func(*editor.SerializedNode) editor.Node {
		return NewSplitLayoutContainerNode()
	})
	editor.RegisterNodeType(TypeSplitLayoutColumn, func(*editor.SerializedNode) editor.Node {
		return NewSplitLayoutColumnNode()
	})
	editor.RegisterNodeType(TypeImage, importImage)
	editor.RegisterNodeType(TypeRemark, func(*editor.SerializedNode) editor.Node {
		return NewRemarkNode()
	})
}

// RegisterTransforms подключает к дереву все структурные правила
// пользовательских нод. Вызывается при создании сессии документа.
func RegisterTransforms(t *editor.Tree) {
	t.RegisterTransform(TypeSentence, transformSentence)
	t.RegisterTransform(TypeSentenceToggle, transformSentenceToggle)
	t.RegisterTransform(TypeGrammarPointContainer, transformGrammarPointContainer)
	t.RegisterTransform(TypeGrammarPointTitle, transformGrammarPointChild)
	t.RegisterTransform(TypeGrammarPointContent, transformGrammarPointChild)
	t.RegisterTransform(TypeDialogueContainer, transformDialogueContainer)
	t.RegisterTransform(TypeDialogueSpeaker, transformDialogueLine)
	t.RegisterTransform(TypeDialogueSpeech, transformDialogueLine)
	t.RegisterTransform(TypeSplitLayoutContainer, transformSplitLayoutContainer)
	t.RegisterTransform(TypeSplitLayoutColumn, transformSplitLayoutColumn)
	t.RegisterTransform(TypeImage, transformImage)
	t.RegisterTransform(TypeRemark, transformRemark)
}
