package nodes

import (
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/editor"
)

const (
	TypeDialogueContainer = "dialogue-container"
	TypeDialogueSpeaker   = "dialogue-speaker"
	TypeDialogueSpeech    = "dialogue-speech"
)

// Диалог: контейнер с повторяющимися парами (говорящий, реплика).
type DialogueContainerNode struct {
	editor.BlockNode
}

func NewDialogueContainerNode() *DialogueContainerNode { return &DialogueContainerNode{} }

func (*DialogueContainerNode) Type() string { return TypeDialogueContainer }

func (n *DialogueContainerNode) Clone() editor.Node {
	c := *n
	return &c
}

func (n *DialogueContainerNode) Export() *editor.SerializedNode {
	s := editor.NewSerializedNode(TypeDialogueContainer, 1)
	s.Children = []*editor.SerializedNode{}
	return s
}

func (*DialogueContainerNode) CanBeEmpty() bool { return false }

type DialogueSpeakerNode struct {
	editor.BlockNode
}

func NewDialogueSpeakerNode() *DialogueSpeakerNode { return &DialogueSpeakerNode{} }

func (*DialogueSpeakerNode) Type() string { return TypeDialogueSpeaker }

func (n *DialogueSpeakerNode) Clone() editor.Node {
	c := *n
	return &c
}

func (n *DialogueSpeakerNode) Export() *editor.SerializedNode {
	s := editor.NewSerializedNode(TypeDialogueSpeaker, 1)
	s.Children = []*editor.SerializedNode{}
	return s
}

func (*DialogueSpeakerNode) IsInline() bool { return true }

type DialogueSpeechNode struct {
	editor.BlockNode
}

func NewDialogueSpeechNode() *DialogueSpeechNode { return &DialogueSpeechNode{} }

func (*DialogueSpeechNode) Type() string { return TypeDialogueSpeech }

func (n *DialogueSpeechNode) Clone() editor.Node {
	c := *n
	return &c
}

func (n *DialogueSpeechNode) Export() *editor.SerializedNode {
	s := editor.NewSerializedNode(TypeDialogueSpeech, 1)
	s.Children = []*editor.SerializedNode{}
	return s
}

func (*DialogueSpeechNode) IsInline() bool { return true }

// transformDialogueContainer выносит из контейнера всё, что не является
// говорящим или репликой, и удаляет опустевший контейнер.
func transformDialogueContainer(tx *editor.Tx, n editor.Node) {
	container := n.(*DialogueContainerNode)
	if !tx.IsAttached(container) {
		return
	}
	ref := editor.Node(container)
	for _, c := range tx.Children(container) {
		switch c.(type) {
		case *DialogueSpeakerNode, *DialogueSpeechNode:
		default:
			tx.InsertAfter(ref, c)
			ref = c
		}
	}
	if tx.ChildCount(container) == 0 {
		tx.Remove(container)
	}
}

// transformDialogueLine разворачивает говорящего или реплику вне диалога.
func transformDialogueLine(tx *editor.Tx, n editor.Node) {
	if !tx.IsAttached(n) {
		return
	}
	if _, ok := tx.Parent(n).(*DialogueContainerNode); !ok {
		tx.Unwrap(n)
	}
}
