// Пакет editor реализует движок дерева документа: арену нод с ключами,
// транзакционные обновления, реестр трансформаций, шину команд и вычисление
// мутаций после каждой транзакции.
//
// Основные возможности:
//   - Нода с уникальным ключом сессии, клонированием и структурными предикатами.
//   - Упорядоченное дерево: ключи детей принадлежат дереву, родитель - обратная ссылка.
//   - Сериализация документа в JSON вида {"root": {...}} и обратно.
//   - Неизвестные типы нод сохраняются как placeholder без потери данных.
package editor

import (
	"encoding/json"
	"strconv"
)

// NodeKey уникальный ключ ноды в рамках одной сессии редактирования.
type NodeKey string

// RootKey ключ корневой ноды документа.
const RootKey NodeKey = "root"

// Node описывает один вариант ноды документа.
// Предикаты зависят только от типа ноды, не от её состояния.
type Node interface {
	Type() string
	Key() NodeKey
	SetKey(NodeKey)

	// Clone создает копию ноды с тем же ключом и всеми полями.
	// Пропущенное при копировании поле - потеря данных, проверяется тестами.
	Clone() Node

	// Export создает снимок ноды без детей, дети добавляются деревом.
	Export() *SerializedNode

	CanHaveChildren() bool
	CanBeEmpty() bool
	IsInline() bool
	CanMergeWith(other Node) bool
	CanInsertTextBefore() bool
	CanInsertTextAfter() bool
}

// BaseNode хранит ключ, встраивается во все варианты нод.
type BaseNode struct {
	key NodeKey
}

func (b *BaseNode) Key() NodeKey     { return b.key }
func (b *BaseNode) SetKey(k NodeKey) { b.key = k }

// BlockNode - предикаты по умолчанию для блочных контейнеров.
type BlockNode struct {
	BaseNode
}

func (BlockNode) CanHaveChildren() bool      { return true }
func (BlockNode) CanBeEmpty() bool           { return true }
func (BlockNode) IsInline() bool             { return false }
func (BlockNode) CanMergeWith(Node) bool     { return false }
func (BlockNode) CanInsertTextBefore() bool  { return true }
func (BlockNode) CanInsertTextAfter() bool   { return true }

// InlineNode - предикаты по умолчанию для строчных листовых нод.
type InlineNode struct {
	BaseNode
}

func (InlineNode) CanHaveChildren() bool      { return false }
func (InlineNode) CanBeEmpty() bool           { return true }
func (InlineNode) IsInline() bool             { return true }
func (InlineNode) CanMergeWith(Node) bool     { return false }
func (InlineNode) CanInsertTextBefore() bool  { return true }
func (InlineNode) CanInsertTextAfter() bool   { return true }

// SerializedNode - JSON-снимок ноды. Поля конкретного типа лежат в Fields
// и при маршалинге разворачиваются в плоский объект рядом с type и version.
type SerializedNode struct {
	Type     string
	Version  int
	Fields   map[string]json.RawMessage
	Children []*SerializedNode
}

// MarshalJSON разворачивает Fields в плоский JSON объект.
func (n *SerializedNode) MarshalJSON() ([]byte, error) {
	obj := make(map[string]json.RawMessage, len(n.Fields)+3)
	for k, v := range n.Fields {
		obj[k] = v
	}
	tb, _ := json.Marshal(n.Type)
	obj["type"] = tb
	vb, _ := json.Marshal(n.Version)
	obj["version"] = vb
	if n.Children != nil {
		cb, err := json.Marshal(n.Children)
		if err != nil {
			return nil, err
		}
		obj["children"] = cb
	}
	return json.Marshal(obj)
}

// UnmarshalJSON собирает type, version и children, остальные ключи кладет в Fields.
func (n *SerializedNode) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	n.Fields = make(map[string]json.RawMessage)
	for k, v := range obj {
		switch k {
		case "type":
			if err := json.Unmarshal(v, &n.Type); err != nil {
				return err
			}
		case "version":
			// Некорректная версия не валит загрузку документа
			_ = json.Unmarshal(v, &n.Version)
		case "children":
			if err := json.Unmarshal(v, &n.Children); err != nil {
				return err
			}
		default:
			n.Fields[k] = v
		}
	}
	return nil
}

// NewSerializedNode создает снимок заданного типа и версии.
func NewSerializedNode(nodeType string, version int) *SerializedNode {
	return &SerializedNode{
		Type:    nodeType,
		Version: version,
		Fields:  make(map[string]json.RawMessage),
	}
}

// SetField сериализует значение поля. Ошибки маршалинга примитивов невозможны.
func (n *SerializedNode) SetField(name string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if n.Fields == nil {
		n.Fields = make(map[string]json.RawMessage)
	}
	n.Fields[name] = b
}

// String возвращает строковое поле, пустую строку если поле отсутствует или некорректно.
func (n *SerializedNode) String(name string) string {
	var s string
	if raw, ok := n.Fields[name]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

// StringPtr возвращает nullable строковое поле.
func (n *SerializedNode) StringPtr(name string) *string {
	raw, ok := n.Fields[name]
	if !ok || string(raw) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

// Bool возвращает булево поле, false по умолчанию.
func (n *SerializedNode) Bool(name string) bool {
	var b bool
	if raw, ok := n.Fields[name]; ok {
		_ = json.Unmarshal(raw, &b)
	}
	return b
}

// Int возвращает целочисленное поле, 0 по умолчанию.
func (n *SerializedNode) Int(name string) int {
	var i int
	if raw, ok := n.Fields[name]; ok {
		_ = json.Unmarshal(raw, &i)
	}
	return i
}

// StringSlice возвращает поле-список строк, nil по умолчанию.
func (n *SerializedNode) StringSlice(name string) []string {
	var s []string
	if raw, ok := n.Fields[name]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

// cloneShallow копирует снимок без детей.
func (n *SerializedNode) cloneShallow() *SerializedNode {
	c := NewSerializedNode(n.Type, n.Version)
	for k, v := range n.Fields {
		c.Fields[k] = v
	}
	return c
}

// Importer восстанавливает ноду из снимка. Отсутствующие или некорректные
// поля должны давать значения по умолчанию, а не ошибку: документ это
// пользовательский контент и обязан открываться всегда.
type Importer func(*SerializedNode) Node

var importers = map[string]Importer{}

// RegisterNodeType регистрирует импортер для типа ноды.
// Вызывается из init пакетов, определяющих свои ноды.
func RegisterNodeType(nodeType string, imp Importer) {
	importers[nodeType] = imp
}

func newKey(n uint64) NodeKey {
	return NodeKey("k" + strconv.FormatUint(n, 10))
}
