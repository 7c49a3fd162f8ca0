package editor

import "sort"

// Шина команд: обработчики регистрируются с приоритетом, диспетчеризация
// идет от большего приоритета к меньшему до первого обработавшего.
// Обработчик возвращает false, если предусловия не выполнены - команда
// проваливается к следующему обработчику, а не падает с ошибкой.

type CommandHandler func(tx *Tx, payload any) bool

type registeredCommand struct {
	handler  CommandHandler
	priority int
	seq      int
}

// RegisterCommand регистрирует обработчик команды.
func (t *Tree) RegisterCommand(cmd string, h CommandHandler, priority int) {
	list := append(t.commands[cmd], registeredCommand{handler: h, priority: priority, seq: len(t.commands[cmd])})
	sort.SliceStable(list, func(i, j int) bool { return list[i].priority > list[j].priority })
	t.commands[cmd] = list
}

// Dispatch выполняет команду в собственной транзакции.
// Возвращает true, если какой-либо обработчик принял команду.
func (t *Tree) Dispatch(cmd string, payload any) bool {
	handled := false
	err := t.Update(func(tx *Tx) error {
		for _, rc := range t.commands[cmd] {
			if rc.handler(tx, payload) {
				handled = true
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return false
	}
	return handled
}
