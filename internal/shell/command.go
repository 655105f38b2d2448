package shell

import (
	"strconv"
	"strings"
)

// Command is one entry of the menu.
type Command int

const (
	CommandAdd Command = iota + 1
	CommandView
	CommandMarkDone
	CommandDelete
	CommandSave
	CommandReload
	CommandQuit
)

// Commands lists the menu in display order.
var Commands = []Command{
	CommandAdd,
	CommandView,
	CommandMarkDone,
	CommandDelete,
	CommandSave,
	CommandReload,
	CommandQuit,
}

// String returns the menu label.
func (c Command) String() string {
	switch c {
	case CommandAdd:
		return "Add Task"
	case CommandView:
		return "View Tasks"
	case CommandMarkDone:
		return "Mark Task as Done"
	case CommandDelete:
		return "Delete Task"
	case CommandSave:
		return "Save"
	case CommandReload:
		return "Reload"
	case CommandQuit:
		return "Quit"
	default:
		return "Command(" + strconv.Itoa(int(c)) + ")"
	}
}

// ParseCommand maps a menu key ("1".."7") to its command.
func ParseCommand(input string) (Command, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < int(CommandAdd) || n > int(CommandQuit) {
		return 0, false
	}
	return Command(n), true
}
