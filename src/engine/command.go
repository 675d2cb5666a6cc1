package engine

//Command is the user request decoded from one input byte
type Command int

const (
	CommandUnknown Command = iota
	CommandQuit
	CommandClear
	CommandStart
	CommandPaint
	CommandBanner
	CommandPause
	CommandReseed
)

var commandNames = map[Command]string{
	CommandUnknown: "unknown",
	CommandQuit:    "quit",
	CommandClear:   "clear",
	CommandStart:   "start",
	CommandPaint:   "paint",
	CommandBanner:  "banner",
	CommandPause:   "pause",
	CommandReseed:  "reseed",
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return "unknown"
}

//KeyMap binds raw input bytes to the commands
type KeyMap map[byte]Command

const keyCtrlC = 0x03

var DefaultKeyMap = KeyMap{
	'q':      CommandQuit,
	keyCtrlC: CommandQuit,
	'c':      CommandClear,
	's':      CommandStart,
	'd':      CommandPaint,
	'a':      CommandBanner,
	'p':      CommandPause,
	'r':      CommandReseed,
}

//Decode returns the command bound to b, CommandUnknown if none
func (k KeyMap) Decode(b byte) Command {
	return k[b]
}
