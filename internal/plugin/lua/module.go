package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/termkeys/internal/input/key"
	"github.com/dshills/termkeys/internal/input/keycode"
	"github.com/dshills/termkeys/internal/input/termcap"
	"github.com/dshills/termkeys/internal/logging"
)

// Module implements the termkeys Lua API.
type Module struct {
	modes  func() keycode.Modes
	logger *logging.Logger
}

// ModuleOption configures a Module.
type ModuleOption func(*Module)

// WithModesFunc sets where encode reads the terminal modes when the script
// does not pass them.
func WithModesFunc(fn func() keycode.Modes) ModuleOption {
	return func(m *Module) {
		m.modes = fn
	}
}

// WithModuleLogger sets the logger behind termkeys.log.
func WithModuleLogger(l *logging.Logger) ModuleOption {
	return func(m *Module) {
		m.logger = l
	}
}

// NewModule creates the termkeys module.
func NewModule(opts ...ModuleOption) *Module {
	m := &Module{
		modes: func() keycode.Modes { return keycode.Modes{} },
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}
	m.logger = m.logger.WithComponent("lua")
	return m
}

// Name returns the module name.
func (m *Module) Name() string {
	return ModuleName
}

// Install preloads the module into s so scripts can require it, and
// also sets it as a global.
func (m *Module) Install(s *State) error {
	s.PreloadModule(ModuleName, m.Loader)
	return s.Do(func(L *lua.LState) error {
		L.SetGlobal(ModuleName, m.table(L))
		return nil
	})
}

// Loader is the lua.LGFunction passed to PreloadModule.
func (m *Module) Loader(L *lua.LState) int {
	L.Push(m.table(L))
	return 1
}

func (m *Module) table(L *lua.LState) *lua.LTable {
	mod := L.NewTable()

	L.SetField(mod, "encode", L.NewFunction(m.encode))
	L.SetField(mod, "transform", L.NewFunction(m.transform))
	L.SetField(mod, "modifier_code", L.NewFunction(m.modifierCode))
	L.SetField(mod, "termcap", L.NewFunction(m.termcap))
	L.SetField(mod, "parse", L.NewFunction(m.parse))
	L.SetField(mod, "keys", L.NewFunction(m.keys))
	L.SetField(mod, "log", L.NewFunction(m.log))

	return mod
}

// encode(spec [, modes]) -> string | nil
// Encodes a key specification. modes is {cursor_app = bool, keypad_app = bool}.
func (m *Module) encode(L *lua.LState) int {
	ev, err := key.Parse(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}

	modes := m.modes()
	if tbl, ok := L.Get(2).(*lua.LTable); ok {
		modes.CursorKeysApplication = lua.LVAsBool(L.GetField(tbl, "cursor_app"))
		modes.KeypadApplication = lua.LVAsBool(L.GetField(tbl, "keypad_app"))
	}

	out, ok := keycode.Encode(ev.Key, ev.Modifiers, modes)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(out))
	return 1
}

// transform(prefix, mods, final) -> string
// mods is a modifier string such as "C-S" or "Ctrl+Alt".
func (m *Module) transform(L *lua.LState) int {
	prefix := L.CheckString(1)
	mods := key.ParseModifiers(L.OptString(2, ""))
	final := L.CheckString(3)
	if len(final) != 1 {
		L.ArgError(3, "final must be a single byte")
		return 0
	}

	L.Push(lua.LString(keycode.Transform(prefix, mods, final[0])))
	return 1
}

// modifier_code(mods) -> int
// Returns the xterm parameter for a modifier string, 0 for none.
func (m *Module) modifierCode(L *lua.LState) int {
	L.Push(lua.LNumber(keycode.ModifierCode(key.ParseModifiers(L.OptString(1, "")))))
	return 1
}

// termcap(name) -> spec | nil
// Returns the key specification bound to a termcap capability.
func (m *Module) termcap(L *lua.LState) int {
	entry, ok := termcap.Lookup(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(entry.Event().String()))
	return 1
}

// parse(spec) -> {key, ctrl, alt, shift} | nil, err
func (m *Module) parse(L *lua.LState) int {
	ev, err := key.Parse(L.CheckString(1))
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(eventTable(L, ev))
	return 1
}

// keys() -> {names}
func (m *Module) keys(L *lua.LState) int {
	tbl := L.NewTable()
	for k := key.KeyNone + 1; k.Valid(); k++ {
		tbl.Append(lua.LString(k.String()))
	}
	L.Push(tbl)
	return 1
}

// log(level, msg)
func (m *Module) log(L *lua.LState) int {
	level := logging.ParseLevel(L.CheckString(1))
	msg := L.CheckString(2)

	switch level {
	case logging.LevelDebug:
		m.logger.Debug("%s", msg)
	case logging.LevelWarn:
		m.logger.Warn("%s", msg)
	case logging.LevelError:
		m.logger.Error("%s", msg)
	default:
		m.logger.Info("%s", msg)
	}
	return 0
}

// eventTable converts a key event into the table scripts see.
func eventTable(L *lua.LState, ev key.Event) *lua.LTable {
	tbl := L.NewTable()
	L.SetField(tbl, "key", lua.LString(ev.Key.String()))
	L.SetField(tbl, "spec", lua.LString(ev.VimString()))
	L.SetField(tbl, "ctrl", lua.LBool(ev.Modifiers.HasCtrl()))
	L.SetField(tbl, "alt", lua.LBool(ev.Modifiers.HasAlt()))
	L.SetField(tbl, "shift", lua.LBool(ev.Modifiers.HasShift()))
	return tbl
}
