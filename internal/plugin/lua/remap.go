package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/termkeys/internal/input/key"
	"github.com/dshills/termkeys/internal/input/translator"
)

// RemapFunction is the global a remap script must define.
const RemapFunction = "remap"

var _ translator.Remapper = (*Remapper)(nil)

// Remapper runs a Lua remap script against key events.
type Remapper struct {
	state *State
	path  string
}

// LoadRemapper creates a sandboxed state, installs module and runs the
// script at path. The script must define a global remap function.
func LoadRemapper(path string, module *Module, opts ...StateOption) (*Remapper, error) {
	s := NewState(opts...)
	r, err := newRemapper(s, module, func() error { return s.DoFile(path) })
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	r.path = path
	return r, nil
}

// LoadRemapperString is LoadRemapper for script source held in memory.
func LoadRemapperString(code string, module *Module, opts ...StateOption) (*Remapper, error) {
	s := NewState(opts...)
	return newRemapper(s, module, func() error { return s.DoString(code) })
}

func newRemapper(s *State, module *Module, run func() error) (*Remapper, error) {
	if module == nil {
		module = NewModule()
	}
	if err := module.Install(s); err != nil {
		s.Close()
		return nil, err
	}
	if err := run(); err != nil {
		s.Close()
		return nil, err
	}
	if s.GetGlobal(RemapFunction).Type() != lua.LTFunction {
		s.Close()
		return nil, ErrNoRemapFunction
	}
	return &Remapper{state: s}, nil
}

// Path returns the script path, or "" for in-memory scripts.
func (r *Remapper) Path() string {
	return r.path
}

// Remap calls remap(ev). A string result overrides the encoding; nil or
// false defers to the built-in rules.
func (r *Remapper) Remap(ev key.Event) (string, bool, error) {
	var (
		out string
		ok  bool
	)
	err := r.state.Do(func(L *lua.LState) error {
		L.Push(L.GetGlobal(RemapFunction))
		L.Push(eventTable(L, ev))
		if err := L.PCall(1, 1, nil); err != nil {
			return err
		}
		ret := L.Get(-1)
		L.Pop(1)

		switch v := ret.(type) {
		case lua.LString:
			out, ok = string(v), true
		case *lua.LNilType:
		case lua.LBool:
			if bool(v) {
				return fmt.Errorf("%w: got true", ErrBadReturn)
			}
		default:
			return fmt.Errorf("%w: got %s", ErrBadReturn, ret.Type())
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return out, ok, nil
}

// Close releases the Lua state.
func (r *Remapper) Close() error {
	return r.state.Close()
}
