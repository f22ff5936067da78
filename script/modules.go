package script

import (
	"fmt"

	"go.starlark.net/lib/math"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

type builtinFunc = func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

func newModule(name string, members starlark.StringDict) *starlarkstruct.Module {
	return &starlarkstruct.Module{Name: name, Members: members}
}

func builtins(fns map[string]builtinFunc) (members starlark.StringDict) {
	members = make(starlark.StringDict, len(fns))
	for name, fn := range fns {
		members[name] = starlark.NewBuiltin(name, fn)
	}
	return
}

// none returns None, or the error.
func none(err error) (starlark.Value, error) {
	if err != nil {
		return nil, err
	}
	return starlark.None, nil
}

// asBytes requires a bytes argument; strings are rejected.
func asBytes(fnname string, v starlark.Value) (data []byte, err error) {
	b, ok := v.(starlark.Bytes)
	if !ok {
		err = fmt.Errorf("%w: %s: got %s, want bytes", ErrType, fnname, v.Type())
		return
	}

	data = []byte(b)
	return
}

// asString requires a string argument.
func asString(fnname string, v starlark.Value) (text string, err error) {
	s, ok := v.(starlark.String)
	if !ok {
		err = fmt.Errorf("%w: %s: got %s, want string", ErrType, fnname, v.Type())
		return
	}

	text = string(s)
	return
}

// asCallable requires a callable or None; None yields a nil callable.
func asCallable(fnname string, v starlark.Value) (fn starlark.Callable, err error) {
	if v == starlark.None {
		return
	}

	fn, ok := v.(starlark.Callable)
	if !ok {
		err = fmt.Errorf("%w: %s: got %s, want callable", ErrType, fnname, v.Type())
		return
	}

	return
}

// asAddress requires a 16-bit bus address.
func asAddress(fnname string, addr int) (address uint16, err error) {
	if addr < 0 || addr > 0xffff {
		err = fmt.Errorf("%w: %s: address 0x%x", ErrValue, fnname, addr)
		return
	}

	address = uint16(addr)
	return
}

// newModules builds the predeclared environment of every script.
func (m *Machine) newModules() (modules starlark.StringDict) {
	modules = starlark.StringDict{
		"bluetooth": m.bluetoothModule(),
		"camera":    m.cameraModule(),
		"device":    m.deviceModule(),
		"display":   m.displayModule(),
		"fpga":      m.fpgaModule(),
		"led":       m.ledModule(),
		"time":      m.timeModule(),
		"touch":     m.touchModule(),
		"update":    m.updateModule(),
		"math":      math.Module,

		"check": starlark.NewBuiltin("check", m.check),
	}

	for _, kind := range []errorKind{
		KIND_VALUE_ERROR,
		KIND_TYPE_ERROR,
		KIND_INVALID_DIMENSIONS,
		KIND_INCOMPATIBLE_BLOCK_SIZE,
		KIND_ALREADY_CONSUMED,
		KIND_RUNTIME_ERROR,
	} {
		modules[string(kind)] = kind
	}

	return
}
