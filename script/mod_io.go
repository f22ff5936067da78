package script

import (
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/ezrec/monocle/peripheral"
)

func (m *Machine) ledModule() *starlarkstruct.Module {
	members := builtins(map[string]builtinFunc{
		"on":  m.ledOn,
		"off": m.ledOff,
	})
	members["RED"] = starlark.String(peripheral.LED_RED)
	members["GREEN"] = starlark.String(peripheral.LED_GREEN)

	return newModule("led", members)
}

// on(led)
func (m *Machine) ledOn(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value starlark.Value
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &value)
	if err != nil {
		return nil, err
	}

	name, err := asString(b.Name(), value)
	if err != nil {
		return nil, err
	}

	return none(m.Led.On(name))
}

// off(led)
func (m *Machine) ledOff(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value starlark.Value
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &value)
	if err != nil {
		return nil, err
	}

	name, err := asString(b.Name(), value)
	if err != nil {
		return nil, err
	}

	return none(m.Led.Off(name))
}

func (m *Machine) touchModule() *starlarkstruct.Module {
	members := builtins(map[string]builtinFunc{
		"state":    m.touchState,
		"callback": m.touchCallback,
	})
	members["A"] = starlark.String(peripheral.TOUCH_A)
	members["B"] = starlark.String(peripheral.TOUCH_B)
	members["BOTH"] = starlark.String(peripheral.TOUCH_BOTH)

	return newModule("touch", members)
}

// state(button) -> bool
func (m *Machine) touchState(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value starlark.Value
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &value)
	if err != nil {
		return nil, err
	}

	button, err := asString(b.Name(), value)
	if err != nil {
		return nil, err
	}

	held, err := m.Touch.State(button)
	if err != nil {
		return nil, err
	}

	return starlark.Bool(held), nil
}

// callback(button, fn)
func (m *Machine) touchCallback(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value, fnValue starlark.Value
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &value, &fnValue)
	if err != nil {
		return nil, err
	}

	button, err := asString(b.Name(), value)
	if err != nil {
		return nil, err
	}

	fn, err := asCallable(b.Name(), fnValue)
	if err != nil {
		return nil, err
	}

	if fn == nil {
		return none(m.Touch.Callback(button, nil))
	}

	return none(m.Touch.Callback(button, func(button string) {
		m.call("touch", fn, starlark.String(button))
	}))
}

func (m *Machine) bluetoothModule() *starlarkstruct.Module {
	return newModule("bluetooth", builtins(map[string]builtinFunc{
		"connected":        m.bluetoothConnected,
		"max_length":       m.bluetoothMaxLength,
		"send":             m.bluetoothSend,
		"receive_callback": m.bluetoothReceiveCallback,
	}))
}

// connected() -> bool
func (m *Machine) bluetoothConnected(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	return starlark.Bool(m.Bluetooth.Connected()), nil
}

// max_length() -> int
func (m *Machine) bluetoothMaxLength(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	return starlark.MakeInt(m.Bluetooth.MaxLength()), nil
}

// send(data)
func (m *Machine) bluetoothSend(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value starlark.Value
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &value)
	if err != nil {
		return nil, err
	}

	data, err := asBytes(b.Name(), value)
	if err != nil {
		return nil, err
	}

	return none(m.Bluetooth.Send(data))
}

// receive_callback(fn)
func (m *Machine) bluetoothReceiveCallback(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var fnValue starlark.Value
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &fnValue)
	if err != nil {
		return nil, err
	}

	fn, err := asCallable(b.Name(), fnValue)
	if err != nil {
		return nil, err
	}

	if fn == nil {
		m.Bluetooth.ReceiveCallback(nil)
		return starlark.None, nil
	}

	m.Bluetooth.ReceiveCallback(func(data []byte) {
		m.call("bluetooth", fn, starlark.Bytes(data))
	})
	return starlark.None, nil
}
