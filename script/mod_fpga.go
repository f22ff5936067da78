package script

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

func (m *Machine) fpgaModule() *starlarkstruct.Module {
	return newModule("fpga", builtins(map[string]builtinFunc{
		"read":      m.fpgaRead,
		"read_strm": m.fpgaReadStream,
		"write":     m.fpgaWrite,
		"features":  m.fpgaFeatures,
		"power":     m.fpgaPower,
		"status":    m.fpgaStatus,
	}))
}

// read(addr, n) -> bytes
func (m *Machine) fpgaRead(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr, n int
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &addr, &n)
	if err != nil {
		return nil, err
	}

	address, err := asAddress(b.Name(), addr)
	if err != nil {
		return nil, err
	}

	data, err := m.Fpga.Read(address, n)
	if err != nil {
		return nil, err
	}

	return starlark.Bytes(data), nil
}

// read_strm(addr, n, chunk) -> bytes
func (m *Machine) fpgaReadStream(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr, n, chunk int
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 3, &addr, &n, &chunk)
	if err != nil {
		return nil, err
	}

	address, err := asAddress(b.Name(), addr)
	if err != nil {
		return nil, err
	}

	data, err := m.Fpga.ReadStream(address, n, chunk)
	if err != nil {
		return nil, err
	}

	return starlark.Bytes(data), nil
}

// write(addr, data)
func (m *Machine) fpgaWrite(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr int
	var value starlark.Value
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &addr, &value)
	if err != nil {
		return nil, err
	}

	address, err := asAddress(b.Name(), addr)
	if err != nil {
		return nil, err
	}

	data, err := asBytes(b.Name(), value)
	if err != nil {
		return nil, err
	}

	return none(m.Fpga.Write(address, data))
}

// features() -> {name: device}
func (m *Machine) fpgaFeatures(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	features, err := m.Fpga.Features()
	if err != nil {
		return nil, err
	}

	dict := starlark.NewDict(8)
	for name, dev := range features {
		err = dict.SetKey(starlark.String(name), starlark.MakeInt(int(dev)))
		if err != nil {
			return nil, err
		}
	}

	return dict, nil
}

// power() -> "ON" | "OFF"
// power(state)
func (m *Machine) fpgaPower(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var state starlark.Value
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0, &state)
	if err != nil {
		return nil, err
	}

	if state == nil {
		if m.Fpga.Power() {
			return starlark.String("ON"), nil
		}
		return starlark.String("OFF"), nil
	}

	on, ok := state.(starlark.Bool)
	if !ok {
		return nil, fmt.Errorf("%w: %s: state must be True or False", ErrValue, b.Name())
	}

	m.Fpga.SetPower(bool(on))
	return starlark.None, nil
}

// status() -> "RUNNING" | "NOT_POWERED"
func (m *Machine) fpgaStatus(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	return starlark.String(m.Fpga.Status()), nil
}
