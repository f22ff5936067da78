package script

import (
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// The update module only carries the FPGA bitstream region; firmware
// updates are handled by the bootloader.
func (m *Machine) updateModule() *starlarkstruct.Module {
	region := newModule("Fpga", builtins(map[string]builtinFunc{
		"erase": m.updateErase,
		"write": m.updateWrite,
		"read":  m.updateRead,
	}))

	return newModule("update", starlark.StringDict{
		"Fpga": region,
	})
}

// Fpga.erase()
func (m *Machine) updateErase(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	m.Flash.Erase()
	return starlark.None, nil
}

// Fpga.write(data)
func (m *Machine) updateWrite(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value starlark.Value
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &value)
	if err != nil {
		return nil, err
	}

	data, err := asBytes(b.Name(), value)
	if err != nil {
		return nil, err
	}

	return none(m.Flash.Write(data))
}

// Fpga.read(offset, n) -> bytes
func (m *Machine) updateRead(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var offset, n int
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &offset, &n)
	if err != nil {
		return nil, err
	}

	data, err := m.Flash.Read(offset, n)
	if err != nil {
		return nil, err
	}

	return starlark.Bytes(data), nil
}
