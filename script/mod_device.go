package script

import (
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

func (m *Machine) deviceModule() *starlarkstruct.Module {
	members := builtins(map[string]builtinFunc{
		"mac_address":   m.deviceMacAddress,
		"battery_level": m.deviceBatteryLevel,
		"prevent_sleep": m.devicePreventSleep,
		"Storage":       m.deviceStorage,
	})
	members["NAME"] = starlark.String(m.Info.Name)
	members["VERSION"] = starlark.String(m.Info.Version)
	members["GIT_TAG"] = starlark.String(m.Info.GitTag)
	members["GIT_REPO"] = starlark.String(m.Info.GitRepo)

	return newModule("device", members)
}

// mac_address() -> str
func (m *Machine) deviceMacAddress(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	return starlark.String(m.Info.MacAddress), nil
}

// battery_level() -> int
func (m *Machine) deviceBatteryLevel(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	return starlark.MakeInt(m.Info.BatteryLevel), nil
}

// prevent_sleep() -> bool
// prevent_sleep(enable)
func (m *Machine) devicePreventSleep(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var enable starlark.Value
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0, &enable)
	if err != nil {
		return nil, err
	}

	if enable == nil {
		return starlark.Bool(m.Info.PreventSleep), nil
	}

	m.Info.PreventSleep = bool(enable.Truth())
	return starlark.None, nil
}

// Storage() -> str
func (m *Machine) deviceStorage(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	return starlark.String(m.Info.Storage()), nil
}
