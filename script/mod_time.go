package script

import (
	"fmt"
	"time"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/ezrec/monocle/peripheral"
)

func (m *Machine) timeModule() *starlarkstruct.Module {
	return newModule("time", builtins(map[string]builtinFunc{
		"time":   m.timeTime,
		"now":    m.timeNow,
		"zone":   m.timeZone,
		"mktime": timeMktime,
		"sleep":  m.timeSleep,
	}))
}

// time() -> epoch
// time(epoch)
func (m *Machine) timeTime(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var epoch starlark.Value
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0, &epoch)
	if err != nil {
		return nil, err
	}

	if epoch == nil {
		return starlark.MakeInt64(m.Clock.Time()), nil
	}

	var value int64
	err = starlark.AsInt(epoch, &value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrType, b.Name(), err)
	}

	return none(m.Clock.SetTime(value))
}

var fieldNames = []string{"year", "month", "day", "hour", "minute", "second", "weekday", "yearday", "timezone"}

func fieldsDict(fields peripheral.Fields) (dict *starlark.Dict, err error) {
	values := []starlark.Value{
		starlark.MakeInt(fields.Year),
		starlark.MakeInt(fields.Month),
		starlark.MakeInt(fields.Day),
		starlark.MakeInt(fields.Hour),
		starlark.MakeInt(fields.Minute),
		starlark.MakeInt(fields.Second),
		starlark.String(fields.Weekday),
		starlark.MakeInt(fields.Yearday),
		starlark.String(fields.Timezone),
	}

	dict = starlark.NewDict(len(fieldNames))
	for n, name := range fieldNames {
		err = dict.SetKey(starlark.String(name), values[n])
		if err != nil {
			return
		}
	}

	return
}

// now() -> dict
// now(epoch) -> dict
func (m *Machine) timeNow(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var epoch starlark.Value
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0, &epoch)
	if err != nil {
		return nil, err
	}

	fields := m.Clock.Now()
	if epoch != nil {
		var value int64
		err = starlark.AsInt(epoch, &value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrType, b.Name(), err)
		}
		fields, err = m.Clock.At(value)
		if err != nil {
			return nil, err
		}
	}

	return fieldsDict(fields)
}

// zone() -> "[-]HH:MM"
// zone(offset)
func (m *Machine) timeZone(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var zone starlark.Value
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0, &zone)
	if err != nil {
		return nil, err
	}

	if zone == nil {
		return starlark.String(m.Clock.Zone()), nil
	}

	text, err := asString(b.Name(), zone)
	if err != nil {
		return nil, err
	}

	return none(m.Clock.SetZone(text))
}

// mktime(dict) -> epoch
func timeMktime(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var dict *starlark.Dict
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &dict)
	if err != nil {
		return nil, err
	}

	var fields peripheral.Fields
	required := []struct {
		name  string
		value *int
	}{
		{"year", &fields.Year},
		{"month", &fields.Month},
		{"day", &fields.Day},
		{"hour", &fields.Hour},
		{"minute", &fields.Minute},
		{"second", &fields.Second},
	}

	for _, field := range required {
		value, found, err := dict.Get(starlark.String(field.name))
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("%w: %s: missing %q", ErrValue, b.Name(), field.name)
		}
		*field.value, err = starlark.AsInt32(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %q: %v", ErrType, b.Name(), field.name, err)
		}
	}

	zone, found, err := dict.Get(starlark.String("timezone"))
	if err != nil {
		return nil, err
	}
	if found {
		fields.Timezone, err = asString(b.Name(), zone)
		if err != nil {
			return nil, err
		}
	}

	epoch, err := peripheral.Mktime(fields)
	if err != nil {
		return nil, err
	}

	return starlark.MakeInt64(epoch), nil
}

// sleep(seconds)
func (m *Machine) timeSleep(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value starlark.Value
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &value)
	if err != nil {
		return nil, err
	}

	seconds, ok := starlark.AsFloat(value)
	if !ok {
		return nil, fmt.Errorf("%w: %s: got %s, want int or float", ErrType, b.Name(), value.Type())
	}

	if seconds < 0 {
		return nil, fmt.Errorf("%w: %s: negative duration", ErrValue, b.Name())
	}

	m.Clock.Sleep(time.Duration(seconds * float64(time.Second)))
	return starlark.None, nil
}
