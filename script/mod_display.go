package script

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/ezrec/monocle/peripheral"
)

func (m *Machine) displayModule() *starlarkstruct.Module {
	members := builtins(map[string]builtinFunc{
		"Line":      displayLine,
		"Rectangle": displayRectangle,
		"Text":      displayText,
		"show":      m.displayShow,
		"clear":     m.displayClear,
	})

	members["WIDTH"] = starlark.MakeInt(peripheral.DISPLAY_WIDTH)
	members["HEIGHT"] = starlark.MakeInt(peripheral.DISPLAY_HEIGHT)
	members["FONT_WIDTH"] = starlark.MakeInt(peripheral.DISPLAY_FONT_WIDTH)
	members["FONT_HEIGHT"] = starlark.MakeInt(peripheral.DISPLAY_FONT_HEIGHT)
	for name, color := range peripheral.Colors {
		members[name] = starlark.MakeUint(uint(color))
	}

	return newModule("display", members)
}

// shapeValue is a displayable object as seen by scripts.
type shapeValue struct {
	shape peripheral.Shape
	kind  string
}

var _ starlark.Value = (*shapeValue)(nil)

func (sv *shapeValue) String() string { return sv.shape.String() }

func (sv *shapeValue) Type() string { return sv.kind }

func (sv *shapeValue) Freeze() {}

func (sv *shapeValue) Truth() starlark.Bool { return starlark.True }

func (sv *shapeValue) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", sv.kind)
}

// Line(x1, y1, x2, y2, color, thickness=1)
func displayLine(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x1, y1, x2, y2, color int
	thickness := 1
	err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"x1", &x1, "y1", &y1, "x2", &x2, "y2", &y2, "color", &color, "thickness?", &thickness)
	if err != nil {
		return nil, err
	}

	line, err := peripheral.NewLine(x1, y1, x2, y2, uint32(color), thickness)
	if err != nil {
		return nil, err
	}

	return &shapeValue{shape: line, kind: "Line"}, nil
}

// Rectangle(x1, y1, x2, y2, color)
func displayRectangle(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x1, y1, x2, y2, color int
	err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"x1", &x1, "y1", &y1, "x2", &x2, "y2", &y2, "color", &color)
	if err != nil {
		return nil, err
	}

	rect, err := peripheral.NewRectangle(x1, y1, x2, y2, uint32(color))
	if err != nil {
		return nil, err
	}

	return &shapeValue{shape: rect, kind: "Rectangle"}, nil
}

// Text(string, x, y, color)
func displayText(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var text string
	var x, y, color int
	err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"string", &text, "x", &x, "y", &y, "color", &color)
	if err != nil {
		return nil, err
	}

	txt, err := peripheral.NewText(text, x, y, uint32(color))
	if err != nil {
		return nil, err
	}

	return &shapeValue{shape: txt, kind: "Text"}, nil
}

// show(*shapes)
func (m *Machine) displayShow(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) != 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
	}

	shapes := make([]peripheral.Shape, 0, len(args))
	for _, arg := range args {
		sv, ok := arg.(*shapeValue)
		if !ok {
			return nil, fmt.Errorf("%w: %s: got %s, want a display object", ErrType, b.Name(), arg.Type())
		}
		shapes = append(shapes, sv.shape)
	}

	return none(m.Display.Show(shapes...))
}

// clear()
func (m *Machine) displayClear(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	return none(m.Display.Show())
}
