package script

import (
	"fmt"
	"io"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/ezrec/monocle/camera"
)

func (m *Machine) cameraModule() *starlarkstruct.Module {
	return newModule("camera", builtins(map[string]builtinFunc{
		"power_on": m.cameraPowerOn,
		"start":    m.cameraStart,
		"stop":     m.cameraStop,
		"overlay":  m.cameraOverlay,
		"capture":  m.cameraCapture,
	}))
}

func (m *Machine) cameraPowerOn(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	return none(m.Camera.PowerOn())
}

func (m *Machine) cameraStart(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	return none(m.Camera.Start())
}

func (m *Machine) cameraStop(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	return none(m.Camera.Stop())
}

func (m *Machine) cameraOverlay(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var enable bool
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &enable)
	if err != nil {
		return nil, err
	}

	return none(m.Camera.Overlay(enable))
}

// asDimensions converts an [xres, yres, bpp] list or tuple.
func asDimensions(v starlark.Value) (dim camera.Dimensions, err error) {
	seq, ok := v.(starlark.Indexable)
	if !ok {
		err = fmt.Errorf("%w: got %s", camera.ErrInvalidDimensions, v.Type())
		return
	}

	values := make([]int, seq.Len())
	for n := range values {
		values[n], err = starlark.AsInt32(seq.Index(n))
		if err != nil {
			err = fmt.Errorf("%w: %v", camera.ErrInvalidDimensions, err)
			return
		}
	}

	return camera.DimensionsOf(values)
}

// capture(dim, blksize, readout_id=0) -> Capture
func (m *Machine) cameraCapture(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var dimValue starlark.Value
	var blksize, readout int
	err := starlark.UnpackArgs(b.Name(), args, kwargs, "dim", &dimValue, "blksize", &blksize, "readout_id?", &readout)
	if err != nil {
		return nil, err
	}

	dim, err := asDimensions(dimValue)
	if err != nil {
		return nil, err
	}

	c, err := m.Camera.Capture(dim, blksize, readout)
	if err != nil {
		return nil, err
	}

	return &captureValue{capture: c}, nil
}

// captureValue is a camera.Capture as seen by scripts.
type captureValue struct {
	capture *camera.Capture
}

var (
	_ starlark.Value    = (*captureValue)(nil)
	_ starlark.HasAttrs = (*captureValue)(nil)
)

func (cv *captureValue) String() string {
	c := cv.capture
	return fmt.Sprintf("<Capture %v from 0x%04x, %v>", c.Dimensions, c.Address, c.State())
}

func (cv *captureValue) Type() string { return "Capture" }

func (cv *captureValue) Freeze() {}

func (cv *captureValue) Truth() starlark.Bool { return starlark.True }

func (cv *captureValue) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", cv.Type())
}

func (cv *captureValue) AttrNames() []string {
	return []string{"addr", "blksize", "chunk", "next", "position", "start", "state", "total"}
}

func (cv *captureValue) Attr(name string) (value starlark.Value, err error) {
	c := cv.capture
	switch name {
	case "addr":
		value = starlark.MakeInt(int(c.Address))
	case "blksize":
		value = starlark.MakeInt(c.Block)
	case "chunk":
		value = starlark.MakeInt(c.Chunk)
	case "total":
		value = starlark.MakeInt(c.Total)
	case "state":
		value = starlark.String(c.State().String())
	case "position":
		pos, ok := c.Position()
		if !ok {
			value = starlark.None
		} else {
			value = starlark.MakeInt(pos)
		}
	case "start":
		value = starlark.NewBuiltin("start", cv.start).BindReceiver(cv)
	case "next":
		value = starlark.NewBuiltin("next", cv.next).BindReceiver(cv)
	}

	return
}

// start()
func (cv *captureValue) start(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	return none(cv.capture.Start())
}

// next() -> bytes | None
func (cv *captureValue) next(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	buf, err := cv.capture.Next()
	if err == io.EOF {
		return starlark.None, nil
	}
	if err != nil {
		return nil, err
	}

	return starlark.Bytes(buf), nil
}
