package script

import (
	"errors"
	"strings"

	"go.starlark.net/starlark"

	"github.com/ezrec/monocle/camera"
	"github.com/ezrec/monocle/fpga"
	"github.com/ezrec/monocle/peripheral"
	"github.com/ezrec/monocle/translate"
)

var f = translate.From

var (
	ErrType  = errors.New(f("wrong argument type"))
	ErrValue = errors.New(f("argument value invalid"))
)

// errorKind is the class of a failed operation, as seen by scripts.
type errorKind string

const (
	KIND_VALUE_ERROR             = errorKind("ValueError")
	KIND_TYPE_ERROR              = errorKind("TypeError")
	KIND_INVALID_DIMENSIONS      = errorKind("InvalidDimensions")
	KIND_INCOMPATIBLE_BLOCK_SIZE = errorKind("IncompatibleBlockSize")
	KIND_ALREADY_CONSUMED        = errorKind("AlreadyConsumed")
	KIND_RUNTIME_ERROR           = errorKind("RuntimeError")
)

var _ starlark.Value = errorKind("")

func (ek errorKind) String() string { return string(ek) }
func (ek errorKind) Type() string { return "error_kind" }
func (ek errorKind) Freeze() {}
func (ek errorKind) Truth() starlark.Bool { return starlark.True }
func (ek errorKind) Hash() (uint32, error) { return starlark.String(ek).Hash() }

// errorKinds classifies errors, most specific first.
var errorKinds = []struct {
	kind errorKind
	errs []error
}{
	{KIND_INVALID_DIMENSIONS, []error{camera.ErrInvalidDimensions}},
	{KIND_INCOMPATIBLE_BLOCK_SIZE, []error{camera.ErrIncompatibleBlockSize}},
	{KIND_ALREADY_CONSUMED, []error{camera.ErrAlreadyConsumed}},
	{KIND_TYPE_ERROR, []error{ErrType}},
	{KIND_VALUE_ERROR, []error{
		ErrValue,
		fpga.ErrTransferSize,
		fpga.ErrReadoutInvalid,
		camera.ErrTransferCeiling,
		peripheral.ErrLedInvalid,
		peripheral.ErrTouchInvalid,
		peripheral.ErrPayloadSize,
		peripheral.ErrShapeInvalid,
		peripheral.ErrColorInvalid,
		peripheral.ErrTimeInvalid,
		peripheral.ErrZoneInvalid,
		peripheral.ErrFlashRange,
	}},
}

// argumentErrors are the messages of interpreter argument checks, which
// scripts see as type errors.
var argumentErrors = []string{
	", want ",
	"missing argument for ",
	"unexpected keyword argument",
	"got multiple values for",
}

// KindOf returns the script visible class of an error.
func KindOf(err error) string {
	return string(kindOf(err))
}

func kindOf(err error) errorKind {
	for _, entry := range errorKinds {
		for _, target := range entry.errs {
			if errors.Is(err, target) {
				return entry.kind
			}
		}
	}

	text := err.Error()
	for _, pattern := range argumentErrors {
		if strings.Contains(text, pattern) {
			return KIND_TYPE_ERROR
		}
	}

	return KIND_RUNTIME_ERROR
}
