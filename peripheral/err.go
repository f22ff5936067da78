package peripheral

import (
	"errors"

	"github.com/ezrec/monocle/translate"
)

var f = translate.From

var (
	ErrLedInvalid   = errors.New(f("led must be RED or GREEN"))
	ErrTouchInvalid = errors.New(f("touch button must be A, B or BOTH"))

	ErrPayloadSize  = errors.New(f("payload exceeds bluetooth max length"))
	ErrDisconnected = errors.New(f("bluetooth not connected"))

	ErrShapeInvalid = errors.New(f("shape invalid"))
	ErrColorInvalid = errors.New(f("color invalid"))

	ErrTimeInvalid = errors.New(f("time must be a positive epoch"))
	ErrZoneInvalid = errors.New(f("timezone must be between -12:00 and 14:00"))

	ErrFlashRange = errors.New(f("access outside of flash region"))
)
