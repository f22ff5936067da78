package camera

import (
	"errors"

	"github.com/ezrec/monocle/translate"
)

var f = translate.From

var (
	// Construction errors
	ErrInvalidDimensions     = errors.New(f("dimensions must be [xres, yres, bpp]"))
	ErrIncompatibleBlockSize = errors.New(f("block size is incompatible with image dimensions"))
	ErrTransferCeiling       = errors.New(f("transfer ceiling out of range"))

	// Iteration errors
	ErrAlreadyConsumed = errors.New(f("capture already consumed"))
	ErrNotStarted      = errors.New(f("capture not started"))

	// Sensor errors
	ErrSensorOff = errors.New(f("camera sensor not powered"))
)
