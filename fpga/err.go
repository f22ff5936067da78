package fpga

import (
	"errors"

	"github.com/ezrec/monocle/translate"
)

var f = translate.From

var (
	// Bus errors
	ErrTransferSize = errors.New(f("transfer size out of range"))
	ErrNotPowered   = errors.New(f("fpga not powered"))

	// Discovery errors
	ErrReadoutInvalid = errors.New(f("readout invalid"))
)

// ErrFeatureMissing indicates a feature that discovery did not find.
type ErrFeatureMissing string

func (ef ErrFeatureMissing) Error() string {
	return f("feature %v missing", string(ef))
}
