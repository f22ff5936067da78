package camera

import (
	"log"
	"time"

	"github.com/ezrec/monocle/fpga"
)

// Camera command opcodes.
const (
	CMD_STOP  = 4
	CMD_START = 5
)

// OVERLAY_SETTLE is the delay between stopping the camera and putting the
// sensor to sleep when the overlay is turned off.
const OVERLAY_SETTLE = 100 * time.Millisecond

// Peripheral is the FPGA as seen by the camera.
type Peripheral interface {
	Streamer
	Write(addr uint16, data []byte) error
	FeatureDevice(name string) (dev uint8, err error)
	Readout(id int) (dev uint8, err error)
}

var _ Peripheral = (*fpga.Fpga)(nil)

// Sensor is the power control of the image sensor.
type Sensor interface {
	PowerOn() error
	Wake() error
	Sleep() error
}

// Sleeper pauses the caller.
type Sleeper interface {
	Sleep(d time.Duration)
}

// Camera controls the image sensor and its FPGA pipeline.
type Camera struct {
	Verbose bool // If set, logs commands and captures.

	Periph          Peripheral // FPGA register access.
	Sensor          Sensor     // Image sensor power control.
	Clock           Sleeper    // Delays; time.Sleep if nil.
	TransferCeiling int        // Capture sub-transfer ceiling; DEFAULT_TRANSFER_CEILING if zero.
}

func (cam *Camera) sleep(d time.Duration) {
	if cam.Clock == nil {
		time.Sleep(d)
		return
	}
	cam.Clock.Sleep(d)
}

// PowerOn powers the image sensor.
func (cam *Camera) PowerOn() (err error) {
	return cam.Sensor.PowerOn()
}

// Command sends an opcode to the camera block of the FPGA.
func (cam *Camera) Command(op uint8) (err error) {
	dev, err := cam.Periph.FeatureDevice(fpga.FEATURE_CAMERA)
	if err != nil {
		return
	}

	if cam.Verbose {
		log.Printf("camera: command %d", op)
	}

	err = cam.Periph.Write(fpga.Address(dev, op), nil)
	return
}

// Start starts the camera pipeline.
func (cam *Camera) Start() error {
	return cam.Command(CMD_START)
}

// Stop stops the camera pipeline.
func (cam *Camera) Stop() error {
	return cam.Command(CMD_STOP)
}

// Overlay turns the live camera overlay on or off, waking or sleeping the
// sensor to match.
func (cam *Camera) Overlay(enable bool) (err error) {
	if enable {
		err = cam.Sensor.Wake()
		if err != nil {
			return
		}
		err = cam.Start()
		return
	}

	err = cam.Stop()
	if err != nil {
		return
	}

	cam.sleep(OVERLAY_SETTLE)

	err = cam.Sensor.Sleep()
	return
}

// Capture prepares a capture of one image from an image readout.
//
// The readout is resolved to its device block and the capture is validated
// before the readout's pending settings are applied, so a bad geometry never
// reaches the bus.
func (cam *Camera) Capture(dim Dimensions, blockPixels int, readout int) (c *Capture, err error) {
	dev, err := cam.Periph.Readout(readout)
	if err != nil {
		return
	}

	options := []Option{WithVerbose(cam.Verbose)}
	if cam.TransferCeiling != 0 {
		options = append(options, WithTransferCeiling(cam.TransferCeiling))
	}

	c, err = NewCapture(cam.Periph, dev, dim, blockPixels, options...)
	if err != nil {
		return
	}

	err = cam.Periph.Write(fpga.Address(dev, fpga.REG_READOUT_CONTROL), nil)
	if err != nil {
		c = nil
		return
	}

	return
}
