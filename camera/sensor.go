package camera

import (
	"log"
)

// SimSensor is a simulated image sensor that tracks its power state.
type SimSensor struct {
	Verbose bool

	Powered bool
	Awake   bool
}

var _ Sensor = (*SimSensor)(nil)

func (ss *SimSensor) PowerOn() (err error) {
	ss.Powered = true
	ss.Awake = true
	if ss.Verbose {
		log.Printf("camera: sensor powered")
	}
	return
}

func (ss *SimSensor) Wake() (err error) {
	if !ss.Powered {
		err = ErrSensorOff
		return
	}
	ss.Awake = true
	return
}

func (ss *SimSensor) Sleep() (err error) {
	if !ss.Powered {
		err = ErrSensorOff
		return
	}
	ss.Awake = false
	return
}
