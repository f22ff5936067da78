package peripheral

import (
	"log"
)

const (
	LED_RED   = "RED"
	LED_GREEN = "GREEN"
)

// Led drives the red and green indicator LEDs.
type Led struct {
	Verbose bool

	lit map[string]bool
}

func checkLed(name string) (err error) {
	switch name {
	case LED_RED, LED_GREEN:
	default:
		err = ErrLedInvalid
	}
	return
}

func (led *Led) set(name string, on bool) (err error) {
	err = checkLed(name)
	if err != nil {
		return
	}

	if led.lit == nil {
		led.lit = make(map[string]bool)
	}
	led.lit[name] = on

	if led.Verbose {
		log.Printf("led: %v %v", name, on)
	}
	return
}

// On turns on a LED.
func (led *Led) On(name string) error {
	return led.set(name, true)
}

// Off turns off a LED.
func (led *Led) Off(name string) error {
	return led.set(name, false)
}

// IsOn returns true if the LED is lit.
func (led *Led) IsOn(name string) bool {
	return led.lit[name]
}
