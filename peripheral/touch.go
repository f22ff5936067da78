package peripheral

import (
	"log"
)

const (
	TOUCH_A    = "A"
	TOUCH_B    = "B"
	TOUCH_BOTH = "BOTH"
)

// Touch is the pair of capacitive touch pads.
type Touch struct {
	Verbose bool

	pressed   map[string]bool
	callbacks map[string]func(button string)
}

func checkButton(button string) (err error) {
	switch button {
	case TOUCH_A, TOUCH_B, TOUCH_BOTH:
	default:
		err = ErrTouchInvalid
	}
	return
}

// State returns true if the button is held. BOTH is held when A and B are.
func (touch *Touch) State(button string) (held bool, err error) {
	err = checkButton(button)
	if err != nil {
		return
	}

	if button == TOUCH_BOTH {
		held = touch.pressed[TOUCH_A] && touch.pressed[TOUCH_B]
		return
	}

	held = touch.pressed[button]
	return
}

// Callback sets the function called when button is pressed. A nil fn
// removes the callback.
func (touch *Touch) Callback(button string, fn func(button string)) (err error) {
	err = checkButton(button)
	if err != nil {
		return
	}

	if touch.callbacks == nil {
		touch.callbacks = make(map[string]func(string))
	}

	if fn == nil {
		delete(touch.callbacks, button)
		return
	}

	touch.callbacks[button] = fn
	return
}

func (touch *Touch) notify(button string) {
	if touch.Verbose {
		log.Printf("touch: %v pressed", button)
	}

	fn, ok := touch.callbacks[button]
	if ok {
		fn(button)
	}
}

// Press simulates a touch on pad A or B.
func (touch *Touch) Press(button string) (err error) {
	err = checkButton(button)
	if err != nil {
		return
	}

	if button == TOUCH_BOTH {
		touch.Press(TOUCH_A)
		touch.Press(TOUCH_B)
		return
	}

	if touch.pressed == nil {
		touch.pressed = make(map[string]bool)
	}

	both, _ := touch.State(TOUCH_BOTH)
	touch.pressed[button] = true
	touch.notify(button)

	if !both && touch.pressed[TOUCH_A] && touch.pressed[TOUCH_B] {
		touch.notify(TOUCH_BOTH)
	}

	return
}

// Release simulates lifting a finger from pad A or B.
func (touch *Touch) Release(button string) (err error) {
	err = checkButton(button)
	if err != nil {
		return
	}

	if button == TOUCH_BOTH {
		delete(touch.pressed, TOUCH_A)
		delete(touch.pressed, TOUCH_B)
		return
	}

	delete(touch.pressed, button)
	return
}
