package peripheral

import (
	"fmt"
	"log"
	"slices"
)

// BLUETOOTH_DEFAULT_MAX_LENGTH is the payload limit for the default MTU.
const BLUETOOTH_DEFAULT_MAX_LENGTH = 125

// Bluetooth is the raw data channel of the bluetooth link.
type Bluetooth struct {
	Verbose bool

	Sent [][]byte // Payloads sent, oldest first.

	connected bool
	maxLength int
	receive   func(data []byte)
}

// NewBluetooth returns a link with the given payload limit.
func NewBluetooth(connected bool, maxLength int) (bt *Bluetooth) {
	if maxLength <= 0 {
		maxLength = BLUETOOTH_DEFAULT_MAX_LENGTH
	}

	bt = &Bluetooth{
		connected: connected,
		maxLength: maxLength,
	}

	return
}

// Connected returns true if a central is connected.
func (bt *Bluetooth) Connected() bool {
	return bt.connected
}

// SetConnected simulates a central connecting or disconnecting.
func (bt *Bluetooth) SetConnected(connected bool) {
	bt.connected = connected
}

// MaxLength returns the largest payload Send accepts.
func (bt *Bluetooth) MaxLength() int {
	return bt.maxLength
}

// Send transmits a payload.
func (bt *Bluetooth) Send(data []byte) (err error) {
	if len(data) > bt.maxLength {
		err = fmt.Errorf("%w: %d > %d", ErrPayloadSize, len(data), bt.maxLength)
		return
	}

	if !bt.connected {
		err = ErrDisconnected
		return
	}

	if bt.Verbose {
		log.Printf("bluetooth: send % x", data)
	}

	bt.Sent = append(bt.Sent, slices.Clone(data))
	return
}

// ReceiveCallback sets the function called with each received payload.
// A nil fn removes the callback.
func (bt *Bluetooth) ReceiveCallback(fn func(data []byte)) {
	bt.receive = fn
}

// Deliver simulates a payload arriving from the central.
func (bt *Bluetooth) Deliver(data []byte) (err error) {
	if !bt.connected {
		err = ErrDisconnected
		return
	}

	if bt.Verbose {
		log.Printf("bluetooth: receive % x", data)
	}

	if bt.receive != nil {
		bt.receive(slices.Clone(data))
	}

	return
}
