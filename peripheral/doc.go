// Package peripheral implements the simple peripherals of the device: the
// LEDs, the touch pads, the bluetooth data link, the display, the real-time
// clock, the FPGA update flash region, and the device information block.
//
// Each peripheral is a simulation suitable for running scripts on a host.
// Where the real device hands data to an opaque subsystem (the display
// rasterizer, the bluetooth stack) the simulation records what was sent.
package peripheral
