// Package fpga provides access to the FPGA peripheral over its SPI style
// register bus.
//
// Every transaction starts with a two byte big-endian address phase. The
// upper byte of the address selects a device block (a camera, a frame
// buffer, an image readout, ...), the lower byte selects a register in that
// block. A transfer carries at most MAX_TRANSFER bytes of payload.
package fpga

import (
	"fmt"
	"log"

	"github.com/ezrec/monocle/internal"
)

const (
	MAX_TRANSFER = 255    // Largest payload of a single bus transfer.
	ADDR_CHIP_ID = 0x0001 // Chip identification register.
)

// Device register offsets within a readout block.
const (
	REG_READOUT_CONTROL = 4 // Zero-length write applies pending readout settings.
	REG_READOUT_STREAM  = 5 // Streaming frame data register.
)

// Power status strings.
const (
	STATUS_RUNNING     = "RUNNING"
	STATUS_NOT_POWERED = "NOT_POWERED"
)

// Bus is the raw register transport to the FPGA.
type Bus interface {
	// Write issues the address phase followed by data. An empty data
	// is a command write consisting of only the address phase.
	Write(addr uint16, data []byte) error
	// Read issues the address phase and fills data from the device.
	Read(addr uint16, data []byte) error
}

// Address combines a device block and a register into a bus address.
func Address(dev uint8, reg uint8) uint16 {
	return uint16(dev)<<8 | uint16(reg)
}

// Fpga is a length checked client of the FPGA register bus.
type Fpga struct {
	Verbose bool // If set, logs every transfer.
	Bus     Bus  // Register transport.

	unpowered bool
	features  map[string]uint8
}

// NewFpga returns a powered FPGA client on the bus.
func NewFpga(bus Bus) (fp *Fpga) {
	fp = &Fpga{
		Bus: bus,
	}

	return
}

// Power returns true if the FPGA is powered.
func (fp *Fpga) Power() bool {
	return !fp.unpowered
}

// SetPower changes the power state. Powering down forgets discovered features.
func (fp *Fpga) SetPower(on bool) {
	if on == fp.Power() {
		return
	}

	fp.unpowered = !on
	fp.features = nil
}

// Status returns the running state of the FPGA.
func (fp *Fpga) Status() string {
	if fp.unpowered {
		return STATUS_NOT_POWERED
	}

	return STATUS_RUNNING
}

// Read reads n bytes from a register, 1 <= n <= MAX_TRANSFER.
func (fp *Fpga) Read(addr uint16, n int) (data []byte, err error) {
	if n < 1 || n > MAX_TRANSFER {
		err = fmt.Errorf("%w: read of %d bytes", ErrTransferSize, n)
		return
	}

	if fp.unpowered {
		err = ErrNotPowered
		return
	}

	data = make([]byte, n)
	err = fp.Bus.Read(addr, data)
	if err != nil {
		data = nil
		return
	}

	if fp.Verbose {
		log.Printf("fpga: read  %04x % x", addr, data)
	}

	return
}

// Write writes data to a register, len(data) <= MAX_TRANSFER.
func (fp *Fpga) Write(addr uint16, data []byte) (err error) {
	if len(data) > MAX_TRANSFER {
		err = fmt.Errorf("%w: write of %d bytes", ErrTransferSize, len(data))
		return
	}

	if fp.unpowered {
		err = ErrNotPowered
		return
	}

	if fp.Verbose {
		log.Printf("fpga: write %04x % x", addr, data)
	}

	err = fp.Bus.Write(addr, data)
	return
}

// ReadStream reads n bytes from a streaming register, issuing a fresh address
// phase for every sub-transfer of at most maxChunk bytes.
func (fp *Fpga) ReadStream(addr uint16, n int, maxChunk int) (data []byte, err error) {
	if n < 1 {
		err = fmt.Errorf("%w: stream of %d bytes", ErrTransferSize, n)
		return
	}

	if maxChunk < 1 || maxChunk > MAX_TRANSFER {
		err = fmt.Errorf("%w: chunk of %d bytes", ErrTransferSize, maxChunk)
		return
	}

	if fp.unpowered {
		err = ErrNotPowered
		return
	}

	data = make([]byte, n)
	for offset, size := range internal.Spans(n, maxChunk) {
		err = fp.Bus.Read(addr, data[offset:offset+size])
		if err != nil {
			data = nil
			return
		}
	}

	if fp.Verbose {
		log.Printf("fpga: read  %04x stream of %d bytes (chunk %d)", addr, n, maxChunk)
	}

	return
}
