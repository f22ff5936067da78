package fpga

import (
	"slices"
)

// Transaction is a single recorded bus transfer.
type Transaction struct {
	Write bool   // True for writes.
	Addr  uint16 // Bus address.
	Len   int    // Payload length.
}

// Simulator is an in-memory FPGA register bus.
//
// It answers the chip identification register, the feature status
// registers, and streams a deterministic frame from each image readout.
// Any other register reads back the last value written to it.
type Simulator struct {
	ChipID    []byte                           // Chip identification bytes.
	Status    map[uint8]uint8                  // Device block to feature status byte.
	Pattern   func(dev uint8, offset int) byte // Frame byte at offset of a readout.
	Registers map[uint16][]byte                // Plain register file.
	Log       []Transaction                    // Transfers, oldest first.

	streams map[uint8]int // Readout device block to stream offset.
}

var _ Bus = (*Simulator)(nil)

// DefaultChipID is the identification of the production bitstream.
var DefaultChipID = []byte{'K', 0x07, 0x00}

// DefaultPattern is a frame whose bytes count up from zero.
func DefaultPattern(dev uint8, offset int) byte {
	return byte(offset)
}

// NewSimulator returns a simulator carrying the production feature set: a
// camera, one frame buffer with one output, a graphics and a text overlay,
// and two image readouts.
func NewSimulator() (sim *Simulator) {
	sim = &Simulator{
		ChipID: slices.Clone(DefaultChipID),
		Status: map[uint8]uint8{
			DEV_CAMERA:       StatusOf(0),
			DEV_FRAME_BUFFER: StatusOf(0),
			DEV_FB_OUT:       StatusOf(0),
			DEV_OVERLAY:      StatusOf(0),
			DEV_OVERLAY + 1:  StatusOf(1),
			DEV_READOUT:      StatusOf(0),
			DEV_READOUT + 1:  StatusOf(0),
		},
		Pattern: DefaultPattern,
	}

	return
}

func (sim *Simulator) isReadout(dev uint8) bool {
	if dev < DEV_READOUT || dev > DEV_READOUT+1 {
		return false
	}

	status, ok := sim.Status[dev]
	return ok && (status&STATUS_PRESENT) != 0
}

// Offset returns the stream position of a readout.
func (sim *Simulator) Offset(dev uint8) int {
	return sim.streams[dev]
}

// Transfers returns the logged transfers to an address.
func (sim *Simulator) Transfers(addr uint16) (log []Transaction) {
	for _, tr := range sim.Log {
		if tr.Addr == addr {
			log = append(log, tr)
		}
	}
	return
}

// Write implements Bus.
func (sim *Simulator) Write(addr uint16, data []byte) (err error) {
	sim.Log = append(sim.Log, Transaction{Write: true, Addr: addr, Len: len(data)})

	dev := uint8(addr >> 8)
	reg := uint8(addr)
	if sim.isReadout(dev) && reg == REG_READOUT_CONTROL && len(data) == 0 {
		// Latch a new frame.
		if sim.streams == nil {
			sim.streams = make(map[uint8]int)
		}
		sim.streams[dev] = 0
		return
	}

	if sim.Registers == nil {
		sim.Registers = make(map[uint16][]byte)
	}
	sim.Registers[addr] = slices.Clone(data)

	return
}

// Read implements Bus.
func (sim *Simulator) Read(addr uint16, data []byte) (err error) {
	sim.Log = append(sim.Log, Transaction{Addr: addr, Len: len(data)})

	clear(data)

	dev := uint8(addr >> 8)
	reg := uint8(addr)
	switch {
	case addr == ADDR_CHIP_ID:
		copy(data, sim.ChipID)
	case reg == 0 && len(data) > 0 && sim.Status[dev] != 0:
		data[0] = sim.Status[dev]
	case sim.isReadout(dev) && reg == REG_READOUT_STREAM:
		if sim.streams == nil {
			sim.streams = make(map[uint8]int)
		}
		offset := sim.streams[dev]
		pattern := sim.Pattern
		if pattern == nil {
			pattern = DefaultPattern
		}
		for n := range data {
			data[n] = pattern(dev, offset+n)
		}
		sim.streams[dev] = offset + len(data)
	default:
		copy(data, sim.Registers[addr])
	}

	return
}
