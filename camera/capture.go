package camera

import (
	"fmt"
	"io"
	"iter"
	"log"
	"math"

	"github.com/google/uuid"

	"github.com/ezrec/monocle/fpga"
)

// DEFAULT_TRANSFER_CEILING is the payload limit of a single bus transfer
// once the transport's header bytes are accounted for.
const DEFAULT_TRANSFER_CEILING = 252

// Streamer reads a streaming register in bounded sub-transfers.
type Streamer interface {
	ReadStream(addr uint16, n int, maxChunk int) (data []byte, err error)
}

// Dimensions is the geometry of a captured image.
type Dimensions struct {
	Width         int // Horizontal resolution, in pixels.
	Height        int // Vertical resolution, in pixels.
	BytesPerPixel int // Pixel stride, in bytes.
}

// DimensionsOf converts an [xres, yres, bpp] descriptor.
func DimensionsOf(dim []int) (d Dimensions, err error) {
	if len(dim) != 3 {
		err = fmt.Errorf("%w: got %d elements", ErrInvalidDimensions, len(dim))
		return
	}

	d = Dimensions{Width: dim[0], Height: dim[1], BytesPerPixel: dim[2]}
	return
}

// Bytes returns the size of the image in bytes.
func (d Dimensions) Bytes() int {
	return d.Width * d.Height * d.BytesPerPixel
}

// String returns the descriptor form of the dimensions.
func (d Dimensions) String() string {
	return fmt.Sprintf("[%d, %d, %d]", d.Width, d.Height, d.BytesPerPixel)
}

// State of a capture.
type State int

const (
	STATE_UNSTARTED   = State(iota) // Iteration has not begun.
	STATE_IN_PROGRESS               // Blocks remain to be read.
	STATE_EXHAUSTED                 // The final block has been read.
)

func (st State) String() string {
	switch st {
	case STATE_UNSTARTED:
		return "unstarted"
	case STATE_IN_PROGRESS:
		return "in-progress"
	case STATE_EXHAUSTED:
		return "exhausted"
	}
	return fmt.Sprintf("State(%d)", int(st))
}

// Option configures a capture.
type Option func(*Capture) error

// WithTransferCeiling sets the largest sub-transfer, in bytes.
func WithTransferCeiling(ceiling int) Option {
	return func(c *Capture) (err error) {
		if ceiling < 1 || ceiling > fpga.MAX_TRANSFER {
			err = fmt.Errorf("%w: %d", ErrTransferCeiling, ceiling)
			return
		}
		c.ceiling = ceiling
		return
	}
}

// WithVerbose enables logging of every block read.
func WithVerbose(verbose bool) Option {
	return func(c *Capture) error {
		c.Verbose = verbose
		return nil
	}
}

// Capture is a single use reader of one image from a readout.
type Capture struct {
	Verbose bool      // If set, logs every block.
	ID      uuid.UUID // Identifies the capture in logs.

	Address    uint16     // Streaming register of the readout.
	Dimensions Dimensions // Image geometry.
	Total      int        // Image size in bytes.
	Chunk      int        // Largest pixel aligned sub-transfer in bytes.
	Block      int        // Bytes returned by each Next.

	periph   Streamer
	ceiling  int
	state    State
	position int
}

// NewCapture prepares to read an image of the given dimensions from readout
// device dev, blockPixels pixels at a time. No bus transfer is performed.
func NewCapture(periph Streamer, dev uint8, dim Dimensions, blockPixels int, options ...Option) (c *Capture, err error) {
	c = &Capture{
		ID:         uuid.New(),
		Address:    fpga.Address(dev, fpga.REG_READOUT_STREAM),
		Dimensions: dim,
		periph:     periph,
		ceiling:    DEFAULT_TRANSFER_CEILING,
	}

	for _, option := range options {
		err = option(c)
		if err != nil {
			c = nil
			return
		}
	}

	bpp := dim.BytesPerPixel
	if dim.Width <= 0 || dim.Height <= 0 || bpp <= 0 {
		err = fmt.Errorf("%w: %v", ErrInvalidDimensions, dim)
		c = nil
		return
	}

	c.Chunk = (c.ceiling / bpp) * bpp
	if c.Chunk == 0 {
		err = fmt.Errorf("%w: %d bytes per pixel exceeds %d byte transfers", ErrInvalidDimensions, bpp, c.ceiling)
		c = nil
		return
	}

	if dim.Width > math.MaxInt/dim.Height || dim.Width*dim.Height > math.MaxInt/bpp {
		err = fmt.Errorf("%w: %v overflows", ErrInvalidDimensions, dim)
		c = nil
		return
	}

	if blockPixels > math.MaxInt/bpp {
		err = fmt.Errorf("%w: %d pixels overflows", ErrIncompatibleBlockSize, blockPixels)
		c = nil
		return
	}

	c.Total = dim.Bytes()
	c.Block = blockPixels * bpp
	if c.Block <= 0 || c.Total%c.Block != 0 {
		err = fmt.Errorf("%w: %d pixels for %v", ErrIncompatibleBlockSize, blockPixels, dim)
		c = nil
		return
	}

	return
}

// State returns the iteration state.
func (c *Capture) State() State {
	return c.state
}

// Position returns the number of bytes read so far. ok is false until
// iteration has started.
func (c *Capture) Position() (pos int, ok bool) {
	if c.state == STATE_UNSTARTED {
		return
	}

	pos = c.position
	ok = true
	return
}

// Start begins iteration. A capture can only be started once.
func (c *Capture) Start() (err error) {
	if c.state != STATE_UNSTARTED {
		err = ErrAlreadyConsumed
		return
	}

	c.state = STATE_IN_PROGRESS
	c.position = 0

	if c.Verbose {
		log.Printf("camera: capture %v: %v from %04x, %d byte blocks in %d byte chunks",
			c.ID, c.Dimensions, c.Address, c.Block, c.Chunk)
	}

	return
}

// Next reads the next block. It returns io.EOF once the whole image has been
// read. Bus errors are returned as-is, leaving the capture where it stopped.
func (c *Capture) Next() (buf []byte, err error) {
	switch c.state {
	case STATE_UNSTARTED:
		err = ErrNotStarted
		return
	case STATE_EXHAUSTED:
		err = io.EOF
		return
	}

	if c.position >= c.Total {
		c.state = STATE_EXHAUSTED
		err = io.EOF
		return
	}

	buf, err = c.periph.ReadStream(c.Address, c.Block, c.Chunk)
	if err != nil {
		buf = nil
		return
	}

	c.position += len(buf)

	if c.Verbose {
		log.Printf("camera: capture %v: %d/%d", c.ID, c.position, c.Total)
	}

	return
}

// Blocks starts the capture and returns its blocks as a sequence. The
// sequence ends after the final block, or after yielding the first error.
func (c *Capture) Blocks() (seq iter.Seq2[[]byte, error], err error) {
	err = c.Start()
	if err != nil {
		return
	}

	seq = func(yield func(buf []byte, err error) bool) {
		for {
			buf, err := c.Next()
			if err == io.EOF {
				return
			}
			if !yield(buf, err) || err != nil {
				return
			}
		}
	}

	return
}
