package camera

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type streamCall struct {
	addr     uint16
	n        int
	maxChunk int
}

type mockStreamer struct {
	calls   []streamCall
	failAt  int // Fail the call with this index, if non-zero.
	failErr error
}

func (ms *mockStreamer) ReadStream(addr uint16, n int, maxChunk int) ([]byte, error) {
	ms.calls = append(ms.calls, streamCall{addr: addr, n: n, maxChunk: maxChunk})
	if ms.failAt != 0 && len(ms.calls) == ms.failAt {
		return nil, ms.failErr
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(len(ms.calls))
	}
	return buf, nil
}

func TestDimensionsOf(t *testing.T) {
	assert := assert.New(t)

	dim, err := DimensionsOf([]int{640, 400, 2})
	assert.NoError(err)
	assert.Equal(Dimensions{Width: 640, Height: 400, BytesPerPixel: 2}, dim)
	assert.Equal(512000, dim.Bytes())
	assert.Equal("[640, 400, 2]", dim.String())

	for _, bad := range [][]int{nil, {16}, {16, 16}, {16, 16, 2, 1}} {
		_, err = DimensionsOf(bad)
		assert.ErrorIs(err, ErrInvalidDimensions, bad)
	}
}

func TestNewCapture_Chunk(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		bpp   int
		chunk int
	}{
		{1, 252},
		{2, 252},
		{3, 252},
		{4, 252},
		{5, 250},
		{8, 248},
		{252, 252},
	}

	for _, tt := range tests {
		c, err := NewCapture(&mockStreamer{}, 0x50, Dimensions{4, 4, tt.bpp}, 4)
		if !assert.NoError(err, tt.bpp) {
			continue
		}
		assert.Equal(tt.chunk, c.Chunk, tt.bpp)
		assert.Zero(c.Chunk%tt.bpp, tt.bpp)
		assert.LessOrEqual(c.Chunk, DEFAULT_TRANSFER_CEILING)
		assert.Greater(c.Chunk+tt.bpp, DEFAULT_TRANSFER_CEILING)
	}
}

func TestNewCapture_TransferCeiling(t *testing.T) {
	assert := assert.New(t)

	c, err := NewCapture(&mockStreamer{}, 0x50, Dimensions{4, 4, 3}, 4, WithTransferCeiling(64))
	assert.NoError(err)
	assert.Equal(63, c.Chunk)

	_, err = NewCapture(&mockStreamer{}, 0x50, Dimensions{4, 4, 3}, 4, WithTransferCeiling(0))
	assert.ErrorIs(err, ErrTransferCeiling)
	_, err = NewCapture(&mockStreamer{}, 0x50, Dimensions{4, 4, 3}, 4, WithTransferCeiling(256))
	assert.ErrorIs(err, ErrTransferCeiling)

	// A pixel larger than a transfer cannot be read whole.
	_, err = NewCapture(&mockStreamer{}, 0x50, Dimensions{4, 4, 8}, 4, WithTransferCeiling(7))
	assert.ErrorIs(err, ErrInvalidDimensions)
}

func TestNewCapture_Invalid(t *testing.T) {
	assert := assert.New(t)

	ms := &mockStreamer{}

	for _, dim := range []Dimensions{
		{0, 16, 2},
		{16, -1, 2},
		{16, 16, 0},
		{1 << 30, 1 << 30, 16},
		{math.MaxInt, 2, 1},
		{math.MaxInt / 2, 1, 3},
	} {
		_, err := NewCapture(ms, 0x50, dim, 16)
		assert.ErrorIs(err, ErrInvalidDimensions, dim)
	}

	for _, block := range []int{0, -16, 3, 7, 512, math.MaxInt/2 + 1} {
		c, err := NewCapture(ms, 0x50, Dimensions{16, 16, 2}, block)
		assert.ErrorIs(err, ErrIncompatibleBlockSize, block)
		assert.Nil(c)
	}

	assert.Empty(ms.calls)
}

func TestCapture_EndToEnd(t *testing.T) {
	assert := assert.New(t)

	ms := &mockStreamer{}
	c, err := NewCapture(ms, 0x50, Dimensions{16, 16, 2}, 16)
	assert.NoError(err)

	assert.Equal(uint16(0x5005), c.Address)
	assert.Equal(512, c.Total)
	assert.Equal(32, c.Block)
	assert.Equal(252, c.Chunk)

	_, ok := c.Position()
	assert.False(ok)
	assert.Equal(STATE_UNSTARTED, c.State())

	_, err = c.Next()
	assert.ErrorIs(err, ErrNotStarted)

	assert.NoError(c.Start())
	pos, ok := c.Position()
	assert.True(ok)
	assert.Equal(0, pos)

	var progress []int
	for {
		buf, err := c.Next()
		if err == io.EOF {
			break
		}
		assert.NoError(err)
		assert.Len(buf, 32)
		pos, _ = c.Position()
		progress = append(progress, pos)
	}

	expected := make([]int, 16)
	for n := range expected {
		expected[n] = (n + 1) * 32
	}
	assert.Equal(expected, progress)
	assert.Equal(STATE_EXHAUSTED, c.State())

	assert.Len(ms.calls, 16)
	for _, call := range ms.calls {
		assert.Equal(streamCall{addr: 0x5005, n: 32, maxChunk: 252}, call)
	}

	// Exhausted captures stay exhausted.
	_, err = c.Next()
	assert.Equal(io.EOF, err)
	assert.ErrorIs(c.Start(), ErrAlreadyConsumed)
}

func TestCapture_TotalBytes(t *testing.T) {
	assert := assert.New(t)

	for _, width := range []int{1, 8, 12} {
		for _, height := range []int{1, 6} {
			for _, bpp := range []int{1, 2, 3, 5} {
				pixels := width * height
				for block := 1; block <= pixels; block++ {
					if pixels%block != 0 {
						continue
					}
					c, err := NewCapture(&mockStreamer{}, 0x51, Dimensions{width, height, bpp}, block)
					if !assert.NoError(err) {
						continue
					}
					seq, err := c.Blocks()
					assert.NoError(err)
					sum := 0
					for buf, err := range seq {
						assert.NoError(err)
						sum += len(buf)
					}
					assert.Equal(width*height*bpp, sum)
				}
			}
		}
	}
}

func TestCapture_AlreadyConsumed(t *testing.T) {
	assert := assert.New(t)

	c, err := NewCapture(&mockStreamer{}, 0x50, Dimensions{16, 16, 2}, 16)
	assert.NoError(err)

	seq, err := c.Blocks()
	assert.NoError(err)

	count := 0
	for range seq {
		count++
		if count == 4 {
			break
		}
	}
	assert.Equal(4, count)
	assert.Equal(STATE_IN_PROGRESS, c.State())

	_, err = c.Blocks()
	assert.ErrorIs(err, ErrAlreadyConsumed)
	assert.ErrorIs(c.Start(), ErrAlreadyConsumed)

	// The first iteration can still be drained.
	for range seq {
		count++
	}
	assert.Equal(16, count)
}

func TestCapture_BusFault(t *testing.T) {
	assert := assert.New(t)

	fault := errors.New("spi fault")
	ms := &mockStreamer{failAt: 3, failErr: fault}

	c, err := NewCapture(ms, 0x50, Dimensions{16, 16, 2}, 16)
	assert.NoError(err)

	seq, err := c.Blocks()
	assert.NoError(err)

	var delivered int
	var last error
	for buf, err := range seq {
		if err != nil {
			last = err
			continue
		}
		delivered += len(buf)
	}

	assert.Equal(fault, last)
	assert.Equal(64, delivered)
	pos, ok := c.Position()
	assert.True(ok)
	assert.Equal(64, pos)
	assert.Equal(STATE_IN_PROGRESS, c.State())
}

func TestState_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("unstarted", STATE_UNSTARTED.String())
	assert.Equal("in-progress", STATE_IN_PROGRESS.String())
	assert.Equal("exhausted", STATE_EXHAUSTED.String())
	assert.Equal("State(9)", State(9).String())
}
