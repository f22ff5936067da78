package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/monocle/camera"
	"github.com/ezrec/monocle/fpga"
)

func newTestCamera() *camera.Camera {
	return &camera.Camera{
		Periph: fpga.NewFpga(fpga.NewSimulator()),
		Sensor: &camera.SimSensor{},
	}
}

func TestCaptureImage(t *testing.T) {
	assert := assert.New(t)

	output := filepath.Join(t.TempDir(), "image.raw")

	err := captureImage(newTestCamera(), "16x16x2", 0, 0, output)
	assert.NoError(err)

	image, err := os.ReadFile(output)
	assert.NoError(err)
	assert.Len(image, 512)

	err = captureImage(newTestCamera(), "16x16", 0, 0, output)
	assert.ErrorIs(err, camera.ErrInvalidDimensions)

	err = captureImage(newTestCamera(), "16x16x2", 0, 0, filepath.Join(t.TempDir(), "missing", "image.raw"))
	assert.Error(err)
}

type failingWriter struct {
	err error
}

func (fw *failingWriter) Write(p []byte) (int, error) {
	return 0, fw.err
}

func TestWriteBlocks(t *testing.T) {
	assert := assert.New(t)

	c, err := newTestCamera().Capture(camera.Dimensions{Width: 4, Height: 4, BytesPerPixel: 1}, 4, 0)
	assert.NoError(err)

	blocks, err := c.Blocks()
	assert.NoError(err)

	full := errors.New("disk full")
	assert.Equal(full, writeBlocks(&failingWriter{err: full}, blocks))
}
