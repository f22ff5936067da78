package peripheral

import (
	"fmt"
	"io"
	"log"
)

const (
	// FLASH_FPGA_REGION_SIZE is the size of the FPGA bitstream region.
	FLASH_FPGA_REGION_SIZE = 444434
	// FLASH_ERASED is the value of an erased flash byte.
	FLASH_ERASED = 0xff
)

// Flash is a region of external flash holding an FPGA bitstream update.
// Writes append at the write position; an erase rewinds it.
type Flash struct {
	Verbose bool

	Size       int // Region size in bytes.
	WriteIndex int // Next byte written.
	Data       []byte
}

func (flash *Flash) ensure() {
	if flash.Size == 0 {
		flash.Size = FLASH_FPGA_REGION_SIZE
	}

	if flash.Data == nil {
		flash.Erase()
	}
}

// Erase sets every byte of the region to FLASH_ERASED.
func (flash *Flash) Erase() {
	if flash.Size == 0 {
		flash.Size = FLASH_FPGA_REGION_SIZE
	}

	if len(flash.Data) != flash.Size {
		flash.Data = make([]byte, flash.Size)
	}

	for n := range flash.Data {
		flash.Data[n] = FLASH_ERASED
	}
	flash.WriteIndex = 0

	if flash.Verbose {
		log.Printf("update: erased %d bytes", flash.Size)
	}
}

// Write appends data at the write position.
func (flash *Flash) Write(data []byte) (err error) {
	flash.ensure()

	if flash.WriteIndex+len(data) > flash.Size {
		err = fmt.Errorf("%w: write of %d bytes at %d", ErrFlashRange, len(data), flash.WriteIndex)
		return
	}

	copy(flash.Data[flash.WriteIndex:], data)
	flash.WriteIndex += len(data)

	return
}

// Read returns n bytes starting at offset.
func (flash *Flash) Read(offset int, n int) (data []byte, err error) {
	flash.ensure()

	if offset < 0 || n < 1 || offset+n > flash.Size {
		err = fmt.Errorf("%w: read of %d bytes at %d", ErrFlashRange, n, offset)
		return
	}

	data = make([]byte, n)
	copy(data, flash.Data[offset:])
	return
}

// Unmarshal loads the region from a reader, replacing its contents.
func (flash *Flash) Unmarshal(file io.Reader) (err error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return
	}

	if flash.Size == 0 {
		flash.Size = FLASH_FPGA_REGION_SIZE
	}

	if len(data) > flash.Size {
		err = fmt.Errorf("%w: image of %d bytes", ErrFlashRange, len(data))
		return
	}

	flash.Erase()

	copy(flash.Data, data)
	flash.WriteIndex = len(data)

	return
}

// Marshal writes the region up to the write position.
func (flash *Flash) Marshal(file io.Writer) (err error) {
	flash.ensure()

	_, err = file.Write(flash.Data[0:flash.WriteIndex])

	return
}
