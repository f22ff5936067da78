package fpga

import (
	"iter"
	"log"
	"maps"
	"slices"
)

// Feature names reported by discovery.
const (
	FEATURE_CAMERA           = "camera"
	FEATURE_FRAME_BUFFER0    = "frame_buffer0"
	FEATURE_FRAME_BUFFER1    = "frame_buffer1"
	FEATURE_FB_OUT0          = "fb_out0"
	FEATURE_FB_OUT1          = "fb_out1"
	FEATURE_IMAGE_READOUT0   = "image_readout0"
	FEATURE_IMAGE_READOUT1   = "image_readout1"
	FEATURE_GRAPHICS_OVERLAY = "graphics_overlay"
	FEATURE_TEXT_OVERLAY     = "text_overlay"
)

// Device blocks probed by discovery.
const (
	DEV_CAMERA       = 0x10
	DEV_FRAME_BUFFER = 0x20
	DEV_FB_OUT       = 0x30
	DEV_OVERLAY      = 0x44
	DEV_READOUT      = 0x50
)

// Feature status byte layout.
const (
	STATUS_PRESENT   = 0x10 // Set when a device block is implemented.
	STATUS_API_SHIFT = 5    // API revision in the top three bits.
)

// StatusOf returns the status byte a device block reports for an API revision.
func StatusOf(api uint8) uint8 {
	return api<<STATUS_API_SHIFT | STATUS_PRESENT
}

// probe reads the status byte of a device block.
func (fp *Fpga) probe(dev uint8) (api uint8, present bool, err error) {
	var status [1]byte

	err = fp.Bus.Read(Address(dev, 0), status[:])
	if err != nil {
		return
	}

	api = status[0] >> STATUS_API_SHIFT
	present = (status[0] & STATUS_PRESENT) != 0
	return
}

// probePair records the API 0 devices at dev and dev+1 under the two names.
func (fp *Fpga) probePair(features map[string]uint8, dev uint8, first string, second string) (err error) {
	api, present, err := fp.probe(dev)
	if err != nil || !present || api != 0 {
		return
	}
	features[first] = dev

	api, present, err = fp.probe(dev + 1)
	if err != nil || !present || api != 0 {
		return
	}
	features[second] = dev + 1

	return
}

func (fp *Fpga) discover() (features map[string]uint8, err error) {
	features = make(map[string]uint8)

	api, present, err := fp.probe(DEV_CAMERA)
	if err != nil {
		return
	}
	if present && api == 0 {
		features[FEATURE_CAMERA] = DEV_CAMERA
	}

	err = fp.probePair(features, DEV_FRAME_BUFFER, FEATURE_FRAME_BUFFER0, FEATURE_FRAME_BUFFER1)
	if err != nil {
		return
	}

	err = fp.probePair(features, DEV_FB_OUT, FEATURE_FB_OUT0, FEATURE_FB_OUT1)
	if err != nil {
		return
	}

	// Overlays are packed from DEV_OVERLAY upwards.
	for dev := uint8(DEV_OVERLAY); dev < DEV_READOUT; dev++ {
		api, present, err = fp.probe(dev)
		if err != nil {
			return
		}
		if !present {
			break
		}
		switch api {
		case 0:
			features[FEATURE_GRAPHICS_OVERLAY] = dev
		case 1:
			features[FEATURE_TEXT_OVERLAY] = dev
		}
	}

	err = fp.probePair(features, DEV_READOUT, FEATURE_IMAGE_READOUT0, FEATURE_IMAGE_READOUT1)
	return
}

// Features returns the discovered features, mapping name to device block.
// Discovery runs once per power cycle.
func (fp *Fpga) Features() (features iter.Seq2[string, uint8], err error) {
	if fp.unpowered {
		err = ErrNotPowered
		return
	}

	if fp.features == nil {
		var found map[string]uint8
		found, err = fp.discover()
		if err != nil {
			return
		}
		fp.features = found

		if fp.Verbose {
			for _, name := range slices.Sorted(maps.Keys(found)) {
				log.Printf("fpga: feature %v at %02x", name, found[name])
			}
		}
	}

	features = maps.All(fp.features)
	return
}

// FeatureDevice returns the device block of a named feature.
func (fp *Fpga) FeatureDevice(name string) (dev uint8, err error) {
	features, err := fp.Features()
	if err != nil {
		return
	}

	for key, value := range features {
		if key == name {
			dev = value
			return
		}
	}

	err = ErrFeatureMissing(name)
	return
}

// Readout resolves an image readout index to its device block.
func (fp *Fpga) Readout(id int) (dev uint8, err error) {
	switch id {
	case 0:
		return fp.FeatureDevice(FEATURE_IMAGE_READOUT0)
	case 1:
		return fp.FeatureDevice(FEATURE_IMAGE_READOUT1)
	}

	err = ErrReadoutInvalid
	return
}
