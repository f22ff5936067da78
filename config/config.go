// Package config loads the description of the simulated device.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/monocle/camera"
	"github.com/ezrec/monocle/fpga"
	"github.com/ezrec/monocle/peripheral"
)

// Config describes a device.
type Config struct {
	Device    DeviceConfig    `yaml:"device"`
	Fpga      FpgaConfig      `yaml:"fpga"`
	Camera    CameraConfig    `yaml:"camera"`
	Bluetooth BluetoothConfig `yaml:"bluetooth"`
	Clock     ClockConfig     `yaml:"clock"`
	Update    UpdateConfig    `yaml:"update"`
}

// DeviceConfig contains the device information block.
type DeviceConfig struct {
	Name         string `yaml:"name"`
	Version      string `yaml:"version"`
	GitTag       string `yaml:"git_tag"`
	GitRepo      string `yaml:"git_repo"`
	MacAddress   string `yaml:"mac_address"`
	BatteryLevel int    `yaml:"battery_level"` // percent
}

// FpgaConfig contains the simulated bitstream's feature set.
type FpgaConfig struct {
	ChipID   []byte         `yaml:"chip_id"`
	Features map[string]int `yaml:"features"` // feature name -> API revision
}

// CameraConfig contains capture settings.
type CameraConfig struct {
	TransferCeiling int `yaml:"transfer_ceiling"` // bytes per bus sub-transfer
}

// BluetoothConfig contains the simulated link.
type BluetoothConfig struct {
	Connected bool `yaml:"connected"`
	MaxLength int  `yaml:"max_length"` // payload bytes
}

// ClockConfig contains the initial clock state.
type ClockConfig struct {
	Epoch int64  `yaml:"epoch"`
	Zone  string `yaml:"zone"` // [-]HH:MM
}

// UpdateConfig contains the FPGA update flash region.
type UpdateConfig struct {
	RegionSize int `yaml:"region_size"` // bytes
}

// featureDevices maps feature names to their device block.
var featureDevices = map[string]uint8{
	fpga.FEATURE_CAMERA:           fpga.DEV_CAMERA,
	fpga.FEATURE_FRAME_BUFFER0:    fpga.DEV_FRAME_BUFFER,
	fpga.FEATURE_FRAME_BUFFER1:    fpga.DEV_FRAME_BUFFER + 1,
	fpga.FEATURE_FB_OUT0:          fpga.DEV_FB_OUT,
	fpga.FEATURE_FB_OUT1:          fpga.DEV_FB_OUT + 1,
	fpga.FEATURE_GRAPHICS_OVERLAY: fpga.DEV_OVERLAY,
	fpga.FEATURE_TEXT_OVERLAY:     fpga.DEV_OVERLAY + 1,
	fpga.FEATURE_IMAGE_READOUT0:   fpga.DEV_READOUT,
	fpga.FEATURE_IMAGE_READOUT1:   fpga.DEV_READOUT + 1,
}

// Default returns the configuration of a stock device.
func Default() (cfg *Config) {
	info := peripheral.DefaultInfo()

	cfg = &Config{
		Device: DeviceConfig{
			Name:         info.Name,
			Version:      info.Version,
			GitTag:       info.GitTag,
			GitRepo:      info.GitRepo,
			MacAddress:   info.MacAddress,
			BatteryLevel: info.BatteryLevel,
		},
		Fpga: FpgaConfig{
			ChipID: fpga.DefaultChipID,
			Features: map[string]int{
				fpga.FEATURE_CAMERA:           0,
				fpga.FEATURE_FRAME_BUFFER0:    0,
				fpga.FEATURE_FB_OUT0:          0,
				fpga.FEATURE_GRAPHICS_OVERLAY: 0,
				fpga.FEATURE_TEXT_OVERLAY:     1,
				fpga.FEATURE_IMAGE_READOUT0:   0,
				fpga.FEATURE_IMAGE_READOUT1:   0,
			},
		},
		Camera: CameraConfig{
			TransferCeiling: camera.DEFAULT_TRANSFER_CEILING,
		},
		Bluetooth: BluetoothConfig{
			Connected: true,
			MaxLength: peripheral.BLUETOOTH_DEFAULT_MAX_LENGTH,
		},
		Clock: ClockConfig{
			Zone: "00:00",
		},
		Update: UpdateConfig{
			RegionSize: peripheral.FLASH_FPGA_REGION_SIZE,
		},
	}

	return
}

// Parse reads a YAML configuration. Omitted settings keep their defaults.
func Parse(r io.Reader) (cfg *Config, err error) {
	cfg = Default()

	// A configured feature set replaces the stock one.
	features := cfg.Fpga.Features
	cfg.Fpga.Features = nil

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err = dec.Decode(cfg)
	if err == io.EOF {
		err = nil
	}
	if err != nil {
		cfg = nil
		err = fmt.Errorf("%w: %v", ErrConfigSyntax, err)
		return
	}

	if cfg.Fpga.Features == nil {
		cfg.Fpga.Features = features
	}

	err = cfg.Validate()
	if err != nil {
		cfg = nil
		return
	}

	return
}

// Load reads a YAML configuration file.
func Load(path string) (cfg *Config, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	cfg, err = Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
		return
	}

	return
}

// Validate checks the configuration for consistency.
func (cfg *Config) Validate() (err error) {
	if cfg.Camera.TransferCeiling < 1 || cfg.Camera.TransferCeiling > fpga.MAX_TRANSFER {
		err = ErrSetting{Key: "camera.transfer_ceiling", Value: cfg.Camera.TransferCeiling}
		return
	}

	if cfg.Bluetooth.MaxLength < 1 {
		err = ErrSetting{Key: "bluetooth.max_length", Value: cfg.Bluetooth.MaxLength}
		return
	}

	if cfg.Clock.Epoch < 0 {
		err = ErrSetting{Key: "clock.epoch", Value: cfg.Clock.Epoch}
		return
	}

	_, err = peripheral.ParseZone(cfg.Clock.Zone)
	if err != nil {
		err = ErrSetting{Key: "clock.zone", Value: cfg.Clock.Zone, Err: err}
		return
	}

	if cfg.Update.RegionSize < 1 {
		err = ErrSetting{Key: "update.region_size", Value: cfg.Update.RegionSize}
		return
	}

	for name, api := range cfg.Fpga.Features {
		_, ok := featureDevices[name]
		if !ok {
			err = ErrSetting{Key: "fpga.features", Value: name, Err: ErrFeatureUnknown}
			return
		}
		if api < 0 || api > 7 {
			err = ErrSetting{Key: "fpga.features." + name, Value: api}
			return
		}
	}

	return
}

// FeatureStatus returns the feature status registers of the configured
// bitstream, keyed by device block.
func (cfg *Config) FeatureStatus() (status map[uint8]uint8) {
	status = make(map[uint8]uint8)
	for name, api := range cfg.Fpga.Features {
		dev, ok := featureDevices[name]
		if ok {
			status[dev] = fpga.StatusOf(uint8(api))
		}
	}

	return
}
