package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/monocle/fpga"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.NoError(cfg.Validate())
	assert.Equal("monocle", cfg.Device.Name)
	assert.Equal(252, cfg.Camera.TransferCeiling)

	status := cfg.FeatureStatus()
	assert.Equal(uint8(0x10), status[fpga.DEV_CAMERA])
	assert.Equal(uint8(0x30), status[fpga.DEV_OVERLAY+1])
	assert.Len(status, 7)
}

func TestParse(t *testing.T) {
	assert := assert.New(t)

	text := strings.Join([]string{
		"device:",
		"  name: testbench",
		"camera:",
		"  transfer_ceiling: 128",
		"fpga:",
		"  features:",
		"    camera: 0",
		"    image_readout0: 0",
		"clock:",
		"  epoch: 1674252171",
		"  zone: '5:30'",
	}, "\n")

	cfg, err := Parse(strings.NewReader(text))
	assert.NoError(err)
	assert.Equal("testbench", cfg.Device.Name)
	assert.Equal(Default().Device.GitRepo, cfg.Device.GitRepo)
	assert.Equal(128, cfg.Camera.TransferCeiling)
	assert.Equal(int64(1674252171), cfg.Clock.Epoch)
	assert.Equal("5:30", cfg.Clock.Zone)
	assert.Equal(map[string]int{"camera": 0, "image_readout0": 0}, cfg.Fpga.Features)
	assert.True(cfg.Bluetooth.Connected)

	cfg, err = Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(Default(), cfg)
}

func TestParse_Invalid(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		text string
		key  string
	}{
		{"camera:\n  transfer_ceiling: 256\n", "camera.transfer_ceiling"},
		{"camera:\n  transfer_ceiling: 0\n", "camera.transfer_ceiling"},
		{"bluetooth:\n  max_length: 0\n", "bluetooth.max_length"},
		{"clock:\n  zone: '15:00'\n", "clock.zone"},
		{"clock:\n  epoch: -5\n", "clock.epoch"},
		{"update:\n  region_size: 0\n", "update.region_size"},
		{"fpga:\n  features:\n    warp_drive: 0\n", "fpga.features"},
		{"fpga:\n  features:\n    camera: 9\n", "fpga.features.camera"},
	}

	for _, tt := range tests {
		_, err := Parse(strings.NewReader(tt.text))
		var setting ErrSetting
		if assert.ErrorAs(err, &setting, tt.text) {
			assert.Equal(tt.key, setting.Key)
		}
	}

	_, err := Parse(strings.NewReader("camera: [1, 2"))
	assert.ErrorIs(err, ErrConfigSyntax)

	_, err = Parse(strings.NewReader("camera:\n  warp: 9\n"))
	assert.ErrorIs(err, ErrConfigSyntax)
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "monocle.yaml")
	assert.NoError(os.WriteFile(path, []byte("bluetooth:\n  max_length: 20\n"), 0o644))

	cfg, err := Load(path)
	assert.NoError(err)
	assert.Equal(20, cfg.Bluetooth.MaxLength)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(err, os.ErrNotExist)
}
