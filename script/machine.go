// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package script runs Starlark scripts against a simulated device.
//
// Each peripheral is exposed as a module (camera, display, bluetooth, fpga,
// time, led, touch, update, device). Failing operations raise errors whose
// class can be checked with the check() builtin, which the bundled
// self-test uses to exercise every module.
package script

import (
	"fmt"
	"io"
	"iter"
	"log"
	"os"

	"go.starlark.net/starlark"

	"github.com/ezrec/monocle/camera"
	"github.com/ezrec/monocle/config"
	"github.com/ezrec/monocle/fpga"
	"github.com/ezrec/monocle/internal"
	"github.com/ezrec/monocle/peripheral"
)

// Report counts check() outcomes.
type Report struct {
	Passed int
	Failed int
}

// Machine is a simulated device and the interpreter state bound to it.
type Machine struct {
	Verbose bool      // If set, enables verbose logging of every peripheral.
	Output  io.Writer // Destination of print() and check() results.

	Bus       *fpga.Simulator       // Simulated FPGA register bus.
	Fpga      *fpga.Fpga            // FPGA client.
	Sensor    *camera.SimSensor     // Simulated image sensor.
	Camera    *camera.Camera        // Camera control.
	Screen    *peripheral.SimScreen // Simulated display panel.
	Display   *peripheral.Display   // Display.
	Bluetooth *peripheral.Bluetooth // Bluetooth data link.
	Clock     *peripheral.Clock     // Real-time clock.
	Led       peripheral.Led        // Indicator LEDs.
	Touch     peripheral.Touch      // Touch pads.
	Flash     peripheral.Flash      // FPGA update region.
	Info      peripheral.Info       // Device information.

	Report Report // Outcomes of check() since the last SelfTest.

	thread  *starlark.Thread
	modules starlark.StringDict
}

// NewMachine creates a simulated device from a configuration.
func NewMachine(cfg *config.Config) (m *Machine, err error) {
	err = cfg.Validate()
	if err != nil {
		return
	}

	m = &Machine{
		Output: os.Stdout,
		Bus:    fpga.NewSimulator(),
		Sensor: &camera.SimSensor{},
		Screen: &peripheral.SimScreen{},
		Clock:  peripheral.NewClock(cfg.Clock.Epoch),
	}

	m.Bus.ChipID = cfg.Fpga.ChipID
	m.Bus.Status = cfg.FeatureStatus()
	m.Fpga = fpga.NewFpga(m.Bus)

	m.Camera = &camera.Camera{
		Periph:          m.Fpga,
		Sensor:          m.Sensor,
		Clock:           m.Clock,
		TransferCeiling: cfg.Camera.TransferCeiling,
	}

	m.Display = &peripheral.Display{Screen: m.Screen}
	m.Bluetooth = peripheral.NewBluetooth(cfg.Bluetooth.Connected, cfg.Bluetooth.MaxLength)
	m.Flash.Size = cfg.Update.RegionSize
	m.Flash.Erase()

	err = m.Clock.SetZone(cfg.Clock.Zone)
	if err != nil {
		m = nil
		return
	}

	m.Info = peripheral.Info{
		Name:          cfg.Device.Name,
		Version:       cfg.Device.Version,
		GitTag:        cfg.Device.GitTag,
		GitRepo:       cfg.Device.GitRepo,
		MacAddress:    cfg.Device.MacAddress,
		BatteryLevel:  cfg.Device.BatteryLevel,
		StorageStart:  peripheral.DefaultInfo().StorageStart,
		StorageLength: peripheral.DefaultInfo().StorageLength,
	}

	m.thread = &starlark.Thread{
		Name: "monocle",
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(m.Output, msg)
		},
	}

	m.modules = m.newModules()

	return
}

// SetVerbose enables verbose logging on the machine and its peripherals.
func (m *Machine) SetVerbose(verbose bool) {
	m.Verbose = verbose
	m.Fpga.Verbose = verbose
	m.Sensor.Verbose = verbose
	m.Camera.Verbose = verbose
	m.Display.Verbose = verbose
	m.Bluetooth.Verbose = verbose
	m.Clock.Verbose = verbose
	m.Led.Verbose = verbose
	m.Touch.Verbose = verbose
	m.Flash.Verbose = verbose
}

func (m *Machine) printf(format string, args ...any) {
	fmt.Fprintf(m.Output, format, args...)
}

// call invokes a script callback from a peripheral event.
func (m *Machine) call(name string, fn starlark.Callable, args ...starlark.Value) {
	_, err := starlark.Call(m.thread, fn, args, nil)
	if err != nil {
		log.Printf("%v: callback %v: %v", name, fn.Name(), err)
	}
}

// Constants returns every module constant as module.NAME and its value.
func (m *Machine) Constants() iter.Seq2[string, string] {
	var seqs []iter.Seq2[string, string]
	for _, name := range m.modules.Keys() {
		seqs = append(seqs, moduleConstants(name, m.modules[name]))
	}

	return internal.IterSeq2Concat(seqs...)
}

func moduleConstants(name string, value starlark.Value) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		attrs, ok := value.(starlark.HasAttrs)
		if !ok {
			return
		}
		for _, attr := range attrs.AttrNames() {
			member, err := attrs.Attr(attr)
			if err != nil || member == nil {
				continue
			}
			switch member.(type) {
			case starlark.Callable, starlark.HasAttrs:
				continue
			}
			if !yield(name+"."+attr, member.String()) {
				return
			}
		}
	}
}
