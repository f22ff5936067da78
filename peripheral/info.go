package peripheral

import (
	"fmt"
)

// Info describes the device and its firmware.
type Info struct {
	Name       string
	Version    string
	GitTag     string
	GitRepo    string
	MacAddress string

	BatteryLevel int  // Percent charge.
	PreventSleep bool // Set to keep the device awake.

	StorageStart  int // Offset of the user storage region.
	StorageLength int // Length of the user storage region.
}

// DefaultInfo returns the information of a stock device.
func DefaultInfo() (info Info) {
	info = Info{
		Name:          "monocle",
		Version:       "v23.011.1200",
		GitTag:        "b9a5ca3fd",
		GitRepo:       "https://github.com/brilliantlabsAR/monocle-micropython",
		MacAddress:    "d0:6c:9c:18:4f:31",
		BatteryLevel:  100,
		StorageStart:  0x0006d000,
		StorageLength: 602112,
	}

	return
}

// Storage describes the user storage region.
func (info *Info) Storage() string {
	return fmt.Sprintf("Storage(start=0x%08x, len=%d)", info.StorageStart, info.StorageLength)
}
