// Package camera captures still images from the FPGA frame buffer readouts
// and controls the camera sensor.
//
// A Capture streams an image out of a readout's streaming register one block
// at a time. Each block is read in sub-transfers no larger than the chunk
// size, which is the largest whole number of pixels that fits under the
// transport's transfer ceiling, so a sub-transfer never splits a pixel.
package camera
