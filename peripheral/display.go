package peripheral

import (
	"fmt"
	"log"
	"slices"
)

// Display geometry.
const (
	DISPLAY_WIDTH       = 640
	DISPLAY_HEIGHT      = 400
	DISPLAY_FONT_WIDTH  = 32
	DISPLAY_FONT_HEIGHT = 48
)

// Display colors, as 24-bit RGB.
var Colors = map[string]uint32{
	"BLACK":   0x000000,
	"RED":     0xad2323,
	"GREEN":   0x1d6914,
	"BLUE":    0x2a4bd7,
	"CYAN":    0x29d0d0,
	"MAGENTA": 0xff66cc,
	"YELLOW":  0xffee33,
	"WHITE":   0xffffff,
	"GRAY1":   0x1c1c1c,
	"GRAY2":   0x383838,
	"GRAY3":   0x555555,
	"GRAY4":   0x717171,
	"GRAY5":   0x8d8d8d,
	"GRAY6":   0xaaaaaa,
	"GRAY7":   0xc6c6c6,
	"GRAY8":   0xe2e2e2,
}

func checkColor(color uint32) (err error) {
	if color > 0xffffff {
		err = fmt.Errorf("%w: %#x", ErrColorInvalid, color)
	}
	return
}

// Shape is a drawable display object.
type Shape interface {
	fmt.Stringer
	// Bounds returns the top left and bottom right corners.
	Bounds() (x1, y1, x2, y2 int)
}

// Line is a straight line between two points.
type Line struct {
	X1, Y1, X2, Y2 int
	Color          uint32
	Thickness      int
}

// NewLine returns a line of the given thickness.
func NewLine(x1, y1, x2, y2 int, color uint32, thickness int) (line Line, err error) {
	err = checkColor(color)
	if err != nil {
		return
	}

	if thickness < 1 {
		err = fmt.Errorf("%w: line thickness %d", ErrShapeInvalid, thickness)
		return
	}

	line = Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: color, Thickness: thickness}
	return
}

func (line Line) Bounds() (x1, y1, x2, y2 int) {
	return min(line.X1, line.X2), min(line.Y1, line.Y2), max(line.X1, line.X2), max(line.Y1, line.Y2)
}

func (line Line) String() string {
	return fmt.Sprintf("Line(%d, %d, %d, %d, 0x%06x, thickness=%d)", line.X1, line.Y1, line.X2, line.Y2, line.Color, line.Thickness)
}

// Rectangle is a filled rectangle.
type Rectangle struct {
	X1, Y1, X2, Y2 int
	Color          uint32
}

// NewRectangle returns a rectangle with its corners ordered top left first.
func NewRectangle(x1, y1, x2, y2 int, color uint32) (rect Rectangle, err error) {
	err = checkColor(color)
	if err != nil {
		return
	}

	rect = Rectangle{X1: min(x1, x2), Y1: min(y1, y2), X2: max(x1, x2), Y2: max(y1, y2), Color: color}
	return
}

func (rect Rectangle) Bounds() (x1, y1, x2, y2 int) {
	return rect.X1, rect.Y1, rect.X2, rect.Y2
}

func (rect Rectangle) String() string {
	return fmt.Sprintf("Rectangle(%d, %d, %d, %d, 0x%06x)", rect.X1, rect.Y1, rect.X2, rect.Y2, rect.Color)
}

// Text is a single line of text in the display font.
type Text struct {
	X, Y  int
	Text  string
	Color uint32
}

// NewText returns a text object anchored at its top left corner.
func NewText(text string, x, y int, color uint32) (txt Text, err error) {
	err = checkColor(color)
	if err != nil {
		return
	}

	txt = Text{X: x, Y: y, Text: text, Color: color}
	return
}

func (txt Text) Bounds() (x1, y1, x2, y2 int) {
	return txt.X, txt.Y, txt.X + len([]rune(txt.Text))*DISPLAY_FONT_WIDTH, txt.Y + DISPLAY_FONT_HEIGHT
}

func (txt Text) String() string {
	return fmt.Sprintf("Text(%q, %d, %d, 0x%06x)", txt.Text, txt.X, txt.Y, txt.Color)
}

// Screen rasterizes a list of shapes onto the panel.
type Screen interface {
	Show(shapes []Shape) error
}

// SimScreen records every frame shown.
type SimScreen struct {
	Frames [][]Shape
}

func (ss *SimScreen) Show(shapes []Shape) (err error) {
	ss.Frames = append(ss.Frames, shapes)
	return
}

// Display is the micro-OLED display.
type Display struct {
	Verbose bool
	Screen  Screen
}

// Show replaces the display contents with the shapes. Showing no shapes
// clears the display.
func (disp *Display) Show(shapes ...Shape) (err error) {
	if disp.Verbose {
		for _, shape := range shapes {
			log.Printf("display: %v", shape)
		}
	}

	err = disp.Screen.Show(slices.Clone(shapes))
	return
}
