package peripheral

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLed(t *testing.T) {
	assert := assert.New(t)

	led := &Led{}
	assert.NoError(led.On(LED_RED))
	assert.True(led.IsOn(LED_RED))
	assert.False(led.IsOn(LED_GREEN))
	assert.NoError(led.Off(LED_RED))
	assert.False(led.IsOn(LED_RED))
	assert.NoError(led.On(LED_GREEN))
	assert.True(led.IsOn(LED_GREEN))

	assert.ErrorIs(led.On("BLUE"), ErrLedInvalid)
	assert.ErrorIs(led.Off("red"), ErrLedInvalid)
}

func TestTouch(t *testing.T) {
	assert := assert.New(t)

	touch := &Touch{}

	for _, button := range []string{TOUCH_A, TOUCH_B, TOUCH_BOTH} {
		held, err := touch.State(button)
		assert.NoError(err)
		assert.False(held, button)
	}

	_, err := touch.State("C")
	assert.ErrorIs(err, ErrTouchInvalid)

	var events []string
	record := func(button string) { events = append(events, button) }
	assert.NoError(touch.Callback(TOUCH_A, record))
	assert.NoError(touch.Callback(TOUCH_BOTH, record))
	assert.ErrorIs(touch.Callback("C", record), ErrTouchInvalid)

	assert.NoError(touch.Press(TOUCH_A))
	assert.NoError(touch.Press(TOUCH_B))
	assert.Equal([]string{TOUCH_A, TOUCH_BOTH}, events)

	held, _ := touch.State(TOUCH_BOTH)
	assert.True(held)

	assert.NoError(touch.Release(TOUCH_A))
	held, _ = touch.State(TOUCH_BOTH)
	assert.False(held)
	held, _ = touch.State(TOUCH_B)
	assert.True(held)

	assert.NoError(touch.Callback(TOUCH_A, nil))
	assert.NoError(touch.Press(TOUCH_A))
	assert.Equal([]string{TOUCH_A, TOUCH_BOTH, TOUCH_BOTH}, events)
}

func TestBluetooth(t *testing.T) {
	assert := assert.New(t)

	bt := NewBluetooth(true, 0)
	assert.True(bt.Connected())
	assert.Equal(BLUETOOTH_DEFAULT_MAX_LENGTH, bt.MaxLength())

	assert.NoError(bt.Send(nil))
	assert.NoError(bt.Send(bytes.Repeat([]byte("a"), bt.MaxLength())))
	assert.ErrorIs(bt.Send(bytes.Repeat([]byte("a"), bt.MaxLength()+1)), ErrPayloadSize)
	assert.Len(bt.Sent, 2)

	var received [][]byte
	bt.ReceiveCallback(func(data []byte) { received = append(received, data) })
	assert.NoError(bt.Deliver([]byte("hello")))
	assert.Equal([][]byte{[]byte("hello")}, received)

	bt.SetConnected(false)
	assert.ErrorIs(bt.Send([]byte("x")), ErrDisconnected)
	assert.ErrorIs(bt.Deliver([]byte("x")), ErrDisconnected)
}

func TestDisplay(t *testing.T) {
	assert := assert.New(t)

	screen := &SimScreen{}
	disp := &Display{Screen: screen}

	line, err := NewLine(10, 10, 10, 390, Colors["WHITE"], 10)
	assert.NoError(err)
	x1, y1, x2, y2 := line.Bounds()
	assert.Equal([]int{10, 10, 10, 390}, []int{x1, y1, x2, y2})

	_, err = NewLine(0, 0, 1, 1, Colors["WHITE"], 0)
	assert.ErrorIs(err, ErrShapeInvalid)
	_, err = NewLine(0, 0, 1, 1, 0x1000000, 1)
	assert.ErrorIs(err, ErrColorInvalid)

	rect, err := NewRectangle(400, 300, 100, 50, Colors["YELLOW"])
	assert.NoError(err)
	assert.Equal(Rectangle{X1: 100, Y1: 50, X2: 400, Y2: 300, Color: 0xffee33}, rect)

	text, err := NewText("hi", 0, 0, Colors["RED"])
	assert.NoError(err)
	_, _, x2, y2 = text.Bounds()
	assert.Equal(2*DISPLAY_FONT_WIDTH, x2)
	assert.Equal(DISPLAY_FONT_HEIGHT, y2)

	assert.NoError(disp.Show(line, rect, text))
	assert.NoError(disp.Show())
	assert.Len(screen.Frames, 2)
	assert.Equal([]Shape{line, rect, text}, screen.Frames[0])
	assert.Empty(screen.Frames[1])
	assert.Equal("Rectangle(100, 50, 400, 300, 0xffee33)", rect.String())
}

func TestFlash(t *testing.T) {
	assert := assert.New(t)

	flash := &Flash{}
	flash.Erase()
	assert.Equal(FLASH_FPGA_REGION_SIZE, flash.Size)

	assert.NoError(flash.Write([]byte("done")))
	data, err := flash.Read(0, 4)
	assert.NoError(err)
	assert.Equal([]byte("done"), data)

	data, err = flash.Read(444430, 4)
	assert.NoError(err)
	assert.Equal([]byte{0xff, 0xff, 0xff, 0xff}, data)

	_, err = flash.Read(444430, 8)
	assert.ErrorIs(err, ErrFlashRange)
	_, err = flash.Read(-1, 1)
	assert.ErrorIs(err, ErrFlashRange)

	out := &bytes.Buffer{}
	assert.NoError(flash.Marshal(out))
	assert.Equal("done", out.String())

	restored := &Flash{Size: 16}
	assert.NoError(restored.Unmarshal(bytes.NewReader([]byte("bitstream"))))
	assert.Equal(9, restored.WriteIndex)
	assert.ErrorIs(restored.Write(make([]byte, 8)), ErrFlashRange)
	assert.NoError(restored.Write(make([]byte, 7)))

	assert.ErrorIs(restored.Unmarshal(bytes.NewReader(make([]byte, 17))), ErrFlashRange)

	// A rejected image leaves the region as it was.
	assert.Equal(16, restored.WriteIndex)
	out.Reset()
	assert.NoError(restored.Marshal(out))
	assert.Equal("bitstream", out.String()[:9])
}

func TestInfo(t *testing.T) {
	assert := assert.New(t)

	info := DefaultInfo()
	assert.Equal("monocle", info.Name)
	assert.Len(info.MacAddress, 17)
	assert.Len(info.Version, 12)
	assert.Len(info.GitTag, 9)
	assert.Equal("Storage(start=0x0006d000, len=602112)", info.Storage())
}
