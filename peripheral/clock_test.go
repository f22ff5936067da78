package peripheral

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock_Now(t *testing.T) {
	assert := assert.New(t)

	clock := NewClock(0)
	assert.NoError(clock.SetTime(1674252171))
	assert.Equal(int64(1674252171), clock.Time())

	assert.Equal(Fields{
		Year: 2023, Month: 1, Day: 20,
		Hour: 22, Minute: 2, Second: 51,
		Weekday: "friday", Yearday: 20,
		Timezone: "00:00",
	}, clock.Now())

	fields, err := clock.At(1674253104)
	assert.NoError(err)
	assert.Equal(Fields{
		Year: 2023, Month: 1, Day: 20,
		Hour: 22, Minute: 18, Second: 24,
		Weekday: "friday", Yearday: 20,
		Timezone: "00:00",
	}, fields)

	_, err = clock.At(-1)
	assert.ErrorIs(err, ErrTimeInvalid)
	assert.ErrorIs(clock.SetTime(-1), ErrTimeInvalid)
}

func TestClock_Zone(t *testing.T) {
	assert := assert.New(t)

	clock := NewClock(1674252171)
	assert.Equal("00:00", clock.Zone())

	assert.NoError(clock.SetZone("5:30"))
	assert.Equal("05:30", clock.Zone())
	assert.Equal(Fields{
		Year: 2023, Month: 1, Day: 21,
		Hour: 3, Minute: 32, Second: 51,
		Weekday: "saturday", Yearday: 21,
		Timezone: "05:30",
	}, clock.Now())

	assert.NoError(clock.SetZone("-12:00"))
	assert.Equal("-12:00", clock.Zone())
	now := clock.Now()
	assert.Equal(10, now.Hour)
	assert.Equal("friday", now.Weekday)

	for _, bad := range []string{"-14:00", "15:00", "-12:30", "5:20", "530", "", "+x:00"} {
		assert.ErrorIs(clock.SetZone(bad), ErrZoneInvalid, bad)
	}
	assert.Equal("-12:00", clock.Zone())

	assert.NoError(clock.SetZone("+14:00"))
	assert.Equal("14:00", clock.Zone())
}

func TestClock_Sleep(t *testing.T) {
	assert := assert.New(t)

	clock := NewClock(1674252171)
	clock.Sleep(2 * time.Second)
	assert.Equal(int64(1674252173), clock.Time())

	clock.Sleep(250 * time.Millisecond)
	assert.Equal(int64(1674252173), clock.Time())

	clock.Sleep(750 * time.Millisecond)
	assert.Equal(int64(1674252174), clock.Time())

	clock.Sleep(-time.Second)
	assert.Equal(int64(1674252174), clock.Time())
}

func TestMktime(t *testing.T) {
	assert := assert.New(t)

	epoch, err := Mktime(Fields{Year: 2023, Month: 1, Day: 20, Hour: 22, Minute: 18, Second: 24})
	assert.NoError(err)
	assert.Equal(int64(1674253104), epoch)

	epoch, err = Mktime(Fields{Year: 2023, Month: 1, Day: 21, Hour: 3, Minute: 48, Second: 24, Timezone: "05:30"})
	assert.NoError(err)
	assert.Equal(int64(1674253104), epoch)

	_, err = Mktime(Fields{Year: 2023, Month: 1, Day: 1, Timezone: "25:00"})
	assert.ErrorIs(err, ErrZoneInvalid)
}
