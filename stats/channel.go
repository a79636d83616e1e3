package stats

import "fmt"

// Channel identifies one sensor category.
type Channel uint8

const (
	Temperature Channel = iota
	Pressure
	Humidity
	Sound
	Light
	Vibration
)

// NumChannels is the number of sensor channels held by a Store.
const NumChannels = 6

var channelNames = [NumChannels]string{
	Temperature: "temperature",
	Pressure:    "pressure",
	Humidity:    "humidity",
	Sound:       "sound",
	Light:       "light",
	Vibration:   "vibration",
}

// Channels returns every channel in ingestion column order.
func Channels() []Channel {
	return []Channel{Temperature, Pressure, Humidity, Sound, Light, Vibration}
}

// Valid reports whether c is one of the defined channels.
func (c Channel) Valid() bool {
	return c < NumChannels
}

func (c Channel) String() string {
	if !c.Valid() {
		return fmt.Sprintf("channel(%d)", uint8(c))
	}

	return channelNames[c]
}

// ParseChannel returns the channel with the given lower-case name.
func ParseChannel(name string) (Channel, error) {
	for i, n := range channelNames {
		if n == name {
			return Channel(i), nil //nolint:gosec // i < NumChannels
		}
	}

	return 0, fmt.Errorf("stats: unknown channel %q", name)
}
