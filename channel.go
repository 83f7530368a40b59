package esis

import (
	"fmt"
	"slices"
)

// SliceChannels returns a copy of the instrument keeping only the channels [lo, hi).
// Every per-channel array is sliced together so the copy stays consistent; arrays
// broadcast over all channels (length 0 or 1) are kept as is.
func (i *Instrument) SliceChannels(lo, hi int) (*Instrument, error) {
	n, err := i.channelCount()
	if err != nil {
		return nil, err
	}
	if lo < 0 || hi > n || lo >= hi {
		return nil, fmt.Errorf("%w: [%d, %d) of %d channels", ErrChannelRange, lo, hi, n)
	}
	c := i.Copy()
	if c.Grating != nil {
		c.Grating.Cylindrical = i.Grating.Cylindrical.slice(lo, hi)
	}
	if c.Filter != nil {
		c.Filter.Cylindrical = i.Filter.Cylindrical.slice(lo, hi)
	}
	if c.Camera != nil {
		if len(c.Camera.Channel) > 1 {
			c.Camera.Channel = slices.Clone(i.Camera.Channel[lo:hi])
		}
		s := c.Camera.sensor()
		s.Cylindrical = i.Camera.sensor().Cylindrical.slice(lo, hi)
		c.Camera.Sensor = s
	}
	return c, nil
}

// SelectChannel returns a copy of the instrument reduced to a single channel.
func (i *Instrument) SelectChannel(channel int) (*Instrument, error) {
	return i.SliceChannels(channel, channel+1)
}

// ChannelShapes returns the length of every per-channel array, keyed by attribute path.
// Arrays broadcast over all channels report their own length, 0 or 1, also after slicing.
func (i *Instrument) ChannelShapes() map[string]int {
	return i.channelLengths()
}

// ActiveChannel returns the index of the channel carrying the given identifier.
func (i *Instrument) ActiveChannel(id int) (int, error) {
	if i.Camera == nil {
		return 0, fmt.Errorf("%w: camera", ErrMissingElement)
	}
	k := slices.Index(i.Camera.Channel, id)
	if k < 0 {
		return 0, fmt.Errorf("%w: no channel %d in %v", ErrChannelRange, id, i.Camera.Channel)
	}
	return k, nil
}
