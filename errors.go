package esis

import "errors"

var (
	// ErrMissingElement is returned when a required optical element is nil.
	ErrMissingElement = errors.New("missing optical element")
	// ErrChannelMismatch is returned when per-channel arrays disagree on the number of channels.
	ErrChannelMismatch = errors.New("inconsistent channel axis")
	// ErrChannelRange is returned when a channel index or slice is out of bounds.
	ErrChannelRange = errors.New("channel out of range")
	// ErrConfig is returned for invalid configuration values.
	ErrConfig = errors.New("invalid configuration")
)
