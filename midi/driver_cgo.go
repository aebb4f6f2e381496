//go:build cgo

package midi

// the native driver needs cgo; without it no ports are found and opening
// an output reports ErrDeviceUnavailable
import _ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
