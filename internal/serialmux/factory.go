package serialmux

import (
	"time"

	"go.bug.st/serial"
)

// NewRealDataMux creates a DataMux instance backed by a real serial port at
// the given path using the provided serial options.
func NewRealDataMux(path string, opts PortOptions) (*DataMux[serial.Port], error) {
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, err
	}

	// A short read timeout keeps the poll loop live: each Read returns
	// whatever bytes arrived within the window rather than blocking until
	// the buffer fills.
	if err := port.SetReadTimeout(100 * time.Millisecond); err != nil {
		port.Close()
		return nil, err
	}

	return NewDataMux[serial.Port](port), nil
}
