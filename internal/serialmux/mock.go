package serialmux

import (
	"bytes"
	"io"
	"sync"
	"time"
)

// MockSerialPort implements SerialPorter for testing and dev mode.
type MockSerialPort struct {
	io.Reader
	writeMu sync.Mutex
	written bytes.Buffer
}

func (m *MockSerialPort) Write(p []byte) (n int, err error) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	return m.written.Write(p)
}

// Written returns everything sent to the mock device so far.
func (m *MockSerialPort) Written() []byte {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	return append([]byte(nil), m.written.Bytes()...)
}

func (m *MockSerialPort) Close() error {
	if closer, ok := m.Reader.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// NewMockDataMux creates a DataMux backed by a mock serial port that replays
// the given frame bytes periodically, simulating a sensor emitting one frame
// per measurement cycle.
func NewMockDataMux(frame []byte, interval time.Duration) *DataMux[*MockSerialPort] {
	r, w := io.Pipe()

	mockPort := &MockSerialPort{Reader: r}

	go func() {
		defer w.Close()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			if _, err := w.Write(frame); err != nil {
				return
			}
		}
	}()

	return NewDataMux(mockPort)
}
