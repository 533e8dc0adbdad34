package serialmux

import (
	"testing"

	"go.bug.st/serial"
)

func TestPortOptionsNormalizeDefaults(t *testing.T) {
	opts, err := PortOptions{}.Normalize()
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if opts.BaudRate != DefaultDataBaudRate {
		t.Errorf("BaudRate = %d, want %d", opts.BaudRate, DefaultDataBaudRate)
	}
	if opts.DataBits != 8 || opts.StopBits != 1 || opts.Parity != "N" {
		t.Errorf("unexpected defaults: %+v", opts)
	}
}

func TestPortOptionsNormalizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    PortOptions
		wantErr bool
	}{
		{"valid explicit", PortOptions{BaudRate: 115200, DataBits: 8, StopBits: 1, Parity: "N"}, false},
		{"parity word form", PortOptions{Parity: "even"}, false},
		{"odd parity", PortOptions{Parity: "O"}, false},
		{"bad data bits", PortOptions{DataBits: 9}, true},
		{"bad stop bits", PortOptions{StopBits: 3}, true},
		{"bad parity", PortOptions{Parity: "X"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.Normalize()
			if (err != nil) != tt.wantErr {
				t.Errorf("Normalize() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSerialMode(t *testing.T) {
	mode, err := PortOptions{BaudRate: 115200, Parity: "E"}.SerialMode()
	if err != nil {
		t.Fatalf("SerialMode failed: %v", err)
	}
	if mode.BaudRate != 115200 {
		t.Errorf("BaudRate = %d, want 115200", mode.BaudRate)
	}
	if mode.Parity != serial.EvenParity {
		t.Errorf("Parity = %v, want EvenParity", mode.Parity)
	}
	if mode.DataBits != 8 {
		t.Errorf("DataBits = %d, want 8", mode.DataBits)
	}
	if mode.StopBits != serial.OneStopBit {
		t.Errorf("StopBits = %v, want OneStopBit", mode.StopBits)
	}

	two, err := PortOptions{StopBits: 2}.SerialMode()
	if err != nil {
		t.Fatalf("SerialMode failed: %v", err)
	}
	if two.StopBits != serial.TwoStopBits {
		t.Errorf("StopBits = %v, want TwoStopBits", two.StopBits)
	}
}

func TestPortOptionsEqual(t *testing.T) {
	a := PortOptions{BaudRate: DefaultDataBaudRate}
	b := PortOptions{BaudRate: DefaultDataBaudRate, DataBits: 8, StopBits: 1, Parity: "none"}
	if !a.Equal(b) {
		t.Error("options normalising to the same configuration should be equal")
	}

	c := PortOptions{BaudRate: 115200}
	if a.Equal(c) {
		t.Error("different baud rates should not be equal")
	}
}
