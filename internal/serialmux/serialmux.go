// Package serialmux provides an abstraction over the mmWave sensor's data
// serial port with the ability for multiple clients to subscribe to the raw
// byte chunks read from the port, and to send CLI configuration commands to a
// single sensor device.
//
// Each read delivers whatever bytes the port currently has available. Chunks
// are fanned out as-is; frame synchronisation and decoding happen downstream
// in internal/mmwave/parse, which either finds a complete frame inside a chunk
// or reports why it could not.
package serialmux

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
)

var ErrWriteFailed = fmt.Errorf("failed to write to serial port")

// readChunkSize bounds a single poll's read. The sensor emits at most a few
// kilobytes per frame, so one read at this size captures a full frame plus
// slack.
const readChunkSize = 32 * 1024

// DataMux is a generic serial port multiplexer that allows multiple clients
// to subscribe to raw data chunks from a single sensor data port.
type DataMux[T SerialPorter] struct {
	port         T
	subscribers  map[string]chan []byte
	subscriberMu sync.Mutex
	commandMu    sync.Mutex
	closing      bool
	closingMu    sync.Mutex
}

// DataMuxInterface defines the interface for the DataMux type.
type DataMuxInterface interface {
	// Subscribe creates a new channel for receiving data chunks from the
	// port. The channel ID is used to identify the unique channel when
	// unsubscribing.
	Subscribe() (string, chan []byte)
	// Unsubscribe removes a channel from the list of subscribers.
	Unsubscribe(string)
	// SendCommand writes the provided CLI command to the sensor.
	SendCommand(string) error
	// Monitor reads chunks from the serial port and fans them out to all
	// subscribed channels until the context ends or the port fails.
	Monitor(context.Context) error
	// Close closes all subscribed channels and closes the serial port.
	Close() error
}

// NewDataMux creates a DataMux instance backed by the given port.
func NewDataMux[T SerialPorter](port T) *DataMux[T] {
	return &DataMux[T]{
		port:        port,
		subscribers: make(map[string]chan []byte),
	}
}

// randomID generates a random channel ID (8 byte random hex encoded value)
func randomID() string {
	b := make([]byte, 8)
	crand.Read(b)
	return hex.EncodeToString(b)
}

func (s *DataMux[T]) Subscribe() (string, chan []byte) {
	id := randomID()
	ch := make(chan []byte, 1)
	s.subscriberMu.Lock()
	defer s.subscriberMu.Unlock()
	s.subscribers[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber from the data mux.
func (s *DataMux[T]) Unsubscribe(id string) {
	s.subscriberMu.Lock()
	defer s.subscriberMu.Unlock()
	if ch, ok := s.subscribers[id]; ok {
		close(ch)
		delete(s.subscribers, id)
	}
}

// SendCommand sends a CLI command to the sensor. Commands are newline
// terminated per the mmWave CLI protocol.
func (s *DataMux[T]) SendCommand(command string) error {
	s.commandMu.Lock()
	defer s.commandMu.Unlock()
	if !bytes.HasSuffix([]byte(command), []byte("\n")) {
		command += "\n"
	}
	n, err := s.port.Write([]byte(command))
	if err != nil {
		return err
	}
	if n != len(command) {
		return ErrWriteFailed
	}
	return nil
}

// Monitor polls the serial port for data and fans chunks out to subscribers.
func (s *DataMux[T]) Monitor(ctx context.Context) error {
	chunkChan := make(chan []byte)
	readErrChan := make(chan error, 1)

	// Reads happen in their own goroutine so a blocking Read does not
	// interfere with the outer loop awaiting chunks & context cancellation.
	go func() {
		defer close(chunkChan)
		buf := make([]byte, readChunkSize)
		for {
			n, err := s.port.Read(buf)
			if err != nil {
				select {
				case readErrChan <- err:
				case <-ctx.Done():
				}
				return
			}
			if n == 0 {
				continue
			}
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case chunkChan <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-readErrChan:
			return err

		case chunk, ok := <-chunkChan:
			// if the channel is closed, we're done reading from the port
			if !ok {
				return nil
			}

			s.closingMu.Lock()
			if s.closing {
				s.closingMu.Unlock()
				return nil
			}
			s.closingMu.Unlock()

			s.subscriberMu.Lock()
			for _, ch := range s.subscribers {
				select {
				case ch <- chunk:
				default:
					// if the channel is full skip so as not to block the
					// outer loop; the subscriber misses this poll's bytes
				}
			}
			s.subscriberMu.Unlock()
		}
	}
}

func (s *DataMux[T]) Close() error {
	s.closingMu.Lock()
	s.closing = true
	s.closingMu.Unlock()

	s.subscriberMu.Lock()
	defer s.subscriberMu.Unlock()
	for id, ch := range s.subscribers {
		close(ch)
		delete(s.subscribers, id)
	}
	return s.port.Close()
}
