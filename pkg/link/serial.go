package link

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"

	"github.com/itohio/goirrigate/pkg/irrigation"
)

const (
	// DefaultBaudRate matches the firmware UART.
	DefaultBaudRate = 115200
	// DefaultBufferSize is the default size for the records channel buffer.
	DefaultBufferSize = 100
)

// Record is one status report received from the controller.
type Record struct {
	Timestamp time.Time // Host receive time
	irrigation.Status
}

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial reads status lines printed by the irrigation firmware on its serial console.
type Serial struct {
	port     string
	baudRate int

	conn      serial.Port
	records   chan Record
	done      chan struct{}
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
	closed    bool

	now func() time.Time
}

// New creates a new Serial device with the specified port, baud rate, and buffer size.
func New(port string, baudRate int, bufSize int) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if bufSize == 0 {
		bufSize = DefaultBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Serial{
		port:     port,
		baudRate: baudRate,
		records:  make(chan Record, bufSize),
		done:     make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
		now:      time.Now,
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		result = append(result, Port{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// Connect opens the serial port and starts reading records.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return fmt.Errorf("already connected")
	}
	if d.closed {
		return fmt.Errorf("device closed")
	}

	port, err := serial.Open(d.port, &serial.Mode{BaudRate: d.baudRate})
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}

	d.conn = port
	d.connected = true

	go d.readRecords(port)

	return nil
}

// Close closes the port and waits for the reader to stop. The records channel is closed.
func (d *Serial) Close() error {
	d.mu.Lock()
	if !d.connected {
		d.mu.Unlock()
		return nil
	}

	d.cancel()
	if err := d.conn.Close(); err != nil {
		log.Printf("link: error closing serial port: %v", err)
	}
	d.conn = nil
	d.connected = false
	d.closed = true
	d.mu.Unlock()

	<-d.done
	return nil
}

// Records returns the channel for reading records.
func (d *Serial) Records() <-chan Record {
	return d.records
}

// IsConnected returns whether the device is currently connected.
func (d *Serial) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// readRecords reads lines until the port is closed or fails.
func (d *Serial) readRecords(r io.Reader) {
	defer close(d.done)
	defer close(d.records)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if d.ctx.Err() != nil {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		rec, ok := d.parseLine(line)
		if !ok {
			continue
		}

		select {
		case d.records <- rec:
		case <-d.ctx.Done():
			return
		default:
			log.Printf("link: records channel full, dropping record")
		}
	}

	if err := scanner.Err(); err != nil && d.ctx.Err() == nil {
		log.Printf("link: error reading from serial port: %v", err)
	}
}

// parseLine turns a firmware log line into a Record. Free text such as the boot
// banner is logged and skipped.
func (d *Serial) parseLine(line string) (Record, bool) {
	if !irrigation.IsStatusLine(line) {
		log.Printf("link: device: %s", line)
		return Record{}, false
	}

	status, err := irrigation.ParseLogLine(line)
	if err != nil {
		log.Printf("link: failed to parse line '%s': %v", line, err)
		return Record{}, false
	}

	return Record{Timestamp: d.now(), Status: status}, true
}
