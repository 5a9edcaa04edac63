package capture

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// SerialPort is a sensor connection with a bounded read timeout.
type SerialPort struct {
	*StreamReader
	port serial.Port
}

func OpenSerial(name string, baudRate int, readTimeout time.Duration) (*SerialPort, error) {
	port, err := serial.Open(name, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", name, err)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout: %w", err)
	}
	return &SerialPort{
		StreamReader: NewStreamReader(port),
		port:         port,
	}, nil
}

// Settle waits for the board to finish resetting after the port opened and
// discards whatever it printed meanwhile.
func (p *SerialPort) Settle(delay time.Duration) error {
	time.Sleep(delay)
	return p.port.ResetInputBuffer()
}

func (p *SerialPort) Close() error {
	return p.port.Close()
}
