package uci

import (
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"
)

// uartURLPrefix is the scheme Connect recognizes for the reference UART
// transport: "uart:/dev/ttyACM0" or a bare device path with no scheme at
// all.
const uartURLPrefix = "uart"

func init() {
	RegisterTransport("uart", uartCanHandle, openUART)
}

func uartCanHandle(url string) bool {
	if hasScheme(url, uartURLPrefix) {
		return true
	}
	// A bare path with no scheme at all falls through to UART, the
	// default reference transport. Any other "<scheme>:" prefix (a colon
	// before the first '/') is left to the transport registered for it.
	i := strings.Index(url, ":")
	return i < 0 || strings.Contains(url[:i], "/")
}

// uartReadTimeout bounds each blocking serial.Port.Read so Close can stop
// the reader goroutine promptly instead of blocking forever on an idle
// line.
const uartReadTimeout = 200 * time.Millisecond

// uartTransport is the reference go.bug.st/serial based Transport,
// structurally mirroring a background-reader-goroutine socket loop: one
// reader feeding onData, stopped cooperatively via a closed done channel
// rather than a deadline trick on the port itself (serial ports don't all
// support SetReadDeadline the way net.Conn does).
type uartTransport struct {
	port serial.Port

	writeMu sync.Mutex
	done    chan struct{}
	wg      sync.WaitGroup
}

func openUART(url string, onData func([]byte)) (Transport, error) {
	path := strings.TrimPrefix(url, uartURLPrefix+":")
	baud := DefaultBaudRate
	if stripped, rate, ok := parseBaudSuffix(path); ok {
		path, baud = stripped, rate
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, err
	}
	if err := port.SetReadTimeout(uartReadTimeout); err != nil {
		port.Close()
		return nil, err
	}
	t := &uartTransport{port: port, done: make(chan struct{})}
	t.wg.Add(1)
	go t.readLoop(onData)
	return t, nil
}

func (t *uartTransport) readLoop(onData func([]byte)) {
	defer t.wg.Done()
	buf := make([]byte, 4096)
	for {
		select {
		case <-t.done:
			return
		default:
		}
		n, err := t.port.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			onData(chunk)
		}
		if err != nil {
			select {
			case <-t.done:
				return
			default:
				log().WithField("err", err).Warn("uart transport read error, stopping reader")
				return
			}
		}
	}
}

func (t *uartTransport) Write(data []byte) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	_, err := t.port.Write(data)
	return err
}

func (t *uartTransport) Close() error {
	select {
	case <-t.done:
		return nil
	default:
		close(t.done)
	}
	err := t.port.Close()
	t.wg.Wait()
	return err
}
