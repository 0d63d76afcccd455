package uci

import (
	"os"
	"sync"
)

// devTransport is the abstract "/dev/uci" character-device transport
// (spec.md §4.4): a plain blocking file descriptor, no baud rate or
// framing of its own, read by the same reader-worker shape as
// uartTransport. Reached by the "dev:" scheme or the literal /dev/uci
// path, ahead of the UART fallback.
type devTransport struct {
	f *os.File

	writeMu sync.Mutex
	done    chan struct{}
	wg      sync.WaitGroup
}

func init() {
	RegisterTransport("dev", devCanHandle, openDev)
}

func devCanHandle(url string) bool {
	return hasScheme(url, "dev") || url == "/dev/uci"
}

func openDev(url string, onData func([]byte)) (Transport, error) {
	path := stripScheme(url, "dev")
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	t := &devTransport{f: f, done: make(chan struct{})}
	t.wg.Add(1)
	go t.readLoop(onData)
	return t, nil
}

func (t *devTransport) readLoop(onData func([]byte)) {
	defer t.wg.Done()
	buf := make([]byte, 4096)
	for {
		n, err := t.f.Read(buf)
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
				log().WithField("err", err).Warn("dev transport read error, stopping reader")
				return
			}
		}
		select {
		case <-t.done:
			return
		default:
		}
	}
}

func (t *devTransport) Write(data []byte) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	_, err := t.f.Write(data)
	return err
}

func (t *devTransport) Close() error {
	select {
	case <-t.done:
		return nil
	default:
		close(t.done)
	}
	// Closing the fd unblocks the reader's blocking Read on platforms
	// where a concurrent close interrupts it (spec.md §4.5.1 cancellation).
	err := t.f.Close()
	t.wg.Wait()
	return err
}

func stripScheme(url, scheme string) string {
	if hasScheme(url, scheme) {
		return url[len(scheme)+1:]
	}
	return url
}
