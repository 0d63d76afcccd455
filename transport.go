package uci

import (
	"fmt"
	"strings"
	"sync"
)

// Transport is the minimal byte-stream abstraction Client drives (spec.md
// §4.4): write framed bytes out, and feed whatever arrives back to the
// Client's onData callback until Close. Concrete transports (UART, a
// /dev/uci character device) register themselves via RegisterTransport so
// Connect can resolve a url without importing them directly.
type Transport interface {
	Write(data []byte) error
	Close() error
}

// OpenFunc opens a Transport for url, invoking onData with each chunk of
// bytes read from it until Close.
type OpenFunc func(url string, onData func([]byte)) (Transport, error)

type transportEntry struct {
	name      string
	canHandle func(string) bool
	open      OpenFunc
}

var (
	transportsMu sync.RWMutex
	transports   []transportEntry
)

// RegisterTransport adds a transport type to the global registry. Addins
// and the built-in UART/device transports call this from an init()
// (spec.md §4.4/§4.3). Entries are tried in registration order; the first
// whose canHandle accepts the url wins.
func RegisterTransport(name string, canHandle func(string) bool, open OpenFunc) {
	transportsMu.Lock()
	defer transportsMu.Unlock()
	transports = append(transports, transportEntry{name: name, canHandle: canHandle, open: open})
}

// OpenTransport resolves url against the registered transport types and
// opens it. Returns a TransportError if no registered type accepts the
// url, or if the chosen type's Open fails.
func OpenTransport(url string, onData func([]byte)) (Transport, error) {
	transportsMu.RLock()
	entries := make([]transportEntry, len(transports))
	copy(entries, transports)
	transportsMu.RUnlock()

	for _, e := range entries {
		if e.canHandle(url) {
			t, err := e.open(url, onData)
			if err != nil {
				return nil, NewTransportError(fmt.Sprintf("open %s via %s", url, e.name), err)
			}
			return t, nil
		}
	}
	return nil, NewTransportError(fmt.Sprintf("no registered transport can handle %q", url), nil)
}

// hasScheme reports whether url is of the form "<scheme>:...".
func hasScheme(url, scheme string) bool {
	return strings.HasPrefix(url, scheme+":")
}
