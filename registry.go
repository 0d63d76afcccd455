package uci

import (
	"fmt"
	"sync"
)

// RegKey is the (MT, GID, OID) dispatch key, the message registry's only
// lookup shape.
type RegKey struct {
	MT  MT
	GID byte
	OID byte
}

// Codec is a decode/encode pair bound to one RegKey. Either half may be nil
// if the message only ever flows in one direction (e.g. a command has no
// decoder, a notification has no encoder).
type Codec struct {
	Decode func(payload []byte) (interface{}, error)
	Encode func(msg interface{}) ([]byte, error)
}

/*
Registry is the C3 codec registry: a global map from (MT, GID, OID) to
Codec. Default entries are installed once at init; addins call Register
during their own load (addin.go). A user-installed entry (userOverride
true) can never be silently replaced by a later default, mirroring
spec.md §4.3's "conflicts replace the default but cannot replace a
user-installed entry without explicit override."
*/
type Registry struct {
	mu       sync.RWMutex
	entries  map[RegKey]Codec
	userSet  map[RegKey]bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[RegKey]Codec), userSet: make(map[RegKey]bool)}
}

// Register installs codec at key. userOverride marks the entry as
// caller-installed, protecting it from being replaced by a later default
// registration (but not by a later explicit userOverride registration,
// which always wins).
func (r *Registry) Register(key RegKey, codec Codec, userOverride bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.userSet[key] && !userOverride {
		return fmt.Errorf("registry: entry %+v is user-installed, refusing default override", key)
	}
	r.entries[key] = codec
	if userOverride {
		r.userSet[key] = true
	}
	return nil
}

// MustRegister is Register with userOverride=false, panicking on conflict;
// used for the core's own init-time default registrations.
func (r *Registry) MustRegister(key RegKey, codec Codec) {
	if _, exists := r.Lookup(key); exists {
		panic(fmt.Errorf("registry: duplicate default registration for %+v", key))
	}
	if err := r.Register(key, codec, false); err != nil {
		panic(err)
	}
}

// Lookup resolves a dispatch key to its codec.
func (r *Registry) Lookup(key RegKey) (Codec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.entries[key]
	return c, ok
}

// DefaultRegistry is the process-wide codec registry populated by this
// package's init functions and by any addins loaded via addin.go.
var DefaultRegistry = NewRegistry()

// Default codec families (spec.md §3.3): no-data, status-only,
// session-id-only, raw-payload. Each returns an `interface{}` dynamically
// typed as the documented struct so callers can type-assert.

// NoDataCodec: empty payload in, empty payload out.
func NoDataCodec() Codec {
	return Codec{
		Decode: func(payload []byte) (interface{}, error) { return struct{}{}, nil },
		Encode: func(msg interface{}) ([]byte, error) { return nil, nil },
	}
}

// StatusOnlyMsg is the decoded form of the 1-byte status-only family.
type StatusOnlyMsg struct {
	Status Status
}

func StatusOnlyCodec() Codec {
	return Codec{
		Decode: func(payload []byte) (interface{}, error) {
			if len(payload) < 1 {
				return nil, NewParameterError("status-only payload too short")
			}
			return StatusOnlyMsg{Status: Status(payload[0])}, nil
		},
		Encode: func(msg interface{}) ([]byte, error) {
			m, ok := msg.(StatusOnlyMsg)
			if !ok {
				return nil, NewParameterError("expected StatusOnlyMsg")
			}
			return []byte{byte(m.Status)}, nil
		},
	}
}

// SessionIDOnlyMsg is the decoded form of the 4-byte-SID + 1-byte-type
// family used by several session commands.
type SessionIDOnlyMsg struct {
	SID  uint32
	Type byte
}

func SessionIDOnlyCodec() Codec {
	return Codec{
		Decode: func(payload []byte) (interface{}, error) {
			buf := NewBuffer(payload)
			sid, err := buf.PopUint(4)
			if err != nil {
				return nil, NewParameterError("session-id-only payload too short")
			}
			var typ byte
			if buf.RemainingSize() > 0 {
				t, _ := buf.PopUint(1)
				typ = byte(t)
			}
			return SessionIDOnlyMsg{SID: uint32(sid), Type: typ}, nil
		},
		Encode: func(msg interface{}) ([]byte, error) {
			m, ok := msg.(SessionIDOnlyMsg)
			if !ok {
				return nil, NewParameterError("expected SessionIDOnlyMsg")
			}
			out := make([]byte, 4)
			littleEndianPutUint(out, uint64(m.SID))
			return append(out, m.Type), nil
		},
	}
}

// RawPayloadMsg passes the payload through uninterpreted, for vendor
// messages the core has no structured decoder for yet.
type RawPayloadMsg struct {
	Payload []byte
}

func RawPayloadCodec() Codec {
	return Codec{
		Decode: func(payload []byte) (interface{}, error) {
			return RawPayloadMsg{Payload: payload}, nil
		},
		Encode: func(msg interface{}) ([]byte, error) {
			m, ok := msg.(RawPayloadMsg)
			if !ok {
				return nil, NewParameterError("expected RawPayloadMsg")
			}
			return m.Payload, nil
		},
	}
}
