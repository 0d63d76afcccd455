package uci

import (
	"fmt"
	"sync"
	"time"
)

// DefaultResponseTimeout is the caller-thread block time on Command before
// it fails with TimeoutError (spec.md §5).
const DefaultResponseTimeout = 4 * time.Second

// NotificationHandler receives a decoded notification message. It runs
// inline in the reader thread (spec.md §5) — a handler that blocks halts
// the entire notification stream for this Client.
type NotificationHandler func(gid, oid byte, msg interface{})

// DataHandler receives a raw data-packet payload for one SID/DPF.
type DataHandler func(sid uint32, dpf DPF, payload []byte)

type notifKey struct {
	gid, oid byte
}

type responsePacket struct {
	gid, oid byte
	payload  []byte
	err      error
}

/*
Client is the C5 request/response + notification state machine (spec.md
§4.5), structurally modeled on the teacher's Client (client.go): one
transport, a goroutine reading off it, and a blocking call/response
protocol layered on top. Where the teacher multiplexes I/S/U IEC104 frames
over a TCP net.Conn, Client multiplexes Response/Notification/DataPacket
UCI frames over any registered Transport.

Concurrency contract (spec.md §4.5.1): at most one in-flight command per
Client; concurrent Command calls are undefined. Use one Client per device.
*/
type Client struct {
	opts      ClientOption
	transport Transport
	decoder   *PacketDecoder

	respCh    chan responsePacket
	closeCh   chan struct{}
	closeOnce sync.Once

	notifMu       sync.RWMutex
	notifHandlers map[notifKey]NotificationHandler
	defaultNotif  NotificationHandler

	dataMu          sync.RWMutex
	dataHandlers    map[DPF]DataHandler
	dataHandlersSID map[DPF]map[uint32]DataHandler
	defaultData     DataHandler

	partialMu sync.Mutex
	partial   *Packet

	sessionMu     sync.RWMutex
	sessionStates map[uint32]SessionStatusMsg
}

// Connect opens transport at url and starts the Client's reader pipeline.
// url is resolved against the transport registry (spec.md §4.4/§6.2).
func Connect(url string, opts ...func(*ClientOption)) (*Client, error) {
	o := DefaultClientOption()
	for _, f := range opts {
		f(&o)
	}
	if err := LoadAddins(o.Addins); err != nil {
		return nil, err
	}
	url = applyBaudRateOption(url, o)
	c := &Client{
		opts:            o,
		decoder:         NewPacketDecoder(),
		respCh:          make(chan responsePacket, 1),
		closeCh:         make(chan struct{}),
		notifHandlers:   make(map[notifKey]NotificationHandler),
		dataHandlers:    make(map[DPF]DataHandler),
		dataHandlersSID: make(map[DPF]map[uint32]DataHandler),
		sessionStates:   make(map[uint32]SessionStatusMsg),
	}
	t, err := OpenTransport(url, c.handleBytes)
	if err != nil {
		return nil, err
	}
	c.transport = t
	return c, nil
}

// applyBaudRateOption folds a non-default WithBaudRate into url as the
// "@<rate>" suffix parseBaudSuffix understands, so it reaches openUART
// through the url-only OpenFunc signature. Left untouched for transports
// other than UART (hasScheme "dev", abstract test schemes, etc.) and for
// urls that already carry their own suffix.
func applyBaudRateOption(url string, o ClientOption) string {
	if o.BaudRate == DefaultBaudRate || !uartCanHandle(url) {
		return url
	}
	if _, _, ok := parseBaudSuffix(url); ok {
		return url
	}
	return fmt.Sprintf("%s@%d", url, o.BaudRate)
}

// Close is idempotent: it stops the reader, releases the transport, and
// fails any command outstanding at close time with TimeoutError
// (spec.md §5).
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closeCh)
		if c.transport != nil {
			err = c.transport.Close()
		}
	})
	return err
}

// RegisterNotificationHandler installs the handler invoked for
// notifications matching (gid, oid), overriding the ("default","default")
// fallback (spec.md §4.5).
func (c *Client) RegisterNotificationHandler(gid, oid byte, h NotificationHandler) {
	c.notifMu.Lock()
	defer c.notifMu.Unlock()
	c.notifHandlers[notifKey{gid, oid}] = h
}

// SetDefaultNotificationHandler installs the fallback invoked for
// notifications with no specific (gid, oid) registration.
func (c *Client) SetDefaultNotificationHandler(h NotificationHandler) {
	c.notifMu.Lock()
	defer c.notifMu.Unlock()
	c.defaultNotif = h
}

// RegisterDataHandler installs the handler for data packets of the given
// format, optionally scoped to one session (spec.md §4.5). A zero sid with
// scoped=false registers the format-wide default.
func (c *Client) RegisterDataHandler(dpf DPF, sid uint32, scoped bool, h DataHandler) {
	c.dataMu.Lock()
	defer c.dataMu.Unlock()
	if !scoped {
		c.dataHandlers[dpf] = h
		return
	}
	if c.dataHandlersSID[dpf] == nil {
		c.dataHandlersSID[dpf] = make(map[uint32]DataHandler)
	}
	c.dataHandlersSID[dpf][sid] = h
}

// UnregisterDataHandlersForSession removes every registered data handler
// for sid across all DPFs. Resolves spec.md §9 open question 1
// ("session_deinit ... any registered data handler for the SID is
// removed on deinit") scoped by SID rather than by the source's
// misspelled-attribute accident.
func (c *Client) UnregisterDataHandlersForSession(sid uint32) {
	c.dataMu.Lock()
	defer c.dataMu.Unlock()
	for dpf, bySID := range c.dataHandlersSID {
		delete(bySID, sid)
		if len(bySID) == 0 {
			delete(c.dataHandlersSID, dpf)
		}
	}
}

// LastSessionState returns the most recently observed state for sid. The
// Client never mutates session state itself — it only records what the
// radio has pushed via SESSION_STATUS_NTF (spec.md §3.5).
func (c *Client) LastSessionState(sid uint32) (SessionStatusMsg, bool) {
	c.sessionMu.RLock()
	defer c.sessionMu.RUnlock()
	s, ok := c.sessionStates[sid]
	return s, ok
}

func (c *Client) handleBytes(data []byte) {
	for _, pkt := range c.decoder.Feed(data) {
		c.intake(pkt)
	}
}

// intake implements spec.md §4.5.2's packet reassembly and dispatch, run
// inline in the reader thread.
func (c *Client) intake(pkt Packet) {
	c.partialMu.Lock()
	if c.partial != nil {
		ph, nh := c.partial.Header, pkt.Header
		if ph.MT != nh.MT || ph.GID != nh.GID || ph.OID != nh.OID {
			c.partial = nil
			c.partialMu.Unlock()
			log().WithField("have", fmt.Sprintf("%+v", ph)).WithField("got", fmt.Sprintf("%+v", nh)).
				Warn("bad packet sequence: fragment header mismatch mid-message, discarding partial message")
			c.failPendingCommand(NewProtocolError("bad packet sequence"))
			return
		}
		c.partial.Payload = append(c.partial.Payload, pkt.Payload...)
	} else {
		cp := Packet{Header: pkt.Header, Payload: append([]byte{}, pkt.Payload...)}
		c.partial = &cp
	}
	if pkt.Header.PBF != PBFFinal {
		c.partialMu.Unlock()
		return
	}
	msg := *c.partial
	c.partial = nil
	c.partialMu.Unlock()
	c.dispatch(msg)
}

func (c *Client) failPendingCommand(err error) {
	select {
	case c.respCh <- responsePacket{err: err}:
	default:
	}
}

func (c *Client) dispatch(pkt Packet) {
	switch pkt.Header.MT {
	case MTResponse:
		select {
		case <-c.respCh:
			log().Warn("response arrived with no outstanding command; replacing previously queued response")
		default:
		}
		c.respCh <- responsePacket{gid: pkt.Header.GID, oid: pkt.Header.OID, payload: pkt.Payload}
	case MTNotification:
		c.dispatchNotification(pkt)
	case MTData:
		c.dispatchData(pkt)
	default:
		log().WithField("mt", pkt.Header.MT).Warn("intake received packet of unexpected message type")
	}
}

func (c *Client) dispatchNotification(pkt Packet) {
	c.notifMu.RLock()
	h, ok := c.notifHandlers[notifKey{pkt.Header.GID, pkt.Header.OID}]
	if !ok {
		h = c.defaultNotif
	}
	c.notifMu.RUnlock()

	if pkt.Header.GID == byte(GidSessionConfig) && pkt.Header.OID == byte(OidSessionStatusNtf) {
		if msg, err := decodeSessionStatus(pkt.Payload); err == nil {
			c.sessionMu.Lock()
			c.sessionStates[msg.(SessionStatusMsg).SID] = msg.(SessionStatusMsg)
			c.sessionMu.Unlock()
		}
	}

	msg, decodeErr := c.decode(MTNotification, pkt.Header.GID, pkt.Header.OID, pkt.Payload)
	if decodeErr != nil {
		log().WithField("gid", pkt.Header.GID).WithField("oid", pkt.Header.OID).WithField("err", decodeErr).
			Warn("failed to decode notification payload")
		return
	}
	if h == nil {
		log().WithField("gid", pkt.Header.GID).WithField("oid", pkt.Header.OID).Info("no handler registered for notification")
		return
	}
	c.runHandlerSafely(pkt.Header.GID, pkt.Header.OID, func() { h(pkt.Header.GID, pkt.Header.OID, msg) })
}

func (c *Client) runHandlerSafely(gid, oid byte, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log().WithField("gid", gid).WithField("oid", oid).WithField("panic", r).
				Error("notification/data handler panicked, continuing")
		}
	}()
	fn()
}

func (c *Client) dispatchData(pkt Packet) {
	dpf := DPF(pkt.Header.GID & 0x0f) // data packets carry DPF in the low nibble of byte 0 (spec.md §4.5.2/§3.1)
	var sid uint32
	if len(pkt.Payload) >= 4 {
		sid = uint32(pkt.Payload[0]) | uint32(pkt.Payload[1])<<8 | uint32(pkt.Payload[2])<<16 | uint32(pkt.Payload[3])<<24
	}
	c.dataMu.RLock()
	h, ok := c.dataHandlersSID[dpf][sid]
	if !ok {
		h = c.dataHandlers[dpf]
	}
	if h == nil {
		h = c.defaultData
	}
	c.dataMu.RUnlock()
	if h == nil {
		log().WithField("dpf", dpf).Info("no data handler registered")
		return
	}
	c.runHandlerSafely(byte(dpf), 0, func() { h(sid, dpf, pkt.Payload) })
}

func (c *Client) decode(mt MT, gid, oid byte, payload []byte) (interface{}, error) {
	codec, ok := DefaultRegistry.Lookup(RegKey{MT: mt, GID: gid, OID: oid})
	if !ok || codec.Decode == nil {
		return RawPayloadMsg{Payload: payload}, nil
	}
	return codec.Decode(payload)
}

// Command implements spec.md §4.5.1's command/response protocol with the
// Client's configured default response timeout.
func (c *Client) Command(gid, oid byte, payload []byte) (interface{}, error) {
	return c.CommandTimeout(gid, oid, payload, c.opts.ResponseTimeout)
}

// CommandTimeout is Command with an explicit timeout override.
func (c *Client) CommandTimeout(gid, oid byte, payload []byte, timeout time.Duration) (interface{}, error) {
	packets, err := EncodeCommand(gid, oid, payload)
	if err != nil {
		return nil, err
	}
	for _, pkt := range packets {
		if err := c.transport.Write(pkt); err != nil {
			return nil, NewTransportError("write", err)
		}
	}
	select {
	case resp := <-c.respCh:
		if resp.err != nil {
			return nil, resp.err
		}
		if resp.gid != gid || resp.oid != oid {
			return nil, NewProtocolError(fmt.Sprintf(
				"response (gid=%d,oid=%d) does not match command (gid=%d,oid=%d)", resp.gid, resp.oid, gid, oid))
		}
		return c.decode(MTResponse, gid, oid, resp.payload)
	case <-time.After(timeout):
		return nil, NewTimeoutError()
	case <-c.closeCh:
		return nil, NewTimeoutError()
	}
}
