package uci

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport is a test-only Transport registered under the "clienttest:"
// scheme, recording writes and letting the test push bytes back in as if
// they had arrived off the wire.
type fakeTransport struct {
	writes chan []byte
	onData func([]byte)
	closed chan struct{}
}

func (f *fakeTransport) Write(data []byte) error {
	cp := append([]byte{}, data...)
	select {
	case f.writes <- cp:
	default:
	}
	return nil
}

func (f *fakeTransport) Close() error {
	close(f.closed)
	return nil
}

var fakeTransportCh = make(chan *fakeTransport, 8)

func init() {
	RegisterTransport("clienttest",
		func(url string) bool { return hasScheme(url, "clienttest") },
		func(url string, onData func([]byte)) (Transport, error) {
			ft := &fakeTransport{writes: make(chan []byte, 16), onData: onData, closed: make(chan struct{})}
			fakeTransportCh <- ft
			return ft, nil
		})
}

func newTestClient(t *testing.T, opts ...func(*ClientOption)) (*Client, *fakeTransport) {
	t.Helper()
	c, err := Connect("clienttest:fake", opts...)
	require.NoError(t, err)
	var ft *fakeTransport
	select {
	case ft = <-fakeTransportCh:
	default:
		t.Fatal("fake transport was not opened by Connect")
	}
	t.Cleanup(func() { c.Close() })
	return c, ft
}

// TestCommandResponseCorrelation exercises the request/response protocol
// against a status-only response codec.
func TestCommandResponseCorrelation(t *testing.T) {
	c, ft := newTestClient(t)

	done := make(chan struct{})
	var result interface{}
	var cmdErr error
	go func() {
		result, cmdErr = c.Command(byte(GidUciCore), byte(OidCoreDeviceReset), nil)
		close(done)
	}()

	select {
	case <-ft.writes:
	case <-time.After(time.Second):
		t.Fatal("command never wrote to transport")
	}

	resp, err := EncodePacket(MTResponse, PBFFinal, byte(GidUciCore), byte(OidCoreDeviceReset), []byte{byte(StatusOk)})
	require.NoError(t, err)
	ft.onData(resp)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("command never resolved")
	}
	require.NoError(t, cmdErr)
	assert.Equal(t, StatusOk, result.(StatusOnlyMsg).Status)
}

// TestCommandFragmentedReassembly checks that a response split across
// multiple packets is reassembled before decoding.
func TestCommandFragmentedReassembly(t *testing.T) {
	c, ft := newTestClient(t)

	done := make(chan struct{})
	var result interface{}
	var cmdErr error
	go func() {
		result, cmdErr = c.Command(byte(GidUciCore), byte(OidCoreGetConfig), nil)
		close(done)
	}()

	select {
	case <-ft.writes:
	case <-time.After(time.Second):
		t.Fatal("command never wrote to transport")
	}

	payload := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	p1, err := EncodePacket(MTResponse, PBFNotFinal, byte(GidUciCore), byte(OidCoreGetConfig), payload[:2])
	require.NoError(t, err)
	p2, err := EncodePacket(MTResponse, PBFFinal, byte(GidUciCore), byte(OidCoreGetConfig), payload[2:])
	require.NoError(t, err)
	ft.onData(p1)
	ft.onData(p2)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("command never resolved")
	}
	require.NoError(t, cmdErr)
	assert.Equal(t, payload, result.(RawPayloadMsg).Payload)
}

// TestCommandTimeout checks that no response arriving before the
// configured deadline fails the call with a timeout error.
func TestCommandTimeout(t *testing.T) {
	c, ft := newTestClient(t, WithResponseTimeout(20*time.Millisecond))
	_ = ft

	_, err := c.Command(byte(GidUciCore), byte(OidCoreDeviceReset), nil)
	require.Error(t, err)
	assert.True(t, IsTimeoutError(err))
}

// TestCommandResponseMismatchFailsWithProtocolError is spec.md §8.1
// property 8: a response whose (gid, oid) differs from the outstanding
// command's fails that command with a protocol error instead of silently
// satisfying it.
func TestCommandResponseMismatchFailsWithProtocolError(t *testing.T) {
	c, ft := newTestClient(t)

	done := make(chan struct{})
	var cmdErr error
	go func() {
		_, cmdErr = c.Command(0x01, 0x01, nil)
		close(done)
	}()

	select {
	case <-ft.writes:
	case <-time.After(time.Second):
		t.Fatal("command never wrote to transport")
	}

	resp, err := EncodePacket(MTResponse, PBFFinal, 0x02, 0x02, []byte{byte(StatusOk)})
	require.NoError(t, err)
	ft.onData(resp)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("command never resolved")
	}
	require.Error(t, cmdErr)
	assert.True(t, IsProtocolError(cmdErr))
}

// TestCommandAcceptedAfterTimeout is spec.md §8.2 S6: a timed-out command
// leaves no sticky failure state, and the next command can succeed.
func TestCommandAcceptedAfterTimeout(t *testing.T) {
	c, ft := newTestClient(t, WithResponseTimeout(20*time.Millisecond))

	_, err := c.Command(byte(GidUciCore), byte(OidCoreDeviceReset), nil)
	require.Error(t, err)
	require.True(t, IsTimeoutError(err))

	// Drain the write from the timed-out command.
	select {
	case <-ft.writes:
	case <-time.After(time.Second):
		t.Fatal("timed-out command never wrote to transport")
	}

	done := make(chan struct{})
	var result interface{}
	go func() {
		result, err = c.CommandTimeout(byte(GidUciCore), byte(OidCoreDeviceReset), nil, time.Second)
		close(done)
	}()
	select {
	case <-ft.writes:
	case <-time.After(time.Second):
		t.Fatal("second command never wrote to transport")
	}
	resp, eerr := EncodePacket(MTResponse, PBFFinal, byte(GidUciCore), byte(OidCoreDeviceReset), []byte{byte(StatusOk)})
	require.NoError(t, eerr)
	ft.onData(resp)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second command never resolved")
	}
	require.NoError(t, err)
	assert.Equal(t, StatusOk, result.(StatusOnlyMsg).Status)
}

// TestNotificationDispatchAndSessionState checks that a SESSION_STATUS_NTF
// both invokes the registered handler and updates the client's tracked
// session state.
func TestNotificationDispatchAndSessionState(t *testing.T) {
	c, ft := newTestClient(t)

	received := make(chan SessionStatusMsg, 1)
	c.RegisterNotificationHandler(byte(GidSessionConfig), byte(OidSessionStatusNtf), func(gid, oid byte, msg interface{}) {
		received <- msg.(SessionStatusMsg)
	})

	sid := uint32(7)
	payload := make([]byte, 6)
	littleEndianPutUint(payload[:4], uint64(sid))
	payload[4] = 0x01 // SessionStateDeInit
	payload[5] = 0x00

	pkt, err := EncodePacket(MTNotification, PBFFinal, byte(GidSessionConfig), byte(OidSessionStatusNtf), payload)
	require.NoError(t, err)
	ft.onData(pkt)

	select {
	case msg := <-received:
		assert.Equal(t, sid, msg.SID)
	case <-time.After(time.Second):
		t.Fatal("notification handler never invoked")
	}

	state, ok := c.LastSessionState(sid)
	require.True(t, ok)
	assert.Equal(t, sid, state.SID)
}

func TestDefaultNotificationHandlerFallback(t *testing.T) {
	c, ft := newTestClient(t)

	received := make(chan byte, 1)
	c.SetDefaultNotificationHandler(func(gid, oid byte, msg interface{}) {
		received <- oid
	})

	pkt, err := EncodePacket(MTNotification, PBFFinal, byte(GidUciCore), byte(OidCoreGenericErrorNtf), []byte{byte(StatusFailed)})
	require.NoError(t, err)
	ft.onData(pkt)

	select {
	case oid := <-received:
		assert.Equal(t, byte(OidCoreGenericErrorNtf), oid)
	case <-time.After(time.Second):
		t.Fatal("default notification handler never invoked")
	}
}

func TestApplyBaudRateOptionAppendsSuffixForUart(t *testing.T) {
	o := DefaultClientOption()
	WithBaudRate(921600)(&o)

	assert.Equal(t, "uart:/dev/ttyACM0@921600", applyBaudRateOption("uart:/dev/ttyACM0", o))
}

func TestApplyBaudRateOptionLeavesExistingSuffixAlone(t *testing.T) {
	o := DefaultClientOption()
	WithBaudRate(921600)(&o)

	assert.Equal(t, "uart:/dev/ttyACM0@57600", applyBaudRateOption("uart:/dev/ttyACM0@57600", o))
}

func TestApplyBaudRateOptionIgnoresNonUartSchemes(t *testing.T) {
	o := DefaultClientOption()
	WithBaudRate(921600)(&o)

	assert.Equal(t, "dev:/dev/uci0", applyBaudRateOption("dev:/dev/uci0", o))
}

func TestApplyBaudRateOptionNoopAtDefault(t *testing.T) {
	o := DefaultClientOption()
	assert.Equal(t, "uart:/dev/ttyACM0", applyBaudRateOption("uart:/dev/ttyACM0", o))
}

func TestUnregisterDataHandlersForSession(t *testing.T) {
	c, _ := newTestClient(t)

	c.RegisterDataHandler(DPFRangingData, 5, true, func(sid uint32, dpf DPF, payload []byte) {})
	c.RegisterDataHandler(DPFRangingData, 6, true, func(sid uint32, dpf DPF, payload []byte) {})
	c.UnregisterDataHandlersForSession(5)

	c.dataMu.RLock()
	_, stillHasSix := c.dataHandlersSID[DPFRangingData][6]
	_, hasFive := c.dataHandlersSID[DPFRangingData][5]
	c.dataMu.RUnlock()
	assert.True(t, stillHasSix)
	assert.False(t, hasFive)
}
