package uci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecodeSessionStatusLiteralVector is spec.md §8.2 S4: payload
// 2A 00 00 00 02 04 decodes to session 42, state Active, reason
// SessionSuspendedDueToInbandSignal.
func TestDecodeSessionStatusLiteralVector(t *testing.T) {
	msg, err := decodeSessionStatus([]byte{0x2A, 0x00, 0x00, 0x00, 0x02, 0x04})
	require.NoError(t, err)
	st := msg.(SessionStatusMsg)
	assert.Equal(t, uint32(42), st.SID)
	assert.Equal(t, "Active", st.State.Name)
	assert.Equal(t, "SessionSuspendedDueToInbandSignal", st.Reason.Name)
}

func TestDecodeSessionStatusUnknownStateUsesSentinel(t *testing.T) {
	msg, err := decodeSessionStatus([]byte{0x01, 0x00, 0x00, 0x00, 0x77, 0x00})
	require.NoError(t, err)
	st := msg.(SessionStatusMsg)
	assert.True(t, st.State.IsUnknown())
	assert.Equal(t, uint64(0x77), st.State.Value)
}

func TestDecodeDeviceInfoWithoutVendorBlock(t *testing.T) {
	var payload []byte
	payload = append(payload, byte(StatusOk))
	payload = append(payload, le16(0x0102)...)
	payload = append(payload, le16(0x0304)...)
	payload = append(payload, le16(0x0506)...)
	payload = append(payload, le16(0x0708)...)
	payload = append(payload, 0x00) // vendor block length

	msg, err := decodeDeviceInfo(payload)
	require.NoError(t, err)
	di := msg.(DeviceInfo)
	assert.Equal(t, uint16(0x0102), di.UciVersion)
	assert.Equal(t, uint16(0x0708), di.TestVersion)
	assert.False(t, di.HasVendorBlock)
}

func TestDecodeDeviceInfoVendorBlockAndTrailingBytes(t *testing.T) {
	var payload []byte
	payload = append(payload, byte(StatusOk))
	payload = append(payload, le16(1)...)
	payload = append(payload, le16(2)...)
	payload = append(payload, le16(3)...)
	payload = append(payload, le16(4)...)
	vendor := append(le16(0x0a0b), le16(0x0c0d)...)
	payload = append(payload, byte(len(vendor)))
	payload = append(payload, vendor...)
	payload = append(payload, 0xff, 0xff) // trailing bytes: warned about, not fatal

	msg, err := decodeDeviceInfo(payload)
	require.NoError(t, err)
	di := msg.(DeviceInfo)
	assert.True(t, di.HasVendorBlock)
	assert.Equal(t, uint16(0x0a0b), di.QmfVersion)
	assert.Equal(t, uint16(0x0c0d), di.OemVersion)
}

func TestDecodeDeviceInfoNonOkStatusShortCircuits(t *testing.T) {
	msg, err := decodeDeviceInfo([]byte{byte(StatusFailed)})
	require.NoError(t, err)
	di := msg.(DeviceInfo)
	assert.Equal(t, StatusFailed, di.Status)
	assert.Zero(t, di.UciVersion)
}

func TestDecodeSessionInitRspHandlePresence(t *testing.T) {
	msg, err := decodeSessionInitRsp([]byte{byte(StatusOk)})
	require.NoError(t, err)
	assert.False(t, msg.(SessionInitRspMsg).HasHandle)

	payload := append([]byte{byte(StatusOk)}, le32(0x11223344)...)
	msg, err = decodeSessionInitRsp(payload)
	require.NoError(t, err)
	rsp := msg.(SessionInitRspMsg)
	assert.True(t, rsp.HasHandle)
	assert.Equal(t, uint32(0x11223344), rsp.SessionHandle)
}

func TestDecodeMulticastUpdateRspControlees(t *testing.T) {
	var payload []byte
	payload = append(payload, byte(StatusOk))
	payload = append(payload, 0x02)
	payload = append(payload, le16(0x0001)...)
	payload = append(payload, le32(10)...)
	payload = append(payload, byte(MulticastControleeOkMulticastListAdd))
	payload = append(payload, le16(0x0002)...)
	payload = append(payload, le32(11)...)
	payload = append(payload, byte(MulticastControleeErrorListFull))

	msg, err := decodeMulticastUpdateRsp(payload)
	require.NoError(t, err)
	rsp := msg.(MulticastUpdateRspMsg)
	require.Len(t, rsp.Controlees, 2)
	assert.Equal(t, uint16(1), rsp.Controlees[0].MAC)
	assert.Equal(t, "OkMulticastListAdd", rsp.Controlees[0].Status.Name)
	assert.Equal(t, "ErrorListFull", rsp.Controlees[1].Status.Name)
}
