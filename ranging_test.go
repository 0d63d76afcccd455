package uci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func le32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func le16(v uint16) []byte {
	return []byte{byte(v), byte(v >> 8)}
}

// TestDecodeRangingDataNtfTWR is spec.md literal scenario S5: a one-element
// TWR measurement list decodes to the documented field shape, including the
// MAC-width-dependent RFU padding (SPEC_FULL.md open question 3).
func TestDecodeRangingDataNtfTWR(t *testing.T) {
	var payload []byte
	payload = append(payload, le32(1)...)   // sequence number
	payload = append(payload, le32(42)...)  // session id
	payload = append(payload, le32(200)...) // ranging interval
	payload = append(payload, byte(RangingMeasurementTWR))
	payload = append(payload, 0x00)       // RFU
	payload = append(payload, 0x00)       // mac addressing mode: 2-byte
	payload = append(payload, 0x01)       // count

	payload = append(payload, 0x01, 0x02) // MAC, wire order
	payload = append(payload, byte(StatusOk))
	payload = append(payload, 0x00)          // nlos
	payload = append(payload, le16(100)...)  // distance cm
	payload = append(payload, 0x00, 0x00)    // aoa azimuth
	payload = append(payload, 0x00)          // aoa azimuth fom
	payload = append(payload, 0x00, 0x00)    // aoa elevation
	payload = append(payload, 0x00)          // aoa elevation fom
	payload = append(payload, 0x00, 0x00)    // dest aoa azimuth
	payload = append(payload, 0x00)          // dest aoa azimuth fom
	payload = append(payload, 0x00, 0x00)    // dest aoa elevation
	payload = append(payload, 0x00)          // dest aoa elevation fom
	payload = append(payload, 0x00)          // slot index
	payload = append(payload, 0x00)          // rssi
	payload = append(payload, make([]byte, 11)...) // RFU, 2-byte MAC width

	msg, err := decodeRangingDataNtf(payload)
	require.NoError(t, err)
	ntf := msg.(RangingDataNotification)
	assert.Equal(t, uint32(1), ntf.SequenceNumber)
	assert.Equal(t, uint32(42), ntf.SessionID)
	assert.Equal(t, uint32(200), ntf.CurrentRangingInterval)
	require.Len(t, ntf.TWR, 1)
	assert.Equal(t, []byte{0x02, 0x01}, ntf.TWR[0].MAC)
	assert.Equal(t, StatusOk, ntf.TWR[0].Status)
	assert.Equal(t, uint16(100), ntf.TWR[0].DistanceCM)
}

// TestQ87AzimuthLiteralVector is the AoA half of spec.md §8.2 S5: a signed
// Q8.7 azimuth with raw bytes 00 40 reads as exactly 128.0 degrees.
func TestQ87AzimuthLiteralVector(t *testing.T) {
	v, err := popQ87Signed(NewBuffer([]byte{0x00, 0x40}))
	require.NoError(t, err)
	assert.Equal(t, 128.0, v)
}

func TestQ71RSSIIsNegated(t *testing.T) {
	// Raw 0xA0 = 160 in Q7.1 = 80.0, reported as -80.0 dBm.
	v, err := popQ71UnsignedNegated(NewBuffer([]byte{0xA0}))
	require.NoError(t, err)
	assert.Equal(t, -80.0, v)
}

func TestDecodeRangingDataNtfTWR8ByteMAC(t *testing.T) {
	var payload []byte
	payload = append(payload, le32(1)...)
	payload = append(payload, le32(42)...)
	payload = append(payload, le32(200)...)
	payload = append(payload, byte(RangingMeasurementTWR))
	payload = append(payload, 0x00)
	payload = append(payload, 0x01) // mac addressing mode: 8-byte
	payload = append(payload, 0x01) // count

	payload = append(payload, make([]byte, 8)...) // 8-byte MAC
	payload = append(payload, byte(StatusOk))
	payload = append(payload, 0x00)
	payload = append(payload, le16(50)...)
	payload = append(payload, 0x00, 0x00, 0x00)
	payload = append(payload, 0x00, 0x00, 0x00)
	payload = append(payload, 0x00, 0x00, 0x00)
	payload = append(payload, 0x00, 0x00, 0x00)
	payload = append(payload, 0x00)
	payload = append(payload, 0x00)
	payload = append(payload, make([]byte, 5)...) // RFU, 8-byte MAC width

	msg, err := decodeRangingDataNtf(payload)
	require.NoError(t, err)
	ntf := msg.(RangingDataNotification)
	require.Len(t, ntf.TWR, 1)
	assert.Len(t, ntf.TWR[0].MAC, 8)
	assert.Equal(t, uint16(50), ntf.TWR[0].DistanceCM)
}

func TestDecodeRangingDataNtfTruncatedStopsEarly(t *testing.T) {
	var payload []byte
	payload = append(payload, le32(1)...)
	payload = append(payload, le32(42)...)
	payload = append(payload, le32(200)...)
	payload = append(payload, byte(RangingMeasurementTWR))
	payload = append(payload, 0x00)
	payload = append(payload, 0x00)
	payload = append(payload, 0x02) // claims 2 measurements, has 0
	msg, err := decodeRangingDataNtf(payload)
	require.NoError(t, err)
	ntf := msg.(RangingDataNotification)
	assert.Empty(t, ntf.TWR)
}

func TestDecodeRangingDataNtfOWRAoA(t *testing.T) {
	var payload []byte
	payload = append(payload, le32(1)...)
	payload = append(payload, le32(2)...)
	payload = append(payload, le32(3)...)
	payload = append(payload, byte(RangingMeasurementOWRAoA))
	payload = append(payload, 0x00)
	payload = append(payload, 0x00)
	payload = append(payload, 0x01)

	payload = append(payload, 0xaa, 0xbb) // MAC
	payload = append(payload, byte(StatusOk))
	payload = append(payload, 0x00)        // nlos
	payload = append(payload, 0x05)        // frame seq
	payload = append(payload, le16(7)...)  // block index
	payload = append(payload, 0x00, 0x00)  // az
	payload = append(payload, 0x00)        // az fom
	payload = append(payload, 0x00, 0x00)  // el
	payload = append(payload, 0x00)        // el fom

	msg, err := decodeRangingDataNtf(payload)
	require.NoError(t, err)
	ntf := msg.(RangingDataNotification)
	require.Len(t, ntf.OWRAoA, 1)
	assert.Equal(t, []byte{0xbb, 0xaa}, ntf.OWRAoA[0].MAC)
	assert.Equal(t, uint16(7), ntf.OWRAoA[0].BlockIndex)
}

func TestDecodeOWRUlTdoaDeviceIDTxTimeConditional(t *testing.T) {
	buf := func(msgCtrl byte, withExtra bool) []byte {
		var b []byte
		b = append(b, 0x01, 0x02)     // MAC
		b = append(b, byte(StatusOk)) // status
		b = append(b, msgCtrl)        // message control
		b = append(b, 0x00)           // frame type
		b = append(b, 0x00)           // nlos
		b = append(b, 0x00, 0x00)     // az
		b = append(b, 0x00)           // az fom
		b = append(b, 0x00, 0x00)     // el
		b = append(b, 0x00)           // el fom
		b = append(b, le16(9)...)     // frame number
		b = append(b, make([]byte, 5)...) // 40-bit rx time
		if withExtra {
			b = append(b, le16(0xabcd)...)    // device id
			b = append(b, make([]byte, 8)...) // tx time
		}
		return b
	}

	m, err := decodeOWRUlTdoaMeasurement(NewBuffer(buf(0x00, false)))
	require.NoError(t, err)
	assert.False(t, m.DeviceIDKnown)
	assert.False(t, m.TxTimeKnown)

	m, err = decodeOWRUlTdoaMeasurement(NewBuffer(buf(0x02, true)))
	require.NoError(t, err)
	assert.True(t, m.DeviceIDKnown)
	assert.Equal(t, uint16(0xabcd), m.DeviceID)
	assert.True(t, m.TxTimeKnown)
}

func TestDecodeRangingDataNtfUnknownTypeStopsList(t *testing.T) {
	var payload []byte
	payload = append(payload, le32(1)...)
	payload = append(payload, le32(2)...)
	payload = append(payload, le32(3)...)
	payload = append(payload, 0x7f) // unknown measurement type
	payload = append(payload, 0x00)
	payload = append(payload, 0x00)
	payload = append(payload, 0x03)
	msg, err := decodeRangingDataNtf(payload)
	require.NoError(t, err)
	ntf := msg.(RangingDataNotification)
	assert.Empty(t, ntf.TWR)
	assert.Empty(t, ntf.OWRAoA)
}
