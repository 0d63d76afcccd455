package uci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDiagnosticsNtfFrameStatus(t *testing.T) {
	var payload []byte
	payload = append(payload, le32(7)...) // session id
	payload = append(payload, 0x01)       // report count
	payload = append(payload, 0x05, 0x00, 0x02) // msg_id, action, antenna_set
	payload = append(payload, 0x01)       // field count

	field := []byte{byte(DiagFieldFrameStatus)}
	field = append(field, le16(4)...) // length
	field = append(field, le32(0xdeadbeef)...)
	payload = append(payload, field...)

	msg, err := decodeDiagnosticsNtf(payload)
	require.NoError(t, err)
	result := msg.(struct {
		SessionID uint32
		Reports   []DiagnosticReport
	})
	assert.Equal(t, uint32(7), result.SessionID)
	require.Len(t, result.Reports, 1)
	require.Len(t, result.Reports[0].Fields, 1)
	f := result.Reports[0].Fields[0]
	assert.True(t, f.Known)
	require.NotNil(t, f.FrameStatus)
	assert.Equal(t, uint32(0xdeadbeef), f.FrameStatus.Mask)
}

// TestDecodeDiagnosticsNtfUnknownFieldSkippedByLength exercises spec.md
// §4.7's "unknown field types log and skip exactly length bytes" rule.
func TestDecodeDiagnosticsNtfUnknownFieldSkippedByLength(t *testing.T) {
	var payload []byte
	payload = append(payload, le32(1)...)
	payload = append(payload, 0x01)
	payload = append(payload, 0x00, 0x00, 0x00)
	payload = append(payload, 0x02) // two fields

	unknown := []byte{0x7f}
	unknown = append(unknown, le16(3)...)
	unknown = append(unknown, 0xaa, 0xbb, 0xcc)
	payload = append(payload, unknown...)

	known := []byte{byte(DiagFieldCfo)}
	known = append(known, le16(4)...)
	known = append(known, 0x00, 0x00, 0x00, 0x00)
	payload = append(payload, known...)

	msg, err := decodeDiagnosticsNtf(payload)
	require.NoError(t, err)
	result := msg.(struct {
		SessionID uint32
		Reports   []DiagnosticReport
	})
	require.Len(t, result.Reports[0].Fields, 2)
	assert.False(t, result.Reports[0].Fields[0].Known)
	assert.Equal(t, []byte{0xaa, 0xbb, 0xcc}, result.Reports[0].Fields[0].Raw)
	assert.True(t, result.Reports[0].Fields[1].Known)
}

func TestDecodeDiagCirSamples(t *testing.T) {
	var raw []byte
	raw = append(raw, 0x01, 0x00, 0x02) // segment_type, primary, receiver_id
	raw = append(raw, byte(int16(5)), byte(int16(5)>>8)) // path1_relative_idx
	raw = append(raw, le16(2)...)        // n_samples
	raw = append(raw, 0x02)              // sample_size (1 byte I + 1 byte Q)
	raw = append(raw, 0x01, 0xff)        // sample 0: I=1 Q=-1
	raw = append(raw, 0x02, 0xfe)        // sample 1: I=2 Q=-2

	c, ok := decodeDiagCir(NewBuffer(raw))
	require.True(t, ok)
	assert.Equal(t, uint16(2), c.NSamples)
	require.Len(t, c.SamplesI, 2)
	assert.Equal(t, int32(1), c.SamplesI[0])
	assert.Equal(t, int32(-1), c.SamplesQ[0])
	assert.Equal(t, int32(2), c.SamplesI[1])
	assert.Equal(t, int32(-2), c.SamplesQ[1])
}

func TestDecodeDiagnosticsNtfTruncatedReportStopsEarly(t *testing.T) {
	var payload []byte
	payload = append(payload, le32(1)...)
	payload = append(payload, 0x02) // claims 2 reports, has 0
	msg, err := decodeDiagnosticsNtf(payload)
	require.NoError(t, err)
	result := msg.(struct {
		SessionID uint32
		Reports   []DiagnosticReport
	})
	assert.Empty(t, result.Reports)
}
