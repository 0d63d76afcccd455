package uci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalKeyTableLookupKnownFamilies(t *testing.T) {
	def, err := CalibrationKeys.Lookup("ant3.ch9.ant_delay")
	require.NoError(t, err)
	assert.Equal(t, "AntennaDelay", def.Name)
	assert.Equal(t, 2, def.Length)

	def, err = CalibrationKeys.Lookup("xtal_trim")
	require.NoError(t, err)
	assert.Equal(t, "XtalTrim", def.Name)
}

func TestCalKeyTableLookupUnknown(t *testing.T) {
	_, err := CalibrationKeys.Lookup("not.a.real.key")
	require.Error(t, err)
	assert.True(t, IsParameterError(err))
}

func TestEncodeCalSetReqValidatesLength(t *testing.T) {
	_, err := EncodeCalSetReq("ant3.ch9.ant_delay", []byte{0x01})
	require.Error(t, err)
	assert.True(t, IsParameterError(err))

	wire, err := EncodeCalSetReq("ant3.ch9.ant_delay", []byte{0x01, 0x02})
	require.NoError(t, err)
	assert.Equal(t, byte(len("ant3.ch9.ant_delay")), wire[0])
}

func TestEncodeCalSetReqZeroLengthFamilySkipsValidation(t *testing.T) {
	wire, err := EncodeCalSetReq("antpair0.ch9.pdoa_lut", []byte{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Contains(t, string(wire), "antpair0.ch9.pdoa_lut")
}

func TestEncodeCalGetReqUnknownKeyErrors(t *testing.T) {
	_, err := EncodeCalGetReq("bogus_key")
	require.Error(t, err)
}

func TestDecodeCalGetRspStatusOnlyWhenNotOk(t *testing.T) {
	msg, err := decodeCalGetRsp([]byte{byte(StatusRejected)})
	require.NoError(t, err)
	got := msg.(CalGetRspMsg)
	assert.Equal(t, StatusRejected, got.Status)
	assert.Empty(t, got.Value)
}

func TestDecodeCalGetRspReturnsValueOnOk(t *testing.T) {
	msg, err := decodeCalGetRsp(append([]byte{byte(StatusOk)}, 0xaa, 0xbb))
	require.NoError(t, err)
	got := msg.(CalGetRspMsg)
	assert.Equal(t, []byte{0xaa, 0xbb}, got.Value)
}
