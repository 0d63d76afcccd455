package uci

import (
	"fmt"
	"regexp"
)

/*
Qorvo calibration keys: a length-policy form keyed by a pair
`(length, regex_key_pattern)`, keys are dotted strings like
`ant3.ch9.ant_delay` rather than integer tags. Restored from
original_source/qorvo_cal.py.

CalKeyDef pairs a compiled regex matching a family of dotted key names
with the declared byte length every matching key carries on the wire.
*/
type CalKeyDef struct {
	Name    string
	Pattern *regexp.Regexp
	Length  int
}

// CalKeyTable is an ordered list of calibration key-family patterns,
// matched in declaration order (first match wins, as a dotted key can only
// belong to one family).
type CalKeyTable struct {
	defs []CalKeyDef
}

var CalibrationKeys = &CalKeyTable{}

func (t *CalKeyTable) Add(name, pattern string, length int) {
	t.defs = append(t.defs, CalKeyDef{Name: name, Pattern: regexp.MustCompile(pattern), Length: length})
}

// Lookup resolves a dotted calibration key to its declared length, failing
// with a parameter error when the key is unknown to any key family.
func (t *CalKeyTable) Lookup(key string) (CalKeyDef, error) {
	for _, d := range t.defs {
		if d.Pattern.MatchString(key) {
			return d, nil
		}
	}
	return CalKeyDef{}, NewParameterError(fmt.Sprintf("calibration key %q not recognized by any key family", key))
}

func init() {
	// Per-antenna, per-channel delay calibration: ant<N>.ch<N>.ant_delay.
	CalibrationKeys.Add("AntennaDelay", `^ant\d+\.ch\d+\.ant_delay$`, 2)
	// Per-antenna, per-channel RX/TX power offsets.
	CalibrationKeys.Add("RxPowerOffset", `^ant\d+\.ch\d+\.rx_power_offset$`, 1)
	CalibrationKeys.Add("TxPowerOffset", `^ant\d+\.ch\d+\.tx_power_offset$`, 1)
	// Per-antenna-pair PDoA offset/calibration curve selection.
	CalibrationKeys.Add("PdoaOffset", `^antpair\d+\.ch\d+\.pdoa_offset$`, 2)
	CalibrationKeys.Add("PdoaLut", `^antpair\d+\.ch\d+\.pdoa_lut$`, 0)
	// XTAL trim is a single global key, no per-antenna/channel suffix.
	CalibrationKeys.Add("XtalTrim", `^xtal_trim$`, 1)
}

// CalGetRspMsg is the decoded VENDOR_GET_CAL_RSP payload: a status plus the
// raw calibration value, whose expected length comes from CalibrationKeys
// (the caller supplied the key on the request and knows which one to
// expect back).
type CalGetRspMsg struct {
	Status Status
	Value  []byte
}

func decodeCalGetRsp(payload []byte) (interface{}, error) {
	buf := NewBuffer(payload)
	status, err := buf.PopUint(1)
	if err != nil {
		return nil, NewParameterError("calibration get response missing status")
	}
	msg := CalGetRspMsg{Status: Status(status)}
	if Status(status) != StatusOk {
		return msg, nil
	}
	msg.Value, _ = buf.Pop(-1)
	return msg, nil
}

// EncodeCalSetReq builds the VENDOR_SET_CAL request payload: a dotted key
// string, length-prefixed, followed by the raw value bytes (validated
// against CalibrationKeys' declared length when non-zero).
func EncodeCalSetReq(key string, value []byte) ([]byte, error) {
	def, err := CalibrationKeys.Lookup(key)
	if err != nil {
		return nil, err
	}
	if def.Length != 0 && len(value) != def.Length {
		return nil, NewParameterError(fmt.Sprintf("calibration key %q expects %d bytes, got %d", key, def.Length, len(value)))
	}
	if len(key) > 0xff {
		return nil, NewParameterError("calibration key too long to encode")
	}
	out := []byte{byte(len(key))}
	out = append(out, []byte(key)...)
	out = append(out, byte(len(value)))
	out = append(out, value...)
	return out, nil
}

// EncodeCalGetReq builds the VENDOR_GET_CAL request payload: a
// length-prefixed dotted key string.
func EncodeCalGetReq(key string) ([]byte, error) {
	if _, err := CalibrationKeys.Lookup(key); err != nil {
		return nil, err
	}
	if len(key) > 0xff {
		return nil, NewParameterError("calibration key too long to encode")
	}
	return append([]byte{byte(len(key))}, []byte(key)...), nil
}
