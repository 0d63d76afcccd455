package uci

import "fmt"

/*
RANGE_DIAGNOSTICS_NTF decoders (spec.md §4.7), grounded on
original_source/new_python_script/uci/qorvo_msg.py's DiagField family
(SPEC_FULL.md §153 supplemented features #5).

The notification carries a list of reports, each with a fixed 1+1+1+1
header (message_id, action, antenna_set, field_count) followed by
field_count fields. Each field is a 1-byte type, 2-byte length, then
`length` bytes whose shape depends on the type. Unknown field types are
skipped by their declared length without failing, per spec.md §4.7's
"Unknown field types log and skip exactly length bytes".
*/

type DiagFieldType byte

const (
	DiagFieldFrameStatus   DiagFieldType = 0x00
	DiagFieldAoa           DiagFieldType = 0x01
	DiagFieldCfo           DiagFieldType = 0x02
	DiagFieldSegmentMetrics DiagFieldType = 0x03
	DiagFieldCir           DiagFieldType = 0x04
)

// DiagnosticReport is one report inside RANGE_DIAGNOSTICS_NTF.
type DiagnosticReport struct {
	MessageID  byte
	Action     byte
	AntennaSet byte
	Fields     []DiagField
}

// DiagField is one decoded diagnostic field. Exactly one of the typed
// payload fields is populated, selected by Type; Raw holds the
// undecoded bytes for unknown field types.
type DiagField struct {
	Type   DiagFieldType
	Length int
	Known  bool

	FrameStatus *DiagFrameStatus
	Aoa         *DiagAoa
	Cfo         *DiagCfo
	Segment     *DiagSegmentMetrics
	Cir         *DiagCir
	Raw         []byte
}

// DiagFrameStatus is a bitfield (spec.md §4.7); individual flag meanings
// are vendor-defined per message_id, so the raw mask is preserved.
type DiagFrameStatus struct {
	Mask uint32
}

// DiagAoaAxis selects which physical axis an AoA/PDoA/TDoA field reports.
type DiagAoaAxis byte

const (
	DiagAoaAxisAzimuth   DiagAoaAxis = 0
	DiagAoaAxisElevation DiagAoaAxis = 1
)

// DiagAoa is a per-axis Q4.11 TDoA/PDoA/AoA field with figure-of-merit.
type DiagAoa struct {
	Axis DiagAoaAxis
	TDoA float64
	PDoA float64
	AoA  float64
	FOM  byte
}

// cfoScaleToPPM rescales a Q5.26 ratio to parts-per-million, ground truth
// qorvo_msg.py's CFO field constant.
const cfoScaleToPPM = 1e6

// DiagCfo is a Q5.26 ratio rescaled to ppm (spec.md §4.7).
type DiagCfo struct {
	PPM float64
}

// DiagSegmentMetrics is the 17-byte rsl/path1/peak struct (spec.md §4.7).
type DiagSegmentMetrics struct {
	RslDBm      float64
	Path1DBm    float64
	Path1Index  uint16
	Path1SNR    byte
	PeakDBm     float64
	PeakIndex   uint16
	PeakTimeNs  uint32
}

// DiagCir is the variable-length channel impulse response field
// (spec.md §4.7): segment_type, primary, receiver_id, path1_relative_idx,
// sample count/size, and signed I/Q sample pairs.
type DiagCir struct {
	SegmentType      byte
	Primary          byte
	ReceiverID       byte
	Path1RelativeIdx int16
	NSamples         uint16
	SampleSize       byte
	SamplesI         []int32
	SamplesQ         []int32
}

func decodeDiagnosticsNtf(payload []byte) (interface{}, error) {
	buf := NewBuffer(payload)
	sid, err := buf.PopUint(4)
	if err != nil {
		return nil, NewParameterError("diagnostics ntf missing session id")
	}
	count, err := buf.PopUint(1)
	if err != nil {
		return nil, NewParameterError("diagnostics ntf missing report count")
	}
	reports := make([]DiagnosticReport, 0, count)
	for i := uint64(0); i < count; i++ {
		r, ok := decodeOneDiagReport(buf)
		if !ok {
			log().WithField("index", i).Warn("truncated diagnostic report, stopping list early")
			break
		}
		reports = append(reports, r)
	}
	return struct {
		SessionID uint32
		Reports   []DiagnosticReport
	}{SessionID: uint32(sid), Reports: reports}, nil
}

func decodeOneDiagReport(buf *Buffer) (DiagnosticReport, bool) {
	msgID, err := buf.PopUint(1)
	if err != nil {
		return DiagnosticReport{}, false
	}
	action, err := buf.PopUint(1)
	if err != nil {
		return DiagnosticReport{}, false
	}
	antennaSet, err := buf.PopUint(1)
	if err != nil {
		return DiagnosticReport{}, false
	}
	fieldCount, err := buf.PopUint(1)
	if err != nil {
		return DiagnosticReport{}, false
	}
	r := DiagnosticReport{MessageID: byte(msgID), Action: byte(action), AntennaSet: byte(antennaSet)}
	for i := uint64(0); i < fieldCount; i++ {
		f, ok := decodeOneDiagField(buf)
		if !ok {
			log().Warn("truncated diagnostic field, stopping report early")
			break
		}
		r.Fields = append(r.Fields, f)
	}
	return r, true
}

func decodeOneDiagField(buf *Buffer) (DiagField, bool) {
	typ, err := buf.PopUint(1)
	if err != nil {
		return DiagField{}, false
	}
	length, err := buf.PopUint(2)
	if err != nil {
		return DiagField{}, false
	}
	raw, err := buf.Pop(int(length))
	if err != nil {
		return DiagField{}, false
	}
	f := DiagField{Type: DiagFieldType(typ), Length: int(length)}
	sub := NewBuffer(raw)
	switch DiagFieldType(typ) {
	case DiagFieldFrameStatus:
		if v, err := sub.PopUint(4); err == nil {
			f.Known = true
			f.FrameStatus = &DiagFrameStatus{Mask: uint32(v)}
		}
	case DiagFieldAoa:
		if sub.RemainingSize() >= 8 {
			axis, _ := sub.PopUint(1)
			tdoa, _ := sub.PopFloat(true, 4, 11)
			pdoa, _ := sub.PopFloat(true, 4, 11)
			aoa, _ := sub.PopFloat(true, 4, 11)
			fom, _ := sub.PopUint(1)
			f.Known = true
			f.Aoa = &DiagAoa{Axis: DiagAoaAxis(axis), TDoA: tdoa, PDoA: pdoa, AoA: aoa, FOM: byte(fom)}
		}
	case DiagFieldCfo:
		if v, err := sub.PopFloat(true, 5, 26); err == nil {
			f.Known = true
			f.Cfo = &DiagCfo{PPM: v * cfoScaleToPPM}
		}
	case DiagFieldSegmentMetrics:
		if sub.RemainingSize() >= 17 {
			rsl, _ := popQ71UnsignedNegated(sub)
			path1, _ := popQ71UnsignedNegated(sub)
			path1Idx, _ := sub.PopUint(2)
			path1SNR, _ := sub.PopUint(1)
			peak, _ := popQ71UnsignedNegated(sub)
			peakIdx, _ := sub.PopUint(2)
			peakTime, _ := sub.PopUint(4)
			f.Known = true
			f.Segment = &DiagSegmentMetrics{
				RslDBm: rsl, Path1DBm: path1, Path1Index: uint16(path1Idx), Path1SNR: byte(path1SNR),
				PeakDBm: peak, PeakIndex: uint16(peakIdx), PeakTimeNs: uint32(peakTime),
			}
		}
	case DiagFieldCir:
		if c, ok := decodeDiagCir(sub); ok {
			f.Known = true
			f.Cir = &c
		}
	default:
		f.Raw = raw
	}
	if !f.Known {
		f.Raw = raw
	}
	return f, true
}

func decodeDiagCir(sub *Buffer) (DiagCir, bool) {
	if sub.RemainingSize() < 7 {
		return DiagCir{}, false
	}
	segType, _ := sub.PopUint(1)
	primary, _ := sub.PopUint(1)
	recvID, _ := sub.PopUint(1)
	path1Rel, _ := sub.PopInt(2)
	nSamples, _ := sub.PopUint(2)
	sampleSize, _ := sub.PopUint(1)
	c := DiagCir{
		SegmentType: byte(segType), Primary: byte(primary), ReceiverID: byte(recvID),
		Path1RelativeIdx: int16(path1Rel), NSamples: uint16(nSamples), SampleSize: byte(sampleSize),
	}
	if sampleSize == 0 {
		return c, true
	}
	perComponent := int(sampleSize) / 2
	for i := uint64(0); i < nSamples; i++ {
		if sub.RemainingSize() < perComponent*2 {
			log().WithField("sample", i).Warn(fmt.Sprintf("cir field truncated at sample %d of %d", i, nSamples))
			break
		}
		iv, _ := sub.PopInt(perComponent)
		qv, _ := sub.PopInt(perComponent)
		c.SamplesI = append(c.SamplesI, int32(iv))
		c.SamplesQ = append(c.SamplesQ, int32(qv))
	}
	return c, true
}
