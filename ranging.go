package uci

/*
RANGE_DATA_NTF decoders (spec.md §4.6), grounded on
original_source/python_script/uci/v1_0.py's RANGE_DATA_NTF (the v1.x TWR
shape, restored in full per SPEC_FULL.md §4.11) generalized to the v2.0
OWR measurement shapes spec.md names.

RangingMeasurementType selects the element shape inside the measurement
list; it is the wire byte at the head of RangingDataNotification (not a
spec.md-declared enum name, but present in every FiRa-2.0 RANGE_DATA_NTF
and required to pick a decoder).
*/
type RangingMeasurementType byte

const (
	RangingMeasurementTWR        RangingMeasurementType = 0x00
	RangingMeasurementOWRAoA     RangingMeasurementType = 0x01
	RangingMeasurementOWRUlTdoa  RangingMeasurementType = 0x02
	RangingMeasurementOWRDlTdoa  RangingMeasurementType = 0x03
)

// RangingDataNotification is the full decoded RANGE_DATA_NTF payload,
// carrying the v1.x outer-header fields SPEC_FULL.md §4.11 restores
// (SequenceNumber, CurrentRangingInterval, MACAddressingModeIndicator)
// alongside the measurement list. RCRIndication is not read from the wire
// by decodeRangingDataNtf and is always zero.
type RangingDataNotification struct {
	SequenceNumber          uint32
	SessionID               uint32
	CurrentRangingInterval  uint32
	RangingMeasurementType  RangingMeasurementType
	MACAddressingModeIndicator byte
	RCRIndication           byte

	TWR       []RangingTwrMeasurement
	OWRAoA    []OWRAoAMeasurement
	OWRUlTdoa []OWRUlTdoaMeasurement
	OWRDlTdoa []OWRDlTdoaMeasurement
}

// RangingTwrMeasurement is one element of a TWR (SS/DS) measurement list
// (spec.md §4.6). RFU padding width is parameterized by MAC address width
// per SPEC_FULL.md open-question decision #3 (2-byte MAC: 11 RFU bytes,
// 8-byte MAC: 5 RFU bytes, per the v2.0 draft text the original followed).
type RangingTwrMeasurement struct {
	MAC             []byte // 2 or 8 bytes, display order
	Status          Status
	NLoS            byte
	DistanceCM      uint16
	AoAAzimuthDeg   float64
	AoAAzimuthFOM   byte
	AoAElevationDeg float64
	AoAElevationFOM byte
	DestAoAAzimuthDeg   float64
	DestAoAAzimuthFOM   byte
	DestAoAElevationDeg float64
	DestAoAElevationFOM byte
	SlotIndex       byte
	RSSIdBm         float64
}

// OWRAoAMeasurement is one element of an OWR-for-AoA measurement list.
type OWRAoAMeasurement struct {
	MAC             []byte
	Status          Status
	NLoS            byte
	FrameSeqNumber  byte
	BlockIndex      uint16
	AoAAzimuthDeg   float64
	AoAAzimuthFOM   byte
	AoAElevationDeg float64
	AoAElevationFOM byte
}

// OWRUlTdoaMeasurement is one element of an OWR UL-TDoA measurement list.
// DeviceID/TxTime are spec-tentative (spec.md §9 open question 2): decoded
// when MessageControl's presence bit is set, otherwise left zero with
// DeviceIDKnown == false / TxTimeKnown == false.
type OWRUlTdoaMeasurement struct {
	MAC            []byte
	Status         Status
	MessageControl byte
	FrameType      byte
	NLoS           byte
	AoAAzimuthDeg  float64
	AoAAzimuthFOM  byte
	AoAElevationDeg float64
	AoAElevationFOM byte
	FrameNumber    uint16
	RxTimeTicks    uint64 // 40 or 64 bits, width from MessageControl

	DeviceIDKnown bool
	DeviceID      uint16
	TxTimeKnown   bool
	TxTime        uint64
}

// rxTimeWidthBits derives the UL-TDoA RX time field width from the
// message control byte, per spec.md §4.6.
func rxTimeWidthBits(messageControl byte) uint {
	if messageControl&0x01 != 0 {
		return 64
	}
	return 40
}

// ulTdoaDeviceIDTxTimePresent reports whether message_control flags the
// optional device-id/tx-time fields as present (spec.md §9 open question
// 2). Bit 1 is the documented presence flag in the tentative v2.0 draft
// this decoder follows.
func ulTdoaDeviceIDTxTimePresent(messageControl byte) bool {
	return messageControl&0x02 != 0
}

// OWRDlTdoaMeasurement is one element of an OWR DL-TDoA measurement list,
// including the bit-packed anchor location (spec.md §4.5.4).
type OWRDlTdoaMeasurement struct {
	MAC            []byte
	Status         Status
	MessageType    byte
	MessageControl byte
	BlockIndex     uint16
	RoundIndex     byte
	NLoS           byte
	AoAAzimuthDeg  float64
	AoAAzimuthFOM  byte
	AoAElevationDeg float64
	AoAElevationFOM byte
	RSSIdBm        float64
	TxTimeTicks    uint64
	RxTimeTicks    uint64
	AnchorCfoPpm   float64
	LocalCfoPpm    float64
	InitiatorReplyTimeTicks uint32
	ResponderReplyTimeTicks uint32
	ToFTicks       uint16
	AnchorLocation       AnchorLocation
	HasAnchorLocation    bool
	ActiveRoundsBitmap   []byte
}

func macWidthFromMode(mode byte) int {
	if mode == 0 {
		return 2
	}
	return 8
}

func popMAC(buf *Buffer, width int) ([]byte, error) {
	return buf.PopReverse(width)
}

// popQ87Signed reads a signed Q8.7 value (2 bytes), per spec.md §3.6:
// azimuth/elevation degrees in [-180,180]/[-90,90].
func popQ87Signed(buf *Buffer) (float64, error) {
	return buf.PopFloat(true, 8, 7)
}

// popQ71UnsignedNegated reads an unsigned Q7.1 RSSI field and negates it,
// per spec.md §3.6: "RSSI is Q7.1 negated dBm".
func popQ71UnsignedNegated(buf *Buffer) (float64, error) {
	v, err := buf.PopFloat(false, 7, 1)
	if err != nil {
		return 0, err
	}
	return -v, nil
}

// popQ510 reads a signed Q5.10 value used for CFO fields (spec.md §4.6).
func popQ510(buf *Buffer) (float64, error) {
	return buf.PopFloat(true, 5, 10)
}

func decodeRangingDataNtf(payload []byte) (interface{}, error) {
	buf := NewBuffer(payload)
	seq, err := buf.PopUint(4)
	if err != nil {
		return nil, NewParameterError("range data ntf missing sequence number")
	}
	sid, err := buf.PopUint(4)
	if err != nil {
		return nil, NewParameterError("range data ntf missing session id")
	}
	interval, err := buf.PopUint(4)
	if err != nil {
		return nil, NewParameterError("range data ntf missing ranging interval")
	}
	measType, err := buf.PopUint(1)
	if err != nil {
		return nil, NewParameterError("range data ntf missing measurement type")
	}
	_, _ = buf.PopUint(1) // RFU
	macMode, err := buf.PopUint(1)
	if err != nil {
		return nil, NewParameterError("range data ntf missing mac addressing mode")
	}
	count, err := buf.PopUint(1)
	if err != nil {
		return nil, NewParameterError("range data ntf missing measurement count")
	}

	ntf := RangingDataNotification{
		SequenceNumber:         uint32(seq),
		SessionID:              uint32(sid),
		CurrentRangingInterval: uint32(interval),
		RangingMeasurementType: RangingMeasurementType(measType),
		MACAddressingModeIndicator: byte(macMode),
	}
	macWidth := macWidthFromMode(byte(macMode))

measurements:
	for i := uint64(0); i < count; i++ {
		switch RangingMeasurementType(measType) {
		case RangingMeasurementTWR:
			m, err := decodeTwrMeasurement(buf, macWidth)
			if err != nil {
				log().WithField("index", i).Warn("truncated TWR measurement, stopping list early")
				break measurements
			}
			ntf.TWR = append(ntf.TWR, m)
		case RangingMeasurementOWRAoA:
			m, err := decodeOWRAoAMeasurement(buf)
			if err != nil {
				log().WithField("index", i).Warn("truncated OWR-AoA measurement, stopping list early")
				break measurements
			}
			ntf.OWRAoA = append(ntf.OWRAoA, m)
		case RangingMeasurementOWRUlTdoa:
			m, err := decodeOWRUlTdoaMeasurement(buf)
			if err != nil {
				log().WithField("index", i).Warn("truncated OWR UL-TDoA measurement, stopping list early")
				break measurements
			}
			ntf.OWRUlTdoa = append(ntf.OWRUlTdoa, m)
		case RangingMeasurementOWRDlTdoa:
			m, err := decodeOWRDlTdoaMeasurement(buf)
			if err != nil {
				log().WithField("index", i).Warn("truncated OWR DL-TDoA measurement, stopping list early")
				break measurements
			}
			ntf.OWRDlTdoa = append(ntf.OWRDlTdoa, m)
		default:
			log().WithField("type", measType).Warn("unknown ranging measurement type, cannot decode remaining list")
			break measurements
		}
	}
	if buf.RemainingSize() > 0 {
		log().WithField("trailing_bytes", buf.RemainingSize()).Warn("range data ntf has bytes remaining after declared measurement list")
	}
	return ntf, nil
}

func decodeTwrMeasurement(buf *Buffer, macWidth int) (RangingTwrMeasurement, error) {
	var m RangingTwrMeasurement
	mac, err := popMAC(buf, macWidth)
	if err != nil {
		return m, err
	}
	status, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	nlos, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	dist, err := buf.PopUint(2)
	if err != nil {
		return m, err
	}
	aoaAz, err := popQ87Signed(buf)
	if err != nil {
		return m, err
	}
	aoaAzFom, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	aoaEl, err := popQ87Signed(buf)
	if err != nil {
		return m, err
	}
	aoaElFom, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	destAz, err := popQ87Signed(buf)
	if err != nil {
		return m, err
	}
	destAzFom, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	destEl, err := popQ87Signed(buf)
	if err != nil {
		return m, err
	}
	destElFom, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	slot, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	rssi, err := popQ71UnsignedNegated(buf)
	if err != nil {
		return m, err
	}
	// RFU padding width depends on MAC width (SPEC_FULL.md open question 3).
	rfu := 11
	if macWidth == 8 {
		rfu = 5
	}
	if _, err := buf.Pop(rfu); err != nil {
		return m, err
	}
	m = RangingTwrMeasurement{
		MAC: mac, Status: Status(status), NLoS: byte(nlos), DistanceCM: uint16(dist),
		AoAAzimuthDeg: aoaAz, AoAAzimuthFOM: byte(aoaAzFom),
		AoAElevationDeg: aoaEl, AoAElevationFOM: byte(aoaElFom),
		DestAoAAzimuthDeg: destAz, DestAoAAzimuthFOM: byte(destAzFom),
		DestAoAElevationDeg: destEl, DestAoAElevationFOM: byte(destElFom),
		SlotIndex: byte(slot), RSSIdBm: rssi,
	}
	return m, nil
}

func decodeOWRAoAMeasurement(buf *Buffer) (OWRAoAMeasurement, error) {
	var m OWRAoAMeasurement
	mac, err := popMAC(buf, 2)
	if err != nil {
		return m, err
	}
	status, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	nlos, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	frameSeq, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	blockIdx, err := buf.PopUint(2)
	if err != nil {
		return m, err
	}
	az, err := popQ87Signed(buf)
	if err != nil {
		return m, err
	}
	azFom, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	el, err := popQ87Signed(buf)
	if err != nil {
		return m, err
	}
	elFom, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	m = OWRAoAMeasurement{
		MAC: mac, Status: Status(status), NLoS: byte(nlos), FrameSeqNumber: byte(frameSeq),
		BlockIndex: uint16(blockIdx), AoAAzimuthDeg: az, AoAAzimuthFOM: byte(azFom),
		AoAElevationDeg: el, AoAElevationFOM: byte(elFom),
	}
	return m, nil
}

func decodeOWRUlTdoaMeasurement(buf *Buffer) (OWRUlTdoaMeasurement, error) {
	var m OWRUlTdoaMeasurement
	mac, err := popMAC(buf, 2)
	if err != nil {
		return m, err
	}
	status, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	msgCtrl, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	frameType, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	nlos, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	az, err := popQ87Signed(buf)
	if err != nil {
		return m, err
	}
	azFom, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	el, err := popQ87Signed(buf)
	if err != nil {
		return m, err
	}
	elFom, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	frameNum, err := buf.PopUint(2)
	if err != nil {
		return m, err
	}
	width := rxTimeWidthBits(byte(msgCtrl))
	rxTime, err := buf.PopUint(int(width / 8))
	if err != nil {
		return m, err
	}
	m = OWRUlTdoaMeasurement{
		MAC: mac, Status: Status(status), MessageControl: byte(msgCtrl), FrameType: byte(frameType),
		NLoS: byte(nlos), AoAAzimuthDeg: az, AoAAzimuthFOM: byte(azFom),
		AoAElevationDeg: el, AoAElevationFOM: byte(elFom),
		FrameNumber: uint16(frameNum), RxTimeTicks: rxTime,
	}
	if ulTdoaDeviceIDTxTimePresent(byte(msgCtrl)) && buf.RemainingSize() >= 10 {
		devID, err := buf.PopUint(2)
		if err == nil {
			m.DeviceID = uint16(devID)
			m.DeviceIDKnown = true
		}
		txTime, err := buf.PopUint(8)
		if err == nil {
			m.TxTime = txTime
			m.TxTimeKnown = true
		}
	}
	return m, nil
}

func decodeOWRDlTdoaMeasurement(buf *Buffer) (OWRDlTdoaMeasurement, error) {
	var m OWRDlTdoaMeasurement
	mac, err := popMAC(buf, 2)
	if err != nil {
		return m, err
	}
	status, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	msgType, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	msgCtrl, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	blockIdx, err := buf.PopUint(2)
	if err != nil {
		return m, err
	}
	roundIdx, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	nlos, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	az, err := popQ87Signed(buf)
	if err != nil {
		return m, err
	}
	azFom, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	el, err := popQ87Signed(buf)
	if err != nil {
		return m, err
	}
	elFom, err := buf.PopUint(1)
	if err != nil {
		return m, err
	}
	rssi, err := popQ71UnsignedNegated(buf)
	if err != nil {
		return m, err
	}
	width := rxTimeWidthBits(byte(msgCtrl))
	txTime, err := buf.PopUint(int(width / 8))
	if err != nil {
		return m, err
	}
	rxTime, err := buf.PopUint(int(width / 8))
	if err != nil {
		return m, err
	}
	anchorCfo, err := popQ510(buf)
	if err != nil {
		return m, err
	}
	localCfo, err := popQ510(buf)
	if err != nil {
		return m, err
	}
	initReply, err := buf.PopUint(4)
	if err != nil {
		return m, err
	}
	respReply, err := buf.PopUint(4)
	if err != nil {
		return m, err
	}
	tof, err := buf.PopUint(2)
	if err != nil {
		return m, err
	}
	m = OWRDlTdoaMeasurement{
		MAC: mac, Status: Status(status), MessageType: byte(msgType), MessageControl: byte(msgCtrl),
		BlockIndex: uint16(blockIdx), RoundIndex: byte(roundIdx), NLoS: byte(nlos),
		AoAAzimuthDeg: az, AoAAzimuthFOM: byte(azFom), AoAElevationDeg: el, AoAElevationFOM: byte(elFom),
		RSSIdBm: rssi, TxTimeTicks: txTime, RxTimeTicks: rxTime,
		AnchorCfoPpm: anchorCfo, LocalCfoPpm: localCfo,
		InitiatorReplyTimeTicks: uint32(initReply), ResponderReplyTimeTicks: uint32(respReply),
		ToFTicks: uint16(tof),
	}

	coordType, err := buf.PopUint(1)
	if err == nil {
		switch CoordType(coordType) {
		case CoordTypeWGS84:
			raw, err := buf.Pop(12)
			if err == nil {
				var arr [12]byte
				copy(arr[:], raw)
				if loc, derr := DecodeAnchorLocationWGS84(arr); derr == nil {
					m.AnchorLocation = loc
					m.HasAnchorLocation = true
				} else {
					log().WithField("err", derr).Warn("failed to decode wgs84 anchor location")
				}
			}
		case CoordTypeRelative:
			raw, err := buf.Pop(10)
			if err == nil {
				var arr [10]byte
				copy(arr[:], raw)
				if loc, derr := DecodeAnchorLocationRelative(arr); derr == nil {
					m.AnchorLocation = loc
					m.HasAnchorLocation = true
				} else {
					log().WithField("err", derr).Warn("failed to decode relative anchor location")
				}
			}
		default:
			log().WithField("coord_type", coordType).Warn("unknown dl-tdoa coord type, skipping anchor location and active-rounds bitmap")
			return m, nil
		}
	}
	if buf.RemainingSize() > 0 {
		m.ActiveRoundsBitmap, _ = buf.Pop(-1)
	}
	return m, nil
}
