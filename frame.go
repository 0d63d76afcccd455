package uci

import "fmt"

// MaxPayload is the largest payload carried by a single UCI packet on the
// wire (spec.md §6.1: capped at 250 to stay inside the FiRa reassembly
// constraint of a 255-byte maximum).
const MaxPayload = 250

/*
Header is the 4-byte UCI packet header (spec.md §3.1):

	byte0: [MT:3][PBF:1][GID:4]
	byte1: [0:2][OID:6]
	byte2: reserved (0) for control; low byte of payload length for data
	byte3: payload length (control) OR high byte (data)

This plays the role the teacher's APCI plays for IEC104 (apci.go):
a fixed-size control header parsed ahead of a variable-length body.
*/
type Header struct {
	MT  MT
	PBF PBF
	GID byte
	OID byte
}

// EncodeHeader packs a Header plus its payload length into the 4 header
// bytes. h.MT == MTData selects the 16-bit data-packet length encoding.
func EncodeHeader(h Header, payloadLen int) ([4]byte, error) {
	var out [4]byte
	if h.GID > 0x0f {
		return out, NewProtocolError(fmt.Sprintf("gid %d out of range", h.GID))
	}
	if h.OID > 0x3f {
		return out, NewProtocolError(fmt.Sprintf("oid %d out of range", h.OID))
	}
	out[0] = byte(h.MT)<<5 | byte(h.PBF)<<4 | h.GID
	out[1] = h.OID
	if h.MT == MTData {
		if payloadLen > 0xffff {
			return out, NewProtocolError("data payload too large")
		}
		out[2] = byte(payloadLen)
		out[3] = byte(payloadLen >> 8)
	} else {
		if payloadLen > 0xff {
			return out, NewProtocolError("control payload too large")
		}
		out[2] = 0
		out[3] = byte(payloadLen)
	}
	return out, nil
}

// ParseHeader decodes the 4 header bytes and the payload length they
// declare.
func ParseHeader(b []byte) (Header, int, error) {
	if len(b) < 4 {
		return Header{}, 0, fmt.Errorf("short header: %d bytes", len(b))
	}
	h := Header{
		MT:  MT(b[0] >> 5),
		PBF: PBF((b[0] >> 4) & 0x1),
		GID: b[0] & 0x0f,
		OID: b[1] & 0x3f,
	}
	var size int
	if h.MT == MTData {
		size = int(b[2]) | int(b[3])<<8
	} else {
		size = int(b[3])
	}
	return h, size, nil
}

// EncodePacket builds one complete wire packet (header + payload). Callers
// needing fragmentation should use FragmentPayload first.
func EncodePacket(mt MT, pbf PBF, gid, oid byte, payload []byte) ([]byte, error) {
	hdr, err := EncodeHeader(Header{MT: mt, PBF: pbf, GID: gid, OID: oid}, len(payload))
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 4+len(payload))
	out = append(out, hdr[:]...)
	out = append(out, payload...)
	return out, nil
}

// FragmentPayload splits payload into chunks of at most MaxPayload bytes,
// per spec.md §4.2's encoder rule: PBF=NotFinal on all but the last chunk.
// A zero-length payload still yields exactly one (empty, Final) chunk.
func FragmentPayload(payload []byte) [][]byte {
	if len(payload) == 0 {
		return [][]byte{{}}
	}
	var chunks [][]byte
	for i := 0; i < len(payload); i += MaxPayload {
		end := i + MaxPayload
		if end > len(payload) {
			end = len(payload)
		}
		chunks = append(chunks, payload[i:end])
	}
	return chunks
}

// EncodeCommand produces the ordered wire packets for a full command,
// fragmenting as needed (spec.md §4.5.1).
func EncodeCommand(gid, oid byte, payload []byte) ([][]byte, error) {
	chunks := FragmentPayload(payload)
	out := make([][]byte, 0, len(chunks))
	for i, c := range chunks {
		pbf := PBFFinal
		if i != len(chunks)-1 {
			pbf = PBFNotFinal
		}
		pkt, err := EncodePacket(MTCommand, pbf, gid, oid, c)
		if err != nil {
			return nil, err
		}
		out = append(out, pkt)
	}
	return out, nil
}

// Packet is one fully-received, still-fragmented wire packet delivered by
// PacketDecoder to the Client's intake (spec.md §4.5.2 owns reassembly).
type Packet struct {
	Header  Header
	Payload []byte
}

/*
PacketDecoder is the C2 framing codec's inbound half: a sliding byte buffer
that resynchronizes on a raw, possibly torn UART stream and emits complete
packets as soon as enough bytes have arrived.

Grounded on original_source/new_python_script/uci/addin_transport_uart.py's
UartTransportProtocol.check_data, which scans for a valid leading nibble
before trusting a length field, generalized to MT/PBF/GID/OID per spec.md
§4.2.
*/
type PacketDecoder struct {
	buf    []byte
	synced bool
}

// NewPacketDecoder returns an empty decoder ready to Feed.
func NewPacketDecoder() *PacketDecoder {
	return &PacketDecoder{}
}

// Feed appends newly arrived bytes and returns every complete packet that
// can now be extracted, in wire order.
func (d *PacketDecoder) Feed(data []byte) []Packet {
	d.buf = append(d.buf, data...)
	var out []Packet
	for {
		pkt, ok := d.tryExtractOne()
		if !ok {
			break
		}
		out = append(out, pkt)
	}
	return out
}

// tryExtractOne applies the narrow resync filter (spec.md §4.2) only until
// the first good header is found: a leading byte whose top nibble isn't
// one of {4,5,6,7} (Response/Notification) is garbage and is dropped.
// Once synchronized, the stream stays synchronized and ordinary
// length-prefixed extraction proceeds for every message type, per
// spec.md's "the stream is considered synchronized thereafter" — until an
// unknown MT forces a flush and re-entry into the unsynchronized state.
func (d *PacketDecoder) tryExtractOne() (Packet, bool) {
	if !d.synced {
		for len(d.buf) > 0 {
			topNibble := d.buf[0] >> 4
			if topNibble < 0x4 || topNibble > 0x7 {
				log().WithField("byte", fmt.Sprintf("0x%02x", d.buf[0])).Debug("dropping desynchronized byte")
				d.buf = d.buf[1:]
				continue
			}
			break
		}
	}
	if len(d.buf) < 4 {
		return Packet{}, false
	}
	hdr, size, err := ParseHeader(d.buf)
	if err != nil {
		return Packet{}, false
	}
	switch hdr.MT {
	case MTCommand, MTResponse, MTNotification, MTData:
	default:
		log().Warn("unknown message type, flushing decoder buffer")
		d.buf = nil
		d.synced = false
		return Packet{}, false
	}
	total := 4 + size
	if len(d.buf) < total {
		return Packet{}, false
	}
	payload := make([]byte, size)
	copy(payload, d.buf[4:total])
	d.buf = d.buf[total:]
	d.synced = true
	return Packet{Header: hdr, Payload: payload}, true
}
