package uci

import "fmt"

/*
MT (message type) occupies the top 3 bits of header byte 0. Unlike the
domain enums in enums_domain.go, the four protocol-level enums — MT, PBF,
DPF, Status — are fixed at compile time (spec.md §3.4): no addin has ever
been observed to add a fifth message type or packet-boundary value, so
these stay plain Go types rather than Enum registrations.
*/
type MT byte

const (
	MTData         MT = 0
	MTCommand      MT = 1
	MTResponse     MT = 2
	MTNotification MT = 3
)

func (mt MT) String() string {
	switch mt {
	case MTData:
		return "Data"
	case MTCommand:
		return "Command"
	case MTResponse:
		return "Response"
	case MTNotification:
		return "Notification"
	default:
		return fmt.Sprintf("MT(%d)", byte(mt))
	}
}

// PBF (packet boundary flag) marks whether more fragments of the same
// logical message follow.
type PBF byte

const (
	PBFFinal    PBF = 0
	PBFNotFinal PBF = 1
)

func (p PBF) String() string {
	if p == PBFFinal {
		return "Final"
	}
	return "NotFinal"
}

// DPF (data packet format) is the low nibble of header byte 0 on a data
// packet, used to key the Client's data handler map (spec.md §4.5).
type DPF byte

const (
	DPFSessionData   DPF = 0x0
	DPFRangingData   DPF = 0x1
	DPFRadarData     DPF = 0x2
	DPFTestData      DPF = 0x7
	DPFVendorReserved DPF = 0xF
)

// Status is the one-byte UCI status code present in most response and
// session-status-change payloads. Never raised as an error (spec.md §7.4) —
// callers receive it as an ordinary return value.
type Status byte

const (
	StatusOk                         Status = 0x00
	StatusRejected                   Status = 0x01
	StatusFailed                     Status = 0x02
	StatusSyntaxError                Status = 0x03
	StatusInvalidParam                Status = 0x04
	StatusInvalidRange                Status = 0x05
	StatusInvalidMessageSize          Status = 0x06
	StatusUnknownGid                 Status = 0x07
	StatusUnknownOid                 Status = 0x08
	StatusReadOnly                   Status = 0x09
	StatusCommandRetry                Status = 0x0A
	StatusSessionNotExist             Status = 0x11
	StatusSessionDuplicate            Status = 0x12
	StatusSessionActive               Status = 0x13
	StatusMaxSessionsExceeded         Status = 0x14
	StatusSessionNotConfigured        Status = 0x15
	StatusActiveSessionsOngoing       Status = 0x16
	StatusMulticastListFull           Status = 0x17
	StatusAddressNotFound             Status = 0x18
	StatusAddressAlreadyPresent       Status = 0x19
	StatusRangingTxFailed             Status = 0x20
	StatusRangingRxTimeout            Status = 0x21
	StatusRangingRxPhyDecFailed       Status = 0x22
	StatusRangingRxPhyToaFailed       Status = 0x23
	StatusRangingRxMacDecFailed       Status = 0x24
	StatusRangingRxMacIeDecFailed     Status = 0x25
	StatusRangingRxMacIeMissing       Status = 0x26
)

func (s Status) IsOk() bool { return s == StatusOk }

func (s Status) String() string {
	switch s {
	case StatusOk:
		return "Ok"
	case StatusRejected:
		return "Rejected"
	case StatusFailed:
		return "Failed"
	case StatusSyntaxError:
		return "SyntaxError"
	case StatusInvalidParam:
		return "InvalidParam"
	case StatusInvalidRange:
		return "InvalidRange"
	case StatusInvalidMessageSize:
		return "InvalidMessageSize"
	case StatusUnknownGid:
		return "UnknownGid"
	case StatusUnknownOid:
		return "UnknownOid"
	case StatusReadOnly:
		return "ReadOnly"
	case StatusCommandRetry:
		return "CommandRetry"
	case StatusSessionNotExist:
		return "SessionNotExist"
	case StatusSessionDuplicate:
		return "SessionDuplicate"
	case StatusSessionActive:
		return "SessionActive"
	case StatusMaxSessionsExceeded:
		return "MaxSessionsExceeded"
	case StatusSessionNotConfigured:
		return "SessionNotConfigured"
	case StatusActiveSessionsOngoing:
		return "ActiveSessionsOngoing"
	case StatusMulticastListFull:
		return "MulticastListFull"
	case StatusAddressNotFound:
		return "AddressNotFound"
	case StatusAddressAlreadyPresent:
		return "AddressAlreadyPresent"
	case StatusRangingTxFailed:
		return "RangingTxFailed"
	case StatusRangingRxTimeout:
		return "RangingRxTimeout"
	default:
		return fmt.Sprintf("Status(0x%02x)", byte(s))
	}
}

// ExitCode maps a Status into the caller-side exit-code band reserved for
// UCI statuses by spec.md §6.4 (200-254): 200 plus the status byte, so
// StatusOk maps to 200.
func (s Status) ExitCode() int {
	return 200 + int(s)
}
