package uci

import "fmt"

/*
Domain operations (spec.md §4.5.3), composed on top of Client's low-level
Command rather than grown as methods of Client itself — the "mixin-style
class extension" redesign note in spec.md §9 maps to composition in Go: a
low-level command(gid, oid, bytes) surface plus separate files of methods
that take *Client by reference. Kept as Client methods here (one package,
no separate module boundary needed) but grouped by concern exactly the way
the teacher's client.go keeps I/S/U-frame helpers beside the core
read/write loop.
*/

// Reset sends CORE_DEVICE_RESET with the given reason byte.
func (c *Client) Reset(reason byte) (Status, error) {
	msg, err := c.Command(byte(GidUciCore), byte(OidCoreDeviceReset), []byte{reason})
	if err != nil {
		return 0, err
	}
	return msg.(StatusOnlyMsg).Status, nil
}

// GetDeviceInfo sends CORE_GET_DEVICE_INFO.
func (c *Client) GetDeviceInfo() (DeviceInfo, error) {
	msg, err := c.Command(byte(GidUciCore), byte(OidCoreGetDeviceInfo), nil)
	if err != nil {
		return DeviceInfo{}, err
	}
	return msg.(DeviceInfo), nil
}

// GetCaps sends CORE_GET_CAPS_INFO.
func (c *Client) GetCaps() (CapsResponse, error) {
	msg, err := c.Command(byte(GidUciCore), byte(OidCoreGetCapsInfo), nil)
	if err != nil {
		return CapsResponse{}, err
	}
	return msg.(CapsResponse), nil
}

// SetConfig sends CORE_SET_CONFIG with the given device-level TLVs.
func (c *Client) SetConfig(items []TLVItem) (Status, error) {
	payload, err := EncodeTVs(DeviceConfigTable, items)
	if err != nil {
		return 0, err
	}
	msg, err := c.Command(byte(GidUciCore), byte(OidCoreSetConfig), payload)
	if err != nil {
		return 0, err
	}
	return msg.(StatusOnlyMsg).Status, nil
}

// GetConfig sends CORE_GET_CONFIG requesting the named device-level tags.
func (c *Client) GetConfig(tags []byte) (RawPayloadMsg, error) {
	payload := append([]byte{byte(len(tags))}, tags...)
	msg, err := c.Command(byte(GidUciCore), byte(OidCoreGetConfig), payload)
	if err != nil {
		return RawPayloadMsg{}, err
	}
	return msg.(RawPayloadMsg), nil
}

// SessionInit sends SESSION_INIT for sid with the given session type byte.
func (c *Client) SessionInit(sid uint32, sessionType byte) (SessionInitRspMsg, error) {
	payload := make([]byte, 4)
	littleEndianPutUint(payload, uint64(sid))
	payload = append(payload, sessionType)
	msg, err := c.Command(byte(GidSessionConfig), byte(OidSessionInit), payload)
	if err != nil {
		return SessionInitRspMsg{}, err
	}
	return msg.(SessionInitRspMsg), nil
}

// SessionDeinit sends SESSION_DEINIT for sid, then removes any data
// handlers registered for it (spec.md §9 open question 1).
func (c *Client) SessionDeinit(sid uint32) (Status, error) {
	payload := make([]byte, 4)
	littleEndianPutUint(payload, uint64(sid))
	msg, err := c.Command(byte(GidSessionConfig), byte(OidSessionDeinit), payload)
	if err != nil {
		return 0, err
	}
	c.UnregisterDataHandlersForSession(sid)
	return msg.(StatusOnlyMsg).Status, nil
}

// SessionGetCount sends SESSION_GET_COUNT, restored per SPEC_FULL.md
// supplemented feature #1.
func (c *Client) SessionGetCount() (Status, error) {
	msg, err := c.Command(byte(GidSessionConfig), byte(OidSessionGetCount), nil)
	if err != nil {
		return 0, err
	}
	return msg.(StatusOnlyMsg).Status, nil
}

// SessionGetState sends SESSION_GET_STATE for sid, restored per
// SPEC_FULL.md supplemented feature #1.
func (c *Client) SessionGetState(sid uint32) (Status, EnumMember, error) {
	payload := make([]byte, 4)
	littleEndianPutUint(payload, uint64(sid))
	msg, err := c.Command(byte(GidSessionConfig), byte(OidSessionGetState), payload)
	if err != nil {
		return 0, EnumMember{}, err
	}
	r := msg.(struct {
		Status Status
		State  EnumMember
	})
	return r.Status, r.State, nil
}

// SessionSetAppConfig sends SESSION_SET_APP_CONFIG for sid.
func (c *Client) SessionSetAppConfig(sid uint32, items []TLVItem) (Status, error) {
	tlvBytes, err := EncodeTVs(AppConfigTable, items)
	if err != nil {
		return 0, err
	}
	payload := make([]byte, 4)
	littleEndianPutUint(payload, uint64(sid))
	payload = append(payload, tlvBytes...)
	msg, err := c.Command(byte(GidSessionConfig), byte(OidSessionSetAppConfig), payload)
	if err != nil {
		return 0, err
	}
	return msg.(StatusOnlyMsg).Status, nil
}

// SessionGetAppConfig sends SESSION_GET_APP_CONFIG for sid, requesting the
// named tags.
func (c *Client) SessionGetAppConfig(sid uint32, tags []byte) (RawPayloadMsg, error) {
	payload := make([]byte, 4)
	littleEndianPutUint(payload, uint64(sid))
	payload = append(payload, byte(len(tags)))
	payload = append(payload, tags...)
	msg, err := c.Command(byte(GidSessionConfig), byte(OidSessionGetAppConfig), payload)
	if err != nil {
		return RawPayloadMsg{}, err
	}
	return msg.(RawPayloadMsg), nil
}

// MulticastAction selects add/remove for SessionUpdateMulticastList.
type MulticastAction byte

const (
	MulticastActionAdd    MulticastAction = 0
	MulticastActionRemove MulticastAction = 1
)

// MulticastControlee is one entry of a multicast-list update: a 16-bit
// short MAC, a subsession ID, and an optional subsession key (empty when
// not used).
type MulticastControlee struct {
	MAC          uint16
	SubSessionID uint32
	SubSessionKey []byte
}

// SessionUpdateMulticastList sends
// SESSION_UPDATE_CONTROLLER_MULTICAST_LIST. Per spec.md §4.5.3, the
// controlee count must reduce to a multiple-of-3 wire shape
// (mac, subsession_id, subsession_key) — a malformed key length is a
// caller-argument fault, reported as SyntaxError rather than a protocol or
// parameter error.
func (c *Client) SessionUpdateMulticastList(sid uint32, action MulticastAction, controlees []MulticastControlee) (MulticastUpdateRspMsg, error) {
	for i, ctl := range controlees {
		if len(ctl.SubSessionKey) != 0 && len(ctl.SubSessionKey) != 16 && len(ctl.SubSessionKey) != 32 {
			return MulticastUpdateRspMsg{}, NewSyntaxError(
				fmt.Sprintf("controlee %d: subsession key must be empty, 16, or 32 bytes, got %d", i, len(ctl.SubSessionKey)))
		}
	}
	payload := make([]byte, 4)
	littleEndianPutUint(payload, uint64(sid))
	payload = append(payload, byte(action))
	payload = append(payload, byte(len(controlees)))
	for _, ctl := range controlees {
		macBytes := make([]byte, 2)
		littleEndianPutUint(macBytes, uint64(ctl.MAC))
		subBytes := make([]byte, 4)
		littleEndianPutUint(subBytes, uint64(ctl.SubSessionID))
		payload = append(payload, macBytes...)
		payload = append(payload, subBytes...)
		payload = append(payload, ctl.SubSessionKey...)
	}
	msg, err := c.Command(byte(GidSessionConfig), byte(OidSessionUpdateControllerMulticast), payload)
	if err != nil {
		return MulticastUpdateRspMsg{}, err
	}
	return msg.(MulticastUpdateRspMsg), nil
}

// DtAnchorRangingRound is one per-round role/destination specification for
// SessionUpdateDtAnchorRangingRounds. SlotIndex < 0 means "unspecified":
// spec.md §4.5.3 says slot assignment then defaults to list order, with a
// warning.
type DtAnchorRangingRound struct {
	RoundIndex uint16
	Role       byte
	DstMACs    []uint16
	SlotIndex  int
}

// SessionUpdateDtAnchorRangingRounds sends
// SESSION_UPDATE_DT_ANCHOR_RANGING_ROUNDS. Missing slot indices default to
// list order, logging a warning per spec.md §4.5.3.
func (c *Client) SessionUpdateDtAnchorRangingRounds(sid uint32, rounds []DtAnchorRangingRound) (Status, error) {
	payload := make([]byte, 4)
	littleEndianPutUint(payload, uint64(sid))
	payload = append(payload, byte(len(rounds)))
	for i, r := range rounds {
		slot := r.SlotIndex
		if slot < 0 {
			log().WithField("round_index", r.RoundIndex).Warn("dt-anchor ranging round missing slot index, defaulting to list order")
			slot = i
		}
		roundBytes := make([]byte, 2)
		littleEndianPutUint(roundBytes, uint64(r.RoundIndex))
		payload = append(payload, roundBytes...)
		payload = append(payload, r.Role, byte(slot), byte(len(r.DstMACs)))
		for _, mac := range r.DstMACs {
			macBytes := make([]byte, 2)
			littleEndianPutUint(macBytes, uint64(mac))
			payload = append(payload, macBytes...)
		}
	}
	msg, err := c.Command(byte(GidSessionConfig), byte(OidSessionUpdateDtAnchorRounds), payload)
	if err != nil {
		return 0, err
	}
	return msg.(StatusOnlyMsg).Status, nil
}

// RangingStart sends RANGE_START for sid.
func (c *Client) RangingStart(sid uint32) (Status, error) {
	return c.sessionOnlyCommand(byte(GidRangingSessionControl), byte(OidRangingStart), sid)
}

// RangingStop sends RANGE_STOP for sid.
func (c *Client) RangingStop(sid uint32) (Status, error) {
	return c.sessionOnlyCommand(byte(GidRangingSessionControl), byte(OidRangingStop), sid)
}

// SessionStartBasic is the FiRa 1.x ranging-start alias, restored per
// SPEC_FULL.md supplemented feature #2: same OID family as RangingStart.
func (c *Client) SessionStartBasic(sid uint32) (Status, error) {
	return c.RangingStart(sid)
}

// SessionStopBasic is the FiRa 1.x ranging-stop alias, restored per
// SPEC_FULL.md supplemented feature #2: same OID family as RangingStop.
func (c *Client) SessionStopBasic(sid uint32) (Status, error) {
	return c.RangingStop(sid)
}

func (c *Client) sessionOnlyCommand(gid, oid byte, sid uint32) (Status, error) {
	payload := make([]byte, 4)
	littleEndianPutUint(payload, uint64(sid))
	msg, err := c.Command(gid, oid, payload)
	if err != nil {
		return 0, err
	}
	return msg.(StatusOnlyMsg).Status, nil
}

// TestConfigSet sends TEST_CONFIG_SET with the given raw-UWB test
// parameters.
func (c *Client) TestConfigSet(items []TLVItem) (Status, error) {
	payload, err := EncodeTVs(TestConfigTable, items)
	if err != nil {
		return 0, err
	}
	return c.statusOnlyCommand(byte(GidTest), byte(OidTestConfigSet), payload)
}

// TestConfigGet sends TEST_CONFIG_GET requesting the named tags.
func (c *Client) TestConfigGet(tags []byte) (Status, error) {
	payload := append([]byte{byte(len(tags))}, tags...)
	return c.statusOnlyCommand(byte(GidTest), byte(OidTestConfigGet), payload)
}

// TestPeriodicTx sends TEST_PERIODIC_TX with the given raw PSDU payload.
func (c *Client) TestPeriodicTx(psdu []byte) (Status, error) {
	return c.statusOnlyCommand(byte(GidTest), byte(OidTestPeriodicTx), psdu)
}

// TestPerRx sends TEST_PER_RX with the given raw PSDU to expect.
func (c *Client) TestPerRx(psdu []byte) (Status, error) {
	return c.statusOnlyCommand(byte(GidTest), byte(OidTestPerRx), psdu)
}

// TestRx sends TEST_RX, entering raw-UWB receive test mode.
func (c *Client) TestRx() (Status, error) {
	return c.statusOnlyCommand(byte(GidTest), byte(OidTestRx), nil)
}

// TestLoopback sends TEST_LOOPBACK with the given raw PSDU payload.
func (c *Client) TestLoopback(psdu []byte) (Status, error) {
	return c.statusOnlyCommand(byte(GidTest), byte(OidTestLoopback), psdu)
}

// TestSsTwr sends TEST_SS_TWR against the given 16-bit short MAC peer.
func (c *Client) TestSsTwr(peerMAC uint16) (Status, error) {
	payload := make([]byte, 2)
	littleEndianPutUint(payload, uint64(peerMAC))
	return c.statusOnlyCommand(byte(GidTest), byte(OidTestSsTwr), payload)
}

// TestStopSession sends TEST_STOP_SESSION, ending any active test mode.
func (c *Client) TestStopSession() (Status, error) {
	return c.statusOnlyCommand(byte(GidTest), byte(OidTestStopSession), nil)
}

// ResetCalibration sends VENDOR_RESET_CALIBRATION.
func (c *Client) ResetCalibration() (Status, error) {
	return c.statusOnlyCommand(byte(GidVendorCalibration), byte(OidVendorResetCalibration), nil)
}

// TestTxCw sends VENDOR_TEST_TX_CW, a continuous-wave emission test on the
// given channel.
func (c *Client) TestTxCw(channel byte) (Status, error) {
	return c.statusOnlyCommand(byte(GidVendorCalibration), byte(OidVendorTestTxCw), []byte{channel})
}

// TestPllLock sends VENDOR_TEST_PLL_LOCK for the given channel.
func (c *Client) TestPllLock(channel byte) (Status, error) {
	return c.statusOnlyCommand(byte(GidVendorCalibration), byte(OidVendorTestPllLock), []byte{channel})
}

// TestTof runs VENDOR_TEST_TOF against the given raw test parameters,
// returning the raw (vendor-defined) response payload.
func (c *Client) TestTof(params []byte) (RawPayloadMsg, error) {
	return c.rawPayloadCommand(byte(GidVendorCalibration), byte(OidVendorTestTof), params)
}

// TestRtc runs VENDOR_TEST_RTC, returning the raw response payload.
func (c *Client) TestRtc() (RawPayloadMsg, error) {
	return c.rawPayloadCommand(byte(GidVendorCalibration), byte(OidVendorTestRtc), nil)
}

// TestModeCalibrationsSet sends VENDOR_TEST_MODE_CAL_SET.
func (c *Client) TestModeCalibrationsSet(value []byte) (Status, error) {
	return c.statusOnlyCommand(byte(GidVendorCalibration), byte(OidVendorTestModeCalSet), value)
}

// TestModeCalibrationsGet sends VENDOR_TEST_MODE_CAL_GET, returning the raw
// response payload.
func (c *Client) TestModeCalibrationsGet() (RawPayloadMsg, error) {
	return c.rawPayloadCommand(byte(GidVendorCalibration), byte(OidVendorTestModeCalGet), nil)
}

// GetCal sends VENDOR_GET_CAL for the named dotted calibration key
// (calibration.go).
func (c *Client) GetCal(key string) (CalGetRspMsg, error) {
	payload, err := EncodeCalGetReq(key)
	if err != nil {
		return CalGetRspMsg{}, err
	}
	msg, err := c.Command(byte(GidVendorCalibration), byte(OidVendorGetCal), payload)
	if err != nil {
		return CalGetRspMsg{}, err
	}
	return msg.(CalGetRspMsg), nil
}

// SetCal sends VENDOR_SET_CAL for the named dotted calibration key.
func (c *Client) SetCal(key string, value []byte) (Status, error) {
	payload, err := EncodeCalSetReq(key, value)
	if err != nil {
		return 0, err
	}
	return c.statusOnlyCommand(byte(GidVendorCalibration), byte(OidVendorSetCal), payload)
}

func (c *Client) statusOnlyCommand(gid, oid byte, payload []byte) (Status, error) {
	msg, err := c.Command(gid, oid, payload)
	if err != nil {
		return 0, err
	}
	return msg.(StatusOnlyMsg).Status, nil
}

func (c *Client) rawPayloadCommand(gid, oid byte, payload []byte) (RawPayloadMsg, error) {
	msg, err := c.Command(gid, oid, payload)
	if err != nil {
		return RawPayloadMsg{}, err
	}
	return msg.(RawPayloadMsg), nil
}
