package uci

/*
DeviceInfo is the structured decode of CORE_GET_DEVICE_INFO_RSP: the
mandatory UCI/MAC/PHY/Test version quartet, optionally extended with a
vendor block (QMF/OEM version, build job, SoC/device/packaging IDs) when
the radio's firmware reports one. Trailing bytes past the recognized
vendor block are logged and ignored rather than rejected, containing
decoder failures on inbound payloads instead of propagating them.
*/
type DeviceInfo struct {
	Status     Status
	UciVersion uint16
	MacVersion uint16
	PhyVersion uint16
	TestVersion uint16

	HasVendorBlock bool
	QmfVersion     uint16
	OemVersion     uint16
	BuildJob       string
	SocID          string
	DeviceID       string
	PackagingID    string
}

const deviceInfoVendorBlockMinLen = 2 + 2 // QmfVersion + OemVersion, at minimum

func decodeDeviceInfo(payload []byte) (interface{}, error) {
	buf := NewBuffer(payload)
	status, err := buf.PopUint(1)
	if err != nil {
		return nil, NewParameterError("device info payload missing status")
	}
	di := DeviceInfo{Status: Status(status)}
	if Status(status) != StatusOk {
		return di, nil
	}
	uciVer, err := buf.PopUint(2)
	if err != nil {
		return nil, NewParameterError("device info payload truncated at uci version")
	}
	macVer, err := buf.PopUint(2)
	if err != nil {
		return nil, NewParameterError("device info payload truncated at mac version")
	}
	phyVer, err := buf.PopUint(2)
	if err != nil {
		return nil, NewParameterError("device info payload truncated at phy version")
	}
	testVer, err := buf.PopUint(2)
	if err != nil {
		return nil, NewParameterError("device info payload truncated at test version")
	}
	di.UciVersion = uint16(uciVer)
	di.MacVersion = uint16(macVer)
	di.PhyVersion = uint16(phyVer)
	di.TestVersion = uint16(testVer)

	vendorLen, err := buf.PopUint(1)
	if err != nil || vendorLen == 0 {
		return di, nil
	}
	if buf.RemainingSize() < int(vendorLen) {
		log().Warn("device info vendor block shorter than declared length, truncating")
		vendorLen = uint64(buf.RemainingSize())
	}
	vendorRaw, _ := buf.Pop(int(vendorLen))
	vbuf := NewBuffer(vendorRaw)
	if vbuf.RemainingSize() >= deviceInfoVendorBlockMinLen {
		di.HasVendorBlock = true
		qmf, _ := vbuf.PopUint(2)
		oem, _ := vbuf.PopUint(2)
		di.QmfVersion = uint16(qmf)
		di.OemVersion = uint16(oem)
		if s, err := vbuf.PopString(8); err == nil {
			di.BuildJob = s
		}
		if s, err := vbuf.PopString(8); err == nil {
			di.SocID = s
		}
		if s, err := vbuf.PopString(8); err == nil {
			di.DeviceID = s
		}
		if s, err := vbuf.PopString(8); err == nil {
			di.PackagingID = s
		}
	}
	if buf.RemainingSize() > 0 {
		log().WithField("trailing_bytes", buf.RemainingSize()).Warn("device info payload has trailing bytes past the vendor block")
	}
	return di, nil
}

// SessionStatusMsg is the decoded SESSION_STATUS_NTF payload: 4-byte SID,
// 1-byte state, 1-byte reason.
type SessionStatusMsg struct {
	SID    uint32
	State  EnumMember
	Reason EnumMember
}

func decodeSessionStatus(payload []byte) (interface{}, error) {
	buf := NewBuffer(payload)
	sid, err := buf.PopUint(4)
	if err != nil {
		return nil, NewParameterError("session status payload missing SID")
	}
	state, err := buf.PopUint(1)
	if err != nil {
		return nil, NewParameterError("session status payload missing state")
	}
	reason, err := buf.PopUint(1)
	if err != nil {
		return nil, NewParameterError("session status payload missing reason")
	}
	return SessionStatusMsg{
		SID:    uint32(sid),
		State:  SessionStateEnum.Lookup(state),
		Reason: SessionStateChangeReasonEnum.Lookup(reason),
	}, nil
}

// SessionInitRspMsg is the decoded SESSION_INIT response: a status plus,
// on FiRa 2.0 devices, a distinct session handle. A FiRa 1.3 device
// returns no handle and the caller's SID is reused.
type SessionInitRspMsg struct {
	Status        Status
	SessionHandle uint32
	HasHandle     bool
}

func decodeSessionInitRsp(payload []byte) (interface{}, error) {
	buf := NewBuffer(payload)
	status, err := buf.PopUint(1)
	if err != nil {
		return nil, NewParameterError("session init response missing status")
	}
	msg := SessionInitRspMsg{Status: Status(status)}
	if buf.RemainingSize() >= 4 {
		handle, _ := buf.PopUint(4)
		msg.SessionHandle = uint32(handle)
		msg.HasHandle = true
	}
	return msg, nil
}

// MulticastUpdateRspMsg is the decoded
// SESSION_UPDATE_CONTROLLER_MULTICAST_LIST response: overall status plus a
// per-controlee status/mac/subsession-id list.
type MulticastControleeResult struct {
	MAC          uint16
	SubSessionID uint32
	Status       EnumMember
}

type MulticastUpdateRspMsg struct {
	Status     Status
	Controlees []MulticastControleeResult
}

func decodeMulticastUpdateRsp(payload []byte) (interface{}, error) {
	buf := NewBuffer(payload)
	status, err := buf.PopUint(1)
	if err != nil {
		return nil, NewParameterError("multicast update response missing status")
	}
	msg := MulticastUpdateRspMsg{Status: Status(status)}
	count, err := buf.PopUint(1)
	if err != nil {
		return msg, nil
	}
	for i := uint64(0); i < count; i++ {
		if buf.RemainingSize() < 7 {
			log().Warn("multicast update response truncated mid-controlee list")
			break
		}
		mac, _ := buf.PopUint(2)
		subID, _ := buf.PopUint(4)
		st, _ := buf.PopUint(1)
		msg.Controlees = append(msg.Controlees, MulticastControleeResult{
			MAC:          uint16(mac),
			SubSessionID: uint32(subID),
			Status:       MulticastControleeStatusEnum.Lookup(st),
		})
	}
	return msg, nil
}

func key(mt MT, gid uint64, oid uint64) RegKey {
	return RegKey{MT: mt, GID: byte(gid), OID: byte(oid)}
}

func init() {
	// CORE group.
	DefaultRegistry.MustRegister(key(MTResponse, GidUciCore, OidCoreDeviceReset), StatusOnlyCodec())
	DefaultRegistry.MustRegister(key(MTResponse, GidUciCore, OidCoreGetDeviceInfo), Codec{Decode: decodeDeviceInfo})
	DefaultRegistry.MustRegister(key(MTResponse, GidUciCore, OidCoreGetCapsInfo), Codec{Decode: decodeCapsRsp})
	DefaultRegistry.MustRegister(key(MTResponse, GidUciCore, OidCoreSetConfig), StatusOnlyCodec())
	DefaultRegistry.MustRegister(key(MTResponse, GidUciCore, OidCoreGetConfig), RawPayloadCodec())
	DefaultRegistry.MustRegister(key(MTNotification, GidUciCore, OidCoreDeviceStatusNtf), StatusOnlyCodec())
	DefaultRegistry.MustRegister(key(MTNotification, GidUciCore, OidCoreGenericErrorNtf), StatusOnlyCodec())

	// SESSION group.
	DefaultRegistry.MustRegister(key(MTResponse, GidSessionConfig, OidSessionInit), Codec{Decode: decodeSessionInitRsp})
	DefaultRegistry.MustRegister(key(MTResponse, GidSessionConfig, OidSessionDeinit), StatusOnlyCodec())
	DefaultRegistry.MustRegister(key(MTResponse, GidSessionConfig, OidSessionSetAppConfig), StatusOnlyCodec())
	DefaultRegistry.MustRegister(key(MTResponse, GidSessionConfig, OidSessionGetAppConfig), RawPayloadCodec())
	DefaultRegistry.MustRegister(key(MTResponse, GidSessionConfig, OidSessionGetCount), StatusOnlyCodec())
	DefaultRegistry.MustRegister(key(MTResponse, GidSessionConfig, OidSessionGetState), Codec{Decode: func(p []byte) (interface{}, error) {
		if len(p) < 2 {
			return nil, NewParameterError("session get state response too short")
		}
		return struct {
			Status Status
			State  EnumMember
		}{Status(p[0]), SessionStateEnum.Lookup(uint64(p[1]))}, nil
	}})
	DefaultRegistry.MustRegister(key(MTResponse, GidSessionConfig, OidSessionUpdateControllerMulticast), Codec{Decode: decodeMulticastUpdateRsp})
	DefaultRegistry.MustRegister(key(MTResponse, GidSessionConfig, OidSessionUpdateDtAnchorRounds), StatusOnlyCodec())
	DefaultRegistry.MustRegister(key(MTResponse, GidSessionConfig, OidSessionUpdateDtTagRounds), StatusOnlyCodec())
	DefaultRegistry.MustRegister(key(MTNotification, GidSessionConfig, OidSessionStatusNtf), Codec{Decode: decodeSessionStatus})

	// RANGING group.
	DefaultRegistry.MustRegister(key(MTResponse, GidRangingSessionControl, OidRangingStart), StatusOnlyCodec())
	DefaultRegistry.MustRegister(key(MTResponse, GidRangingSessionControl, OidRangingStop), StatusOnlyCodec())
	DefaultRegistry.MustRegister(key(MTResponse, GidRangingSessionControl, OidRangingGetCount), StatusOnlyCodec())
	DefaultRegistry.MustRegister(key(MTNotification, GidRangingSessionControl, OidRangingDataNtf), Codec{Decode: decodeRangingDataNtf})

	// TEST group.
	for _, oid := range []uint64{OidTestConfigSet, OidTestConfigGet, OidTestPeriodicTx, OidTestPerRx, OidTestRx,
		OidTestLoopback, OidTestSsTwr, OidTestStopSession} {
		DefaultRegistry.MustRegister(key(MTResponse, GidTest, oid), StatusOnlyCodec())
	}
	DefaultRegistry.MustRegister(key(MTNotification, GidTest, OidTestNtf), RawPayloadCodec())

	// Vendor calibration group.
	DefaultRegistry.MustRegister(key(MTResponse, GidVendorCalibration, OidVendorResetCalibration), StatusOnlyCodec())
	DefaultRegistry.MustRegister(key(MTResponse, GidVendorCalibration, OidVendorGetCal), Codec{Decode: decodeCalGetRsp})
	DefaultRegistry.MustRegister(key(MTResponse, GidVendorCalibration, OidVendorSetCal), StatusOnlyCodec())
	DefaultRegistry.MustRegister(key(MTResponse, GidVendorCalibration, OidVendorTestTxCw), StatusOnlyCodec())
	DefaultRegistry.MustRegister(key(MTResponse, GidVendorCalibration, OidVendorTestPllLock), StatusOnlyCodec())
	DefaultRegistry.MustRegister(key(MTResponse, GidVendorCalibration, OidVendorTestTof), RawPayloadCodec())
	DefaultRegistry.MustRegister(key(MTResponse, GidVendorCalibration, OidVendorTestRtc), RawPayloadCodec())
	DefaultRegistry.MustRegister(key(MTResponse, GidVendorCalibration, OidVendorTestModeCalSet), StatusOnlyCodec())
	DefaultRegistry.MustRegister(key(MTResponse, GidVendorCalibration, OidVendorTestModeCalGet), RawPayloadCodec())
	DefaultRegistry.MustRegister(key(MTNotification, GidVendorCalibration, OidVendorDiagnosticsNtf), Codec{Decode: decodeDiagnosticsNtf})
}
