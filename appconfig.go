package uci

// App is the open enum of FiRa per-session application-config tags,
// grounded on original_source/new_python_script/uci/fira_app.py's App
// class (the v2.0 tag set), plus the vendor antenna/diagnostics tags
// (0xe6-0xe9) that python_script/uci/v1_0.py carries and fira_app.py
// dropped.
var AppEnum = NewEnum("App", 0xff)

const (
	AppDeviceType                     uint64 = 0x00
	AppRangingRoundUsage              uint64 = 0x01
	AppStsConfig                      uint64 = 0x02
	AppMultiNodeMode                  uint64 = 0x03
	AppChannelNumber                  uint64 = 0x04
	AppNumberOfControlees             uint64 = 0x05
	AppDeviceMacAddress               uint64 = 0x06
	AppDstMacAddress                  uint64 = 0x07
	AppSlotDuration                   uint64 = 0x08
	AppRangingInterval                uint64 = 0x09 // now called RangingDuration
	AppStsIndex                       uint64 = 0x0a
	AppMacFcsType                     uint64 = 0x0b
	AppRangingRoundControl            uint64 = 0x0c
	AppAoaResultReq                   uint64 = 0x0d
	AppRangeDataNtfConfig             uint64 = 0x0e
	AppRangeDataNtfProximityNear      uint64 = 0x0f
	AppRangeDataNtfProximityFar       uint64 = 0x10
	AppDeviceRole                     uint64 = 0x11
	AppRframeConfig                   uint64 = 0x12
	AppRssiReporting                  uint64 = 0x13
	AppPreambleCodeIndex              uint64 = 0x14
	AppSfdId                          uint64 = 0x15
	AppPsduDataRate                   uint64 = 0x16
	AppPreambleDuration               uint64 = 0x17
	AppLinkLayerMode                  uint64 = 0x18
	AppDataRepetitionCount            uint64 = 0x19
	AppRangingTimeStruct              uint64 = 0x1a
	AppSlotsPerRr                     uint64 = 0x1b
	AppSessionInfoNtfBoundAoa         uint64 = 0x1d
	AppResponderSlotIndex             uint64 = 0x1e
	AppPrfMode                        uint64 = 0x1f
	AppCapSizeRange                   uint64 = 0x20 // contention-based
	AppScheduleMode                   uint64 = 0x22
	AppKeyRotation                    uint64 = 0x23
	AppKeyRotationRate                uint64 = 0x24
	AppSessionPriority                uint64 = 0x25
	AppMacAddressMode                 uint64 = 0x26
	AppVendorID                       uint64 = 0x27
	AppStaticStsIv                    uint64 = 0x28
	AppNumberOfStsSegments            uint64 = 0x29
	AppMaxRrRetry                     uint64 = 0x2a
	AppUwbInitiationTime              uint64 = 0x2b
	AppHoppingMode                    uint64 = 0x2c
	AppBlockStrideLength              uint64 = 0x2d
	AppResultReportConfig             uint64 = 0x2e
	AppInBandTerminationAttemptCount  uint64 = 0x2f
	AppSubSessionID                   uint64 = 0x30
	AppBprfPhrDataRate                uint64 = 0x31
	AppMaxNumberOfMeasurements        uint64 = 0x32
	AppUlTdoaTxInterval               uint64 = 0x33
	AppUlTdoaRandomWindow             uint64 = 0x34
	AppStsLength                      uint64 = 0x35
	AppUlTdoaDeviceID                 uint64 = 0x38
	AppUlTdoaTxTimestamp              uint64 = 0x39
	AppMinFramesPerRr                 uint64 = 0x3a
	AppMtuSize                        uint64 = 0x3b
	AppInterFrameInterval             uint64 = 0x3c
	AppDlTdoaRangingMethod            uint64 = 0x3d
	AppDlTdoaTxTimestampConf          uint64 = 0x3e
	AppDlTdoaHopCount                 uint64 = 0x3f
	AppDlTdoaAnchorCfo                uint64 = 0x40
	AppDlTdoaAnchorLocation           uint64 = 0x41
	AppDlTdoaTxActiveRangingRounds    uint64 = 0x42
	AppDlTdoaBlockStriding            uint64 = 0x43
	AppDlTdoaTimeReferenceAnchor      uint64 = 0x44
	AppSessionKey                     uint64 = 0x45
	AppSubSessionKey                  uint64 = 0x46
	AppSessionDataTransferStatusNtfConfig uint64 = 0x47
	AppDlTdoaResponderTof             uint64 = 0x49
	AppOwrAoaMeasurementNtfPeriod     uint64 = 0x4d
	AppHopModeKey                     uint64 = 0xa0
	AppCccUwbTime0                    uint64 = 0xa1
	AppSelectedProtVer                uint64 = 0xa3
	AppSelectedUwbConfigID            uint64 = 0xa4
	AppSelectedShapeCombo             uint64 = 0xa5
	AppUrskTTL                        uint64 = 0xa6
	AppCccStsIndex                    uint64 = 0xa8
	AppMacMode                        uint64 = 0xa9
	AppUrsk                           uint64 = 0xaa
	AppRxAntennaSelection             uint64 = 0xe6
	AppTxAntennaSelection             uint64 = 0xe7
	AppEnableDiagnostics              uint64 = 0xe8
	AppDiagsFrameReportsFields        uint64 = 0xe9
)

// AppConfigTable is the length-policy table for session app-config TLVs,
// used by session_set_app_config/session_get_app_config (spec.md §4.5.3),
// ground truth in fira_app.py's `App.defs` list.
var AppConfigTable = NewParamTable("AppConfig")

func init() {
	add := func(name string, tag uint64, lengths ...int) {
		AppEnum.MustAdd(name, tag)
		AppConfigTable.Add(ParamDef{Tag: byte(tag), Name: name, Lengths: lengths})
	}
	add("DeviceType", AppDeviceType, 1)
	add("RangingRoundUsage", AppRangingRoundUsage, 1)
	add("StsConfig", AppStsConfig, 1)
	add("MultiNodeMode", AppMultiNodeMode, 1)
	add("ChannelNumber", AppChannelNumber, 1)
	add("NumberOfControlees", AppNumberOfControlees, 1)
	add("DeviceMacAddress", AppDeviceMacAddress, 2)
	add("DstMacAddress", AppDstMacAddress, 2)
	add("SlotDuration", AppSlotDuration, 2)
	add("RangingInterval", AppRangingInterval, 4)
	add("StsIndex", AppStsIndex, 4)
	add("MacFcsType", AppMacFcsType, 1)
	add("RangingRoundControl", AppRangingRoundControl, 1)
	add("AoaResultReq", AppAoaResultReq, 1)
	add("RangeDataNtfConfig", AppRangeDataNtfConfig, 1)
	add("RangeDataNtfProximityNear", AppRangeDataNtfProximityNear, 2)
	add("RangeDataNtfProximityFar", AppRangeDataNtfProximityFar, 2)
	add("DeviceRole", AppDeviceRole, 1)
	add("RframeConfig", AppRframeConfig, 1)
	add("RssiReporting", AppRssiReporting, 1)
	add("PreambleCodeIndex", AppPreambleCodeIndex, 1)
	add("SfdId", AppSfdId, 1)
	add("PsduDataRate", AppPsduDataRate, 1)
	add("PreambleDuration", AppPreambleDuration, 1)
	add("LinkLayerMode", AppLinkLayerMode, 1)
	add("DataRepetitionCount", AppDataRepetitionCount, 1)
	add("RangingTimeStruct", AppRangingTimeStruct, 1)
	add("SlotsPerRr", AppSlotsPerRr, 1)
	add("SessionInfoNtfBoundAoa", AppSessionInfoNtfBoundAoa, 8)
	add("ResponderSlotIndex", AppResponderSlotIndex, 1)
	add("PrfMode", AppPrfMode, 1)
	add("CapSizeRange", AppCapSizeRange, 2)
	add("ScheduleMode", AppScheduleMode, 1)
	add("KeyRotation", AppKeyRotation, 1)
	add("KeyRotationRate", AppKeyRotationRate, 1)
	add("SessionPriority", AppSessionPriority, 1)
	add("MacAddressMode", AppMacAddressMode, 1)
	add("VendorId", AppVendorID, 2)
	add("StaticStsIv", AppStaticStsIv, 6)
	add("NumberOfStsSegments", AppNumberOfStsSegments, 1)
	add("MaxRrRetry", AppMaxRrRetry, 2)
	add("UwbInitiationTime", AppUwbInitiationTime, 8)
	add("HoppingMode", AppHoppingMode, 1)
	add("BlockStrideLength", AppBlockStrideLength, 1)
	add("ResultReportConfig", AppResultReportConfig, 1)
	add("InBandTerminationAttemptCount", AppInBandTerminationAttemptCount, 1)
	add("SubSessionId", AppSubSessionID, 4)
	add("BprfPhrDataRate", AppBprfPhrDataRate, 1)
	add("MaxNumberOfMeasurements", AppMaxNumberOfMeasurements, 2)
	add("UlTdoaTxInterval", AppUlTdoaTxInterval, 4)
	add("UlTdoaRandomWindow", AppUlTdoaRandomWindow, 4)
	add("StsLength", AppStsLength, 1)
	add("UlTdoaDeviceId", AppUlTdoaDeviceID, 1)
	add("UlTdoaTxTimestamp", AppUlTdoaTxTimestamp, 1)
	add("MinFramesPerRr", AppMinFramesPerRr, 1)
	add("MtuSize", AppMtuSize, 2)
	add("InterFrameInterval", AppInterFrameInterval, 1)
	add("DlTdoaRangingMethod", AppDlTdoaRangingMethod, 1)
	add("DlTdoaTxTimestampConf", AppDlTdoaTxTimestampConf, 1)
	add("DlTdoaHopCount", AppDlTdoaHopCount, 1)
	add("DlTdoaAnchorCfo", AppDlTdoaAnchorCfo, 1)
	// 11 (relative) or 13 (WGS-84) bytes: a coord-type byte ahead of the
	// packed location, see AnchorLocation.PackedConfigBytes.
	add("DlTdoaAnchorLocation", AppDlTdoaAnchorLocation, 11, 13)
	add("DlTdoaTxActiveRangingRounds", AppDlTdoaTxActiveRangingRounds, 1)
	add("DlTdoaBlockStriding", AppDlTdoaBlockStriding, 1)
	add("DlTdoaTimeReferenceAnchor", AppDlTdoaTimeReferenceAnchor, 1)
	add("SessionKey", AppSessionKey, 16, 32)
	add("SubSessionKey", AppSubSessionKey, 16, 32)
	add("SessionDataTransferStatusNtfConfig", AppSessionDataTransferStatusNtfConfig, 1)
	add("DlTdoaResponderTof", AppDlTdoaResponderTof, 1)
	add("OwrAoaMeasurementNtfPeriod", AppOwrAoaMeasurementNtfPeriod, 1)
	add("HopModeKey", AppHopModeKey, 16)
	add("CccUwbTime0", AppCccUwbTime0, 8)
	add("SelectedProtVer", AppSelectedProtVer, 2)
	add("SelectedUwbConfigId", AppSelectedUwbConfigID, 2)
	add("SelectedShapeCombo", AppSelectedShapeCombo, 1)
	add("UrskTTL", AppUrskTTL, 2)
	add("CccStsIndex", AppCccStsIndex, 4)
	add("MacMode", AppMacMode, 1)
	add("Ursk", AppUrsk, 32)
	add("RxAntennaSelection", AppRxAntennaSelection, 1)
	add("TxAntennaSelection", AppTxAntennaSelection, 1)
	add("EnableDiagnostics", AppEnableDiagnostics, 1)
	add("DiagsFrameReportsFields", AppDiagsFrameReportsFields, 1)
}

// DeviceConfigTable is the device-level (not per-session) config TLV table
// used by set_config/get_config, ground truth in v1_0.py's Device class.
var DeviceEnum = NewEnum("Device", 0xff)
var DeviceConfigTable = NewParamTable("DeviceConfig")

const (
	DeviceState_       uint64 = 0x00
	DeviceLowPowerMode uint64 = 0x01
	DeviceChannelNumber uint64 = 0xa0
)

func init() {
	add := func(name string, tag uint64, length int) {
		DeviceEnum.MustAdd(name, tag)
		DeviceConfigTable.Add(ParamDef{Tag: byte(tag), Name: name, Lengths: []int{length}})
	}
	add("State", DeviceState_, 1)
	add("LowPowerMode", DeviceLowPowerMode, 1)
	add("ChannelNumber", DeviceChannelNumber, 1)
}

// TestParam is the open enum of raw-UWB TEST_CONFIG tags, ground truth in
// fira_app.py's TestParam class.
var TestParamEnum = NewEnum("TestParam", 0xff)
var TestConfigTable = NewParamTable("TestConfig")

const (
	TestParamNumPackets      uint64 = 0x00
	TestParamTGap            uint64 = 0x01
	TestParamTStart          uint64 = 0x02
	TestParamTWin            uint64 = 0x03
	TestParamRandomizePsdu   uint64 = 0x04
	TestParamPhrRangingBit   uint64 = 0x05
	TestParamRMarkerTxStart  uint64 = 0x06
	TestParamRMarkerRxStart  uint64 = 0x07
	TestParamStsIndexAutoIncr uint64 = 0x08
)

func init() {
	add := func(name string, tag uint64, length int) {
		TestParamEnum.MustAdd(name, tag)
		TestConfigTable.Add(ParamDef{Tag: byte(tag), Name: name, Lengths: []int{length}})
	}
	add("NumPackets", TestParamNumPackets, 4)
	add("TGap", TestParamTGap, 4)
	add("TStart", TestParamTStart, 4)
	add("TWin", TestParamTWin, 4)
	add("RandomizePsdu", TestParamRandomizePsdu, 1)
	add("PhrRangingBit", TestParamPhrRangingBit, 1)
	add("RMarkerTxStart", TestParamRMarkerTxStart, 4)
	add("RMarkerRxStart", TestParamRMarkerRxStart, 4)
	add("StsIndexAutoIncr", TestParamStsIndexAutoIncr, 1)
}
