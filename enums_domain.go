package uci

/*
Domain enums, each an open Enum registry (spec.md §3.4) seeded with the
core FiRa/UCI values observed in original_source's v1_0.py Gid/State/Reason
classes and fira_enums.py's extended v2.0 names. Addins extend these at
load time (addin.go) rather than the core ever growing a new compiled
variant.
*/

var GidEnum = NewEnum("Gid", 0xff)

const (
	GidUciCore                 uint64 = 0x00
	GidSessionConfig           uint64 = 0x01
	GidRangingSessionControl   uint64 = 0x02
	GidSe                      uint64 = 0x09
	GidTestDbgNtf              uint64 = 0x0b
	GidVendorCalibration       uint64 = 0x0c
	GidTest                    uint64 = 0x0d
	GidTestExtra               uint64 = 0x0e
	GidConfigManager           uint64 = 0x0f
)

func init() {
	GidEnum.MustAdd("UciCore", GidUciCore)
	GidEnum.MustAdd("SessionConfig", GidSessionConfig)
	GidEnum.MustAdd("RangingSessionControl", GidRangingSessionControl)
	GidEnum.MustAdd("Se", GidSe)
	GidEnum.MustAdd("TestDbgNtf", GidTestDbgNtf)
	GidEnum.MustAdd("VendorCalibration", GidVendorCalibration)
	GidEnum.MustAdd("Test", GidTest)
	GidEnum.MustAdd("TestExtra", GidTestExtra)
	GidEnum.MustAdd("ConfigManager", GidConfigManager)
}

// OidCore (group UciCore) opcode values.
var OidCoreEnum = NewEnum("OidCore", 0xff)

const (
	OidCoreDeviceReset     uint64 = 0x00
	OidCoreDeviceStatusNtf uint64 = 0x01
	OidCoreGetDeviceInfo   uint64 = 0x02
	OidCoreGetCapsInfo     uint64 = 0x03
	OidCoreSetConfig       uint64 = 0x04
	OidCoreGetConfig       uint64 = 0x05
	OidCoreGenericErrorNtf uint64 = 0x07
)

func init() {
	OidCoreEnum.MustAdd("DeviceReset", OidCoreDeviceReset)
	OidCoreEnum.MustAdd("DeviceStatusNtf", OidCoreDeviceStatusNtf)
	OidCoreEnum.MustAdd("GetDeviceInfo", OidCoreGetDeviceInfo)
	OidCoreEnum.MustAdd("GetCapsInfo", OidCoreGetCapsInfo)
	OidCoreEnum.MustAdd("SetConfig", OidCoreSetConfig)
	OidCoreEnum.MustAdd("GetConfig", OidCoreGetConfig)
	OidCoreEnum.MustAdd("GenericErrorNtf", OidCoreGenericErrorNtf)
}

// OidSession (group SessionConfig) opcode values.
var OidSessionEnum = NewEnum("OidSession", 0xff)

const (
	OidSessionInit                     uint64 = 0x00
	OidSessionDeinit                   uint64 = 0x01
	OidSessionStatusNtf                uint64 = 0x02
	OidSessionSetAppConfig             uint64 = 0x03
	OidSessionGetAppConfig             uint64 = 0x04
	OidSessionGetCount                 uint64 = 0x05
	OidSessionGetState                 uint64 = 0x06
	OidSessionUpdateControllerMulticast uint64 = 0x07
	OidSessionUpdateDtAnchorRounds      uint64 = 0x08
	OidSessionUpdateDtTagRounds         uint64 = 0x09
)

func init() {
	OidSessionEnum.MustAdd("Init", OidSessionInit)
	OidSessionEnum.MustAdd("Deinit", OidSessionDeinit)
	OidSessionEnum.MustAdd("StatusNtf", OidSessionStatusNtf)
	OidSessionEnum.MustAdd("SetAppConfig", OidSessionSetAppConfig)
	OidSessionEnum.MustAdd("GetAppConfig", OidSessionGetAppConfig)
	OidSessionEnum.MustAdd("GetCount", OidSessionGetCount)
	OidSessionEnum.MustAdd("GetState", OidSessionGetState)
	OidSessionEnum.MustAdd("UpdateControllerMulticast", OidSessionUpdateControllerMulticast)
	OidSessionEnum.MustAdd("UpdateDtAnchorRounds", OidSessionUpdateDtAnchorRounds)
	OidSessionEnum.MustAdd("UpdateDtTagRounds", OidSessionUpdateDtTagRounds)
}

// OidRanging (group RangingSessionControl) opcode values.
var OidRangingEnum = NewEnum("OidRanging", 0xff)

const (
	OidRangingStart    uint64 = 0x00
	OidRangingStop     uint64 = 0x01
	OidRangingGetCount uint64 = 0x03
	OidRangingDataNtf  uint64 = 0x00
)

func init() {
	OidRangingEnum.MustAdd("Start", OidRangingStart)
	OidRangingEnum.MustAdd("Stop", OidRangingStop)
	OidRangingEnum.MustAdd("GetCount", OidRangingGetCount)
}

// OidTest (group Test) opcode values.
var OidTestEnum = NewEnum("OidTest", 0xff)

const (
	OidTestConfigSet   uint64 = 0x00
	OidTestConfigGet   uint64 = 0x01
	OidTestPeriodicTx  uint64 = 0x02
	OidTestPerRx       uint64 = 0x03
	OidTestRx          uint64 = 0x05
	OidTestLoopback    uint64 = 0x06
	OidTestSsTwr       uint64 = 0x07
	OidTestStopSession uint64 = 0x08
	OidTestNtf         uint64 = 0x09
)

func init() {
	OidTestEnum.MustAdd("ConfigSet", OidTestConfigSet)
	OidTestEnum.MustAdd("ConfigGet", OidTestConfigGet)
	OidTestEnum.MustAdd("PeriodicTx", OidTestPeriodicTx)
	OidTestEnum.MustAdd("PerRx", OidTestPerRx)
	OidTestEnum.MustAdd("Rx", OidTestRx)
	OidTestEnum.MustAdd("Loopback", OidTestLoopback)
	OidTestEnum.MustAdd("SsTwr", OidTestSsTwr)
	OidTestEnum.MustAdd("StopSession", OidTestStopSession)
	OidTestEnum.MustAdd("Ntf", OidTestNtf)
}

// OidVendorCalibration (group VendorCalibration, Qorvo extensions) opcode
// values — registered here, not by an addin, since the spec treats
// calibration as a core vendor extension shipped with the client rather
// than an optional plug-in.
var OidVendorEnum = NewEnum("OidVendor", 0xff)

const (
	OidVendorResetCalibration    uint64 = 0x01
	OidVendorGetCal              uint64 = 0x02
	OidVendorSetCal              uint64 = 0x03
	OidVendorTestTxCw            uint64 = 0x10
	OidVendorTestPllLock         uint64 = 0x11
	OidVendorTestTof             uint64 = 0x12
	OidVendorTestRtc             uint64 = 0x13
	OidVendorTestModeCalSet      uint64 = 0x14
	OidVendorTestModeCalGet      uint64 = 0x15
	OidVendorDeviceInfoExt       uint64 = 0x20
	OidVendorDiagnosticsNtf      uint64 = 0x21
)

func init() {
	OidVendorEnum.MustAdd("ResetCalibration", OidVendorResetCalibration)
	OidVendorEnum.MustAdd("GetCal", OidVendorGetCal)
	OidVendorEnum.MustAdd("SetCal", OidVendorSetCal)
	OidVendorEnum.MustAdd("TestTxCw", OidVendorTestTxCw)
	OidVendorEnum.MustAdd("TestPllLock", OidVendorTestPllLock)
	OidVendorEnum.MustAdd("TestTof", OidVendorTestTof)
	OidVendorEnum.MustAdd("TestRtc", OidVendorTestRtc)
	OidVendorEnum.MustAdd("TestModeCalSet", OidVendorTestModeCalSet)
	OidVendorEnum.MustAdd("TestModeCalGet", OidVendorTestModeCalGet)
	OidVendorEnum.MustAdd("DeviceInfoExt", OidVendorDeviceInfoExt)
	OidVendorEnum.MustAdd("DiagnosticsNtf", OidVendorDiagnosticsNtf)
}

// SessionState (spec.md §3.5: Init -> Idle <-> Active -> DeInit).
var SessionStateEnum = NewEnum("SessionState", 0xff)

const (
	SessionStateInit   uint64 = 0x00
	SessionStateDeInit uint64 = 0x01
	SessionStateActive uint64 = 0x02
	SessionStateIdle   uint64 = 0x03
)

func init() {
	SessionStateEnum.MustAdd("Init", SessionStateInit)
	SessionStateEnum.MustAdd("DeInit", SessionStateDeInit)
	SessionStateEnum.MustAdd("Active", SessionStateActive)
	SessionStateEnum.MustAdd("Idle", SessionStateIdle)
}

// SessionStateChangeReason carries the reason byte on SESSION_STATUS_NTF.
var SessionStateChangeReasonEnum = NewEnum("SessionStateChangeReason", 0xff)

const (
	ReasonStateChangeWithSessionManagementCommands uint64 = 0x00
	ReasonMaxRangingRoundRetryCountReached          uint64 = 0x01
	ReasonMaxNumberOfMeasurementsReached             uint64 = 0x02
	ReasonSessionSuspendedDueToInbandSignal         uint64 = 0x04
	ReasonErrorSlotLengthNotSupported               uint64 = 0x20
	ReasonErrorInsufficientSlotsPerRr               uint64 = 0x21
	ReasonErrorMacAddressModeNotSupported           uint64 = 0x22
	ReasonErrorInvalidRangingInterval               uint64 = 0x23
	ReasonErrorInvalidStsConfig                     uint64 = 0x24
	ReasonErrorInvalidRFrameConfig                  uint64 = 0x25
)

func init() {
	SessionStateChangeReasonEnum.MustAdd("StateChangeWithSessionManagementCommands", ReasonStateChangeWithSessionManagementCommands)
	SessionStateChangeReasonEnum.MustAdd("MaxRangingRoundRetryCountReached", ReasonMaxRangingRoundRetryCountReached)
	SessionStateChangeReasonEnum.MustAdd("MaxNumberOfMeasurementsReached", ReasonMaxNumberOfMeasurementsReached)
	SessionStateChangeReasonEnum.MustAdd("SessionSuspendedDueToInbandSignal", ReasonSessionSuspendedDueToInbandSignal)
	SessionStateChangeReasonEnum.MustAdd("ErrorSlotLengthNotSupported", ReasonErrorSlotLengthNotSupported)
	SessionStateChangeReasonEnum.MustAdd("ErrorInsufficientSlotsPerRr", ReasonErrorInsufficientSlotsPerRr)
	SessionStateChangeReasonEnum.MustAdd("ErrorMacAddressModeNotSupported", ReasonErrorMacAddressModeNotSupported)
	SessionStateChangeReasonEnum.MustAdd("ErrorInvalidRangingInterval", ReasonErrorInvalidRangingInterval)
	SessionStateChangeReasonEnum.MustAdd("ErrorInvalidStsConfig", ReasonErrorInvalidStsConfig)
	SessionStateChangeReasonEnum.MustAdd("ErrorInvalidRFrameConfig", ReasonErrorInvalidRFrameConfig)
}

// DeviceState is the device-level (not session-level) state carried by
// CORE_DEVICE_STATUS_NTF and the Device app-config parameter.
var DeviceStateEnum = NewEnum("DeviceState", 0xff)

const (
	DeviceStateReady uint64 = 0x01
	DeviceStateActive uint64 = 0x02
	DeviceStateError  uint64 = 0xff
)

func init() {
	DeviceStateEnum.MustAdd("Ready", DeviceStateReady)
	DeviceStateEnum.MustAdd("Active", DeviceStateActive)
	DeviceStateEnum.MustAdd("Error", DeviceStateError)
}

// MulticastControleeStatus is the per-controlee status byte in the
// SESSION_UPDATE_CONTROLLER_MULTICAST_LIST response.
var MulticastControleeStatusEnum = NewEnum("MulticastControleeStatus", 0xff)

const (
	MulticastControleeOkMulticastListAdd    uint64 = 0x00
	MulticastControleeOkMulticastListRemove uint64 = 0x01
	MulticastControleeErrorListFull         uint64 = 0x02
	MulticastControleeErrorKeyFetchFail     uint64 = 0x03
	MulticastControleeErrorSubSessionDupe   uint64 = 0x04
	MulticastControleeErrorSignatureInvalid uint64 = 0x05
	MulticastControleeErrorListNotFound     uint64 = 0x06
)

func init() {
	MulticastControleeStatusEnum.MustAdd("OkMulticastListAdd", MulticastControleeOkMulticastListAdd)
	MulticastControleeStatusEnum.MustAdd("OkMulticastListRemove", MulticastControleeOkMulticastListRemove)
	MulticastControleeStatusEnum.MustAdd("ErrorListFull", MulticastControleeErrorListFull)
	MulticastControleeStatusEnum.MustAdd("ErrorKeyFetchFail", MulticastControleeErrorKeyFetchFail)
	MulticastControleeStatusEnum.MustAdd("ErrorSubSessionDupe", MulticastControleeErrorSubSessionDupe)
	MulticastControleeStatusEnum.MustAdd("ErrorSignatureInvalid", MulticastControleeErrorSignatureInvalid)
	MulticastControleeStatusEnum.MustAdd("ErrorListNotFound", MulticastControleeErrorListNotFound)
}
