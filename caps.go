package uci

/*
get_caps() capability TLV decoders, restored in full from
original_source/new_python_script/uci/fira_cap.py. Each capability tag has
its own bit-layout; CapsTable declares lengths for the TLV framing
(DecodeTLVs), and capDecoders turns the raw scalar/list value into the
typed Capability.
*/

var CapEnum = NewEnum("Cap", 0xff)

const (
	CapMaxMessageSize       uint64 = 0x00
	CapMaxDataPacketPayload uint64 = 0x01
	CapDeviceType           uint64 = 0x02
	CapDeviceRoles          uint64 = 0x03
	CapRangingMethod        uint64 = 0x04
	CapStsConfig            uint64 = 0x05
	CapMultiNodeMode        uint64 = 0x06
	CapRangingTimeStruct    uint64 = 0x07
	CapScheduleMode         uint64 = 0x08
	CapHoppingMode          uint64 = 0x09
	CapBlockStriding        uint64 = 0x0a
	CapUciVersionRange      uint64 = 0x0b
	CapMacVersionRange      uint64 = 0x0c
	CapPhyVersionRange      uint64 = 0x0d
	CapTestVersionRange     uint64 = 0x0e
	CapChannels             uint64 = 0x0f
	CapRframeConfig         uint64 = 0x10
	CapCcConstraintLength   uint64 = 0x11
	CapBprfParameterSets    uint64 = 0x12
	CapHprfParameterSets    uint64 = 0x13
	CapAoaSupport           uint64 = 0x14
	CapExtendedMacAddress   uint64 = 0x15
	CapSessionKeyLength     uint64 = 0x16
	CapDtAnchorMax          uint64 = 0x17
	CapDtTagMax             uint64 = 0x18
	CapDtTagBlockSkipping   uint64 = 0x19
)

var CapsTable = NewParamTable("Caps")

func init() {
	add := func(name string, tag uint64, lengths ...int) {
		CapEnum.MustAdd(name, tag)
		CapsTable.Add(ParamDef{Tag: byte(tag), Name: name, Lengths: lengths})
	}
	add("MaxMessageSize", CapMaxMessageSize, 2)
	add("MaxDataPacketPayload", CapMaxDataPacketPayload, 2)
	add("DeviceType", CapDeviceType, 1)
	add("DeviceRoles", CapDeviceRoles, 1)
	add("RangingMethod", CapRangingMethod, 1)
	add("StsConfig", CapStsConfig, 1)
	add("MultiNodeMode", CapMultiNodeMode, 1)
	add("RangingTimeStruct", CapRangingTimeStruct, 1)
	add("ScheduleMode", CapScheduleMode, 1)
	add("HoppingMode", CapHoppingMode, 1)
	add("BlockStriding", CapBlockStriding, 1)
	add("UciVersionRange", CapUciVersionRange, 2)
	add("MacVersionRange", CapMacVersionRange, 2)
	add("PhyVersionRange", CapPhyVersionRange, 2)
	add("TestVersionRange", CapTestVersionRange, 2)
	add("Channels", CapChannels, 1)
	add("RframeConfig", CapRframeConfig, 1)
	add("CcConstraintLength", CapCcConstraintLength, 1)
	add("BprfParameterSets", CapBprfParameterSets, 2)
	add("HprfParameterSets", CapHprfParameterSets, 4)
	add("AoaSupport", CapAoaSupport, 1)
	add("ExtendedMacAddress", CapExtendedMacAddress, 1)
	add("SessionKeyLength", CapSessionKeyLength, 1, 2)
	add("DtAnchorMax", CapDtAnchorMax, 1)
	add("DtTagMax", CapDtTagMax, 1)
	add("DtTagBlockSkipping", CapDtTagBlockSkipping, 1)
}

// Capability is one decoded capability TLV item, preserving both the
// generic decode (for unknown/future tags) and the typed interpretation
// the tag's bit layout implies.
type Capability struct {
	Tag     EnumMember
	Item    TLVItem
	Bitmask uint64 // role/method/channel/parameter-set bitflags, where applicable
}

// CapsResponse is the decoded CORE_GET_CAPS_INFO_RSP payload.
type CapsResponse struct {
	Status Status
	Caps   []Capability
}

func decodeCapsRsp(payload []byte) (interface{}, error) {
	buf := NewBuffer(payload)
	status, err := buf.PopUint(1)
	if err != nil {
		return nil, NewParameterError("caps response missing status")
	}
	resp := CapsResponse{Status: Status(status)}
	if Status(status) != StatusOk {
		return resp, nil
	}
	items, err := DecodeTLVs(CapsTable, mustRemaining(buf))
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		cap := Capability{Tag: CapEnum.Lookup(uint64(item.Tag)), Item: item}
		switch item.Tag {
		case byte(CapDeviceRoles), byte(CapRangingMethod), byte(CapChannels),
			byte(CapBprfParameterSets), byte(CapHprfParameterSets):
			cap.Bitmask = item.Value
		}
		resp.Caps = append(resp.Caps, cap)
	}
	return resp, nil
}

func mustRemaining(buf *Buffer) []byte {
	raw, _ := buf.Pop(-1)
	return raw
}
