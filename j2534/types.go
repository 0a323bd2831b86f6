package j2534

import "fmt"

// Represents a J2534 PASSTHRU_MSG. The field layout matches the structure
// defined in SAE J2534-1 section 8 and is passed to the DLL by reference,
// so field order and widths must not change.
type PassThruMsg struct {
	ProtocolID     ProtocolID                // protocol of the channel the message belongs to
	RxStatus       RxStatus                  // receive status flags, driver written
	TxFlags        TxFlags                   // transmit flags, caller written
	Timestamp      uint32                    // receive timestamp in microseconds, driver written
	DataSize       uint32                    // number of valid bytes in DataBuffer
	ExtraDataIndex uint32                    // start of driver appended data (checksum, IFR bytes)
	DataBuffer     [MAX_LENGTH_MSG_DATA]byte // message payload
}

// NewMsg builds a message for transmission. DataSize and ExtraDataIndex are
// both set to the payload length as no driver data exists yet. Use TX_NORMAL_TRANSMIT
// for txFlags if no special handling is required.
// The zero value of PassThruMsg is a valid receive buffer, no constructor needed.
func NewMsg(protocol ProtocolID, txFlags TxFlags, payload []byte) (*PassThruMsg, error) {
	if len(payload) > MAX_LENGTH_MSG_DATA {
		return nil, fmt.Errorf("payload of %v bytes exceeds maximum message size of %v", len(payload), MAX_LENGTH_MSG_DATA)
	}

	msg := PassThruMsg{
		ProtocolID:     protocol,
		TxFlags:        txFlags,
		DataSize:       uint32(len(payload)),
		ExtraDataIndex: uint32(len(payload)),
	}
	copy(msg.DataBuffer[:], payload)
	return &msg, nil
}

// Data returns the message payload up to the extra data index, excluding any
// driver appended bytes. The returned slice aliases the message buffer.
func (m *PassThruMsg) Data() []byte {
	end := m.ExtraDataIndex
	if end > MAX_LENGTH_MSG_DATA {
		end = MAX_LENGTH_MSG_DATA
	}
	return m.DataBuffer[:end]
}

// ExtraData returns the driver appended bytes between the extra data index
// and the end of the valid payload, e.g. a received checksum. Empty unless
// the driver reported extra data.
func (m *PassThruMsg) ExtraData() []byte {
	start, end := m.ExtraDataIndex, m.DataSize
	if end > MAX_LENGTH_MSG_DATA {
		end = MAX_LENGTH_MSG_DATA
	}
	if start >= end {
		return nil
	}
	return m.DataBuffer[start:end]
}

func (m *PassThruMsg) String() string {
	return fmt.Sprintf("Protocol: 0x%X, RxStatus: 0x%X, TxFlags: 0x%X, Timestamp: %d, Data: % X, ExtraData: % X",
		uint32(m.ProtocolID), uint32(m.RxStatus), uint32(m.TxFlags), m.Timestamp, m.Data(), m.ExtraData())
}

// Represents a J2534 SCONFIG, a single channel configuration parameter
type SConfig struct {
	Parameter IoctlParameter
	Value     uint32
}

// Represents a J2534 SCONFIG_LIST, a counted reference to a contiguous
// SConfig array. ConfigPtr must point into a buffer that stays alive and
// pinned for the duration of the native call.
type SConfigList struct {
	NumOfParams uint32
	ConfigPtr   *SConfig
}

// newSConfigList wraps a SConfig slice into a list header for an ioctl call.
// The caller must keep the slice alive across the call (runtime.KeepAlive).
func newSConfigList(configs []SConfig) SConfigList {
	list := SConfigList{NumOfParams: uint32(len(configs))}
	if len(configs) > 0 {
		list.ConfigPtr = &configs[0]
	}
	return list
}

// Represents a J2534 SBYTE_ARRAY, a counted reference to a contiguous byte
// buffer. Same lifetime rules as SConfigList apply.
type SByteArray struct {
	NumOfBytes uint32
	BytePtr    *byte
}

// newSByteArray wraps a byte slice into an array header for an ioctl call.
// The caller must keep the slice alive across the call (runtime.KeepAlive).
func newSByteArray(buf []byte) SByteArray {
	arr := SByteArray{NumOfBytes: uint32(len(buf))}
	if len(buf) > 0 {
		arr.BytePtr = &buf[0]
	}
	return arr
}
