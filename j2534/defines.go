package j2534

import "fmt"

// Definitions from the SAE J2534-1 (Dec 2004) recommended practice. All values
// at the DLL boundary are unsigned longs, which are 32 bit wide on every
// Windows ABI the Pass-Thru standard targets.

// Handle to an opened Pass-Thru device, returned by PassThruOpen
type DeviceID uint32

// Handle to a protocol channel on an open device, returned by PassThruConnect
type ChannelID uint32

// Handle to a message filter, returned by PassThruStartMsgFilter
type FilterID uint32

// Handle to a periodic message, returned by PassThruStartPeriodicMsg
type MsgID uint32

// Vehicle network protocol selected by PassThruConnect.
// Values outside the named set are legal: 0x0B-0x7FFF is reserved for SAE
// J2534-1, 0x8000-0xFFFF for SAE J2534-2 and 0x10000 and above is
// manufacturer specific, so the type accepts any uint32 unchanged.
type ProtocolID uint32

const (
	J1850VPW     ProtocolID = 0x01
	J1850PWM     ProtocolID = 0x02
	ISO9141      ProtocolID = 0x03
	ISO14230     ProtocolID = 0x04
	CAN          ProtocolID = 0x05
	ISO15765     ProtocolID = 0x06
	SCI_A_ENGINE ProtocolID = 0x07
	SCI_A_TRANS  ProtocolID = 0x08
	SCI_B_ENGINE ProtocolID = 0x09
	SCI_B_TRANS  ProtocolID = 0x0A

	PROTOCOL_RESERVED     ProtocolID = 0x0B    // through 0x7FFF
	PROTOCOL_RESERVED_2   ProtocolID = 0x8000  // through 0xFFFF, SAE J2534-2
	PROTOCOL_MFG_SPECIFIC ProtocolID = 0x10000 // through 0xFFFFFFFF
)

// Connection flags for PassThruConnect, combinable with bitwise or.
// Unnamed bits are reserved or manufacturer specific and pass through as is.
type ProtocolFlags uint32

const (
	ISO9141_K_LINE_ONLY ProtocolFlags = 0x1000
	CAN_ID_BOTH         ProtocolFlags = 0x0800
	ISO9141_NO_CHECKSUM ProtocolFlags = 0x0200
	CAN_29BIT_ID        ProtocolFlags = 0x0100
)

// Receive status flags set by the driver on received messages
type RxStatus uint32

const (
	RX_CAN_29BIT_ID           RxStatus = 0x100
	RX_ISO15765_ADDR_TYPE     RxStatus = 0x080
	RX_ISO15765_PADDING_ERROR RxStatus = 0x010
	RX_TX_INDICATION          RxStatus = 0x008
	RX_BREAK                  RxStatus = 0x004
	RX_START_OF_MESSAGE       RxStatus = 0x002
	RX_TX_MSG_TYPE            RxStatus = 0x001

	RX_NORMAL   RxStatus = 0x0
	RX_TX_DONE  RxStatus = RX_TX_INDICATION | RX_TX_MSG_TYPE
	RX_LOOPBACK RxStatus = RX_TX_MSG_TYPE
)

// Transmit flags supplied by the caller on outgoing messages
type TxFlags uint32

const (
	SCI_TX_VOLTAGE     TxFlags = 0x00800000
	SCI_MODE           TxFlags = 0x00400000
	SWCAN_HV_TX        TxFlags = 0x00000400
	WAIT_P3_MIN_ONLY   TxFlags = 0x00000200
	TX_CAN_29BIT_ID    TxFlags = 0x00000100
	ISO15765_ADDR_TYPE TxFlags = 0x00000080
	ISO15765_FRAME_PAD TxFlags = 0x00000040

	ISO15765_CAN_ID_29 TxFlags = TX_CAN_29BIT_ID | ISO15765_FRAME_PAD
	ISO15765_CAN_ID_11 TxFlags = ISO15765_FRAME_PAD
	TX_NORMAL_TRANSMIT TxFlags = 0x00000000
)

// Has reports whether all bits of flag are set
func (f TxFlags) Has(flag TxFlags) bool { return f&flag == flag }

// Has reports whether all bits of flag are set
func (r RxStatus) Has(flag RxStatus) bool { return r&flag == flag }

// Has reports whether all bits of flag are set
func (f ProtocolFlags) Has(flag ProtocolFlags) bool { return f&flag == flag }

// Filter type for PassThruStartMsgFilter.
// Like ProtocolID this is an open set with reserved bands above the named
// values.
type FilterType uint32

const (
	PASS_FILTER         FilterType = 0x1
	BLOCK_FILTER        FilterType = 0x2
	FLOW_CONTROL_FILTER FilterType = 0x3

	FILTER_RESERVED     FilterType = 0x4     // through 0x7FFF
	FILTER_RESERVED_2   FilterType = 0x8000  // through 0xFFFF, SAE J2534-2
	FILTER_MFG_SPECIFIC FilterType = 0x10000 // through 0xFFFFFFFF
)

// Connector pin selectable by PassThruSetProgrammingVoltage
type ProgrammingPin uint32

const (
	PIN_AUX_OUTPUT ProgrammingPin = 0
	PIN_6          ProgrammingPin = 6
	PIN_9          ProgrammingPin = 9
	PIN_11         ProgrammingPin = 11
	PIN_12         ProgrammingPin = 12
	PIN_13         ProgrammingPin = 13
	PIN_14         ProgrammingPin = 14
	PIN_15         ProgrammingPin = 15
)

// Programming voltage values, in millivolt, plus the two sentinels
const (
	MIN_VOLTAGE     uint32 = 5000  // 5V
	MAX_VOLTAGE     uint32 = 20000 // 20V
	SHORT_TO_GROUND uint32 = 0xFFFFFFFE
	VOLTAGE_OFF     uint32 = 0xFFFFFFFF
)

// Sub-code dispatched by PassThruIoctl
type IoctlID uint32

const (
	GET_CONFIG     IoctlID = 0x01
	SET_CONFIG     IoctlID = 0x02
	READ_VBATT     IoctlID = 0x03
	FIVE_BAUD_INIT IoctlID = 0x04
	FAST_INIT      IoctlID = 0x05
	// 0x06 unused
	CLEAR_TX_BUFFER                    IoctlID = 0x07
	CLEAR_RX_BUFFER                    IoctlID = 0x08
	CLEAR_PERIODIC_MSGS                IoctlID = 0x09
	CLEAR_MSG_FILTERS                  IoctlID = 0x0A
	CLEAR_FUNCT_MSG_LOOKUP_TABLE       IoctlID = 0x0B
	ADD_TO_FUNCT_MSG_LOOKUP_TABLE      IoctlID = 0x0C
	DELETE_FROM_FUNCT_MSG_LOOKUP_TABLE IoctlID = 0x0D
	READ_PROG_VOLTAGE                  IoctlID = 0x0E

	IOCTL_RESERVED     IoctlID = 0x0F    // through 0x7FFF
	IOCTL_RESERVED_2   IoctlID = 0x8000  // through 0xFFFF, SAE J2534-2
	IOCTL_MFG_SPECIFIC IoctlID = 0x10000 // through 0xFFFFFFFF
)

// Channel configuration parameter for the GET_CONFIG/SET_CONFIG ioctls
type IoctlParameter uint32

const (
	DATA_RATE IoctlParameter = 0x01
	// 0x02 reserved by SAE
	LOOPBACK         IoctlParameter = 0x03
	NODE_ADDRESS     IoctlParameter = 0x04
	NETWORK_LINE     IoctlParameter = 0x05
	P1_MIN           IoctlParameter = 0x06 // driver internal, not settable by the application
	P1_MAX           IoctlParameter = 0x07
	P2_MIN           IoctlParameter = 0x08 // driver internal, not settable by the application
	P2_MAX           IoctlParameter = 0x09 // driver internal, not settable by the application
	P3_MIN           IoctlParameter = 0x0A
	P3_MAX           IoctlParameter = 0x0B // driver internal, not settable by the application
	P4_MIN           IoctlParameter = 0x0C
	P4_MAX           IoctlParameter = 0x0D // driver internal, not settable by the application
	W1               IoctlParameter = 0x0E
	W2               IoctlParameter = 0x0F
	W3               IoctlParameter = 0x10
	W4               IoctlParameter = 0x11
	W5               IoctlParameter = 0x12
	TIDLE            IoctlParameter = 0x13
	TINIL            IoctlParameter = 0x14
	TWUP             IoctlParameter = 0x15
	PARITY           IoctlParameter = 0x16
	BIT_SAMPLE_POINT IoctlParameter = 0x17
	SYNC_JUMP_WIDTH  IoctlParameter = 0x18
	W0               IoctlParameter = 0x19
	T1_MAX           IoctlParameter = 0x1A
	T2_MAX           IoctlParameter = 0x1B
	T4_MAX           IoctlParameter = 0x1C
	T5_MAX           IoctlParameter = 0x1D
	ISO15765_BS      IoctlParameter = 0x1E
	ISO15765_STMIN   IoctlParameter = 0x1F
	DATA_BITS        IoctlParameter = 0x20
	FIVE_BAUD_MOD    IoctlParameter = 0x21
	BS_TX            IoctlParameter = 0x22
	STMIN_TX         IoctlParameter = 0x23
	T3_MAX           IoctlParameter = 0x24
	ISO15765_WFT_MAX IoctlParameter = 0x25
)

var ioctlParameterNames = map[IoctlParameter]string{
	DATA_RATE:        "DATA_RATE",
	LOOPBACK:         "LOOPBACK",
	NODE_ADDRESS:     "NODE_ADDRESS",
	NETWORK_LINE:     "NETWORK_LINE",
	P1_MIN:           "P1_MIN",
	P1_MAX:           "P1_MAX",
	P2_MIN:           "P2_MIN",
	P2_MAX:           "P2_MAX",
	P3_MIN:           "P3_MIN",
	P3_MAX:           "P3_MAX",
	P4_MIN:           "P4_MIN",
	P4_MAX:           "P4_MAX",
	W0:               "W0",
	W1:               "W1",
	W2:               "W2",
	W3:               "W3",
	W4:               "W4",
	W5:               "W5",
	TIDLE:            "TIDLE",
	TINIL:            "TINIL",
	TWUP:             "TWUP",
	PARITY:           "PARITY",
	BIT_SAMPLE_POINT: "BIT_SAMPLE_POINT",
	SYNC_JUMP_WIDTH:  "SYNC_JUMP_WIDTH",
	T1_MAX:           "T1_MAX",
	T2_MAX:           "T2_MAX",
	T3_MAX:           "T3_MAX",
	T4_MAX:           "T4_MAX",
	T5_MAX:           "T5_MAX",
	ISO15765_BS:      "ISO15765_BS",
	ISO15765_STMIN:   "ISO15765_STMIN",
	BS_TX:            "BS_TX",
	STMIN_TX:         "STMIN_TX",
	DATA_BITS:        "DATA_BITS",
	FIVE_BAUD_MOD:    "FIVE_BAUD_MOD",
	ISO15765_WFT_MAX: "ISO15765_WFT_MAX",
}

// String returns the SAE J2534-1 name of the parameter, or its hex value for
// reserved and manufacturer specific parameters
func (p IoctlParameter) String() string {
	if name, ok := ioctlParameterNames[p]; ok {
		return name
	}
	return fmt.Sprintf("IoctlParameter(0x%X)", uint32(p))
}

// Values for the NETWORK_LINE parameter
const (
	BUS_NORMAL uint32 = 0
	BUS_PLUS   uint32 = 1
	BUS_MINUS  uint32 = 2
)

// Values for the PARITY parameter
const (
	NO_PARITY   uint32 = 0
	ODD_PARITY  uint32 = 1
	EVEN_PARITY uint32 = 2
)

// Values for the DATA_BITS parameter
const (
	DATA_BITS_8 uint32 = 0
	DATA_BITS_7 uint32 = 1
)

// Values for the FIVE_BAUD_MOD parameter
const (
	FIVE_BAUD_ISO9141_2_14230_4 uint32 = 0
	FIVE_BAUD_ISO9141_INV_KEY2  uint32 = 1
	FIVE_BAUD_ISO9141_INV_ADDR  uint32 = 2
	FIVE_BAUD_ISO9141           uint32 = 3
)

const (
	// Payload capacity of a PassThruMsg: 4k plus room for the largest
	// per-protocol overhead (J1850PWM IFR bytes etc.)
	MAX_LENGTH_MSG_DATA = 4128

	// Version and error strings are written into 80 byte buffers
	LENGTH_STRING_BUFFER = 80

	// Valid range for the PassThruStartPeriodicMsg interval, in milliseconds
	MIN_PERIODIC_INTERVAL uint32 = 5
	MAX_PERIODIC_INTERVAL uint32 = 65535
)
