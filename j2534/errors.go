package j2534

import (
	"errors"
	"fmt"
)

// Status is the return code every J2534 entry point reports
type Status uint32

const (
	STATUS_NOERROR            Status = 0x00
	ERR_NOT_SUPPORTED         Status = 0x01
	ERR_INVALID_CHANNEL_ID    Status = 0x02
	ERR_INVALID_PROTOCOL_ID   Status = 0x03
	ERR_NULL_PARAMETER        Status = 0x04
	ERR_INVALID_IOCTL_VALUE   Status = 0x05
	ERR_INVALID_FLAGS         Status = 0x06
	ERR_FAILED                Status = 0x07
	ERR_DEVICE_NOT_CONNECTED  Status = 0x08
	ERR_TIMEOUT               Status = 0x09
	ERR_INVALID_MSG           Status = 0x0A
	ERR_INVALID_TIME_INTERVAL Status = 0x0B
	ERR_EXCEEDED_LIMIT        Status = 0x0C
	ERR_INVALID_MSG_ID        Status = 0x0D
	ERR_DEVICE_IN_USE         Status = 0x0E
	ERR_INVALID_IOCTL_ID      Status = 0x0F
	ERR_BUFFER_EMPTY          Status = 0x10
	ERR_BUFFER_FULL           Status = 0x11
	ERR_BUFFER_OVERFLOW       Status = 0x12
	ERR_PIN_INVALID           Status = 0x13
	ERR_CHANNEL_IN_USE        Status = 0x14
	ERR_MSG_PROTOCOL_ID       Status = 0x15
	ERR_INVALID_FILTER_ID     Status = 0x16
	ERR_NO_FLOW_CONTROL       Status = 0x17
	ERR_NOT_UNIQUE            Status = 0x18
	ERR_INVALID_BAUDRATE      Status = 0x19
	ERR_INVALID_DEVICE_ID     Status = 0x1A

	RESERVED_J2534_1 Status = 0x1B    // through 0xFFFF
	RESERVED_J2534_2 Status = 0x10000 // through 0xFFFFFFFF
)

var statusNames = map[Status]string{
	STATUS_NOERROR:            "STATUS_NOERROR",
	ERR_NOT_SUPPORTED:         "ERR_NOT_SUPPORTED",
	ERR_INVALID_CHANNEL_ID:    "ERR_INVALID_CHANNEL_ID",
	ERR_INVALID_PROTOCOL_ID:   "ERR_INVALID_PROTOCOL_ID",
	ERR_NULL_PARAMETER:        "ERR_NULL_PARAMETER",
	ERR_INVALID_IOCTL_VALUE:   "ERR_INVALID_IOCTL_VALUE",
	ERR_INVALID_FLAGS:         "ERR_INVALID_FLAGS",
	ERR_FAILED:                "ERR_FAILED",
	ERR_DEVICE_NOT_CONNECTED:  "ERR_DEVICE_NOT_CONNECTED",
	ERR_TIMEOUT:               "ERR_TIMEOUT",
	ERR_INVALID_MSG:           "ERR_INVALID_MSG",
	ERR_INVALID_TIME_INTERVAL: "ERR_INVALID_TIME_INTERVAL",
	ERR_EXCEEDED_LIMIT:        "ERR_EXCEEDED_LIMIT",
	ERR_INVALID_MSG_ID:        "ERR_INVALID_MSG_ID",
	ERR_DEVICE_IN_USE:         "ERR_DEVICE_IN_USE",
	ERR_INVALID_IOCTL_ID:      "ERR_INVALID_IOCTL_ID",
	ERR_BUFFER_EMPTY:          "ERR_BUFFER_EMPTY",
	ERR_BUFFER_FULL:           "ERR_BUFFER_FULL",
	ERR_BUFFER_OVERFLOW:       "ERR_BUFFER_OVERFLOW",
	ERR_PIN_INVALID:           "ERR_PIN_INVALID",
	ERR_CHANNEL_IN_USE:        "ERR_CHANNEL_IN_USE",
	ERR_MSG_PROTOCOL_ID:       "ERR_MSG_PROTOCOL_ID",
	ERR_INVALID_FILTER_ID:     "ERR_INVALID_FILTER_ID",
	ERR_NO_FLOW_CONTROL:       "ERR_NO_FLOW_CONTROL",
	ERR_NOT_UNIQUE:            "ERR_NOT_UNIQUE",
	ERR_INVALID_BAUDRATE:      "ERR_INVALID_BAUDRATE",
	ERR_INVALID_DEVICE_ID:     "ERR_INVALID_DEVICE_ID",
	RESERVED_J2534_1:          "RESERVED_J2534_1",
	RESERVED_J2534_2:          "RESERVED_J2534_2",
}

var statusDescriptions = map[Status]string{
	STATUS_NOERROR: "Function call successful",

	ERR_NOT_SUPPORTED: "Device cannot support requested functionality mandated in this document. " +
		"Device is not fully SAE J2534 compliant",

	ERR_INVALID_CHANNEL_ID: "Invalid ChannelID value",

	ERR_INVALID_PROTOCOL_ID: "Invalid ProtocolID value, unsupported ProtocolID, or there is a resource conflict " +
		"(i.e. trying to connect to multiple protocols that are mutually exclusive such as J1850PWM and J1850VPW, " +
		"or CAN and SCI A, etc.)",

	ERR_NULL_PARAMETER: "NULL pointer supplied where a valid pointer is required",

	ERR_INVALID_IOCTL_VALUE: "Invalid value for Ioctl parameter",

	ERR_INVALID_FLAGS: "Invalid flag values",

	ERR_FAILED: "Undefined error, use PassThruGetLastError for text description",

	ERR_DEVICE_NOT_CONNECTED: "Device ID invalid",

	ERR_TIMEOUT: "Timeout. " +
		"PassThruReadMsg: No message available to read or could not read the specified number of messages. " +
		"The actual number of messages read is placed in <NumMsgs> " +
		"PassThruWriteMsg: Device could not write the specified number of messages. " +
		"The actual number of messages sent on the vehicle network is placed in <NumMsgs>.",

	ERR_INVALID_MSG: "Invalid message structure pointed to by pMsg (Reference Section 8 – Message Structure)",

	ERR_INVALID_TIME_INTERVAL: "Invalid TimeInterval value",

	ERR_EXCEEDED_LIMIT: "Exceeded maximum number of message IDs or allocated space",

	ERR_INVALID_MSG_ID: "Invalid MsgID value",

	ERR_DEVICE_IN_USE: "Device is currently open",

	ERR_INVALID_IOCTL_ID: "Invalid IoctlID value",

	ERR_BUFFER_EMPTY: "Protocol message buffer empty, no messages available to read",

	ERR_BUFFER_FULL: "Protocol message buffer full. All the messages specified may not have been transmitted",

	ERR_BUFFER_OVERFLOW: "Indicates a buffer overflow occurred and messages were lost",

	ERR_PIN_INVALID: "Invalid pin number, pin number already in use, or voltage already applied to a different pin",

	ERR_CHANNEL_IN_USE: "Channel number is currently connected",

	ERR_MSG_PROTOCOL_ID: "Protocol type in the message does not match the protocol associated with the Channel ID",

	ERR_INVALID_FILTER_ID: "Invalid Filter ID value",

	ERR_NO_FLOW_CONTROL: "No flow control filter set or matched (for protocolID ISO15765 only).",

	ERR_NOT_UNIQUE: "A CAN ID in pPatternMsg or pFlowControlMsg matches either ID in an existing FLOW_CONTROL_FILTER",

	ERR_INVALID_BAUDRATE: "The desired baud rate cannot be achieved within the tolerance specified in Section 6.5",

	ERR_INVALID_DEVICE_ID: "Unable to communicate with device",

	RESERVED_J2534_1: "Reserved for SAE J2534-1",

	RESERVED_J2534_2: "Reserved for SAE J2534-2",
}

// classify folds a raw status code onto the named code it is reported as.
// Codes in the first reserved band report as RESERVED_J2534_1, everything at
// or above 0x10000 as RESERVED_J2534_2, so classification is total over the
// uint32 domain.
func (s Status) classify() Status {
	switch {
	case s < RESERVED_J2534_1:
		return s
	case s < RESERVED_J2534_2:
		return RESERVED_J2534_1
	default:
		return RESERVED_J2534_2
	}
}

// String returns the SAE J2534-1 name of the status code
func (s Status) String() string {
	return statusNames[s.classify()]
}

// Description returns the canonical SAE J2534-1 description of the status
// code. Defined for every possible code, reserved bands included.
func (s Status) Description() string {
	if desc, ok := statusDescriptions[s.classify()]; ok {
		return desc
	}
	return fmt.Sprintf("Invalid or undefined error code 0x%02x", uint32(s))
}

// PassThruError is the error reported for every non successful status code
// returned by a J2534 entry point
type PassThruError struct {
	Status Status
}

func (e *PassThruError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Status.String(), e.Status.Description())
}

// Is matches two PassThruErrors carrying the same status code, so
// errors.Is(err, &PassThruError{Status: ERR_TIMEOUT}) works as expected
func (e *PassThruError) Is(target error) bool {
	var other *PassThruError
	if errors.As(target, &other) {
		return e.Status == other.Status
	}
	return false
}

// CheckStatus translates a native status code into an error, nil for
// STATUS_NOERROR
func CheckStatus(status Status) error {
	if status == STATUS_NOERROR {
		return nil
	}
	return &PassThruError{Status: status}
}

// AsStatus extracts the native status code from an error chain. ok is false
// if the error did not originate from a native status code.
func AsStatus(err error) (Status, bool) {
	var ptErr *PassThruError
	if errors.As(err, &ptErr) {
		return ptErr.Status, true
	}
	return STATUS_NOERROR, false
}

// DLLLoadError reports that the Pass-Thru DLL could not be loaded. Raised
// only by LoadInterface, independent from the status code taxonomy.
type DLLLoadError struct {
	Path string
	Err  error
}

func (e *DLLLoadError) Error() string {
	return fmt.Sprintf("could not load J2534 interface %q: %v", e.Path, e.Err)
}

func (e *DLLLoadError) Unwrap() error { return e.Err }

// ErrPrecondition marks arguments rejected by the binding itself before any
// native call is made. Matched with errors.Is.
var ErrPrecondition = errors.New("invalid argument")
