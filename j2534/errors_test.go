package j2534

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusNamesForDefinedCodes(t *testing.T) {
	tests := []struct {
		code Status
		name string
	}{
		{0x00, "STATUS_NOERROR"},
		{0x01, "ERR_NOT_SUPPORTED"},
		{0x02, "ERR_INVALID_CHANNEL_ID"},
		{0x03, "ERR_INVALID_PROTOCOL_ID"},
		{0x04, "ERR_NULL_PARAMETER"},
		{0x05, "ERR_INVALID_IOCTL_VALUE"},
		{0x06, "ERR_INVALID_FLAGS"},
		{0x07, "ERR_FAILED"},
		{0x08, "ERR_DEVICE_NOT_CONNECTED"},
		{0x09, "ERR_TIMEOUT"},
		{0x0A, "ERR_INVALID_MSG"},
		{0x0B, "ERR_INVALID_TIME_INTERVAL"},
		{0x0C, "ERR_EXCEEDED_LIMIT"},
		{0x0D, "ERR_INVALID_MSG_ID"},
		{0x0E, "ERR_DEVICE_IN_USE"},
		{0x0F, "ERR_INVALID_IOCTL_ID"},
		{0x10, "ERR_BUFFER_EMPTY"},
		{0x11, "ERR_BUFFER_FULL"},
		{0x12, "ERR_BUFFER_OVERFLOW"},
		{0x13, "ERR_PIN_INVALID"},
		{0x14, "ERR_CHANNEL_IN_USE"},
		{0x15, "ERR_MSG_PROTOCOL_ID"},
		{0x16, "ERR_INVALID_FILTER_ID"},
		{0x17, "ERR_NO_FLOW_CONTROL"},
		{0x18, "ERR_NOT_UNIQUE"},
		{0x19, "ERR_INVALID_BAUDRATE"},
		{0x1A, "ERR_INVALID_DEVICE_ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.code.String())
			assert.NotEmpty(t, tt.code.Description())
		})
	}
}

func TestStatusDescriptions(t *testing.T) {
	assert.Equal(t, "Function call successful", STATUS_NOERROR.Description())
	assert.Equal(t, "Invalid ChannelID value", ERR_INVALID_CHANNEL_ID.Description())
	assert.Equal(t, "Undefined error, use PassThruGetLastError for text description", ERR_FAILED.Description())
	assert.Equal(t, "Protocol message buffer empty, no messages available to read", ERR_BUFFER_EMPTY.Description())
	assert.Equal(t, "Unable to communicate with device", ERR_INVALID_DEVICE_ID.Description())
}

func TestStatusReservedBands(t *testing.T) {
	tests := []struct {
		name string
		code Status
		want string
		desc string
	}{
		{"first code of J2534-1 band", 0x1B, "RESERVED_J2534_1", "Reserved for SAE J2534-1"},
		{"middle of J2534-1 band", 0x1234, "RESERVED_J2534_1", "Reserved for SAE J2534-1"},
		{"last code of J2534-1 band", 0xFFFF, "RESERVED_J2534_1", "Reserved for SAE J2534-1"},
		{"first code of J2534-2 band", 0x10000, "RESERVED_J2534_2", "Reserved for SAE J2534-2"},
		{"manufacturer specific code", 0xDEADBEEF, "RESERVED_J2534_2", "Reserved for SAE J2534-2"},
		{"maximum code", 0xFFFFFFFF, "RESERVED_J2534_2", "Reserved for SAE J2534-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.String())
			assert.Equal(t, tt.desc, tt.code.Description())
		})
	}
}

func TestPassThruErrorRendering(t *testing.T) {
	err := &PassThruError{Status: ERR_INVALID_BAUDRATE}
	assert.Equal(t,
		"[ERR_INVALID_BAUDRATE] The desired baud rate cannot be achieved within the tolerance specified in Section 6.5",
		err.Error())

	reserved := &PassThruError{Status: 0x2000}
	assert.Equal(t, "[RESERVED_J2534_1] Reserved for SAE J2534-1", reserved.Error())
}

func TestCheckStatus(t *testing.T) {
	require.NoError(t, CheckStatus(STATUS_NOERROR))

	err := CheckStatus(ERR_TIMEOUT)
	require.Error(t, err)

	status, ok := AsStatus(err)
	require.True(t, ok)
	assert.Equal(t, ERR_TIMEOUT, status)

	assert.True(t, errors.Is(err, &PassThruError{Status: ERR_TIMEOUT}))
	assert.False(t, errors.Is(err, &PassThruError{Status: ERR_BUFFER_FULL}))
}

func TestAsStatusForeignError(t *testing.T) {
	_, ok := AsStatus(errors.New("not a pass-thru failure"))
	assert.False(t, ok)
}

func TestDLLLoadError(t *testing.T) {
	cause := errors.New("file not found")
	err := &DLLLoadError{Path: `C:\drivers\op20pt32.dll`, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `op20pt32.dll`)

	// a load failure is not part of the status code taxonomy
	_, ok := AsStatus(err)
	assert.False(t, ok)
}
