package j2534

import (
	"bytes"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMsgLayout(t *testing.T) {
	// six unsigned longs plus the 4128 byte payload, as mandated by
	// SAE J2534-1 section 8
	assert.Equal(t, uintptr(6*4+MAX_LENGTH_MSG_DATA), unsafe.Sizeof(PassThruMsg{}))
	assert.Equal(t, uintptr(8), unsafe.Sizeof(SConfig{}))
}

func TestNewMsgForTransmission(t *testing.T) {
	payload := []byte{0x00, 0x00, 0x07, 0xE0, 0x01, 0x00}

	msg, err := NewMsg(ISO15765, ISO15765_FRAME_PAD, payload)
	require.NoError(t, err)

	assert.Equal(t, ISO15765, msg.ProtocolID)
	assert.Equal(t, ISO15765_FRAME_PAD, msg.TxFlags)
	assert.Equal(t, RX_NORMAL, msg.RxStatus)
	assert.Equal(t, uint32(len(payload)), msg.DataSize)
	assert.Equal(t, uint32(len(payload)), msg.ExtraDataIndex)
	assert.Equal(t, payload, msg.Data())
	assert.Empty(t, msg.ExtraData())
}

func TestNewMsgDefaults(t *testing.T) {
	msg, err := NewMsg(CAN, TX_NORMAL_TRANSMIT, nil)
	require.NoError(t, err)

	assert.Equal(t, uint32(0), msg.DataSize)
	assert.Empty(t, msg.Data())
	assert.Empty(t, msg.ExtraData())
}

func TestNewMsgPayloadTooLarge(t *testing.T) {
	_, err := NewMsg(CAN, TX_NORMAL_TRANSMIT, make([]byte, MAX_LENGTH_MSG_DATA+1))
	assert.Error(t, err)

	msg, err := NewMsg(CAN, TX_NORMAL_TRANSMIT, make([]byte, MAX_LENGTH_MSG_DATA))
	require.NoError(t, err)
	assert.Equal(t, uint32(MAX_LENGTH_MSG_DATA), msg.DataSize)
}

func TestReceivedMsgExtraData(t *testing.T) {
	payload := []byte{0x48, 0x6B, 0x10, 0x41, 0x00}
	checksum := []byte{0xBE, 0xEF}

	// driver fills a zeroed receive buffer and reports two trailing
	// checksum bytes beyond the payload
	var msg PassThruMsg
	msg.ProtocolID = ISO9141
	copy(msg.DataBuffer[:], payload)
	copy(msg.DataBuffer[len(payload):], checksum)
	msg.DataSize = uint32(len(payload) + len(checksum))
	msg.ExtraDataIndex = uint32(len(payload))

	assert.Equal(t, payload, msg.Data())
	assert.Equal(t, checksum, msg.ExtraData())

	// the two views are contiguous and non overlapping
	full := msg.DataBuffer[:msg.DataSize]
	combined := append(append([]byte{}, msg.Data()...), msg.ExtraData()...)
	assert.True(t, bytes.Equal(full, combined))
}

func TestMsgViewsClampOutOfRangeIndices(t *testing.T) {
	var msg PassThruMsg
	msg.DataSize = MAX_LENGTH_MSG_DATA + 100
	msg.ExtraDataIndex = MAX_LENGTH_MSG_DATA + 50

	assert.Len(t, msg.Data(), MAX_LENGTH_MSG_DATA)
	assert.Empty(t, msg.ExtraData())
}

func TestNewSConfigList(t *testing.T) {
	configs := []SConfig{
		{Parameter: DATA_RATE, Value: 500000},
		{Parameter: LOOPBACK, Value: 1},
	}

	list := newSConfigList(configs)
	assert.Equal(t, uint32(2), list.NumOfParams)
	require.NotNil(t, list.ConfigPtr)
	assert.Equal(t, &configs[0], list.ConfigPtr)

	empty := newSConfigList(nil)
	assert.Equal(t, uint32(0), empty.NumOfParams)
	assert.Nil(t, empty.ConfigPtr)
}

func TestNewSByteArray(t *testing.T) {
	buf := []byte{0x33}

	arr := newSByteArray(buf)
	assert.Equal(t, uint32(1), arr.NumOfBytes)
	require.NotNil(t, arr.BytePtr)
	assert.Equal(t, &buf[0], arr.BytePtr)

	empty := newSByteArray(nil)
	assert.Equal(t, uint32(0), empty.NumOfBytes)
	assert.Nil(t, empty.BytePtr)
}
