//go:build windows

package j2534

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/mdzio/go-logging"
	"golang.org/x/sys/windows"
)

var ptLog = logging.Get("j2534")

// PassThru owns a loaded J2534 interface DLL and its resolved entry points.
// The entry points are resolved once in LoadInterface and read only
// afterwards, so a PassThru may be shared between goroutines; serializing
// operations against a single device or channel is up to the caller, as the
// underlying drivers make no reentrancy guarantee of their own.
type PassThru struct {
	dll *windows.DLL
	log *logging.Logger

	pOpen                  *windows.Proc
	pClose                 *windows.Proc
	pConnect               *windows.Proc
	pDisconnect            *windows.Proc
	pReadMsgs              *windows.Proc
	pWriteMsgs             *windows.Proc
	pStartPeriodicMsg      *windows.Proc
	pStopPeriodicMsg       *windows.Proc
	pStartMsgFilter        *windows.Proc
	pStopMsgFilter         *windows.Proc
	pSetProgrammingVoltage *windows.Proc
	pReadVersion           *windows.Proc
	pGetLastError          *windows.Proc
	pIoctl                 *windows.Proc
}

// LoadInterface loads the J2534 interface DLL at the given path and resolves
// all entry points mandated by SAE J2534-1. Use GetInterfaces to discover
// the paths of installed interfaces.
// Returns a DLLLoadError if the DLL cannot be loaded or misses entry points.
func LoadInterface(path string) (*PassThru, error) {
	dll, err := windows.LoadDLL(path)
	if err != nil {
		return nil, &DLLLoadError{Path: path, Err: err}
	}

	p := &PassThru{dll: dll, log: ptLog}
	entryPoints := []struct {
		name string
		proc **windows.Proc
	}{
		{"PassThruOpen", &p.pOpen},
		{"PassThruClose", &p.pClose},
		{"PassThruConnect", &p.pConnect},
		{"PassThruDisconnect", &p.pDisconnect},
		{"PassThruReadMsgs", &p.pReadMsgs},
		{"PassThruWriteMsgs", &p.pWriteMsgs},
		{"PassThruStartPeriodicMsg", &p.pStartPeriodicMsg},
		{"PassThruStopPeriodicMsg", &p.pStopPeriodicMsg},
		{"PassThruStartMsgFilter", &p.pStartMsgFilter},
		{"PassThruStopMsgFilter", &p.pStopMsgFilter},
		{"PassThruSetProgrammingVoltage", &p.pSetProgrammingVoltage},
		{"PassThruReadVersion", &p.pReadVersion},
		{"PassThruGetLastError", &p.pGetLastError},
		{"PassThruIoctl", &p.pIoctl},
	}
	for _, ep := range entryPoints {
		proc, err := dll.FindProc(ep.name)
		if err != nil {
			dll.Release()
			return nil, &DLLLoadError{Path: path, Err: fmt.Errorf("missing entry point %v: %w", ep.name, err)}
		}
		*ep.proc = proc
	}

	return p, nil
}

// Unload releases the interface DLL. The PassThru must not be used afterwards.
func (p *PassThru) Unload() error {
	return p.dll.Release()
}

// Name returns the filepath the interface DLL was loaded from
func (p *PassThru) Name() string {
	return p.dll.Name
}

// SetLogger replaces the logger used for binding level diagnostics, e.g. the
// warnings emitted when driver internal parameters are filtered from a
// GET_CONFIG request. Defaults to the package logger "j2534".
func (p *PassThru) SetLogger(log *logging.Logger) {
	if log != nil {
		p.log = log
	}
}

// Open opens the Pass-Thru device and returns its handle.
// The J2534-1 open-by-name capability is unused, a null name is passed.
func (p *PassThru) Open() (DeviceID, error) {
	var deviceID uint32
	ret, _, _ := p.pOpen.Call(0, uintptr(unsafe.Pointer(&deviceID)))
	if err := CheckStatus(Status(ret)); err != nil {
		return 0, err
	}
	return DeviceID(deviceID), nil
}

// Close closes a previously opened Pass-Thru device
func (p *PassThru) Close(device DeviceID) error {
	ret, _, _ := p.pClose.Call(uintptr(device))
	return CheckStatus(Status(ret))
}

// Connect establishes a protocol channel on an open device.
// baud is the desired data rate; the driver rejects unachievable rates with
// ERR_INVALID_BAUDRATE.
func (p *PassThru) Connect(device DeviceID, protocol ProtocolID, flags ProtocolFlags, baud uint32) (ChannelID, error) {
	var channelID uint32
	ret, _, _ := p.pConnect.Call(
		uintptr(device),
		uintptr(protocol),
		uintptr(flags),
		uintptr(baud),
		uintptr(unsafe.Pointer(&channelID)))
	if err := CheckStatus(Status(ret)); err != nil {
		return 0, err
	}
	return ChannelID(channelID), nil
}

// Disconnect closes a previously connected channel
func (p *PassThru) Disconnect(channel ChannelID) error {
	ret, _, _ := p.pDisconnect.Call(uintptr(channel))
	return CheckStatus(Status(ret))
}

// ReadMsgs reads up to numMsgs messages from the channel, in receipt order.
// A negative timeout reads non blocking: whatever the receive buffer holds is
// returned immediately, an empty buffer yields an empty result and no error.
// With a timeout >= 0 the call waits up to timeout milliseconds for numMsgs
// messages and reports ERR_TIMEOUT if not all arrived in time.
func (p *PassThru) ReadMsgs(channel ChannelID, numMsgs uint32, timeout int) ([]PassThruMsg, error) {
	if numMsgs == 0 {
		return nil, nil
	}
	if timeout < 0 {
		timeout = 0
	}

	msgs := make([]PassThruMsg, numMsgs)
	count := numMsgs
	ret, _, _ := p.pReadMsgs.Call(
		uintptr(channel),
		uintptr(unsafe.Pointer(&msgs[0])),
		uintptr(unsafe.Pointer(&count)),
		uintptr(timeout))
	runtime.KeepAlive(msgs)

	// an empty receive buffer is a normal outcome of polling, not a failure
	if Status(ret) == ERR_BUFFER_EMPTY {
		return nil, nil
	}
	if err := CheckStatus(Status(ret)); err != nil {
		return nil, err
	}
	if count > numMsgs {
		count = numMsgs
	}
	return msgs[:count], nil
}

// WriteMsgs writes the messages to the channel in the given order and returns
// the number of messages accepted by the driver.
// A negative timeout enqueues without waiting and returns the queued count
// immediately. With a timeout >= 0 the call waits up to timeout milliseconds
// for transmission; if not all messages went out in time the transmitted
// count is returned together with the timeout failure.
func (p *PassThru) WriteMsgs(channel ChannelID, msgs []PassThruMsg, timeout int) (uint32, error) {
	if len(msgs) == 0 {
		return 0, nil
	}
	if timeout < 0 {
		timeout = 0
	}

	count := uint32(len(msgs))
	ret, _, _ := p.pWriteMsgs.Call(
		uintptr(channel),
		uintptr(unsafe.Pointer(&msgs[0])),
		uintptr(unsafe.Pointer(&count)),
		uintptr(timeout))
	runtime.KeepAlive(msgs)

	if err := CheckStatus(Status(ret)); err != nil {
		return count, err
	}
	return count, nil
}

// StartPeriodicMsg queues the message for automatic retransmission every
// interval milliseconds until stopped. Valid intervals are 5 to 65535 ms;
// values outside this range are rejected before any native call, as driver
// behaviour for them is unspecified.
func (p *PassThru) StartPeriodicMsg(channel ChannelID, msg *PassThruMsg, interval uint32) (MsgID, error) {
	if err := validateInterval(interval); err != nil {
		return 0, err
	}

	var msgID uint32
	ret, _, _ := p.pStartPeriodicMsg.Call(
		uintptr(channel),
		uintptr(unsafe.Pointer(msg)),
		uintptr(unsafe.Pointer(&msgID)),
		uintptr(interval))
	runtime.KeepAlive(msg)

	if err := CheckStatus(Status(ret)); err != nil {
		return 0, err
	}
	return MsgID(msgID), nil
}

// StopPeriodicMsg stops a periodic message started with StartPeriodicMsg
func (p *PassThru) StopPeriodicMsg(channel ChannelID, msgID MsgID) error {
	ret, _, _ := p.pStopPeriodicMsg.Call(uintptr(channel), uintptr(msgID))
	return CheckStatus(Status(ret))
}

// StartMsgFilter configures message filtering on the channel and returns the
// filter handle.
// flowControl is only meaningful for FLOW_CONTROL_FILTER; for PASS_FILTER and
// BLOCK_FILTER it is omitted from the native call even if supplied. A nil
// flowControl with FLOW_CONTROL_FILTER forwards a null pointer, which the
// driver reports as ERR_NULL_PARAMETER; no default is substituted.
func (p *PassThru) StartMsgFilter(channel ChannelID, filterType FilterType, mask, pattern, flowControl *PassThruMsg) (FilterID, error) {
	var filterID uint32

	var flowPtr unsafe.Pointer
	if filterType == FLOW_CONTROL_FILTER && flowControl != nil {
		flowPtr = unsafe.Pointer(flowControl)
	}

	ret, _, _ := p.pStartMsgFilter.Call(
		uintptr(channel),
		uintptr(filterType),
		uintptr(unsafe.Pointer(mask)),
		uintptr(unsafe.Pointer(pattern)),
		uintptr(flowPtr),
		uintptr(unsafe.Pointer(&filterID)))
	runtime.KeepAlive(mask)
	runtime.KeepAlive(pattern)
	runtime.KeepAlive(flowControl)

	if err := CheckStatus(Status(ret)); err != nil {
		return 0, err
	}
	return FilterID(filterID), nil
}

// StopMsgFilter removes a filter started with StartMsgFilter
func (p *PassThru) StopMsgFilter(channel ChannelID, filterID FilterID) error {
	ret, _, _ := p.pStopMsgFilter.Call(uintptr(channel), uintptr(filterID))
	return CheckStatus(Status(ret))
}

// SetProgrammingVoltage applies a programming voltage to the given connector
// pin. voltage is either a millivolt value within [MIN_VOLTAGE, MAX_VOLTAGE]
// or one of the SHORT_TO_GROUND / VOLTAGE_OFF sentinels; anything else is
// rejected before any native call.
func (p *PassThru) SetProgrammingVoltage(device DeviceID, pin ProgrammingPin, voltage uint32) error {
	if err := validateVoltage(voltage); err != nil {
		return err
	}

	ret, _, _ := p.pSetProgrammingVoltage.Call(uintptr(device), uintptr(pin), uintptr(voltage))
	return CheckStatus(Status(ret))
}

// ReadVersion reads the device firmware, interface DLL and supported API
// version strings
func (p *PassThru) ReadVersion(device DeviceID) (firmware string, dll string, api string, err error) {
	fwBuf := make([]byte, LENGTH_STRING_BUFFER)
	dllBuf := make([]byte, LENGTH_STRING_BUFFER)
	apiBuf := make([]byte, LENGTH_STRING_BUFFER)

	ret, _, _ := p.pReadVersion.Call(
		uintptr(device),
		uintptr(unsafe.Pointer(&fwBuf[0])),
		uintptr(unsafe.Pointer(&dllBuf[0])),
		uintptr(unsafe.Pointer(&apiBuf[0])))
	runtime.KeepAlive(fwBuf)
	runtime.KeepAlive(dllBuf)
	runtime.KeepAlive(apiBuf)

	if err := CheckStatus(Status(ret)); err != nil {
		return "", "", "", err
	}
	return windows.ByteSliceToString(fwBuf), windows.ByteSliceToString(dllBuf), windows.ByteSliceToString(apiBuf), nil
}

// GetLastError retrieves the free text description of the most recent
// failure from the interface. Deliberately exempt from status code
// translation: its whole purpose is diagnosing a preceding failure, so the
// text buffer is returned regardless of what the call itself reports.
func (p *PassThru) GetLastError() string {
	buf := make([]byte, LENGTH_STRING_BUFFER)
	p.pGetLastError.Call(uintptr(unsafe.Pointer(&buf[0])))
	runtime.KeepAlive(buf)
	return windows.ByteSliceToString(buf)
}

// Ioctl issues a generic ioctl against a channel or device handle. input and
// output are ioctl specific structures passed by reference, either may be
// nil. The pointed-to buffers must stay alive across the call; prefer the
// typed Ioctl* wrappers which handle that.
func (p *PassThru) Ioctl(handle uint32, ioctlID IoctlID, input, output unsafe.Pointer) error {
	ret, _, _ := p.pIoctl.Call(uintptr(handle), uintptr(ioctlID), uintptr(input), uintptr(output))
	return CheckStatus(Status(ret))
}

// IoctlGetConfig queries channel configuration parameters and returns them
// as a parameter to value mapping.
// Driver internal parameters (P1_MIN, P2_MIN, P2_MAX, P3_MAX, P4_MAX) are
// stripped from the request with a warning each instead of being forwarded;
// the result contains only the parameters actually queried.
func (p *PassThru) IoctlGetConfig(channel ChannelID, params []IoctlParameter) (map[IoctlParameter]uint32, error) {
	keep, dropped := splitConfigParams(params)
	for _, par := range dropped {
		p.log.Warningf("%v not supported by interface, ignoring", par)
	}

	values := make(map[IoctlParameter]uint32, len(keep))
	if len(keep) == 0 {
		return values, nil
	}

	configs := make([]SConfig, len(keep))
	for i, par := range keep {
		configs[i] = SConfig{Parameter: par}
	}
	list := newSConfigList(configs)

	if err := p.Ioctl(uint32(channel), GET_CONFIG, unsafe.Pointer(&list), nil); err != nil {
		return nil, err
	}
	runtime.KeepAlive(configs)

	for _, cfg := range configs {
		values[cfg.Parameter] = cfg.Value
	}
	return values, nil
}

// IoctlSetConfig sets channel configuration parameters from the given
// mapping. No driver internal parameter filtering is applied here, callers
// are trusted to only pass settable parameters.
func (p *PassThru) IoctlSetConfig(channel ChannelID, params map[IoctlParameter]uint32) error {
	if len(params) == 0 {
		return nil
	}

	configs := make([]SConfig, 0, len(params))
	for par, val := range params {
		configs = append(configs, SConfig{Parameter: par, Value: val})
	}
	list := newSConfigList(configs)

	err := p.Ioctl(uint32(channel), SET_CONFIG, unsafe.Pointer(&list), nil)
	runtime.KeepAlive(configs)
	return err
}

// IoctlReadVbatt reads the vehicle battery voltage at pin 16 of the J1962
// connector, in millivolt
func (p *PassThru) IoctlReadVbatt(device DeviceID) (uint32, error) {
	var voltage uint32
	if err := p.Ioctl(uint32(device), READ_VBATT, nil, unsafe.Pointer(&voltage)); err != nil {
		return 0, err
	}
	return voltage, nil
}

// IoctlReadProgVoltage reads the currently applied programming voltage, in
// millivolt
func (p *PassThru) IoctlReadProgVoltage(device DeviceID) (uint32, error) {
	var voltage uint32
	if err := p.Ioctl(uint32(device), READ_PROG_VOLTAGE, nil, unsafe.Pointer(&voltage)); err != nil {
		return 0, err
	}
	return voltage, nil
}

// IoctlFiveBaudInit initiates an ISO 9141 five baud handshake towards the
// target address and returns the two key bytes reported by the ECU
func (p *PassThru) IoctlFiveBaudInit(channel ChannelID, addr byte) ([]byte, error) {
	input := []byte{addr}
	output := []byte{0xFF, 0xFF}
	inArr := newSByteArray(input)
	outArr := newSByteArray(output)

	err := p.Ioctl(uint32(channel), FIVE_BAUD_INIT, unsafe.Pointer(&inArr), unsafe.Pointer(&outArr))
	runtime.KeepAlive(input)
	runtime.KeepAlive(output)
	if err != nil {
		return nil, err
	}

	count := outArr.NumOfBytes
	if count > uint32(len(output)) {
		count = uint32(len(output))
	}
	return output[:count], nil
}

// IoctlFastInit initiates an ISO 14230 fast handshake. msg is the start
// communication request to transmit, nil sends an empty message structure.
// Returns the response message reported by the ECU.
func (p *PassThru) IoctlFastInit(channel ChannelID, msg *PassThruMsg) (*PassThruMsg, error) {
	if msg == nil {
		msg = &PassThruMsg{}
	}
	var response PassThruMsg

	err := p.Ioctl(uint32(channel), FAST_INIT, unsafe.Pointer(msg), unsafe.Pointer(&response))
	runtime.KeepAlive(msg)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// IoctlClearTxBuffer discards all messages queued for transmission
func (p *PassThru) IoctlClearTxBuffer(channel ChannelID) error {
	return p.Ioctl(uint32(channel), CLEAR_TX_BUFFER, nil, nil)
}

// IoctlClearRxBuffer discards all received messages not yet read
func (p *PassThru) IoctlClearRxBuffer(channel ChannelID) error {
	return p.Ioctl(uint32(channel), CLEAR_RX_BUFFER, nil, nil)
}

// IoctlClearPeriodicMsgs stops and removes all periodic messages
func (p *PassThru) IoctlClearPeriodicMsgs(channel ChannelID) error {
	return p.Ioctl(uint32(channel), CLEAR_PERIODIC_MSGS, nil, nil)
}

// IoctlClearMsgFilters removes all configured message filters
func (p *PassThru) IoctlClearMsgFilters(channel ChannelID) error {
	return p.Ioctl(uint32(channel), CLEAR_MSG_FILTERS, nil, nil)
}

// IoctlClearFunctMsgLookupTable clears the functional address look-up table
func (p *PassThru) IoctlClearFunctMsgLookupTable(channel ChannelID) error {
	return p.Ioctl(uint32(channel), CLEAR_FUNCT_MSG_LOOKUP_TABLE, nil, nil)
}

// IoctlAddToFunctMsgLookupTable adds functional addresses to the look-up
// table
func (p *PassThru) IoctlAddToFunctMsgLookupTable(channel ChannelID, addrs []byte) error {
	arr := newSByteArray(addrs)
	err := p.Ioctl(uint32(channel), ADD_TO_FUNCT_MSG_LOOKUP_TABLE, unsafe.Pointer(&arr), nil)
	runtime.KeepAlive(addrs)
	return err
}

// IoctlDeleteFromFunctMsgLookupTable removes functional addresses from the
// look-up table
func (p *PassThru) IoctlDeleteFromFunctMsgLookupTable(channel ChannelID, addrs []byte) error {
	arr := newSByteArray(addrs)
	err := p.Ioctl(uint32(channel), DELETE_FROM_FUNCT_MSG_LOOKUP_TABLE, unsafe.Pointer(&arr), nil)
	runtime.KeepAlive(addrs)
	return err
}
