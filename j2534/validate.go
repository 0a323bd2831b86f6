package j2534

import "fmt"

// The J2534-1 timing windows the driver manages on its own. Forwarding them
// through GET_CONFIG/SET_CONFIG is rejected by compliant interfaces, so they
// are stripped from requests instead.
var driverInternalParams = map[IoctlParameter]bool{
	P1_MIN: true,
	P2_MIN: true,
	P2_MAX: true,
	P3_MAX: true,
	P4_MAX: true,
}

// splitConfigParams partitions a parameter list into the parameters that may
// be forwarded to the driver and the driver internal ones that must not be.
// Order is preserved.
func splitConfigParams(params []IoctlParameter) (keep []IoctlParameter, dropped []IoctlParameter) {
	for _, p := range params {
		if driverInternalParams[p] {
			dropped = append(dropped, p)
		} else {
			keep = append(keep, p)
		}
	}
	return keep, dropped
}

// validateInterval checks the periodic message interval before any native
// call is made, as driver behaviour outside this range is unspecified
func validateInterval(interval uint32) error {
	if interval < MIN_PERIODIC_INTERVAL || interval > MAX_PERIODIC_INTERVAL {
		return fmt.Errorf("%w: periodic message interval %v out of range [%v, %v]",
			ErrPrecondition, interval, MIN_PERIODIC_INTERVAL, MAX_PERIODIC_INTERVAL)
	}
	return nil
}

// validateVoltage checks a programming voltage before any native call is
// made. Valid values are the two sentinels or a millivolt value within
// [MIN_VOLTAGE, MAX_VOLTAGE].
func validateVoltage(voltage uint32) error {
	if voltage == SHORT_TO_GROUND || voltage == VOLTAGE_OFF {
		return nil
	}
	if voltage < MIN_VOLTAGE || voltage > MAX_VOLTAGE {
		return fmt.Errorf("%w: programming voltage %v out of range [%v, %v] mV",
			ErrPrecondition, voltage, MIN_VOLTAGE, MAX_VOLTAGE)
	}
	return nil
}
