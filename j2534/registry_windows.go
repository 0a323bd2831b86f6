//go:build windows

package j2534

import (
	"golang.org/x/sys/windows/registry"
)

// J2534 04.04 interface DLLs register themselves under this key. The
// interfaces are 32 bit, so on a 64 bit OS they live in the WOW64 view of
// the registry, which the WOW64_32KEY access flag selects on either
// architecture.
const passThruSupportKey = `SOFTWARE\PassThruSupport.04.04`

// GetInterfaces enumerates all registered J2534 04.04 Pass-Thru interfaces
// and returns a mapping from their display name to the absolute filepath of
// the interface DLL. The name is meant for user facing selection, the path
// feeds into LoadInterface. Registrations missing either value are skipped.
func GetInterfaces() (map[string]string, error) {
	baseKey, err := registry.OpenKey(registry.LOCAL_MACHINE, passThruSupportKey,
		registry.READ|registry.WOW64_32KEY)
	if err != nil {
		return nil, err
	}
	defer baseKey.Close()

	deviceKeys, err := baseKey.ReadSubKeyNames(-1)
	if err != nil {
		return nil, err
	}

	interfaces := make(map[string]string, len(deviceKeys))
	for _, deviceKey := range deviceKeys {
		key, err := registry.OpenKey(baseKey, deviceKey, registry.QUERY_VALUE|registry.WOW64_32KEY)
		if err != nil {
			continue
		}

		name, _, errName := key.GetStringValue("Name")
		library, _, errLib := key.GetStringValue("FunctionLibrary")
		key.Close()
		if errName != nil || errLib != nil {
			continue
		}

		interfaces[name] = library
	}

	return interfaces, nil
}
