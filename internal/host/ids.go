// Package host adapts platform joystick APIs to gamepad.Host.
//
// The two backends render identifiers differently on purpose, matching the
// two embeddings the detector understands:
//
//	SDL:  "Xbox Series X Controller (Vendor: 045e Product: 0b12)"
//	GLFW: "045e-0b12-Xbox Series X Controller"
package host

import (
	"fmt"
	"strconv"
)

// VendorProductIdentifier renders the "Vendor: xxxx Product: xxxx" form.
// Zero codes are left out.
func VendorProductIdentifier(name string, vendor, product uint16) string {
	if vendor == 0 && product == 0 {
		return name
	}
	return fmt.Sprintf("%s (Vendor: %04x Product: %04x)", name, vendor, product)
}

// PrefixIdentifier renders the "xxxx-xxxx-Name" form from an SDL-style
// joystick GUID, as reported by GLFW. Unparseable GUIDs yield the bare name.
func PrefixIdentifier(name, guid string) string {
	vendor, product, ok := guidCodes(guid)
	if !ok {
		return name
	}
	return fmt.Sprintf("%04x-%04x-%s", vendor, product, name)
}

// guidCodes reads the little-endian vendor and product words at bytes 4 and
// 8 of a 16-byte hex GUID.
func guidCodes(guid string) (vendor, product uint16, ok bool) {
	if len(guid) != 32 {
		return 0, 0, false
	}
	vendor, ok1 := leWord(guid[8:12])
	product, ok2 := leWord(guid[16:20])
	if !ok1 || !ok2 || (vendor == 0 && product == 0) {
		return 0, 0, false
	}
	return vendor, product, true
}

func leWord(hex string) (uint16, bool) {
	v, err := strconv.ParseUint(hex, 16, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v>>8) | uint16(v&0xff)<<8, true
}
