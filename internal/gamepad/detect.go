package gamepad

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Hosts embed USB codes in identifier strings in one of these two forms.
var (
	vendorProductRe = regexp.MustCompile(`(?i)vendor:\s*([0-9a-f]{1,4})\s*product:\s*([0-9a-f]{1,4})`)
	prefixCodesRe   = regexp.MustCompile(`(?i)^\s*([0-9a-f]{1,4})-([0-9a-f]{1,4})-`)
)

// DeviceIDs are the vendor and product codes parsed out of an identifier,
// as lower-case four-digit hex.
type DeviceIDs struct {
	Vendor  string `json:"vendor"`
	Product string `json:"product"`
}

// ParseDeviceIDs extracts vendor/product codes from an identifier string.
func ParseDeviceIDs(id string) (DeviceIDs, bool) {
	m := vendorProductRe.FindStringSubmatch(id)
	if m == nil {
		m = prefixCodesRe.FindStringSubmatch(id)
	}
	if m == nil {
		return DeviceIDs{}, false
	}
	vendor, ok1 := normalizeCode(m[1])
	product, ok2 := normalizeCode(m[2])
	if !ok1 || !ok2 {
		return DeviceIDs{}, false
	}
	return DeviceIDs{Vendor: vendor, Product: product}, true
}

func normalizeCode(s string) (string, bool) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%04x", v), true
}

// MatchReason records which rule selected a profile.
type MatchReason int

const (
	MatchPattern MatchReason = iota
	MatchVendor
	MatchVendorProduct
	MatchOverride
)

func (r MatchReason) String() string {
	switch r {
	case MatchPattern:
		return "pattern"
	case MatchVendor:
		return "vendor"
	case MatchVendorProduct:
		return "vendor+product"
	case MatchOverride:
		return "override"
	default:
		return "unknown"
	}
}

func (r MatchReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Detection is the result of resolving a profile, kept for diagnostics.
type Detection struct {
	Profile *Profile    `json:"-"`
	Reason  MatchReason `json:"reason"`
	Detail  string      `json:"detail"`
	IDs     *DeviceIDs  `json:"ids,omitempty"`
}

// Fallback reports whether only the generic profile matched.
func (d Detection) Fallback() bool {
	return d.Profile != nil && d.Profile.Name == GenericProfileName
}

// Detect selects the first profile, in declared order, matching the
// identifier. It never returns a nil profile.
func (db *Database) Detect(id string) Detection {
	ids, hasIDs := ParseDeviceIDs(id)

	var parsed *DeviceIDs
	if hasIDs {
		parsed = &ids
	}

	for _, e := range db.entries {
		for _, re := range e.patterns {
			if re.MatchString(id) {
				return Detection{Profile: e.profile, Reason: MatchPattern, Detail: re.String(), IDs: parsed}
			}
		}
		if !hasIDs {
			continue
		}
		vendorOK := contains(e.vendors, ids.Vendor)
		if vendorOK && len(e.products) == 0 {
			return Detection{Profile: e.profile, Reason: MatchVendor, Detail: ids.Vendor, IDs: parsed}
		}
		if vendorOK && contains(e.products, ids.Product) {
			return Detection{Profile: e.profile, Reason: MatchVendorProduct, Detail: ids.Vendor + ":" + ids.Product, IDs: parsed}
		}
	}

	// Unreachable while the database ends with its catch-all.
	last := db.entries[len(db.entries)-1]
	return Detection{Profile: last.profile, Reason: MatchPattern, IDs: parsed}
}

// DetectSnapshot resolves the profile for a raw device snapshot.
func (db *Database) DetectSnapshot(raw RawSnapshot) *Profile {
	return db.Detect(raw.ID).Profile
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
