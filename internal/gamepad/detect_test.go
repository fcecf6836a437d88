package gamepad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeviceIDs(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		want   DeviceIDs
		wantOK bool
	}{
		{"vendor product form", "Wireless Controller (STANDARD GAMEPAD Vendor: 054c Product: 09cc)", DeviceIDs{"054c", "09cc"}, true},
		{"prefix form", "2dc8-6003-8BitDo Pro 2", DeviceIDs{"2dc8", "6003"}, true},
		{"upper case", "Pad (Vendor: 2DC8 Product: 6003)", DeviceIDs{"2dc8", "6003"}, true},
		{"short codes padded", "pad (Vendor: 45e Product: 2ea)", DeviceIDs{"045e", "02ea"}, true},
		{"short prefix padded", "45e-2ea-Xbox One S", DeviceIDs{"045e", "02ea"}, true},
		{"no codes", "Xbox Wireless Controller", DeviceIDs{}, false},
		{"empty", "", DeviceIDs{}, false},
		{"prefix not at start", "pad 2dc8-6003-x", DeviceIDs{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDeviceIDs(tt.id)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectBuiltins(t *testing.T) {
	db := DefaultDatabase()

	tests := []struct {
		id      string
		profile string
		reason  MatchReason
	}{
		{"Xbox Wireless Controller", "Xbox", MatchPattern},
		{"Xbox 360 Controller (XInput STANDARD GAMEPAD)", "Xbox", MatchPattern},
		{"Wireless Controller (STANDARD GAMEPAD Vendor: 2dc8 Product: 6003)", "8BitDo Pro 2", MatchVendorProduct},
		{"2dc8-6003-Wireless Gamepad", "8BitDo Pro 2", MatchVendorProduct},
		{"2dc8-6006-8BitDo Pro 2", "8BitDo Pro 2", MatchPattern},
		{"2dc8-3106-8BitDo SN30 Pro", "8BitDo", MatchPattern},
		{"Unknown (Vendor: 2dc8 Product: 3106)", "8BitDo", MatchVendor},
		{"DualSense Wireless Controller", "DualSense", MatchPattern},
		{"054c-0ce6-Wireless Controller", "DualSense", MatchVendorProduct},
		{"Wireless Controller", "DualShock 4", MatchPattern},
		{"Sony Interactive Entertainment Gamepad", "PlayStation", MatchPattern},
		{"Pro Controller (Vendor: 057e Product: 2009)", "Switch Pro", MatchPattern},
		{"Joy-Con (L)", "Nintendo", MatchPattern},
		{"Logitech Dual Action", "Logitech DirectInput", MatchPattern},
		{"046d-c216-Gamepad", "Logitech DirectInput", MatchVendorProduct},
		{"Some Arcade Stick", GenericProfileName, MatchPattern},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			det := db.Detect(tt.id)
			require.NotNil(t, det.Profile)
			assert.Equal(t, tt.profile, det.Profile.Name)
			assert.Equal(t, tt.reason, det.Reason)
		})
	}
}

func TestDetectAlwaysReturnsProfile(t *testing.T) {
	db := DefaultDatabase()
	for _, id := range []string{"", " ", "\x00\xff", "Vendor: zzzz Product: 1", "ffff-ffff-"} {
		det := db.Detect(id)
		require.NotNil(t, det.Profile, "id %q", id)
	}

	det := db.Detect("Mystery Pad")
	assert.True(t, det.Fallback())
	assert.Nil(t, det.IDs)
}

func TestDetectVendorOnlyDoesNotMatchProductList(t *testing.T) {
	db := DefaultDatabase()

	// 054c with an unknown product skips the DualSense and DualShock 4
	// product lists and lands on the vendor-wide PlayStation profile.
	det := db.Detect("Gamepad (Vendor: 054c Product: 1234)")
	assert.Equal(t, "PlayStation", det.Profile.Name)
	assert.Equal(t, MatchVendor, det.Reason)
	require.NotNil(t, det.IDs)
	assert.Equal(t, "1234", det.IDs.Product)
}

func TestDetectFirstMatchWins(t *testing.T) {
	broad := Profile{Name: "Broad", Match: MatchRule{Patterns: []string{`(?i)pad`}}}
	narrow := Profile{Name: "Narrow", Match: MatchRule{Patterns: []string{`(?i)super pad`}}}

	db, err := NewDatabase(broad, narrow)
	require.NoError(t, err)
	assert.Equal(t, "Broad", db.Detect("Super Pad").Profile.Name)

	db, err = NewDatabase(narrow, broad)
	require.NoError(t, err)
	assert.Equal(t, "Narrow", db.Detect("Super Pad").Profile.Name)
	assert.Equal(t, "Broad", db.Detect("Other Pad").Profile.Name)
}

func TestDetectSnapshot(t *testing.T) {
	p := DefaultDatabase().DetectSnapshot(RawSnapshot{ID: "Xbox Wireless Controller"})
	require.NotNil(t, p)
	assert.Equal(t, "Xbox", p.Name)
}

func TestMatchReasonText(t *testing.T) {
	b, err := MatchVendorProduct.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "vendor+product", string(b))
	assert.Equal(t, "override", MatchOverride.String())
}
