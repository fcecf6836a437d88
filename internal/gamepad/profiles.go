package gamepad

// Raw layouts below follow what the joystick hosts report: physical axes
// and buttons in driver order, with each hat appended after the buttons as
// four entries (up, right, down, left). Y axes report down as positive and
// are inverted so that up is positive in the canonical state.

// GenericProfileName names the catch-all profile closing every database.
const GenericProfileName = "Generic"

var eightBitDoPro2Profile = Profile{
	Name: "8BitDo Pro 2",
	Match: MatchRule{
		Patterns: []string{`(?i)8bitdo pro 2`},
		Vendors:  []string{"2dc8"},
		Products: []string{"6003", "6006"},
	},
	Axes: AxisSet{
		LeftX:        stick(0, false),
		LeftY:        stick(1, true),
		RightX:       stick(2, false),
		RightY:       stick(3, true),
		LeftTrigger:  trigger(4, NegativeOneReleased),
		RightTrigger: trigger(5, NegativeOneReleased),
	},
	Buttons: map[Button]ButtonMapping{
		ButtonA:       {Index: 0},
		ButtonB:       {Index: 1},
		ButtonX:       {Index: 3},
		ButtonY:       {Index: 4},
		ButtonLB:      {Index: 6},
		ButtonRB:      {Index: 7},
		ButtonLT:      {Index: 8},
		ButtonRT:      {Index: 9},
		ButtonSelect:  {Index: 10},
		ButtonStart:   {Index: 11},
		ButtonHome:    {Index: 12},
		ButtonL3:      {Index: 13},
		ButtonR3:      {Index: 14},
		ButtonCapture: {Index: 15},
	},
	Quirks: Quirks{
		DpadAxes: &DpadAxes{X: 6, Y: 7},
	},
}

var eightBitDoProfile = Profile{
	Name: "8BitDo",
	Match: MatchRule{
		Patterns: []string{`(?i)8bitdo`},
		Vendors:  []string{"2dc8"},
	},
	Axes: AxisSet{
		LeftX:        stick(0, false),
		LeftY:        stick(1, true),
		RightX:       stick(2, false),
		RightY:       stick(3, true),
		LeftTrigger:  trigger(4, NegativeOneReleased),
		RightTrigger: trigger(5, NegativeOneReleased),
	},
	Buttons: map[Button]ButtonMapping{
		ButtonA:         {Index: 0},
		ButtonB:         {Index: 1},
		ButtonX:         {Index: 2},
		ButtonY:         {Index: 3},
		ButtonLB:        {Index: 4},
		ButtonRB:        {Index: 5},
		ButtonSelect:    {Index: 6},
		ButtonStart:     {Index: 7},
		ButtonL3:        {Index: 8},
		ButtonR3:        {Index: 9},
		ButtonHome:      {Index: 10},
		ButtonDpadUp:    {Index: 11},
		ButtonDpadRight: {Index: 12},
		ButtonDpadDown:  {Index: 13},
		ButtonDpadLeft:  {Index: 14},
	},
	Quirks: Quirks{
		SwapFaceButtons: true,
	},
}

var xboxProfile = Profile{
	Name: "Xbox",
	Match: MatchRule{
		Patterns: []string{`(?i)xbox`, `(?i)x-box`, `(?i)xinput`},
		Vendors:  []string{"045e"},
	},
	Axes:    xinputAxes(),
	Buttons: xinputButtons(),
}

var dualSenseProfile = Profile{
	Name: "DualSense",
	Match: MatchRule{
		Patterns: []string{`(?i)dualsense`},
		Vendors:  []string{"054c"},
		Products: []string{"0ce6", "0df2"},
	},
	Axes:    xinputAxes(),
	Buttons: playstationButtons(),
}

var dualShock4Profile = Profile{
	Name: "DualShock 4",
	Match: MatchRule{
		Patterns: []string{`(?i)dualshock`, `(?i)^wireless controller\b`},
		Vendors:  []string{"054c"},
		Products: []string{"05c4", "09cc"},
	},
	Axes:    xinputAxes(),
	Buttons: playstationButtons(),
}

var playstationProfile = Profile{
	Name: "PlayStation",
	Match: MatchRule{
		Patterns: []string{`(?i)playstation`, `(?i)\bsony\b`},
		Vendors:  []string{"054c"},
	},
	Axes:    xinputAxes(),
	Buttons: playstationButtons(),
}

var switchProProfile = Profile{
	Name: "Switch Pro",
	Match: MatchRule{
		Patterns: []string{`(?i)pro controller`},
		Vendors:  []string{"057e"},
		Products: []string{"2009"},
	},
	Axes: AxisSet{
		LeftX:  stick(0, false),
		LeftY:  stick(1, true),
		RightX: stick(2, false),
		RightY: stick(3, true),
	},
	Buttons: nintendoButtons(),
	Quirks: Quirks{
		SwapFaceButtons:    true,
		TriggersAreButtons: true,
	},
}

var nintendoProfile = Profile{
	Name: "Nintendo",
	Match: MatchRule{
		Patterns: []string{`(?i)nintendo`, `(?i)joy-con`},
		Vendors:  []string{"057e"},
	},
	Axes: AxisSet{
		LeftX:  stick(0, false),
		LeftY:  stick(1, true),
		RightX: stick(2, false),
		RightY: stick(3, true),
	},
	Buttons: nintendoButtons(),
	Quirks: Quirks{
		SwapFaceButtons:    true,
		TriggersAreButtons: true,
	},
}

// Logitech F310/F510 in DirectInput mode: digital triggers, D-pad on a hat
// the driver exposes as two axes.
var logitechDirectInputProfile = Profile{
	Name: "Logitech DirectInput",
	Match: MatchRule{
		Patterns: []string{`(?i)logitech dual action`, `(?i)logitech.*rumblepad`},
		Vendors:  []string{"046d"},
		Products: []string{"c216", "c218", "c219"},
	},
	Axes: AxisSet{
		LeftX:  stick(0, false),
		LeftY:  stick(1, true),
		RightX: stick(2, false),
		RightY: stick(3, true),
	},
	Buttons: map[Button]ButtonMapping{
		ButtonX:      {Index: 0},
		ButtonA:      {Index: 1},
		ButtonB:      {Index: 2},
		ButtonY:      {Index: 3},
		ButtonLB:     {Index: 4},
		ButtonRB:     {Index: 5},
		ButtonLT:     {Index: 6},
		ButtonRT:     {Index: 7},
		ButtonSelect: {Index: 8},
		ButtonStart:  {Index: 9},
		ButtonL3:     {Index: 10},
		ButtonR3:     {Index: 11},
	},
	Quirks: Quirks{
		TriggersAreButtons: true,
		DpadAxes:           &DpadAxes{X: 4, Y: 5},
	},
}

var genericProfile = Profile{
	Name: GenericProfileName,
	Match: MatchRule{
		Patterns: []string{`.*`},
	},
	Axes:    xinputAxes(),
	Buttons: xinputButtons(),
}

// builtinProfiles is ordered most-specific-first.
var builtinProfiles = []Profile{
	eightBitDoPro2Profile,
	eightBitDoProfile,
	xboxProfile,
	dualSenseProfile,
	dualShock4Profile,
	playstationProfile,
	switchProProfile,
	nintendoProfile,
	logitechDirectInputProfile,
	genericProfile,
}

func xinputAxes() AxisSet {
	return AxisSet{
		LeftX:        stick(0, false),
		LeftY:        stick(1, true),
		RightX:       stick(2, false),
		RightY:       stick(3, true),
		LeftTrigger:  trigger(4, NegativeOneReleased),
		RightTrigger: trigger(5, NegativeOneReleased),
	}
}

func xinputButtons() map[Button]ButtonMapping {
	return map[Button]ButtonMapping{
		ButtonA:         {Index: 0},
		ButtonB:         {Index: 1},
		ButtonX:         {Index: 2},
		ButtonY:         {Index: 3},
		ButtonLB:        {Index: 4},
		ButtonRB:        {Index: 5},
		ButtonSelect:    {Index: 6},
		ButtonStart:     {Index: 7},
		ButtonL3:        {Index: 8},
		ButtonR3:        {Index: 9},
		ButtonHome:      {Index: 10},
		ButtonDpadUp:    {Index: 11},
		ButtonDpadRight: {Index: 12},
		ButtonDpadDown:  {Index: 13},
		ButtonDpadLeft:  {Index: 14},
	}
}

func playstationButtons() map[Button]ButtonMapping {
	return map[Button]ButtonMapping{
		ButtonA:         {Index: 0}, // Cross
		ButtonB:         {Index: 1}, // Circle
		ButtonX:         {Index: 2}, // Square
		ButtonY:         {Index: 3}, // Triangle
		ButtonSelect:    {Index: 4}, // Share / Create
		ButtonHome:      {Index: 5}, // PS
		ButtonStart:     {Index: 6}, // Options
		ButtonL3:        {Index: 7},
		ButtonR3:        {Index: 8},
		ButtonLB:        {Index: 9},  // L1
		ButtonRB:        {Index: 10}, // R1
		ButtonTouchpad:  {Index: 11},
		ButtonDpadUp:    {Index: 12},
		ButtonDpadRight: {Index: 13},
		ButtonDpadDown:  {Index: 14},
		ButtonDpadLeft:  {Index: 15},
	}
}

// nintendoButtons keeps the Xbox-style order for the first eleven buttons
// (face, shoulders, -, +, stick clicks, Home). Capture, ZL and ZR take the
// next free slots; a profiles file can remap them.
func nintendoButtons() map[Button]ButtonMapping {
	return map[Button]ButtonMapping{
		ButtonA:         {Index: 0},
		ButtonB:         {Index: 1},
		ButtonX:         {Index: 2},
		ButtonY:         {Index: 3},
		ButtonLB:        {Index: 4},
		ButtonRB:        {Index: 5},
		ButtonSelect:    {Index: 6}, // -
		ButtonStart:     {Index: 7}, // +
		ButtonL3:        {Index: 8},
		ButtonR3:        {Index: 9},
		ButtonHome:      {Index: 10},
		ButtonCapture:   {Index: 11},
		ButtonLT:        {Index: 12}, // ZL
		ButtonRT:        {Index: 13}, // ZR
		ButtonDpadUp:    {Index: 14},
		ButtonDpadRight: {Index: 15},
		ButtonDpadDown:  {Index: 16},
		ButtonDpadLeft:  {Index: 17},
	}
}
