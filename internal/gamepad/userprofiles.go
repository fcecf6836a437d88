package gamepad

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type profileFile struct {
	Profiles []profileDoc `yaml:"profiles"`
}

type profileDoc struct {
	Name  string `yaml:"name"`
	Match struct {
		Patterns []string `yaml:"patterns"`
		Vendors  []string `yaml:"vendors"`
		Products []string `yaml:"products"`
	} `yaml:"match"`
	Axes    map[string]*axisDoc  `yaml:"axes"`
	Buttons map[string]buttonDoc `yaml:"buttons"`
	Quirks  struct {
		SwapFaceButtons    bool `yaml:"swap_face_buttons"`
		TriggersAreButtons bool `yaml:"triggers_are_buttons"`
		DpadAxes           *struct {
			X int `yaml:"x"`
			Y int `yaml:"y"`
		} `yaml:"dpad_axes"`
	} `yaml:"quirks"`
}

type axisDoc struct {
	Index    int     `yaml:"index"`
	Invert   bool    `yaml:"invert"`
	Range    string  `yaml:"range"`
	Deadzone float64 `yaml:"deadzone"`
}

type buttonDoc struct {
	Index     int     `yaml:"index"`
	Threshold float64 `yaml:"threshold"`
}

// LoadProfilesFile reads extra profiles from a YAML file.
func LoadProfilesFile(path string) ([]Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profiles: %w", err)
	}
	defer f.Close()

	profiles, err := LoadProfiles(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return profiles, nil
}

// LoadProfiles decodes a YAML document holding a "profiles" list. Profiles
// keep their file order.
func LoadProfiles(r io.Reader) ([]Profile, error) {
	var doc profileFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	out := make([]Profile, 0, len(doc.Profiles))
	for i, pd := range doc.Profiles {
		p, err := pd.profile()
		if err != nil {
			return nil, fmt.Errorf("profile #%d (%s): %w", i+1, pd.Name, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (pd profileDoc) profile() (Profile, error) {
	p := Profile{
		Name: pd.Name,
		Match: MatchRule{
			Patterns: pd.Match.Patterns,
			Vendors:  pd.Match.Vendors,
			Products: pd.Match.Products,
		},
		Buttons: make(map[Button]ButtonMapping, len(pd.Buttons)),
		Quirks: Quirks{
			SwapFaceButtons:    pd.Quirks.SwapFaceButtons,
			TriggersAreButtons: pd.Quirks.TriggersAreButtons,
		},
	}
	if pd.Name == "" {
		return Profile{}, fmt.Errorf("missing name")
	}
	if d := pd.Quirks.DpadAxes; d != nil {
		p.Quirks.DpadAxes = &DpadAxes{X: d.X, Y: d.Y}
	}

	for name, ad := range pd.Axes {
		a, err := ParseAxis(name)
		if err != nil {
			return Profile{}, err
		}
		if ad == nil {
			continue
		}
		kind, err := ParseRangeKind(ad.Range)
		if err != nil {
			return Profile{}, fmt.Errorf("axis %s: %w", name, err)
		}
		if !(ad.Deadzone >= 0 && ad.Deadzone < 1) {
			return Profile{}, fmt.Errorf("axis %s: deadzone %v out of [0,1)", name, ad.Deadzone)
		}
		p.Axes.set(a, &AxisMapping{
			Index:    ad.Index,
			Invert:   ad.Invert,
			Range:    kind,
			Deadzone: ad.Deadzone,
		})
	}

	for name, bd := range pd.Buttons {
		b, err := ParseButton(name)
		if err != nil {
			return Profile{}, err
		}
		p.Buttons[b] = ButtonMapping{Index: bd.Index, Threshold: bd.Threshold}
	}
	return p, nil
}
