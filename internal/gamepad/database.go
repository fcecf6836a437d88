package gamepad

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrUnknownProfile = errors.New("unknown profile")

type entry struct {
	profile  *Profile
	patterns []*regexp.Regexp
	vendors  []string
	products []string
}

// Database is an ordered, most-specific-first list of profiles whose last
// entry always matches any identifier.
type Database struct {
	entries []entry
}

// DefaultDatabase returns the built-in profile table.
func DefaultDatabase() *Database {
	db, err := NewDatabase(builtinProfiles...)
	if err != nil {
		panic(err)
	}
	return db
}

// NewDatabase compiles profiles in the given order. The generic profile is
// appended unless the last profile already matches every identifier.
func NewDatabase(profiles ...Profile) (*Database, error) {
	db := &Database{}
	seen := make(map[string]bool, len(profiles)+1)

	for i := range profiles {
		e, err := compileEntry(profiles[i])
		if err != nil {
			return nil, err
		}
		key := strings.ToLower(e.profile.Name)
		if seen[key] {
			return nil, fmt.Errorf("duplicate profile name %q", e.profile.Name)
		}
		seen[key] = true
		db.entries = append(db.entries, e)
	}

	if len(db.entries) == 0 || !db.entries[len(db.entries)-1].catchAll() {
		if seen[strings.ToLower(GenericProfileName)] {
			return nil, fmt.Errorf("profile %q must be last and match every identifier", GenericProfileName)
		}
		e, err := compileEntry(genericProfile)
		if err != nil {
			return nil, err
		}
		db.entries = append(db.entries, e)
	}
	return db, nil
}

// WithProfiles returns a new database with extra profiles placed ahead of
// the existing ones.
func (db *Database) WithProfiles(extra ...Profile) (*Database, error) {
	all := make([]Profile, 0, len(extra)+len(db.entries))
	all = append(all, extra...)
	for _, e := range db.entries {
		all = append(all, *e.profile)
	}
	return NewDatabase(all...)
}

// Profiles returns the profiles in match order.
func (db *Database) Profiles() []*Profile {
	out := make([]*Profile, len(db.entries))
	for i, e := range db.entries {
		out[i] = e.profile
	}
	return out
}

// Names returns the profile names in match order.
func (db *Database) Names() []string {
	out := make([]string, len(db.entries))
	for i, e := range db.entries {
		out[i] = e.profile.Name
	}
	return out
}

// Lookup finds a profile by its declared name, case-insensitively.
func (db *Database) Lookup(name string) (*Profile, error) {
	for _, e := range db.entries {
		if strings.EqualFold(e.profile.Name, name) {
			return e.profile, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
}

func compileEntry(p Profile) (entry, error) {
	if strings.TrimSpace(p.Name) == "" {
		return entry{}, errors.New("profile without a name")
	}

	buttons := make(map[Button]ButtonMapping, len(p.Buttons))
	for b, m := range p.Buttons {
		if b < 0 || b >= ButtonCount {
			return entry{}, fmt.Errorf("profile %q: invalid button %d", p.Name, int(b))
		}
		buttons[b] = m
	}
	p.Buttons = buttons

	e := entry{profile: &p}
	for _, pattern := range p.Match.Patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return entry{}, fmt.Errorf("profile %q: pattern %q: %w", p.Name, pattern, err)
		}
		e.patterns = append(e.patterns, re)
	}
	for _, v := range p.Match.Vendors {
		code, ok := normalizeCode(v)
		if !ok {
			return entry{}, fmt.Errorf("profile %q: invalid vendor code %q", p.Name, v)
		}
		e.vendors = append(e.vendors, code)
	}
	for _, v := range p.Match.Products {
		code, ok := normalizeCode(v)
		if !ok {
			return entry{}, fmt.Errorf("profile %q: invalid product code %q", p.Name, v)
		}
		e.products = append(e.products, code)
	}
	return e, nil
}

func (e entry) catchAll() bool {
	for _, re := range e.patterns {
		if re.String() == ".*" || re.String() == "" {
			return true
		}
	}
	return false
}
