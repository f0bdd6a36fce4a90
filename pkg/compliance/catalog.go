package compliance

import "strings"

// DeviceEntry is one protective device in a catalog: an identifier such as
// "B32" and its maximum earth fault loop impedance in Ω.
type DeviceEntry struct {
	Identifier string  `json:"identifier" yaml:"identifier"`
	ZsLimit    float64 `json:"zsLimit" yaml:"zsLimit"`
}

// Catalog is an immutable set of protective devices keyed by identifier.
// Identifiers match case-sensitively. A nil *Catalog is empty.
type Catalog struct {
	byID  map[string]DeviceEntry
	order []string
}

// NewCatalog builds a catalog from entries. When an identifier appears more
// than once the first entry wins.
func NewCatalog(entries []DeviceEntry) *Catalog {
	c := &Catalog{
		byID:  make(map[string]DeviceEntry, len(entries)),
		order: make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		if _, dup := c.byID[e.Identifier]; dup {
			continue
		}
		c.byID[e.Identifier] = e
		c.order = append(c.order, e.Identifier)
	}
	return c
}

// DefaultCatalog returns the BS 7671 Table 41.3 devices, B then C then D,
// each in ascending rating.
func DefaultCatalog() *Catalog {
	entries := make([]DeviceEntry, 0, len(DeviceCurves)*len(DeviceRatings))
	for _, curve := range DeviceCurves {
		for _, rating := range DeviceRatings {
			id := DeviceIdentifier(curve, rating)
			entries = append(entries, DeviceEntry{Identifier: id, ZsLimit: zsTable[id]})
		}
	}
	return NewCatalog(entries)
}

// Lookup finds a device by identifier. Surrounding whitespace in the
// identifier is ignored; case is not.
func (c *Catalog) Lookup(identifier string) (DeviceEntry, bool) {
	if c == nil {
		return DeviceEntry{}, false
	}
	e, ok := c.byID[strings.TrimSpace(identifier)]
	return e, ok
}

// Len returns the number of devices.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Entries returns the devices in insertion order.
func (c *Catalog) Entries() []DeviceEntry {
	if c == nil {
		return nil
	}
	out := make([]DeviceEntry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// With returns a new catalog in which overrides replace existing entries
// with the same identifier and new identifiers are appended. The receiver is
// left untouched.
func (c *Catalog) With(overrides ...DeviceEntry) *Catalog {
	next := NewCatalog(c.Entries())
	for _, e := range overrides {
		if _, exists := next.byID[e.Identifier]; !exists {
			next.order = append(next.order, e.Identifier)
		}
		next.byID[e.Identifier] = e
	}
	return next
}
