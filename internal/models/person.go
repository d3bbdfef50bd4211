package models

// Person is one member of the roster.
type Person struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"` // presentation only, e.g. "blue", "darkgreen"
}

// DisplayName returns the name, falling back to the id
func (p Person) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// Roster is the ordered set of people participating in the timetable.
type Roster []Person

// Find returns the person with the given id.
func (r Roster) Find(id string) (Person, bool) {
	for _, p := range r {
		if p.ID == id {
			return p, true
		}
	}
	return Person{}, false
}

// Lookup resolves an id or a case-insensitive display name to a person.
func (r Roster) Lookup(idOrName string) (Person, bool) {
	if p, ok := r.Find(idOrName); ok {
		return p, true
	}
	for _, p := range r {
		if equalFold(p.Name, idOrName) {
			return p, true
		}
	}
	return Person{}, false
}

// IDs returns the person ids in roster order.
func (r Roster) IDs() []string {
	ids := make([]string, 0, len(r))
	for _, p := range r {
		ids = append(ids, p.ID)
	}
	return ids
}
