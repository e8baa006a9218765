package family

// =============================================================================
// Link Types
// =============================================================================

// LinkType is the kind of relationship a [Link] describes.
type LinkType string

const (
	// LinkMarriage joins two spouses. Spouses share a generation.
	LinkMarriage LinkType = "marriage"
	// LinkChild points from a parent to a direct child (gap 1).
	LinkChild LinkType = "child"
	// LinkDescent points from an ancestor to a descendant several
	// generations below. The gap comes from the link itself.
	LinkDescent LinkType = "descent"
	// LinkSibling joins two siblings. Siblings share a generation.
	LinkSibling LinkType = "sibling"
)

// IsLineal reports whether the link type places its target below its source.
func (t LinkType) IsLineal() bool { return t == LinkChild || t == LinkDescent }

// =============================================================================
// Person
// =============================================================================

// Person is one node of the chart. It is never mutated by the engine;
// generations and positions are computed alongside it.
type Person struct {
	ID       string `json:"id" toml:"id"`
	Name     string `json:"name" toml:"name"`
	Year     Year   `json:"year,omitempty" toml:"year,omitempty"`
	Chapter  string `json:"chapter,omitempty" toml:"chapter,omitempty"`
	Role     string `json:"role,omitempty" toml:"role,omitempty"`
	Portrait string `json:"portrait,omitempty" toml:"portrait,omitempty"`
	Page     string `json:"page,omitempty" toml:"page,omitempty"`

	// LinkToFamily names another family chart. People with this set are
	// link nodes: small references placed next to their descendant.
	LinkToFamily string `json:"link_to_family,omitempty" toml:"link_to_family,omitempty"`
}

// IsLinkNode reports whether p is a cross-family reference node.
func (p Person) IsLinkNode() bool { return p.LinkToFamily != "" }

// =============================================================================
// Link
// =============================================================================

// Link is a typed, directed relationship between two people.
//
// Source and Target are not validated against the person set; dangling
// references pass through every stage untouched.
type Link struct {
	Source  string   `json:"source" toml:"source"`
	Target  string   `json:"target" toml:"target"`
	Type    LinkType `json:"type" toml:"type"`
	Label   string   `json:"label,omitempty" toml:"label,omitempty"`
	Gap     int      `json:"gap,omitempty" toml:"gap,omitempty"`
	Adopted bool     `json:"adopted,omitempty" toml:"adopted,omitempty"`
}

// =============================================================================
// Chapter
// =============================================================================

// Chapter is display metadata for a vertical band of generations.
type Chapter struct {
	ID       string `json:"id" toml:"id"`
	Title    string `json:"title" toml:"title"`
	Subtitle string `json:"subtitle,omitempty" toml:"subtitle,omitempty"`
}

// =============================================================================
// Data - Chart Document
// =============================================================================

// Data is a complete chart document as authored by a maintainer.
type Data struct {
	Nodes    []Person  `json:"nodes" toml:"nodes"`
	Links    []Link    `json:"links" toml:"links"`
	Layout   Rules     `json:"layout,omitempty" toml:"layout,omitempty"`
	Chapters []Chapter `json:"chapters,omitempty" toml:"chapters,omitempty"`
}

// Person returns the person with the given id.
func (d *Data) Person(id string) (Person, bool) {
	for _, p := range d.Nodes {
		if p.ID == id {
			return p, true
		}
	}
	return Person{}, false
}

// PersonSet returns the ids of all people in the document.
func (d *Data) PersonSet() map[string]bool {
	set := make(map[string]bool, len(d.Nodes))
	for _, p := range d.Nodes {
		set[p.ID] = true
	}
	return set
}
