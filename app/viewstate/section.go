package viewstate

// Section identifies which community board panel is active. The three
// sections are mutually exclusive; a long-lived view session moves
// between them only on explicit navigation.
type Section int

const (
	SectionCreate Section = iota
	SectionYourPosts
	SectionOthers
)

// String returns the query-parameter form of the section.
func (s Section) String() string {
	switch s {
	case SectionYourPosts:
		return "yours"
	case SectionOthers:
		return "others"
	default:
		return "create"
	}
}

// ParseSection maps a query-parameter value to a Section. Unknown
// values fall back to the initial Create section.
func ParseSection(value string) Section {
	switch value {
	case "yours":
		return SectionYourPosts
	case "others":
		return SectionOthers
	default:
		return SectionCreate
	}
}
