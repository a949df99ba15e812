package domain

// SpaceType is the kind of bookable space
type SpaceType string

const (
	SpaceTypeRoom       SpaceType = "sala"
	SpaceTypeCoworking  SpaceType = "coworking"
	SpaceTypeAuditorium SpaceType = "auditorio"
	SpaceTypeLab        SpaceType = "laboratorio"
)

// ParseSpaceType parses a space type, returns false for unknown values
func ParseSpaceType(s string) (SpaceType, bool) {
	switch SpaceType(s) {
	case SpaceTypeRoom, SpaceTypeCoworking, SpaceTypeAuditorium, SpaceTypeLab:
		return SpaceType(s), true
	default:
		return "", false
	}
}

// Space is a bookable physical space. It is read-only for the reservation engine.
type Space struct {
	ID          string
	Name        string
	Type        SpaceType
	Capacity    int
	HourlyRate  *float64 // nil = no pricing
	Active      bool
	Description *string
}

// HasRate returns true if the space can be priced
func (s *Space) HasRate() bool {
	return s.HourlyRate != nil && *s.HourlyRate > 0
}
