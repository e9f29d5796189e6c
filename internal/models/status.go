package models

// Status represents the lifecycle state of a record
type Status int

const (
	StatusInactive Status = -10
	StatusAIC      Status = -5
	StatusNew      Status = 0
	StatusActive   Status = 10
)

// String returns the display label for a status
func (s Status) String() string {
	switch s {
	case StatusInactive:
		return "Inactive"
	case StatusAIC:
		return "AIC"
	case StatusNew:
		return "New"
	case StatusActive:
		return "Active"
	default:
		return "Unknown"
	}
}

// Part represents a vocal part
type Part int

const (
	PartTenor    Part = 1
	PartLead     Part = 2
	PartBaritone Part = 3
	PartBass     Part = 4
)

// String returns the display label for a part
func (p Part) String() string {
	switch p {
	case PartTenor:
		return "Tenor"
	case PartLead:
		return "Lead"
	case PartBaritone:
		return "Baritone"
	case PartBass:
		return "Bass"
	default:
		return "Unknown"
	}
}

// Gender represents the gender of a person or group
type Gender int

const (
	GenderMale   Gender = 10
	GenderFemale Gender = 20
	GenderMixed  Gender = 30
)

// String returns the display label for a gender
func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	case GenderMixed:
		return "Mixed"
	default:
		return "Unknown"
	}
}

// Kind represents the kind of group
type Kind int

const (
	KindChorus  Kind = 32
	KindQuartet Kind = 41
	KindVLQ     Kind = 46
)

// String returns the display label for a kind
func (k Kind) String() string {
	switch k {
	case KindChorus:
		return "Chorus"
	case KindQuartet:
		return "Quartet"
	case KindVLQ:
		return "VLQ"
	default:
		return "Unknown"
	}
}
