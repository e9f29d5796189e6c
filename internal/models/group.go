package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Group represents a chorus, quartet or VLQ
type Group struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Status             Status     `json:"status"`
	Kind               Kind       `json:"kind"`
	Gender             Gender     `json:"gender"`
	Representing       string     `json:"representing"`
	BHSID              *int       `json:"bhs_id"`
	Code               string     `json:"code"`
	Website            string     `json:"website"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	FaxPhone           string     `json:"fax_phone"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	Location           string     `json:"location"`
	Facebook           string     `json:"facebook"`
	Twitter            string     `json:"twitter"`
	Youtube            string     `json:"youtube"`
	Pinterest          string     `json:"pinterest"`
	Flickr             string     `json:"flickr"`
	Instagram          string     `json:"instagram"`
	Soundcloud         string     `json:"soundcloud"`
	Image              string     `json:"image"`
	Description        string     `json:"description"`
	VisitorInformation string     `json:"visitor_information"`
	Participants       string     `json:"participants"`
	Chapters           string     `json:"chapters"`
	Notes              string     `json:"notes"`
	OwnerIDs           []string   `json:"owners"`
	CreatedAt          time.Time  `json:"created"`
	ModifiedAt         time.Time  `json:"modified"`
}

// NewGroup creates a new Group with a generated UUID. Groups start new.
func NewGroup(name string, kind Kind, gender Gender) *Group {
	now := time.Now()
	return &Group{
		ID:         uuid.New().String(),
		Name:       name,
		Status:     StatusNew,
		Kind:       kind,
		Gender:     gender,
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// CanActivate gates the activate transition. Placeholder condition.
func (g *Group) CanActivate() bool {
	return true
}

// Machine returns the group transition table. AIC is in neither source set,
// so groups parked there can only be moved by a direct data edit.
func (g *Group) Machine() *Machine {
	sources := []Status{StatusNew, StatusActive, StatusInactive}
	return NewMachine(
		Transition{Name: TransitionActivate, Sources: sources, Target: StatusActive, Guard: g.CanActivate},
		Transition{Name: TransitionDeactivate, Sources: sources, Target: StatusInactive},
	)
}

// Nomen is the full identifier string: name, code and BHS ID suffix
func (g *Group) Nomen() string {
	suffix := "[No BHS ID]"
	if g.BHSID != nil {
		suffix = fmt.Sprintf("[%d]", *g.BHSID)
	}
	code := ""
	if g.Code != "" {
		code = fmt.Sprintf("(%s)", g.Code)
	}
	full := fmt.Sprintf("%s %s %s", g.Name, code, suffix)
	return strings.Join(strings.Fields(full), " ")
}

// IsActive reports whether the group is currently active
func (g *Group) IsActive() bool {
	return g.Status == StatusActive
}

// ImageID returns the stored image name or the missing-image marker
func (g *Group) ImageID() string {
	if g.Image == "" {
		return "missing_image"
	}
	return g.Image
}

// ImageURL resolves the image to an external URL, placeholder when unset
func (g *Group) ImageURL() string {
	return imageURL(g.Image)
}
