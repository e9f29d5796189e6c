package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Person represents a registered person
type Person struct {
	ID           string     `json:"id"`
	Status       Status     `json:"status"`
	Prefix       string     `json:"prefix"`
	FirstName    string     `json:"first_name"`
	MiddleName   string     `json:"middle_name"`
	LastName     string     `json:"last_name"`
	NickName     string     `json:"nick_name"`
	Suffix       string     `json:"suffix"`
	BirthDate    *time.Time `json:"birth_date"`
	Spouse       string     `json:"spouse"`
	Location     string     `json:"location"`
	Part         *Part      `json:"part"`
	MON          *int       `json:"mon"`
	Gender       *Gender    `json:"gender"`
	Representing string     `json:"representing"`
	Website      string     `json:"website"`
	Email        string     `json:"email"`
	Address      string     `json:"address"`
	HomePhone    string     `json:"home_phone"`
	WorkPhone    string     `json:"work_phone"`
	CellPhone    string     `json:"cell_phone"`
	Airports     []string   `json:"airports"`
	Image        string     `json:"image"`
	Description  string     `json:"description"`
	Notes        string     `json:"notes"`
	BHSID        *int       `json:"bhs_id"`
	OwnerIDs     []string   `json:"owners"`
	CreatedAt    time.Time  `json:"created"`
	ModifiedAt   time.Time  `json:"modified"`
}

// NewPerson creates a new Person with a generated UUID. Persons start active.
func NewPerson(firstName, lastName string) *Person {
	now := time.Now()
	return &Person{
		ID:         uuid.New().String(),
		Status:     StatusActive,
		FirstName:  firstName,
		LastName:   lastName,
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// Machine returns the person transition table. Both transitions fire from any
// status.
func (p *Person) Machine() *Machine {
	return NewMachine(
		Transition{Name: TransitionActivate, Target: StatusActive},
		Transition{Name: TransitionDeactivate, Target: StatusInactive},
	)
}

// Nomen is the full identifier string: names, nickname and BHS ID suffix,
// whitespace-collapsed.
func (p *Person) Nomen() string {
	nick := ""
	if p.NickName != "" {
		nick = fmt.Sprintf("(%s)", p.NickName)
	}
	suffix := "[No BHS ID]"
	if p.BHSID != nil {
		suffix = fmt.Sprintf("[%d]", *p.BHSID)
	}
	full := fmt.Sprintf("%s %s %s %s %s", p.FirstName, p.MiddleName, p.LastName, nick, suffix)
	return strings.Join(strings.Fields(full), " ")
}

// Name is the display name
func (p *Person) Name() string {
	return p.CommonName()
}

// FullName is the legal name with nickname, whitespace-collapsed
func (p *Person) FullName() string {
	nick := ""
	if p.NickName != "" {
		nick = fmt.Sprintf("(%s)", p.NickName)
	}
	full := fmt.Sprintf("%s %s %s %s", p.FirstName, p.MiddleName, p.LastName, nick)
	return strings.Join(strings.Fields(full), " ")
}

// CommonName prefers the nickname over the first name
func (p *Person) CommonName() string {
	first := p.FirstName
	if p.NickName != "" {
		first = p.NickName
	}
	return fmt.Sprintf("%s %s", first, p.LastName)
}

// SortName is "Last, First"
func (p *Person) SortName() string {
	return fmt.Sprintf("%s, %s", p.LastName, p.FirstName)
}

// Initials uses the nickname's initial when present, "--" when either part is
// missing.
func (p *Person) Initials() string {
	one := p.FirstName
	if p.NickName != "" {
		one = p.NickName
	}
	two := p.LastName
	if one == "" || two == "" {
		return "--"
	}
	first, _ := utf8.DecodeRuneInString(one)
	second, _ := utf8.DecodeRuneInString(two)
	return strings.ToUpper(string(first)) + strings.ToUpper(string(second))
}

// ImageID returns the stored image name or the missing-image marker
func (p *Person) ImageID() string {
	if p.Image == "" {
		return "missing_image"
	}
	return p.Image
}

// ImageURL resolves the image to an external URL, placeholder when unset
func (p *Person) ImageURL() string {
	return imageURL(p.Image)
}
