package handlers

import (
	"time"

	"github.com/barberscore/registry/internal/models"
	"github.com/barberscore/registry/internal/permissions"
	"github.com/barberscore/registry/internal/services"
)

// PermissionsResponse mirrors the gate's verdict for the requesting actor
type PermissionsResponse struct {
	Read  bool `json:"read"`
	Write bool `json:"write"`
}

type PersonResponse struct {
	ID           string              `json:"id"`
	Status       models.Status       `json:"status"`
	Prefix       string              `json:"prefix"`
	FirstName    string              `json:"first_name"`
	MiddleName   string              `json:"middle_name"`
	LastName     string              `json:"last_name"`
	NickName     string              `json:"nick_name"`
	Suffix       string              `json:"suffix"`
	BirthDate    *string             `json:"birth_date"`
	Spouse       string              `json:"spouse"`
	Location     string              `json:"location"`
	Part         *models.Part        `json:"part"`
	Gender       *models.Gender      `json:"gender"`
	Representing string              `json:"representing"`
	Website      string              `json:"website"`
	Email        string              `json:"email"`
	Address      string              `json:"address"`
	HomePhone    string              `json:"home_phone"`
	WorkPhone    string              `json:"work_phone"`
	CellPhone    string              `json:"cell_phone"`
	Airports     []string            `json:"airports"`
	Image        string              `json:"image"`
	Description  string              `json:"description"`
	Notes        string              `json:"notes"`
	BHSID        *int                `json:"bhs_id"`
	Nomen        string              `json:"nomen"`
	Name         string              `json:"name"`
	FullName     string              `json:"full_name"`
	CommonName   string              `json:"common_name"`
	SortName     string              `json:"sort_name"`
	Initials     string              `json:"initials"`
	ImageID      string              `json:"image_id"`
	Owners       []string            `json:"owners"`
	Usernames    []string            `json:"usernames"`
	Permissions  PermissionsResponse `json:"permissions"`
	Created      time.Time           `json:"created"`
	Modified     time.Time           `json:"modified"`
}

type GroupResponse struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Status             models.Status       `json:"status"`
	Kind               models.Kind         `json:"kind"`
	Gender             models.Gender       `json:"gender"`
	Representing       string              `json:"representing"`
	BHSID              *int                `json:"bhs_id"`
	Code               string              `json:"code"`
	Website            string              `json:"website"`
	Email              string              `json:"email"`
	Phone              string              `json:"phone"`
	FaxPhone           string              `json:"fax_phone"`
	StartDate          *string             `json:"start_date"`
	EndDate            *string             `json:"end_date"`
	Location           string              `json:"location"`
	Facebook           string              `json:"facebook"`
	Twitter            string              `json:"twitter"`
	Youtube            string              `json:"youtube"`
	Pinterest          string              `json:"pinterest"`
	Flickr             string              `json:"flickr"`
	Instagram          string              `json:"instagram"`
	Soundcloud         string              `json:"soundcloud"`
	Image              string              `json:"image"`
	Description        string              `json:"description"`
	VisitorInformation string              `json:"visitor_information"`
	Participants       string              `json:"participants"`
	Chapters           string              `json:"chapters"`
	Notes              string              `json:"notes"`
	Nomen              string              `json:"nomen"`
	ImageID            string              `json:"image_id"`
	Owners             []string            `json:"owners"`
	Usernames          []string            `json:"usernames"`
	Permissions        PermissionsResponse `json:"permissions"`
	Created            time.Time           `json:"created"`
	Modified           time.Time           `json:"modified"`
}

type StateLogResponse struct {
	ID          string            `json:"id"`
	ObjectType  models.ObjectType `json:"object_type"`
	ObjectID    string            `json:"object_id"`
	Transition  string            `json:"transition"`
	Status      models.Status     `json:"status"`
	ByUserID    *string           `json:"by_user_id"`
	Description *string           `json:"description"`
	Created     time.Time         `json:"created"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func renderPerson(person *models.Person, actor *models.User, userService *services.UserService) *PersonResponse {
	usernames, err := userService.GetUsernames(person.OwnerIDs)
	if err != nil {
		usernames = []string{}
	}

	return &PersonResponse{
		ID:           person.ID,
		Status:       person.Status,
		Prefix:       person.Prefix,
		FirstName:    person.FirstName,
		MiddleName:   person.MiddleName,
		LastName:     person.LastName,
		NickName:     person.NickName,
		Suffix:       person.Suffix,
		BirthDate:    formatDate(person.BirthDate),
		Spouse:       person.Spouse,
		Location:     person.Location,
		Part:         person.Part,
		Gender:       person.Gender,
		Representing: person.Representing,
		Website:      person.Website,
		Email:        person.Email,
		Address:      person.Address,
		HomePhone:    person.HomePhone,
		WorkPhone:    person.WorkPhone,
		CellPhone:    person.CellPhone,
		Airports:     person.Airports,
		Image:        person.ImageURL(),
		Description:  person.Description,
		Notes:        person.Notes,
		BHSID:        person.BHSID,
		Nomen:        person.Nomen(),
		Name:         person.Name(),
		FullName:     person.FullName(),
		CommonName:   person.CommonName(),
		SortName:     person.SortName(),
		Initials:     person.Initials(),
		ImageID:      person.ImageID(),
		Owners:       person.OwnerIDs,
		Usernames:    usernames,
		Permissions: PermissionsResponse{
			Read:  permissions.PersonRead(actor).Allowed,
			Write: permissions.PersonObjectWrite(actor, person).Allowed,
		},
		Created:  person.CreatedAt,
		Modified: person.ModifiedAt,
	}
}

func renderGroup(group *models.Group, actor *models.User, userService *services.UserService) *GroupResponse {
	usernames, err := userService.GetUsernames(group.OwnerIDs)
	if err != nil {
		usernames = []string{}
	}

	return &GroupResponse{
		ID:                 group.ID,
		Name:               group.Name,
		Status:             group.Status,
		Kind:               group.Kind,
		Gender:             group.Gender,
		Representing:       group.Representing,
		BHSID:              group.BHSID,
		Code:               group.Code,
		Website:            group.Website,
		Email:              group.Email,
		Phone:              group.Phone,
		FaxPhone:           group.FaxPhone,
		StartDate:          formatDate(group.StartDate),
		EndDate:            formatDate(group.EndDate),
		Location:           group.Location,
		Facebook:           group.Facebook,
		Twitter:            group.Twitter,
		Youtube:            group.Youtube,
		Pinterest:          group.Pinterest,
		Flickr:             group.Flickr,
		Instagram:          group.Instagram,
		Soundcloud:         group.Soundcloud,
		Image:              group.ImageURL(),
		Description:        group.Description,
		VisitorInformation: group.VisitorInformation,
		Participants:       group.Participants,
		Chapters:           group.Chapters,
		Notes:              group.Notes,
		Nomen:              group.Nomen(),
		ImageID:            group.ImageID(),
		Owners:             group.OwnerIDs,
		Usernames:          usernames,
		Permissions: PermissionsResponse{
			Read:  permissions.GroupRead(actor).Allowed,
			Write: permissions.GroupObjectWrite(actor, group).Allowed,
		},
		Created:  group.CreatedAt,
		Modified: group.ModifiedAt,
	}
}

func renderStateLog(log *models.StateLog) *StateLogResponse {
	return &StateLogResponse{
		ID:          log.ID,
		ObjectType:  log.ObjectType,
		ObjectID:    log.ObjectID,
		Transition:  log.Transition,
		Status:      log.Status,
		ByUserID:    log.ByUserID,
		Description: log.Description,
		Created:     log.CreatedAt,
	}
}
