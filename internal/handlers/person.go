package handlers

import (
	"net/http"
	"time"

	"github.com/barberscore/registry/internal/middleware"
	"github.com/barberscore/registry/internal/models"
	"github.com/barberscore/registry/internal/repositories"
	"github.com/barberscore/registry/internal/services"
	"github.com/gin-gonic/gin"
)

type PersonHandler struct {
	personService *services.PersonService
	userService   *services.UserService
}

func NewPersonHandler(personService *services.PersonService, userService *services.UserService) *PersonHandler {
	return &PersonHandler{
		personService: personService,
		userService:   userService,
	}
}

// personRequest carries writable person fields; nil means "leave unchanged"
type personRequest struct {
	Prefix       *string   `json:"prefix"`
	FirstName    *string   `json:"first_name"`
	MiddleName   *string   `json:"middle_name"`
	LastName     *string   `json:"last_name"`
	NickName     *string   `json:"nick_name"`
	Suffix       *string   `json:"suffix"`
	BirthDate    *string   `json:"birth_date"`
	Spouse       *string   `json:"spouse"`
	Location     *string   `json:"location"`
	Part         *int      `json:"part"`
	MON          *int      `json:"mon"`
	Gender       *int      `json:"gender"`
	Representing *string   `json:"representing"`
	Website      *string   `json:"website" binding:"omitempty,url"`
	Email        *string   `json:"email" binding:"omitempty,email"`
	Address      *string   `json:"address"`
	HomePhone    *string   `json:"home_phone" binding:"omitempty,e164"`
	WorkPhone    *string   `json:"work_phone" binding:"omitempty,e164"`
	CellPhone    *string   `json:"cell_phone" binding:"omitempty,e164"`
	Airports     *[]string `json:"airports"`
	Image        *string   `json:"image"`
	Description  *string   `json:"description"`
	Notes        *string   `json:"notes"`
	BHSID        *int      `json:"bhs_id"`
	Owners       *[]string `json:"owners"`
}

func (req *personRequest) apply(person *models.Person) error {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&person.Prefix, req.Prefix)
	setString(&person.FirstName, req.FirstName)
	setString(&person.MiddleName, req.MiddleName)
	setString(&person.LastName, req.LastName)
	setString(&person.NickName, req.NickName)
	setString(&person.Suffix, req.Suffix)
	setString(&person.Spouse, req.Spouse)
	setString(&person.Location, req.Location)
	setString(&person.Representing, req.Representing)
	setString(&person.Website, req.Website)
	setString(&person.Email, req.Email)
	setString(&person.Address, req.Address)
	setString(&person.HomePhone, req.HomePhone)
	setString(&person.WorkPhone, req.WorkPhone)
	setString(&person.CellPhone, req.CellPhone)
	setString(&person.Image, req.Image)
	setString(&person.Description, req.Description)
	setString(&person.Notes, req.Notes)

	if req.BirthDate != nil {
		t, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return &services.ValidationError{Field: "birth_date", Message: "must be YYYY-MM-DD"}
		}
		person.BirthDate = &t
	}
	if req.Part != nil {
		p := models.Part(*req.Part)
		person.Part = &p
	}
	if req.MON != nil {
		person.MON = req.MON
	}
	if req.Gender != nil {
		g := models.Gender(*req.Gender)
		person.Gender = &g
	}
	if req.BHSID != nil {
		person.BHSID = req.BHSID
	}
	if req.Airports != nil {
		person.Airports = *req.Airports
	}
	if req.Owners != nil {
		person.OwnerIDs = *req.Owners
	}
	return nil
}

// List retrieves persons matching the query filters
func (h *PersonHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)

	filter := repositories.PersonFilter{
		Status:     queryStatus(c, "status"),
		StatusGT:   queryStatus(c, "status__gt"),
		CreatedGT:  queryTime(c, "created__gt"),
		ModifiedGT: queryTime(c, "modified__gt"),
		Search:     c.Query("search"),
	}

	persons, err := h.personService.ListPersons(actor, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := []*PersonResponse{}
	for _, person := range persons {
		responses = append(responses, renderPerson(person, actor, h.userService))
	}
	c.JSON(http.StatusOK, responses)
}

// Get retrieves a single person
func (h *PersonHandler) Get(c *gin.Context) {
	actor := middleware.GetActor(c)

	person, err := h.personService.GetPerson(actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, renderPerson(person, actor, h.userService))
}

// Create creates a new person
func (h *PersonHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req personRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	person := models.NewPerson("", "")
	if err := req.apply(person); err != nil {
		respondError(c, err)
		return
	}

	if err := h.personService.CreatePerson(actor, person); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, renderPerson(person, actor, h.userService))
}

// Update updates a person's descriptive fields
func (h *PersonHandler) Update(c *gin.Context) {
	actor := middleware.GetActor(c)

	person, err := h.personService.GetPerson(actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req personRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := req.apply(person); err != nil {
		respondError(c, err)
		return
	}

	if err := h.personService.UpdatePerson(actor, person); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, renderPerson(person, actor, h.userService))
}

// Delete deletes a person
func (h *PersonHandler) Delete(c *gin.Context) {
	actor := middleware.GetActor(c)

	if err := h.personService.DeletePerson(actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Activate transitions a person to active
func (h *PersonHandler) Activate(c *gin.Context) {
	h.transition(c, h.personService.Activate)
}

// Deactivate transitions a person to inactive
func (h *PersonHandler) Deactivate(c *gin.Context) {
	h.transition(c, h.personService.Deactivate)
}

func (h *PersonHandler) transition(c *gin.Context, apply func(*models.User, string, string) (*models.Person, error)) {
	actor := middleware.GetActor(c)
	req := bindTransitionRequest(c)

	person, err := apply(actor, c.Param("id"), req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, renderPerson(person, actor, h.userService))
}

// StateLogs retrieves a person's audit trail
func (h *PersonHandler) StateLogs(c *gin.Context) {
	actor := middleware.GetActor(c)

	logs, err := h.personService.StateLogs(actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := []*StateLogResponse{}
	for _, log := range logs {
		responses = append(responses, renderStateLog(log))
	}
	c.JSON(http.StatusOK, responses)
}
