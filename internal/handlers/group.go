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

type GroupHandler struct {
	groupService *services.GroupService
	userService  *services.UserService
}

func NewGroupHandler(groupService *services.GroupService, userService *services.UserService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
		userService:  userService,
	}
}

// groupRequest carries writable group fields; nil means "leave unchanged"
type groupRequest struct {
	Name               *string   `json:"name"`
	Kind               *int      `json:"kind"`
	Gender             *int      `json:"gender"`
	Representing       *string   `json:"representing"`
	BHSID              *int      `json:"bhs_id"`
	Code               *string   `json:"code"`
	Website            *string   `json:"website" binding:"omitempty,url"`
	Email              *string   `json:"email" binding:"omitempty,email"`
	Phone              *string   `json:"phone" binding:"omitempty,e164"`
	FaxPhone           *string   `json:"fax_phone" binding:"omitempty,e164"`
	StartDate          *string   `json:"start_date"`
	EndDate            *string   `json:"end_date"`
	Location           *string   `json:"location"`
	Facebook           *string   `json:"facebook" binding:"omitempty,url"`
	Twitter            *string   `json:"twitter" binding:"omitempty,url"`
	Youtube            *string   `json:"youtube" binding:"omitempty,url"`
	Pinterest          *string   `json:"pinterest" binding:"omitempty,url"`
	Flickr             *string   `json:"flickr" binding:"omitempty,url"`
	Instagram          *string   `json:"instagram" binding:"omitempty,url"`
	Soundcloud         *string   `json:"soundcloud" binding:"omitempty,url"`
	Image              *string   `json:"image"`
	Description        *string   `json:"description"`
	VisitorInformation *string   `json:"visitor_information"`
	Participants       *string   `json:"participants"`
	Chapters           *string   `json:"chapters"`
	Notes              *string   `json:"notes"`
	Owners             *[]string `json:"owners"`
}

func (req *groupRequest) apply(group *models.Group) error {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&group.Name, req.Name)
	setString(&group.Representing, req.Representing)
	setString(&group.Code, req.Code)
	setString(&group.Website, req.Website)
	setString(&group.Email, req.Email)
	setString(&group.Phone, req.Phone)
	setString(&group.FaxPhone, req.FaxPhone)
	setString(&group.Location, req.Location)
	setString(&group.Facebook, req.Facebook)
	setString(&group.Twitter, req.Twitter)
	setString(&group.Youtube, req.Youtube)
	setString(&group.Pinterest, req.Pinterest)
	setString(&group.Flickr, req.Flickr)
	setString(&group.Instagram, req.Instagram)
	setString(&group.Soundcloud, req.Soundcloud)
	setString(&group.Image, req.Image)
	setString(&group.Description, req.Description)
	setString(&group.VisitorInformation, req.VisitorInformation)
	setString(&group.Participants, req.Participants)
	setString(&group.Chapters, req.Chapters)
	setString(&group.Notes, req.Notes)

	if req.Kind != nil {
		group.Kind = models.Kind(*req.Kind)
	}
	if req.Gender != nil {
		group.Gender = models.Gender(*req.Gender)
	}
	if req.BHSID != nil {
		group.BHSID = req.BHSID
	}
	if req.StartDate != nil {
		t, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return &services.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"}
		}
		group.StartDate = &t
	}
	if req.EndDate != nil {
		t, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return &services.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"}
		}
		group.EndDate = &t
	}
	if req.Owners != nil {
		group.OwnerIDs = *req.Owners
	}
	return nil
}

// List retrieves groups matching the query filters
func (h *GroupHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)

	filter := repositories.GroupFilter{
		OwnerID:    c.Query("owners"),
		Status:     queryStatus(c, "status"),
		StatusGT:   queryStatus(c, "status__gt"),
		KindGT:     queryKind(c, "kind__gt"),
		CreatedGT:  queryTime(c, "created__gt"),
		ModifiedGT: queryTime(c, "modified__gt"),
		Search:     c.Query("search"),
	}

	groups, err := h.groupService.ListGroups(actor, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := []*GroupResponse{}
	for _, group := range groups {
		responses = append(responses, renderGroup(group, actor, h.userService))
	}
	c.JSON(http.StatusOK, responses)
}

// Get retrieves a single group
func (h *GroupHandler) Get(c *gin.Context) {
	actor := middleware.GetActor(c)

	group, err := h.groupService.GetGroup(actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, renderGroup(group, actor, h.userService))
}

// Create creates a new group
func (h *GroupHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	group := models.NewGroup("", 0, 0)
	if err := req.apply(group); err != nil {
		respondError(c, err)
		return
	}

	if err := h.groupService.CreateGroup(actor, group); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, renderGroup(group, actor, h.userService))
}

// Update updates a group's descriptive fields
func (h *GroupHandler) Update(c *gin.Context) {
	actor := middleware.GetActor(c)

	group, err := h.groupService.GetGroup(actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := req.apply(group); err != nil {
		respondError(c, err)
		return
	}

	if err := h.groupService.UpdateGroup(actor, group); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, renderGroup(group, actor, h.userService))
}

// Delete deletes a group
func (h *GroupHandler) Delete(c *gin.Context) {
	actor := middleware.GetActor(c)

	if err := h.groupService.DeleteGroup(actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Activate transitions a group to active
func (h *GroupHandler) Activate(c *gin.Context) {
	h.transition(c, h.groupService.Activate)
}

// Deactivate transitions a group to inactive
func (h *GroupHandler) Deactivate(c *gin.Context) {
	h.transition(c, h.groupService.Deactivate)
}

func (h *GroupHandler) transition(c *gin.Context, apply func(*models.User, string, string) (*models.Group, error)) {
	actor := middleware.GetActor(c)
	req := bindTransitionRequest(c)

	group, err := apply(actor, c.Param("id"), req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, renderGroup(group, actor, h.userService))
}

// StateLogs retrieves a group's audit trail
func (h *GroupHandler) StateLogs(c *gin.Context) {
	actor := middleware.GetActor(c)

	logs, err := h.groupService.StateLogs(actor, c.Param("id"))
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
