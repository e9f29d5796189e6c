package services

import (
	"github.com/barberscore/registry/internal/models"
	"github.com/barberscore/registry/internal/permissions"
	"github.com/barberscore/registry/internal/repositories"
	"github.com/barberscore/registry/pkg/logger"
	"github.com/sirupsen/logrus"
)

type GroupService struct {
	groupRepo    *repositories.GroupRepository
	stateLogRepo *repositories.StateLogRepository

	// Denormalize recomputes derived display data before an activate is
	// persisted. External hook; nil means no-op.
	Denormalize func(*models.Group)
}

func NewGroupService(groupRepo *repositories.GroupRepository, stateLogRepo *repositories.StateLogRepository) *GroupService {
	return &GroupService{
		groupRepo:    groupRepo,
		stateLogRepo: stateLogRepo,
	}
}

// CreateGroup creates a new group. Owners are required.
func (s *GroupService) CreateGroup(actor *models.User, group *models.Group) error {
	if d := permissions.GroupWrite(actor); !d.Allowed {
		return denied(d)
	}
	if err := validateGroup(group); err != nil {
		return err
	}
	return s.groupRepo.Create(group)
}

// GetGroup retrieves a group by ID
func (s *GroupService) GetGroup(actor *models.User, id string) (*models.Group, error) {
	if d := permissions.GroupRead(actor); !d.Allowed {
		return nil, denied(d)
	}
	return s.groupRepo.GetByID(id)
}

// ListGroups retrieves groups matching the filter
func (s *GroupService) ListGroups(actor *models.User, filter repositories.GroupFilter) ([]*models.Group, error) {
	if d := permissions.GroupRead(actor); !d.Allowed {
		return nil, denied(d)
	}
	return s.groupRepo.List(filter)
}

// UpdateGroup updates a group's descriptive fields. Status never moves here.
// Ownership is checked against the stored record, not the incoming payload.
func (s *GroupService) UpdateGroup(actor *models.User, group *models.Group) error {
	existing, err := s.groupRepo.GetByID(group.ID)
	if err != nil {
		return err
	}
	if d := permissions.GroupObjectWrite(actor, existing); !d.Allowed {
		return denied(d)
	}
	if err := validateGroup(group); err != nil {
		return err
	}
	return s.groupRepo.Update(group)
}

// DeleteGroup deletes a group by ID
func (s *GroupService) DeleteGroup(actor *models.User, id string) error {
	group, err := s.groupRepo.GetByID(id)
	if err != nil {
		return err
	}
	if d := permissions.GroupObjectWrite(actor, group); !d.Allowed {
		return denied(d)
	}
	return s.groupRepo.Delete(id)
}

// Activate transitions a group to active, running the denormalization hook
// before the status write, and appends an audit entry
func (s *GroupService) Activate(actor *models.User, id, description string) (*models.Group, error) {
	return s.transition(actor, id, models.TransitionActivate, description)
}

// Deactivate transitions a group to inactive and appends an audit entry
func (s *GroupService) Deactivate(actor *models.User, id, description string) (*models.Group, error) {
	return s.transition(actor, id, models.TransitionDeactivate, description)
}

func (s *GroupService) transition(actor *models.User, id, name, description string) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if d := permissions.GroupObjectWrite(actor, group); !d.Allowed {
		return nil, denied(d)
	}

	next, err := group.Machine().Apply(name, group.Status)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"group":  group.ID,
			"status": group.Status.String(),
		}).Warnf("Group transition %s not allowed", name)
		return nil, err
	}
	group.Status = next

	if name == models.TransitionActivate && s.Denormalize != nil {
		s.Denormalize(group)
	}

	log := models.NewStateLog(models.ObjectTypeGroup, group.ID, name, group.Status, actor, description)
	if err := s.groupRepo.UpdateStatusWithLog(group, log); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"group":      group.ID,
		"transition": name,
		"status":     group.Status.String(),
		"by":         actor.Username,
	}).Info("Group transition applied")

	return group, nil
}

// StateLogs retrieves a group's audit trail, newest first
func (s *GroupService) StateLogs(actor *models.User, id string) ([]*models.StateLog, error) {
	if d := permissions.GroupRead(actor); !d.Allowed {
		return nil, denied(d)
	}
	if _, err := s.groupRepo.GetByID(id); err != nil {
		return nil, err
	}
	return s.stateLogRepo.ListByObject(models.ObjectTypeGroup, id)
}

func validateGroup(group *models.Group) error {
	if group.Name == "" {
		return &ValidationError{Field: "name", Message: "required"}
	}
	switch group.Kind {
	case models.KindChorus, models.KindQuartet, models.KindVLQ:
	default:
		return &ValidationError{Field: "kind", Message: "required"}
	}
	switch group.Gender {
	case models.GenderMale, models.GenderFemale, models.GenderMixed:
	default:
		return &ValidationError{Field: "gender", Message: "required"}
	}
	// An ownerless group would be unwritable under the owner rule, so owner
	// links can never be cleared, only replaced.
	if len(group.OwnerIDs) == 0 {
		return &ValidationError{Field: "owners", Message: "required"}
	}
	return nil
}
