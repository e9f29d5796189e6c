package services

import (
	"github.com/barberscore/registry/internal/models"
	"github.com/barberscore/registry/internal/permissions"
	"github.com/barberscore/registry/internal/repositories"
	"github.com/barberscore/registry/pkg/logger"
	"github.com/sirupsen/logrus"
)

type PersonService struct {
	personRepo   *repositories.PersonRepository
	stateLogRepo *repositories.StateLogRepository
}

func NewPersonService(personRepo *repositories.PersonRepository, stateLogRepo *repositories.StateLogRepository) *PersonService {
	return &PersonService{
		personRepo:   personRepo,
		stateLogRepo: stateLogRepo,
	}
}

// denied maps a permission decision to the matching sentinel error
func denied(d permissions.Decision) error {
	if d.IsUnauthenticated() {
		return ErrUnauthenticated
	}
	return ErrPermissionDenied
}

// CreatePerson creates a new person. Persons are read-only below staff level.
func (s *PersonService) CreatePerson(actor *models.User, person *models.Person) error {
	if d := permissions.PersonWrite(actor); !d.Allowed {
		return denied(d)
	}
	if err := validatePerson(person); err != nil {
		return err
	}
	return s.personRepo.Create(person)
}

// GetPerson retrieves a person by ID
func (s *PersonService) GetPerson(actor *models.User, id string) (*models.Person, error) {
	if d := permissions.PersonRead(actor); !d.Allowed {
		return nil, denied(d)
	}
	return s.personRepo.GetByID(id)
}

// ListPersons retrieves persons matching the filter
func (s *PersonService) ListPersons(actor *models.User, filter repositories.PersonFilter) ([]*models.Person, error) {
	if d := permissions.PersonRead(actor); !d.Allowed {
		return nil, denied(d)
	}
	return s.personRepo.List(filter)
}

// UpdatePerson updates a person's descriptive fields. Status never moves here.
func (s *PersonService) UpdatePerson(actor *models.User, person *models.Person) error {
	if d := permissions.PersonObjectWrite(actor, person); !d.Allowed {
		return denied(d)
	}
	if err := validatePerson(person); err != nil {
		return err
	}
	return s.personRepo.Update(person)
}

// DeletePerson deletes a person by ID
func (s *PersonService) DeletePerson(actor *models.User, id string) error {
	person, err := s.personRepo.GetByID(id)
	if err != nil {
		return err
	}
	if d := permissions.PersonObjectWrite(actor, person); !d.Allowed {
		return denied(d)
	}
	return s.personRepo.Delete(id)
}

// Activate transitions a person to active and appends an audit entry
func (s *PersonService) Activate(actor *models.User, id, description string) (*models.Person, error) {
	return s.transition(actor, id, models.TransitionActivate, description)
}

// Deactivate transitions a person to inactive and appends an audit entry
func (s *PersonService) Deactivate(actor *models.User, id, description string) (*models.Person, error) {
	return s.transition(actor, id, models.TransitionDeactivate, description)
}

func (s *PersonService) transition(actor *models.User, id, name, description string) (*models.Person, error) {
	person, err := s.personRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if d := permissions.PersonObjectWrite(actor, person); !d.Allowed {
		return nil, denied(d)
	}

	next, err := person.Machine().Apply(name, person.Status)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"person": person.ID,
			"status": person.Status.String(),
		}).Warnf("Person transition %s not allowed", name)
		return nil, err
	}
	person.Status = next

	log := models.NewStateLog(models.ObjectTypePerson, person.ID, name, person.Status, actor, description)
	if err := s.personRepo.UpdateStatusWithLog(person, log); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"person":     person.ID,
		"transition": name,
		"status":     person.Status.String(),
		"by":         actor.Username,
	}).Info("Person transition applied")

	return person, nil
}

func validatePerson(person *models.Person) error {
	if person.FirstName == "" {
		return &ValidationError{Field: "first_name", Message: "required"}
	}
	if person.LastName == "" {
		return &ValidationError{Field: "last_name", Message: "required"}
	}
	if person.Part != nil {
		switch *person.Part {
		case models.PartTenor, models.PartLead, models.PartBaritone, models.PartBass:
		default:
			return &ValidationError{Field: "part", Message: "invalid"}
		}
	}
	if person.Gender != nil {
		switch *person.Gender {
		case models.GenderMale, models.GenderFemale:
		default:
			return &ValidationError{Field: "gender", Message: "invalid"}
		}
	}
	return nil
}

// StateLogs retrieves a person's audit trail, newest first
func (s *PersonService) StateLogs(actor *models.User, id string) ([]*models.StateLog, error) {
	if d := permissions.PersonRead(actor); !d.Allowed {
		return nil, denied(d)
	}
	if _, err := s.personRepo.GetByID(id); err != nil {
		return nil, err
	}
	return s.stateLogRepo.ListByObject(models.ObjectTypePerson, id)
}
