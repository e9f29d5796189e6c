package services

import (
	"fmt"

	"github.com/barberscore/registry/internal/models"
	"github.com/barberscore/registry/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// ExportService builds roster workbooks for the admin surface
type ExportService struct {
	personRepo *repositories.PersonRepository
	groupRepo  *repositories.GroupRepository
}

func NewExportService(personRepo *repositories.PersonRepository, groupRepo *repositories.GroupRepository) *ExportService {
	return &ExportService{
		personRepo: personRepo,
		groupRepo:  groupRepo,
	}
}

func (s *ExportService) checkActor(actor *models.User) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if !actor.IsStaff && !actor.IsSuperuser {
		return ErrPermissionDenied
	}
	return nil
}

// PersonsWorkbook exports the person roster as an XLSX workbook
func (s *ExportService) PersonsWorkbook(actor *models.User) (*excelize.File, error) {
	if err := s.checkActor(actor); err != nil {
		return nil, err
	}

	persons, err := s.personRepo.List(repositories.PersonFilter{})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Persons"
	f.SetSheetName("Sheet1", sheet)

	header := []interface{}{"Common Name", "Email", "Cell Phone", "Part", "Gender", "Status", "BHS ID"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, person := range persons {
		part := ""
		if person.Part != nil {
			part = person.Part.String()
		}
		gender := ""
		if person.Gender != nil {
			gender = person.Gender.String()
		}
		bhsID := ""
		if person.BHSID != nil {
			bhsID = fmt.Sprintf("%d", *person.BHSID)
		}
		row := []interface{}{
			person.CommonName(), person.Email, person.CellPhone,
			part, gender, person.Status.String(), bhsID,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// GroupsWorkbook exports the group roster as an XLSX workbook
func (s *ExportService) GroupsWorkbook(actor *models.User) (*excelize.File, error) {
	if err := s.checkActor(actor); err != nil {
		return nil, err
	}

	groups, err := s.groupRepo.List(repositories.GroupFilter{})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Groups"
	f.SetSheetName("Sheet1", sheet)

	header := []interface{}{"Name", "Kind", "Gender", "Representing", "BHS ID", "Code", "Status"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, group := range groups {
		bhsID := ""
		if group.BHSID != nil {
			bhsID = fmt.Sprintf("%d", *group.BHSID)
		}
		row := []interface{}{
			group.Name, group.Kind.String(), group.Gender.String(),
			group.Representing, bhsID, group.Code, group.Status.String(),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}
