package reservations

import (
	"fmt"
	"time"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
	"github.com/jeffjr007/locahubaju-project/internal/service/reservations/models"
)

// validateActor проверяет, что известен действующий пользователь
func validateActor(actor domain.Actor) error {
	if actor.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if len(actor.UserID) > domain.MaxIDLength {
		return fmt.Errorf("%w: user id is too long", ErrValidation)
	}
	return nil
}

// validateInterval проверяет, что start < end и обе границы заданы
func validateInterval(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrValidation)
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: start must be before end", ErrValidation)
	}
	return nil
}

func validateNotes(notes *string) error {
	if notes != nil && len(*notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrValidation, domain.MaxNotesLength)
	}
	return nil
}

func validateCreate(actor domain.Actor, req *models.CreateRequest) error {
	if err := validateActor(actor); err != nil {
		return err
	}
	if req.SpaceID == "" {
		return fmt.Errorf("%w: space id is required", ErrValidation)
	}
	if err := validateInterval(req.Start, req.End); err != nil {
		return err
	}
	return validateNotes(req.Notes)
}

func validateEdit(actor domain.Actor, id string, req *models.EditRequest) error {
	if err := validateActor(actor); err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("%w: reservation id is required", ErrValidation)
	}
	if err := validateInterval(req.Start, req.End); err != nil {
		return err
	}
	return validateNotes(req.Notes)
}
