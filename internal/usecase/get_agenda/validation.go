package get_agenda

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	switch req.View {
	case "":
		req.View = ViewDay
	case ViewDay, ViewWeek:
	default:
		return fmt.Errorf("%w: unknown view %q", ErrInvalidInput, req.View)
	}

	return nil
}
