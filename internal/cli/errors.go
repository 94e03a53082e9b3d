package cli

import (
	"fmt"

	"github.com/erazemk/inventory/internal/model"
)

type notFoundError struct {
	id int64
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("item not found: %d", e.id)
}

func errNotFound(id int64) error {
	return notFoundError{id: id}
}

// Reported reports whether err has already been shown to the user by a view,
// so the caller only needs to set the exit status.
func Reported(err error) bool {
	return model.IsValidation(err)
}
