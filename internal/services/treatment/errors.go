package treatment

import (
	"fmt"

	apperrors "clinic/internal/errors"
)

func errDuplicateName(name string) error {
	return fmt.Errorf("%w: treatment %q already exists in this clinic", apperrors.ErrDuplicate, name)
}
