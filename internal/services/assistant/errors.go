package assistant

import (
	"strings"

	"clinic/internal/validation"

	"github.com/google/uuid"
)

func errUnknownBranches(ids []uuid.UUID) error {
	return validation.Field("branches", "unknown branch ids: "+joinIDs(ids))
}

func errForeignBranches(ids []uuid.UUID) error {
	return validation.Field("branches", "branches belong to another clinic: "+joinIDs(ids))
}

func joinIDs(ids []uuid.UUID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}
