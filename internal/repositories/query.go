package repositories

import (
	"errors"
	"fmt"
	"strings"

	apperrors "clinic/internal/errors"

	"gorm.io/gorm"
)

// ListQuery carries the filtering, sorting and paging shared by list endpoints.
type ListQuery struct {
	ClinicID string
	Search   string
	Sort     string
	Offset   int
	Limit    int
}

// sortClause turns "name" / "-price" into an ORDER BY clause using only the
// columns listed in allowed (API key -> column).
func sortClause(sort string, allowed map[string]string, fallback string) (string, error) {
	sort = strings.TrimSpace(sort)
	if sort == "" {
		return fallback, nil
	}

	direction := "ASC"
	if strings.HasPrefix(sort, "-") {
		direction = "DESC"
		sort = strings.TrimPrefix(sort, "-")
	}

	column, ok := allowed[sort]
	if !ok {
		return "", fmt.Errorf("%w: cannot sort by %q", apperrors.ErrValidation, sort)
	}
	return column + " " + direction, nil
}

func paginate(db *gorm.DB, q ListQuery) *gorm.DB {
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}
	return db
}

// searchPattern builds a case-insensitive LIKE pattern, escaping wildcards.
func searchPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(r.Replace(strings.TrimSpace(s))) + "%"
}

// translate maps gorm errors onto domain errors.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, what)
	default:
		return err
	}
}
