// Package repository holds the gorm-backed stores for courses, instructors, users and enrollments.
package repository

import (
	"byway/utils/apperr"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// likeEscape is the escape character used in every LIKE pattern. '!' avoids the
// backslash quoting differences between postgres, mysql and sqlite.
const likeEscape = "!"

// containsPattern lower-cases q and wraps it for a literal substring LIKE match.
func containsPattern(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return "%" + r.Replace(q) + "%"
}

// likeClause builds "LOWER(col) LIKE ? ESCAPE '!'" for every column, OR-ed together.
func likeClause(cols ...string) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '%s'", col, likeEscape)
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

func repeatArg(v interface{}, n int) []interface{} {
	out := make([]interface{}, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}

func notFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(fmt.Sprintf("%s with ID %d not found.", entity, id), id)
	}
	return err
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
