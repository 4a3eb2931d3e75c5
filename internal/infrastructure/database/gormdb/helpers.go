package gormdb

import (
	"bytes"
	"errors"
	"fmt"
	"shopping-list-api/pkg/pagination"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// orderedPair returns a and b in canonical order, matching the user_low and
// user_high columns.
func orderedPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return a, b
	}
	return b, a
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "unique constraint failed")
}

// findPage runs query in the mode params select: the whole match set when
// searching, otherwise one page plus the total row count.
func findPage[M any](query *gorm.DB, params pagination.Params, column string) ([]M, int64, error) {
	query = pagination.Search(query, params, column).Session(&gorm.Session{})

	var total int64
	if !params.Searching() {
		if err := query.Count(&total).Error; err != nil {
			return nil, 0, fmt.Errorf("failed to count rows: %w", err)
		}
		if total == 0 {
			return nil, 0, nil
		}
	}

	var rows []M
	if err := pagination.Apply(query, params, column).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list rows: %w", err)
	}

	return rows, total, nil
}
