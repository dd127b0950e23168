package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"restaurant-pos/internal/domain"
)

// ensureCode assigns a unique human-readable code to the given row. The base
// code derives from the row id; if another row already holds it, numeric
// suffixes are probed in order. The probe is bounded by the table size plus
// one, so it always terminates: a table of n rows cannot occupy n+1 distinct
// candidates.
func ensureCode(ctx context.Context, db *gorm.DB, table, prefix string, id uint) (domain.Code, error) {
	codeMu.Lock()
	defer codeMu.Unlock()

	var rows int64
	if err := db.WithContext(ctx).Table(table).Count(&rows).Error; err != nil {
		return "", fmt.Errorf("count %s: %w", table, err)
	}

	base := domain.MakeCode(prefix, id)
	candidate := base
	for n := 1; ; n++ {
		var clashes int64
		err := db.WithContext(ctx).Table(table).
			Where("code = ? AND id <> ?", candidate, id).
			Count(&clashes).Error
		if err != nil {
			return "", fmt.Errorf("probe code %s: %w", candidate, err)
		}
		if clashes == 0 {
			break
		}
		if int64(n) > rows+1 {
			return "", fmt.Errorf("no free code for %s row %d", table, id)
		}
		candidate = base.WithSuffix(n)
	}

	err := db.WithContext(ctx).Table(table).Where("id = ?", id).
		Update("code", candidate).Error
	if err != nil {
		return "", fmt.Errorf("persist code %s: %w", candidate, err)
	}
	return candidate, nil
}
