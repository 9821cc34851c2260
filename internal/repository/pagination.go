package repository

import "gorm.io/gorm"

// paginate counts the rows matched by query and fetches one page of them.
// page is 1-based.
func paginate[T any](query *gorm.DB, page, limit int) ([]T, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []T
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
