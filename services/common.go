package services

import (
	"errors"
	"time"

	"github.com/anjiri1684/skill_swap/apperr"
	"gorm.io/gorm"
)

var timeNow = func() time.Time { return time.Now().UTC() }

// dbError converts a store error into the API taxonomy.
func dbError(err error, resource string) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	switch {
	case errors.As(err, &ae):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict("%s already exists", resource)
	default:
		return apperr.Internal(err)
	}
}

// Paging is a 1-based page request.
type Paging struct {
	Page     int
	PageSize int
}

func (p Paging) normalize(defSize, maxSize int) (limit, offset int) {
	size := p.PageSize
	if size <= 0 {
		size = defSize
	}
	if size > maxSize {
		size = maxSize
	}
	page := p.Page
	if page < 1 {
		page = 1
	}
	return size, (page - 1) * size
}
