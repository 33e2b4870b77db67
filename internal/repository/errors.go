package repository

import (
	"database/sql"
	"database/sql/driver"
	"net"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"employee-management-backend/internal/model"
)

// ErrConflict is returned when a write violates a unique constraint.
var ErrConflict = errors.New("unique constraint violated")

// Page bounds a list query.
type Page struct {
	Limit  int
	Offset int
}

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

func (p Page) normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

func (p Page) apply(q *gorm.DB) *gorm.DB {
	p = p.normalize()
	return q.Limit(p.Limit).Offset(p.Offset)
}

// storeError translates a gorm error into the domain taxonomy. entity names the
// table for not-found messages, op is the wrap context.
func storeError(err error, entity, op string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.ErrNotFound(entity + " not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Wrap(ErrConflict, op)
	case isConnError(err):
		return errors.Wrap(model.ErrStoreUnavailable, op+": "+err.Error())
	}
	return errors.Wrap(err, op)
}

func isConnError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
