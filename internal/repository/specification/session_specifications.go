package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedBySession scopes rows to the session id stored in user_id.
type OwnedBySession struct {
	SessionID uuid.UUID
}

func (s OwnedBySession) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.SessionID)
}
