package repositories

import (
	"context"

	"github.com/chrisdamba/lunchrush/internal/models"
)

// SessionRepository stores finished games. Create assigns session.ID and
// must not return before the record is durable.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	// Top returns at most limit sessions, highest money first, earlier
	// sessions first on ties.
	Top(ctx context.Context, limit int) ([]*models.Session, error)
	GetAll(ctx context.Context) ([]*models.Session, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
	Close() error
}
