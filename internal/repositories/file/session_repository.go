package file

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/chrisdamba/lunchrush/internal/models"
)

// SessionRepository keeps sessions as JSON lines in a local file. It is the
// offline default; every Create is fsynced before it returns.
type SessionRepository struct {
	mu       sync.Mutex
	path     string
	file     *os.File
	sessions []*models.Session
	lastID   int64
}

// Open loads the sessions already stored at path, creating the file if it
// does not exist. The caller must Close the repository.
func Open(path string) (*SessionRepository, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open session file %s: %w", path, err)
	}

	repo := &SessionRepository{path: path, file: f}
	if err := repo.load(); err != nil {
		f.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SessionRepository) load() error {
	scanner := bufio.NewScanner(r.file)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		session := &models.Session{}
		if err := json.Unmarshal(scanner.Bytes(), session); err != nil {
			return fmt.Errorf("corrupt session record at %s:%d: %w", r.path, line, err)
		}
		r.sessions = append(r.sessions, session)
		r.lastID = max(r.lastID, session.ID)
	}
	return scanner.Err()
}

func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return errors.New("session repository is closed")
	}

	stored := *session
	stored.ID = r.lastID + 1
	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	if _, err := r.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := r.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync session file: %w", err)
	}

	r.lastID = stored.ID
	r.sessions = append(r.sessions, &stored)
	session.ID = stored.ID
	return nil
}

func (r *SessionRepository) Top(ctx context.Context, limit int) ([]*models.Session, error) {
	sessions, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		if sessions[i].Money != sessions[j].Money {
			return sessions[i].Money > sessions[j].Money
		}
		return sessions[i].ID < sessions[j].ID
	})
	if limit >= 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

// GetAll returns copies of every stored session in insertion order.
func (r *SessionRepository) GetAll(ctx context.Context) ([]*models.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		session := *s
		out = append(out, &session)
	}
	return out, nil
}

func (r *SessionRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions), nil
}

func (r *SessionRepository) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return errors.New("session repository is closed")
	}
	if err := r.file.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate session file: %w", err)
	}
	r.sessions = nil
	r.lastID = 0
	return r.file.Sync()
}

func (r *SessionRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
