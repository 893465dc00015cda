package leaderboard

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/chrisdamba/lunchrush/internal/logger"
	"github.com/chrisdamba/lunchrush/internal/models"
	"github.com/chrisdamba/lunchrush/internal/repositories"
	"go.uber.org/zap"
)

// Entry is one ranked row of the leaderboard.
type Entry struct {
	Rank    int
	Session *models.Session
}

// SessionLog records finished games and reads them back ranked by money.
type SessionLog struct {
	repo repositories.SessionRepository
	now  func() time.Time
	log  *logger.Logger
}

type Option func(*SessionLog)

func WithClock(now func() time.Time) Option {
	return func(s *SessionLog) { s.now = now }
}

func WithLogger(log *logger.Logger) Option {
	return func(s *SessionLog) { s.log = log }
}

func NewSessionLog(repo repositories.SessionRepository, opts ...Option) *SessionLog {
	s := &SessionLog{
		repo: repo,
		now:  time.Now,
		log:  logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LogGame stores a finished session. The record is durable once LogGame
// returns without error.
func (s *SessionLog) LogGame(ctx context.Context, playerName string, money, timePlayed int) (*models.Session, error) {
	session := &models.Session{
		PlayerName: playerName,
		Money:      money,
		TimePlayed: timePlayed,
		DatePlayed: s.now().Format(models.DatePlayedLayout),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session for %s: %w", playerName, err)
	}

	s.log.Info("session saved",
		zap.Int64("session_id", session.ID),
		zap.String("player", playerName),
		zap.Int("money", money),
		zap.Int("time_played", timePlayed),
	)
	return session, nil
}

// Leaderboard returns the best topN sessions; topN <= 0 means the default size.
func (s *SessionLog) Leaderboard(ctx context.Context, topN int) ([]Entry, error) {
	if topN <= 0 {
		topN = models.DefaultLeaderboardSize
	}
	sessions, err := s.repo.Top(ctx, topN)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	entries := make([]Entry, 0, len(sessions))
	for i, session := range sessions {
		entries = append(entries, Entry{Rank: i + 1, Session: session})
	}
	return entries, nil
}

const separator = "----------------------------------------"

func Render(w io.Writer, entries []Entry) error {
	if _, err := fmt.Fprintf(w, "🏆 LEADERBOARD 🏆\n%s\n", separator); err != nil {
		return err
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintf(w, "No games played yet.\n%s\n", separator)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Rank\tPlayer\tMoney\tTime\tDate")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n",
			e.Rank,
			e.Session.PlayerName,
			e.Session.Money,
			formatDuration(e.Session.TimePlayed),
			e.Session.DatePlayed,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, separator)
	return err
}

// formatDuration prints seconds as m:ss.
func formatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
