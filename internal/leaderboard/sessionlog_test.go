package leaderboard

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chrisdamba/lunchrush/internal/models"
	"github.com/chrisdamba/lunchrush/internal/repositories"
	"github.com/chrisdamba/lunchrush/internal/repositories/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLog(t *testing.T) *SessionLog {
	t.Helper()
	repo, err := file.Open(filepath.Join(t.TempDir(), "sessions.jsonl"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	clock := func() time.Time { return time.Date(2024, 3, 9, 13, 5, 7, 0, time.Local) }
	return NewSessionLog(repo, WithClock(clock))
}

func TestLogGame(t *testing.T) {
	log := newTestLog(t)

	session, err := log.LogGame(context.Background(), "Ann", 35, 125)
	require.NoError(t, err)

	assert.Equal(t, int64(1), session.ID)
	assert.Equal(t, "Ann", session.PlayerName)
	assert.Equal(t, 35, session.Money)
	assert.Equal(t, 125, session.TimePlayed)
	assert.Equal(t, "2024-03-09 13:05:07", session.DatePlayed)
}

func TestLeaderboard_TopN(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()

	for _, money := range []int{10, 50, 5} {
		_, err := log.LogGame(ctx, "p", money, 60)
		require.NoError(t, err)
	}

	entries, err := log.Leaderboard(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 50, entries[0].Session.Money)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 10, entries[1].Session.Money)
}

func TestLeaderboard_DefaultSize(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()

	for i := 0; i < models.DefaultLeaderboardSize+5; i++ {
		_, err := log.LogGame(ctx, "p", i, 1)
		require.NoError(t, err)
	}

	entries, err := log.Leaderboard(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, models.DefaultLeaderboardSize)
	assert.Equal(t, models.DefaultLeaderboardSize+4, entries[0].Session.Money)
}

type failingRepo struct {
	repositories.SessionRepository
}

func (failingRepo) Create(context.Context, *models.Session) error {
	return errors.New("disk full")
}

func TestLogGame_Error(t *testing.T) {
	log := NewSessionLog(failingRepo{})

	session, err := log.LogGame(context.Background(), "Ann", 1, 1)
	assert.Nil(t, session)
	assert.ErrorContains(t, err, "disk full")
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	entries := []Entry{
		{Rank: 1, Session: &models.Session{PlayerName: "Ann", Money: 50, TimePlayed: 75, DatePlayed: "2024-03-09 13:05:07"}},
		{Rank: 2, Session: &models.Session{PlayerName: "Bo", Money: -4, TimePlayed: 9, DatePlayed: "2024-03-10 08:00:00"}},
	}

	require.NoError(t, Render(&buf, entries))
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "LEADERBOARD")
	assert.Equal(t, separator, lines[1])
	assert.Equal(t, []string{"Rank", "Player", "Money", "Time", "Date"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"1", "Ann", "50", "1:15", "2024-03-09", "13:05:07"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"2", "Bo", "-4", "0:09", "2024-03-10", "08:00:00"}, strings.Fields(lines[4]))
	assert.Equal(t, separator, lines[5])
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil))
	assert.Contains(t, buf.String(), "No games played yet.")
}
