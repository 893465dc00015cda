package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chrisdamba/lunchrush/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() models.Snapshot {
	seated := models.CustomerView{Name: "Ann", PartySize: 2, Symbol: models.PartySymbol(2)}
	return models.Snapshot{
		PlayerName: "Mika",
		Turn:       4,
		TimeLeft:   17,
		Duration:   20,
		Money:      -3,
		Queue: []models.CustomerView{
			{Name: "Bo", PartySize: 1, Patience: 2, Symbol: models.PartySymbol(1)},
			{Name: "Cy", PartySize: 3, Patience: -1, Anger: 2, Symbol: models.PartySymbol(3)},
		},
		Tables: []models.TableView{
			{Capacity: 1, Status: models.TableStatusFree},
			{Capacity: 2, Status: models.TableStatusOccupied, Customer: &seated, EatLeft: 3, EatTotal: 4},
		},
		Notices: []string{"😡 Dee's party of 4 left! -8"},
	}
}

func TestRenderer_Render(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, false)

	require.NoError(t, r.Render(sampleSnapshot()))
	out := buf.String()

	assert.NotContains(t, out, clearSequence)
	assert.Contains(t, out, "Player: Mika")
	assert.Contains(t, out, "Turn 4/20")
	assert.Contains(t, out, "Time left: 17")
	assert.Contains(t, out, "Money: -3")
	assert.Contains(t, out, "Queue (2): 🙂(2) 🙂🙂🙂(-1)😠😠")
	assert.Contains(t, out, "[1] free")
	assert.Contains(t, out, "[2] 🙂🙂 Ann eating 1/4")
	assert.Contains(t, out, "😡 Dee's party of 4 left! -8")
	assert.True(t, strings.HasSuffix(out, "Choose action (1-5): "))
}

func TestRenderer_RenderIsDeterministic(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, NewRenderer(&first, true).Render(sampleSnapshot()))
	require.NoError(t, NewRenderer(&second, true).Render(sampleSnapshot()))

	assert.Equal(t, first.String(), second.String())
	assert.True(t, strings.HasPrefix(first.String(), clearSequence))
}

func TestRenderer_EmptyQueue(t *testing.T) {
	var buf bytes.Buffer
	s := sampleSnapshot()
	s.Queue = nil

	require.NoError(t, NewRenderer(&buf, false).Render(s))
	assert.Contains(t, buf.String(), "Queue (0): -")
}

func TestRenderer_GameOver(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, false).GameOver(models.Snapshot{Money: 25}))

	assert.Contains(t, buf.String(), "GAME OVER")
	assert.Contains(t, buf.String(), "Total money earned: 25")
}

func TestTimeBar(t *testing.T) {
	assert.Empty(t, timeBar(5, 0))
	assert.NotEmpty(t, timeBar(10, 20))
	assert.NotContains(t, timeBar(10, 20), "\r")
	assert.NotPanics(t, func() { timeBar(-4, 20) })
	assert.NotPanics(t, func() { timeBar(40, 20) })
}
