package display

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/chrisdamba/lunchrush/internal/models"
	"github.com/schollz/progressbar/v3"
)

const (
	clearSequence = "\033[H\033[2J"
	rule          = "==================================="
)

// Renderer draws snapshots of the restaurant on a terminal. It only reads
// the snapshot it is given.
type Renderer struct {
	w           io.Writer
	clearScreen bool
}

func NewRenderer(w io.Writer, clearScreen bool) *Renderer {
	return &Renderer{w: w, clearScreen: clearScreen}
}

func (r *Renderer) Render(s models.Snapshot) error {
	var b strings.Builder
	if r.clearScreen {
		b.WriteString(clearSequence)
	}

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "  SNOWY LUNCH RUSH 🍔")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "👤 Player: %s   Turn %d/%d\n", s.PlayerName, s.Turn, s.Duration)
	fmt.Fprintf(&b, "⏰ Time left: %d %s\n", s.TimeLeft, timeBar(s.TimeLeft, s.Duration))
	fmt.Fprintf(&b, "💰 Money: %d\n", s.Money)
	fmt.Fprintf(&b, "👥 Queue (%d): %s\n", len(s.Queue), queueLine(s.Queue))
	fmt.Fprintln(&b, "🍽  Tables:")
	for _, t := range s.Tables {
		fmt.Fprintf(&b, "   [%d] %s\n", t.Capacity, tableLine(t))
	}
	for _, notice := range s.Notices {
		fmt.Fprintf(&b, "📣 %s\n", notice)
	}
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "1 - Seat next party")
	fmt.Fprintln(&b, "2 - Serve tables")
	fmt.Fprintln(&b, "3 - Wait")
	fmt.Fprintln(&b, "4 - Save and exit")
	fmt.Fprintln(&b, "5 - Exit without saving")
	fmt.Fprintln(&b, rule)
	b.WriteString("Choose action (1-5): ")

	_, err := io.WriteString(r.w, b.String())
	return err
}

// Message prints one line of feedback after an action.
func (r *Renderer) Message(msg string) error {
	_, err := fmt.Fprintln(r.w, msg)
	return err
}

func (r *Renderer) GameOver(s models.Snapshot) error {
	var b strings.Builder
	if r.clearScreen {
		b.WriteString(clearSequence)
	}
	fmt.Fprintln(&b, "🏁 GAME OVER")
	fmt.Fprintf(&b, "💰 Total money earned: %d\n", s.Money)
	_, err := io.WriteString(r.w, b.String())
	return err
}

func queueLine(queue []models.CustomerView) string {
	if len(queue) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(queue))
	for _, c := range queue {
		mood := ""
		if c.Anger > 0 {
			mood = strings.Repeat("😠", c.Anger)
		}
		parts = append(parts, fmt.Sprintf("%s(%d)%s", c.Symbol, c.Patience, mood))
	}
	return strings.Join(parts, " ")
}

func tableLine(t models.TableView) string {
	if t.Customer == nil {
		return "free"
	}
	eaten := t.EatTotal - t.EatLeft
	return fmt.Sprintf("%s %s eating %d/%d", t.Customer.Symbol, t.Customer.Name, eaten, t.EatTotal)
}

// timeBar renders the remaining turns with progressbar and returns the last
// frame it drew.
func timeBar(left, total int) string {
	if total <= 0 {
		return ""
	}
	left = max(0, min(left, total))

	var buf bytes.Buffer
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(&buf),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerPadding: "░",
			BarStart:      "|",
			BarEnd:        "|",
		}),
	)
	_ = bar.Set(left)

	frames := strings.Split(buf.String(), "\r")
	for i := len(frames) - 1; i >= 0; i-- {
		if frame := strings.TrimSpace(frames[i]); frame != "" {
			return frame
		}
	}
	return ""
}
