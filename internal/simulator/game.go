package simulator

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chrisdamba/lunchrush/internal/logger"
	"github.com/chrisdamba/lunchrush/internal/models"
	"go.uber.org/zap"
)

type Action int

const (
	ActionInvalid Action = iota
	ActionSeat
	ActionServe
	ActionWait
	ActionSaveAndExit
	ActionExit
)

// ParseAction maps one line of player input to an action. Anything that is
// not one of the menu numbers is ActionInvalid.
func ParseAction(line string) Action {
	switch strings.TrimSpace(line) {
	case "1":
		return ActionSeat
	case "2":
		return ActionServe
	case "3":
		return ActionWait
	case "4":
		return ActionSaveAndExit
	case "5":
		return ActionExit
	default:
		return ActionInvalid
	}
}

// EndReason says why a game stopped.
type EndReason string

const (
	EndTimeUp      EndReason = "time_up"
	EndSaveAndExit EndReason = "save_and_exit"
	EndExit        EndReason = "exit"
	EndInputClosed EndReason = "input_closed"
	EndCanceled    EndReason = "canceled"
)

// SessionLogger persists a finished game.
type SessionLogger interface {
	LogGame(ctx context.Context, playerName string, money, timePlayed int) (*models.Session, error)
}

// Screen shows the game to the player.
type Screen interface {
	Render(snapshot models.Snapshot) error
	Message(msg string) error
	GameOver(snapshot models.Snapshot) error
}

type GameOptions struct {
	// Sessions stores saved games; nil disables saving.
	Sessions    SessionLogger
	Output      OutputDestination
	Screen      Screen
	Input       io.Reader
	TurnDelay   time.Duration
	SessionID   string
	TopicPrefix string
	Clock       func() time.Time
	Sleep       func(ctx context.Context, d time.Duration)
	Logger      *logger.Logger
}

// Result describes a finished game.
type Result struct {
	PlayerName string
	Money      int
	TimePlayed int // seconds
	Turns      int
	Reason     EndReason
	Saved      bool
	Session    *models.Session
	SaveErr    error
}

// Game drives a Restaurant one player action per turn.
type Game struct {
	restaurant *Restaurant
	opts       GameOptions
	serializer EventSerializer
	notices    []string
}

const eventBatchSize = 100

func NewGame(restaurant *Restaurant, opts GameOptions) *Game {
	if opts.Output == nil {
		opts.Output = DiscardOutput{}
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepContext
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	return &Game{
		restaurant: restaurant,
		opts:       opts,
		serializer: EventSerializer{SessionID: opts.SessionID, TopicPrefix: opts.TopicPrefix},
	}
}

// Run plays until time runs out, the player leaves, the input ends or ctx is
// canceled. Only a canceled context or a broken screen produce an error; a
// failed save is reported in the Result.
func (g *Game) Run(ctx context.Context) (Result, error) {
	r := g.restaurant
	log := g.opts.Logger
	// stops the input reader once the game is over
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := g.opts.Clock()
	lines := readLines(ctx, g.opts.Input)
	lastTurn := r.Turn()

	log.Info("game started",
		zap.String("session_id", g.opts.SessionID),
		zap.String("player", r.PlayerName),
		zap.Int("turns", r.TimeLeft),
	)

	result := Result{PlayerName: r.PlayerName, Reason: EndTimeUp}
	for !r.GameOver() {
		if ctx.Err() != nil {
			result.Reason = EndCanceled
			break
		}

		r.NewCustomer()
		g.noticeDepartures(r.WaitCustomers())

		lastTurn = r.Turn()
		snapshot := r.Snapshot()
		snapshot.Notices = g.notices
		g.notices = nil
		if err := g.opts.Screen.Render(snapshot); err != nil {
			return result, fmt.Errorf("failed to render turn %d: %w", r.Turn(), err)
		}

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			result.Reason = EndCanceled
		case line, ok = <-lines:
			if !ok {
				result.Reason = EndInputClosed
			}
		}
		if result.Reason != EndTimeUp {
			r.EndSession()
			break
		}

		result.Turns++
		switch ParseAction(line) {
		case ActionSeat:
			g.seat()
		case ActionServe:
			g.serve()
		case ActionWait:
			g.say("⏳ Waiting...")
			for _, c := range r.WaitCustomers() {
				g.say(departureMessage(c))
			}
		case ActionSaveAndExit:
			result.Reason = EndSaveAndExit
			r.EndSession()
		case ActionExit:
			result.Reason = EndExit
			r.EndSession()
		default:
			g.say("❌ Invalid choice")
		}
		g.opts.Sleep(ctx, g.opts.TurnDelay)

		r.UpdateTime()
		g.flushEvents()
	}

	result.Money = r.Money
	result.TimePlayed = max(0, int(g.opts.Clock().Sub(start).Seconds()))

	if result.Reason == EndTimeUp || result.Reason == EndSaveAndExit {
		g.save(ctx, &result)
	}
	r.RecordSessionEnded(lastTurn, result.Saved, result.TimePlayed)
	g.flushEvents()

	log.Info("game ended",
		zap.String("session_id", g.opts.SessionID),
		zap.String("reason", string(result.Reason)),
		zap.Int("money", result.Money),
		zap.Int("turns", result.Turns),
		zap.Bool("saved", result.Saved),
	)

	if result.Reason == EndCanceled {
		return result, ctx.Err()
	}
	if err := g.opts.Screen.GameOver(r.Snapshot()); err != nil {
		return result, fmt.Errorf("failed to render game over: %w", err)
	}
	return result, nil
}

func (g *Game) seat() {
	res := g.restaurant.SeatNextCustomer()
	switch res.Outcome {
	case SeatSeated:
		g.say(fmt.Sprintf("🍽  Seating %s's party of %d at table %d...", res.Customer.Name, res.Customer.PartySize, res.Table.Capacity))
	case SeatNoCustomer:
		g.say("❌ No customers!")
	case SeatNoTable:
		g.say(fmt.Sprintf("❌ No free table for a party of %d!", res.Customer.PartySize))
	}
}

func (g *Game) serve() {
	g.say("🍔 Serving tables...")
	if earned := g.restaurant.ServeTables(); earned > 0 {
		g.say(fmt.Sprintf("💰 Earned %d", earned))
	}
}

func (g *Game) save(ctx context.Context, result *Result) {
	if g.opts.Sessions == nil {
		return
	}
	session, err := g.opts.Sessions.LogGame(ctx, result.PlayerName, result.Money, result.TimePlayed)
	if err != nil {
		result.SaveErr = err
		g.opts.Logger.Error("failed to save session",
			zap.String("session_id", g.opts.SessionID),
			zap.Error(err),
		)
		g.say(fmt.Sprintf("❌ Could not save session: %v", err))
		return
	}
	result.Saved = true
	result.Session = session
	g.say("💾 Session saved")
}

func (g *Game) noticeDepartures(departed []*models.Customer) {
	for _, c := range departed {
		g.notices = append(g.notices, departureMessage(c))
	}
}

func departureMessage(c *models.Customer) string {
	return fmt.Sprintf("😡 %s's party of %d left! -%d", c.Name, c.PartySize, c.PartySize*models.PenaltyPerGuest)
}

func (g *Game) say(msg string) {
	if err := g.opts.Screen.Message(msg); err != nil {
		g.opts.Logger.Debug("failed to write message", zap.Error(err))
	}
}

// flushEvents drains the event log into the output destination. Output
// problems are logged and never stop the game.
func (g *Game) flushEvents() {
	events := g.restaurant.Events()
	for !events.IsEmpty() {
		for _, event := range events.DequeueBatch(eventBatchSize) {
			msg, err := g.serializer.Serialize(event)
			if err != nil {
				g.opts.Logger.Error("failed to serialize event", zap.String("type", event.Type), zap.Error(err))
				continue
			}
			if err := g.opts.Output.WriteMessage(msg.Topic, msg.Message); err != nil {
				g.opts.Logger.Error("failed to write event", zap.String("topic", msg.Topic), zap.Error(err))
			}
		}
	}
}

// readLines feeds input lines to the turn loop so a blocked read does not
// hold up cancellation. The channel is closed at end of input.
func readLines(ctx context.Context, input io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		if input == nil {
			return
		}
		scanner := bufio.NewScanner(input)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
