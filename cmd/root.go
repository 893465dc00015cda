package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chrisdamba/lunchrush/internal/display"
	"github.com/chrisdamba/lunchrush/internal/factories"
	"github.com/chrisdamba/lunchrush/internal/leaderboard"
	"github.com/chrisdamba/lunchrush/internal/models"
	"github.com/chrisdamba/lunchrush/internal/simulator"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "lunchrush",
	Short: "A turn-based lunch rush restaurant game",
	Long: `lunchrush is a text-based restaurant game. Parties arrive, wait in a queue and
get angry; seat them at tables, serve them until they finish eating and keep
the money coming in before the lunch rush is over.`,
	SilenceUsage: true,
	RunE:         runGame,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.lunchrush.yaml)")
	rootCmd.PersistentFlags().String("storage-driver", models.StorageDriverFile, "Session store: file or postgres")
	rootCmd.PersistentFlags().String("storage-path", "lunchrush_sessions.jsonl", "Session file used by the file store")
	rootCmd.PersistentFlags().String("output-path", "output", "Directory for json events and exports")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "json", "Log format: json or console")

	rootCmd.Flags().String("player", "", "Player name (asked for when empty)")
	rootCmd.Flags().Int64("seed", 0, "Random seed, 0 for a different game every time")
	rootCmd.Flags().String("seating-policy", models.SeatingPolicyBestFit, "Seating policy: best_fit, first_fit or largest_first")
	rootCmd.Flags().Duration("turn-delay", 0, "Pause after each action")
	rootCmd.Flags().Bool("clear-screen", true, "Clear the terminal before each turn")
	rootCmd.Flags().String("output", models.OutputNone, "Event stream: none, console, json or kafka")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")

	bindFlags(rootCmd.PersistentFlags(), map[string]string{
		"storage.driver":    "storage-driver",
		"storage.file_path": "storage-path",
		"output.path":       "output-path",
		"log.level":         "log-level",
		"log.format":        "log-format",
	})
	bindFlags(rootCmd.Flags(), map[string]string{
		"player_name":        "player",
		"seed":               "seed",
		"seating_policy":     "seating-policy",
		"turn_delay":         "turn-delay",
		"clear_screen":       "clear-screen",
		"output.destination": "output",
		"kafka.broker_list":  "kafka-broker-list",
	})
}

// bindFlags binds each viper key to the flag of the given name.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(name)))
	}
}

func runGame(cmd *cobra.Command, _ []string) error {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openSessionStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer store.Close()

	events, err := simulator.NewOutputDestination(cfg, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to create output destination: %w", err)
	}
	defer events.Close()

	input := bufio.NewReader(cmd.InOrStdin())
	playerName := cfg.PlayerName
	if playerName == "" {
		playerName = askPlayerName(cmd.OutOrStdout(), input)
	}

	restaurant, err := newRestaurant(cfg, playerName, log)
	if err != nil {
		return err
	}

	sessions := leaderboard.NewSessionLog(store, leaderboard.WithLogger(log.Named("leaderboard")))
	game := simulator.NewGame(restaurant, simulator.GameOptions{
		Sessions:    sessions,
		Output:      events,
		Screen:      display.NewRenderer(cmd.OutOrStdout(), cfg.ClearScreen),
		Input:       input,
		TurnDelay:   cfg.TurnDelay,
		SessionID:   factories.SessionID(),
		TopicPrefix: cfg.Kafka.TopicPrefix,
		Logger:      log.Named("game"),
	})

	result, err := game.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info("game interrupted", zap.String("player", playerName))
		return nil
	}
	if err != nil {
		return err
	}
	if !result.Saved {
		return nil
	}

	entries, err := sessions.Leaderboard(ctx, cfg.LeaderboardSize)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return leaderboard.Render(cmd.OutOrStdout(), entries)
}

// askPlayerName prompts once and falls back to a generated name.
func askPlayerName(w io.Writer, r *bufio.Reader) string {
	fmt.Fprint(w, "Enter your name: ")
	line, _ := r.ReadString('\n')
	if name := strings.TrimSpace(line); name != "" {
		return name
	}
	return factories.PlayerName()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
