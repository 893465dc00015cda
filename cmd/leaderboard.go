package cmd

import (
	"fmt"

	"github.com/chrisdamba/lunchrush/internal/leaderboard"
	"github.com/chrisdamba/lunchrush/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the best saved games",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		store, err := openSessionStore(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to open session store: %w", err)
		}
		defer store.Close()

		entries, err := leaderboard.NewSessionLog(store, leaderboard.WithLogger(log)).Leaderboard(cmd.Context(), cfg.LeaderboardSize)
		if err != nil {
			return err
		}
		return leaderboard.Render(cmd.OutOrStdout(), entries)
	},
}

func init() {
	leaderboardCmd.Flags().Int("top", models.DefaultLeaderboardSize, "Number of entries to show")
	cobra.CheckErr(viper.BindPFlag("leaderboard_size", leaderboardCmd.Flags().Lookup("top")))

	rootCmd.AddCommand(leaderboardCmd)
}
