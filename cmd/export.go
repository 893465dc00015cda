package cmd

import (
	"fmt"

	"github.com/chrisdamba/lunchrush/internal/models"
	"github.com/chrisdamba/lunchrush/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every saved game as a parquet file",
	Long: `export writes the whole session history to sessions.parquet, either under the
output path or, with --cloud-provider s3, as an object in the given bucket.`,
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

		ctx := cmd.Context()
		store, err := openSessionStore(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to open session store: %w", err)
		}
		defer store.Close()

		sessions, err := store.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to read sessions: %w", err)
		}

		exporter, err := output.NewSessionExporter(ctx, cfg)
		if err != nil {
			return err
		}
		location, err := exporter.Export(sessions)
		if err != nil {
			return err
		}

		log.Info("sessions exported", zap.Int("count", len(sessions)), zap.String("location", location))
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d sessions to %s\n", len(sessions), location)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("cloud-provider", "", "Cloud storage provider (s3), empty for a local file")
	exportCmd.Flags().String("bucket", "", "Cloud storage bucket name")
	exportCmd.Flags().String("region", "us-east-1", "Cloud storage region")

	bindFlags(exportCmd.Flags(), map[string]string{
		"cloud_storage.provider":    "cloud-provider",
		"cloud_storage.bucket_name": "bucket",
		"cloud_storage.region":      "region",
	})

	rootCmd.AddCommand(exportCmd)
}
