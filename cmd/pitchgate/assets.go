package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/pitchgate/config"
	"github.com/sagarc03/pitchgate/report"
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "List the files the server will expose",
	Long: `Walk the served directory and list every regular file with its size,
content type and ETag. Symlinks and other special files are skipped,
matching what the server can actually open.`,
	RunE: runAssets,
}

var assetsJSON bool

func init() {
	assetsCmd.Flags().BoolVar(&assetsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(assetsCmd)
}

func runAssets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	assets, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list assets: %w", err)
	}

	return report.NewFormatter(assetsJSON).FormatAssets(os.Stdout, assets)
}
