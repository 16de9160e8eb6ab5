package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/pitchgate"
	"github.com/sagarc03/pitchgate/config"
	"github.com/sagarc03/pitchgate/keybackend"
	"github.com/sagarc03/pitchgate/report"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration without starting the server",
	Long: `Load configuration, credentials and the served directory exactly as
serve would, print a summary, and exit non-zero on any error.`,
	RunE: runCheck,
}

var checkJSON bool

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	formatter := report.NewFormatter(checkJSON)

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	creds, err := keybackend.NewCredentialSet(cfg.Auth)
	if err != nil {
		_ = formatter.FormatError(os.Stdout, err)
		return fmt.Errorf("load credentials: %w", err)
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		_ = formatter.FormatError(os.Stdout, err)
		return err
	}
	defer closeStore()

	assets, err := store.List(ctx)
	if err != nil {
		_ = formatter.FormatError(os.Stdout, err)
		return fmt.Errorf("list assets: %w", err)
	}

	result := report.CheckResult{
		Root:        store.Dir(),
		Addr:        cfg.Server.Addr(),
		Realm:       cfg.Server.Realm,
		Credentials: creds.Len(),
		Assets:      len(assets),
	}
	for _, a := range assets {
		if a.Path == pitchgate.IndexFile {
			result.HasIndex = true
			break
		}
	}

	return formatter.FormatCheck(os.Stdout, result)
}
