package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/sagarc03/pitchgate/config"
	"github.com/sagarc03/pitchgate/keybackend"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file interactively",
	Long: `Create a config file interactively.

You will be prompted for:
  - Port and directory to serve
  - Environment (development or production)
  - Username and password
  - Optional rotation credentials

The file is written with 0600 permissions since it holds credentials.`,
	// Skip the root config loading: there is nothing valid to load yet.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE:              runInit,
}

var (
	initOutput string
	initForce  bool
)

func init() {
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "config.yaml", "path of the config file to write")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file without asking")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(initOutput); err == nil && !initForce {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("'%s' already exists. Overwrite it", initOutput),
			IsConfirm: true,
		}
		if _, promptErr := prompt.Run(); promptErr != nil {
			fmt.Println("Cancelled.")
			return nil //nolint:nilerr // User cancelled, not an error
		}
	}

	cfg, err := config.Defaults()
	if err != nil {
		return err
	}

	portPrompt := promptui.Prompt{
		Label:   "Port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(input string) error {
			port, convErr := strconv.Atoi(input)
			if convErr != nil || port < 1 || port > 65535 {
				return errors.New("port must be a number between 1 and 65535")
			}
			return nil
		},
	}
	portVal, err := portPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portVal)

	rootPrompt := promptui.Prompt{
		Label: "Directory to serve (empty for the executable directory)",
		Validate: func(input string) error {
			if input == "" {
				return nil
			}
			_, resolveErr := config.StorageConfig{Path: input}.ResolveRoot()
			return resolveErr
		},
	}
	cfg.Storage.Path, err = rootPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	envSelect := promptui.Select{
		Label: "Environment",
		Items: []string{"development", "production"},
	}
	_, cfg.Env, err = envSelect.Run()
	if err != nil {
		return handlePromptError(err)
	}

	cfg.Auth.Primary, err = promptKeyPair("")
	if err != nil {
		return handlePromptError(err)
	}

	rotationPrompt := promptui.Prompt{
		Label:     "Add rotation credentials",
		IsConfirm: true,
	}
	if _, promptErr := rotationPrompt.Run(); promptErr == nil {
		cfg.Auth.Next, err = promptKeyPair("Rotation ")
		if err != nil {
			return handlePromptError(err)
		}
	}

	if err := cfg.Save(initOutput); err != nil {
		return err
	}

	fmt.Printf("Config written to %s\n", initOutput)
	fmt.Printf("Start the server with: pitchgate serve --config %s\n", initOutput)
	return nil
}

// promptKeyPair asks for a username and a masked password.
func promptKeyPair(labelPrefix string) (keybackend.KeyPair, error) {
	required := func(input string) error {
		if input == "" {
			return errors.New("value is required")
		}
		return nil
	}

	userPrompt := promptui.Prompt{
		Label:    labelPrefix + "Username",
		Validate: required,
	}
	username, err := userPrompt.Run()
	if err != nil {
		return keybackend.KeyPair{}, err
	}

	passPrompt := promptui.Prompt{
		Label:    labelPrefix + "Password",
		Mask:     '*',
		Validate: required,
	}
	password, err := passPrompt.Run()
	if err != nil {
		return keybackend.KeyPair{}, err
	}

	return keybackend.KeyPair{Username: username, Password: password}, nil
}

// handlePromptError handles promptui errors.
func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) {
		fmt.Println("\nCancelled.")
		os.Exit(0)
	}
	if errors.Is(err, promptui.ErrAbort) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}
