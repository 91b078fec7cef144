package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/keyring"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store the coach API key in the OS keyring."`
	Get    KeyringGetCmd    `cmd:"" help:"Show the stored coach API key (masked)."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove the coach API key from the OS keyring."`
	Status KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
}

// KeyringSetCmd stores the coach API key in the OS keyring
type KeyringSetCmd struct {
	Key string `arg:"" help:"API key to store."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if err := keyring.SetAPIKey(cmd.Key); err != nil {
		return err
	}
	ctx.Println("✓ API key stored successfully in OS keyring")
	ctx.Printf("  The coach will use it unless %s is set\n", "HABITLOG_API_KEY")
	return nil
}

type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	key, err := keyring.GetAPIKey()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no API key found in keyring. Use '%s keyring set' to store one", constants.AppName)
		}
		return fmt.Errorf("failed to retrieve API key from keyring: %w", err)
	}
	ctx.Println("API key retrieved from keyring:")
	ctx.Println(keyring.Mask(key))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring")
		}
		return err
	}
	ctx.Println("✓ API key deleted from OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}

	ctx.Println("✓ OS keyring is available")
	if _, err := keyring.GetAPIKey(); err == nil {
		ctx.Println("✓ API key is stored in keyring")
	} else if errors.Is(err, keyring.ErrNotFound) {
		ctx.Println("ℹ No API key stored in keyring")
	}
	return nil
}
