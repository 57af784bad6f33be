// ABOUTME: CLI command to toggle the workout bell on this device.
// ABOUTME: The setting lives in the local badger prefs store, not in synced history.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitday/internal/prefs"
	"github.com/spf13/cobra"
)

var soundCmd = &cobra.Command{
	Use:       "sound [on|off]",
	Short:     "Show or change whether the bell rings during workouts",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := prefs.Open(prefs.DefaultDir())
		if err != nil {
			return err
		}
		defer store.Close()

		if len(args) == 0 {
			enabled, err := store.SoundEnabled()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sound: %s\n", onOff(enabled))
			return nil
		}

		var enabled bool
		switch args[0] {
		case "on":
			enabled = true
		case "off":
			enabled = false
		default:
			return fmt.Errorf("unknown value: %s (use on or off)", args[0])
		}

		if err := store.SetSoundEnabled(enabled); err != nil {
			return err
		}
		color.Green("✓ Sound %s", onOff(enabled))
		return nil
	},
}

// soundEnabled reads the device setting, defaulting to on when the store cannot be opened.
func soundEnabled() bool {
	store, err := prefs.Open(prefs.DefaultDir())
	if err != nil {
		logger.Warn().Err(err).Msg("prefs unavailable, sound stays on")
		return true
	}
	defer store.Close()

	enabled, err := store.SoundEnabled()
	if err != nil {
		return true
	}
	return enabled
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func init() {
	rootCmd.AddCommand(soundCmd)
}
