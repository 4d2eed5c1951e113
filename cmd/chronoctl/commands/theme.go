package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func themeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [toggle|dark|light]",
		Short:     "Show or change the color theme",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"toggle", "dark", "light"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				switch args[0] {
				case "toggle":
					c.app.Preferences.ToggleTheme(cmd.Context())
				case "dark":
					c.app.Preferences.SetTheme(cmd.Context(), true)
				case "light":
					c.app.Preferences.SetTheme(cmd.Context(), false)
				}
			}
			mode := "light"
			if c.app.Preferences.IsDarkMode() {
				mode = "dark"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "theme: %s\n", mode)
			return nil
		},
	}
}
