package main

import (
	"fmt"
	"os"

	"eyerest/internal/platform"

	"github.com/spf13/cobra"
)

var autostartCmd = &cobra.Command{
	Use:   "autostart",
	Short: "Manage starting eyerest at login",
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled, err := platform.NewService().AutostartEnabled(appName)
		if err != nil {
			return err
		}
		if enabled {
			fmt.Fprintln(cmd.OutOrStdout(), "autostart: enabled")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "autostart: disabled")
		}
		return nil
	},
}

var autostartEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Start eyerest and its work/rest cycle at login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		execPath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to resolve executable: %w", err)
		}
		launch := platform.Launch{
			AppName:  appName,
			ExecPath: execPath,
			Args:     []string{"--start"},
		}
		if err := platform.NewService().EnableAutostart(launch); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "autostart enabled")
		return nil
	},
}

var autostartDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Stop starting eyerest at login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := platform.NewService().DisableAutostart(appName); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "autostart disabled")
		return nil
	},
}

func init() {
	autostartCmd.AddCommand(autostartEnableCmd, autostartDisableCmd)
	rootCmd.AddCommand(autostartCmd)
}
