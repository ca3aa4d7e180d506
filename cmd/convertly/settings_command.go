package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"convertly/internal/api"
)

func newSettingsCommand(ctx *commandContext) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "View and change conversion settings",
	}

	settingsCmd.AddCommand(newSettingsShowCommand(ctx))
	settingsCmd.AddCommand(newSettingsSetCommand(ctx))

	return settingsCmd
}

func newSettingsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureFallback()
			if err != nil {
				return err
			}
			result, err := svc.Settings(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch settings: %w", err)
			}
			localOnlyNote(cmd, result.LocalOnly)
			if jsonOutput {
				return writeJSON(cmd, result.Value)
			}
			keys := make([]string, 0, len(result.Value))
			for key := range result.Value {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			rows := make([][]string, 0, len(keys))
			for _, key := range keys {
				rows = append(rows, []string{key, result.Value[key]})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Setting", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON")
	return cmd
}

func newSettingsSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key=value>...",
		Short: "Update settings (requires login)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureFallback()
			if err != nil {
				return err
			}
			current, err := svc.Settings(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch settings: %w", err)
			}

			updated := make(api.Settings, len(current.Value)+len(args))
			for key, value := range current.Value {
				updated[key] = value
			}
			for _, arg := range args {
				key, value, ok := strings.Cut(arg, "=")
				if !ok || strings.TrimSpace(key) == "" {
					return fmt.Errorf("invalid setting %q, expected key=value", arg)
				}
				updated[strings.TrimSpace(key)] = strings.TrimSpace(value)
			}

			result, err := svc.UpdateSettings(cmd.Context(), updated)
			if err != nil {
				return fmt.Errorf("update settings: %w", err)
			}
			localOnlyNote(cmd, result.LocalOnly)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d setting(s)\n", len(args))
			return nil
		},
	}
}
