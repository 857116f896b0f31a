package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/edgeui/internal/model"
)

var localeCmd = &cobra.Command{
	Use:   "locale",
	Short: "Show or change the display language",
}

var localeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active locale",
	Args:  cobra.NoArgs,
	RunE: guarded(func(cmd *cobra.Command, args []string) error {
		l := coord.Locale()
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", l, localeName(l))
		return nil
	}),
}

var localeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported locales",
	Args:  cobra.NoArgs,
	RunE: guarded(func(cmd *cobra.Command, args []string) error {
		active := coord.Locale()
		for _, l := range model.SupportedLocales {
			marker := " "
			if l == active {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\n", marker, l, localeName(l))
		}
		return nil
	}),
}

var localeSetOpts struct {
	noSave bool
}

var localeSetCmd = &cobra.Command{
	Use:   "set <locale>",
	Short: "Switch the display language",
	Long: `Switch translations and number/date formatting to the given locale and
store it as the default in the config file.

An unsupported locale leaves the current language unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: guarded(runLocaleSet),
}

func init() {
	localeSetCmd.Flags().BoolVar(&localeSetOpts.noSave, "no-save", false,
		"Switch for this run only, do not update the config file")

	localeCmd.AddCommand(localeShowCmd, localeListCmd, localeSetCmd)
	rootCmd.AddCommand(localeCmd)
}

func runLocaleSet(cmd *cobra.Command, args []string) error {
	if err := coord.SetLocale(args[0]); err != nil {
		return err
	}
	l := coord.Locale()

	if !localeSetOpts.noSave {
		cfg.Locale.Default = string(l)
		if err := cfg.Save(globalOpts.configPath); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		logger.Debug("saved default locale", "locale", l)
	}

	return notify(model.TypeSuccess, "locale.switched", localeName(l))
}

// localeName returns the localized display name of l.
func localeName(l model.Locale) string {
	return catalog.T("locale.name." + string(l))
}
