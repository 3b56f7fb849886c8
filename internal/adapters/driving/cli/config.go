package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change settings",
	Long: `Show and change the settings stored in config.toml.

Keys use dotted names, for example output.format or scrape.user_agent.
Run "holdings config show" to list every key with its current value.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every setting",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting. Booleans accept true or false, timeouts are whole
seconds and routes.rules takes a comma separated list of keyword=target rules.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configRouteCmd = &cobra.Command{
	Use:   "route <keyword> [target]",
	Short: "Add or replace a manifest routing rule",
	Long: `Route manifests whose name contains keyword to the raw directory
subdirectory target. The target defaults to the keyword.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigRoute,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configRouteCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	values, err := currentValues()
	if err != nil {
		return err
	}
	for _, v := range values {
		cmd.Printf("%s = %s\n", v.Key, formatValue(v.Value))
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	values, err := currentValues()
	if err != nil {
		return err
	}
	for _, v := range values {
		if v.Key == args[0] {
			cmd.Println(formatValue(v.Value))
			return nil
		}
	}
	return unknownKey(args[0])
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return notConfigured("settings service")
	}
	if configStore == nil {
		return notConfigured("config store")
	}

	key, raw := args[0], strings.TrimSpace(args[1])
	var err error
	switch key {
	case "output.format":
		err = settingsService.SetOutputFormat(domain.OutputFormat(strings.ToLower(raw)))
	case "output.overwrite":
		err = settingsService.SetOverwritePolicy(domain.OverwritePolicy(strings.ToLower(raw)))
	default:
		err = setValue(key, raw)
	}
	if err != nil {
		return err
	}

	if err := settingsService.Validate(); err != nil {
		return fmt.Errorf("settings saved but invalid: %w", err)
	}
	cmd.Printf("%s updated.\n", key)
	return nil
}

// setValue parses raw with the type the key is stored as and stores it.
func setValue(key, raw string) error {
	defaults := settingsService.GetDefaults()
	for _, v := range services.SettingValues(&defaults) {
		if v.Key != key {
			continue
		}
		value, err := parseValue(v.Value, raw)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if err := configStore.Set(key, value); err != nil {
			return fmt.Errorf("saving %s: %w", key, err)
		}
		return nil
	}
	return unknownKey(key)
}

func parseValue(kind any, raw string) (any, error) {
	switch kind.(type) {
	case bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not a boolean: %w", raw, domain.ErrInvalidInput)
		}
		return b, nil
	case int:
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%q is not a positive number: %w", raw, domain.ErrInvalidInput)
		}
		return n, nil
	case []string:
		var items []string
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items, nil
	default:
		return raw, nil
	}
}

func runConfigRoute(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return notConfigured("settings service")
	}

	keyword := args[0]
	target := keyword
	if len(args) > 1 {
		target = args[1]
	}
	if err := settingsService.SetRoute(keyword, target); err != nil {
		return err
	}
	cmd.Printf("Manifests matching %q now go to %s.\n", keyword, target)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return notConfigured("config store")
	}
	cmd.Println(configStore.Path())
	return nil
}

func currentValues() ([]services.KeyValue, error) {
	if settingsService == nil {
		return nil, notConfigured("settings service")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return services.SettingValues(settings), nil
}

func formatValue(v any) string {
	if items, ok := v.([]string); ok {
		return strings.Join(items, ", ")
	}
	return fmt.Sprint(v)
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
}
