package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/pageviews-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set pageviews configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "data_file: %s\n", cfg.DataFile)
		fmt.Fprintf(out, "output_dir: %s\n", cfg.OutputDir)
		fmt.Fprintf(out, "lower_quantile: %.3f\n", cfg.LowerQuantile)
		fmt.Fprintf(out, "upper_quantile: %.3f\n", cfg.UpperQuantile)
		fmt.Fprintf(out, "date_column: %s\n", cfg.DateColumn)
		fmt.Fprintf(out, "value_column: %s\n", cfg.ValueColumn)
		if cfg.DateLayout != "" {
			fmt.Fprintf(out, "date_layout: %s\n", cfg.DateLayout)
		}
		if cfg.SheetName != "" {
			fmt.Fprintf(out, "sheet_name: %s\n", cfg.SheetName)
		}
		fmt.Fprintf(out, "sheet_index: %d\n", cfg.SheetIndex)
		fmt.Fprintf(out, "line_size: %dx%d\n", cfg.LineWidth, cfg.LineHeight)
		fmt.Fprintf(out, "bar_size: %dx%d\n", cfg.BarWidth, cfg.BarHeight)
		fmt.Fprintf(out, "box_size: %dx%d\n", cfg.BoxWidth, cfg.BoxHeight)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", cfg.LogFormat)
		if cfg.LogFile != "" {
			fmt.Fprintf(out, "log_file: %s\n", cfg.LogFile)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		if err := setKey(cfg, key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func setKey(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "data_file":
		c.DataFile = val
	case "output_dir":
		c.OutputDir = val
	case "lower_quantile", "upper_quantile":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f < 0 || f > 1 {
			return fmt.Errorf("invalid quantile for %s: %v (use 0..1)", key, val)
		}
		if key == "lower_quantile" {
			c.LowerQuantile = f
		} else {
			c.UpperQuantile = f
		}
	case "date_column":
		c.DateColumn = val
	case "value_column":
		c.ValueColumn = val
	case "date_layout":
		c.DateLayout = val
	case "sheet_name":
		c.SheetName = val
	case "sheet_index":
		i, err := strconv.Atoi(val)
		if err != nil || i < 1 {
			return fmt.Errorf("invalid int for sheet_index: %v", val)
		}
		c.SheetIndex = i
	case "line_width", "line_height", "bar_width", "bar_height", "box_width", "box_height":
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid pixel size for %s: %v", key, val)
		}
		*sizeField(c, key) = i
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "warning", "error":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s (use debug|info|warn|error)", val)
		}
	case "log_format":
		switch strings.ToLower(val) {
		case "text", "json":
			c.LogFormat = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_format: %s (use text|json)", val)
		}
	case "log_file":
		c.LogFile = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func sizeField(c *cfgpkg.Global, key string) *int {
	switch key {
	case "line_width":
		return &c.LineWidth
	case "line_height":
		return &c.LineHeight
	case "bar_width":
		return &c.BarWidth
	case "bar_height":
		return &c.BarHeight
	case "box_width":
		return &c.BoxWidth
	default:
		return &c.BoxHeight
	}
}
