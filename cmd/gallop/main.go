// Package main provides the CLI entrypoint for gallop.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/gallop/internal/config"
	"github.com/verte-zerg/gallop/internal/generator"
	"github.com/verte-zerg/gallop/internal/histui"
	"github.com/verte-zerg/gallop/internal/model"
	"github.com/verte-zerg/gallop/internal/results"
	"github.com/verte-zerg/gallop/internal/session"
	"github.com/verte-zerg/gallop/internal/stats"
	"github.com/verte-zerg/gallop/internal/store"
	"github.com/verte-zerg/gallop/internal/tui"
	"github.com/verte-zerg/gallop/internal/wordlist"
)

const (
	defaultStatsWindow = 20
	defaultWeakTop     = 8
)

var (
	testDuration       int
	testNumbers        bool
	testNumbersRatio   float64
	testSymbols        bool
	testSymbolsRatio   float64
	testUppercase      bool
	testUppercaseRatio float64
	testDictionary     string
	testSaveResults    bool

	statsWindow  int
	statsWeakTop int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gallop",
		Short:         "Terminal typing-speed test",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTestCmd,
	}

	defaults := model.DefaultConfig()
	rootCmd.Flags().IntVar(&testDuration, "duration", int(defaults.Duration.Seconds()), "test duration in seconds")
	rootCmd.Flags().BoolVar(&testNumbers, "numbers", defaults.Numbers, "insert numbers into the expected text")
	rootCmd.Flags().Float64Var(&testNumbersRatio, "numbers-ratio", defaults.NumbersRatio, "per-character number substitution ratio (0-1)")
	rootCmd.Flags().BoolVar(&testSymbols, "symbols", defaults.Symbols, "insert symbols into the expected text")
	rootCmd.Flags().Float64Var(&testSymbolsRatio, "symbols-ratio", defaults.SymbolsRatio, "per-character symbol substitution ratio (0-1)")
	rootCmd.Flags().BoolVar(&testUppercase, "uppercase", defaults.Uppercase, "insert uppercase letters into the expected text")
	rootCmd.Flags().Float64Var(&testUppercaseRatio, "uppercase-ratio", defaults.UppercaseRatio, "per-character uppercase ratio (0-1)")
	rootCmd.Flags().StringVar(&testDictionary, "dictionary", "", "path to a dictionary file (builtin words when empty)")
	rootCmd.Flags().BoolVar(&testSaveResults, "save-results", defaults.SaveResults, "persist test results")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runTestCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	words, err := loadDictionary(cfg)
	if err != nil {
		return err
	}

	resultsStore := results.NewStore(config.DefaultResultsPath())

	var charStore *store.Store
	if cfg.SaveResults {
		charStore, err = store.Open(config.DefaultDBPath())
		if err != nil {
			logErrf("failed to open stats db: %v\n", err)
			charStore = nil
		} else {
			defer func() {
				if cerr := charStore.Close(); cerr != nil {
					logErrf("failed to close stats db: %v\n", cerr)
				}
			}()
		}
	}

	sess := session.New(cfg, words, generator.New())
	ui := tui.NewModel(sess, resultsStore, charStore)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveConfig merges defaults, config file, and flags; flags win when set.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "duration", &testDuration, fileCfg.Test.Duration)
	applyBoolConfig(cmd, "numbers", &testNumbers, fileCfg.Test.Numbers)
	applyFloatConfig(cmd, "numbers-ratio", &testNumbersRatio, fileCfg.Test.NumbersRatio)
	applyBoolConfig(cmd, "symbols", &testSymbols, fileCfg.Test.Symbols)
	applyFloatConfig(cmd, "symbols-ratio", &testSymbolsRatio, fileCfg.Test.SymbolsRatio)
	applyBoolConfig(cmd, "uppercase", &testUppercase, fileCfg.Test.Uppercase)
	applyFloatConfig(cmd, "uppercase-ratio", &testUppercaseRatio, fileCfg.Test.UppercaseRatio)
	applyStringConfig(cmd, "dictionary", &testDictionary, fileCfg.Test.DictionaryPath)
	applyBoolConfig(cmd, "save-results", &testSaveResults, fileCfg.Test.SaveResults)

	if testDuration <= 0 {
		return model.Config{}, fmt.Errorf("--duration must be > 0")
	}

	cfg := model.Config{
		Duration:       time.Duration(testDuration) * time.Second,
		Numbers:        testNumbers,
		NumbersRatio:   testNumbersRatio,
		Symbols:        testSymbols,
		SymbolsRatio:   testSymbolsRatio,
		Uppercase:      testUppercase,
		UppercaseRatio: testUppercaseRatio,
		DictionaryPath: testDictionary,
		SaveResults:    testSaveResults,
	}
	// Ratios outside [0, 1] fall back to defaults inside Normalized; only the
	// duration and dictionary path are hard startup errors.
	return cfg.Normalized(), nil
}

func loadDictionary(cfg model.Config) ([]string, error) {
	if cfg.DictionaryPath == "" {
		return wordlist.Builtin(), nil
	}
	words, err := wordlist.LoadWords(cfg.DictionaryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary %s: %w", cfg.DictionaryPath, err)
	}
	return words, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show previous test results in a bar chart",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
}

func runHistoryCmd(_ *cobra.Command, _ []string) error {
	resultsStore := results.NewStore(config.DefaultResultsPath())
	ui := histui.NewModel(resultsStore)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-character statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().IntVar(&statsWindow, "window", defaultStatsWindow, "number of recent tests to aggregate (0 = all)")
	cmd.Flags().IntVar(&statsWeakTop, "weak-top", defaultWeakTop, "number of weakest characters to mark")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	resultsStore := results.NewStore(config.DefaultResultsPath())
	records, err := resultsStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, records); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}

	charStore, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open stats db: %w", err)
	}
	defer func() {
		if cerr := charStore.Close(); cerr != nil {
			logErrf("failed to close stats db: %v\n", cerr)
		}
	}()

	aggs, err := charStore.CharAggregates(context.Background(), statsWindow)
	if err != nil {
		return fmt.Errorf("failed to load character stats: %w", err)
	}
	weakSet := stats.SelectWeakChars(aggs, statsWeakTop)
	if err := stats.RenderCharTable(out, aggs, weakSet); err != nil {
		return fmt.Errorf("failed to render character table: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	defaults := model.DefaultConfig()
	return fmt.Sprintf(`# gallop configuration
# Uncomment a value to enable it. CLI flags override config values.

[test]
# duration = %d           # Test duration in seconds
# numbers = false         # Insert numbers into the expected text
# numbers-ratio = %.2f    # Per-character number substitution ratio (0-1)
# symbols = false         # Insert symbols into the expected text
# symbols-ratio = %.2f    # Per-character symbol substitution ratio (0-1)
# uppercase = false       # Insert uppercase letters into the expected text
# uppercase-ratio = %.2f  # Per-character uppercase ratio (0-1)
# dictionary = ""         # Path to a dictionary file (builtin words when empty)
# save-results = true     # Persist test results
`,
		int(defaults.Duration.Seconds()),
		defaults.NumbersRatio,
		defaults.SymbolsRatio,
		defaults.UppercaseRatio,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
