package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/chatclone/internal/config"
	"github.com/zhubert/chatclone/internal/logger"
)

var skipConfirm bool

// Swapped out in tests
var (
	loadConfig = config.Load
	clearLogs  = logger.ClearLogs
	logGlob    = "/tmp/chatclone-*.log"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove log files and reset preferences",
	Long: `Removes the debug log files and deletes the saved preferences, so the
next run starts with default settings and shows the welcome screen again.

Chats are never written to disk, so there is nothing else to clean.
It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(os.Stdin)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	_, statErr := os.Stat(cfg.Path())
	hasConfig := statErr == nil
	logs := countLogs()

	if !hasConfig && logs == 0 {
		fmt.Println("Nothing to clean.")
		return nil
	}

	fmt.Println("This will clean:")
	if hasConfig {
		fmt.Printf("  - Preferences in %s\n", cfg.Path())
	}
	if logs > 0 {
		fmt.Printf("  - %d log file(s) in /tmp\n", logs)
	}

	// Confirm unless --yes flag is set
	if !skipConfirm {
		if !confirm(input, "Continue?") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	logsCleared, err := clearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	if err := cfg.Remove(); err != nil {
		return fmt.Errorf("error removing config: %w", err)
	}
	cfg.Reset()

	fmt.Println()
	fmt.Println("Cleaned:")
	if hasConfig {
		fmt.Println("  - Preferences reset")
	}
	if logsCleared > 0 {
		fmt.Printf("  - %d log file(s) removed\n", logsCleared)
	}

	return nil
}

// countLogs returns how many log files clean would remove
func countLogs() int {
	matches, err := filepath.Glob(logGlob)
	if err != nil {
		return 0
	}
	return len(matches)
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Printf("%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
