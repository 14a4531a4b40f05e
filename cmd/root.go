package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/chatclone/internal/app"
	"github.com/zhubert/chatclone/internal/clipboard"
	"github.com/zhubert/chatclone/internal/config"
	"github.com/zhubert/chatclone/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	globalPending         bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "chatclone",
	Short: "A ChatGPT-style chat client for the terminal",
	Long: `ChatClone is a terminal chat client modelled on the ChatGPT web app.
Conversations live in memory for the length of a run. Replies are canned
and arrive after a short random delay, so it works fully offline.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.Flags().BoolVar(&globalPending, "global-pending", false, "Block every chat while any reply is pending")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("chatclone %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("chatclone %s\n", version)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Ensure logger is closed on exit
	defer logger.Close()
	logger.Info("chatclone %s starting", version)

	// Copy degrades to a flash message when there is no clipboard
	if err := clipboard.Init(); err != nil {
		logger.WithComponent("cmd").Warn("clipboard unavailable", "error", err)
	}

	m := app.New(cfg, version, app.WithGlobalPending(globalPending))
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		logger.Error("app exited: %v", err)
		return fmt.Errorf("error running app (details in %s): %w", logger.Path(), err)
	}
	return nil
}
