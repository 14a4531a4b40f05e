package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zhubert/chatclone/internal/demo"
	"github.com/zhubert/chatclone/internal/demo/scenarios"
	"github.com/zhubert/chatclone/internal/session"
)

var (
	demoWidth      int
	demoHeight     int
	demoCaptureAll bool
	demoTranscript bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run scripted demos of ChatClone",
	Long: `Drive the real app headlessly through a scripted scenario.

Available subcommands:
  list      - List available demo scenarios
  run       - Run a scenario and print the captured frames`,
}

var demoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available demo scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Available demo scenarios:")
		fmt.Fprintln(out)
		for _, s := range scenarios.All() {
			fmt.Fprintf(out, "  %-15s %s\n", s.Name, s.Description)
		}
	},
}

var demoRunCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Run a scenario and print the captured frames",
	Args:  cobra.ExactArgs(1),
	RunE:  runDemoRun,
}

func init() {
	demoRunCmd.Flags().IntVarP(&demoWidth, "width", "w", 120, "Terminal width")
	demoRunCmd.Flags().IntVarP(&demoHeight, "height", "H", 40, "Terminal height")
	demoRunCmd.Flags().BoolVar(&demoCaptureAll, "capture-all", false, "Capture frame after every step (for debugging)")
	demoRunCmd.Flags().BoolVar(&demoTranscript, "transcript", false, "Print the conversation transcript instead of frames")

	demoCmd.AddCommand(demoListCmd)
	demoCmd.AddCommand(demoRunCmd)
	rootCmd.AddCommand(demoCmd)
}

func getScenario(name string) (*demo.Scenario, error) {
	scenario, err := scenarios.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w\nRun 'chatclone demo list' to see available scenarios", err)
	}

	// Override dimensions if specified
	if demoWidth > 0 {
		scenario.Width = demoWidth
	}
	if demoHeight > 0 {
		scenario.Height = demoHeight
	}

	return scenario, nil
}

func runDemoRun(cmd *cobra.Command, args []string) error {
	scenario, err := getScenario(args[0])
	if err != nil {
		return err
	}

	execCfg := demo.DefaultExecutorConfig()
	execCfg.CaptureEveryStep = demoCaptureAll

	executor := demo.NewExecutor(execCfg)
	frames, err := executor.Run(scenario)
	if err != nil {
		return fmt.Errorf("error running scenario: %w", err)
	}

	out := cmd.OutOrStdout()
	if demoTranscript {
		printTranscript(out, executor.Events())
		return nil
	}

	fmt.Fprintf(out, "Captured %d frames\n", len(frames))
	for i, f := range frames {
		fmt.Fprintf(out, "\n=== Frame %d (delay: %v) ===\n", i, f.Delay)
		if f.Annotation != "" {
			fmt.Fprintf(out, "Annotation: %s\n", f.Annotation)
		}
		fmt.Fprintln(out, f.Content)
	}

	return nil
}

// printTranscript writes one line per message, plus chat lifecycle events
func printTranscript(w io.Writer, events []session.Event) {
	// Last user message per chat, to spot regenerated replies
	asked := make(map[string]string)
	for _, e := range events {
		switch e.Kind {
		case session.MessageAppended:
			role := string(e.Message.Role)
			if e.Message.Role == session.RoleUser {
				asked[e.ChatID] = e.Message.Content
			} else if q, ok := asked[e.ChatID]; ok && e.Message.Content == session.RegeneratedReplyTo(q) {
				role += " (regenerated)"
			}
			fmt.Fprintf(w, "[%s] %s: %s\n", e.Title, role, e.Message.Content)
		case session.ChatCreated, session.ChatDeleted, session.ReplyDropped:
			fmt.Fprintf(w, "-- %s %s\n", e.Kind, e.ChatID)
		}
	}
}
