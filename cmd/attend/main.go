package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aayushbajaj/attend/internal/config"
	"github.com/aayushbajaj/attend/internal/storage"
	"github.com/aayushbajaj/attend/internal/tui"
	"github.com/aayushbajaj/attend/pkg/stats"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	logFile *os.File

	// nowFunc is replaced in tests.
	nowFunc = time.Now

	// Flags for add command
	addAt     string
	addStatus string

	// Flags for list command
	listQuery string
	listLimit int

	// Flags for streak command
	streakJSON bool

	// Flags for week command
	weekAt    string
	weekCount int
)

var rootCmd = &cobra.Command{
	Use:   "attend",
	Short: "Attendance streaks for your sessions",
	Long:  `Track completed sessions and see your current and longest attendance streaks.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
			logFile = nil
		}
	},
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Record a session",
	Long: `Record a session. Times are RFC3339 or local "YYYY-MM-DD [HH:MM]".

Examples:
  attend add "Morning yoga"                              # scheduled now
  attend add "Morning yoga" --at "2024-01-04 07:30" -s completed`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return addSession(cmd, strings.Join(args, " "))
	},
}

var markCmd = &cobra.Command{
	Use:   "mark <id> <status>",
	Short: "Change a session's status (scheduled, completed, cancelled, missed)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := stats.ParseStatus(args[1])
		if err != nil {
			return err
		}
		return markSession(cmd, args[0], status)
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a session as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return markSession(cmd, args[0], stats.StatusCompleted)
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return deleteSession(cmd, args[0])
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listSessions(cmd)
	},
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show current and longest streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStreak(cmd)
	},
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show the start of the week and completed sessions per week",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showWeek(cmd)
	},
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Print the current streak as a bare number (for menu bar scripts)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showToday(cmd)
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Import sessions from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return importSessions(cmd, args[0])
	},
}

func init() {
	addCmd.Flags().StringVar(&addAt, "at", "", "When the session takes place (default now)")
	addCmd.Flags().StringVarP(&addStatus, "status", "s", string(stats.StatusScheduled), "Session status")

	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Fuzzy filter on titles")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "Maximum sessions to show (0 for all)")

	streakCmd.Flags().BoolVar(&streakJSON, "json", false, "Output as JSON")

	weekCmd.Flags().StringVar(&weekAt, "at", "", "Any time inside the week (default now)")
	weekCmd.Flags().IntVarP(&weekCount, "weeks", "w", 1, "Number of weeks to show")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config and sends the standard logger to the log file.
func setup() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logDir, err := cfg.LogDir()
	if err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile, err = os.OpenFile(filepath.Join(logDir, "attend.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(logFile)
	return nil
}

func openStore() (*storage.Store, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	store, err := storage.New(cfg.ResolvedDataDir(), loc)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return store, nil
}

func now(store *storage.Store) time.Time {
	return nowFunc().In(store.Location())
}

func runTUI() error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	tui.SetTheme(cfg.Dashboard.Theme)
	clock := func() time.Time { return now(store) }

	p := tea.NewProgram(tui.New(store, cfg.Dashboard.Weeks, clock), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func addSession(cmd *cobra.Command, title string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	at := now(store)
	if addAt != "" {
		if at, err = storage.ParseTime(addAt, store.Location()); err != nil {
			return err
		}
	}
	status, err := stats.ParseStatus(addStatus)
	if err != nil {
		return err
	}

	sess, err := store.AddSession(title, at, status)
	if err != nil {
		return err
	}
	log.Printf("Added session %s (%s, %s)", sess.ID, sess.Status, sess.ScheduledTime.Format(time.RFC3339))

	fmt.Fprintln(cmd.OutOrStdout(), sess.ID)
	return nil
}

func markSession(cmd *cobra.Command, id string, status stats.Status) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SetStatus(id, status); err != nil {
		return err
	}
	log.Printf("Marked session %s %s", id, status)

	fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as %s\n", id, status)
	return nil
}

func deleteSession(cmd *cobra.Command, id string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteSession(id); err != nil {
		return err
	}
	log.Printf("Deleted session %s", id)

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
	return nil
}

func listSessions(cmd *cobra.Command) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.SearchSessions(listQuery)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if listLimit > 0 && len(sessions) > listLimit {
		sessions = sessions[:listLimit]
	}

	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions")
		return nil
	}
	for _, s := range sessions {
		fmt.Fprintf(out, "%s  %s  %-9s  %s\n",
			s.ID, s.ScheduledTime.Format("2006-01-02 15:04"), s.Status, s.Title)
	}
	return nil
}

func showStreak(cmd *cobra.Command) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	streak, err := store.GetStreak(now(store))
	if err != nil {
		return fmt.Errorf("failed to compute streak: %w", err)
	}

	out := cmd.OutOrStdout()
	if streakJSON {
		return json.NewEncoder(out).Encode(streak)
	}

	fmt.Fprintln(out, "🔥 Attendance Streak")
	fmt.Fprintln(out, "────────────────────")
	fmt.Fprintf(out, "Current: %s\n", formatDays(streak.Current))
	fmt.Fprintf(out, "Longest: %s\n", formatDays(streak.Longest))
	return nil
}

func showWeek(cmd *cobra.Command) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	at := now(store)
	if weekAt != "" {
		if at, err = storage.ParseTime(weekAt, store.Location()); err != nil {
			return err
		}
	}

	weeks, err := store.GetWeeklyCounts(weekCount, at)
	if err != nil {
		return fmt.Errorf("failed to get weekly counts: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Week starts: %s\n", stats.WeekStart(at).Format("Mon 2006-01-02"))
	for _, w := range weeks {
		fmt.Fprintf(out, "%s  %d completed\n", w.Start.Format("2006-01-02"), w.Completed)
	}
	return nil
}

func showToday(cmd *cobra.Command) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	streak, err := store.GetStreak(now(store))
	if err != nil {
		return fmt.Errorf("failed to compute streak: %w", err)
	}

	// Output format suitable for menu bar scripts
	fmt.Fprintf(cmd.OutOrStdout(), "%d\n", streak.Current)
	return nil
}

func importSessions(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.ImportYAML(f)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	log.Printf("Imported %d sessions from %s", n, path)

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d sessions\n", n)
	return nil
}

func formatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
