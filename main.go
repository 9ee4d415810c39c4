package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sadopc/studyr/internal/config"
	"github.com/sadopc/studyr/internal/dataset"
	"github.com/sadopc/studyr/internal/export"
	"github.com/sadopc/studyr/internal/logging"
	"github.com/sadopc/studyr/internal/review"
	"github.com/sadopc/studyr/internal/store"
	"github.com/sadopc/studyr/internal/syllabus"
	"github.com/sadopc/studyr/internal/tui"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// session bundles everything a command needs. The caller must defer close().
type session struct {
	cfg  *config.Config
	log  *slog.Logger
	kv   store.KV
	repo *store.Repo

	logFile *os.File
}

func (s *session) close() {
	if err := s.kv.Close(); err != nil {
		s.log.Error("closing storage", "error", err)
	}
	s.logFile.Close()
}

// openSession loads the config, opens the log file and the storage backend.
// operation is logged so runs can be told apart in studyr.log.
func openSession(operation string) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	logger, logFile, err := logging.Open(cfg.DataDir, logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}
	logger = logger.With("op", operation)

	kv, err := store.Open(cfg.Storage, logger)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("opening %s storage: %w", cfg.Storage.Type, err)
	}
	logger.Debug("storage opened", "type", cfg.Storage.Type, "path", cfg.Storage.Path)

	repo := store.NewRepo(kv, logger, store.RealClock{}, store.UUIDGenerator{}, cfg.WeeklyGoalMinutes)
	return &session{cfg: cfg, log: logger, kv: kv, repo: repo, logFile: logFile}, nil
}

var rootCmd = &cobra.Command{
	Use:          "studyr",
	Short:        "Study tracker: syllabus, flashcards and a pomodoro timer",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession("TUI")
		if err != nil {
			return err
		}
		defer s.close()

		p := tea.NewProgram(tui.NewApp(s.repo), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running tui: %w", err)
		}
		return nil
	},
}

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List flashcards due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession("Due")
		if err != nil {
			return err
		}
		defer s.close()

		now := s.repo.Now()
		var rows [][]string
		for _, c := range s.repo.Flashcards() {
			if !review.IsDue(c, now) {
				continue
			}
			rows = append(rows, []string{c.Subject, c.Topic, c.Difficulty.String(), c.Front})
		}

		if len(rows) == 0 {
			fmt.Println("Nothing due. Nice work.")
			return nil
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("SUBJECT", "TOPIC", "DIFFICULTY", "QUESTION").
			Rows(rows...)
		fmt.Println(t.Render())
		fmt.Printf("%d card(s) due\n", len(rows))
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress [node-id]",
	Short: "Show syllabus progress, optionally for one subject or chapter",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		depth, _ := cmd.Flags().GetInt("depth")

		s, err := openSession("Progress")
		if err != nil {
			return err
		}
		defer s.close()

		forest := s.repo.Syllabus()
		overall := syllabus.ForestProgress(forest)
		if len(args) == 1 {
			n, ok := syllabus.Find(forest, args[0])
			if !ok {
				return fmt.Errorf("no syllabus node with id %q", args[0])
			}
			forest = []syllabus.Node{n}
			overall = syllabus.Progress(n)
		}
		syllabus.Walk(forest, func(n syllabus.Node, d int) bool {
			if depth > 0 && d >= depth {
				return true
			}
			indent := strings.Repeat("  ", d)
			if n.IsLeaf() {
				mark := "[ ]"
				if n.Completed {
					mark = "[x]"
				}
				fmt.Printf("%s%s %s\n", indent, mark, n.Title)
			} else {
				fmt.Printf("%s%s %3d%%\n", indent, n.Title, syllabus.Progress(n))
			}
			return true
		})

		done, total := syllabus.Leaves(forest)
		fmt.Printf("\nOverall: %d%% (%d/%d topics)\n", overall, done, total)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession("Stats")
		if err != nil {
			return err
		}
		defer s.close()

		st := s.repo.RefreshStats()
		cards := s.repo.Flashcards()

		fmt.Printf("Today:            %d min\n", st.TodayMinutes)
		fmt.Printf("Streak:           %d day(s)\n", st.Streak)
		fmt.Printf("Weekly goal:      %d%% of %d min\n", st.WeeklyGoal, s.repo.WeeklyGoal())
		fmt.Printf("Topics completed: %d\n", st.CompletedTopics)
		fmt.Printf("Focus sessions:   %d (avg %d min)\n", st.TotalSessions, st.AverageSessionLength)
		fmt.Printf("Cards due:        %d of %d\n", review.DueCount(cards, s.repo.Now()), len(cards))
		fmt.Printf("Card accuracy:    %d%%\n", review.Accuracy(cards))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:       "export csv|json [path]",
	Short:     "Export flashcards (csv) or a full backup (json)",
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"csv", "json"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(args[0])
		if format != "csv" && format != "json" {
			return fmt.Errorf("unknown export format %q (want csv or json)", args[0])
		}

		s, err := openSession("Export")
		if err != nil {
			return err
		}
		defer s.close()

		path := tui.ExportFileName(format, s.repo.Now())
		if len(args) == 2 {
			path = args[1]
		}

		if format == "csv" {
			err = export.CardsToCSV(s.repo.Flashcards(), path)
		} else {
			err = export.SnapshotToJSON(s.repo.Snapshot(), path)
		}
		if err != nil {
			s.log.Error("export failed", "format", format, "path", path, "error", err)
			return err
		}

		abs, _ := filepath.Abs(path)
		s.log.Info("exported", "format", format, "path", abs)
		fmt.Printf("Exported to %s\n", abs)
		return nil
	},
}

var templateCmd = &cobra.Command{
	Use:       "template <name>",
	Short:     "Replace the syllabus with an exam template (" + strings.Join(dataset.TemplateNames(), ", ") + ")",
	Args:      cobra.ExactArgs(1),
	ValidArgs: dataset.TemplateNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession("Template")
		if err != nil {
			return err
		}
		defer s.close()

		tpl, err := s.repo.ApplyTemplate(args[0])
		if err != nil {
			return err
		}
		_, total := syllabus.Leaves(s.repo.Syllabus())
		fmt.Printf("Loaded %s syllabus: %d subject(s), %d topic(s)\n", tpl.Name, len(tpl.Subjects), total)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all study data",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(cmd, "Delete all syllabus progress, flashcards and sessions?") {
			fmt.Println("Aborted.")
			return nil
		}

		s, err := openSession("Reset")
		if err != nil {
			return err
		}
		defer s.close()

		if err := s.repo.Reset(); err != nil {
			return fmt.Errorf("resetting data: %w", err)
		}
		fmt.Println("All study data deleted.")
		return nil
	},
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, _ := cmd.Flags().GetString("storage")

		cfg := config.Default()
		cfg.SetStorage(backend)

		if err := config.Init(configPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", configPath)
		fmt.Printf("Data Dir: %s\n", cfg.DataDir)
		fmt.Printf("Storage:  %s %s\n", cfg.Storage.Type, cfg.Storage.Path)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file")

	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(progressCmd)
	progressCmd.Flags().IntP("depth", "d", 0, "Maximum tree depth to print (0 for all)")
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().String("storage", "sqlite", "Storage backend: sqlite, badger or memory")
	rootCmd.AddCommand(configCmd)
}
