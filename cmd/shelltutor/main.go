// Package main provides the CLI entrypoint for shelltutor.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/shelltutor/internal/config"
	"github.com/verte-zerg/shelltutor/internal/course"
	"github.com/verte-zerg/shelltutor/internal/export"
	"github.com/verte-zerg/shelltutor/internal/generator"
	"github.com/verte-zerg/shelltutor/internal/lesson"
	"github.com/verte-zerg/shelltutor/internal/model"
	"github.com/verte-zerg/shelltutor/internal/progress"
	"github.com/verte-zerg/shelltutor/internal/progressui"
	"github.com/verte-zerg/shelltutor/internal/quizui"
	"github.com/verte-zerg/shelltutor/internal/script"
	"github.com/verte-zerg/shelltutor/internal/shell"
	"github.com/verte-zerg/shelltutor/internal/stats"
	"github.com/verte-zerg/shelltutor/internal/tui"
)

const (
	defaultDialect    = "cmd"
	defaultWeakTop    = 5
	defaultWeakFactor = 2.0
)

var (
	globalUser      string
	globalStorage   string
	globalStorePath string
	globalLogLevel  string

	consoleDialect    string
	consoleDrive      string
	consolePromptUser string
	consoleModule     string
	consoleFocusWeak  bool
	consoleWeakTop    int
	consoleWeakFactor float64

	runScript string

	lessonSections []string
	lessonStyle    string

	progressPlain bool

	exportOutput string

	resetYes bool
)

var errNotEligible = errors.New("not eligible for the certificate yet")

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "shelltutor",
		Short:         "Learn the Windows command prompt and PowerShell in a simulated console",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runConsoleCmd,
	}

	rootCmd.PersistentFlags().StringVar(&globalUser, "user", "", "progress user id (default: generated)")
	rootCmd.PersistentFlags().StringVar(&globalStorage, "storage", "json", "progress backend: json or sqlite")
	rootCmd.PersistentFlags().StringVar(&globalStorePath, "store", "", "progress store path")
	rootCmd.PersistentFlags().StringVar(&globalLogLevel, "log-level", "info", "diagnostic log level")
	addConsoleFlags(rootCmd)

	rootCmd.AddCommand(newConsoleCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newLessonCmd())
	rootCmd.AddCommand(newQuizCmd())
	rootCmd.AddCommand(newProgressCmd())
	rootCmd.AddCommand(newModulesCmd())
	rootCmd.AddCommand(newEligibleCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addConsoleFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&consoleDialect, "dialect", defaultDialect, "console dialect: cmd or powershell")
	cmd.Flags().StringVar(&consoleDrive, "drive", shell.DefaultProfile().Drive, "prompt drive path")
	cmd.Flags().StringVar(&consolePromptUser, "prompt-user", shell.DefaultProfile().User, "prompt user name")
	cmd.Flags().StringVar(&consoleModule, "module", "", "practice the exercises of one module")
	cmd.Flags().BoolVar(&consoleFocusWeak, "focus-weak", false, "bias exercises toward weak commands")
	cmd.Flags().IntVar(&consoleWeakTop, "weak-top", defaultWeakTop, "number of weak commands to focus on")
	cmd.Flags().Float64Var(&consoleWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak commands")
}

func newConsoleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Practice commands in a simulated console",
		Args:  cobra.NoArgs,
		RunE:  runConsoleCmd,
	}
	addConsoleFlags(cmd)
	return cmd
}

func resolveConsoleConfig(cmd *cobra.Command, fileCfg config.FileConfig) (model.ConsoleConfig, error) {
	applyStringConfig(cmd, "dialect", &consoleDialect, fileCfg.Console.Dialect)
	applyStringConfig(cmd, "drive", &consoleDrive, fileCfg.Console.Drive)
	applyStringConfig(cmd, "prompt-user", &consolePromptUser, fileCfg.Console.User)
	applyBoolConfig(cmd, "focus-weak", &consoleFocusWeak, fileCfg.Console.FocusWeak)
	applyIntConfig(cmd, "weak-top", &consoleWeakTop, fileCfg.Console.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &consoleWeakFactor, fileCfg.Console.WeakFactor)

	d, err := model.ParseDialect(consoleDialect)
	if err != nil {
		return model.ConsoleConfig{}, err
	}
	cfg := model.ConsoleConfig{
		Dialect:    d,
		Drive:      consoleDrive,
		User:       consolePromptUser,
		FocusWeak:  consoleFocusWeak,
		WeakTop:    consoleWeakTop,
		WeakFactor: consoleWeakFactor,
	}
	if err := validateConsoleConfig(cfg); err != nil {
		return model.ConsoleConfig{}, err
	}
	return cfg, nil
}

func validateConsoleConfig(cfg model.ConsoleConfig) error {
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	return nil
}

func runConsoleCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg, err := resolveConsoleConfig(cmd, a.fileCfg)
	if err != nil {
		return err
	}

	var moduleID course.ModuleID
	exercises := append(a.catalog.Exercises(model.Legacy), a.catalog.Exercises(model.Structured)...)
	if consoleModule != "" {
		m, ok := a.catalog.Lookup(consoleModule)
		if !ok {
			return fmt.Errorf("%w: %q", progress.ErrUnknownModule, consoleModule)
		}
		moduleID = m.ID
		exercises = m.Exercises
		if d, ok := m.ConsoleDialect(); ok && !cmd.Flags().Changed("dialect") {
			cfg.Dialect = d
		}
	}
	if cfg.FocusWeak && len(stats.SelectWeakCommands(a.tracker.PracticedCommands(), cfg.Dialect, cfg.WeakTop)) == 0 {
		logErrln("no practice history for weak-command focus yet; using shuffled exercises")
	}

	console := tui.NewModel(tui.Options{
		Config:    cfg,
		Tracker:   a.tracker,
		User:      a.session,
		Module:    moduleID,
		Exercises: exercises,
		Generator: generator.New(),
		Logger:    a.logger,
	})
	program := tea.NewProgram(console, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run console: %w", err)
	}
	if err := console.Finish(context.Background()); err != nil {
		logErrf("failed to record time spent: %v\n", err)
	}
	return nil
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a script through the simulated console and print the transcript",
		Args:  cobra.NoArgs,
		RunE:  runRunCmd,
	}
	cmd.Flags().StringVar(&runScript, "script", "", "script file, one command per line ('-' for stdin)")
	cmd.Flags().StringVar(&consoleDialect, "dialect", defaultDialect, "console dialect: cmd or powershell")
	cmd.Flags().StringVar(&consoleDrive, "drive", shell.DefaultProfile().Drive, "prompt drive path")
	cmd.Flags().StringVar(&consolePromptUser, "prompt-user", shell.DefaultProfile().User, "prompt user name")
	return cmd
}

func runRunCmd(cmd *cobra.Command, _ []string) error {
	if strings.TrimSpace(runScript) == "" {
		return fmt.Errorf("--script is required")
	}
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "dialect", &consoleDialect, fileCfg.Console.Dialect)
	applyStringConfig(cmd, "drive", &consoleDrive, fileCfg.Console.Drive)
	applyStringConfig(cmd, "prompt-user", &consolePromptUser, fileCfg.Console.User)
	d, err := model.ParseDialect(consoleDialect)
	if err != nil {
		return err
	}

	var lines []string
	if runScript == "-" {
		lines, err = script.Read(cmd.InOrStdin(), script.FilterFor(d.String()))
	} else {
		lines, err = script.Load(runScript, script.FilterFor(d.String()))
	}
	if err != nil {
		return fmt.Errorf("failed to load script: %w", err)
	}

	session := shell.NewSession(d, shell.Profile{Drive: consoleDrive, User: consolePromptUser}, shell.NewExecutor())
	for _, line := range lines {
		session.Submit(line)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), session.Render()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newLessonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lesson <module>",
		Short: "Read the lesson of a module",
		Args:  cobra.ExactArgs(1),
		RunE:  runLessonCmd,
	}
	cmd.Flags().StringSliceVar(&lessonSections, "section", nil, "show only these section keys")
	cmd.Flags().StringVar(&lessonStyle, "style", "auto", "markdown style: auto, dark, light, notty")
	return cmd
}

func runLessonCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	m, ok := a.catalog.Lookup(args[0])
	if !ok {
		return fmt.Errorf("%w: %q", progress.ErrUnknownModule, args[0])
	}
	renderer, err := lesson.NewRenderer(stats.TerminalWidth(os.Stdout)-4, lessonStyle)
	if err != nil {
		return err
	}
	return renderer.Show(context.Background(), cmd.OutOrStdout(), m, a.tracker, a.session, lessonSections...)
}

func newQuizCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quiz <module>",
		Short: "Take the quiz of a module",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuizCmd,
	}
}

func runQuizCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	m, ok := a.catalog.Lookup(args[0])
	if !ok {
		return fmt.Errorf("%w: %q", progress.ErrUnknownModule, args[0])
	}
	if len(m.Quiz) == 0 {
		return fmt.Errorf("module %s has no quiz", m.ID)
	}
	quiz := quizui.NewModel(m, a.tracker, a.session, time.Now)
	program := tea.NewProgram(quiz, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run quiz: %w", err)
	}
	if msg := quiz.Err(); msg != "" {
		logErrln(msg)
	}
	grade, done := quiz.Grade()
	if !done {
		logErrln("Quiz not finished; nothing recorded.")
		return nil
	}
	verdict := "not passed yet"
	if grade.Passed() {
		verdict = "passed"
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "%s: %d/%d (%.0f%%), %s\n", m.Title, grade.Correct, grade.Total, grade.Percentage(), verdict); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show course progress",
		Args:  cobra.NoArgs,
		RunE:  runProgressCmd,
	}
	cmd.Flags().BoolVar(&progressPlain, "plain", false, "print a plain text report instead of the dashboard")
	return cmd
}

func runProgressCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if progressPlain {
		report := stats.BuildReport(a.tracker, a.session, a.catalog)
		if err := stats.Render(cmd.OutOrStdout(), report); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	}
	dashboard := progressui.NewModel(a.tracker, a.session, a.catalog)
	program := tea.NewProgram(dashboard, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run progress TUI: %w", err)
	}
	return nil
}

func newModulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List course modules and their status",
		Args:  cobra.NoArgs,
		RunE:  runModulesCmd,
	}
}

func runModulesCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	report := stats.BuildReport(a.tracker, a.session, a.catalog)
	if err := stats.RenderModuleTable(cmd.OutOrStdout(), report.Modules); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newEligibleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eligible",
		Short: "Check certificate eligibility (exit status 1 when not eligible)",
		Args:  cobra.NoArgs,
		RunE:  runEligibleCmd,
	}
}

func runEligibleCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	overall := a.tracker.OverallProgress(a.session)
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Overall progress: %.1f%% (certificate at %.0f%%)\n", overall, course.PassPercentage); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !a.tracker.Eligible(a.session) {
		return errNotEligible
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), "Eligible for the certificate."); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export progress to an Excel workbook",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVarP(&exportOutput, "output", "o", config.DefaultExportPath(), "workbook path")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if dir := filepath.Dir(exportOutput); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := export.Save(exportOutput, a.tracker, a.session, a.catalog); err != nil {
		return err
	}
	logErrf("Wrote %s\n", exportOutput)
	return nil
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete your progress and the practice log",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVar(&resetYes, "yes", false, "confirm the reset")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	if !resetYes {
		return fmt.Errorf("reset deletes all progress; rerun with --yes to confirm")
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.tracker.ResetAll(context.Background(), a.session); err != nil {
		return fmt.Errorf("failed to reset progress: %w", err)
	}
	logErrf("Progress of %s reset.\n", a.session.UserID)
	return nil
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
		if err := os.WriteFile(path, []byte(config.Template()), 0o644); err != nil {
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

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
