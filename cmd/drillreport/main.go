// Package main provides the CLI entrypoint for drillreport.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/drillreport/internal/apperr"
	"github.com/verte-zerg/drillreport/internal/config"
	"github.com/verte-zerg/drillreport/internal/feedback"
	"github.com/verte-zerg/drillreport/internal/httpapi"
	"github.com/verte-zerg/drillreport/internal/logging"
	"github.com/verte-zerg/drillreport/internal/report"
	"github.com/verte-zerg/drillreport/internal/stats"
	"github.com/verte-zerg/drillreport/internal/statsui"
	"github.com/verte-zerg/drillreport/internal/store"
)

var (
	configPath  string
	dbDriver    string
	dbDSN       string
	llmProvider string
	llmModel    string
	logLevel    string

	reportTUI  bool
	reportJSON bool
	keysJSON   bool
	initDemo   bool
	serveHost  string
	servePort  int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "drillreport",
		Short:         "Typing drill performance reports",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file path (default: $XDG_CONFIG_HOME/drillreport/config.toml)")
	flags.StringVar(&dbDriver, "db-driver", "", "database driver (sqlite, pgx, mysql)")
	flags.StringVar(&dbDSN, "db-dsn", "", "database DSN or sqlite path")
	flags.StringVar(&llmProvider, "llm-provider", "", "feedback provider (ollama, gemini, disabled)")
	flags.StringVar(&llmModel, "llm-model", "", "feedback model name")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newKeysCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newInitDBCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// app holds the resolved settings and the services built from them.
type app struct {
	settings config.Settings
	logger   *slog.Logger
	closers  []io.Closer
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			logErrf("failed to close: %v\n", err)
		}
	}
}

func loadApp(cmd *cobra.Command) (*app, error) {
	if err := config.LoadDotenvIfPresent(); err != nil {
		return nil, err
	}
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	settings, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringFlag(cmd, "db-driver", &settings.Database.Driver, dbDriver)
	applyStringFlag(cmd, "db-dsn", &settings.Database.DSN, dbDSN)
	applyStringFlag(cmd, "llm-provider", &settings.LLM.Provider, llmProvider)
	applyStringFlag(cmd, "llm-model", &settings.LLM.Model, llmModel)
	applyStringFlag(cmd, "log-level", &settings.Logging.Level, logLevel)
	applyStringFlag(cmd, "host", &settings.Server.Host, serveHost)
	applyIntFlag(cmd, "port", &settings.Server.Port, servePort)

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	logger, closer, err := logging.NewLogger(settings.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return &app{settings: settings, logger: logger, closers: []io.Closer{closer}}, nil
}

func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	st, err := store.Open(ctx, store.Options{
		Driver:       a.settings.Database.Driver,
		DSN:          a.settings.Database.DSN,
		MaxOpenConns: a.settings.Database.MaxOpenConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	a.closers = append(a.closers, st)
	return st, nil
}

func (a *app) reporter(ctx context.Context) (*report.Reporter, *store.Store, error) {
	st, err := a.openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	gen, err := feedback.NewGenerator(ctx, a.settings.LLM)
	if err != nil {
		a.logger.Warn("feedback_provider_unavailable", "provider", a.settings.LLM.Provider, "err", err)
		gen = feedback.Disabled{}
	}
	svc := feedback.NewService(gen, a.settings.LLM.Timeout())
	a.logger.Debug("feedback_provider_ready", "provider", svc.Provider())
	return report.NewReporter(st, svc, a.logger), st, nil
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <student-id>",
		Short: "Print the typing report of a student",
		Args:  cobra.ExactArgs(1),
		RunE:  runReportCmd,
	}
	cmd.Flags().BoolVar(&reportTUI, "tui", false, "open the interactive report viewer")
	cmd.Flags().BoolVar(&reportJSON, "json", false, "print the report as JSON")
	return cmd
}

func runReportCmd(cmd *cobra.Command, args []string) error {
	studentID, err := parseStudentID(args[0])
	if err != nil {
		return err
	}
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	rep, _, err := a.reporter(ctx)
	if err != nil {
		return err
	}
	studentReport, err := rep.StudentReport(ctx, studentID)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	switch {
	case reportJSON:
		return writeJSON(cmd.OutOrStdout(), studentReport)
	case reportTUI:
		breakdown, err := rep.KeyBreakdown(ctx, studentID)
		hasKeys := err == nil
		if err != nil && !errors.Is(err, apperr.ErrNoData) {
			return fmt.Errorf("failed to build key breakdown: %w", err)
		}
		viewer := statsui.NewModel(studentReport, breakdown, hasKeys, stdoutIsTerminal())
		program := tea.NewProgram(viewer, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run report TUI: %w", err)
		}
		return nil
	default:
		return report.WriteText(cmd.OutOrStdout(), studentReport)
	}
}

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys <student-id>",
		Short: "Compare key counts of the latest drill attempts against earlier ones",
		Args:  cobra.ExactArgs(1),
		RunE:  runKeysCmd,
	}
	cmd.Flags().BoolVar(&keysJSON, "json", false, "print the breakdown as JSON")
	return cmd
}

func runKeysCmd(cmd *cobra.Command, args []string) error {
	studentID, err := parseStudentID(args[0])
	if err != nil {
		return err
	}
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	rep, _, err := a.reporter(ctx)
	if err != nil {
		return err
	}
	breakdown, err := rep.KeyBreakdown(ctx, studentID)
	if errors.Is(err, apperr.ErrNoData) {
		logErrf("No drills found for student %d.\n", studentID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to build key breakdown: %w", err)
	}
	if keysJSON {
		return writeJSON(cmd.OutOrStdout(), breakdown)
	}
	title := fmt.Sprintf("Key breakdown for %s", breakdown.StudentName)
	return stats.RenderSections(cmd.OutOrStdout(), title, breakdown.Latest, breakdown.Past, stdoutWidth(), stdoutIsTerminal())
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reports over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveHost, "host", "", "listen host (default from config)")
	cmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from config)")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, st, err := a.reporter(ctx)
	if err != nil {
		return err
	}
	router := httpapi.NewRouter(httpapi.RouterOptions{
		Reports:        rep,
		Pinger:         st,
		Metrics:        httpapi.NewMetrics(),
		Logger:         a.logger,
		CORSOrigins:    a.settings.Server.CORSOrigins,
		RequestTimeout: time.Duration(a.settings.Server.RequestTimeout) * time.Second,
		LogLevel:       a.settings.Logging.Level,
	})
	srv := httpapi.NewHTTPServer(a.settings.Server.Addr(), router)
	if err := httpapi.Serve(ctx, srv, a.logger); err != nil {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

func newInitDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "initdb",
		Short: "Create the sqlite schema",
		Args:  cobra.NoArgs,
		RunE:  runInitDBCmd,
	}
	cmd.Flags().BoolVar(&initDemo, "demo", false, "insert a demo student with sample drills")
	return cmd
}

func runInitDBCmd(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	st, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate db: %w", err)
	}
	if !initDemo {
		logErrf("Schema ready at %s\n", a.settings.Database.DSN)
		return nil
	}
	studentID, err := st.SeedDemo(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to seed demo data: %w", err)
	}
	logErrf("Seeded demo student %d. Try: drillreport report %d\n", studentID, studentID)
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
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
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

func parseStudentID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", apperr.ErrInvalidStudentID, raw)
	}
	return id, nil
}

func applyStringFlag(cmd *cobra.Command, name string, target *string, value string) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func applyIntFlag(cmd *cobra.Command, name string, target *int, value int) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == ""
}

func stdoutWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

func defaultConfigTemplate() string {
	d := config.Defaults()
	return fmt.Sprintf(`# drillreport configuration
# Uncomment a value to enable it. Environment variables override the file,
# CLI flags override both.

[database]
# driver = %q             # sqlite, pgx or mysql
# dsn = %q
# max-open-conns = %d

[llm]
# provider = %q           # ollama, gemini or disabled
# model = %q             # Empty uses the provider default
# base-url = %q
# api-key = ""            # Gemini API key (or GOOGLE_API_KEY)
# timeout = %d            # Seconds per feedback call

[server]
# host = %q
# port = %d
# cors-origins = ["*"]
# request-timeout = %d    # Seconds per report request

[logging]
# level = %q
# file = ""               # Also write logs to a rotated file
# max-size-mb = %d
# max-backups = %d
# max-age-days = %d
# compress = true
# color = true
`,
		d.Database.Driver,
		d.Database.DSN,
		d.Database.MaxOpenConns,
		d.LLM.Provider,
		d.LLM.Model,
		d.LLM.BaseURL,
		d.LLM.TimeoutSeconds,
		d.Server.Host,
		d.Server.Port,
		d.Server.RequestTimeout,
		d.Logging.Level,
		d.Logging.MaxSizeMB,
		d.Logging.MaxBackups,
		d.Logging.MaxAgeDays,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
