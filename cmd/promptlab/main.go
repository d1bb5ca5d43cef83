package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lamim/promptlab/internal/api"
	"github.com/lamim/promptlab/internal/config"
	"github.com/lamim/promptlab/internal/logging"
	"github.com/lamim/promptlab/internal/metrics"
	"github.com/lamim/promptlab/internal/orchestrator"
	"github.com/lamim/promptlab/internal/render"
	"github.com/lamim/promptlab/internal/server"
	"github.com/lamim/promptlab/internal/tui"
	"github.com/lamim/promptlab/internal/variants"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	configPath string
	envFile    string
	verbose    bool
	logFile    string

	basePrompt string
	useCase    string
	examples   string
	testInput  string
	rawOutput  bool
	serveAddr  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "promptlab",
		Short: "promptlab - Prompt Engineering Playground",
		Long: `promptlab rewrites a base prompt into seven prompting-technique variants,
tests each one against a hosted chat-completion model and shows the results
side by side with a static comparison table and an optimized suggestion.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file (defaults are used when empty)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to environment file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write JSON logs to this file")

	variantsCmd := &cobra.Command{
		Use:   "variants",
		Short: "Print the seven prompt variants without calling the model",
		RunE:  runVariants,
	}
	addPromptFlags(variantsCmd)

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "Generate the variants and test each one against the model",
		Long: `Generate the seven variants, send each one followed by the test input to
the model and print the variants, the comparison table and the optimized
prompt. Endpoint failures are shown inline per variant.`,
		RunE: runCompare,
	}
	addPromptFlags(compareCmd)
	compareCmd.Flags().StringVar(&testInput, "test-input", "", "Input to test all variants against")
	compareCmd.Flags().BoolVar(&rawOutput, "raw", false, "Print raw markdown instead of rendering it")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive playground in the terminal",
		RunE:  runTUI,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the playground as a JSON API",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")

	rootCmd.AddCommand(variantsCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPromptFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&basePrompt, "prompt", "p", "", "Base prompt describing the task")
	cmd.Flags().StringVar(&useCase, "use-case", variants.GeneralUseCase,
		fmt.Sprintf("Use case, one of %q", variants.UseCases))
	cmd.Flags().StringVar(&examples, "examples", "", "Examples for the Few-Shot variant, one per line")
}

// session holds what every subcommand needs after startup
type session struct {
	cfg     *config.Config
	secrets *config.Secrets
	logger  *slog.Logger
	closer  io.Closer
}

func setup(console io.Writer) (*session, error) {
	if envFile != "" {
		if err := loadEnv(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load env file: %v\n", err)
		}
	}

	cfg, secrets, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	logger, closer, err := logging.Setup(logging.Options{
		Level:   logLevel,
		Console: console,
		File:    logFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	if secrets.HuggingFaceToken == "" {
		logger.Warn("No API token set, requests will likely be rejected", "env", config.TokenEnvVar)
	}

	return &session{cfg: cfg, secrets: secrets, logger: logger, closer: closer}, nil
}

// loadEnv loads path into the environment. A missing file is not an error.
func loadEnv(path string) error {
	err := config.LoadEnvFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (rt *session) orchestrator() *orchestrator.Orchestrator {
	client := api.NewClient(rt.cfg.Model, rt.secrets.HuggingFaceToken, rt.logger)
	rt.logger.Debug("Using model", "model", client.Model(), "base_url", rt.cfg.Model.BaseURL)
	return orchestrator.New(client, metrics.NewCollector(rt.logger), rt.logger)
}

func request() (orchestrator.Request, error) {
	if !variants.IsKnownUseCase(useCase) {
		return orchestrator.Request{}, fmt.Errorf("unknown use case %q, expected one of %q", useCase, variants.UseCases)
	}
	return orchestrator.Request{
		BasePrompt: basePrompt,
		UseCase:    useCase,
		Examples:   examples,
		TestInput:  testInput,
	}, nil
}

func runVariants(cmd *cobra.Command, args []string) error {
	req, err := request()
	if err != nil {
		return err
	}

	rt, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer rt.closer.Close()

	md := orchestrator.EmptyPromptMessage
	if !isBlank(req.BasePrompt) {
		md = orchestrator.FormatVariantSet(variants.Generate(req.BasePrompt, req.UseCase, req.Examples))
	}

	r, err := render.New(rt.cfg.UI.Style, rt.cfg.UI.WordWrap)
	if err != nil {
		return err
	}
	out, err := r.Markdown(md)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	req, err := request()
	if err != nil {
		return err
	}

	rt, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer rt.closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var obs orchestrator.Observer
	if !isBlank(req.BasePrompt) {
		obs = newBarObserver(os.Stderr, len(variants.Names()))
	}

	report := rt.orchestrator().RunWithObserver(ctx, req, obs)

	if rawOutput {
		fmt.Fprintln(cmd.OutOrStdout(), render.Raw(report))
		return nil
	}

	r, err := render.New(rt.cfg.UI.Style, rt.cfg.UI.WordWrap)
	if err != nil {
		return err
	}
	out, err := r.Report(report)
	if err != nil {
		rt.logger.Warn("Falling back to raw markdown", "error", err)
		out = render.Raw(report)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)

	rt.logger.Debug("Run finished", "run_id", report.RunID, "duration", report.Duration)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	// the alternate screen owns the terminal, so console logs are dropped
	// unless a log file was given
	rt, err := setup(io.Discard)
	if err != nil {
		return err
	}
	defer rt.closer.Close()

	r, err := render.New(rt.cfg.UI.Style, rt.cfg.UI.WordWrap)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	p := tea.NewProgram(tui.New(ctx, rt.orchestrator(), r), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer rt.closer.Close()

	if serveAddr != "" {
		rt.cfg.Server.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt.logger.Info("promptlab starting",
		"version", Version,
		"model", rt.cfg.Model.ModelName,
		"addr", rt.cfg.Server.Addr)

	srv := server.New(rt.cfg.Server, rt.orchestrator(), rt.logger)
	if err := srv.ListenAndServe(ctx); err != nil {
		return err
	}

	rt.logger.Info("All done! 🎉")
	return nil
}
