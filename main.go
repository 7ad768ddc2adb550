package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/openclaw/qrdesigner/api"
	"github.com/openclaw/qrdesigner/config"
	"github.com/openclaw/qrdesigner/designer"
)

var version = "v0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "qrdesigner",
		Short: "Styled QR code designer",
	}

	// --- serve command -------------------------------------------------------
	var configPath string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the QR designer web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to config file")
	root.AddCommand(serveCmd)

	// --- generate command ----------------------------------------------------
	var gen generateOptions
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a single QR code file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.OutOrStdout(), gen)
		},
	}
	generateCmd.Flags().StringVarP(&gen.text, "text", "t", "", "URL or text to encode")
	generateCmd.Flags().StringVar(&gen.color, "color", "#000000", "QR code colour (#RRGGBB)")
	generateCmd.Flags().StringVarP(&gen.logo, "logo", "l", "", "Optional PNG or JPEG centre logo")
	generateCmd.Flags().StringVarP(&gen.format, "format", "f", "png", "Export format (png, jpg, pdf, bmp)")
	generateCmd.Flags().StringVarP(&gen.out, "out", "o", ".", "Output directory")
	generateCmd.Flags().IntVar(&gen.jpegQuality, "jpeg-quality", designer.DefaultJPEGQuality, "JPEG quality (1-100)")
	generateCmd.Flags().BoolVarP(&gen.verbose, "verbose", "v", false, "Log generation details")
	root.AddCommand(generateCmd)

	// --- status command ------------------------------------------------------
	var statusAddr string
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Check a running designer server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.OutOrStdout(), statusAddr)
		},
	}
	statusCmd.Flags().StringVar(&statusAddr, "addr", "http://localhost:8556", "Designer HTTP address")
	root.AddCommand(statusCmd)

	// --- version command -----------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("qrdesigner %s\n", version)
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string, w io.Writer) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// runServe wires the generator into the HTTP server and blocks until SIGINT
// or SIGTERM.
func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := newLogger(cfg.LogLevel, os.Stdout)
	slog.SetDefault(log)

	log.Info("starting qrdesigner", "version", version, "port", cfg.Port)

	// Validate has already checked both.
	defaultColor, _ := designer.ParseColor(cfg.DefaultColor)
	defaultFormat, _ := designer.ParseFormat(cfg.DefaultFormat)

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: api.NewRouter(&api.Server{
			Generator:     designer.NewGenerator(cfg.JPEGQuality, log),
			Log:           log,
			Version:       version,
			MaxLogoBytes:  cfg.MaxLogoBytes,
			DefaultColor:  defaultColor,
			DefaultFormat: defaultFormat,
		}),
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", srv.Addr, "url", fmt.Sprintf("http://localhost:%d/", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("HTTP server: %w", err)
	}

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	log.Info("goodbye")
	return nil
}

type generateOptions struct {
	text        string
	color       string
	logo        string
	format      string
	out         string
	jpegQuality int
	verbose     bool
}

// runGenerate performs one generation cycle and writes qrcode.<ext> into the
// output directory. Empty text prints the guidance message and writes nothing.
func runGenerate(stdout io.Writer, opts generateOptions) error {
	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	log := newLogger(level, os.Stderr)

	if opts.text == "" {
		fmt.Fprintln(stdout, designer.GuidanceMessage)
		return nil
	}

	c, err := designer.ParseColor(opts.color)
	if err != nil {
		return err
	}
	f, err := designer.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	req := designer.Request{Text: opts.text, Color: c, Format: f}

	if opts.logo != "" {
		data, err := os.ReadFile(opts.logo)
		if err != nil {
			return fmt.Errorf("read logo: %w", err)
		}
		if req.Logo, err = designer.DecodeLogo(data); err != nil {
			return err
		}
	}

	art, err := designer.NewGenerator(opts.jpegQuality, log).Generate(req)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	outPath := filepath.Join(opts.out, art.Filename)
	if err := os.WriteFile(outPath, art.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	fmt.Fprintf(stdout, "QR code saved to %s (%dx%d, %s)\n", outPath, art.Width, art.Height, art.MIMEType)
	return nil
}

// runStatus queries the designer HTTP status endpoint.
func runStatus(stdout io.Writer, addr string) error {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(addr + "/status")
	if err != nil {
		return fmt.Errorf("failed to reach designer at %s: %w", addr, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("read status: %w", err)
	}
	fmt.Fprintln(stdout, string(body))
	return nil
}
