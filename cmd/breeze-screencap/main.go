package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/breeze-rmm/screencap/internal/capture"
	"github.com/breeze-rmm/screencap/internal/config"
	"github.com/breeze-rmm/screencap/internal/logging"
	"github.com/breeze-rmm/screencap/internal/platform"
	"github.com/breeze-rmm/screencap/internal/tools"
)

var log = logging.L("main")

var (
	version = "0.1.0"

	cfgFile     string
	outputFlag  string
	formatFlag  string
	qualityFlag int
	rawFlag     bool
	logLevel    string
)

// Resolved in PersistentPreRunE.
var (
	cfg       *config.Config
	svc       *capture.Service
	logCloser io.Closer
	exitCode  int
	stdout    io.Writer = os.Stdout
)

var rootCmd = &cobra.Command{
	Use:   "breeze-screencap",
	Short: "Breeze screen and window capture",
	Long: `Breeze Screencap - enumerate monitors and windows and capture screen pixels
on Windows, macOS and Linux (X11).

Coordinates are virtual-desktop pixels and may be negative; pass "--" before
negative positional arguments, e.g. "breeze-screencap window-at -- -100 20".`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		emit(tools.NewSuccessResult(tools.CmdVersion, tools.VersionInfo{
			Version: version,
			OS:      runtime.GOOS,
			Arch:    runtime.GOARCH,
		}, 0))
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is "+filepath.Join(config.Dir(), "screencap.yaml")+")")
	pf.StringVarP(&outputFlag, "output", "o", "", "metadata output: json, yaml or table")
	pf.StringVar(&formatFlag, "format", "", "image format: png or jpeg")
	pf.IntVar(&qualityFlag, "quality", 0, "JPEG quality (1-100)")
	pf.BoolVar(&rawFlag, "raw", false, "write encoded image bytes to stdout instead of the result envelope")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(monitorsCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(boundsCmd)
	rootCmd.AddCommand(windowsCmd)
	rootCmd.AddCommand(windowAtCmd)
	rootCmd.AddCommand(captureCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if exitCode == 0 {
			exitCode = tools.ExitFailure
		}
	}
	os.Exit(exitCode)
}

// setup loads config, applies flag overrides and starts logging.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, loaded)

	result := loaded.ValidateTiered()
	if result.HasFatals() {
		for _, fatal := range result.Fatals {
			fmt.Fprintf(os.Stderr, "config: %v\n", fatal)
		}
		return fmt.Errorf("invalid configuration")
	}

	out, closer, err := logging.OpenOutput(loaded.LogFile, loaded.LogMaxSizeMB, loaded.LogMaxBackups)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logging.Init(loaded.LogFormat, loaded.LogLevel, out)
	logCloser = closer

	cfg = loaded
	svc = capture.NewService(platform.New(), capture.Config{
		ParallelCapture: cfg.ParallelCapture,
		MaxWorkers:      cfg.MaxCaptureWorkers,
	})
	log.Debug("screencap starting",
		"version", version,
		"command", cmd.Name(),
		"output", cfg.Output,
		"imageFormat", cfg.ImageFormat,
		"parallel", cfg.ParallelCapture,
	)
	return nil
}

// applyFlags overrides config values with flags the user actually set.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		c.Output = outputFlag
	}
	if flags.Changed("format") {
		c.ImageFormat = formatFlag
	}
	if flags.Changed("quality") {
		c.JPEGQuality = qualityFlag
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
}

// emit renders res and records its exit code.
func emit(res tools.CommandResult) {
	output := tools.OutputJSON
	if cfg != nil {
		output = cfg.Output
	}
	if err := tools.Render(stdout, output, res); err != nil {
		fmt.Fprintf(os.Stderr, "failed to render result: %v\n", err)
		exitCode = tools.ExitFailure
		return
	}
	if res.Failed() {
		log.Debug("command failed", logging.KeyOp, res.Command, "kind", res.ErrorKind, logging.KeyError, res.Error)
	}
	exitCode = res.ExitCode
}

// emitImage encodes img into a screenshot result, or writes the raw
// encoded bytes under --raw.
func emitImage(command, source string, img *capture.Image, err error, durationMs int64) {
	if err != nil {
		if rawFlag {
			fmt.Fprintln(os.Stderr, err)
			exitCode = tools.ExitCode(err)
			return
		}
		emit(tools.NewErrorResult(command, err, durationMs))
		return
	}

	resp, data, err := tools.NewScreenshot(img, source, cfg.ImageFormat, cfg.JPEGQuality)
	if err != nil {
		if rawFlag {
			fmt.Fprintln(os.Stderr, err)
			exitCode = tools.ExitFailure
			return
		}
		emit(tools.NewErrorResult(command, err, durationMs))
		return
	}

	if rawFlag {
		if _, err := stdout.Write(data); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write image: %v\n", err)
			exitCode = tools.ExitFailure
		}
		return
	}
	if strings.EqualFold(cfg.Output, tools.OutputTable) {
		resp.ImageBase64 = ""
	}
	emit(tools.NewSuccessResult(command, resp, durationMs))
}
