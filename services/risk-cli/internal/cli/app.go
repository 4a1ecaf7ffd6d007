package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	urfave "github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	appConfigKey = "app-config"

	formatJSON = "json"
	formatYAML = "yaml"

	defaultBaseURL = "http://localhost:8000"
)

var (
	version = "v0.0.1-default"
	commit  = ""

	debugFlag = &urfave.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}

	urlFlag = &urfave.StringFlag{
		Name:    "url",
		Usage:   "Base URL of the risk API",
		Value:   defaultBaseURL,
		EnvVars: []string{"RISK_API_URL"},
	}

	formatFlag = &urfave.StringFlag{
		Name:  "format",
		Usage: "Output format [json, yaml]",
		Value: formatJSON,
	}

	timeoutFlag = &urfave.DurationFlag{
		Name:  "timeout",
		Usage: "Request timeout",
		Value: 10 * time.Second,
	}
)

// Execute creates and runs the CLI application.
func Execute() {
	app := newApp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type appConfig struct {
	BaseURL string
	Format  string
	Timeout time.Duration
	Logger  *zap.Logger
}

func getConfig(c *urfave.Context) *appConfig {
	return c.App.Metadata[appConfigKey].(*appConfig)
}

func newApp(out io.Writer) *urfave.App {
	return &urfave.App{
		Name:            "risk-cli",
		Version:         fmt.Sprintf("%s (%s)", version, commit),
		Usage:           "Client for the credit risk API",
		HideHelpCommand: true,
		Writer:          out,
		Metadata:        map[string]interface{}{},
		Flags: []urfave.Flag{
			debugFlag,
			urlFlag,
			formatFlag,
			timeoutFlag,
		},
		Commands: []*urfave.Command{
			predictCmd,
			healthCmd,
		},
		Before: func(c *urfave.Context) error {
			format := c.String(formatFlag.Name)
			switch format {
			case formatJSON:
			case formatYAML, "yml":
				format = formatYAML
			default:
				return fmt.Errorf("unsupported format %q", format)
			}
			c.App.Metadata[appConfigKey] = &appConfig{
				BaseURL: c.String(urlFlag.Name),
				Format:  format,
				Timeout: c.Duration(timeoutFlag.Name),
				Logger:  newLogger(c.Bool(debugFlag.Name)),
			}
			return nil
		},
		After: func(c *urfave.Context) error {
			if cfg, ok := c.App.Metadata[appConfigKey].(*appConfig); ok {
				_ = cfg.Logger.Sync()
			}
			return nil
		},
	}
}

func newLogger(debug bool) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func encode(w io.Writer, format string, v any) error {
	if format == formatYAML {
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		defer e.Close()
		return e.Encode(v)
	}
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
