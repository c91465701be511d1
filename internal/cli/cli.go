package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/specialistvlad/shadergraph/internal/app"
	"github.com/specialistvlad/shadergraph/internal/config"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	ExitRuntime = 1
	ExitUsage   = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: ExitUsage, Message: fmt.Sprintf(format, args...)}
}

// rootOptions are the flags every command shares.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string

	outW io.Writer
	errW io.Writer
}

// loadConfig merges defaults, the config file, the environment and flags,
// then validates.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, usageError("%v", err)
	}
	if err := config.ApplyEnv(cfg, os.Environ()); err != nil {
		return nil, usageError("%v", err)
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = strings.ToLower(o.logLevel)
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = strings.ToLower(o.logFormat)
	}
	if flags.Changed("healthcheck-port") {
		cfg.HealthcheckPort, _ = flags.GetInt("healthcheck-port")
	}
	if flags.Changed("preview-url") {
		cfg.Preview.URL, _ = flags.GetString("preview-url")
	}
	if flags.Changed("annotate") {
		cfg.Annotate, _ = flags.GetBool("annotate")
	}
	if err := config.Validate(cfg); err != nil {
		return nil, usageError("%v", err)
	}
	slog.Debug("Configuration resolved.", "config", cfg)
	return cfg, nil
}

func (o *rootOptions) newApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return app.NewApp(o.outW, o.errW, cfg), nil
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int, names string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError("%s expects %s, got %d argument(s)", cmd.Name(), names, len(args))
		}
		return nil
	}
}

// NewRootCommand builds the command tree writing to outW and errW.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	o := &rootOptions{outW: outW, errW: errW}

	root := &cobra.Command{
		Use:   "shadergraph",
		Short: "Node-based material editor back end that generates HLSL pixel shaders.",
		Long: `shadergraph builds HLSL pixel shaders from node graphs.

A graph is saved as an HCL document. Nodes come from a fixed catalog; their
outputs are wired into the inputs of other nodes and finally into the stage
output, whose channels fill the G-buffer.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError("%v", err)
	})

	pf := root.PersistentFlags()
	pf.StringVarP(&o.configPath, "config", "c", "", "Path to a YAML config file.")
	pf.StringVar(&o.logLevel, "log-level", "info", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&o.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")

	root.AddCommand(
		newNewCommand(o),
		newGenerateCommand(o),
		newExportCommand(o),
		newWatchCommand(o),
		newCatalogCommand(o),
		newDescribeCommand(o),
	)
	return root
}

func newNewCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "new DOCUMENT",
		Short: "Write an empty document holding only the stage output.",
		Args:  exactArgs(1, "a document path"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			return a.NewDocument(cmd.Context(), args[0])
		},
	}
}

func newGenerateCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate DOCUMENT",
		Short: "Print the generated shader source.",
		Args:  exactArgs(1, "a document path"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			return a.Generate(cmd.Context(), args[0])
		},
	}
	cmd.Flags().Bool("annotate", false, "Write the node name above each node's code.")
	return cmd
}

func newExportCommand(o *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export DOCUMENT|DIR",
		Short: "Write the generated shader to a file.",
		Long: `Write the generated shader to a file.

Given a directory, every .hcl document below it is exported next to itself
with a .hlsl extension and -o is not allowed.`,
		Args: exactArgs(1, "a document or directory"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}
			if info.IsDir() {
				if out != "" {
					return usageError("-o cannot be used when exporting a directory")
				}
				return a.ExportDir(cmd.Context(), args[0])
			}
			return a.Export(cmd.Context(), args[0], out)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Destination file. Defaults to export_path from the config.")
	cmd.Flags().Bool("annotate", false, "Write the node name above each node's code.")
	return cmd
}

func newWatchCommand(o *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "watch DOCUMENT",
		Short: "Export the shader again every time the document is saved.",
		Args:  exactArgs(1, "a document path"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			return a.Watch(cmd.Context(), args[0], out)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&out, "output", "o", "", "Destination file. Defaults to export_path from the config.")
	f.Int("healthcheck-port", 0, "Port for the /health and /metrics server. 0 is disabled.")
	f.String("preview-url", "", "socket.io URL of a preview host to publish each result to.")
	f.Bool("annotate", false, "Write the node name above each node's code.")
	return cmd
}

func newCatalogCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List every node that can be placed in a document.",
		Args:  exactArgs(0, "no arguments"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			return a.Catalog()
		},
	}
}

func newDescribeCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe DOCUMENT",
		Short: "List the nodes, slots and links of a document.",
		Args:  exactArgs(1, "a document path"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			return a.Describe(cmd.Context(), args[0])
		},
	}
}

// Execute runs the command line. Every returned error is an *ExitError.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	slog.Debug("CLI started.", "args", args)
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	if strings.HasPrefix(err.Error(), "unknown command") {
		return usageError("%v", err)
	}
	return &ExitError{Code: ExitRuntime, Message: err.Error()}
}
