package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/paradoxe/paradoxe/internal/observability"
	"github.com/paradoxe/paradoxe/internal/observability/logging"
	otelobs "github.com/paradoxe/paradoxe/internal/observability/otel"
	"github.com/paradoxe/paradoxe/internal/observability/receipt"
	"github.com/paradoxe/paradoxe/internal/version"
	"github.com/spf13/cobra"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
)

// Exit codes. Usage and missing-file values follow sysexits.h;
// ExitBlocked signals a guard block under --exit-on-block.
const (
	ExitBlocked = 2
	ExitUsage   = 64
	ExitNoInput = 66
)

// ExitError carries a specific process exit code out of a RunE.
type ExitError struct {
	Code int
	Msg  string
}

func (e *ExitError) Error() string { return e.Msg }

var rootCmd = &cobra.Command{
	Use:   "paradoxe",
	Short: "Containment layer for paradoxical input",
	Long: `paradoxe: safety layer for self-referential and adversarial input.
Scans, contains, and resolves paradox injections without interpreting them.`,
	Version:       version.BuildVersion(),
	SilenceErrors: true,
}

func Execute() {
	ctx := observability.WithOpID(context.Background())

	log, logErr := logging.NewLogger(logging.FromEnv())
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", logErr)
	} else {
		ctx = logging.WithLogger(ctx, log)
		defer log.Close()
	}

	if path := os.Getenv("PARADOXE_RECEIPT_PATH"); path != "" {
		w, err := receipt.NewWriter(path, os.Getenv("PARADOXE_RECEIPT_MODE"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: receipts disabled: %v\n", err)
		} else {
			ctx = receipt.WithWriter(ctx, w)
			defer w.Close()
		}
	}

	if cfg := otelobs.FromEnv(); cfg.Enabled {
		h, err := otelobs.Init(ctx, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: tracing disabled: %v\n", err)
		} else {
			ctx = otelobs.With(ctx, h)
			defer func() {
				_ = h.Shutdown(context.Background())
			}()
		}
	}

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Msg != "" {
				fmt.Fprintln(os.Stderr, exitErr.Msg)
			}
			exitWith(exitErr.Code)
			return
		}
		fmt.Fprintln(os.Stderr, err)
		exitWith(1)
	}
}

// exitWith is indirected so Execute stays testable.
var exitWith = os.Exit

func init() {
	rootCmd.AddCommand(GetEvalCmd())
	rootCmd.AddCommand(GetDiffCmd())
	rootCmd.AddCommand(GetPolicyCmd())
}
