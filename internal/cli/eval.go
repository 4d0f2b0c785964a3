package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/paradoxe/paradoxe/internal/engine"
	"github.com/paradoxe/paradoxe/internal/models"
	"github.com/paradoxe/paradoxe/internal/observability"
	"github.com/paradoxe/paradoxe/internal/observability/logging"
	otelobs "github.com/paradoxe/paradoxe/internal/observability/otel"
	"github.com/paradoxe/paradoxe/internal/observability/receipt"
	"github.com/paradoxe/paradoxe/internal/statestore"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// evalCmd definition
var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Contain and resolve one input",
	Long: `Runs one input through the containment pipeline: guard scan,
resolver dispatch, sealed telemetry. The result is always labeled safe.

Example:
  paradoxe eval -i "This statement is false."
  paradoxe eval -f prompt.txt --strict --metrics-json`,
	SilenceUsage: true,
	RunE:         runEval,
}

var (
	injectFlag       string
	fileFlag         string
	stdinFlag        bool
	strictFlag       bool
	noOutputFlag     bool
	noMetricsFlag    bool
	metricsJSONFlag  bool
	showReportFlag   bool
	exitOnBlockFlag  bool
	depthCapFlag     int
	blockAnomalyFlag bool
	evalPolicyFlag   string
)

func init() {
	evalCmd.Flags().StringVarP(&injectFlag, "inject", "i", "", "Input text to evaluate")
	evalCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read input from file")
	evalCmd.Flags().BoolVar(&stdinFlag, "stdin", false, "Read input from stdin")
	evalCmd.Flags().BoolVar(&strictFlag, "strict", false, "Strict policy: refuse forecasts and peppered evidence")
	evalCmd.Flags().BoolVar(&noOutputFlag, "no-output", false, "Suppress the resolution text")
	evalCmd.Flags().BoolVar(&noMetricsFlag, "no-metrics", false, "Suppress the METRICS block")
	evalCmd.Flags().BoolVar(&metricsJSONFlag, "metrics-json", false, "Emit the full evaluation report as JSON")
	evalCmd.Flags().BoolVar(&showReportFlag, "show-report", false, "Show individual guard findings")
	evalCmd.Flags().BoolVar(&exitOnBlockFlag, "exit-on-block", false, "Exit with code 2 when the guard blocks the input")
	evalCmd.Flags().IntVar(&depthCapFlag, "depth-cap", 0, "Recursion depth cap (1..8, default 4)")
	evalCmd.Flags().BoolVar(&blockAnomalyFlag, "block-on-anomaly", false, "Block instead of sanitize on high-severity anomaly")
	evalCmd.Flags().StringVar(&evalPolicyFlag, "policy", "", "Compliance policy to evaluate afterwards: baseline, strict, or a YAML path")
}

// GetEvalCmd exports the eval command
func GetEvalCmd() *cobra.Command {
	return evalCmd
}

func runEval(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()
	sess := receipt.Start(ctx, "paradoxe eval", os.Args[1:])
	var receiptOpts []receipt.Option

	defer func() {
		_ = sess.Finish(err, receiptOpts...)
	}()

	input, readErr := readInput()
	if readErr != nil {
		err = readErr
		return err
	}

	log := logging.From(ctx)
	start := time.Now()

	if h := otelobs.From(ctx); h != nil {
		var span trace.Span
		ctx, span = h.Tracer.Start(ctx, "paradoxe.eval",
			trace.WithAttributes(
				attribute.String("paradoxe.op_id", observability.OpID(ctx)),
				attribute.String("paradoxe.command", "eval"),
				attribute.Bool("paradoxe.strict", strictFlag),
			))
		defer func() {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed")
			} else {
				span.SetStatus(codes.Ok, "success")
			}
			span.End()
		}()
	}

	log.Event(ctx, "eval.start", nil)

	var resultStatus string
	defer func() {
		log.Event(ctx, "eval.complete", map[string]any{
			"duration_ms": time.Since(start).Milliseconds(),
			"result":      resultStatus,
		})
	}()

	store, storeErr := openStateStore()
	if storeErr != nil {
		fmt.Fprintf(os.Stderr, "warning: state persistence disabled: %v\n", storeErr)
	}
	if store != nil {
		defer store.Close()
	}

	eng := engine.New(engine.Options{
		Policy: models.PolicyOptions{
			Strict:             strictFlag,
			EvidenceMode:       models.EvidenceMode(os.Getenv("EVIDENCE_MODE")),
			DepthCap:           depthCapFlag,
			BlockOnHighAnomaly: blockAnomalyFlag,
			Pepper:             os.Getenv("EVIDENCE_PEPPER"),
		},
		Store: store,
	})

	ev, evalErr := eng.Evaluate(ctx, input)
	if evalErr != nil {
		resultStatus = "fail"
		err = fmt.Errorf("evaluation failed: %w", evalErr)
		return err
	}

	receiptOpts = append(receiptOpts, receipt.WithEvaluation(evaluationSummary(ev)))

	if metricsJSONFlag {
		if jsonErr := printReportJSON(ev); jsonErr != nil {
			resultStatus = "fail"
			err = jsonErr
			return err
		}
	} else {
		printReport(ev)
	}

	if evalPolicyFlag != "" {
		policyErr := runCompliance(ev, &receiptOpts)
		if policyErr != nil {
			resultStatus = "fail"
			err = policyErr
			return err
		}
	}

	resultStatus = "success"
	if exitOnBlockFlag && ev.Blocked {
		err = &ExitError{Code: ExitBlocked}
		return err
	}
	return nil
}

// readInput enforces exactly one input source.
func readInput() (string, error) {
	sources := 0
	if injectFlag != "" {
		sources++
	}
	if fileFlag != "" {
		sources++
	}
	if stdinFlag {
		sources++
	}
	if sources != 1 {
		return "", &ExitError{
			Code: ExitUsage,
			Msg:  "exactly one of --inject, --file, --stdin is required",
		}
	}

	switch {
	case injectFlag != "":
		return injectFlag, nil
	case stdinFlag:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(fileFlag)
		if err != nil {
			return "", &ExitError{
				Code: ExitNoInput,
				Msg:  fmt.Sprintf("cannot read input file: %v", err),
			}
		}
		return string(data), nil
	}
}

// openStateStore honors STATE_ENABLE/STATE_PATH.
func openStateStore() (*statestore.Store, error) {
	enabled, _ := strconv.ParseBool(os.Getenv("STATE_ENABLE"))
	if !enabled {
		return nil, nil
	}
	path := os.Getenv("STATE_PATH")
	if path == "" {
		path = statestore.DefaultPath
	}
	return statestore.Open(path)
}

// printReport renders the text contract: banner first, always.
func printReport(ev *engine.Evaluation) {
	fmt.Println(ev.Banner)

	if showReportFlag && len(ev.Report.Findings) > 0 {
		fmt.Println("FINDINGS:")
		for _, f := range ev.Report.Findings {
			fmt.Printf("- [%s] %s: %s\n", f.Severity, f.Category.Namespaced(), f.Detail)
		}
	}

	if !noOutputFlag {
		fmt.Println("---")
		fmt.Println(ev.Output)
	}

	if !noMetricsFlag {
		fmt.Println("METRICS:")
		for _, key := range ev.Metrics.Keys() {
			v, _ := ev.Metrics.Get(key)
			fmt.Printf("- %s: %s\n", key, formatMetric(v))
		}
	}
}

// formatMetric keeps slices readable in the text block.
func formatMetric(v any) string {
	switch t := v.(type) {
	case []string:
		return "[" + strings.Join(t, ", ") + "]"
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

// evalReport is the JSON shape consumed by 'paradoxe diff'.
type evalReport struct {
	Banner       string          `json:"banner"`
	Output       string          `json:"output"`
	ResolverRule string          `json:"resolver_rule"`
	Blocked      bool            `json:"blocked"`
	Metrics      json.RawMessage `json:"metrics"`
}

func printReportJSON(ev *engine.Evaluation) error {
	metrics, err := json.Marshal(ev.Metrics)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}
	out, err := json.MarshalIndent(evalReport{
		Banner:       ev.Banner,
		Output:       ev.Output,
		ResolverRule: ev.RuleID,
		Blocked:      ev.Blocked,
		Metrics:      metrics,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func evaluationSummary(ev *engine.Evaluation) receipt.EvaluationSummary {
	s := receipt.EvaluationSummary{
		ResolverRule:  ev.RuleID,
		Blocked:       ev.Blocked,
		MetricsDigest: ev.Metrics.Digest(),
	}
	if v, ok := ev.Metrics.Get("categories_hit"); ok {
		if cats, ok := v.([]string); ok {
			s.CategoriesHit = cats
		}
	}
	if v, ok := ev.Metrics.Get("refused"); ok {
		if refused, ok := v.(bool); ok {
			s.Refused = refused
		}
	}
	return s
}
