// Package engine is the containment orchestrator: the single public
// entry point composing guard scan, resolver dispatch, and telemetry
// sealing into one evaluation.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/paradoxe/paradoxe/internal/guard"
	"github.com/paradoxe/paradoxe/internal/models"
	"github.com/paradoxe/paradoxe/internal/observability/logging"
	"github.com/paradoxe/paradoxe/internal/resolver"
	"github.com/paradoxe/paradoxe/internal/statestore"
	"github.com/paradoxe/paradoxe/internal/telemetry"
)

// BlockedRuleID marks evaluations short-circuited by the guard layer.
const BlockedRuleID = "blocked"

const blockedOutput = "Input blocked by the safety layer. No resolver was invoked and no content was interpreted."

// Options configure an Engine at construction. The per-evaluation
// PolicyContext is frozen from these before each dispatch.
type Options struct {
	Policy models.PolicyOptions

	// Store, when non-nil, receives one appended mitigation entry per
	// evaluation. Never read back.
	Store *statestore.Store
}

// Evaluation is the rendered outcome of one call.
type Evaluation struct {
	Banner  string
	Output  string
	RuleID  string
	Blocked bool
	Report  models.GuardReport
	Metrics *telemetry.Record
}

// Engine evaluates inputs. The registry and options are read-only
// after New, so one Engine is safe for concurrent Evaluate calls.
type Engine struct {
	registry *resolver.Registry
	opts     Options
}

func New(opts Options) *Engine {
	return &Engine{
		registry: resolver.NewRegistry(),
		opts:     opts,
	}
}

// Registry exposes the rule table, mainly for coverage tests.
func (e *Engine) Registry() *resolver.Registry { return e.registry }

// Evaluate runs the full pipeline on raw input. Policy refusals are
// results, not errors; an error here means a contract violation such
// as a write to sealed telemetry, or an internal fault. Even then a
// safe refusal evaluation is returned alongside the error.
func (e *Engine) Evaluate(ctx context.Context, raw string) (ev *Evaluation, err error) {
	log := logging.From(ctx)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine: internal fault: %v", r)
			ev = safeRefusal(models.GuardReport{})
			log.Error("engine", "internal fault, defaulting to refusal", "fault", fmt.Sprint(r))
		}
	}()

	policy := models.FreezePolicy(e.opts.Policy)

	report := guard.Scan(raw, guard.Config{
		BlockOnHighAnomaly: policy.BlockOnHighAnomaly(),
	})

	rec := telemetry.New()

	if report.Blocked {
		ev, err = e.finishBlocked(report, rec, raw, start)
	} else {
		ev, err = e.finishDispatched(report, rec, raw, policy, start)
	}
	if err != nil {
		return safeRefusal(report), err
	}

	log.Event(ctx, "engine.evaluate", map[string]any{
		"rule":    ev.RuleID,
		"blocked": ev.Blocked,
	})

	if e.opts.Store != nil {
		flushErr := e.opts.Store.Append(statestore.Entry{
			Rule:       ev.RuleID,
			Categories: ev.Report.Categories(),
			Blocked:    ev.Blocked,
			Refused:    refused(ev.Metrics),
		})
		if flushErr != nil {
			// Persistence is best effort and must never fail the
			// evaluation itself.
			log.Warn("engine", "state flush failed", "error", flushErr.Error())
		}
	}

	return ev, nil
}

func (e *Engine) finishBlocked(report models.GuardReport, rec *telemetry.Record, raw string, start time.Time) (*Evaluation, error) {
	if err := setAll(rec,
		models.Metric{Key: "resolver_rule", Value: BlockedRuleID},
		models.Metric{Key: "blocked", Value: true},
		models.Metric{Key: "categories_hit", Value: report.Categories()},
		models.Metric{Key: "logic_consistent", Value: true},
	); err != nil {
		return nil, err
	}
	if err := setCounters(rec, raw, report, start); err != nil {
		return nil, err
	}
	rec.Seal()

	return &Evaluation{
		Banner:  Banner(report),
		Output:  blockedOutput,
		RuleID:  BlockedRuleID,
		Blocked: true,
		Report:  report,
		Metrics: rec,
	}, nil
}

func (e *Engine) finishDispatched(report models.GuardReport, rec *telemetry.Record, raw string, policy *models.PolicyContext, start time.Time) (*Evaluation, error) {
	res, ruleID := e.registry.Dispatch(report.SanitizedText, report, policy)

	categories := append(report.Categories(), res.Tags...)

	if err := setAll(rec,
		models.Metric{Key: "resolver_rule", Value: ruleID},
		models.Metric{Key: "blocked", Value: false},
		models.Metric{Key: "categories_hit", Value: categories},
	); err != nil {
		return nil, err
	}
	if err := setAll(rec, res.Metrics...); err != nil {
		return nil, err
	}
	if err := rec.Set("logic_consistent", true); err != nil {
		return nil, err
	}
	if err := setCounters(rec, raw, report, start); err != nil {
		return nil, err
	}
	rec.Seal()

	return &Evaluation{
		Banner:  Banner(report),
		Output:  res.OutputText,
		RuleID:  ruleID,
		Report:  report,
		Metrics: rec,
	}, nil
}

func setAll(rec *telemetry.Record, metrics ...models.Metric) error {
	for _, m := range metrics {
		if err := rec.Set(m.Key, m.Value); err != nil {
			return err
		}
	}
	return nil
}

func setCounters(rec *telemetry.Record, raw string, report models.GuardReport, start time.Time) error {
	return setAll(rec,
		models.Metric{Key: "input_length", Value: len(raw)},
		models.Metric{Key: "sanitized_length", Value: len(report.SanitizedText)},
		models.Metric{Key: "findings", Value: len(report.Findings)},
		models.Metric{Key: "duration_ms", Value: time.Since(start).Milliseconds()},
	)
}

// safeRefusal is the fallback shape for internal faults: sealed
// minimal telemetry, refusal output, nothing of the partial state.
func safeRefusal(report models.GuardReport) *Evaluation {
	rec := telemetry.New()
	_ = rec.Set("resolver_rule", BlockedRuleID)
	_ = rec.Set("blocked", true)
	_ = rec.Set("logic_consistent", true)
	rec.Seal()
	return &Evaluation{
		Banner:  Banner(report),
		Output:  blockedOutput,
		RuleID:  BlockedRuleID,
		Blocked: true,
		Report:  report,
		Metrics: rec,
	}
}

func refused(rec *telemetry.Record) bool {
	v, ok := rec.Get("refused")
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}
