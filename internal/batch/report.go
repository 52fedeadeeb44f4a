// Package batch implements the one-shot administrative passes: suffix
// assignment, suffix verification, suspension, grace-model
// verification, and duplicate resolution. Every pass is fail-soft:
// per-record failures are collected, never fatal; only setup errors
// (config, connections, the initial load) abort a run before any work.
package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/stoneriver/portal/internal/logger"
	"github.com/stoneriver/portal/internal/model"
)

// Failure is one per-record storage error recorded during a pass.
type Failure struct {
	CustomerID   int64  `json:"customer_id"`
	PolicyNumber string `json:"policy_number"`
	Error        string `json:"error"`
}

// Report is the end-of-run summary of one pass, merged from per-record
// outcomes instead of mutated in place, so passes stay pure up to the
// final accumulation.
type Report struct {
	RunID      string         `json:"run_id"`
	Pass       string         `json:"pass"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Processed  int            `json:"processed"`
	Counts     map[string]int `json:"counts"` // by action / status / tier
	Issues     []string       `json:"issues"`
	Failures   []Failure      `json:"failures"`

	// TotalOutstanding is the summed arrears across the run, in currency
	// units; only the suspension pass fills it.
	TotalOutstanding float64 `json:"total_outstanding,omitempty"`

	// Decisions is the full per-record decision log; persisted both to
	// the JSON artifact and to the ClickHouse audit table.
	Decisions []model.DecisionRecord `json:"decisions"`
}

func newReport(runID, pass string) *Report {
	return &Report{
		RunID:     runID,
		Pass:      pass,
		StartedAt: time.Now().UTC(),
		Counts:    make(map[string]int),
	}
}

func (r *Report) count(key string) { r.Counts[key]++ }

func (r *Report) decide(c *model.Customer, action, oldStatus, newStatus, detail string) {
	r.Decisions = append(r.Decisions, model.DecisionRecord{
		RunID:        r.RunID,
		Pass:         r.Pass,
		CustomerID:   c.ID,
		PolicyNumber: c.PolicyNumber,
		Action:       action,
		OldStatus:    oldStatus,
		NewStatus:    newStatus,
		Detail:       detail,
		CreatedAt:    time.Now().UTC(),
	})
	r.count(action)
}

func (r *Report) fail(c *model.Customer, err error) {
	r.Failures = append(r.Failures, Failure{
		CustomerID:   c.ID,
		PolicyNumber: c.PolicyNumber,
		Error:        err.Error(),
	})
	r.decide(c, model.ActionFailed, c.Status.String(), "", err.Error())
}

// ComplianceRate is the share of processed records that raised no issue
// and no failure.
func (r *Report) ComplianceRate() float64 {
	if r.Processed == 0 {
		return 1
	}
	bad := r.Counts[model.ActionFlagged] + r.Counts[model.ActionFailed]
	return float64(r.Processed-bad) / float64(r.Processed)
}

// WriteArtifact persists the full report as a timestamped JSON file
// under dir and returns the path.
func (r *Report) WriteArtifact(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	name := fmt.Sprintf("%s-%s-%s.json", r.Pass, r.StartedAt.Format("20060102-150405"), r.RunID)
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// LogSummary prints the structured end-of-run summary, truncating the
// issue and failure lists to maxItems.
func (r *Report) LogSummary(maxItems int) {
	log := logger.L()

	fields := []zap.Field{
		zap.String("run_id", r.RunID),
		zap.String("pass", r.Pass),
		zap.Int("processed", r.Processed),
		zap.Duration("took", r.FinishedAt.Sub(r.StartedAt)),
		zap.Float64("compliance_rate", r.ComplianceRate()),
	}
	if r.TotalOutstanding > 0 {
		fields = append(fields, zap.Float64("total_outstanding", r.TotalOutstanding))
	}
	for k, v := range r.Counts {
		fields = append(fields, zap.Int("count_"+k, v))
	}
	log.Info("batch run finished", fields...)

	for i, issue := range r.Issues {
		if maxItems > 0 && i >= maxItems {
			log.Warn("more issues omitted", zap.Int("omitted", len(r.Issues)-maxItems))
			break
		}
		log.Warn("issue", zap.String("detail", issue))
	}
	for i, f := range r.Failures {
		if maxItems > 0 && i >= maxItems {
			log.Error("more failures omitted", zap.Int("omitted", len(r.Failures)-maxItems))
			break
		}
		log.Error("record failed",
			zap.Int64("customer_id", f.CustomerID),
			zap.String("policy_number", f.PolicyNumber),
			zap.String("error", f.Error))
	}
}
