// Package assessor orchestrates one assessment cycle: validate the
// submission, obtain a raw prediction, normalize it, and derive the report
// view-model. Normalization always completes before interpretation; the
// package holds no per-request state and is safe for concurrent cycles.
package assessor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/saferoute/risk-report-service/internal/domain"
	"github.com/saferoute/risk-report-service/internal/observability"
)

// Exporter publishes completed assessment artifacts for downstream analytics.
type Exporter interface {
	Publish(ctx context.Context, artifact domain.ExportArtifact) error
}

// Assessor runs the submit-predict-normalize-interpret cycle.
type Assessor struct {
	predictor domain.Predictor
	exporter  Exporter
	logger    *slog.Logger
	metrics   *observability.Metrics
	assessed  atomic.Bool
}

// New creates an Assessor. Pass a nil exporter to disable export publishing.
func New(predictor domain.Predictor, exporter Exporter, logger *slog.Logger, metrics *observability.Metrics) *Assessor {
	return &Assessor{
		predictor: predictor,
		exporter:  exporter,
		logger:    logger,
		metrics:   metrics,
	}
}

// Assess runs one full cycle for a submission. Failure modes:
//   - domain.ErrInvalidSubmission: the inputs fail option-set validation.
//   - domain.ErrUnprocessableResponse: the service answered with something
//     that is not a JSON object; no partial report is produced.
//   - transport errors from the predictor, wrapped.
//
// Field-level problems inside a well-formed response never fail: they
// degrade to defaults during normalization.
func (a *Assessor) Assess(ctx context.Context, sub domain.Submission) (domain.Report, error) {
	start := time.Now()

	if err := sub.Validate(); err != nil {
		a.metrics.AssessmentErrors.WithLabelValues("validation").Inc()
		return domain.Report{}, err
	}

	raw, err := a.predictor.Predict(ctx, sub)
	if err != nil {
		a.metrics.AssessmentErrors.WithLabelValues("prediction").Inc()
		a.logger.Error("prediction request failed", "region", sub.Region, "error", err)
		return domain.Report{}, fmt.Errorf("predict: %w", err)
	}

	assessment, err := domain.NormalizeAssessment(raw)
	if err != nil {
		a.metrics.AssessmentErrors.WithLabelValues("unprocessable").Inc()
		a.logger.Warn("prediction response unprocessable", "region", sub.Region, "error", err)
		return domain.Report{}, err
	}

	report := domain.BuildReport(assessment)

	a.metrics.AssessmentsTotal.Inc()
	a.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())
	a.assessed.Store(true)

	a.publishExport(ctx, sub, report)

	return report, nil
}

// Export runs an assessment and wraps it in a timestamped export artifact.
func (a *Assessor) Export(ctx context.Context, sub domain.Submission) (domain.ExportArtifact, error) {
	report, err := a.Assess(ctx, sub)
	if err != nil {
		return domain.ExportArtifact{}, err
	}
	return domain.NewExportArtifact(sub, report), nil
}

// publishExport sends the artifact to the analytics topic. Publish failures
// are logged and counted but never surfaced to the requester.
func (a *Assessor) publishExport(ctx context.Context, sub domain.Submission, report domain.Report) {
	if a.exporter == nil {
		return
	}

	artifact := domain.NewExportArtifact(sub, report)
	if err := a.exporter.Publish(ctx, artifact); err != nil {
		a.metrics.ExportErrors.Inc()
		a.logger.Warn("export publish failed", "region", sub.Region, "error", err)
		return
	}
	a.metrics.ExportsPublished.Inc()
}

// CheckReadiness reports whether the service can serve assessments. The
// upstream probe is skipped once a cycle has completed, so a transient
// upstream wobble does not flap readiness on a warm instance.
func (a *Assessor) CheckReadiness(ctx context.Context) error {
	if a.assessed.Load() {
		return nil
	}
	if err := a.predictor.CheckHealth(ctx); err != nil {
		return errors.New("prediction service is not reachable")
	}
	return nil
}
