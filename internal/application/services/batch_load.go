package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/reglet-dev/imgres/internal/application/dto"
	apperrors "github.com/reglet-dev/imgres/internal/application/errors"
	"github.com/reglet-dev/imgres/internal/application/ports"
	"github.com/reglet-dev/imgres/internal/domain/entities"
	"github.com/reglet-dev/imgres/internal/domain/values"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// ErrorKindValidation is reported for requests rejected before they reach
// a builder.
const ErrorKindValidation = "validation"

// BatchLoadUseCase runs resource requests, one builder per request.
type BatchLoadUseCase struct {
	loader  ports.PlatformLoader
	handles ports.HandleProvider
	fs      afero.Fs
	logger  *slog.Logger
}

// NewBatchLoadUseCase creates a new batch load use case.
func NewBatchLoadUseCase(loader ports.PlatformLoader, handles ports.HandleProvider, fs afero.Fs, logger *slog.Logger) *BatchLoadUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchLoadUseCase{
		loader:  loader,
		handles: handles,
		fs:      fs,
		logger:  logger,
	}
}

// LoadOne runs a single request. Failures are reported in the returned
// LoadReport, never as an error.
func (uc *BatchLoadUseCase) LoadOne(ctx context.Context, req dto.LoadRequest, defaultModule string) dto.LoadReport {
	start := time.Now()
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	report := dto.LoadReport{
		ID:    req.ID,
		Mode:  req.EffectiveMode(),
		Flags: []string{},
	}

	name, kind, err := RequestName(req)
	var flags values.LoadFlags
	if err == nil {
		flags, err = RequestFlags(req)
	}
	if err != nil {
		report.Error = err.Error()
		report.ErrorKind = ErrorKindValidation
		report.Kind = kind.String()
		report.DurationMS = time.Since(start).Milliseconds()
		uc.logger.ErrorContext(ctx, "invalid request", "request", req.ID, "error", err)
		return report
	}
	report.Name = name.String()

	b := uc.builder(req, flags, defaultModule).SetName(name)
	switch kind {
	case values.KindIcon:
		b.SetKindIcon()
	case values.KindCursor:
		b.SetKindCursor()
	case values.KindBitmap:
		b.SetKindBitmap()
	}

	var res *entities.Resource
	switch report.Mode {
	case dto.ModeIcon:
		res, err = b.LoadIcon(ctx)
	case dto.ModeCursor:
		res, err = b.LoadCursor(ctx)
	case dto.ModeImage:
		res, err = b.Load(ctx)
	default:
		err = apperrors.NewValidationError("mode", "invalid load mode: "+report.Mode)
	}

	report.Kind = b.Kind().String()
	report.Flags = b.Flags().Names()
	report.ProcessHandle = b.ProcessHandle().String()
	for _, f := range b.LastFindings() {
		report.Findings = append(report.Findings, dto.FindingReport{
			Check:   f.Check,
			Level:   f.Level.String(),
			Message: f.Message,
		})
	}
	if err != nil {
		report.Error = err.Error()
		var verr *apperrors.ValidationError
		if errors.As(err, &verr) {
			report.ErrorKind = ErrorKindValidation
		} else {
			report.ErrorKind = apperrors.KindOf(err).String()
		}
	} else {
		report.Loaded = true
		report.Handle = res.Handle().String()
	}
	report.DurationMS = time.Since(start).Milliseconds()
	return report
}

// Execute runs every manifest request accepted by filter. A nil filter
// accepts all requests. Results keep manifest order.
func (uc *BatchLoadUseCase) Execute(
	ctx context.Context,
	manifest *dto.Manifest,
	filter ports.RequestFilter,
	opts dto.BatchOptions,
) (*dto.BatchReport, error) {
	start := time.Now()
	report := &dto.BatchReport{ProcessedAt: start}

	selected, skipped, err := selectRequests(manifest.Requests, filter)
	if err != nil {
		return nil, err
	}

	limit := opts.Parallelism
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	uc.logger.Info("running batch", "requests", len(selected), "skipped", skipped, "parallelism", limit, "filter", opts.Filter)

	results := make([]*dto.LoadReport, len(selected))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, req := range selected {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			r := uc.LoadOne(gctx, req, manifest.Module)
			results[i] = &r
			if opts.FailFast && !r.Loaded {
				return fmt.Errorf("request %s failed: %s", r.ID, r.Error)
			}
			return nil
		})
	}
	waitErr := g.Wait()

	for _, r := range results {
		if r == nil {
			skipped++
			continue
		}
		report.Results = append(report.Results, *r)
	}
	report.Summarize(skipped)
	report.DurationMS = time.Since(start).Milliseconds()

	uc.logger.Info("batch complete",
		"loaded", report.Summary.Loaded,
		"failed", report.Summary.Failed,
		"skipped", report.Summary.Skipped)

	if waitErr != nil {
		return report, waitErr
	}
	return report, nil
}

func (uc *BatchLoadUseCase) builder(req dto.LoadRequest, flags values.LoadFlags, defaultModule string) *ResourceBuilder {
	module := req.Module
	if module == "" {
		module = defaultModule
	}
	return NewResourceBuilder(uc.loader, uc.handles,
		WithLogger(uc.logger.With("request", req.ID)),
		WithFs(uc.fs),
	).
		SetModule(module).
		SetFlags(flags).
		SetDimensions(req.Width, req.Height)
}

func selectRequests(reqs []dto.LoadRequest, filter ports.RequestFilter) ([]dto.LoadRequest, int, error) {
	if filter == nil {
		return reqs, 0, nil
	}
	var selected []dto.LoadRequest
	for _, req := range reqs {
		ok, err := filter.Matches(req)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to evaluate filter for request %s: %w", req.ID, err)
		}
		if ok {
			selected = append(selected, req)
		}
	}
	return selected, len(reqs) - len(selected), nil
}
