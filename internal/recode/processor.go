package recode

import (
	"context"
	"log/slog"
	"os"
	"time"

	"recast/internal/classify"
	"recast/internal/config"
	"recast/internal/ffmpeg"
	"recast/internal/hdr"
	"recast/internal/logging"
	"recast/internal/media"
	"recast/internal/plan"
	"recast/internal/subtitles"
)

var probeFile = media.Probe

// subtitleExtractor is satisfied by *subtitles.Extractor.
type subtitleExtractor interface {
	Extract(ctx context.Context, source, base string, decisions []classify.Decision) []subtitles.TrackResult
}

// sidecarWriter is satisfied by *hdr.Writer.
type sidecarWriter interface {
	Create(ctx context.Context, source, dir string) (string, error)
}

// outputValidator is satisfied by *Validator.
type outputValidator interface {
	Validate(ctx context.Context, input media.Info, output string) error
}

// Options tune one processing run.
type Options struct {
	// DryRun reports what would happen without touching any file.
	DryRun bool

	// SoftwareOnly disables the hardware encode path for the whole run.
	SoftwareOnly bool
}

// Processor runs the whole pipeline for individual files.
type Processor struct {
	logger    *slog.Logger
	cfg       *config.Config
	rules     classify.Rules
	runner    containerRunner
	extractor subtitleExtractor
	sidecar   sidecarWriter
	validator outputValidator
	opts      Options
}

// NewProcessor wires a Processor from configuration.
func NewProcessor(cfg *config.Config, logger *slog.Logger, opts Options) *Processor {
	ocr := subtitles.NewOCR(cfg.OCR.Binary, time.Duration(cfg.OCRTimeoutSeconds())*time.Second)
	return &Processor{
		logger:    logging.NewComponentLogger(logger, "recode"),
		cfg:       cfg,
		rules:     classify.DefaultRules(),
		runner:    ffmpeg.NewRunner(cfg.Transcode.FFmpegBinary),
		extractor: subtitles.NewExtractor(logger, cfg.Transcode.FFmpegBinary, ocr),
		sidecar:   hdr.NewWriter(logger, cfg.Transcode.FFmpegBinary),
		validator: NewValidator(cfg.Transcode.FFprobeBinary, cfg.Validation.DurationTolerance, cfg.Validation.MinSizeRatio),
		opts:      opts,
	}
}

func (p *Processor) encodeOptions() ffmpeg.Options {
	return ffmpeg.Options{
		VAAPIDevice: p.cfg.Transcode.VAAPIDevice,
		VAAPIQP:     p.cfg.Transcode.VAAPIQP,
		CRF:         p.cfg.Transcode.CRF,
		Preset:      p.cfg.Transcode.Preset,
	}
}

func (p *Processor) preferHardware() bool {
	return p.cfg.Transcode.PreferHardware && !p.opts.SoftwareOnly
}

// fileLogger derives a logger carrying the record id and source path so log
// lines correlate with the run log and history entries for the same file.
func (p *Processor) fileLogger(res Result) *slog.Logger {
	return p.logger.With(
		logging.String(logging.FieldRunID, res.ID),
		logging.String(logging.FieldSource, res.Path))
}

// Plan probes path and builds its plan without performing any work.
func (p *Processor) Plan(ctx context.Context, path string) (media.Info, plan.Plan, error) {
	info, err := probeFile(ctx, p.cfg.Transcode.FFprobeBinary, path)
	if err != nil {
		return media.Info{}, plan.Plan{}, err
	}
	decisions := classify.Classify(info, p.rules)
	built := plan.Build(decisions, p.rules, plan.Signals{
		DolbyVisionProfile8: info.HasDolbyVisionProfile8(),
		PreferHardware:      p.preferHardware(),
	})
	return info, built, nil
}

// Process runs the in-place pipeline for one file and returns its Result.
// The original file is only replaced after the produced output validates.
func (p *Processor) Process(ctx context.Context, path string) Result {
	res := newResult(path)
	log := p.fileLogger(res)

	info, built, err := p.Plan(ctx, path)
	if err != nil {
		log.Error("probe failed", logging.Error(err))
		return res.failed(err)
	}
	actionSummary(&res, built, info.DolbyVisionProfile())

	if built.Empty() {
		log.Info("already compatible")
		return res.finish()
	}
	if p.opts.DryRun {
		res.Status = StatusDryRun
		return res.finish()
	}

	if built.StripSubtitles {
		log.Info("extracting subtitles")
		res.Subtitles = p.extractor.Extract(ctx, path, finalPath(path), built.Decisions)
	}

	if built.HDR10Sidecar {
		log.Info("creating hdr10 sidecar")
		res.HDR10 = p.createSidecar(ctx, log, path, "")
	}

	if !built.NeedsContainerPass() {
		res.Status = StatusRecoded
		res.Output = path
		return res.finish()
	}

	output := artifactPath(path)
	outcome, err := runContainerPass(ctx, p.runner, built, path, output, p.encodeOptions())
	res.HardwareUsed = outcome.HardwareUsed
	res.SoftwareFallback = outcome.SoftwareFallback
	if err != nil {
		log.Error("container pass failed", logging.Error(err))
		return res.failed(err)
	}

	if err := p.validator.Validate(ctx, info, output); err != nil {
		os.Remove(output)
		log.Error("validation failed", logging.Error(err))
		return res.failed(err)
	}

	final, err := commitInPlace(path, output, p.cfg.Plex.OwnerUser, p.cfg.Plex.OwnerGroup)
	if err != nil {
		log.Error("commit failed", logging.Error(err))
		return res.failed(err)
	}

	res.Status = StatusRecoded
	res.Output = final
	log.Info("recoded", logging.String("output", final),
		logging.Bool("hardware", res.HardwareUsed),
		logging.Bool("fallback", res.SoftwareFallback))
	return res.finish()
}

func (p *Processor) createSidecar(ctx context.Context, log *slog.Logger, source, dir string) *HDR10Outcome {
	sidecarPath, err := p.sidecar.Create(ctx, source, dir)
	if err != nil {
		log.Warn("hdr10 sidecar failed", logging.Error(err))
		return &HDR10Outcome{Success: false, Message: err.Error()}
	}
	return &HDR10Outcome{Success: true, Path: sidecarPath, Message: "HDR10 copy created"}
}
