package recode

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"recast/internal/fileutil"
	"recast/internal/logging"
)

// Import runs the copy-mode pipeline: the source stays untouched and the
// processed (or plain-copied) file lands in destDir. Outputs are staged in
// destDir and promoted only after validation.
func (p *Processor) Import(ctx context.Context, path, destDir string) Result {
	res := newResult(path)
	log := p.fileLogger(res)

	info, built, err := p.Plan(ctx, path)
	if err != nil {
		log.Error("probe failed", logging.Error(err))
		return res.failed(err)
	}
	actionSummary(&res, built, info.DolbyVisionProfile())

	destName := filepath.Base(path)
	if built.NeedsContainerPass() {
		destName = strings.TrimSuffix(destName, filepath.Ext(destName)) + ".mkv"
	}
	dest := filepath.Join(destDir, destName)
	res.Output = dest

	if p.opts.DryRun {
		res.Status = StatusDryRun
		return res.finish()
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return res.failed(err)
	}
	p.ownTree(destDir)

	if built.StripSubtitles {
		log.Info("extracting subtitles")
		res.Subtitles = p.extractor.Extract(ctx, path, dest, built.Decisions)
	}

	if built.NeedsContainerPass() {
		staged := filepath.Join(destDir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))+ArtifactSuffix)
		outcome, err := runContainerPass(ctx, p.runner, built, path, staged, p.encodeOptions())
		res.HardwareUsed = outcome.HardwareUsed
		res.SoftwareFallback = outcome.SoftwareFallback
		if err != nil {
			log.Error("container pass failed", logging.Error(err))
			return res.failed(err)
		}
		if err := p.validator.Validate(ctx, info, staged); err != nil {
			os.Remove(staged)
			log.Error("validation failed", logging.Error(err))
			return res.failed(err)
		}
		if err := commitImport(staged, dest, p.cfg.Plex.OwnerUser, p.cfg.Plex.OwnerGroup); err != nil {
			return res.failed(err)
		}
	} else {
		log.Info("copying", logging.String("dest", dest))
		if err := fileutil.CopyFileVerified(path, dest); err != nil {
			return res.failed(err)
		}
		_ = fileutil.SetOwner(dest, p.cfg.Plex.OwnerUser, p.cfg.Plex.OwnerGroup)
	}

	if built.HDR10Sidecar {
		log.Info("creating hdr10 sidecar")
		res.HDR10 = p.createSidecar(ctx, log, path, destDir)
	}

	res.Status = StatusRecoded
	log.Info("imported", logging.String("dest", dest))
	return res.finish()
}

// ownTree applies library ownership to destDir and its parents up to the
// configured Plex root. Failures are advisory.
func (p *Processor) ownTree(destDir string) {
	root := p.cfg.Plex.Root
	if root == "" {
		_ = fileutil.SetOwner(destDir, p.cfg.Plex.OwnerUser, p.cfg.Plex.OwnerGroup)
		return
	}
	current := filepath.Clean(destDir)
	root = filepath.Clean(root)
	for {
		_ = fileutil.SetOwner(current, p.cfg.Plex.OwnerUser, p.cfg.Plex.OwnerGroup)
		parent := filepath.Dir(current)
		if current == root || parent == current {
			return
		}
		current = parent
		if !strings.HasPrefix(current+string(filepath.Separator), root+string(filepath.Separator)) {
			return
		}
	}
}
