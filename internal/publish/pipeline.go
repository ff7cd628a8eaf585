package publish

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/docpublish/internal/auth"
	"github.com/dmitrijs2005/docpublish/internal/common"
	"github.com/dmitrijs2005/docpublish/internal/logging"
	"github.com/dmitrijs2005/docpublish/internal/settings"
	"github.com/dmitrijs2005/docpublish/internal/vault"
)

// Stage is a step of one pipeline run. A pipeline that is not running has
// no stage; Outcome.Stage is where a run ended, and a failed run is an
// Outcome whose Err is set.
type Stage string

const (
	StageValidating     Stage = "validating"
	StageAuthenticating Stage = "authenticating"
	StageUploading      Stage = "uploading"
	StageRelocating     Stage = "relocating"
	StageDone           Stage = "done"
)

// Outcome is the result of one run. On success File is the relocated
// reference and Stage is StageDone; on failure Stage is the step that failed.
type Outcome struct {
	File  *vault.FileReference
	Stage Stage
	Err   error
}

func (o Outcome) OK() bool {
	return o.Err == nil
}

// FileRelocator is satisfied by *Relocator.
type FileRelocator interface {
	Relocate(ctx context.Context, file *vault.FileReference) (*vault.FileReference, error)
}

type Pipeline struct {
	uploader  Uploader
	relocator FileRelocator
	notifier  Notifier
	logger    logging.Logger
}

func NewPipeline(u Uploader, r FileRelocator, n Notifier, l logging.Logger) *Pipeline {
	return &Pipeline{
		uploader:  u,
		relocator: r,
		notifier:  n,
		logger:    l.With("module", "publish"),
	}
}

// Run publishes file with the endpoint and credentials in s. s is a
// snapshot; later edits to the settings do not affect a run in progress.
func (p *Pipeline) Run(ctx context.Context, s settings.Settings, file *vault.FileReference) Outcome {
	log := p.logger.With("run_id", uuid.NewString())
	if file != nil {
		log = log.With("path", file.Path)
	}

	out := p.run(ctx, log, s, file)
	p.report(ctx, log, file, out)
	return out
}

// Abort reports a run that failed before a document could be handed to
// Run, e.g. because looking up path in the vault failed. It logs and
// notifies exactly like a run that failed validation.
func (p *Pipeline) Abort(ctx context.Context, path string, err error) Outcome {
	log := p.logger.With("run_id", uuid.NewString(), "path", path)

	// The reference only names the document in the notification.
	file, _ := vault.NewFileReference(path)

	out := failed(StageValidating, err)
	p.report(ctx, log, file, out)
	return out
}

func (p *Pipeline) run(ctx context.Context, log logging.Logger, s settings.Settings, file *vault.FileReference) Outcome {
	stage := StageValidating
	log.Debug(ctx, "stage", "stage", stage)
	if file == nil {
		return failed(stage, fmt.Errorf("%w: no document supplied", common.ErrNotFound))
	}

	stage = StageAuthenticating
	log.Debug(ctx, "stage", "stage", stage)
	token := auth.DeriveToken(s.APIKey, s.APISecret)

	stage = StageUploading
	log.Debug(ctx, "stage", "stage", stage, "endpoint", s.URL)
	uploaded, err := p.uploader.Upload(ctx, s.URL, token, file)
	if err != nil {
		return failed(stage, err)
	}

	stage = StageRelocating
	log.Debug(ctx, "stage", "stage", stage)
	moved, err := p.relocator.Relocate(ctx, uploaded)
	if err != nil {
		return failed(stage, err)
	}

	return Outcome{File: moved, Stage: StageDone}
}

func failed(stage Stage, err error) Outcome {
	return Outcome{Stage: stage, Err: err}
}

// report emits the single notification of a run plus its log line. Error
// kinds only reach the log.
func (p *Pipeline) report(ctx context.Context, log logging.Logger, file *vault.FileReference, out Outcome) {
	if out.OK() {
		log.Info(ctx, "document published", "published_path", out.File.Path)
		p.notifier.Notify(fmt.Sprintf("Published %s", out.File.Name))
		return
	}

	log.Error(ctx, "publish failed", "stage", string(out.Stage), "error", out.Err)
	if file == nil {
		p.notifier.Notify("Publish failed: no document selected")
		return
	}
	p.notifier.Notify(fmt.Sprintf("Publish failed: %s", file.Name))
}
