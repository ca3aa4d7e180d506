package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"convertly/internal/api"
	"convertly/internal/logging"
	"convertly/internal/notifications"
)

// ErrNothingToConvert is returned when a batch has no files or is missing a
// source or target format. No network call is made in that case.
var ErrNothingToConvert = errors.New("nothing to convert: need at least one file and both formats")

// Backend is the slice of the API client the orchestrator needs.
type Backend interface {
	UploadFiles(ctx context.Context, files []api.Upload, fromFormat, toFormat, userEmail string) (*api.UploadResponse, error)
	StartConversion(ctx context.Context, fileIDs []string) (*api.StartConversionResponse, error)
	ConversionProgress(ctx context.Context, fileID string) (*api.ProgressResponse, error)
}

// Orchestrator drives a conversion batch end to end: upload, start, poll.
type Orchestrator struct {
	backend   Backend
	notifier  notifications.Notifier
	tracker   *Tracker
	scheduler *Scheduler
	logger    *slog.Logger
}

// NewOrchestrator builds an orchestrator polling at interval.
func NewOrchestrator(backend Backend, notifier notifications.Notifier, interval time.Duration, logger *slog.Logger) *Orchestrator {
	if notifier == nil {
		notifier = notifications.Noop{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	o := &Orchestrator{
		backend:  backend,
		notifier: notifier,
		tracker:  NewTracker(),
		logger:   logger.With(logging.String("component", "convert")),
	}
	o.scheduler = NewScheduler(interval, backend.ConversionProgress, o.tracker, logger, o.notifyTerminal)
	return o
}

// Convert uploads the batch, requests conversion, and starts a polling loop
// per accepted file. It returns once polling is underway; Wait blocks until
// every file has settled.
func (o *Orchestrator) Convert(ctx context.Context, files []api.Upload, fromFormat, toFormat, userEmail string) error {
	fromFormat = strings.TrimSpace(fromFormat)
	toFormat = strings.TrimSpace(toFormat)
	if len(files) == 0 || fromFormat == "" || toFormat == "" {
		return ErrNothingToConvert
	}

	resp, err := o.backend.UploadFiles(ctx, files, fromFormat, toFormat, userEmail)
	if err != nil {
		o.logger.Error("upload failed", logging.Error(err))
		if nerr := o.notifier.Error(ctx, "Upload failed", failureMessage(err)); nerr != nil {
			o.logger.Warn("notification delivery failed", logging.Error(nerr))
		}
		return fmt.Errorf("upload files: %w", err)
	}
	if len(resp.Files) == 0 {
		return errors.New("upload accepted but no files returned")
	}

	ids := make([]string, 0, len(resp.Files))
	for _, record := range resp.Files {
		o.tracker.Add(taskFromRecord(record))
		ids = append(ids, record.ID)
	}
	o.logger.Info("upload complete",
		logging.Int("files", len(ids)),
		logging.String("from", fromFormat),
		logging.String("to", toFormat))

	if _, err := o.backend.StartConversion(ctx, ids); err != nil {
		o.logger.Error("conversion start failed", logging.Error(err))
		if nerr := o.notifier.Error(ctx, "Conversion failed to start", failureMessage(err)); nerr != nil {
			o.logger.Warn("notification delivery failed", logging.Error(nerr))
		}
		return fmt.Errorf("start conversion: %w", err)
	}

	for _, id := range ids {
		o.scheduler.Watch(ctx, id)
	}
	return nil
}

// Wait blocks until every polling loop has stopped.
func (o *Orchestrator) Wait() {
	o.scheduler.Wait()
}

// Stop cancels all in-flight polling.
func (o *Orchestrator) Stop() {
	o.scheduler.Stop()
}

// Tasks returns the current state of every tracked task.
func (o *Orchestrator) Tasks() []Task {
	return o.tracker.Snapshot()
}

func (o *Orchestrator) notifyTerminal(ctx context.Context, task Task) {
	var err error
	switch task.Status {
	case StatusCompleted:
		message := fmt.Sprintf("%s converted to %s", task.FileName, strings.ToUpper(task.ToFormat))
		err = o.notifier.Success(ctx, "Conversion complete", message)
	case StatusError:
		message := task.Message
		if message == "" {
			message = fmt.Sprintf("%s could not be converted", task.FileName)
		}
		err = o.notifier.Error(ctx, "Conversion failed", message)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		o.logger.Warn("notification delivery failed",
			logging.String("file_id", task.ID),
			logging.Error(err))
	}
}

// failureMessage mirrors the toast text shown for failed backend calls: the
// server's error envelope when one was parsed, the generic network message
// otherwise.
func failureMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return "Network error"
}
