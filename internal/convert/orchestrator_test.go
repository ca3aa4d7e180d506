package convert

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"convertly/internal/api"
)

type fakeBackend struct {
	mu            sync.Mutex
	uploadCalls   int
	startCalls    int
	uploadFn      func(files []api.Upload, from, to, email string) (*api.UploadResponse, error)
	startFn       func(ids []string) (*api.StartConversionResponse, error)
	progressFn    func(id string, call int) (*api.ProgressResponse, error)
	progressCalls map[string]int
}

func (f *fakeBackend) UploadFiles(_ context.Context, files []api.Upload, from, to, email string) (*api.UploadResponse, error) {
	f.mu.Lock()
	f.uploadCalls++
	f.mu.Unlock()
	return f.uploadFn(files, from, to, email)
}

func (f *fakeBackend) StartConversion(_ context.Context, ids []string) (*api.StartConversionResponse, error) {
	f.mu.Lock()
	f.startCalls++
	f.mu.Unlock()
	if f.startFn != nil {
		return f.startFn(ids)
	}
	return &api.StartConversionResponse{Message: "Conversion started", FileIDs: ids}, nil
}

func (f *fakeBackend) ConversionProgress(_ context.Context, id string) (*api.ProgressResponse, error) {
	f.mu.Lock()
	if f.progressCalls == nil {
		f.progressCalls = make(map[string]int)
	}
	f.progressCalls[id]++
	call := f.progressCalls[id]
	f.mu.Unlock()
	return f.progressFn(id, call)
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	infos     []string
	errors    []string
}

func (r *recordingNotifier) Success(_ context.Context, title, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, title+": "+message)
	return nil
}

func (r *recordingNotifier) Info(_ context.Context, title, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, title+": "+message)
	return nil
}

func (r *recordingNotifier) Error(_ context.Context, title, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, title+": "+message)
	return nil
}

func singleUpload(id, name string) func([]api.Upload, string, string, string) (*api.UploadResponse, error) {
	return func([]api.Upload, string, string, string) (*api.UploadResponse, error) {
		return &api.UploadResponse{Files: []api.FileRecord{{
			ID:              id,
			Filename:        name,
			OriginalFormat:  "pdf",
			ConvertedFormat: "docx",
			FileSize:        "2.4 MB",
			Status:          "uploaded",
		}}}, nil
	}
}

func TestConvertRunsBatchToCompletion(t *testing.T) {
	backend := &fakeBackend{
		uploadFn: singleUpload("f1", "report.pdf"),
		progressFn: func(id string, call int) (*api.ProgressResponse, error) {
			steps := []struct {
				progress int
				status   string
			}{{10, "converting"}, {45, "converting"}, {100, "completed"}}
			step := steps[min(call, len(steps))-1]
			return &api.ProgressResponse{ID: id, Progress: step.progress, Status: step.status}, nil
		},
	}
	notifier := &recordingNotifier{}
	orch := NewOrchestrator(backend, notifier, 2*time.Millisecond, nil)

	files := []api.Upload{{Name: "report.pdf", Content: strings.NewReader("%PDF")}}
	if err := orch.Convert(context.Background(), files, "pdf", "docx", "user@example.com"); err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	orch.Wait()

	tasks := orch.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("tasks = %d, want 1", len(tasks))
	}
	task := tasks[0]
	if task.Status != StatusCompleted || task.Progress != 100 {
		t.Errorf("task ended %q/%d, want completed/100", task.Status, task.Progress)
	}
	if task.FileName != "report.pdf" || task.FileSize != "2.4 MB" {
		t.Errorf("task metadata: %+v", task)
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.successes) != 1 {
		t.Fatalf("success notifications = %d, want 1", len(notifier.successes))
	}
	if notifier.successes[0] != "Conversion complete: report.pdf converted to DOCX" {
		t.Errorf("unexpected notification: %q", notifier.successes[0])
	}
}

func TestConvertStopsPollingAfterTerminalState(t *testing.T) {
	backend := &fakeBackend{
		uploadFn: singleUpload("f1", "report.pdf"),
		progressFn: func(id string, call int) (*api.ProgressResponse, error) {
			return &api.ProgressResponse{ID: id, Progress: 100, Status: "completed"}, nil
		},
	}
	orch := NewOrchestrator(backend, &recordingNotifier{}, time.Millisecond, nil)

	files := []api.Upload{{Name: "report.pdf", Content: strings.NewReader("%PDF")}}
	if err := orch.Convert(context.Background(), files, "pdf", "docx", ""); err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	orch.Wait()

	// Give any stray ticker a chance to fire before counting.
	time.Sleep(10 * time.Millisecond)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	if got := backend.progressCalls["f1"]; got != 1 {
		t.Errorf("progress polled %d times after terminal response, want 1", got)
	}
}

func TestConvertEmptyBatchMakesNoCalls(t *testing.T) {
	backend := &fakeBackend{uploadFn: singleUpload("f1", "report.pdf")}
	orch := NewOrchestrator(backend, &recordingNotifier{}, time.Millisecond, nil)

	if err := orch.Convert(context.Background(), nil, "pdf", "docx", ""); !errors.Is(err, ErrNothingToConvert) {
		t.Fatalf("err = %v, want ErrNothingToConvert", err)
	}
	files := []api.Upload{{Name: "a.pdf", Content: strings.NewReader("x")}}
	if err := orch.Convert(context.Background(), files, "", "docx", ""); !errors.Is(err, ErrNothingToConvert) {
		t.Fatalf("missing source format: err = %v", err)
	}
	if err := orch.Convert(context.Background(), files, "pdf", " ", ""); !errors.Is(err, ErrNothingToConvert) {
		t.Fatalf("blank target format: err = %v", err)
	}

	backend.mu.Lock()
	defer backend.mu.Unlock()
	if backend.uploadCalls != 0 || backend.startCalls != 0 {
		t.Errorf("backend called: uploads=%d starts=%d", backend.uploadCalls, backend.startCalls)
	}
	if len(orch.Tasks()) != 0 {
		t.Error("tasks created for empty batch")
	}
}

func TestConvertUploadFailureNotifiesOnce(t *testing.T) {
	backend := &fakeBackend{
		uploadFn: func([]api.Upload, string, string, string) (*api.UploadResponse, error) {
			return nil, &api.Error{Status: 413, Message: "File too large"}
		},
	}
	notifier := &recordingNotifier{}
	orch := NewOrchestrator(backend, notifier, time.Millisecond, nil)

	files := []api.Upload{{Name: "big.mp4", Content: strings.NewReader("x")}}
	err := orch.Convert(context.Background(), files, "mp4", "mp3", "")
	if err == nil {
		t.Fatal("expected upload error")
	}
	if len(orch.Tasks()) != 0 {
		t.Error("tasks created despite failed upload")
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != "Upload failed: File too large" {
		t.Errorf("error notifications = %v", notifier.errors)
	}
}

func TestConvertStartFailureKeepsTasks(t *testing.T) {
	backend := &fakeBackend{
		uploadFn: singleUpload("f1", "report.pdf"),
		startFn: func([]string) (*api.StartConversionResponse, error) {
			return nil, errors.New("connection reset")
		},
	}
	notifier := &recordingNotifier{}
	orch := NewOrchestrator(backend, notifier, time.Millisecond, nil)

	files := []api.Upload{{Name: "report.pdf", Content: strings.NewReader("x")}}
	if err := orch.Convert(context.Background(), files, "pdf", "docx", ""); err == nil {
		t.Fatal("expected start error")
	}
	tasks := orch.Tasks()
	if len(tasks) != 1 || tasks[0].Status != StatusPending {
		t.Errorf("tasks = %+v, want one pending task", tasks)
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != "Conversion failed to start: Network error" {
		t.Errorf("error notifications = %v", notifier.errors)
	}
}

func TestConvertPollFailureMarksTaskError(t *testing.T) {
	backend := &fakeBackend{
		uploadFn: singleUpload("f1", "report.pdf"),
		progressFn: func(string, int) (*api.ProgressResponse, error) {
			return nil, &api.Error{Status: 404, Message: "File not found"}
		},
	}
	notifier := &recordingNotifier{}
	orch := NewOrchestrator(backend, notifier, time.Millisecond, nil)

	files := []api.Upload{{Name: "report.pdf", Content: strings.NewReader("x")}}
	if err := orch.Convert(context.Background(), files, "pdf", "docx", ""); err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	orch.Wait()

	tasks := orch.Tasks()
	if len(tasks) != 1 || tasks[0].Status != StatusError {
		t.Fatalf("tasks = %+v, want one error task", tasks)
	}
	if tasks[0].Message != "File not found" {
		t.Errorf("task message = %q", tasks[0].Message)
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != "Conversion failed: File not found" {
		t.Errorf("error notifications = %v", notifier.errors)
	}
}

func TestConvertMapsFailedStatusToError(t *testing.T) {
	backend := &fakeBackend{
		uploadFn: singleUpload("f1", "photo.png"),
		progressFn: func(id string, call int) (*api.ProgressResponse, error) {
			if call == 1 {
				return &api.ProgressResponse{ID: id, Progress: 30, Status: "processing"}, nil
			}
			return &api.ProgressResponse{ID: id, Progress: 30, Status: "failed"}, nil
		},
	}
	notifier := &recordingNotifier{}
	orch := NewOrchestrator(backend, notifier, time.Millisecond, nil)

	files := []api.Upload{{Name: "photo.png", Content: strings.NewReader("x")}}
	if err := orch.Convert(context.Background(), files, "png", "webp", ""); err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	orch.Wait()

	tasks := orch.Tasks()
	if tasks[0].Status != StatusError {
		t.Errorf("status = %q, want error", tasks[0].Status)
	}
	if len(notifier.errors) != 1 {
		t.Errorf("error notifications = %d, want 1", len(notifier.errors))
	}
}

func TestStopCancelsPolling(t *testing.T) {
	backend := &fakeBackend{
		uploadFn: singleUpload("f1", "report.pdf"),
		progressFn: func(id string, call int) (*api.ProgressResponse, error) {
			return &api.ProgressResponse{ID: id, Progress: 5, Status: "converting"}, nil
		},
	}
	orch := NewOrchestrator(backend, &recordingNotifier{}, time.Millisecond, nil)

	files := []api.Upload{{Name: "report.pdf", Content: strings.NewReader("x")}}
	if err := orch.Convert(context.Background(), files, "pdf", "docx", ""); err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	orch.Stop()

	done := make(chan struct{})
	go func() {
		orch.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after Stop")
	}
}
