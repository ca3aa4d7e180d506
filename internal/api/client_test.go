package api_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"convertly/internal/api"
	"convertly/internal/config"
	"convertly/internal/session"
)

func testSession(t *testing.T) *session.Session {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()
	sess, err := session.Open(&cfg)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	return sess
}

func testClient(t *testing.T, srv *httptest.Server, sess *session.Session) *api.Client {
	t.Helper()
	client, err := api.New(srv.URL+"/api", sess, api.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type: %q", ct)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"access_token":"tok-abc","admin":{"id":"1","username":"admin"}}`)
	}))
	defer srv.Close()

	sess := testSession(t)
	client := testClient(t, srv, sess)

	resp, err := client.Login(context.Background(), "admin", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.AccessToken != "tok-abc" {
		t.Fatalf("unexpected token: %q", resp.AccessToken)
	}
	if sess.Token() != "tok-abc" {
		t.Fatalf("token not stored in session: %q", sess.Token())
	}
	if sess.Username() != "admin" {
		t.Fatalf("username not stored: %q", sess.Username())
	}
}

func TestLoginInvalidCredentialsLeavesSessionUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":"Invalid credentials"}`)
	}))
	defer srv.Close()

	sess := testSession(t)
	client := testClient(t, srv, sess)

	_, err := client.Login(context.Background(), "admin", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Invalid credentials" {
		t.Fatalf("expected backend message verbatim, got %q", err.Error())
	}
	if status, ok := api.StatusCode(err); !ok || status != http.StatusUnauthorized {
		t.Fatalf("expected 401 status, got %d (ok=%v)", status, ok)
	}
	if sess.Authenticated() {
		t.Fatal("session must not hold a token after failed login")
	}
}

func TestUnparsableErrorBodyDegradesToGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "<html>bad gateway</html>")
	}))
	defer srv.Close()

	client := testClient(t, srv, testSession(t))

	_, err := client.Health(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Network error" {
		t.Fatalf("expected generic message, got %q", err.Error())
	}
}

func TestBearerTokenAttachedWhenPresent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"status":"ok"}`)
	}))
	defer srv.Close()

	sess := testSession(t)
	client := testClient(t, srv, sess)

	if _, err := client.Health(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("no token stored, expected no Authorization header, got %q", gotAuth)
	}

	if err := sess.SetToken("tok-xyz", "admin"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if _, err := client.Health(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
	if gotAuth != "Bearer tok-xyz" {
		t.Fatalf("unexpected Authorization header: %q", gotAuth)
	}
}

func TestUploadFilesSendsMultipartForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/files/upload" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/form-data") {
			t.Errorf("expected multipart content type, got %q", ct)
		}
		if err := r.ParseMultipartForm(16 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("fromFormat"); got != "PDF" {
			t.Errorf("fromFormat = %q", got)
		}
		if got := r.FormValue("toFormat"); got != "DOCX" {
			t.Errorf("toFormat = %q", got)
		}
		if got := r.FormValue("userEmail"); got != "user@example.com" {
			t.Errorf("userEmail = %q", got)
		}
		parts := r.MultipartForm.File["files"]
		if len(parts) != 1 || parts[0].Filename != "report.pdf" {
			t.Errorf("unexpected file parts: %+v", parts)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"files":[{"id":"f1","filename":"report.pdf","originalFormat":"PDF","convertedFormat":"DOCX","fileSize":"2.4 MB","status":"pending"}]}`)
	}))
	defer srv.Close()

	client := testClient(t, srv, testSession(t))

	files := []api.Upload{{Name: "report.pdf", Content: strings.NewReader("%PDF-1.7 test")}}
	resp, err := client.UploadFiles(context.Background(), files, "PDF", "DOCX", "user@example.com")
	if err != nil {
		t.Fatalf("UploadFiles returned error: %v", err)
	}
	if len(resp.Files) != 1 {
		t.Fatalf("expected 1 file record, got %d", len(resp.Files))
	}
	record := resp.Files[0]
	if record.ID != "f1" || record.FileSize != "2.4 MB" || record.ConvertedFormat != "DOCX" {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestUploadFilesRejectsMissingFormats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be issued")
	}))
	defer srv.Close()

	client := testClient(t, srv, testSession(t))

	files := []api.Upload{{Name: "report.pdf", Content: strings.NewReader("x")}}
	if _, err := client.UploadFiles(context.Background(), files, "", "DOCX", ""); err == nil {
		t.Fatal("expected error for missing source format")
	}
}

func TestConversionProgressDecodesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/convert/progress/f1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"f1","fileName":"report.pdf","progress":100,"status":"completed","fileSize":"2.4 MB"}`)
	}))
	defer srv.Close()

	client := testClient(t, srv, testSession(t))

	progress, err := client.ConversionProgress(context.Background(), "f1")
	if err != nil {
		t.Fatalf("ConversionProgress returned error: %v", err)
	}
	if progress.Progress != 100 || progress.Status != "completed" {
		t.Fatalf("unexpected progress: %+v", progress)
	}
}

func TestDownloadFileBypassesCaches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/files/f1/download" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("t") == "" {
			t.Error("expected cache-busting query parameter")
		}
		if r.Header.Get("Cache-Control") != "no-cache" {
			t.Errorf("unexpected Cache-Control: %q", r.Header.Get("Cache-Control"))
		}
		w.Write([]byte("binary-bytes"))
	}))
	defer srv.Close()

	client := testClient(t, srv, testSession(t))

	body, err := client.DownloadFile(context.Background(), "f1")
	if err != nil {
		t.Fatalf("DownloadFile returned error: %v", err)
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(data) != "binary-bytes" {
		t.Fatalf("unexpected payload: %q", data)
	}
}

func TestFilesBuildsPaginationQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("per_page") != "25" || q.Get("status") != "completed" {
			t.Errorf("unexpected query: %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"files":[],"total":0,"pages":0,"current_page":2}`)
	}))
	defer srv.Close()

	client := testClient(t, srv, testSession(t))

	if _, err := client.Files(context.Background(), 2, 25, "completed"); err != nil {
		t.Fatalf("Files returned error: %v", err)
	}
}

func TestIsUnavailableDetectsConnectionErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before the call

	sess := testSession(t)
	client, err := api.New(srv.URL+"/api", sess)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Health(context.Background())
	if err == nil {
		t.Fatal("expected connection error")
	}
	if !api.IsUnavailable(err) {
		t.Fatalf("expected IsUnavailable for %v", err)
	}
}
