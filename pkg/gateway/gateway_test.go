package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Innovation-Code-SN/companysphere-go/pkg/models"
)

func testClient(handler http.Handler) (*Client, *httptest.Server) {
	ts := httptest.NewServer(handler)
	c := New(Config{BaseURL: ts.URL, AuthToken: "test-token"})
	return c, ts
}

func envelope(w http.ResponseWriter, status int, success bool, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"data":    data,
		"message": message,
	})
}

func TestListFolders_Success(t *testing.T) {
	var gotAuth, gotPath string
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		envelope(w, http.StatusOK, true, []map[string]any{
			{"id": 1, "nom": "hr", "visibilite": "PUBLIC", "documents": []map[string]any{
				{"id": 10, "nom": "handbook.pdf", "typeMime": "application/pdf", "taille": 1234},
			}},
			{"id": 2, "nom": "archive", "visibilite": "RESPONSABLES"},
		}, "")
	}))
	defer ts.Close()

	folders, err := c.ListFolders(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/api/dossiers" {
		t.Errorf("path = %q, want /api/dossiers", gotPath)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if len(folders) != 2 {
		t.Fatalf("got %d folders, want 2", len(folders))
	}
	if folders[0].Name != "hr" || folders[0].Visibility != models.VisibilityPublic {
		t.Errorf("folder[0] = %+v", folders[0])
	}
	if len(folders[0].Documents) != 1 || folders[0].Documents[0].ContentType != "application/pdf" {
		t.Errorf("documents = %+v", folders[0].Documents)
	}
}

func TestEnvelope_BackendMessageSurfaced(t *testing.T) {
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, false, nil, "accès refusé au dossier")
	}))
	defer ts.Close()

	_, err := c.ListFolders(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	be, ok := AsBackend(err)
	if !ok {
		t.Fatalf("expected BackendError, got %T: %v", err, err)
	}
	if be.Message != "accès refusé au dossier" {
		t.Errorf("message = %q", be.Message)
	}
	if UserMessage(err) != "accès refusé au dossier" {
		t.Errorf("UserMessage = %q", UserMessage(err))
	}
}

func TestEnvelope_GenericMessageWhenBackendSilent(t *testing.T) {
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := c.ListDocuments(context.Background())
	be, ok := AsBackend(err)
	if !ok {
		t.Fatalf("expected BackendError, got %T: %v", err, err)
	}
	if be.Status != http.StatusInternalServerError {
		t.Errorf("status = %d", be.Status)
	}
	if be.Message != genericFailure {
		t.Errorf("message = %q, want generic", be.Message)
	}
}

func TestGetFolder_NotFound(t *testing.T) {
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusNotFound, false, nil, "dossier introuvable")
	}))
	defer ts.Close()

	_, err := c.GetFolder(context.Background(), 42)
	nf, ok := AsNotFound(err)
	if !ok {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if nf.Resource != "folder" || nf.ID != 42 {
		t.Errorf("NotFoundError = %+v", nf)
	}
}

func TestNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close() // nothing listens anymore

	c := New(Config{BaseURL: url})
	_, err := c.ListFolders(context.Background())
	if _, ok := AsNetwork(err); !ok {
		t.Fatalf("expected NetworkError, got %T: %v", err, err)
	}
}

func TestDownloadDocument(t *testing.T) {
	payload := []byte("raw document bytes")
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/documents/7/download" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(payload)
	}))
	defer ts.Close()

	rc, size, err := c.DownloadDocument(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("payload mismatch: %q", data)
	}
	if size != int64(len(payload)) {
		t.Errorf("size = %d, want %d", size, len(payload))
	}
}

func TestDownloadDocument_NotFound(t *testing.T) {
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusNotFound, false, nil, "document introuvable")
	}))
	defer ts.Close()

	_, _, err := c.DownloadDocument(context.Background(), 99)
	nf, ok := AsNotFound(err)
	if !ok {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if nf.Resource != "document" || nf.ID != 99 {
		t.Errorf("NotFoundError = %+v", nf)
	}
}

func TestGetGroup_DetailProjection(t *testing.T) {
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, true, map[string]any{
			"id": 3, "nom": "IT", "description": "infrastructure",
			"responsable": "Awa",
			"membres": []map[string]any{
				{"id": 1, "nomComplet": "Awa Diop", "email": "awa@example.sn"},
				{"id": 2, "nomComplet": "Moussa Fall", "email": "moussa@example.sn"},
			},
		}, "")
	}))
	defer ts.Close()

	detail, err := c.GetGroup(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(detail.Members) != 2 {
		t.Fatalf("members = %d, want 2", len(detail.Members))
	}
	// Member count derived from the member list when the backend
	// sends the detail shape without nombreMembres.
	if detail.MemberCount != 2 {
		t.Errorf("MemberCount = %d, want 2", detail.MemberCount)
	}
}

func TestListGroups_SummaryProjection(t *testing.T) {
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, true, []map[string]any{
			{"id": 3, "nom": "IT", "responsable": "Awa", "nombreMembres": 5},
		}, "")
	}))
	defer ts.Close()

	groups, err := c.ListGroups(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	if groups[0].MemberCount != 5 || groups[0].Manager != "Awa" {
		t.Errorf("summary = %+v", groups[0])
	}
}

func TestRespondToMeeting(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]string
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		envelope(w, http.StatusOK, true, nil, "")
	}))
	defer ts.Close()

	err := c.RespondToMeeting(context.Background(), 12, 34, models.ResponseAccepted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != "PUT" {
		t.Errorf("method = %s, want PUT", gotMethod)
	}
	want := "/api/reunions/12/participants/employe/34/reponse"
	if gotPath != want {
		t.Errorf("path = %q, want %q", gotPath, want)
	}
	if gotBody["reponse"] != string(models.ResponseAccepted) {
		t.Errorf("body = %v", gotBody)
	}
}

func TestMyMeetings(t *testing.T) {
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/reunions/mes-reunions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		envelope(w, http.StatusOK, true, []map[string]any{
			{"id": 1, "titre": "standup", "maReponse": "ACCEPTEE"},
		}, "")
	}))
	defer ts.Close()

	meetings, err := c.MyMeetings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(meetings) != 1 || meetings[0].MyResponse != models.ResponseAccepted {
		t.Errorf("meetings = %+v", meetings)
	}
}
