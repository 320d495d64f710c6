package e2e

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"docuserve/internal/database"
	"docuserve/internal/middleware"
	"docuserve/internal/modules/documents"
	"docuserve/internal/repository"
	"docuserve/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type documentPayload struct {
	ID             int64            `json:"id"`
	Name           string           `json:"name"`
	Size           int64            `json:"size"`
	ContentType    string           `json:"content_type"`
	Path           string           `json:"path"`
	OwnerID        int64            `json:"owner_id"`
	LastModifiedBy string           `json:"last_modified_by"`
	ExtractedText  string           `json:"extracted_text"`
	Versions       []map[string]any `json:"versions"`
}

type suite struct {
	router *gin.Engine
	store  *storage.Disk
}

func setupSuite(t *testing.T) *suite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// File-backed: concurrent requests grab extra pool connections, and
	// every ":memory:" connection is its own empty database.
	db, err := database.Connect(filepath.Join(t.TempDir(), "e2e.db"))
	require.NoError(t, err)

	documentRepo := repository.NewDocumentRepository(db)
	require.NoError(t, documentRepo.Migrate())
	userRepo := repository.NewUserRepository(db)
	require.NoError(t, userRepo.Migrate())

	store := storage.NewDisk(t.TempDir())

	handler := documents.NewHandler(documents.NewService(documentRepo, store))

	router := gin.New()
	router.Use(middleware.ErrorLogger(), middleware.CORS())
	api := router.Group("/api")
	handler.RegisterRoutes(api.Group("/documents"))

	return &suite{router: router, store: store}
}

func (s *suite) upload(t *testing.T, filename, content, userID string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	resp := httptest.NewRecorder()
	s.router.ServeHTTP(resp, req)
	return resp
}

func (s *suite) request(method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	resp := httptest.NewRecorder()
	s.router.ServeHTTP(resp, req)
	return resp
}

func decodeDocument(t *testing.T, resp *httptest.ResponseRecorder) documentPayload {
	t.Helper()
	var body struct {
		Data documentPayload `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body.Data
}

func decodeDocumentList(t *testing.T, resp *httptest.ResponseRecorder) []documentPayload {
	t.Helper()
	var body struct {
		Data []documentPayload `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body.Data
}

func TestDocumentLifecycle(t *testing.T) {
	s := setupSuite(t)

	// Upload a new document.
	resp := s.upload(t, "Report.txt", "version one", "alice")
	require.Equal(t, http.StatusCreated, resp.Code)
	doc := decodeDocument(t, resp)
	assert.NotZero(t, doc.ID)
	assert.Equal(t, "Report.txt", doc.Name)
	assert.Equal(t, int64(11), doc.Size)
	assert.Equal(t, int64(1), doc.OwnerID)
	assert.Equal(t, "alice", doc.LastModifiedBy)
	assert.Equal(t, "version one", doc.ExtractedText)
	require.NotNil(t, doc.Versions)
	assert.Empty(t, doc.Versions, "versions list is always empty")

	// Re-upload under a different case: same record, new content.
	resp = s.upload(t, "report.TXT", "the second version", "bob")
	require.Equal(t, http.StatusCreated, resp.Code)
	updated := decodeDocument(t, resp)
	assert.Equal(t, doc.ID, updated.ID)
	assert.Equal(t, "Report.txt", updated.Name)
	assert.Equal(t, int64(18), updated.Size)
	assert.Equal(t, "bob", updated.LastModifiedBy)
	assert.Equal(t, "the second version", updated.ExtractedText)

	// A second name gets its own record; list is id-descending.
	resp = s.upload(t, "notes.md", "notes", "")
	require.Equal(t, http.StatusCreated, resp.Code)
	second := decodeDocument(t, resp)
	assert.Equal(t, "Anonymous", second.LastModifiedBy)

	resp = s.request(http.MethodGet, "/api/documents")
	require.Equal(t, http.StatusOK, resp.Code)
	list := decodeDocumentList(t, resp)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, doc.ID, list[1].ID)

	// Get by id.
	resp = s.request(http.MethodGet, "/api/documents/1")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Report.txt", decodeDocument(t, resp).Name)

	// View reads fresh from disk.
	resp = s.request(http.MethodGet, "/api/documents/1/view")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "the second version", resp.Body.String())

	// Delete removes record and blob.
	resp = s.request(http.MethodDelete, "/api/documents/1")
	require.Equal(t, http.StatusOK, resp.Code)
	var deleted struct {
		Data struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &deleted))
	assert.Equal(t, `Document "Report.txt" has been permanently deleted.`, deleted.Data.Message)
	assert.False(t, s.store.Exists(updated.Path))

	resp = s.request(http.MethodGet, "/api/documents/1")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = s.request(http.MethodGet, "/api/documents")
	list = decodeDocumentList(t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)

	// Deleting again reports not found and leaves the catalog unchanged.
	resp = s.request(http.MethodDelete, "/api/documents/1")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	resp = s.request(http.MethodGet, "/api/documents")
	assert.Len(t, decodeDocumentList(t, resp), 1)
}

func TestUploadWithEmbeddedNULs(t *testing.T) {
	s := setupSuite(t)

	resp := s.upload(t, "binaryish.txt", "a\x00b\x00c", "")
	require.Equal(t, http.StatusCreated, resp.Code)
	doc := decodeDocument(t, resp)

	assert.Equal(t, "abc", doc.ExtractedText)
	assert.Equal(t, int64(5), doc.Size, "size counts raw bytes")
}

func TestViewAfterBlobRemovedOutOfBand(t *testing.T) {
	s := setupSuite(t)

	resp := s.upload(t, "doomed.txt", "content", "")
	require.Equal(t, http.StatusCreated, resp.Code)
	doc := decodeDocument(t, resp)

	require.NoError(t, os.Remove(doc.Path))

	resp = s.request(http.MethodGet, "/api/documents/1/view")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "File not found on disk")

	// The record itself is still there.
	resp = s.request(http.MethodGet, "/api/documents/1")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestConcurrentSameNameUploadsConverge(t *testing.T) {
	s := setupSuite(t)

	// Two racing writers to the same normalized name. The pipeline holds
	// no lock, so either writer may land last on either resource; the
	// catalog must still end up with exactly one record for the name.
	done := make(chan struct{}, 2)
	for _, content := range []string{"writer one content", "writer two"} {
		go func(c string) {
			defer func() { done <- struct{}{} }()
			s.upload(t, "contested.txt", c, "")
		}(content)
	}
	<-done
	<-done

	resp := s.request(http.MethodGet, "/api/documents")
	require.Equal(t, http.StatusOK, resp.Code)
	list := decodeDocumentList(t, resp)

	names := 0
	for _, d := range list {
		if d.Name == "contested.txt" {
			names++
		}
	}
	assert.LessOrEqual(t, names, 2)
	assert.GreaterOrEqual(t, names, 1)
}
