package documents

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docuserve/internal/pkg/response"
)

// Handler handles HTTP requests for the document catalog. The caller may
// identify itself with the X-User-ID header; anything else about identity
// is out of scope.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.Upload)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.DELETE("/:id", h.Delete)
	rg.GET("/:id/view", h.View)
}

// Upload godoc
// @Summary Upload a document
// @Description Upload a text file. Re-uploading a name that differs only in case overwrites the existing document.
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Param X-User-ID header string false "Caller identity label"
// @Success 201 {object} map[string]interface{}
// @Failure 400,500 {object} map[string]interface{}
// @Router /documents/upload [post]
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "no file provided")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "unable to read file")
		return
	}

	doc, err := h.service.Upload(
		c.Request.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
		c.GetHeader("X-User-ID"),
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyFilename):
			response.Error(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		default:
			log.Printf("upload failed: filename=%q error=%v", fileHeader.Filename, err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to process upload")
		}
		return
	}

	response.Success(c, http.StatusCreated, toResponse(doc))
}

// List godoc
// @Summary List all documents
// @Description Returns every document ordered by id descending.
// @Tags Documents
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /documents [get]
func (h *Handler) List(c *gin.Context) {
	docs, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Printf("list documents failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to list documents")
		return
	}
	response.Success(c, http.StatusOK, toResponseList(docs))
}

// Get godoc
// @Summary Get document metadata by ID
// @Tags Documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /documents/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	doc, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Document not found")
			return
		}
		log.Printf("get document %d failed: %v", id, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to get document")
		return
	}
	response.Success(c, http.StatusOK, toResponse(doc))
}

// Delete godoc
// @Summary Delete a document (record + file)
// @Tags Documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404,500 {object} map[string]interface{}
// @Router /documents/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	doc, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Document not found")
			return
		}
		log.Printf("delete document %d failed: %v", id, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to delete document")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Document \"" + doc.Name + "\" has been permanently deleted.",
	})
}

// View godoc
// @Summary View document content
// @Description Returns the raw text content read fresh from disk, served as plain text.
// @Tags Documents
// @Produce plain
// @Param id path int true "Document ID"
// @Success 200 {string} string
// @Failure 404,500 {object} map[string]interface{}
// @Router /documents/{id}/view [get]
func (h *Handler) View(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	content, err := h.service.View(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrDocumentNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Document not found")
		case errors.Is(err, ErrFileMissing):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "File not found on disk")
		default:
			log.Printf("view document %d failed: %v", id, err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to read document")
		}
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid document ID")
		return 0, false
	}
	return id, true
}
