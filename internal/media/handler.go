package media

import (
	"fmt"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/festeja/backend/internal/middleware"
	"github.com/festeja/backend/internal/models"
	"github.com/festeja/backend/internal/suppliers"
	"github.com/festeja/backend/pkg/response"
	"github.com/festeja/backend/pkg/storage"
)

// Handler handles supplier media HTTP endpoints.
type Handler struct {
	repo      *Repository
	suppliers *suppliers.Repository
	s3        *storage.S3
	logger    *zap.Logger
}

// NewHandler creates a media handler. s3 may be nil when object storage is
// not configured; uploads are rejected then but URL-backed items still work.
func NewHandler(repo *Repository, supplierRepo *suppliers.Repository, s3 *storage.S3, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, suppliers: supplierRepo, s3: s3, logger: logger}
}

// Upload handles POST /suppliers/:id/media (multipart). Owner only; the
// file goes to S3 and the item counts against the per-type quota.
func (h *Handler) Upload(c *gin.Context) {
	supplier, ok := h.authorize(c)
	if !ok {
		return
	}
	if h.s3 == nil {
		response.ServiceUnavailable(c, "file storage is not configured")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file")
		return
	}
	if file.Size > storage.MaxMediaFileSize {
		response.BadRequest(c, "file exceeds the 25MB limit")
		return
	}
	mediaType := storage.MediaTypeForFilename(file.Filename)
	if mediaType == "" {
		response.BadRequest(c, "unsupported file type")
		return
	}

	if !h.checkQuota(c, supplier.ID, models.MediaType(mediaType)) {
		return
	}

	src, err := file.Open()
	if err != nil {
		response.Internal(c, "failed to read upload")
		return
	}
	defer src.Close()

	key := storage.MediaKey(supplier.ID.String(), uuid.NewString()+path.Ext(file.Filename))
	url, err := h.s3.Upload(c.Request.Context(), key, storage.ContentTypeForFilename(file.Filename), src, file.Size)
	if err != nil {
		h.logger.Error("upload media", zap.String("key", key), zap.Error(err))
		response.Internal(c, "failed to store file")
		return
	}

	m := &models.Media{
		SupplierID: supplier.ID,
		Type:       models.MediaType(mediaType),
		URL:        url,
		S3Key:      &key,
	}
	if err := h.repo.Create(c.Request.Context(), m); err != nil {
		response.Internal(c, "failed to save media item")
		return
	}
	response.Created(c, m)
}

// CreateByURLRequest is the body for link-backed media (hosted videos etc.).
type CreateByURLRequest struct {
	Type string `json:"type" binding:"required,oneof=image video document"`
	URL  string `json:"url" binding:"required,url"`
}

// CreateByURL handles POST /suppliers/:id/media/url. Owner only.
func (h *Handler) CreateByURL(c *gin.Context) {
	supplier, ok := h.authorize(c)
	if !ok {
		return
	}
	var req CreateByURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !h.checkQuota(c, supplier.ID, models.MediaType(req.Type)) {
		return
	}
	m := &models.Media{
		SupplierID: supplier.ID,
		Type:       models.MediaType(req.Type),
		URL:        req.URL,
	}
	if err := h.repo.Create(c.Request.Context(), m); err != nil {
		response.Internal(c, "failed to save media item")
		return
	}
	response.Created(c, m)
}

// List handles GET /suppliers/:id/media (public). ?type= filters.
func (h *Handler) List(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid supplier id")
		return
	}
	list, err := h.repo.ListForSupplier(c.Request.Context(), supplierID, c.Query("type"))
	if err != nil {
		response.Internal(c, "failed to list media")
		return
	}
	response.OK(c, list)
}

// Delete handles DELETE /media/:mediaID. Owner or admin; S3-backed objects
// are removed from the bucket first.
func (h *Handler) Delete(c *gin.Context) {
	mediaID, err := uuid.Parse(c.Param("mediaID"))
	if err != nil {
		response.BadRequest(c, "invalid media id")
		return
	}
	m, err := h.repo.GetByID(c.Request.Context(), mediaID)
	if err != nil {
		response.NotFound(c, "media item not found")
		return
	}

	supplier, err := h.suppliers.GetByID(c.Request.Context(), m.SupplierID)
	if err != nil {
		response.NotFound(c, "supplier not found")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	if supplier.UserID != userID && c.GetString(middleware.ContextUserRole) != string(models.RoleAdmin) {
		response.Forbidden(c, "not the profile owner")
		return
	}

	if m.S3Key != nil && h.s3 != nil {
		if err := h.s3.Delete(c.Request.Context(), *m.S3Key); err != nil {
			h.logger.Warn("delete media object", zap.String("key", *m.S3Key), zap.Error(err))
		}
	}
	if err := h.repo.Delete(c.Request.Context(), mediaID); err != nil {
		response.Internal(c, "failed to delete media item")
		return
	}
	response.NoContent(c)
}

// checkQuota enforces the per-type item cap; it writes the error response
// itself when the cap is hit.
func (h *Handler) checkQuota(c *gin.Context, supplierID uuid.UUID, mediaType models.MediaType) bool {
	limit, ok := models.MediaLimits[mediaType]
	if !ok {
		response.BadRequest(c, "unsupported media type")
		return false
	}
	count, err := h.repo.CountByType(c.Request.Context(), supplierID, mediaType)
	if err != nil {
		response.Internal(c, "failed to check media quota")
		return false
	}
	if count >= limit {
		response.BadRequest(c, fmt.Sprintf("limit of %d %s items reached", limit, mediaType))
		return false
	}
	return true
}

// authorize loads the supplier from :id and verifies ownership (or admin).
func (h *Handler) authorize(c *gin.Context) (*models.Supplier, bool) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid supplier id")
		return nil, false
	}
	supplier, err := h.suppliers.GetByID(c.Request.Context(), supplierID)
	if err != nil {
		response.NotFound(c, "supplier not found")
		return nil, false
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	if supplier.UserID != userID && c.GetString(middleware.ContextUserRole) != string(models.RoleAdmin) {
		response.Forbidden(c, "not the profile owner")
		return nil, false
	}
	return supplier, true
}
