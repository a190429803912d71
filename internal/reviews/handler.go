package reviews

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/festeja/backend/internal/middleware"
	"github.com/festeja/backend/internal/models"
	"github.com/festeja/backend/pkg/response"
	"github.com/festeja/backend/pkg/sanitize"
)

// EditWindow is how long the author may edit a review after posting it.
const EditWindow = 24 * time.Hour

// CanEdit reports whether a review created at createdAt is still editable
// at now.
func CanEdit(createdAt, now time.Time) bool {
	return now.Sub(createdAt) <= EditWindow
}

// Handler handles review HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a reviews handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// ReviewRequest is the body for create/update.
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// Create handles POST /suppliers/:id/reviews (authenticated).
func (h *Handler) Create(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid supplier id")
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	rev := &models.Review{
		UserID:     c.MustGet(middleware.ContextUserID).(uuid.UUID),
		SupplierID: supplierID,
		Rating:     req.Rating,
		Comment:    sanitize.Text(req.Comment),
	}
	if err := h.repo.Create(c.Request.Context(), rev); err != nil {
		response.Conflict(c, "you have already reviewed this supplier")
		return
	}
	response.Created(c, rev)
}

// ListForSupplier handles GET /suppliers/:id/reviews (public, approved only).
func (h *Handler) ListForSupplier(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid supplier id")
		return
	}
	page := parseIntDefault(c.Query("page"), 1)
	pageSize := parseIntDefault(c.Query("page_size"), 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	list, total, err := h.repo.ListApproved(c.Request.Context(), supplierID, page, pageSize)
	if err != nil {
		response.Internal(c, "failed to list reviews")
		return
	}
	response.OKPage(c, list, total, page, pageSize)
}

// ListPending handles GET /admin/reviews/pending (admin only).
func (h *Handler) ListPending(c *gin.Context) {
	list, err := h.repo.ListPending(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list pending reviews")
		return
	}
	response.OK(c, list)
}

// Update handles PUT /reviews/:id. Authors only, within the edit window;
// edits reset the review to pending.
func (h *Handler) Update(c *gin.Context) {
	rev, ok := h.loadOwned(c)
	if !ok {
		return
	}
	if !CanEdit(rev.CreatedAt, time.Now()) {
		response.Forbidden(c, "review can no longer be edited")
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := h.repo.UpdateContent(c.Request.Context(), rev.ID, req.Rating, sanitize.Text(req.Comment)); err != nil {
		response.Internal(c, "failed to update review")
		return
	}
	response.NoContent(c)
}

// Moderate handles PATCH /admin/reviews/:id (admin only).
func (h *Handler) Moderate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid review id")
		return
	}
	var req struct {
		Status string `json:"status" binding:"required,oneof=approved rejected"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := h.repo.SetStatus(c.Request.Context(), id, models.ReviewStatus(req.Status)); err != nil {
		h.logger.Error("moderate review", zap.String("id", id.String()), zap.Error(err))
		response.Internal(c, "failed to moderate review")
		return
	}
	response.NoContent(c)
}

// Delete handles DELETE /reviews/:id. Author or admin.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid review id")
		return
	}
	rev, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "review not found")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	if rev.UserID != userID && c.GetString(middleware.ContextUserRole) != string(models.RoleAdmin) {
		response.Forbidden(c, "not the review author")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		response.Internal(c, "failed to delete review")
		return
	}
	response.NoContent(c)
}

func (h *Handler) loadOwned(c *gin.Context) (*models.Review, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid review id")
		return nil, false
	}
	rev, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "review not found")
		return nil, false
	}
	if rev.UserID != c.MustGet(middleware.ContextUserID).(uuid.UUID) {
		response.Forbidden(c, "not the review author")
		return nil, false
	}
	return rev, true
}

func parseIntDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
