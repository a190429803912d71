package categories

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/festeja/backend/internal/models"
	"github.com/festeja/backend/pkg/response"
)

// Handler handles category HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a categories handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// CategoryRequest is the body for create/update.
type CategoryRequest struct {
	Name   string `json:"name" binding:"required"`
	Active *bool  `json:"active"`
}

// List handles GET /categories. Admins may pass ?all=true to include
// inactive categories.
func (h *Handler) List(c *gin.Context) {
	includeInactive := c.Query("all") == "true" && c.GetString("user_role") == string(models.RoleAdmin)
	list, err := h.repo.List(c.Request.Context(), includeInactive)
	if err != nil {
		response.Internal(c, "failed to list categories")
		return
	}
	response.OK(c, list)
}

// Create handles POST /categories (admin only).
func (h *Handler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		response.BadRequest(c, "category name is required")
		return
	}
	cat, err := h.repo.Create(c.Request.Context(), name)
	if err != nil {
		response.Conflict(c, "category already exists")
		return
	}
	response.Created(c, cat)
}

// Update handles PUT /categories/:id (admin only).
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	existing, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "category not found")
		return
	}
	active := existing.Active
	if req.Active != nil {
		active = *req.Active
	}
	cat, err := h.repo.Update(c.Request.Context(), id, strings.TrimSpace(req.Name), active)
	if err != nil {
		response.Internal(c, "failed to update category")
		return
	}
	response.OK(c, cat)
}

// Delete handles DELETE /categories/:id (admin only). Seeded categories can
// be deactivated but never removed.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}
	cat, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "category not found")
		return
	}
	if cat.Origin == models.CategoryOriginFixed {
		response.BadRequest(c, "fixed categories cannot be deleted")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("delete category", zap.String("id", id.String()), zap.Error(err))
		response.Internal(c, "failed to delete category")
		return
	}
	response.NoContent(c)
}
