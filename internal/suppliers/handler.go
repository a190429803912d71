package suppliers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/festeja/backend/internal/middleware"
	"github.com/festeja/backend/internal/models"
	"github.com/festeja/backend/pkg/response"
	"github.com/festeja/backend/pkg/sanitize"
)

// FormProvisioner creates the default contact form when a supplier profile
// is created. Implemented by the contactforms repository.
type FormProvisioner interface {
	ProvisionDefault(ctx context.Context, supplierID uuid.UUID) error
}

// Handler handles supplier HTTP endpoints.
type Handler struct {
	repo   *Repository
	forms  FormProvisioner
	logger *zap.Logger
}

// NewHandler creates a suppliers handler.
func NewHandler(repo *Repository, forms FormProvisioner, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, forms: forms, logger: logger}
}

// SupplierRequest is the body for create/update.
type SupplierRequest struct {
	Type         string  `json:"supplier_type" binding:"required,oneof=individual company"`
	FantasyName  string  `json:"fantasy_name" binding:"required"`
	LegalName    *string `json:"legal_name"`
	CNPJ         *string `json:"cnpj"`
	Description  string  `json:"description"`
	CategoryID   *string `json:"category_id"`
	Address      *string `json:"address"`
	ZipCode      *string `json:"zip_code"`
	City         string  `json:"city" binding:"required"`
	State        string  `json:"state" binding:"required"`
	PriceRange   *string `json:"price_range"`
	Phone        string  `json:"phone" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	InstagramURL *string `json:"instagram_url"`
	WhatsappURL  *string `json:"whatsapp_url"`
	SiteURL      *string `json:"site_url"`
}

func (req *SupplierRequest) apply(s *models.Supplier) error {
	s.Type = models.SupplierType(req.Type)
	s.FantasyName = sanitize.Text(req.FantasyName)
	s.LegalName = req.LegalName
	s.CNPJ = req.CNPJ
	s.Description = sanitize.Text(req.Description)
	s.Address = req.Address
	s.ZipCode = req.ZipCode
	s.City = req.City
	s.State = req.State
	s.PriceRange = req.PriceRange
	s.Phone = req.Phone
	s.Email = req.Email
	s.InstagramURL = req.InstagramURL
	s.WhatsappURL = req.WhatsappURL
	s.SiteURL = req.SiteURL
	if req.CategoryID != nil && *req.CategoryID != "" {
		catID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return err
		}
		s.CategoryID = &catID
	} else {
		s.CategoryID = nil
	}
	return nil
}

// Create handles POST /suppliers. One profile per user; the default contact
// form is provisioned alongside so inquiries work from day one.
func (h *Handler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.Type == string(models.SupplierCompany) && (req.CNPJ == nil || *req.CNPJ == "") {
		response.BadRequest(c, "cnpj is required for company suppliers")
		return
	}

	if _, err := h.repo.GetByUserID(c.Request.Context(), userID); err == nil {
		response.Conflict(c, "supplier profile already exists")
		return
	}

	s := &models.Supplier{UserID: userID, Status: models.SupplierActive}
	if err := req.apply(s); err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}
	if err := h.repo.Create(c.Request.Context(), s); err != nil {
		h.logger.Error("create supplier", zap.Error(err))
		response.Internal(c, "failed to create supplier")
		return
	}

	if err := h.forms.ProvisionDefault(c.Request.Context(), s.ID); err != nil {
		h.logger.Error("provision default contact form",
			zap.String("supplier_id", s.ID.String()), zap.Error(err))
	}

	response.Created(c, s)
}

// List handles GET /suppliers with filtering and pagination.
func (h *Handler) List(c *gin.Context) {
	f := ListFilter{
		City:       c.Query("city"),
		State:      c.Query("state"),
		PriceRange: c.Query("price_range"),
		Search:     c.Query("search"),
		OrderBy:    c.Query("order_by"),
		Page:       parseIntDefault(c.Query("page"), 1),
		PageSize:   parseIntDefault(c.Query("page_size"), 20),
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = 20
	}
	if raw := c.Query("category_id"); raw != "" {
		catID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid category id")
			return
		}
		f.CategoryID = &catID
	}

	list, total, err := h.repo.List(c.Request.Context(), f)
	if err != nil {
		h.logger.Error("list suppliers", zap.Error(err))
		response.Internal(c, "failed to list suppliers")
		return
	}
	response.OKPage(c, list, total, f.Page, f.PageSize)
}

// Random handles GET /suppliers/random for homepage discovery.
func (h *Handler) Random(c *gin.Context) {
	n := parseIntDefault(c.Query("count"), 8)
	if n < 1 || n > 50 {
		n = 8
	}
	list, err := h.repo.Random(c.Request.Context(), n)
	if err != nil {
		response.Internal(c, "failed to list suppliers")
		return
	}
	response.OK(c, list)
}

// Get handles GET /suppliers/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid supplier id")
		return
	}
	s, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "supplier not found")
		return
	}
	response.OK(c, s)
}

// Mine handles GET /suppliers/me for the owning user.
func (h *Handler) Mine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	s, err := h.repo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		response.NotFound(c, "supplier profile not found")
		return
	}
	response.OK(c, s)
}

// Update handles PUT /suppliers/:id. Owner or admin.
func (h *Handler) Update(c *gin.Context) {
	s, ok := h.authorize(c)
	if !ok {
		return
	}
	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := req.apply(s); err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}
	if err := h.repo.Update(c.Request.Context(), s); err != nil {
		h.logger.Error("update supplier", zap.String("id", s.ID.String()), zap.Error(err))
		response.Internal(c, "failed to update supplier")
		return
	}
	response.OK(c, s)
}

// SetStatus handles PATCH /suppliers/:id/status (admin only).
func (h *Handler) SetStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid supplier id")
		return
	}
	var req struct {
		Status string `json:"status" binding:"required,oneof=active pending blocked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := h.repo.SetStatus(c.Request.Context(), id, models.SupplierStatus(req.Status)); err != nil {
		response.NotFound(c, "supplier not found")
		return
	}
	response.NoContent(c)
}

// Delete handles DELETE /suppliers/:id. Owner or admin.
func (h *Handler) Delete(c *gin.Context) {
	s, ok := h.authorize(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), s.ID); err != nil {
		h.logger.Error("delete supplier", zap.String("id", s.ID.String()), zap.Error(err))
		response.Internal(c, "failed to delete supplier")
		return
	}
	response.NoContent(c)
}

// GetCompleteness handles GET /suppliers/:id/completeness. Owner or admin.
func (h *Handler) GetCompleteness(c *gin.Context) {
	s, ok := h.authorize(c)
	if !ok {
		return
	}
	response.OK(c, Completeness(s))
}

// authorize loads the supplier from the :id param and verifies the caller
// owns it or is an admin.
func (h *Handler) authorize(c *gin.Context) (*models.Supplier, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid supplier id")
		return nil, false
	}
	s, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "supplier not found")
		return nil, false
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	role := c.GetString(middleware.ContextUserRole)
	if s.UserID != userID && role != string(models.RoleAdmin) {
		response.Forbidden(c, "not the profile owner")
		return nil, false
	}
	return s, true
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
