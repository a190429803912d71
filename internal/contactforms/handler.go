package contactforms

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/festeja/backend/internal/forms"
	"github.com/festeja/backend/internal/middleware"
	"github.com/festeja/backend/internal/models"
	"github.com/festeja/backend/internal/suppliers"
	"github.com/festeja/backend/pkg/queue"
	"github.com/festeja/backend/pkg/response"
	"github.com/festeja/backend/pkg/sanitize"
)

// Notifier pushes realtime events to a supplier's dashboard. Implemented by
// the realtime hub; a nil Notifier disables pushes.
type Notifier interface {
	SubmissionReceived(supplierID uuid.UUID, submission *models.Submission)
}

// Handler handles contact form HTTP endpoints.
type Handler struct {
	repo      *Repository
	suppliers *suppliers.Repository
	queue     *queue.Queue
	notifier  Notifier
	logger    *zap.Logger
}

// NewHandler creates a contactforms handler. queue and notifier may be nil.
func NewHandler(repo *Repository, supplierRepo *suppliers.Repository, q *queue.Queue, notifier Notifier, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, suppliers: supplierRepo, queue: q, notifier: notifier, logger: logger}
}

// DefaultTemplate handles GET /contact-forms/default-template.
func (h *Handler) DefaultTemplate(c *gin.Context) {
	response.OK(c, forms.DefaultTemplate())
}

// FormRequest is the body for create/update.
type FormRequest struct {
	Questions []forms.QuestionDefinition `json:"questions"`
	Active    *bool                      `json:"active"`
}

// buildOrDefault turns a submitted question list into a schema, falling
// back to the standard questionnaire when the list is empty or omitted.
func buildOrDefault(questions []forms.QuestionDefinition) (forms.Schema, error) {
	if len(questions) == 0 {
		return forms.DefaultTemplate(), nil
	}
	return forms.Build(questions)
}

// Create handles POST /suppliers/:id/contact-form. Owner only; fails if a
// form already exists. An empty or omitted question list creates the form
// with the standard questionnaire.
func (h *Handler) Create(c *gin.Context) {
	supplier, ok := h.authorize(c)
	if !ok {
		return
	}
	var req FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	schema, err := buildOrDefault(req.Questions)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if _, err := h.repo.GetBySupplier(c.Request.Context(), supplier.ID); err == nil {
		response.Conflict(c, "contact form already exists")
		return
	}
	form, err := h.repo.Create(c.Request.Context(), supplier.ID, schema)
	if err != nil {
		h.logger.Error("create contact form", zap.String("supplier_id", supplier.ID.String()), zap.Error(err))
		response.Internal(c, "failed to create contact form")
		return
	}
	response.Created(c, form)
}

// Get handles GET /suppliers/:id/contact-form. Public when active; the
// owner and admins also see an inactive form.
func (h *Handler) Get(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid supplier id")
		return
	}
	form, err := h.repo.GetBySupplier(c.Request.Context(), supplierID)
	if err != nil {
		if errors.Is(err, forms.ErrCorruptSchema) {
			h.logger.Error("load contact form", zap.String("supplier_id", supplierID.String()), zap.Error(err))
			response.Internal(c, "failed to load contact form")
			return
		}
		response.NotFound(c, "contact form not found")
		return
	}
	if !form.Active && !h.isOwnerOrAdmin(c, supplierID) {
		response.NotFound(c, "contact form not found")
		return
	}
	response.OK(c, form)
}

// Update handles PUT /suppliers/:id/contact-form. Owner only. Replacing the
// questions never touches stored submissions.
func (h *Handler) Update(c *gin.Context) {
	supplier, ok := h.authorize(c)
	if !ok {
		return
	}
	var req FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if len(req.Questions) == 0 {
		response.BadRequest(c, "at least one question is required")
		return
	}
	schema, err := forms.Build(req.Questions)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	form, err := h.repo.GetBySupplier(c.Request.Context(), supplier.ID)
	if err != nil {
		response.NotFound(c, "contact form not found")
		return
	}
	updated, err := h.repo.UpdateQuestions(c.Request.Context(), form.ID, schema)
	if err != nil {
		response.Internal(c, "failed to update contact form")
		return
	}
	if req.Active != nil && *req.Active != updated.Active {
		if err := h.repo.SetActive(c.Request.Context(), updated.ID, *req.Active); err != nil {
			response.Internal(c, "failed to update contact form")
			return
		}
		updated.Active = *req.Active
	}
	response.OK(c, updated)
}

// Delete handles DELETE /suppliers/:id/contact-form. Owner only; the
// form's submissions go with it.
func (h *Handler) Delete(c *gin.Context) {
	supplier, ok := h.authorize(c)
	if !ok {
		return
	}
	form, err := h.repo.GetBySupplier(c.Request.Context(), supplier.ID)
	if err != nil {
		response.NotFound(c, "contact form not found")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), form.ID); err != nil {
		response.Internal(c, "failed to delete contact form")
		return
	}
	response.NoContent(c)
}

// ResetToDefault handles POST /suppliers/:id/contact-form/reset. Owner
// only; restores the standard questionnaire, creating the form if needed.
func (h *Handler) ResetToDefault(c *gin.Context) {
	supplier, ok := h.authorize(c)
	if !ok {
		return
	}
	template := forms.DefaultTemplate()
	form, err := h.repo.GetBySupplier(c.Request.Context(), supplier.ID)
	if err != nil {
		created, err := h.repo.Create(c.Request.Context(), supplier.ID, template)
		if err != nil {
			response.Internal(c, "failed to reset contact form")
			return
		}
		response.OK(c, created)
		return
	}
	updated, err := h.repo.UpdateQuestions(c.Request.Context(), form.ID, template)
	if err != nil {
		response.Internal(c, "failed to reset contact form")
		return
	}
	response.OK(c, updated)
}

// SubmitRequest is the body for a public form submission. Answers are keyed
// by question position ("0", "1", ...) or by the question prompt. The
// submitter fields are optional; when absent the contact details are derived
// from the answers.
type SubmitRequest struct {
	Answers        map[string]any `json:"answers" binding:"required"`
	SubmitterName  *string        `json:"submitter_name"`
	SubmitterEmail *string        `json:"submitter_email"`
	SubmitterPhone *string        `json:"submitter_phone"`
}

// Submit handles POST /suppliers/:id/contact-form/submit (public, rate
// limited at the route). Answers are validated against the current schema,
// sanitized and stored; the supplier is notified out of band.
func (h *Handler) Submit(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid supplier id")
		return
	}
	form, err := h.repo.GetBySupplier(c.Request.Context(), supplierID)
	if err != nil || !form.Active {
		response.NotFound(c, "contact form not found")
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := forms.ValidateSubmission(form.Questions, req.Answers); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	clean := sanitize.Answers(req.Answers)
	sub := &models.Submission{
		ContactFormID: form.ID,
		Answers:       clean,
	}
	sub.SubmitterName, sub.SubmitterEmail, sub.SubmitterPhone = contactInfo(&req, form.Questions, clean)

	if err := h.repo.CreateSubmission(c.Request.Context(), sub); err != nil {
		h.logger.Error("store submission", zap.String("form_id", form.ID.String()), zap.Error(err))
		response.Internal(c, "failed to store submission")
		return
	}

	if h.queue != nil {
		payload := queue.SubmissionEmailPayload{
			SubmissionID:  sub.ID,
			ContactFormID: form.ID,
			SupplierID:    supplierID,
		}
		if err := h.queue.EnqueueSubmissionEmail(c.Request.Context(), payload); err != nil {
			h.logger.Warn("enqueue submission email", zap.Error(err))
		}
	}
	if h.notifier != nil {
		h.notifier.SubmissionReceived(supplierID, sub)
	}

	response.Created(c, sub)
}

// ListSubmissions handles GET /suppliers/:id/contact-form/submissions.
// Owner only.
func (h *Handler) ListSubmissions(c *gin.Context) {
	supplier, ok := h.authorize(c)
	if !ok {
		return
	}
	form, err := h.repo.GetBySupplier(c.Request.Context(), supplier.ID)
	if err != nil {
		response.NotFound(c, "contact form not found")
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
	list, total, unread, err := h.repo.ListSubmissions(c.Request.Context(), form.ID, page, pageSize)
	if err != nil {
		h.logger.Error("list submissions", zap.String("form_id", form.ID.String()), zap.Error(err))
		response.Internal(c, "failed to list submissions")
		return
	}
	response.OKPageUnread(c, list, total, page, pageSize, unread)
}

// MarkRead handles PATCH /submissions/:id/read. Owner only.
func (h *Handler) MarkRead(c *gin.Context) {
	subID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid submission id")
		return
	}
	sub, err := h.repo.GetSubmission(c.Request.Context(), subID)
	if err != nil {
		response.NotFound(c, "submission not found")
		return
	}
	form, err := h.repo.GetByID(c.Request.Context(), sub.ContactFormID)
	if err != nil {
		response.NotFound(c, "contact form not found")
		return
	}
	if !h.isOwnerOrAdmin(c, form.SupplierID) {
		response.Forbidden(c, "not the form owner")
		return
	}
	if err := h.repo.MarkSubmissionRead(c.Request.Context(), subID); err != nil {
		response.Internal(c, "failed to mark submission read")
		return
	}
	response.NoContent(c)
}

// contactInfo resolves the respondent's contact details. Explicit body
// fields win; anything left blank or out is derived from the answers.
func contactInfo(req *SubmitRequest, schema forms.Schema, answers map[string]any) (name, email, phone *string) {
	name, email, phone = extractContact(schema, answers)
	if v := cleanContactField(req.SubmitterName); v != nil {
		name = v
	}
	if v := cleanContactField(req.SubmitterEmail); v != nil {
		email = v
	}
	if v := cleanContactField(req.SubmitterPhone); v != nil {
		phone = v
	}
	return name, email, phone
}

func cleanContactField(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(sanitize.Text(*v))
	if s == "" {
		return nil
	}
	return &s
}

// extractContact pulls the respondent's name, email and phone out of the
// answers using the schema: the first required text question, the first
// email question and the first phone question.
func extractContact(schema forms.Schema, answers map[string]any) (name, email, phone *string) {
	pick := func(i int, q forms.QuestionDefinition) *string {
		v, ok := answers[strconv.Itoa(i)]
		if !ok {
			v, ok = answers[q.Prompt]
		}
		if !ok {
			return nil
		}
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil
		}
		return &s
	}
	for i, q := range schema {
		switch {
		case name == nil && q.Kind == forms.KindText && q.Required:
			name = pick(i, q)
		case email == nil && q.Kind == forms.KindEmail:
			email = pick(i, q)
		case phone == nil && q.Kind == forms.KindPhone:
			phone = pick(i, q)
		}
	}
	return name, email, phone
}

// isOwnerOrAdmin reports whether the request is authenticated as the
// supplier's owner or an admin. Unauthenticated requests are never owners.
func (h *Handler) isOwnerOrAdmin(c *gin.Context, supplierID uuid.UUID) bool {
	idVal, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return false
	}
	userID, ok := idVal.(uuid.UUID)
	if !ok {
		return false
	}
	if c.GetString(middleware.ContextUserRole) == string(models.RoleAdmin) {
		return true
	}
	supplier, err := h.suppliers.GetByID(c.Request.Context(), supplierID)
	if err != nil {
		return false
	}
	return supplier.UserID == userID
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
