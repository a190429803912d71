// Package worker runs background jobs dequeued from Redis.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/festeja/backend/config"
	"github.com/festeja/backend/internal/contactforms"
	"github.com/festeja/backend/internal/forms"
	"github.com/festeja/backend/internal/suppliers"
	"github.com/festeja/backend/pkg/queue"
)

// SubmissionProcessor handles submission notification jobs: it emails the
// supplier that a new contact-form inquiry arrived.
type SubmissionProcessor struct {
	forms     *contactforms.Repository
	suppliers *suppliers.Repository
	queue     *queue.Queue
	email     config.EmailConfig
	logger    *zap.Logger
}

// NewSubmissionProcessor creates a submission notification processor.
func NewSubmissionProcessor(formRepo *contactforms.Repository, supplierRepo *suppliers.Repository, q *queue.Queue, email config.EmailConfig, logger *zap.Logger) *SubmissionProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionProcessor{forms: formRepo, suppliers: supplierRepo, queue: q, email: email, logger: logger}
}

// Process executes one submission email job.
func (p *SubmissionProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeSubmissionEmail {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.SubmissionEmailPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	sub, err := p.forms.GetSubmission(ctx, payload.SubmissionID)
	if err != nil {
		return fmt.Errorf("submission not found: %s", payload.SubmissionID)
	}
	supplier, err := p.suppliers.GetByID(ctx, payload.SupplierID)
	if err != nil {
		return fmt.Errorf("supplier not found: %s", payload.SupplierID)
	}

	if p.email.SMTPHost == "" {
		p.logger.Info("smtp not configured, skipping email",
			zap.String("submission_id", sub.ID.String()),
			zap.String("supplier_id", supplier.ID.String()))
		return nil
	}

	form, err := p.forms.GetByID(ctx, payload.ContactFormID)
	if err != nil {
		return fmt.Errorf("contact form not found: %s", payload.ContactFormID)
	}

	body := p.compose(supplier.FantasyName, form.Questions, sub.Answers, sub.CreatedAt)
	if err := p.send(supplier.Email, "Novo contato recebido", body); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	p.logger.Info("submission email sent",
		zap.String("submission_id", sub.ID.String()),
		zap.String("supplier_email", supplier.Email))
	return nil
}

// compose renders a plain-text digest of the answers in schema order,
// labeled with each question's prompt. Answers may be keyed by position or
// by prompt.
func (p *SubmissionProcessor) compose(supplierName string, schema forms.Schema, answers map[string]any, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Olá, %s!\n\n", supplierName)
	fmt.Fprintf(&b, "Você recebeu um novo contato em %s.\n\n", at.Format("02/01/2006 15:04"))

	for i, q := range schema {
		v, ok := answers[strconv.Itoa(i)]
		if !ok {
			v, ok = answers[q.Prompt]
		}
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s: %v\n", q.Prompt, v)
	}
	b.WriteString("\nAcesse seu painel para responder.\n")
	return b.String()
}

func (p *SubmissionProcessor) send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", p.email.SMTPHost, p.email.SMTPPort)
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s <%s>", p.email.FromName, p.email.FromAddress),
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if p.email.SMTPUser != "" {
		auth = smtp.PlainAuth("", p.email.SMTPUser, p.email.SMTPPass, p.email.SMTPHost)
	}
	return smtp.SendMail(addr, auth, p.email.FromAddress, []string{to}, []byte(msg))
}

// Run starts the worker loop: dequeue, process, retry on error.
func (p *SubmissionProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("submission worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			p.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			time.Sleep(queue.RetryBackoff)
			continue
		}
	}
}
