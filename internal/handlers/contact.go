package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/krishiseeds/catalog-service/internal/mail"
	"github.com/krishiseeds/catalog-service/internal/types"
)

const msgMissingFields = "Please fill in all required fields"

// ContactRequest is a contact form submission. Email format is left to the
// form; the server only checks presence and length.
type ContactRequest struct {
	Name     string `json:"name" validate:"required,max=200" jsonschema:"required"`
	Email    string `json:"email" validate:"required,max=320" jsonschema:"required"`
	Phone    string `json:"phone" validate:"max=40"`
	Category string `json:"category" validate:"required,max=100" jsonschema:"required"`
	Subject  string `json:"subject" validate:"required,max=300" jsonschema:"required"`
	Message  string `json:"message" validate:"required,max=5000" jsonschema:"required"`
}

func (r *ContactRequest) trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Category = strings.TrimSpace(r.Category)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
}

// ContactResponse echoes the stored submission
type ContactResponse struct {
	ID      string `json:"_id" jsonschema:"required"`
	Name    string `json:"name" jsonschema:"required"`
	Email   string `json:"email" jsonschema:"required"`
	Message string `json:"message" jsonschema:"required"`
}

// SubmitContact stores a contact form submission and sends a confirmation
// email in the background
// @Summary Submit contact form
// @Description Stores the message; a confirmation email is sent best-effort
// @Tags contact
// @Accept json
// @Produce json
// @Param request body ContactRequest true "Contact form"
// @Success 201 {object} ContactResponse
// @Failure 400 {object} map[string]string "Missing required fields"
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/contact [post]
func (h *Handler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Metrics.RecordContact("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingFields})
		return
	}
	req.trim()

	if err := h.validate.Struct(req); err != nil {
		h.Metrics.RecordContact("invalid")
		msg := msgMissingFields
		if !hasTag(err, "required") {
			msg = validationMessage(err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	contact := types.ContactMessage{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Category:  req.Category,
		Subject:   req.Subject,
		Message:   req.Message,
		IP:        c.ClientIP(),
		CreatedAt: h.now().UTC(),
	}
	if err := h.Contacts.Create(c.Request.Context(), &contact); err != nil {
		h.Metrics.RecordContact("error")
		h.logger.Error().Err(err).Msg("Failed to store contact message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit message"})
		return
	}
	h.Metrics.RecordContact("ok")

	if h.Mail != nil {
		h.Mail.Send(mail.Confirmation(contact, h.CompanyName))
	}

	h.logger.Info().Str("id", contact.ID).Str("category", contact.Category).Msg("Contact message received")
	c.JSON(http.StatusCreated, ContactResponse{
		ID:      contact.ID,
		Name:    contact.Name,
		Email:   contact.Email,
		Message: contact.Message,
	})
}
