package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"formiverse/internal/middleware"
	"formiverse/internal/models"
	"formiverse/internal/services"
)

type ResponseHandler struct {
	responses services.ResponseService
}

func NewResponseHandler(responses services.ResponseService) *ResponseHandler {
	return &ResponseHandler{responses: responses}
}

// SubmitResponse is public: anyone with the form link can answer.
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	formID, ok := paramID(c, "formId")
	if !ok {
		return
	}
	var req struct {
		Answers []models.Answer `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.responses.Submit(formID, req.Answers); err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Form response submitted successfully")
}

func (h *ResponseHandler) GetFormResponses(c *gin.Context) {
	formID, ok := paramID(c, "formId")
	if !ok {
		return
	}
	responses, err := h.responses.ListByForm(formID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if responses == nil {
		responses = []*models.FormResponse{}
	}
	respond(c, http.StatusOK, responses, "Form responses fetched successfully")
}

// DeleteFormResponses removes every response collected for the form.
func (h *ResponseHandler) DeleteFormResponses(c *gin.Context) {
	formID, ok := paramID(c, "formId")
	if !ok {
		return
	}
	deleted, err := h.responses.DeleteByForm(formID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"deleted": deleted}, "Form responses deleted successfully")
}

// ExportResponses renders the form's responses as a downloadable PDF.
func (h *ResponseHandler) ExportResponses(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized request")
		return
	}
	formID, ok := paramID(c, "formId")
	if !ok {
		return
	}
	path, err := h.responses.ExportPDF(user.ID, formID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
