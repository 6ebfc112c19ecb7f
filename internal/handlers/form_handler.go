package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"formiverse/internal/middleware"
	"formiverse/internal/models"
	"formiverse/internal/services"
)

type FormHandler struct {
	forms services.FormService
}

func NewFormHandler(forms services.FormService) *FormHandler {
	return &FormHandler{forms: forms}
}

func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// @Summary      Create a form from a preset
// @Tags         Forms
// @Accept       json
// @Produce      json
// @Param        form  body      object  true  "formType: blank_form | party_invite | contact_form | feedback_form"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /create-form [post]
func (h *FormHandler) CreateForm(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized request")
		return
	}
	var req struct {
		FormType string `json:"formType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	form, err := h.forms.CreateFromTemplate(user.ID, req.FormType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"formId":      form.ID,
		"heading":     form.Heading,
		"description": form.Description,
		"questions":   form.Questions,
	}, "Form created successfully")
}

func (h *FormHandler) UpdateForm(c *gin.Context) {
	formID, ok := paramID(c, "formId")
	if !ok {
		return
	}
	var req struct {
		Heading     string             `json:"heading"`
		Description string             `json:"description"`
		Questions   []*models.Question `json:"questions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Heading == "" || req.Description == "" || req.Questions == nil {
		respondError(c, http.StatusBadRequest, "All fields are required, some fields are missing.")
		return
	}
	form, err := h.forms.UpdateForm(formID, req.Heading, req.Description, req.Questions)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"updatedForm": form}, "Form updated successfully")
}

func (h *FormHandler) AddQuestion(c *gin.Context) {
	var req struct {
		FormID       int    `json:"formId"`
		QuestionText string `json:"questionText"`
		QuestionType string `json:"questionType"`
		AnswerType   string `json:"answerType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	q := &models.Question{
		FormID:       req.FormID,
		QuestionText: req.QuestionText,
		QuestionType: req.QuestionType,
		AnswerType:   req.AnswerType,
	}
	created, err := h.forms.AddQuestion(q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusCreated, created, "Question added successfully")
}

func (h *FormHandler) DeleteQuestion(c *gin.Context) {
	questionID, ok := paramID(c, "questionId")
	if !ok {
		return
	}
	form, err := h.forms.DeleteQuestion(questionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, form, "Question deleted successfully")
}

func (h *FormHandler) DeleteForm(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized request")
		return
	}
	formID, ok := paramID(c, "formId")
	if !ok {
		return
	}
	if err := h.forms.DeleteForm(user.ID, formID); err != nil {
		if err == services.ErrForbidden {
			respondError(c, http.StatusForbidden, "You are not authorized to delete this form")
			return
		}
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Form deleted successfully")
}

// GetAllForms lists the requester's forms with question and submission
// counts.
func (h *FormHandler) GetAllForms(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized request")
		return
	}
	summaries, err := h.forms.ListForms(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if summaries == nil {
		summaries = []*models.FormSummary{}
	}
	respond(c, http.StatusOK, summaries, "Forms fetched successfully")
}

// GetFormByID serves both the authed builder view and the public
// submit-formView route.
func (h *FormHandler) GetFormByID(c *gin.Context) {
	formID, ok := paramID(c, "formId")
	if !ok {
		return
	}
	form, err := h.forms.GetForm(formID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, form, "Form fetched successfully")
}

func (h *FormHandler) GetQuestionByID(c *gin.Context) {
	questionID, ok := paramID(c, "questionId")
	if !ok {
		return
	}
	q, err := h.forms.GetQuestion(questionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, q, "Question fetched successfully")
}
