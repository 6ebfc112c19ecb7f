package routes

import (
	"github.com/gin-gonic/gin"

	"formiverse/internal/handlers"
	"formiverse/internal/middleware"
	"formiverse/internal/repositories"
	"formiverse/internal/services"
)

// SetupRoutes wires the versioned API. Registration, login, refresh and the
// public submission views stay outside the JWT group; everything else runs
// behind AuthMiddleware. integrationsHandler may be nil when no bot token is
// configured.
func SetupRoutes(
	r *gin.Engine,
	auth services.AuthService,
	users repositories.UserRepository,
	authHandler *handlers.AuthHandler,
	formHandler *handlers.FormHandler,
	responseHandler *handlers.ResponseHandler,
	mailHandler *handlers.MailHandler,
	integrationsHandler *handlers.IntegrationsHandler,
) *gin.Engine {

	api := r.Group("/api/v1/users")

	// ---- public
	api.POST("/register", authHandler.Register)
	api.POST("/verify-otp", authHandler.VerifyOTP)
	api.POST("/login", authHandler.Login)
	api.POST("/refresh-token", authHandler.RefreshToken)
	api.POST("/change-password", authHandler.ChangePassword)
	api.POST("/send-password-reset-otp", authHandler.SendPasswordResetOTP)
	api.POST("/verify-otp-and-change-password", authHandler.VerifyOTPAndChangePassword)
	api.POST("/send-email", mailHandler.SendEmail)

	// public form views for respondents
	api.GET("/submit-formView/:formId", formHandler.GetFormByID)
	api.POST("/submission-form/:formId", responseHandler.SubmitResponse)

	if integrationsHandler != nil {
		api.POST("/integrations/telegram/webhook", integrationsHandler.Webhook)
	}

	// ---- protected
	secured := api.Group("", middleware.AuthMiddleware(auth, users))

	secured.GET("/check-auth", authHandler.CheckAuth)
	secured.GET("/current-user", authHandler.GetCurrentUser)

	secured.POST("/create-form", formHandler.CreateForm)
	secured.PUT("/update-form/:formId", formHandler.UpdateForm)
	secured.POST("/add-question", formHandler.AddQuestion)
	secured.DELETE("/delete-form/:formId", formHandler.DeleteForm)
	secured.DELETE("/delete-question/:questionId", formHandler.DeleteQuestion)
	secured.GET("/get-allForms", formHandler.GetAllForms)
	secured.GET("/get-FormById/:formId", formHandler.GetFormByID)
	secured.GET("/get-questionById/:questionId", formHandler.GetQuestionByID)

	secured.GET("/get-FormResponse/:formId", responseHandler.GetFormResponses)
	secured.DELETE("/deletform-response/:formId", responseHandler.DeleteFormResponses)
	secured.GET("/export-responses/:formId", responseHandler.ExportResponses)

	secured.POST("/send-formUrl", mailHandler.SendFormURL)

	if integrationsHandler != nil {
		secured.POST("/integrations/telegram/request-link", integrationsHandler.RequestTelegramLink)
	}

	return r
}
