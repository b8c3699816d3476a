package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hirewise/hirewise/internal/handler"
	"github.com/hirewise/hirewise/internal/middleware"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Home       *handler.HomeHandler
	Email      *handler.EmailHandler
	JobPosts   *handler.JobPostHandler
	Resumes    *handler.ResumeHandler
	Candidates *handler.CandidateHandler
	Reviews    *handler.ReviewHandler
	Interviews *handler.InterviewHandler
}

// Register wires all endpoints. Slot listing and booking stay public so
// candidates can book without an account; everything else behind the
// session token.
func Register(router *gin.Engine, jwtSecret string, h Handlers) {
	router.Use(middleware.CORS())

	router.GET("/status", h.Home.Status)
	router.GET("/", h.Home.Landing)

	router.POST("/signup", h.Auth.Signup)
	router.POST("/signin", h.Auth.Signin)
	router.POST("/google-auth", h.Auth.GoogleAuth)

	router.GET("/slots/:userId", h.Interviews.AvailableSlots)
	router.POST("/slots/:userId/book", h.Interviews.BookSlot)

	authorized := router.Group("/", middleware.RequireAuth(jwtSecret))
	{
		authorized.GET("/home/:userId", h.Home.Home)

		authorized.GET("/authenticate-url", h.Email.AuthenticateURL)
		authorized.POST("/authenticate", h.Email.Authenticate)
		authorized.POST("/send-email", h.Email.SendEmail)
		authorized.GET("/fetch-emails/:userId", h.Email.FetchEmails)

		authorized.POST("/jobposts/:userId", h.JobPosts.Create)
		authorized.GET("/jobposts/:userId", h.JobPosts.List)
		authorized.GET("/jobposts/:userId/:postId", h.JobPosts.Get)

		authorized.POST("/upload/:userId", h.Resumes.Upload)

		authorized.GET("/candidates/:userId/:postId", h.Candidates.ListByPost)
		authorized.GET("/candidates/:userId/:postId/export", h.Candidates.Export)
		authorized.GET("/candidate/:userId/:candidateId", h.Candidates.Get)

		authorized.GET("/ranking/:userId/:postId", h.Reviews.Ranking)
		authorized.GET("/screening/:userId/:candidateId", h.Reviews.Screening)

		authorized.GET("/invite/:userId/:candidateId", h.Interviews.Invite)
		authorized.POST("/slots/:userId", h.Interviews.CreateSlots)
	}
}
