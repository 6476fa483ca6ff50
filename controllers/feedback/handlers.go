package feedbackControllers

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/juju/errors"
	"github.com/junaidrashid-git/fishparque-api/controllers/respond"
)

// POST /api/feedback
func SubmitFeedbackHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubmitFeedbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Fail(c, "All fields are required")
			return
		}

		fb, err := svc.Submit(req)
		switch {
		case err == nil:
			respond.OK(c, gin.H{
				"message":    "Thank you for your feedback! We will respond soon.",
				"feedbackId": fb.FeedbackID,
			})
		case errors.Is(err, errors.NotValid):
			respond.Fail(c, "All fields are required")
		default:
			log.Printf("❌ Feedback error: %v", err)
			respond.Fail(c, "Failed to submit feedback. Please try again.")
		}
	}
}

// GET /api/admin/feedbacks
func GetAllFeedbacksHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond.OK(c, gin.H{"feedbacks": svc.All()})
	}
}

// POST /api/admin/feedback/reply
func ReplyFeedbackHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReplyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Fail(c, "Invalid request")
			return
		}

		_, err := svc.Reply(req.FeedbackID, req.Reply)
		switch {
		case err == nil:
			respond.OK(c, gin.H{"message": "Reply sent successfully"})
		case errors.Is(err, errors.NotFound):
			respond.Fail(c, "Feedback not found")
		case errors.Is(err, errors.NotValid):
			respond.Fail(c, "Invalid request: "+err.Error())
		default:
			log.Printf("❌ Reply error: %v", err)
			respond.Fail(c, "Failed to send reply")
		}
	}
}
