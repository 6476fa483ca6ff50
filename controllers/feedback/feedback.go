package feedbackControllers

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/junaidrashid-git/fishparque-api/models"
	"github.com/junaidrashid-git/fishparque-api/notify"
	"github.com/junaidrashid-git/fishparque-api/store"
)

type SubmitFeedbackRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

type ReplyRequest struct {
	FeedbackID string `json:"feedbackId"`
	Reply      string `json:"reply"`
}

type Service struct {
	store    *store.Store
	notifier *notify.Dispatcher
	format   notify.Formatter
	clock    clock.Clock
}

func NewService(st *store.Store, notifier *notify.Dispatcher, format notify.Formatter, clk clock.Clock) *Service {
	return &Service{
		store:    st,
		notifier: notifier,
		format:   format,
		clock:    clk,
	}
}

// generateFeedbackID is time based; the random suffix keeps two submissions
// in the same millisecond apart. Reply resolves the first matching id.
func generateFeedbackID(now time.Time) string {
	// Example: FB1777622400000-1f0c9a2b
	return "FB" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + uuid.NewString()[:8]
}

// Submit stores a new pending feedback record.
func (s *Service) Submit(req SubmitFeedbackRequest) (models.Feedback, error) {
	fields := []struct{ name, value string }{
		{"name", req.Name},
		{"email", req.Email},
		{"category", req.Category},
		{"message", req.Message},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return models.Feedback{}, models.NewFieldError(f.name, "is required")
		}
	}

	now := s.clock.Now().UTC()
	fb := models.Feedback{
		FeedbackID: generateFeedbackID(now),
		Name:       req.Name,
		Email:      req.Email,
		Category:   req.Category,
		Message:    req.Message,
		Date:       now.Format(time.RFC3339),
		Status:     models.FeedbackStatusPending,
	}

	err := s.store.UpdateFeedbacks(func(feedbacks []models.Feedback) ([]models.Feedback, error) {
		return append(feedbacks, fb), nil
	})
	if err != nil {
		return models.Feedback{}, errors.Annotatef(err, "saving feedback %s", fb.FeedbackID)
	}
	log.Printf("✅ Feedback %s saved", fb.FeedbackID)

	s.notifier.Dispatch(s.format.FeedbackReceived(fb))
	return fb, nil
}

// Reply records the admin's answer and resolves the feedback. A second reply
// replaces the first.
func (s *Service) Reply(feedbackID, reply string) (models.Feedback, error) {
	if strings.TrimSpace(feedbackID) == "" {
		return models.Feedback{}, models.NewFieldError("feedbackId", "is required")
	}
	if strings.TrimSpace(reply) == "" {
		return models.Feedback{}, models.NewFieldError("reply", "is required")
	}

	var updated models.Feedback
	err := s.store.UpdateFeedbacks(func(feedbacks []models.Feedback) ([]models.Feedback, error) {
		for i := range feedbacks {
			if feedbacks[i].FeedbackID == feedbackID {
				text := reply
				feedbacks[i].Reply = &text
				feedbacks[i].Status = models.FeedbackStatusResolved
				updated = feedbacks[i]
				return feedbacks, nil
			}
		}
		return nil, errors.NotFoundf("feedback %s", feedbackID)
	})
	if err != nil {
		return models.Feedback{}, err
	}
	log.Printf("✅ Feedback %s resolved", feedbackID)

	s.notifier.Dispatch(s.format.FeedbackReply(updated, reply))
	return updated, nil
}

// All returns every feedback record in submission order.
func (s *Service) All() []models.Feedback {
	return s.store.Feedbacks()
}
