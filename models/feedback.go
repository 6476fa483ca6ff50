package models

type FeedbackStatus string

const (
	FeedbackStatusPending  FeedbackStatus = "pending"
	FeedbackStatusResolved FeedbackStatus = "resolved"
)

type Feedback struct {
	FeedbackID string         `json:"feedbackId"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Category   string         `json:"category"`
	Message    string         `json:"message"`
	Date       string         `json:"date"`
	Status     FeedbackStatus `json:"status"`
	Reply      *string        `json:"reply"`
}
