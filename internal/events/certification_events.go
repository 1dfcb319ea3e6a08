package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the kind of certification event
type EventType string

const (
	EventCertificationStarted EventType = "certification.started"
	EventCertificationScored  EventType = "certification.scored"
)

const (
	eventSource  = "certification-service"
	eventVersion = "1.0"
)

// CertificationEvent is the envelope of every event published by the service
type CertificationEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type CertificationStartedEvent struct {
	CertificationCourseID uint      `json:"certification_course_id"`
	UserID                string    `json:"user_id"`
	SessionID             uint      `json:"session_id"`
	NbChallenges          int       `json:"nb_challenges"`
	StartedAt             time.Time `json:"started_at"`
}

type CertificationScoredEvent struct {
	CertificationCourseID    uint   `json:"certification_course_id"`
	AssessmentID             uint   `json:"assessment_id"`
	UserID                   string `json:"user_id"`
	TotalScore               int    `json:"total_score"`
	PercentageCorrectAnswers int    `json:"percentage_correct_answers"`
	Tier                     string `json:"tier"`
}

func NewCertificationStartedEvent(courseID uint, userID string, sessionID uint, nbChallenges int, startedAt time.Time) *CertificationEvent {
	return newEvent(EventCertificationStarted, CertificationStartedEvent{
		CertificationCourseID: courseID,
		UserID:                userID,
		SessionID:             sessionID,
		NbChallenges:          nbChallenges,
		StartedAt:             startedAt,
	})
}

func NewCertificationScoredEvent(courseID, assessmentID uint, userID string, totalScore, percentage int, tier string) *CertificationEvent {
	return newEvent(EventCertificationScored, CertificationScoredEvent{
		CertificationCourseID:    courseID,
		AssessmentID:             assessmentID,
		UserID:                   userID,
		TotalScore:               totalScore,
		PercentageCorrectAnswers: percentage,
		Tier:                     tier,
	})
}

func newEvent(eventType EventType, data interface{}) *CertificationEvent {
	return &CertificationEvent{
		ID:        GenerateEventID(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

func GenerateEventID() string {
	return uuid.New().String()
}
