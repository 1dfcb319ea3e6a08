package models

import "time"

type AnswerResult string

const (
	AnswerOK        AnswerResult = "ok"
	AnswerKO        AnswerResult = "ko"
	AnswerPartially AnswerResult = "partially"
	AnswerAbandoned AnswerResult = "aband"
	AnswerTimedOut  AnswerResult = "timedout"
)

// IsValid reports whether the result is one of the known answer outcomes
func (r AnswerResult) IsValid() bool {
	switch r {
	case AnswerOK, AnswerKO, AnswerPartially, AnswerAbandoned, AnswerTimedOut:
		return true
	}
	return false
}

// Answer is one user answer to a challenge. Answers are append-only per assessment.
type Answer struct {
	ID           uint         `json:"id" yaml:"id" gorm:"primaryKey"`
	AssessmentID uint         `json:"assessment_id" yaml:"assessment_id" gorm:"not null;index"`
	ChallengeID  string       `json:"challenge_id" yaml:"challenge_id" gorm:"not null;size:255;index" validate:"required"`
	Result       AnswerResult `json:"result" yaml:"result" gorm:"not null;size:20" validate:"required,answer_result"`
	Value        string       `json:"value" yaml:"value" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" yaml:"-"`
}

func (Answer) TableName() string {
	return "answers"
}
