package models

import (
	"time"

	"gorm.io/datatypes"
)

type AssessmentState string

const (
	AssessmentStarted   AssessmentState = "started"
	AssessmentCompleted AssessmentState = "completed"
)

type AssessmentType string

const (
	AssessmentTypeCertification  AssessmentType = "CERTIFICATION"
	AssessmentTypePlacement      AssessmentType = "PLACEMENT"
	AssessmentTypeSmartPlacement AssessmentType = "SMART_PLACEMENT"
)

// Assessment is a run of a course by a user. For certifications CourseID holds
// the certification course id; for placements it holds the competence course id.
type Assessment struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	UserID    string          `json:"user_id" gorm:"not null;size:255;index"`
	CourseID  string          `json:"course_id" gorm:"not null;size:255;index"`
	Type      *AssessmentType `json:"type" gorm:"size:30"`
	State     AssessmentState `json:"state" gorm:"default:started;size:20;index"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relations
	AssessmentResults []AssessmentResult `json:"assessment_results" gorm:"foreignKey:AssessmentID"`
}

func (Assessment) TableName() string {
	return "assessments"
}

func (a *Assessment) IsCompleted() bool {
	return a.State == AssessmentCompleted
}

// LastAssessmentResult returns the most recent result, or nil if none was stored
func (a *Assessment) LastAssessmentResult() *AssessmentResult {
	var last *AssessmentResult
	for i := range a.AssessmentResults {
		r := &a.AssessmentResults[i]
		if last == nil || r.CreatedAt.After(last.CreatedAt) {
			last = r
		}
	}
	return last
}

type AssessmentResultStatus string

const (
	ResultValidated AssessmentResultStatus = "validated"
	ResultRejected  AssessmentResultStatus = "rejected"
)

const EmitterAlgorithm = "PIX-ALGO"

type AssessmentResult struct {
	ID             uint                   `json:"id" gorm:"primaryKey"`
	AssessmentID   uint                   `json:"assessment_id" gorm:"not null;index"`
	PixScore       int                    `json:"pix_score"`
	Level          int                    `json:"level"`
	Status         AssessmentResultStatus `json:"status" gorm:"size:20"`
	Emitter        string                 `json:"emitter" gorm:"size:50"`
	CommentForJury *string                `json:"comment_for_jury" gorm:"type:text"`
	Metadata       datatypes.JSON         `json:"metadata" gorm:"type:jsonb"` // scoring summary
	CreatedAt      time.Time              `json:"created_at"`

	CompetenceMarks []StoredCompetenceMark `json:"competence_marks" gorm:"foreignKey:AssessmentResultID"`
}

func (AssessmentResult) TableName() string {
	return "assessment_results"
}

// StoredCompetenceMark is the persisted per-competence outcome of a certification
type StoredCompetenceMark struct {
	ID                 uint   `json:"id" gorm:"primaryKey"`
	AssessmentResultID uint   `json:"assessment_result_id" gorm:"not null;index"`
	Level              int    `json:"level"`
	Score              int    `json:"score"`
	AreaCode           string `json:"area_code" gorm:"size:10"`
	CompetenceCode     string `json:"competence_code" gorm:"size:10"`
}

func (StoredCompetenceMark) TableName() string {
	return "competence_marks"
}
