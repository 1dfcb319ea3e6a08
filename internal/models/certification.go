package models

import (
	"strconv"
	"time"
)

type CertificationStatus string

const (
	CertificationStarted   CertificationStatus = "started"
	CertificationCompleted CertificationStatus = "completed"
)

// UncertifiedLevel marks a competence that failed certification
const UncertifiedLevel = -1

type CertificationCourse struct {
	ID           uint                `json:"id" gorm:"primaryKey"`
	UserID       string              `json:"user_id" gorm:"not null;size:255;index"`
	SessionID    uint                `json:"session_id" gorm:"index"`
	Status       CertificationStatus `json:"status" gorm:"default:started;size:20"`
	FirstName    string              `json:"first_name" gorm:"size:255"`
	LastName     string              `json:"last_name" gorm:"size:255"`
	Birthdate    string              `json:"birthdate" gorm:"size:20"`
	Birthplace   string              `json:"birthplace" gorm:"size:255"`
	ExternalID   string              `json:"external_id" gorm:"size:255"`
	IsPublished  bool                `json:"is_published" gorm:"default:false"`
	NbChallenges int                 `json:"nb_challenges" gorm:"-"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	CompletedAt  *time.Time          `json:"completed_at"`

	// Relations
	Challenges []CertificationChallenge `json:"challenges,omitempty" gorm:"foreignKey:CourseID"`
}

func (CertificationCourse) TableName() string {
	return "certification_courses"
}

// AssessmentCourseID is the course reference stored on the certification assessment
func (c *CertificationCourse) AssessmentCourseID() string {
	return strconv.FormatUint(uint64(c.ID), 10)
}

// CertificationChallenge maps an administered challenge to its competence and skill
type CertificationChallenge struct {
	ID                  uint   `json:"id" yaml:"-" gorm:"primaryKey"`
	CourseID            uint   `json:"course_id" yaml:"-" gorm:"not null;index"`
	ChallengeID         string `json:"challenge_id" yaml:"challenge_id" gorm:"not null;size:255"`
	CompetenceID        string `json:"competence_id" yaml:"competence_id" gorm:"not null;size:255"`
	AssociatedSkillName string `json:"associated_skill_name" yaml:"associated_skill_name" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at" yaml:"-"`
}

func (CertificationChallenge) TableName() string {
	return "certification_challenges"
}

// PositionedCompetence is the level and score a user reached on a competence
// before starting the certification.
type PositionedCompetence struct {
	CompetenceID    string `json:"competence_id" yaml:"competence_id"`
	PositionedLevel int    `json:"positioned_level" yaml:"positioned_level"`
	PositionedScore int    `json:"positioned_score" yaml:"positioned_score"`
}

// CompetenceMark is the certified outcome for one competence
type CompetenceMark struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Index           string `json:"index"`
	PositionedLevel int    `json:"positioned_level"`
	PositionedScore int    `json:"positioned_score"`
	ObtainedLevel   int    `json:"obtained_level"`
	ObtainedScore   int    `json:"obtained_score"`
}

func (m CompetenceMark) IsCertified() bool {
	return m.ObtainedLevel != UncertifiedLevel
}

type ChallengeAndAnswer struct {
	ChallengeID string       `json:"challenge_id"`
	Competence  string       `json:"competence"`
	Skill       string       `json:"skill"`
	Result      AnswerResult `json:"result"`
	Value       string       `json:"value"`
}

// CertificationResult is computed on demand and never persisted as such
type CertificationResult struct {
	CompetencesWithMark      []CompetenceMark     `json:"competences_with_mark"`
	ListChallengesAndAnswers []ChallengeAndAnswer `json:"list_challenges_and_answers"`
	PercentageCorrectAnswers int                  `json:"percentage_correct_answers"`
	Status                   CertificationStatus  `json:"status"`
	TotalScore               int                  `json:"total_score"`
	UserID                   string               `json:"user_id"`
	CreatedAt                time.Time            `json:"created_at"`
	CompletedAt              *time.Time           `json:"completed_at"`
}

// CertificationResultView is the projection of an already stored result
type CertificationResultView struct {
	ID                  uint                   `json:"id"`
	Status              AssessmentState        `json:"status"`
	PixScore            *int                   `json:"pix_score"`
	CreatedAt           time.Time              `json:"created_at"`
	CompletedAt         *time.Time             `json:"completed_at"`
	CompetencesWithMark []StoredCompetenceMark `json:"competences_with_mark"`
	FirstName           string                 `json:"first_name"`
	LastName            string                 `json:"last_name"`
	Birthdate           string                 `json:"birthdate"`
	Birthplace          string                 `json:"birthplace"`
	ExternalID          string                 `json:"external_id"`
	SessionID           uint                   `json:"session_id"`
	IsPublished         bool                   `json:"is_published"`
}

// ProfileChallenge is a challenge proposed for certification on one competence
type ProfileChallenge struct {
	ChallengeID string `json:"challenge_id"`
	SkillName   string `json:"skill_name"`
}

// ProfileCompetence is one competence of the profile to certify
type ProfileCompetence struct {
	ID             string             `json:"id"`
	Index          string             `json:"index"`
	Name           string             `json:"name"`
	EstimatedLevel int                `json:"estimated_level"`
	PixScore       int                `json:"pix_score"`
	Challenges     []ProfileChallenge `json:"challenges"`
}
