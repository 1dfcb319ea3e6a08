package models

import "strings"

type ChallengeType string

const (
	ChallengeQCM      ChallengeType = "QCM"
	ChallengeQCU      ChallengeType = "QCU"
	ChallengeQROC     ChallengeType = "QROC"
	ChallengeQROCMInd ChallengeType = "QROCM-ind"
	ChallengeQROCMDep ChallengeType = "QROCM-dep"
)

// Challenge is reference data from the content catalog
type Challenge struct {
	ID           string        `json:"id" yaml:"id"`
	CompetenceID string        `json:"competence_id" yaml:"competence_id"`
	Type         ChallengeType `json:"type" yaml:"type"`
	TestedSkill  string        `json:"tested_skill" yaml:"tested_skill"`
	// Skills lists every skill the challenge validates; QROCM-dep challenges carry two
	Skills []string `json:"skills,omitempty" yaml:"skills,omitempty"`
}

// Competence is a certifiable competency domain, e.g. index "1.1"
type Competence struct {
	ID       string `json:"id" yaml:"id"`
	Index    string `json:"index" yaml:"index"`
	Name     string `json:"name" yaml:"name"`
	CourseID string `json:"course_id" yaml:"course_id"`
}

// AreaCode returns the area part of the competence index ("2" for "2.1")
func (c Competence) AreaCode() string {
	area, _, _ := strings.Cut(c.Index, ".")
	return area
}
