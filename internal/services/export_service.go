package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/certification-service/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	competencesSheet = "Competences"
	answersSheet     = "Answers"
)

type exportService struct {
	certification CertificationService
	logger        *slog.Logger
}

func NewExportService(certification CertificationService, logger *slog.Logger) ExportService {
	return &exportService{
		certification: certification,
		logger:        logger,
	}
}

// ExportCertificationResult renders the marks and the answers of a completed
// certification as an xlsx workbook
func (s *exportService) ExportCertificationResult(ctx context.Context, courseID uint) ([]byte, error) {
	view, err := s.certification.GetCertificationResult(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if view.Status != models.AssessmentCompleted {
		return nil, ErrCertificationNotCompleted
	}

	result, err := s.certification.CalculateCertificationResultByCertificationCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the competences sheet
	if err := f.SetSheetName("Sheet1", competencesSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	competenceRows := make([][]interface{}, 0, len(result.CompetencesWithMark))
	for _, m := range result.CompetencesWithMark {
		competenceRows = append(competenceRows, []interface{}{
			m.Index, m.Name, m.PositionedLevel, m.PositionedScore, m.ObtainedLevel, m.ObtainedScore,
		})
	}
	writeSheet(f, competencesSheet,
		[]string{"Index", "Competence", "Positioned Level", "Positioned Score", "Obtained Level", "Obtained Score"},
		competenceRows)

	if _, err := f.NewSheet(answersSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	answerRows := make([][]interface{}, 0, len(result.ListChallengesAndAnswers))
	for _, a := range result.ListChallengesAndAnswers {
		answerRows = append(answerRows, []interface{}{a.ChallengeID, a.Competence, a.Skill, string(a.Result), a.Value})
	}
	writeSheet(f, answersSheet, []string{"Challenge", "Competence", "Skill", "Result", "Value"}, answerRows)

	summaryRow := len(competenceRows) + 3
	f.SetCellValue(competencesSheet, fmt.Sprintf("A%d", summaryRow), "Total Score")
	f.SetCellValue(competencesSheet, fmt.Sprintf("B%d", summaryRow), result.TotalScore)
	f.SetCellValue(competencesSheet, fmt.Sprintf("A%d", summaryRow+1), "Correct Answers (%)")
	f.SetCellValue(competencesSheet, fmt.Sprintf("B%d", summaryRow+1), result.PercentageCorrectAnswers)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel file: %w", err)
	}

	s.logger.InfoContext(ctx, "Certification result exported", "certification_course_id", courseID, "competences", len(competenceRows))
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}) {
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, header)
	}

	for r, row := range rows {
		for c, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+c, r+2)
			f.SetCellValue(sheet, cell, value)
		}
	}
}
