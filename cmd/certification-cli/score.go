package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/SAP-F-2025/certification-service/internal/scoring"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// fixture is a certification replayed from a YAML file
type fixture struct {
	scoring.Input `yaml:",inline"`
	Policy        *scoring.Policy `yaml:"policy,omitempty"`
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}
	return &f, nil
}

func newScoreCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "score <fixture.yaml>",
		Short: "Score a certification fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFixture(args[0])
			if err != nil {
				return err
			}

			policy := scoring.DefaultPolicy()
			if f.Policy != nil {
				policy = *f.Policy
			}

			outcome, err := scoring.NewEngine(policy).Score(f.Input)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(outcome)
			}
			printOutcome(cmd.OutOrStdout(), outcome)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the outcome as JSON")
	return cmd
}

type printStyles struct {
	header  lipgloss.Style
	full    lipgloss.Style
	partial lipgloss.Style
	failed  lipgloss.Style
	dim     lipgloss.Style
}

func newPrintStyles() printStyles {
	return printStyles{
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		full:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		partial: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		failed:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (s printStyles) tier(t scoring.Tier) lipgloss.Style {
	switch t {
	case scoring.TierFull:
		return s.full
	case scoring.TierPartial:
		return s.partial
	default:
		return s.failed
	}
}

func printOutcome(w io.Writer, outcome *scoring.Outcome) {
	styles := newPrintStyles()

	fmt.Fprintln(w, styles.header.Render("CERTIFICATION RESULT"))
	fmt.Fprintf(w, "%-6s %-32s %10s %10s %10s %10s\n",
		"Index", "Competence", "Pos. lvl", "Pos. pix", "Obt. lvl", "Obt. pix")

	for _, m := range outcome.CompetencesWithMark {
		line := fmt.Sprintf("%-6s %-32s %10d %10d %10d %10d",
			m.Index, truncate(m.Name, 32), m.PositionedLevel, m.PositionedScore, m.ObtainedLevel, m.ObtainedScore)
		if !m.IsCertified() {
			line = styles.dim.Render(line)
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total score:      %d\n", outcome.TotalScore)
	fmt.Fprintf(w, "Correct answers:  %d%%\n", outcome.PercentageCorrectAnswers)
	fmt.Fprintf(w, "Tier:             %s\n", styles.tier(outcome.Tier).Render(string(outcome.Tier)))
}

// truncate shortens s to at most width runes, marking the cut with "..."
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
