package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SAP-F-2025/certification-service/internal/models"
	"github.com/tidwall/gjson"
)

const (
	challengesTable  = "challenges"
	competencesTable = "competences"

	maxPages = 100
)

// Client reads reference data from the content catalog
type Client interface {
	ListChallenges(ctx context.Context) ([]models.Challenge, error)
	ListCompetences(ctx context.Context) ([]models.Competence, error)
}

// HTTPClient talks to the catalog records API. Tables are paginated:
//
//	{"records": [{"id": "rec1", "fields": {...}}], "offset": "next-page-token"}
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  *slog.Logger
}

func NewHTTPClient(opts Options) *HTTPClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &HTTPClient{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		httpClient: &http.Client{Timeout: opts.Timeout},
		logger:     opts.Logger,
	}
}

func (c *HTTPClient) ListChallenges(ctx context.Context) ([]models.Challenge, error) {
	var challenges []models.Challenge

	err := c.eachRecord(ctx, challengesTable, func(record gjson.Result) {
		fields := record.Get("fields")
		challenge := models.Challenge{
			ID:           record.Get("id").String(),
			CompetenceID: fields.Get("competences.0").String(),
			Type:         models.ChallengeType(fields.Get("type").String()),
		}
		for _, skill := range fields.Get("skills").Array() {
			challenge.Skills = append(challenge.Skills, skill.String())
		}
		if len(challenge.Skills) > 0 {
			challenge.TestedSkill = challenge.Skills[0]
		}
		challenges = append(challenges, challenge)
	})
	if err != nil {
		return nil, err
	}

	return challenges, nil
}

func (c *HTTPClient) ListCompetences(ctx context.Context) ([]models.Competence, error) {
	var competences []models.Competence

	err := c.eachRecord(ctx, competencesTable, func(record gjson.Result) {
		fields := record.Get("fields")
		competences = append(competences, models.Competence{
			ID:       record.Get("id").String(),
			Index:    fields.Get("index").String(),
			Name:     fields.Get("name").String(),
			CourseID: fields.Get("courses.0").String(),
		})
	})
	if err != nil {
		return nil, err
	}

	return competences, nil
}

// eachRecord walks every page of a table
func (c *HTTPClient) eachRecord(ctx context.Context, table string, fn func(record gjson.Result)) error {
	offset := ""

	for page := 0; page < maxPages; page++ {
		body, err := c.fetchPage(ctx, table, offset)
		if err != nil {
			return err
		}
		if !gjson.ValidBytes(body) {
			return fmt.Errorf("catalog table %s returned invalid JSON", table)
		}

		for _, record := range gjson.GetBytes(body, "records").Array() {
			fn(record)
		}

		offset = gjson.GetBytes(body, "offset").String()
		if offset == "" {
			return nil
		}
	}

	c.logger.Warn("Catalog table exceeds page limit", "table", table, "max_pages", maxPages)
	return fmt.Errorf("catalog table %s has more than %d pages", table, maxPages)
}

func (c *HTTPClient) fetchPage(ctx context.Context, table, offset string) ([]byte, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(table)
	if offset != "" {
		endpoint += "?" + url.Values{"offset": {offset}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog table %s: %w", table, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog table %s: %w", table, err)
	}

	c.logger.Debug("Fetched catalog page",
		"table", table,
		"status_code", resp.StatusCode,
		"duration", time.Since(start).String())

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog table %s returned status %d", table, resp.StatusCode)
	}

	return body, nil
}
