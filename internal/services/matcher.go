package services

import (
	"context"
	"encoding/json"
	"log"

	"hireflow/interview-engine/internal/models"
)

type MatcherService interface {
	Match(ctx context.Context, resumeText, jobDescription string) *models.MatchReport
}

type matcherService struct {
	geminiService GeminiService
	promptBuilder *PromptBuilder
}

func NewMatcherService(geminiService GeminiService) MatcherService {
	return &matcherService{
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
	}
}

// Match implements MatcherService. The report is an enrichment, never a
// blocking requirement: any transport or parse failure returns nil and the
// caller treats that as "report unavailable". Fields missing from the
// model's response keep their zero defaults so downstream readers never
// meet a missing key.
func (m *matcherService) Match(ctx context.Context, resumeText, jobDescription string) *models.MatchReport {
	prompt := m.promptBuilder.BuildMatchPrompt(resumeText, jobDescription)

	response, err := m.geminiService.GenerateJSON(ctx, m.promptBuilder.MatchSystemPrompt(), prompt, 0.3)
	if err != nil {
		log.Printf("⚠️  Resume match call failed: %v\n", err)
		return nil
	}

	var report models.MatchReport
	if err := json.Unmarshal([]byte(extractJSON(response)), &report); err != nil {
		log.Printf("⚠️  Failed to parse match report: %v\n", err)
		return nil
	}

	if report.Score < 0 {
		report.Score = 0
	}
	if report.Score > 100 {
		report.Score = 100
	}
	if report.Strengths == nil {
		report.Strengths = []string{}
	}
	if report.Gaps == nil {
		report.Gaps = []string{}
	}

	return &report
}
