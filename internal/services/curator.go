package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"hireflow/interview-engine/internal/models"
	"hireflow/interview-engine/internal/repositories"
)

// GeneratedQuestion is one normalized item from the generation call.
type GeneratedQuestion struct {
	Question string
	Answer   string
	Keywords []string
}

type CuratorService interface {
	FetchBank(ctx context.Context, jobID uuid.UUID, technology, jobDescription string, limit int) ([]models.KnowledgeQuestion, error)
	Generate(ctx context.Context, jobID uuid.UUID, jobDescription string, nQuestions int) ([]GeneratedQuestion, error)
	CurateQuestions(ctx context.Context, jobID uuid.UUID, technology, jobDescription string, nQuestions int) ([]*models.Question, error)
}

type curatorService struct {
	knowledgeRepo repositories.KnowledgeRepository
	questionRepo  repositories.QuestionRepository
	geminiService GeminiService
	qdrantService QdrantService
	promptBuilder *PromptBuilder
	maxAttempts   int
	initialDelay  time.Duration
}

func NewCuratorService(
	knowledgeRepo repositories.KnowledgeRepository,
	questionRepo repositories.QuestionRepository,
	geminiService GeminiService,
	qdrantService QdrantService,
	maxAttempts int,
	initialDelay time.Duration,
) CuratorService {
	return &curatorService{
		knowledgeRepo: knowledgeRepo,
		questionRepo:  questionRepo,
		geminiService: geminiService,
		qdrantService: qdrantService,
		promptBuilder: NewPromptBuilder(),
		maxAttempts:   maxAttempts,
		initialDelay:  initialDelay,
	}
}

// FetchBank implements CuratorService. It reads the pre-seeded master bank
// for a technology, excluding questions marked bad for this job. When a job
// description is given it reorders the result by vector similarity to the
// description. Ranking failures degrade to insertion order.
func (c *curatorService) FetchBank(ctx context.Context, jobID uuid.UUID, technology, jobDescription string, limit int) ([]models.KnowledgeQuestion, error) {
	badTexts, err := c.questionRepo.BadQuestionTexts(jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback exclusions: %w", err)
	}

	bank, err := c.knowledgeRepo.FindByTechnology(technology, 0, badTexts)
	if err != nil {
		return nil, err
	}

	if jobDescription != "" && c.qdrantService != nil && len(bank) > 1 {
		bank = c.rankBySimilarity(ctx, bank, technology, jobDescription)
	}

	if limit > 0 && len(bank) > limit {
		bank = bank[:limit]
	}

	return bank, nil
}

func (c *curatorService) rankBySimilarity(ctx context.Context, bank []models.KnowledgeQuestion, technology, jobDescription string) []models.KnowledgeQuestion {
	embedding, err := c.geminiService.GenerateEmbedding(ctx, jobDescription)
	if err != nil {
		log.Printf("⚠️  Failed to embed job description for ranking: %v\n", err)
		return bank
	}

	results, err := c.qdrantService.SearchSimilar(ctx, embedding, technology, len(bank))
	if err != nil {
		log.Printf("⚠️  Failed to rank bank questions: %v\n", err)
		return bank
	}

	rank := make(map[string]int, len(results))
	for i, r := range results {
		rank[r.QuestionID] = i
	}

	byID := make(map[string]models.KnowledgeQuestion, len(bank))
	for _, q := range bank {
		byID[q.ID.String()] = q
	}

	var ranked []models.KnowledgeQuestion
	seen := make(map[string]struct{}, len(bank))
	for _, r := range results {
		if q, ok := byID[r.QuestionID]; ok {
			ranked = append(ranked, q)
			seen[r.QuestionID] = struct{}{}
		}
	}
	// Bank rows missing from the index keep their original order at the tail.
	for _, q := range bank {
		if _, ok := seen[q.ID.String()]; !ok {
			ranked = append(ranked, q)
		}
	}

	return ranked
}

// Generate implements CuratorService. The generation protocol is two-tier:
// transport failures retry with exponential backoff inside the Gemini
// service; a parse failure triggers exactly one stricter "return ONLY the
// array" retry before the whole call fails with ErrGenerationParse. A
// generation call never silently returns an empty list, since that would let
// an interview proceed with zero questions.
func (c *curatorService) Generate(ctx context.Context, jobID uuid.UUID, jobDescription string, nQuestions int) ([]GeneratedQuestion, error) {
	systemPrompt := c.promptBuilder.GenerationSystemPrompt()
	userPrompt := c.promptBuilder.BuildGenerationPrompt(jobDescription, nQuestions)

	response, err := c.geminiService.GenerateJSONWithRetry(ctx, systemPrompt, userPrompt, 0.2, c.maxAttempts, c.initialDelay)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationService, err)
	}

	items, parseErr := parseGeneratedQuestions(response)
	if parseErr != nil {
		log.Printf("⚠️  Generation response parse failed, issuing strict retry: %v\n", parseErr)

		strictPrompt := c.promptBuilder.BuildStrictRetryPrompt(jobDescription, nQuestions)
		response, err = c.geminiService.GenerateJSONWithRetry(ctx, systemPrompt, strictPrompt, 0.2, c.maxAttempts, c.initialDelay)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGenerationService, err)
		}

		items, parseErr = parseGeneratedQuestions(response)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrGenerationParse, parseErr)
		}
	}

	// Post-filter against job-scoped bad ratings. This runs on the parsed
	// output rather than the prompt because the model cannot be trusted to
	// honor prompt-side exclusions.
	badTexts, err := c.questionRepo.BadQuestionTexts(jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback exclusions: %w", err)
	}

	excluded := make(map[string]struct{}, len(badTexts))
	for _, text := range badTexts {
		excluded[strings.ToLower(strings.TrimSpace(text))] = struct{}{}
	}

	var filtered []GeneratedQuestion
	for _, item := range items {
		if _, bad := excluded[strings.ToLower(strings.TrimSpace(item.Question))]; bad {
			log.Printf("🚫 Dropping generated question previously marked bad: %.60s\n", item.Question)
			continue
		}
		filtered = append(filtered, item)
	}

	return filtered, nil
}

// CurateQuestions implements CuratorService. Accepted items become both
// master-bank rows (append-only) and job-specific Question rows; the
// reference-answer embedding is computed per item and cached on the row.
// Embedding and index failures are logged and skipped; the question is
// still saved without an embedding.
func (c *curatorService) CurateQuestions(ctx context.Context, jobID uuid.UUID, technology, jobDescription string, nQuestions int) ([]*models.Question, error) {
	items, err := c.Generate(ctx, jobID, jobDescription, nQuestions)
	if err != nil {
		return nil, err
	}

	var bankRows []*models.KnowledgeQuestion
	var questions []*models.Question

	for _, item := range items {
		var embedding []float32
		if c.geminiService != nil {
			embedding, err = c.geminiService.GenerateEmbedding(ctx, item.Answer)
			if err != nil {
				log.Printf("⚠️  Embedding failed for question %.60q: %v\n", item.Question, err)
				embedding = nil
			}
		}

		bankRow := &models.KnowledgeQuestion{
			ID:           uuid.New(),
			Technology:   technology,
			QuestionText: item.Question,
			ModelAnswer:  item.Answer,
			Keywords:     item.Keywords,
			CreatedAt:    time.Now(),
		}
		bankRows = append(bankRows, bankRow)

		knowledgeID := bankRow.ID
		questions = append(questions, &models.Question{
			ID:                   uuid.New(),
			JobID:                jobID,
			KnowledgeQuestionID:  &knowledgeID,
			QuestionText:         item.Question,
			ModelAnswer:          item.Answer,
			Keywords:             item.Keywords,
			ModelAnswerEmbedding: embedding,
			CreatedAt:            time.Now(),
		})
	}

	if err := c.knowledgeRepo.CreateBatch(bankRows); err != nil {
		return nil, err
	}

	if err := c.questionRepo.CreateBatch(questions); err != nil {
		return nil, err
	}

	if c.qdrantService != nil {
		for i, row := range bankRows {
			embedding := questions[i].ModelAnswerEmbedding
			if len(embedding) == 0 {
				continue
			}
			if err := c.qdrantService.UpsertQuestion(ctx, row.ID, technology, row.QuestionText, embedding); err != nil {
				log.Printf("⚠️  Failed to index question %s: %v\n", row.ID, err)
			}
		}
	}

	log.Printf("✅ Curated %d questions for job %s\n", len(questions), jobID)
	return questions, nil
}

// parseGeneratedQuestions parses the generator output into normalized
// items. Keyword values may arrive as a JSON array or a comma-separated
// string; both normalize to a list of trimmed strings. Items missing
// question or answer text are dropped.
func parseGeneratedQuestions(response string) ([]GeneratedQuestion, error) {
	raw := extractJSON(response)

	var decoded []struct {
		Question string          `json:"question"`
		Answer   string          `json:"answer"`
		Keywords json.RawMessage `json:"keywords"`
	}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal question array: %w", err)
	}

	var items []GeneratedQuestion
	for _, d := range decoded {
		question := strings.TrimSpace(d.Question)
		answer := strings.TrimSpace(d.Answer)
		if question == "" || answer == "" {
			continue
		}
		items = append(items, GeneratedQuestion{
			Question: question,
			Answer:   answer,
			Keywords: normalizeKeywords(d.Keywords),
		})
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no usable items in generation output")
	}

	return items, nil
}

func normalizeKeywords(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return trimKeywords(list)
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return trimKeywords(strings.Split(single, ","))
	}

	return nil
}

func trimKeywords(keywords []string) []string {
	var result []string
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			result = append(result, k)
		}
	}
	return result
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	// Remove markdown code blocks
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	// Find JSON object or array boundaries
	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startArr != -1 && endArr != -1 && endArr > startArr && (startObj == -1 || startArr < startObj) {
		// We have a JSON array
		return text[startArr : endArr+1]
	} else if startObj != -1 && endObj != -1 && endObj > startObj {
		// We have a JSON object
		return text[startObj : endObj+1]
	}

	return text
}
