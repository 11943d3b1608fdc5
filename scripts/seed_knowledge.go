package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"

	"hireflow/interview-engine/internal/config"
	"hireflow/interview-engine/internal/models"
	"hireflow/interview-engine/internal/repositories"
	"hireflow/interview-engine/internal/services"
)

type seedQuestion struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords"`
}

// seed_knowledge loads a JSON file of the form
// {"golang": [{"question": ..., "answer": ..., "keywords": [...]}], ...}
// into the knowledge bank and mirrors each entry into Qdrant.
func main() {
	log.Println("🚀 Starting knowledge bank seeding...")

	seedPath := "./seed_data/knowledge_bank.json"
	if len(os.Args) > 1 {
		seedPath = os.Args[1]
	}

	data, err := os.ReadFile(seedPath)
	if err != nil {
		log.Fatalf("❌ Failed to read seed file %s: %v", seedPath, err)
	}

	var bank map[string][]seedQuestion
	if err := json.Unmarshal(data, &bank); err != nil {
		log.Fatalf("❌ Failed to parse seed file: %v", err)
	}

	// Load configuration
	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	knowledgeRepo := repositories.NewKnowledgeRepository(db)

	// Initialize services
	geminiService, err := services.NewGeminiService(
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.EmbedModel,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	ctx := context.Background()

	successCount := 0
	failCount := 0

	for technology, items := range bank {
		technology = strings.ToLower(strings.TrimSpace(technology))
		log.Printf("\n📚 Seeding technology: %s (%d questions)", technology, len(items))

		rows := make([]*models.KnowledgeQuestion, 0, len(items))
		for _, item := range items {
			if strings.TrimSpace(item.Question) == "" {
				continue
			}
			rows = append(rows, &models.KnowledgeQuestion{
				ID:           uuid.New(),
				Technology:   technology,
				QuestionText: item.Question,
				ModelAnswer:  item.Answer,
				Keywords:     item.Keywords,
			})
		}

		if err := knowledgeRepo.CreateBatch(rows); err != nil {
			log.Printf("   ❌ Failed to insert questions: %v", err)
			failCount += len(rows)
			continue
		}

		for i, row := range rows {
			embedding, err := geminiService.GenerateEmbedding(ctx, row.ModelAnswer)
			if err != nil {
				log.Printf("   ❌ Failed to embed question %d: %v", i+1, err)
				failCount++
				continue
			}

			if err := qdrantService.UpsertQuestion(ctx, row.ID, technology, row.QuestionText, embedding); err != nil {
				log.Printf("   ❌ Failed to store question %d: %v", i+1, err)
				failCount++
				continue
			}

			successCount++
			if (i+1)%5 == 0 || i == len(rows)-1 {
				log.Printf("   📊 Progress: %d/%d questions stored", i+1, len(rows))
			}
		}
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Seeding Summary:")
	log.Printf("   ✅ Successful: %d questions", successCount)
	log.Printf("   ❌ Failed: %d questions", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some questions failed to seed. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ Knowledge bank seeded successfully!")
}
