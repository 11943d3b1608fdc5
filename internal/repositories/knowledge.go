package repositories

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"hireflow/interview-engine/internal/models"
)

type KnowledgeRepository interface {
	FindByTechnology(technology string, limit int, excludeTexts []string) ([]models.KnowledgeQuestion, error)
	CreateBatch(questions []*models.KnowledgeQuestion) error
}

type knowledgeRepository struct {
	db *gorm.DB
}

func NewKnowledgeRepository(db *gorm.DB) KnowledgeRepository {
	return &knowledgeRepository{db: db}
}

// FindByTechnology implements KnowledgeRepository. excludeTexts carries the
// question texts marked bad for the requesting job; matching is
// case-insensitive on trimmed text so model paraphrases of the exclusion
// list still pass through to the post-filter.
func (r *knowledgeRepository) FindByTechnology(technology string, limit int, excludeTexts []string) ([]models.KnowledgeQuestion, error) {
	var questions []models.KnowledgeQuestion
	if err := r.db.
		Where("technology = ?", technology).
		Order("created_at ASC").
		Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch knowledge bank: %w", err)
	}

	excluded := make(map[string]struct{}, len(excludeTexts))
	for _, text := range excludeTexts {
		excluded[strings.ToLower(strings.TrimSpace(text))] = struct{}{}
	}

	var filtered []models.KnowledgeQuestion
	for _, q := range questions {
		if _, bad := excluded[strings.ToLower(strings.TrimSpace(q.QuestionText))]; bad {
			continue
		}
		filtered = append(filtered, q)
		if limit > 0 && len(filtered) >= limit {
			break
		}
	}

	return filtered, nil
}

// CreateBatch implements KnowledgeRepository.
func (r *knowledgeRepository) CreateBatch(questions []*models.KnowledgeQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	if err := r.db.Create(questions).Error; err != nil {
		return fmt.Errorf("failed to create knowledge questions: %w", err)
	}
	return nil
}
