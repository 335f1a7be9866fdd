package services

import (
	"context"
	_ "embed"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/apperrors"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/models"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/repositories"
)

//go:embed questionnaire.yaml
var questionnaireYAML []byte

// Questionnaire is the onboarding self-assessment definition served to the
// frontend: five domains, each with one self-rating slider and two concept
// familiarity questions.
type Questionnaire struct {
	Domains []QuestionnaireDomain `yaml:"domains" json:"domains"`
}

// QuestionnaireDomain is one scored domain of the questionnaire.
type QuestionnaireDomain struct {
	Key              string   `yaml:"key" json:"key"`
	Title            string   `yaml:"title" json:"title"`
	RatingQuestion   string   `yaml:"rating_question" json:"rating_question"`
	ConceptQuestions []string `yaml:"concept_questions" json:"concept_questions"`
}

// Concept familiarity answer values.
const (
	AnswerYes      = "Yes"
	AnswerSomewhat = "Somewhat"
	AnswerNo       = "No"
)

// DomainAnswers carries a participant's answers for one domain.
type DomainAnswers struct {
	SelfRating     int      `json:"self_rating"` // 1-5
	ConceptAnswers []string `json:"concept_answers"`
}

// AssessmentSubmission is the full questionnaire response.
type AssessmentSubmission struct {
	Answers map[string]DomainAnswers `json:"answers"` // keyed by domain key

	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	Profession     string `json:"profession"`
	EducationLevel string `json:"education_level"`
}

// AssessmentResult summarizes a completed assessment.
type AssessmentResult struct {
	Scores        models.AssessmentScore `json:"scores"`
	Total         int                    `json:"total"`
	LevelCategory string                 `json:"level_category"`
	Profile       *models.UserProfile    `json:"profile"`
}

// AssessmentService scores the onboarding questionnaire and seeds the
// user's cognitive profile from the result.
type AssessmentService interface {
	// Questionnaire returns the questionnaire definition.
	Questionnaire() *Questionnaire

	// Complete scores a submission, derives the user's level category,
	// expertise, and load capacity, and persists the resulting profile.
	Complete(ctx context.Context, userID string, submission *AssessmentSubmission) (*AssessmentResult, error)
}

type assessmentService struct {
	questionnaire *Questionnaire
	profiles      repositories.UserProfileRepository
	logger        *zap.Logger
}

// NewAssessmentService parses the embedded questionnaire and creates the
// assessment service.
func NewAssessmentService(profiles repositories.UserProfileRepository, logger *zap.Logger) (AssessmentService, error) {
	var q Questionnaire
	if err := yaml.Unmarshal(questionnaireYAML, &q); err != nil {
		return nil, fmt.Errorf("failed to parse questionnaire: %w", err)
	}
	if len(q.Domains) == 0 {
		return nil, fmt.Errorf("questionnaire has no domains")
	}

	return &assessmentService{
		questionnaire: &q,
		profiles:      profiles,
		logger:        logger.Named("assessment"),
	}, nil
}

// Questionnaire implements AssessmentService.
func (s *assessmentService) Questionnaire() *Questionnaire {
	return s.questionnaire
}

// Complete implements AssessmentService.
func (s *assessmentService) Complete(ctx context.Context, userID string, submission *AssessmentSubmission) (*AssessmentResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", apperrors.ErrInvalidAssessment)
	}

	domainScores := make(map[string]int, len(s.questionnaire.Domains))
	for _, domain := range s.questionnaire.Domains {
		answers, ok := submission.Answers[domain.Key]
		if !ok {
			return nil, fmt.Errorf("%w: missing answers for domain %s", apperrors.ErrInvalidAssessment, domain.Key)
		}
		score, err := scoreDomain(domain, answers)
		if err != nil {
			return nil, err
		}
		domainScores[domain.Key] = score
	}

	scores := models.AssessmentScore{
		DataAnalysisFundamentals: domainScores["data_analysis_fundamentals"],
		BusinessAnalytics:        domainScores["business_analytics"],
		ForecastingStatistics:    domainScores["forecasting_statistics"],
		DataVisualization:        domainScores["data_visualization"],
		DomainKnowledgeRetail:    domainScores["domain_knowledge_retail"],
	}
	total := scores.Total()
	level := models.LevelForTotal(total)

	expertise := clamp(total/4, 1, 5)
	capacity := clamp(total/7, 1, 3)

	profile, err := s.profiles.UpdateWithLock(ctx, userID, func(p *models.UserProfile) error {
		p.SQLExpertiseLevel = expertise
		p.CognitiveLoadCapacity = capacity
		p.ConceptLevels = models.ConceptLevelsForExpertise(expertise)
		p.LevelCategory = level
		p.AssessmentTotal = total
		if submission.Age > 0 {
			p.Age = submission.Age
		}
		if submission.Gender != "" {
			p.Gender = submission.Gender
		}
		if submission.Profession != "" {
			p.Profession = submission.Profession
		}
		if submission.EducationLevel != "" {
			p.EducationLevel = submission.EducationLevel
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save assessed profile: %w", err)
	}

	s.logger.Info("assessment completed",
		zap.String("user_id", userID),
		zap.Int("total", total),
		zap.String("level", level),
		zap.Int("expertise", expertise),
		zap.Int("capacity", capacity))

	return &AssessmentResult{
		Scores:        scores,
		Total:         total,
		LevelCategory: level,
		Profile:       profile,
	}, nil
}

// scoreDomain converts one domain's answers into a 0-4 score. The
// self-rating sets the base (1-2 -> 1, 3 -> 2, 4-5 -> 4); two confident
// concept answers add a point, any negative answer removes one.
func scoreDomain(domain QuestionnaireDomain, answers DomainAnswers) (int, error) {
	if answers.SelfRating < 1 || answers.SelfRating > 5 {
		return 0, fmt.Errorf("%w: self rating for %s must be 1-5", apperrors.ErrInvalidAssessment, domain.Key)
	}
	if len(answers.ConceptAnswers) != len(domain.ConceptQuestions) {
		return 0, fmt.Errorf("%w: domain %s expects %d concept answers",
			apperrors.ErrInvalidAssessment, domain.Key, len(domain.ConceptQuestions))
	}

	allYes := true
	anyNo := false
	for _, answer := range answers.ConceptAnswers {
		switch answer {
		case AnswerYes:
		case AnswerSomewhat:
			allYes = false
		case AnswerNo:
			allYes = false
			anyNo = true
		default:
			return 0, fmt.Errorf("%w: unknown concept answer %q", apperrors.ErrInvalidAssessment, answer)
		}
	}

	var score int
	switch {
	case answers.SelfRating >= 4:
		score = 4
	case answers.SelfRating == 3:
		score = 2
	default:
		score = 1
	}

	if allYes {
		score = min(4, score+1)
	} else if anyNo {
		score = max(0, score-1)
	}

	return score, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
