package services

import (
	"context"
	"fmt"
	"log"

	"github.com/fairwaylab/swingcoach/internal/models"
	"github.com/fairwaylab/swingcoach/internal/repository"
)

// SectionService manages section groups and swing sections: time-range and
// phase-tag validation on write, and AI-summarized coach text.
type SectionService struct {
	groups   *repository.SectionGroupRepository
	sections *repository.SwingSectionRepository
	ai       *AIService
}

func NewSectionService(groups *repository.SectionGroupRepository, sections *repository.SwingSectionRepository, ai *AIService) *SectionService {
	return &SectionService{groups: groups, sections: sections, ai: ai}
}

func (s *SectionService) CreateGroup(ctx context.Context, videoID string, sessionID *string) (*models.SectionGroup, error) {
	return s.groups.Create(ctx, repository.CreateSectionGroupInput{VideoID: videoID, SessionID: sessionID})
}

func (s *SectionService) AddSection(ctx context.Context, input repository.CreateSwingSectionInput) (*models.SwingSection, error) {
	if err := validateSectionRange(input.StartSec, input.EndSec); err != nil {
		return nil, err
	}
	if err := validateTags(input.Tags); err != nil {
		return nil, err
	}
	return s.sections.Create(ctx, input)
}

func (s *SectionService) UpdateSection(ctx context.Context, sectionID string, input repository.UpdateSwingSectionInput) (*models.SwingSection, error) {
	if input.StartSec != nil || input.EndSec != nil {
		current, err := s.sections.GetByID(ctx, sectionID)
		if err != nil {
			return nil, err
		}
		start, end := current.StartSec, current.EndSec
		if input.StartSec != nil {
			start = *input.StartSec
		}
		if input.EndSec != nil {
			end = *input.EndSec
		}
		if err := validateSectionRange(start, end); err != nil {
			return nil, err
		}
	}
	if err := validateTags(input.Tags); err != nil {
		return nil, err
	}
	return s.sections.UpdatePartial(ctx, sectionID, input)
}

func (s *SectionService) DeleteSection(ctx context.Context, sectionID string) (bool, error) {
	return s.sections.Delete(ctx, sectionID)
}

// AttachCoachComment stores the comment together with its summary. A
// degraded summary (truncation fallback) is logged but still stored.
func (s *SectionService) AttachCoachComment(ctx context.Context, sectionID, comment string) (*models.SwingSection, error) {
	result := s.ai.SummarizeCoachComment(ctx, comment)
	if result.Degraded {
		log.Printf("section %s: comment summary degraded: %s", sectionID, result.Reason)
	}
	return s.sections.SetCoachComment(ctx, sectionID, comment, result.Text)
}

func (s *SectionService) SetOverallFeedback(ctx context.Context, sectionGroupID, feedback string) (*models.SectionGroup, error) {
	result := s.ai.SummarizeOverallFeedback(ctx, feedback)
	if result.Degraded {
		log.Printf("section group %s: feedback summary degraded: %s", sectionGroupID, result.Reason)
	}
	return s.groups.SetOverallFeedback(ctx, sectionGroupID, feedback, result.Text)
}

func (s *SectionService) SetNextTrainingMenu(ctx context.Context, sectionGroupID, menu string) (*models.SectionGroup, error) {
	result := s.ai.SummarizeTrainingMenu(ctx, menu)
	if result.Degraded {
		log.Printf("section group %s: training menu summary degraded: %s", sectionGroupID, result.Reason)
	}
	return s.groups.SetNextTrainingMenu(ctx, sectionGroupID, menu, result.Text)
}

func validateSectionRange(startSec, endSec float64) error {
	if startSec < 0 {
		return fmt.Errorf("%w: start_sec must not be negative", ErrInvalidInput)
	}
	if startSec > endSec {
		return fmt.Errorf("%w: start_sec %.2f exceeds end_sec %.2f", ErrInvalidInput, startSec, endSec)
	}
	return nil
}

func validateTags(tags []string) error {
	for _, tag := range tags {
		if !models.IsSwingPhaseTag(tag) {
			return fmt.Errorf("%w: unknown swing phase tag %q", ErrInvalidInput, tag)
		}
	}
	return nil
}
