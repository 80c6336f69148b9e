package service

import (
	"context"

	"github.com/xolan/well/internal/ai"
	"github.com/xolan/well/internal/progress"
)

// SummaryService asks the AI orchestrator for a summary of today.
type SummaryService struct {
	tracker      *TrackerService
	orchestrator *ai.Orchestrator
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(tracker *TrackerService, orchestrator *ai.Orchestrator) *SummaryService {
	return &SummaryService{tracker: tracker, orchestrator: orchestrator}
}

// Orchestrator exposes the state machine for asynchronous callers.
func (s *SummaryService) Orchestrator() *ai.Orchestrator {
	return s.orchestrator
}

// Input builds the summary input from today's record and the goals.
func (s *SummaryService) Input() (ai.Input, error) {
	rec, err := s.tracker.TodayRecord()
	if err != nil {
		return ai.Input{}, err
	}
	return ai.Input{
		Date:    rec.Date,
		Metrics: progress.ForRecord(rec, s.tracker.Goals()),
	}, nil
}

// Prompt returns the prompt that Generate would send.
func (s *SummaryService) Prompt() (string, error) {
	in, err := s.Input()
	if err != nil {
		return "", err
	}
	return ai.BuildPrompt(in), nil
}

// Generate requests today's summary and waits for the result.
func (s *SummaryService) Generate(ctx context.Context, credential string) (*SummaryResult, error) {
	in, err := s.Input()
	if err != nil {
		return nil, err
	}

	text, err := s.orchestrator.Run(ctx, credential, in)
	if err != nil {
		return nil, err
	}
	return &SummaryResult{Date: in.Date, Text: text}, nil
}
