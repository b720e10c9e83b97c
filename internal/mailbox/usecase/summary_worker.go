package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/NoamFav/EnronBox/internal/mailbox/repository"
	"github.com/NoamFav/EnronBox/pkg/ai"
	"github.com/NoamFav/EnronBox/pkg/sse"
)

// SummaryJob represents a job to generate a summary for one email
type SummaryJob struct {
	Username string
	EmailID  int
	Subject  string
	Body     string
}

// SummaryWorkerService handles background summary generation. Results
// land in the summary cache and are pushed to the user over SSE as
// "summary_update" events.
type SummaryWorkerService struct {
	summaryRepo repository.EmailSummaryRepository
	aiService   ai.Service
	sseManager  *sse.Manager
	logger      *slog.Logger
	jobQueue    chan SummaryJob
	workerWg    sync.WaitGroup
	workerCount int
	started     bool
	mu          sync.Mutex
}

// NewSummaryWorkerService creates a new summary worker service
func NewSummaryWorkerService(
	summaryRepo repository.EmailSummaryRepository,
	sseManager *sse.Manager,
	workerCount int,
	logger *slog.Logger,
) *SummaryWorkerService {
	if workerCount <= 0 {
		workerCount = 3
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SummaryWorkerService{
		summaryRepo: summaryRepo,
		sseManager:  sseManager,
		logger:      logger,
		jobQueue:    make(chan SummaryJob, 500),
		workerCount: workerCount,
	}
}

// SetAIService sets the provider chain used for summarization.
func (s *SummaryWorkerService) SetAIService(svc ai.Service) {
	s.aiService = svc
}

// Start starts the summary workers
func (s *SummaryWorkerService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}

	for i := 0; i < s.workerCount; i++ {
		s.workerWg.Add(1)
		go s.worker(i)
	}
	s.started = true
	s.logger.Info("summary workers started", "count", s.workerCount)
}

// Stop stops all workers gracefully
func (s *SummaryWorkerService) Stop() {
	close(s.jobQueue)
	s.workerWg.Wait()
	s.logger.Info("summary workers stopped")
}

func (s *SummaryWorkerService) worker(id int) {
	defer s.workerWg.Done()

	for job := range s.jobQueue {
		s.processJob(job)
	}

	s.logger.Debug("summary worker exiting", "worker", id)
}

func (s *SummaryWorkerService) processJob(job SummaryJob) {
	if s.aiService == nil {
		return
	}

	// Cache hit still gets announced so a late subscriber catches up.
	existing, err := s.summaryRepo.GetSummary(job.Username, job.EmailID)
	if err != nil {
		s.logger.Warn("summary cache check failed", "email_id", job.EmailID, "error", err)
		return
	}
	if existing != nil {
		s.sendSummaryUpdate(job.Username, job.EmailID, existing.Summary)
		return
	}

	emailText := fmt.Sprintf("Subject: %s\n\n%s", job.Subject, job.Body)
	if len(emailText) > maxSummaryInput {
		emailText = emailText[:maxSummaryInput]
	}

	summary, err := s.aiService.Summarize(context.Background(), emailText, 3)
	if err != nil {
		s.logger.Warn("background summarization failed", "email_id", job.EmailID, "error", err)
		return
	}

	if err := s.summaryRepo.SaveSummary(job.Username, job.EmailID, summary); err != nil {
		s.logger.Warn("summary cache store failed", "email_id", job.EmailID, "error", err)
		return
	}

	s.sendSummaryUpdate(job.Username, job.EmailID, summary)
}

func (s *SummaryWorkerService) sendSummaryUpdate(username string, emailID int, summary string) {
	if s.sseManager == nil {
		return
	}

	s.sseManager.SendToUser(username, "summary_update", map[string]interface{}{
		"email_id": emailID,
		"summary":  summary,
	})
}

// QueueJob adds a single job to the queue (non-blocking)
func (s *SummaryWorkerService) QueueJob(job SummaryJob) bool {
	select {
	case s.jobQueue <- job:
		return true
	default:
		return false // Queue full
	}
}

// QueueSummaries returns cached summaries immediately and queues the
// remaining emails for background processing.
func (s *SummaryWorkerService) QueueSummaries(username string, jobs []SummaryJob) (map[int]string, int, error) {
	if len(jobs) == 0 {
		return map[int]string{}, 0, nil
	}

	emailIDs := make([]int, len(jobs))
	for i, job := range jobs {
		emailIDs[i] = job.EmailID
	}

	cached, err := s.summaryRepo.GetSummaries(username, emailIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get cached summaries: %w", err)
	}

	queued := 0
	for _, job := range jobs {
		if _, hasCached := cached[job.EmailID]; hasCached {
			continue
		}
		job.Username = username
		if s.QueueJob(job) {
			queued++
		}
	}

	return cached, queued, nil
}
