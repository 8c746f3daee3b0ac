package services

import (
	"github.com/vecindia/condominio-api/internal/jobs"
)

// JobService exposes worker pool status for operational endpoints
type JobService struct {
	worker *jobs.Worker
}

// NewJobService creates a new job service
func NewJobService(worker *jobs.Worker) *JobService {
	return &JobService{
		worker: worker,
	}
}

// GetStatus returns the worker pool statistics
func (s *JobService) GetStatus() jobs.WorkerStats {
	return s.worker.GetStats()
}
