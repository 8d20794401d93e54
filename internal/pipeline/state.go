package pipeline

import (
	"sync"
	"time"

	"marketstudy/pkg/contracts/domain"
)

// RunStatus represents the status of a study run
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCancelled RunStatus = "cancelled"
)

// State is shared by the steps of one run. Steps run sequentially; the
// mutex guards readers outside the run.
type State struct {
	mu sync.RWMutex

	ID        string
	Status    RunStatus
	StartTime time.Time
	EndTime   *time.Time
	Error     string

	steps []*StepState
	index map[string]*StepState

	// Result is filled in by the analyze step and read by render.
	Result    domain.StudyResult
	artifacts []domain.Artifact
}

// NewState creates a pending run state for steps, in order.
func NewState(id string, steps []Step) *State {
	s := &State{
		ID:     id,
		Status: RunStatusPending,
		index:  make(map[string]*StepState, len(steps)),
	}
	for _, step := range steps {
		ss := NewStepState(step.ID(), step.Name())
		s.steps = append(s.steps, ss)
		s.index[step.ID()] = ss
	}
	return s
}

// Start marks the run as running
func (s *State) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Status = RunStatusRunning
	s.StartTime = time.Now()
}

// Complete marks the run as completed
func (s *State) Complete() {
	s.finish(RunStatusCompleted, nil)
}

// Fail marks the run as failed
func (s *State) Fail(err error) {
	s.finish(RunStatusFailed, err)
}

// Cancel marks the run as cancelled
func (s *State) Cancel(err error) {
	s.finish(RunStatusCancelled, err)
}

func (s *State) finish(status RunStatus, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = status
	if err != nil {
		s.Error = err.Error()
	}
}

// GetStatus returns the run status
func (s *State) GetStatus() RunStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Status
}

// Step returns the state of the step with id, or nil.
func (s *State) Step(id string) *StepState {
	return s.index[id]
}

// Steps returns the step states in execution order.
func (s *State) Steps() []*StepState {
	out := make([]*StepState, len(s.steps))
	copy(out, s.steps)
	return out
}

// AddArtifact records a file produced by the run.
func (s *State) AddArtifact(a domain.Artifact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts = append(s.artifacts, a)
}

// Artifacts returns the files produced so far, in the order recorded.
func (s *State) Artifacts() []domain.Artifact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Artifact, len(s.artifacts))
	copy(out, s.artifacts)
	return out
}

// Summary is the JSON view of a finished run.
type Summary struct {
	RunID     string            `json:"run_id"`
	Status    RunStatus         `json:"status"`
	StartTime time.Time         `json:"start_time"`
	EndTime   *time.Time        `json:"end_time,omitempty"`
	Error     string            `json:"error,omitempty"`
	Steps     []StepSummary     `json:"steps"`
	Artifacts []domain.Artifact `json:"artifacts"`
}

// StepSummary is the JSON view of one step.
type StepSummary struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Status     StepStatus `json:"status"`
	DurationMS int64      `json:"duration_ms"`
	Message    string     `json:"message,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// Summary returns a point-in-time copy of the run.
func (s *State) Summary() Summary {
	s.mu.RLock()
	out := Summary{
		RunID:     s.ID,
		Status:    s.Status,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Error:     s.Error,
	}
	s.mu.RUnlock()

	for _, ss := range s.steps {
		d := ss.Duration()
		ss.mu.RLock()
		out.Steps = append(out.Steps, StepSummary{
			ID:         ss.ID,
			Name:       ss.Name,
			Status:     ss.Status,
			DurationMS: d.Milliseconds(),
			Message:    ss.Message,
			Error:      ss.Error,
		})
		ss.mu.RUnlock()
	}
	out.Artifacts = s.Artifacts()
	return out
}
