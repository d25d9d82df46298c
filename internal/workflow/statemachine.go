package workflow

import "printflow/internal/domain"

// The two status machines are fixed tables, not configurable workflows.
// Projects branch (cancel from either live state), tasks are a straight
// monotonic chain.

type projectTransition struct {
	From domain.ProjectStatus
	To   domain.ProjectStatus
}

var projectTransitions = []projectTransition{
	{From: domain.ProjectPending, To: domain.ProjectActive},
	{From: domain.ProjectActive, To: domain.ProjectCompleted},
	{From: domain.ProjectPending, To: domain.ProjectCancelled},
	{From: domain.ProjectActive, To: domain.ProjectCancelled},
}

// CheckProjectTransition validates a project status change against the
// transition table. Terminal origins always fail, whatever the target.
func CheckProjectTransition(from, to domain.ProjectStatus) error {
	if from.Terminal() {
		return domain.ErrTerminalState
	}
	for _, t := range projectTransitions {
		if t.From == from && t.To == to {
			return nil
		}
	}
	return domain.ErrInvalidTransition
}

var taskFlow = []domain.TaskStatus{
	domain.TaskPending,
	domain.TaskInProgress,
	domain.TaskCompleted,
}

// CheckTaskTransition validates a task status change. Only the next step of
// the pending -> in_progress -> completed chain is legal; moving backward,
// skipping a step or leaving completed all fail.
func CheckTaskTransition(from, to domain.TaskStatus) error {
	for i, s := range taskFlow {
		if s != from {
			continue
		}
		if i+1 < len(taskFlow) && taskFlow[i+1] == to {
			return nil
		}
		return domain.ErrInvalidTransition
	}
	return domain.ErrInvalidTransition
}
