package workflow

import (
	"testing"

	"printflow/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCheckProjectTransition(t *testing.T) {
	cases := []struct {
		name string
		from domain.ProjectStatus
		to   domain.ProjectStatus
		want error
	}{
		{"pending to active", domain.ProjectPending, domain.ProjectActive, nil},
		{"active to completed", domain.ProjectActive, domain.ProjectCompleted, nil},
		{"pending to cancelled", domain.ProjectPending, domain.ProjectCancelled, nil},
		{"active to cancelled", domain.ProjectActive, domain.ProjectCancelled, nil},
		{"pending to completed skips active", domain.ProjectPending, domain.ProjectCompleted, domain.ErrInvalidTransition},
		{"active back to pending", domain.ProjectActive, domain.ProjectPending, domain.ErrInvalidTransition},
		{"completed is terminal", domain.ProjectCompleted, domain.ProjectActive, domain.ErrTerminalState},
		{"cancelled is terminal", domain.ProjectCancelled, domain.ProjectActive, domain.ErrTerminalState},
		{"completed to cancelled", domain.ProjectCompleted, domain.ProjectCancelled, domain.ErrTerminalState},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckProjectTransition(tc.from, tc.to)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestCheckTaskTransition(t *testing.T) {
	cases := []struct {
		name string
		from domain.TaskStatus
		to   domain.TaskStatus
		want error
	}{
		{"pending to in_progress", domain.TaskPending, domain.TaskInProgress, nil},
		{"in_progress to completed", domain.TaskInProgress, domain.TaskCompleted, nil},
		{"pending skips to completed", domain.TaskPending, domain.TaskCompleted, domain.ErrInvalidTransition},
		{"in_progress back to pending", domain.TaskInProgress, domain.TaskPending, domain.ErrInvalidTransition},
		{"completed to in_progress", domain.TaskCompleted, domain.TaskInProgress, domain.ErrInvalidTransition},
		{"completed to pending", domain.TaskCompleted, domain.TaskPending, domain.ErrInvalidTransition},
		{"no self loop", domain.TaskPending, domain.TaskPending, domain.ErrInvalidTransition},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckTaskTransition(tc.from, tc.to)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}
