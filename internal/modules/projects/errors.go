package projects

import "errors"

var ErrInvalidTaskType = errors.New("task type must be design, printing or logistics")
