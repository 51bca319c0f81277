package models

// TaskStatus represents the stored status of a task
type TaskStatus string

const (
	TaskStatusTODO       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
)

// TaskPriority represents the stored priority of a task
type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "L"
	TaskPriorityMedium   TaskPriority = "M"
	TaskPriorityHigh     TaskPriority = "H"
	TaskPriorityCritical TaskPriority = "C"
)

// statusTransitions is the fixed adjacency table for task statuses. It is
// built once and never mutated; DONE and CANCELLED are terminal.
var statusTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusTODO:       {TaskStatusInProgress, TaskStatusCancelled},
	TaskStatusInProgress: {TaskStatusDone, TaskStatusCancelled},
	TaskStatusDone:       {},
	TaskStatusCancelled:  {},
}

// Valid reports whether s is one of the four known statuses.
func (s TaskStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is a legal
// transition. A same-status request is not a transition; callers treat it
// as a no-op before consulting this table.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether p is one of the four known priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	}
	return false
}
