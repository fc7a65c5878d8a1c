package domain

import (
	"task-list/internal/repository"
)

// TaskMapper handles conversion between domain tasks and collection records.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// FromRecord converts a collection record to a domain Task.
func (m *TaskMapper) FromRecord(record repository.Task) Task {
	return Task{
		ID:       record.ID,
		Name:     record.Name,
		Priority: Priority(record.Priority),
		DueDate:  record.DueDate,
		Status:   Status(record.Status),
	}
}

// FromRecordSlice converts records to domain Tasks, keeping their order.
func (m *TaskMapper) FromRecordSlice(records []*repository.Task) []Task {
	tasks := make([]Task, len(records))
	for i, record := range records {
		tasks[i] = m.FromRecord(*record)
	}
	return tasks
}

// DraftToRecord builds the record for a new task from a draft. The ID is left
// zero for the backend to assign.
func (m *TaskMapper) DraftToRecord(draft Draft) repository.Task {
	return repository.Task{
		Name:     draft.Name,
		Priority: string(draft.Priority),
		DueDate:  NormalizeDate(draft.DueDate),
		Status:   string(draft.Status),
	}
}
