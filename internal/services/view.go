package services

import (
	"slices"

	"task-list/internal/domain"
)

// filterTasks returns the tasks passing filter in their original order
func filterTasks(tasks []domain.Task, filter domain.FilterMode) []domain.Task {
	filtered := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if filter.Matches(task) {
			filtered = append(filtered, task)
		}
	}
	return filtered
}

// sortTasks orders tasks in place by sortMode; ties keep insertion order
func sortTasks(tasks []domain.Task, sortMode domain.SortMode) []domain.Task {
	slices.SortStableFunc(tasks, sortMode.Compare)
	return tasks
}
