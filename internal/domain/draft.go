package domain

import "time"

// Draft holds the field values of a task that is being composed but has not
// been added yet. The zero DueDate means no date has been entered.
type Draft struct {
	Name     string
	Priority Priority
	DueDate  time.Time
	Status   Status
}

// NewDraft returns a draft with the default priority and status.
func NewDraft() Draft {
	return Draft{
		Priority: PriorityLow,
		Status:   StatusIncomplete,
	}
}

// Reset restores the draft to NewDraft values.
func (d *Draft) Reset() {
	*d = NewDraft()
}
