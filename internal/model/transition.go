package model

// CompletedAfterUpdate returns the completion flag a task should carry after
// an edit that sets its status to next.
//
// Moving to done always completes the task. Any other status keeps the
// previous flag, so a completed task edited back to "todo" stays completed
// until it is toggled.
func CompletedAfterUpdate(prevCompleted bool, next Status) bool {
	if next == StatusDone {
		return true
	}
	return prevCompleted
}

// Toggle flips the completion flag and returns the resulting
// (completed, status) pair.
//
// Completing a task marks it done. Un-completing a done task moves it back
// to todo; un-completing a task in any other status leaves the status alone.
func Toggle(completed bool, status Status) (bool, Status) {
	next := !completed
	switch {
	case next:
		return true, StatusDone
	case status == StatusDone:
		return false, StatusTodo
	default:
		return false, status
	}
}
