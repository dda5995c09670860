package task

// Updater is a convenience handle bound to one task. Specialist runtimes
// receive an Updater rather than the whole Tracker so they can only touch
// their own task.
type Updater struct {
	tracker *Tracker
	taskID  string
}

func (u *Updater) TaskID() string { return u.taskID }

// StartWork moves the task from submitted to working.
func (u *Updater) StartWork() error {
	return u.tracker.Transition(u.taskID, StateWorking, "work started")
}

// Progress records a working->working progress event.
func (u *Updater) Progress(detail string) error {
	return u.tracker.Transition(u.taskID, StateWorking, detail)
}

// RequireInput pauses the task until the caller supplies clarification.
func (u *Updater) RequireInput(question string) error {
	return u.tracker.Transition(u.taskID, StateInputRequired, question)
}

// Resume moves an input-required task back to working.
func (u *Updater) Resume(detail string) error {
	return u.tracker.Transition(u.taskID, StateWorking, detail)
}

// Complete finishes the task successfully with its result text.
func (u *Updater) Complete(result string) error {
	return u.tracker.Complete(u.taskID, result)
}

// Fail finishes the task with a failure reason.
func (u *Updater) Fail(reason string) error {
	return u.tracker.Fail(u.taskID, reason)
}

// Cancel finishes the task as canceled.
func (u *Updater) Cancel(reason string) error {
	return u.tracker.Cancel(u.taskID, reason)
}
