// Package authz maps (user, resource) pairs to the set of operations the user
// may perform, replacing per-route role branching with a single decision
// point that handlers consult for ownership checks.
package authz

import "github.com/opencampus/portal/internal/models"

// Action identifies an operation against an assignment or submission.
type Action string

// Actions evaluated against assignments and submissions.
const (
	ReadAssignment  Action = "assignment:read"
	Submit          Action = "assignment:submit"
	ListSubmissions Action = "assignment:list-submissions"
	Evaluate        Action = "submission:evaluate"
	Download        Action = "submission:download"
)

// Set is the collection of actions allowed for a (user, resource) pair.
type Set map[Action]struct{}

// Has reports whether the action is in the set.
func (s Set) Has(action Action) bool {
	_, ok := s[action]
	return ok
}

func (s Set) add(action Action) {
	s[action] = struct{}{}
}

// ForAssignment computes the allowed operations for a user on an assignment.
func ForAssignment(user models.User, assignment models.Assignment) Set {
	set := make(Set)

	// Any authenticated user may read a single assignment.
	set.add(ReadAssignment)

	if user.IsStudent() {
		set.add(Submit)
	}

	if user.IsTeacher() && assignment.OwnedBy(user.ID) {
		set.add(ListSubmissions)
	}

	return set
}

// ForSubmission computes the allowed operations for a user on a submission.
// Grading belongs to the parent assignment's teacher; download belongs to
// that teacher and to the submitting student.
func ForSubmission(user models.User, submission models.Submission) Set {
	set := make(Set)

	if user.IsTeacher() && submission.Assignment.OwnedBy(user.ID) {
		set.add(Evaluate)
		set.add(Download)
	}

	if user.IsStudent() && submission.StudentID == user.ID {
		set.add(Download)
	}

	return set
}

// CanAssignment is a convenience wrapper around ForAssignment.
func CanAssignment(user models.User, assignment models.Assignment, action Action) bool {
	return ForAssignment(user, assignment).Has(action)
}

// CanSubmission is a convenience wrapper around ForSubmission.
func CanSubmission(user models.User, submission models.Submission, action Action) bool {
	return ForSubmission(user, submission).Has(action)
}
