package dto

// StudentDashboardResponse aggregates a student's progress across all active
// assignments.
type StudentDashboardResponse struct {
	TotalAssignments int     `json:"totalAssignments"`
	Submitted        int     `json:"submitted"`
	Evaluated        int     `json:"evaluated"`
	Pending          int     `json:"pending"`
	Overdue          int     `json:"overdue"`
	AverageMarks     float64 `json:"averageMarks"`
}

// TeacherDashboardResponse aggregates grading workload for a teacher.
type TeacherDashboardResponse struct {
	Assignments     int `json:"assignments"`
	Submissions     int `json:"submissions"`
	Evaluated       int `json:"evaluated"`
	AwaitingGrading int `json:"awaitingGrading"`
}
