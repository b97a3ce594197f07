package models

// Employee is a single row of the employee directory as returned by the
// backend. The client only displays these; all editing happens server-side.
type Employee struct {
	ID       int64  `json:"empId"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	JobRole  string `json:"jobRole"`
	Status   string `json:"status"`
}
