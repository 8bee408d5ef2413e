package dto

// EmployeeForm carries the multipart field values of a create or update
// request. Course arrives as repeated form entries.
type EmployeeForm struct {
	Name        string
	Email       string
	Mobile      string
	Designation string
	Gender      string
	Course      []string
}

type SetActiveRequest struct {
	Active string `json:"active"`
}
