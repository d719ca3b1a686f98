package models

// Employee represents a staff member who may be responsible for assets.
type Employee struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Email        string `json:"email"`
	Credential   string `json:"credential,omitempty"`
	DepartmentID *int64 `json:"department_id,omitempty"`
}

// Redacted returns a copy of the employee with the credential cleared
func (e Employee) Redacted() Employee {
	e.Credential = ""
	return e
}
