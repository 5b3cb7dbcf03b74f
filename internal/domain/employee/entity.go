package employee

// Employee as served by the attendance backend. Only the fields the dashboard shows are kept.
type Employee struct {
	EmployeeID string  `json:"employee_id"`
	Name       *string `json:"name"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	JoinDate   *string `json:"join_date"`
}
