package employee

type CreateEmployeeRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	Position     string `json:"position"`
	BranchID     *int64 `json:"branch_id"`
	DepartmentID *int64 `json:"department_id"`
}

type UpdateEmployeeRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Phone        *string `json:"phone"`
	Position     *string `json:"position"`
	Status       *string `json:"status" binding:"omitempty,oneof=Active Inactive"`
	BranchID     *int64  `json:"branch_id"`
	DepartmentID *int64  `json:"department_id"`
}

type DashboardStats struct {
	Employees   int64 `json:"employees"`
	Departments int64 `json:"departments"`
	Branches    int64 `json:"branches"`
}
