package position

type CreatePositionRequest struct {
	Name         string `json:"name" binding:"required"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
}

type UpdatePositionRequest struct {
	Name         string `json:"name" binding:"required"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
}

type PositionResponse struct {
	ID             string `json:"id"`
	CompanyID      string `json:"company_id"`
	Name           string `json:"name"`
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name,omitempty"`
}
