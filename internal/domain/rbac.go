package domain

// EnforceRequest dibangun middleware dari klaim JWT, bukan dari body request.
type EnforceRequest struct {
	EmployeeID string
	CompanyID  string
	Resource   string
	Action     string
}
