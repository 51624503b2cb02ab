package workday

type CreateHolidayRequest struct {
	Name string `json:"name" binding:"required"`
	Date string `json:"date" binding:"required"`
}

type UpdateHolidayRequest struct {
	Name string `json:"name" binding:"required"`
	Date string `json:"date" binding:"required"`
}

type HolidayResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
}

type CalculateWorkingDaysRequest struct {
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	StartFullDay  *bool  `json:"start_full_day"`
	FinishFullDay *bool  `json:"finish_full_day"`
}

type CalculateWorkingDaysResponse struct {
	WorkingDays float64 `json:"working_days"`
}
