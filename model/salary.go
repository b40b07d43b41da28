package model

// SalarySummary is a salary run as listed by the portal.
type SalarySummary struct {
	SalaryID ID     `json:"salaryId"`
	Status   Status `json:"status"`
	Period   string `json:"period,omitempty"`
}
