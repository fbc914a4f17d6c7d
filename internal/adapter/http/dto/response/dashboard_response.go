package response

import "tsmit_os/internal/domain/dashboard"

type StatusCountResponse struct {
	Status StatusResponse `json:"status"`
	Count  int            `json:"count"`
}

type AnalystCountResponse struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

type DashboardResponse struct {
	TotalCount         int                    `json:"totalCount"`
	ActiveCount        int                    `json:"activeCount"`
	FinalCount         int                    `json:"finalCount"`
	UnknownCount       int                    `json:"unknownCount"`
	PerStatus          []StatusCountResponse  `json:"perStatus"`
	CreatedByAnalyst   []AnalystCountResponse `json:"createdByAnalyst"`
	DeliveredByAnalyst []AnalystCountResponse `json:"deliveredByAnalyst"`
}

func FromDashboard(s dashboard.Stats) DashboardResponse {
	return DashboardResponse{
		TotalCount:   s.TotalCount,
		ActiveCount:  s.ActiveCount,
		FinalCount:   s.FinalCount,
		UnknownCount: s.UnknownCount,
		PerStatus: FromList(s.PerStatus, func(c dashboard.StatusCount) StatusCountResponse {
			return StatusCountResponse{Status: FromStatus(c.Status), Count: c.Count}
		}),
		CreatedByAnalyst:   FromList(s.CreatedByAnalyst, fromAnalystCount),
		DeliveredByAnalyst: FromList(s.DeliveredByAnalyst, fromAnalystCount),
	}
}

func fromAnalystCount(c dashboard.AnalystCount) AnalystCountResponse {
	return AnalystCountResponse(c)
}
