package domain

type AlertStats struct {
	Total      int64                   `json:"total"`
	ByStatus   map[AlertStatus]int64   `json:"by_status"`
	ByCategory map[AlertCategory]int64 `json:"by_category"`
}

type StatsRequest struct {
	Minutes int `query:"minutes" validate:"min=1,max=1440"`
}
