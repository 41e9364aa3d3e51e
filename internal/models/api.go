package models

import "time"

// SignaturesResponse - ответ GET /api/signatures
type SignaturesResponse struct {
	State  string   `json:"state"`
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
	Colors []string `json:"colors"`
	Total  int      `json:"total"`
	Error  string   `json:"error,omitempty"`
}

// HealthStatus представляет статус здоровья сервиса
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Uptime    string    `json:"uptime"`
}
