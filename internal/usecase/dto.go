package usecase

import "time"

type CreateLeadInput struct {
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Source string `json:"source,omitempty"`
}

type CreateLeadOutput struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Source           string    `json:"source"`
	CreatedAt        time.Time `json:"created_at"`
	WhatsAppGroupURL string    `json:"whatsapp_group_url"`
	Message          string    `json:"message"`
}

type ListLeadsInput struct {
	Skip  int
	Limit int
}

type LeadStatsOutput struct {
	TotalLeads     int64 `json:"total_leads"`
	LeadsToday     int64 `json:"leads_today"`
	LeadsThisWeek  int64 `json:"leads_this_week"`
	LeadsThisMonth int64 `json:"leads_this_month"`
}

type MessageOutput struct {
	Message string `json:"message"`
}
