package catalog

import (
	"time"

	"velvetdir/internal/domain"
	"velvetdir/internal/pkg/utils"
)

// ProfileSummary is a public listing row. Tier internals and fraud
// data never leave the admin surface.
type ProfileSummary struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Age            int      `json:"age"`
	District       string   `json:"district"`
	PriceStart     int      `json:"price_start"`
	Images         []string `json:"images"`
	Services       []string `json:"services"`
	Languages      []string `json:"languages"`
	IsVerified     bool     `json:"is_verified"`
	IsVelvetChoice bool     `json:"is_velvet_choice"`
	Boosted        bool     `json:"boosted"`
}

// ProfileDetail adds description and contact channels.
type ProfileDetail struct {
	ProfileSummary
	Description  string     `json:"description"`
	Phone        string     `json:"phone,omitempty"`
	Telegram     string     `json:"telegram,omitempty"`
	WhatsApp     string     `json:"whatsapp,omitempty"`
	Viber        string     `json:"viber,omitempty"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
	AgencyID     *int64     `json:"agency_id,omitempty"`
}

type ProfileListResponse struct {
	Profiles []ProfileSummary `json:"profiles"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

type AgencySummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	District    string `json:"district"`
	LogoURL     string `json:"logo_url,omitempty"`
	Description string `json:"description"`
}

type AgencyDetail struct {
	AgencySummary
	BannerURL string           `json:"banner_url,omitempty"`
	Phone     string           `json:"phone,omitempty"`
	Profiles  []ProfileSummary `json:"profiles"`
}

type AgencyListResponse struct {
	Agencies []AgencySummary `json:"agencies"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	Limit    int             `json:"limit"`
}

// StatsResponse is the only public aggregate: how many profiles are
// currently listed.
type StatsResponse struct {
	ActiveProfiles int64 `json:"active_profiles"`
}

func toSummary(p *domain.Profile, now time.Time) ProfileSummary {
	return ProfileSummary{
		ID:             p.ID,
		Name:           p.Name,
		Age:            p.Age,
		District:       p.District,
		PriceStart:     p.PriceStart,
		Images:         utils.StringToList(p.Images),
		Services:       utils.StringToList(p.Services),
		Languages:      utils.StringToList(p.Languages),
		IsVerified:     p.IsVerified,
		IsVelvetChoice: p.IsVelvetChoice,
		Boosted:        p.BoostActive(now),
	}
}

func toDetail(p *domain.Profile, now time.Time) ProfileDetail {
	return ProfileDetail{
		ProfileSummary: toSummary(p, now),
		Description:    p.Description,
		Phone:          p.Phone,
		Telegram:       p.Telegram,
		WhatsApp:       p.WhatsApp,
		Viber:          p.Viber,
		LastActiveAt:   p.LastActiveAt,
		AgencyID:       p.AgencyID,
	}
}

func toAgencySummary(a *domain.Agency) AgencySummary {
	return AgencySummary{
		ID:          a.ID,
		Name:        a.Name,
		District:    a.District,
		LogoURL:     a.LogoURL,
		Description: a.Description,
	}
}
