package catalog

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"velvetdir/internal/domain"
	"velvetdir/internal/repository"
)

// Service serves the public read surface: the filtered listing, profile
// and agency detail pages, and the site-wide stats counter. Engagement
// counters are bumped here as a side effect of serving the request;
// a failed bump is logged and never fails the response.
type Service struct {
	profiles ProfileRepository
	agencies AgencyRepository
}

func NewService(profiles ProfileRepository, agencies AgencyRepository) *Service {
	return &Service{profiles: profiles, agencies: agencies}
}

// ListProfiles returns one page of the public directory. Every profile
// that made it into the page gets its search_appearances bumped.
func (s *Service) ListProfiles(ctx context.Context, f repository.ProfileFilters, page, limit int) (*ProfileListResponse, error) {
	if d := strings.TrimSpace(f.District); d != "" && !domain.ValidDistrict(d) {
		return nil, ErrUnknownDistrict
	}
	if v := strings.TrimSpace(f.Service); v != "" && !domain.KnownService(v) {
		return nil, ErrUnknownService
	}
	page, limit = normalizePage(page, limit)

	now := time.Now()
	profiles, total, err := s.profiles.List(ctx, f, now, page, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(profiles))
	out := make([]ProfileSummary, 0, len(profiles))
	for i := range profiles {
		ids = append(ids, profiles[i].ID)
		out = append(out, toSummary(&profiles[i], now))
	}
	if err := s.profiles.BumpSearchAppearances(ctx, ids); err != nil {
		log.Printf("counter_bump_failed column=search_appearances count=%d error=%q", len(ids), err)
	}

	return &ProfileListResponse{Profiles: out, Total: total, Page: page, Limit: limit}, nil
}

// GetProfile returns one visible profile and counts the view.
func (s *Service) GetProfile(ctx context.Context, id int64) (*ProfileDetail, error) {
	p, err := s.visibleProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.profiles.IncrementCounter(ctx, id, "clicks"); err != nil {
		log.Printf("counter_bump_failed column=clicks profile_id=%d error=%q", id, err)
	}

	d := toDetail(p, time.Now())
	return &d, nil
}

// RecordContactClick counts a tap on any contact channel.
func (s *Service) RecordContactClick(ctx context.Context, id int64) error {
	if _, err := s.visibleProfile(ctx, id); err != nil {
		return err
	}
	return s.profiles.IncrementCounter(ctx, id, "contact_clicks")
}

func (s *Service) ListAgencies(ctx context.Context, page, limit int) (*AgencyListResponse, error) {
	page, limit = normalizePage(page, limit)

	agencies, total, err := s.agencies.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	out := make([]AgencySummary, 0, len(agencies))
	for i := range agencies {
		out = append(out, toAgencySummary(&agencies[i]))
	}
	return &AgencyListResponse{Agencies: out, Total: total, Page: page, Limit: limit}, nil
}

// GetAgency returns an agency page together with its visible roster.
func (s *Service) GetAgency(ctx context.Context, id int64) (*AgencyDetail, error) {
	a, err := s.agencies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgencyNotFound
		}
		return nil, err
	}

	roster, err := s.profiles.ListByAgencyID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	detail := &AgencyDetail{
		AgencySummary: toAgencySummary(a),
		BannerURL:     a.BannerURL,
		Phone:         a.Phone,
		Profiles:      make([]ProfileSummary, 0, len(roster)),
	}
	for i := range roster {
		detail.Profiles = append(detail.Profiles, toSummary(&roster[i], now))
	}
	return detail, nil
}

func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	count, err := s.profiles.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsResponse{ActiveProfiles: count}, nil
}

func (s *Service) visibleProfile(ctx context.Context, id int64) (*domain.Profile, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if p.IsDisabled {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return page, limit
}
