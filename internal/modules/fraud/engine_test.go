package fraud

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"velvetdir/internal/domain"
	"velvetdir/internal/pkg/utils"
)

func healthyProfile() *domain.Profile {
	lastActive := time.Now().Add(-1 * time.Hour)
	return &domain.Profile{
		Name:        "Alina",
		Age:         25,
		District:    "center",
		PriceStart:  150,
		Description: "Experienced companion for city tours and dinner dates, fluent in three languages.",
		Images:      utils.ListToString([]string{"https://cdn.velvetdir.example/p/1/a.jpg", "https://cdn.velvetdir.example/p/1/b.jpg"}),
		Services:    utils.ListToString([]string{"dinner-date", "city-tour"}),
		Phone:       "+77010000000",
		LastActiveAt: &lastActive,
	}
}

func indicatorTypes(a Analysis) []string {
	types := make([]string, 0, len(a.Indicators))
	for _, ind := range a.Indicators {
		types = append(types, ind.Type)
	}
	return types
}

func TestScore_HealthyProfileIsSafe(t *testing.T) {
	a := Score(healthyProfile(), time.Now())

	assert.Equal(t, 0, a.Score)
	assert.Equal(t, LevelSafe, a.Level)
	assert.Empty(t, a.Indicators)
}

func TestScore_UnderageAlwaysCritical(t *testing.T) {
	// Even an otherwise perfect profile must land on critical.
	p := healthyProfile()
	p.Age = 17

	a := Score(p, time.Now())

	assert.Equal(t, LevelCritical, a.Level)
	assert.GreaterOrEqual(t, a.Score, 100)
	assert.Contains(t, indicatorTypes(a), IndicatorUnderage)

	for _, ind := range a.Indicators {
		if ind.Type == IndicatorUnderage {
			assert.Equal(t, 100, ind.Points)
			assert.Equal(t, SeverityCritical, ind.Severity)
		}
	}
}

func TestScore_EmptyScamProfile(t *testing.T) {
	// images:[], description:"", price:30, age:16, no contacts
	p := &domain.Profile{
		Name:       "Anna",
		Age:        16,
		District:   "center",
		PriceStart: 30,
	}
	lastActive := time.Now().Add(-time.Hour)
	p.LastActiveAt = &lastActive

	a := Score(p, time.Now())

	types := indicatorTypes(a)
	assert.Contains(t, types, IndicatorNoImages)
	assert.Contains(t, types, IndicatorShortDescription)
	assert.Contains(t, types, IndicatorLowPrice)
	assert.Contains(t, types, IndicatorUnderage)
	assert.Contains(t, types, IndicatorNoContact)

	// 30 + 10 + 25 + 100 + 25 from the named indicators, plus
	// incomplete (description missing) and no services.
	assert.GreaterOrEqual(t, a.Score, 190)
	assert.Equal(t, LevelCritical, a.Level)
}

func TestScore_ScoreIsExactSumOfIndicators(t *testing.T) {
	p := &domain.Profile{}

	a := Score(p, time.Now())

	sum := 0
	for _, ind := range a.Indicators {
		sum += ind.Points
	}
	assert.Equal(t, sum, a.Score)

	// No indicator may fire twice.
	seen := map[string]bool{}
	for _, ind := range a.Indicators {
		assert.False(t, seen[ind.Type], "indicator %s fired twice", ind.Type)
		seen[ind.Type] = true
	}
}

func TestScore_Deterministic(t *testing.T) {
	p := healthyProfile()
	p.Age = 16
	p.Images = "[]"
	now := time.Now()

	first := Score(p, now)
	second := Score(p, now)

	assert.Equal(t, first, second)
}

func TestScore_StockPhotoHostCaseInsensitive(t *testing.T) {
	p := healthyProfile()
	p.Images = utils.ListToString([]string{
		"https://cdn.velvetdir.example/p/1/a.jpg",
		"https://image.ShutterStock.com/z/photo-123.jpg",
	})

	a := Score(p, time.Now())

	assert.Contains(t, indicatorTypes(a), IndicatorStockPhoto)
	assert.Equal(t, 40, a.Score)
	assert.Equal(t, LevelMedium, a.Level)
}

func TestScore_SingleImage(t *testing.T) {
	p := healthyProfile()
	p.Images = utils.ListToString([]string{"https://cdn.velvetdir.example/p/1/a.jpg"})

	a := Score(p, time.Now())

	assert.Contains(t, indicatorTypes(a), IndicatorSingleImage)
	assert.Equal(t, 15, a.Score)
	assert.Equal(t, LevelLow, a.Level)
}

func TestScore_SuspiciousKeywordFiresOnce(t *testing.T) {
	p := healthyProfile()
	p.Description = "Full prepayment via Western Union required before any meeting, no exceptions at all."

	a := Score(p, time.Now())

	count := 0
	for _, ind := range a.Indicators {
		if ind.Type == IndicatorSuspiciousKeyword {
			count++
			assert.Equal(t, 35, ind.Points)
		}
	}
	assert.Equal(t, 1, count)
}

func TestScore_GeneratedNameToken(t *testing.T) {
	p := healthyProfile()
	p.Name = "Anna95"

	a := Score(p, time.Now())

	assert.Contains(t, indicatorTypes(a), IndicatorGeneratedName)
	assert.Equal(t, 20, a.Score)

	// A single trailing digit is not enough.
	p.Name = "Anna9"
	a = Score(p, time.Now())
	assert.NotContains(t, indicatorTypes(a), IndicatorGeneratedName)
}

func TestScore_ActivityIndicators(t *testing.T) {
	now := time.Now()

	p := healthyProfile()
	p.LastActiveAt = nil
	a := Score(p, now)
	assert.Contains(t, indicatorTypes(a), IndicatorNeverActive)
	assert.NotContains(t, indicatorTypes(a), IndicatorLongInactive)

	stale := now.Add(-31 * 24 * time.Hour)
	p.LastActiveAt = &stale
	a = Score(p, now)
	assert.Contains(t, indicatorTypes(a), IndicatorLongInactive)
	assert.NotContains(t, indicatorTypes(a), IndicatorNeverActive)
}

func TestScore_IncompleteProfileCountsMissingFields(t *testing.T) {
	a := Score(&domain.Profile{}, time.Now())

	for _, ind := range a.Indicators {
		if ind.Type == IndicatorIncomplete {
			// name, age, district, description, price_start
			assert.Equal(t, 25, ind.Points)
			return
		}
	}
	t.Fatal("incomplete_profile indicator did not fire")
}

func TestScore_HighPrice(t *testing.T) {
	p := healthyProfile()
	p.PriceStart = 1500

	a := Score(p, time.Now())

	assert.Contains(t, indicatorTypes(a), IndicatorHighPrice)
	assert.Equal(t, 5, a.Score)
	assert.Equal(t, LevelSafe, a.Level)
}

func TestScore_NilProfileDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		a := Score(nil, time.Now())
		assert.Equal(t, LevelCritical, a.Level)
	})
}

func TestScore_IndicatorOrderIsStable(t *testing.T) {
	a := Score(&domain.Profile{}, time.Now())

	expected := []string{
		IndicatorNoImages,
		IndicatorNoContact,
		IndicatorShortDescription,
		IndicatorLowPrice,
		IndicatorUnderage,
		IndicatorNeverActive,
		IndicatorIncomplete,
		IndicatorNoServices,
	}
	assert.Equal(t, expected, indicatorTypes(a))
}
