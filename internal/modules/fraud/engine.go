package fraud

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"velvetdir/internal/domain"
	"velvetdir/internal/pkg/utils"
)

// Severity of a single indicator.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Level is the overall risk bucket derived from the score.
type Level string

const (
	LevelSafe     Level = "safe"
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// Flagged reports whether the level is worth operator attention.
func (l Level) Flagged() bool {
	switch l {
	case LevelMedium, LevelHigh, LevelCritical:
		return true
	}
	return false
}

// Indicator is one triggered rule with its contribution to the score.
type Indicator struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Points      int      `json:"points"`
}

// Analysis is the full result for one profile snapshot. Computed on
// demand, never persisted.
type Analysis struct {
	Score      int         `json:"score"`
	Level      Level       `json:"level"`
	Indicators []Indicator `json:"indicators"`
}

const (
	IndicatorNoImages          = "no_images"
	IndicatorSingleImage       = "single_image"
	IndicatorStockPhoto        = "stock_photo"
	IndicatorNoContact         = "no_contact"
	IndicatorShortDescription  = "short_description"
	IndicatorSuspiciousKeyword = "suspicious_keyword"
	IndicatorLowPrice          = "low_price"
	IndicatorHighPrice         = "high_price"
	IndicatorUnderage          = "underage"
	IndicatorUnusualAge        = "unusual_age"
	IndicatorNeverActive       = "never_active"
	IndicatorLongInactive      = "long_inactive"
	IndicatorIncomplete        = "incomplete_profile"
	IndicatorNoServices        = "no_services"
	IndicatorGeneratedName     = "generated_name"
)

const (
	minDescriptionLength = 50
	lowPriceThreshold    = 50
	highPriceThreshold   = 1000
	adultAge             = 18
	unusualAgeThreshold  = 65
	inactivityWindow     = 30 * 24 * time.Hour
)

// stockPhotoHosts flag image URLs pulled from stock libraries instead
// of real photos. Substring match, case-insensitive.
var stockPhotoHosts = []string{
	"shutterstock",
	"istockphoto",
	"gettyimages",
	"depositphotos",
	"stock.adobe",
	"dreamstime",
	"123rf",
	"alamy",
}

// suspiciousKeywords are payment-fraud phrases seen in scam listings.
var suspiciousKeywords = []string{
	"prepayment",
	"advance payment",
	"deposit first",
	"western union",
	"moneygram",
	"gift card",
	"crypto only",
	"voucher code",
}

var generatedNameToken = regexp.MustCompile(`(?i)^[a-z]+\d{2,}$`)

// Score evaluates every indicator against a profile snapshot and sums
// the triggered points. Pure and deterministic: same snapshot and
// clock always yield the same analysis, missing fields count as
// failing their check, and nothing here touches storage.
func Score(p *domain.Profile, now time.Time) Analysis {
	a := Analysis{Indicators: []Indicator{}}
	if p == nil {
		p = &domain.Profile{}
	}

	images := utils.StringToList(p.Images)
	switch len(images) {
	case 0:
		a.add(IndicatorNoImages, SeverityCritical, "profile has no images", 30)
	case 1:
		a.add(IndicatorSingleImage, SeverityMedium, "profile has a single image", 15)
	}

	for _, img := range images {
		if matchesAny(img, stockPhotoHosts) {
			a.add(IndicatorStockPhoto, SeverityCritical, "image URL points at a stock-photo host", 40)
			break
		}
	}

	if !p.HasContact() {
		a.add(IndicatorNoContact, SeverityHigh, "no phone or messenger contact", 25)
	}

	if utf8.RuneCountInString(p.Description) < minDescriptionLength {
		a.add(IndicatorShortDescription, SeverityMedium, "description shorter than 50 characters", 10)
	}

	if matchesAny(p.Description, suspiciousKeywords) {
		a.add(IndicatorSuspiciousKeyword, SeverityCritical, "description contains payment-fraud wording", 35)
	}

	if p.PriceStart < lowPriceThreshold {
		a.add(IndicatorLowPrice, SeverityHigh, "starting price is unrealistically low", 25)
	}
	if p.PriceStart > highPriceThreshold {
		a.add(IndicatorHighPrice, SeverityLow, "starting price is unusually high", 5)
	}

	if p.Age < adultAge {
		a.add(IndicatorUnderage, SeverityCritical, "listed age is below 18", 100)
	}
	if p.Age > unusualAgeThreshold {
		a.add(IndicatorUnusualAge, SeverityLow, "listed age is above 65", 5)
	}

	if p.LastActiveAt == nil {
		a.add(IndicatorNeverActive, SeverityMedium, "profile was never active", 10)
	} else if now.Sub(*p.LastActiveAt) > inactivityWindow {
		a.add(IndicatorLongInactive, SeverityLow, "no activity for more than 30 days", 5)
	}

	if missing := missingFields(p); len(missing) > 0 {
		a.add(IndicatorIncomplete, SeverityMedium,
			fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
			5*len(missing))
	}

	if len(utils.StringToList(p.Services)) == 0 {
		a.add(IndicatorNoServices, SeverityMedium, "no services listed", 10)
	}

	for _, token := range strings.Fields(p.Name) {
		if generatedNameToken.MatchString(token) {
			a.add(IndicatorGeneratedName, SeverityHigh, "name looks machine-generated", 20)
			break
		}
	}

	a.Level = levelForScore(a.Score)
	return a
}

func (a *Analysis) add(indicatorType string, severity Severity, description string, points int) {
	a.Indicators = append(a.Indicators, Indicator{
		Type:        indicatorType,
		Severity:    severity,
		Description: description,
		Points:      points,
	})
	a.Score += points
}

func matchesAny(s string, needles []string) bool {
	if s == "" {
		return false
	}
	lower := strings.ToLower(s)
	for _, needle := range needles {
		if strings.Contains(lower, needle) {
			return true
		}
	}
	return false
}

func missingFields(p *domain.Profile) []string {
	var missing []string
	if strings.TrimSpace(p.Name) == "" {
		missing = append(missing, "name")
	}
	if p.Age == 0 {
		missing = append(missing, "age")
	}
	if strings.TrimSpace(p.District) == "" {
		missing = append(missing, "district")
	}
	if strings.TrimSpace(p.Description) == "" {
		missing = append(missing, "description")
	}
	if p.PriceStart == 0 {
		missing = append(missing, "price_start")
	}
	return missing
}

func levelForScore(score int) Level {
	switch {
	case score >= 80:
		return LevelCritical
	case score >= 50:
		return LevelHigh
	case score >= 30:
		return LevelMedium
	case score >= 10:
		return LevelLow
	default:
		return LevelSafe
	}
}
