package deals

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reporting derivations. Everything here is pure: raw stored deals in,
// derived read views out. The storage layer never computes a metric.

// CountStat is the stripped engagement counter shown on list views.
type CountStat struct {
	Count int `json:"count"`
}

// AvgStat is an engagement counter with its daily average.
type AvgStat struct {
	Count int     `json:"count"`
	Avg   float64 `json:"avg"`
}

// ActiveDealSummary is one row of the active list. Heavy fields (user
// lists, locations, description, snapshots) are left out.
type ActiveDealSummary struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	StartDate   time.Time          `json:"start_date"`
	EndDate     time.Time          `json:"end_date"`
	IsExpired   bool               `json:"is_expired"`
	Views       CountStat          `json:"views"`
	Saves       CountStat          `json:"saves"`
	UniqueViews int                `json:"unique_views"`
	DaysLeft    int                `json:"days_left"`
	DaysActive  int                `json:"days_active"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// ExpiredDealSummary is one row of the expired list. DaysActive here is
// the deal's whole lifetime, end minus start.
type ExpiredDealSummary struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	StartDate   time.Time          `json:"start_date"`
	EndDate     time.Time          `json:"end_date"`
	IsExpired   bool               `json:"is_expired"`
	Views       CountStat          `json:"views"`
	Saves       CountStat          `json:"saves"`
	UniqueViews int                `json:"unique_views"`
	DaysActive  int                `json:"days_active"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// DealDetail is the single-deal view with engagement averages.
type DealDetail struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	StartDate   time.Time          `json:"start_date"`
	EndDate     time.Time          `json:"end_date"`
	IsExpired   bool               `json:"is_expired"`
	Locations   []DealLocation     `json:"locations"`
	Views       AvgStat            `json:"views"`
	Saves       AvgStat            `json:"saves"`
	UniqueViews AvgStat            `json:"unique_views"`
	DaysActive  int                `json:"days_active"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// DealTemplate is a deal stripped for pre-filling a new deal form.
type DealTemplate struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
}

// ActiveSummaries filters deals still active at now and annotates them,
// most recently updated first.
func ActiveSummaries(deals []*Deal, now time.Time) []ActiveDealSummary {
	summaries := make([]ActiveDealSummary, 0, len(deals))
	for _, d := range deals {
		if d.IsExpired && !d.EndDate.After(now) {
			continue
		}
		summaries = append(summaries, ActiveDealSummary{
			ID:          d.ID,
			Name:        d.Name,
			StartDate:   d.StartDate,
			EndDate:     d.EndDate,
			IsExpired:   d.IsExpired,
			Views:       CountStat{Count: d.Views.Count},
			Saves:       CountStat{Count: d.Saves.Count},
			UniqueViews: uniqueUsers(d.Views.Users),
			DaysLeft:    daysBetween(now, d.EndDate),
			DaysActive:  daysBetween(d.StartDate, now),
			UpdatedAt:   d.UpdatedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries
}

// ExpiredSummaries filters deals expired at now and annotates them, most
// recently updated first.
func ExpiredSummaries(deals []*Deal, now time.Time) []ExpiredDealSummary {
	summaries := make([]ExpiredDealSummary, 0, len(deals))
	for _, d := range deals {
		if !d.IsExpired && d.EndDate.After(now) {
			continue
		}
		summaries = append(summaries, ExpiredDealSummary{
			ID:          d.ID,
			Name:        d.Name,
			StartDate:   d.StartDate,
			EndDate:     d.EndDate,
			IsExpired:   d.IsExpired,
			Views:       CountStat{Count: d.Views.Count},
			Saves:       CountStat{Count: d.Saves.Count},
			UniqueViews: uniqueUsers(d.Views.Users),
			DaysActive:  daysBetween(d.StartDate, d.EndDate),
			UpdatedAt:   d.UpdatedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries
}

// NewDealDetail derives the single-deal view. Averages degenerate to the
// raw count for brand-new deals.
func NewDealDetail(d *Deal, now time.Time) DealDetail {
	daysActive := daysBetween(d.StartDate, now)
	unique := uniqueUsers(d.Views.Users)

	return DealDetail{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		IsExpired:   d.IsExpired,
		Locations:   d.Locations,
		Views:       AvgStat{Count: d.Views.Count, Avg: dailyAverage(d.Views.Count, daysActive)},
		Saves:       AvgStat{Count: d.Saves.Count, Avg: dailyAverage(d.Saves.Count, daysActive)},
		UniqueViews: AvgStat{Count: unique, Avg: dailyAverage(unique, daysActive)},
		DaysActive:  daysActive,
		UpdatedAt:   d.UpdatedAt,
	}
}

// NewDealTemplate strips a deal of stats, dates and expiry state.
func NewDealTemplate(d *Deal) DealTemplate {
	return DealTemplate{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
	}
}

// dailyAverage is count/daysActive once the deal has run at least a full
// day and has any engagement; otherwise the raw count.
func dailyAverage(count, daysActive int) float64 {
	if daysActive >= 1 && count >= 1 {
		return float64(count) / float64(daysActive)
	}
	return float64(count)
}

// daysBetween counts UTC day boundaries crossed between from and to.
// Negative when to precedes from.
func daysBetween(from, to time.Time) int {
	fromDay := truncateToDay(from)
	toDay := truncateToDay(to)
	return int(toDay.Sub(fromDay).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func uniqueUsers(users []primitive.ObjectID) int {
	seen := make(map[primitive.ObjectID]struct{}, len(users))
	for _, id := range users {
		seen[id] = struct{}{}
	}
	return len(seen)
}
