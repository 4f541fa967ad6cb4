package deals

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bullpull02/foodie-api/internal/restaurant"
)

var (
	ErrQuotaExceeded       = errors.New("Maximum active deals limit reached")
	ErrNoMatchingLocations = errors.New("Error: No matching locations found")
	ErrNotDealOwner        = errors.New("unauthorized to modify this deal")
	ErrInvalidDateRange    = errors.New("Deal end date cannot be before the start date")
	ErrAlreadyExpired      = errors.New("Deal is already expired")
)

type Service struct {
	repo        Repository
	perLocation int
}

// NewService builds the deal lifecycle service. dealsPerLocation sets the
// quota multiplier: a restaurant may hold locations × dealsPerLocation
// active deals at once.
func NewService(repo Repository, dealsPerLocation int) *Service {
	return &Service{repo: repo, perLocation: dealsPerLocation}
}

type CreateDealInput struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	LocationIDs []primitive.ObjectID
}

type EditDealInput struct {
	Name        string
	Description string
	EndDate     time.Time
	LocationIDs []primitive.ObjectID
}

// Create persists a new deal for the restaurant, snapshotting its name,
// cuisines and dietary requirements. Quota and location mapping are
// checked before any write.
func (s *Service) Create(ctx context.Context, rest *restaurant.Restaurant, in CreateDealInput, now time.Time) (*Deal, error) {
	activeCount, err := s.repo.CountActive(ctx, rest.ID, now)
	if err != nil {
		return nil, err
	}

	if activeCount >= len(rest.Locations)*s.perLocation {
		return nil, ErrQuotaExceeded
	}

	locations := mapLocations(rest, in.LocationIDs)
	if len(locations) == 0 {
		return nil, ErrNoMatchingLocations
	}

	deal := &Deal{
		Restaurant:          RestaurantRef{ID: rest.ID, Name: rest.Name},
		Name:                capitalizeSentence(in.Name),
		Description:         in.Description,
		StartDate:           in.StartDate,
		EndDate:             in.EndDate,
		IsExpired:           false,
		Locations:           locations,
		Cuisines:            rest.Cuisines,
		DietaryRequirements: rest.DietaryRequirements,
	}

	if err := s.repo.Create(ctx, deal); err != nil {
		return nil, err
	}

	return deal, nil
}

// Edit mutates name, description, end date and locations in place. The
// new end date is validated against the deal's stored start date.
func (s *Service) Edit(ctx context.Context, rest *restaurant.Restaurant, dealID primitive.ObjectID, in EditDealInput) error {
	locations := mapLocations(rest, in.LocationIDs)
	if len(locations) == 0 {
		return ErrNoMatchingLocations
	}

	deal, err := s.ownedDeal(ctx, rest, dealID)
	if err != nil {
		return err
	}

	if in.EndDate.Before(deal.StartDate) {
		return ErrInvalidDateRange
	}

	deal.Name = in.Name
	deal.Description = in.Description
	deal.EndDate = in.EndDate
	deal.Locations = locations

	return s.repo.Update(ctx, deal)
}

// Delete removes the deal after the ownership check.
func (s *Service) Delete(ctx context.Context, rest *restaurant.Restaurant, dealID primitive.ObjectID) error {
	deal, err := s.ownedDeal(ctx, rest, dealID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, deal.ID)
}

// Expire flags the deal expired and moves its end date.
func (s *Service) Expire(ctx context.Context, rest *restaurant.Restaurant, dealID primitive.ObjectID, endDate time.Time) error {
	deal, err := s.ownedDeal(ctx, rest, dealID)
	if err != nil {
		return err
	}

	if deal.IsExpired {
		return ErrAlreadyExpired
	}
	if endDate.Before(deal.StartDate) {
		return ErrInvalidDateRange
	}

	deal.IsExpired = true
	deal.EndDate = endDate

	return s.repo.Update(ctx, deal)
}

// UseTemplate returns the deal stripped down to the fields worth
// pre-filling a new deal form with.
func (s *Service) UseTemplate(ctx context.Context, rest *restaurant.Restaurant, dealID primitive.ObjectID) (*DealTemplate, error) {
	deal, err := s.ownedDeal(ctx, rest, dealID)
	if err != nil {
		return nil, err
	}
	tpl := NewDealTemplate(deal)
	return &tpl, nil
}

// Active returns the active-list report for the restaurant.
func (s *Service) Active(ctx context.Context, rest *restaurant.Restaurant, now time.Time) ([]ActiveDealSummary, error) {
	deals, err := s.repo.ListByRestaurant(ctx, rest.ID)
	if err != nil {
		return nil, err
	}
	return ActiveSummaries(deals, now), nil
}

// Expired returns the expired-list report for the restaurant.
func (s *Service) Expired(ctx context.Context, rest *restaurant.Restaurant, now time.Time) ([]ExpiredDealSummary, error) {
	deals, err := s.repo.ListByRestaurant(ctx, rest.ID)
	if err != nil {
		return nil, err
	}
	return ExpiredSummaries(deals, now), nil
}

// Detail returns the single-deal report with engagement averages.
func (s *Service) Detail(ctx context.Context, rest *restaurant.Restaurant, dealID primitive.ObjectID, now time.Time) (*DealDetail, error) {
	deal, err := s.ownedDeal(ctx, rest, dealID)
	if err != nil {
		return nil, err
	}
	detail := NewDealDetail(deal, now)
	return &detail, nil
}

// ownedDeal loads a deal and verifies it belongs to the acting
// restaurant. Deal ids are globally addressable, so this runs even when
// the role check already passed.
func (s *Service) ownedDeal(ctx context.Context, rest *restaurant.Restaurant, dealID primitive.ObjectID) (*Deal, error) {
	deal, err := s.repo.FindByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if deal.Restaurant.ID != rest.ID {
		return nil, ErrNotDealOwner
	}
	return deal, nil
}

// mapLocations resolves submitted location ids against the restaurant's
// current location list. Unmatched ids are silently dropped.
func mapLocations(rest *restaurant.Restaurant, ids []primitive.ObjectID) []DealLocation {
	var mapped []DealLocation
	for _, id := range ids {
		if loc := rest.LocationByID(id); loc != nil {
			mapped = append(mapped, DealLocation{
				LocationID: id,
				Nickname:   loc.Nickname,
				Geometry:   loc.Geometry,
			})
		}
	}
	return mapped
}

// capitalizeSentence upper-cases the first letter of every word.
func capitalizeSentence(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
