package deals

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bullpull02/foodie-api/internal/httperr"
	"github.com/bullpull02/foodie-api/internal/restaurant"
)

const statusPaymentRequired = http.StatusPaymentRequired // 402, the API's quota/not-found code

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type addDealRequest struct {
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Locations   []string  `json:"locations" binding:"required"`
}

type editDealRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	Locations   []string  `json:"locations" binding:"required"`
}

type expireDealRequest struct {
	EndDate time.Time `json:"end_date" binding:"required"`
}

// GET /api/rest/deals/active?current_date=<ISO>
func (h *Handler) Active(c *gin.Context) {
	rest, ok := restaurant.FromContext(c)
	if !ok {
		httperr.Send(c, httperr.Unauthorized("unauthorized"))
		return
	}

	summaries, err := h.service.Active(c.Request.Context(), rest, currentDate(c))
	if err != nil {
		httperr.Send(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// GET /api/rest/deals/expired?current_date=<ISO>
func (h *Handler) Expired(c *gin.Context) {
	rest, ok := restaurant.FromContext(c)
	if !ok {
		httperr.Send(c, httperr.Unauthorized("unauthorized"))
		return
	}

	summaries, err := h.service.Expired(c.Request.Context(), rest, currentDate(c))
	if err != nil {
		httperr.Send(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// GET /api/rest/deals/single/:id?current_date=<ISO>
func (h *Handler) Single(c *gin.Context) {
	rest, ok := restaurant.FromContext(c)
	if !ok {
		httperr.Send(c, httperr.Unauthorized("unauthorized"))
		return
	}

	dealID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		httperr.Send(c, httperr.New(statusPaymentRequired, "Deal not found"))
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), rest, dealID, currentDate(c))
	if err != nil {
		// A deal owned elsewhere is indistinguishable from no deal.
		if errors.Is(err, ErrDealNotFound) || errors.Is(err, ErrNotDealOwner) {
			httperr.Send(c, httperr.New(statusPaymentRequired, "Deal not found"))
			return
		}
		httperr.Send(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GET /api/rest/deals/use-template/:id
func (h *Handler) UseTemplate(c *gin.Context) {
	rest, ok := restaurant.FromContext(c)
	if !ok {
		httperr.Send(c, httperr.Unauthorized("unauthorized"))
		return
	}

	dealID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		httperr.Send(c, httperr.New(statusPaymentRequired, "Deal not found"))
		return
	}

	tpl, err := h.service.UseTemplate(c.Request.Context(), rest, dealID)
	if err != nil {
		if errors.Is(err, ErrDealNotFound) || errors.Is(err, ErrNotDealOwner) {
			httperr.Send(c, httperr.New(statusPaymentRequired, "Deal not found"))
			return
		}
		httperr.Send(c, err)
		return
	}

	c.JSON(http.StatusOK, tpl)
}

// POST /api/rest/deals/add
func (h *Handler) Add(c *gin.Context) {
	rest, ok := restaurant.FromContext(c)
	if !ok {
		httperr.Send(c, httperr.Unauthorized("unauthorized"))
		return
	}

	var req addDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Send(c, httperr.BadRequest("invalid request body"))
		return
	}

	_, err := h.service.Create(c.Request.Context(), rest, CreateDealInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		LocationIDs: parseObjectIDs(req.Locations),
	}, currentDate(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrQuotaExceeded):
			httperr.Send(c, httperr.New(statusPaymentRequired, err.Error()))
		case errors.Is(err, ErrNoMatchingLocations):
			httperr.Send(c, httperr.BadRequest(err.Error()))
		default:
			httperr.Send(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, "Success")
}

// PATCH /api/rest/deals/edit/:id
func (h *Handler) Edit(c *gin.Context) {
	rest, ok := restaurant.FromContext(c)
	if !ok {
		httperr.Send(c, httperr.Unauthorized("unauthorized"))
		return
	}

	dealID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		httperr.Send(c, httperr.BadRequest("Deal not found"))
		return
	}

	var req editDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Send(c, httperr.BadRequest("invalid request body"))
		return
	}

	err = h.service.Edit(c.Request.Context(), rest, dealID, EditDealInput{
		Name:        req.Name,
		Description: req.Description,
		EndDate:     req.EndDate,
		LocationIDs: parseObjectIDs(req.Locations),
	})
	if err != nil {
		h.sendLifecycleError(c, err, "edit")
		return
	}

	c.JSON(http.StatusOK, "Success")
}

// POST /api/rest/deals/delete/:id
func (h *Handler) Delete(c *gin.Context) {
	rest, ok := restaurant.FromContext(c)
	if !ok {
		httperr.Send(c, httperr.Unauthorized("unauthorized"))
		return
	}

	dealID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		httperr.Send(c, httperr.BadRequest("Deal not found"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), rest, dealID); err != nil {
		h.sendLifecycleError(c, err, "delete")
		return
	}

	c.JSON(http.StatusOK, "Success")
}

// PATCH /api/rest/deals/expire/:id
func (h *Handler) Expire(c *gin.Context) {
	rest, ok := restaurant.FromContext(c)
	if !ok {
		httperr.Send(c, httperr.Unauthorized("unauthorized"))
		return
	}

	dealID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		httperr.Send(c, httperr.BadRequest("Deal not found"))
		return
	}

	var req expireDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Send(c, httperr.BadRequest("invalid request body"))
		return
	}

	if err := h.service.Expire(c.Request.Context(), rest, dealID, req.EndDate); err != nil {
		h.sendLifecycleError(c, err, "expire")
		return
	}

	c.JSON(http.StatusOK, "Success")
}

// sendLifecycleError maps lifecycle rejections on the mutating routes;
// they all surface as 400s.
func (h *Handler) sendLifecycleError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, ErrDealNotFound):
		httperr.Send(c, httperr.BadRequest("Deal not found"))
	case errors.Is(err, ErrNotDealOwner):
		httperr.Send(c, httperr.BadRequest("Unauthorized to "+action+" this deal"))
	case errors.Is(err, ErrInvalidDateRange),
		errors.Is(err, ErrAlreadyExpired),
		errors.Is(err, ErrNoMatchingLocations):
		httperr.Send(c, httperr.BadRequest(err.Error()))
	default:
		httperr.Send(c, err)
	}
}

// currentDate reads the caller-overridable current_date query param,
// defaulting to wall-clock time. Reports stay reproducible this way.
func currentDate(c *gin.Context) time.Time {
	raw := c.Query("current_date")
	if raw == "" {
		return time.Now()
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t
	}
	return time.Now()
}

// parseObjectIDs drops malformed ids; they could never match a location
// anyway.
func parseObjectIDs(raw []string) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, s := range raw {
		if id, err := primitive.ObjectIDFromHex(s); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
