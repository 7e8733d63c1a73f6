package httpapi

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/i474232898/weather-party-planner/internal/common"
	"github.com/i474232898/weather-party-planner/internal/observability"
	"github.com/i474232898/weather-party-planner/internal/weather"
)

const (
	msgMissingParams   = "Please provide locations, from date, and to date."
	msgNoOptimalResult = "No optimal date and location found."
	msgInternalError   = "Failed to process the request."
)

var validate = validator.New()

// Planner is the part of weather.Service the handlers need.
type Planner interface {
	Plan(ctx context.Context, locations []string, from, to string) (weather.GlobalResult, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, planner Planner, metrics *observability.Metrics, log *zap.SugaredLogger) {
	h := &handler{planner: planner, metrics: metrics, log: log}

	app.Get("/party_plan", h.partyPlan)
}

type handler struct {
	planner Planner
	metrics *observability.Metrics
	log     *zap.SugaredLogger
}

// partyPlanQuery holds the query parameters of GET /party_plan.
type partyPlanQuery struct {
	Locations string `validate:"required"`
	From      string `validate:"required"`
	To        string `validate:"required"`
}

func (q *partyPlanQuery) bind(c *fiber.Ctx) error {
	q.Locations = c.Query("locations")
	q.From = c.Query("from")
	q.To = c.Query("to")

	return validate.Struct(q)
}

type planResponse struct {
	Date     string `json:"date"`
	Location string `json:"location"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *handler) partyPlan(c *fiber.Ctx) error {
	var q partyPlanQuery
	if err := q.bind(c); err != nil {
		h.metrics.PlanRequests.WithLabelValues("invalid").Inc()
		return fiber.NewError(fiber.StatusBadRequest, msgMissingParams)
	}

	locations := common.SplitTrim(q.Locations, ",")

	result, err := h.planner.Plan(c.UserContext(), locations, q.From, q.To)
	if err != nil {
		var geoErr *weather.GeocodeError
		var fetchErr *weather.WeatherFetchError

		switch {
		case errors.As(err, &geoErr):
			h.metrics.PlanRequests.WithLabelValues("geocode_error").Inc()
			return fiber.NewError(fiber.StatusBadRequest, geoErr.Message())
		case errors.As(err, &fetchErr):
			h.metrics.PlanRequests.WithLabelValues("weather_error").Inc()
			return fiber.NewError(fiber.StatusBadRequest, fetchErr.Message())
		default:
			h.metrics.PlanRequests.WithLabelValues("internal_error").Inc()
			return err
		}
	}

	if !result.Found {
		h.metrics.PlanRequests.WithLabelValues("none").Inc()
		return c.JSON(messageResponse{Message: msgNoOptimalResult})
	}

	h.metrics.PlanRequests.WithLabelValues("found").Inc()
	return c.JSON(planResponse{
		Date:     result.Best.Date,
		Location: result.Best.Location,
	})
}
