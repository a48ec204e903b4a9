package httpapi

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/river-conditions/internal/common"
	"github.com/i474232898/river-conditions/internal/river"
	"github.com/i474232898/river-conditions/internal/stations"
)

const serviceName = "river-conditions"

var validate = validator.New()

// NewApp builds the fiber app with middleware, health and metrics endpoints.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		UnescapePath:          true,
		ErrorHandler:          ErrorHandler,
	})

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${url}\n",
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": serviceName,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return app
}

// RegisterRoutes wires the conditions handlers into the Fiber app. registry may be nil.
func RegisterRoutes(app *fiber.App, service *river.Service, registry *stations.Registry) {
	v1 := app.Group("/api/v1")

	v1.Get("/conditions", func(c *fiber.Ctx) error {
		req, err := parseConditionsQuery(c)
		if err != nil {
			return writeError(c, err)
		}

		doc, err := service.Assemble(c.UserContext(), req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(doc)
	})

	v1.Get("/locations", func(c *fiber.Ctx) error {
		locs := []stations.Location{}
		if registry != nil {
			locs = registry.Locations
		}
		return c.JSON(fiber.Map{"locations": locs})
	})

	v1.Get("/locations/:name/conditions", func(c *fiber.Ctx) error {
		loc, ok := registry.Find(c.Params("name"))
		if !ok {
			return writeError(c, fmt.Errorf("%w: unknown location %q", river.ErrInvalidInput, c.Params("name")))
		}
		req, err := loc.Request()
		if err != nil {
			return writeError(c, err)
		}

		doc, err := service.Assemble(c.UserContext(), req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(doc)
	})
}

// conditionsQuery holds the station ids of a conditions request, given either
// as stationId=<id1>,<id2> or as usgs=<id>&wr=<id>.
type conditionsQuery struct {
	StationIDs []string `validate:"max=2,dive,number"`
	USGS       string   `validate:"omitempty,number,len=8"`
	WR         string   `validate:"omitempty,number"`
}

func parseConditionsQuery(c *fiber.Ctx) (river.Request, error) {
	q := conditionsQuery{
		StationIDs: common.SplitList(c.Query("stationId")),
		USGS:       c.Query("usgs"),
		WR:         c.Query("wr"),
	}

	if err := validate.Struct(q); err != nil {
		return river.Request{}, fmt.Errorf("%w: %v", river.ErrInvalidInput, err)
	}

	ids := append([]string(nil), q.StationIDs...)
	if q.USGS != "" {
		ids = append(ids, q.USGS)
	}
	if q.WR != "" {
		if p, _ := river.ClassifyStationID(q.WR); p != river.ProviderWR {
			return river.Request{}, fmt.Errorf("%w: wr=%s looks like a USGS station id", river.ErrInvalidInput, q.WR)
		}
		ids = append(ids, q.WR)
	}

	return river.RequestFromIDs(ids...)
}
