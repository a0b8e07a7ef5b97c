package container

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"
)

var expositionFormat = expfmt.NewFormat(expfmt.TypeTextPlain)

// ContainerHandler answers scrapes: it refreshes the gauges from the engine
// and encodes the whole registry in the Prometheus text format.
type ContainerHandler struct {
	cs       ContainerService
	gatherer prometheus.Gatherer
	logger   *zap.Logger
}

// ContainerRouter serves the metrics page on every path and method, so any
// scrape_config path a Prometheus points at this port works.
func ContainerRouter(route fiber.Router, cs ContainerService, gatherer prometheus.Gatherer, logger *zap.Logger) {
	handler := &ContainerHandler{
		cs:       cs,
		gatherer: gatherer,
		logger:   logger,
	}

	route.All("*", handler.Scrape)
}

func (h *ContainerHandler) Scrape(c *fiber.Ctx) error {
	if err := h.cs.Update(c.UserContext()); err != nil {
		// Serve the previous values rather than an empty page; the
		// engine-up gauge carries the failure to the scraper.
		h.logger.Warn("collection failed, serving previous values",
			zap.Any("request_id", c.Locals("requestid")),
			zap.Error(err))
	}

	families, err := h.gatherer.Gather()
	if err != nil {
		h.logger.Error("gather metrics", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}

	c.Set(fiber.HeaderContentType, string(expositionFormat))
	encoder := expfmt.NewEncoder(c.Response().BodyWriter(), expositionFormat)
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			h.logger.Error("encode metric family",
				zap.String("family", family.GetName()),
				zap.Error(err))
			c.Response().ResetBody()
			return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
		}
	}
	return nil
}
