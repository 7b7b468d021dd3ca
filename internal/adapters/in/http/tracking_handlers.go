package http

import (
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ListTrackingEvents handles GET /api/tracking/shipment/:id?order=asc|desc.
func (s *Server) ListTrackingEvents(c echo.Context) error {
	shipmentID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	order, err := ports.ParseSortOrder(c.QueryParam("order"))
	if err != nil {
		return err
	}

	if err = s.checkOwnership(c, shipmentID); err != nil {
		return err
	}

	query, err := queries.NewListTrackingEventsQuery(shipmentID, order)
	if err != nil {
		return err
	}

	events, err := s.handlers.ListTrackingEvents.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]trackingEventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, toTrackingEventResponse(e))
	}
	return s.respond(c, http.StatusOK, "Tracking history retrieved", resp)
}

// LatestTrackingEvent handles GET /api/tracking/shipment/:id/latest. A shipment without
// history answers 404.
func (s *Server) LatestTrackingEvent(c echo.Context) error {
	shipmentID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err = s.checkOwnership(c, shipmentID); err != nil {
		return err
	}

	query, err := queries.NewGetLatestTrackingEventQuery(shipmentID)
	if err != nil {
		return err
	}

	latest, err := s.handlers.LatestTrackingEvent.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	if latest == nil {
		return errs.NewObjectNotFoundError("tracking event for shipment", shipmentID)
	}
	return s.respond(c, http.StatusOK, "Latest tracking event retrieved", toTrackingEventResponse(*latest))
}

// AppendTrackingEvent handles POST /api/tracking. It records a milestone without
// changing the shipment status.
func (s *Server) AppendTrackingEvent(c echo.Context) error {
	var req trackingRequest
	if err := s.bindAndValidate(c, &req); err != nil {
		return err
	}

	shipmentID, err := kernel.UUIDFromString(req.ShipmentID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("shipmentId", err)
	}

	principal, _ := principalFrom(c)
	cmd, err := commands.NewAppendTrackingEventCommand(shipmentID, req.Label, req.Location, req.Notes, &principal.UserID)
	if err != nil {
		return err
	}

	stored, err := s.handlers.AppendTrackingEvent.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return s.respond(c, http.StatusCreated, "Tracking event recorded", fromTrackingEvent(stored))
}
