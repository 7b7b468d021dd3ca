package http

import (
	"net/http"
	"strconv"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ListShipments handles GET /api/shipments?page&size. Customers only see their own.
func (s *Server) ListShipments(c echo.Context) error {
	query, err := s.pageQuery(c)
	if err != nil {
		return err
	}
	return s.listShipments(c, query)
}

// ListShipmentsByCustomer handles GET /api/shipments/customer/:customerId.
func (s *Server) ListShipmentsByCustomer(c echo.Context) error {
	customerID, err := pathUUID(c, "customerId")
	if err != nil {
		return err
	}

	principal, _ := principalFrom(c)
	if !principal.IsStaff() && !principal.UserID.IsEqual(customerID) {
		return errForbidden
	}

	query, err := s.pageQuery(c)
	if err != nil {
		return err
	}
	return s.listShipments(c, query.WithCustomer(customerID))
}

// ListShipmentsByStatus handles GET /api/shipments/status/:status.
func (s *Server) ListShipmentsByStatus(c echo.Context) error {
	status, err := shipment.ParseStatus(c.Param("status"))
	if err != nil {
		return err
	}

	query, err := s.pageQuery(c)
	if err != nil {
		return err
	}
	return s.listShipments(c, query.WithStatus(status))
}

func (s *Server) listShipments(c echo.Context, query queries.ListShipmentsQuery) error {
	if principal, _ := principalFrom(c); !principal.IsStaff() {
		query = query.WithCustomer(principal.UserID)
	}

	page, err := s.handlers.ListShipments.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return s.respond(c, http.StatusOK, "Shipments retrieved", toPageResponse(page))
}

// GetShipment handles GET /api/shipments/:id.
func (s *Server) GetShipment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetShipmentByIDQuery(id)
	if err != nil {
		return err
	}
	return s.showShipment(c, query, http.StatusOK, "Shipment retrieved")
}

// GetShipmentByCode handles GET /api/shipments/code/:code.
func (s *Server) GetShipmentByCode(c echo.Context) error {
	query, err := queries.NewGetShipmentByCodeQuery(c.Param("code"))
	if err != nil {
		return err
	}
	return s.showShipment(c, query, http.StatusOK, "Shipment retrieved")
}

// CreateShipment handles POST /api/shipments and answers with the stored shipment.
func (s *Server) CreateShipment(c echo.Context) error {
	var req shipmentRequest
	if err := s.bindAndValidate(c, &req); err != nil {
		return err
	}

	customerID, originID, destinationID, err := req.ids()
	if err != nil {
		return err
	}

	principal, _ := principalFrom(c)
	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(
		shipmentID, customerID, originID, destinationID, req.Weight, req.Notes, &principal.UserID,
	)
	if err != nil {
		return err
	}

	if err = s.handlers.CreateShipment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.showShipmentByID(c, shipmentID, http.StatusCreated, "Shipment created")
}

// UpdateShipment handles PUT /api/shipments/:id.
func (s *Server) UpdateShipment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req shipmentRequest
	if err = s.bindAndValidate(c, &req); err != nil {
		return err
	}

	customerID, originID, destinationID, err := req.ids()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateShipmentCommand(id, customerID, originID, destinationID, req.Weight, req.Notes)
	if err != nil {
		return err
	}

	if err = s.handlers.UpdateShipment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.showShipmentByID(c, id, http.StatusOK, "Shipment updated")
}

// ChangeShipmentStatus handles PATCH /api/shipments/:id/status. The response carries
// the new ledger entry as the latest tracking event.
func (s *Server) ChangeShipmentStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req statusRequest
	if err = s.bindAndValidate(c, &req); err != nil {
		return err
	}

	principal, _ := principalFrom(c)
	cmd, err := commands.NewChangeShipmentStatusCommand(id, req.Status, req.Location, req.Notes, &principal.UserID)
	if err != nil {
		return err
	}

	recorded, err := s.handlers.ChangeStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	query, err := queries.NewGetShipmentByIDQuery(id)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetShipment.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	// a concurrent transition may already have moved the shipment on
	view.Status = cmd.Status().String()
	latest := queries.TrackingEventViewOf(recorded)
	view.Latest = &latest
	return s.respond(c, http.StatusOK, "Shipment status updated", toShipmentResponse(view))
}

// DeleteShipment handles DELETE /api/shipments/:id.
func (s *Server) DeleteShipment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteShipmentCommand(id)
	if err != nil {
		return err
	}

	if err = s.handlers.DeleteShipment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respond(c, http.StatusOK, "Shipment deleted", nil)
}

// StatusCounts handles GET /api/shipments/stats/status.
func (s *Server) StatusCounts(c echo.Context) error {
	counts, err := s.handlers.StatusCounts.Handle(c.Request().Context(), queries.NewGetStatusCountsQuery())
	if err != nil {
		return err
	}

	resp := make([]statusCountResponse, 0, len(counts))
	for _, sc := range counts {
		resp = append(resp, statusCountResponse{Status: sc.Status, Count: sc.Count})
	}
	return s.respond(c, http.StatusOK, "Status statistics retrieved", resp)
}

// AddPackage handles POST /api/shipments/:id/packages.
func (s *Server) AddPackage(c echo.Context) error {
	shipmentID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req packageRequest
	if err = s.bindAndValidate(c, &req); err != nil {
		return err
	}

	packageID := kernel.NewUUID()
	cmd, err := commands.NewAddPackageCommand(
		packageID, shipmentID, req.Description, req.DeclaredValue, req.Weight, req.Dimensions,
	)
	if err != nil {
		return err
	}

	if err = s.handlers.AddPackage.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respond(c, http.StatusCreated, "Package added", map[string]string{"id": packageID.String()})
}

// ListPackages handles GET /api/shipments/:id/packages.
func (s *Server) ListPackages(c echo.Context) error {
	shipmentID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err = s.checkOwnership(c, shipmentID); err != nil {
		return err
	}

	query, err := queries.NewListPackagesQuery(shipmentID)
	if err != nil {
		return err
	}

	packages, err := s.handlers.ListPackages.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]packageResponse, 0, len(packages))
	for _, p := range packages {
		resp = append(resp, toPackageResponse(p))
	}
	return s.respond(c, http.StatusOK, "Packages retrieved", resp)
}

func (s *Server) showShipment(c echo.Context, query queries.GetShipmentQuery, status int, message string) error {
	view, err := s.handlers.GetShipment.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	if err = authorizeView(c, view); err != nil {
		return err
	}
	return s.respond(c, status, message, toShipmentResponse(view))
}

func (s *Server) showShipmentByID(c echo.Context, id kernel.UUID, status int, message string) error {
	query, err := queries.NewGetShipmentByIDQuery(id)
	if err != nil {
		return err
	}
	return s.showShipment(c, query, status, message)
}

// checkOwnership loads the shipment only for customers; staff may read any shipment.
func (s *Server) checkOwnership(c echo.Context, shipmentID kernel.UUID) error {
	if principal, _ := principalFrom(c); principal.IsStaff() {
		return nil
	}

	query, err := queries.NewGetShipmentByIDQuery(shipmentID)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetShipment.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return authorizeView(c, view)
}

func authorizeView(c echo.Context, view queries.ShipmentView) error {
	principal, _ := principalFrom(c)
	if principal.IsStaff() || principal.UserID.IsEqual(view.Customer.ID) {
		return nil
	}
	return errForbidden
}

func (s *Server) pageQuery(c echo.Context) (queries.ListShipmentsQuery, error) {
	page, err := intParam(c, "page")
	if err != nil {
		return queries.ListShipmentsQuery{}, err
	}
	size, err := intParam(c, "size")
	if err != nil {
		return queries.ListShipmentsQuery{}, err
	}
	return queries.NewListShipmentsQuery(page, size)
}

func (r shipmentRequest) ids() (customerID, originID, destinationID kernel.UUID, err error) {
	if customerID, err = kernel.UUIDFromString(r.CustomerID); err != nil {
		return customerID, originID, destinationID, errs.NewValueIsInvalidErrorWithCause("customerId", err)
	}
	if originID, err = kernel.UUIDFromString(r.OriginBranchID); err != nil {
		return customerID, originID, destinationID, errs.NewValueIsInvalidErrorWithCause("originBranchId", err)
	}
	if destinationID, err = kernel.UUIDFromString(r.DestinationBranchID); err != nil {
		return customerID, originID, destinationID, errs.NewValueIsInvalidErrorWithCause("destinationBranchId", err)
	}
	return customerID, originID, destinationID, nil
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func intParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return n, nil
}
