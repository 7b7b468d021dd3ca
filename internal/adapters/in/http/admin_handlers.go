package http

import (
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateBranch handles POST /api/branches.
func (s *Server) CreateBranch(c echo.Context) error {
	var req branchRequest
	if err := s.bindAndValidate(c, &req); err != nil {
		return err
	}

	branchID := kernel.NewUUID()
	cmd, err := commands.NewCreateBranchCommand(branchID, req.Name, req.City, req.Address, req.Phone)
	if err != nil {
		return err
	}

	if err = s.handlers.CreateBranch.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respond(c, http.StatusCreated, "Branch created", map[string]string{"id": branchID.String()})
}

// ListBranches handles GET /api/branches.
func (s *Server) ListBranches(c echo.Context) error {
	branches, err := s.handlers.ListBranches.Handle(c.Request().Context(), queries.NewListBranchesQuery())
	if err != nil {
		return err
	}

	resp := make([]branchResponse, 0, len(branches))
	for _, b := range branches {
		resp = append(resp, toBranchResponse(b))
	}
	return s.respond(c, http.StatusOK, "Branches retrieved", resp)
}

// RegisterUser handles POST /api/users. The password is never echoed back.
func (s *Server) RegisterUser(c echo.Context) error {
	var req userRequest
	if err := s.bindAndValidate(c, &req); err != nil {
		return err
	}

	userID := kernel.NewUUID()
	cmd, err := commands.NewRegisterUserCommand(userID, req.Username, req.Password, req.FullName, req.Email, req.Role)
	if err != nil {
		return err
	}

	if err = s.handlers.RegisterUser.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respond(c, http.StatusCreated, "User registered", map[string]string{"id": userID.String()})
}
