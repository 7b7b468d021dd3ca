package http

import (
	"time"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/model/user"

	"github.com/shopspring/decimal"
)

type loginRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=72"`
}

type shipmentRequest struct {
	CustomerID          string          `json:"customerId"          validate:"required,uuid"`
	OriginBranchID      string          `json:"originBranchId"      validate:"required,uuid"`
	DestinationBranchID string          `json:"destinationBranchId" validate:"required,uuid"`
	Weight              decimal.Decimal `json:"weight"`
	Notes               string          `json:"notes"               validate:"max=1000"`
}

type statusRequest struct {
	Status   string `json:"status"   validate:"required"`
	Location string `json:"location" validate:"max=100"`
	Notes    string `json:"notes"    validate:"max=1000"`
}

type trackingRequest struct {
	ShipmentID string `json:"shipmentId" validate:"required,uuid"`
	Label      string `json:"label"      validate:"required,max=100"`
	Location   string `json:"location"   validate:"max=100"`
	Notes      string `json:"notes"      validate:"max=1000"`
}

type packageRequest struct {
	Description   string          `json:"description"   validate:"required,max=200"`
	DeclaredValue decimal.Decimal `json:"declaredValue"`
	Weight        decimal.Decimal `json:"weight"`
	Dimensions    string          `json:"dimensions"    validate:"max=50"`
}

type branchRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	City    string `json:"city"    validate:"required,max=50"`
	Address string `json:"address" validate:"max=200"`
	Phone   string `json:"phone"   validate:"max=20"`
}

type userRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"fullName" validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Role     string `json:"role"     validate:"required,oneof=ADMIN OPERADOR CLIENTE"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

type loginResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	TokenType    string       `json:"tokenType"`
	ExpiresIn    int64        `json:"expiresIn"`
	User         userResponse `json:"user"`
}

type refreshResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	TokenType    string       `json:"tokenType"`
	ExpiresIn    int64        `json:"expiresIn"`
	User         userResponse `json:"user"`
}

type summaryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

type trackingEventResponse struct {
	ID         string    `json:"id"`
	ShipmentID string    `json:"shipmentId"`
	OccurredAt time.Time `json:"occurredAt"`
	Label      string    `json:"label"`
	Location   string    `json:"location,omitempty"`
	UserID     string    `json:"userId,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

type packageResponse struct {
	ID            string          `json:"id"`
	ShipmentID    string          `json:"shipmentId"`
	Description   string          `json:"description"`
	DeclaredValue decimal.Decimal `json:"declaredValue"`
	Weight        decimal.Decimal `json:"weight"`
	Dimensions    string          `json:"dimensions,omitempty"`
}

type shipmentResponse struct {
	ID                string                 `json:"id"`
	Code              string                 `json:"code"`
	Status            string                 `json:"status"`
	Customer          summaryResponse        `json:"customer"`
	Origin            summaryResponse        `json:"originBranch"`
	Destination       summaryResponse        `json:"destinationBranch"`
	Weight            decimal.Decimal        `json:"weight"`
	Price             decimal.Decimal        `json:"price"`
	CreatedAt         time.Time              `json:"createdAt"`
	EstimatedDelivery time.Time              `json:"estimatedDelivery"`
	Notes             string                 `json:"notes,omitempty"`
	Latest            *trackingEventResponse `json:"latestTracking,omitempty"`
	Packages          []packageResponse      `json:"packages,omitempty"`
}

type pageResponse struct {
	Items      []shipmentResponse `json:"items"`
	Page       int                `json:"page"`
	Size       int                `json:"size"`
	TotalItems int64              `json:"totalItems"`
	TotalPages int                `json:"totalPages"`
}

type statusCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type branchResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:       u.ID().String(),
		Username: u.Username(),
		FullName: u.FullName(),
		Email:    u.Email(),
		Role:     u.Role().String(),
		Active:   u.IsActive(),
	}
}

func toShipmentResponse(v queries.ShipmentView) shipmentResponse {
	resp := shipmentResponse{
		ID:                v.ID.String(),
		Code:              v.Code,
		Status:            v.Status,
		Customer:          summaryResponse{ID: v.Customer.ID.String(), Name: v.Customer.FullName},
		Origin:            summaryResponse{ID: v.Origin.ID.String(), Name: v.Origin.Name, City: v.Origin.City},
		Destination:       summaryResponse{ID: v.Destination.ID.String(), Name: v.Destination.Name, City: v.Destination.City},
		Weight:            v.Weight,
		Price:             v.Price,
		CreatedAt:         v.CreatedAt,
		EstimatedDelivery: v.EstimatedDelivery,
		Notes:             v.Notes,
	}
	if v.Latest != nil {
		latest := toTrackingEventResponse(*v.Latest)
		resp.Latest = &latest
	}
	for _, p := range v.Packages {
		resp.Packages = append(resp.Packages, toPackageResponse(p))
	}
	return resp
}

func toTrackingEventResponse(v queries.TrackingEventView) trackingEventResponse {
	resp := trackingEventResponse{
		ID:         v.ID.String(),
		ShipmentID: v.ShipmentID.String(),
		OccurredAt: v.OccurredAt,
		Label:      v.Label,
		Location:   v.Location,
		Notes:      v.Notes,
	}
	if v.UserID != nil {
		resp.UserID = v.UserID.String()
	}
	return resp
}

func fromTrackingEvent(e tracking.Event) trackingEventResponse {
	return toTrackingEventResponse(queries.TrackingEventViewOf(e))
}

func toPackageResponse(v queries.PackageView) packageResponse {
	return packageResponse{
		ID:            v.ID.String(),
		ShipmentID:    v.ShipmentID.String(),
		Description:   v.Description,
		DeclaredValue: v.DeclaredValue,
		Weight:        v.Weight,
		Dimensions:    v.Dimensions,
	}
}

func toPageResponse(p queries.ShipmentPage) pageResponse {
	items := make([]shipmentResponse, 0, len(p.Items))
	for _, v := range p.Items {
		items = append(items, toShipmentResponse(v))
	}
	return pageResponse{
		Items:      items,
		Page:       p.Page,
		Size:       p.Size,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}

func toBranchResponse(v queries.BranchView) branchResponse {
	return branchResponse{
		ID:      v.ID.String(),
		Name:    v.Name,
		City:    v.City,
		Address: v.Address,
		Phone:   v.Phone,
	}
}
