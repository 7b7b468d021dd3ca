package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apihttp "logistics/internal/adapters/in/http"
	"logistics/internal/core/application/session"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type MockSessions struct{ mock.Mock }

func (m *MockSessions) Login(ctx context.Context, username, password string) (session.LoginResult, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(session.LoginResult), args.Error(1)
}

func (m *MockSessions) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockSessions) ValidateToken(ctx context.Context, token string) bool {
	return m.Called(ctx, token).Bool(0)
}

func (m *MockSessions) RefreshToken(ctx context.Context, refreshToken string) (session.RefreshResult, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(session.RefreshResult), args.Error(1)
}

func (m *MockSessions) Authenticate(ctx context.Context, token string) (session.Principal, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(session.Principal), args.Error(1)
}

type commandFunc[C any] func(ctx context.Context, cmd C) error

func (f commandFunc[C]) Handle(ctx context.Context, cmd C) error { return f(ctx, cmd) }

type queryFunc[Q, R any] func(ctx context.Context, query Q) (R, error)

func (f queryFunc[Q, R]) Handle(ctx context.Context, query Q) (R, error) { return f(ctx, query) }

var (
	adminPrincipal = session.Principal{UserID: kernel.NewUUID(), Username: "admin", Role: user.Admin}
	staffPrincipal = session.Principal{UserID: kernel.NewUUID(), Username: "operador", Role: user.Operator}
	clientA        = session.Principal{UserID: kernel.NewUUID(), Username: "cliente-a", Role: user.Customer}
	clientB        = session.Principal{UserID: kernel.NewUUID(), Username: "cliente-b", Role: user.Customer}
)

type fixture struct {
	sessions *MockSessions
	handlers apihttp.Handlers
	opts     apihttp.Options
}

func newFixture() *fixture {
	sessions := &MockSessions{}
	sessions.On("Authenticate", mock.Anything, "admin-token").Return(adminPrincipal, nil).Maybe()
	sessions.On("Authenticate", mock.Anything, "staff-token").Return(staffPrincipal, nil).Maybe()
	sessions.On("Authenticate", mock.Anything, "client-a-token").Return(clientA, nil).Maybe()
	sessions.On("Authenticate", mock.Anything, "client-b-token").Return(clientB, nil).Maybe()
	sessions.On("Authenticate", mock.Anything, mock.Anything).
		Return(session.Principal{}, session.ErrInvalidToken).Maybe()

	return &fixture{
		sessions: sessions,
		opts:     apihttp.Options{Now: func() time.Time { return testNow }},
	}
}

func (f *fixture) do(t *testing.T, method, target, token, body string) (*httptest.ResponseRecorder, apihttp.Envelope) {
	t.Helper()

	e := apihttp.NewServer(f.handlers, f.sessions, f.opts, nil).NewEcho()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var envelope apihttp.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	return rec, envelope
}

func shipmentView(owner kernel.UUID) queries.ShipmentView {
	return queries.ShipmentView{
		ID:                kernel.NewUUID(),
		Code:              "ENV1772366400000042",
		Status:            shipment.Created.String(),
		Customer:          queries.CustomerSummary{ID: owner, Username: "cliente-a", FullName: "Cliente A"},
		Origin:            queries.BranchSummary{ID: kernel.NewUUID(), Name: "Centro", City: "Lima"},
		Destination:       queries.BranchSummary{ID: kernel.NewUUID(), Name: "Norte", City: "Trujillo"},
		Weight:            decimal.RequireFromString("2.5"),
		Price:             decimal.RequireFromString("25"),
		CreatedAt:         testNow,
		EstimatedDelivery: testNow.AddDate(0, 0, 3),
	}
}

func dataOf(t *testing.T, envelope apihttp.Envelope) map[string]any {
	t.Helper()
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok, "data is %T", envelope.Data)
	return data
}

func TestHealth(t *testing.T) {
	rec, envelope := newFixture().do(t, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
	assert.Equal(t, http.StatusOK, envelope.Status)
	assert.Equal(t, testNow, envelope.Timestamp)
}

func TestLogin(t *testing.T) {
	u, err := user.NewUser(kernel.NewUUID(), "admin", "$argon2id$hash", "Admin", "admin@example.com", user.Admin)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		f := newFixture()
		f.sessions.On("Login", mock.Anything, "admin", "admin123").Return(session.LoginResult{
			Token:        "access",
			RefreshToken: "refresh",
			TokenType:    session.TokenType,
			ExpiresIn:    time.Hour,
			User:         u,
		}, nil).Once()

		rec, envelope := f.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"admin","password":"admin123"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		data := dataOf(t, envelope)
		assert.Equal(t, "access", data["token"])
		assert.Equal(t, "refresh", data["refreshToken"])
		assert.Equal(t, "Bearer", data["tokenType"])
		assert.InDelta(t, 3600, data["expiresIn"], 0)
		assert.Equal(t, "ADMIN", data["user"].(map[string]any)["role"])
		assert.NotContains(t, rec.Body.String(), "argon2id")
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newFixture()
		f.sessions.On("Login", mock.Anything, "admin", "nope-nope").
			Return(session.LoginResult{}, session.ErrInvalidCredentials).Once()

		rec, envelope := f.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"admin","password":"nope-nope"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, envelope.Success)
		assert.Equal(t, http.StatusUnauthorized, envelope.Status)
	})

	t.Run("inactive user", func(t *testing.T) {
		f := newFixture()
		f.sessions.On("Login", mock.Anything, "ghost", "whatever").
			Return(session.LoginResult{}, session.ErrInactiveUser).Once()

		rec, _ := f.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"ghost","password":"whatever"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture()
		f.sessions.On("Login", mock.Anything, "nobody", "whatever").
			Return(session.LoginResult{}, errs.NewObjectNotFoundError("username", "nobody")).Once()

		rec, _ := f.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"nobody","password":"whatever"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing password", func(t *testing.T) {
		rec, envelope := newFixture().do(t, http.MethodPost, "/api/auth/login", "", `{"username":"admin"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, envelope.Message, "password")
	})

	t.Run("malformed body", func(t *testing.T) {
		rec, _ := newFixture().do(t, http.MethodPost, "/api/auth/login", "", `{"username":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogin_RateLimited(t *testing.T) {
	f := newFixture()
	f.opts.LoginRatePerMinute = 2
	f.sessions.On("Login", mock.Anything, "admin", "nope-nope").
		Return(session.LoginResult{}, session.ErrInvalidCredentials)

	e := apihttp.NewServer(f.handlers, f.sessions, f.opts, nil).NewEcho()
	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"username":"admin","password":"nope-nope"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, codes)
}

func TestRefreshToken_ReturnsUserSummary(t *testing.T) {
	u, err := user.NewUser(kernel.NewUUID(), "operador1", "$argon2id$hash", "Op Uno", "op@example.com", user.Operator)
	require.NoError(t, err)

	f := newFixture()
	f.sessions.On("RefreshToken", mock.Anything, "refresh").Return(session.RefreshResult{
		Token:        "access2",
		RefreshToken: "refresh",
		TokenType:    session.TokenType,
		ExpiresIn:    time.Hour,
		User:         u,
	}, nil).Once()

	rec, envelope := f.do(t, http.MethodPost, "/api/auth/refresh?refreshToken=refresh", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	data := dataOf(t, envelope)
	assert.Equal(t, "access2", data["token"])
	assert.Equal(t, "Bearer", data["tokenType"])
	summary := data["user"].(map[string]any)
	assert.Equal(t, u.ID().String(), summary["id"])
	assert.Equal(t, "operador1", summary["username"])
	assert.Equal(t, "OPERADOR", summary["role"])
	assert.NotContains(t, rec.Body.String(), "argon2id")
	f.sessions.AssertExpectations(t)
}

func TestLogoutValidateRefresh(t *testing.T) {
	f := newFixture()
	f.sessions.On("Logout", mock.Anything, "stale-token").Return(nil).Once()
	f.sessions.On("ValidateToken", mock.Anything, "stale-token").Return(false).Once()
	f.sessions.On("RefreshToken", mock.Anything, "stale-token").
		Return(session.RefreshResult{}, session.ErrInvalidRefreshToken).Once()

	rec, _ := f.do(t, http.MethodPost, "/api/auth/logout", "stale-token", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, envelope := f.do(t, http.MethodGet, "/api/auth/validate?token=stale-token", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, dataOf(t, envelope)["valid"])

	rec, _ = f.do(t, http.MethodPost, "/api/auth/refresh?refreshToken=stale-token", "", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/api/auth/logout", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	f.sessions.AssertExpectations(t)
}

func TestShipments_RequireToken(t *testing.T) {
	f := newFixture()

	rec, envelope := f.do(t, http.MethodGet, "/api/shipments", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, envelope.Success)

	rec, _ = f.do(t, http.MethodGet, "/api/shipments", "forged", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateShipment(t *testing.T) {
	f := newFixture()
	customerID, originID, destinationID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	var created commands.CreateShipmentCommand
	f.handlers.CreateShipment = commandFunc[commands.CreateShipmentCommand](
		func(_ context.Context, cmd commands.CreateShipmentCommand) error {
			created = cmd
			return nil
		})
	f.handlers.GetShipment = queryFunc[queries.GetShipmentQuery, queries.ShipmentView](
		func(_ context.Context, query queries.GetShipmentQuery) (queries.ShipmentView, error) {
			view := shipmentView(customerID)
			view.ID = query.ID()
			return view, nil
		})

	body := `{"customerId":"` + customerID.String() + `","originBranchId":"` + originID.String() +
		`","destinationBranchId":"` + destinationID.String() + `","weight":2.5,"notes":"fragile"}`

	rec, envelope := f.do(t, http.MethodPost, "/api/shipments", "staff-token", body)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, customerID, created.CustomerID())
	assert.Equal(t, originID, created.OriginID())
	assert.Equal(t, destinationID, created.DestinationID())
	assert.True(t, decimal.RequireFromString("2.5").Equal(created.Weight()))
	assert.Equal(t, "fragile", created.Notes())
	require.NotNil(t, created.ActorID())
	assert.Equal(t, staffPrincipal.UserID, *created.ActorID())

	data := dataOf(t, envelope)
	assert.Equal(t, created.ShipmentID().String(), data["id"])
	assert.Equal(t, "CREADO", data["status"])
}

func TestCreateShipment_Errors(t *testing.T) {
	body := `{"customerId":"` + kernel.NewUUID().String() + `","originBranchId":"` + kernel.NewUUID().String() +
		`","destinationBranchId":"` + kernel.NewUUID().String() + `","weight":1}`

	tests := map[string]struct {
		token string
		body  string
		err   error
		want  int
	}{
		"customer is read-only": {token: "client-a-token", body: body, want: http.StatusForbidden},
		"bad uuid":              {token: "staff-token", body: `{"customerId":"x","originBranchId":"y","destinationBranchId":"z","weight":1}`, want: http.StatusBadRequest},
		"zero weight":           {token: "staff-token", body: strings.Replace(body, `"weight":1`, `"weight":0`, 1), want: http.StatusBadRequest},
		"unknown branch":        {token: "staff-token", body: body, err: errs.NewObjectNotFoundError("originID", "x"), want: http.StatusNotFound},
		"storage failure":       {token: "staff-token", body: body, err: errors.New("connection reset"), want: http.StatusInternalServerError},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			f.handlers.CreateShipment = commandFunc[commands.CreateShipmentCommand](
				func(context.Context, commands.CreateShipmentCommand) error { return tt.err })

			rec, envelope := f.do(t, http.MethodPost, "/api/shipments", tt.token, tt.body)

			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.False(t, envelope.Success)
			if tt.want == http.StatusInternalServerError {
				assert.Equal(t, "internal server error", envelope.Message)
			}
		})
	}
}

func TestGetShipment_CustomerScope(t *testing.T) {
	f := newFixture()
	view := shipmentView(clientA.UserID)
	f.handlers.GetShipment = queryFunc[queries.GetShipmentQuery, queries.ShipmentView](
		func(context.Context, queries.GetShipmentQuery) (queries.ShipmentView, error) { return view, nil })

	rec, envelope := f.do(t, http.MethodGet, "/api/shipments/"+view.ID.String(), "client-a-token", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, view.Code, dataOf(t, envelope)["code"])

	rec, _ = f.do(t, http.MethodGet, "/api/shipments/"+view.ID.String(), "client-b-token", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/api/shipments/code/"+view.Code, "staff-token", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/api/shipments/not-a-uuid", "staff-token", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListShipments(t *testing.T) {
	f := newFixture()
	var seen queries.ListShipmentsQuery
	f.handlers.ListShipments = queryFunc[queries.ListShipmentsQuery, queries.ShipmentPage](
		func(_ context.Context, query queries.ListShipmentsQuery) (queries.ShipmentPage, error) {
			seen = query
			return queries.ShipmentPage{
				Items:      []queries.ShipmentView{shipmentView(clientA.UserID)},
				Page:       query.Page(),
				Size:       query.Size(),
				TotalItems: 1,
				TotalPages: 1,
			}, nil
		})

	t.Run("staff sees everything", func(t *testing.T) {
		rec, envelope := f.do(t, http.MethodGet, "/api/shipments?page=0&size=5", "staff-token", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, seen.CustomerID())
		assert.Equal(t, 5, seen.Size())
		assert.Len(t, dataOf(t, envelope)["items"], 1)
	})

	t.Run("customer is scoped to own shipments", func(t *testing.T) {
		rec, _ := f.do(t, http.MethodGet, "/api/shipments", "client-a-token", "")

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen.CustomerID())
		assert.Equal(t, clientA.UserID, *seen.CustomerID())
		assert.Equal(t, queries.DefaultPageSize, seen.Size())
	})

	t.Run("by status", func(t *testing.T) {
		rec, _ := f.do(t, http.MethodGet, "/api/shipments/status/en_transito", "staff-token", "")

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen.Status())
		assert.Equal(t, shipment.InTransit, *seen.Status())
	})

	t.Run("unknown status", func(t *testing.T) {
		rec, _ := f.do(t, http.MethodGet, "/api/shipments/status/PERDIDO", "staff-token", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("other customer's listing", func(t *testing.T) {
		rec, _ := f.do(t, http.MethodGet, "/api/shipments/customer/"+clientA.UserID.String(), "client-b-token", "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("page size out of range", func(t *testing.T) {
		rec, _ := f.do(t, http.MethodGet, "/api/shipments?size=1000", "staff-token", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestChangeShipmentStatus(t *testing.T) {
	f := newFixture()
	// the stored view lags behind: it still shows the previous milestone
	view := shipmentView(clientA.UserID)
	view.Status = shipment.Collected.String()
	view.Latest = &queries.TrackingEventView{
		ID: kernel.NewUUID(), ShipmentID: view.ID, OccurredAt: testNow.Add(-time.Hour), Label: "RECOLECTADO",
	}

	recorded, err := tracking.NewEvent(kernel.NewUUID(), view.ID, "EN_TRANSITO", "Lima", &staffPrincipal.UserID, "")
	require.NoError(t, err)
	recorded = recorded.Stamped(testNow)

	var changed commands.ChangeShipmentStatusCommand
	f.handlers.ChangeStatus = queryFunc[commands.ChangeShipmentStatusCommand, tracking.Event](
		func(_ context.Context, cmd commands.ChangeShipmentStatusCommand) (tracking.Event, error) {
			changed = cmd
			if cmd.Status() == shipment.Created {
				return tracking.Event{}, errs.NewBusinessRuleViolationError("cannot move backwards")
			}
			return recorded, nil
		})
	f.handlers.GetShipment = queryFunc[queries.GetShipmentQuery, queries.ShipmentView](
		func(context.Context, queries.GetShipmentQuery) (queries.ShipmentView, error) { return view, nil })

	target := "/api/shipments/" + view.ID.String() + "/status"

	rec, envelope := f.do(t, http.MethodPatch, target, "staff-token", `{"status":"EN_TRANSITO","location":"Lima"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, shipment.InTransit, changed.Status())
	assert.Equal(t, "Lima", changed.Location())
	data := dataOf(t, envelope)
	assert.Equal(t, "EN_TRANSITO", data["status"])
	latest := data["latestTracking"].(map[string]any)
	assert.Equal(t, recorded.ID().String(), latest["id"])
	assert.Equal(t, "EN_TRANSITO", latest["label"])
	assert.Equal(t, "Lima", latest["location"])
	assert.Equal(t, staffPrincipal.UserID.String(), latest["userId"])

	rec, _ = f.do(t, http.MethodPatch, target, "staff-token", `{"status":"CREADO"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = f.do(t, http.MethodPatch, target, "staff-token", `{"status":"PERDIDO"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = f.do(t, http.MethodPatch, target, "client-a-token", `{"status":"EN_TRANSITO"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteShipment_AdminOnly(t *testing.T) {
	f := newFixture()
	deleted := 0
	f.handlers.DeleteShipment = commandFunc[commands.DeleteShipmentCommand](
		func(context.Context, commands.DeleteShipmentCommand) error {
			deleted++
			return nil
		})
	target := "/api/shipments/" + kernel.NewUUID().String()

	rec, _ := f.do(t, http.MethodDelete, target, "staff-token", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = f.do(t, http.MethodDelete, target, "admin-token", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, deleted)
}

func TestStatusCounts(t *testing.T) {
	f := newFixture()
	f.handlers.StatusCounts = queryFunc[queries.GetStatusCountsQuery, []queries.StatusCount](
		func(context.Context, queries.GetStatusCountsQuery) ([]queries.StatusCount, error) {
			counts := make([]queries.StatusCount, 0)
			for _, s := range shipment.AllStatuses() {
				counts = append(counts, queries.StatusCount{Status: s.String()})
			}
			counts[0].Count = 4
			return counts, nil
		})

	rec, envelope := f.do(t, http.MethodGet, "/api/shipments/stats/status", "staff-token", "")

	require.Equal(t, http.StatusOK, rec.Code)
	counts, ok := envelope.Data.([]any)
	require.True(t, ok)
	require.Len(t, counts, 7)
	assert.Equal(t, map[string]any{"status": "CREADO", "count": float64(4)}, counts[0])
}

func TestTracking(t *testing.T) {
	f := newFixture()
	view := shipmentView(clientA.UserID)
	event := queries.TrackingEventView{ID: kernel.NewUUID(), ShipmentID: view.ID, OccurredAt: testNow, Label: "CREADO"}

	var order queries.ListTrackingEventsQuery
	f.handlers.GetShipment = queryFunc[queries.GetShipmentQuery, queries.ShipmentView](
		func(context.Context, queries.GetShipmentQuery) (queries.ShipmentView, error) { return view, nil })
	f.handlers.ListTrackingEvents = queryFunc[queries.ListTrackingEventsQuery, []queries.TrackingEventView](
		func(_ context.Context, query queries.ListTrackingEventsQuery) ([]queries.TrackingEventView, error) {
			order = query
			return []queries.TrackingEventView{event}, nil
		})
	f.handlers.LatestTrackingEvent = queryFunc[queries.GetLatestTrackingEventQuery, *queries.TrackingEventView](
		func(context.Context, queries.GetLatestTrackingEventQuery) (*queries.TrackingEventView, error) { return nil, nil })

	target := "/api/tracking/shipment/" + view.ID.String()

	rec, envelope := f.do(t, http.MethodGet, target+"?order=desc", "client-a-token", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, envelope.Data, 1)
	assert.Equal(t, view.ID, order.ShipmentID())

	rec, _ = f.do(t, http.MethodGet, target, "client-b-token", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = f.do(t, http.MethodGet, target+"?order=sideways", "staff-token", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = f.do(t, http.MethodGet, target+"/latest", "staff-token", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAppendTrackingEvent(t *testing.T) {
	f := newFixture()
	shipmentID := kernel.NewUUID()
	f.handlers.AppendTrackingEvent = queryFunc[commands.AppendTrackingEventCommand, tracking.Event](
		func(_ context.Context, cmd commands.AppendTrackingEventCommand) (tracking.Event, error) {
			event, err := tracking.NewEvent(kernel.NewUUID(), cmd.ShipmentID(), cmd.Label(), cmd.Location(), cmd.ActorID(), cmd.Notes())
			if err != nil {
				return tracking.Event{}, err
			}
			return event.Stamped(testNow), nil
		})

	body := `{"shipmentId":"` + shipmentID.String() + `","label":"Llegada a almacén","location":"Lima"}`
	rec, envelope := f.do(t, http.MethodPost, "/api/tracking", "staff-token", body)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data := dataOf(t, envelope)
	assert.Equal(t, "Llegada a almacén", data["label"])
	assert.Equal(t, staffPrincipal.UserID.String(), data["userId"])

	rec, _ = f.do(t, http.MethodPost, "/api/tracking", "staff-token", `{"shipmentId":"`+shipmentID.String()+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRoutes(t *testing.T) {
	f := newFixture()
	f.handlers.CreateBranch = commandFunc[commands.CreateBranchCommand](
		func(context.Context, commands.CreateBranchCommand) error { return nil })
	f.handlers.RegisterUser = commandFunc[commands.RegisterUserCommand](
		func(context.Context, commands.RegisterUserCommand) error {
			return errs.NewObjectAlreadyExistsError("username", "cliente-a")
		})

	rec, _ := f.do(t, http.MethodPost, "/api/branches", "staff-token", `{"name":"Sur","city":"Arequipa"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, envelope := f.do(t, http.MethodPost, "/api/branches", "admin-token", `{"name":"Sur","city":"Arequipa"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, dataOf(t, envelope)["id"])

	body := `{"username":"cliente-a","password":"secret-123","fullName":"Cliente A","email":"a@example.com","role":"CLIENTE"}`
	rec, _ = f.do(t, http.MethodPost, "/api/users", "admin-token", body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, envelope = f.do(t, http.MethodPost, "/api/users", "admin-token", strings.Replace(body, "CLIENTE", "ROOT", 1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, envelope.Message, "role")
}
