package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
}

// GetOrderStatsParams defines parameters for GetOrderStats.
type GetOrderStatsParams struct {
	Filter *string `form:"filter,omitempty" json:"filter,omitempty"`
}

// ListAvailableTablesParams defines parameters for ListAvailableTables.
type ListAvailableTablesParams struct {
	Size    *int `form:"size,omitempty" json:"size,omitempty"`
	Members *int `form:"members,omitempty" json:"members,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	CreateOrder(ctx echo.Context) error
	GetOrderStats(ctx echo.Context, params GetOrderStatsParams) error
	GetOrder(ctx echo.Context, id openapi_types.UUID) error
	UpdateOrderStatus(ctx echo.Context, id openapi_types.UUID) error
	TickOrder(ctx echo.Context, id openapi_types.UUID) error

	ListTables(ctx echo.Context) error
	ListAvailableTables(ctx echo.Context, params ListAvailableTablesParams) error
	CreateTable(ctx echo.Context) error
	UpdateTable(ctx echo.Context, id openapi_types.UUID) error
	DeleteTable(ctx echo.Context, id openapi_types.UUID) error
	ReserveTable(ctx echo.Context, id openapi_types.UUID) error
	ReleaseTable(ctx echo.Context, id openapi_types.UUID) error

	ListChefs(ctx echo.Context) error
	GetChef(ctx echo.Context, id openapi_types.UUID) error
	CreateChef(ctx echo.Context) error
	UpdateChef(ctx echo.Context, id openapi_types.UUID) error
	DeleteChef(ctx echo.Context, id openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to typed parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return badParameter("status", err)
	}
	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrderStats(ctx echo.Context) error {
	var params GetOrderStatsParams
	if err := runtime.BindQueryParameter("form", true, false, "filter", ctx.QueryParams(), &params.Filter); err != nil {
		return badParameter("filter", err)
	}
	return w.Handler.GetOrderStats(ctx, params)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	return withID(ctx, w.Handler.GetOrder)
}

func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	return withID(ctx, w.Handler.UpdateOrderStatus)
}

func (w *ServerInterfaceWrapper) TickOrder(ctx echo.Context) error {
	return withID(ctx, w.Handler.TickOrder)
}

func (w *ServerInterfaceWrapper) ListTables(ctx echo.Context) error {
	return w.Handler.ListTables(ctx)
}

func (w *ServerInterfaceWrapper) ListAvailableTables(ctx echo.Context) error {
	var params ListAvailableTablesParams
	if err := runtime.BindQueryParameter("form", true, false, "size", ctx.QueryParams(), &params.Size); err != nil {
		return badParameter("size", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "members", ctx.QueryParams(), &params.Members); err != nil {
		return badParameter("members", err)
	}
	return w.Handler.ListAvailableTables(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateTable(ctx echo.Context) error {
	return w.Handler.CreateTable(ctx)
}

func (w *ServerInterfaceWrapper) UpdateTable(ctx echo.Context) error {
	return withID(ctx, w.Handler.UpdateTable)
}

func (w *ServerInterfaceWrapper) DeleteTable(ctx echo.Context) error {
	return withID(ctx, w.Handler.DeleteTable)
}

func (w *ServerInterfaceWrapper) ReserveTable(ctx echo.Context) error {
	return withID(ctx, w.Handler.ReserveTable)
}

func (w *ServerInterfaceWrapper) ReleaseTable(ctx echo.Context) error {
	return withID(ctx, w.Handler.ReleaseTable)
}

func (w *ServerInterfaceWrapper) ListChefs(ctx echo.Context) error {
	return w.Handler.ListChefs(ctx)
}

func (w *ServerInterfaceWrapper) GetChef(ctx echo.Context) error {
	return withID(ctx, w.Handler.GetChef)
}

func (w *ServerInterfaceWrapper) CreateChef(ctx echo.Context) error {
	return w.Handler.CreateChef(ctx)
}

func (w *ServerInterfaceWrapper) UpdateChef(ctx echo.Context) error {
	return withID(ctx, w.Handler.UpdateChef)
}

func (w *ServerInterfaceWrapper) DeleteChef(ctx echo.Context) error {
	return withID(ctx, w.Handler.DeleteChef)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the router under baseURL.
func RegisterHandlers(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/orders", w.ListOrders)
	router.POST(baseURL+"/orders", w.CreateOrder)
	router.GET(baseURL+"/orders/stats", w.GetOrderStats)
	router.GET(baseURL+"/orders/:id", w.GetOrder)
	router.PATCH(baseURL+"/orders/:id/status", w.UpdateOrderStatus)
	router.PATCH(baseURL+"/orders/:id/processing-time", w.TickOrder)

	router.GET(baseURL+"/tables", w.ListTables)
	router.GET(baseURL+"/tables/available", w.ListAvailableTables)
	router.POST(baseURL+"/tables", w.CreateTable)
	router.PATCH(baseURL+"/tables/:id", w.UpdateTable)
	router.DELETE(baseURL+"/tables/:id", w.DeleteTable)
	router.PATCH(baseURL+"/tables/:id/reserve", w.ReserveTable)
	router.PATCH(baseURL+"/tables/:id/release", w.ReleaseTable)

	router.GET(baseURL+"/chefs", w.ListChefs)
	router.GET(baseURL+"/chefs/:id", w.GetChef)
	router.POST(baseURL+"/chefs", w.CreateChef)
	router.PUT(baseURL+"/chefs/:id", w.UpdateChef)
	router.DELETE(baseURL+"/chefs/:id", w.DeleteChef)
}

func withID(ctx echo.Context, next func(echo.Context, openapi_types.UUID) error) error {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return badParameter("id", err)
	}
	return next(ctx, id)
}

func badParameter(name string, err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
}

// bindAndValidate decodes the JSON body into req and runs the echo validator on it.
func bindAndValidate(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := ctx.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
