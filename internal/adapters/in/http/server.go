package http

import (
	"net/http"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/chef"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handlers groups the use cases the HTTP API exposes.
type Handlers struct {
	// Command handlers
	CreateOrder       commands.CreateOrderCommandHandler
	UpdateOrderStatus commands.UpdateOrderStatusCommandHandler
	TickOrder         commands.TickOrderCommandHandler
	CreateTable       commands.CreateTableCommandHandler
	UpdateTable       commands.UpdateTableCommandHandler
	DeleteTable       commands.DeleteTableCommandHandler
	ReserveTable      commands.ReserveTableCommandHandler
	ReleaseTable      commands.ReleaseTableCommandHandler
	CreateChef        commands.CreateChefCommandHandler
	UpdateChef        commands.UpdateChefCommandHandler
	DeleteChef        commands.DeleteChefCommandHandler

	// Query handlers
	ListOrders          queries.ListOrdersQueryHandler
	GetOrder            queries.GetOrderQueryHandler
	GetAnalytics        queries.GetAnalyticsQueryHandler
	ListTables          queries.ListTablesQueryHandler
	ListAvailableTables queries.ListAvailableTablesQueryHandler
	ListChefs           queries.ListChefsQueryHandler
	GetChef             queries.GetChefQueryHandler
}

// Server implements ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h Handlers
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	var status *order.Status
	if params.Status != nil {
		parsed, err := order.ParseStatus(*params.Status)
		if err != nil {
			return err
		}
		status = &parsed
	}

	query, err := queries.NewListOrdersQuery(status)
	if err != nil {
		return err
	}

	views, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]Order, 0, len(views))
	for _, v := range views {
		resp = append(resp, orderFromView(v))
	}
	return ok(ctx, http.StatusOK, resp, "")
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	orderType, err := order.ParseType(req.OrderType)
	if err != nil {
		return err
	}
	phone, err := kernel.NewPhone(req.CustomerPhone)
	if err != nil {
		return err
	}

	items := make([]commands.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		menuItemID, err := toKernelUUID(item.MenuItemID)
		if err != nil {
			return err
		}
		items = append(items, commands.OrderItem{
			MenuItemID:          menuItemID,
			Quantity:            item.Quantity,
			SpecialInstructions: item.SpecialInstructions,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(
		orderType,
		req.TableNumber,
		req.NumberOfMembers,
		req.CustomerName,
		phone,
		req.CustomerAddress,
		req.CookingInstructions,
		items,
	)
	if err != nil {
		return err
	}

	created, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ok(ctx, http.StatusCreated, orderFromDomain(created), "order created")
}

// GetOrderStats handles GET /api/v1/orders/stats.
func (s *Server) GetOrderStats(ctx echo.Context, params GetOrderStatsParams) error {
	raw := ""
	if params.Filter != nil {
		raw = *params.Filter
	}
	filter, err := queries.ParseAnalyticsFilter(raw)
	if err != nil {
		return err
	}

	stats, err := s.h.GetAnalytics.Handle(ctx.Request().Context(), queries.NewGetAnalyticsQuery(filter))
	if err != nil {
		return err
	}
	return ok(ctx, http.StatusOK, statsFromResponse(stats), "")
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := toKernelUUID(id)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return err
	}

	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ok(ctx, http.StatusOK, orderFromView(view), "")
}

// UpdateOrderStatus handles PATCH /api/v1/orders/{id}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, id openapi_types.UUID) error {
	var req UpdateOrderStatusRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	orderID, err := toKernelUUID(id)
	if err != nil {
		return err
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status)
	if err != nil {
		return err
	}

	updated, err := s.h.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ok(ctx, http.StatusOK, orderFromDomain(updated), "order status updated")
}

// TickOrder handles PATCH /api/v1/orders/{id}/processing-time.
func (s *Server) TickOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := toKernelUUID(id)
	if err != nil {
		return err
	}
	cmd, err := commands.NewTickOrderCommand(orderID)
	if err != nil {
		return err
	}

	ticked, err := s.h.TickOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ok(ctx, http.StatusOK, orderFromDomain(ticked), "")
}

// ListTables handles GET /api/v1/tables.
func (s *Server) ListTables(ctx echo.Context) error {
	views, err := s.h.ListTables.Handle(ctx.Request().Context(), queries.NewListTablesQuery())
	if err != nil {
		return err
	}
	return ok(ctx, http.StatusOK, tablesFromViews(views), "")
}

// ListAvailableTables handles GET /api/v1/tables/available.
func (s *Server) ListAvailableTables(ctx echo.Context, params ListAvailableTablesParams) error {
	query, err := queries.NewListAvailableTablesQuery(params.Size, params.Members)
	if err != nil {
		return err
	}

	views, err := s.h.ListAvailableTables.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ok(ctx, http.StatusOK, tablesFromViews(views), "")
}

// CreateTable handles POST /api/v1/tables.
func (s *Server) CreateTable(ctx echo.Context) error {
	var req CreateTableRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateTableCommand(req.Size, req.Name)
	if err != nil {
		return err
	}

	created, err := s.h.CreateTable.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ok(ctx, http.StatusCreated, tableFromDomain(created), "table created")
}

// UpdateTable handles PATCH /api/v1/tables/{id}.
func (s *Server) UpdateTable(ctx echo.Context, id openapi_types.UUID) error {
	var req UpdateTableRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	tableID, err := toKernelUUID(id)
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateTableCommand(tableID, req.Size, req.Name)
	if err != nil {
		return err
	}

	updated, err := s.h.UpdateTable.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ok(ctx, http.StatusOK, tableFromDomain(updated), "table updated")
}

// DeleteTable handles DELETE /api/v1/tables/{id}.
func (s *Server) DeleteTable(ctx echo.Context, id openapi_types.UUID) error {
	tableID, err := toKernelUUID(id)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteTableCommand(tableID)
	if err != nil {
		return err
	}

	if err := s.h.DeleteTable.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ok(ctx, http.StatusOK, nil, "table deleted")
}

// ReserveTable handles PATCH /api/v1/tables/{id}/reserve.
func (s *Server) ReserveTable(ctx echo.Context, id openapi_types.UUID) error {
	var req ReserveTableRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	tableID, err := toKernelUUID(id)
	if err != nil {
		return err
	}
	phone, err := kernel.NewPhone(req.CustomerPhone)
	if err != nil {
		return err
	}
	cmd, err := commands.NewReserveTableCommand(tableID, phone, req.NumberOfMembers)
	if err != nil {
		return err
	}

	reserved, err := s.h.ReserveTable.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ok(ctx, http.StatusOK, tableFromDomain(reserved), "table reserved")
}

// ReleaseTable handles PATCH /api/v1/tables/{id}/release.
func (s *Server) ReleaseTable(ctx echo.Context, id openapi_types.UUID) error {
	tableID, err := toKernelUUID(id)
	if err != nil {
		return err
	}
	cmd, err := commands.NewReleaseTableCommand(tableID)
	if err != nil {
		return err
	}

	released, err := s.h.ReleaseTable.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ok(ctx, http.StatusOK, tableFromDomain(released), "table released")
}

// ListChefs handles GET /api/v1/chefs.
func (s *Server) ListChefs(ctx echo.Context) error {
	views, err := s.h.ListChefs.Handle(ctx.Request().Context(), queries.NewListChefsQuery())
	if err != nil {
		return err
	}

	resp := make([]Chef, 0, len(views))
	for _, v := range views {
		resp = append(resp, chefFromView(v))
	}
	return ok(ctx, http.StatusOK, resp, "")
}

// GetChef handles GET /api/v1/chefs/{id}.
func (s *Server) GetChef(ctx echo.Context, id openapi_types.UUID) error {
	chefID, err := toKernelUUID(id)
	if err != nil {
		return err
	}
	query, err := queries.NewGetChefQuery(chefID)
	if err != nil {
		return err
	}

	view, err := s.h.GetChef.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ok(ctx, http.StatusOK, chefFromView(view), "")
}

// CreateChef handles POST /api/v1/chefs.
func (s *Server) CreateChef(ctx echo.Context) error {
	var req CreateChefRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	status, err := chef.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateChefCommand(req.Name, status)
	if err != nil {
		return err
	}

	created, err := s.h.CreateChef.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ok(ctx, http.StatusCreated, chefFromDomain(created), "chef created")
}

// UpdateChef handles PUT /api/v1/chefs/{id}.
func (s *Server) UpdateChef(ctx echo.Context, id openapi_types.UUID) error {
	var req UpdateChefRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	chefID, err := toKernelUUID(id)
	if err != nil {
		return err
	}
	status, err := chef.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateChefCommand(chefID, req.Name, status)
	if err != nil {
		return err
	}

	updated, err := s.h.UpdateChef.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ok(ctx, http.StatusOK, chefFromDomain(updated), "chef updated")
}

// DeleteChef handles DELETE /api/v1/chefs/{id}.
func (s *Server) DeleteChef(ctx echo.Context, id openapi_types.UUID) error {
	chefID, err := toKernelUUID(id)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteChefCommand(chefID)
	if err != nil {
		return err
	}

	if err := s.h.DeleteChef.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ok(ctx, http.StatusOK, nil, "chef deleted")
}

func toKernelUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}
