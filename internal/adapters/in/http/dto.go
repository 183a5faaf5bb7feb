package http

import (
	"time"

	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/chef"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/table"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Request bodies. The validate tags catch malformed input before it reaches
// a command constructor; business rules stay in the domain.
type (
	OrderItemRequest struct {
		MenuItemID          openapi_types.UUID `json:"menuItemId" validate:"required"`
		Quantity            int                `json:"quantity" validate:"gte=1"`
		SpecialInstructions string             `json:"specialInstructions" validate:"max=500"`
	}

	CreateOrderRequest struct {
		OrderType           string             `json:"orderType" validate:"required,oneof=dine-in takeaway"`
		TableNumber         int                `json:"tableNumber" validate:"gte=0"`
		NumberOfMembers     int                `json:"numberOfMembers" validate:"gte=0"`
		Items               []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
		CustomerName        string             `json:"customerName" validate:"required,max=100"`
		CustomerPhone       string             `json:"customerPhone" validate:"required"`
		CustomerAddress     string             `json:"customerAddress" validate:"max=300"`
		CookingInstructions string             `json:"cookingInstructions" validate:"max=500"`
	}

	UpdateOrderStatusRequest struct {
		Status string `json:"status" validate:"required"`
	}

	CreateTableRequest struct {
		Size int    `json:"size" validate:"required"`
		Name string `json:"name" validate:"max=50"`
	}

	UpdateTableRequest struct {
		Size *int    `json:"size"`
		Name *string `json:"name" validate:"omitnil,max=50"`
	}

	ReserveTableRequest struct {
		CustomerPhone   string `json:"customerPhone" validate:"required"`
		NumberOfMembers int    `json:"numberOfMembers" validate:"required"`
	}

	CreateChefRequest struct {
		Name   string `json:"name" validate:"required,max=100"`
		Status string `json:"status" validate:"omitempty,oneof=active inactive"`
	}

	UpdateChefRequest struct {
		Name   string `json:"name" validate:"required,max=100"`
		Status string `json:"status" validate:"required,oneof=active inactive"`
	}
)

// Response bodies.
type (
	OrderLine struct {
		MenuItemID          string          `json:"menuItemId"`
		Name                string          `json:"name"`
		Price               decimal.Decimal `json:"price"`
		Quantity            int             `json:"quantity"`
		SpecialInstructions string          `json:"specialInstructions,omitempty"`
	}

	Order struct {
		ID                  string          `json:"id"`
		OrderNumber         string          `json:"orderNumber"`
		OrderType           string          `json:"orderType"`
		TableNumber         *int            `json:"tableNumber,omitempty"`
		NumberOfMembers     int             `json:"numberOfMembers,omitempty"`
		CustomerName        string          `json:"customerName"`
		CustomerPhone       string          `json:"customerPhone"`
		CustomerAddress     string          `json:"customerAddress,omitempty"`
		CookingInstructions string          `json:"cookingInstructions,omitempty"`
		Items               []OrderLine     `json:"items"`
		TotalPrice          decimal.Decimal `json:"totalPrice"`
		Tax                 decimal.Decimal `json:"tax"`
		DeliveryFee         decimal.Decimal `json:"deliveryFee"`
		GrandTotal          decimal.Decimal `json:"grandTotal"`
		ProcessingTime      int             `json:"processingTime"`
		Status              string          `json:"status"`
		ChefID              string          `json:"chefId,omitempty"`
		CreatedAt           time.Time       `json:"createdAt"`
	}

	Table struct {
		ID              string `json:"id"`
		TableNumber     int    `json:"tableNumber"`
		Size            int    `json:"size"`
		Name            string `json:"name,omitempty"`
		IsReserved      bool   `json:"isReserved"`
		CustomerPhone   string `json:"customerPhone,omitempty"`
		NumberOfMembers int    `json:"numberOfMembers,omitempty"`
	}

	Chef struct {
		ID                string `json:"id"`
		Name              string `json:"name"`
		Status            string `json:"status"`
		CurrentOrderCount int    `json:"currentOrderCount"`
	}

	ChefLoad struct {
		ChefID            string `json:"chefId"`
		Name              string `json:"name"`
		CurrentOrderCount int    `json:"currentOrderCount"`
	}

	TableOccupancy struct {
		TableNumber int  `json:"tableNumber"`
		IsReserved  bool `json:"isReserved"`
	}

	WindowSummary struct {
		TotalOrders      int64           `json:"totalOrders"`
		ServedOrders     int64           `json:"servedOrders"`
		ProcessingOrders int64           `json:"processingOrders"`
		PendingOrders    int64           `json:"pendingOrders"`
		DineInOrders     int64           `json:"dineInOrders"`
		TakeawayOrders   int64           `json:"takeawayOrders"`
		Revenue          decimal.Decimal `json:"revenue"`
	}

	DailyRevenue struct {
		Date    string          `json:"date"`
		Revenue decimal.Decimal `json:"revenue"`
	}

	Stats struct {
		Filter              string           `json:"filter"`
		WindowStart         time.Time        `json:"windowStart"`
		TotalOrders         int64            `json:"totalOrders"`
		TotalRevenue        decimal.Decimal  `json:"totalRevenue"`
		TotalRevenueDisplay string           `json:"totalRevenueDisplay"`
		TotalCustomers      int64            `json:"totalCustomers"`
		ActiveChefs         int64            `json:"activeChefs"`
		ChefLoads           []ChefLoad       `json:"chefLoads"`
		Tables              []TableOccupancy `json:"tables"`
		Window              WindowSummary    `json:"window"`
		RevenueGraph        []DailyRevenue   `json:"revenueGraph"`
	}
)

func orderFromDomain(o *order.Order) Order {
	bill := o.Bill()
	resp := Order{
		ID:                  o.ID().String(),
		OrderNumber:         o.Number(),
		OrderType:           o.Type().String(),
		NumberOfMembers:     o.NumberOfMembers(),
		CustomerName:        o.CustomerName(),
		CustomerPhone:       o.CustomerPhone().String(),
		CustomerAddress:     o.CustomerAddress(),
		CookingInstructions: o.CookingInstructions(),
		Items:               make([]OrderLine, 0, len(o.Items())),
		TotalPrice:          bill.TotalPrice,
		Tax:                 bill.Tax,
		DeliveryFee:         bill.DeliveryFee,
		GrandTotal:          bill.GrandTotal,
		ProcessingTime:      o.ProcessingTime(),
		Status:              o.Status().String(),
		CreatedAt:           o.CreatedAt(),
	}
	if n, dineIn := o.TableNumber(); dineIn {
		resp.TableNumber = &n
	}
	if chefID := o.ChefID(); chefID != nil {
		resp.ChefID = chefID.String()
	}
	for _, line := range o.Items() {
		resp.Items = append(resp.Items, OrderLine{
			MenuItemID:          line.MenuItemID().String(),
			Name:                line.Name(),
			Price:               line.Price(),
			Quantity:            line.Quantity(),
			SpecialInstructions: line.SpecialInstructions(),
		})
	}
	return resp
}

func orderFromView(v queries.OrderView) Order {
	resp := Order{
		ID:                  v.ID.String(),
		OrderNumber:         v.Number,
		OrderType:           v.Type,
		TableNumber:         v.TableNumber,
		NumberOfMembers:     v.NumberOfMembers,
		CustomerName:        v.CustomerName,
		CustomerPhone:       v.CustomerPhone,
		CustomerAddress:     v.CustomerAddress,
		CookingInstructions: v.CookingInstructions,
		Items:               make([]OrderLine, 0, len(v.Items)),
		TotalPrice:          v.TotalPrice,
		Tax:                 v.Tax,
		DeliveryFee:         v.DeliveryFee,
		GrandTotal:          v.GrandTotal,
		ProcessingTime:      v.ProcessingTime,
		Status:              v.Status,
		CreatedAt:           v.CreatedAt,
	}
	if v.ChefID != nil {
		resp.ChefID = v.ChefID.String()
	}
	for _, line := range v.Items {
		resp.Items = append(resp.Items, OrderLine(line))
	}
	return resp
}

func tableFromDomain(t *table.Table) Table {
	return Table{
		ID:              t.ID().String(),
		TableNumber:     t.Number(),
		Size:            t.Size(),
		Name:            t.Name(),
		IsReserved:      t.IsReserved(),
		CustomerPhone:   t.ReservedBy(),
		NumberOfMembers: t.NumberOfMembers(),
	}
}

func tableFromView(v queries.TableView) Table {
	return Table{
		ID:              v.ID.String(),
		TableNumber:     v.Number,
		Size:            v.Size,
		Name:            v.Name,
		IsReserved:      v.IsReserved,
		CustomerPhone:   v.ReservedBy,
		NumberOfMembers: v.NumberOfMembers,
	}
}

func tablesFromViews(views []queries.TableView) []Table {
	resp := make([]Table, 0, len(views))
	for _, v := range views {
		resp = append(resp, tableFromView(v))
	}
	return resp
}

func chefFromDomain(c *chef.Chef) Chef {
	return Chef{
		ID:                c.ID().String(),
		Name:              c.Name(),
		Status:            c.Status().String(),
		CurrentOrderCount: c.CurrentOrderCount(),
	}
}

func chefFromView(v queries.ChefView) Chef {
	return Chef{
		ID:                v.ID.String(),
		Name:              v.Name,
		Status:            v.Status,
		CurrentOrderCount: v.CurrentOrderCount,
	}
}

func statsFromResponse(r queries.GetAnalyticsQueryResponse) Stats {
	resp := Stats{
		Filter:              string(r.Filter),
		WindowStart:         r.WindowStart,
		TotalOrders:         r.TotalOrders,
		TotalRevenue:        r.TotalRevenue,
		TotalRevenueDisplay: r.TotalRevenueDisplay,
		TotalCustomers:      r.TotalCustomers,
		ActiveChefs:         r.ActiveChefs,
		ChefLoads:           make([]ChefLoad, 0, len(r.ChefLoads)),
		Tables:              make([]TableOccupancy, 0, len(r.Tables)),
		Window: WindowSummary{
			TotalOrders:      r.Window.Total,
			ServedOrders:     r.Window.Served,
			ProcessingOrders: r.Window.Processing,
			PendingOrders:    r.Window.Pending,
			DineInOrders:     r.Window.DineIn,
			TakeawayOrders:   r.Window.Takeaway,
			Revenue:          r.Window.Revenue,
		},
		RevenueGraph: make([]DailyRevenue, 0, len(r.RevenueGraph)),
	}
	for _, l := range r.ChefLoads {
		resp.ChefLoads = append(resp.ChefLoads, ChefLoad{
			ChefID:            l.ChefID.String(),
			Name:              l.Name,
			CurrentOrderCount: l.CurrentOrderCount,
		})
	}
	for _, t := range r.Tables {
		resp.Tables = append(resp.Tables, TableOccupancy{TableNumber: t.Number, IsReserved: t.IsReserved})
	}
	for _, d := range r.RevenueGraph {
		resp.RevenueGraph = append(resp.RevenueGraph, DailyRevenue{
			Date:    d.Day.Format(time.DateOnly),
			Revenue: d.Revenue,
		})
	}
	return resp
}
