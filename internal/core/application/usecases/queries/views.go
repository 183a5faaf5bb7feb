// Package queries contains read operations of the CQRS architecture. Query
// handlers read persisted state straight from the database and return flat
// read models; they never load aggregates and never write.
package queries

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderView is the read model of an order.
type OrderView struct {
	ID                  kernel.UUID
	Number              string
	Type                string
	TableNumber         *int
	NumberOfMembers     int
	CustomerName        string
	CustomerPhone       string
	CustomerAddress     string
	CookingInstructions string
	Items               []OrderLineView
	TotalPrice          decimal.Decimal
	Tax                 decimal.Decimal
	DeliveryFee         decimal.Decimal
	GrandTotal          decimal.Decimal
	ProcessingTime      int
	Status              string
	ChefID              *kernel.UUID
	CreatedAt           time.Time
}

// OrderLineView is one priced line of an order.
type OrderLineView struct {
	MenuItemID          string          `json:"menuItemId"`
	Name                string          `json:"name"`
	Price               decimal.Decimal `json:"price"`
	Quantity            int             `json:"quantity"`
	SpecialInstructions string          `json:"specialInstructions,omitempty"`
}

// ChefView is the read model of a chef.
type ChefView struct {
	ID                kernel.UUID
	Name              string
	Status            string
	CurrentOrderCount int
}

// TableView is the read model of a table.
type TableView struct {
	ID              kernel.UUID
	Number          int
	Size            int
	Name            string
	IsReserved      bool
	ReservedBy      string
	NumberOfMembers int
}

const orderColumns = `
	id, number, type, table_number, number_of_members, customer_name, customer_phone,
	customer_address, cooking_instructions, items, total_price, tax, delivery_fee,
	grand_total, processing_time, status, chef_id, created_at`

// orderRow mirrors the orders table for gorm's Scan.
type orderRow struct {
	ID                  uuid.UUID
	Number              string
	Type                string
	TableNumber         *int
	NumberOfMembers     int
	CustomerName        string
	CustomerPhone       string
	CustomerAddress     string
	CookingInstructions string
	Items               datatypes.JSONSlice[OrderLineView]
	TotalPrice          decimal.Decimal
	Tax                 decimal.Decimal
	DeliveryFee         decimal.Decimal
	GrandTotal          decimal.Decimal
	ProcessingTime      int
	Status              string
	ChefID              *uuid.UUID
	CreatedAt           time.Time
}

func (r orderRow) view() (OrderView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderView{}, err
	}

	var chefID *kernel.UUID
	if r.ChefID != nil {
		parsed, err := kernel.UUIDFromBytes(r.ChefID[:])
		if err != nil {
			return OrderView{}, err
		}
		chefID = &parsed
	}

	return OrderView{
		ID:                  id,
		Number:              r.Number,
		Type:                r.Type,
		TableNumber:         r.TableNumber,
		NumberOfMembers:     r.NumberOfMembers,
		CustomerName:        r.CustomerName,
		CustomerPhone:       r.CustomerPhone,
		CustomerAddress:     r.CustomerAddress,
		CookingInstructions: r.CookingInstructions,
		Items:               []OrderLineView(r.Items),
		TotalPrice:          r.TotalPrice,
		Tax:                 r.Tax,
		DeliveryFee:         r.DeliveryFee,
		GrandTotal:          r.GrandTotal,
		ProcessingTime:      r.ProcessingTime,
		Status:              r.Status,
		ChefID:              chefID,
		CreatedAt:           r.CreatedAt.UTC(),
	}, nil
}
