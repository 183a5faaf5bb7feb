// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// Line items live in a JSON column of the order row; status changes are kept in
// an append-only audit table.
package orderrepo

import (
	"time"

	"restaurant/internal/core/domain/model/billing"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID                  uuid.UUID                         `gorm:"type:uuid;primaryKey"`
	Number              string                            `gorm:"size:32;not null;uniqueIndex"`
	Type                string                            `gorm:"size:16;not null"`
	TableNumber         *int                              `gorm:"index"`
	NumberOfMembers     int                               `gorm:"not null;default:0"`
	CustomerName        string                            `gorm:"size:100;not null"`
	CustomerPhone       string                            `gorm:"size:20;not null;index"`
	CustomerAddress     string                            `gorm:"size:500"`
	CookingInstructions string                            `gorm:"size:500"`
	Items               datatypes.JSONSlice[LineItemDTO] `gorm:"not null"`
	TotalPrice          decimal.Decimal                   `gorm:"type:numeric(12,2);not null"`
	Tax                 decimal.Decimal                   `gorm:"type:numeric(12,2);not null"`
	DeliveryFee         decimal.Decimal                   `gorm:"type:numeric(12,2);not null"`
	GrandTotal          decimal.Decimal                   `gorm:"type:numeric(12,2);not null"`
	ProcessingTime      int                               `gorm:"not null;default:0"`
	Status              string                            `gorm:"size:16;not null;index"`
	ChefID              *uuid.UUID                        `gorm:"type:uuid;index"`
	CreatedAt           time.Time                         `gorm:"not null;index"`
	Version             int                               `gorm:"not null;default:0"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO is one element of the items JSON column.
type LineItemDTO struct {
	MenuItemID          uuid.UUID       `json:"menuItemId"`
	Name                string          `json:"name"`
	Price               decimal.Decimal `json:"price"`
	Quantity            int             `json:"quantity"`
	SpecialInstructions string          `json:"specialInstructions,omitempty"`
}

// StatusChangeDTO is one row of the order status audit trail.
type StatusChangeDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FromStatus string    `gorm:"size:16;not null"`
	ToStatus   string    `gorm:"size:16;not null"`
	ChangedBy  string    `gorm:"size:16;not null"`
	ChangedAt  time.Time `gorm:"not null"`
}

// TableName specifies the database table name for the audit trail.
func (StatusChangeDTO) TableName() string {
	return "order_status_changes"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	var tableNumber *int
	if n, ok := o.TableNumber(); ok {
		tableNumber = &n
	}

	var chefID *uuid.UUID
	if id := o.ChefID(); id != nil {
		raw := id.Bytes()
		chefID = &raw
	}

	items := make([]LineItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, LineItemDTO{
			MenuItemID:          item.MenuItemID().Bytes(),
			Name:                item.Name(),
			Price:               item.Price(),
			Quantity:            item.Quantity(),
			SpecialInstructions: item.SpecialInstructions(),
		})
	}

	bill := o.Bill()
	return OrderDTO{
		ID:                  o.ID().Bytes(),
		Number:              o.Number(),
		Type:                o.Type().String(),
		TableNumber:         tableNumber,
		NumberOfMembers:     o.NumberOfMembers(),
		CustomerName:        o.CustomerName(),
		CustomerPhone:       o.CustomerPhone().String(),
		CustomerAddress:     o.CustomerAddress(),
		CookingInstructions: o.CookingInstructions(),
		Items:               datatypes.NewJSONSlice(items),
		TotalPrice:          bill.TotalPrice,
		Tax:                 bill.Tax,
		DeliveryFee:         bill.DeliveryFee,
		GrandTotal:          bill.GrandTotal,
		ProcessingTime:      o.ProcessingTime(),
		Status:              o.Status().String(),
		ChefID:              chefID,
		CreatedAt:           o.CreatedAt(),
		Version:             o.Version(),
	}
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderType, err := order.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	phone, err := kernel.NewPhone(dto.CustomerPhone)
	if err != nil {
		return nil, err
	}

	var chefID *kernel.UUID
	if dto.ChefID != nil {
		cID, chefErr := kernel.UUIDFromBytes((*dto.ChefID)[:])
		if chefErr != nil {
			return nil, chefErr
		}
		chefID = &cID
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, raw := range dto.Items {
		menuItemID, idErr := kernel.UUIDFromBytes(raw.MenuItemID[:])
		if idErr != nil {
			return nil, idErr
		}
		item, itemErr := order.NewLineItem(menuItemID, raw.Name, raw.Price, raw.Quantity, raw.SpecialInstructions)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var tableNumber int
	if dto.TableNumber != nil {
		tableNumber = *dto.TableNumber
	}

	return order.RestoreOrder(order.Draft{
		ID:                  id,
		Number:              dto.Number,
		Type:                orderType,
		TableNumber:         tableNumber,
		NumberOfMembers:     dto.NumberOfMembers,
		CustomerName:        dto.CustomerName,
		CustomerPhone:       phone,
		CustomerAddress:     dto.CustomerAddress,
		CookingInstructions: dto.CookingInstructions,
		Items:               items,
		ProcessingTime:      dto.ProcessingTime,
		ChefID:              chefID,
		CreatedAt:           dto.CreatedAt,
	}, billing.Bill{
		TotalPrice:  dto.TotalPrice,
		Tax:         dto.Tax,
		DeliveryFee: dto.DeliveryFee,
		GrandTotal:  dto.GrandTotal,
	}, status, dto.Version)
}

func statusChangeFromDomain(c order.StatusChange) StatusChangeDTO {
	return StatusChangeDTO{
		ID:         uuid.New(),
		OrderID:    c.OrderID.Bytes(),
		FromStatus: c.From.String(),
		ToStatus:   c.To.String(),
		ChangedBy:  string(c.ChangedBy),
		ChangedAt:  c.ChangedAt.UTC(),
	}
}
