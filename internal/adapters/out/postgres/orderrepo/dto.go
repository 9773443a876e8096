// Package orderrepo maps order aggregates onto three relational tables:
// orders, order_items and order_status_history.
package orderrepo

import (
	"slices"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
)

// OrderDTO is a row of the orders table. Items and History are loaded with
// Preload and written together with the row on Create.
type OrderDTO struct {
	ID            string            `gorm:"type:varchar(32);primaryKey"`
	CustomerID    string            `gorm:"type:varchar(32);not null;index"`
	CustomerName  string            `gorm:"type:varchar(255);not null"`
	CustomerEmail string            `gorm:"type:varchar(255);not null"`
	OrderDate     time.Time         `gorm:"type:date;not null;index"`
	Status        string            `gorm:"type:varchar(16);not null;index"`
	Items         []ItemDTO         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History       []StatusChangeDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is an order line. Position keeps the original line order.
type ItemDTO struct {
	OrderID     string `gorm:"type:varchar(32);primaryKey"`
	ID          string `gorm:"type:varchar(64);primaryKey"`
	Position    int    `gorm:"type:int;not null"`
	ProductName string `gorm:"type:varchar(255);not null"`
	Quantity    int    `gorm:"type:int;not null"`
	UnitPrice   int64  `gorm:"type:bigint;not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

// StatusChangeDTO is one history entry. Position counts from the oldest
// entry, so appending a change never renumbers existing rows.
type StatusChangeDTO struct {
	OrderID   string    `gorm:"type:varchar(32);primaryKey"`
	Position  int       `gorm:"type:int;primaryKey"`
	Status    string    `gorm:"type:varchar(16);not null"`
	Timestamp time.Time `gorm:"type:timestamptz;not null"`
	UpdatedBy string    `gorm:"type:varchar(255);not null"`
	Note      string    `gorm:"type:text"`
}

func (StatusChangeDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(o *order.Order) OrderDTO {
	items := o.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			OrderID:     o.ID(),
			ID:          item.ID(),
			Position:    i,
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   int64(item.UnitPrice()),
		})
	}

	return OrderDTO{
		ID:            o.ID(),
		CustomerID:    o.Customer().ID(),
		CustomerName:  o.Customer().Name(),
		CustomerEmail: o.Customer().Email(),
		OrderDate:     o.OrderDate(),
		Status:        o.Status().String(),
		Items:         itemDTOs,
		History:       historyFromDomain(o.ID(), o.History()),
	}
}

// historyFromDomain converts a newest-first history into oldest-first rows.
func historyFromDomain(orderID string, history []order.StatusChange) []StatusChangeDTO {
	rows := make([]StatusChangeDTO, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		h := history[i]
		rows = append(rows, StatusChangeDTO{
			OrderID:   orderID,
			Position:  len(rows),
			Status:    h.Status.String(),
			Timestamp: h.Timestamp.UTC(),
			UpdatedBy: h.UpdatedBy,
			Note:      h.Note,
		})
	}
	return rows
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	customer, err := order.NewCustomer(dto.CustomerID, dto.CustomerName, dto.CustomerEmail)
	if err != nil {
		return nil, err
	}

	itemDTOs := slices.Clone(dto.Items)
	slices.SortFunc(itemDTOs, func(a, b ItemDTO) int { return a.Position - b.Position })
	items := make([]order.Item, 0, len(itemDTOs))
	for _, it := range itemDTOs {
		item, itemErr := order.NewItem(it.ID, it.ProductName, it.Quantity, kernel.Cents(it.UnitPrice))
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	rows := slices.Clone(dto.History)
	slices.SortFunc(rows, func(a, b StatusChangeDTO) int { return b.Position - a.Position })
	history := make([]order.StatusChange, 0, len(rows))
	for _, h := range rows {
		history = append(history, order.StatusChange{
			Status:    order.Status(h.Status),
			Timestamp: h.Timestamp.UTC(),
			UpdatedBy: h.UpdatedBy,
			Note:      h.Note,
		})
	}

	return order.RestoreOrder(dto.ID, customer, dto.OrderDate, order.Status(dto.Status), items, history)
}
