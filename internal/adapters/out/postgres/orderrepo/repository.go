package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order with its items and history.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the current status and appends history entries not stored
// yet. Items and customer data are immutable and left untouched. The status
// UPDATE locks the order row, so concurrent writers are serialized, and a
// writer whose copy no longer extends the stored history gets
// errs.ErrVersionIsInvalid with nothing written.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&OrderDTO{}).Where("id = ?", aggregate.ID()).Update("status", aggregate.Status().String())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID())
		}

		var stored []StatusChangeDTO
		if err := tx.Where("order_id = ?", aggregate.ID()).Order("position").Find(&stored).Error; err != nil {
			return err
		}

		rows := historyFromDomain(aggregate.ID(), aggregate.History())
		if !extendsHistory(rows, stored) {
			return errs.NewVersionIsInvalidError("order",
				fmt.Errorf("order %s was changed by another request", aggregate.ID()))
		}
		if fresh := rows[len(stored):]; len(fresh) > 0 {
			return tx.Create(&fresh).Error
		}
		return nil
	})
}

// extendsHistory reports whether the stored rows are the oldest rows of next.
// Timestamps are compared at the microsecond precision of timestamptz.
func extendsHistory(next, stored []StatusChangeDTO) bool {
	if len(stored) > len(next) {
		return false
	}
	for i, s := range stored {
		n := next[i]
		d := n.Timestamp.Sub(s.Timestamp)
		if n.Status != s.Status || n.UpdatedBy != s.UpdatedBy || n.Note != s.Note ||
			d <= -time.Microsecond || d >= time.Microsecond {
			return false
		}
	}
	return true
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	var dto OrderDTO
	if err := r.withChildren(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetMany retrieves the orders with the given ids in list order.
func (r *GormOrderRepository) GetMany(ctx context.Context, ids []string) ([]*order.Order, error) {
	if len(ids) == 0 {
		return []*order.Order{}, nil
	}

	var dtos []OrderDTO
	err := r.withChildren(ctx).
		Where("id = ANY(?)", pq.Array(ids)).
		Order("order_date DESC, id DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainMany(dtos)
}

// Find returns every order matching criteria in list order.
func (r *GormOrderRepository) Find(ctx context.Context, criteria ports.OrderCriteria) ([]*order.Order, error) {
	q := r.withChildren(ctx)

	if criteria.Status != nil {
		q = q.Where("status = ?", criteria.Status.String())
	}
	if criteria.Search != "" {
		like := "%" + escapeLike(strings.ToLower(criteria.Search)) + "%"
		q = q.Where("(LOWER(id) LIKE ? OR LOWER(customer_name) LIKE ? OR LOWER(customer_email) LIKE ?)",
			like, like, like)
	}
	if criteria.DateFrom != nil {
		q = q.Where("order_date >= ?", criteria.DateFrom.Format("2006-01-02"))
	}
	if criteria.DateTo != nil {
		q = q.Where("order_date <= ?", criteria.DateTo.Format("2006-01-02"))
	}

	var dtos []OrderDTO
	if err := q.Order("order_date DESC, id DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainMany(dtos)
}

// Count returns the number of stored orders.
func (r *GormOrderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).Count(&n).Error
	return n, err
}

func (r *GormOrderRepository) withChildren(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("position") })
}

func toDomainMany(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
