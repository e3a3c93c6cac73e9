package repository

import (
	"time"

	"github.com/projectd/dealership-api/internal/model"
	"github.com/projectd/dealership-api/internal/store"
)

// OrderRepo appends to the orders collection.  Orders are write-only
// through the API: there is no list, update, or delete operation, and
// accepting an order changes nothing else (no stock decrement, no
// availability flip).
type OrderRepo struct{ Store *store.Store }

func NewOrderRepo(s *store.Store) *OrderRepo { return &OrderRepo{Store: s} }

// Create persists the order payload as-is, stamping id, order date and
// the pending status.
func (r *OrderRepo) Create(order model.Order) (model.Order, error) {
	err := r.Store.Update(store.Orders, func() error {
		var orders []model.Order
		r.Store.Read(store.Orders, &orders)
		order.ID = nextOrderID(orders)
		order.OrderDate = time.Now().UTC()
		order.Status = model.OrderStatusPending
		orders = append(orders, order)
		return r.Store.Write(store.Orders, orders)
	})
	if err != nil {
		return model.Order{}, err
	}
	return order, nil
}

func nextOrderID(orders []model.Order) int64 {
	var max int64
	for _, o := range orders {
		if o.ID > max {
			max = o.ID
		}
	}
	return max + 1
}
