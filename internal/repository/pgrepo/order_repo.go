package pgrepo

import (
	"context"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/pkg/uow"
)

// OrderRepository только читает заказы. Заказы создаются сервисом заказов в общей БД.
type OrderRepository struct {
	conn uow.DBTX
}

func NewOrderRepository(conn uow.DBTX) *OrderRepository {
	return &OrderRepository{conn: conn}
}

// ListCompletedByCustomerShop возвращает завершенные заказы покупателя в магазине вместе с позициями и оплатами,
// отсортированные по дате создания по убыванию.
func (r *OrderRepository) ListCompletedByCustomerShop(
	ctx context.Context,
	customerID, shopID int64,
) ([]domain.Order, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT id, created_at, updated_at, shop_id, customer_id, order_number, status,
			subtotal, discount, total, paid, payment_due
		FROM orders
		WHERE customer_id = $1 AND shop_id = $2 AND status = $3
		ORDER BY created_at DESC, id DESC`,
		customerID, shopID, string(domain.OrderStatusCompleted))
	if err != nil {
		return nil, convertErr(err, "listing orders customerID %d shopID %d", customerID, shopID)
	}
	defer rows.Close()

	var orders []domain.Order
	index := make(map[int64]int)
	for rows.Next() {
		var o domain.Order
		var status, subtotal, discount, total, paid, due string
		if scanErr := rows.Scan(
			&o.ID, &o.CreatedAt, &o.UpdatedAt, &o.ShopID, &o.CustomerID, &o.OrderNumber, &status,
			&subtotal, &discount, &total, &paid, &due,
		); scanErr != nil {
			return nil, convertErr(scanErr, "scanning order")
		}
		o.Status = domain.OrderStatusType(status)
		o.Subtotal = domain.EncryptedAmount(subtotal)
		o.Discount = domain.EncryptedAmount(discount)
		o.Total = domain.EncryptedAmount(total)
		o.Paid = domain.EncryptedAmount(paid)
		o.PaymentDue = domain.EncryptedAmount(due)
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing orders customerID %d shopID %d", customerID, shopID)
	}
	rows.Close()

	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	if itemsErr := r.attachItems(ctx, orders, index, ids); itemsErr != nil {
		return nil, itemsErr
	}
	if paymentsErr := r.attachPayments(ctx, orders, index, ids); paymentsErr != nil {
		return nil, paymentsErr
	}
	return orders, nil
}

// ShopIDsByCustomer магазины, в которых у покупателя есть хотя бы один заказ.
func (r *OrderRepository) ShopIDsByCustomer(ctx context.Context, customerID int64) ([]int64, error) {
	return collectIDs(ctx, r.conn,
		`SELECT DISTINCT shop_id FROM orders WHERE customer_id = $1 ORDER BY shop_id`, customerID)
}

func (r *OrderRepository) attachItems(ctx context.Context, orders []domain.Order, index map[int64]int, ids []int64) error {
	rows, err := r.conn.Query(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, original_price, selling_price, warranty_months
		FROM order_items WHERE order_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return convertErr(err, "listing order items")
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		var original, selling string
		if scanErr := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity,
			&original, &selling, &item.WarrantyMonths,
		); scanErr != nil {
			return convertErr(scanErr, "scanning order item")
		}
		item.OriginalPrice = domain.EncryptedAmount(original)
		item.SellingPrice = domain.EncryptedAmount(selling)
		i := index[item.OrderID]
		orders[i].Items = append(orders[i].Items, item)
	}
	return convertErr(rows.Err(), "listing order items")
}

func (r *OrderRepository) attachPayments(
	ctx context.Context,
	orders []domain.Order,
	index map[int64]int,
	ids []int64,
) error {
	rows, err := r.conn.Query(ctx, `
		SELECT id, created_at, order_id, method, amount
		FROM payments WHERE order_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return convertErr(err, "listing order payments")
	}
	defer rows.Close()

	for rows.Next() {
		p, scanErr := scanPayment(rows)
		if scanErr != nil {
			return convertErr(scanErr, "scanning payment")
		}
		i := index[p.OrderID]
		orders[i].Payments = append(orders[i].Payments, *p)
	}
	return convertErr(rows.Err(), "listing order payments")
}
