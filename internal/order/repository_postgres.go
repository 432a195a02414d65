package order

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertOrderQuery = `
		INSERT INTO orders (id, user_id, customer_name, customer_phone, customer_address, total_price, notes, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`
	insertItemQuery = `
		INSERT INTO order_items (id, order_id, product_id, product_name, product_price, product_weight, quantity)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`
	listOrdersQuery = `
		SELECT id, user_id, customer_name, customer_phone, customer_address, total_price, notes, status, created_at
		FROM orders
		ORDER BY created_at DESC
	`
	listOrdersByUserQuery = `
		SELECT id, user_id, customer_name, customer_phone, customer_address, total_price, notes, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	listItemsQuery = `
		SELECT id, order_id, product_id, product_name, product_price, product_weight, quantity
		FROM order_items
		WHERE order_id = ANY($1::text[])
	`
	updateStatusQuery = `UPDATE orders SET status = $1 WHERE id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateOrder(ord Order) (Order, error) {
	_, err := r.db.Exec(insertOrderQuery,
		ord.ID,
		ord.UserID,
		ord.CustomerName,
		ord.CustomerPhone,
		ord.CustomerAddress,
		ord.TotalPrice,
		ord.Notes,
		ord.Status,
		ord.CreatedAt,
	)
	if err != nil {
		return Order{}, err
	}
	ord.Items = nil
	return ord, nil
}

func (r *PostgresRepository) CreateItems(items []Item) error {
	for _, it := range items {
		if _, err := r.db.Exec(insertItemQuery,
			it.ID,
			it.OrderID,
			it.ProductID,
			it.ProductName,
			it.ProductPrice,
			it.ProductWeight,
			it.Quantity,
		); err != nil {
			return err
		}
	}
	return nil
}

// DeleteOrder drops the lines first so the header never outlives them.
func (r *PostgresRepository) DeleteOrder(id string) error {
	if _, err := r.db.Exec(`DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return err
	}
	result, err := r.db.Exec(`DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListByUser(userID string) ([]Order, error) {
	rows, err := r.db.Query(listOrdersByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	return r.attachItems(orders)
}

func (r *PostgresRepository) ListAll() ([]Order, error) {
	rows, err := r.db.Query(listOrdersQuery)
	if err != nil {
		return nil, err
	}
	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	return r.attachItems(orders)
}

func (r *PostgresRepository) UpdateStatus(id string, status string) error {
	result, err := r.db.Exec(updateStatusQuery, status, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// attachItems fetches the lines for every listed order in one query rather
// than one query per order.
func (r *PostgresRepository) attachItems(orders []Order) ([]Order, error) {
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, 0, len(orders))
	for _, ord := range orders {
		ids = append(ids, ord.ID)
	}

	rows, err := r.db.Query(listItemsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byOrder := make(map[string][]Item, len(orders))
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.ProductPrice, &it.ProductWeight, &it.Quantity); err != nil {
			return nil, err
		}
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items := byOrder[orders[i].ID]
		if items == nil {
			items = []Item{}
		}
		orders[i].Items = items
	}
	return orders, nil
}

func scanOrders(rows *sql.Rows) ([]Order, error) {
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		var ord Order
		var notes sql.NullString
		if err := rows.Scan(
			&ord.ID,
			&ord.UserID,
			&ord.CustomerName,
			&ord.CustomerPhone,
			&ord.CustomerAddress,
			&ord.TotalPrice,
			&notes,
			&ord.Status,
			&ord.CreatedAt,
		); err != nil {
			return nil, err
		}
		if notes.Valid {
			ord.Notes = &notes.String
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}
