package product

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listProductsQuery = `
		SELECT id, name, description, price, image, weight, created_at
		FROM products
		ORDER BY created_at DESC
	`
	getProductByIDQuery = `
		SELECT id, name, description, price, image, weight, created_at
		FROM products
		WHERE id = $1
	`
	insertProductQuery = `
		INSERT INTO products (id, name, description, price, image, weight, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			description = $2,
			price = $3,
			image = $4,
			weight = $5
		WHERE id = $6
	`
	deleteProductQuery = `DELETE FROM products WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Product, error) {
	rows, err := r.db.Query(listProductsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (Product, error) {
	row := r.db.QueryRow(getProductByIDQuery, id)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	_, err := r.db.Exec(
		insertProductQuery,
		p.ID,
		p.Name,
		p.Description,
		p.Price,
		p.Image,
		p.Weight,
		p.CreatedAt,
	)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id string, p Product) (Product, error) {
	result, err := r.db.Exec(
		updateProductQuery,
		p.Name,
		p.Description,
		p.Price,
		p.Image,
		p.Weight,
		id,
	)
	if err != nil {
		return Product{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Product{}, err
	}
	if affected == 0 {
		return Product{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id string) error {
	result, err := r.db.Exec(deleteProductQuery, id)
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

// Reset deletes all products and inserts the provided list in a single
// transaction. Historical order_items keep their snapshot columns, so a
// reset never rewrites past orders.
func (r *PostgresRepository) Reset(products []Product) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(`DELETE FROM products`); err != nil {
		return err
	}

	for _, p := range products {
		if _, err := tx.Exec(insertProductQuery,
			p.ID,
			p.Name,
			p.Description,
			p.Price,
			p.Image,
			p.Weight,
			p.CreatedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(scanner rowScanner) (Product, error) {
	p := Product{}
	var createdAt sql.NullString

	if err := scanner.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Image,
		&p.Weight,
		&createdAt,
	); err != nil {
		return Product{}, err
	}

	if createdAt.Valid {
		p.CreatedAt = createdAt.String
	}

	return p, nil
}
