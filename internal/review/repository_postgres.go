package review

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertReviewQuery = `
		INSERT INTO reviews (id, product_id, user_id, rating, comment, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`
	listReviewsQuery = `
		SELECT r.id, r.product_id, r.user_id, r.rating, r.comment, r.created_at, p.full_name
		FROM reviews r
		LEFT JOIN profiles p ON p.id = r.user_id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(rv Review) (Review, error) {
	_, err := r.db.Exec(insertReviewQuery,
		rv.ID,
		rv.ProductID,
		rv.UserID,
		rv.Rating,
		rv.Comment,
		rv.CreatedAt,
	)
	if err != nil {
		return Review{}, err
	}
	return rv, nil
}

func (r *PostgresRepository) ListByProduct(productID string) ([]Review, error) {
	rows, err := r.db.Query(listReviewsQuery, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Review, 0)
	for rows.Next() {
		var rv Review
		var name sql.NullString
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &name); err != nil {
			return nil, err
		}
		if name.Valid {
			rv.ReviewerName = &name.String
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
