package user

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getUserByIDQuery = `
		SELECT id, email, password, full_name, created_at
		FROM profiles
		WHERE id = $1
	`
	getUserByEmailQuery = `
		SELECT id, email, password, full_name, created_at
		FROM profiles
		WHERE email = $1
	`
	insertUserQuery = `
		INSERT INTO profiles (id, email, password, full_name, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`
	updateFullNameQuery = `UPDATE profiles SET full_name = $1 WHERE id = $2`
	hasRoleQuery        = `SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2`
	grantRoleQuery      = `
		INSERT INTO user_roles (user_id, role)
		SELECT $1, $2
		WHERE NOT EXISTS (SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2)
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id string) (User, error) {
	return scanUser(r.db.QueryRow(getUserByIDQuery, id))
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	return scanUser(r.db.QueryRow(getUserByEmailQuery, email))
}

func (r *PostgresRepository) Create(u User) (User, error) {
	_, err := r.db.Exec(insertUserQuery, u.ID, u.Email, u.Password, u.FullName, u.CreatedAt)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) UpdateFullName(id string, fullName string) (User, error) {
	result, err := r.db.Exec(updateFullNameQuery, fullName, id)
	if err != nil {
		return User{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return User{}, err
	}
	if affected == 0 {
		return User{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) HasRole(userID string, role string) (bool, error) {
	var one int
	err := r.db.QueryRow(hasRoleQuery, userID, role).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *PostgresRepository) GrantRole(userID string, role string) error {
	_, err := r.db.Exec(grantRoleQuery, userID, role)
	return err
}

func scanUser(row *sql.Row) (User, error) {
	var u User
	var createdAt sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FullName, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if createdAt.Valid {
		u.CreatedAt = createdAt.String
	}
	return u, nil
}
