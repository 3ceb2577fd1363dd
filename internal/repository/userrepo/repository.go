package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"gofit/internal/domain"
	apperror "gofit/internal/errors"
	"gofit/internal/pkg/logger"
)

// UserRepository implementa domain.UserRepository sobre PostgreSQL.
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o DB.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *UserRepository {
	return &UserRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

// COALESCE em avatar_url: a coluna é anulável.
const userColumns = `id, name, email, password_hash, role, COALESCE(avatar_url, ''), created_at, updated_at`

func scanUser(row interface{ Scan(dest ...interface{}) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.AvatarURL, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// Create insere um novo usuário no banco de dados.
func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	user.ID = uuid.NewString()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
        INSERT INTO users (id, name, email, password_hash, role, avatar_url, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	_, err := r.DB.ExecContext(ctxTimeout, query,
		user.ID, user.Name, user.Email, user.PasswordHash,
		user.Role, user.AvatarURL, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("Falha ao criar usuário", err)
	}

	r.logger.Info("Usuário criado no repositório.", map[string]interface{}{"id": user.ID})
	return user, nil
}

// FindByID busca um usuário pelo ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findBy(ctx, "id", id)
}

// FindByEmail busca um usuário pelo endereço de email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findBy(ctx, "email", email)
}

func (r *UserRepository) findBy(ctx context.Context, column, value string) (*domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`

	user, err := scanUser(r.DB.QueryRowContext(ctxTimeout, query, value))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Falha ao buscar usuário no DB.", err)
		return nil, apperror.NewDBError("Falha ao buscar usuário", err)
	}
	return &user, nil
}

// Update aplica um patch parcial via COALESCE. A senha fica de fora:
// ela só muda pelo UpdatePassword.
func (r *UserRepository) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE users SET
            name = COALESCE($1, name),
            email = COALESCE($2, email),
            role = COALESCE($3, role),
            avatar_url = COALESCE($4, avatar_url),
            updated_at = $5
        WHERE id = $6
        RETURNING ` + userColumns

	user, err := scanUser(r.DB.QueryRowContext(ctxTimeout, query,
		patch.Name, patch.Email, patch.Role, patch.AvatarURL,
		time.Now().UTC(), id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar usuário no DB.", err)
		return nil, apperror.NewDBError("Falha ao atualizar usuário", err)
	}

	r.logger.Info("Usuário atualizado no repositório.", map[string]interface{}{"id": user.ID})
	return &user, nil
}

// UpdatePassword persiste um novo hash de senha.
func (r *UserRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	_, err := r.DB.ExecContext(ctxTimeout,
		`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		passwordHash, time.Now().UTC(), id,
	)
	if err != nil {
		r.logger.Error("Falha ao atualizar senha no DB.", err)
		return apperror.NewDBError("Falha ao atualizar senha", err)
	}

	r.logger.Info("Senha atualizada no repositório.", map[string]interface{}{"id": id})
	return nil
}
