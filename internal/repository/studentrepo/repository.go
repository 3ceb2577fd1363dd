package studentrepo

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

// StudentRepository implementa domain.StudentRepository sobre PostgreSQL.
// Buscas sem resultado retornam (nil, nil): a tradução para erro de
// domínio é responsabilidade da camada de Serviço.
type StudentRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewStudentRepository cria e retorna uma nova instância do Repositório de Alunos.
func NewStudentRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *StudentRepository {
	return &StudentRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

// Colunas opcionais passam por COALESCE: linhas semeadas fora da
// aplicação podem carregar NULL, que não pode ser lido em string.
const studentColumns = `id, name, email, cpf, phone, date_of_birth, gender,
	cep, address, number_address, neighborhood, city, state,
	COALESCE(emergency_contact, ''), COALESCE(emergency_contact_phone, ''),
	COALESCE(observation, ''), COALESCE(photo_url, ''),
	created_at, updated_at`

func scanStudent(row interface{ Scan(dest ...interface{}) error }) (domain.Student, error) {
	var s domain.Student
	err := row.Scan(
		&s.ID, &s.Name, &s.Email, &s.CPF, &s.Phone, &s.DateOfBirth, &s.Gender,
		&s.CEP, &s.Address, &s.NumberAddress, &s.Neighborhood, &s.City, &s.State,
		&s.EmergencyContact, &s.EmergencyContactPhone, &s.Observation, &s.PhotoURL,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Create insere um novo aluno no banco de dados.
func (r *StudentRepository) Create(ctx context.Context, student domain.Student) (domain.Student, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	student.ID = uuid.NewString()
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now

	query := `
        INSERT INTO students (id, name, email, cpf, phone, date_of_birth, gender,
            cep, address, number_address, neighborhood, city, state,
            emergency_contact, emergency_contact_phone, observation, photo_url,
            created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`

	_, err := r.DB.ExecContext(ctxTimeout, query,
		student.ID, student.Name, student.Email, student.CPF, student.Phone,
		student.DateOfBirth, student.Gender,
		student.CEP, student.Address, student.NumberAddress, student.Neighborhood,
		student.City, student.State,
		student.EmergencyContact, student.EmergencyContactPhone,
		student.Observation, student.PhotoURL,
		student.CreatedAt, student.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir aluno no DB.", err)
		return domain.Student{}, apperror.NewDBError("Falha ao criar aluno", err)
	}

	r.logger.Info("Aluno criado no repositório.", map[string]interface{}{"id": student.ID})
	return student, nil
}

// FindByID busca um aluno pelo ID.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*domain.Student, error) {
	return r.findBy(ctx, "id", id)
}

// FindByEmail busca um aluno pelo email.
func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*domain.Student, error) {
	return r.findBy(ctx, "email", email)
}

// FindByCPF busca um aluno pelo CPF.
func (r *StudentRepository) FindByCPF(ctx context.Context, cpf string) (*domain.Student, error) {
	return r.findBy(ctx, "cpf", cpf)
}

func (r *StudentRepository) findBy(ctx context.Context, column, value string) (*domain.Student, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + studentColumns + ` FROM students WHERE ` + column + ` = $1`

	student, err := scanStudent(r.DB.QueryRowContext(ctxTimeout, query, value))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Falha ao buscar aluno no DB.", err)
		return nil, apperror.NewDBError("Falha ao buscar aluno", err)
	}
	return &student, nil
}

// FindAll busca todos os alunos, ordenados por nome.
func (r *StudentRepository) FindAll(ctx context.Context) ([]domain.Student, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + studentColumns + ` FROM students ORDER BY name`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao executar FindAll de alunos.", err)
		return nil, apperror.NewDBError("Falha ao buscar alunos", err)
	}
	defer rows.Close()

	var students []domain.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			r.logger.Error("Falha ao mapear aluno na iteração de FindAll.", err)
			return nil, apperror.NewDBError("Falha ao mapear alunos do DB", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Erro após iteração de alunos", err)
	}

	return students, nil
}

// Update aplica um patch parcial via COALESCE: campos nil do patch
// preservam o valor atual da linha. Retorna (nil, nil) se a linha não existe.
func (r *StudentRepository) Update(ctx context.Context, id string, patch domain.StudentPatch) (*domain.Student, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE students SET
            name = COALESCE($1, name),
            email = COALESCE($2, email),
            cpf = COALESCE($3, cpf),
            phone = COALESCE($4, phone),
            date_of_birth = COALESCE($5, date_of_birth),
            gender = COALESCE($6, gender),
            cep = COALESCE($7, cep),
            address = COALESCE($8, address),
            number_address = COALESCE($9, number_address),
            neighborhood = COALESCE($10, neighborhood),
            city = COALESCE($11, city),
            state = COALESCE($12, state),
            emergency_contact = COALESCE($13, emergency_contact),
            emergency_contact_phone = COALESCE($14, emergency_contact_phone),
            observation = COALESCE($15, observation),
            photo_url = COALESCE($16, photo_url),
            updated_at = $17
        WHERE id = $18
        RETURNING ` + studentColumns

	student, err := scanStudent(r.DB.QueryRowContext(ctxTimeout, query,
		patch.Name, patch.Email, patch.CPF, patch.Phone,
		patch.DateOfBirth, patch.Gender,
		patch.CEP, patch.Address, patch.NumberAddress, patch.Neighborhood,
		patch.City, patch.State,
		patch.EmergencyContact, patch.EmergencyContactPhone,
		patch.Observation, patch.PhotoURL,
		time.Now().UTC(), id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar aluno no DB.", err)
		return nil, apperror.NewDBError("Falha ao atualizar aluno", err)
	}

	r.logger.Info("Aluno atualizado no repositório.", map[string]interface{}{"id": student.ID})
	return &student, nil
}

// Delete remove um aluno pelo ID. A ausência da linha não é erro aqui:
// o Serviço já verificou a existência.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	_, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar aluno do DB.", err)
		return apperror.NewDBError("Falha ao deletar aluno", err)
	}

	r.logger.Info("Aluno deletado do repositório.", map[string]interface{}{"id": id})
	return nil
}
