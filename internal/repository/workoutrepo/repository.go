package workoutrepo

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

// WorkoutRepository implementa domain.WorkoutRepository sobre PostgreSQL.
// Par fino, sem camada de serviço: as FKs do banco garantem a existência
// dos IDs referenciados nas atribuições.
type WorkoutRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewWorkoutRepository cria e retorna uma nova instância do Repositório de Treinos.
func NewWorkoutRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *WorkoutRepository {
	return &WorkoutRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

// CreateWorkout insere uma nova ficha de treino.
func (r *WorkoutRepository) CreateWorkout(ctx context.Context, workout domain.Workout) (domain.Workout, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	workout.ID = uuid.NewString()
	workout.CreatedAt = time.Now().UTC()

	_, err := r.DB.ExecContext(ctxTimeout,
		`INSERT INTO workouts (id, name, description, created_at) VALUES ($1,$2,$3,$4)`,
		workout.ID, workout.Name, workout.Description, workout.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir ficha de treino no DB.", err)
		return domain.Workout{}, apperror.NewDBError("Falha ao criar ficha de treino", err)
	}

	return workout, nil
}

// FindAllWorkouts lista as fichas de treino, por nome.
func (r *WorkoutRepository) FindAllWorkouts(ctx context.Context) ([]domain.Workout, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout,
		`SELECT id, name, COALESCE(description, ''), created_at FROM workouts ORDER BY name`)
	if err != nil {
		r.logger.Error("Falha ao listar fichas de treino.", err)
		return nil, apperror.NewDBError("Falha ao buscar fichas de treino", err)
	}
	defer rows.Close()

	var workouts []domain.Workout
	for rows.Next() {
		var w domain.Workout
		if err := rows.Scan(&w.ID, &w.Name, &w.Description, &w.CreatedAt); err != nil {
			return nil, apperror.NewDBError("Falha ao mapear fichas de treino", err)
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Erro após iteração de fichas de treino", err)
	}

	return workouts, nil
}

// CreateAssignment vincula uma ficha de treino a um aluno.
func (r *WorkoutRepository) CreateAssignment(ctx context.Context, assignment domain.WorkoutAssignment) (domain.WorkoutAssignment, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	assignment.ID = uuid.NewString()
	now := time.Now().UTC()
	assignment.CreatedAt = now
	assignment.UpdatedAt = now
	if assignment.Status == "" {
		assignment.Status = domain.AssignmentPending
	}

	query := `
        INSERT INTO workout_assignments (id, student_id, workout_id, status, notes, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`

	_, err := r.DB.ExecContext(ctxTimeout, query,
		assignment.ID, assignment.StudentID, assignment.WorkoutID,
		assignment.Status, assignment.Notes, assignment.CreatedAt, assignment.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir atribuição de treino no DB.", err)
		return domain.WorkoutAssignment{}, apperror.NewDBError("Falha ao atribuir treino", err)
	}

	r.logger.Info("Treino atribuído ao aluno.", map[string]interface{}{"id": assignment.ID, "student_id": assignment.StudentID})
	return assignment, nil
}

// FindAssignmentsByStudentID lista as atribuições de um aluno, mais recentes primeiro.
func (r *WorkoutRepository) FindAssignmentsByStudentID(ctx context.Context, studentID string) ([]domain.WorkoutAssignment, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, student_id, workout_id, status, COALESCE(notes, ''), created_at, updated_at
        FROM workout_assignments
        WHERE student_id = $1
        ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query, studentID)
	if err != nil {
		r.logger.Error("Falha ao listar atribuições de treino.", err)
		return nil, apperror.NewDBError("Falha ao buscar atribuições do aluno", err)
	}
	defer rows.Close()

	var assignments []domain.WorkoutAssignment
	for rows.Next() {
		var a domain.WorkoutAssignment
		err := rows.Scan(&a.ID, &a.StudentID, &a.WorkoutID, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, apperror.NewDBError("Falha ao mapear atribuições de treino", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Erro após iteração de atribuições", err)
	}

	return assignments, nil
}

// UpdateAssignmentStatus atualiza o andamento de uma atribuição.
// Notes nil preserva as anotações atuais. Retorna (nil, nil) se não existe.
func (r *WorkoutRepository) UpdateAssignmentStatus(ctx context.Context, id string, status domain.AssignmentStatus, notes *string) (*domain.WorkoutAssignment, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE workout_assignments SET
            status = $1,
            notes = COALESCE($2, notes),
            updated_at = $3
        WHERE id = $4
        RETURNING id, student_id, workout_id, status, COALESCE(notes, ''), created_at, updated_at`

	var a domain.WorkoutAssignment
	err := r.DB.QueryRowContext(ctxTimeout, query, status, notes, time.Now().UTC(), id).Scan(
		&a.ID, &a.StudentID, &a.WorkoutID, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar atribuição de treino no DB.", err)
		return nil, apperror.NewDBError("Falha ao atualizar atribuição", err)
	}

	return &a, nil
}
