package domain

import (
	"context"
	"time"
)

// AssignmentStatus é o tipo string para o andamento de um treino atribuído.
type AssignmentStatus string

const (
	AssignmentPending    AssignmentStatus = "PENDING"
	AssignmentInProgress AssignmentStatus = "IN_PROGRESS"
	AssignmentCompleted  AssignmentStatus = "COMPLETED"
)

// Workout representa uma ficha de treino cadastrada pelos instrutores.
type Workout struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WorkoutAssignment vincula um Aluno a uma ficha de treino com um status
// de andamento. Par repositório/handler fino, sem serviço dedicado: a
// existência dos IDs referenciados é garantida pelas FKs do banco.
type WorkoutAssignment struct {
	ID        string           `json:"id"`
	StudentID string           `json:"studentId"`
	WorkoutID string           `json:"workoutId"`
	Status    AssignmentStatus `json:"status"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// WorkoutRepository define o contrato de persistência para fichas de
// treino e suas atribuições.
type WorkoutRepository interface {
	CreateWorkout(ctx context.Context, workout Workout) (Workout, error)
	FindAllWorkouts(ctx context.Context) ([]Workout, error)
	CreateAssignment(ctx context.Context, assignment WorkoutAssignment) (WorkoutAssignment, error)
	FindAssignmentsByStudentID(ctx context.Context, studentID string) ([]WorkoutAssignment, error)
	UpdateAssignmentStatus(ctx context.Context, id string, status AssignmentStatus, notes *string) (*WorkoutAssignment, error)
}
