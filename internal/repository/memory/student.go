// Package memory fornece implementações em memória dos repositórios,
// intercambiáveis com as implementações PostgreSQL. São usadas pelos
// testes de ponta a ponta, onde estado real entre repositórios importa.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"gofit/internal/domain"
)

// StudentRepository guarda alunos em um map protegido por RWMutex.
type StudentRepository struct {
	mu       sync.RWMutex
	students map[string]domain.Student
	order    []string // preserva a ordem de inserção para listagens estáveis
}

// NewStudentRepository cria um repositório de alunos em memória vazio.
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{students: make(map[string]domain.Student)}
}

func (r *StudentRepository) Create(_ context.Context, student domain.Student) (domain.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	student.ID = uuid.NewString()
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now

	r.students[student.ID] = student
	r.order = append(r.order, student.ID)
	return student, nil
}

func (r *StudentRepository) FindByID(_ context.Context, id string) (*domain.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if student, ok := r.students[id]; ok {
		return &student, nil
	}
	return nil, nil
}

func (r *StudentRepository) FindByEmail(_ context.Context, email string) (*domain.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if student, ok := r.students[id]; ok && student.Email == email {
			return &student, nil
		}
	}
	return nil, nil
}

func (r *StudentRepository) FindByCPF(_ context.Context, cpf string) (*domain.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if student, ok := r.students[id]; ok && student.CPF == cpf {
			return &student, nil
		}
	}
	return nil, nil
}

func (r *StudentRepository) FindAll(_ context.Context) ([]domain.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	students := make([]domain.Student, 0, len(r.students))
	for _, id := range r.order {
		if student, ok := r.students[id]; ok {
			students = append(students, student)
		}
	}
	return students, nil
}

func (r *StudentRepository) Update(_ context.Context, id string, patch domain.StudentPatch) (*domain.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	student, ok := r.students[id]
	if !ok {
		return nil, nil
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	applyString(&student.Name, patch.Name)
	applyString(&student.Email, patch.Email)
	applyString(&student.CPF, patch.CPF)
	applyString(&student.Phone, patch.Phone)
	if patch.DateOfBirth != nil {
		student.DateOfBirth = *patch.DateOfBirth
	}
	if patch.Gender != nil {
		student.Gender = *patch.Gender
	}
	applyString(&student.CEP, patch.CEP)
	applyString(&student.Address, patch.Address)
	applyString(&student.NumberAddress, patch.NumberAddress)
	applyString(&student.Neighborhood, patch.Neighborhood)
	applyString(&student.City, patch.City)
	applyString(&student.State, patch.State)
	applyString(&student.EmergencyContact, patch.EmergencyContact)
	applyString(&student.EmergencyContactPhone, patch.EmergencyContactPhone)
	applyString(&student.Observation, patch.Observation)
	applyString(&student.PhotoURL, patch.PhotoURL)
	student.UpdatedAt = time.Now().UTC()

	r.students[id] = student
	return &student, nil
}

func (r *StudentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.students, id)
	return nil
}
