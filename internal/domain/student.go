package domain

import (
	"context"
	"time"
)

// Gender é o tipo string para o sexo do aluno.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Student representa o aluno da academia (a Entidade central do sistema).
// Email e CPF são únicos entre todos os alunos; essa unicidade é
// pré-validada na camada de Serviço antes de qualquer escrita.
type Student struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CPF         string    `json:"cpf"`
	Phone       string    `json:"phone"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Gender      Gender    `json:"gender"`

	// Endereço
	CEP           string `json:"cep"`
	Address       string `json:"address"`
	NumberAddress string `json:"numberAddress"`
	Neighborhood  string `json:"neighborhood"`
	City          string `json:"city"`
	State         string `json:"state"`

	// Campos opcionais
	EmergencyContact      string `json:"emergencyContact,omitempty"`
	EmergencyContactPhone string `json:"emergencyContactPhone,omitempty"`
	Observation           string `json:"observation,omitempty"`
	PhotoURL              string `json:"photoUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StudentPatch é o payload de atualização parcial do aluno.
// Todos os campos são ponteiros: nil significa "não alterar".
type StudentPatch struct {
	Name                  *string    `json:"name,omitempty"`
	Email                 *string    `json:"email,omitempty"`
	CPF                   *string    `json:"cpf,omitempty"`
	Phone                 *string    `json:"phone,omitempty"`
	DateOfBirth           *time.Time `json:"dateOfBirth,omitempty"`
	Gender                *Gender    `json:"gender,omitempty"`
	CEP                   *string    `json:"cep,omitempty"`
	Address               *string    `json:"address,omitempty"`
	NumberAddress         *string    `json:"numberAddress,omitempty"`
	Neighborhood          *string    `json:"neighborhood,omitempty"`
	City                  *string    `json:"city,omitempty"`
	State                 *string    `json:"state,omitempty"`
	EmergencyContact      *string    `json:"emergencyContact,omitempty"`
	EmergencyContactPhone *string    `json:"emergencyContactPhone,omitempty"`
	Observation           *string    `json:"observation,omitempty"`
	PhotoURL              *string    `json:"photoUrl,omitempty"`
}

// StudentRepository define o contrato de persistência para a entidade Student.
// As buscas retornam (nil, nil) quando o registro não existe; a camada de
// Serviço traduz o nil para o erro de domínio tipado.
type StudentRepository interface {
	Create(ctx context.Context, student Student) (Student, error)
	FindByID(ctx context.Context, id string) (*Student, error)
	FindByEmail(ctx context.Context, email string) (*Student, error)
	FindByCPF(ctx context.Context, cpf string) (*Student, error)
	FindAll(ctx context.Context) ([]Student, error)
	Update(ctx context.Context, id string, patch StudentPatch) (*Student, error)
	Delete(ctx context.Context, id string) error
}
