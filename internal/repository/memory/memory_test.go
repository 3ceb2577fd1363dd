package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gofit/internal/domain"
	apperror "gofit/internal/errors"
	"gofit/internal/pkg/logger"
	"gofit/internal/repository/memory"
	"gofit/internal/service/contractservice"
	"gofit/internal/service/planservice"
	"gofit/internal/service/studentservice"
)

// TestFluxoCompleto exercita os serviços de ponta a ponta sobre os
// repositórios em memória: cadastra um aluno e um plano, cria o contrato
// e verifica a derivação de datas, o status inicial e o read model
// contrato+plano na listagem do aluno.
func TestFluxoCompleto(t *testing.T) {
	ctx := context.Background()
	log := logger.NewLogger("error")

	studentRepo := memory.NewStudentRepository()
	planRepo := memory.NewPlanRepository()
	contractRepo := memory.NewContractRepository(planRepo)

	studentSvc := studentservice.NewService(studentRepo, log)
	planSvc := planservice.NewService(planRepo, contractRepo, log)
	contractSvc := contractservice.NewService(contractRepo, studentRepo, planRepo, log)

	// 1. Cadastro do aluno.
	student, err := studentSvc.Create(ctx, domain.Student{
		Name:  "John Doe",
		Email: "john@email.com",
		CPF:   "123.456.789-00",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, student.ID)

	// 2. Cadastro do plano mensal, sem status explícito.
	plan, err := planSvc.Create(ctx, domain.Plan{
		Name:           "Mensal",
		DurationMonths: 1,
		Price:          99.90,
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.PlanActive, plan.Status)

	// 3. Contratação com data de início explícita.
	startDate := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	created, err := contractSvc.Create(ctx, domain.NewContract{
		StudentID:      student.ID,
		PlanID:         plan.ID,
		StartDate:      &startDate,
		DurationMonths: 1,
		PricePaid:      99.90,
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.ContractActive, created.Status)
	assert.Equal(t, startDate.AddDate(0, 1, 0), created.EndDate)
	assert.Equal(t, plan.Name, created.Plan.Name)

	// 4. O plano com contrato não pode mais ser excluído.
	err = planSvc.Delete(ctx, plan.ID)
	assert.IsType(t, &apperror.PlanHasContractsError{}, err)

	// 5. A listagem do aluno devolve o contrato com o plano embutido.
	contracts, err := contractSvc.GetStudentContracts(ctx, student.ID)
	assert.NoError(t, err)
	assert.Len(t, contracts, 1)
	assert.Equal(t, created.ID, contracts[0].ID)
	assert.Equal(t, plan.ID, contracts[0].Plan.ID)

	// 6. O painel conta o contrato ativo.
	count, err := contractSvc.CountActive(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

// TestContratosOrdemDecrescente garante que a listagem devolve os
// contratos mais recentes primeiro.
func TestContratosOrdemDecrescente(t *testing.T) {
	ctx := context.Background()
	log := logger.NewLogger("error")

	studentRepo := memory.NewStudentRepository()
	planRepo := memory.NewPlanRepository()
	contractRepo := memory.NewContractRepository(planRepo)
	contractSvc := contractservice.NewService(contractRepo, studentRepo, planRepo, log)

	student, err := studentRepo.Create(ctx, domain.Student{Name: "John Doe", Email: "john@email.com", CPF: "123.456.789-00"})
	assert.NoError(t, err)
	plan, err := planRepo.Create(ctx, domain.Plan{Name: "Mensal", DurationMonths: 1, Price: 99.90, Status: domain.PlanActive})
	assert.NoError(t, err)

	first, err := contractSvc.Create(ctx, domain.NewContract{StudentID: student.ID, PlanID: plan.ID, DurationMonths: 1})
	assert.NoError(t, err)
	second, err := contractSvc.Create(ctx, domain.NewContract{StudentID: student.ID, PlanID: plan.ID, DurationMonths: 12})
	assert.NoError(t, err)

	contracts, err := contractSvc.GetStudentContracts(ctx, student.ID)
	assert.NoError(t, err)
	assert.Len(t, contracts, 2)
	assert.Equal(t, second.ID, contracts[0].ID)
	assert.Equal(t, first.ID, contracts[1].ID)
}

// TestListaEstavel garante que listar alunos é idempotente: duas chamadas
// sem escrita no meio devolvem os mesmos alunos, na mesma ordem.
func TestListaEstavel(t *testing.T) {
	ctx := context.Background()
	log := logger.NewLogger("error")

	studentRepo := memory.NewStudentRepository()
	studentSvc := studentservice.NewService(studentRepo, log)

	first, err := studentSvc.Create(ctx, domain.Student{Name: "John Doe", Email: "john@email.com", CPF: "111.111.111-11"})
	assert.NoError(t, err)
	second, err := studentSvc.Create(ctx, domain.Student{Name: "Jane Doe", Email: "jane@email.com", CPF: "222.222.222-22"})
	assert.NoError(t, err)

	listA, err := studentSvc.List(ctx)
	assert.NoError(t, err)
	listB, err := studentSvc.List(ctx)
	assert.NoError(t, err)

	assert.Len(t, listA, 2)
	assert.Equal(t, first.ID, listA[0].ID)
	assert.Equal(t, second.ID, listA[1].ID)
	assert.Equal(t, listA, listB)
}

// TestUnicidadeEntreRepositorios garante que a unicidade vale também na
// implementação em memória, via serviço.
func TestUnicidadeEntreRepositorios(t *testing.T) {
	ctx := context.Background()
	log := logger.NewLogger("error")

	studentRepo := memory.NewStudentRepository()
	studentSvc := studentservice.NewService(studentRepo, log)

	_, err := studentSvc.Create(ctx, domain.Student{Name: "John Doe", Email: "john@email.com", CPF: "111.111.111-11"})
	assert.NoError(t, err)

	_, err = studentSvc.Create(ctx, domain.Student{Name: "Jane Doe", Email: "john@email.com", CPF: "222.222.222-22"})
	assert.IsType(t, &apperror.StudentEmailInUseError{}, err)

	_, err = studentSvc.Create(ctx, domain.Student{Name: "Jane Doe", Email: "jane@email.com", CPF: "111.111.111-11"})
	assert.IsType(t, &apperror.StudentCPFInUseError{}, err)
}
