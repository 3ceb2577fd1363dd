package router

import (
	"net/http"
	"strings"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"gofit/internal/api/contract"
	"gofit/internal/api/payment"
	"gofit/internal/api/plan"
	"gofit/internal/api/student"
	"gofit/internal/api/user"
	"gofit/internal/api/workout"
	"gofit/internal/domain"
	"gofit/internal/pkg/middleware"
)

// Handlers agrupa todos os Handlers já inicializados por injeção de dependências.
type Handlers struct {
	Student  *student.Handler
	Plan     *plan.Handler
	Contract *contract.Handler
	User     *user.Handler
	Payment  *payment.Handler
	Workout  *workout.Handler
}

// NewRouter configura e retorna o roteador HTTP principal.
// Usamos o ServeMux padrão do net/http; a distinção de método HTTP
// é feita aqui, mantendo os Handlers focados em decodificar e delegar.
func NewRouter(h Handlers, auth func(http.HandlerFunc) http.HandlerFunc) http.Handler {
	mux := http.NewServeMux()

	adminOnly := middleware.PermissionMiddleware(domain.RoleAdmin)

	// --- Health Check ---
	mux.HandleFunc("/ping", PingHandler)

	// --- Documentação Swagger ---
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// --- Autenticação (rotas públicas) ---
	mux.HandleFunc("/v1/register", methodHandler(map[string]http.HandlerFunc{
		http.MethodPost: h.User.RegisterHandler,
	}))
	mux.HandleFunc("/v1/login", methodHandler(map[string]http.HandlerFunc{
		http.MethodPost: h.User.LoginHandler,
	}))

	// --- Usuários ---
	// /v1/users/{id} e /v1/users/{id}/password
	mux.HandleFunc("/v1/users/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/password") {
			if r.Method != http.MethodPut {
				methodNotAllowed(w)
				return
			}
			auth(h.User.ChangePasswordHandler)(w, r)
			return
		}
		if r.Method != http.MethodPatch {
			methodNotAllowed(w)
			return
		}
		auth(h.User.UpdateUserHandler)(w, r)
	})

	// --- Alunos ---
	mux.HandleFunc("/v1/students", methodHandler(map[string]http.HandlerFunc{
		http.MethodGet:  auth(h.Student.ListStudentsHandler),
		http.MethodPost: auth(h.Student.CreateStudentHandler),
	}))
	// /v1/students/{id} e /v1/students/{id}/contracts
	mux.HandleFunc("/v1/students/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/contracts") {
			if r.Method != http.MethodGet {
				methodNotAllowed(w)
				return
			}
			auth(h.Contract.GetStudentContractsHandler)(w, r)
			return
		}
		switch r.Method {
		case http.MethodGet:
			auth(h.Student.GetStudentHandler)(w, r)
		case http.MethodPatch:
			auth(h.Student.UpdateStudentHandler)(w, r)
		case http.MethodDelete:
			auth(adminOnly(h.Student.DeleteStudentHandler))(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	// --- Planos ---
	mux.HandleFunc("/v1/plans", methodHandler(map[string]http.HandlerFunc{
		http.MethodGet:  auth(h.Plan.ListPlansHandler),
		http.MethodPost: auth(h.Plan.CreatePlanHandler),
	}))
	mux.HandleFunc("/v1/plans/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			auth(h.Plan.GetPlanHandler)(w, r)
		case http.MethodPatch:
			auth(h.Plan.UpdatePlanHandler)(w, r)
		case http.MethodDelete:
			auth(adminOnly(h.Plan.DeletePlanHandler))(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	// --- Contratos ---
	mux.HandleFunc("/v1/contracts", methodHandler(map[string]http.HandlerFunc{
		http.MethodPost: auth(h.Contract.CreateContractHandler),
	}))
	// /v1/contracts/{id}/payments
	mux.HandleFunc("/v1/contracts/", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/payments") {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodGet:
			auth(h.Payment.ListPaymentsHandler)(w, r)
		case http.MethodPost:
			auth(h.Payment.CreatePaymentHandler)(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	// --- Painel ---
	mux.HandleFunc("/v1/dashboard/active-contracts", methodHandler(map[string]http.HandlerFunc{
		http.MethodGet: auth(h.Contract.CountActiveHandler),
	}))

	// --- Treinos ---
	mux.HandleFunc("/v1/workouts", methodHandler(map[string]http.HandlerFunc{
		http.MethodGet:  auth(h.Workout.ListWorkoutsHandler),
		http.MethodPost: auth(middleware.PermissionMiddleware(domain.RoleAdmin, domain.RoleTrainer)(h.Workout.CreateWorkoutHandler)),
	}))
	mux.HandleFunc("/v1/workout-assignments", methodHandler(map[string]http.HandlerFunc{
		http.MethodGet:  auth(h.Workout.ListAssignmentsHandler),
		http.MethodPost: auth(middleware.PermissionMiddleware(domain.RoleAdmin, domain.RoleTrainer)(h.Workout.CreateAssignmentHandler)),
	}))
	mux.HandleFunc("/v1/workout-assignments/", methodHandler(map[string]http.HandlerFunc{
		http.MethodPatch: auth(h.Workout.UpdateAssignmentStatusHandler),
	}))

	return mux
}

// methodHandler despacha por método HTTP e responde 405 para os demais.
func methodHandler(routes map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := routes[r.Method]; ok {
			handler(w, r)
			return
		}
		methodNotAllowed(w)
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
