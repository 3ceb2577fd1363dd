package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Pacotes de infraestrutura e utilitários
	"gofit/config"
	"gofit/internal/pkg/cache"
	"gofit/internal/pkg/database"
	"gofit/internal/pkg/logger"
	"gofit/internal/pkg/middleware"
	"gofit/internal/pkg/password"
	"gofit/internal/pkg/token"

	// Camadas da API para Injeção de Dependências
	"gofit/internal/api/contract"
	"gofit/internal/api/payment"
	"gofit/internal/api/plan"
	"gofit/internal/api/router"
	"gofit/internal/api/student"
	"gofit/internal/api/user"
	"gofit/internal/api/workout"
	"gofit/internal/repository/contractrepo"
	"gofit/internal/repository/paymentrepo"
	"gofit/internal/repository/planrepo"
	"gofit/internal/repository/studentrepo"
	"gofit/internal/repository/userrepo"
	"gofit/internal/repository/workoutrepo"
	"gofit/internal/service/contractservice"
	"gofit/internal/service/planservice"
	"gofit/internal/service/studentservice"
	"gofit/internal/service/userservice"
)

// @title GoFit API
// @version 1.0
// @description API de gestão de academia: alunos, planos, contratos, pagamentos e treinos.
// @BasePath /v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando serviço GoFit...")
	// O godotenv.Load() procura por um arquivo chamado .env na raiz.
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", nil)

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis)
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	log.Info("Conexão Redis estabelecida.", nil)

	// C. Serviço de Tokens (JWT) e hash de senha
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	hasher := password.NewBcryptHasher()
	log.Debug("Serviço de Tokens JWT inicializado.", nil)

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler

	// A. Repositórios (Camada de Acesso a Dados)
	studentRepo := studentrepo.NewStudentRepository(db, cfg.DBTimeout, log)
	planRepo := planrepo.NewPlanRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, log)
	contractRepo := contractrepo.NewContractRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, log)
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	paymentRepo := paymentrepo.NewPaymentRepository(db, cfg.DBTimeout, log)
	workoutRepo := workoutrepo.NewWorkoutRepository(db, cfg.DBTimeout, log)
	log.Debug("Repositórios inicializados.", nil)

	// B. Serviços (Camada de Lógica de Negócio)
	studentSvc := studentservice.NewService(studentRepo, log)
	planSvc := planservice.NewService(planRepo, contractRepo, log)
	contractSvc := contractservice.NewService(contractRepo, studentRepo, planRepo, log)
	userSvc := userservice.NewService(userRepo, hasher, tokenSvc, log)
	log.Debug("Serviços inicializados.", nil)

	// C. Handlers (Camada de Apresentação)
	handlers := router.Handlers{
		Student:  student.NewHandler(studentSvc, log),
		Plan:     plan.NewHandler(planSvc, log),
		Contract: contract.NewHandler(contractSvc, log),
		User:     user.NewHandler(userSvc, log),
		Payment:  payment.NewHandler(paymentRepo, log),
		Workout:  workout.NewHandler(workoutRepo, log),
	}
	log.Debug("Handlers inicializados.", nil)

	// 4. Configuração e Início do Roteador/Servidor
	authMiddleware := middleware.NewAuthMiddleware(tokenSvc)
	r := router.NewRouter(handlers, authMiddleware)

	// Rate limit global por IP, apoiado no Redis.
	rateLimited := middleware.RateLimiter(cacheClient, cfg.RateLimitMaxRequests, cfg.RateLimitPeriod)(r)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      rateLimited,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor GoFit ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
