package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "lendcircle-backend/internal/adapter/http"
	"lendcircle-backend/internal/adapter/middleware"
	"lendcircle-backend/internal/adapter/repository/mysql"
	"lendcircle-backend/internal/config"
	"lendcircle-backend/internal/domain/invitation"
	domainLoan "lendcircle-backend/internal/domain/loan"
	"lendcircle-backend/internal/domain/participant"
	domainPayment "lendcircle-backend/internal/domain/payment"
	domainUser "lendcircle-backend/internal/domain/user"
	"lendcircle-backend/internal/infrastructure/cache"
	"lendcircle-backend/internal/infrastructure/db"
	"lendcircle-backend/internal/infrastructure/objectstore"
	authuc "lendcircle-backend/internal/usecase/auth"
	"lendcircle-backend/internal/usecase/lender"
	loanuc "lendcircle-backend/internal/usecase/loan"
	paymentuc "lendcircle-backend/internal/usecase/payment"
	useruc "lendcircle-backend/internal/usecase/user"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := gdb.AutoMigrate(
		&domainUser.User{},
		&domainLoan.Loan{},
		&participant.Participant{},
		&participant.ACHDetail{},
		&invitation.Invitation{},
		&domainPayment.Payment{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	store, err := objectstore.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("s3: %v", err)
	}

	userRepo := mysql.NewUserRepository(gdb)
	loanRepo := mysql.NewLoanRepository(gdb)
	participantRepo := mysql.NewParticipantRepository(gdb)
	paymentRepo := mysql.NewPaymentRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	lenderUC := lender.NewUsecase(loanRepo, participantRepo, userRepo, uow)
	loanUC := loanuc.NewUsecase(loanRepo, participantRepo, userRepo, uow, cfg.LoanMaxPrincipal)
	paymentUC := paymentuc.NewUsecase(loanRepo, participantRepo, paymentRepo, userRepo, uow, store)
	authUC := authuc.NewUsecase(userRepo, lenderUC, []byte(cfg.JWTSecret), time.Duration(cfg.JWTTTLHours)*time.Hour)
	userUC := useruc.NewUsecase(userRepo, loanRepo, participantRepo)

	h := httpadp.NewHandler()
	authH := httpadp.NewAuthHandler(authUC)
	loanH := httpadp.NewLoanHandler(loanUC)
	lenderH := httpadp.NewLenderHandler(lenderUC)
	paymentH := httpadp.NewPaymentHandler(paymentUC)
	userH := httpadp.NewUserHandler(userUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)
	e.POST("/auth/register", authH.Register)
	e.POST("/auth/login", authH.Login)

	api := e.Group("", middleware.JWTAuth([]byte(cfg.JWTSecret)))
	idemp := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	api.POST("/loans", loanH.CreateLoan, idemp)
	api.GET("/loans/my-loans", loanH.MyLoans)
	api.GET("/loans/:loan_id", loanH.GetLoan)
	api.POST("/loans/:loan_id/invitations", lenderH.InviteLenders, idemp)

	api.GET("/lender/pending", lenderH.PendingInvitations)
	api.PUT("/lender/accept/:loan_id", lenderH.AcceptInvitation, idemp)
	api.PUT("/lender/decline/:loan_id", lenderH.DeclineInvitation, idemp)
	api.GET("/lenders/search", lenderH.SearchLenders)

	api.POST("/payments", paymentH.SubmitPayment, idemp)
	api.GET("/payments/loan/:loan_id", paymentH.LoanPayments)
	api.GET("/payments/pending", paymentH.PendingReviews)
	api.POST("/payments/receipt-upload-url", paymentH.ReceiptUploadURL)
	api.GET("/payments/:payment_id", paymentH.GetPayment)
	api.PUT("/payments/:payment_id", paymentH.ReviewPayment, idemp)
	api.GET("/payments/:payment_id/receipt-url", paymentH.ReceiptViewURL)

	api.GET("/user/profile", userH.Profile)
	api.GET("/user/dashboard", userH.Dashboard)
	api.GET("/user/portfolio", userH.Portfolio)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
