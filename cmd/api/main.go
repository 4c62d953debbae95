package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/transportechiro/flota-api/internal/application/auth"
	"github.com/transportechiro/flota-api/internal/application/catalog"
	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/application/fleet"
	"github.com/transportechiro/flota-api/internal/application/inventory"
	"github.com/transportechiro/flota-api/internal/application/usecase"
	"github.com/transportechiro/flota-api/internal/application/workorder"
	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	infraai "github.com/transportechiro/flota-api/internal/infrastructure/ai"
	infrapdf "github.com/transportechiro/flota-api/internal/infrastructure/pdf"
	"github.com/transportechiro/flota-api/internal/infrastructure/sqlite"
	"github.com/transportechiro/flota-api/internal/infrastructure/storage"
	httpRouter "github.com/transportechiro/flota-api/internal/interfaces/http"
	"github.com/transportechiro/flota-api/pkg/config"
	"github.com/transportechiro/flota-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// La base puede venir de corridas anteriores o de un backup restaurado a
	// mano: se elige la candidata con más OTs cargadas.
	dbPath := sqlite.Discover(ctx, cfg.DB, log)
	db, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a SQLite")
	}
	defer db.Close()

	if err := sqlite.Migrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	if _, err := storage.DailyBackup(dbPath, cfg.DB.BackupDir, log); err != nil {
		// Sin backup se puede operar igual; no es motivo de no arrancar.
		log.Warn().Err(err).Msg("backup diario")
	}

	vehicleRepo := sqlite.NewVehicleRepository(db)
	driverRepo := sqlite.NewDriverRepository(db)
	stockRepo := sqlite.NewStockRepository(db)
	movementRepo := sqlite.NewMovementRepository(db)
	orderRepo := sqlite.NewWorkOrderRepository(db)
	requestRepo := sqlite.NewPartsRequestRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	supplierRepo := sqlite.NewSupplierRepository(db)
	noticeRepo := sqlite.NewNoticeRepository(db)
	tireRepo := sqlite.NewTireRepository(db)
	documentRepo := sqlite.NewDocumentRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	fuelRepo := sqlite.NewFuelRepository(db)
	analyticsRepo := sqlite.NewAnalyticsRepository(db)

	resolver := catalog.NewResolver(taskRepo)
	orderTxRunner := sqlite.NewTxRunner(db)
	inventoryTxRunner := sqlite.NewInventoryTxRunner(db)
	fleetTxRunner := sqlite.NewFleetTxRunner(db)

	workOrderUC := workorder.NewUseCase(
		orderTxRunner, orderRepo, requestRepo, stockRepo,
		vehicleRepo, driverRepo, supplierRepo, movementRepo,
		resolver, log,
	)
	inventoryUC := inventory.NewUseCase(inventoryTxRunner, stockRepo, movementRepo, vehicleRepo, log)
	fleetUC := fleet.NewUseCase(fleetTxRunner, vehicleRepo, fuelRepo, analyticsRepo, log)
	driverUC := usecase.NewDriverUseCase(driverRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	tireUC := usecase.NewTireUseCase(tireRepo)
	noticeUC := usecase.NewNoticeUseCase(noticeRepo, vehicleRepo, workOrderUC)
	dashboardUC := usecase.NewDashboardUseCase(analyticsRepo, requestRepo, noticeRepo, tireRepo, inventoryUC, fleetUC)

	fileStore, err := storage.NewFileStore(cfg.Files.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de adjuntos")
	}
	documentUC := usecase.NewDocumentUseCase(documentRepo, orderRepo, fileStore)

	geminiSvc := infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	aiUC := usecase.NewAIUseCase(geminiSvc, log)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	seedAdmin(authUC, userRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    20 << 20, // adjuntos de OT
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Flota API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		FleetUC:     fleetUC,
		DriverUC:    driverUC,
		WorkOrderUC: workOrderUC,
		InventoryUC: inventoryUC,
		SupplierUC:  supplierUC,
		NoticeUC:    noticeUC,
		TireUC:      tireUC,
		DocumentUC:  documentUC,
		DashboardUC: dashboardUC,
		AIUC:        aiUC,
		OrderReport: infrapdf.NewMarotoOrderReport(),
		CompanyName: cfg.App.Name,
		JWTSecret:   cfg.JWT.Secret,
		DBPath:      dbPath,
		BackupDir:   cfg.DB.BackupDir,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// seedAdmin garantiza que siempre haya un usuario administrador para entrar
// la primera vez. La contraseña inicial debe cambiarse de inmediato.
func seedAdmin(authUC *auth.AuthUseCase, users interface {
	GetByUsername(username string) (*entity.User, error)
}, log *logger.Logger) {
	if _, err := users.GetByUsername("admin"); err == nil {
		return
	} else if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrUserNotFound) {
		log.Warn().Err(err).Msg("verificar usuario admin")
		return
	}
	if _, err := authUC.RegisterUser(dto.RegisterUserRequest{
		Username: "admin",
		Password: "admin1234",
		Role:     entity.RoleAdmin,
	}); err != nil {
		log.Warn().Err(err).Msg("crear usuario admin inicial")
		return
	}
	log.Warn().Msg("usuario 'admin' creado con contraseña inicial; cambiarla de inmediato")
}
