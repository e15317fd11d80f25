package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/anjiri1684/skill_swap/configs"
	"github.com/anjiri1684/skill_swap/database"
	"github.com/anjiri1684/skill_swap/handlers"
	"github.com/anjiri1684/skill_swap/jobs"
	"github.com/anjiri1684/skill_swap/logger"
	"github.com/anjiri1684/skill_swap/meetings"
	"github.com/anjiri1684/skill_swap/notifications"
	"github.com/anjiri1684/skill_swap/routes"
	"github.com/anjiri1684/skill_swap/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/sync/errgroup"
)

func main() {
	log, err := logger.Init(config.Default("LOG_MODE", "development"))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if config.Config("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	if config.Bool("SEED_SKILLS", true) {
		if err := database.SeedSkills(database.DB); err != nil {
			log.Fatal("failed to seed skills", "error", err)
		}
	}
	notifications.InitEmailService()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := websocket.NewHub(log)
	if addr := config.Config("REDIS_ADDR"); addr != "" {
		bus, err := websocket.NewRedisBus(log, addr, config.Default("REDIS_CHANNEL", "skillswap"))
		if err != nil {
			log.Fatal("failed to connect realtime bus", "error", err)
		}
		defer bus.Close()
		if err := hub.UseBus(ctx, bus); err != nil {
			log.Fatal("failed to start realtime bus", "error", err)
		}
		log.Info("realtime bus enabled", "redis_addr", addr)
	}
	handlers.Realtime = hub
	handlers.Meetings = meetings.NewJitsi(config.Default("MEETING_BASE_URL", "https://meet.jit.si"))

	scheduler, err := jobs.NewScheduler(database.DB, hub, config.Duration("STALE_SESSION_AFTER", 24*time.Hour))
	if err != nil {
		log.Fatal("failed to schedule jobs", "error", err)
	}
	scheduler.Start()
	log.Info("background jobs scheduled")

	app := fiber.New(fiber.Config{
		AppName:       "SkillSwap",
		CaseSensitive: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler:  handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  config.Default("CORS_ORIGINS", "*"),
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length",
		MaxAge:        86400,
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.Setup(app)

	port := config.Default("PORT", "8080")
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "port", port)
		return app.Listen(":" + port)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		<-scheduler.Stop().Done()
		hub.Close()
		return app.ShutdownWithTimeout(10 * time.Second)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
	}
}
