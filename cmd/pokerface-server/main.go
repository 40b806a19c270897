package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ma-weihao/PokerFaceOff-server/common/database"
	"github.com/ma-weihao/PokerFaceOff-server/common/logger"
	commonredis "github.com/ma-weihao/PokerFaceOff-server/common/redis"
	"github.com/ma-weihao/PokerFaceOff-server/internal/config"
	"github.com/ma-weihao/PokerFaceOff-server/internal/events"
	httpapi "github.com/ma-weihao/PokerFaceOff-server/internal/http"
	"github.com/ma-weihao/PokerFaceOff-server/internal/repository"
	"github.com/ma-weihao/PokerFaceOff-server/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "pokerface-server")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// 事务存储是唯一共享可变资源：启动时获取一次，停止时释放
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// 房间事件流（可选）
	var publisher events.Publisher = events.NopPublisher{}
	var redisClient *commonredis.Client
	if cfg.Redis.Enabled {
		redisClient = commonredis.NewRedisClient(&cfg.Redis.RedisConfig)
		if err := commonredis.Ping(context.Background(), redisClient); err != nil {
			log.Warn("redis unavailable, room events disabled", zap.Error(err))
			_ = commonredis.Close(redisClient)
			redisClient = nil
		} else {
			publisher = events.NewStreamPublisher(redisClient, log)
		}
	}

	// 回合通知 webhook（可选）
	var webhook *service.WebhookClient
	if cfg.Webhook.URL != "" {
		webhook = service.NewWebhookClient(cfg.Webhook.URL, log)
	}

	roomsRepo := repository.NewPostgresRoomsRepository(db)
	roundsRepo := repository.NewPostgresRoundsRepository(db)
	usersRepo := repository.NewPostgresUsersRepository(db)
	votesRepo := repository.NewPostgresVotesRepository(db)

	roomService := service.NewRoomService(roomsRepo, publisher, log)
	roundService := service.NewRoundService(roundsRepo, publisher, webhook, log)
	voteService := service.NewVoteService(votesRepo, usersRepo, publisher, log)
	memberService := service.NewMemberService(usersRepo, roomsRepo, publisher, log)
	statusService := service.NewStatusService(roomsRepo, roundsRepo, usersRepo, votesRepo, log)

	router := httpapi.NewRouter(log)
	router.RegisterPokerRoutes(
		httpapi.NewRoomHandler(roomService, memberService, roundService, statusService, log),
		httpapi.NewRoundHandler(roundService, log),
		httpapi.NewVoteHandler(voteService, log),
		httpapi.NewUserHandler(memberService, log),
	)
	router.RegisterHealthRoutes()

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Info("shutdown signal received")
	case err := <-errCh:
		log.Error("server exited", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if redisClient != nil {
		_ = commonredis.Close(redisClient)
	}
	_ = database.Close(db)
}
