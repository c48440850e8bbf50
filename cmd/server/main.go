package main

import (
	"context"
	"database/sql"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/woongiiit/DailyQuest-Backend/config"
	messageRepository "github.com/woongiiit/DailyQuest-Backend/internal/message/repository"
	messageUsecase "github.com/woongiiit/DailyQuest-Backend/internal/message/usecase"
	"github.com/woongiiit/DailyQuest-Backend/internal/notifier"
	notifierWS "github.com/woongiiit/DailyQuest-Backend/internal/notifier/delivery/ws"
	questRepository "github.com/woongiiit/DailyQuest-Backend/internal/quest/repository"
	questUsecase "github.com/woongiiit/DailyQuest-Backend/internal/quest/usecase"
	"github.com/woongiiit/DailyQuest-Backend/internal/server"
	userRepository "github.com/woongiiit/DailyQuest-Backend/internal/user/repository"
	userUsecase "github.com/woongiiit/DailyQuest-Backend/internal/user/usecase"

	messageModels "github.com/woongiiit/DailyQuest-Backend/internal/message/model"
	questModels "github.com/woongiiit/DailyQuest-Backend/internal/quest/model"
	userModels "github.com/woongiiit/DailyQuest-Backend/internal/user/model"
	"github.com/woongiiit/DailyQuest-Backend/pkg/logger"
)

func main() {
	v, err := config.LoadConfig("config")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		log.Fatalf("parse config: %v", err)
	}

	appLogger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	ctx := context.Background()

	db, err := openDB(ctx, cfg.Bun.DSN)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	if err := createTables(ctx, db); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	hub := notifier.NewHub(*appLogger)

	userRepo := userRepository.NewUserRepository(db, *appLogger)
	questRepo := questRepository.NewQuestRepository(db, *appLogger)
	messageRepo := messageRepository.NewMessageRepository(db, *appLogger)

	userUC := userUsecase.NewUserUsecase(userRepo, *appLogger, *cfg)
	questUC := questUsecase.NewQuestUsecase(questRepo, userRepo, hub, *appLogger)
	messageUC := messageUsecase.NewMessageUsecase(messageRepo, userRepo, hub, *appLogger)

	wsHandler := notifierWS.NewHandler(hub, *cfg, *appLogger)

	srv := server.New(*cfg, *appLogger, userUC, questUC, messageUC, wsHandler)
	if err := srv.Run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func openDB(ctx context.Context, dsn string) (*bun.DB, error) {
	connector := pgdriver.NewConnector(pgdriver.WithDSN(dsn))
	sqlDB := sql.OpenDB(connector)
	db := bun.NewDB(sqlDB, pgdialect.New())

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

func createTables(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*userModels.User)(nil),
		(*questModels.QuestSet)(nil),
		(*messageModels.Message)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
