package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gqlhandler "github.com/graphql-go/handler"
	"github.com/rs/cors"

	"github.com/VitaminP8/forumly/graph"
	"github.com/VitaminP8/forumly/internal/auth"
	"github.com/VitaminP8/forumly/internal/comment"
	"github.com/VitaminP8/forumly/internal/config"
	"github.com/VitaminP8/forumly/internal/post"
	"github.com/VitaminP8/forumly/internal/reply"
	"github.com/VitaminP8/forumly/internal/restapi"
	"github.com/VitaminP8/forumly/internal/storage/memory"
	"github.com/VitaminP8/forumly/internal/storage/postgres"
	"github.com/VitaminP8/forumly/internal/user"
	"github.com/VitaminP8/forumly/models"
)

func main() {
	storageType := flag.String("storage", "memory", "Тип хранилища: memory или postgres")
	flag.Parse()

	// загружаем .env из нашего config.go
	config.LoadEnv()

	var postStore post.PostStorage
	var commentStore comment.CommentStorage
	var replyStore reply.ReplyStorage
	var userStore user.UserStorage

	switch *storageType {
	case "postgres":
		if err := postgres.InitDB(); err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		err := postgres.DB.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}, &models.Reply{}).Error
		if err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}

		log.Println("Используется PostgreSQL хранилище")
		postStore = postgres.NewPostPostgresStorage()
		commentStore = postgres.NewCommentPostgresStorage()
		replyStore = postgres.NewReplyPostgresStorage()
		userStore = postgres.NewUserPostgresStorage()

	case "memory":
		log.Println("Используется in-memory хранилище")
		db := memory.NewDatabase()
		postStore = memory.NewPostMemoryStorage(db)
		commentStore = memory.NewCommentMemoryStorage(db)
		replyStore = memory.NewReplyMemoryStorage(db)
		userStore = memory.NewUserMemoryStorage(db)

	default:
		log.Fatalf("неизвестный тип хранилища: %s", *storageType)
	}

	// Инициализация резолвера и схемы
	resolver := &graph.Resolver{
		PostStore:    postStore,
		CommentStore: commentStore,
		ReplyStore:   replyStore,
		UserStore:    userStore,
	}

	schema, err := graph.NewSchema(resolver)
	if err != nil {
		log.Fatalf("failed to build GraphQL schema: %v", err)
	}

	gql := gqlhandler.New(&gqlhandler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	})

	mux := http.NewServeMux()

	// REST аутентификация
	restapi.NewAuthHandler(userStore).Register(mux)

	// SessionMiddleware строит viewer запроса (bearer-токен + роль из хранилища)
	// и кладет его в context — резолверы решают доступ per-field
	mux.Handle("/query", auth.SessionMiddleware(userStore, gql))

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(mux)

	// HTTP сервер: таймауты ограничивают время запроса сверху,
	// включая походы в БД (gorm v1 не принимает context)
	server := &http.Server{
		Addr:         ":8080",
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
	}

	go func() {
		log.Println("Сервер запущен на http://localhost:8080/")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ошибка сервера: %v", err)
		}
	}()

	// Ожидание SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Завершение...")

	if *storageType == "postgres" {
		postgres.CloseDB()
	}

	if err := server.Shutdown(context.Background()); err != nil {
		log.Fatalf("Ошибка при завершении сервера: %v", err)
	}

	log.Println("Сервер остановлен корректно")
}
