package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	mysqlRepo "github.com/coursecoc/coursecoc-server/internal/repository/mysql"
	redisRepo "github.com/coursecoc/coursecoc-server/internal/repository/redis"
	"github.com/coursecoc/coursecoc-server/internal/workers"

	"github.com/coursecoc/coursecoc-server/domain"
	"github.com/coursecoc/coursecoc-server/internal/rest"
	"github.com/coursecoc/coursecoc-server/internal/rest/middleware"
	"github.com/coursecoc/coursecoc-server/internal/rest/request"
	"github.com/coursecoc/coursecoc-server/internal/usecase/comment"
	"github.com/coursecoc/coursecoc-server/internal/usecase/course"
	"github.com/coursecoc/coursecoc-server/internal/usecase/post"
	"github.com/coursecoc/coursecoc-server/internal/usecase/user"
)

const (
	defaultTimeout     = 30
	defaultAddress     = ":9090"
	defaultCacheDB     = 0
	dbMaxRetry         = 10
	dbRetryIntervalSec = 2
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("no .env file found, relying on the environment")
	}
}

func main() {
	// prepare database
	dbHost := os.Getenv("DATABASE_HOST")
	dbPort := os.Getenv("DATABASE_PORT")
	dbUser := os.Getenv("DATABASE_USER")
	dbPass := os.Getenv("DATABASE_PASS")
	dbName := os.Getenv("DATABASE_NAME")
	connection := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", dbUser, dbPass, dbHost, dbPort, dbName)
	val := url.Values{}
	val.Add("parseTime", "1")
	val.Add("loc", "Asia/Seoul")
	dsn := fmt.Sprintf("%s?%s", connection, val.Encode())

	var (
		db  *gorm.DB
		err error
	)

	for i := 0; i < dbMaxRetry; i++ {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Printf("failed to open connection to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		} else {
			var sqlDB *sql.DB
			if sqlDB, err = db.DB(); err != nil {
				log.Printf("failed to get sql.DB from gorm.DB (attempt %d/%d): %v", i+1, dbMaxRetry, err)
			} else if err = sqlDB.Ping(); err == nil {
				break
			} else {
				log.Printf("failed to ping database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
				_ = sqlDB.Close()
			}
		}

		time.Sleep(dbRetryIntervalSec * time.Second)
	}

	if err != nil {
		log.Fatal("could not connect to database after retries:", err)
	}

	defer func() {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal("got error when getting sql.DB from gorm.DB", err)
		}
		if err := sqlDB.Close(); err != nil {
			log.Fatal("got error when closing the DB connection", err)
		}
	}()

	// prepare cache
	cacheHost := os.Getenv("CACHE_HOST")
	cachePort := os.Getenv("CACHE_PORT")
	cachePass := os.Getenv("CACHE_PASS")
	cacheDBStr := os.Getenv("CACHE_DB")
	cacheDB, err := strconv.Atoi(cacheDBStr)
	if err != nil {
		log.Println("failed to parse cacheDB, using default cacheDB")
		cacheDB = defaultCacheDB
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cacheHost + ":" + cachePort,
		Password: cachePass,
		DB:       cacheDB,
	})
	defer func() {
		if err := client.Close(); err != nil {
			log.Fatal("got error when closing the cache connection", err)
		}
	}()

	if _, err = client.Ping(context.Background()).Result(); err != nil {
		log.Fatal("failed to open connection to cache", err)
		return
	}

	// prepare gin
	route := gin.Default()
	allowOrigins := strings.Split(os.Getenv("CORS_ALLOW_ORIGINS"), ",")
	if len(allowOrigins) == 1 && allowOrigins[0] == "" {
		allowOrigins = []string{"http://localhost:3000"}
	}
	route.Use(middleware.CORS(allowOrigins))
	timeoutStr := os.Getenv("CONTEXT_TIMEOUT")
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil {
		log.Println("failed to parse timeout, using default timeout")
		timeout = defaultTimeout
	}
	timeoutContext := time.Duration(timeout) * time.Second
	route.Use(middleware.SetRequestContextWithTimeout(timeoutContext))
	request.RegisterValidations()

	// prepare repositories
	userRepo := mysqlRepo.NewUserRepository(db)
	courseRepo := mysqlRepo.NewCourseRepository(db)
	postRepo := mysqlRepo.NewPostRepository(db)
	commentRepo := mysqlRepo.NewCommentRepository(db)
	courseCache := redisRepo.NewCourseCache(client)
	postViews := redisRepo.NewPostViewBuffer(client)

	// start the view sync worker
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	viewsSyncer := workers.NewSyncViewsWorker(courseRepo, courseCache, postRepo, postViews)
	go viewsSyncer.Start(ctx)

	// build service layer
	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	jwtTTLStr := os.Getenv("JWT_EXPIRE_HOURS")
	jwtTTL, err := strconv.Atoi(jwtTTLStr)
	if err != nil {
		log.Println("failed to parse JWT TTL, using default 24 hours")
		jwtTTL = 24
	}
	courseSvc := course.NewService(courseRepo, userRepo, courseCache)
	postSvc := post.NewService(postRepo, userRepo, postViews)
	commentSvc := comment.NewService(commentRepo, userRepo)
	userSvc := user.NewService(userRepo, jwtSecret, time.Duration(jwtTTL)*time.Hour)

	courseHandler := rest.NewCourseHandler(courseSvc)
	postHandler := rest.NewPostHandler(postSvc)
	courseCommentHandler := rest.NewCommentHandler(commentSvc, domain.OwnerCourse)
	postCommentHandler := rest.NewCommentHandler(commentSvc, domain.OwnerPost)
	userHandler := rest.NewUserHandler(userSvc)

	authMiddleware := middleware.AuthMiddleware(string(jwtSecret))

	// register routes
	route.POST("/register", userHandler.Register)
	route.POST("/login", userHandler.Login)

	route.GET("/courses", courseHandler.Fetch)
	route.GET("/courses/:id", courseHandler.GetByID)
	route.GET("/courses/:id/comments", courseCommentHandler.FetchTree)

	route.GET("/posts", postHandler.Fetch)
	route.GET("/posts/:id", postHandler.GetByID)
	route.GET("/posts/:id/comments", postCommentHandler.FetchTree)

	authorized := route.Group("/")
	authorized.Use(authMiddleware)
	{
		authorized.GET("/me", userHandler.Me)
		authorized.PUT("/me", userHandler.UpdateProfile)
		authorized.GET("/me/courses", courseHandler.FetchMine)

		authorized.POST("/courses", courseHandler.Store)
		authorized.PUT("/courses/:id", courseHandler.Update)
		authorized.DELETE("/courses/:id", courseHandler.Delete)
		authorized.POST("/courses/:id/like", courseHandler.ToggleLike)
		authorized.POST("/courses/:id/bookmark", courseHandler.ToggleBookmark)
		authorized.GET("/courses/:id/social", courseHandler.SocialState)
		authorized.POST("/courses/:id/comments", courseCommentHandler.Create)
		authorized.PUT("/courses/:id/comments/:commentID", courseCommentHandler.Edit)
		authorized.DELETE("/courses/:id/comments/:commentID", courseCommentHandler.Delete)

		authorized.POST("/posts", postHandler.Store)
		authorized.PUT("/posts/:id", postHandler.Update)
		authorized.DELETE("/posts/:id", postHandler.Delete)
		authorized.POST("/posts/:id/like", postHandler.ToggleLike)
		authorized.GET("/posts/:id/social", postHandler.SocialState)
		authorized.POST("/posts/:id/comments", postCommentHandler.Create)
		authorized.PUT("/posts/:id/comments/:commentID", postCommentHandler.Edit)
		authorized.DELETE("/posts/:id/comments/:commentID", postCommentHandler.Delete)
	}

	// start server
	address := os.Getenv("SERVER_ADDRESS")
	if address == "" {
		address = defaultAddress
	}
	srv := &http.Server{
		Addr:    address,
		Handler: route,
	}
	go func() {
		log.Printf("Server is running on %s\n", address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err) // nolint
		}
	}()

	// shutdown
	<-ctx.Done()
	log.Println("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Waiting for worker to cleanup...")
	time.Sleep(2 * time.Second)

	log.Println("Server exiting")
}
