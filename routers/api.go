package routers

import (
	"database/sql"
	"log"
	"os"
	"time"

	"listitapi/controllers"
	"listitapi/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
)

func Route() *gin.Engine {
	router := gin.Default()
	router.Use(CORS())
	api := controllers.NewAPI()

	api.Db = newDB(nil)
	api.Db.SetConnMaxLifetime(5 * time.Minute)
	redisHost := os.Getenv("REDIS_HOST")
	redisPort := os.Getenv("REDIS_PORT")

	api.Redis = redis.NewClient(&redis.Options{
		Addr: redisHost + ":" + redisPort,
		DB:   0,
	})

	auth := middlewares.Auth(api.Redis)

	router.POST("/api/login", api.Authenticate)
	router.POST("/api/register", api.Register)
	router.GET("/api/check-session", auth, api.CheckSession)
	router.GET("/api/refresh-session", auth, api.RefreshSession)
	router.GET("/api/logout", auth, api.Logout)
	router.POST("/api/forgot-password", api.ForgotPassword)
	router.GET("/api/verify-token/:token", api.VerifyTokenReset)
	router.POST("/api/reset-password/:token", api.UpdateUserReset)

	// listing surface; only list, search, export and create are protected
	router.GET("/api/products", auth, api.GetProducts)
	router.GET("/api/products/search", auth, api.SearchProducts)
	router.GET("/api/products/export", auth, api.ExportProducts)
	router.POST("/api/products", auth, api.PostProduct)
	router.GET("/api/products/:id", api.GetProduct)
	router.PUT("/api/products/:id", api.PutProduct)
	router.DELETE("/api/products/:id", api.DeleteProduct)
	router.POST("/api/products/:id/photo", api.PostProductPhoto)
	router.DELETE("/api/products/:id/photo/:photoId", api.RemoveProductPhoto)

	return router
}

// CORS Cross Origin Resource Sharing
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, "+
			"Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func newDB(indb *sql.DB) *sql.DB {
	if indb != nil {
		return indb
	}
	connString := os.Getenv("DB_CONNECTION_STRING")
	if connString == "" {
		log.Fatal("Please provide DB_CONNECTION_STRING environment variable")
	}

	conn, err := sql.Open("postgres", connString)
	if err != nil {
		log.Fatalf("Cannot connect to db with connection %s: %v", connString, err)
	}

	err = conn.Ping()
	if err != nil {
		log.Fatal(err)
	}

	return conn
}
