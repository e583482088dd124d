package server

import (
	"net/http"

	"auctionary/services/auction/handler"
	"auctionary/services/auction/helpers"
	"auctionary/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles the business services the routes call into
type Services struct {
	Users     handler.UserServiceInterface
	Items     handler.ItemServiceInterface
	Bids      handler.BiddingServiceInterface
	Questions handler.QuestionServiceInterface
	Sessions  SessionResolver
}

// Options tunes the HTTP surface
type Options struct {
	SessionHeader  string
	AllowedOrigins []string
	MetricsEnabled bool
	MetricsPath    string
}

// DefaultOptions returns the settings used when nothing is configured
func DefaultOptions() Options {
	return Options{
		SessionHeader:  "X-Authorization",
		AllowedOrigins: []string{"*"},
		MetricsEnabled: true,
		MetricsPath:    "/metrics",
	}
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(svc Services, opts Options) *gin.Engine {
	// unknown JSON fields fail binding
	binding.EnableDecoderDisallowUnknownFields = true
	if err := helpers.RegisterValidators(); err != nil {
		utils.Fatal("failed to register request validators", map[string]any{"error": err})
	}

	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery()) // recover from panics
	router.Use(RequestIDMiddleware)
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(MetricsMiddleware)
	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(corsConfig(opts)))
	}

	router.NoRoute(func(c *gin.Context) {
		utils.JSONError(c, http.StatusNotFound, nil, "Not found!")
	})

	userHandler := handler.NewUserHandler(svc.Users, opts.SessionHeader)
	itemHandler := handler.NewItemHandler(svc.Items)
	biddingHandler := handler.NewBiddingHandler(svc.Bids)
	questionHandler := handler.NewQuestionHandler(svc.Questions)

	requireSession := RequireSession(svc.Sessions, opts.SessionHeader)
	optionalSession := OptionalSession(svc.Sessions, opts.SessionHeader)

	router.GET("/", func(c *gin.Context) {
		utils.JSONResponse(c, http.StatusOK, helpers.StatusResponse{Status: "Alive"})
	})
	if opts.MetricsEnabled {
		router.GET(opts.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	users := router.Group("/users")
	{
		users.POST("", userHandler.RegisterHandler)
		users.GET("/:user_id", userHandler.GetProfileHandler)
	}
	router.POST("/login", userHandler.LoginHandler)
	router.POST("/logout", userHandler.LogoutHandler)

	router.POST("/item", requireSession, itemHandler.CreateItemHandler)
	items := router.Group("/item/:item_id")
	{
		items.GET("", itemHandler.GetItemHandler)
		items.PUT("/categories", requireSession, itemHandler.SetCategoriesHandler)

		items.GET("/bid", biddingHandler.GetBidHistoryHandler)
		items.POST("/bid", requireSession, biddingHandler.PlaceBidHandler)

		items.GET("/question", questionHandler.ListQuestionsHandler)
		items.POST("/question", requireSession, questionHandler.AskQuestionHandler)
	}

	router.POST("/question/:question_id", requireSession, questionHandler.AnswerQuestionHandler)
	router.GET("/search", optionalSession, itemHandler.SearchHandler)
	router.GET("/categories", itemHandler.ListCategoriesHandler)

	return router
}

func corsConfig(opts Options) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, opts.SessionHeader, RequestIDHeader)
	cfg.ExposeHeaders = []string{RequestIDHeader}

	for _, origin := range opts.AllowedOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = opts.AllowedOrigins
	return cfg
}
