// Package sandbox is an in-memory stand-in for the bookkeeping REST API,
// used to develop and demo the client engine without the real backend. It
// serves the same wire contract: /api/{resource}/ collection endpoints with
// trailing slashes, bearer-token auth, property_id scoping, flattened write
// payloads, and soft deletes via PUT {"is_deleted": true}.
package sandbox

import (
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rentbooks/rentbooks/internal/platform/config"
	"github.com/rentbooks/rentbooks/internal/utils/collection"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewRouter builds the sandbox gin engine with all middleware and routes.
func NewRouter(cfg *config.Config, logger *slog.Logger) (*gin.Engine, error) {
	return newRouter(cfg, logger, newStore())
}

func newRouter(cfg *config.Config, logger *slog.Logger, st *store) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(structuredLoggingMiddleware(logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return nil, err
	}
	r.Use(rateLimitMiddleware(limiter.New(memory.NewStore(), rate)))

	auth := newAuthHandler(st, cfg.JWTSecret, cfg.JWTExpiryDuration)

	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/jwt/create/", auth.login)
		authRoutes.POST("/users/", auth.register)
		authRoutes.POST("/users/activation/", auth.activate)
		authRoutes.POST("/users/reset_password/", auth.resetPassword)
		authRoutes.POST("/users/reset_password_confirm/", auth.resetPasswordConfirm)
		authRoutes.POST("/users/set_password/", authMiddleware(cfg.JWTSecret), auth.setPassword)
	}

	profile := api.Group("/profile", authMiddleware(cfg.JWTSecret))
	{
		profile.GET("/", auth.getProfile)
		profile.PUT("/", auth.updateProfile)
	}

	resources := api.Group("", authMiddleware(cfg.JWTSecret))
	registerPropertyRoutes(resources, st)
	registerAccountRoutes(resources, st)
	registerEntityRoutes(resources, st)
	registerJournalRoutes(resources, st)
	registerTransactionRoutes(resources, st)
	registerRentPaymentRoutes(resources, st)

	return r, nil
}

// propertyIDParam reads the mandatory property_id query parameter. A missing
// or malformed value answers 400 and returns false.
func propertyIDParam(c *gin.Context) (int64, bool) {
	raw := c.Query("property_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property_id query parameter required"})
		return 0, false
	}
	return id, true
}

// sortByID keeps list responses in stable id order; map iteration alone
// would shuffle them between calls.
func sortByID[T collection.Keyed](items []T) {
	sort.Slice(items, func(i, j int) bool { return items[i].Key() < items[j].Key() })
}
