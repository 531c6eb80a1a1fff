package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bistro-boss/internal/auth"
	"bistro-boss/internal/logger"
	"bistro-boss/internal/services/bookings"
	"bistro-boss/internal/services/carts"
	"bistro-boss/internal/services/menu"
	"bistro-boss/internal/services/payments"
	"bistro-boss/internal/services/reviews"
	"bistro-boss/internal/services/stats"
	"bistro-boss/internal/services/users"
	"bistro-boss/internal/web"
)

// Pinger reports whether the document store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers groups every resource handler mounted by the router
type Handlers struct {
	Auth     *auth.Handler
	Users    *users.Handler
	Menu     *menu.Handler
	Reviews  *reviews.Handler
	Carts    *carts.Handler
	Payments *payments.Handler
	Bookings *bookings.Handler
	Stats    *stats.Handler
}

const healthTimeout = 2 * time.Second

// NewRouter builds the HTTP surface. Routes marked admin or self sit behind the token check.
func NewRouter(log *logger.Logger, mw *auth.Middleware, h Handlers, db Pinger) *gin.Engine {
	r := gin.New()
	r.Use(web.RequestLogger(log), web.Recovery())

	token := mw.RequireToken()
	admin := mw.RequireAdmin()
	self := mw.RequireSelf("email")

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "bistro is running")
	})
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/jwt", h.Auth.IssueToken)

	r.GET("/users", token, admin, h.Users.List)
	r.GET("/users/admin/:email", token, self, h.Users.IsAdmin)
	r.POST("/users", h.Users.Create)
	r.PATCH("/users/admin/:id", token, admin, h.Users.Promote)
	r.DELETE("/users/:id", token, admin, h.Users.Delete)

	r.GET("/menu", h.Menu.List)
	r.GET("/menu/:id", h.Menu.Get)
	r.POST("/menu", token, admin, h.Menu.Create)
	r.PATCH("/menu/:id", token, admin, h.Menu.Update)
	r.DELETE("/menu/:id", token, admin, h.Menu.Delete)

	r.GET("/reviews", h.Reviews.List)
	r.POST("/review", h.Reviews.Create)

	r.GET("/carts", h.Carts.List)
	r.POST("/carts", h.Carts.Add)
	r.DELETE("/carts/:id", h.Carts.Remove)

	r.POST("/create-payment-intent", h.Payments.CreateIntent)
	r.POST("/payments", h.Payments.Create)
	r.GET("/payments/:email", token, self, h.Payments.History)

	r.GET("/user-stats/:email", h.Stats.UserStats)
	r.GET("/admin-stats", token, admin, h.Stats.AdminStats)
	r.GET("/order-stats", token, admin, h.Stats.OrderStats)

	r.POST("/bookings", h.Bookings.Create)
	r.GET("/bookings/:email", token, self, h.Bookings.ListMine)
	r.GET("/bookings", token, admin, h.Bookings.ListAll)
	r.PATCH("/booking/:id", token, admin, h.Bookings.MarkDone)
	r.DELETE("/booking/:id", token, h.Bookings.Cancel)

	return r
}
