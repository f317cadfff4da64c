package router

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"
)

type Handler interface {
	ListTutors(c *ginext.Context)
	GetTutor(c *ginext.Context)
	CreateBooking(c *ginext.Context)
	GetBooking(c *ginext.Context)
	ProcessPayment(c *ginext.Context)
	GetPayment(c *ginext.Context)
	GetStudentDashboard(c *ginext.Context)
}

func InitRouter(mode string, h Handler, mw ...ginext.HandlerFunc) *ginext.Engine {
	router := ginext.New(mode)
	router.Use(mw...)

	api := router.Group("/api")
	{
		// Tutors
		api.GET("/tutors", h.ListTutors)
		api.GET("/tutors/:id", h.GetTutor)
		api.POST("/tutors/:id/bookings", h.CreateBooking)

		// Bookings
		api.GET("/bookings/:id", h.GetBooking)
		api.POST("/bookings/:id/payments", h.ProcessPayment)

		// Payments
		api.GET("/payments/:id", h.GetPayment)

		// Students
		api.GET("/students/:id/dashboard", h.GetStudentDashboard)
	}

	router.GET("/health", func(c *ginext.Context) {
		c.JSON(http.StatusOK, ginext.H{"status": "healthy"})
	})

	return router
}
