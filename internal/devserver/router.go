package devserver

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/mavdeev/salesdesk/internal/devserver/middleware"
)

func (s *Server) HandleRouter() chi.Router {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.LogHandle)
		r.Post("/auth/login", s.LoginHandler())
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(s.JWTAuth))
			r.Use(jwtauth.Authenticator(s.JWTAuth))
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", s.GetOrdersHandler())
				r.Post("/", s.CreateOrderHandler())
				r.Get("/{id}", s.GetOrderHandler())
				r.Get("/{id}/invoice-url", s.InvoiceURLHandler())
			})
			r.Route("/products", func(r chi.Router) {
				r.Get("/", s.GetProductsHandler())
				r.Post("/", s.CreateProductHandler())
				r.Get("/{id}", s.GetProductHandler())
				r.Delete("/{id}", s.DeleteProductHandler())
			})
			r.Route("/analytics", func(r chi.Router) {
				r.Get("/summary", s.SummaryHandler())
				r.Get("/orders-by-day", s.OrdersByDayHandler())
			})
		})
	})
	return r
}
