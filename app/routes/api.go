package routes

import (
	"github.com/shashiranjanraj/pizzeria/app/controllers"
	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/pkg/auth"
	"github.com/shashiranjanraj/pizzeria/pkg/middleware"
	"github.com/shashiranjanraj/pizzeria/pkg/router"
)

// Deps are the services the API routes are served by.
type Deps struct {
	Orders   *services.OrderService
	Auth     *services.AuthService
	Verifier auth.Verifier
}

func RegisterAPI(r *router.Router, deps Deps) {
	authController := controllers.NewAuthController(deps.Auth)
	orderController := controllers.NewOrderController(deps.Orders)

	accounts := r.Group("/auth")
	accounts.Post("/signup", "auth.signup", authController.Signup)
	accounts.Post("/login", "auth.login", authController.Login)
	accounts.Post("/refresh", "auth.refresh", authController.Refresh)

	orders := r.Group("/orders", middleware.Authenticate(deps.Verifier))
	orders.Get("/", "orders.hello", orderController.Hello)
	orders.Post("/order", "orders.create", orderController.Create)
	orders.Get("/orders", "orders.index", orderController.ListAll)
	orders.Get("/orders/{id}", "orders.show", orderController.Show)
	orders.Get("/user/orders", "orders.own.index", orderController.ListOwn)
	orders.Get("/user/orders/{id}", "orders.own.show", orderController.ShowOwn)
	orders.Put("/order/update/{id}", "orders.update", orderController.Update)
	orders.Patch("/order/update/{id}", "orders.status", orderController.UpdateStatus)
	orders.Delete("/order/delete/{id}", "orders.delete", orderController.Delete)
}
