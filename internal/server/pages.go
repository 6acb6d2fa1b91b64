package server

import "github.com/gofiber/fiber/v2"

// Minimal page shells. The real marketing and dashboard UI is rendered by the
// web frontend; these exist so the route guard's public/protected transitions
// have concrete targets, and double as placeholders in development.

const homePage = `<!doctype html><title>vito-x</title><h1>vito-x</h1><p>Create songs with your voice.</p><a href="/login">Sign in</a>`

const loginPage = `<!doctype html><title>Sign in | vito-x</title><h1>Sign in</h1><form method="post" action="/auth/login"><input name="email" type="email"><input name="password" type="password"><button>Sign in</button></form>`

const dashboardPage = `<!doctype html><title>Dashboard | vito-x</title><h1>Your studio</h1><div id="uploads" data-src="/api/uploads"></div>`

func registerPages(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Type("html").SendString(homePage)
	})
	app.Get("/login", func(c *fiber.Ctx) error {
		return c.Type("html").SendString(loginPage)
	})
	app.Get("/dashboard", func(c *fiber.Ctx) error {
		return c.Type("html").SendString(dashboardPage)
	})
	app.Static("/static", "./web/static")
}
