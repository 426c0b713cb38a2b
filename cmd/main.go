package main

import "github.com/adanyl0v/go-study-planner/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustConnectPostgres()
	defer app.DisconnectPostgres()
	app.MustMigratePostgres()

	app.MustConnectRedis()
	defer app.DisconnectRedis()

	app.InitEventPublisher()
	defer app.CloseEventPublisher()

	app.MustListenAndServeHTTP()
}
