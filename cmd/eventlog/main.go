package main

import "github.com/adanyl0v/go-study-planner/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustRunEventLog()
}
