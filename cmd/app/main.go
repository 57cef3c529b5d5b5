package main

import (
	"go.uber.org/fx"

	"github.com/creonhq/creon/internal/app"
)

func main() {
	fx.New(app.CreateApp()).Run()
}
