package main

import (
	"fmt"
	"os"

	"github.com/mavdeev/salesdesk/internal/app"
	"github.com/mavdeev/salesdesk/internal/config"
	"github.com/mavdeev/salesdesk/internal/logger"
)

func main() {
	// загрузка конфига
	config := config.NewConfig()
	// инициализация логгера
	if err := logger.Initialize(config.LogLevel); err != nil {
		panic(fmt.Sprintf("can't initialize logger: %s ", err.Error()))
	}
	defer logger.Sync()
	// выполнение команды
	if err := app.Run(config); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
