// Основной пакет приложения YiLang. Отвечает за запуск приложения, инициализацию базы данных, миграцию моделей и запуск основного сервера приложения.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Yidaotus/yilang/yilang.go/internal/yilang"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/config"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/dao"
	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/gormlogger"
	"github.com/Yidaotus/yilang/yilang.go/pkg/limiter"
)

var version string = "DEV"

var models = []any{&dao.Language{}, &dao.Document{}, &dao.Word{}, &dao.Sentence{}, &dao.GrammarPoint{}, &dao.Tag{}}

// main запускает приложение: читает конфигурацию, открывает подключение к базе, выполняет миграцию моделей и стартует HTTP-сервер.
//
// Пример запуска: go run main.go --noMigration --trace
func main() {
	noTranslateFlag := flag.Bool("noTranslate", false, "Turn off BD errors translate")
	paramQueries := flag.Bool("paramQueries", true, "Mask queries params in log")
	noMigration := flag.Bool("noMigration", false, "Turn off DB migration")
	trace := flag.Bool("trace", false, "Verbose logs and sql trace")
	flag.Parse()

	PrintBanner()

	cfg := config.ReadConfig()

	if *trace {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// Set prod log format
	if version != "DEV" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{})))
	}

	slog.Info("YiLang start.")

	limiter.Init(cfg)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: false, // disables implicit prepared statement usage
	}), &gorm.Config{
		TranslateError: !*noTranslateFlag,
		Logger:         gormlogger.NewGormLogger(slog.Default(), time.Second*4, *paramQueries),
	})
	if err != nil {
		slog.Error("Fail init DB connection", "err", err)
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Fail set settings to conn pool", "err", err)
		os.Exit(1)
	}
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(time.Minute * 15)

	if !*noMigration {
		if err := db.AutoMigrate(models...); err != nil {
			slog.Error("Migration fail", "err", err)
			os.Exit(1)
		}
	}

	yilang.Server(db, cfg, version)
}

// PrintBanner выводит заголовок приложения с версией. Использует версию приложения для формирования текста заголовка. Не принимает параметров и не возвращает значений.
func PrintBanner() {
	banner := `
__     ___ _
\ \   / (_) |     __ _ _ __   __ _
 \ \ / /| | |    / _  | '_ \ / _  |
  \ V / | | |___| (_| | | | | (_| |
   \_/  |_|______\__,_|_| |_|\__, |
                             |___/  %s
Language learning through documents
----------------------------------------------------
`
	colorReset := "\033[0m"
	colorYellow := "\033[33m"

	formattedVersion := version
	if version == "DEV" {
		formattedVersion = colorYellow + version + colorReset
	}

	fmt.Printf(banner, formattedVersion)
}
