package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "github.com/RizkiAgung007/tools-asset-management-sub000/internal/adapter/http"
	"github.com/RizkiAgung007/tools-asset-management-sub000/internal/adapter/middleware"
	"github.com/RizkiAgung007/tools-asset-management-sub000/internal/adapter/repository/mysql"
	"github.com/RizkiAgung007/tools-asset-management-sub000/internal/config"
	"github.com/RizkiAgung007/tools-asset-management-sub000/internal/domain/asset"
	domainLoan "github.com/RizkiAgung007/tools-asset-management-sub000/internal/domain/loan"
	"github.com/RizkiAgung007/tools-asset-management-sub000/internal/infrastructure/cache"
	"github.com/RizkiAgung007/tools-asset-management-sub000/internal/infrastructure/db"
	loanUC "github.com/RizkiAgung007/tools-asset-management-sub000/internal/usecase/loan"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(&asset.Asset{}, &domainLoan.Loan{}); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	loans := mysql.NewLoanRepository(gdb)
	assets := mysql.NewAssetRepository(gdb)
	uow := mysql.NewGormUoW(gdb)
	uc := loanUC.NewUsecase(loans, assets, uow)

	h := httpadp.NewHandler()
	lh := httpadp.NewLoanHandler(uc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	idem := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)
	loansGroup := e.Group("/loans", idem)
	loansGroup.POST("", lh.CreateLoan)
	loansGroup.GET("/:code", lh.GetLoan)
	loansGroup.POST("/:code/approve", lh.ApproveLoan)
	loansGroup.POST("/:code/reject", lh.RejectLoan)
	loansGroup.POST("/:code/return", lh.ReturnLoan)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
