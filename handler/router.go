package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type RouterConfig struct {
	Payroll            *PayrollHandler
	Logger             zerolog.Logger
	MaxMultipartMemory int64
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(cfg.Logger))

	if cfg.MaxMultipartMemory > 0 {
		router.MaxMultipartMemory = cfg.MaxMultipartMemory
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "payslip-filler",
		})
	})

	api := router.Group("/api/v1")
	{
		payroll := api.Group("/payroll")
		{
			payroll.POST("/placeholders", cfg.Payroll.Placeholders)
			payroll.POST("/fill", cfg.Payroll.Fill)
		}
	}

	return router
}
