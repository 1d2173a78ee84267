package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-fit-go/internal/api/handler"
	"resume-fit-go/internal/api/router"
	"resume-fit-go/internal/config"
	"resume-fit-go/internal/parser"
	"resume-fit-go/internal/ratelimit"
	"resume-fit-go/internal/rules"
	"resume-fit-go/internal/session"
	"resume-fit-go/internal/taxonomy"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"

	appLogger "resume-fit-go/internal/logger"
)

var (
	version     = "1.0.0"      //nolint:gochecknoglobals
	serviceName = "resume-fit" //nolint:gochecknoglobals
)

func main() {
	var (
		configPath   string
		createConfig bool
		address      string
	)
	pflag.StringVarP(&configPath, "config", "c", "config.yaml", "Path to config file")
	pflag.BoolVar(&createConfig, "create-config", false, "Write a sample config to the --config path and exit")
	pflag.StringVar(&address, "address", "", "Override the listen address from config")
	pflag.Parse()

	if createConfig {
		if err := config.CreateSampleConfig(configPath); err != nil {
			appLogger.Fatal().Err(err).Str("path", configPath).Msg("生成示例配置失败")
		}
		appLogger.Info().Str("path", configPath).Msg("示例配置已生成")
		return
	}

	// 配置定义了打分契约，加载失败直接退出，不做降级
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("加载配置失败")
	}
	if address != "" {
		cfg.Server.Address = address
	}

	appLogger.Init(cfg.Logger)
	glog.SetLogger(hertzadapter.From(appLogger.Logger))
	appLogger.Info().
		Str("service", serviceName).
		Str("version", version).
		Msg("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	normalizer, err := taxonomy.NewNormalizer(cfg.Parsing.TaxonomyPath)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("加载技能词表失败")
	}

	engine, err := rules.NewEngine(cfg, normalizer)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("初始化评估引擎失败")
	}

	sessions, err := session.NewManager(cfg.Session.Dir, cfg.Session.MaxAgeHours)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("初始化会话存储失败")
	}

	pdfExtractor, err := parser.NewPDFExtractor(ctx)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("创建PDF提取器失败")
	}

	analysisHandler := handler.NewAnalysisHandler(cfg, sessions, engine, pdfExtractor)
	appLogger.Info().Msg("AnalysisHandler初始化成功")

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, rc *app.RequestContext) {
		start := time.Now()
		rc.Next(c)
		appLogger.Info().
			Str("method", string(rc.Method())).
			Str("path", string(rc.Path())).
			Int("status", rc.Response.StatusCode()).
			Dur("latency", time.Since(start)).
			Msg("request")
	})

	if cfg.Server.RateLimitQPM > 0 {
		limiter := ratelimit.NewTokenBucket(cfg.Server.RateLimitQPM, cfg.Server.RateLimitBurst)
		h.Use(limiter.Middleware())
		appLogger.Info().
			Int("qpm", cfg.Server.RateLimitQPM).
			Int("burst", cfg.Server.RateLimitBurst).
			Msg("限流中间件已启用")
	}

	router.RegisterRoutes(h, analysisHandler)
	appLogger.Info().Msg("HTTP路由注册成功")

	go func() {
		appLogger.Info().Str("address", cfg.Server.Address).Msg("HTTP服务器启动中")
		if err := h.Run(); err != nil {
			appLogger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info().Msg("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("服务器关闭失败")
	}
	appLogger.Info().Msg("优雅退出完成")
}
