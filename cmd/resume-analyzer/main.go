package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"

	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/analyzer"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/api/handler"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/api/router"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/config"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/jobdesc"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/logger"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/matching"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/oracle"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/parser"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/scratch"
)

func main() {
	var (
		configPath   string
		createSample bool
	)
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径")
	pflag.BoolVar(&createSample, "create-sample-config", false, "生成示例配置文件后退出")
	pflag.Parse()

	if createSample {
		if err := config.CreateSampleConfig("config.yaml"); err != nil {
			logger.Fatal().Err(err).Msg("生成示例配置失败")
		}
		return
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载配置失败")
	}

	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})
	// Hertz框架日志统一接入zerolog
	glog.SetLogger(hertzadapter.From(logger.Logger))
	logger.Info().Msg("配置加载成功")

	// 模型客户端注册表，没有配置任何oracle时走纯确定性路径
	registry := oracle.NewRegistry()
	for _, oc := range cfg.Oracles {
		client, err := oracle.NewChatClient(oc.APIKey, oc.Model, oc.APIURL,
			oracle.WithTemperature(oc.Temperature),
			oracle.WithMaxTokens(oc.MaxTokens),
			oracle.WithTimeout(config.GetDuration(oc.Timeout, 30*time.Second)),
		)
		if err != nil {
			logger.Warn().Err(err).Str("oracle", oc.Name).Msg("初始化模型客户端失败，跳过")
			continue
		}
		registry.Register(oc.Name, client, oc.DailyQuota)
		logger.Info().Str("oracle", oc.Name).Str("model", oc.Model).Msg("模型客户端注册成功")
	}

	coreAnalyzer := analyzer.New(
		analyzer.WithRegistry(registry),
		analyzer.WithModelVersion(cfg.Analyzer.ModelVersion),
		analyzer.WithParser(parser.New(parser.WithRawTextLimit(cfg.Analyzer.RawTextLimit))),
		analyzer.WithJobAnalyzer(jobdesc.NewAnalyzer(cfg.Analyzer.TopKeywords)),
		analyzer.WithEngine(matching.NewEngine()),
	)

	scratchDir, err := scratch.New(cfg.Scratch.Dir)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化暂存目录失败")
	}
	logger.Info().Str("dir", scratchDir.Root()).Msg("暂存目录就绪")

	// 后台定期清扫过期的暂存文件
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweepLoop(ctx, scratchDir,
		config.GetDuration(cfg.Scratch.SweepInterval, 10*time.Minute),
		config.GetDuration(cfg.Scratch.MaxAge, scratch.DefaultMaxAge),
	)

	analyzeHandler := handler.NewAnalyzeHandler(coreAnalyzer, scratchDir, registry)

	h := server.Default(server.WithHostPorts(cfg.Server.Address))
	router.RegisterRoutes(h, analyzeHandler)

	logger.Info().Str("address", cfg.Server.Address).Msg("HTTP服务器启动")
	go h.Spin()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info().Msg("收到退出信号，正在关闭")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP服务器关闭失败")
	}
	logger.Info().Msg("优雅退出完成")
}

// sweepLoop 按固定周期清扫暂存目录
func sweepLoop(ctx context.Context, dir *scratch.Dir, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := dir.SweepOlderThan(maxAge); err != nil {
				logger.Warn().Err(err).Msg("暂存目录清扫失败")
			}
		}
	}
}
