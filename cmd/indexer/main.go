package main

import (
	"context"
	"flag"
	"os"

	applog "github.com/suminyol/AyurSutra/internal/infrastructure/log"
	"github.com/suminyol/AyurSutra/internal/wire"
)

func main() {
	clearIndex := flag.Bool("clear", false, "delete the existing collection and metadata instead of indexing")
	flag.Parse()

	// 初始化日志系统
	applog.Init(nil)
	logger := applog.GetLogger()

	service, err := wire.InitializeIndexer()
	if err != nil {
		logger.Error("Failed to initialize indexer",
			"error", err,
		)
		os.Exit(1)
	}

	ctx := context.Background()

	if *clearIndex {
		if err := service.Clear(ctx); err != nil {
			logger.Error("Failed to clear index",
				"error", err,
			)
			os.Exit(1)
		}
		logger.Info("Index cleared")
		return
	}

	result, err := service.BuildIndex(ctx)
	if err != nil {
		logger.Error("Failed to build index",
			"error", err,
		)
		os.Exit(1)
	}

	logger.Info("Index built",
		"documents", result.Documents,
		"collection", result.Collection,
		"elapsed", result.Elapsed.String(),
	)
}
