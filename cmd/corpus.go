package cmd

import (
	"context"

	"github.com/iksnae/chatgpt-export/internal"
)

// exportLocation picks the export to read: --export, then the config file or
// CHATGPT_EXPORT_PATH, then the default locations
func exportLocation() (string, error) {
	if exportPath != "" {
		return exportPath, nil
	}
	if cfg != nil && cfg.ExportPath != "" {
		return cfg.ExportPath, nil
	}
	return internal.DetectExportPath()
}

func cacheManager() *internal.CacheManager {
	if noCache || cfg == nil || cfg.CacheDir == "" {
		return nil
	}
	return internal.NewCacheManager(cfg.CacheDir)
}

// loadExportSource reads the selected export without building it
func loadExportSource() (*internal.ExportSource, error) {
	path, err := exportLocation()
	if err != nil {
		return nil, err
	}
	return internal.LoadExport(path)
}

// loadCorpus reads the selected export and builds its corpus, through the
// cache unless --no-cache is set
func loadCorpus(ctx context.Context) (*internal.Corpus, error) {
	src, err := loadExportSource()
	if err != nil {
		return nil, err
	}

	var corpus *internal.Corpus
	err = internal.ShowProgress(ctx, "Loading conversations", func() error {
		var buildErr error
		corpus, buildErr = internal.LoadCorpusCached(src, cacheManager())
		return buildErr
	})
	if err != nil {
		return nil, err
	}
	return corpus, nil
}
