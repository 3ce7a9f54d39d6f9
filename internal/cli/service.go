package cli

import (
	"github.com/spf13/viper"

	"reqtxt/internal/app"
)

func newAppService() (app.Service, error) {
	return app.NewService(app.Config{
		MergeStrategy:    viper.GetString("option_merge"),
		DisableRemote:    viper.GetBool("no_remote"),
		HTTPTimeoutSec:   viper.GetInt("http_timeout_sec"),
		HTTPRetries:      viper.GetInt("http_retries"),
		HTTPRetryDelayMs: viper.GetInt("http_retry_delay_ms"),
		HTTPCacheSize:    viper.GetInt("http_cache_size"),
	})
}
