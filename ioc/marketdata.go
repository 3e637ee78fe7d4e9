package ioc

import (
	"time"

	"github.com/Ahmet872/Alarm-System/internal/entity"
	"github.com/Ahmet872/Alarm-System/internal/service/marketdata"
	mdbinance "github.com/Ahmet872/Alarm-System/internal/service/marketdata/binance"
	"github.com/Ahmet872/Alarm-System/internal/service/marketdata/quote"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// InitMarketSource assembles the provider chain per asset class:
// upstream -> retry -> series cache -> router. In development every
// class resolves to the static provider so the pipeline runs offline.
func InitMarketSource() marketdata.Source {
	type Config struct {
		QuoteBaseURL   string        `mapstructure:"quote_base_url"`
		QuoteApiKey    string        `mapstructure:"quote_api_key"`
		MaxRetries     int           `mapstructure:"max_retries"`
		BaseDelay      time.Duration `mapstructure:"base_delay"`
		AttemptTimeout time.Duration `mapstructure:"attempt_timeout"`
		CacheSize      int           `mapstructure:"cache_size"`
	}

	cfg := Config{
		MaxRetries:     marketdata.DefaultMaxAttempts,
		BaseDelay:      marketdata.DefaultBaseDelay,
		AttemptTimeout: marketdata.DefaultAttemptTimeout,
		CacheSize:      marketdata.DefaultCacheSize,
	}
	if err := viper.UnmarshalKey("marketdata", &cfg); err != nil {
		panic(err)
	}

	if viper.GetString("env") == "development" {
		static := marketdata.NewStaticProvider(decimal.NewFromInt(100))
		return marketdata.NewRouter(map[entity.AssetClass]marketdata.Provider{
			entity.AssetClassCrypto: static,
			entity.AssetClassForex:  static,
			entity.AssetClassStock:  static,
		})
	}

	decorate := func(p marketdata.Provider) marketdata.Provider {
		p = marketdata.WithRetry(p,
			marketdata.WithMaxAttempts(cfg.MaxRetries),
			marketdata.WithBaseDelay(cfg.BaseDelay),
			marketdata.WithAttemptTimeout(cfg.AttemptTimeout),
		)
		return marketdata.WithSeriesCache(p, cfg.CacheSize)
	}

	crypto := decorate(mdbinance.NewProvider(InitBinanceCli()))
	quotes := decorate(quote.NewProvider(cfg.QuoteBaseURL, cfg.QuoteApiKey, cfg.AttemptTimeout))

	return marketdata.NewRouter(map[entity.AssetClass]marketdata.Provider{
		entity.AssetClassCrypto: crypto,
		entity.AssetClassForex:  quotes,
		entity.AssetClassStock:  quotes,
	})
}
