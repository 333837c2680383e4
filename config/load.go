package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"mm-quote-engine/infrastructure/logger"
)

// AppConfig holds the main runtime configuration.
type AppConfig struct {
	Env         string                      `yaml:"env"`
	Feed        FeedConfig                  `yaml:"feed"`
	Metrics     MetricsConfig               `yaml:"metrics"`
	Alerting    AlertConfig                 `yaml:"alerting"`
	Logging     logger.Config               `yaml:"logging"`
	Instruments map[string]InstrumentConfig `yaml:"instruments"`
}

type FeedConfig struct {
	URL            string `yaml:"url"`
	ReconnectMaxMs int    `yaml:"reconnectMaxMs"`
	ReadTimeoutMs  int    `yaml:"readTimeoutMs"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type AlertConfig struct {
	ThrottleSeconds int `yaml:"throttleSeconds"`
}

// InstrumentConfig 保存单个交易品种的报价/风控参数。
type InstrumentConfig struct {
	Quote      QuoteParams      `yaml:"quote"`
	Spread     SpreadParams     `yaml:"spread"`
	Inventory  InventoryParams  `yaml:"inventory"`
	Risk       RiskLimits       `yaml:"risk"`
	Obligation ObligationParams `yaml:"obligation"`
}

type QuoteParams struct {
	BaseSpreadBps    float64 `yaml:"baseSpreadBps"`    // 基准价差（基点）
	BidSize          float64 `yaml:"bidSize"`          // 买方挂单数量
	AskSize          float64 `yaml:"askSize"`          // 卖方挂单数量
	TTLMs            int     `yaml:"ttlMs"`            // 报价生存时间（毫秒）
	MoveThresholdBps float64 `yaml:"moveThresholdBps"` // 触发更新的中间价偏移阈值
	MaxDeviationBps  float64 `yaml:"maxDeviationBps"`  // 相对 NBBO 允许的最大偏离
}

type SpreadParams struct {
	SessionOpen    string `yaml:"sessionOpen"`    // HH:MM，留空表示 24 小时连续交易
	SessionClose   string `yaml:"sessionClose"`   // HH:MM
	TimeOfDayAware bool   `yaml:"timeOfDayAware"` // 是否启用开/收盘加宽
}

type InventoryParams struct {
	TargetPosition float64 `yaml:"targetPosition"` // 目标仓位
	MaxPosition    float64 `yaml:"maxPosition"`    // 仓位硬上限
	RiskAversion   float64 `yaml:"riskAversion"`   // 偏移系数，越大倾斜越猛
}

type RiskLimits struct {
	MaxPositionValue float64 `yaml:"maxPositionValue"`
	MaxConcentration float64 `yaml:"maxConcentration"` // HHI 上限，(0,1]
	VaRConfidence    float64 `yaml:"varConfidence"`
	VaRHorizonDays   float64 `yaml:"varHorizonDays"`
	ShockPct         float64 `yaml:"shockPct"` // 压力测试冲击幅度，如 0.1 表示 ±10%
}

type ObligationParams struct {
	MaxSpreadBps    float64 `yaml:"maxSpreadBps"`
	MinQuoteSize    float64 `yaml:"minQuoteSize"`
	MinQuoteTimePct float64 `yaml:"minQuoteTimePct"` // 要求的最低在场时间占比，[0,1]
}

// Load reads YAML config from path and applies basic validation.
func Load(path string) (AppConfig, error) {
	var cfg AppConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadWithEnvOverrides loads config then overrides selected fields from env vars if present.
func LoadWithEnvOverrides(path string) (AppConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if v := os.Getenv("MM_FEED_URL"); v != "" {
		cfg.Feed.URL = v
	}
	if v := os.Getenv("MM_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	return cfg, Validate(cfg)
}

// Validate ensures required fields are present.
func Validate(cfg AppConfig) error {
	if cfg.Env == "" {
		return errors.New("env is required")
	}
	if cfg.Feed.URL == "" {
		return errors.New("feed.url is required (or MM_FEED_URL)")
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Addr == "" {
		return errors.New("metrics.addr is required when metrics are enabled")
	}
	if len(cfg.Instruments) == 0 {
		return errors.New("instruments config is required")
	}
	for id, ic := range cfg.Instruments {
		if ic.Quote.BaseSpreadBps <= 0 {
			return fmt.Errorf("instrument %s quote.baseSpreadBps must be > 0", id)
		}
		if ic.Quote.BidSize <= 0 || ic.Quote.AskSize <= 0 {
			return fmt.Errorf("instrument %s quote sizes must be > 0", id)
		}
		if ic.Quote.TTLMs < 0 {
			return fmt.Errorf("instrument %s quote.ttlMs must be >= 0", id)
		}
		if ic.Quote.MoveThresholdBps <= 0 {
			return fmt.Errorf("instrument %s quote.moveThresholdBps must be > 0", id)
		}
		if ic.Quote.MaxDeviationBps <= 0 {
			return fmt.Errorf("instrument %s quote.maxDeviationBps must be > 0", id)
		}
		if ic.Inventory.MaxPosition <= 0 {
			return fmt.Errorf("instrument %s inventory.maxPosition must be > 0", id)
		}
		if ic.Inventory.RiskAversion < 0 {
			return fmt.Errorf("instrument %s inventory.riskAversion must be >= 0", id)
		}
		if ic.Risk.MaxPositionValue <= 0 {
			return fmt.Errorf("instrument %s risk.maxPositionValue must be > 0", id)
		}
		if ic.Risk.MaxConcentration < 0 || ic.Risk.MaxConcentration > 1 {
			return fmt.Errorf("instrument %s risk.maxConcentration must be in [0,1]", id)
		}
		if ic.Risk.VaRConfidence != 0 && (ic.Risk.VaRConfidence <= 0 || ic.Risk.VaRConfidence >= 1) {
			return fmt.Errorf("instrument %s risk.varConfidence must be in (0,1)", id)
		}
		if ic.Obligation.MaxSpreadBps < 0 || ic.Obligation.MinQuoteSize < 0 {
			return fmt.Errorf("instrument %s obligation bounds must be >= 0", id)
		}
		if ic.Obligation.MinQuoteTimePct < 0 || ic.Obligation.MinQuoteTimePct > 1 {
			return fmt.Errorf("instrument %s obligation.minQuoteTimePct must be in [0,1]", id)
		}
		if ic.Spread.TimeOfDayAware && (ic.Spread.SessionOpen == "" || ic.Spread.SessionClose == "") {
			return fmt.Errorf("instrument %s spread session open/close required when timeOfDayAware", id)
		}
	}
	return nil
}
