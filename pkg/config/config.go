package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Moderator ModeratorConfig
}

type ServerConfig struct {
	Address string
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     int
}

// ModeratorConfig 是 AI 審核員的設定
// WebhookURL 留空時不會轉發訊息給外部工作流
type ModeratorConfig struct {
	WebhookURL     string
	TimeoutSeconds int
	ContextLimit   int // 轉發給外部工作流的近期訊息數量
	AIName         string
}

// Timeout 回傳外部回應者呼叫的逾時時間
func (c ModeratorConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./pkg/config")

	viper.SetDefault("moderator.timeoutseconds", 5)
	viper.SetDefault("moderator.contextlimit", 10)
	viper.SetDefault("moderator.ainame", "Jarvis")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
