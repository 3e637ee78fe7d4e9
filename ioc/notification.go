package ioc

import (
	"context"
	"fmt"

	"github.com/Ahmet872/Alarm-System/internal/service/notification"
	notifses "github.com/Ahmet872/Alarm-System/internal/service/notification/ses"
	notifsmtp "github.com/Ahmet872/Alarm-System/internal/service/notification/smtp"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/spf13/viper"
)

// InitEmailService picks the notification backend once at startup.
// Backends: smtp, ses, noop (noop is forced in development).
func InitEmailService() notification.EmailService {
	if viper.GetString("env") == "development" {
		return notification.NewNoopService()
	}

	backend := viper.GetString("notification.backend")
	switch backend {
	case "smtp":
		type Config struct {
			Host     string `mapstructure:"host"`
			Port     int    `mapstructure:"port"`
			Username string `mapstructure:"username"`
			Password string `mapstructure:"password"`
		}
		cfg := Config{Port: 587}
		if err := viper.UnmarshalKey("notification.smtp", &cfg); err != nil {
			panic(err)
		}
		return notifsmtp.NewService(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	case "ses":
		type Config struct {
			Region      string `mapstructure:"region"`
			SourceEmail string `mapstructure:"source_email"`
		}
		var cfg Config
		if err := viper.UnmarshalKey("notification.ses", &cfg); err != nil {
			panic(err)
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.Region))
		if err != nil {
			panic(err)
		}
		return notifses.NewService(sesv2.NewFromConfig(awsCfg), cfg.SourceEmail)

	case "noop", "":
		return notification.NewNoopService()

	default:
		panic(fmt.Errorf("unknown notification backend %q", backend))
	}
}
