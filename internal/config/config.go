package config

import (
	"fmt"
	"time"

	"github.com/onenetwo/billing-services/callbackprocessor/pkg/mq"
	"github.com/onenetwo/billing-services/callbackprocessor/pkg/mysql"
	"github.com/onenetwo/billing-services/callbackprocessor/pkg/netcontrol"
	"github.com/spf13/viper"
)

type Config struct {
	API           API               `mapstructure:"api"`
	Database      mysql.Config      `mapstructure:"database"`
	RabbitMQ      mq.Config         `mapstructure:"rabbitmq"`
	DeviceAPI     netcontrol.Config `mapstructure:"device_api"`
	Notifications Notifications     `mapstructure:"notifications"`
	Credits       Credits           `mapstructure:"credits"`
}

type API struct {
	Port string `mapstructure:"port"`
}

type Notifications struct {
	AdminPhones []string `mapstructure:"admin_phones"`
}

// Credits carries the fixed price of one prepaid messaging credit, in currency
// units. Purchases floor-divide the paid amount by these.
type Credits struct {
	SMSUnitPrice      float64 `mapstructure:"sms_unit_price"`
	WhatsAppUnitPrice float64 `mapstructure:"whatsapp_unit_price"`
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	viper.SetDefault("credits.sms_unit_price", 0.50)
	viper.SetDefault("credits.whatsapp_unit_price", 0.20)
	viper.SetDefault("device_api.timeout", 10*time.Second)
	viper.SetDefault("device_api.port", 8728)

	err = viper.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
