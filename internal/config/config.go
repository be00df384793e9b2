package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds the configuration settings for the application.
// It includes the environment type, the telegram token, the billing
// unit price, the data file paths, the activity database configuration
// and the monitoring server port.
type Config struct {
	Env           string         `yaml:"env"`            // Env is the current environment: local, dev, prod.
	Token         string         `yaml:"token"`          // Token is an unique telegram bot token
	PollerTimeout time.Duration  `yaml:"poller_timeout"` // PollerTimeout its a time which need to close telegram bot poller
	UnitPrice     float64        `yaml:"unit_price"`     // UnitPrice is the billed price of one consumption unit
	LedgerFile    string         `yaml:"ledger_file"`    // LedgerFile is the subscriber workbook path
	AdminsFile    string         `yaml:"admins_file"`    // AdminsFile is the administrator account file path
	ServerPort    int            `yaml:"server_port"`    // ServerPort is the monitoring server port
	Database      PostgresConfig `yaml:"postgres"`       // Database holds the postgres database configuration
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`     // Host is the database server address.
	Port     string `yaml:"port"`     // Port is the database server port.
	User     string `yaml:"user"`     // User is the database user.
	Password string `yaml:"password"` // Password is the database user's password.
	Name     string `yaml:"db_name"`  // Name is the name of the database.
}

// MustLoad loads the configuration from a YAML file and returns a Config struct.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		panic("config path is empty")
	}

	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	viper.SetConfigFile(configPath)
	if err := viper.ReadInConfig(); err != nil {
		panic("config error: " + err.Error())
	}

	defPollerTimeout := 10
	defUnitPrice := 700.0
	defServerPort := 8080

	viper.SetDefault("postgres.port", "5432")
	viper.SetDefault("telegram.timeout", time.Duration(defPollerTimeout*int(time.Second)))
	viper.SetDefault("billing.unit_price", defUnitPrice)
	viper.SetDefault("files.ledger", "KOOLEXIL.xlsx")
	viper.SetDefault("files.admins", "admins.json")
	viper.SetDefault("server.port", defServerPort)

	return &Config{
		Env:           viper.GetString("env"),
		Token:         viper.GetString("telegram.token"),
		PollerTimeout: viper.GetDuration("telegram.timeout"),
		UnitPrice:     viper.GetFloat64("billing.unit_price"),
		LedgerFile:    viper.GetString("files.ledger"),
		AdminsFile:    viper.GetString("files.admins"),
		ServerPort:    viper.GetInt("server.port"),
		Database: PostgresConfig{
			Host:     viper.GetString("postgres.host"),
			Port:     viper.GetString("postgres.port"),
			User:     viper.GetString("postgres.user"),
			Password: viper.GetString("postgres.password"),
			Name:     viper.GetString("postgres.db_name"),
		},
	}
}
