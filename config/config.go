package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/icodeforyou/spotprice-go/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfigApi struct {
	Address string
	Port    *int
	// If not assigned, the server will serve embedded files.
	// If assigned, the server will serve files from the directory,
	// that must contain a "static" and "templates" directory.
	// This is useful for development.
	WwwDir *string `mapstructure:"www_dir"`
	// Key used to sign the browser settings cookie, a random key is used when empty
	SessionSecret string `mapstructure:"session_secret"`
}

func (a AppConfigApi) GetPort() int {
	if a.Port == nil {
		return 8080
	}
	return *a.Port
}

type AppConfigDatabase struct {
	Path string
	// How many days fetched price days are kept for restarts before they get purged
	CacheRetentionDays *int `mapstructure:"cache_retention_days"`
	// How many days daily backup files should be stored before they gets deleted
	BackupRetentionDays *int `mapstructure:"backup_retention_days"`
}

func (d AppConfigDatabase) GetCacheRetentionDays() int {
	if d.CacheRetentionDays == nil {
		return 2
	}
	return *d.CacheRetentionDays
}

func (d AppConfigDatabase) GetBackupRetentionDays() int {
	if d.BackupRetentionDays == nil {
		return 7
	}
	return *d.BackupRetentionDays
}

type AppConfigEnergyPrice struct {
	Area *string `mapstructure:"area"` // "SE1", "SE2", "SE3", "SE4"
	// Providers tried in order until one succeeds: "elprisetjustnu", "nordpool", "tibber"
	Providers []string `mapstructure:"providers"`
	// Local hour from which tomorrow's prices are expected to be published
	TomorrowCutoffHour *int    `mapstructure:"tomorrow_cutoff_hour"`
	RunAt              *string `mapstructure:"run_at"`
}

func (e AppConfigEnergyPrice) GetArea() string {
	if e.Area == nil || *e.Area == "" {
		return "SE3"
	}
	return strings.ToUpper(*e.Area)
}

func (e AppConfigEnergyPrice) GetProviders() []string {
	if len(e.Providers) == 0 {
		return []string{"elprisetjustnu", "nordpool"}
	}
	return e.Providers
}

func (e AppConfigEnergyPrice) GetTomorrowCutoffHour() int {
	if e.TomorrowCutoffHour == nil {
		return 13
	}
	return *e.TomorrowCutoffHour
}

func (e AppConfigEnergyPrice) GetRunAt() string {
	if e.RunAt == nil {
		return "*/30 * * * *"
	}
	return *e.RunAt
}

type AppConfigWindow struct {
	Hours    *int `mapstructure:"hours"`     // Length of the cheap window in hours, default: 3
	MaxHours *int `mapstructure:"max_hours"` // Largest window a browser may select, default: 8
}

func (w AppConfigWindow) GetHours() int {
	if w.Hours == nil || *w.Hours < 1 {
		return 3
	}
	return *w.Hours
}

func (w AppConfigWindow) GetMaxHours() int {
	if w.MaxHours == nil || *w.MaxHours < 1 {
		return 8
	}
	return *w.MaxHours
}

type AppConfigTibber struct {
	ApiToken string `mapstructure:"api_token"`
	HomeId   string `mapstructure:"home_id"` // First home of the account if empty
}

type AppConfigMqtt struct {
	Enabled     bool
	Host        string
	Port        int
	Username    string
	Password    string
	TopicPrefix *string `mapstructure:"topic_prefix"`
	ClientId    *string `mapstructure:"client_id"`
}

func (m AppConfigMqtt) GetTopicPrefix() string {
	if m.TopicPrefix == nil {
		return "spotprice"
	}
	return *m.TopicPrefix
}

func (m AppConfigMqtt) GetClientId() string {
	if m.ClientId == nil {
		return "spotprice-go"
	}
	return *m.ClientId
}

type AppConfigNotify struct {
	// Show a desktop notification when the cheap window starts
	Desktop bool
}

type AppConfigGui struct {
	// Timezone for displaying times in the GUI, default: Europe/Stockholm
	Timezone *string `mapstructure:"timezone"`
}

func (g AppConfigGui) GetTimezone() string {
	if g.Timezone == nil {
		return "Europe/Stockholm"
	}
	return *g.Timezone
}

type AppConfigLogging struct {
	// Min log level for database : "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for database console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat == nil {
		return logging.LogAttrFormatJSON
	}
	if strings.EqualFold(*l.DbAttrsFormat, "text") {
		return logging.LogAttrFormatText
	}
	return logging.LogAttrFormatJSON
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	Api         AppConfigApi
	Database    AppConfigDatabase
	EnergyPrice AppConfigEnergyPrice `mapstructure:"energy_price"`
	Window      AppConfigWindow      `mapstructure:"window"`
	Tibber      AppConfigTibber      `mapstructure:"tibber"`
	Mqtt        AppConfigMqtt        `mapstructure:"mqtt"`
	Notify      AppConfigNotify      `mapstructure:"notify"`
	Gui         AppConfigGui         `mapstructure:"gui"`
	Logging     AppConfigLogging     `mapstructure:"logging"`
}

// loadDotEnv loads the first .env file found in dir or its parent. Variables
// already present in the environment are left untouched.
func loadDotEnv(dir string) (string, error) {
	for _, path := range []string{
		filepath.Join(dir, ".env"),
		filepath.Join(filepath.Dir(dir), ".env"),
	} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return path, fmt.Errorf("unable to load %s: %w", path, err)
		}
		return path, nil
	}
	return "", nil
}

func Load(path string) (*AppConfig, error) {
	if cwd, err := os.Getwd(); err == nil {
		if _, err := loadDotEnv(cwd); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("config")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c AppConfig

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}
