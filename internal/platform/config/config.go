package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Seed     SeedConfig     `yaml:"seed"`
}

// ServerConfig は HTTP サーバーに関する設定です。
type ServerConfig struct {
	ListenAddr         string        `yaml:"listen_addr"`
	Mode               string        `yaml:"mode"`
	AllowedOrigins     []string      `yaml:"allowed_origins"`
	ReadTimeout        time.Duration `yaml:"-"`
	WriteTimeout       time.Duration `yaml:"-"`
	ShutdownTimeout    time.Duration `yaml:"-"`
	ReadTimeoutRaw     string        `yaml:"read_timeout"`
	WriteTimeoutRaw    string        `yaml:"write_timeout"`
	ShutdownTimeoutRaw string        `yaml:"shutdown_timeout"`
}

// DatabaseConfig はストレージ接続に関する設定です。driver により PostgreSQL か SQLite を選択します。
type DatabaseConfig struct {
	Driver             string        `yaml:"driver"`
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SSLMode            string        `yaml:"ssl_mode"`
	Path               string        `yaml:"path"`
	AutoMigrate        bool          `yaml:"auto_migrate"`
	MigrationsDir      string        `yaml:"migrations_dir"`
	MaxOpenConns       int           `yaml:"max_open_conns"`
	MaxIdleConns       int           `yaml:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time"`
}

// LogConfig はログ出力に関する設定です。
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SeedConfig は起動時の初期データ投入に関する設定です。
type SeedConfig struct {
	Enabled *bool `yaml:"enabled"`
}

// Load は指定されたパスから設定ファイルを読み込みます。ファイル中の ${VAR} は環境変数で展開されます。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(b))), &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validateAndNormalize() error {
	if err := c.Server.validateAndNormalize(); err != nil {
		return err
	}

	if err := c.Database.validateAndNormalize(); err != nil {
		return err
	}

	c.Log.normalize()

	return nil
}

// SeedEnabled は初期データ投入が有効かを返します。未指定の場合は有効です。
func (c *Config) SeedEnabled() bool {
	if c.Seed.Enabled == nil {
		return true
	}
	return *c.Seed.Enabled
}

func (s *ServerConfig) validateAndNormalize() error {
	if s.ListenAddr == "" {
		return fmt.Errorf("config: server.listen_addr must be set")
	}

	switch s.Mode {
	case "":
		s.Mode = "release"
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode must be one of debug, release, test")
	}

	var err error
	if s.ReadTimeout, err = parseDurationWithDefault(s.ReadTimeoutRaw, 15*time.Second); err != nil {
		return fmt.Errorf("config: server.read_timeout: %w", err)
	}
	if s.WriteTimeout, err = parseDurationWithDefault(s.WriteTimeoutRaw, 15*time.Second); err != nil {
		return fmt.Errorf("config: server.write_timeout: %w", err)
	}
	if s.ShutdownTimeout, err = parseDurationWithDefault(s.ShutdownTimeoutRaw, 10*time.Second); err != nil {
		return fmt.Errorf("config: server.shutdown_timeout: %w", err)
	}

	return nil
}

func (d *DatabaseConfig) validateAndNormalize() error {
	if d.Driver == "" {
		d.Driver = DriverPostgres
	}

	switch d.Driver {
	case DriverPostgres:
		if err := d.validatePostgres(); err != nil {
			return err
		}
	case DriverSQLite:
		if d.Path == "" {
			return fmt.Errorf("config: database.path must be set for sqlite")
		}
	default:
		return fmt.Errorf("config: database.driver %q is not supported", d.Driver)
	}

	if d.MigrationsDir == "" {
		d.MigrationsDir = "assets/migrations/" + d.Driver
	}

	lifetime, err := parseDurationWithDefault(d.ConnMaxLifetimeRaw, 0)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationWithDefault(d.ConnMaxIdleTimeRaw, 0)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	return nil
}

func (d *DatabaseConfig) validatePostgres() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	return nil
}

func (l *LogConfig) normalize() {
	if l.Level == "" {
		l.Level = "info"
	}
	l.Level = strings.ToLower(l.Level)
	if l.Format == "" {
		l.Format = "json"
	}
}

func parseDurationWithDefault(raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DSN は pgx 用の接続文字列を返します。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

// MigrateURL は golang-migrate 用のデータベース URL を返します。
func (d DatabaseConfig) MigrateURL() string {
	if d.Driver == DriverSQLite {
		return "sqlite3://" + d.Path
	}
	return d.DSN()
}
