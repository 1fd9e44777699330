package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type AuthConfig struct {
	BcryptCost       int    `mapstructure:"bcrypt_cost"`
	JWTSecret        string `mapstructure:"jwt_secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
	RefreshExpDays   int    `mapstructure:"refresh_exp_days"`
}

type EmailConfig struct {
	SMTPHost    string `mapstructure:"smtp_host"`
	SMTPPort    int    `mapstructure:"smtp_port"`
	SMTPUser    string `mapstructure:"smtp_user"`
	SMTPPass    string `mapstructure:"smtp_password"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	ReplyTo     string `mapstructure:"reply_to"`
	// TokenSecret signs the correlation token embedded in outbound mail headers.
	TokenSecret string `mapstructure:"token_secret"`
}

type IMAPConfig struct {
	Host                string `mapstructure:"host"`
	Port                int    `mapstructure:"port"`
	Username            string `mapstructure:"username"`
	Password            string `mapstructure:"password"`
	Folder              string `mapstructure:"folder"`
	UseTLS              bool   `mapstructure:"use_tls"`
	PollIntervalSeconds int    `mapstructure:"poll_interval_seconds"`
	FetchWindow         int    `mapstructure:"fetch_window"`
}

func (c *IMAPConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type AIConfig struct {
	// Provider selects the drafting backend: "mock" or "openai".
	Provider            string  `mapstructure:"provider"`
	APIKey              string  `mapstructure:"api_key"`
	Model               string  `mapstructure:"model"`
	AutoApprove         bool    `mapstructure:"auto_approve"`
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
	RequestTimeoutSecs  int     `mapstructure:"request_timeout_seconds"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type WorkerConfig struct {
	// AIPoolSize bounds the number of concurrent AI drafting tasks.
	AIPoolSize int `mapstructure:"ai_pool_size"`
	// AITaskTimeoutSecs is the per-task deadline for drafting/analysis runs.
	AITaskTimeoutSecs int `mapstructure:"ai_task_timeout_seconds"`
}
