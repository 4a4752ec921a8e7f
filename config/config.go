/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_PORT      = "5001"
	DEFAULT_PAGE_SIZE = 25
	MAX_PAGE_SIZE     = 1000
)

var ConfigStore atomic.Value

type ServerConfig struct {
	SSL       bool   `json:"ssl" envconfig:"OBRS_SERVER_SSL"`
	SecretKey string `json:"secret_key" envconfig:"OBRS_SERVER_SECRET_KEY"`
	Domain    string `json:"domain" envconfig:"OBRS_SERVER_SSL_DOMAIN"`
	Email     string `json:"ssl_email" envconfig:"OBRS_SERVER_SSL_EMAIL"`
	Port      string `json:"port" envconfig:"OBRS_SERVER_PORT"`
	CertDir   string `json:"cert_dir" envconfig:"OBRS_SERVER_CERT_DIR"`
}

type DataSourceConfig struct {
	Dns string `json:"dns" envconfig:"OBRS_DATA_SOURCE_DNS"`
}

type RedisConfig struct {
	Dns           string `json:"dns" envconfig:"OBRS_REDIS_DNS"`
	SkipTLSVerify bool   `json:"skip_tls_verify" envconfig:"OBRS_REDIS_SKIP_TLS_VERIFY"`
}

// ConsentStoreConfig points at the external consent store service.
type ConsentStoreConfig struct {
	BaseUrl    string            `json:"base_url" envconfig:"OBRS_CONSENT_STORE_BASE_URL"`
	Timeout    int               `json:"timeout" envconfig:"OBRS_CONSENT_STORE_TIMEOUT"`
	MaxRetries int               `json:"max_retries" envconfig:"OBRS_CONSENT_STORE_MAX_RETRIES"`
	Headers    map[string]string `json:"headers"`
}

type PaginationConfig struct {
	PageSize int `json:"page_size" envconfig:"OBRS_PAGINATION_PAGE_SIZE"`
}

// IdempotencyConfig tunes the lock held around payment creation.
type IdempotencyConfig struct {
	LockDuration     time.Duration `json:"lock_duration" envconfig:"OBRS_IDEMPOTENCY_LOCK_DURATION"`
	LockWaitTimeout  time.Duration `json:"lock_wait_timeout" envconfig:"OBRS_IDEMPOTENCY_LOCK_WAIT_TIMEOUT"`
	LockPollInterval time.Duration `json:"lock_poll_interval" envconfig:"OBRS_IDEMPOTENCY_LOCK_POLL_INTERVAL"`
}

type QueueConfig struct {
	StatusUpdateQueue string `json:"status_update_queue" envconfig:"OBRS_QUEUE_STATUS_UPDATE"`
	Concurrency       int    `json:"concurrency" envconfig:"OBRS_QUEUE_CONCURRENCY"`
	MaxRetry          int    `json:"max_retry" envconfig:"OBRS_QUEUE_MAX_RETRY"`
	MonitoringPort    string `json:"monitoring_port" envconfig:"OBRS_QUEUE_MONITORING_PORT"`
}

type RateLimitConfig struct {
	RequestsPerSecond  *float64 `json:"requests_per_second" envconfig:"OBRS_RATE_LIMIT_RPS"`
	Burst              *int     `json:"burst" envconfig:"OBRS_RATE_LIMIT_BURST"`
	CleanupIntervalSec *int     `json:"cleanup_interval_sec" envconfig:"OBRS_RATE_LIMIT_CLEANUP_INTERVAL_SEC"`
}

type SlackWebhook struct {
	WebhookUrl string `json:"webhook_url" envconfig:"OBRS_NOTIFICATION_SLACK_WEBHOOK_URL"`
}

// Notification configures where operators are alerted about errors that need a human.
type Notification struct {
	Slack SlackWebhook `json:"slack"`
}

type Configuration struct {
	ProjectName     string             `json:"project_name" envconfig:"OBRS_PROJECT_NAME"`
	Server          ServerConfig       `json:"server"`
	DataSource      DataSourceConfig   `json:"data_source"`
	Redis           RedisConfig        `json:"redis"`
	ConsentStore    ConsentStoreConfig `json:"consent_store"`
	Pagination      PaginationConfig   `json:"pagination"`
	Idempotency     IdempotencyConfig  `json:"idempotency"`
	Queue           QueueConfig        `json:"queue"`
	RateLimit       RateLimitConfig    `json:"rate_limit"`
	Notification    Notification       `json:"notification"`
	EnableTelemetry bool               `json:"enable_telemetry" envconfig:"OBRS_ENABLE_TELEMETRY"`
}

func loadConfigFromFile(file string) error {
	var cnf Configuration
	_, err := os.Stat(file)
	if err == nil {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		err = json.NewDecoder(f).Decode(&cnf)
		if err != nil {
			return err
		}

	} else if errors.Is(err, os.ErrNotExist) {
		log.Println("config json not passed, will use env variables")
	}

	// override config from environment variables
	err = envconfig.Process("obrs", &cnf)
	if err != nil {
		return err
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		return err
	}

	ConfigStore.Store(&cnf)
	return err
}

func InitConfig(configFile string) error {
	logger()
	return loadConfigFromFile(configFile)
}

func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded from file. Create a json file called obrs.json with your config")
	}
	return c, nil
}

func (cnf *Configuration) validateAndAddDefaults() error {
	if cnf.ProjectName == "" {
		log.Println("Warning: Project name is empty. Setting a default name.")
		cnf.ProjectName = "OB Resource Server"
	}

	if cnf.DataSource.Dns == "" {
		log.Println("Error: Data source DNS is empty. It's a required field.")
		return errors.New("data source DNS is required")
	}

	if cnf.ConsentStore.BaseUrl == "" {
		log.Println("Error: Consent store base url is empty. It's a required field.")
		return errors.New("consent store base url is required")
	}

	// Trim white spaces from fields
	cnf.ProjectName = strings.TrimSpace(cnf.ProjectName)
	cnf.Server.Port = strings.TrimSpace(cnf.Server.Port)
	cnf.DataSource.Dns = strings.TrimSpace(cnf.DataSource.Dns)
	cnf.Redis.Dns = strings.TrimSpace(cnf.Redis.Dns)
	cnf.ConsentStore.BaseUrl = strings.TrimRight(strings.TrimSpace(cnf.ConsentStore.BaseUrl), "/")

	if cnf.Server.Port == "" {
		cnf.Server.Port = DEFAULT_PORT
		log.Printf("Warning: Port not specified in config. Setting default port: %s", DEFAULT_PORT)
	}
	if cnf.Server.CertDir == "" {
		cnf.Server.CertDir = "certmagic"
	}

	if cnf.Redis.Dns == "" {
		log.Println("Warning: Redis DNS is empty. Idempotency locking and the status update queue are disabled.")
	}

	if cnf.ConsentStore.Timeout <= 0 {
		cnf.ConsentStore.Timeout = 10
	}
	if cnf.ConsentStore.MaxRetries < 0 {
		cnf.ConsentStore.MaxRetries = 0
	}

	if cnf.Pagination.PageSize <= 0 {
		cnf.Pagination.PageSize = DEFAULT_PAGE_SIZE
	}
	if cnf.Pagination.PageSize > MAX_PAGE_SIZE {
		log.Printf("Warning: Page size %d exceeds maximum. Setting page size: %d", cnf.Pagination.PageSize, MAX_PAGE_SIZE)
		cnf.Pagination.PageSize = MAX_PAGE_SIZE
	}

	if cnf.Idempotency.LockDuration <= 0 {
		cnf.Idempotency.LockDuration = 30 * time.Second
	}
	if cnf.Idempotency.LockWaitTimeout <= 0 {
		cnf.Idempotency.LockWaitTimeout = 5 * time.Second
	}
	if cnf.Idempotency.LockPollInterval <= 0 {
		cnf.Idempotency.LockPollInterval = 50 * time.Millisecond
	}

	if cnf.Queue.StatusUpdateQueue == "" {
		cnf.Queue.StatusUpdateQueue = "payment_status_updates"
	}
	if cnf.Queue.Concurrency <= 0 {
		cnf.Queue.Concurrency = 10
	}
	if cnf.Queue.MaxRetry <= 0 {
		cnf.Queue.MaxRetry = 5
	}
	if cnf.Queue.MonitoringPort == "" {
		cnf.Queue.MonitoringPort = "5004"
	}

	// Rate limiting is disabled by default (when both RPS and Burst are nil)
	if cnf.RateLimit.RequestsPerSecond != nil && cnf.RateLimit.Burst == nil {
		defaultBurst := 2 * int(*cnf.RateLimit.RequestsPerSecond)
		cnf.RateLimit.Burst = &defaultBurst
		log.Printf("Warning: Rate limit burst not specified. Setting default value: %d", defaultBurst)
	}
	if cnf.RateLimit.RequestsPerSecond == nil && cnf.RateLimit.Burst != nil {
		defaultRPS := float64(*cnf.RateLimit.Burst) / 2
		cnf.RateLimit.RequestsPerSecond = &defaultRPS
		log.Printf("Warning: Rate limit RPS not specified. Setting default value: %.2f", defaultRPS)
	}

	if cnf.RateLimit.CleanupIntervalSec == nil {
		defaultCleanup := 10800 // 3 hours in seconds
		cnf.RateLimit.CleanupIntervalSec = &defaultCleanup
	}

	return nil
}

// MockConfig sets a mock configuration for testing purposes.
func MockConfig(mockConfig *Configuration) {
	ConfigStore.Store(mockConfig)
}

func logger() {
	logger := logrus.New()
	log.SetOutput(logger.Writer())
}
