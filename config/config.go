package config

import (
	"fmt"
	"io/ioutil"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// The app is in production or debug mode
	Mode       string `envconfig:"MODE" default:"production" yaml:"mode"`
	ServerAddr string `envconfig:"SERVER_ADDR" default:"0.0.0.0" yaml:"server_addr"`
	ServerPort string `envconfig:"PORT" default:"8000" yaml:"server_port"`
	// Root of the public exam tree (exams.json, exams/{year}/...)
	DataURI string `envconfig:"DATA_URI" default:"file://src/data/public" yaml:"data_uri"`

	// Which published-override strategy backs the first resolution tier: remote, dir, mongo or none
	OverrideSource  string        `envconfig:"OVERRIDE_SOURCE" default:"remote" yaml:"override_source"`
	AdminBaseURL    string        `envconfig:"ADMIN_BASE_URL" default:"http://localhost:3001" yaml:"admin_base_url"`
	OverrideTimeout time.Duration `envconfig:"OVERRIDE_TIMEOUT" default:"5s" yaml:"override_timeout"`
	PublishedDir    string        `envconfig:"PUBLISHED_DIR" default:"../admin-backend/data/questions-published" yaml:"published_dir"`
	MongoURI        string        `envconfig:"MONGO_URI" yaml:"mongo_uri"`
	MongoDBName     string        `envconfig:"MONGO_DB_NAME" default:"enem_admin" yaml:"mongo_db_name"`
	MongoCollection string        `envconfig:"MONGO_COLLECTION" default:"published_questions" yaml:"mongo_collection"`

	AllowedOrigins      []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:3001,https://localhost:3000,https://localhost:3001" yaml:"allowed_origins"`
	AllowVercelPreviews bool     `envconfig:"ALLOW_VERCEL_PREVIEWS" default:"true" yaml:"allow_vercel_previews"`

	MediaSourceHost  string `envconfig:"MEDIA_SOURCE_HOST" default:"https://enem.dev/" yaml:"media_source_host"`
	MediaPublicBase  string `envconfig:"MEDIA_PUBLIC_BASE" default:"https://enem-frontend.vercel.app/exams/" yaml:"media_public_base"`
	LocalMediaPrefix string `envconfig:"LOCAL_MEDIA_PREFIX" default:"/exams/" yaml:"local_media_prefix"`

	BulkConcurrency int           `envconfig:"BULK_CONCURRENCY" default:"8" yaml:"bulk_concurrency"`
	StaticMaxAge    time.Duration `envconfig:"STATIC_MAX_AGE" default:"24h" yaml:"static_max_age"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" yaml:"shutdown_timeout"`
}

var conf *Config

var logger = logrus.New()

const (
	DebugMode      = "debug"
	ProductionMode = "production"
)

func init() {
	conf = &Config{}
	err := envconfig.Process("enem_api", conf)
	if err != nil {
		fmt.Println("Fatal error processing configuration")
		panic(err)
	}
	l := conf.GetLogger()
	if err := conf.validate(); err != nil {
		l.Fatal(err)
	}
}

// Cfg returns the configuration - will panic if the config has not been loaded or is nil (which shouldn't happen as that's implicit in the package init)
func Cfg() *Config {
	if conf == nil {
		panic("Config is nil")
	}
	return conf
}

// LoadFile overlays the YAML document at path onto the loaded configuration.
// Keys present in the file win over the environment and the defaults.
func LoadFile(path string) error {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "config: reading %s", path)
	}
	next := *Cfg()
	if err := yaml.UnmarshalStrict(raw, &next); err != nil {
		return errors.Wrapf(err, "config: parsing %s", path)
	}
	if err := next.validate(); err != nil {
		return err
	}
	*conf = next
	conf.GetLogger()
	return nil
}

func (cfg *Config) validate() error {
	if !cfg.IsDebugMode() && !cfg.IsProductionMode() {
		return errors.New("invalid MODE variable, it must be either `debug` or `production`")
	}
	if cfg.BulkConcurrency < 1 {
		return errors.Errorf("invalid BULK_CONCURRENCY %d, it must be at least 1", cfg.BulkConcurrency)
	}
	return nil
}

// GetLogger returns the process-wide logger with its level set from Mode.
// Every package shares it, so a later config overlay reaches all of them.
func (cfg *Config) GetLogger() *logrus.Logger {
	logLvl := logrus.InfoLevel
	if cfg.IsDebugMode() {
		logLvl = logrus.DebugLevel
	}
	logger.SetLevel(logLvl)
	return logger
}

func (cfg *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%s", cfg.ServerAddr, cfg.ServerPort)
}

func (cfg *Config) IsDebugMode() bool {
	return cfg.Mode == DebugMode
}

func (cfg *Config) IsProductionMode() bool {
	return cfg.Mode == ProductionMode
}
