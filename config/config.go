package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "ECOSCAN_CONFIG_FILE"

type catalog struct {
	ProductURL string        `mapstructure:"product_url"`
	SearchURL  string        `mapstructure:"search_url"`
	UserAgent  string        `mapstructure:"user_agent"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type scan struct {
	CarbonThreshold float64 `mapstructure:"carbon_threshold"`
	MaxAlternatives int     `mapstructure:"max_alternatives"`
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	ScanEventsTopic    string   `mapstructure:"scan_events_topic"`
	StatsGroup         string   `mapstructure:"stats_group"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	SQLDB          string     `mapstructure:"sql_db"`
	Catalog        catalog    `mapstructure:"catalog"`
	Scan           scan       `mapstructure:"scan"`
	Broker         broker     `mapstructure:"broker"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	cfg, err := unmarshalConfig()
	if err != nil {
		die(err)
	}

	return cfg
}

// unmarshalConfig decodes the loaded file. The hook chain restates the
// viper defaults (duration, comma slices) plus the text unmarshaller,
// which lets log_level hold a level name like INFO instead of a bare
// number.
func unmarshalConfig() (Config, error) {
	var cfg Config
	err := viper.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	return cfg, err
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	SQLDB=%q

	CatalogConfig:
	ProductURL=%q
	SearchURL=%q
	UserAgent=%q
	Timeout=%q

	ScanConfig:
	CarbonThreshold=%v
	MaxAlternatives=%d

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	ScanEventsTopic=%q
	StatsGroup=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.SQLDB,
		c.Catalog.ProductURL,
		c.Catalog.SearchURL,
		c.Catalog.UserAgent,
		c.Catalog.Timeout,
		c.Scan.CarbonThreshold,
		c.Scan.MaxAlternatives,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.ScanEventsTopic,
		c.Broker.StatsGroup,
	)
}
