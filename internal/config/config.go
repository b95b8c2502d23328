package config

import (
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	Port        string

	CSVPath       string
	SampleCSVPath string
	DataDir       string

	DefaultPageSize int
	MaxPageSize     int

	CORSOrigin   string
	OTLPEndpoint string

	StatusRules StatusRules
}

// StatusRules drives status inference from raw transaction types.
type StatusRules struct {
	CheckoutKeywords  []string
	CheckinKeywords   []string
	LostKeywords      []string
	MissingKeywords   []string
	WithdrawnKeywords []string
}

// CheckoutsPath is the checkout ledger snapshot location.
func (c Config) CheckoutsPath() string {
	return filepath.Join(c.DataDir, "checkouts.json")
}

// NotesPath is the notes ledger snapshot location.
func (c Config) NotesPath() string {
	return filepath.Join(c.DataDir, "notes.json")
}

// Load reads configuration from environment variables and an optional
// .env file, falling back to defaults suitable for local development.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CIRCDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.name", "circdash")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("environment", "development")
	v.SetDefault("port", "3001")
	v.SetDefault("csv.path", "./data/circulation.csv")
	v.SetDefault("csv.sample_path", "./data/circulation.sample.csv")
	v.SetDefault("data.dir", "./data")
	v.SetDefault("page.size", 50)
	v.SetDefault("page.max_size", 500)
	v.SetDefault("cors.origin", "http://localhost:5171")
	v.SetDefault("otlp.endpoint", "")

	return Config{
		AppName:         v.GetString("app.name"),
		AppVersion:      v.GetString("app.version"),
		Environment:     v.GetString("environment"),
		Port:            v.GetString("port"),
		CSVPath:         v.GetString("csv.path"),
		SampleCSVPath:   v.GetString("csv.sample_path"),
		DataDir:         v.GetString("data.dir"),
		DefaultPageSize: v.GetInt("page.size"),
		MaxPageSize:     v.GetInt("page.max_size"),
		CORSOrigin:      v.GetString("cors.origin"),
		OTLPEndpoint:    v.GetString("otlp.endpoint"),
		StatusRules: StatusRules{
			CheckoutKeywords:  []string{"CHARGE", "CHECKOUT", "CHECK OUT", "LOAN", "BORROW"},
			CheckinKeywords:   []string{"DISCHARGE", "CHECKIN", "CHECK IN", "RETURN", "RENEW"},
			LostKeywords:      []string{"LOST", "LOST-ASSUM", "LOST-PAID"},
			MissingKeywords:   []string{"MISSING", "MISSING-INVENTORY"},
			WithdrawnKeywords: []string{"WITHDRAWN", "WITHDRAW", "DISCARD"},
		},
	}
}
