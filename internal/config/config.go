package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host     string   `koanf:"host"`
	Database Database `koanf:"db"`
	Budget   Budget   `koanf:"budget"`
	Insights Insights `koanf:"insights"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Budget struct {
	// DefaultMonthlyIncomeCents is used when the ledger holds no inflow
	// facts to estimate income from.
	DefaultMonthlyIncomeCents int64 `koanf:"defaultmonthlyincomecents"`
	// SpendingWindowDays is the trailing window for spending history and
	// income estimation.
	SpendingWindowDays int `koanf:"spendingwindowdays"`
	// ReconcileDebounceMillis coalesces rapid ledger-change notifications
	// before recomputing budget performance.
	ReconcileDebounceMillis int `koanf:"reconciledebouncemillis"`
}

type Insights struct {
	CacheTTLSeconds int `koanf:"cachettlseconds"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:3000",
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "clearpiggy",
			Pass:   "",
			Name:   "clearpiggy",
			Schema: "clearpiggy",
		},
		Budget: Budget{
			DefaultMonthlyIncomeCents: 500_000,
			SpendingWindowDays:        90,
			ReconcileDebounceMillis:   1500,
		},
		Insights: Insights{
			CacheTTLSeconds: 300,
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "CLEARPIGGY_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "CLEARPIGGY_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
