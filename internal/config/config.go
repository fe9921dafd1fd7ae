package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "DOMPET_"

type Application struct {
	Port   int    `koanf:"port"`
	Server Server `koanf:"server"`
	Cors   Cors   `koanf:"cors"`
	Gemini Gemini `koanf:"gemini"`
}

type Server struct {
	ReadTimeout     time.Duration `koanf:"readtimeout"`
	WriteTimeout    time.Duration `koanf:"writetimeout"`
	IdleTimeout     time.Duration `koanf:"idletimeout"`
	ShutdownTimeout time.Duration `koanf:"shutdowntimeout"`
}

type Cors struct {
	AllowedOrigins []string `koanf:"allowedorigins"`
}

// Gemini configures the text generation backend used for budget plans.
// An empty ApiKey disables plan generation for the process lifetime.
type Gemini struct {
	ApiKey      string        `koanf:"apikey"`
	Model       string        `koanf:"model"`
	Temperature float32       `koanf:"temperature"`
	Timeout     time.Duration `koanf:"timeout"`
	// Verify looks the model up once at startup so that a rejected key or an
	// unknown model disables plan generation instead of failing every request.
	Verify bool `koanf:"verify"`
}

func Defaults() Application {
	return Application{
		Port: 5000,
		Server: Server{
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    90 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Cors: Cors{
			AllowedOrigins: []string{"*"},
		},
		Gemini: Gemini{
			Model:       "gemini-1.5-flash",
			Temperature: 0.4,
			Timeout:     60 * time.Second,
			Verify:      true,
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
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

	// Plain PORT and GEMINI_API_KEY are honoured before the prefixed form.
	for variable, key := range map[string]string{"PORT": "port", "GEMINI_API_KEY": "gemini.apikey"} {
		err = k.Load(env.Provider(".", env.Opt{
			Prefix: variable,
			TransformFunc: func(k, v string) (string, any) {
				if k != variable {
					return "", nil
				}
				return key, v
			},
		}), nil)
		if err != nil {
			log.Errorf("error loading config from %s: %v", variable, err)
			return Application{}, err
		}
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			if k == "cors.allowedorigins" {
				return k, strings.Split(v, ",")
			}
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
