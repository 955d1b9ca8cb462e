package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	InitialAdmin struct {
		Username string `env:"USERNAME" envDefault:"admin"`
		Password string `env:"PASSWORD,required"`
	} `envPrefix:"INITIAL_ADMIN_"`
	JWT struct {
		Expiration int    `env:"EXPIRATION" envDefault:"86400"` // 秒
		Secret     string `env:"SECRET,required"`
	} `envPrefix:"JWT_"`
	Optimizer struct {
		PopulationSize       int     `env:"POPULATION_SIZE" envDefault:"50"`
		MaxGenerations       int     `env:"MAX_GENERATIONS" envDefault:"100"`
		CrossoverRate        float64 `env:"CROSSOVER_RATE" envDefault:"0.9"`
		ScalingFactor        float64 `env:"SCALING_FACTOR" envDefault:"0.5"`
		MutationRate         float64 `env:"MUTATION_RATE" envDefault:"0.8"`
		PerturbRate          float64 `env:"PERTURB_RATE" envDefault:"0.5"`
		TimeLimit            float64 `env:"TIME_LIMIT" envDefault:"1.0"` // 秒
		ConsiderIllumination bool    `env:"CONSIDER_ILLUMINATION" envDefault:"true"`
	} `envPrefix:"OPTIMIZER_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}
