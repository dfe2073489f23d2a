package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     uint   `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DbName   string `json:"db_name"`
}

func (p PostgresConfig) DbUrl() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		p.Host, p.Port, p.User, p.Password, p.DbName,
	)
}

type JwtConfig struct {
	PrivateKeyPath string `json:"private_key_path"`
	PublicKeyPath  string `json:"public_key_path"`
}

type SolverConfig struct {
	// MaxWidth bounds puzzle size: state space grows combinatorially with
	// width, and the solver holds every discovered board in memory.
	MaxWidth int `json:"max_width"`
	// MaxShuffle bounds the random walk length of generated puzzles.
	MaxShuffle int `json:"max_shuffle"`
	// CachePath locates the sqlite solution cache.
	CachePath string `json:"cache_path"`
}

type Config struct {
	Mode     string         `json:"mode"`
	Addr     string         `json:"addr"`
	LogPath  string         `json:"log_path"`
	Postgres PostgresConfig `json:"postgres"`
	Jwt      JwtConfig      `json:"jwt"`
	Solver   SolverConfig   `json:"solver"`
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":                 c.Mode,
		"addr":                 c.Addr,
		"log_path":             c.LogPath,
		"pg_host":              c.Postgres.Host,
		"pg_port":              c.Postgres.Port,
		"pg_user":              c.Postgres.User,
		"pg_db_name":           c.Postgres.DbName,
		"jwt_private_key_path": c.Jwt.PrivateKeyPath,
		"jwt_public_key_path":  c.Jwt.PublicKeyPath,
		"solver_max_width":     c.Solver.MaxWidth,
		"solver_max_shuffle":   c.Solver.MaxShuffle,
		"solver_cache_path":    c.Solver.CachePath,
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func ReadConfig(path string, config *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, config); err != nil {
		return err
	}
	if config.Solver.MaxWidth == 0 {
		config.Solver.MaxWidth = 4
	}
	if config.Solver.MaxShuffle == 0 {
		config.Solver.MaxShuffle = 200
	}
	return nil
}
