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

type Application struct {
	Host      string    `koanf:"host"`
	Frontend  Frontend  `koanf:"frontend"`
	Database  Database  `koanf:"db"`
	Local     Local     `koanf:"local"`
	Storage   Storage   `koanf:"storage"`
	Templates Templates `koanf:"templates"`
	Users     []User    `koanf:"users"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

// Local points at the sqlite file holding per-installation preferences.
type Local struct {
	Path string `koanf:"path"`
}

type StorageBackend string

const (
	SupabaseStorage   StorageBackend = "supabase"
	FilesystemStorage StorageBackend = "filesystem"
)

type Storage struct {
	Backend StorageBackend `koanf:"backend"`
	Url     string         `koanf:"url"`
	Key     string         `koanf:"key"`
	Bucket  string         `koanf:"bucket"`
	Dir     string         `koanf:"dir"`
}

type Templates struct {
	MinSize        int    `koanf:"minsize"`
	DefaultProfile string `koanf:"defaultprofile"`
	PrimaryUrl     string `koanf:"primaryurl"`
	SecondaryUrl   string `koanf:"secondaryurl"`
	// DriveCredentialsFile is a service account JSON used for Drive exports. Plain HTTP export is used when empty.
	DriveCredentialsFile string        `koanf:"drivecredentialsfile"`
	DriveApiKey          string        `koanf:"driveapikey"`
	Timeout              time.Duration `koanf:"timeout"`
}

type User struct {
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	Role     string `koanf:"role"`
}

func defaults() Application {
	return Application{
		Host: "http://localhost:8080",
		Frontend: Frontend{
			Enabled: false,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "simkak",
			Pass:   "",
			Name:   "simkak",
			Schema: "simkak",
		},
		Local: Local{
			Path: "storage/local.db",
		},
		Storage: Storage{
			Backend: FilesystemStorage,
			Bucket:  "templates",
			Dir:     "storage/templates",
		},
		Templates: Templates{
			MinSize:        1000,
			DefaultProfile: "camel/v1",
			Timeout:        30 * time.Second,
		},
		Users: []User{
			{Username: "PPK3210", Password: "bellamy", Name: "Andries Kurniawan", Role: "PPK"},
			{Username: "SOSIAL3210", Password: "BPS3210", Name: "Fungsi Sosial", Role: "Sosial"},
			{Username: "NERACA3210", Password: "BPS3210", Name: "Fungsi Neraca", Role: "Neraca"},
			{Username: "PRODUKSI3210", Password: "BPS3210", Name: "Fungsi Produksi", Role: "Produksi"},
			{Username: "DISTRIBUSI3210", Password: "BPS3210", Name: "Fungsi Distibusi", Role: "Distribusi"},
			{Username: "IPDS3210", Password: "BPS3210", Name: "Fungsi IPDS", Role: "IPDS"},
			{Username: "TU3210", Password: "BPS3210", Name: "Tata Usaha", Role: "TU"},
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(defaults(), "koanf"), nil)
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
		Prefix: "SIMKAK_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "SIMKAK_")), "_", ".")
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
