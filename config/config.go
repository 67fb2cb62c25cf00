package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	AppName   = "bioskop-finder-cli"
	EnvPrefix = "BIOSKOP"

	KeyCity        = "city"
	KeyDebug       = "debug"
	KeyLogPath     = "log_path"
	KeyCatalogPath = "catalog_path"
	KeyDataDir     = "data_dir"
	KeyConfigFile  = "config"
	KeyNoSave      = "no_save"
)

type Config struct {
	// City overrides the stored city for this run when set.
	City        string
	Debug       bool
	LogPath     string
	CatalogPath string
	DataDir     string
	// NoSave keeps city and theater changes in memory for this run only.
	NoSave bool
	// ConfigFile is the file that was read, if any.
	ConfigFile string
}

// New returns a viper instance with defaults, environment binding and the config search
// path set up. Command flags are bound into it before Load is called.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyCity, "")
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyLogPath, defaultLogPath())
	v.SetDefault(KeyCatalogPath, "")
	v.SetDefault(KeyDataDir, "")
	v.SetDefault(KeyConfigFile, "")
	v.SetDefault(KeyNoSave, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, AppName))
	}
	return v
}

// Load reads the optional config file and resolves every setting. A missing config file is
// not an error, a malformed one is.
func Load(v *viper.Viper) (*Config, error) {
	if file := v.GetString(KeyConfigFile); file != "" {
		v.SetConfigFile(file)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return &Config{
		City:        strings.ToLower(strings.TrimSpace(v.GetString(KeyCity))),
		Debug:       v.GetBool(KeyDebug),
		LogPath:     v.GetString(KeyLogPath),
		CatalogPath: v.GetString(KeyCatalogPath),
		DataDir:     v.GetString(KeyDataDir),
		NoSave:      v.GetBool(KeyNoSave),
		ConfigFile:  v.ConfigFileUsed(),
	}, nil
}

func defaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, AppName) + string(filepath.Separator)
}
