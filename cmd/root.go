package cmd

import (
	"fmt"
	"os"
	"strings"

	"bioskop-finder-cli/catalog"
	"bioskop-finder-cli/config"
	"bioskop-finder-cli/logging"
	"bioskop-finder-cli/model"
	"bioskop-finder-cli/service"
	"bioskop-finder-cli/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	Version = "dev"
	Commit  = "none"
)

// app carries what every command needs once the config has been resolved.
type app struct {
	viper  *viper.Viper
	cfg    *config.Config
	logger *zap.Logger
	guide  *service.Guide
	store  store.Store
	city   model.City
}

func NewRootCmd() *cobra.Command {
	a := &app{viper: config.New()}

	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Bioskop finder CLI",
		Long:  `Browse XXI movies, theaters and showtimes and pick your seats, all from the terminal.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
		RunE:          a.runTUI,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("city", "", "city name or slug for this run (default is the saved city)")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("config", "", "config file (default is <user config dir>/bioskop-finder-cli/config.yaml)")
	flags.Bool("no-save", false, "start from the saved city but keep every change in memory")
	_ = a.viper.BindPFlag(config.KeyCity, flags.Lookup("city"))
	_ = a.viper.BindPFlag(config.KeyDebug, flags.Lookup("debug"))
	_ = a.viper.BindPFlag(config.KeyConfigFile, flags.Lookup("config"))
	_ = a.viper.BindPFlag(config.KeyNoSave, flags.Lookup("no-save"))

	root.Flags().String("theater", "", "open a theater by name")
	root.Flags().Bool("show", false, "with --theater, jump straight to its showtimes")

	root.AddCommand(
		newMoviesCmd(a),
		newTheatersCmd(a),
		newShowtimesCmd(a),
		newSearchCmd(a),
		newCityCmd(a),
		newBookCmd(a),
		newVersionCmd(),
	)
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) setup() error {
	cfg, err := config.Load(a.viper)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.logger = logger

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Error("catalog load failed", zap.String("path", cfg.CatalogPath), zap.Error(err))
		return fmt.Errorf("load catalog: %w", err)
	}
	a.guide = service.NewGuide(cat, logger)

	st, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	a.store = st

	city, err := a.initialCity()
	if err != nil {
		return err
	}
	a.city = city

	logger.Info("startup",
		zap.String("version", Version),
		zap.String("city", city.Slug),
		zap.String("config_file", cfg.ConfigFile),
		zap.Bool("no_save", cfg.NoSave),
	)
	return nil
}

// initialCity prefers the --city flag or BIOSKOP_CITY over the saved city. An unknown
// override is an error; an unknown saved city falls back to the default.
func (a *app) initialCity() (model.City, error) {
	if a.cfg.City != "" {
		return resolveCity(a.cfg.City)
	}

	saved, err := a.store.LoadCity()
	if err != nil {
		a.logger.Warn("saved city unreadable", zap.Error(err))
	}
	city, err := resolveCity(saved)
	if err != nil {
		a.logger.Warn("saved city unknown", zap.String("city", saved))
		return resolveCity(model.DefaultCity)
	}
	return city, nil
}

// openStore returns the file store, or with NoSave an in-memory store seeded with the
// saved city.
func openStore(cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	files, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	if !cfg.NoSave {
		return files, nil
	}
	saved, err := files.LoadCity()
	if err != nil {
		logger.Warn("saved city unreadable", zap.Error(err))
	}
	return store.NewMemoryStore(saved), nil
}

func (a *app) saveCity(city model.City) error {
	if err := a.store.SaveCity(city.Slug); err != nil {
		return fmt.Errorf("save city: %w", err)
	}
	a.logger.Info("city changed", zap.String("from", a.city.Slug), zap.String("to", city.Slug))
	a.city = city
	return nil
}

func (a *app) close() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// resolveCity accepts a city name or slug from the picker list.
func resolveCity(input string) (model.City, error) {
	name := strings.TrimSpace(input)
	if name == "" {
		return model.City{}, fmt.Errorf("city is required")
	}
	if city, ok := catalog.CityBySlug(model.CitySlug(name)); ok {
		return city, nil
	}
	return model.City{}, fmt.Errorf("unknown city %q", input)
}
