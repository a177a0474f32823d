package main

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/youruser/mockupkit/internal/config"
	imagepkg "github.com/youruser/mockupkit/internal/image"
	"github.com/youruser/mockupkit/internal/templates"
)

// app is the wiring shared by all subcommands, built once config is loaded.
type app struct {
	cfg        config.Config
	log        *logrus.Logger
	registry   *templates.Registry
	resolver   *imagepkg.Resolver
	compositor *imagepkg.Compositor
}

func newApp(cfg config.Config, log *logrus.Logger) (*app, error) {
	reg, err := templates.LoadCatalogueFile(cfg.Catalogue.Path)
	if err != nil {
		return nil, err
	}
	resolver := imagepkg.NewResolver(&http.Client{Timeout: cfg.Fetch.Timeout}, cfg.Fetch.MaxBytes)
	comp := imagepkg.NewCompositor(resolver,
		imagepkg.WithArtworkCache(imagepkg.NewArtworkCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)),
		imagepkg.WithLogger(log.WithField("component", "compositor")),
	)
	log.WithFields(logrus.Fields{
		"templates": reg.Len(),
		"catalogue": cfg.Catalogue.Path,
	}).Debug("catalogue loaded")
	return &app{
		cfg:        cfg,
		log:        log,
		registry:   reg,
		resolver:   resolver,
		compositor: comp,
	}, nil
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		a       *app
	)
	v := viper.New()

	root := &cobra.Command{
		Use:           "mockup",
		Short:         "Composite screenshots into device mockup templates",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			log := logrus.New()
			log.SetOutput(cmd.ErrOrStderr())
			if err := cfg.ConfigureLogger(log); err != nil {
				return err
			}
			a, err = newApp(cfg, log)
			return err
		},
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./mockup.yaml or ~/.config/mockup/mockup.yaml)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().String("catalogue", "", "template catalogue YAML (default: bundled)")
	_ = v.BindPFlag("log.level", root.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("catalogue.path", root.PersistentFlags().Lookup("catalogue"))

	appFn := func() *app { return a }
	root.AddCommand(
		newServeCmd(v, appFn),
		newTemplatesCmd(appFn),
		newComposeCmd(appFn),
	)
	return root
}
