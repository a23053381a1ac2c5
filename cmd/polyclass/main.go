package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/drakos74/polyclass/infra/config"
	"github.com/drakos74/polyclass/internal/chart"
	"github.com/drakos74/polyclass/internal/data"
	"github.com/drakos74/polyclass/internal/host"
	"github.com/drakos74/polyclass/internal/learner"
	"github.com/drakos74/polyclass/internal/storage"
	json_storage "github.com/drakos74/polyclass/internal/storage/file/json"
	"github.com/drakos74/polyclass/internal/widget"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {
	var (
		file      = flag.String("data", "", "csv file, the last column is the class")
		headers   = flag.Bool("headers", true, "the csv file has a header row")
		learnerN  = flag.String("learner", learner.LogRegName, fmt.Sprintf("learner, one of %v", learner.Names()))
		attrX     = flag.String("x", "", "x attribute, defaults to the first continuous one")
		attrY     = flag.String("y", "", "y attribute, defaults to the second continuous one")
		out       = flag.String("out", "polyclass.png", "output image, png or svg")
		options   = flag.String("options", "", "write the chart options as json to this file")
		configDir = flag.String("config", config.Path, "config dir")
		store     = flag.String("storage", storage.DefaultDir, "settings dir")
		debug     = flag.Bool("debug", false, "debug logging")
	)
	flag.Parse()

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	var cfg chart.Config
	if _, err := config.Load(*configDir, chart.ConfigKey, &cfg); err != nil {
		log.Warn().Err(err).Msg("using chart defaults")
	}

	l, err := learner.Lookup(*learnerN)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create learner")
	}

	table, err := data.ReadCSV(*file, *headers)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("could not read data")
	}

	shard, err := json_storage.FileShard(*store)("widget")
	if err != nil {
		log.Fatal().Err(err).Msg("could not create storage")
	}

	h := host.New(widget.New(cfg.Options()...), shard)
	if err := h.Restore(); err != nil {
		log.Warn().Err(err).Msg("could not restore settings")
	}
	if err := h.Send(host.LearnerSignal(l)); err != nil {
		log.Fatal().Err(err).Msg("could not set learner")
	}
	if err := h.Send(host.DataSignal(table)); err != nil {
		log.Fatal().Err(err).Msg("could not set data")
	}

	w := h.Widget()
	for _, warning := range w.Warnings() {
		log.Warn().Int("slot", warning.ID).Msg(warning.Message)
	}

	if *attrX != "" {
		if err := w.SelectX(*attrX); err != nil {
			log.Fatal().Err(err).Msg("could not select x")
		}
	}
	if *attrY != "" {
		if err := w.SelectY(*attrY); err != nil {
			log.Fatal().Err(err).Msg("could not select y")
		}
	}
	if err := h.Save(); err != nil {
		log.Warn().Err(err).Msg("could not save settings")
	}

	if err := render(w.Chart(), *out); err != nil {
		log.Fatal().Err(err).Msg("could not render chart")
	}
	if *options != "" {
		if err := writeOptions(w.Chart(), *options); err != nil {
			log.Fatal().Err(err).Msg("could not write options")
		}
	}

	log.Info().
		Str("state", w.State().String()).
		Str("learner", w.Learner().Name()).
		Str("attr_x", w.Settings().AttrX).
		Str("attr_y", w.Settings().AttrY).
		Bool("boundary", w.Result().HasLine()).
		Str("out", *out).
		Msg("done")
}

func render(s *chart.Scatterplot, path string) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create '%s': %w", path, err)
	}
	defer f.Close()
	return s.Render(f, format)
}

func writeOptions(s *chart.Scatterplot, path string) error {
	b, err := json.MarshalIndent(s.Options(), "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal options: %w", err)
	}
	return os.WriteFile(path, b, 0644)
}
