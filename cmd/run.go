package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/tango/internal/app"
	"github.com/abhisek/tango/internal/config"
	"github.com/abhisek/tango/internal/i18n"
	"github.com/abhisek/tango/internal/logging"
	"github.com/abhisek/tango/internal/questiongen"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/store"
	"github.com/abhisek/tango/internal/vocab"
	"github.com/abhisek/tango/internal/wrongwords"
)

// runtime is everything a command needs. Close releases it.
type runtime struct {
	cfg   config.Config
	log   *logrus.Logger
	store *store.Store
	env   *screen.Env

	logCloser io.Closer
}

func (r *runtime) Close() error {
	return errors.Join(r.store.Close(), r.logCloser.Close())
}

// Lessons returns the loaded lessons, or the load error.
func (r *runtime) Lessons() (vocab.Lessons, error) {
	if r.env.LoadErr != nil {
		return nil, r.env.LoadErr
	}
	return r.env.Lessons, nil
}

// loadConfig reads flags, environment and the config file.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return config.Config{}, err
	}
	file, _ := cmd.Flags().GetString("config")
	return config.Load(v, file)
}

// openRuntime loads configuration and opens the store, catalogs,
// vocabulary and notebook. With tui set, logs go to a file so they do not
// corrupt the alternate screen. A vocabulary load failure is kept in
// env.LoadErr rather than returned.
func openRuntime(cmd *cobra.Command, tui bool) (*runtime, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	dataDir, err := store.DataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	if tui && cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(dataDir, "tango.log")
	}
	log, logCloser, err := logging.NewLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	level, lang := cfg.VocabLevel(), cfg.VocabLanguage()
	log.WithFields(logrus.Fields{"level": level, "lang": lang, "db": dbPath, "data": cfg.Data.Source}).Debug("starting")

	loader := i18n.NewLoader(nil, log)
	if cfg.Data.Locales != "" {
		loader = i18n.DirLoader(cfg.Data.Locales, log)
	}
	cat, err := loader.Load(lang)
	if err != nil {
		log.WithError(err).Warn("translations unavailable")
	}

	src := vocab.NewSource(cfg.Data.Source, st.KV(), vocab.WithLogger(log))
	lessons, loadErr := src.Fetch(ctx, level)
	if loadErr != nil {
		log.WithError(loadErr).Error("load vocabulary")
	}

	gcfg := questiongen.DefaultConfig()
	gcfg.Language = lang

	env := &screen.Env{
		Ctx:     ctx,
		Level:   level,
		Lang:    lang,
		T:       cat,
		Lessons: lessons,
		LoadErr: loadErr,
		Notebook: wrongwords.New(st.KV(), level,
			wrongwords.WithLanguage(lang),
			wrongwords.WithLogger(log)),
		Gen: questiongen.New(gcfg, nil),
		Settings: &screen.Settings{
			Mode:    cfg.QuizMode(),
			Count:   cfg.Quiz.Count,
			Lessons: []string{vocab.AllLessons},
		},
		CorrectDelay:   cfg.Quiz.CorrectDelay,
		IncorrectDelay: cfg.Quiz.IncorrectDelay,
		ExportDir:      dataDir,
		Log:            log,
		Now:            time.Now,
	}
	return &runtime{cfg: cfg, log: log, store: st, env: env, logCloser: logCloser}, nil
}

// resolveDBPath returns the configured database path (--db flag, then
// TANGO_DB, then the config file), or the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// runApp launches the TUI. A non-nil start request opens a quiz directly.
func runApp(cmd *cobra.Command, start func(*screen.Env) (*screen.QuizRequest, error)) error {
	rt, err := openRuntime(cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	var req *screen.QuizRequest
	if start != nil {
		if req, err = start(rt.env); err != nil {
			return err
		}
	}
	if err := app.Run(rt.env, req); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
