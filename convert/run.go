// Package convert drives pagination of deck files: it locates deck JSON in
// files, directories and zip bundles, runs each deck through the layout
// engine and writes the paginated result for the renderer.
package convert

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"deckfit/archive"
	"deckfit/deck"
	"deckfit/deck/text"
	"deckfit/layout"
	"deckfit/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("paginate")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	lang, err := language.Parse(env.Cfg.Document.Language)
	if err != nil {
		log.Warn("Unable to parse configured language, assuming English", zap.String("language", env.Cfg.Document.Language), zap.Error(err))
		lang = language.English
	}
	engine := layout.New(env.Cfg.Pagination, text.NewSplitter(lang, log), log)

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, engine, src, dst, env, log)
}

// process determines the input type (directory, zip bundle, or single deck
// file) and processes accordingly.
func process(ctx context.Context, engine *layout.Engine, src, dst string, env *state.LocalEnv, log *zap.Logger) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}

	switch {
	case fi.Mode().IsDir():
		return processDir(ctx, engine, src, dst, env, log)
	case !fi.Mode().IsRegular():
		return fmt.Errorf("unexpected path mode for (%s)", src)
	case isBundleFile(src):
		return processBundle(ctx, engine, src, "", dst, env, log)
	case isDeckFile(src):
		f, err := os.Open(src)
		if err != nil {
			return fmt.Errorf("unable to open file (%s): %w", src, err)
		}
		defer f.Close()
		return processDeck(engine, f, filepath.Base(src), dst, env, log)
	}
	return fmt.Errorf("input was not recognized as deck file or bundle (%s)", src)
}

// processDir walks directory tree finding deck files and bundles and
// processes them in deterministic natural order.
func processDir(ctx context.Context, engine *layout.Engine, dir, dst string, env *state.LocalEnv, log *zap.Logger) error {
	var sources []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if isDeckFile(path) || isBundleFile(path) {
			sources = append(sources, path)
			return nil
		}
		log.Debug("Skipping file, not recognized as deck or bundle", zap.String("file", path))
		return nil
	})
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		log.Debug("Nothing to process", zap.String("dir", dir))
		return nil
	}

	// identical runs must process identical inputs in identical order
	sort.Sort(natural.StringSlice(sources))

	for _, path := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if isBundleFile(path) {
			if err := processBundle(ctx, engine, path, filepath.Dir(rel), dst, env, log); err != nil {
				log.Error("Unable to process bundle", zap.String("file", path), zap.Error(err))
			}
			continue
		}

		f, err := os.Open(path)
		if err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			continue
		}
		if err := processDeck(engine, f, rel, dst, env, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		f.Close()
	}
	return nil
}

// processBundle paginates every deck file inside a zip bundle.
func processBundle(ctx context.Context, engine *layout.Engine, bundle, subdir, dst string, env *state.LocalEnv, log *zap.Logger) error {
	return archive.Walk(bundle, isDeckFile, func(_ string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		r, err := f.Open()
		if err != nil {
			return fmt.Errorf("unable to open bundled deck (%s): %w", f.Name, err)
		}
		defer r.Close()

		src := filepath.Join(subdir, filepath.FromSlash(f.Name))
		if err := processDeck(engine, r, src, dst, env, log); err != nil {
			log.Error("Unable to process bundled deck", zap.String("bundle", bundle), zap.String("deck", f.Name), zap.Error(err))
		}
		return nil
	})
}

// processDeck runs a single deck through the engine and writes the result.
func processDeck(engine *layout.Engine, r io.Reader, src, dst string, env *state.LocalEnv, log *zap.Logger) error {
	d, err := deck.Parse(r)
	if err != nil {
		return err
	}
	d.NormalizeID(log)

	env.Rpt.StoreData(filepath.ToSlash(filepath.Join("decks", src+"_before")), []byte(d.String()))

	slides, adjustments := engine.Paginate(d.Slides)
	out := &deck.Deck{ID: d.ID, Title: d.Title, Slides: slides}

	env.Rpt.StoreData(filepath.ToSlash(filepath.Join("decks", src+"_after")), []byte(out.String()))

	log.Info("Deck paginated",
		zap.String("deck", src),
		zap.Int("slides_in", len(d.Slides)),
		zap.Int("slides_out", len(slides)),
		zap.Int("adjustments", len(adjustments)))

	data, err := out.Marshal()
	if err != nil {
		return err
	}

	path := buildOutputPath(src, dst, env)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil && !env.Overwrite {
		return fmt.Errorf("destination already exists (%s), use overwrite flag", path)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("unable to write paginated deck: %w", err)
	}

	log.Debug("Output written", zap.String("file", path))
	return nil
}

func isDeckFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func isBundleFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zip")
}
