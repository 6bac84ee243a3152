// Package dataset drives generation: for every session it prepares the output
// directory, samples instances, renders and stores each image and appends its
// annotation row.
package dataset

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/lukaszgryglicki/commedia/internal/annotate"
	"github.com/lukaszgryglicki/commedia/internal/config"
	"github.com/lukaszgryglicki/commedia/internal/geom"
	"github.com/lukaszgryglicki/commedia/internal/imageio"
	"github.com/lukaszgryglicki/commedia/internal/sampler"
)

// RendererFactory builds a renderer for one session's output size.
type RendererFactory func(out geom.Size) sampler.Renderer

type Options struct {
	Fs                 afero.Fs
	Renderer           RendererFactory
	Seed               uint64 // 0 seeds from the clock
	MaxFrustumTries    int
	MaxVisibilityTries int
	Logger             *zap.Logger
}

type Generator struct {
	fs       afero.Fs
	renderer RendererFactory
	seed     uint64
	limits   [2]int
	log      *zap.Logger
}

// SessionReport summarizes one finished session.
type SessionReport struct {
	Name   string
	First  int // index of the first image written
	Images int
	Bytes  uint64
	Stats  sampler.Stats
}

func New(opts Options) *Generator {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Generator{
		fs:       opts.Fs,
		renderer: opts.Renderer,
		seed:     opts.Seed,
		limits:   [2]int{opts.MaxFrustumTries, opts.MaxVisibilityTries},
		log:      opts.Logger.Named("dataset"),
	}
}

// Run processes sessions in order. The first error aborts the run; ctx is
// checked between instances.
func (g *Generator) Run(ctx context.Context, sessions []*config.Session) ([]SessionReport, error) {
	if g.renderer == nil {
		return nil, errors.New("no renderer configured")
	}
	seed := g.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	log := g.log.With(zap.String("run", uuid.NewString()))
	log.Info("Starting run", zap.Int("sessions", len(sessions)), zap.Uint64("seed", seed))

	reports := make([]SessionReport, 0, len(sessions))
	for _, s := range sessions {
		rep, err := g.runSession(ctx, log.With(zap.String("session", s.Name)), rng, s)
		if err != nil {
			return reports, errors.Wrapf(err, "session %s", s.Name)
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func (g *Generator) runSession(ctx context.Context, log *zap.Logger, rng *rand.Rand, s *config.Session) (SessionReport, error) {
	rep := SessionReport{Name: s.Name}
	log.Info("Generating", zap.Int("count", s.Count), zap.Stringer("style", s.Style),
		zap.Stringer("format", s.Format), zap.Stringer("path", s.Path))
	if s.Style.Kind == config.Moving || s.Style.Kind == config.MovingDepth {
		log.Warn("Moving styles are rendered as single frames")
	}

	var backgrounds []sampler.Option
	if s.Background.Kind == config.BackgroundImage {
		log.Info("Loading backgrounds", zap.String("dir", s.Background.Dir))
		imgs, err := imageio.LoadBackgrounds(g.fs, s.Background.Dir)
		if err != nil {
			return rep, err
		}
		backgrounds = append(backgrounds, sampler.WithBackgrounds(imgs))
	}

	first, err := prepareDir(g.fs, s.Path)
	if err != nil {
		return rep, err
	}
	rep.First = first

	csvFile, err := openCSV(g.fs, s.CSV, s.Path.Policy)
	if err != nil {
		return rep, err
	}
	defer func() {
		if csvFile != nil {
			_ = csvFile.Close()
		}
	}()
	rows := annotate.NewWriter(csvFile)

	r := g.renderer(s.Size)
	smp := sampler.New(r, append(backgrounds,
		sampler.WithLimits(g.limits[0], g.limits[1]),
		sampler.WithLogger(log.Named("sampler")))...)

	started := time.Now()
	for i := 0; i < s.Count; i++ {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		name := frameName(first+i, s.Format)
		n, err := g.instance(smp, r, rng, s, name, rows)
		if err != nil {
			return rep, err
		}
		rep.Images++
		rep.Bytes += n
		log.Debug("Instance", zap.String("image", name), zap.Int("n", i+1), zap.Int("of", s.Count))
	}
	if err := rows.Flush(); err != nil {
		return rep, errors.Wrapf(err, "cannot write %s", s.CSV)
	}
	f := csvFile
	csvFile = nil
	if err := f.Close(); err != nil {
		return rep, errors.Wrapf(err, "cannot close %s", s.CSV)
	}
	rep.Stats = smp.Stats()

	log.Info("Session done",
		zap.Int("images", rep.Images),
		zap.String("size", humanize.Bytes(rep.Bytes)),
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("outside_frustum", rep.Stats.OutsideFrustum),
		zap.Int("invisible", rep.Stats.Invisible))
	logProjection(log, s.Projection)
	return rep, nil
}

// instance samples, renders and stores one image plus its CSV row.
func (g *Generator) instance(smp *sampler.Sampler, r sampler.Renderer, rng *rand.Rand, s *config.Session, name string, rows *annotate.Writer) (uint64, error) {
	inst, err := smp.Sample(s, rng)
	if err != nil {
		return 0, err
	}
	img, err := r.RenderFinal(s.Projection, inst, s.Style)
	if err != nil {
		return 0, errors.Wrap(err, "final render")
	}
	n, err := writeImage(g.fs, imagePath(s.Path, name), s.Format, img)
	if err != nil {
		return 0, err
	}
	ndc, screen := annotate.Project(s.Projection, inst.HeadPos, s.Size)
	if err := rows.Write(annotate.Row{Name: name, Instance: inst, NDC: ndc, Screen: screen}); err != nil {
		return 0, errors.Wrapf(err, "cannot write %s", s.CSV)
	}
	return n, nil
}

func logProjection(log *zap.Logger, P geom.Mat4) {
	rows := make([]string, 4)
	for i, r := range P.M {
		rows[i] = fmt.Sprintf("%10.7f %10.7f %10.7f %10.7f", r[0], r[1], r[2], r[3])
	}
	log.Info("Projection matrix", zap.Strings("rows", rows))
}
