// Package sampler draws concrete scene instances from a session and rejects
// draws whose head is outside the view or whose face is not visible.
package sampler

import (
	"fmt"
	"image"
	"math/rand/v2"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lukaszgryglicki/commedia/internal/config"
	"github.com/lukaszgryglicki/commedia/internal/geom"
)

const (
	DefaultMaxFrustumTries    = 100_000
	DefaultMaxVisibilityTries = 10_000
)

var (
	ErrFrustum      = errors.New("head position never inside the view frustum")
	ErrInvisible    = errors.New("face never visible in the diagnostic pass")
	ErrNoBackground = errors.New("no background image covers the framebuffer")
)

// SamplingError is returned when a rejection loop hits its cap.
type SamplingError struct {
	Session string
	Stage   error // ErrFrustum or ErrInvisible
	Tries   int
}

func (e *SamplingError) Error() string {
	return fmt.Sprintf("session %s: %v after %d tries", e.Session, e.Stage, e.Tries)
}

func (e *SamplingError) Unwrap() error { return e.Stage }

// Renderer is the drawing collaborator. RenderDiagnostic returns a framebuffer
// sized image, RenderFinal returns it downsampled to the output size.
type Renderer interface {
	Framebuffer() geom.Size
	RenderDiagnostic(P geom.Mat4, inst *Instance) (*image.NRGBA, error)
	RenderFinal(P geom.Mat4, inst *Instance, style config.Style) (*image.NRGBA, error)
}

// Stats counts rejected draws since the sampler was created.
type Stats struct {
	Accepted       int
	OutsideFrustum int
	Invisible      int
}

type Sampler struct {
	renderer      Renderer
	backgrounds   []image.Image
	maxFrustum    int
	maxVisibility int
	log           *zap.Logger
	stats         Stats
}

type Option func(*Sampler)

// WithBackgrounds sets the decoded images used by image backed sessions.
func WithBackgrounds(imgs []image.Image) Option {
	return func(s *Sampler) { s.backgrounds = imgs }
}

// WithLimits caps both rejection loops; 0 means unbounded.
func WithLimits(frustum, visibility int) Option {
	return func(s *Sampler) {
		s.maxFrustum = frustum
		s.maxVisibility = visibility
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Sampler) { s.log = l }
}

func New(r Renderer, opts ...Option) *Sampler {
	s := &Sampler{
		renderer:      r,
		maxFrustum:    DefaultMaxFrustumTries,
		maxVisibility: DefaultMaxVisibilityTries,
		log:           zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Sampler) Stats() Stats { return s.stats }

// Sample draws an instance whose head is inside the frustum and whose face shows
// at least one pixel in the diagnostic pass. Every outer try renders once.
func (s *Sampler) Sample(sess *config.Session, rng *rand.Rand) (*Instance, error) {
	inst, err := draw(sess, rng, func() (Background, error) { return s.background(sess, rng) })
	if err != nil {
		return nil, err
	}
	for tries := 0; ; tries++ {
		if s.maxVisibility > 0 && tries >= s.maxVisibility {
			return nil, &SamplingError{Session: sess.Name, Stage: ErrInvisible, Tries: tries}
		}
		if err := s.placeHead(sess, rng, inst); err != nil {
			return nil, err
		}
		img, err := s.renderer.RenderDiagnostic(sess.Projection, inst)
		if err != nil {
			return nil, errors.Wrap(err, "diagnostic render")
		}
		if FaceVisible(img) {
			s.stats.Accepted++
			if tries > 0 {
				s.log.Debug("Face visible after retries", zap.Int("tries", tries+1))
			}
			return inst, nil
		}
		s.stats.Invisible++
	}
}

// placeHead redraws the head position until it projects inside the frustum.
func (s *Sampler) placeHead(sess *config.Session, rng *rand.Rand, inst *Instance) error {
	for tries := 0; s.maxFrustum <= 0 || tries < s.maxFrustum; tries++ {
		p := sess.HeadPos.Sample(rng)
		if InFrustum(sess.Projection, p) {
			inst.HeadPos = p
			return nil
		}
		s.stats.OutsideFrustum++
	}
	return &SamplingError{Session: sess.Name, Stage: ErrFrustum, Tries: s.maxFrustum}
}

func (s *Sampler) background(sess *config.Session, rng *rand.Rand) (Background, error) {
	if sess.Background.Kind != config.BackgroundImage {
		return Background{Color: sess.Background.Color.Sample(rng)}, nil
	}
	fb := s.renderer.Framebuffer()
	usable := false
	for _, img := range s.backgrounds {
		if sizeOf(img).Covers(fb) {
			usable = true
			break
		}
	}
	if !usable {
		return Background{}, errors.Wrapf(ErrNoBackground, "session %s, %d images in %s, framebuffer %dx%d",
			sess.Name, len(s.backgrounds), sess.Background.Dir, fb.W, fb.H)
	}
	src := s.backgrounds[rng.IntN(len(s.backgrounds))]
	for !sizeOf(src).Covers(fb) {
		src = s.backgrounds[rng.IntN(len(s.backgrounds))]
	}
	space := sizeOf(src)
	ox := int(rng.Float64() * float64(space.W-fb.W))
	oy := int(rng.Float64() * float64(space.H-fb.H))
	at := src.Bounds().Min.Add(image.Pt(ox, oy))
	return Background{Image: CropFlipped(src, image.Rectangle{Min: at, Max: at.Add(image.Pt(fb.W, fb.H))})}, nil
}

func sizeOf(img image.Image) geom.Size {
	b := img.Bounds()
	return geom.Size{W: b.Dx(), H: b.Dy()}
}
