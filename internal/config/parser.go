package config

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/lukaszgryglicki/commedia/internal/geom"
)

// ParseError reports the first problem found in a config file.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Msg) }

// cursor holds the one-line lookahead shared by all grammar functions.
type cursor struct {
	lex  *Lexer
	line Line
	ok   bool
	last int
}

func newCursor(r io.Reader) *cursor {
	c := &cursor{lex: NewLexer(r)}
	c.accept()
	return c
}

func (c *cursor) accept() {
	c.line, c.ok = c.lex.Accept()
	if c.ok {
		c.last = c.line.Number
	}
}

func (c *cursor) errorf(format string, args ...interface{}) error {
	n := c.last
	if c.ok {
		n = c.line.Number
	}
	return &ParseError{Line: n, Msg: fmt.Sprintf(format, args...)}
}

// block runs handle for every line nested under a key at indentation parent.
// The first nested line fixes the block indentation; a shallower line ends the
// block without being consumed. handle must consume the lines it recognizes.
func (c *cursor) block(parent int, expect string, handle func(l Line) error) error {
	if !c.ok || c.line.Indent <= parent {
		return nil
	}
	indent := c.line.Indent
	for c.ok {
		l := c.line
		if l.Indent < indent {
			return nil
		}
		if l.Indent > indent {
			return c.errorf("unexpected indentation, %s expected", expect)
		}
		if err := handle(l); err != nil {
			return err
		}
	}
	return nil
}

// Load reads and parses a config file. Either every session parses or none is returned.
func Load(fs afero.Fs, path string) ([]*Session, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open config file %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads sessions from r.
func Parse(r io.Reader) ([]*Session, error) {
	c := newCursor(r)
	var sessions []*Session
	for c.ok {
		s, err := parseSession(c)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

type sessionKey uint8

const (
	keyPath sessionKey = iota
	keyCSV
	keyCount
	keyStyle
	keyFormat
	keySize
	keyProjection
	keyHead
	keyLeftEye
	keyRightEye
	keyLight
	keyBackground
	keyAmbient
	keySkin
	keySclera
	keyIris
)

var sessionKeys = map[string]sessionKey{
	"path":       keyPath,
	"csv":        keyCSV,
	"count":      keyCount,
	"style":      keyStyle,
	"format":     keyFormat,
	"size":       keySize,
	"projection": keyProjection,
	"head":       keyHead,
	"lefteye":    keyLeftEye,
	"righteye":   keyRightEye,
	"light":      keyLight,
	"background": keyBackground,
	"ambient":    keyAmbient,
	"skin":       keySkin,
	"sclera":     keySclera,
	"iris":       keyIris,
}

func parseSession(c *cursor) (*Session, error) {
	if c.line.Indent != 0 {
		return nil, c.errorf("session should start at first column")
	}
	s := NewSession(c.line.Key)
	c.accept()
	err := c.block(0, "session key", func(l Line) error {
		key, ok := sessionKeys[l.Key]
		if !ok {
			return c.errorf("invalid key %s", l.Key)
		}
		return s.apply(c, key, l)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// apply handles one session key; l is the current line.
func (s *Session) apply(c *cursor, key sessionKey, l Line) error {
	var err error
	switch key {
	case keyPath:
		s.Path, err = parsePath(c, l.Value)
	case keyCSV:
		if l.Value == "" {
			return c.errorf("csv file name expected")
		}
		s.CSV = l.Value
	case keyCount:
		s.Count, err = parseCount(c, l.Value)
	case keyStyle:
		s.Style, err = parseStyle(c, l.Value)
	case keyFormat:
		s.Format, err = parseFormat(c, l.Value)
	case keySize:
		s.Size, err = parseSize(c, l.Value)
	case keyProjection:
		s.Projection, err = parseProjection(c, l.Value)
	case keyBackground:
		return s.parseBackground(c, l)
	case keyHead:
		c.accept()
		return parseHead(c, l.Indent, &s.HeadPos, &s.HeadDir)
	case keyLight:
		c.accept()
		return parseLight(c, l.Indent, &s.LightDir, &s.LightColor)
	case keyLeftEye:
		c.accept()
		return parseYPB(c, l.Indent, &s.LeftEye)
	case keyRightEye:
		c.accept()
		return parseYPB(c, l.Indent, &s.RightEye)
	case keyAmbient:
		c.accept()
		return parseRGB(c, l.Indent, &s.Ambient)
	case keySkin:
		c.accept()
		return parseRGB(c, l.Indent, &s.Skin)
	case keySclera:
		c.accept()
		return parseRGB(c, l.Indent, &s.Sclera)
	case keyIris:
		c.accept()
		return parseRGB(c, l.Indent, &s.Iris)
	}
	if err != nil {
		return err
	}
	c.accept()
	return nil
}

func (s *Session) parseBackground(c *cursor, l Line) error {
	kind, arg := cutWord(l.Value)
	switch {
	case kind == "black" && arg == "":
		s.Background = Background{Kind: BackgroundColor, Color: constRGB(0, 0, 0)}
		c.accept()
		return nil
	case kind == "color" && arg == "":
		s.Background = Background{Kind: BackgroundColor, Color: constRGB(0, 0, 0)}
		c.accept()
		return parseRGB(c, l.Indent, &s.Background.Color)
	case kind == "image" && arg != "":
		s.Background = Background{Kind: BackgroundImage, Dir: arg}
		c.accept()
		return nil
	}
	return c.errorf("expected black, color or image")
}

// parseTriple fills the three distributions keyed by names; unspecified keys keep
// their current value.
func parseTriple(c *cursor, parent int, names [3]string, d *[3]Distribution) error {
	expect := fmt.Sprintf("%s, %s or %s", names[0], names[1], names[2])
	return c.block(parent, expect, func(l Line) error {
		i := -1
		for k, n := range names {
			if l.Key == n {
				i = k
				break
			}
		}
		if i < 0 {
			return c.errorf("%s expected", expect)
		}
		v, err := parseDistribution(c, l.Value)
		if err != nil {
			return err
		}
		d[i] = v
		c.accept()
		return nil
	})
}

func parseXYZ(c *cursor, parent int, p *XYZ) error {
	d := [3]Distribution{p.X, p.Y, p.Z}
	if err := parseTriple(c, parent, [3]string{"x", "y", "z"}, &d); err != nil {
		return err
	}
	*p = XYZ{d[0], d[1], d[2]}
	return nil
}

func parseYPB(c *cursor, parent int, o *YPB) error {
	d := [3]Distribution{o.Y, o.P, o.B}
	if err := parseTriple(c, parent, [3]string{"y", "p", "b"}, &d); err != nil {
		return err
	}
	*o = YPB{d[0], d[1], d[2]}
	return nil
}

func parseRGB(c *cursor, parent int, col *RGB) error {
	d := [3]Distribution{col.R, col.G, col.B}
	if err := parseTriple(c, parent, [3]string{"r", "g", "b"}, &d); err != nil {
		return err
	}
	*col = RGB{d[0], d[1], d[2]}
	return nil
}

type headKey uint8

const (
	headPos headKey = iota
	headDir
)

var headKeys = map[string]headKey{"pos": headPos, "dir": headDir}

func parseHead(c *cursor, parent int, pos *XYZ, dir *YPB) error {
	return c.block(parent, "pos or dir", func(l Line) error {
		key, ok := headKeys[l.Key]
		if !ok {
			return c.errorf("pos or dir expected")
		}
		c.accept()
		switch key {
		case headPos:
			return parseXYZ(c, l.Indent, pos)
		case headDir:
			return parseYPB(c, l.Indent, dir)
		}
		return nil
	})
}

type lightKey uint8

const (
	lightDir lightKey = iota
	lightColor
)

var lightKeys = map[string]lightKey{"dir": lightDir, "color": lightColor}

func parseLight(c *cursor, parent int, dir *YPB, color *RGB) error {
	return c.block(parent, "dir or color", func(l Line) error {
		key, ok := lightKeys[l.Key]
		if !ok {
			return c.errorf("dir or color expected")
		}
		c.accept()
		switch key {
		case lightDir:
			return parseYPB(c, l.Indent, dir)
		case lightColor:
			return parseRGB(c, l.Indent, color)
		}
		return nil
	})
}

func parseDistribution(c *cursor, v string) (Distribution, error) {
	if rest, ok := strings.CutPrefix(v, "normal"); ok {
		params := splitParams(rest)
		if len(params) != 2 {
			return Distribution{}, c.errorf("normal distribution has 2 parameters: avg and stddev")
		}
		mean, err1 := parseReal(params[0])
		stddev, err2 := parseReal(params[1])
		if err1 != nil || err2 != nil {
			return Distribution{}, c.errorf("invalid normal distribution parameters %q", rest)
		}
		if !(stddev >= 0) {
			return Distribution{}, c.errorf("stddev must not be negative or NaN")
		}
		return Normal(mean, stddev), nil
	}
	if x, err := parseReal(v); err == nil {
		return Constant(x), nil
	}
	return Distribution{}, c.errorf("constant or normal distribution expected")
}

func parsePath(c *cursor, v string) (OutputPath, error) {
	policy, dir := cutWord(v)
	switch {
	case policy == "replace" && dir != "":
		return OutputPath{Policy: Replace, Dir: dir}, nil
	case policy == "append" && dir != "":
		return OutputPath{Policy: Append, Dir: dir}, nil
	}
	return OutputPath{}, c.errorf("replace or append expected")
}

func parseCount(c *cursor, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, c.errorf("non-negative count expected, got %q", v)
	}
	return n, nil
}

var styleKinds = map[string]StyleKind{
	"still":        Still,
	"still_depth":  StillDepth,
	"moving":       Moving,
	"moving_depth": MovingDepth,
}

func parseStyle(c *cursor, v string) (Style, error) {
	name, arg := cutWord(v)
	kind, ok := styleKinds[name]
	if !ok {
		return Style{}, c.errorf("invalid session style (should be still, still_depth, moving or moving_depth)")
	}
	st := Style{Kind: kind}
	if !st.HasDepth() {
		if arg != "" {
			return Style{}, c.errorf("style %s takes no parameters", name)
		}
		return st, nil
	}
	st.Scale, st.Offset = 1, 0
	if arg == "" {
		return st, nil
	}
	params := splitParams(arg)
	if len(params) != 2 {
		return Style{}, c.errorf("depth style has 2 parameters: scale and offset")
	}
	var err1, err2 error
	st.Scale, err1 = parseReal(params[0])
	st.Offset, err2 = parseReal(params[1])
	if err1 != nil || err2 != nil {
		return Style{}, c.errorf("invalid depth parameters %q", arg)
	}
	return st, nil
}

var formats = map[string]Format{"bmp": BMP, "png": PNG, "protobuf": ProtoBuf}

func parseFormat(c *cursor, v string) (Format, error) {
	f, ok := formats[v]
	if !ok {
		return 0, c.errorf("invalid session format (should be bmp, png or protobuf)")
	}
	return f, nil
}

func parseSize(c *cursor, v string) (geom.Size, error) {
	params := splitParams(v)
	if len(params) != 2 {
		return geom.Size{}, c.errorf("size has 2 parameters: width and height")
	}
	w, err1 := strconv.Atoi(params[0])
	h, err2 := strconv.Atoi(params[1])
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return geom.Size{}, c.errorf("positive width and height expected, got %q", v)
	}
	return geom.Size{W: w, H: h}, nil
}

func parseProjection(c *cursor, v string) (geom.Mat4, error) {
	rest, ok := strings.CutPrefix(v, "perspective")
	if !ok {
		return geom.Mat4{}, c.errorf("only perspective supported")
	}
	params := splitParams(rest)
	if len(params) != 4 {
		return geom.Mat4{}, c.errorf("perspective has 4 parameters: fovy, aspect, near and far")
	}
	fovy, err1 := parseReal(params[0])
	aspect, err2 := parseRatio(params[1])
	near, err3 := parseReal(params[2])
	far, err4 := parseReal(params[3])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return geom.Mat4{}, c.errorf("invalid perspective parameters %q", rest)
	}
	if near == far {
		return geom.Mat4{}, c.errorf("perspective near and far must differ")
	}
	return geom.Perspective(fovy, aspect, near, far), nil
}

func parseReal(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// parseRatio accepts a float or num/den.
func parseRatio(s string) (float64, error) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return parseReal(s)
	}
	n, err := parseReal(num)
	if err != nil {
		return 0, err
	}
	d, err := parseReal(den)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, errors.New("zero denominator")
	}
	return n / d, nil
}

func splitParams(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// cutWord splits v into its first word and the trimmed remainder.
func cutWord(v string) (string, string) {
	word, rest, _ := strings.Cut(strings.TrimSpace(v), " ")
	return word, strings.TrimSpace(rest)
}
