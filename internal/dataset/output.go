package dataset

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/lukaszgryglicki/commedia/internal/config"
	"github.com/lukaszgryglicki/commedia/internal/imageio"
)

// frameRe matches image names written by any format.
var frameRe = regexp.MustCompile(`^(\d{5,})\.(bmp|png|pb)$`)

func frameName(i int, f config.Format) string {
	return fmt.Sprintf("%05d.%s", i, f.Ext())
}

func imagePath(p config.OutputPath, name string) string {
	return filepath.Join(p.Dir, name)
}

// prepareDir applies the path policy and returns the first image index.
// Replace deletes earlier frames but leaves other files alone; Append keeps
// them and continues after the highest index.
func prepareDir(fs afero.Fs, p config.OutputPath) (int, error) {
	if err := fs.MkdirAll(p.Dir, 0o755); err != nil {
		return 0, errors.Wrapf(err, "cannot create output directory %s", p.Dir)
	}
	entries, err := afero.ReadDir(fs, p.Dir)
	if err != nil {
		return 0, errors.Wrapf(err, "cannot read output directory %s", p.Dir)
	}
	next := 0
	for _, e := range entries {
		m := frameRe.FindStringSubmatch(e.Name())
		if e.IsDir() || m == nil {
			continue
		}
		if p.Policy == config.Replace {
			path := filepath.Join(p.Dir, e.Name())
			if err := fs.Remove(path); err != nil {
				return 0, errors.Wrapf(err, "cannot remove %s", path)
			}
			continue
		}
		if i, err := strconv.Atoi(m[1]); err == nil && i >= next {
			next = i + 1
		}
	}
	return next, nil
}

func openCSV(fs afero.Fs, path string, policy config.PathPolicy) (afero.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "cannot create directory for %s", path)
		}
	}
	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if policy == config.Append {
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	f, err := fs.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open CSV file %s", path)
	}
	return f, nil
}

type countingWriter struct {
	w io.Writer
	n uint64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += uint64(n)
	return n, err
}

// writeImage encodes img to path and returns the bytes written.
func writeImage(fs afero.Fs, path string, format config.Format, img *image.NRGBA) (uint64, error) {
	f, err := fs.Create(path)
	if err != nil {
		return 0, errors.Wrapf(err, "cannot create %s", path)
	}
	cw := &countingWriter{w: f}
	if err := imageio.Encode(format, cw, img); err != nil {
		f.Close()
		return 0, errors.Wrapf(err, "cannot encode %s", path)
	}
	if err := f.Close(); err != nil {
		return 0, errors.Wrapf(err, "cannot close %s", path)
	}
	return cw.n, nil
}
