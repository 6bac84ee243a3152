package imageio

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// LoadBackgrounds decodes every regular file in dir, in name order.
// Any unreadable or undecodable file aborts the load.
func LoadBackgrounds(fs afero.Fs, dir string) ([]image.Image, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read backgrounds directory %s", dir)
	}
	var imgs []image.Image
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		img, err := decodeFile(fs, path)
		if err != nil {
			return nil, err
		}
		imgs = append(imgs, img)
	}
	if len(imgs) == 0 {
		return nil, errors.Errorf("no background images in %s", dir)
	}
	return imgs, nil
}

func decodeFile(fs afero.Fs, path string) (image.Image, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open background %s", path)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot decode background %s", path)
	}
	return img, nil
}
