package annotate

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Record is one annotation row read back from disk. Field order follows the
// column order of Writer.
type Record struct {
	Name       string  `csv:"name"`
	HeadX      float64 `csv:"hx"`
	HeadY      float64 `csv:"hy"`
	HeadZ      float64 `csv:"hz"`
	Yaw        float64 `csv:"yaw"`
	Pitch      float64 `csv:"pitch"`
	NDCX       float64 `csv:"nx"`
	NDCY       float64 `csv:"ny"`
	NDCZ       float64 `csv:"nz"`
	ScreenX    float64 `csv:"sx"`
	ScreenY    float64 `csv:"sy"`
	LightYaw   float64 `csv:"ly"`
	LightPitch float64 `csv:"lp"`
	LightR     float64 `csv:"lr"`
	LightG     float64 `csv:"lg"`
	LightB     float64 `csv:"lb"`
	AmbientR   float64 `csv:"ar"`
	AmbientG   float64 `csv:"ag"`
	AmbientB   float64 `csv:"ab"`
	SkinR      float64 `csv:"sr"`
	SkinG      float64 `csv:"sg"`
	SkinB      float64 `csv:"sb"`
}

// ReadRecords parses a headerless annotation stream. An empty stream yields no records.
func ReadRecords(r io.Reader) ([]*Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read annotations")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	cr := csv.NewReader(bytes.NewReader(data))
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = 22
	var out []*Record
	if err := gocsv.UnmarshalCSVWithoutHeaders(cr, &out); err != nil {
		return nil, errors.Wrap(err, "cannot parse annotations")
	}
	return out, nil
}

func LoadRecords(fs afero.Fs, path string) ([]*Record, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open annotations %s", path)
	}
	defer f.Close()
	recs, err := ReadRecords(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return recs, nil
}

// Column returns the named column (by csv tag) of every record.
func Column(recs []*Record, name string) ([]float64, bool) {
	get, ok := columns[name]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(recs))
	for i, r := range recs {
		out[i] = get(r)
	}
	return out, true
}

// ColumnNames lists the numeric columns in file order.
var ColumnNames = []string{
	"hx", "hy", "hz", "yaw", "pitch", "nx", "ny", "nz", "sx", "sy",
	"ly", "lp", "lr", "lg", "lb", "ar", "ag", "ab", "sr", "sg", "sb",
}

var columns = map[string]func(*Record) float64{
	"hx":    func(r *Record) float64 { return r.HeadX },
	"hy":    func(r *Record) float64 { return r.HeadY },
	"hz":    func(r *Record) float64 { return r.HeadZ },
	"yaw":   func(r *Record) float64 { return r.Yaw },
	"pitch": func(r *Record) float64 { return r.Pitch },
	"nx":    func(r *Record) float64 { return r.NDCX },
	"ny":    func(r *Record) float64 { return r.NDCY },
	"nz":    func(r *Record) float64 { return r.NDCZ },
	"sx":    func(r *Record) float64 { return r.ScreenX },
	"sy":    func(r *Record) float64 { return r.ScreenY },
	"ly":    func(r *Record) float64 { return r.LightYaw },
	"lp":    func(r *Record) float64 { return r.LightPitch },
	"lr":    func(r *Record) float64 { return r.LightR },
	"lg":    func(r *Record) float64 { return r.LightG },
	"lb":    func(r *Record) float64 { return r.LightB },
	"ar":    func(r *Record) float64 { return r.AmbientR },
	"ag":    func(r *Record) float64 { return r.AmbientG },
	"ab":    func(r *Record) float64 { return r.AmbientB },
	"sr":    func(r *Record) float64 { return r.SkinR },
	"sg":    func(r *Record) float64 { return r.SkinG },
	"sb":    func(r *Record) float64 { return r.SkinB },
}
