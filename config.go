package summary

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadOpts decodes Opts from YAML. Unknown fields are rejected.
//
//	name: request_duration_seconds
//	help: Request duration.
//	label_names: [method]
//	quantiles: [0.5, 0.9, 0.99]
//	reservoir_size: 2048
func LoadOpts(r io.Reader) (Opts, error) {
	var o Opts
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil {
		if errors.Is(err, io.EOF) {
			return Opts{}, nil
		}
		return Opts{}, errors.Wrap(err, "decode summary options")
	}
	return o, nil
}

// LoadOptsFile reads Opts from the YAML file at path.
func LoadOptsFile(path string) (Opts, error) {
	f, err := os.Open(path)
	if err != nil {
		return Opts{}, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return LoadOpts(f)
}
