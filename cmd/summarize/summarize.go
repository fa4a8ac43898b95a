package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/ygrebnov/summary"
	promexport "github.com/ygrebnov/summary/export/prometheus"
)

const defaultName = "observations"

// summarizeCommand observes every number of its input into one Summary.
type summarizeCommand struct {
	configFile    string
	name          string
	help          string
	quantiles     []float64
	reservoirSize int
	strict        bool
	input         string
}

func (cmd *summarizeCommand) register(app *kingpin.Application) {
	app.Flag("config.file", "YAML file with summary options.").StringVar(&cmd.configFile)
	app.Flag("name", "Metric name. Overrides the config file.").StringVar(&cmd.name)
	app.Flag("help.text", "Help text of the metric. Overrides the config file.").StringVar(&cmd.help)
	app.Flag("quantile", "Quantile to report; repeatable. Overrides the config file.").Float64ListVar(&cmd.quantiles)
	app.Flag("reservoir.size", "Number of samples kept for quantile estimation; -1 keeps the configured default.").Default("-1").IntVar(&cmd.reservoirSize)
	app.Flag("strict", "Fail on lines that are not numbers instead of skipping them.").BoolVar(&cmd.strict)
	app.Arg("file", "Input file. Defaults to stdin.").StringVar(&cmd.input)
}

func (cmd *summarizeCommand) opts(logger log.Logger) (summary.Opts, error) {
	var o summary.Opts
	if cmd.configFile != "" {
		var err error
		if o, err = summary.LoadOptsFile(cmd.configFile); err != nil {
			return summary.Opts{}, err
		}
	}
	if cmd.name != "" {
		o.Name = cmd.name
	}
	if o.Name == "" {
		o.Name = defaultName
	}
	if cmd.help != "" {
		o.Help = cmd.help
	}
	if len(cmd.quantiles) > 0 {
		o.Quantiles = cmd.quantiles
	}
	if cmd.reservoirSize >= 0 {
		n := cmd.reservoirSize
		o.ReservoirSize = &n
	}
	if len(o.LabelNames) > 0 {
		return summary.Opts{}, errors.Errorf("label names %v are not supported by summarize", o.LabelNames)
	}
	o.Logger = logger
	return o, nil
}

func (cmd *summarizeCommand) run(in io.Reader, out io.Writer, logger log.Logger) error {
	o, err := cmd.opts(logger)
	if err != nil {
		return err
	}
	s, err := summary.NewFromOpts(o)
	if err != nil {
		return errors.Wrap(err, "build summary")
	}

	n, err := cmd.observe(s, in, logger)
	if err != nil {
		return err
	}
	level.Debug(logger).Log("msg", "observed input", "values", n, "summary", s.Name())

	reg := prom.NewRegistry()
	if err := reg.Register(promexport.MustNewCollector(s)); err != nil {
		return errors.Wrap(err, "register collector")
	}
	return promexport.WriteText(out, reg)
}

// observe feeds every numeric line of in into s and returns how many values
// were observed. Blank lines and lines starting with '#' are skipped.
func (cmd *summarizeCommand) observe(s *summary.Summary, in io.Reader, logger log.Logger) (int, error) {
	var (
		n       int
		lineNum int
	)
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			if cmd.strict {
				return n, errors.Wrapf(err, "line %d", lineNum)
			}
			level.Warn(logger).Log("msg", "skipping malformed line", "line", lineNum, "err", err)
			continue
		}
		s.Observe(v)
		n++
	}
	return n, errors.Wrap(sc.Err(), "read input")
}
