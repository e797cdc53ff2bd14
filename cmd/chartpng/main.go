// Command chartpng renders a JSON series to a PNG file without a window.
//
//	chartpng -in registrations.json -out registrations.png -kind bar -color green
//
// The input is either a list of {"_id": ..., "count": ...} items or an
// analytics object, in which case -key picks the series.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/roffe/admindash/pkg/chart"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

type options struct {
	in, out string
	kind    string
	color   string
	key     string
	width   int
	height  int
	padding float64
}

func parseFlags(args []string) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("chartpng", flag.ContinueOnError)
	fs.StringVar(&o.in, "in", "-", "input json file, - for stdin")
	fs.StringVar(&o.out, "out", "chart.png", "output png file, - for stdout")
	fs.StringVar(&o.kind, "kind", "line", "chart type, line or bar")
	fs.StringVar(&o.color, "color", "blue", "color token: blue, green, purple, yellow or red")
	fs.StringVar(&o.key, "key", "user_registrations", "series to use when the input is an object")
	fs.IntVar(&o.width, "w", 600, "width in pixels")
	fs.IntVar(&o.height, "h", 300, "height in pixels")
	fs.Float64Var(&o.padding, "padding", chart.DefaultPadding, "padding on every side")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.width <= 0 || o.height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", o.width, o.height)
	}
	return o, nil
}

// decodeSeries accepts a bare item list or an object holding one under key.
func decodeSeries(r io.Reader, key string) (chart.Series, error) {
	var raw json.RawMessage
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode input: %w", err)
	}
	var items []map[string]any
	if err := unmarshal(raw, &items); err == nil {
		return chart.Normalize(items), nil
	}
	var obj map[string]json.RawMessage
	if err := unmarshal(raw, &obj); err != nil {
		return nil, errors.New("input must be a list of items or an object")
	}
	v, ok := obj[key]
	if !ok {
		return nil, fmt.Errorf("input has no %q series", key)
	}
	if err := unmarshal(v, &items); err != nil {
		return nil, fmt.Errorf("series %q: %w", key, err)
	}
	return chart.Normalize(items), nil
}

func unmarshal(b []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return dec.Decode(v)
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}

	in := stdin
	if o.in != "-" {
		f, err := os.Open(o.in)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	series, err := decodeSeries(in, o.key)
	if err != nil {
		return err
	}
	if series.Len() == 0 {
		log.Println("no data, writing an empty image")
	}

	r := chart.NewRaster(o.width, o.height)
	chart.Render(r, series, chart.Config{
		Kind:    chart.ParseKind(o.kind),
		Color:   chart.ColorToken(o.color),
		Padding: chart.Uniform(o.padding),
	})

	if o.out == "-" {
		return r.EncodePNG(stdout)
	}
	f, err := os.Create(o.out)
	if err != nil {
		return err
	}
	if err := r.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %s (%dx%d, %d samples)", o.out, o.width, o.height, series.Len())
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}
