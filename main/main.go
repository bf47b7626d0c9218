package main

import (
	goflag "flag"
	"fmt"
	"strings"

	"github.com/soniakeys/exit"
	"github.com/spf13/pflag"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
	"k8s.io/klog"

	"github.com/geodesynet/gravann/density"
	"github.com/geodesynet/gravann/device"
	"github.com/geodesynet/gravann/geom"
	"github.com/geodesynet/gravann/integrator"
	"github.com/geodesynet/gravann/io"
	"github.com/geodesynet/gravann/mascon"
	"github.com/geodesynet/gravann/rand"
	"github.com/geodesynet/gravann/sample"
	"github.com/geodesynet/gravann/validation"
)

func main() {
	defer exit.Handler()
	defer klog.Flush()

	var (
		label, integrate, exampleConfig string
		threads                         int
	)
	vars := map[string]*string{
		"Label":         &label,
		"Integrate":     &integrate,
		"ExampleConfig": &exampleConfig,
	}

	pflag.StringVar(
		&label, "Label", "",
		"Configuration file for [Label] mode.",
	)
	pflag.StringVar(
		&integrate, "Integrate", "",
		"Configuration file for [Integrate] mode.",
	)
	pflag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. Accepted arguments are 'Label', "+
			"'Integrate', and 'Sampler'.",
	)
	pflag.IntVar(
		&threads, "Threads", 0,
		"Number of worker goroutines. Default is one per core.",
	)

	klog.InitFlags(nil)
	pflag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	pflag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		exit.Log(err)
	}

	dev := device.AllCores()
	if threads > 0 {
		dev = device.Device{Workers: threads}
	}

	switch modeName {
	case "Label":
		wrap, err := io.ReadLabelConfig(label)
		if err != nil {
			exit.Log(err)
		}
		setLogFile(&wrap.Label.SharedConfig)
		if err := labelMain(wrap, dev); err != nil {
			exit.Log(err)
		}

	case "Integrate":
		wrap, err := io.ReadIntegrateConfig(integrate)
		if err != nil {
			exit.Log(err)
		}
		setLogFile(&wrap.Integrate.SharedConfig)
		if err := integrateMain(wrap, dev); err != nil {
			exit.Log(err)
		}

	case "ExampleConfig":
		switch exampleConfig {
		case "Label":
			fmt.Println(io.ExampleLabelFile)
		case "Integrate":
			fmt.Println(io.ExampleIntegrateFile)
		case "Sampler":
			fmt.Println(io.ExampleSamplerFile)
		default:
			exit.Log(
				"Unrecognized 'ExampleConfig' argument. Only recognized " +
					"arguments are 'Label', 'Integrate', and 'Sampler'.",
			)
		}
	default:
		panic("Impossible")
	}
}

func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but gravann "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

func setLogFile(con *io.SharedConfig) {
	if !con.ValidLogFile() {
		return
	}
	goflag.Set("logtostderr", "false")
	goflag.Set("log_file", con.LogFile)
}

func generator(con *io.SharedConfig) *rand.Generator {
	if con.Seed == 0 {
		return rand.NewTimeSeed()
	}
	return rand.New(con.Seed)
}

func targets(con *io.SamplerConfig, gen *rand.Generator) ([]r3.Vec, error) {
	s, err := sample.New(con.Points, con.Method, con.Params(), gen)
	if err != nil {
		return nil, err
	}
	return s(), nil
}

func labels(
	l mascon.Labeler, k integrator.Kernel, ts []r3.Vec, m *mascon.Model,
) *mat.Dense {
	if k == integrator.Acceleration {
		return l.Acceleration(ts, m)
	}
	return l.Potential(ts, m)
}

func labelMain(wrap *io.LabelWrapper, dev device.Device) error {
	con := &wrap.Label
	gen := generator(&con.SharedConfig)

	m, err := mascon.Read(con.MasconFile)
	if err != nil {
		return err
	}
	klog.Infof("Read %d mascons from '%s', total mass %g.",
		m.Len(), con.MasconFile, m.TotalMass())
	klog.V(1).Infof("Largest nearest-neighbor distance: %g.",
		m.MaxMinDistance(dev))

	ts, err := targets(&wrap.Sampler, gen)
	if err != nil {
		return err
	}

	k := con.Kernel()
	values := labels(mascon.Labeler{Device: dev}, k, ts, m)
	klog.Infof("Labeled %d %s target points with %s.",
		len(ts), wrap.Sampler.Method, k)

	return io.WriteTableFile(
		con.Output, io.ColumnNames(k.Components()), ts, values,
	)
}

func integrateMain(wrap *io.IntegrateWrapper, dev device.Device) error {
	con := &wrap.Integrate
	gen := generator(&con.SharedConfig)

	field, err := density.FieldByName(con.Field, con.FieldSize, con.Rho)
	if err != nil {
		return err
	}
	enc, err := density.EncodingByName(con.Encoding)
	if err != nil {
		return err
	}
	method, err := integrator.MethodByName(con.Method)
	if err != nil {
		return err
	}

	opts := []integrator.Option{
		integrator.WithNoise(con.Noise),
		integrator.WithGenerator(gen),
		integrator.WithDevice(dev),
	}
	grid, err := integrationGrid(con, gen)
	if err != nil {
		return err
	} else if grid != nil {
		opts = append(opts, integrator.WithGrid(grid.Points, grid.H))
	}

	in, err := integrator.New(method, con.Kernel(), opts...)
	if err != nil {
		return err
	}

	ts, err := targets(&wrap.Sampler, gen)
	if err != nil {
		return err
	}

	values, err := in.Integrate(ts, field, enc, con.Samples)
	if err != nil {
		return err
	}
	klog.Infof("Integrated %s with %s over %d target points.",
		in.Kernel, in.Method, len(ts))

	if err := report(con, field, dev, ts, values); err != nil {
		return err
	}

	return io.WriteTableFile(
		con.Output, io.ColumnNames(in.Kernel.Components()), ts, values,
	)
}

// integrationGrid reads the grid named by GridFile or, if SaveGridFile is
// set, builds a new one and writes it out. It returns nil if neither is
// set.
func integrationGrid(
	con *io.IntegrateConfig, gen *rand.Generator,
) (*geom.IntegrationGrid, error) {
	if con.ValidGridFile() {
		grid, err := io.ReadGrid(con.GridFile)
		if err != nil {
			return nil, err
		}
		klog.V(1).Infof("Read %d^3 grid from '%s'.", grid.N, con.GridFile)
		return grid, nil
	} else if !con.ValidSaveGridFile() {
		return nil, nil
	}

	grid, err := geom.NewIntegrationGrid(con.Samples, con.Noise, gen)
	if err != nil {
		return nil, err
	}
	if err := io.WriteGrid(con.SaveGridFile, grid, con.Noise); err != nil {
		return nil, err
	}
	klog.V(1).Infof("Wrote %d^3 grid to '%s'.", grid.N, con.SaveGridFile)
	return grid, nil
}

// report logs the error of the integrated values against mascon labels or,
// for the sphere, against its closed form.
func report(
	con *io.IntegrateConfig, field density.Field, dev device.Device,
	ts []r3.Vec, values *mat.Dense,
) error {
	var (
		r   *validation.Report
		err error
	)

	if con.ValidMasconFile() {
		m, err := mascon.Read(con.MasconFile)
		if err != nil {
			return err
		}
		want := labels(mascon.Labeler{Device: dev}, con.Kernel(), ts, m)
		if r, err = validation.Fit(want, values); err != nil {
			return err
		}
	} else if sphere, ok := field.(density.UniformSphere); ok {
		_, cols := values.Dims()
		want := mat.NewDense(len(ts), cols, nil)
		for i, t := range ts {
			if cols == 3 {
				a := sphere.Acceleration(t)
				want.SetRow(i, []float64{a.X, a.Y, a.Z})
			} else {
				want.Set(i, 0, sphere.Potential(t))
			}
		}
		if r, err = validation.Compare(want, values, 1); err != nil {
			return err
		}
	} else {
		return nil
	}

	klog.Infof("c = %.6g, mean relative error = %.3g, max relative error "+
		"= %.3g, RMS = %.3g", r.C, r.MeanRelative, r.MaxRelative, r.RMS)
	return nil
}
