package io

import (
	"fmt"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/geodesynet/gravann/density"
	"github.com/geodesynet/gravann/integrator"
	"github.com/geodesynet/gravann/sample"
)

const (
	ExampleLabelFile = `[Label]

#######################
# Required Parameters #
#######################

# Text file with one mascon per line: x y z mass.
MasconFile = path/to/mascons.txt
# Target points and their labels are written here as a text table.
Output = path/to/labels.txt

# Quantity can be set to one of:
# [ Potential | Acceleration ]
Quantity = Acceleration

#######################
# Optional Parameters #
#######################

# Seed = 0
# LogFile = log.out`

	ExampleIntegrateFile = `[Integrate]

#######################
# Required Parameters #
#######################

# Field can be set to one of:
# [ sphere | cube ]
# These are uniform density fields with a closed form that integrators can
# be checked against.
Field = sphere
# Radius of the sphere or half-width of the cube.
FieldSize = 0.9

# Method can be set to one of:
# [ MonteCarlo | LowDiscrepancy | Trapezoid ]
Method = Trapezoid
# Quantity can be set to one of:
# [ Potential | Acceleration ]
Quantity = Acceleration
# Number of sample points. Trapezoid grids use the nearest cube number and
# LowDiscrepancy may not exceed 200000.
Samples = 300000

Output = path/to/integrated.txt

#######################
# Optional Parameters #
#######################

# Encoding can be set to one of:
# [ direct | positional | directional | spherical ]
# Encoding = direct

# Density of the field. Default is 1.
# Rho = 1

# Width of the uniform jitter added to low-discrepancy and grid points.
# Default is 1e-5 for those methods and 0 for MonteCarlo.
# Noise = 1e-5

# A grid written by a previous run. Only used by the Trapezoid method.
# GridFile = path/to/grid.bin
# Writes the grid used by this run so that later runs can reuse it.
# SaveGridFile = path/to/grid.bin

# If set, labels are computed from these mascons and compared against the
# integrated values after fitting a scale constant.
# MasconFile = path/to/mascons.txt

# Seed = 0
# LogFile = log.out`

	ExampleSamplerFile = `[Sampler]

# Sampler sections are added to Label and Integrate files.

#######################
# Required Parameters #
#######################

# Method can be set to one of:
# [ cubical | spherical | spherical_grid ]
Method = spherical
Points = 1000

#######################
# Optional Parameters #
#######################

# Inner and outer radius of the spherical shell.
# RadiusMin = 1.73205
# RadiusMax = 1.73205

# Half-widths of the excluded inner cube and the outer cube.
# ScaleMin = 1.0
# ScaleMax = 1.1

# Radius of the spherical grid.
# GridRadius = 1.73205`
)

type SharedConfig struct {
	// Required
	Output string
	// Optional
	LogFile string
	Seed    uint64
}

func (con *SharedConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}

type SamplerConfig struct {
	// Required
	Method string
	Points int

	// Optional
	RadiusMin, RadiusMax float64
	ScaleMin, ScaleMax   float64
	GridRadius           float64
}

func (con *SamplerConfig) ValidMethod() bool {
	for _, m := range sample.Methods() {
		if m == con.Method {
			return true
		}
	}
	return false
}
func (con *SamplerConfig) ValidPoints() bool {
	return con.Points > 0
}

// Params converts the config into sample.Params.
func (con *SamplerConfig) Params() sample.Params {
	return sample.Params{
		RadiusBounds: [2]float64{con.RadiusMin, con.RadiusMax},
		ScaleBounds:  [2]float64{con.ScaleMin, con.ScaleMax},
		GridRadius:   con.GridRadius,
	}
}

func defaultSamplerConfig() SamplerConfig {
	p := sample.DefaultParams()
	return SamplerConfig{
		RadiusMin: p.RadiusBounds[0], RadiusMax: p.RadiusBounds[1],
		ScaleMin: p.ScaleBounds[0], ScaleMax: p.ScaleBounds[1],
		GridRadius: p.GridRadius,
	}
}

// CheckInit reports the first invalid value of a Sampler section.
func (con *SamplerConfig) CheckInit() error {
	if !con.ValidMethod() {
		return fmt.Errorf(
			"Invalid/non-existent Sampler 'Method' value. Accepted values "+
				"are: %s.", strings.Join(sample.Methods(), ", "),
		)
	} else if !con.ValidPoints() {
		return fmt.Errorf("Invalid/non-existent Sampler 'Points' value.")
	}
	return nil
}

type LabelConfig struct {
	SharedConfig

	// Required
	MasconFile string
	Quantity   string
}

func (con *LabelConfig) ValidMasconFile() bool {
	return con.MasconFile != ""
}
func (con *LabelConfig) ValidQuantity() bool {
	_, ok := kernelByName(con.Quantity)
	return ok
}

// Kernel returns the integrand matching Quantity.
func (con *LabelConfig) Kernel() integrator.Kernel {
	k, _ := kernelByName(con.Quantity)
	return k
}

type IntegrateConfig struct {
	SharedConfig

	// Required
	Field     string
	FieldSize float64
	Method    string
	Quantity  string
	Samples   int

	// Optional
	Encoding     string
	Rho          float64
	Noise        float64
	GridFile     string
	SaveGridFile string
	MasconFile   string
}

// ValidField requires a known field which fits inside [-1, 1]^3.
func (con *IntegrateConfig) ValidField() bool {
	if con.FieldSize <= 0 || con.FieldSize > 1 {
		return false
	}
	_, err := density.FieldByName(con.Field, con.FieldSize, con.Rho)
	return err == nil
}
func (con *IntegrateConfig) ValidMethod() bool {
	_, err := integrator.MethodByName(con.Method)
	return err == nil
}
func (con *IntegrateConfig) ValidQuantity() bool {
	_, ok := kernelByName(con.Quantity)
	return ok
}
func (con *IntegrateConfig) ValidSamples() bool {
	return con.Samples > 0 || con.ValidGridFile()
}
func (con *IntegrateConfig) ValidEncoding() bool {
	_, err := density.EncodingByName(con.Encoding)
	return err == nil
}
func (con *IntegrateConfig) ValidNoise() bool {
	return con.Noise >= 0
}
func (con *IntegrateConfig) ValidGridFile() bool {
	return con.GridFile != ""
}
func (con *IntegrateConfig) ValidSaveGridFile() bool {
	return con.SaveGridFile != ""
}
func (con *IntegrateConfig) ValidMasconFile() bool {
	return con.MasconFile != ""
}

// Kernel returns the integrand matching Quantity.
func (con *IntegrateConfig) Kernel() integrator.Kernel {
	k, _ := kernelByName(con.Quantity)
	return k
}

func kernelByName(name string) (integrator.Kernel, bool) {
	var k integrator.Kernel
	for k = 0; k < integrator.EndKernel; k++ {
		if strings.ToLower(k.String()) == strings.ToLower(name) {
			return k, true
		}
	}
	return k, false
}

type LabelWrapper struct {
	Label   LabelConfig
	Sampler SamplerConfig
}

type IntegrateWrapper struct {
	Integrate IntegrateConfig
	Sampler   SamplerConfig
}

func DefaultLabelWrapper() *LabelWrapper {
	return &LabelWrapper{Sampler: defaultSamplerConfig()}
}

// DefaultIntegrateWrapper leaves Noise negative so that CheckInit can tell
// whether it was set.
func DefaultIntegrateWrapper() *IntegrateWrapper {
	con := IntegrateConfig{}
	con.Encoding = "direct"
	con.Rho = 1
	con.Noise = -1
	return &IntegrateWrapper{con, defaultSamplerConfig()}
}

// ReadLabelConfig reads and checks a Label file.
func ReadLabelConfig(fname string) (*LabelWrapper, error) {
	wrap := DefaultLabelWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.CheckInit(); err != nil {
		return nil, err
	}
	return wrap, nil
}

// CheckInit reports the first invalid value of a Label file.
func (wrap *LabelWrapper) CheckInit() error {
	con := &wrap.Label
	if !con.ValidMasconFile() {
		return fmt.Errorf("Invalid/non-existent 'MasconFile' value.")
	} else if !con.ValidOutput() {
		return fmt.Errorf("Invalid/non-existent 'Output' value.")
	} else if !con.ValidQuantity() {
		return fmt.Errorf("Invalid/non-existent 'Quantity' value.")
	}
	return wrap.Sampler.CheckInit()
}

// ReadIntegrateConfig reads and checks an Integrate file.
func ReadIntegrateConfig(fname string) (*IntegrateWrapper, error) {
	wrap := DefaultIntegrateWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.CheckInit(); err != nil {
		return nil, err
	}
	return wrap, nil
}

// CheckInit reports the first invalid value of an Integrate file and fills
// in the default noise of the chosen method.
func (wrap *IntegrateWrapper) CheckInit() error {
	con := &wrap.Integrate
	if !con.ValidField() {
		return fmt.Errorf("Invalid/non-existent 'Field' or 'FieldSize' value.")
	} else if !con.ValidMethod() {
		return fmt.Errorf("Invalid/non-existent 'Method' value.")
	} else if !con.ValidQuantity() {
		return fmt.Errorf("Invalid/non-existent 'Quantity' value.")
	} else if !con.ValidSamples() {
		return fmt.Errorf("Invalid/non-existent 'Samples' value.")
	} else if !con.ValidOutput() {
		return fmt.Errorf("Invalid/non-existent 'Output' value.")
	} else if !con.ValidEncoding() {
		return fmt.Errorf("Invalid 'Encoding' value, '%s'.", con.Encoding)
	}

	method, _ := integrator.MethodByName(con.Method)
	if con.ValidGridFile() && method != integrator.Trapezoid {
		return fmt.Errorf("'GridFile' can only be used by the Trapezoid method.")
	}
	if !con.ValidNoise() {
		if method == integrator.MonteCarlo {
			con.Noise = 0
		} else {
			con.Noise = integrator.DefaultNoise
		}
	}

	return wrap.Sampler.CheckInit()
}
