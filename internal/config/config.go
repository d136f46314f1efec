// Package config handles sundial configuration loading and the
// mapping of the resolved settings onto the engine's input records.
package config

import (
	"math"

	"github.com/harfang-mgf/sundial/internal/canvas"
	"github.com/harfang-mgf/sundial/internal/dial"
)

// Config holds all sundial settings.
type Config struct {
	Dial    DialConfig    `yaml:"dial"`
	Panel   PanelConfig   `yaml:"panel"`
	Render  RenderConfig  `yaml:"render"`
	Lines   LinesConfig   `yaml:"lines"`
	Logging LoggingConfig `yaml:"logging"`
}

// DialConfig holds the geographic and gnomon settings. All angles are
// decimal degrees; latitude is positive north, longitude positive
// west, orientation zero for a south-facing wall and positive west,
// slope zero for a flat dial and 90 for a vertical wall.
type DialConfig struct {
	Latitude    float64 `yaml:"latitude"`
	Longitude   float64 `yaml:"longitude"`
	Orientation float64 `yaml:"orientation"`
	Slope       float64 `yaml:"slope"`
	Zone        float64 `yaml:"zone"` // time zone in hours

	// Style is the length of the style rod; Height, when positive,
	// selects perpendicular mode and gives the gnomon height
	// directly.
	Style  float64 `yaml:"style"`
	Height float64 `yaml:"height"`

	Nocturnal bool `yaml:"nocturnal"` // draw lines of a virtual sun
}

// PanelConfig holds the dial face geometry in dial units.
type PanelConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"` // origin shift from panel center
	OffsetY float64 `yaml:"offset_y"`
}

// RenderConfig holds output settings.
type RenderConfig struct {
	Scale        float64 `yaml:"scale"` // device units per dial unit
	CanvasWidth  int     `yaml:"canvas_width"`
	CanvasHeight int     `yaml:"canvas_height"`
	Fullscreen   bool    `yaml:"fullscreen"`
	Highlight    bool    `yaml:"highlight"` // bold strokes at noon and solstices
	Output       string  `yaml:"output"`    // .svg or .webp file; empty for a window
}

// LinesConfig switches the individual line families.
type LinesConfig struct {
	Info     bool `yaml:"info"`
	Standard bool `yaml:"standard"`
	Extreme  bool `yaml:"extreme"`
	Conic    bool `yaml:"conic"`
	Equation bool `yaml:"equation"`
	Shape    bool `yaml:"shape"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the demonstration configuration: a vertical wall in
// Geneva turned thirty degrees west.
func Default() *Config {
	return &Config{
		Dial: DialConfig{
			Latitude:    46.2074,
			Longitude:   -6.1559,
			Orientation: 30,
			Slope:       90,
			Zone:        1,
			Style:       1.0,
		},
		Panel: PanelConfig{
			Width:   3.7,
			Height:  2.0,
			OffsetX: -0.3,
			OffsetY: 1.0,
		},
		Render: RenderConfig{
			Scale:        200,
			CanvasWidth:  1000,
			CanvasHeight: 1000,
			Highlight:    true,
		},
		Lines: LinesConfig{
			Info:     true,
			Standard: true,
			Extreme:  true,
			Conic:    true,
			Equation: true,
			Shape:    false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Input converts the configuration to the solver's input record,
// degrees to radians.
func (c *Config) Input() dial.Input {
	return dial.Input{
		Latitude:      rad(c.Dial.Latitude),
		Longitude:     rad(c.Dial.Longitude),
		Orientation:   rad(c.Dial.Orientation),
		Slope:         rad(c.Dial.Slope),
		Zone:          c.Dial.Zone,
		Perpendicular: c.Dial.Height > 0,
		Style:         c.Dial.Style,
		Height:        c.Dial.Height,
		PanelWidth:    c.Panel.Width,
		PanelHeight:   c.Panel.Height,
		OffsetX:       c.Panel.OffsetX,
		OffsetY:       c.Panel.OffsetY,
		Nocturnal:     c.Dial.Nocturnal,
		Highlight:     c.Render.Highlight,
	}
}

// Transform builds the logical-to-device mapping for the resolved
// origin offsets.
func (c *Config) Transform(offsetX, offsetY float64) canvas.Transform {
	return canvas.Transform{
		Width:   c.Render.CanvasWidth,
		Height:  c.Render.CanvasHeight,
		Scale:   c.Render.Scale,
		OffsetX: offsetX,
		OffsetY: offsetY,
	}
}

// Styles returns the drawing scheme with the configured family
// switches applied.
func (c *Config) Styles() canvas.StyleSet {
	st := canvas.DefaultStyles()
	st.Families[canvas.FamilyInfo].On = c.Lines.Info
	st.Families[canvas.FamilyStandard].On = c.Lines.Standard
	st.Families[canvas.FamilyExtreme].On = c.Lines.Extreme
	st.Families[canvas.FamilyConic].On = c.Lines.Conic
	st.Families[canvas.FamilyEquation].On = c.Lines.Equation
	st.Families[canvas.FamilyShape].On = c.Lines.Shape
	return st
}

// SetFamily switches one family on or off.
func (c *Config) SetFamily(f canvas.Family, on bool) {
	switch f {
	case canvas.FamilyInfo:
		c.Lines.Info = on
	case canvas.FamilyStandard:
		c.Lines.Standard = on
	case canvas.FamilyExtreme:
		c.Lines.Extreme = on
	case canvas.FamilyConic:
		c.Lines.Conic = on
	case canvas.FamilyEquation:
		c.Lines.Equation = on
	case canvas.FamilyShape:
		c.Lines.Shape = on
	}
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }
