// Package config loads viewer configuration from TOML. Every field is
// optional; zero values fall back to the tuned defaults in parameter/.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/lixenwraith/replay/core"
	"github.com/lixenwraith/replay/overlay"
	"github.com/lixenwraith/replay/prefetch"
)

// Config mirrors the TOML file layout
type Config struct {
	Playback PlaybackConfig `toml:"playback"`
	Cache    CacheConfig    `toml:"cache"`
	Overlay  OverlayConfig  `toml:"overlay"`
}

// PlaybackConfig tunes pacing and prefetch
type PlaybackConfig struct {
	Speed        float64 `toml:"speed"`
	NearWindow   int     `toml:"near_window"`
	FarWindow    int     `toml:"far_window"`
	BackBuffer   int     `toml:"back_buffer"`
	AsyncOverlay bool    `toml:"async_overlay"`
}

// CacheConfig tunes the two caches
type CacheConfig struct {
	FrameCapacity    int `toml:"frame_capacity"`
	RenderedCapacity int `toml:"rendered_capacity"`
}

// OverlayConfig mirrors RenderSettings with config-friendly names
type OverlayConfig struct {
	Markers       *bool    `toml:"markers"`
	MarkerStyle   string   `toml:"marker_style"`
	MarkerRadius  int      `toml:"marker_radius"`
	MarkerOpacity *float64 `toml:"marker_opacity"`

	Labels     *bool  `toml:"labels"`
	LabelColor string `toml:"label_color"`

	Trajectory        *bool   `toml:"trajectory"`
	TrajectoryStyle   string  `toml:"trajectory_style"`
	TrajectoryFade    string  `toml:"trajectory_fade"`
	VelocityThickness *bool   `toml:"velocity_thickness"`
	BaseThickness     float64 `toml:"base_thickness"`

	Glow         *bool   `toml:"glow"`
	GlowStrength float64 `toml:"glow_strength"`
	Shadow       *bool   `toml:"shadow"`
	Gradient     *bool   `toml:"gradient"`
	Pulse        *bool   `toml:"pulse"`
	Particles    *bool   `toml:"particles"`

	Opacity   *float64 `toml:"opacity"`
	BlendMode string   `toml:"blend_mode"`
}

// Load reads and parses path. A missing file is not an error: defaults
// apply
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// Settings merges the overlay section onto base, leaving unset fields
// untouched
func (c Config) Settings(base overlay.RenderSettings) overlay.RenderSettings {
	o := c.Overlay
	s := base

	if o.Markers != nil {
		s.ShowMarkers = *o.Markers
	}
	if style, ok := overlay.ParseMarkerStyle(o.MarkerStyle); ok && o.MarkerStyle != "" {
		s.MarkerStyle = style
	}
	if o.MarkerRadius > 0 {
		s.MarkerRadius = o.MarkerRadius
	}
	if o.MarkerOpacity != nil {
		s.MarkerOpacity = *o.MarkerOpacity
	}

	if o.Labels != nil {
		s.ShowLabels = *o.Labels
	}
	if rgb, ok := parseHexColor(o.LabelColor); ok {
		s.LabelColor = rgb
	}

	if o.Trajectory != nil {
		s.ShowTrajectory = *o.Trajectory
	}
	if style, ok := overlay.ParseCurveStyle(o.TrajectoryStyle); ok && o.TrajectoryStyle != "" {
		s.TrajectoryStyle = style
	}
	switch o.TrajectoryFade {
	case "none":
		s.TrajectoryFade = overlay.FadeNone
	case "linear":
		s.TrajectoryFade = overlay.FadeLinear
	case "exponential":
		s.TrajectoryFade = overlay.FadeExponential
	}
	if o.VelocityThickness != nil {
		s.VelocityThickness = *o.VelocityThickness
	}
	if o.BaseThickness > 0 {
		s.BaseThickness = o.BaseThickness
	}

	if o.Glow != nil {
		s.ShowGlow = *o.Glow
	}
	if o.GlowStrength > 0 {
		s.GlowStrength = o.GlowStrength
	}
	if o.Shadow != nil {
		s.ShowShadow = *o.Shadow
	}
	if o.Gradient != nil {
		s.ShowGradient = *o.Gradient
	}
	if o.Pulse != nil {
		s.ShowPulse = *o.Pulse
	}
	if o.Particles != nil {
		s.ShowParticles = *o.Particles
	}

	if o.Opacity != nil {
		s.Opacity = *o.Opacity
	}
	if mode, ok := overlay.ParseBlendMode(o.BlendMode); ok && o.BlendMode != "" {
		s.Blend = mode
	}
	return s
}

// PrefetchConfig merges the playback section onto the defaults
func (c Config) PrefetchConfig() prefetch.Config {
	pf := prefetch.DefaultConfig()
	if c.Playback.NearWindow > 0 {
		pf.NearWindow = c.Playback.NearWindow
	}
	if c.Playback.FarWindow > 0 {
		pf.FarWindow = c.Playback.FarWindow
	}
	if c.Playback.BackBuffer > 0 {
		pf.BackBuffer = c.Playback.BackBuffer
	}
	if pf.IdleDelay <= 0 {
		pf.IdleDelay = 5 * time.Millisecond
	}
	return pf
}

// parseHexColor accepts #RRGGBB or RRGGBB
func parseHexColor(s string) (core.RGB, bool) {
	if len(s) == 7 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return core.RGB{}, false
	}
	var out [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexNibble(s[i*2])
		lo, ok2 := hexNibble(s[i*2+1])
		if !ok1 || !ok2 {
			return core.RGB{}, false
		}
		out[i] = hi<<4 | lo
	}
	return core.RGB{R: out[0], G: out[1], B: out[2]}, true
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
