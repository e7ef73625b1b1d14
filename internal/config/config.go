package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"raycaster/internal/graphics"
	"raycaster/internal/mathutil"
)

// Config holds all renderer configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	World    WorldConfig    `yaml:"world"`
	Movement MovementConfig `yaml:"movement"`
	Camera   CameraConfig   `yaml:"camera"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Frame    FrameConfig    `yaml:"frame"`
	Minimap  MinimapConfig  `yaml:"minimap"`
	Debug    DebugConfig    `yaml:"debug"`
}

type DisplayConfig struct {
	ScreenWidth  int     `yaml:"screen_width"`  // 0 derives the width from the map
	ScreenHeight int     `yaml:"screen_height"` // 0 derives the height from the map
	WindowScale  float64 `yaml:"window_scale"`
	WindowTitle  string  `yaml:"window_title"`
	Resizable    bool    `yaml:"resizable"`
}

type WorldConfig struct {
	TileSize int    `yaml:"tile_size"`
	MapFile  string `yaml:"map_file"` // empty uses the built-in map
}

type MovementConfig struct {
	WalkSpeed        float64 `yaml:"walk_speed"`
	TurnSpeedDegrees float64 `yaml:"turn_speed_degrees"`
}

type CameraConfig struct {
	FieldOfViewDegrees  float64 `yaml:"field_of_view_degrees"`
	StartHeadingDegrees float64 `yaml:"start_heading_degrees"`
}

type GraphicsConfig struct {
	TextureManifest string  `yaml:"texture_manifest"`
	TextureSize     int     `yaml:"texture_size"`
	CeilingColor    [3]int  `yaml:"ceiling_color"`
	FloorColor      [3]int  `yaml:"floor_color"`
	SideShade       float64 `yaml:"side_shade"`
	Parallel        bool    `yaml:"parallel"`
	Workers         int     `yaml:"workers"`
}

type FrameConfig struct {
	FPS int `yaml:"fps"`
}

type MinimapConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Scale    float64 `yaml:"scale"`
	ShowRays bool    `yaml:"show_rays"`
}

type DebugConfig struct {
	LogLevel  string `yaml:"log_level"`
	StatsAddr string `yaml:"stats_addr"` // empty disables the stats server
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			WindowScale: 1,
			WindowTitle: "Raycaster",
		},
		World: WorldConfig{
			TileSize: 64,
		},
		Movement: MovementConfig{
			WalkSpeed:        150,
			TurnSpeedDegrees: 45,
		},
		Camera: CameraConfig{
			FieldOfViewDegrees:  60,
			StartHeadingDegrees: 90,
		},
		Graphics: GraphicsConfig{
			TextureSize: 64,
			SideShade:   1,
		},
		Frame: FrameConfig{
			FPS: 30,
		},
		Minimap: MinimapConfig{
			Enabled:  true,
			Scale:    0.2,
			ShowRays: true,
		},
		Debug: DebugConfig{
			LogLevel: "info",
		},
	}
}

// LoadConfig loads the configuration from a YAML file over the defaults
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Validate checks every value the pipeline depends on.
func (c *Config) Validate() error {
	var errs []error
	if c.Display.ScreenWidth < 0 || c.Display.ScreenHeight < 0 {
		errs = append(errs, fmt.Errorf("screen size %dx%d must not be negative", c.Display.ScreenWidth, c.Display.ScreenHeight))
	}
	if c.Display.WindowScale <= 0 {
		errs = append(errs, fmt.Errorf("window_scale %v must be positive", c.Display.WindowScale))
	}
	if c.World.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("tile_size %d must be positive", c.World.TileSize))
	}
	if c.Movement.WalkSpeed < 0 || c.Movement.TurnSpeedDegrees < 0 {
		errs = append(errs, errors.New("movement speeds must not be negative"))
	}
	if fov := c.Camera.FieldOfViewDegrees; fov <= 0 || fov >= 180 {
		errs = append(errs, fmt.Errorf("field_of_view_degrees %v must be in (0, 180)", fov))
	}
	if c.Graphics.TextureSize <= 0 {
		errs = append(errs, fmt.Errorf("texture_size %d must be positive", c.Graphics.TextureSize))
	}
	if c.Graphics.SideShade < 0 {
		errs = append(errs, fmt.Errorf("side_shade %v must not be negative", c.Graphics.SideShade))
	}
	for name, rgb := range map[string][3]int{"ceiling_color": c.Graphics.CeilingColor, "floor_color": c.Graphics.FloorColor} {
		for _, v := range rgb {
			if v < 0 || v > 255 {
				errs = append(errs, fmt.Errorf("%s %v has a channel outside 0..255", name, rgb))
				break
			}
		}
	}
	if c.Frame.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps %d must be positive", c.Frame.FPS))
	}
	if c.Minimap.Scale <= 0 {
		errs = append(errs, fmt.Errorf("minimap scale %v must be positive", c.Minimap.Scale))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetTileSize() float64 {
	return float64(c.World.TileSize)
}

func (c *Config) GetWalkSpeed() float64 {
	return c.Movement.WalkSpeed
}

// GetTurnSpeed returns the turn speed in radians per second.
func (c *Config) GetTurnSpeed() float64 {
	return mathutil.DegreesToRadians(c.Movement.TurnSpeedDegrees)
}

// GetFOV returns the field of view in radians.
func (c *Config) GetFOV() float64 {
	return mathutil.DegreesToRadians(c.Camera.FieldOfViewDegrees)
}

// GetStartHeading returns the initial heading in radians.
func (c *Config) GetStartHeading() float64 {
	return mathutil.DegreesToRadians(c.Camera.StartHeadingDegrees)
}

func (c *Config) GetCeilingColor() uint32 {
	return packRGB(c.Graphics.CeilingColor)
}

func (c *Config) GetFloorColor() uint32 {
	return packRGB(c.Graphics.FloorColor)
}

// ScreenSize returns the configured screen size, deriving any zero dimension
// from the map's pixel extent.
func (c *Config) ScreenSize(mapCols, mapRows int) (width, height int) {
	width, height = c.Display.ScreenWidth, c.Display.ScreenHeight
	if width == 0 {
		width = mapCols * c.World.TileSize
	}
	if height == 0 {
		height = mapRows * c.World.TileSize
	}
	return width, height
}

func packRGB(rgb [3]int) uint32 {
	return graphics.PackARGB(uint8(rgb[0]), uint8(rgb[1]), uint8(rgb[2]), 0xFF)
}
