// Package config handles application configuration loading and management.
package config

// Config holds all application settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Simulation SimulationConfig `yaml:"simulation"`
	Surface    SurfaceConfig    `yaml:"surface"`
	Camera     CameraConfig     `yaml:"camera"`
	Logging    LoggingConfig    `yaml:"logging"`
	Profiling  ProfilingConfig  `yaml:"profiling"`
}

// GraphicsConfig holds display and texture settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`

	// Mipmapping gives the displacement/normal textures a full mip chain
	// regenerated every frame.
	Mipmapping bool `yaml:"mipmapping"`

	// DoubleBuffer alternates between two texture pairs so frame f writes
	// one pair while frame f-1 is still sampled from the other. Costs twice
	// the texture memory.
	DoubleBuffer bool `yaml:"double_buffer"`
}

// SimulationConfig holds the wave simulation parameters.
type SimulationConfig struct {
	TileSize        int     `yaml:"tile_size"`
	TileLength      float64 `yaml:"tile_length"`
	WindDirX        float64 `yaml:"wind_dir_x"`
	WindDirZ        float64 `yaml:"wind_dir_z"`
	WindSpeed       float64 `yaml:"wind_speed"`
	PhillipsConst   float64 `yaml:"phillips_const"`
	Damping         float64 `yaml:"damping"`
	AnimationPeriod float64 `yaml:"animation_period"`
	Lambda          float64 `yaml:"lambda"`
	ComputeJacobian bool    `yaml:"compute_jacobian"`
	AnimSpeed       float64 `yaml:"anim_speed"`
	Seed            uint64  `yaml:"seed"`
}

// SurfaceConfig holds the shading uniforms for the water surface.
type SurfaceConfig struct {
	SunDir             [3]float32 `yaml:"sun_dir"`
	SunColor           [3]float32 `yaml:"sun_color"`
	SunIntensity       float32    `yaml:"sun_intensity"`
	TerrainDepth       float32    `yaml:"terrain_depth"`
	SkyIntensity       float32    `yaml:"sky_intensity"`
	SpecularIntensity  float32    `yaml:"specular_intensity"`
	SpecularHighlights float32    `yaml:"specular_highlights"`
	AbsorpCoef         [3]float32 `yaml:"absorp_coef"`
	ScatterCoef        [3]float32 `yaml:"scatter_coef"`
	BackscatterCoef    [3]float32 `yaml:"backscatter_coef"`
}

// CameraConfig holds camera settings.
type CameraConfig struct {
	FOVDegrees  float32 `yaml:"fov_degrees"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
	MoveSpeed   float32 `yaml:"move_speed"`
	Sensitivity float32 `yaml:"sensitivity"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ProfilingConfig holds frame profiler settings.
type ProfilingConfig struct {
	Enabled         bool    `yaml:"enabled"`
	IntervalSeconds float64 `yaml:"interval_seconds"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:        1280,
			Height:       720,
			Fullscreen:   false,
			VSync:        true,
			Mipmapping:   false,
			DoubleBuffer: false,
		},
		Simulation: SimulationConfig{
			TileSize:        512,
			TileLength:      1000,
			WindDirX:        1,
			WindDirZ:        1,
			WindSpeed:       30,
			PhillipsConst:   3e-7,
			Damping:         0.1,
			AnimationPeriod: 200,
			Lambda:          -1,
			ComputeJacobian: true,
			AnimSpeed:       1,
			Seed:            1,
		},
		Surface: SurfaceConfig{
			SunDir:             [3]float32{0.2, 0.8, 0.3},
			SunColor:           [3]float32{1, 0.98, 0.92},
			SunIntensity:       1,
			TerrainDepth:       60,
			SkyIntensity:       1,
			SpecularIntensity:  0.6,
			SpecularHighlights: 32,
			AbsorpCoef:         [3]float32{0.45, 0.06, 0.02},
			ScatterCoef:        [3]float32{0.014, 0.045, 0.059},
			BackscatterCoef:    [3]float32{0.002, 0.006, 0.009},
		},
		Camera: CameraConfig{
			FOVDegrees:  60,
			Near:        0.1,
			Far:         5000,
			MoveSpeed:   60,
			Sensitivity: 0.0025,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Profiling: ProfilingConfig{
			Enabled:         false,
			IntervalSeconds: 1,
		},
	}
}
