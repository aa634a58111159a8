package config

const (
	defaultBackgroundColor = "#00FF00"
	defaultTolerance       = 0.1
	defaultKeyedFolder     = "./keyed/"
	defaultOutputFolder    = "./webm/"
	defaultVideoCodec      = "libvpx-vp9"
	defaultPixelFormat     = "yuva420p"
	defaultQualityTier     = "good"
	defaultThreadCount     = 4
	defaultContainerExt    = "webm"
	defaultEnginePath      = "ffmpeg"
	defaultLogLevel        = "info"
	defaultLogFormat       = "console"
)

// Default returns a Config populated with the built-in defaults. Each call
// returns a fresh value, so callers may modify it freely.
func Default() Config {
	return Config{
		BackgroundColor: defaultBackgroundColor,
		Tolerance:       defaultTolerance,
		KeyedFolder:     defaultKeyedFolder,
		OutputFolder:    defaultOutputFolder,
		VideoCodec:      defaultVideoCodec,
		PixelFormat:     defaultPixelFormat,
		QualityTier:     defaultQualityTier,
		ThreadCount:     defaultThreadCount,
		ContainerExt:    defaultContainerExt,
		EnginePath:      defaultEnginePath,
		LogLevel:        defaultLogLevel,
		LogFormat:       defaultLogFormat,
	}
}
