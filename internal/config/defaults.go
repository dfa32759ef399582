package config

const (
	defaultLogDir            = "~/.local/share/recast/logs"
	defaultLockFile          = "~/.local/share/recast/recast.lock"
	defaultFFmpegBinary      = "ffmpeg"
	defaultFFprobeBinary     = "ffprobe"
	defaultVAAPIDevice       = "/dev/dri/renderD128"
	defaultVAAPIQP           = 18
	defaultCRF               = 16
	defaultPreset            = "slow"
	defaultOCRBinary         = "pgsrip"
	defaultOCRTimeoutSeconds = 600
	defaultDurationTolerance = 0.01
	defaultMinSizeRatio      = 0.1
	defaultPlexURL           = "http://localhost:32400"
	defaultPlexPrefsPath     = "/var/lib/plexmediaserver/Library/Application Support/Plex Media Server/Preferences.xml"
	defaultPlexRoot          = "~/plex"
	defaultPlexLibrary       = "movies"
	defaultPlexOwnerUser     = "plex"
	defaultPlexOwnerGroup    = "plex"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultHistoryPath       = "~/.local/share/recast/history.db"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:   defaultLogDir,
			LockFile: defaultLockFile,
		},
		Transcode: Transcode{
			FFmpegBinary:   defaultFFmpegBinary,
			FFprobeBinary:  defaultFFprobeBinary,
			VAAPIDevice:    defaultVAAPIDevice,
			VAAPIQP:        defaultVAAPIQP,
			CRF:            defaultCRF,
			Preset:         defaultPreset,
			PreferHardware: true,
		},
		OCR: OCR{
			Binary:         defaultOCRBinary,
			TimeoutSeconds: defaultOCRTimeoutSeconds,
		},
		Validation: Validation{
			DurationTolerance: defaultDurationTolerance,
			MinSizeRatio:      defaultMinSizeRatio,
		},
		Plex: Plex{
			URL:            defaultPlexURL,
			PrefsPath:      defaultPlexPrefsPath,
			Root:           defaultPlexRoot,
			DefaultLibrary: defaultPlexLibrary,
			OwnerUser:      defaultPlexOwnerUser,
			OwnerGroup:     defaultPlexOwnerGroup,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
	}
}
