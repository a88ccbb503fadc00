package config

const (
	defaultBaseURL         = "https://api.rhythm-plus.com/api/v1"
	defaultAuthURL         = "https://identitytoolkit.googleapis.com/v1/accounts:signUp"
	defaultRequestTimeout  = 30
	defaultPageLimit       = 100
	defaultSongList        = "SONGS_TO_ADD.md"
	defaultLedger          = ".song_progress.json"
	defaultCandidates      = ".song_candidates.json"
	defaultLogDir          = "~/.local/share/songbatch/logs"
	defaultImporterCommand = "./scripts/add-song.sh"
	defaultImporterTimeout = 600
	defaultTopCandidates   = 5
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			BaseURL:        defaultBaseURL,
			AuthURL:        defaultAuthURL,
			RequestTimeout: defaultRequestTimeout,
			PageLimit:      defaultPageLimit,
		},
		Paths: Paths{
			SongList:   defaultSongList,
			Ledger:     defaultLedger,
			Candidates: defaultCandidates,
			LogDir:     defaultLogDir,
		},
		Importer: Importer{
			Command: defaultImporterCommand,
			Timeout: defaultImporterTimeout,
		},
		Run: Run{
			TopCandidates: defaultTopCandidates,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
