package config

import "runtime"

const (
	defaultMinPythonVersion = "3.9"
	defaultIndexURL         = "https://pypi.tuna.tsinghua.edu.cn/simple"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"

	defaultWindowsFallbackURL = "https://www.python.org/ftp/python/3.11.9/python-3.11.9-amd64.exe"
	defaultDarwinFallbackURL  = "https://repo.anaconda.com/miniconda/Miniconda3-latest-MacOSX-arm64.sh"
	defaultLinuxFallbackURL   = "https://repo.anaconda.com/miniconda/Miniconda3-latest-Linux-x86_64.sh"
)

// defaultPackages is what the classifier scripts import, in install order.
var defaultPackages = []string{
	"yt-dlp",
	"librosa",
	"numpy",
	"imageio-ffmpeg",
	"pandas",
	"openpyxl",
	"spotipy",
}

// defaultDirectories are the bucket folders plus the spreadsheet inbox
// the classifiers expect relative to their working directory.
var defaultDirectories = []string{"BLUE", "GREEN", "RED", "表格"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	cfg := Config{
		Runtime: Runtime{
			Binaries:   []string{"python3", "python"},
			MinVersion: defaultMinPythonVersion,
		},
		Packages: Packages{
			IndexURL: defaultIndexURL,
			Names:    append([]string(nil), defaultPackages...),
		},
		Workspace: Workspace{
			Root:        ".",
			Directories: append([]string(nil), defaultDirectories...),
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
	cfg.Acquisition = defaultAcquisition(runtime.GOOS)
	return cfg
}

func defaultAcquisition(goos string) Acquisition {
	switch goos {
	case "windows":
		return Acquisition{
			PrimaryCommand:        []string{"winget", "install", "-e", "--id", "Python.Python.3.11", "--silent", "--accept-package-agreements", "--accept-source-agreements"},
			FallbackURL:           defaultWindowsFallbackURL,
			FallbackInstallerArgs: []string{"/quiet", "InstallAllUsers=0", "PrependPath=1", "Include_pip=1"},
			ExtraBinDirs: []string{
				"~/AppData/Local/Programs/Python/Python311",
				"~/AppData/Local/Programs/Python/Python311/Scripts",
			},
		}
	case "darwin":
		return Acquisition{
			PrimaryCommand:        []string{"brew", "install", "python@3.11"},
			FallbackURL:           defaultDarwinFallbackURL,
			FallbackInstallerArgs: []string{"-b", "-p", "~/miniconda3"},
			ExtraBinDirs: []string{
				"/opt/homebrew/bin",
				"/usr/local/bin",
				"~/miniconda3/bin",
			},
		}
	default:
		return Acquisition{
			PrimaryCommand:        []string{"sudo", "apt-get", "install", "-y", "python3", "python3-pip"},
			FallbackURL:           defaultLinuxFallbackURL,
			FallbackInstallerArgs: []string{"-b", "-p", "~/miniconda3"},
			ExtraBinDirs: []string{
				"~/.local/bin",
				"~/miniconda3/bin",
			},
		}
	}
}
