package update

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sandeepkv93/tarefa/internal/storage"
)

type RuntimeConfig struct {
	Store                storage.Backend
	DataPath             string
	FileFormat           storage.FileFormat
	DesktopNotifications bool
	SchedulerBuffer      int
	LogFile              string
	LogLevel             string
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Store:                storage.BackendSQLite,
		FileFormat:           storage.FormatJSON,
		DesktopNotifications: false,
		SchedulerBuffer:      64,
		LogLevel:             "info",
	}
}

// LoadDotEnv copies variables from a .env file into the process
// environment without overriding ones already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("TAREFA_STORE"))); v != "" {
		if b := storage.Backend(v); b.IsValid() {
			cfg.Store = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("TAREFA_DATA_PATH")); v != "" {
		cfg.DataPath = v
	}
	if v := strings.TrimSpace(os.Getenv("TAREFA_FILE_FORMAT")); v != "" {
		if f, err := storage.ParseFileFormat(v); err == nil {
			cfg.FileFormat = f
		}
	}
	if v, ok := getEnvBool("TAREFA_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("TAREFA_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v := strings.TrimSpace(os.Getenv("TAREFA_LOG_FILE")); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv("TAREFA_LOG_LEVEL")); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	return cfg
}

// ResolvedDataPath falls back to a per-backend default file name.
func (c RuntimeConfig) ResolvedDataPath() string {
	if strings.TrimSpace(c.DataPath) != "" {
		return c.DataPath
	}
	switch c.Store {
	case storage.BackendFile:
		format := c.FileFormat
		if format == "" {
			format = storage.FormatJSON
		}
		return "tarefa." + string(format)
	case storage.BackendMemory:
		return ""
	default:
		return "tarefa.db"
	}
}

func (c RuntimeConfig) OpenOptions() storage.OpenOptions {
	return storage.OpenOptions{
		Backend: c.Store,
		Path:    c.ResolvedDataPath(),
		Format:  c.FileFormat,
	}
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
