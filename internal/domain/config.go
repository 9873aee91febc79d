package domain

// ConfigKey defines a configuration key with its metadata.
type ConfigKey struct {
	Name        string
	Default     string
	Description string
	Section     string
}

// ConfigKeys defines all available top-level configuration keys. Order
// determines display order.
var ConfigKeys = []ConfigKey{
	{
		Name:        "db_path",
		Description: "Path to the world database (default: app data dir)",
		Section:     "World",
	},
	{
		Name:        "executor",
		Default:     "Steve",
		Description: "Name of the player commands run as",
		Section:     "World",
	},
	{
		Name:        "prompt",
		Default:     "> ",
		Description: "Interactive prompt",
		Section:     "Display",
	},
	{
		Name:        "color",
		Default:     "auto",
		Description: "Colored output: auto, always, never",
		Section:     "Display",
	},
	{
		Name:        "theme",
		Default:     "default",
		Description: "Color theme: default, mono (optionally -dark or -light)",
		Section:     "Display",
	},
	{
		Name:        "display_date",
		Default:     "Jan 02",
		Description: "Date format: mm/dd/yyyy, yyyy-mm-dd, dd/mm/yyyy or a Go layout",
		Section:     "Display",
	},
	{
		Name:        "display_time",
		Default:     "24h",
		Description: "Time format: 12h, 24h",
		Section:     "Display",
	},
	{
		Name:        "enable_log",
		Default:     "true",
		Description: "Enable logging to file (true/false)",
		Section:     "Logging",
	},
	{
		Name:        "log_path",
		Description: "Path to the log file (default: app data dir)",
		Section:     "Logging",
	},
	{
		Name:        "log_level",
		Default:     "info",
		Description: "Minimum log level: debug, info, warn, error",
		Section:     "Logging",
	},
}

var configKeyMap map[string]ConfigKey

func init() {
	configKeyMap = make(map[string]ConfigKey, len(ConfigKeys))
	for _, key := range ConfigKeys {
		configKeyMap[key.Name] = key
	}
}

// IsValidConfigKey checks if a key name is valid.
func IsValidConfigKey(name string) bool {
	_, ok := configKeyMap[name]
	return ok
}

// KeysInSection returns the keys of a section in display order.
func KeysInSection(section string) []ConfigKey {
	var out []ConfigKey
	for _, key := range ConfigKeys {
		if key.Section == section {
			out = append(out, key)
		}
	}
	return out
}

// ConfigSections returns the ordered list of section names.
func ConfigSections() []string {
	return []string{"World", "Display", "Logging"}
}
