package config

// Level tags for component loggers
const (
	LogErrorColor = "\033[31m"
	LogInfoColor  = "\033[32m"
	LogWarnColor  = "\033[33m"
	LogColorReset = "\033[0m"
)

// Prefix colours for component loggers
const (
	ColorGreen   = "\033[32m"
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
	ColorReset   = "\033[0m"
)

// Prefix returns a coloured "[NAME] " logger prefix.
func Prefix(name, color string) string {
	return color + "[" + name + "]" + ColorReset + " "
}
