package corber

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dosanma1/forge-deploy/internal/config"
)

// Flags appended after the configuration-derived ones, in this order.
const (
	FlagSkipFrameworkBuild = "--skip-framework-build"
	FlagAddCordovaJS       = "--add-cordova-js"
	FlagQuiet              = "--quiet"
)

// ignoredOptions never become flags.
var ignoredOptions = map[string]bool{
	"enabled": true,
}

var (
	decamelizeRe = regexp.MustCompile(`([a-z\d])([A-Z])`)
	dasherizeRe  = regexp.MustCompile(`[ _]`)
)

// Dasherize converts an option key to a flag name: buildFlavor -> build-flavor.
// Spaces and underscores become dashes as well.
func Dasherize(key string) string {
	s := strings.ToLower(decamelizeRe.ReplaceAllString(key, "${1}_${2}"))
	return dasherizeRe.ReplaceAllString(s, "-")
}

// BuildArgs translates plugin options into corber build arguments.
// Options keep their declaration order; true becomes a bare flag, every
// other value is passed as --flag=value. --quiet is always passed: the
// plugin restores the UI log level once corber returns.
func BuildArgs(opts config.Options) []string {
	args := make([]string, 0, len(opts)+3)
	for _, opt := range opts {
		if ignoredOptions[opt.Key] {
			continue
		}

		arg := "--" + Dasherize(opt.Key)
		if v, ok := opt.Value.(bool); ok && v {
			args = append(args, arg)
			continue
		}
		args = append(args, arg+"="+formatValue(opt.Value))
	}

	return append(args, FlagSkipFrameworkBuild, FlagAddCordovaJS, FlagQuiet)
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if item == nil {
				parts = append(parts, "")
				continue
			}
			parts = append(parts, formatValue(item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(val)
	}
}
