package config

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	errUtils "github.com/cloverkit/cloverkit/errors"
	"github.com/cloverkit/cloverkit/pkg/schema"
)

// Validate checks the values no task can work around.
func Validate(cfg *schema.Configuration) error {
	for _, plugin := range cfg.Project.Plugins {
		if plugin != PluginJava && plugin != PluginGroovy {
			return errUtils.Build(errors.Wrapf(errUtils.ErrUnknownPlugin, "%q", plugin)).
				WithHintf("Supported plugins are %s and %s", PluginJava, PluginGroovy).
				Err()
		}
	}

	if cfg.Clover.TargetPercentage != "" {
		if _, err := ParseTargetPercentage(cfg.Clover.TargetPercentage); err != nil {
			return err
		}
	}

	for i, set := range cfg.Clover.AdditionalSourceSets {
		if set.ClassesDir == "" || len(set.SrcDirs) == 0 {
			return errUtils.Build(errors.Wrapf(errUtils.ErrInvalidSourceSet, "additional source set #%d (%q)", i, set.Name)).
				WithHint("Every additional source set needs src_dirs and a classes_dir").
				Err()
		}
	}
	return nil
}

// ParseTargetPercentage parses "85", "85%" or "85.5%" into a number in [0, 100].
func ParseTargetPercentage(s string) (float64, error) {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || value < 0 || value > 100 {
		return 0, errUtils.Build(errors.Wrapf(errUtils.ErrInvalidTargetPercentage, "%q", s)).
			WithHint("Use a percentage between 0 and 100, e.g. '85%'").
			Err()
	}
	return value, nil
}

// FormatTargetPercentage renders a percentage the way clover-check expects it.
func FormatTargetPercentage(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + "%"
}

// HasPlugin reports whether plugin is enabled. Groovy implies java.
func HasPlugin(cfg *schema.Configuration, plugin string) bool {
	for _, p := range cfg.Project.Plugins {
		if p == plugin || (plugin == PluginJava && p == PluginGroovy) {
			return true
		}
	}
	return false
}
