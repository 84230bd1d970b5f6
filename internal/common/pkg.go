package common

import (
	"path"
	"regexp"
	"strings"
)

var majorSuffix = regexp.MustCompile(`^v[0-9]+$`)

// PkgAlias returns the name a package is usually referred to by: the last
// element of its import path, skipping a major version element
// ("github.com/go-viper/mapstructure/v2" is "mapstructure") and dropping a
// gopkg.in version suffix ("gopkg.in/yaml.v3" is "yaml").
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if majorSuffix.MatchString(base) {
		if dir := path.Dir(pkgPath); dir != "." {
			base = path.Base(dir)
		}
	}

	if strings.HasPrefix(pkgPath, "gopkg.in/") {
		if name, version, ok := strings.Cut(base, "."); ok && majorSuffix.MatchString(version) {
			base = name
		}
	}

	return base
}
