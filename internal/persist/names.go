package persist

import (
	"strings"
)

const (
	filePrefix = "UATHelper"
	fileSuffix = ".json"
)

// FileName returns the file name of the configuration called name. A name
// already in file form is returned unchanged.
func FileName(name string) string {
	if IsConfigFile(name) {
		return name
	}
	return filePrefix + name + fileSuffix
}

// ConfigName is the inverse of FileName.
func ConfigName(file string) string {
	return strings.TrimSuffix(strings.TrimPrefix(file, filePrefix), fileSuffix)
}

// IsConfigFile reports whether file names a configuration, as opposed to
// the bare UATHelper.json app settings file.
func IsConfigFile(file string) bool {
	return len(file) > len(filePrefix)+len(fileSuffix) &&
		strings.HasPrefix(file, filePrefix) &&
		strings.HasSuffix(file, fileSuffix)
}
