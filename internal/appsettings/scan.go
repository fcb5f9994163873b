package appsettings

import (
	"github.com/bmatcuk/doublestar/v4"
)

// ConfigPattern matches configuration file names. The "?" requires at
// least one character between prefix and suffix, so UATHelper.json itself
// never matches.
const ConfigPattern = "UATHelper?*.json"

// Lister lists the file names of a directory.
type Lister interface {
	List() ([]string, error)
}

// Scan returns the configuration file names in l, in listing order.
func Scan(l Lister) ([]string, error) {
	names, err := l.List()
	if err != nil {
		return nil, err
	}
	var files []string
	for _, name := range names {
		ok, err := doublestar.Match(ConfigPattern, name)
		if err != nil {
			return nil, err
		}
		if ok {
			files = append(files, name)
		}
	}
	return files, nil
}
