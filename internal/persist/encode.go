package persist

import (
	"bytes"
	"encoding/json"

	"github.com/joeycumines/uat-helper/internal/settings"
)

const (
	keyVersion     = "Version"
	keySelection   = "Platform Selection"
	keyRootPath    = "Root Path"
	keyProjectPath = "Project Path"
	keyVersions    = "Version Options"
	keySwitches    = "Switch Options"
	keyPreBuild    = "Pre Build Events"
	keyPostBuild   = "Post Build Events"
	keyPlatforms   = "Platform Settings"
)

// enabledKeys maps each reference kind to its key inside a platform block.
var enabledKeys = map[settings.Kind]string{
	settings.KindVersion:   "Enabled Versions",
	settings.KindSwitch:    "Enabled Switches",
	settings.KindPreBuild:  "Enabled Pre Build",
	settings.KindPostBuild: "Enabled Post Build",
}

const indent = "    "

// member is one key of an object, written in declaration order.
type member struct {
	key   string
	value any
}

type object []member

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(&buf, m.key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeValue(&buf, m.value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// Encode canonicalizes s in place and renders it in the file format.
// Enabled entries are written as names. Platform blocks appear in platform
// order and empty enabled lists are omitted.
func Encode(s *settings.Settings) ([]byte, error) {
	s.Canonicalize()

	platforms := make(object, 0, s.PlatformCount())
	for _, p := range s.Platforms() {
		block := object{}
		for _, k := range settings.Kinds {
			if names := s.EnabledNames(p, k); len(names) > 0 {
				block = append(block, member{enabledKeys[k], names})
			}
		}
		platforms = append(platforms, member{p.Name, block})
	}

	doc := object{
		{keyVersion, settings.SchemaVersion},
		{keySelection, s.SelectedPlatform},
		{keyRootPath, s.RootPath},
		{keyProjectPath, s.ProjectPath},
		{keyVersions, s.Versions.Names()},
		{keySwitches, s.Switches.Names()},
		{keyPreBuild, s.PreBuild.Names()},
		{keyPostBuild, s.PostBuild.Names()},
		{keyPlatforms, platforms},
	}

	var compact bytes.Buffer
	if err := encodeValue(&compact, doc); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", indent); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
