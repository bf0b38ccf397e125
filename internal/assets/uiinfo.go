package assets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-ini/ini"

	"acmm/internal/textutil"
	"acmm/internal/validate"
)

// UIInfo returns the descriptive metadata of the asset (name, description,
// country, author, version and so on). A missing metadata file yields an
// empty map and no error; only unreadable or malformed files return errors.
func (a *Asset) UIInfo() (map[string]any, error) {
	switch a.kind {
	case KindCar:
		if a.Origin() == OriginDLC {
			if file := a.file(RoleDLCUI); file != "" {
				return readJSONInfo(file)
			}
		}
		return readJSONInfo(a.file(RoleUI))
	case KindTrack:
		if a.Origin() == OriginDLC {
			if file := a.trackDLCFile(); file != "" {
				return readJSONInfo(file)
			}
		}
		if file := a.file(RoleUI); file != "" {
			return readJSONInfo(file)
		}
		// Multi-layout tracks keep their ui_track.json per layout.
		if dirs := layoutDirs(a.path); len(dirs) > 0 {
			return readJSONInfo(resolveTemplate(dirs[0], descriptors[KindTrackLayout].Files[RoleUI]))
		}
		return map[string]any{}, nil
	case KindTrackLayout:
		if file := a.file(RoleUI); file != "" {
			return readJSONInfo(file)
		}
		return readJSONInfo(a.file(RoleDLCUI))
	case KindCarSkin:
		return readJSONInfo(a.file(RoleUI))
	case KindApp:
		if a.lang == validate.LangLua {
			return readINIInfo(a.file(RoleUI), "ABOUT")
		}
		return readJSONInfo(a.file(RoleUI))
	case KindPPFilter:
		return readINIInfo(a.file(RoleUI), "ABOUT")
	case KindWeather:
		return readINIInfo(a.file(RoleUI), "LAUNCHER", "__LAUNCHER_CM")
	case KindCSP:
		return a.cspInfo()
	default:
		return map[string]any{}, nil
	}
}

// Name returns the ui-info name, falling back to the id.
func (a *Asset) Name() string {
	info, err := a.UIInfo()
	if err == nil {
		if name, ok := info["name"].(string); ok && strings.TrimSpace(name) != "" {
			return strings.TrimSpace(name)
		}
	}
	return a.ID()
}

func readJSONInfo(path string) (map[string]any, error) {
	if path == "" {
		return map[string]any{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return map[string]any{}, fmt.Errorf("read ui file: %w", err)
	}
	var info map[string]any
	if err := json.Unmarshal(sanitizeJSON(data), &info); err != nil {
		return map[string]any{}, fmt.Errorf("parse ui file %s: %w", path, err)
	}
	if info == nil {
		return map[string]any{}, nil
	}
	textutil.CleanValue(info)
	return info, nil
}

// sanitizeJSON strips a byte order mark and escapes raw control characters
// inside string literals, both common in hand-edited ui files.
func sanitizeJSON(data []byte) []byte {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	var out bytes.Buffer
	out.Grow(len(data))
	inString := false
	escaped := false
	for _, b := range data {
		if inString {
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			case b == '\n':
				out.WriteString(`\n`)
				continue
			case b == '\r':
				continue
			case b == '\t':
				out.WriteString(`\t`)
				continue
			case b < 0x20:
				continue
			}
		} else if b == '"' {
			inString = true
		}
		out.WriteByte(b)
	}
	return out.Bytes()
}

func loadINI(path string) (*ini.File, error) {
	return ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:         true,
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
		AllowBooleanKeys:        true,
		Loose:                   true,
	}, path)
}

// readINIInfo merges the named sections in order; later sections override
// earlier keys. Keys are lower-cased.
func readINIInfo(path string, sections ...string) (map[string]any, error) {
	info := map[string]any{}
	if path == "" {
		return info, nil
	}
	cfg, err := loadINI(path)
	if err != nil {
		return info, fmt.Errorf("parse ini %s: %w", path, err)
	}
	for _, name := range sections {
		section := findSection(cfg, name)
		if section == nil {
			continue
		}
		for _, key := range section.Keys() {
			info[key.Name()] = strings.TrimSpace(key.String())
		}
	}
	return info, nil
}

func findSection(cfg *ini.File, name string) *ini.Section {
	for _, section := range cfg.Sections() {
		if strings.EqualFold(section.Name(), name) {
			return section
		}
	}
	return nil
}
