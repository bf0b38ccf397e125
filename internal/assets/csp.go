package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"acmm/internal/fileutil"
	"acmm/internal/textutil"
)

// cspManifestKeys maps manifest section/key pairs onto ui-info keys. The
// info section name is the U+2139 information sign, not a letter i.
var cspManifestKeys = []struct {
	section string
	key     string
	as      string
}{
	{"ℹ", "preview", "preview"},
	{"ℹ", "description", "description"},
	{"ℹ", "url", "url"},
	{"VERSION", "shaders_patch", "version"},
	{"VERSION", "shaders_patch_build", "build"},
}

func (a *Asset) cspInfo() (map[string]any, error) {
	info := map[string]any{}
	if manifest := a.file(RoleUI); manifest != "" {
		cfg, err := loadINI(manifest)
		if err != nil {
			return info, fmt.Errorf("parse csp manifest: %w", err)
		}
		for _, field := range cspManifestKeys {
			section := findSection(cfg, field.section)
			if section == nil || !section.HasKey(field.key) {
				continue
			}
			info[field.as] = strings.TrimSpace(section.Key(field.key).String())
		}
	}
	if credits := a.file(RoleCredits); credits != "" {
		data, err := os.ReadFile(credits)
		if err != nil {
			return info, fmt.Errorf("read csp credits: %w", err)
		}
		info["credits"] = textutil.StripBBCode(string(data))
	}
	return info, nil
}

// CSPVersion returns the shaders patch version from the manifest, or "".
func (a *Asset) CSPVersion() string {
	return a.cspField("version")
}

// CSPBuild returns the shaders patch build number, or "".
func (a *Asset) CSPBuild() string {
	return a.cspField("build")
}

func (a *Asset) cspField(key string) string {
	if a.kind != KindCSP {
		return ""
	}
	info, err := a.cspInfo()
	if err != nil {
		return ""
	}
	value, _ := info[key].(string)
	return value
}

// CSPParts returns the two independently installed pieces of the shaders
// patch: dwrite.dll and the extension directory.
func (a *Asset) CSPParts() []string {
	if a.kind != KindCSP {
		return nil
	}
	var parts []string
	for _, name := range []string{"dwrite.dll", "extension"} {
		if path, _, ok := fileutil.Lookup(a.path, name); ok {
			parts = append(parts, path)
		} else {
			parts = append(parts, filepath.Join(a.path, name))
		}
	}
	return parts
}
