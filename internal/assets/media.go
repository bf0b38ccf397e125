package assets

// Preview returns the preview image path, preferring the DLC variant for DLC
// content. Tracks without their own preview use the first layout's.
func (a *Asset) Preview() string {
	if a.kind == KindCar && a.Origin() == OriginDLC {
		if file := a.file(RoleDLCPreview); file != "" {
			return file
		}
	}
	if file := a.file(RolePreview); file != "" {
		return file
	}
	if a.kind == KindTrack {
		if dirs := layoutDirs(a.path); len(dirs) > 0 {
			return resolveTemplate(dirs[0], descriptors[KindTrackLayout].Files[RolePreview])
		}
	}
	return ""
}

// Outline returns the track or layout outline image.
func (a *Asset) Outline() string {
	if file := a.file(RoleOutline); file != "" {
		return file
	}
	if a.kind == KindTrack {
		if dirs := layoutDirs(a.path); len(dirs) > 0 {
			return resolveTemplate(dirs[0], descriptors[KindTrackLayout].Files[RoleOutline])
		}
	}
	return ""
}

// Badge returns the car manufacturer badge.
func (a *Asset) Badge() string { return a.file(RoleBadge) }

// Logo returns the car logo.
func (a *Asset) Logo() string { return a.file(RoleLogo) }

// Map returns the track or layout map image.
func (a *Asset) Map() string { return a.file(RoleMap) }

// Icon returns a Lua app's icon.
func (a *Asset) Icon() string { return a.file(RoleIcon) }

// Livery returns a skin's livery swatch.
func (a *Asset) Livery() string { return a.file(RoleLivery) }
