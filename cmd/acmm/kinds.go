package main

import (
	"github.com/spf13/cobra"

	"acmm/internal/assets"
)

// kindFlags selects content kinds. No flag means every kind.
type kindFlags struct {
	cars      bool
	tracks    bool
	ppfilters bool
	weather   bool
	apps      bool
}

func (k *kindFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&k.cars, "cars", false, "Only cars")
	cmd.Flags().BoolVar(&k.tracks, "tracks", false, "Only tracks")
	cmd.Flags().BoolVar(&k.ppfilters, "ppfilters", false, "Only post-processing filters")
	cmd.Flags().BoolVar(&k.weather, "weather", false, "Only weather presets")
	cmd.Flags().BoolVar(&k.apps, "apps", false, "Only apps")
}

func (k *kindFlags) kinds() []assets.Kind {
	var out []assets.Kind
	for _, sel := range []struct {
		on   bool
		kind assets.Kind
	}{
		{k.cars, assets.KindCar},
		{k.tracks, assets.KindTrack},
		{k.ppfilters, assets.KindPPFilter},
		{k.weather, assets.KindWeather},
		{k.apps, assets.KindApp},
	} {
		if sel.on {
			out = append(out, sel.kind)
		}
	}
	return out
}

// originFlags narrows listings by origin. No flag (or --all) keeps
// everything.
type originFlags struct {
	all   bool
	kunos bool
	dlc   bool
	mods  bool
}

func (o *originFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.all, "all", false, "Every origin (default)")
	cmd.Flags().BoolVar(&o.kunos, "kunos", false, "Only base game content")
	cmd.Flags().BoolVar(&o.dlc, "dlc", false, "Only DLC content")
	cmd.Flags().BoolVar(&o.mods, "mods", false, "Only mods")
}

func (o *originFlags) filter(list []*assets.Asset) []*assets.Asset {
	if o.all || (!o.kunos && !o.dlc && !o.mods) {
		return list
	}
	var out []*assets.Asset
	for _, a := range list {
		switch a.Origin() {
		case assets.OriginKunos:
			if o.kunos {
				out = append(out, a)
			}
		case assets.OriginDLC:
			if o.dlc {
				out = append(out, a)
			}
		default:
			if o.mods {
				out = append(out, a)
			}
		}
	}
	return out
}
