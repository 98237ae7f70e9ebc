package wavecollapse

import (
	"strconv"

	"tilewave/internal/core"
)

// Parameters reports the session configuration and run progress.
func (w *World) Parameters() core.ParameterSnapshot {
	g := w.grid
	groups := []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				int64Param("seed", "Seed", w.seed),
				stringParam("seeding", "Seeding", w.seedingLabel()),
				intParam("stride", "Stride", w.cfg.Stride),
				intParam("spt", "Steps per tick", w.cfg.StepsPerTick),
			},
		},
		{
			Name: "Tiles",
			Params: []core.Parameter{
				stringParam("tiles", "Tile set", w.cfg.Tiles),
				intParam("types", "Tile types", w.reg.Count()),
			},
		},
		{
			Name: "Progress",
			Params: []core.Parameter{
				intParam("steps", "Steps", g.Steps()),
				intParam("collapsed", "Collapsed", g.Collapsed()),
				intParam("open", "Open", g.OpenCount()),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func (w *World) seedingLabel() string {
	if w.cfg.Seeding == "" {
		return SeedingLattice
	}
	return w.cfg.Seeding
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
