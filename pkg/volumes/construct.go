package volumes

import (
	"go.uber.org/zap"

	"github.com/chazu/hadesgeom/pkg/logging"
	"github.com/chazu/hadesgeom/pkg/material"
	"github.com/chazu/hadesgeom/pkg/metadata"
	"github.com/chazu/hadesgeom/pkg/scene"
	"github.com/chazu/hadesgeom/pkg/solid"
)

// worldHalf is the half-extent of the world box in mm (a 20 m cube).
const worldHalf = 10000.0

// Config selects which components Construct assembles and which metadata
// tables describe them. Cryostat is required; the rest are optional.
type Config struct {
	Backend Backend

	Cryostat metadata.Table

	Wrap *metadata.Table

	LeadCastle  *metadata.Table
	CastleTable int

	Source     *metadata.Table
	SourceType string
	// SourceZ is the source position above the cryostat bottom, in mm.
	SourceZ float64
}

// Construct assembles the full measurement geometry under a vacuum world
// box: the lead castle around a cryostat, the vacuum cavity inside it, an
// optional detector wrap inside the cavity, and an optional calibration
// source above the cryostat. Components are built in their own sessions
// and adopted into the world session.
//
// cfg.Backend applies to the dual-backend components (castle, cryostat,
// wrap). The vacuum cavity is always built procedurally and sources always
// through templates; those kinds have a single implementation and their
// entry points reject the other selector.
func Construct(cfg Config) (*scene.SceneGraph, error) {
	sess := scene.NewSession()
	vac, err := material.Vacuum(sess.Materials)
	if err != nil {
		return nil, err
	}
	world, err := sess.NewLogicalVolume("world",
		solid.NewBox("world", worldHalf, worldHalf, worldHalf), vac)
	if err != nil {
		return nil, err
	}

	if cfg.LeadCastle != nil {
		castle, err := LeadCastle(*cfg.LeadCastle, cfg.CastleTable, cfg.Backend)
		if err != nil {
			return nil, err
		}
		if err := adoptAndPlace(sess, world, castle, solid.Identity); err != nil {
			return nil, err
		}
	}

	cryostat, err := Cryostat(cfg.Cryostat, cfg.Backend)
	if err != nil {
		return nil, err
	}
	posFromBottom := 0.0
	if cfg.Cryostat.Has("position_from_bottom") {
		posFromBottom, err = cfg.Cryostat.LengthIn("position_from_bottom", metadata.Millimeter)
		if err != nil {
			return nil, err
		}
	}
	if err := adoptAndPlace(sess, world, cryostat, solid.Translate(0, 0, posFromBottom)); err != nil {
		return nil, err
	}

	cavity, err := VacuumCavity(cfg.Cryostat, BackendProcedural)
	if err != nil {
		return nil, err
	}
	cd, err := readCryostatDims(cfg.Cryostat)
	if err != nil {
		return nil, err
	}
	if err := adoptAndPlace(sess, cryostat, cavity, solid.Translate(0, 0, cd.cavityOffset)); err != nil {
		return nil, err
	}

	if cfg.Wrap != nil {
		wrap, err := Wrap(*cfg.Wrap, cfg.Backend)
		if err != nil {
			return nil, err
		}
		if err := adoptAndPlace(sess, cavity, wrap, solid.Identity); err != nil {
			return nil, err
		}
	}

	if cfg.Source != nil {
		src, err := Source(cfg.SourceType, *cfg.Source, BackendTemplate)
		if err != nil {
			return nil, err
		}
		tr := solid.Translate(0, 0, posFromBottom+cfg.SourceZ)
		if err := adoptAndPlace(sess, world, src, tr); err != nil {
			return nil, err
		}
	}

	logging.Info("constructed world",
		zap.String("backend", cfg.Backend.String()),
		zap.Int("volumes", sess.VolumeCount()))
	return scene.Graph(world), nil
}

func adoptAndPlace(sess *scene.Session, mother, daughter *scene.LogicalVolume, tr solid.Transform) error {
	if err := sess.AdoptRecursive(daughter); err != nil {
		return err
	}
	_, err := sess.Place(mother, daughter, tr, 1)
	return err
}
