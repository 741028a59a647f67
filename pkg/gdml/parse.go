package gdml

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/chazu/hadesgeom/pkg/material"
	"github.com/chazu/hadesgeom/pkg/scene"
	"github.com/chazu/hadesgeom/pkg/solid"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ---------------------------------------------------------------------------
// Document shape
// ---------------------------------------------------------------------------

type xref struct {
	Ref string `xml:"ref,attr"`
}

type xvec struct {
	X string `xml:"x,attr"`
	Y string `xml:"y,attr"`
	Z string `xml:"z,attr"`
}

type xelement struct {
	Name   string `xml:"name,attr"`
	Symbol string `xml:"symbol,attr"`
	Z      int    `xml:"Z,attr"`
	Mass   string `xml:"mass,attr"`
}

type xfraction struct {
	Ref string `xml:"ref,attr"`
	N   string `xml:"n,attr"`
}

type xmaterial struct {
	Name      string      `xml:"name,attr"`
	Density   string      `xml:"density,attr"`
	Fractions []xfraction `xml:"fraction"`
}

type xbox struct {
	Name string `xml:"name,attr"`
	X    string `xml:"x,attr"`
	Y    string `xml:"y,attr"`
	Z    string `xml:"z,attr"`
}

type xtube struct {
	Name     string `xml:"name,attr"`
	RMin     string `xml:"rmin,attr"`
	RMax     string `xml:"rmax,attr"`
	Z        string `xml:"z,attr"`
	StartPhi string `xml:"startphi,attr"`
	DeltaPhi string `xml:"deltaphi,attr"`
}

type xzplane struct {
	Z    string `xml:"z,attr"`
	RMin string `xml:"rmin,attr"`
	RMax string `xml:"rmax,attr"`
}

type xpolycone struct {
	Name     string    `xml:"name,attr"`
	StartPhi string    `xml:"startphi,attr"`
	DeltaPhi string    `xml:"deltaphi,attr"`
	ZPlanes  []xzplane `xml:"zplane"`
}

type xboolean struct {
	Name     string `xml:"name,attr"`
	First    xref   `xml:"first"`
	Second   xref   `xml:"second"`
	Position xvec   `xml:"position"`
	Rotation xvec   `xml:"rotation"`
}

// xsolid is one entry of the solids section, tagged by element name.
type xsolid struct {
	kind     string
	box      xbox
	tube     xtube
	polycone xpolycone
	boolean  xboolean
}

// xsolids preserves document order across the mixed solid kinds, which
// matters because boolean nodes may only reference already-defined solids.
type xsolids struct {
	lunit string
	aunit string
	items []xsolid
}

func (s *xsolids) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "lunit":
			s.lunit = a.Value
		case "aunit":
			s.aunit = a.Value
		}
	}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			it := xsolid{kind: t.Name.Local}
			switch t.Name.Local {
			case "box":
				err = d.DecodeElement(&it.box, &t)
			case "tube":
				err = d.DecodeElement(&it.tube, &t)
			case "polycone":
				err = d.DecodeElement(&it.polycone, &t)
			case "union", "subtraction", "intersection":
				err = d.DecodeElement(&it.boolean, &t)
			default:
				return fmt.Errorf("unknown solid kind %q", t.Name.Local)
			}
			if err != nil {
				return err
			}
			s.items = append(s.items, it)
		case xml.EndElement:
			return nil
		}
	}
}

type xphysvol struct {
	CopyNumber string `xml:"copynumber,attr"`
	VolumeRef  xref   `xml:"volumeref"`
	Position   xvec   `xml:"position"`
	Rotation   xvec   `xml:"rotation"`
}

type xvolume struct {
	Name        string     `xml:"name,attr"`
	MaterialRef xref       `xml:"materialref"`
	SolidRef    xref       `xml:"solidref"`
	Physvols    []xphysvol `xml:"physvol"`
}

type xdoc struct {
	XMLName   xml.Name `xml:"gdml"`
	Materials struct {
		Elements  []xelement  `xml:"element"`
		Materials []xmaterial `xml:"material"`
	} `xml:"materials"`
	Solids    xsolids `xml:"solids"`
	Structure struct {
		Volumes []xvolume `xml:"volume"`
	} `xml:"structure"`
	Setup struct {
		World xref `xml:"world"`
	} `xml:"setup"`
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// Parse turns a substituted geometry description into a scene graph backed
// by a fresh session. Any malformation, including leftover unsubstituted
// tokens, fails with an error wrapping ErrTemplateParse.
func Parse(text string) (*scene.SceneGraph, error) {
	var doc xdoc
	if err := xml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	g, err := buildGraph(&doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return g, nil
}

func buildGraph(doc *xdoc) (*scene.SceneGraph, error) {
	lfac, err := lengthFactor(doc.Solids.lunit)
	if err != nil {
		return nil, err
	}
	afac, err := angleFactor(doc.Solids.aunit)
	if err != nil {
		return nil, err
	}

	session := scene.NewSession()

	// Materials.
	elements := make(map[string]*material.Element)
	for _, xe := range doc.Materials.Elements {
		mass, err := atof(xe.Mass, "element %s mass", xe.Symbol)
		if err != nil {
			return nil, err
		}
		el, err := session.Materials.RegisterElement(material.Element{
			Name: xe.Name, Symbol: xe.Symbol, AtomicNum: xe.Z, AtomicMass: mass,
		})
		if err != nil {
			return nil, err
		}
		elements[xe.Symbol] = el
	}
	materials := make(map[string]*material.Material)
	for _, xm := range doc.Materials.Materials {
		density, err := atof(xm.Density, "material %s density", xm.Name)
		if err != nil {
			return nil, err
		}
		comps := make([]material.Component, 0, len(xm.Fractions))
		for _, f := range xm.Fractions {
			el, ok := elements[f.Ref]
			if !ok {
				return nil, fmt.Errorf("material %s references undefined element %q", xm.Name, f.Ref)
			}
			n, err := atof(f.N, "material %s fraction %s", xm.Name, f.Ref)
			if err != nil {
				return nil, err
			}
			comps = append(comps, material.Component{Element: el, Fraction: n})
		}
		m, err := session.Materials.RegisterMaterial(xm.Name, density, comps)
		if err != nil {
			return nil, err
		}
		materials[xm.Name] = m
	}

	// Solids, in document order.
	solids := make(map[string]solid.Solid)
	for _, it := range doc.Solids.items {
		s, err := buildSolid(it, solids, lfac, afac)
		if err != nil {
			return nil, err
		}
		if _, ok := solids[s.Name()]; ok {
			return nil, fmt.Errorf("duplicate solid name %q", s.Name())
		}
		solids[s.Name()] = s
	}

	// Volumes, in document order; physvol refs resolve to earlier volumes.
	for _, xv := range doc.Structure.Volumes {
		mat, ok := materials[xv.MaterialRef.Ref]
		if !ok {
			return nil, fmt.Errorf("volume %s references undefined material %q", xv.Name, xv.MaterialRef.Ref)
		}
		so, ok := solids[xv.SolidRef.Ref]
		if !ok {
			return nil, fmt.Errorf("volume %s references undefined solid %q", xv.Name, xv.SolidRef.Ref)
		}
		lv, err := session.NewLogicalVolume(xv.Name, so, mat)
		if err != nil {
			return nil, err
		}
		for i, pv := range xv.Physvols {
			child := session.Volume(pv.VolumeRef.Ref)
			if child == nil {
				return nil, fmt.Errorf("volume %s physvol %d references undefined volume %q", xv.Name, i, pv.VolumeRef.Ref)
			}
			tr, err := transformOf(pv.Position, pv.Rotation, lfac, afac, "volume "+xv.Name)
			if err != nil {
				return nil, err
			}
			copyNum := 0
			if pv.CopyNumber != "" {
				copyNum, err = strconv.Atoi(pv.CopyNumber)
				if err != nil {
					return nil, fmt.Errorf("volume %s physvol %d copynumber: %v", xv.Name, i, err)
				}
			}
			if _, err := session.Place(lv, child, tr, copyNum); err != nil {
				return nil, err
			}
		}
	}

	root := session.Volume(doc.Setup.World.Ref)
	if root == nil {
		return nil, fmt.Errorf("setup references undefined world volume %q", doc.Setup.World.Ref)
	}
	return scene.Graph(root), nil
}

func buildSolid(it xsolid, solids map[string]solid.Solid, lfac, afac float64) (solid.Solid, error) {
	switch it.kind {
	case "box":
		x, err := atof(it.box.X, "box %s x", it.box.Name)
		if err != nil {
			return nil, err
		}
		y, err := atof(it.box.Y, "box %s y", it.box.Name)
		if err != nil {
			return nil, err
		}
		z, err := atof(it.box.Z, "box %s z", it.box.Name)
		if err != nil {
			return nil, err
		}
		// Box extents are full lengths in the description.
		return solid.NewBox(it.box.Name, x*lfac/2, y*lfac/2, z*lfac/2), nil

	case "tube":
		rmin, err := atof(it.tube.RMin, "tube %s rmin", it.tube.Name)
		if err != nil {
			return nil, err
		}
		rmax, err := atof(it.tube.RMax, "tube %s rmax", it.tube.Name)
		if err != nil {
			return nil, err
		}
		z, err := atof(it.tube.Z, "tube %s z", it.tube.Name)
		if err != nil {
			return nil, err
		}
		sphi, err := atofDefault(it.tube.StartPhi, 0, "tube %s startphi", it.tube.Name)
		if err != nil {
			return nil, err
		}
		dphi, err := atofDefault(it.tube.DeltaPhi, 2*math.Pi/afac, "tube %s deltaphi", it.tube.Name)
		if err != nil {
			return nil, err
		}
		// Tube z is the full height in the description.
		return solid.NewTube(it.tube.Name, rmin*lfac, rmax*lfac, z*lfac/2, sphi*afac, dphi*afac), nil

	case "polycone":
		planes := make([]solid.ZPlane, 0, len(it.polycone.ZPlanes))
		for i, p := range it.polycone.ZPlanes {
			z, err := atof(p.Z, "polycone %s zplane %d z", it.polycone.Name, i)
			if err != nil {
				return nil, err
			}
			rmin, err := atof(p.RMin, "polycone %s zplane %d rmin", it.polycone.Name, i)
			if err != nil {
				return nil, err
			}
			rmax, err := atof(p.RMax, "polycone %s zplane %d rmax", it.polycone.Name, i)
			if err != nil {
				return nil, err
			}
			planes = append(planes, solid.ZPlane{Z: z * lfac, InnerR: rmin * lfac, OuterR: rmax * lfac})
		}
		sphi, err := atofDefault(it.polycone.StartPhi, 0, "polycone %s startphi", it.polycone.Name)
		if err != nil {
			return nil, err
		}
		dphi, err := atofDefault(it.polycone.DeltaPhi, 2*math.Pi/afac, "polycone %s deltaphi", it.polycone.Name)
		if err != nil {
			return nil, err
		}
		return solid.NewPolycone(it.polycone.Name, planes, sphi*afac, dphi*afac)

	case "union", "subtraction", "intersection":
		b := it.boolean
		first, ok := solids[b.First.Ref]
		if !ok {
			return nil, fmt.Errorf("%s %s references undefined solid %q", it.kind, b.Name, b.First.Ref)
		}
		second, ok := solids[b.Second.Ref]
		if !ok {
			return nil, fmt.Errorf("%s %s references undefined solid %q", it.kind, b.Name, b.Second.Ref)
		}
		tr, err := transformOf(b.Position, b.Rotation, lfac, afac, it.kind+" "+b.Name)
		if err != nil {
			return nil, err
		}
		switch it.kind {
		case "union":
			return solid.NewUnion(b.Name, first, second, tr), nil
		case "subtraction":
			return solid.NewSubtraction(b.Name, first, second, tr), nil
		default:
			return solid.NewIntersection(b.Name, first, second, tr), nil
		}

	default:
		return nil, fmt.Errorf("unknown solid kind %q", it.kind)
	}
}

func transformOf(pos, rot xvec, lfac, afac float64, ctx string) (solid.Transform, error) {
	p, err := vecOf(pos, lfac, ctx+" position")
	if err != nil {
		return solid.Transform{}, err
	}
	r, err := vecOf(rot, afac, ctx+" rotation")
	if err != nil {
		return solid.Transform{}, err
	}
	return solid.Transform{Rotation: r, Translation: p}, nil
}

func vecOf(v xvec, fac float64, ctx string) (v3.Vec, error) {
	x, err := atofDefault(v.X, 0, "%s x", ctx)
	if err != nil {
		return v3.Vec{}, err
	}
	y, err := atofDefault(v.Y, 0, "%s y", ctx)
	if err != nil {
		return v3.Vec{}, err
	}
	z, err := atofDefault(v.Z, 0, "%s z", ctx)
	if err != nil {
		return v3.Vec{}, err
	}
	return v3.Vec{X: x * fac, Y: y * fac, Z: z * fac}, nil
}

func lengthFactor(unit string) (float64, error) {
	switch unit {
	case "", "mm":
		return 1, nil
	case "cm":
		return 10, nil
	case "m":
		return 1000, nil
	default:
		return 0, fmt.Errorf("unknown length unit %q", unit)
	}
}

func angleFactor(unit string) (float64, error) {
	switch unit {
	case "", "rad":
		return 1, nil
	case "deg":
		return math.Pi / 180, nil
	default:
		return 0, fmt.Errorf("unknown angle unit %q", unit)
	}
}

func atof(s, format string, args ...any) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf(format+": bad number %q", append(args, s)...)
	}
	return v, nil
}

func atofDefault(s string, def float64, format string, args ...any) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return atof(s, format, args...)
}
