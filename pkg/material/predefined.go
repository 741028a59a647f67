package material

// Canonical element table. Every stock material draws from this one set so
// that components built in a shared session never trip the conflict check.
var (
	Hydrogen  = Element{Name: "Hydrogen", Symbol: "H", AtomicNum: 1, AtomicMass: 1.008}
	Carbon    = Element{Name: "Carbon", Symbol: "C", AtomicNum: 6, AtomicMass: 12.011}
	Oxygen    = Element{Name: "Oxygen", Symbol: "O", AtomicNum: 8, AtomicMass: 15.999}
	Aluminium = Element{Name: "Aluminium", Symbol: "Al", AtomicNum: 13, AtomicMass: 26.982}
	Copper    = Element{Name: "Copper", Symbol: "Cu", AtomicNum: 29, AtomicMass: 63.546}
	Lead      = Element{Name: "Lead", Symbol: "Pb", AtomicNum: 82, AtomicMass: 207.2}
	Bismuth   = Element{Name: "Bismuth", Symbol: "Bi", AtomicNum: 83, AtomicMass: 208.98}
)

// HD1000 registers the polyethylene-like HD1000 shielding plastic, (C2H4)n.
func HD1000(r *Registry) (*Material, error) {
	h, err := r.RegisterElement(Hydrogen)
	if err != nil {
		return nil, err
	}
	c, err := r.RegisterElement(Carbon)
	if err != nil {
		return nil, err
	}
	total := 4*Hydrogen.AtomicMass + 2*Carbon.AtomicMass
	return r.RegisterMaterial("HD1000", 0.93, []Component{
		{Element: h, Fraction: 4 * Hydrogen.AtomicMass / total},
		{Element: c, Fraction: 2 * Carbon.AtomicMass / total},
	})
}

// Mylar registers biaxially-oriented PET, C10H8O4, used for detector wraps.
func Mylar(r *Registry) (*Material, error) {
	c, err := r.RegisterElement(Carbon)
	if err != nil {
		return nil, err
	}
	h, err := r.RegisterElement(Hydrogen)
	if err != nil {
		return nil, err
	}
	o, err := r.RegisterElement(Oxygen)
	if err != nil {
		return nil, err
	}
	total := 10*Carbon.AtomicMass + 8*Hydrogen.AtomicMass + 4*Oxygen.AtomicMass
	return r.RegisterMaterial("Mylar", 1.4, []Component{
		{Element: c, Fraction: 10 * Carbon.AtomicMass / total},
		{Element: h, Fraction: 8 * Hydrogen.AtomicMass / total},
		{Element: o, Fraction: 4 * Oxygen.AtomicMass / total},
	})
}

// EnAw2011T8 registers the EN_AW-2011T8 free-machining aluminium alloy used
// for cryostat and holder bodies.
func EnAw2011T8(r *Registry) (*Material, error) {
	al, err := r.RegisterElement(Aluminium)
	if err != nil {
		return nil, err
	}
	cu, err := r.RegisterElement(Copper)
	if err != nil {
		return nil, err
	}
	pb, err := r.RegisterElement(Lead)
	if err != nil {
		return nil, err
	}
	bi, err := r.RegisterElement(Bismuth)
	if err != nil {
		return nil, err
	}
	return r.RegisterMaterial("EN_AW-2011T8", 2.84, []Component{
		{Element: al, Fraction: 0.932},
		{Element: cu, Fraction: 0.06},
		{Element: pb, Fraction: 0.004},
		{Element: bi, Fraction: 0.004},
	})
}

// PureAluminium registers plain aluminium.
func PureAluminium(r *Registry) (*Material, error) {
	al, err := r.RegisterElement(Aluminium)
	if err != nil {
		return nil, err
	}
	return r.RegisterMaterial("Al", 2.7, []Component{{Element: al, Fraction: 1.0}})
}

// PureLead registers shielding lead under its Geant4-conventional name.
func PureLead(r *Registry) (*Material, error) {
	pb, err := r.RegisterElement(Lead)
	if err != nil {
		return nil, err
	}
	return r.RegisterMaterial("G4_Pb", 11.35, []Component{{Element: pb, Fraction: 1.0}})
}

// PureCopper registers copper under its Geant4-conventional name.
func PureCopper(r *Registry) (*Material, error) {
	cu, err := r.RegisterElement(Copper)
	if err != nil {
		return nil, err
	}
	return r.RegisterMaterial("G4_Cu", 8.96, []Component{{Element: cu, Fraction: 1.0}})
}

// Vacuum registers interstellar-grade vacuum under its Geant4 name.
func Vacuum(r *Registry) (*Material, error) {
	h, err := r.RegisterElement(Hydrogen)
	if err != nil {
		return nil, err
	}
	return r.RegisterMaterial("G4_Galactic", 1e-25, []Component{{Element: h, Fraction: 1.0}})
}

// Epoxy registers the bisphenol-A epoxy, C18H19O3, potting the Th source.
func Epoxy(r *Registry) (*Material, error) {
	c, err := r.RegisterElement(Carbon)
	if err != nil {
		return nil, err
	}
	h, err := r.RegisterElement(Hydrogen)
	if err != nil {
		return nil, err
	}
	o, err := r.RegisterElement(Oxygen)
	if err != nil {
		return nil, err
	}
	total := 18*Carbon.AtomicMass + 19*Hydrogen.AtomicMass + 3*Oxygen.AtomicMass
	return r.RegisterMaterial("Epoxy", 1.2, []Component{
		{Element: c, Fraction: 18 * Carbon.AtomicMass / total},
		{Element: h, Fraction: 19 * Hydrogen.AtomicMass / total},
		{Element: o, Fraction: 3 * Oxygen.AtomicMass / total},
	})
}
