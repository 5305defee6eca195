package graph

// The seed ontology: the curated PV materials science fact set the service
// starts from when no snapshot exists. Mirrors the hand-authored domain
// ontology shipped with the app.

func entity(id, class, name, description string, attrs ...string) []Triple {
	ts := []Triple{
		{Subject: id, Predicate: PredType, Object: ClassPrefix + class},
		{Subject: id, Predicate: PredName, Object: name, Literal: true},
	}
	if description != "" {
		ts = append(ts, Triple{Subject: id, Predicate: PredDescription, Object: description, Literal: true})
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		ts = append(ts, Triple{Subject: id, Predicate: attrs[i], Object: attrs[i+1], Literal: true})
	}
	return ts
}

func rel(subject, predicate, object string) Triple {
	return Triple{Subject: subject, Predicate: predicate, Object: object}
}

// SeedTriples returns the full seed fact set in a stable order.
func SeedTriples() []Triple {
	var ts []Triple
	add := func(more ...Triple) { ts = append(ts, more...) }

	// Absorbers
	add(entity("pv:MAPbI3", "Absorber", "MAPbI3",
		"Methylammonium lead iodide, the prototypical hybrid organic-inorganic perovskite absorber.",
		"pv:bandgap_eV", "1.55", "pv:crystalStructure", "tetragonal perovskite")...)
	add(entity("pv:FAPbI3", "Absorber", "FAPbI3",
		"Formamidinium lead iodide perovskite with a near-ideal single-junction bandgap.",
		"pv:bandgap_eV", "1.48", "pv:crystalStructure", "cubic perovskite")...)
	add(entity("pv:cSi", "Absorber", "c-Si",
		"Crystalline silicon, the dominant commercial absorber material.",
		"pv:bandgap_eV", "1.12", "pv:crystalStructure", "diamond cubic")...)
	add(entity("pv:CIGS", "Absorber", "CIGS",
		"Copper indium gallium selenide thin-film absorber with tunable bandgap.",
		"pv:bandgap_eV", "1.15", "pv:crystalStructure", "chalcopyrite")...)
	add(entity("pv:CdTe", "Absorber", "CdTe",
		"Cadmium telluride thin-film absorber used in utility-scale modules.",
		"pv:bandgap_eV", "1.45", "pv:crystalStructure", "zinc blende")...)
	add(entity("pv:GaAs", "Absorber", "GaAs",
		"Gallium arsenide, record single-junction efficiency but costly.",
		"pv:bandgap_eV", "1.42", "pv:crystalStructure", "zinc blende")...)

	// Transport layers
	add(entity("pv:SpiroOMeTAD", "TransportLayer", "Spiro-OMeTAD",
		"Small-molecule hole transport layer standard in n-i-p perovskite cells.",
		"pv:carrierType", "hole")...)
	add(entity("pv:TiO2", "TransportLayer", "TiO2",
		"Mesoporous titanium dioxide electron transport layer.",
		"pv:carrierType", "electron")...)
	add(entity("pv:SnO2", "TransportLayer", "SnO2",
		"Tin oxide electron transport layer, low-temperature processable.",
		"pv:carrierType", "electron")...)
	add(entity("pv:PTAA", "TransportLayer", "PTAA",
		"Polytriarylamine hole transport polymer used in inverted perovskite cells.",
		"pv:carrierType", "hole")...)
	add(entity("pv:C60", "TransportLayer", "C60",
		"Fullerene electron transport layer for p-i-n perovskite architectures.",
		"pv:carrierType", "electron")...)

	// Electrodes and encapsulant
	add(entity("pv:ITO", "Electrode", "ITO",
		"Indium tin oxide transparent conducting electrode.")...)
	add(entity("pv:Ag", "Electrode", "Silver",
		"Screen-printed silver metallization for front and rear contacts.")...)
	add(entity("pv:Au", "Electrode", "Gold",
		"Evaporated gold back electrode used in lab-scale perovskite cells.")...)
	add(entity("pv:EVA", "Encapsulant", "EVA",
		"Ethylene-vinyl acetate encapsulant film for module lamination.")...)

	// Cell architectures
	add(entity("pv:PERC", "CellArchitecture", "PERC (Passivated Emitter and Rear Cell)",
		"Silicon architecture with dielectric rear passivation and local contacts.",
		"pv:recordEfficiency_pct", "24.5")...)
	add(entity("pv:TOPCon", "CellArchitecture", "TOPCon (Tunnel Oxide Passivated Contact)",
		"Silicon architecture with ultra-thin tunnel oxide and doped polysilicon contact.",
		"pv:recordEfficiency_pct", "26.1")...)
	add(entity("pv:SHJ", "CellArchitecture", "SHJ (Silicon Heterojunction)",
		"Amorphous/crystalline silicon heterojunction with excellent surface passivation.",
		"pv:recordEfficiency_pct", "26.8")...)
	add(entity("pv:PerovskiteSiTandem", "CellArchitecture", "Perovskite-Silicon Tandem",
		"Two-terminal tandem stacking a wide-gap perovskite top cell on silicon.",
		"pv:recordEfficiency_pct", "33.9")...)
	add(entity("pv:NIPPlanar", "CellArchitecture", "n-i-p Planar Perovskite",
		"Regular planar perovskite stack with electron contact at the substrate side.",
		"pv:recordEfficiency_pct", "25.7")...)
	add(entity("pv:PINInverted", "CellArchitecture", "p-i-n Inverted Perovskite",
		"Inverted perovskite stack with hole contact at the substrate side.",
		"pv:recordEfficiency_pct", "25.1")...)

	// Fabrication processes
	add(entity("pv:SpinCoating", "FabricationProcess", "Spin Coating",
		"Solution deposition by spinning; standard lab route for perovskite films.",
		"pv:deposition_temp_C", "100")...)
	add(entity("pv:Sputtering", "FabricationProcess", "Sputtering",
		"Physical vapor deposition of oxide and metal films.",
		"pv:deposition_temp_C", "250")...)
	add(entity("pv:ThermalEvaporation", "FabricationProcess", "Thermal Evaporation",
		"Vacuum evaporation of metals and small molecules.",
		"pv:deposition_temp_C", "120")...)
	add(entity("pv:Czochralski", "FabricationProcess", "Czochralski Growth",
		"Pulling of monocrystalline silicon ingots from the melt.",
		"pv:deposition_temp_C", "1414")...)
	add(entity("pv:PECVD", "FabricationProcess", "PECVD",
		"Plasma-enhanced chemical vapor deposition of amorphous silicon and nitrides.",
		"pv:deposition_temp_C", "400")...)
	add(entity("pv:ALD", "FabricationProcess", "Atomic Layer Deposition",
		"Self-limiting layer-by-layer growth of conformal oxide films.",
		"pv:deposition_temp_C", "150")...)

	// Characterisation techniques
	add(entity("pv:XRD", "CharacterisationTechnique", "XRD",
		"X-ray diffraction for crystal phase and orientation analysis.")...)
	add(entity("pv:SEM", "CharacterisationTechnique", "SEM",
		"Scanning electron microscopy for film morphology.")...)
	add(entity("pv:PL", "CharacterisationTechnique", "Photoluminescence",
		"Steady-state photoluminescence for optical quality screening.")...)
	add(entity("pv:TRPL", "CharacterisationTechnique", "TRPL",
		"Time-resolved photoluminescence for carrier lifetime measurement.")...)
	add(entity("pv:EQE", "CharacterisationTechnique", "EQE",
		"External quantum efficiency spectroscopy for spectral response.")...)

	// Defects
	add(entity("pv:IodideVacancy", "Defect", "Iodide Vacancy",
		"Halide vacancy acting as a shallow trap in perovskite absorbers.")...)
	add(entity("pv:IonMigration", "Defect", "Ion Migration",
		"Field-driven halide ion motion causing hysteresis and instability.")...)
	add(entity("pv:GrainBoundaryRecombination", "Defect", "Grain Boundary Recombination",
		"Non-radiative recombination at grain boundaries in polycrystalline films.")...)
	add(entity("pv:BoronOxygen", "Defect", "Boron-Oxygen Complex",
		"Metastable B-O defect in Czochralski silicon responsible for LID.")...)

	// Performance metrics
	add(entity("pv:PCE", "PerformanceMetric", "PCE",
		"Power conversion efficiency, the headline cell metric.",
		"pv:unit", "%", "pv:typicalRange", "15-26")...)
	add(entity("pv:Voc", "PerformanceMetric", "Voc",
		"Open-circuit voltage.",
		"pv:unit", "V", "pv:typicalRange", "0.6-1.2")...)
	add(entity("pv:Jsc", "PerformanceMetric", "Jsc",
		"Short-circuit current density.",
		"pv:unit", "mA/cm2", "pv:typicalRange", "20-42")...)
	add(entity("pv:FF", "PerformanceMetric", "Fill Factor",
		"Squareness of the J-V curve.",
		"pv:unit", "%", "pv:typicalRange", "70-85")...)

	// Degradation mechanisms
	add(entity("pv:MoistureDecomposition", "DegradationMechanism", "Moisture-Induced Decomposition",
		"Hydrolysis of the perovskite lattice under humidity exposure.")...)
	add(entity("pv:LID", "DegradationMechanism", "Light-Induced Degradation",
		"Efficiency loss in silicon cells under initial illumination.")...)
	add(entity("pv:ThermalDegradation", "DegradationMechanism", "Thermal Degradation",
		"Phase segregation and contact damage at elevated temperature.")...)
	add(entity("pv:UVDegradation", "DegradationMechanism", "UV Degradation",
		"Photocatalytic damage at oxide interfaces under UV exposure.")...)

	// Institutions and researchers
	add(entity("pv:NREL", "Institution", "NREL",
		"US National Renewable Energy Laboratory, keeper of the efficiency chart.",
		"pv:country", "USA", "pv:founded", "1977")...)
	add(entity("pv:EPFL", "Institution", "EPFL",
		"Swiss federal institute with a long perovskite and dye-cell tradition.",
		"pv:country", "Switzerland", "pv:founded", "1969")...)
	add(entity("pv:FraunhoferISE", "Institution", "Fraunhofer ISE",
		"European solar energy research institute in Freiburg.",
		"pv:country", "Germany", "pv:founded", "1981")...)
	add(entity("pv:OxfordPV", "Institution", "Oxford PV",
		"Perovskite-silicon tandem manufacturer spun out of Oxford.",
		"pv:country", "UK", "pv:founded", "2010")...)
	add(entity("pv:Gratzel", "Researcher", "Michael Gratzel",
		"Pioneer of dye-sensitized and perovskite solar cells.")...)
	add(entity("pv:Snaith", "Researcher", "Henry Snaith",
		"Demonstrated the first efficient planar perovskite solar cells.")...)
	add(entity("pv:Miyasaka", "Researcher", "Tsutomu Miyasaka",
		"Reported the first perovskite-sensitized solar cell in 2009.")...)

	// Standards
	add(entity("pv:IEC61215", "StandardTest", "IEC 61215",
		"Design qualification and type approval for terrestrial PV modules.")...)

	// Relations
	add(
		rel("pv:MAPbI3", "pv:usedIn", "pv:NIPPlanar"),
		rel("pv:MAPbI3", "pv:usedIn", "pv:PINInverted"),
		rel("pv:FAPbI3", "pv:usedIn", "pv:PerovskiteSiTandem"),
		rel("pv:cSi", "pv:usedIn", "pv:PERC"),
		rel("pv:cSi", "pv:usedIn", "pv:TOPCon"),
		rel("pv:cSi", "pv:usedIn", "pv:SHJ"),
		rel("pv:cSi", "pv:usedIn", "pv:PerovskiteSiTandem"),
		rel("pv:SpiroOMeTAD", "pv:usedIn", "pv:NIPPlanar"),
		rel("pv:SnO2", "pv:usedIn", "pv:NIPPlanar"),
		rel("pv:TiO2", "pv:usedIn", "pv:NIPPlanar"),
		rel("pv:PTAA", "pv:usedIn", "pv:PINInverted"),
		rel("pv:C60", "pv:usedIn", "pv:PINInverted"),
		rel("pv:ITO", "pv:usedIn", "pv:SHJ"),
		rel("pv:Ag", "pv:usedIn", "pv:PERC"),
		rel("pv:Au", "pv:usedIn", "pv:NIPPlanar"),

		rel("pv:MAPbI3", "pv:fabricatedBy", "pv:SpinCoating"),
		rel("pv:FAPbI3", "pv:fabricatedBy", "pv:SpinCoating"),
		rel("pv:cSi", "pv:fabricatedBy", "pv:Czochralski"),
		rel("pv:ITO", "pv:fabricatedBy", "pv:Sputtering"),
		rel("pv:C60", "pv:fabricatedBy", "pv:ThermalEvaporation"),
		rel("pv:SnO2", "pv:fabricatedBy", "pv:ALD"),
		rel("pv:Au", "pv:fabricatedBy", "pv:ThermalEvaporation"),

		rel("pv:MAPbI3", "pv:characterisedBy", "pv:XRD"),
		rel("pv:MAPbI3", "pv:characterisedBy", "pv:PL"),
		rel("pv:FAPbI3", "pv:characterisedBy", "pv:TRPL"),
		rel("pv:CIGS", "pv:characterisedBy", "pv:SEM"),
		rel("pv:cSi", "pv:characterisedBy", "pv:EQE"),

		rel("pv:MAPbI3", "pv:hasDefect", "pv:IodideVacancy"),
		rel("pv:MAPbI3", "pv:hasDefect", "pv:IonMigration"),
		rel("pv:CIGS", "pv:hasDefect", "pv:GrainBoundaryRecombination"),
		rel("pv:cSi", "pv:hasDefect", "pv:BoronOxygen"),

		rel("pv:IodideVacancy", "pv:affectsMetric", "pv:Voc"),
		rel("pv:IonMigration", "pv:affectsMetric", "pv:FF"),
		rel("pv:IonMigration", "pv:affectsMetric", "pv:PCE"),
		rel("pv:GrainBoundaryRecombination", "pv:affectsMetric", "pv:Voc"),
		rel("pv:BoronOxygen", "pv:affectsMetric", "pv:PCE"),

		rel("pv:MoistureDecomposition", "pv:causedBy", "pv:IodideVacancy"),
		rel("pv:LID", "pv:causedBy", "pv:BoronOxygen"),
		rel("pv:ThermalDegradation", "pv:causedBy", "pv:IonMigration"),

		rel("pv:MAPbI3", "pv:compatibleWith", "pv:SpiroOMeTAD"),
		rel("pv:MAPbI3", "pv:compatibleWith", "pv:SnO2"),
		rel("pv:FAPbI3", "pv:compatibleWith", "pv:C60"),
		rel("pv:cSi", "pv:compatibleWith", "pv:ITO"),

		rel("pv:Gratzel", "pv:studiedAt", "pv:EPFL"),
		rel("pv:Snaith", "pv:studiedAt", "pv:OxfordPV"),
	)

	return ts
}
