package constants

// Canonical fabrication operation names.
const (
	OpCutStraight   = "Cut-Straight"
	OpCutMiter      = "Cut-Miter"
	OpCutBevel      = "Cut-Bevel"
	OpCutCope       = "Cut-Cope"
	OpCutDoubleCope = "Cut-Double Cope"

	OpDrillHoles       = "Drill Holes"
	OpPunchHoles       = "Punch Holes"
	OpDrillTapHoles    = "Drill & Tap Holes"
	OpCountersinkHoles = "Countersink Holes"
	OpSlottedHoles     = "Slotted Holes"

	OpWeldFillet = "Welding-Fillet"
	OpWeldCJP    = "Welding-CJP"
	OpWeldPJP    = "Welding-PJP"
	OpWeldPlug   = "Welding-Plug"
	OpWeldStud   = "Welding-Stud"

	OpConnStandardWF = "Connection-Standard WF"
	OpConnMomentWF   = "Connection-Moment WF"
	OpConnStandardC  = "Connection-Standard C/MC"
	OpConnMomentC    = "Connection-Moment C/MC"

	OpPrepSP2  = "Prep-SP2 Hand Tool"
	OpPrepSP3  = "Prep-SP3 Power Tool"
	OpPrepSP6  = "Prep-SP6 Commercial Blast"
	OpPrepSP10 = "Prep-SP10 Near White Blast"

	OpGalvanizingConnections = "Galvanizing-Connections"
	OpCoatingPrefix          = "Coating-"
	OpCoatingMixed           = "Coating-Mixed"
)

// Connection kinds emitted by the connection table before the shape family is applied.
const (
	ConnStandard = "standard"
	ConnMoment   = "moment"
)

// LaborCodes are the five vendor-code lookup tables. Keys are upper case.
type LaborCodes struct {
	EndCut     map[string]string
	Hole       map[string]string
	Weld       map[string]string
	Connection map[string]string
	Prep       map[string]string

	// Accumulate lists operations whose quantities add when merged.
	// Every other operation keeps its first occurrence.
	Accumulate map[string]bool
}

func DefaultLaborCodes() *LaborCodes {
	return &LaborCodes{
		EndCut: map[string]string{
			"S":           OpCutStraight,
			"SQ":          OpCutStraight,
			"STRAIGHT":    OpCutStraight,
			"SQUARE":      OpCutStraight,
			"M":           OpCutMiter,
			"MITER":       OpCutMiter,
			"MITRE":       OpCutMiter,
			"B":           OpCutBevel,
			"BEVEL":       OpCutBevel,
			"C":           OpCutCope,
			"COPE":        OpCutCope,
			"DC":          OpCutDoubleCope,
			"DOUBLE COPE": OpCutDoubleCope,
			"DBL COPE":    OpCutDoubleCope,
		},
		Hole: map[string]string{
			"D":           OpDrillHoles,
			"DRILL":       OpDrillHoles,
			"P":           OpPunchHoles,
			"PUNCH":       OpPunchHoles,
			"T":           OpDrillTapHoles,
			"TAP":         OpDrillTapHoles,
			"DRILL & TAP": OpDrillTapHoles,
			"CS":          OpCountersinkHoles,
			"CSK":         OpCountersinkHoles,
			"COUNTERSINK": OpCountersinkHoles,
			"SL":          OpSlottedHoles,
			"SLOT":        OpSlottedHoles,
			"SLOTTED":     OpSlottedHoles,
		},
		Weld: map[string]string{
			"F":          OpWeldFillet,
			"FILLET":     OpWeldFillet,
			"CJP":        OpWeldCJP,
			"FULL PEN":   OpWeldCJP,
			"PJP":        OpWeldPJP,
			"PART PEN":   OpWeldPJP,
			"PLUG":       OpWeldPlug,
			"STUD":       OpWeldStud,
			"SHEAR STUD": OpWeldStud,
		},
		Connection: map[string]string{
			"S":        ConnStandard,
			"STD":      ConnStandard,
			"STANDARD": ConnStandard,
			"SHEAR":    ConnStandard,
			"M":        ConnMoment,
			"MOM":      ConnMoment,
			"MOMENT":   ConnMoment,
		},
		Prep: map[string]string{
			"SP2":        OpPrepSP2,
			"SSPC-SP2":   OpPrepSP2,
			"HAND TOOL":  OpPrepSP2,
			"SP3":        OpPrepSP3,
			"SSPC-SP3":   OpPrepSP3,
			"POWER TOOL": OpPrepSP3,
			"SP6":        OpPrepSP6,
			"SSPC-SP6":   OpPrepSP6,
			"BLAST":      OpPrepSP6,
			"SP10":       OpPrepSP10,
			"SSPC-SP10":  OpPrepSP10,
			"NEAR WHITE": OpPrepSP10,
		},
		Accumulate: map[string]bool{
			OpDrillHoles:       true,
			OpPunchHoles:       true,
			OpDrillTapHoles:    true,
			OpCountersinkHoles: true,
			OpSlottedHoles:     true,
			OpConnStandardWF:   true,
			OpConnMomentWF:     true,
			OpConnStandardC:    true,
			OpConnMomentC:      true,
		},
	}
}
