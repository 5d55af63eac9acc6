package values

// Well-known OS-supplied icon ids.
const (
	IconApplication uint16 = 32512
	IconError       uint16 = 32513
	IconQuestion    uint16 = 32514
	IconWarning     uint16 = 32515
	IconInformation uint16 = 32516
	IconWinLogo     uint16 = 32517
	IconShield      uint16 = 32518
)

// Well-known OS-supplied cursor ids.
const (
	CursorArrow       uint16 = 32512
	CursorIBeam       uint16 = 32513
	CursorWait        uint16 = 32514
	CursorCross       uint16 = 32515
	CursorUpArrow     uint16 = 32516
	CursorSizeNWSE    uint16 = 32642
	CursorSizeNESW    uint16 = 32643
	CursorSizeWE      uint16 = 32644
	CursorSizeNS      uint16 = 32645
	CursorSizeAll     uint16 = 32646
	CursorNo          uint16 = 32648
	CursorHand        uint16 = 32649
	CursorAppStarting uint16 = 32650
	CursorHelp        uint16 = 32651
	CursorPin         uint16 = 32671
	CursorPerson      uint16 = 32672
)

// Obsolete cursor ids. The platform keeps them defined but they no longer
// map to a cursor, so loading them is always a no-op.
const (
	CursorReservedSize   uint16 = 32640
	CursorReservedIcon   uint16 = 32641
	CursorReservedIcoCur uint16 = 32647
)

var reservedCursorIDs = map[uint16]struct{}{
	CursorReservedSize:   {},
	CursorReservedIcon:   {},
	CursorReservedIcoCur: {},
}

// IsReservedCursorID reports whether id is one of the unusable cursor ids.
func IsReservedCursorID(id uint16) bool {
	_, ok := reservedCursorIDs[id]
	return ok
}

var systemIconNames = map[string]uint16{
	"application": IconApplication,
	"error":       IconError,
	"hand":        IconError,
	"question":    IconQuestion,
	"warning":     IconWarning,
	"exclamation": IconWarning,
	"information": IconInformation,
	"asterisk":    IconInformation,
	"winlogo":     IconWinLogo,
	"shield":      IconShield,
}

var systemCursorNames = map[string]uint16{
	"arrow":       CursorArrow,
	"ibeam":       CursorIBeam,
	"wait":        CursorWait,
	"cross":       CursorCross,
	"uparrow":     CursorUpArrow,
	"size":        CursorReservedSize,
	"icon":        CursorReservedIcon,
	"sizenwse":    CursorSizeNWSE,
	"sizenesw":    CursorSizeNESW,
	"sizewe":      CursorSizeWE,
	"sizens":      CursorSizeNS,
	"sizeall":     CursorSizeAll,
	"icocur":      CursorReservedIcoCur,
	"no":          CursorNo,
	"hand":        CursorHand,
	"appstarting": CursorAppStarting,
	"help":        CursorHelp,
	"pin":         CursorPin,
	"person":      CursorPerson,
}

// LookupSystemID resolves a symbolic system constant such as "arrow" for
// the given kind. Only icons and cursors have system constants.
func LookupSystemID(kind ResourceKind, name string) (uint16, bool) {
	var id uint16
	var ok bool
	switch kind {
	case KindIcon:
		id, ok = systemIconNames[name]
	case KindCursor:
		id, ok = systemCursorNames[name]
	}
	return id, ok
}
