package lambert

import (
	"fmt"
	"math"
	"time"
)

// TransferType defines the type of Lambert transfer
type TransferType uint8

const (
	// TTypeAuto lets the Lambert solver determine the direction of motion
	TTypeAuto TransferType = iota + 1
	// TType1 is transfer of type 1 (zero revolution, short way)
	TType1
	// TType2 is transfer of type 2 (zero revolution, long way)
	TType2
	// TType3 is transfer of type 3 (one revolution, short way, low ψ branch)
	TType3
	// TType4 is transfer of type 4 (one revolution, long way, high ψ branch)
	TType4
)

// Longway returns whether or not this is the long way.
func (t TransferType) Longway() bool {
	switch t {
	case TType1:
		fallthrough
	case TType3:
		return false
	case TType2:
		fallthrough
	case TType4:
		return true
	default:
		panic(fmt.Errorf("cannot determine whether long or short way for %s", t))
	}
}

// Revs returns the number of revolutions given the type.
func (t TransferType) Revs() uint {
	switch t {
	case TTypeAuto: // auto-revs is limited to zero revolutions
		fallthrough
	case TType1:
		fallthrough
	case TType2:
		return 0
	case TType3:
		fallthrough
	case TType4:
		return 1
	default:
		panic("unknown transfer type")
	}
}

func (t TransferType) String() string {
	switch t {
	case TTypeAuto:
		return "auto-revs"
	case TType1:
		return "type-1"
	case TType2:
		return "type-2"
	case TType3:
		return "type-3"
	case TType4:
		return "type-4"
	default:
		panic("unknown transfer type")
	}
}

// dm returns the direction of motion for this type, 0 meaning automatic.
func (t TransferType) dm() float64 {
	if t == TTypeAuto {
		return 0
	}
	if t.Longway() {
		return -1
	}
	return 1
}

// highBranch returns whether the multi revolution solution on the high ψ side
// of the minimum time of flight is requested.
func (t TransferType) highBranch() bool {
	return t == TType4
}

// Hohmann computes an Hohmann transfer between two circular coplanar orbits.
// It returns the departure and arrival speeds on the transfer ellipse, and
// the time of flight. To get final computations:
// ΔvInit = vDeparture - vI
// ΔvFinal = vArrival - vF
func Hohmann(rI, rF float64, body CelestialObject) (vDeparture, vArrival float64, tof time.Duration) {
	aTransfer := 0.5 * (rI + rF)
	vDeparture = math.Sqrt((2 * body.GM() / rI) - (body.GM() / aTransfer))
	vArrival = math.Sqrt((2 * body.GM() / rF) - (body.GM() / aTransfer))
	tof = time.Duration(math.Pi*math.Sqrt(math.Pow(aTransfer, 3)/body.GM())) * time.Second
	return
}
